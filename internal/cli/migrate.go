package cli

import (
	"fmt"

	"github.com/quvia/centre/internal/app"
	"github.com/quvia/centre/internal/usecase"
	"github.com/spf13/cobra"
)

// newMigrateCommand creates the migrate command.
func newMigrateCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Import the legacy today/tomorrow/done-log files",
		Long: `Convert the old three-file layout (today.md, tomorrow.md, done.log.md)
into a unified daily file.

The migration runs at most once: after a successful import the legacy
task files are removed (the done log is kept as a historical record).
Running it again is a no-op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.MigrateLegacyUseCase().Execute(cmd.Context(), usecase.MigrateLegacyInput{})
			if err != nil {
				return err
			}
			if !out.Migrated {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No legacy files found")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d active and %d completed tasks\n",
				out.ItemCount, out.DoneCount)
			return nil
		},
	}
}
