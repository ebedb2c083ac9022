package cli

import (
	"fmt"

	"github.com/quvia/centre/internal/infra/dailyfile"
	"github.com/spf13/cobra"
)

// newInitCommand creates the init command.
func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a .centre directory in the current directory",
		Long: `Create a project-local .centre data directory.

Without a local directory, centre stores its files in ~/.centre.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := dailyfile.InitLocalDir()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s\n", dir)
			return nil
		},
	}
}
