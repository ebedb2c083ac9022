package cli

import (
	"fmt"
	"strings"

	"github.com/quvia/centre/internal/app"
	"github.com/quvia/centre/internal/domain"
	"github.com/quvia/centre/internal/usecase"
	"github.com/spf13/cobra"
)

// newJournalCommand creates the journal command.
func newJournalCommand(c *app.Container) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "journal [entry]",
		Short: "Append an entry to today's journal",
		Long: `Append a timestamped free-text entry to journal-YYYY-MM-DD.md.

Examples:
  centre journal "Switched to the parser rewrite"
  centre journal --show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if show {
				date := domain.FormatDate(c.Clock.Now())
				content, err := c.Journal.Read(date)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			out, err := c.AppendJournalUseCase().Execute(cmd.Context(), usecase.AppendJournalInput{
				Entry: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Journal entry added for %s\n", out.Date)
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print today's journal instead of appending")

	return cmd
}
