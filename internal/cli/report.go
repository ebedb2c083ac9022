package cli

import (
	"fmt"
	"os"

	"github.com/quvia/centre/internal/app"
	"github.com/quvia/centre/internal/infra/dailyfile"
	"github.com/quvia/centre/internal/usecase"
	"github.com/spf13/cobra"
)

// newReportCommand creates the report command.
func newReportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Date   string
		Output string
	}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a daily productivity report",
		Long: `Generate the markdown report for a day (default: today).

The report is written to report-YYYY-MM-DD.md in the data directory;
--output writes an additional copy elsewhere.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.GenerateReportUseCase().Execute(cmd.Context(), usecase.GenerateReportInput{
				Date: opts.Date,
			})
			if err != nil {
				return err
			}

			if opts.Output != "" {
				content, err := os.ReadFile(out.Path)
				if err != nil {
					return fmt.Errorf("read generated report: %w", err)
				}
				if err := dailyfile.WriteAtomic(opts.Output, content); err != nil {
					return err
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "Day to report on (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write an extra copy to this path")

	return cmd
}
