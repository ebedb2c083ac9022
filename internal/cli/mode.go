package cli

import (
	"fmt"
	"strings"

	"github.com/quvia/centre/internal/app"
	"github.com/quvia/centre/internal/domain"
	"github.com/quvia/centre/internal/usecase"
	"github.com/spf13/cobra"
)

// newModeCommand creates the mode command.
func newModeCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "mode [name]",
		Short: "Show or switch the global context mode",
		Long: `Show the current context mode, or switch to a new one.

Any mode other than Working pauses every running timer; switching back
to Working resumes exactly the tasks that were auto-paused.

Modes: ` + modeNames(),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return printModes(cmd, c)
			}

			out, err := c.SetModeUseCase().Execute(cmd.Context(), usecase.SetModeInput{Mode: args[0]})
			if err != nil {
				return err
			}
			if !out.Changed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Already in %s %s\n", out.Current.Symbol(), out.Current.Display())
				return nil
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", out.Current.Symbol(), out.Current.Display())
			if len(out.Paused) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Paused: %s\n", strings.Join(out.Paused, ", "))
			}
			if len(out.Resumed) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Resumed: %s\n", strings.Join(out.Resumed, ", "))
			}
			return nil
		},
	}
}

func printModes(cmd *cobra.Command, c *app.Container) error {
	meta, err := c.Meta.Load()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Current: %s %s\n", meta.Mode.Symbol(), meta.Mode.Display())
	for _, mode := range domain.AllModes() {
		if d := meta.ModeTimes[mode]; d > 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s %s: %s\n", mode.Symbol(), mode.Display(), domain.FormatDuration(d))
		}
	}
	return nil
}

func modeNames() string {
	names := make([]string, 0, len(domain.AllModes()))
	for _, m := range domain.AllModes() {
		names = append(names, m.Display())
	}
	return strings.Join(names, ", ")
}
