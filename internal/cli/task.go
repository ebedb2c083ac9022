package cli

import (
	"fmt"
	"strings"

	"github.com/quvia/centre/internal/app"
	"github.com/quvia/centre/internal/domain"
	"github.com/quvia/centre/internal/usecase"
	"github.com/spf13/cobra"
)

// newAddCommand creates the add command.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Parent        string
		Notes         string
		Tags          []string
		EstimateHours float64
	}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to today",
		Long: `Add a task (or subtask) to today's list.

Examples:
  # Add a task with a 1.5 hour estimate
  centre add "Review design doc" --est 1.5

  # Add a tagged task
  centre add "Fix flaky test" --tag ci --tag testing

  # Add a subtask under an existing task
  centre add "Write changelog" --parent "Prepare release"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{
				Title:         strings.Join(args, " "),
				Notes:         opts.Notes,
				Parent:        opts.Parent,
				Tags:          opts.Tags,
				EstimateHours: opts.EstimateHours,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %q (est %.2fh)\n", out.Item.Title, out.Item.Track.EstimateHours())
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.EstimateHours, "est", 0, "Estimate in hours")
	cmd.Flags().StringSliceVar(&opts.Tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&opts.Parent, "parent", "", "Add as a subtask under this task")

	return cmd
}

// newStartCommand creates the start command.
func newStartCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "start <title>",
		Short: "Start a task's timer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.StartTaskUseCase().Execute(cmd.Context(), usecase.ControlTaskInput{
				Title: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Started %q\n", out.Item.Title)
			return nil
		},
	}
}

// newPauseCommand creates the pause command.
func newPauseCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "pause <title>",
		Short: "Pause a task's timer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.PauseTaskUseCase().Execute(cmd.Context(), usecase.ControlTaskInput{
				Title: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Paused %q at %s\n",
				out.Item.Title, domain.FormatDuration(out.Item.Track.Elapsed))
			return nil
		},
	}
}

// newDoneCommand creates the done command.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "done <title>",
		Short: "Mark a task as completed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.CompleteTaskUseCase().Execute(cmd.Context(), usecase.ControlTaskInput{
				Title: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed %q (%s)\n",
				out.Item.Title, domain.FormatDuration(out.Item.Track.Elapsed))
			return nil
		},
	}
}

// newArchiveCommand creates the archive command.
func newArchiveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <title>",
		Short: "Move a task to the archived section",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ArchiveTaskUseCase().Execute(cmd.Context(), usecase.ControlTaskInput{
				Title: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Archived %q\n", out.Item.Title)
			return nil
		},
	}
}

// newEstimateCommand creates the estimate command.
func newEstimateCommand(c *app.Container) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "estimate <title>",
		Short: "Adjust a task's estimate in configured steps",
		Long: `Raise or lower a task's estimate.

The step size comes from config.toml (estimate_step_minutes, default 15).

Examples:
  # Add two steps (30 minutes by default)
  centre estimate "Review design doc" --steps 2

  # Remove one step
  centre estimate "Review design doc" --steps -1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.AdjustEstimateUseCase().Execute(cmd.Context(), usecase.AdjustEstimateInput{
				Title: strings.Join(args, " "),
				Steps: steps,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Estimate for %q is now %s\n",
				out.Item.Title, domain.FormatDuration(out.Item.Track.Estimate))
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "Steps to add (negative to remove)")

	return cmd
}

// newPostponeCommand creates the postpone command.
func newPostponeCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "postpone <title>",
		Short: "Move a task to tomorrow",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.PostponeTaskUseCase().Execute(cmd.Context(), usecase.PostponeTaskInput{
				Title: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Postponed %q to %s\n", out.Item.Title, out.TomorrowDate)
			return nil
		},
	}
}
