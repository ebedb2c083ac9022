// Package cli provides the command-line interface for centre.
package cli

import (
	"fmt"

	"github.com/quvia/centre/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
	groupDay   = "day"
)

// NewRootCommand creates the root command for centre.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "centre",
		Short: "Daily task and time tracking",
		Long: `centre is a terminal tool for planning a single day of work.

Tasks live in a human-readable markdown file per day under .centre
(found by walking up from the working directory, else ~/.centre).
Every status change is recorded in an append-only history, so elapsed
time survives restarts and a running timer keeps counting between
commands. At the first command of a new day, unfinished tasks are
carried forward and a report for the previous day is written.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "init" {
				return nil
			}
			if c == nil {
				return nil
			}
			for _, w := range c.Config.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
		&cobra.Group{ID: groupDay, Title: "Day Commands:"},
	)

	initCmd := newInitCommand()
	initCmd.GroupID = groupSetup

	migrateCmd := newMigrateCommand(c)
	migrateCmd.GroupID = groupSetup

	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	watchCmd := newWatchCommand(c)
	watchCmd.GroupID = groupTask

	startCmd := newStartCommand(c)
	startCmd.GroupID = groupTask

	pauseCmd := newPauseCommand(c)
	pauseCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	archiveCmd := newArchiveCommand(c)
	archiveCmd.GroupID = groupTask

	estimateCmd := newEstimateCommand(c)
	estimateCmd.GroupID = groupTask

	postponeCmd := newPostponeCommand(c)
	postponeCmd.GroupID = groupTask

	modeCmd := newModeCommand(c)
	modeCmd.GroupID = groupDay

	journalCmd := newJournalCommand(c)
	journalCmd.GroupID = groupDay

	reportCmd := newReportCommand(c)
	reportCmd.GroupID = groupDay

	root.AddCommand(
		initCmd,
		migrateCmd,
		addCmd,
		listCmd,
		watchCmd,
		startCmd,
		pauseCmd,
		doneCmd,
		archiveCmd,
		estimateCmd,
		postponeCmd,
		modeCmd,
		journalCmd,
		reportCmd,
	)

	return root
}
