package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/quvia/centre/internal/app"
	"github.com/quvia/centre/internal/domain"
	"github.com/quvia/centre/internal/usecase"
	"github.com/spf13/cobra"
)

// newWatchCommand creates the watch command.
func newWatchCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run an interactive session with live timers",
		Long: `Run an interactive session over today's tasks.

While the session is open, running timers accrue on every tick, tasks
that cross their estimate raise a notification, and half an hour of
inactivity triggers an idle check (another half hour without an answer
pauses everything). Changes are saved after every command; done, delete
and archive can be taken back with undo while the session lasts.

Type ? at the prompt for the command list. Quitting returns every task
to idle, the way a closed session leaves nothing running unattended.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.LoadDayUseCase().Execute(cmd.Context(), usecase.LoadDayInput{})
			if err != nil {
				return err
			}
			meta, err := c.Meta.Load()
			if err != nil {
				return err
			}

			state := app.NewState(out.Day, meta, out.Date, *c.Config, c.Clock, c.Notifier)
			s := &watchSession{
				state: state,
				days:  c.Days,
				meta:  c.Meta,
				clock: c.Clock,
				out:   cmd.OutOrStdout(),
			}
			return s.run(cmd.Context(), cmd.InOrStdin(), c.Config.Timer.Tick)
		},
	}
}

// watchSession drives one interactive session over the day aggregate.
// The mutex serializes the command loop against the background ticker.
type watchSession struct {
	mu    sync.Mutex
	state *app.State
	days  domain.DayStore
	meta  domain.MetaStore
	clock domain.Clock
	out   io.Writer
}

// run reads commands until quit or end of input, ticking in the background.
func (s *watchSession) run(ctx context.Context, in io.Reader, tick time.Duration) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(tick)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				s.mu.Lock()
				s.state.Tick()
				s.checkAlerts()
				s.flush()
				s.mu.Unlock()
			}
		}
	}()

	s.mu.Lock()
	s.printList()
	s.mu.Unlock()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}

		s.mu.Lock()
		quit := s.handleLine(strings.TrimSpace(scanner.Text()))
		s.flush()
		s.mu.Unlock()

		if quit || ctx.Err() != nil {
			return scanner.Err()
		}
	}

	// input ended without an explicit quit; wind down the same way
	s.mu.Lock()
	s.shutdown()
	s.flush()
	s.mu.Unlock()
	return scanner.Err()
}

// handleLine executes one command. It returns true when the session should
// end. Callers hold the mutex.
func (s *watchSession) handleLine(line string) bool {
	if s.state.DayChanged() {
		fmt.Fprintln(s.out, "The calendar day changed; saving and exiting. Start watch again to roll over.")
		s.shutdown()
		return true
	}

	if line == "" {
		s.state.Tick()
		s.printList()
		return false
	}

	word, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	var err error
	switch word {
	case "q", "quit":
		s.shutdown()
		return true
	case "?", "help":
		s.printHelp()
		return false
	case "add":
		_, err = s.state.AddTask(rest, 0)
	case "sub":
		numStr, title, _ := strings.Cut(rest, " ")
		var ti int
		if ti, _, err = parseAddr(numStr); err == nil {
			_, err = s.state.AddSubtask(ti, strings.TrimSpace(title), 0)
		}
	case "t", "toggle":
		err = s.withAddr(rest, s.state.Toggle)
	case "done":
		err = s.withAddr(rest, s.state.MarkDone)
	case "del":
		err = s.withAddr(rest, s.state.Delete)
	case "extend":
		err = s.withAddr(rest, s.state.ExtendEstimate)
	case "archive":
		var ti int
		if ti, _, err = parseAddr(rest); err == nil {
			err = s.state.Archive(ti)
		}
	case "postpone":
		err = s.postpone(rest)
	case "undo":
		if it, ok := s.state.Undo(); ok {
			fmt.Fprintf(s.out, "restored %q\n", it.Title)
		} else {
			fmt.Fprintln(s.out, "nothing to undo")
		}
	case "up":
		var ti int
		if ti, _, err = parseAddr(rest); err == nil {
			s.state.MoveUp(ti)
		}
	case "down":
		var ti int
		if ti, _, err = parseAddr(rest); err == nil {
			s.state.MoveDown(ti)
		}
	case "open":
		var ti int
		if ti, _, err = parseAddr(rest); err == nil {
			err = s.state.ToggleExpanded(ti)
		}
	case "yes":
		s.state.ConfirmWorking()
		fmt.Fprintln(s.out, "timers keep running")
		return false
	default:
		fmt.Fprintf(s.out, "unknown command %q (? for help)\n", word)
		return false
	}

	if err != nil {
		fmt.Fprintln(s.out, err)
		return false
	}
	s.printList()
	return false
}

// withAddr parses an "n" or "n.m" address and applies fn to it.
func (s *watchSession) withAddr(addr string, fn func(int, *int) error) error {
	ti, si, err := parseAddr(addr)
	if err != nil {
		return err
	}
	return fn(ti, si)
}

// postpone moves the addressed task out of today and merges it into
// tomorrow's file.
func (s *watchSession) postpone(addr string) error {
	ti, _, err := parseAddr(addr)
	if err != nil {
		return err
	}
	item, err := s.state.Postpone(ti)
	if err != nil {
		return err
	}

	tomorrow := domain.FormatDate(s.clock.Now().AddDate(0, 0, 1))
	day := &domain.DayFile{}
	if s.days.Exists(tomorrow) {
		if day, err = s.days.Load(tomorrow); err != nil {
			return fmt.Errorf("load tomorrow: %w", err)
		}
	}
	day.Active = append(day.Active, item)
	if err := s.days.Save(tomorrow, day); err != nil {
		return fmt.Errorf("save tomorrow: %w", err)
	}

	fmt.Fprintf(s.out, "postponed %q to %s\n", item.Title, tomorrow)
	return nil
}

// checkAlerts surfaces estimate hits and the idle watchdog at the prompt.
func (s *watchSession) checkAlerts() {
	if hit := s.state.CheckEstimateHits(); hit != nil {
		fmt.Fprintf(s.out, "\nestimate reached for %q: done, extend, toggle or postpone it\n> ", hit.Title)
	}
	if s.state.CheckIdle() {
		fmt.Fprint(s.out, "\nstill working? type yes to keep timers running\n> ")
	}
}

// shutdown returns every task to idle so nothing keeps running unattended.
func (s *watchSession) shutdown() {
	s.state.AutoIdleAll()
	fmt.Fprintln(s.out, "session closed")
}

// flush persists the day and metadata when anything changed.
func (s *watchSession) flush() {
	if !s.state.NeedsSave() {
		return
	}
	if err := s.days.Save(s.state.Date, s.state.DayFile()); err != nil {
		fmt.Fprintf(s.out, "save failed: %v\n", err)
		return
	}
	s.state.ClearDirty()
	if err := s.meta.Save(s.state.Meta); err != nil {
		fmt.Fprintf(s.out, "metadata save failed: %v\n", err)
	}
}

func (s *watchSession) printList() {
	t := s.state.Totals()
	fmt.Fprintf(s.out, "%s (%d/%d done, %s of %s)\n", s.state.Date,
		t.Completed, t.Total, domain.FormatDuration(t.Elapsed), domain.FormatDuration(t.Estimate))

	for _, row := range s.state.Rows() {
		num := strconv.Itoa(row.TaskIndex + 1)
		indent := ""
		if row.SubtaskIndex != nil {
			num = fmt.Sprintf("%d.%d", row.TaskIndex+1, *row.SubtaskIndex+1)
			indent = "  "
		}
		fmt.Fprintf(s.out, "%s%-4s [%s] %s (%s of %s)\n", indent, num,
			row.Item.Status.Tag(), row.Item.Title,
			domain.FormatDuration(row.Item.Track.Elapsed), domain.FormatDuration(row.Item.Track.Estimate))
	}
}

func (s *watchSession) printHelp() {
	fmt.Fprint(s.out, `commands (addresses are 1-based, n.m for subtasks):
  add <title>        add a task
  sub <n> <title>    add a subtask
  t <n[.m]>          toggle a timer between running and paused
  done <n[.m]>       mark done
  del <n[.m]>        delete
  archive <n>        archive a task
  postpone <n>       move a task to tomorrow
  extend <n[.m]>     raise the estimate by one step
  undo               take back the last done, delete or archive
  up/down <n>        reorder tasks
  open <n>           expand or collapse subtasks
  yes                answer the idle check
  q                  save and quit
`)
}

// parseAddr turns "2" or "2.1" into zero-based task and subtask indices.
func parseAddr(addr string) (int, *int, error) {
	taskStr, subStr, hasSub := strings.Cut(addr, ".")
	ti, err := strconv.Atoi(taskStr)
	if err != nil || ti < 1 {
		return 0, nil, fmt.Errorf("%w: bad address %q", domain.ErrItemNotFound, addr)
	}
	if !hasSub {
		return ti - 1, nil, nil
	}
	si, err := strconv.Atoi(subStr)
	if err != nil || si < 1 {
		return 0, nil, fmt.Errorf("%w: bad address %q", domain.ErrItemNotFound, addr)
	}
	sub := si - 1
	return ti - 1, &sub, nil
}
