package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/quvia/centre/internal/app"
	"github.com/quvia/centre/internal/domain"
	"github.com/quvia/centre/internal/usecase"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// listTask is the machine-readable projection of an item.
type listTask struct {
	Title         string     `yaml:"title"`
	Status        string     `yaml:"status"`
	EstimateHours float64    `yaml:"estimate_hours"`
	ElapsedHours  float64    `yaml:"elapsed_hours"`
	Tags          []string   `yaml:"tags,omitempty"`
	Subtasks      []listTask `yaml:"subtasks,omitempty"`
}

// listDay is the machine-readable projection of a day.
type listDay struct {
	Date     string     `yaml:"date"`
	Active   []listTask `yaml:"active"`
	Done     []listTask `yaml:"done,omitempty"`
	Archived []listTask `yaml:"archived,omitempty"`
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show today's tasks",
		Long: `Show today's tasks as a table, or as yaml for scripting.

Examples:
  centre list
  centre list -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.LoadDayUseCase().Execute(cmd.Context(), usecase.LoadDayInput{})
			if err != nil {
				return err
			}

			switch output {
			case "yaml":
				return renderYAML(cmd, out.Day, out.Date)
			case "table", "":
				renderTable(cmd, out.Day, out.Date)
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want table or yaml)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or yaml")

	return cmd
}

func renderYAML(cmd *cobra.Command, day *domain.DayFile, date string) error {
	doc := listDay{
		Date:     date,
		Active:   projectItems(day.Active),
		Done:     projectItems(day.Done),
		Archived: projectItems(day.Archived),
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal day: %w", err)
	}
	_, _ = cmd.OutOrStdout().Write(data)
	return nil
}

func projectItems(items []*domain.Item) []listTask {
	out := make([]listTask, 0, len(items))
	for _, it := range items {
		out = append(out, listTask{
			Title:         it.Title,
			Status:        it.Status.Display(),
			EstimateHours: it.Track.EstimateHours(),
			ElapsedHours:  it.Track.ElapsedHours(),
			Tags:          it.Tags,
			Subtasks:      projectItems(it.Subtasks),
		})
	}
	return out
}

func renderTable(cmd *cobra.Command, day *domain.DayFile, date string) {
	totals := domain.DayTotals(day)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%d/%d done, %s of %s)\n", date,
		totals.Completed, totals.Total,
		domain.FormatDuration(totals.Elapsed), domain.FormatDuration(totals.Estimate))

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = false

	t.AppendHeader(table.Row{"Task", "Status", "Est", "Elapsed", "Tags"})
	for _, row := range domain.FlattenItems(day.Active) {
		appendItemRow(t, row.Item, row.Depth)
	}
	for _, it := range day.Done {
		appendItemRow(t, it, 0)
	}
	for _, it := range day.Archived {
		appendItemRow(t, it, 0)
	}
	t.Render()
}

func appendItemRow(t table.Writer, it *domain.Item, depth int) {
	title := it.Title
	if depth > 0 {
		title = strings.Repeat("  ", depth) + "- " + title
	}
	t.AppendRow(table.Row{
		title,
		coloredStatus(it.Status),
		domain.FormatDuration(it.Track.Estimate),
		domain.FormatDuration(it.Track.Elapsed),
		strings.Join(it.Tags, ", "),
	})
}

func coloredStatus(s domain.Status) string {
	display := s.Display()
	switch s {
	case domain.StatusRunning:
		return text.FgHiGreen.Sprintf("%s", display)
	case domain.StatusPaused:
		return text.FgHiYellow.Sprintf("%s", display)
	case domain.StatusDone:
		return text.FgHiBlue.Sprintf("%s", display)
	case domain.StatusPostponed, domain.StatusIdle:
		return display
	default:
		return display
	}
}
