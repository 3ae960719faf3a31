package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/studyboard/pkg/clock"
	"github.com/harrisonrobin/studyboard/pkg/model"
	"github.com/harrisonrobin/studyboard/pkg/query"
)

type tasksOptions struct {
	sort     string
	status   string
	priority string
}

func newTasksCmd(opts *rootOptions) *cobra.Command {
	var o tasksOptions
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the unified task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession()
			if err != nil {
				return err
			}
			tasks, err := o.apply(s.store().Tasks())
			if err != nil {
				return err
			}
			renderTasks(cmd.OutOrStdout(), tasks, opts.clock.Now())
			return nil
		},
	}
	cmd.Flags().StringVar(&o.sort, "sort", "priority", "Sort order: priority or deadline")
	cmd.Flags().StringVar(&o.status, "status", "", "Only tasks with this status (pending, overdue, completed)")
	cmd.Flags().StringVar(&o.priority, "priority", "", "Only tasks with this priority (critical, high, medium, low)")
	return cmd
}

func (o tasksOptions) apply(tasks []model.Task) ([]model.Task, error) {
	if o.status != "" {
		status, ok := model.ParseStatus(o.status)
		if !ok {
			return nil, fmt.Errorf("unknown status %q", o.status)
		}
		tasks = query.FilterByStatus(tasks, status)
	}
	if o.priority != "" {
		priority, ok := model.ParsePriority(o.priority)
		if !ok {
			return nil, fmt.Errorf("unknown priority %q", o.priority)
		}
		tasks = query.FilterByPriority(tasks, priority)
	}

	switch o.sort {
	case "priority":
		return query.SortByPriority(tasks), nil
	case "deadline":
		return query.SortByDeadline(tasks), nil
	default:
		return nil, fmt.Errorf("unknown sort order %q", o.sort)
	}
}

// renderTasks prints tasks as a plain table.
func renderTasks(w io.Writer, tasks []model.Task, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRIORITY\tSTATUS\tDUE\tPROGRESS\tCATEGORY\tTITLE")
	for _, t := range tasks {
		due := clock.Countdown(now, t.Deadline)
		switch {
		case t.Status == model.StatusCompleted:
			due = clock.FormatDate(t.Deadline)
		case t.Status == model.StatusPending && clock.SameDay(now, t.Deadline):
			due += " (today)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d%%\t%s\t%s\n",
			shortID(t.ID), t.Priority, t.Status, due, t.Progress, t.Category, t.Title)
	}
	tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
