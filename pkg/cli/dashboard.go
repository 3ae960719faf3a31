package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/studyboard/pkg/clock"
	"github.com/harrisonrobin/studyboard/pkg/query"
)

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the top task, deadlines, classes and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = s.cfg.UpcomingDays
			}
			if days <= 0 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}

			now := opts.clock.Now()
			d := query.BuildDashboard(s.store().Snapshot(), now, days)
			renderDashboard(cmd.OutOrStdout(), DefaultTheme, d, now, days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Look-ahead window for upcoming deadlines (default from config)")
	return cmd
}

func renderDashboard(w io.Writer, theme Theme, d query.Dashboard, now time.Time, days int) {
	fmt.Fprintln(w, theme.header("Top priority"))
	if d.Top == nil {
		fmt.Fprintln(w, theme.faint("  nothing left to do"))
	} else {
		fmt.Fprintf(w, "  %s  %s  %s\n", theme.priority(d.Top.Priority), d.Top.Title, theme.faint(clock.Countdown(now, d.Top.Deadline)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.header(fmt.Sprintf("Overdue (%d)", len(d.Overdue))))
	for _, t := range query.SortByDeadline(d.Overdue) {
		fmt.Fprintf(w, "  %s  %s  %s\n", theme.status(t.Status), t.Title, theme.faint(clock.FormatDate(t.Deadline)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.header(fmt.Sprintf("Upcoming (next %d days)", days)))
	if len(d.Upcoming) == 0 {
		fmt.Fprintln(w, theme.faint("  no deadlines"))
	}
	for _, t := range d.Upcoming {
		fmt.Fprintf(w, "  %s  %s  %s  %d%%\n", theme.priority(t.Priority), t.Title, theme.faint(clock.Countdown(now, t.Deadline)), t.Progress)
	}

	fmt.Fprintln(w)
	c := d.Counts
	fmt.Fprintf(w, "%s  %d total, %d completed, %d pending, %d overdue, %d%% done\n",
		theme.header("Tasks"), c.Total, c.Completed, c.Pending, c.Overdue, d.CompletionRate)

	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.header("Today's classes ("+clock.DayName(now)+")"))
	if len(d.TodaysClasses) == 0 {
		fmt.Fprintln(w, theme.faint("  no classes"))
	}
	for _, e := range d.TodaysClasses {
		fmt.Fprintf(w, "  %s-%s  %s  %s\n", e.StartTime, e.EndTime, e.Subject, theme.faint(string(e.Type)))
	}

	renderProgress(w, theme, "Exam prep", d.ExamPrep)
	renderProgress(w, theme, "Projects", d.Projects)
	renderProgress(w, theme, "Subjects", d.Subjects)
}

func renderProgress(w io.Writer, theme Theme, title string, items []query.Progress) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.header(title))
	for _, p := range items {
		fmt.Fprintf(w, "  %3d%%  %s\n", p.Percent, p.Name)
	}
}
