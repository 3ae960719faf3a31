package query

import (
	"time"

	"github.com/harrisonrobin/studyboard/pkg/model"
)

// UpcomingLimit caps the upcoming list on the dashboard.
const UpcomingLimit = 5

// Progress pairs a named item with its rounded completion percentage.
type Progress struct {
	ID      string
	Name    string
	Percent int
}

// Dashboard is the aggregate view shown on the home screen.
type Dashboard struct {
	Top            *model.Task
	Overdue        []model.Task
	Upcoming       []model.Task
	Counts         Counts
	CompletionRate int
	TodaysClasses  []model.TimetableEntry
	ExamPrep       []Progress
	Projects       []Progress
	Subjects       []Progress
}

// BuildDashboard aggregates ds at now, looking window days ahead.
func BuildDashboard(ds model.Dataset, now time.Time, window int) Dashboard {
	d := Dashboard{
		Overdue:        OverdueTasks(ds.Tasks),
		Counts:         CountTasks(ds.Tasks),
		CompletionRate: CompletionRate(ds.Tasks),
		TodaysClasses:  ClassesToday(ds.Timetable, now),
	}

	if top, ok := TopPriorityTask(ds.Tasks); ok {
		d.Top = &top
	}

	upcoming := SortByDeadline(UpcomingDeadlines(ds.Tasks, now, window))
	if len(upcoming) > UpcomingLimit {
		upcoming = upcoming[:UpcomingLimit]
	}
	d.Upcoming = upcoming

	for _, e := range UpcomingExams(ds.Exams, now) {
		d.ExamPrep = append(d.ExamPrep, Progress{ID: e.ID, Name: e.Subject, Percent: ExamProgress(e)})
	}
	for _, p := range ActiveProjects(ds.Projects) {
		d.Projects = append(d.Projects, Progress{ID: p.ID, Name: p.Name, Percent: ProjectProgress(p)})
	}
	for _, s := range ds.Subjects {
		d.Subjects = append(d.Subjects, Progress{ID: s.ID, Name: s.Name, Percent: SubjectProgress(s)})
	}
	return d
}
