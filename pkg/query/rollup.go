package query

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/harrisonrobin/studyboard/pkg/model"
)

// Percent returns done/total as a rounded integer percentage, 0 when total is 0.
func Percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// CompletionRate is the share of completed tasks.
func CompletionRate(tasks []model.Task) int {
	return Percent(CountTasks(tasks).Completed, len(tasks))
}

func topicProgress(topics []model.Topic) int {
	studied := 0
	for _, t := range topics {
		if t.Studied {
			studied++
		}
	}
	return Percent(studied, len(topics))
}

func SubjectProgress(s model.Subject) int {
	return topicProgress(s.Topics)
}

func ExamProgress(e model.Exam) int {
	return topicProgress(e.Topics)
}

func ProjectProgress(p model.Project) int {
	done := 0
	for _, t := range p.Tasks {
		if t.Completed {
			done++
		}
	}
	return Percent(done, len(p.Tasks))
}

func HackathonProgress(h model.Hackathon) int {
	done := 0
	for _, item := range h.Checklist {
		if item.Completed {
			done++
		}
	}
	return Percent(done, len(h.Checklist))
}

// UpcomingExams returns exams dated at or after now, earliest first.
func UpcomingExams(exams []model.Exam, now time.Time) []model.Exam {
	var out []model.Exam
	for _, e := range exams {
		if !e.Date.Before(now) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Exam) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// ClassesOn returns the entries for a day ordered by start time.
func ClassesOn(entries []model.TimetableEntry, day model.Day) []model.TimetableEntry {
	var out []model.TimetableEntry
	for _, e := range entries {
		if e.Day == day {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b model.TimetableEntry) int {
		return strings.Compare(a.StartTime, b.StartTime)
	})
	return out
}

// ClassesToday returns today's classes. There are none on Sunday.
func ClassesToday(entries []model.TimetableEntry, now time.Time) []model.TimetableEntry {
	day, ok := model.DayOf(now.Weekday())
	if !ok {
		return nil
	}
	return ClassesOn(entries, day)
}

// ActiveProjects returns projects with at least one open step.
func ActiveProjects(projects []model.Project) []model.Project {
	var out []model.Project
	for _, p := range projects {
		for _, t := range p.Tasks {
			if !t.Completed {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
