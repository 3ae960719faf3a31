// Package query computes read-only views over task and entity snapshots.
// Every function works on the slice it is given and returns fresh values;
// nothing is cached.
package query

import (
	"slices"
	"time"

	"github.com/harrisonrobin/studyboard/pkg/model"
)

// SortByDeadline returns a copy ordered by earliest deadline. Equal
// deadlines keep their input order.
func SortByDeadline(tasks []model.Task) []model.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b model.Task) int {
		return a.Deadline.Compare(b.Deadline)
	})
	return out
}

// SortByPriority returns a copy ordered Critical first. Equal priorities
// keep their input order.
func SortByPriority(tasks []model.Task) []model.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b model.Task) int {
		return b.Priority.Rank() - a.Priority.Rank()
	})
	return out
}

func filter(tasks []model.Task, keep func(model.Task) bool) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func FilterByStatus(tasks []model.Task, status model.Status) []model.Task {
	return filter(tasks, func(t model.Task) bool { return t.Status == status })
}

func FilterByPriority(tasks []model.Task, priority model.Priority) []model.Task {
	return filter(tasks, func(t model.Task) bool { return t.Priority == priority })
}

func incomplete(tasks []model.Task) []model.Task {
	return filter(tasks, func(t model.Task) bool { return t.Status != model.StatusCompleted })
}

// TopPriorityTask picks the task to work on next: the earliest-deadline
// Critical task if there is one, otherwise the highest priority incomplete
// task. ok is false when every task is completed.
func TopPriorityTask(tasks []model.Task) (top model.Task, ok bool) {
	open := incomplete(tasks)
	if len(open) == 0 {
		return model.Task{}, false
	}

	byPriority := SortByPriority(open)
	if critical := FilterByPriority(byPriority, model.PriorityCritical); len(critical) > 0 {
		return SortByDeadline(critical)[0], true
	}
	return byPriority[0], true
}

// UpcomingDeadlines returns incomplete tasks due within [now, now+days],
// both ends included, in input order.
func UpcomingDeadlines(tasks []model.Task, now time.Time, days int) []model.Task {
	until := now.Add(time.Duration(days) * 24 * time.Hour)
	return filter(tasks, func(t model.Task) bool {
		return t.Status != model.StatusCompleted &&
			!t.Deadline.Before(now) &&
			!t.Deadline.After(until)
	})
}

func OverdueTasks(tasks []model.Task) []model.Task {
	return FilterByStatus(tasks, model.StatusOverdue)
}

// Counts tallies tasks by status and by the two top priorities.
type Counts struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
	Critical  int
	High      int
}

func CountTasks(tasks []model.Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case model.StatusCompleted:
			c.Completed++
		case model.StatusPending:
			c.Pending++
		case model.StatusOverdue:
			c.Overdue++
		}
		switch t.Priority {
		case model.PriorityCritical:
			c.Critical++
		case model.PriorityHigh:
			c.High++
		}
	}
	return c
}
