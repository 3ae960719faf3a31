// Package derive computes the derived fields of a task: its status and its
// priority. Nothing else in the repository decides either.
package derive

import (
	"time"

	"github.com/harrisonrobin/studyboard/pkg/clock"
	"github.com/harrisonrobin/studyboard/pkg/model"
)

// DefaultWeight is used for categories missing from CategoryWeights.
const DefaultWeight = 5

// CategoryWeights is the per-category term of the priority score.
var CategoryWeights = map[model.Category]int{
	model.CategoryExamPrep:             10,
	model.CategoryContinuousAssessment: 9,
	model.CategoryProjectTask:          8,
	model.CategoryHackathon:            8,
	model.CategoryLabFile:              7,
	model.CategoryAssignment:           6,
	model.CategoryPPT:                  5,
	model.CategoryHomework:             4,
}

// Status is Completed at 100% progress whatever the deadline, Overdue once
// the deadline is strictly behind now, Pending otherwise.
func Status(t model.Task, now time.Time) model.Status {
	if t.Progress == 100 {
		return model.StatusCompleted
	}
	if clock.IsPast(now, t.Deadline) {
		return model.StatusOverdue
	}
	return model.StatusPending
}

// Weight returns the category term of the score.
func Weight(c model.Category) int {
	if w, ok := CategoryWeights[c]; ok {
		return w
	}
	return DefaultWeight
}

func deadlineTerm(deadline, now time.Time) int {
	days := clock.DaysUntil(now, deadline)
	switch {
	case days < 0:
		return 40
	case clock.HoursUntil(now, deadline) < 24:
		return 35
	case days < 3:
		return 25
	case days < 7:
		return 15
	default:
		return 5
	}
}

func progressTerm(progress int) int {
	switch {
	case progress < 25:
		return 20
	case progress < 50:
		return 15
	case progress < 75:
		return 10
	default:
		return 0
	}
}

// Score sums the deadline proximity, progress and category terms.
func Score(t model.Task, now time.Time) int {
	return deadlineTerm(t.Deadline, now) + progressTerm(t.Progress) + Weight(t.Category)
}

// Level maps a score to a priority.
func Level(score int) model.Priority {
	switch {
	case score >= 50:
		return model.PriorityCritical
	case score >= 35:
		return model.PriorityHigh
	case score >= 20:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// Priority is Low for completed work and the score level otherwise.
func Priority(t model.Task, now time.Time) model.Priority {
	if t.Progress == 100 {
		return model.PriorityLow
	}
	return Level(Score(t, now))
}

// Apply returns t with Status and Priority recomputed at now.
func Apply(t model.Task, now time.Time) model.Task {
	t.Status = Status(t, now)
	t.Priority = Priority(t, now)
	return t
}
