package model

import (
	"strings"
	"time"
	"unicode"
)

// Category classifies a task. Unknown categories are allowed and weigh as
// the default in priority scoring.
type Category string

const (
	CategoryAssignment           Category = "Assignment"
	CategoryLabFile              Category = "Lab File"
	CategoryContinuousAssessment Category = "Continuous Assessment"
	CategoryPPT                  Category = "PPT"
	CategoryHomework             Category = "Homework"
	CategoryProjectTask          Category = "Project Task"
	CategoryExamPrep             Category = "Exam Prep"
	CategoryHackathon            Category = "Hackathon"
)

// Categories lists the known task categories in display order.
var Categories = []Category{
	CategoryAssignment,
	CategoryLabFile,
	CategoryContinuousAssessment,
	CategoryPPT,
	CategoryHomework,
	CategoryProjectTask,
	CategoryExamPrep,
	CategoryHackathon,
}

// ParseCategory matches s against the known categories, ignoring case
// and treating '_', '-' and spaces alike ("exam_prep" is Exam Prep).
func ParseCategory(s string) (Category, bool) {
	key := foldKey(s)
	for _, c := range Categories {
		if foldKey(string(c)) == key {
			return c, true
		}
	}
	return "", false
}

func foldKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusOverdue   Status = "Overdue"
	StatusCompleted Status = "Completed"
)

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// ParseStatus matches s against the task statuses, ignoring case.
func ParseStatus(s string) (Status, bool) {
	for _, st := range []Status{StatusPending, StatusOverdue, StatusCompleted} {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// ParsePriority matches s against the priority levels, ignoring case.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow} {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// Rank orders priorities: Critical > High > Medium > Low. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// SourceType tags the kind of entity a shadow task mirrors.
type SourceType string

const (
	SourceAssignment SourceType = "assignment"
	SourceExam       SourceType = "exam"
	SourceProject    SourceType = "project"
	SourceHackathon  SourceType = "hackathon"
)

// Task is the unified work item. Status and Priority are derived and are
// only ever written by the store.
type Task struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Category    Category   `yaml:"category" json:"category"`
	Subject     string     `yaml:"subject,omitempty" json:"subject,omitempty"`
	Deadline    time.Time  `yaml:"deadline" json:"deadline"`
	Progress    int        `yaml:"progress" json:"progress"`
	Status      Status     `yaml:"status" json:"status"`
	Priority    Priority   `yaml:"priority" json:"priority"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	SourceType  SourceType `yaml:"source_type,omitempty" json:"sourceType,omitempty"`
	SourceID    string     `yaml:"source_id,omitempty" json:"sourceId,omitempty"`
}

func (t Task) EntityID() string { return t.ID }

// IsShadow reports whether the task mirrors another entity.
func (t Task) IsShadow() bool {
	return t.SourceType != "" && t.SourceID != ""
}

// TaskInput carries the caller-settable fields of a new task.
type TaskInput struct {
	Title       string
	Category    Category
	Subject     string
	Deadline    time.Time
	Progress    int
	Description string
	SourceType  SourceType
	SourceID    string
}

// TaskPatch is a partial task update; nil fields are left untouched.
// Status and Priority are derived and have no patch field.
type TaskPatch struct {
	Title       *string
	Category    *Category
	Subject     *string
	Deadline    *time.Time
	Progress    *int
	Description *string
	SourceType  *SourceType
	SourceID    *string
}

// Apply merges the non-nil fields of p into t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Subject != nil {
		t.Subject = *p.Subject
	}
	if p.Deadline != nil {
		t.Deadline = *p.Deadline
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.SourceType != nil {
		t.SourceType = *p.SourceType
	}
	if p.SourceID != nil {
		t.SourceID = *p.SourceID
	}
}

// ClampProgress bounds a progress value to [0,100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
