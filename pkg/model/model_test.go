package model

import (
	"testing"
	"time"
)

func TestPriorityRank(t *testing.T) {
	order := []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("Expected %s to outrank %s", order[i], order[i-1])
		}
	}
	if Priority("Urgent").Rank() != 0 {
		t.Error("Expected unknown priority to rank 0")
	}
}

func TestDayOf(t *testing.T) {
	if _, ok := DayOf(time.Sunday); ok {
		t.Error("Expected Sunday to have no teaching day")
	}
	if d, ok := DayOf(time.Saturday); !ok || d != Saturday {
		t.Errorf("Expected Saturday, got %q (%v)", d, ok)
	}
	if d, _ := DayOf(time.Monday); d != Monday {
		t.Errorf("Expected Monday, got %q", d)
	}
}

func TestTaskPatchApply(t *testing.T) {
	task := Task{ID: "1", Title: "Old", Progress: 10, Subject: "DS"}
	TaskPatch{Title: Ptr("New"), Progress: Ptr(50)}.Apply(&task)

	if task.Title != "New" || task.Progress != 50 {
		t.Errorf("Expected patched title and progress, got %+v", task)
	}
	if task.Subject != "DS" {
		t.Errorf("Expected subject untouched, got %q", task.Subject)
	}
}

func TestProjectCloneIsDeep(t *testing.T) {
	d := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	p := Project{ID: "1", Tasks: []ProjectTask{{ID: "a", Deadline: &d}}}

	c := p.Clone()
	c.Tasks[0].Title = "changed"
	*c.Tasks[0].Deadline = d.Add(time.Hour)

	if p.Tasks[0].Title != "" {
		t.Error("Expected clone to own its task slice")
	}
	if !p.Tasks[0].Deadline.Equal(d) {
		t.Error("Expected clone to own its deadlines")
	}
}

func TestClampProgress(t *testing.T) {
	for in, want := range map[int]int{-5: 0, 0: 0, 42: 42, 100: 100, 140: 100} {
		if got := ClampProgress(in); got != want {
			t.Errorf("ClampProgress(%d): expected %d, got %d", in, want, got)
		}
	}
}

func TestParseCategory(t *testing.T) {
	testCases := map[string]Category{
		"exam_prep":            CategoryExamPrep,
		"Lab File":             CategoryLabFile,
		"lab-file":             CategoryLabFile,
		"ppt":                  CategoryPPT,
		"continuousassessment": CategoryContinuousAssessment,
	}
	for in, want := range testCases {
		if got, ok := ParseCategory(in); !ok || got != want {
			t.Errorf("ParseCategory(%q): expected %s, got %q", in, want, got)
		}
	}
	if _, ok := ParseCategory("chores"); ok {
		t.Error("Expected unknown category to be rejected")
	}
}

func TestParseStatusAndPriority(t *testing.T) {
	if s, ok := ParseStatus("overdue"); !ok || s != StatusOverdue {
		t.Errorf("Expected Overdue, got %q", s)
	}
	if _, ok := ParseStatus("late"); ok {
		t.Error("Expected unknown status to be rejected")
	}
	if p, ok := ParsePriority("CRITICAL"); !ok || p != PriorityCritical {
		t.Errorf("Expected Critical, got %q", p)
	}
	if _, ok := ParsePriority("urgent"); ok {
		t.Error("Expected unknown priority to be rejected")
	}
}
