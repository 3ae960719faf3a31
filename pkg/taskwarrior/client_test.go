package taskwarrior

import (
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/studyboard/pkg/model"
)

const exportArray = `[
	{
		"uuid": "f45a05b3-c12e-42e5-9c9c-333333333333",
		"description": "Normalization worksheet",
		"status": "pending",
		"due": "20260305T140000Z",
		"project": "Database Management",
		"tags": ["uni", "assignment"],
		"progress": 40,
		"annotations": [
			{"entry": "20260301T120500Z", "description": "Third normal form"}
		]
	},
	{"uuid": "a", "description": "Lab 4", "status": "completed", "due": "20260220T120000Z", "tags": ["lab_file"]},
	{"uuid": "b", "description": "Gone", "status": "deleted", "due": "20260220T120000Z"},
	{"uuid": "c", "description": "Someday", "status": "pending"}
]`

func TestParseTasksArray(t *testing.T) {
	tasks, err := NewClient().ParseTasks(strings.NewReader(exportArray))
	if err != nil {
		t.Fatalf("ParseTasks failed: %v", err)
	}
	if len(tasks) != 4 {
		t.Fatalf("Expected 4 tasks, got %d", len(tasks))
	}

	task := tasks[0]
	if task.UUID != "f45a05b3-c12e-42e5-9c9c-333333333333" {
		t.Errorf("Expected UUID f45a05b3-c12e-42e5-9c9c-333333333333, got %s", task.UUID)
	}
	if len(task.Annotations) != 1 {
		t.Errorf("Expected 1 annotation, got %d", len(task.Annotations))
	}
	expectedDue, _ := time.Parse(time.RFC3339, "2026-03-05T14:00:00Z")
	if !task.Due.Time.Equal(expectedDue) {
		t.Errorf("Expected Due %v, got %v", expectedDue, task.Due.Time)
	}
	if task.Progress == nil || *task.Progress != 40 {
		t.Errorf("Expected progress UDA 40, got %v", task.Progress)
	}
}

func TestParseTasksStream(t *testing.T) {
	input := `{"uuid": "1", "description": "one", "status": "pending"}
{"uuid": "2", "description": "two", "status": "pending"}`
	tasks, err := NewClient().ParseTasks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTasks failed: %v", err)
	}
	if len(tasks) != 2 || tasks[1].UUID != "2" {
		t.Errorf("Unexpected tasks %+v", tasks)
	}

	if tasks, err := NewClient().ParseTasks(strings.NewReader("  \n")); err != nil || len(tasks) != 0 {
		t.Errorf("Expected no tasks for blank input, got %d (%v)", len(tasks), err)
	}
	if _, err := NewClient().ParseTasks(strings.NewReader(`{"due": "yesterday"}`)); err == nil {
		t.Error("Expected error for a malformed timestamp")
	}
}

func TestToInputs(t *testing.T) {
	tasks, _ := NewClient().ParseTasks(strings.NewReader(exportArray))
	inputs := ToInputs(tasks)
	if len(inputs) != 2 {
		t.Fatalf("Expected deleted and undated tasks to be skipped, got %d inputs", len(inputs))
	}

	first := inputs[0]
	if first.Title != "Normalization worksheet" || first.Subject != "Database Management" {
		t.Errorf("Unexpected input %+v", first)
	}
	if first.Category != model.CategoryAssignment || first.Progress != 40 {
		t.Errorf("Expected Assignment at 40%%, got %s at %d", first.Category, first.Progress)
	}
	if first.Description != "Third normal form" {
		t.Errorf("Expected annotation as description, got %q", first.Description)
	}

	lab := inputs[1]
	if lab.Category != model.CategoryLabFile || lab.Progress != 100 {
		t.Errorf("Expected completed Lab File, got %s at %d", lab.Category, lab.Progress)
	}
}
