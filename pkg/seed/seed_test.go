package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/studyboard/pkg/clock"
	"github.com/harrisonrobin/studyboard/pkg/model"
	"github.com/harrisonrobin/studyboard/pkg/store"
)

var now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestParseWhen(t *testing.T) {
	testCases := []struct {
		in   string
		want time.Time
	}{
		{"now", now},
		{"today", now},
		{"+3d", now.Add(72 * time.Hour)},
		{"-1d", now.Add(-24 * time.Hour)},
		{"+12h", now.Add(12 * time.Hour)},
		{"+1d6h30m", now.Add(30*time.Hour + 30*time.Minute)},
		{"2026-01-10T08:30:00Z", time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		w, err := ParseWhen(tc.in)
		if err != nil {
			t.Errorf("ParseWhen(%q) returned error: %v", tc.in, err)
			continue
		}
		if got := w.Resolve(now); !got.Equal(tc.want) {
			t.Errorf("ParseWhen(%q): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestParseWhenDateOnlyIsLocal(t *testing.T) {
	w, err := ParseWhen("2026-01-10")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := time.Date(2026, 1, 10, 0, 0, 0, 0, time.Local)
	if got := w.Resolve(now); !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseWhenRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "+", "+3x", "+3d junk", "tomorrow", "2026-13-01"} {
		if _, err := ParseWhen(in); err == nil {
			t.Errorf("Expected error for %q", in)
		}
	}
}

func TestDefaultBundle(t *testing.T) {
	ds := Default(now)

	counts := map[string]int{
		"tasks":       len(ds.Tasks),
		"handwritten": len(ds.HandwrittenAssignments),
		"online":      len(ds.OnlineAssignments),
		"exams":       len(ds.Exams),
		"projects":    len(ds.Projects),
		"subjects":    len(ds.Subjects),
		"timetable":   len(ds.Timetable),
		"hackathons":  len(ds.Hackathons),
	}
	want := map[string]int{
		"tasks": 7, "handwritten": 2, "online": 1, "exams": 2,
		"projects": 2, "subjects": 3, "timetable": 9, "hackathons": 1,
	}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("Expected %d %s, got %d", n, k, counts[k])
		}
	}

	if got := ds.Tasks[5].Deadline; !got.Equal(now.Add(-24 * time.Hour)) {
		t.Errorf("Expected the PPT task due yesterday, got %v", got)
	}
	step := ds.Projects[0].Tasks[2]
	if step.Deadline == nil || !step.Deadline.Equal(now.Add(14*24*time.Hour)) || step.TaskID != "4" {
		t.Errorf("Unexpected linked project step %+v", step)
	}
	if ds.Projects[0].Tasks[0].Deadline != nil {
		t.Error("Expected steps without a deadline to stay nil")
	}
	if ds.Timetable[0].Day != model.Monday || ds.Timetable[0].StartTime != "09:00" {
		t.Errorf("Unexpected first timetable entry %+v", ds.Timetable[0])
	}
	if note := ds.Subjects[0].Notes[0]; note.UploadDate.Year() != 2026 || note.UploadDate.Month() != time.January {
		t.Errorf("Unexpected note upload date %v", note.UploadDate)
	}
}

func TestDefaultBundleSeedsStore(t *testing.T) {
	s := store.New(clock.NewFake(now))
	if err := s.Seed(Default(now)); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	ppt, ok := s.Task("6")
	if !ok {
		t.Fatal("Expected task 6 to be seeded")
	}
	// 40 (overdue) + 10 (progress 60) + 5 (PPT)
	if ppt.Status != model.StatusOverdue || ppt.Priority != model.PriorityCritical {
		t.Errorf("Expected Overdue/Critical, got %s/%s", ppt.Status, ppt.Priority)
	}

	lab, _ := s.Task("1")
	// 25 (exactly a day out) + 10 (progress 65) + 7 (Lab File)
	if lab.Priority != model.PriorityHigh {
		t.Errorf("Expected High, got %s", lab.Priority)
	}

	h, _ := s.Hackathon("1")
	hackTask, _ := s.Task(h.TaskID)
	if hackTask.Progress != 25 {
		t.Errorf("Expected hackathon task at 25%%, got %d", hackTask.Progress)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("tasks:\n  - id: \"1\"\n    colour: red\n"), now)
	if err == nil {
		t.Fatal("Expected error for unknown field")
	}
}

func TestLoadReportsBadDateLine(t *testing.T) {
	_, err := Load(strings.NewReader("tasks:\n  - id: \"1\"\n    deadline: soonish\n"), now)
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("Expected error mentioning line 3, got %v", err)
	}
}

func TestLoadEmpty(t *testing.T) {
	ds, err := Load(strings.NewReader(""), now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(ds.Tasks) != 0 {
		t.Errorf("Expected empty dataset, got %d tasks", len(ds.Tasks))
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := "hackathons:\n  - id: h\n    name: Hack\n    start_date: now\n    end_date: +2d\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadFile(path, now)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if len(ds.Hackathons) != 1 || !ds.Hackathons[0].EndDate.Equal(now.Add(48*time.Hour)) {
		t.Errorf("Unexpected hackathons %+v", ds.Hackathons)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), now); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestWhenMarshalYAML(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"now", "now"},
		{"+3d", "+3d"},
		{"-1d", "-1d"},
		{"+1d6h30m", "+1d6h30m"},
		{"+90m", "+1h30m"},
		{"2026-01-10T08:30:00Z", "2026-01-10T08:30:00Z"},
	}
	for _, tc := range testCases {
		w, err := ParseWhen(tc.in)
		if err != nil {
			t.Fatalf("ParseWhen(%q) returned error: %v", tc.in, err)
		}
		got, err := w.MarshalYAML()
		if err != nil || got != tc.want {
			t.Errorf("MarshalYAML(%q): expected %q, got %v (%v)", tc.in, tc.want, got, err)
		}
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	deadline := time.Date(2026, 3, 4, 20, 0, 0, 0, time.Local)
	tasks := []model.Task{{
		ID: "imp-1", Title: "Quiz revision", Category: model.CategoryExamPrep,
		Deadline: deadline, Progress: 30, Status: model.StatusPending, Priority: model.PriorityHigh,
	}}

	path := filepath.Join(t.TempDir(), "state", "imports.yaml")
	if err := SaveFile(path, FromTasks(tasks)); err != nil {
		t.Fatalf("SaveFile returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "priority") || strings.Contains(string(data), "exams") {
		t.Errorf("Expected only caller-settable task fields, got:\n%s", data)
	}

	ds, err := LoadFile(path, now.Add(30*24*time.Hour))
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if len(ds.Tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(ds.Tasks))
	}
	got := ds.Tasks[0]
	if got.ID != "imp-1" || got.Category != model.CategoryExamPrep || got.Progress != 30 {
		t.Errorf("Unexpected task after reload %+v", got)
	}
	if !got.Deadline.Equal(deadline) {
		t.Errorf("Expected absolute deadline %v, got %v", deadline, got.Deadline)
	}
}
