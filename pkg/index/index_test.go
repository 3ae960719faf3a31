package index

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEventIndexRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "events.json")
	idx, err := NewAt(path)
	if err != nil {
		t.Fatalf("NewAt returned error: %v", err)
	}

	idx.Set("task-b", "event-2")
	idx.Set("task-a", "event-1")
	if err := idx.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	reloaded, err := NewAt(path)
	if err != nil {
		t.Fatalf("NewAt returned error: %v", err)
	}
	if got := reloaded.Get("task-a"); got != "event-1" {
		t.Errorf("Expected event-1, got %q", got)
	}
	if reloaded.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", reloaded.Len())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected the temporary file to be renamed away")
	}
	ids := reloaded.TaskIDs()
	if len(ids) != 2 || ids[0] != "task-a" || ids[1] != "task-b" {
		t.Errorf("Expected [task-a task-b], got %v", ids)
	}
}

func TestSaveSkipsCleanIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	idx, _ := NewAt(path)
	if err := idx.Save(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected no file to be written for an unchanged index")
	}

	idx.Set("a", "1")
	idx.Set("a", "1")
	idx.Remove("missing")
	idx.Remove("a")
	if got := idx.Get("a"); got != "" {
		t.Errorf("Expected removed mapping, got %q", got)
	}
}

func TestNewAtRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewAt(path); err == nil {
		t.Error("Expected error for a corrupt index")
	}
}
