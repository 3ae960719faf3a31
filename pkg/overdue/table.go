// Package overdue remembers which mirrored events belong to pending tasks
// so their calendar titles can be flagged once the deadline passes, even
// between full syncs.
package overdue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Entry is one pending task awaiting its deadline.
type Entry struct {
	TaskID   string    `json:"-"`
	EventID  string    `json:"event_id"`
	Title    string    `json:"title"`
	Deadline time.Time `json:"deadline"`
}

// Table is the deadline watch, keyed by task ID.
type Table struct {
	Entries map[string]Entry `json:"entries"`
	path    string
	dirty   bool
}

// NewTable opens the watch under ~/.config/studyboard.
func NewTable() (*Table, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewTableAt(filepath.Join(home, ".config", "studyboard", "pending_tasks.json"))
}

// NewTableAt opens the table stored at path. An empty path keeps the
// table in memory only.
func NewTableAt(path string) (*Table, error) {
	t := &Table{path: path, Entries: make(map[string]Entry)}
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	if t.Entries == nil {
		t.Entries = make(map[string]Entry)
	}
	for id, e := range t.Entries {
		e.TaskID = id
		t.Entries[id] = e
	}
	return t, nil
}

func (t *Table) Save() error {
	if !t.dirty || t.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(t.path, data, 0600); err != nil {
		return err
	}
	t.dirty = false
	return nil
}

// Update tracks a pending task's event. A zero deadline removes it.
func (t *Table) Update(taskID, eventID, title string, deadline time.Time) {
	if deadline.IsZero() {
		t.Remove(taskID)
		return
	}
	next := Entry{TaskID: taskID, EventID: eventID, Title: title, Deadline: deadline}
	old, ok := t.Entries[taskID]
	if ok && old.EventID == next.EventID && old.Title == next.Title && old.Deadline.Equal(next.Deadline) {
		return
	}
	t.Entries[taskID] = next
	t.dirty = true
}

func (t *Table) Remove(taskID string) {
	if _, ok := t.Entries[taskID]; ok {
		delete(t.Entries, taskID)
		t.dirty = true
	}
}

// Due returns the entries whose deadline is strictly before now, earliest
// first. They stay in the table until removed.
func (t *Table) Due(now time.Time) []Entry {
	var due []Entry
	for _, e := range t.Entries {
		if e.Deadline.Before(now) {
			due = append(due, e)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].Deadline.Equal(due[j].Deadline) {
			return due[i].TaskID < due[j].TaskID
		}
		return due[i].Deadline.Before(due[j].Deadline)
	})
	return due
}
