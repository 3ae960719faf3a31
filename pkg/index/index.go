// Package index remembers which calendar event mirrors which task, so a sync
// can find an event without searching the calendar.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

const (
	xdgAppName = "studyboard"
	indexFile  = "events.json"
)

// indexDoc is the on-disk layout.
type indexDoc struct {
	Events map[string]string `json:"events"`
}

// EventIndex maps task IDs to the calendar events mirroring them.
type EventIndex struct {
	path   string
	mu     sync.RWMutex
	events map[string]string
	dirty  bool
}

// NewEventIndex opens the index under ~/.config/studyboard.
func NewEventIndex() (*EventIndex, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewAt(filepath.Join(home, ".config", xdgAppName, indexFile))
}

// NewAt opens the index stored at path, starting empty if it does not exist.
func NewAt(path string) (*EventIndex, error) {
	idx := &EventIndex{path: path, events: make(map[string]string)}
	if err := idx.load(); err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *EventIndex) load() error {
	data, err := os.ReadFile(idx.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var doc indexDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("corrupt event index %s: %w", idx.path, err)
	}
	if doc.Events != nil {
		idx.events = doc.Events
	}
	return nil
}

// Save writes the index if it changed since it was opened. The file is
// replaced through a rename so an interrupted save keeps the old copy.
func (idx *EventIndex) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !idx.dirty {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(idx.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(indexDoc{Events: idx.events}, "", "  ")
	if err != nil {
		return err
	}
	tmp := idx.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, idx.path); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

// Get returns the event ID recorded for taskID, or "".
func (idx *EventIndex) Get(taskID string) string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.events[taskID]
}

func (idx *EventIndex) Set(taskID, eventID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.events[taskID] != eventID {
		idx.events[taskID] = eventID
		idx.dirty = true
	}
}

func (idx *EventIndex) Remove(taskID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, ok := idx.events[taskID]; ok {
		delete(idx.events, taskID)
		idx.dirty = true
	}
}

// Len reports how many tasks are indexed.
func (idx *EventIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.events)
}

// TaskIDs lists every indexed task ID in sorted order.
func (idx *EventIndex) TaskIDs() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	ids := make([]string, 0, len(idx.events))
	for id := range idx.events {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
