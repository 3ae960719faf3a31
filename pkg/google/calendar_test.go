package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/harrisonrobin/studyboard/pkg/colors"
	"github.com/harrisonrobin/studyboard/pkg/index"
	"github.com/harrisonrobin/studyboard/pkg/model"
	"github.com/harrisonrobin/studyboard/pkg/overdue"
	"github.com/harrisonrobin/studyboard/pkg/util"
)

var now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// fakeCalendar serves the subset of the Calendar API the client uses.
type fakeCalendar struct {
	mu     sync.Mutex
	events map[string]*calendar.Event
	nextID int
	// patchStatus, when set, fails every PATCH with that status code.
	patchStatus int
}

func (f *fakeCalendar) failPatches(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patchStatus = status
}

func newFakeCalendar(t *testing.T) *httptest.Server {
	return serveCalendar(t, &fakeCalendar{events: make(map[string]*calendar.Event)})
}

func serveCalendar(t *testing.T, f *fakeCalendar) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /users/me/calendarList", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, &calendar.CalendarList{Items: []*calendar.CalendarListEntry{
			{Id: "work", Summary: "Work"},
			{Id: "study", Summary: "Study"},
		}})
	})

	mux.HandleFunc("GET /calendars/{cal}/events", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var items []*calendar.Event
		filter := r.URL.Query().Get("privateExtendedProperty")
		for _, e := range f.events {
			if filter != "" {
				key, value, _ := strings.Cut(filter, "=")
				if e.ExtendedProperties == nil || e.ExtendedProperties.Private[key] != value {
					continue
				}
			}
			items = append(items, e)
		}
		writeJSON(w, &calendar.Events{Items: items})
	})

	mux.HandleFunc("POST /calendars/{cal}/events", func(w http.ResponseWriter, r *http.Request) {
		var e calendar.Event
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.nextID++
		e.Id = fmt.Sprintf("evt-%d", f.nextID)
		f.events[e.Id] = &e
		f.mu.Unlock()
		writeJSON(w, &e)
	})

	mux.HandleFunc("GET /calendars/{cal}/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		e, ok := f.events[r.PathValue("id")]
		if !ok {
			http.Error(w, `{"error":{"code":404,"message":"Not Found"}}`, http.StatusNotFound)
			return
		}
		writeJSON(w, e)
	})

	mux.HandleFunc("PATCH /calendars/{cal}/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		var patch calendar.Event
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.patchStatus != 0 {
			http.Error(w, fmt.Sprintf(`{"error":{"code":%d,"message":"Unavailable"}}`, f.patchStatus), f.patchStatus)
			return
		}
		e, ok := f.events[r.PathValue("id")]
		if !ok {
			http.Error(w, `{"error":{"code":404,"message":"Not Found"}}`, http.StatusNotFound)
			return
		}
		if patch.Summary != "" {
			e.Summary = patch.Summary
		}
		if patch.Description != "" {
			e.Description = patch.Description
		}
		if patch.ColorId != "" {
			e.ColorId = patch.ColorId
		}
		if patch.Start != nil {
			e.Start = patch.Start
		}
		if patch.End != nil {
			e.End = patch.End
		}
		writeJSON(w, e)
	})

	mux.HandleFunc("DELETE /calendars/{cal}/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := r.PathValue("id")
		if _, ok := f.events[id]; !ok {
			http.Error(w, `{"error":{"code":404,"message":"Not Found"}}`, http.StatusNotFound)
			return
		}
		delete(f.events, id)
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func connect(t *testing.T, srv *httptest.Server, idx *index.EventIndex, watch *overdue.Table) *CalendarClient {
	t.Helper()
	palette, _ := colors.NewPalette("")
	c, err := Connect(context.Background(), "Study", idx, palette, watch,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	return c
}

func sampleTasks() []model.Task {
	return []model.Task{
		{
			ID: "t1", Title: "Data Structures Lab 5", Category: model.CategoryLabFile,
			Subject: "Data Structures", Deadline: now.Add(24 * time.Hour), Progress: 65,
			Status: model.StatusPending, Priority: model.PriorityHigh,
		},
		{
			ID: "t2", Title: "Web Development PPT", Category: model.CategoryPPT,
			Subject: "Web Development", Deadline: now.Add(-24 * time.Hour), Progress: 100,
			Status: model.StatusCompleted, Priority: model.PriorityLow,
		},
	}
}

func TestConnectFindsCalendarByName(t *testing.T) {
	srv := newFakeCalendar(t)
	c := connect(t, srv, nil, nil)
	if c.CalendarID() != "study" {
		t.Errorf("Expected calendar id study, got %q", c.CalendarID())
	}

	_, err := Connect(context.Background(), "Missing", nil, nil, nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	if err == nil {
		t.Error("Expected error for an unknown calendar")
	}
}

func TestReconcile(t *testing.T) {
	srv := newFakeCalendar(t)
	idx, _ := index.NewAt(t.TempDir() + "/events.json")
	watch, _ := overdue.NewTableAt("")
	c := connect(t, srv, idx, watch)
	ctx := context.Background()
	tasks := sampleTasks()

	report := c.Reconcile(ctx, tasks)
	if report.Created != 2 || len(report.Failed) != 0 {
		t.Fatalf("Expected 2 created, got %s", report)
	}
	if len(idx.TaskIDs()) != 2 {
		t.Errorf("Expected 2 indexed tasks, got %v", idx.TaskIDs())
	}
	if _, ok := watch.Entries["t1"]; !ok || len(watch.Entries) != 1 {
		t.Errorf("Expected only the pending task to be watched, got %+v", watch.Entries)
	}

	event, err := c.GetEventByTaskID(ctx, "t2")
	if err != nil || event == nil {
		t.Fatalf("Expected to find the event of t2, got %v (%v)", event, err)
	}
	if event.Summary != "✓ Web Development PPT" {
		t.Errorf("Unexpected summary %q", event.Summary)
	}

	if report := c.Reconcile(ctx, tasks); report.Unchanged != 2 || report.Created != 0 || report.Updated != 0 {
		t.Errorf("Expected a second run to change nothing, got %s", report)
	}

	tasks[0].Title = "Data Structures Lab 5 (final)"
	if report := c.Reconcile(ctx, tasks); report.Updated != 1 || report.Unchanged != 1 {
		t.Errorf("Expected 1 updated, got %s", report)
	}

	if report := c.Reconcile(ctx, tasks[:1]); report.Deleted != 1 {
		t.Errorf("Expected 1 deleted, got %s", report)
	}
	if event, _ := c.GetEventByTaskID(ctx, "t2"); event != nil {
		t.Error("Expected the event of t2 to be gone")
	}
	if got := idx.Get("t2"); got != "" {
		t.Errorf("Expected t2 to leave the index, got %q", got)
	}
}

func TestSyncTaskWithoutIndexFallsBackToSearch(t *testing.T) {
	srv := newFakeCalendar(t)
	c := connect(t, srv, nil, nil)
	ctx := context.Background()
	task := sampleTasks()[0]

	created, action, err := c.SyncTask(ctx, task)
	if err != nil || action != ActionCreated {
		t.Fatalf("Expected created, got %s (%v)", action, err)
	}
	if id, _ := util.GetTaskIDFromEvent(created); id != task.ID {
		t.Errorf("Expected event linked to %s, got %q", task.ID, id)
	}

	again, action, err := c.SyncTask(ctx, task)
	if err != nil || action != ActionUnchanged || again.Id != created.Id {
		t.Errorf("Expected the existing event to be found, got %s (%v)", action, err)
	}
}

func TestDeleteTask(t *testing.T) {
	srv := newFakeCalendar(t)
	c := connect(t, srv, nil, nil)
	ctx := context.Background()

	deleted, err := c.DeleteTask(ctx, "unknown")
	if err != nil || deleted {
		t.Errorf("Expected no-op for an unknown task, got %v (%v)", deleted, err)
	}

	task := sampleTasks()[0]
	if _, _, err := c.SyncTask(ctx, task); err != nil {
		t.Fatal(err)
	}
	deleted, err = c.DeleteTask(ctx, task.ID)
	if err != nil || !deleted {
		t.Errorf("Expected the event to be deleted, got %v (%v)", deleted, err)
	}
}

func TestSweepFlagsOverdueEvents(t *testing.T) {
	srv := newFakeCalendar(t)
	watch, _ := overdue.NewTableAt("")
	c := connect(t, srv, nil, watch)
	ctx := context.Background()

	task := sampleTasks()[0]
	if _, _, err := c.SyncTask(ctx, task); err != nil {
		t.Fatal(err)
	}

	if n, err := c.Sweep(ctx, now); err != nil || n != 0 {
		t.Errorf("Expected nothing to sweep before the deadline, got %d (%v)", n, err)
	}
	n, err := c.Sweep(ctx, task.Deadline.Add(time.Minute))
	if err != nil || n != 1 {
		t.Fatalf("Expected 1 swept event, got %d (%v)", n, err)
	}

	event, _ := c.GetEventByTaskID(ctx, task.ID)
	if event == nil || event.Summary != "! "+task.Title {
		t.Errorf("Expected overdue summary, got %+v", event)
	}
}

func TestSweepKeepsEntryWhenPatchFails(t *testing.T) {
	f := &fakeCalendar{events: make(map[string]*calendar.Event)}
	srv := serveCalendar(t, f)
	watch, _ := overdue.NewTableAt("")
	c := connect(t, srv, nil, watch)
	ctx := context.Background()

	task := sampleTasks()[0]
	if _, _, err := c.SyncTask(ctx, task); err != nil {
		t.Fatal(err)
	}
	late := task.Deadline.Add(time.Minute)

	f.failPatches(http.StatusServiceUnavailable)
	n, err := c.Sweep(ctx, late)
	if err == nil || n != 0 {
		t.Errorf("Expected a failed sweep, got %d (%v)", n, err)
	}
	if _, ok := watch.Entries[task.ID]; !ok {
		t.Fatal("Expected the entry to stay watched after a failed patch")
	}

	f.failPatches(0)
	if n, err := c.Sweep(ctx, late); err != nil || n != 1 {
		t.Errorf("Expected the retry to flag 1 event, got %d (%v)", n, err)
	}
	if len(watch.Entries) != 0 {
		t.Errorf("Expected the entry to be dropped once flagged, got %+v", watch.Entries)
	}
}

func TestIndexedEventOfAnotherTaskIsIgnored(t *testing.T) {
	srv := newFakeCalendar(t)
	idx, _ := index.NewAt(t.TempDir() + "/events.json")
	c := connect(t, srv, idx, nil)
	ctx := context.Background()
	tasks := sampleTasks()

	if report := c.Reconcile(ctx, tasks); report.Created != 2 {
		t.Fatalf("Expected 2 created, got %s", report)
	}
	own := idx.Get("t1")
	idx.Set("t1", idx.Get("t2"))

	event, action, err := c.SyncTask(ctx, tasks[0])
	if err != nil || action != ActionUnchanged {
		t.Fatalf("Expected the task's own event unchanged, got %s (%v)", action, err)
	}
	if event.Id != own || idx.Get("t1") != own {
		t.Errorf("Expected index repaired to %s, got event %s index %s", own, event.Id, idx.Get("t1"))
	}
	other, _ := c.GetEventByTaskID(ctx, "t2")
	if other == nil || other.Summary != "✓ Web Development PPT" {
		t.Errorf("Expected the other task's event untouched, got %+v", other)
	}
}
