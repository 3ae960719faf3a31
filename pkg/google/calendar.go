package google

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"github.com/harrisonrobin/studyboard/pkg/colors"
	"github.com/harrisonrobin/studyboard/pkg/index"
	"github.com/harrisonrobin/studyboard/pkg/model"
	"github.com/harrisonrobin/studyboard/pkg/overdue"
	"github.com/harrisonrobin/studyboard/pkg/util"
)

// Action is what a sync did to a task's event.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionUnchanged Action = "unchanged"
	ActionDeleted   Action = "deleted"
)

// CalendarClient mirrors tasks into one Google calendar.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
	index      *index.EventIndex
	palette    *colors.Palette
	watch      *overdue.Table
}

// NewCalendarClient creates a new Google Calendar client. idx, palette and
// watch are optional.
func NewCalendarClient(srv *calendar.Service, calendarID string, idx *index.EventIndex, palette *colors.Palette, watch *overdue.Table) *CalendarClient {
	return &CalendarClient{srv: srv, calendarID: calendarID, index: idx, palette: palette, watch: watch}
}

// CalendarID returns the ID of the mirrored calendar.
func (c *CalendarClient) CalendarID() string {
	return c.calendarID
}

// SyncTask creates the task's event or patches it when it drifted.
func (c *CalendarClient) SyncTask(ctx context.Context, task model.Task) (*calendar.Event, Action, error) {
	event, err := util.ConvertTaskToCalendarEvent(task, c.palette)
	if err != nil {
		return nil, "", err
	}

	existingEvent, err := c.findEvent(ctx, task.ID)
	if err != nil {
		return nil, "", fmt.Errorf("error searching for event: %w", err)
	}

	if existingEvent != nil {
		patch, err := util.EventNeedsUpdate(existingEvent, event)
		if err != nil {
			log.Printf("could not compare task with its calendar event: %v", err)
			return nil, "", err
		}
		if patch == nil {
			c.remember(task, existingEvent)
			return existingEvent, ActionUnchanged, nil
		}
		updatedEvent, err := c.PatchEvent(ctx, existingEvent.Id, patch)
		if err != nil {
			return nil, "", err
		}
		c.remember(task, updatedEvent)
		return updatedEvent, ActionUpdated, nil
	}

	createdEvent, err := c.srv.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, "", err
	}
	c.remember(task, createdEvent)
	return createdEvent, ActionCreated, nil
}

func (c *CalendarClient) remember(task model.Task, event *calendar.Event) {
	if c.index != nil {
		c.index.Set(task.ID, event.Id)
	}
	if c.watch != nil {
		if task.Status == model.StatusPending {
			c.watch.Update(task.ID, event.Id, task.Title, task.Deadline)
		} else {
			c.watch.Remove(task.ID)
		}
	}
}

func (c *CalendarClient) forget(taskID string) {
	if c.index != nil {
		c.index.Remove(taskID)
	}
	if c.watch != nil {
		c.watch.Remove(taskID)
	}
}

// findEvent tries the local index first and falls back to an API search.
// An indexed event that carries another task's ID is ignored.
func (c *CalendarClient) findEvent(ctx context.Context, taskID string) (*calendar.Event, error) {
	if c.index != nil {
		if eventID := c.index.Get(taskID); eventID != "" {
			event, err := c.srv.Events.Get(c.calendarID, eventID).Context(ctx).Do()
			if err == nil && event.Status != "cancelled" {
				owner, _ := util.GetTaskIDFromEvent(event)
				if owner == taskID {
					return event, nil
				}
				log.Printf("Warning: indexed event %s belongs to task %q, not %s", eventID, owner, taskID)
			}
		}
	}
	return c.GetEventByTaskID(ctx, taskID)
}

// DeleteTask removes the event of a deleted task. A task without an
// event is not an error.
func (c *CalendarClient) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	event, err := c.findEvent(ctx, taskID)
	if err != nil {
		return false, err
	}
	if event == nil {
		c.forget(taskID)
		return false, nil
	}
	if err := c.DeleteEvent(ctx, event.Id); err != nil && !isGone(err) {
		return false, err
	}
	c.forget(taskID)
	return true, nil
}

// Report summarizes a Reconcile run.
type Report struct {
	Created   int
	Updated   int
	Unchanged int
	Deleted   int
	Failed    map[string]error
}

func (r Report) String() string {
	return fmt.Sprintf("%d created, %d updated, %d unchanged, %d deleted, %d failed",
		r.Created, r.Updated, r.Unchanged, r.Deleted, len(r.Failed))
}

// Reconcile brings the calendar in line with tasks: every task gets a
// current event and indexed events whose task is gone are deleted.
// Failures are collected per task and do not stop the run.
func (c *CalendarClient) Reconcile(ctx context.Context, tasks []model.Task) Report {
	report := Report{Failed: make(map[string]error)}
	live := make(map[string]bool, len(tasks))

	for _, task := range tasks {
		live[task.ID] = true
		_, action, err := c.SyncTask(ctx, task)
		if err != nil {
			log.Printf("Warning: could not sync task %s: %v", task.ID, err)
			report.Failed[task.ID] = err
			continue
		}
		switch action {
		case ActionCreated:
			report.Created++
		case ActionUpdated:
			report.Updated++
		default:
			report.Unchanged++
		}
	}

	if c.index != nil {
		for _, taskID := range c.index.TaskIDs() {
			if live[taskID] {
				continue
			}
			deleted, err := c.DeleteTask(ctx, taskID)
			if err != nil {
				log.Printf("Warning: could not delete event of task %s: %v", taskID, err)
				report.Failed[taskID] = err
				continue
			}
			if deleted {
				report.Deleted++
			}
		}
	}
	return report
}

// Sweep marks the events of tasks whose deadline passed since the last
// sync as overdue, without loading the task list. Entries whose patch
// fails stay watched for the next sweep.
func (c *CalendarClient) Sweep(ctx context.Context, now time.Time) (int, error) {
	if c.watch == nil {
		return 0, nil
	}
	var errs []error
	patched := 0
	for _, e := range c.watch.Due(now) {
		patch := &calendar.Event{Summary: "! " + e.Title}
		if _, err := c.PatchEvent(ctx, e.EventID, patch); err != nil {
			if isGone(err) {
				c.watch.Remove(e.TaskID)
				continue
			}
			log.Printf("Sweep: error patching event %s: %v", e.EventID, err)
			errs = append(errs, err)
			continue
		}
		c.watch.Remove(e.TaskID)
		patched++
	}
	return patched, errors.Join(errs...)
}

// PatchEvent performs a partial update on an event.
func (c *CalendarClient) PatchEvent(ctx context.Context, eventID string, patch *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Patch(c.calendarID, eventID, patch).Context(ctx).Do()
}

// DeleteEvent deletes an event from the calendar.
func (c *CalendarClient) DeleteEvent(ctx context.Context, eventID string) error {
	return c.srv.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
}

// GetEventByTaskID searches for the event carrying the task ID in its
// private extended properties.
func (c *CalendarClient) GetEventByTaskID(ctx context.Context, taskID string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", util.TaskIDProperty, taskID)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}

func isGone(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && (gerr.Code == http.StatusNotFound || gerr.Code == http.StatusGone)
}
