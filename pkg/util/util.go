package util

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/studyboard/pkg/clock"
	"github.com/harrisonrobin/studyboard/pkg/colors"
	"github.com/harrisonrobin/studyboard/pkg/model"
)

// TaskIDProperty is the private extended property linking an event to its task.
const TaskIDProperty = "studyboard_task_id"

// EventDuration is how long before its deadline a task's event starts.
const EventDuration = 30 * time.Minute

// EventNeedsUpdate returns a patch event if the mirrored fields of existing
// differ from target, or nil when the event is current.
func EventNeedsUpdate(existingEvent *calendar.Event, targetEvent *calendar.Event) (*calendar.Event, error) {
	patch := &calendar.Event{}
	needsUpdate := false

	if existingEvent.Summary != targetEvent.Summary {
		patch.Summary = targetEvent.Summary
		needsUpdate = true
	}
	if existingEvent.Description != targetEvent.Description {
		patch.Description = targetEvent.Description
		needsUpdate = true
	}
	if existingEvent.ColorId != targetEvent.ColorId {
		patch.ColorId = targetEvent.ColorId
		needsUpdate = true
	}

	if existingEvent.Start == nil || existingEvent.End == nil {
		patch.Start = targetEvent.Start
		patch.End = targetEvent.End
		return patch, nil
	}
	existingStartTime, err := time.Parse(time.RFC3339, existingEvent.Start.DateTime)
	if err != nil {
		return nil, err
	}
	targetStartTime, err := time.Parse(time.RFC3339, targetEvent.Start.DateTime)
	if err != nil {
		return nil, err
	}
	existingEndTime, err := time.Parse(time.RFC3339, existingEvent.End.DateTime)
	if err != nil {
		return nil, err
	}
	targetEndTime, err := time.Parse(time.RFC3339, targetEvent.End.DateTime)
	if err != nil {
		return nil, err
	}

	if !existingStartTime.Equal(targetStartTime) || !existingEndTime.Equal(targetEndTime) {
		patch.Start = targetEvent.Start
		patch.End = targetEvent.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch, nil
	}
	return nil, nil
}

// EventSummary prefixes the title with ✓ when completed and ! when overdue.
func EventSummary(task model.Task) string {
	switch task.Status {
	case model.StatusCompleted:
		return "✓ " + task.Title
	case model.StatusOverdue:
		return "! " + task.Title
	default:
		return task.Title
	}
}

// ConvertTaskToCalendarEvent builds the event mirroring task. The event
// ends at the deadline. Colors come from palette by subject, or by
// category for tasks without one.
func ConvertTaskToCalendarEvent(task model.Task, palette *colors.Palette) (*calendar.Event, error) {
	if task.Deadline.IsZero() {
		return nil, fmt.Errorf("task has no deadline: %s", task.ID)
	}

	colorID := colors.NoSubjectColor
	if palette != nil {
		key := task.Subject
		if key == "" {
			key = string(task.Category)
		}
		colorID = palette.ColorFor(key)
	}

	end := task.Deadline
	start := end.Add(-EventDuration)

	var descBuilder strings.Builder
	descBuilder.WriteString(fmt.Sprintf("Category: %s\n", task.Category))
	if task.Subject != "" {
		descBuilder.WriteString(fmt.Sprintf("Subject: %s\n", task.Subject))
	}
	descBuilder.WriteString(fmt.Sprintf("Status: %s\n", task.Status))
	descBuilder.WriteString(fmt.Sprintf("Priority: %s\n", task.Priority))
	descBuilder.WriteString(fmt.Sprintf("Progress: %d%%\n", task.Progress))
	descBuilder.WriteString(fmt.Sprintf("Due: %s\n", clock.FormatDateTime(task.Deadline)))
	if task.IsShadow() {
		descBuilder.WriteString(fmt.Sprintf("Source: %s %s\n", task.SourceType, task.SourceID))
	}
	descBuilder.WriteString(fmt.Sprintf("ID: %s\n", task.ID))

	if task.Description != "" {
		descBuilder.WriteString("\nNotes:\n")
		descBuilder.WriteString(task.Description)
		descBuilder.WriteString("\n")
	}

	event := &calendar.Event{
		Summary: EventSummary(task),
		ColorId: colorID,
		Start: &calendar.EventDateTime{
			DateTime: start.UTC().Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: end.UTC().Format(time.RFC3339),
		},
		Description: descBuilder.String(),
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				TaskIDProperty: task.ID,
			},
		},
	}
	return event, nil
}

// GetTaskIDFromEvent returns the task ID an event was created for.
func GetTaskIDFromEvent(event *calendar.Event) (string, bool) {
	if event == nil || event.ExtendedProperties == nil {
		return "", false
	}
	id, ok := event.ExtendedProperties.Private[TaskIDProperty]
	return id, ok && id != ""
}
