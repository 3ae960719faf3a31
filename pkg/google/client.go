package google

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/harrisonrobin/studyboard/pkg/auth"
	"github.com/harrisonrobin/studyboard/pkg/colors"
	"github.com/harrisonrobin/studyboard/pkg/index"
	"github.com/harrisonrobin/studyboard/pkg/overdue"
)

// Scopes are the OAuth scopes the calendar mirror needs.
var Scopes = []string{
	calendar.CalendarEventsScope,
	calendar.CalendarReadonlyScope,
}

// NewClient authenticates with the stored token and opens the calendar
// named calendarName.
func NewClient(ctx context.Context, calendarName string, idx *index.EventIndex, palette *colors.Palette, watch *overdue.Table) (*CalendarClient, error) {
	client, err := auth.GetClient(ctx, Scopes)
	if err != nil {
		return nil, err
	}
	return Connect(ctx, calendarName, idx, palette, watch, option.WithHTTPClient(client))
}

// Connect opens the calendar named calendarName with the given client
// options.
func Connect(ctx context.Context, calendarName string, idx *index.EventIndex, palette *colors.Palette, watch *overdue.Table, opts ...option.ClientOption) (*CalendarClient, error) {
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Calendar client: %w", err)
	}

	calendarID, err := findCalendar(ctx, srv, calendarName)
	if err != nil {
		return nil, err
	}
	return NewCalendarClient(srv, calendarID, idx, palette, watch), nil
}

func findCalendar(ctx context.Context, srv *calendar.Service, name string) (string, error) {
	var calendarID string
	err := srv.CalendarList.List().Pages(ctx, func(list *calendar.CalendarList) error {
		for _, item := range list.Items {
			if item.Summary == name && calendarID == "" {
				calendarID = item.Id
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	if calendarID == "" {
		return "", fmt.Errorf("calendar '%s' not found", name)
	}
	return calendarID, nil
}
