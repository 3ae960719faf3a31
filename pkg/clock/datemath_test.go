package clock

import (
	"testing"
	"time"
)

func TestCountdown(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"past", now.Add(-time.Minute), "Overdue"},
		{"days", now.Add(3*day + 4*time.Hour + 10*time.Minute), "3d 4h"},
		{"hours", now.Add(4*time.Hour + 12*time.Minute), "4h 12m"},
		{"minutes", now.Add(12 * time.Minute), "12m"},
		{"now", now, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Countdown(now, tt.at); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDaysAndHoursUntil(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	if got := DaysUntil(now, now.Add(36*time.Hour)); got != 1.5 {
		t.Errorf("Expected 1.5 days, got %v", got)
	}
	if got := HoursUntil(now, now.Add(-2*time.Hour)); got != -2 {
		t.Errorf("Expected -2 hours, got %v", got)
	}
	if !IsPast(now, now.Add(-time.Nanosecond)) {
		t.Error("Expected an instant before now to be in the past")
	}
	if IsPast(now, now) {
		t.Error("Expected now itself not to be in the past")
	}
}

func TestDayNameAndSameDay(t *testing.T) {
	monday := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)
	if got := DayName(monday); got != "Monday" {
		t.Errorf("Expected Monday, got %s", got)
	}
	if !SameDay(monday, monday.Add(-23*time.Hour)) {
		t.Error("Expected both instants on the same day")
	}
	if SameDay(monday, monday.Add(time.Hour)) {
		t.Error("Expected the next day to differ")
	}
}

func TestFake(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	f := NewFake(start)
	f.Advance(time.Hour)
	if got := f.Now(); !got.Equal(start.Add(time.Hour)) {
		t.Errorf("Expected %v, got %v", start.Add(time.Hour), got)
	}
	f.Set(start)
	if got := f.Now(); !got.Equal(start) {
		t.Errorf("Expected %v, got %v", start, got)
	}
}
