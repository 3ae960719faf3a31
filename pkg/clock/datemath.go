package clock

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// HoursUntil returns the fractional number of hours from now to t.
// Negative when t is in the past.
func HoursUntil(now, t time.Time) float64 {
	return t.Sub(now).Hours()
}

// DaysUntil returns the fractional number of days from now to t.
func DaysUntil(now, t time.Time) float64 {
	return float64(t.Sub(now)) / float64(day)
}

// IsPast reports whether t is strictly before now.
func IsPast(now, t time.Time) bool {
	return t.Before(now)
}

// DayName returns the English weekday name of t, e.g. "Monday".
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// SameDay reports whether a and b fall on the same calendar date in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Countdown renders the time remaining until t as "3d 4h", "4h 12m" or "12m".
// Deadlines already behind now render as "Overdue".
func Countdown(now, t time.Time) string {
	diff := t.Sub(now)
	if diff < 0 {
		return "Overdue"
	}

	days := int(diff / day)
	hours := int((diff % day) / time.Hour)
	minutes := int((diff % time.Hour) / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatDate renders t as "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatDateTime renders t as "Jan 2, 2006 15:04".
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 15:04")
}
