package core

import (
	"fmt"
	"time"
)

// WeekWindow is the Monday..Sunday span containing a reference date.
// Both ends are inclusive.
type WeekWindow struct {
	Start time.Time
	End   time.Time
}

// WeekOf computes the week window for the given reference date. The
// result is derived purely from the date part of ref.
func WeekOf(ref time.Time) WeekWindow {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	// Weekday is Sunday-based; shift so Monday maps to offset 0.
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return WeekWindow{Start: start, End: start.AddDate(0, 0, 6)}
}

// Contains reports whether t falls inside the window, inclusive of both
// ends. Only the date part of t is considered.
func (w WeekWindow) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(w.Start) && !day.After(w.End)
}

// Label renders the window the way the report header shows it,
// e.g. "06.03 - 06.09".
func (w WeekWindow) Label() string {
	return fmt.Sprintf("%02d.%02d - %02d.%02d",
		int(w.Start.Month()), w.Start.Day(),
		int(w.End.Month()), w.End.Day())
}
