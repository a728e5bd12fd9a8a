package core

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekOfStartsOnMonday(t *testing.T) {
	// A full week of reference dates must all map to the same window.
	for d := 3; d <= 9; d++ {
		w := WeekOf(date(2024, time.June, d))
		if w.Start.Weekday() != time.Monday {
			t.Fatalf("ref day %d: start is %v, want Monday", d, w.Start.Weekday())
		}
		if !w.Start.Equal(date(2024, time.June, 3)) {
			t.Fatalf("ref day %d: start = %v", d, w.Start)
		}
		if !w.End.Equal(date(2024, time.June, 9)) {
			t.Fatalf("ref day %d: end = %v", d, w.End)
		}
		if got := w.End.Sub(w.Start); got != 6*24*time.Hour {
			t.Fatalf("window span = %v", got)
		}
		if !w.Contains(date(2024, time.June, d)) {
			t.Fatalf("window must contain its reference day %d", d)
		}
	}
}

func TestWeekOfSundayReference(t *testing.T) {
	// A Sunday belongs to the week that started the previous Monday.
	w := WeekOf(date(2024, time.June, 9))
	if !w.Start.Equal(date(2024, time.June, 3)) {
		t.Fatalf("start = %v", w.Start)
	}
}

func TestWeekOfIgnoresClockAndZone(t *testing.T) {
	loc := time.FixedZone("late", 11*3600)
	w := WeekOf(time.Date(2024, time.June, 4, 23, 59, 0, 0, loc))
	if !w.Start.Equal(date(2024, time.June, 3)) {
		t.Fatalf("start = %v", w.Start)
	}
}

func TestContainsBounds(t *testing.T) {
	w := WeekOf(date(2024, time.June, 4))
	cases := []struct {
		d    time.Time
		want bool
	}{
		{date(2024, time.June, 2), false},
		{date(2024, time.June, 3), true},
		{date(2024, time.June, 9), true},
		{date(2024, time.June, 10), false},
	}
	for i, tc := range cases {
		if got := w.Contains(tc.d); got != tc.want {
			t.Fatalf("case %d: got %v, want %v", i, got, tc.want)
		}
	}
}

func TestWeekLabel(t *testing.T) {
	w := WeekOf(date(2024, time.June, 4))
	if got := w.Label(); got != "06.03 - 06.09" {
		t.Fatalf("label = %q", got)
	}
}
