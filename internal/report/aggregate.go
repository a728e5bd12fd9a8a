// Package report turns a week of raw records into the derived weekly
// artifacts: the aggregate, the summary sentence and the chart series.
// Everything here is pure and recomputed per request.
package report

import (
	"sort"
	"strings"
	"time"

	"fitlog/internal/core"
)

type (
	// CategoryCount is one training category with its session count for
	// the week.
	CategoryCount struct {
		Label string `json:"label"`
		Count int    `json:"count"`
	}

	// WeeklyAggregate is the derived per-week statistics. Categories are
	// ordered by descending count; ties keep the order in which the
	// category first appeared while iterating records in store order.
	WeeklyAggregate struct {
		Window       core.WeekWindow
		TrainingDays int
		Categories   []CategoryCount
		MoodText     string
	}
)

// Aggregate slices records into the week window of ref and computes the
// weekly aggregate. It also returns the records that fell inside the
// window (in store order) for downstream prompt building. Records with
// malformed dates are skipped; they never abort the aggregation.
func Aggregate(records []core.Record, ref time.Time) (WeeklyAggregate, []core.Record) {
	window := core.WeekOf(ref)

	var (
		inWindow []core.Record
		moods    []string
		counts   = map[string]int{}
		order    []string
		trained  = map[string]struct{}{}
	)
	for _, r := range records {
		day, err := r.ParsedDate()
		if err != nil {
			continue
		}
		if !window.Contains(day) {
			continue
		}
		inWindow = append(inWindow, r)

		if r.IsTrainingDay() {
			trained[r.Date] = struct{}{}
		}
		for _, label := range r.Sessions() {
			if _, seen := counts[label]; !seen {
				order = append(order, label)
			}
			counts[label]++
		}
		if r.Mood != "" {
			moods = append(moods, r.Mood)
		}
	}

	categories := make([]CategoryCount, 0, len(order))
	for _, label := range order {
		categories = append(categories, CategoryCount{Label: label, Count: counts[label]})
	}
	// Stable sort keeps first-appearance order among equal counts.
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Count > categories[j].Count
	})

	return WeeklyAggregate{
		Window:       window,
		TrainingDays: len(trained),
		Categories:   categories,
		MoodText:     strings.Join(moods, " "),
	}, inWindow
}

// TotalSessions is the sum of all category counts.
func (a WeeklyAggregate) TotalSessions() int {
	total := 0
	for _, c := range a.Categories {
		total += c.Count
	}
	return total
}

// TopCategories returns up to n category labels by rank.
func (a WeeklyAggregate) TopCategories(n int) []string {
	if n > len(a.Categories) {
		n = len(a.Categories)
	}
	out := make([]string, 0, n)
	for _, c := range a.Categories[:n] {
		out = append(out, c.Label)
	}
	return out
}

// Dominant returns the top-ranked category, if any.
func (a WeeklyAggregate) Dominant() (CategoryCount, bool) {
	if len(a.Categories) == 0 {
		return CategoryCount{}, false
	}
	return a.Categories[0], true
}
