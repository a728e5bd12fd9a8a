package report

import (
	"testing"
	"time"

	"fitlog/internal/core"
)

func ref(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregateEndToEndExample(t *testing.T) {
	records := []core.Record{
		{ID: "1", Date: "2024-06-03", Training: []string{"legs"}},
		{ID: "2", Date: "2024-06-05", Training: []string{"back", "legs"}},
		{ID: "3", Date: "2024-06-04", Training: []string{core.RestDay}},
	}

	agg, inWindow := Aggregate(records, ref(2024, time.June, 4))

	if got := agg.Window.Label(); got != "06.03 - 06.09" {
		t.Fatalf("window label = %q", got)
	}
	if agg.TrainingDays != 2 {
		t.Fatalf("training days = %d, want 2", agg.TrainingDays)
	}
	if len(agg.Categories) != 2 {
		t.Fatalf("categories = %v", agg.Categories)
	}
	if agg.Categories[0].Label != "legs" || agg.Categories[0].Count != 2 {
		t.Fatalf("top category = %+v", agg.Categories[0])
	}
	if agg.Categories[1].Label != "back" || agg.Categories[1].Count != 1 {
		t.Fatalf("second category = %+v", agg.Categories[1])
	}
	if len(inWindow) != 3 {
		t.Fatalf("window records = %d, want 3", len(inWindow))
	}
}

func TestAggregateSkipsMalformedDates(t *testing.T) {
	records := []core.Record{
		{ID: "1", Date: "2024-06-03", Training: []string{"legs"}},
		{ID: "2", Date: "garbage", Training: []string{"back"}},
		{ID: "3", Date: "", Training: []string{"back"}},
	}
	agg, inWindow := Aggregate(records, ref(2024, time.June, 4))
	if len(inWindow) != 1 {
		t.Fatalf("window records = %d, want 1", len(inWindow))
	}
	if agg.TrainingDays != 1 {
		t.Fatalf("training days = %d", agg.TrainingDays)
	}
	if len(agg.Categories) != 1 || agg.Categories[0].Label != "legs" {
		t.Fatalf("categories = %v", agg.Categories)
	}
}

func TestAggregateDistinctTrainingDates(t *testing.T) {
	// Two categories on a single date still count as one training day.
	records := []core.Record{
		{ID: "1", Date: "2024-06-03", Training: []string{"legs", "back"}},
	}
	agg, _ := Aggregate(records, ref(2024, time.June, 4))
	if agg.TrainingDays != 1 {
		t.Fatalf("training days = %d, want 1", agg.TrainingDays)
	}
	if agg.TotalSessions() != 2 {
		t.Fatalf("total sessions = %d, want 2", agg.TotalSessions())
	}
}

func TestAggregateTieBreakByFirstAppearance(t *testing.T) {
	// Store order, not alphabetical or date order, decides ties.
	records := []core.Record{
		{ID: "1", Date: "2024-06-05", Training: []string{"shoulders"}},
		{ID: "2", Date: "2024-06-03", Training: []string{"back"}},
	}
	agg, _ := Aggregate(records, ref(2024, time.June, 4))
	if agg.Categories[0].Label != "shoulders" || agg.Categories[1].Label != "back" {
		t.Fatalf("tie order = %v", agg.Categories)
	}
}

func TestAggregateRestWeek(t *testing.T) {
	records := []core.Record{
		{ID: "1", Date: "2024-06-03", Training: []string{core.RestDay}, Mood: "sleepy"},
	}
	agg, _ := Aggregate(records, ref(2024, time.June, 4))
	if agg.TrainingDays != 0 {
		t.Fatalf("training days = %d", agg.TrainingDays)
	}
	if len(agg.Categories) != 0 {
		t.Fatalf("categories = %v", agg.Categories)
	}
	if agg.MoodText != "sleepy" {
		t.Fatalf("mood text = %q", agg.MoodText)
	}
}

func TestAggregateJoinsMoodInStoreOrder(t *testing.T) {
	records := []core.Record{
		{ID: "1", Date: "2024-06-05", Training: []string{"legs"}, Mood: "great"},
		{ID: "2", Date: "2024-06-03", Training: []string{"legs"}, Mood: "tired"},
	}
	agg, _ := Aggregate(records, ref(2024, time.June, 4))
	if agg.MoodText != "great tired" {
		t.Fatalf("mood text = %q", agg.MoodText)
	}
}

func TestAggregateExcludesNeighbouringWeeks(t *testing.T) {
	records := []core.Record{
		{ID: "1", Date: "2024-06-02", Training: []string{"legs"}}, // Sunday before
		{ID: "2", Date: "2024-06-10", Training: []string{"legs"}}, // Monday after
		{ID: "3", Date: "2024-06-09", Training: []string{"legs"}}, // in-window Sunday
	}
	agg, inWindow := Aggregate(records, ref(2024, time.June, 4))
	if len(inWindow) != 1 || inWindow[0].ID != "3" {
		t.Fatalf("window records = %v", inWindow)
	}
	if agg.TrainingDays != 1 {
		t.Fatalf("training days = %d", agg.TrainingDays)
	}
}

func TestDominant(t *testing.T) {
	agg := WeeklyAggregate{}
	if _, ok := agg.Dominant(); ok {
		t.Fatalf("expected no dominant category")
	}
	agg.Categories = []CategoryCount{{Label: "legs", Count: 2}, {Label: "back", Count: 1}}
	top, ok := agg.Dominant()
	if !ok || top.Label != "legs" {
		t.Fatalf("dominant = %+v ok=%v", top, ok)
	}
}
