package services

import (
	"context"
	"fmt"
	"time"

	"fitlog/internal/core"
	"fitlog/internal/poster"
	"fitlog/internal/report"
	"fitlog/internal/store"
)

// WeeklyReport bundles everything the report surfaces need for one week.
type WeeklyReport struct {
	Aggregate report.WeeklyAggregate
	Sentence  string
	Chart     report.DonutChart
	Records   []core.Record
}

// ReportService derives weekly report artifacts from the record store.
type ReportService struct {
	records store.RecordLister
}

func NewReportService(records store.RecordLister) *ReportService {
	return &ReportService{records: records}
}

// WeeklyReport computes the report for the week containing ref.
func (s *ReportService) WeeklyReport(ctx context.Context, ref time.Time) (*WeeklyReport, error) {
	all, err := s.records.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	agg, weekRecords := report.Aggregate(all, ref)
	return &WeeklyReport{
		Aggregate: agg,
		Sentence:  report.SummarySentence(agg.TrainingDays, agg.Categories, agg.MoodText),
		Chart:     report.NewDonutChart(agg.Categories),
		Records:   weekRecords,
	}, nil
}

// Poster renders the week's composited poster as PNG bytes.
func (s *ReportService) Poster(ctx context.Context, ref time.Time) ([]byte, error) {
	r, err := s.WeeklyReport(ctx, ref)
	if err != nil {
		return nil, err
	}
	return poster.RenderPNG(poster.Input{
		WeekLabel:    r.Aggregate.Window.Label(),
		TrainingDays: r.Aggregate.TrainingDays,
		Categories:   r.Aggregate.Categories,
		Sentence:     r.Sentence,
	})
}
