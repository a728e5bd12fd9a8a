package report

import "testing"

func TestNewSeriesFallback(t *testing.T) {
	for _, cats := range [][]CategoryCount{nil, {}} {
		s := NewSeries(cats, PosterPalette)
		if len(s.Labels) != 1 || s.Labels[0] != FallbackLabel {
			t.Fatalf("labels = %v", s.Labels)
		}
		if s.Values[0] != 1 {
			t.Fatalf("values = %v", s.Values)
		}
		if s.Colors[0] != fallbackColor {
			t.Fatalf("colors = %v", s.Colors)
		}
		if !s.IsFallback() {
			t.Fatalf("expected fallback series")
		}
	}
}

func TestNewSeriesPaletteCycles(t *testing.T) {
	cats := make([]CategoryCount, len(PosterPalette)+2)
	for i := range cats {
		cats[i] = CategoryCount{Label: "c", Count: 1}
	}
	s := NewSeries(cats, PosterPalette)
	if s.Colors[0] != PosterPalette[0] {
		t.Fatalf("color[0] = %s", s.Colors[0])
	}
	if s.Colors[len(PosterPalette)] != PosterPalette[0] {
		t.Fatalf("palette must wrap: %s", s.Colors[len(PosterPalette)])
	}
	if s.Colors[len(PosterPalette)+1] != PosterPalette[1] {
		t.Fatalf("palette must keep cycling: %s", s.Colors[len(PosterPalette)+1])
	}
}

func TestNewSeriesRankDeterminesColor(t *testing.T) {
	// Two different weeks, same rank, same color regardless of identity.
	a := NewSeries([]CategoryCount{{Label: "legs", Count: 5}}, PosterPalette)
	b := NewSeries([]CategoryCount{{Label: "swimming", Count: 1}}, PosterPalette)
	if a.Colors[0] != b.Colors[0] {
		t.Fatalf("rank 0 colors differ: %s vs %s", a.Colors[0], b.Colors[0])
	}
}

func TestSeriesTotal(t *testing.T) {
	s := NewSeries([]CategoryCount{{Label: "a", Count: 2}, {Label: "b", Count: 3}}, PosterPalette)
	if s.Total() != 5 {
		t.Fatalf("total = %d", s.Total())
	}
}

func TestNewDonutChart(t *testing.T) {
	chart := NewDonutChart([]CategoryCount{{Label: "legs", Count: 2}, {Label: "back", Count: 1}})
	if chart.Hole != DonutHole {
		t.Fatalf("hole = %v", chart.Hole)
	}
	if chart.TextInfo != "none" || chart.HoverInfo != "none" {
		t.Fatalf("default text must be disabled: %+v", chart)
	}
	if len(chart.Segments) != 2 {
		t.Fatalf("segments = %v", chart.Segments)
	}
	first := chart.Segments[0]
	if first.Label != "legs" || first.Count != 2 {
		t.Fatalf("segment = %+v", first)
	}
	if first.Percent < 66.6 || first.Percent > 66.7 {
		t.Fatalf("percent = %v", first.Percent)
	}
	if first.Hover == "" || chart.HoverTemplate == "" {
		t.Fatalf("hover text missing")
	}
}

func TestNewDonutChartFallbackMatchesSeries(t *testing.T) {
	chart := NewDonutChart(nil)
	if len(chart.Labels) != 1 || chart.Labels[0] != FallbackLabel || chart.Values[0] != 1 {
		t.Fatalf("fallback chart = %+v", chart)
	}
	if chart.Segments[0].Percent != 100 {
		t.Fatalf("fallback percent = %v", chart.Segments[0].Percent)
	}
}
