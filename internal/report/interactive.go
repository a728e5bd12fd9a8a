package report

import "fmt"

// DonutHole is the hole ratio of the interactive donut.
const DonutHole = 0.65

// HoverTemplate is the per-segment hover markup understood by the
// presentation layer; label, value and percent are substituted there.
const HoverTemplate = "<b>%{label}</b><br>" +
	"<span style='color:#666'>sessions:</span> <b>%{value}</b><br>" +
	"<span style='color:#666'>share:</span> <b>%{percent}</b>" +
	"<extra></extra>"

// DonutChart is the abstract description of the hover-enabled
// proportions chart. It produces no pixels; the presentation surface
// renders it.
type DonutChart struct {
	Labels        []string  `json:"labels"`
	Values        []int     `json:"values"`
	Colors        []string  `json:"colors"`
	Hole          float64   `json:"hole"`
	TextInfo      string    `json:"textinfo"`
	HoverInfo     string    `json:"hoverinfo"`
	HoverTemplate string    `json:"hovertemplate"`
	Segments      []Segment `json:"segments"`
}

// Segment is one resolved hover entry.
type Segment struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Hover   string  `json:"hover"`
}

// NewDonutChart builds the interactive chart from ranked category
// counts, using the same fallback and palette-cycling rules as the
// poster so both stay visually consistent.
func NewDonutChart(categories []CategoryCount) DonutChart {
	series := NewSeries(categories, InteractivePalette)
	total := series.Total()

	chart := DonutChart{
		Labels:        series.Labels,
		Values:        series.Values,
		Colors:        series.Colors,
		Hole:          DonutHole,
		TextInfo:      "none",
		HoverInfo:     "none",
		HoverTemplate: HoverTemplate,
	}
	for i, label := range series.Labels {
		pct := 100 * float64(series.Values[i]) / float64(total)
		chart.Segments = append(chart.Segments, Segment{
			Label:   label,
			Count:   series.Values[i],
			Percent: pct,
			Hover:   fmt.Sprintf("%s — %d sessions (%.1f%%)", label, series.Values[i], pct),
		})
	}
	return chart
}
