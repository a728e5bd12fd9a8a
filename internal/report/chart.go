package report

// Palettes are assigned cyclically by rank, so the category at a given
// rank always gets the same color regardless of its identity.
var (
	// PosterPalette colors the static poster donut.
	PosterPalette = []string{"#FF9EB1", "#FFD1A9", "#E5C890", "#F4B8E4", "#A6D189", "#8CAAEE"}

	// InteractivePalette colors the on-screen donut.
	InteractivePalette = []string{"#FFB7B2", "#A6D189", "#FFE4B5", "#8CAAEE", "#D4A5A5", "#E0BBE4"}
)

const (
	// FallbackLabel is the synthetic label used when a week has no
	// countable sessions, so the chart never renders on an empty series.
	FallbackLabel = "rest"

	fallbackColor = "#EEEEEE"
)

// Series is the ordered label/value/color triple consumed by both the
// poster donut and the interactive chart.
type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Colors []string `json:"colors"`
}

// NewSeries converts ranked category counts into a render-ready series.
// An empty input maps to the single-entry rest fallback.
func NewSeries(categories []CategoryCount, palette []string) Series {
	if len(categories) == 0 {
		return Series{
			Labels: []string{FallbackLabel},
			Values: []int{1},
			Colors: []string{fallbackColor},
		}
	}
	s := Series{
		Labels: make([]string, len(categories)),
		Values: make([]int, len(categories)),
		Colors: make([]string, len(categories)),
	}
	for i, c := range categories {
		s.Labels[i] = c.Label
		s.Values[i] = c.Count
		s.Colors[i] = palette[i%len(palette)]
	}
	return s
}

// IsFallback reports whether the series is the synthetic rest entry.
func (s Series) IsFallback() bool {
	return len(s.Labels) == 1 && s.Labels[0] == FallbackLabel && s.Values[0] == 1 && s.Colors[0] == fallbackColor
}

// Total is the sum of all series values.
func (s Series) Total() int {
	total := 0
	for _, v := range s.Values {
		total += v
	}
	return total
}
