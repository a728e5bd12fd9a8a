package poster

import (
	"bytes"
	"image"
	"testing"

	"fitlog/internal/report"
)

func sampleInput() Input {
	return Input{
		WeekLabel:    "06.03 - 06.09",
		TrainingDays: 2,
		Categories: []report.CategoryCount{
			{Label: "legs", Count: 2},
			{Label: "back", Count: 1},
		},
		Sentence: "trained 2 days this week, legs & back led the way, overall holding steady ~",
	}
}

func TestRenderDimensions(t *testing.T) {
	img := Render(sampleInput())
	b := img.Bounds()
	if b.Dx() != Width || b.Dy() != Height {
		t.Fatalf("bounds = %v, want %dx%d", b, Width, Height)
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := Render(sampleInput()).(*image.RGBA)
	b := Render(sampleInput()).(*image.RGBA)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("two renders of identical input differ")
	}
}

func TestRenderBackgroundAndCard(t *testing.T) {
	img := Render(sampleInput())
	if got := img.At(2, 2); !sameColor(got, appBG) {
		t.Fatalf("corner pixel = %v, want app background", got)
	}
	if got := img.At(Width/2, 70); !sameColor(got, cardBG) {
		t.Fatalf("card pixel = %v, want card background", got)
	}
}

func TestRenderQuoteBoxIsWhite(t *testing.T) {
	img := Render(sampleInput())
	r, g, b, _ := img.At(600, 975).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Fatalf("quote box pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestRenderEmptyWeek(t *testing.T) {
	// No categories: the fallback series and placeholder row must not
	// panic and the canvas keeps its fixed size.
	img := Render(Input{WeekLabel: "06.03 - 06.09", Sentence: "this week was all about rest and recovery ~"})
	if img.Bounds().Dx() != Width {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestRenderPNGSignature(t *testing.T) {
	data, err := RenderPNG(sampleInput())
	if err != nil {
		t.Fatalf("render png: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("missing png signature")
	}
}

func TestRankCategoriesStable(t *testing.T) {
	ranked := rankCategories([]report.CategoryCount{
		{Label: "a", Count: 1},
		{Label: "b", Count: 2},
		{Label: "c", Count: 1},
	})
	if ranked[0].Label != "b" || ranked[1].Label != "a" || ranked[2].Label != "c" {
		t.Fatalf("ranked = %v", ranked)
	}
}

func TestOverlayText(t *testing.T) {
	series := report.NewSeries([]report.CategoryCount{
		{Label: "legs", Count: 2},
		{Label: "back", Count: 1},
	}, report.PosterPalette)
	label, value := overlayText(series)
	if label != "legs" || value != "66.7%" {
		t.Fatalf("overlay = %q %q", label, value)
	}

	label, value = overlayText(report.NewSeries(nil, report.PosterPalette))
	if label != report.FallbackLabel || value != "100%" {
		t.Fatalf("fallback overlay = %q %q", label, value)
	}
}

func TestWrapChars(t *testing.T) {
	cases := []struct {
		in    string
		width int
		max   int
		want  []string
	}{
		{"", 24, 3, nil},
		{"short line", 24, 3, []string{"short line"}},
		{"one two three four", 9, 3, []string{"one two", "three", "four"}},
		{"aaaaaaaaaa", 4, 3, []string{"aaaa", "aaaa", "aa"}},
		{"a b c d e f g h", 3, 2, []string{"a b", "c d"}}, // overflow dropped
	}
	for i, tc := range cases {
		got := wrapChars(tc.in, tc.width, tc.max)
		if len(got) != len(tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, got, tc.want)
		}
		for j := range got {
			if got[j] != tc.want[j] {
				t.Fatalf("case %d line %d: got %q, want %q", i, j, got[j], tc.want[j])
			}
		}
	}
}

func sameColor(got interface{ RGBA() (uint32, uint32, uint32, uint32) }, want interface {
	RGBA() (uint32, uint32, uint32, uint32)
}) bool {
	gr, gg_, gb, _ := got.RGBA()
	wr, wg, wb, _ := want.RGBA()
	return gr == wr && gg_ == wg && gb == wb
}
