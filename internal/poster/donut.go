package poster

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"fitlog/internal/report"
)

// holeRatio is the donut hole radius as a fraction of the outer radius.
const holeRatio = 0.625

// renderDonut draws the proportions ring onto its own square canvas
// filled with bg, so anti-aliased edges blend with the card when the
// result is composited, not with transparency.
func renderDonut(series report.Series, bg color.Color, sizePx int) image.Image {
	dc := gg.NewContext(sizePx, sizePx)
	dc.SetColor(bg)
	dc.Clear()

	cx := float64(sizePx) / 2
	cy := float64(sizePx) / 2
	outer := float64(sizePx) * 0.48
	inner := outer * holeRatio

	total := series.Total()
	if total <= 0 {
		total = 1
	}

	// Start at twelve o'clock and sweep clockwise.
	angle := -math.Pi / 2
	for i, v := range series.Values {
		if v <= 0 {
			continue
		}
		span := 2 * math.Pi * float64(v) / float64(total)
		dc.NewSubPath()
		dc.DrawArc(cx, cy, outer, angle, angle+span)
		dc.DrawArc(cx, cy, inner, angle+span, angle)
		dc.ClosePath()
		dc.SetHexColor(series.Colors[i%len(series.Colors)])
		dc.FillPreserve()
		// Segment edges stroked in the background color keep a visible
		// gap between slices.
		dc.SetColor(bg)
		dc.SetLineWidth(4)
		dc.Stroke()
		angle += span
	}

	return dc.Image()
}
