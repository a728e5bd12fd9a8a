// Package poster composits the fixed-layout weekly share image: card
// background, title block, donut chart with centered readout, ranked
// category list and the word-wrapped summary quote box.
package poster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fogleman/gg"

	"fitlog/internal/report"
)

// Canvas dimensions in pixels.
const (
	Width  = 750
	Height = 1240
)

const (
	margin = 50

	titleX     = margin + 50
	titleY     = margin + 60
	ruleY      = titleY + 170
	metaY      = titleY + 200
	chartSize  = 320
	chartX     = (Width - chartSize) / 2
	chartY     = 415
	listTitleY = 755
	itemStartY = 795
	itemStep   = 38
	boxX       = margin + 40
	boxY       = 960
	boxW       = Width - 2*margin - 80
	boxH       = 200

	// Quote text wraps at this many characters, three lines max;
	// anything beyond is dropped.
	quoteWrapWidth = 24
	quoteMaxLines  = 3

	listMax = 4
)

var (
	appBG   = color.RGBA{255, 245, 247, 255}
	cardBG  = color.RGBA{255, 251, 240, 255}
	outline = color.RGBA{230, 201, 201, 255}
	titleC  = color.RGBA{106, 57, 62, 255}
	textC   = color.RGBA{80, 80, 80, 255}
	accent  = color.RGBA{255, 158, 177, 255}
	barC    = color.RGBA{220, 180, 180, 255}
	listC   = color.RGBA{60, 60, 60, 255}
)

// Input is everything the compositor needs for one poster. Categories
// may arrive in any order; the compositor re-ranks them itself.
type Input struct {
	WeekLabel    string
	TrainingDays int
	Categories   []report.CategoryCount
	Sentence     string
}

var (
	facesOnce sync.Once
	faces     faceSet
)

// Render draws the poster. It cannot fail: font loading degrades
// instead of erroring and all drawing is in-memory.
func Render(in Input) image.Image {
	facesOnce.Do(func() { faces = loadFaces() })

	ranked := rankCategories(in.Categories)
	series := report.NewSeries(ranked, report.PosterPalette)

	dc := gg.NewContext(Width, Height)
	dc.SetColor(appBG)
	dc.Clear()

	// Main card.
	dc.DrawRoundedRectangle(margin, margin, Width-2*margin, Height-2*margin, 40)
	dc.SetColor(cardBG)
	dc.FillPreserve()
	dc.SetColor(outline)
	dc.SetLineWidth(3)
	dc.Stroke()

	drawTitleBlock(dc, in.WeekLabel, in.TrainingDays)
	drawChart(dc, series)
	drawRankedList(dc, ranked)
	drawQuoteBox(dc, in.Sentence)
	drawCornerGlyph(dc)

	return dc.Image()
}

// RenderPNG draws the poster and encodes it as a PNG byte stream. An
// encoder failure is fatal for the render; no partial image is
// returned.
func RenderPNG(in Input) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Render(in)); err != nil {
		return nil, fmt.Errorf("encode poster png: %w", err)
	}
	return buf.Bytes(), nil
}

// rankCategories sorts a copy by descending count; the stable sort
// keeps the incoming order among equal counts.
func rankCategories(categories []report.CategoryCount) []report.CategoryCount {
	ranked := append([]report.CategoryCount(nil), categories...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

func drawTitleBlock(dc *gg.Context, weekLabel string, trainingDays int) {
	dc.SetColor(titleC)
	dc.SetFontFace(faces.title)
	drawTopLeft(dc, "WEEKLY", titleX, titleY)
	drawTopLeft(dc, "FITNESS LOG", titleX, titleY+80)

	dc.DrawLine(titleX, ruleY, titleX+300, ruleY)
	dc.SetLineWidth(4)
	dc.Stroke()

	dc.SetColor(textC)
	dc.SetFontFace(faces.subtitle)
	drawTopLeft(dc, "Time: "+weekLabel, titleX, metaY)
	drawTopLeft(dc, fmt.Sprintf("Trained: %d days", trainingDays), titleX, metaY+45)
}

func drawChart(dc *gg.Context, series report.Series) {
	chart := renderDonut(series, cardBG, chartSize)
	dc.DrawImage(chart, chartX, chartY)

	// Centered readout inside the hole: dominant label over its share.
	label, value := overlayText(series)
	cx := float64(chartX + chartSize/2)
	cy := float64(chartY + chartSize/2)

	dc.SetFontFace(faces.chartLabel)
	_, labelH := dc.MeasureString(label)
	dc.SetFontFace(faces.chartValue)
	_, valueH := dc.MeasureString(value)

	blockH := labelH + valueH + 10
	top := cy - blockH/2

	dc.SetColor(titleC)
	dc.SetFontFace(faces.chartLabel)
	dc.DrawStringAnchored(label, cx, top, 0.5, 1)
	dc.SetFontFace(faces.chartValue)
	dc.DrawStringAnchored(value, cx, top+labelH+10, 0.5, 1)
}

func overlayText(series report.Series) (label, value string) {
	if series.IsFallback() {
		return report.FallbackLabel, "100%"
	}
	pct := 100 * float64(series.Values[0]) / float64(series.Total())
	return series.Labels[0], fmt.Sprintf("%.1f%%", pct)
}

func drawRankedList(dc *gg.Context, ranked []report.CategoryCount) {
	dc.SetFontFace(faces.subtitle)
	dc.SetColor(listC)
	dc.DrawStringAnchored("TRAINING FOCUS", Width/2, listTitleY, 0.5, 1)

	dc.SetFontFace(faces.body)
	if len(ranked) == 0 {
		dc.SetColor(textC)
		dc.DrawStringAnchored("• full rest", Width/2, itemStartY, 0.5, 1)
		return
	}
	if len(ranked) > listMax {
		ranked = ranked[:listMax]
	}
	y := float64(itemStartY)
	for _, c := range ranked {
		text := fmt.Sprintf("%s: %dx", c.Label, c.Count)
		textW, _ := dc.MeasureString(text)
		// Bullet plus gap is 20px wide; center the whole row.
		startX := (Width - (20 + textW)) / 2

		dc.SetColor(accent)
		dc.DrawCircle(startX+5, y+15, 5)
		dc.Fill()
		dc.SetColor(textC)
		drawTopLeft(dc, text, startX+20, y)
		y += itemStep
	}
}

func drawQuoteBox(dc *gg.Context, sentence string) {
	dc.DrawRoundedRectangle(boxX, boxY, boxW, boxH, 20)
	dc.SetRGB255(255, 255, 255)
	dc.FillPreserve()
	dc.SetColor(outline)
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.SetColor(accent)
	dc.SetFontFace(faces.quoteMark)
	drawTopLeft(dc, "“", boxX+20, boxY+10)

	dc.SetColor(titleC)
	dc.SetFontFace(faces.subtitle)
	drawTopLeft(dc, "one-line summary:", boxX+30, boxY+25)

	dc.SetColor(textC)
	dc.SetFontFace(faces.quote)
	y := float64(boxY + 80)
	for _, line := range wrapChars(sentence, quoteWrapWidth, quoteMaxLines) {
		drawTopLeft(dc, line, boxX+30, y)
		y += 40
	}
}

func drawCornerGlyph(dc *gg.Context) {
	iconX := float64(Width - 150)
	iconY := float64(100)

	dc.SetColor(barC)
	dc.DrawLine(iconX, iconY+15, iconX+60, iconY+15)
	dc.SetLineWidth(8)
	dc.Stroke()

	dc.SetColor(accent)
	dc.DrawRoundedRectangle(iconX-10, iconY, 10, 30, 4)
	dc.Fill()
	dc.DrawRoundedRectangle(iconX+60, iconY, 10, 30, 4)
	dc.Fill()
}

// drawTopLeft draws s with its top-left corner at (x, y).
func drawTopLeft(dc *gg.Context, s string, x, y float64) {
	dc.DrawStringAnchored(s, x, y, 0, 1)
}

// wrapChars word-wraps s at a fixed character width, returning at most
// maxLines lines. Overflow is silently dropped. Words longer than the
// width are hard-split.
func wrapChars(s string, width, maxLines int) []string {
	var lines []string
	var cur string
	flush := func() {
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
	}
	for _, word := range strings.Fields(s) {
		for utf8.RuneCountInString(word) > width {
			flush()
			runes := []rune(word)
			lines = append(lines, string(runes[:width]))
			word = string(runes[width:])
		}
		switch {
		case cur == "":
			cur = word
		case utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(word) <= width:
			cur += " " + word
		default:
			flush()
			cur = word
		}
	}
	flush()
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
