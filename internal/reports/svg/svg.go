package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Chart defaults tuned for the dashboard cards.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	defaultPadding = 28.0
	defaultTicks   = 5
)

// LineOpts customises the revenue trend renderer.
type LineOpts struct {
	Title       string
	StrokeColor string
	FillColor   string
	ShowDots    bool
}

// BarOpts customises the paired-bar renderer.
type BarOpts struct {
	Title        string
	SeriesALabel string
	SeriesBLabel string
	ColorA       string
	ColorB       string
}

// Line renders one value series as an SVG line chart with an area fill.
func Line(width, height int, series []float64, labels []string, opts LineOpts) (template.HTML, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("svg: series required")
	}
	if len(series) != len(labels) {
		return "", fmt.Errorf("svg: labels length must match series")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	stroke := orDefault(opts.StrokeColor, "#2563eb")
	fill := orDefault(opts.FillColor, "rgba(37,99,235,0.12)")

	plotW := float64(width) - 2*defaultPadding
	plotH := float64(height) - 2*defaultPadding
	if plotW <= 0 || plotH <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	lo, hi := seriesBounds(series)
	scale := plotH / (hi - lo)

	step := 0.0
	if len(series) > 1 {
		step = plotW / float64(len(series)-1)
	}
	pointX := func(i int) float64 {
		if len(series) == 1 {
			return defaultPadding + plotW/2
		}
		return defaultPadding + float64(i)*step
	}
	pointY := func(v float64) float64 {
		return defaultPadding + plotH - (v-lo)*scale
	}

	var path strings.Builder
	for i, v := range series {
		cmd := " L"
		if i == 0 {
			cmd = "M"
		}
		path.WriteString(fmt.Sprintf("%s%.2f %.2f", cmd, pointX(i), pointY(v)))
	}

	var b strings.Builder
	openSVG(&b, width, height, orDefault(opts.Title, "Trend"))
	drawGrid(&b, plotW, plotH, lo, hi)

	base := defaultPadding + plotH
	area := fmt.Sprintf("%s L%.2f %.2f L%.2f %.2f Z", path.String(), pointX(len(series)-1), base, pointX(0), base)
	b.WriteString(fmt.Sprintf(`<path d=%q fill=%q stroke="none"></path>`, area, fill))
	b.WriteString(fmt.Sprintf(`<path d=%q fill="none" stroke=%q stroke-width="2" stroke-linejoin="round" stroke-linecap="round"></path>`, path.String(), stroke))

	if opts.ShowDots {
		for i, v := range series {
			b.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="3" fill=%q></circle>`, pointX(i), pointY(v), stroke))
		}
	}
	drawXLabels(&b, labels, pointX, base)
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// Bar renders two aligned series as grouped bars, one group per label.
// Series B may be nil for a single-series chart.
func Bar(width, height int, seriesA, seriesB []float64, labels []string, opts BarOpts) (template.HTML, error) {
	if len(seriesA) == 0 {
		return "", fmt.Errorf("svg: series required")
	}
	if len(seriesA) != len(labels) {
		return "", fmt.Errorf("svg: labels length must match series")
	}
	if seriesB != nil && len(seriesB) != len(seriesA) {
		return "", fmt.Errorf("svg: series lengths must match")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	colorA := orDefault(opts.ColorA, "#2563eb")
	colorB := orDefault(opts.ColorB, "#dc2626")

	plotW := float64(width) - 2*defaultPadding
	plotH := float64(height) - 2*defaultPadding
	if plotW <= 0 || plotH <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	all := append([]float64{}, seriesA...)
	all = append(all, seriesB...)
	lo, hi := seriesBounds(all)
	scale := plotH / (hi - lo)
	zeroY := defaultPadding + plotH - (0-lo)*scale

	group := plotW / float64(len(labels))
	barW := group * 0.35
	if seriesB == nil {
		barW = group * 0.6
	}

	var b strings.Builder
	openSVG(&b, width, height, orDefault(opts.Title, "Comparison"))
	drawGrid(&b, plotW, plotH, lo, hi)

	drawBar := func(i int, v float64, offset float64, color string) {
		x := defaultPadding + float64(i)*group + (group-barW)/2 + offset
		y := defaultPadding + plotH - (v-lo)*scale
		top := math.Min(y, zeroY)
		h := math.Abs(y - zeroY)
		b.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill=%q></rect>`, x, top, barW, h, color))
	}
	for i, v := range seriesA {
		offset := 0.0
		if seriesB != nil {
			offset = -barW / 2
		}
		drawBar(i, v, offset, colorA)
	}
	for i, v := range seriesB {
		drawBar(i, v, barW/2, colorB)
	}

	base := defaultPadding + plotH
	drawXLabels(&b, labels, func(i int) float64 {
		return defaultPadding + float64(i)*group + group/2
	}, base)
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func openSVG(b *strings.Builder, width, height int, title string) {
	b.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img">`, width, height))
	b.WriteString(fmt.Sprintf("<title>%s</title>", template.HTMLEscapeString(title)))
}

func drawGrid(b *strings.Builder, plotW, plotH, lo, hi float64) {
	for i := 0; i <= defaultTicks; i++ {
		ratio := float64(i) / float64(defaultTicks)
		y := defaultPadding + plotH - ratio*plotH
		value := lo + (hi-lo)*ratio
		b.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#cbd5f5" stroke-width="0.5" stroke-dasharray="2,4"></line>`,
			defaultPadding, y, defaultPadding+plotW, y))
		b.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" fill="#475569" font-size="10" text-anchor="end">%s</text>`,
			defaultPadding-6, y+4, template.HTMLEscapeString(formatTick(value))))
	}
}

func drawXLabels(b *strings.Builder, labels []string, xAt func(int) float64, base float64) {
	for i, label := range labels {
		b.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" fill="#475569" font-size="10" text-anchor="middle">%s</text>`,
			xAt(i), base+14, template.HTMLEscapeString(label)))
	}
}

// seriesBounds clamps the range to include zero and never collapses to a
// zero-height scale.
func seriesBounds(series []float64) (float64, float64) {
	lo, hi := series[0], series[0]
	for _, v := range series[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	if math.Abs(hi-lo) < 1e-9 {
		hi = lo + 1
	}
	return lo, hi
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func formatTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
