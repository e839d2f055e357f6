// Package chart draws a display series as an SVG line or bar chart.
package chart

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"weather-explorer/internal/series"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 400
	MaxSize       = 4000

	maxLabels = 8
)

type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	o.Width = min(o.Width, MaxSize)
	o.Height = min(o.Height, MaxSize)
	return o
}

// Render writes s as SVG. An empty series renders a placeholder.
func Render(w io.Writer, s series.Series, opts Options) error {
	opts = opts.withDefaults()

	if len(s.Points) == 0 {
		return placeholder(w, s, opts)
	}

	var err error
	if s.Presentation.Style == series.StyleBar {
		err = barChart(s, opts).Render(gochart.SVG, w)
	} else {
		err = lineChart(s, opts).Render(gochart.SVG, w)
	}
	if err != nil {
		return fmt.Errorf("render %s chart: %w", s.Kind, err)
	}
	return nil
}

func lineChart(s series.Series, opts Options) gochart.Chart {
	p := s.Presentation
	n := len(s.Points)
	color := colorOf(p.Color)

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	xMin, xMax := 0.0, float64(n-1)
	if n == 1 {
		xMin, xMax = -0.5, 0.5
	}

	axisStyle := gochart.Style{}
	if p.DashedAxis {
		axisStyle.StrokeDashArray = []float64{4, 4}
	}

	seriesStyle := gochart.Style{
		StrokeColor: color,
		StrokeWidth: 2,
	}
	if n == 1 {
		seriesStyle.DotColor = color
		seriesStyle.DotWidth = 4
	}

	yMin, yMax := paddedRange(s.Values(), false)

	return gochart.Chart{
		Title:  p.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Style: axisStyle,
			Ticks: ticks(s.Labels()),
			Range: &gochart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: gochart.YAxis{
			Name:           p.AxisName(),
			Style:          axisStyle,
			Range:          &gochart.ContinuousRange{Min: yMin, Max: yMax},
			ValueFormatter: valueFormatter(p),
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    p.Label,
				Style:   seriesStyle,
				XValues: xs,
				YValues: s.Values(),
			},
		},
	}
}

func barChart(s series.Series, opts Options) gochart.BarChart {
	p := s.Presentation
	n := len(s.Points)
	color := colorOf(p.Color)
	labels := sparseLabels(s.Labels())

	bars := make([]gochart.Value, n)
	for i, pt := range s.Points {
		bars[i] = gochart.Value{
			Label: labels[i],
			Value: pt.Value,
			Style: gochart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
		}
	}

	slot := (opts.Width - 120) / n
	barWidth := max(1, slot*2/3)
	spacing := max(1, slot-barWidth)

	yMin, yMax := paddedRange(s.Values(), true)

	return gochart.BarChart{
		Title:      p.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: gochart.YAxis{
			Name:           p.AxisName(),
			Range:          &gochart.ContinuousRange{Min: yMin, Max: yMax},
			ValueFormatter: valueFormatter(p),
		},
		Bars: bars,
	}
}

// paddedRange widens [min,max] by 10%; a flat series gets a unit-wide band.
// Bar charts keep zero inside the range so bars grow from the baseline.
func paddedRange(values []float64, includeZero bool) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if includeZero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}

	if hi-lo == 0 {
		return lo - 1, hi + 1
	}

	pad := (hi - lo) * 0.1
	if includeZero && lo == 0 {
		return 0, hi + pad
	}
	return lo - pad, hi + pad
}

// ticks labels at most maxLabels evenly spaced categories.
func ticks(labels []string) []gochart.Tick {
	step := labelStep(len(labels))
	out := make([]gochart.Tick, 0, maxLabels+1)
	for i := 0; i < len(labels); i += step {
		out = append(out, gochart.Tick{Value: float64(i), Label: labels[i]})
	}
	if len(out) == 1 {
		// the axis needs two ticks to draw
		out = append(out, gochart.Tick{Value: out[0].Value + 0.5, Label: ""})
	}
	return out
}

func sparseLabels(labels []string) []string {
	step := labelStep(len(labels))
	out := make([]string, len(labels))
	for i := 0; i < len(labels); i += step {
		out[i] = labels[i]
	}
	return out
}

func labelStep(n int) int {
	return max(1, (n+maxLabels-1)/maxLabels)
}

func valueFormatter(p series.Presentation) gochart.ValueFormatter {
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return ""
		}
		return p.FormatValue(math.Round(f*100) / 100)
	}
}

func colorOf(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func placeholder(w io.Writer, s series.Series, opts Options) error {
	title := s.Presentation.Title
	if title == "" {
		title = s.Kind.String()
	}
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#888">%s: no data</text>`+
			`</svg>`,
		opts.Width, opts.Height, opts.Width, opts.Height, opts.Width/2, opts.Height/2, html.EscapeString(title))
	return err
}
