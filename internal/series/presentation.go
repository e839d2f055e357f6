package series

import (
	"fmt"
	"strings"

	"weather-explorer/internal/models"
)

// RenderStyle selects the chart type for a series.
type RenderStyle string

const (
	StyleLine RenderStyle = "line"
	StyleBar  RenderStyle = "bar"
)

const seriesColor = "#009588"

// Presentation is the per-kind axis and rendering metadata.
type Presentation struct {
	Unit       string      `json:"unit"`
	Label      string      `json:"label"`
	Title      string      `json:"title"`
	Style      RenderStyle `json:"style"`
	Smooth     bool        `json:"smooth"`
	DashedAxis bool        `json:"dashed_axis"`
	Color      string      `json:"color"`
}

var presentations = map[models.MetricKind]Presentation{
	models.Temperature: {
		Unit:       "°C",
		Label:      "Temperature",
		Title:      "Temperature",
		Style:      StyleLine,
		Smooth:     true,
		DashedAxis: true,
		Color:      seriesColor,
	},
	models.WindSpeed: {
		Unit:   "m/s",
		Label:  "Wind speed",
		Title:  "Wind",
		Style:  StyleLine,
		Smooth: true,
		Color:  seriesColor,
	},
	models.Precipitation: {
		Unit:  "mm",
		Label: "6h accumulated precipitation",
		Title: "Precipitation",
		Style: StyleBar,
		Color: seriesColor,
	},
}

// PresentationFor returns the metadata for kind. Unknown kinds get a bare line style.
func PresentationFor(kind models.MetricKind) Presentation {
	if p, ok := presentations[kind]; ok {
		return p
	}
	return Presentation{Label: kind.String(), Title: kind.String(), Style: StyleLine, Color: seriesColor}
}

// AxisName is the y-axis caption, e.g. "Temperature(°C)".
func (p Presentation) AxisName() string {
	return fmt.Sprintf("%s(%s)", p.Label, p.Unit)
}

// FormatValue renders an axis tick value with its unit.
func (p Presentation) FormatValue(v float64) string {
	return fmt.Sprintf("%g%s", v, p.Unit)
}

// Tooltip renders the hover content for one point.
func Tooltip(point models.DisplayPoint, p Presentation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s<br/>%s: %.4f%s", point.Time, p.Label, point.Value, p.Unit)

	if point.WindDirection != nil {
		fmt.Fprintf(&b, "<br/>Direction: %s %.1f°", DirectionArrow(*point.WindDirection), *point.WindDirection)
	}

	return b.String()
}

// DirectionArrow is an inline navigation glyph rotated by degrees.
func DirectionArrow(degrees float64) string {
	return fmt.Sprintf(`<svg width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" style="display: inline-block; transform: rotate(%gdeg); vertical-align: middle;"><polygon points="12 2 19 21 12 17 5 21 12 2"/></svg>`, degrees)
}
