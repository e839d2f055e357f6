// Package series turns raw endpoint samples into chart-ready display series.
package series

import (
	"math"
	"strconv"
	"strings"
	"time"

	"weather-explorer/internal/models"
)

const timeLayout = "2006/01/02 15:00"

// Series is a display series plus the metadata the chart renderer needs.
type Series struct {
	Kind         models.MetricKind     `json:"kind"`
	Presentation Presentation          `json:"presentation"`
	Points       []models.DisplayPoint `json:"points"`
	// Tooltips holds the hover content of Points[i] at index i.
	Tooltips []string `json:"tooltips"`
}

// Build transforms samples and attaches the presentation for kind.
func Build(samples []models.Sample, kind models.MetricKind) Series {
	p := PresentationFor(kind)
	points := Transform(samples, kind)

	tooltips := make([]string, len(points))
	for i, point := range points {
		tooltips[i] = Tooltip(point, p)
	}

	return Series{
		Kind:         kind,
		Presentation: p,
		Points:       points,
		Tooltips:     tooltips,
	}
}

// Labels returns the category labels in point order.
func (s Series) Labels() []string {
	labels := make([]string, len(s.Points))
	for i, p := range s.Points {
		labels[i] = p.Time
	}
	return labels
}

// Values returns the plotted values in point order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// Transform converts samples into display points. Null and malformed values
// are dropped; input order is preserved.
func Transform(samples []models.Sample, kind models.MetricKind) []models.DisplayPoint {
	points := make([]models.DisplayPoint, 0, len(samples))

	for _, s := range samples {
		if s.Value == nil {
			continue
		}

		point := models.DisplayPoint{Time: FormatTime(s.Timestamp)}

		if kind == models.WindSpeed {
			u, v, ok := parseVector(*s.Value)
			if !ok {
				continue
			}
			direction := WindDirection(u, v)
			point.Value = WindSpeed(u, v)
			point.WindDirection = &direction
		} else {
			value, ok := parseDecimal(*s.Value)
			if !ok {
				continue
			}
			point.Value = value
		}

		points = append(points, point)
	}

	return points
}

// WindSpeed is the magnitude of the (u, v) wind vector.
func WindSpeed(u, v float64) float64 {
	return math.Sqrt(u*u + v*v)
}

// WindDirection returns the meteorological bearing in [0, 360): the compass
// direction the wind blows from, 0 = north, clockwise.
func WindDirection(u, v float64) float64 {
	direction := math.Atan2(v, u) * (180 / math.Pi)
	direction = math.Mod(90-direction+360, 360)
	if direction < 0 {
		direction += 360
	}
	if direction >= 360 {
		direction -= 360
	}
	return direction
}

// FormatTime renders an epoch-seconds timestamp from its UTC fields.
func FormatTime(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(timeLayout)
}

func parseVector(raw string) (u, v float64, ok bool) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	if u, ok = parseDecimal(parts[0]); !ok {
		return 0, 0, false
	}
	if v, ok = parseDecimal(parts[1]); !ok {
		return 0, 0, false
	}
	return u, v, true
}

func parseDecimal(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
