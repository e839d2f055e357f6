package models

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// SelectedLocation is produced by a map click.
type SelectedLocation struct {
	Longitude float64 `json:"longitude" example:"116.40"`
	Latitude  float64 `json:"latitude" example:"39.90"`
	Label     *string `json:"label,omitempty" example:"Beijing"`
}

// Rounded returns the coordinates at the precision used in weather queries.
func (l SelectedLocation) Rounded() (lat, lon float64) {
	return round2(l.Latitude), round2(l.Longitude)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DateRange is an inclusive range of calendar days. A zero bound is unset.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// NewDateRange truncates both bounds to UTC midnight.
func NewDateRange(from, to time.Time) DateRange {
	return DateRange{From: midnight(from), To: midnight(to)}
}

// DefaultDateRange returns the window of days starting at from.
func DefaultDateRange(from time.Time, days int) DateRange {
	from = midnight(from)
	return DateRange{From: from, To: from.AddDate(0, 0, days-1)}
}

// ParseDateRange parses YYYY-MM-DD bounds; an empty string leaves the bound unset.
func ParseDateRange(from, to string) (DateRange, error) {
	var r DateRange
	if from != "" {
		t, err := time.Parse(DateLayout, from)
		if err != nil {
			return r, fmt.Errorf("invalid from date %q: %w", from, err)
		}
		r.From = t
	}
	if to != "" {
		t, err := time.Parse(DateLayout, to)
		if err != nil {
			return r, fmt.Errorf("invalid to date %q: %w", to, err)
		}
		r.To = t
	}
	return r, nil
}

// Complete reports whether both bounds are set.
func (r DateRange) Complete() bool {
	return !r.From.IsZero() && !r.To.IsZero()
}

// Valid reports whether a complete range is ordered.
func (r DateRange) Valid() bool {
	return !r.Complete() || !r.From.After(r.To)
}

// Days is the inclusive day count of a complete range.
func (r DateRange) Days() int {
	if !r.Complete() {
		return 0
	}
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", formatDate(r.From), formatDate(r.To))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "?"
	}
	return t.Format(DateLayout)
}

func midnight(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// QueryKey identifies one sample fetch. Any change of a component is a new fetch.
type QueryKey struct {
	Kind     MetricKind
	Location SelectedLocation
	Range    DateRange
}

// CacheKey is a comparable form of the key at query precision.
func (k QueryKey) CacheKey() string {
	lat, lon := k.Location.Rounded()
	return fmt.Sprintf("%s:%.2f:%.2f:%s", k.Kind, lat, lon, k.Range)
}
