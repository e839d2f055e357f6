package models

import "fmt"

// MetricKind is the weather quantity being charted.
type MetricKind string

const (
	Temperature   MetricKind = "temperature"
	WindSpeed     MetricKind = "wind_speed"
	Precipitation MetricKind = "precipitation"
)

// MetricKinds lists the kinds in slide order.
var MetricKinds = []MetricKind{Temperature, WindSpeed, Precipitation}

// ParseMetricKind validates a raw type parameter.
func ParseMetricKind(s string) (MetricKind, error) {
	for _, k := range MetricKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid type %q, must be one of %v", s, MetricKinds)
}

func (k MetricKind) String() string {
	return string(k)
}

// Sample is one raw timestamped reading as served by the weather endpoint.
// Value is nil for a missing reading. Wind values are packed as "u,v".
type Sample struct {
	Timestamp int64   `json:"timestamp" example:"1748736000"`
	Value     *string `json:"value" example:"21.35"`
}

// StringValue is a helper to build a non-null sample value.
func StringValue(s string) *string {
	return &s
}
