package models

// DisplayPoint is a processed, render-ready data point.
type DisplayPoint struct {
	Time          string   `json:"time" example:"2025/06/01 06:00"`
	Value         float64  `json:"value" example:"3.61"`
	WindDirection *float64 `json:"wind_direction,omitempty" example:"213.7"`
}
