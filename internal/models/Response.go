package models

// WeatherResponse is the body of GET /api/weather.
type WeatherResponse struct {
	Data     []Sample        `json:"data"`
	Metadata WeatherMetadata `json:"metadata"`
}

type WeatherMetadata struct {
	Latitude       float64    `json:"latitude" example:"39.9"`
	Longitude      float64    `json:"longitude" example:"116.4"`
	Type           MetricKind `json:"type" example:"temperature"`
	StartTimestamp int64      `json:"start_timestamp" example:"1748736000"`
	EndTimestamp   int64      `json:"end_timestamp" example:"1749686400"`
	Count          int        `json:"count" example:"44"`
}
