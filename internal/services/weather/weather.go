package weather

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"weather-explorer/internal/models"
	"weather-explorer/internal/repositories"
	"weather-explorer/pkg/logger"
)

var ErrNoData = errors.New("No data available for the specified time range")

// ValidationError is a client mistake in the query parameters.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// IsClientError reports whether err should be answered with 400.
func IsClientError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrNoData)
}

// GridStore is the read side of the gridded dataset.
type GridStore interface {
	NearestPoint(ctx context.Context, lat, lon float64) (repositories.GridPoint, error)
	Samples(ctx context.Context, p repositories.GridPoint, start, end int64) ([]repositories.GridRecord, error)
}

// Query is a validated /api/weather request.
type Query struct {
	StartTime int64
	EndTime   int64
	Latitude  float64
	Longitude float64
	Type      models.MetricKind
}

// ParseQuery validates raw query parameters in the order the endpoint reports them.
func ParseQuery(startTime, endTime, lat, lon, kind string) (Query, error) {
	var q Query

	if startTime == "" || endTime == "" || lat == "" || lon == "" || kind == "" {
		return q, invalid("Missing required parameters. Need: start_time, end_time, lat, lon, type")
	}

	var err error
	if q.StartTime, err = strconv.ParseInt(startTime, 10, 64); err != nil {
		return q, invalid("start_time must be an integer epoch timestamp")
	}
	if q.EndTime, err = strconv.ParseInt(endTime, 10, 64); err != nil {
		return q, invalid("end_time must be an integer epoch timestamp")
	}
	if q.Latitude, err = strconv.ParseFloat(lat, 64); err != nil || math.IsNaN(q.Latitude) {
		return q, invalid("lat must be a number")
	}
	if q.Longitude, err = strconv.ParseFloat(lon, 64); err != nil || math.IsNaN(q.Longitude) {
		return q, invalid("lon must be a number")
	}

	if q.Type, err = models.ParseMetricKind(kind); err != nil {
		return q, invalid(fmt.Sprintf("Invalid type. Must be one of: %v", models.MetricKinds))
	}

	if q.StartTime >= q.EndTime {
		return q, invalid("start_time must be less than end_time")
	}

	if q.Latitude < -90 || q.Latitude > 90 || q.Longitude < -180 || q.Longitude > 180 {
		return q, invalid("Invalid coordinates. Latitude must be [-90, 90], longitude must be [-180, 180]")
	}

	return q, nil
}

// WeatherService answers sample queries from the grid dataset.
type WeatherService struct {
	store GridStore
	l     *logger.Logger
}

func NewWeatherService(store GridStore, l *logger.Logger) *WeatherService {
	return &WeatherService{
		store: store,
		l:     l,
	}
}

// FetchWeather returns the series of q.Type at the grid node nearest to the query point.
func (s *WeatherService) FetchWeather(ctx context.Context, q Query) (models.WeatherResponse, error) {
	s.l.Debug("fetching weather samples", map[string]any{
		"lat":   q.Latitude,
		"lon":   q.Longitude,
		"type":  q.Type,
		"start": q.StartTime,
		"end":   q.EndTime,
	})

	point, err := s.store.NearestPoint(ctx, q.Latitude, q.Longitude)
	if errors.Is(err, repositories.ErrEmptyGrid) {
		return models.WeatherResponse{}, ErrNoData
	}
	if err != nil {
		return models.WeatherResponse{}, errors.Wrap(err, "failed to locate grid point")
	}

	records, err := s.store.Samples(ctx, point, q.StartTime, q.EndTime)
	if err != nil {
		return models.WeatherResponse{}, errors.Wrap(err, "failed to read samples")
	}

	if len(records) == 0 {
		return models.WeatherResponse{}, ErrNoData
	}

	data := make([]models.Sample, 0, len(records))
	for _, r := range records {
		data = append(data, models.Sample{
			Timestamp: r.Time,
			Value:     valueOf(r, q.Type),
		})
	}

	s.l.Info("served weather samples", map[string]any{
		"type":     q.Type,
		"gridLat":  point.Latitude,
		"gridLon":  point.Longitude,
		"count":    len(data),
		"rowCount": len(records),
	})

	return models.WeatherResponse{
		Data: data,
		Metadata: models.WeatherMetadata{
			Latitude:       q.Latitude,
			Longitude:      q.Longitude,
			Type:           q.Type,
			StartTimestamp: q.StartTime,
			EndTimestamp:   q.EndTime,
			Count:          len(data),
		},
	}, nil
}

// valueOf extracts the reading for kind; nil marks a missing or non-finite value.
func valueOf(r repositories.GridRecord, kind models.MetricKind) *string {
	switch kind {
	case models.Temperature:
		if !finite(r.T2m) {
			return nil
		}
		return models.StringValue(formatFloat(*r.T2m - 273.15))
	case models.WindSpeed:
		if !finite(r.U10) || !finite(r.V10) {
			return nil
		}
		return models.StringValue(formatFloat(*r.U10) + "," + formatFloat(*r.V10))
	case models.Precipitation:
		if !finite(r.Tp6h) {
			return nil
		}
		return models.StringValue(formatFloat(*r.Tp6h))
	}
	return nil
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
