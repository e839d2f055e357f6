package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-explorer/internal/models"
	"weather-explorer/pkg/logger"
)

func testKey(kind models.MetricKind) models.QueryKey {
	return models.QueryKey{
		Kind:     kind,
		Location: models.SelectedLocation{Longitude: 116.4049, Latitude: 39.9042},
		Range: models.NewDateRange(
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		),
	}
}

func TestAPIRepository_QueryURL(t *testing.T) {
	repo := NewAPIRepository("http://weather.local/", http.DefaultClient, logger.Nop())

	u, err := url.Parse(repo.QueryURL(testKey(models.WindSpeed)))
	require.NoError(t, err)

	assert.Equal(t, "/api/weather", u.Path)
	q := u.Query()
	assert.Equal(t, "1748736000", q.Get("start_time"))
	// 2025-06-11 00:00 UTC plus one day
	assert.Equal(t, "1749686400", q.Get("end_time"))
	assert.Equal(t, "39.90", q.Get("lat"))
	assert.Equal(t, "116.40", q.Get("lon"))
	assert.Equal(t, "wind_speed", q.Get("type"))
}

func TestAPIRepository_FetchSamples(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "temperature", r.URL.Query().Get("type"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.WeatherResponse{
			Data: []models.Sample{
				{Timestamp: 1748736000, Value: models.StringValue("21.5")},
				{Timestamp: 1748757600, Value: nil},
			},
			Metadata: models.WeatherMetadata{Type: models.Temperature, Count: 2},
		})
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL, server.Client(), logger.Nop())

	samples, err := repo.FetchSamples(context.Background(), testKey(models.Temperature))
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "21.5", *samples[0].Value)
	assert.Nil(t, samples[1].Value)
}

func TestAPIRepository_EmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": null}`))
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL, server.Client(), logger.Nop())

	samples, err := repo.FetchSamples(context.Background(), testKey(models.Precipitation))
	require.NoError(t, err)
	assert.NotNil(t, samples)
	assert.Empty(t, samples)
}

func TestAPIRepository_ErrorHandling(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "server message surfaced",
			status:     http.StatusBadRequest,
			body:       `{"error": "No data available for the specified time range"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "No data available for the specified time range",
		},
		{
			name:       "no json body",
			status:     http.StatusNotFound,
			body:       "not here",
			wantStatus: http.StatusNotFound,
			wantMsg:    "404 Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			repo := NewAPIRepository(server.URL, server.Client(), logger.Nop())

			_, err := repo.FetchSamples(context.Background(), testKey(models.Temperature))
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Error())
		})
	}
}

func TestAPIRepository_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	repo := NewAPIRepository(server.URL, server.Client(), logger.Nop())

	_, err := repo.FetchSamples(context.Background(), testKey(models.Temperature))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON response")
}

func TestAPIRepository_IncompleteRange(t *testing.T) {
	repo := NewAPIRepository("http://unused", http.DefaultClient, logger.Nop())

	key := testKey(models.Temperature)
	key.Range.To = time.Time{}

	_, err := repo.FetchSamples(context.Background(), key)
	assert.Error(t, err)
}
