package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-explorer/internal/carousel"
	"weather-explorer/internal/models"
	"weather-explorer/internal/repositories"
	"weather-explorer/internal/services/explorer"
	"weather-explorer/internal/services/weather"
	"weather-explorer/pkg/httpserver"
	"weather-explorer/pkg/logger"
)

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

type stubSamples struct{}

func (stubSamples) Name() string { return "stub" }

func (stubSamples) FetchSamples(_ context.Context, key models.QueryKey) ([]models.Sample, error) {
	v := "12.5"
	if key.Kind == models.WindSpeed {
		v = "3,4"
	}
	return []models.Sample{{Timestamp: 1748736000, Value: &v}}, nil
}

func f(v float64) *float64 { return &v }

func setupApp(t *testing.T) (*fiber.App, *explorer.Store) {
	t.Helper()
	ctx := context.Background()

	grid, err := repositories.OpenGrid(ctx, filepath.Join(t.TempDir(), "grid.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = grid.Close() })

	require.NoError(t, grid.Insert(ctx, []repositories.GridRecord{
		{Time: 1748736000, Latitude: 40, Longitude: 116.5, T2m: f(293.15), U10: f(3), V10: f(4), Tp6h: f(0.5)},
		{Time: 1748757600, Latitude: 40, Longitude: 116.5, T2m: nil, U10: f(1), V10: f(0), Tp6h: f(0)},
	}))

	l := logger.Nop()
	store := explorer.NewStore(stubSamples{}, l, explorer.Options{
		DefaultRange: models.NewDateRange(
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		),
		CarouselOptions: []carousel.Option{carousel.WithAfterFunc(func(time.Duration, func()) carousel.Timer {
			return noopTimer{}
		})},
	}, time.Hour)

	app := httpserver.InitFiberServer(httpserver.Options{AppName: "test"}, l)
	NewRouter(app, weather.NewWeatherService(grid, l), store, l)

	return app, store
}

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func errorOf(t *testing.T, data []byte) string {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(data, &e))
	return e.Error
}

func TestWeatherEndpoint(t *testing.T) {
	app, _ := setupApp(t)

	resp, data := do(t, app, http.MethodGet,
		"/api/weather?start_time=1748736000&end_time=1749686400&lat=39.9&lon=116.4&type=wind_speed", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.WeatherResponse
	require.NoError(t, json.Unmarshal(data, &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "3,4", *body.Data[0].Value)
	assert.Equal(t, "1,0", *body.Data[1].Value)
	assert.Equal(t, models.WeatherMetadata{
		Latitude:       39.9,
		Longitude:      116.4,
		Type:           models.WindSpeed,
		StartTimestamp: 1748736000,
		EndTimestamp:   1749686400,
		Count:          2,
	}, body.Metadata)
}

func TestWeatherEndpoint_NullReading(t *testing.T) {
	app, _ := setupApp(t)

	resp, data := do(t, app, http.MethodGet,
		"/api/weather?start_time=1748736000&end_time=1749686400&lat=39.9&lon=116.4&type=temperature", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"value":null`)
}

func TestWeatherEndpoint_Errors(t *testing.T) {
	app, _ := setupApp(t)

	tests := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{"missing", "?start_time=1&end_time=2&lat=1&lon=1", "Missing required parameters. Need: start_time, end_time, lat, lon, type"},
		{"bad type", "?start_time=1&end_time=2&lat=1&lon=1&type=snow", "Invalid type. Must be one of: [temperature wind_speed precipitation]"},
		{"order", "?start_time=5&end_time=2&lat=1&lon=1&type=temperature", "start_time must be less than end_time"},
		{"coords", "?start_time=1&end_time=2&lat=100&lon=1&type=temperature", "Invalid coordinates. Latitude must be [-90, 90], longitude must be [-180, 180]"},
		{"no data", "?start_time=1&end_time=2&lat=1&lon=1&type=temperature", "No data available for the specified time range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, app, http.MethodGet, "/api/weather"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.wantMsg, errorOf(t, data))
		})
	}
}

func TestHealthAndNotFound(t *testing.T) {
	app, _ := setupApp(t)

	resp, data := do(t, app, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(data, &health))
	assert.Equal(t, HealthResponse{Status: "healthy", Message: "Weather API is running"}, health)

	resp, data = do(t, app, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Endpoint not found", errorOf(t, data))

	resp, _ = do(t, app, http.MethodGet, "/manage/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, data := do(t, app, http.MethodPost, "/explorer/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created SessionCreatedResponse
	require.NoError(t, json.Unmarshal(data, &created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestExplorerFlow(t *testing.T) {
	app, store := setupApp(t)
	id := createSession(t, app)
	base := "/explorer/sessions/" + id

	resp, data := do(t, app, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var v explorer.View
	require.NoError(t, json.Unmarshal(data, &v))
	assert.False(t, v.Open)
	assert.Equal(t, "2025-06-01", v.Range.From)

	resp, _ = do(t, app, http.MethodPost, base+"/carousel/next", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, data = do(t, app, http.MethodPut, base+"/selection", `{"longitude": 116.4, "latitude": 39.9, "label": "Beijing"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &v))
	assert.True(t, v.Open)
	assert.Len(t, v.Slides, 3)

	s, err := store.Get(id)
	require.NoError(t, err)
	s.Wait()

	resp, data = do(t, app, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &v))
	for _, slide := range v.Slides {
		assert.Equal(t, explorer.StatusReady, slide.Status)
		assert.Len(t, slide.Series.Tooltips, len(slide.Series.Points))
	}

	resp, data = do(t, app, http.MethodPost, base+"/carousel/prev", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st carousel.State
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, 2, st.Index)

	resp, data = do(t, app, http.MethodPut, base+"/carousel/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, 1, st.Index)

	resp, _ = do(t, app, http.MethodPut, base+"/carousel/7", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, base+"/carousel/spin", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data = do(t, app, http.MethodPost, base+"/carousel/pause", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &st))
	assert.False(t, st.Running)

	resp, data = do(t, app, http.MethodGet, base+"/slides/0/chart.svg", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "image/svg+xml")
	assert.Contains(t, string(data), "<svg")

	resp, _ = do(t, app, http.MethodGet, base+"/slides/9/chart.svg", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data = do(t, app, http.MethodDelete, base+"/selection", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &v))
	assert.False(t, v.Open)

	resp, _ = do(t, app, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = do(t, app, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, explorer.ErrSessionNotFound.Error(), errorOf(t, data))
}

func TestExplorerRange(t *testing.T) {
	app, _ := setupApp(t)
	base := "/explorer/sessions/" + createSession(t, app)

	resp, data := do(t, app, http.MethodPut, base+"/range", `{"from": "2025-06-05", "to": "2025-06-02"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, explorer.ErrInvalidDateRange.Error(), errorOf(t, data))

	resp, _ = do(t, app, http.MethodPut, base+"/range", `{"from": "June 5th"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data = do(t, app, http.MethodPut, base+"/range", `{"from": "2025-06-02"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var v explorer.View
	require.NoError(t, json.Unmarshal(data, &v))
	assert.Equal(t, explorer.RangeView{From: "2025-06-02"}, v.Range)
}

func TestExplorerSelectValidation(t *testing.T) {
	app, _ := setupApp(t)
	base := "/explorer/sessions/" + createSession(t, app)

	resp, _ := do(t, app, http.MethodPut, base+"/selection", `{"longitude": 200, "latitude": 0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPut, base+"/selection", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPut, "/explorer/sessions/missing/selection", `{"longitude": 1, "latitude": 1}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
