package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"weather-explorer/internal/models"
	"weather-explorer/pkg/logger"
)

// APIError carries the message the weather endpoint returned with a non-200 status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// APIRepository reads samples from GET /api/weather.
type APIRepository struct {
	baseURL    string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewAPIRepository(baseURL string, httpClient HTTPClient, l *logger.Logger) *APIRepository {
	return &APIRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		l:          l,
	}
}

func (a *APIRepository) Name() string {
	return "weather-api"
}

// QueryURL builds the request URL for key. The range must be complete.
func (a *APIRepository) QueryURL(key models.QueryKey) string {
	lat, lon := key.Location.Rounded()

	q := url.Values{}
	q.Set("start_time", strconv.FormatInt(key.Range.From.Unix(), 10))
	q.Set("end_time", strconv.FormatInt(dayEnd(key.Range.To), 10))
	q.Set("lat", strconv.FormatFloat(lat, 'f', 2, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 2, 64))
	q.Set("type", key.Kind.String())

	return a.baseURL + "/api/weather?" + q.Encode()
}

func (a *APIRepository) FetchSamples(ctx context.Context, key models.QueryKey) ([]models.Sample, error) {
	if !key.Range.Complete() {
		return nil, fmt.Errorf("incomplete date range %s", key.Range)
	}

	u := a.QueryURL(key)

	a.l.Debug("requesting weather samples", map[string]any{
		"repository": a.Name(),
		"url":        u,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		msg := resp.Status
		if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		a.l.Warning("weather API returned an error", map[string]any{
			"repository": a.Name(),
			"status":     resp.StatusCode,
			"message":    msg,
		})
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	var response models.WeatherResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	a.l.Debug("received weather samples", map[string]any{
		"repository": a.Name(),
		"kind":       key.Kind,
		"count":      len(response.Data),
	})

	if response.Data == nil {
		return []models.Sample{}, nil
	}

	return response.Data, nil
}
