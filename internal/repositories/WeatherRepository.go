package repositories

import (
	"context"
	"net/http"
	"time"

	"weather-explorer/config"
	"weather-explorer/internal/models"
	"weather-explorer/pkg/logger"
	"weather-explorer/pkg/resilience"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SampleRepository fetches the raw series behind one chart slide.
type SampleRepository interface {
	Name() string
	FetchSamples(ctx context.Context, key models.QueryKey) ([]models.Sample, error)
}

// InitSampleRepository wires the weather endpoint client used by explorer sessions.
func InitSampleRepository(cfg *config.Config, l *logger.Logger) SampleRepository {
	rc := resilience.DefaultConfig("weather-api")
	rc.Timeout = cfg.UpstreamTimeout()
	rc.MaxRetries = uint64(cfg.Upstream.MaxRetries)

	var repo SampleRepository = NewAPIRepository(cfg.Upstream.BaseURL, resilience.NewClient(rc), l)

	if ttl := cfg.CacheTTL(); ttl > 0 {
		repo = NewCachedRepository(repo, ttl, l)
	}

	return repo
}

// dayEnd is the query end for an inclusive date range: the whole last day is included.
func dayEnd(t time.Time) int64 {
	return t.Unix() + 86400
}
