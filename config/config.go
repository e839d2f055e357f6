package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"weather-explorer/internal/models"
)

const DefaultConfigPath = "config/config.yaml"

type Config struct {
	App      AppConfig      `yaml:"app" envconfig:"APP"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Log      LogConfig      `yaml:"log" envconfig:"LOG"`
	Sentry   SentryConfig   `yaml:"sentry" envconfig:"SENTRY"`
	Dataset  DatasetConfig  `yaml:"dataset" envconfig:"DATASET"`
	Upstream UpstreamConfig `yaml:"upstream" envconfig:"UPSTREAM"`
	Explorer ExplorerConfig `yaml:"explorer" envconfig:"EXPLORER"`
}

type AppConfig struct {
	Name    string `yaml:"name" split_words:"true"`
	Version string `yaml:"version" split_words:"true"`
	Env     string `yaml:"env" split_words:"true"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port" split_words:"true"`
	ReadTimeout  int    `yaml:"read_timeout" split_words:"true"`
	WriteTimeout int    `yaml:"write_timeout" split_words:"true"`
	IdleTimeout  int    `yaml:"idle_timeout" split_words:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" split_words:"true"`
	Debug bool   `yaml:"debug" split_words:"true"`
}

// DatasetConfig points at the SQLite grid served by /api/weather.
type DatasetConfig struct {
	Path string `yaml:"path" split_words:"true"`
}

// UpstreamConfig is the weather endpoint the explorer sessions query.
type UpstreamConfig struct {
	BaseURL    string `yaml:"base_url" split_words:"true"`
	Timeout    int    `yaml:"timeout" split_words:"true"`
	MaxRetries int    `yaml:"max_retries" split_words:"true"`
}

type ExplorerConfig struct {
	CarouselIntervalMs int    `yaml:"carousel_interval_ms" split_words:"true"`
	DefaultFrom        string `yaml:"default_from" split_words:"true"`
	WindowDays         int    `yaml:"window_days" split_words:"true"`
	CacheTTL           int    `yaml:"cache_ttl" split_words:"true"`
	SessionTTL         int    `yaml:"session_ttl" split_words:"true"`
}

// ConfigProvider loads and validates configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads an optional YAML file, then applies environment overrides.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func NewConfig() (*Config, error) {
	path := DefaultConfigPath
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}
	return NewConfigWithProvider(NewFileConfigProvider(path))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaultConfig()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// Environment wins over the file
	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

// loadFromFile is a no-op when the file does not exist.
func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(cnf *Config) error {
	switch {
	case cnf.App.Name == "":
		return fmt.Errorf("app.name is required")
	case cnf.Server.Port == "":
		return fmt.Errorf("server.port is required")
	case cnf.Server.ReadTimeout <= 0 || cnf.Server.WriteTimeout <= 0 || cnf.Server.IdleTimeout <= 0:
		return fmt.Errorf("server timeouts must be positive")
	}

	switch cnf.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}

	switch cnf.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console")
	}

	if cnf.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}

	if cnf.Upstream.Timeout < 0 || cnf.Upstream.MaxRetries < 0 {
		return fmt.Errorf("upstream.timeout and upstream.max_retries must not be negative")
	}

	if cnf.Explorer.WindowDays <= 0 {
		return fmt.Errorf("explorer.window_days must be positive")
	}

	if cnf.Explorer.CarouselIntervalMs <= 0 {
		return fmt.Errorf("explorer.carousel_interval_ms must be positive")
	}

	if _, err := time.Parse(models.DateLayout, cnf.Explorer.DefaultFrom); err != nil {
		return fmt.Errorf("explorer.default_from must be YYYY-MM-DD: %w", err)
	}

	return nil
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-explorer",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Dataset: DatasetConfig{
			Path: "data/weather.db",
		},
		Upstream: UpstreamConfig{
			BaseURL:    "http://localhost:8080",
			Timeout:    10,
			MaxRetries: 3,
		},
		Explorer: ExplorerConfig{
			CarouselIntervalMs: 5000,
			DefaultFrom:        "2025-06-01",
			WindowDays:         11,
			CacheTTL:           600,
			SessionTTL:         1800,
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) CarouselInterval() time.Duration {
	return time.Duration(c.Explorer.CarouselIntervalMs) * time.Millisecond
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Explorer.CacheTTL) * time.Second
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Explorer.SessionTTL) * time.Second
}

func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.Timeout) * time.Second
}

// DefaultDateRange is the window pre-populated in a new explorer session.
func (c *Config) DefaultDateRange() models.DateRange {
	from, err := time.Parse(models.DateLayout, c.Explorer.DefaultFrom)
	if err != nil {
		return models.DateRange{}
	}
	return models.DefaultDateRange(from, c.Explorer.WindowDays)
}
