package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/officialfindso-gif/samma/internal/constants"
	"github.com/officialfindso-gif/samma/pkg/errors"
)

type Config struct {
	ScrapeCreators ScrapeCreatorsConfig
	Batch          BatchConfig
	Metrics        MetricsConfig
	Logging        LoggingConfig
}

// ScrapeCreatorsConfig is resolved once and handed to the scrape client by value.
type ScrapeCreatorsConfig struct {
	APIKey  string
	BaseURL string
	UseMock bool
	Timeout time.Duration
}

// MockMode is on when no key is configured or mock mode was requested explicitly.
func (c ScrapeCreatorsConfig) MockMode() bool {
	return c.APIKey == "" || c.UseMock
}

type BatchConfig struct {
	Concurrency int
}

type MetricsConfig struct {
	Addr string
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ScrapeCreators: ScrapeCreatorsConfig{
			APIKey:  getEnv("SCRAPECREATORS_API_KEY", ""),
			BaseURL: NormalizeBaseURL(getEnv("SCRAPECREATORS_API_BASE", constants.APIConfig.ScrapeCreatorsBaseURL)),
			UseMock: getEnvBool("SCRAPECREATORS_USE_MOCK", false),
			Timeout: getEnvSeconds("SCRAPECREATORS_TIMEOUT_SECONDS", constants.APIConfig.RequestTimeout),
		},
		Batch: BatchConfig{
			Concurrency: getEnvInt("SCRAPE_CONCURRENCY", constants.BatchConfig.DefaultConcurrency),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.ScrapeCreators.Validate(); err != nil {
		return err
	}
	if c.Batch.Concurrency <= 0 {
		return errors.NewValidationError("SCRAPE_CONCURRENCY must be positive", "SCRAPE_CONCURRENCY", c.Batch.Concurrency)
	}
	return nil
}

func (c ScrapeCreatorsConfig) Validate() error {
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.NewValidationError("SCRAPECREATORS_API_BASE must be an absolute URL", "SCRAPECREATORS_API_BASE", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return errors.NewValidationError("SCRAPECREATORS_TIMEOUT_SECONDS must be positive", "SCRAPECREATORS_TIMEOUT_SECONDS", c.Timeout.String())
	}
	return nil
}

// NormalizeBaseURL strips a trailing slash and then a trailing "/v1" so endpoint
// paths can always be built as <base>/v1/... or <base>/v2/...
func NormalizeBaseURL(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	return strings.TrimSuffix(base, "/v1")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
