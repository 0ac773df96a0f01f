package app

import (
	"fmt"

	"github.com/officialfindso-gif/samma/internal/config"
	"github.com/officialfindso-gif/samma/internal/service/batch"
	"github.com/officialfindso-gif/samma/internal/service/scrapecreators"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Container bundles the assembled services. The transport is created here once
// and shared by every fetch for the lifetime of the process.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Client   *scrapecreators.Client
	Runner   *batch.Runner

	closers []func()
}

// Build wires config -> transport -> client -> batch runner.
func Build(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics := scrapecreators.NewMetrics(registry)

	var (
		requester scrapecreators.Requester
		closers   []func()
	)
	if cfg.ScrapeCreators.MockMode() {
		logger.Warn("ScrapeCreators running in mock mode, no API calls will be made",
			zap.Bool("api_key_set", cfg.ScrapeCreators.APIKey != ""),
			zap.Bool("use_mock", cfg.ScrapeCreators.UseMock),
		)
	} else {
		transport := scrapecreators.NewTransport(cfg.ScrapeCreators.APIKey, cfg.ScrapeCreators.Timeout, logger)
		requester = transport
		closers = append(closers, transport.Close)
	}

	client, err := scrapecreators.NewClient(cfg.ScrapeCreators, requester, metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create scrape client: %w", err)
	}

	runner := batch.NewRunner(client, cfg.Batch.Concurrency, logger)

	logger.Info("Scrape services assembled",
		zap.String("base_url", cfg.ScrapeCreators.BaseURL),
		zap.Duration("timeout", cfg.ScrapeCreators.Timeout),
		zap.Int("concurrency", cfg.Batch.Concurrency),
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		Client:   client,
		Runner:   runner,
		closers:  closers,
	}, nil
}

// Close releases resources in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
