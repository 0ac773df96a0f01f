package scrapecreators

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"time"

	"github.com/officialfindso-gif/samma/internal/config"
	"github.com/officialfindso-gif/samma/internal/domain"
	"github.com/officialfindso-gif/samma/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Client resolves a post URL to normalized content through the ScrapeCreators API.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	cfg       config.ScrapeCreatorsConfig
	requester Requester
	metrics   *Metrics
	logger    *zap.Logger
}

// NewClient builds a client. requester may be nil only when cfg is in mock mode.
func NewClient(cfg config.ScrapeCreatorsConfig, requester Requester, metrics *Metrics, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if requester == nil && !cfg.MockMode() {
		return nil, fmt.Errorf("requester must not be nil in live mode")
	}
	cfg.BaseURL = config.NormalizeBaseURL(cfg.BaseURL)

	return &Client{
		cfg:       cfg,
		requester: requester,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// Fetch detects the platform of postURL and returns its normalized content from the
// first endpoint that answers with a JSON document.
func (c *Client) Fetch(ctx context.Context, postURL string) (*domain.ScrapedContent, error) {
	platform := domain.DetectPlatform(postURL)
	c.logger.Info("Fetching post content",
		zap.String("platform", platform.String()),
		zap.String("url", postURL),
	)

	if c.cfg.MockMode() {
		c.logger.Warn("API key missing or mock mode enabled, returning test data",
			zap.String("platform", platform.String()),
		)
		c.metrics.recordFetch(platform, resultMock)
		return MockContent(postURL, platform), nil
	}

	endpoints, ok := Endpoints(c.cfg.BaseURL, platform)
	if !ok {
		c.metrics.recordFetch(platform, resultFailure)
		return nil, errors.NewUnsupportedPlatformError(platform.String(), postURL)
	}

	body, err := c.fetchFirst(ctx, platform, endpoints, postURL)
	if err != nil {
		c.metrics.recordFetch(platform, resultFailure)
		return nil, err
	}

	c.metrics.recordFetch(platform, resultSuccess)
	return Normalize(body, postURL, platform), nil
}

// fetchFirst tries endpoints strictly in order and returns the first JSON body.
// Per-endpoint failures are logged and swallowed; only exhaustion is returned.
func (c *Client) fetchFirst(ctx context.Context, platform domain.Platform, endpoints []string, postURL string) ([]byte, error) {
	var lastErr error

	for i, endpoint := range endpoints {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fetch %s cancelled: %w", platform, err)
		}

		c.logger.Info("Trying endpoint",
			zap.String("endpoint", endpoint),
			zap.Int("attempt", i+1),
			zap.Int("of", len(endpoints)),
		)

		start := time.Now()
		body, err := c.attempt(ctx, platform, endpoint, postURL)
		c.metrics.recordAttempt(platform, err, time.Since(start))

		if err == nil {
			c.logger.Debug("Endpoint succeeded",
				zap.String("endpoint", endpoint),
				zap.Strings("keys", topLevelKeys(body)),
			)
			return body, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("fetch %s cancelled: %w", platform, ctxErr)
		}

		lastErr = err
		c.logger.Warn("Endpoint failed, trying next",
			zap.String("endpoint", endpoint),
			zap.String("code", errors.CodeOf(err)),
			zap.Error(err),
		)
	}

	return nil, errors.NewAllEndpointsFailedError(platform.String(), len(endpoints), lastErr)
}

func (c *Client) attempt(ctx context.Context, platform domain.Platform, endpoint, postURL string) ([]byte, error) {
	resp, err := c.requester.Get(ctx, endpoint, postURL)
	if err != nil {
		if isTimeout(err) {
			return nil, errors.NewTimeoutError(platform.String(), endpoint, err)
		}
		return nil, errors.NewNetworkError(endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewStatusError(resp.StatusCode, string(resp.Body), endpoint)
	}
	if !gjson.ValidBytes(resp.Body) {
		return nil, errors.NewInvalidResponseError(resp.StatusCode, string(resp.Body), endpoint)
	}

	return resp.Body, nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

func topLevelKeys(body []byte) []string {
	keys := make([]string, 0)
	gjson.ParseBytes(body).ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}
