package scrapecreators

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/officialfindso-gif/samma/internal/constants"
	"go.uber.org/zap"
)

// RawResponse is an undecoded reply from the remote API.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Requester issues one GET against an endpoint with the post URL as the "url" query parameter.
// Transport-level failures are returned as errors; any HTTP status is returned as a response.
type Requester interface {
	Get(ctx context.Context, endpoint, postURL string) (*RawResponse, error)
}

// Transport is the shared connection-pooled client. The underlying resty client is
// built on first use, exactly once, and is read-only afterwards.
type Transport struct {
	apiKey  string
	timeout time.Duration
	logger  *zap.Logger

	once   sync.Once
	client *resty.Client
}

func NewTransport(apiKey string, timeout time.Duration, logger *zap.Logger) *Transport {
	if timeout <= 0 {
		timeout = constants.APIConfig.RequestTimeout
	}
	return &Transport{
		apiKey:  apiKey,
		timeout: timeout,
		logger:  logger,
	}
}

func (t *Transport) Get(ctx context.Context, endpoint, postURL string) (*RawResponse, error) {
	resp, err := t.http().R().
		SetContext(ctx).
		SetQueryParam("url", postURL).
		Get(endpoint)
	if err != nil {
		return nil, err
	}

	return &RawResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}

// Close releases idle pooled connections. The transport must not be used afterwards.
func (t *Transport) Close() {
	t.once.Do(func() {})
	if t.client != nil {
		t.client.GetClient().CloseIdleConnections()
	}
}

func (t *Transport) http() *resty.Client {
	t.once.Do(func() {
		client := resty.New().
			SetTimeout(t.timeout).
			SetTransport(newPooledTransport()).
			SetLogger(t.logger.Sugar())

		if t.apiKey == "" {
			t.logger.Warn("SCRAPECREATORS_API_KEY is not set, transport has no auth header")
		} else {
			client.SetHeader(constants.APIConfig.APIKeyHeader, t.apiKey)
		}

		t.client = client
		t.logger.Debug("ScrapeCreators transport initialized", zap.Duration("timeout", t.timeout))
	})
	return t.client
}

func newPooledTransport() *http.Transport {
	cfg := constants.TransportConfig
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: cfg.KeepAlive,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
	}
}
