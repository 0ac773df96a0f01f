package scrapecreators

import (
	"strings"
	"time"

	"github.com/officialfindso-gif/samma/internal/domain"
	"github.com/officialfindso-gif/samma/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess = "success"
	resultMock    = "mock"
	resultFailure = "failure"
)

// Metrics holds fetch counters. A nil *Metrics records nothing.
type Metrics struct {
	EndpointAttempts *prometheus.CounterVec
	EndpointDuration *prometheus.HistogramVec
	Fetches          *prometheus.CounterVec
}

// NewMetrics registers the scrape metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EndpointAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapecreators_endpoint_attempts_total",
			Help: "Endpoint attempts by platform and outcome (success or error code)",
		}, []string{"platform", "outcome"}),
		EndpointDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scrapecreators_endpoint_duration_seconds",
			Help:    "Latency of single endpoint attempts",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"platform"}),
		Fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapecreators_fetch_total",
			Help: "Fetch calls by platform and result (success, mock, failure)",
		}, []string{"platform", "result"}),
	}
}

func (m *Metrics) recordAttempt(platform domain.Platform, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.EndpointAttempts.WithLabelValues(platform.String(), attemptOutcome(err)).Inc()
	m.EndpointDuration.WithLabelValues(platform.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) recordFetch(platform domain.Platform, result string) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(platform.String(), result).Inc()
}

func attemptOutcome(err error) string {
	if err == nil {
		return resultSuccess
	}
	if code := errors.CodeOf(err); code != "" {
		return strings.ToLower(code)
	}
	return "error"
}
