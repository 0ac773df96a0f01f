package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/officialfindso-gif/samma/internal/app"
	"github.com/officialfindso-gif/samma/internal/config"
	"github.com/officialfindso-gif/samma/internal/domain"
	"github.com/officialfindso-gif/samma/internal/service/batch"
	"github.com/officialfindso-gif/samma/internal/util"
	"github.com/officialfindso-gif/samma/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fetchMock        *bool
	fetchBaseURL     *string
	fetchConcurrency *int
)

func init() {
	fetchMock = fetchCmd.Flags().Bool("mock", false, "Return synthetic content instead of calling the API.")
	fetchBaseURL = fetchCmd.Flags().String("base-url", "", "Override SCRAPECREATORS_API_BASE.")
	fetchConcurrency = fetchCmd.Flags().Int("concurrency", 0, "Override SCRAPE_CONCURRENCY.")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <url> [url...] [--mock] [--base-url <url>] [--concurrency <n>]",
	Short: "Fetches each post URL and writes one JSON result per line to stdout.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(cmd, cfg)

		logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()

		container, err := app.Build(cfg, logger)
		if err != nil {
			return err
		}
		defer container.Close()

		if cfg.Metrics.Addr != "" {
			stopMetrics := serveMetrics(cfg.Metrics.Addr, container.Registry, logger)
			defer stopMetrics()
		}

		results := container.Runner.FetchAll(cmd.Context(), args)
		if err := writeResults(cmd.OutOrStdout(), results); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}

		if failed := batch.CountFailed(results); failed > 0 {
			return fmt.Errorf("%d of %d fetches failed", failed, len(results))
		}
		return nil
	},
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("mock") {
		cfg.ScrapeCreators.UseMock = *fetchMock
	}
	if flags.Changed("base-url") {
		cfg.ScrapeCreators.BaseURL = config.NormalizeBaseURL(*fetchBaseURL)
	}
	if flags.Changed("concurrency") {
		cfg.Batch.Concurrency = *fetchConcurrency
	}
}

type resultLine struct {
	URL     string                 `json:"url"`
	Content *domain.ScrapedContent `json:"content,omitempty"`
	Error   *errorLine             `json:"error,omitempty"`
}

type errorLine struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
}

func writeResults(w io.Writer, results []batch.Result) error {
	enc := json.NewEncoder(w)
	for _, res := range results {
		line := resultLine{URL: res.URL, Content: res.Content}
		if res.Err != nil {
			line.Content = nil
			line.Error = &errorLine{Code: errors.CodeOf(res.Err), Message: res.Err.Error()}
			if se, ok := errors.Innermost(res.Err); ok {
				line.Error.StatusCode = se.StatusCode
			}
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	return nil
}

func serveMetrics(addr string, registry *prometheus.Registry, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	logger.Info("Metrics server listening", zap.String("addr", addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}
