package batch

import (
	"context"

	"github.com/officialfindso-gif/samma/internal/domain"
	"github.com/officialfindso-gif/samma/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Fetcher resolves one post URL to normalized content.
type Fetcher interface {
	Fetch(ctx context.Context, postURL string) (*domain.ScrapedContent, error)
}

// Result is the outcome for one input URL. Exactly one of Content and Err is set.
type Result struct {
	URL     string
	Content *domain.ScrapedContent
	Err     error
}

// Runner fetches many URLs with bounded parallelism. Each individual fetch keeps
// its own sequential endpoint fallback.
type Runner struct {
	fetcher     Fetcher
	concurrency int
	logger      *zap.Logger
}

func NewRunner(fetcher Fetcher, concurrency int, logger *zap.Logger) *Runner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Runner{
		fetcher:     fetcher,
		concurrency: concurrency,
		logger:      logger,
	}
}

// FetchAll returns one Result per URL, in input order.
func (r *Runner) FetchAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))
	if len(urls) == 0 {
		return results
	}

	p := pool.New().WithMaxGoroutines(r.concurrency)
	for idx, postURL := range urls {
		idx, postURL := idx, postURL
		p.Go(func() {
			content, err := r.fetcher.Fetch(ctx, postURL)
			results[idx] = Result{URL: postURL, Content: content, Err: err}
		})
	}
	p.Wait()

	failed := CountFailed(results)
	r.logger.Info("Batch fetch completed",
		zap.Int("total", len(results)),
		zap.Int("succeeded", len(results)-failed),
		zap.Int("failed", failed),
	)
	for _, res := range results {
		if res.Err != nil {
			r.logger.Warn("Fetch failed",
				zap.String("url", res.URL),
				zap.String("code", errors.CodeOf(res.Err)),
				zap.Error(res.Err),
			)
		}
	}

	return results
}

func CountFailed(results []Result) int {
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	return failed
}
