package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/company-scraper/internal/config"
	"github.com/sells-group/company-scraper/internal/model"
	"github.com/sells-group/company-scraper/internal/pipeline"
	"github.com/sells-group/company-scraper/internal/resilience"
	"github.com/sells-group/company-scraper/internal/scrape"
	"github.com/sells-group/company-scraper/internal/store"
)

// buildPipeline wires the scrape engines and extraction pipeline from config.
func buildPipeline(c *config.Config) (*pipeline.Pipeline, error) {
	retry := resilience.DefaultRetryPolicy()
	retry.MaxAttempts = c.Fetch.MaxAttempts

	engines, err := scrape.NewEngines(c.Scrape.Engines, scrape.EngineOptions{
		Local: scrape.LocalOptions{
			Timeout:      c.Fetch.Timeout(),
			UserAgent:    c.Fetch.UserAgent,
			MaxBodyBytes: c.Fetch.MaxBodyBytes,
			Retry:        retry,
		},
		Colly: scrape.CollyOptions{
			Timeout:      c.Fetch.Timeout(),
			UserAgent:    c.Fetch.UserAgent,
			MaxBodyBytes: int(c.Fetch.MaxBodyBytes),
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "build pipeline")
	}

	var matcher *scrape.PathMatcher
	if len(c.Scrape.ExcludePaths) > 0 {
		matcher = scrape.NewPathMatcher(append(scrape.DefaultExcludePatterns(), c.Scrape.ExcludePaths...))
	}

	return pipeline.New(scrape.NewChain(matcher, engines...),
		pipeline.WithDelay(c.Batch.Delay()),
		pipeline.WithMaxSubpages(c.Extract.MaxSubpages),
	), nil
}

// openStore opens and migrates the configured store. A nil store means
// persistence is disabled.
func openStore(ctx context.Context, c *config.Config) (store.Store, error) {
	st, err := store.Open(ctx, c.Store.Driver, c.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, nil
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// persistResults saves every result under runID in one batch.
func persistResults(ctx context.Context, st store.Store, runID string, results []*model.ExtractionResult) error {
	n, err := st.SaveBatch(ctx, runID, results)
	if err != nil {
		return err
	}
	zap.L().Info("results persisted",
		zap.String("run_id", runID),
		zap.Int64("results", n),
	)
	return nil
}
