// Package pipeline orchestrates per-company extraction: fetch the main page,
// run every extractor, grade the result, and fall back to a synthesized
// profile when anything goes wrong.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/company-scraper/internal/extract"
	"github.com/sells-group/company-scraper/internal/model"
	"github.com/sells-group/company-scraper/internal/scorer"
	"github.com/sells-group/company-scraper/internal/scrape"
)

// Pipeline extracts company profiles one company at a time.
type Pipeline struct {
	fetcher     scrape.Fetcher
	now         func() time.Time
	delay       time.Duration
	maxSubpages int
	extractor   *extract.Extractor
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDelay spaces company starts in RunAll by at least d.
func WithDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.delay = d }
}

// WithClock overrides the clock used for timestamps and synthesized dates.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithMaxSubpages overrides how many contact and news links are followed.
func WithMaxSubpages(n int) Option {
	return func(p *Pipeline) { p.maxSubpages = n }
}

// New creates a Pipeline that fetches pages through f.
func New(f scrape.Fetcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:     f,
		now:         time.Now,
		maxSubpages: extract.DefaultMaxSubpages,
	}
	for _, o := range opts {
		o(p)
	}
	p.extractor = extract.New(f, extract.WithClock(p.now), extract.WithMaxSubpages(p.maxSubpages))
	return p
}

// Run produces the profile for one company. It never fails: an unreachable
// site or an extraction error yields the fallback profile.
func (p *Pipeline) Run(ctx context.Context, meta model.CompanyMeta) *model.ExtractionResult {
	log := zap.L().With(
		zap.Int("company_id", meta.ID),
		zap.String("company", meta.Name),
		zap.String("url", meta.Website),
	)
	log.Info("pipeline: extracting company", zap.String("sector", meta.Sector))

	page, ok := p.fetcher.Fetch(ctx, meta.Website)
	if !ok || page == nil || page.Doc == nil {
		log.Warn("pipeline: main page unavailable, using fallback profile")
		return Fallback(meta, p.now())
	}

	result, err := p.extract(ctx, log, page, meta)
	if err != nil {
		log.Error("pipeline: extraction failed, using fallback profile", zap.Error(err))
		return Fallback(meta, p.now())
	}

	log.Info("pipeline: extracted company",
		zap.String("grade", string(result.QualityGrade)),
		zap.Int("offices", len(result.Offices)),
		zap.Int("clients", len(result.Clients)),
		zap.Int("news", len(result.News)),
	)
	return result
}

func (p *Pipeline) extract(ctx context.Context, log *zap.Logger, page *scrape.Page, meta model.CompanyMeta) (*model.ExtractionResult, error) {
	doc := page.Doc

	desc, err := runStage(log, "description", func() extract.Outcome[string] {
		return extract.ExtractDescription(doc, meta)
	})
	if err != nil {
		return nil, err
	}
	offices, err := runStage(log, "offices", func() extract.Outcome[[]model.Office] {
		return p.extractor.Offices(ctx, doc, meta)
	})
	if err != nil {
		return nil, err
	}
	clients, err := runStage(log, "clients", func() extract.Outcome[[]string] {
		return extract.ExtractClients(doc)
	})
	if err != nil {
		return nil, err
	}
	news, err := runStage(log, "news", func() extract.Outcome[[]model.NewsItem] {
		return p.extractor.News(ctx, doc, meta)
	})
	if err != nil {
		return nil, err
	}

	return &model.ExtractionResult{
		CompanyID:       meta.ID,
		CompanyName:     meta.Name,
		CompanyWebsite:  meta.Website,
		Sector:          orDefault(meta.Sector, "Technology"),
		Description:     desc.Value,
		Offices:         offices.Value,
		Clients:         clients.Value,
		News:            news.Value,
		ScrapeTimestamp: p.now().Format(time.RFC3339),
		QualityGrade:    scorer.Assess(desc.Value, offices.Value, clients.Value, news.Value),
		Evidence: &model.Evidence{
			Description: desc.Strategy,
			Offices:     offices.Strategy,
			Clients:     clients.Strategy,
			News:        news.Strategy,
		},
	}, nil
}

// runStage runs one extractor and turns a panic inside it into an error.
func runStage[T any](log *zap.Logger, name string, fn func() extract.Outcome[T]) (out extract.Outcome[T], err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("pipeline: %s stage panicked: %v", name, r)
			return
		}
		log.Debug("pipeline: stage complete",
			zap.String("stage", name),
			zap.Bool("found", out.Found),
			zap.String("strategy", out.Strategy),
			zap.Duration("elapsed", time.Since(start)),
		)
	}()
	return fn(), nil
}

// RunAll processes companies sequentially and returns one result per
// company processed. Company starts are spaced by the configured delay.
// Cancellation stops the run between companies; results so far are returned.
func (p *Pipeline) RunAll(ctx context.Context, companies []model.CompanyMeta) []*model.ExtractionResult {
	var limiter *rate.Limiter
	if p.delay > 0 {
		limiter = rate.NewLimiter(rate.Every(p.delay), 1)
	}

	results := make([]*model.ExtractionResult, 0, len(companies))
	for i, c := range companies {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				zap.L().Warn("pipeline: run interrupted", zap.Int("processed", i), zap.Error(err))
				break
			}
		}
		if err := ctx.Err(); err != nil {
			zap.L().Warn("pipeline: run interrupted", zap.Int("processed", i), zap.Error(err))
			break
		}

		results = append(results, p.Run(ctx, c))
		zap.L().Debug("pipeline: progress", zap.Int("done", i+1), zap.Int("total", len(companies)))
	}

	fields := []zap.Field{zap.Int("companies", len(results))}
	for _, gc := range scorer.Summarize(results) {
		fields = append(fields, zap.Int(string(gc.Grade), gc.Count))
	}
	zap.L().Info("pipeline: run complete", fields...)
	return results
}
