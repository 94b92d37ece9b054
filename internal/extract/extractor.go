package extract

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sells-group/company-scraper/internal/scrape"
)

// DefaultMaxSubpages is how many contact or news links are followed per company.
const DefaultMaxSubpages = 2

// Extractor runs the extractors that need to follow links off the main page.
type Extractor struct {
	fetcher     scrape.Fetcher
	now         func() time.Time
	maxSubpages int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock overrides the clock used for synthesized and missing dates.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// WithMaxSubpages overrides how many sub-pages are followed per extractor.
func WithMaxSubpages(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.maxSubpages = n
		}
	}
}

// New creates an Extractor that fetches sub-pages through f.
func New(f scrape.Fetcher, opts ...Option) *Extractor {
	e := &Extractor{
		fetcher:     f,
		now:         time.Now,
		maxSubpages: DefaultMaxSubpages,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Today is the extractor's current date as YYYY-MM-DD.
func (e *Extractor) Today() string {
	return e.now().Format(dateLayout)
}

// Now is the extractor's current time.
func (e *Extractor) Now() time.Time {
	return e.now()
}

// linksMatching returns up to limit distinct absolute URLs from anchors
// with an href whose text satisfies match, in document order.
func linksMatching(doc *goquery.Document, base string, limit int, match func(text string) bool) []string {
	var urls []string
	seen := map[string]struct{}{}
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if len(urls) >= limit {
			return false
		}
		if !match(normalizeSpace(a.Text())) {
			return true
		}
		href, _ := a.Attr("href")
		u := scrape.ResolveURL(base, href)
		if u == "" {
			return true
		}
		urls = appendUnique(urls, seen, u)
		return true
	})
	return urls
}

func textMatches(re *regexp.Regexp) func(string) bool {
	return re.MatchString
}

func textContainsAny(words ...string) func(string) bool {
	return func(text string) bool {
		text = strings.ToLower(text)
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
}

// fetchEach fetches urls in order and calls fn for every page that loads.
// Unavailable pages are skipped.
func (e *Extractor) fetchEach(ctx context.Context, kind string, urls []string, fn func(*scrape.Page, string)) {
	for _, u := range urls {
		if ctx.Err() != nil {
			return
		}
		page, ok := e.fetcher.Fetch(ctx, u)
		if !ok || page == nil || page.Doc == nil {
			zap.L().Debug("extract: sub-page skipped",
				zap.String("kind", kind),
				zap.String("url", u),
			)
			continue
		}
		fn(page, u)
	}
}
