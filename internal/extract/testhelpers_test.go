package extract

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/company-scraper/internal/scrape"
)

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// fakeFetcher serves canned HTML by absolute URL and records every request.
type fakeFetcher struct {
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, u string) (*scrape.Page, bool) {
	f.calls = append(f.calls, u)
	html, ok := f.pages[u]
	if !ok {
		return nil, false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}
	return &scrape.Page{URL: u, Doc: doc}, true
}

func newTestExtractor(pages map[string]string) (*Extractor, *fakeFetcher) {
	f := &fakeFetcher{pages: pages}
	return New(f, WithClock(fixedClock)), f
}
