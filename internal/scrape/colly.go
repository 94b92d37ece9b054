package scrape

import (
	"bytes"
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/rotisserie/eris"
)

// CollyOptions tunes CollyScraper.
type CollyOptions struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int
}

// CollyScraper fetches pages with a synchronous colly collector. It
// handles charset detection, which LocalScraper does not.
type CollyScraper struct {
	opts CollyOptions
}

// NewCollyScraper creates a CollyScraper with the same defaults as LocalScraper.
func NewCollyScraper(opts CollyOptions) *CollyScraper {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 2 << 20
	}
	return &CollyScraper{opts: opts}
}

func (c *CollyScraper) Name() string           { return "colly" }
func (c *CollyScraper) Supports(_ string) bool { return true }

// buildCollector returns a fresh collector per fetch so callbacks never
// leak between pages.
func (c *CollyScraper) buildCollector(ctx context.Context) *colly.Collector {
	col := colly.NewCollector(
		colly.UserAgent(c.opts.UserAgent),
		colly.MaxBodySize(c.opts.MaxBodyBytes),
		colly.AllowURLRevisit(),
		colly.DetectCharset(),
		colly.IgnoreRobotsTxt(),
	)
	col.Context = ctx
	col.SetRequestTimeout(c.opts.Timeout)
	return col
}

// Scrape visits targetURL and parses the response body.
func (c *CollyScraper) Scrape(ctx context.Context, targetURL string) (*Page, error) {
	col := c.buildCollector(ctx)

	var (
		page     *Page
		fetchErr error
	)

	col.OnResponse(func(r *colly.Response) {
		if blocked, kind := DetectBlock(r.StatusCode, *r.Headers, r.Body); blocked {
			fetchErr = eris.Errorf("colly: blocked (%s)", kind)
			return
		}
		if ct := r.Headers.Get("Content-Type"); !isHTML(ct) {
			fetchErr = eris.Errorf("colly: not html (%q)", ct)
			return
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			fetchErr = eris.Wrap(err, "colly: parse html")
			return
		}
		doc.Url = r.Request.URL
		page = &Page{
			URL:        targetURL,
			FinalURL:   r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Title:      pageTitle(doc),
			Doc:        doc,
			Source:     c.Name(),
		}
	})

	col.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode > 0 {
			fetchErr = eris.Wrapf(err, "colly: status %d", r.StatusCode)
			return
		}
		fetchErr = eris.Wrap(err, "colly: fetch")
	})

	if err := col.Visit(targetURL); err != nil && fetchErr == nil {
		fetchErr = eris.Wrap(err, "colly: visit")
	}

	if fetchErr != nil {
		return nil, fetchErr
	}
	if page == nil {
		return nil, eris.Errorf("colly: no response for %s", targetURL)
	}
	return page, nil
}
