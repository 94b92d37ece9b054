package scrape

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/company-scraper/internal/resilience"
)

// LocalOptions tunes LocalScraper.
type LocalOptions struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
	Retry        resilience.RetryPolicy
}

// LocalScraper fetches pages over net/http and parses them with goquery.
type LocalScraper struct {
	client *http.Client
	opts   LocalOptions
}

// NewLocalScraper creates a LocalScraper. Zero options fall back to a 15s
// timeout, a desktop browser user agent and a 2MB body cap.
func NewLocalScraper(opts LocalOptions) *LocalScraper {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 2 << 20
	}
	return &LocalScraper{
		opts: opts,
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

func (l *LocalScraper) Name() string           { return "local_http" }
func (l *LocalScraper) Supports(_ string) bool { return true }

// Scrape fetches targetURL, retrying transient failures.
func (l *LocalScraper) Scrape(ctx context.Context, targetURL string) (*Page, error) {
	policy := l.opts.Retry
	policy.OnRetry = resilience.LogRetry(l.Name(), targetURL)
	return resilience.DoVal(ctx, policy, func(ctx context.Context) (*Page, error) {
		return l.fetch(ctx, targetURL)
	})
}

func (l *LocalScraper) fetch(ctx context.Context, targetURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "local_http: create request")
	}
	req.Header.Set("User-Agent", l.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "local_http: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, l.opts.MaxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "local_http: read body")
	}

	if blocked, kind := DetectBlock(resp.StatusCode, resp.Header, body); blocked {
		return nil, eris.Errorf("local_http: blocked (%s)", kind)
	}

	if resp.StatusCode >= 400 {
		err := eris.Errorf("local_http: status %d", resp.StatusCode)
		if resilience.IsTransientStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	if ct := resp.Header.Get("Content-Type"); !isHTML(ct) {
		return nil, eris.Errorf("local_http: not html (%q)", ct)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "local_http: parse html")
	}
	doc.Url = resp.Request.URL

	return &Page{
		URL:        targetURL,
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Title:      pageTitle(doc),
		Doc:        doc,
		Source:     l.Name(),
	}, nil
}
