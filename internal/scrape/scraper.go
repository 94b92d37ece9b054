// Package scrape fetches company web pages and parses them into documents.
package scrape

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultUserAgent is sent by every engine unless overridden.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Page is a fetched HTML page. Doc is read-only once returned.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Title      string
	Doc        *goquery.Document
	Source     string // engine name, e.g. "local_http", "colly"
}

// Scraper fetches a single URL and returns its parsed document.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*Page, error)
	Name() string
	Supports(url string) bool
}

// Fetcher is the narrow contract the extractors depend on: a parsed
// document, or absent when the page could not be retrieved.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, bool)
}

// ResolveURL resolves href against base. Unparseable input yields "".
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	h, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return b.ResolveReference(h).String()
}

func isHTML(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "text/html")
}

func pageTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}
