package extract

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/company-scraper/internal/model"
	"github.com/sells-group/company-scraper/internal/scrape"
)

var newsLinkWords = []string{"news", "blog", "press", "media", "updates"}

// maxNews caps the news list.
const maxNews = 5

// News gathers articles from up to two news-like sub-pages and the main
// page, in that order. With nothing found, one generic update item dated
// today is synthesized for the site.
func (e *Extractor) News(ctx context.Context, doc *goquery.Document, meta model.CompanyMeta) Outcome[[]model.NewsItem] {
	base := meta.Website
	chain := Chain[[]model.NewsItem]{
		{Name: "articles", Apply: func(ctx context.Context) ([]model.NewsItem, bool) {
			var items []model.NewsItem
			links := linksMatching(doc, base, e.maxSubpages, textContainsAny(newsLinkWords...))
			e.fetchEach(ctx, "news", links, func(p *scrape.Page, u string) {
				items = append(items, ParseArticles(p.Doc, u, e.now())...)
			})
			items = append(items, ParseArticles(doc, base, e.now())...)
			return items, len(items) > 0
		}},
		{Name: "synthesized", Apply: func(context.Context) ([]model.NewsItem, bool) {
			return []model.NewsItem{{
				Title:   fmt.Sprintf("Latest Updates from %s", SiteName(doc, base)),
				Date:    e.Today(),
				URL:     base,
				Summary: "Stay updated with the latest developments and innovations from our team.",
			}}, true
		}},
	}
	out := chain.Run(ctx)
	if len(out.Value) > maxNews {
		out.Value = out.Value[:maxNews]
	}
	return out
}
