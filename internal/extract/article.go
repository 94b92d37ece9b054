package extract

import (
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/company-scraper/internal/model"
	"github.com/sells-group/company-scraper/internal/scrape"
)

var articleClass = regexp.MustCompile(`(?i)post|article|news|blog`)

const (
	maxArticleCandidates = 5
	summaryRunes         = 200
)

// ParseArticles reads news entries from article-like blocks on a page:
// every <article>, plus <div>s whose class looks like a post. Only the
// first five candidates are considered, and a candidate needs a heading of
// at least ten runes. Links resolve against baseURL.
func ParseArticles(doc *goquery.Document, baseURL string, now time.Time) []model.NewsItem {
	candidates := doc.Find("article, div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		if goquery.NodeName(s) == "article" {
			return true
		}
		return articleClass.MatchString(s.AttrOr("class", ""))
	})
	if candidates.Length() > maxArticleCandidates {
		candidates = candidates.Slice(0, maxArticleCandidates)
	}

	var items []model.NewsItem
	candidates.Each(func(_ int, s *goquery.Selection) {
		if item, ok := parseArticle(s, baseURL, now); ok {
			items = append(items, item)
		}
	})
	return items
}

func parseArticle(s *goquery.Selection, baseURL string, now time.Time) (model.NewsItem, bool) {
	heading := s.Find("h1, h2, h3, h4, h5").First()
	if heading.Length() == 0 {
		return model.NewsItem{}, false
	}
	title := elementText(heading)
	if !articleTitle(title) {
		return model.NewsItem{}, false
	}

	var summary string
	if p := s.Find("p").First(); p.Length() > 0 {
		summary = truncateRunes(elementText(p), summaryRunes) + "..."
	}

	link := baseURL
	if href, ok := s.Find("a[href]").First().Attr("href"); ok {
		if u := scrape.ResolveURL(baseURL, href); u != "" {
			link = u
		}
	}

	return model.NewsItem{
		Title:   title,
		Date:    ExtractDate(s, now),
		URL:     link,
		Summary: summary,
	}, true
}
