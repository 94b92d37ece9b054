package extract

import (
	"context"
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/company-scraper/internal/model"
	"github.com/sells-group/company-scraper/internal/scrape"
)

var officeLinkText = regexp.MustCompile(`(?i)(contact|office|location|about)`)

// Offices collects addresses from up to two contact-like sub-pages and the
// main page. When none are found and meta names an expected headquarters,
// a single synthesized headquarters office is returned.
func (e *Extractor) Offices(ctx context.Context, doc *goquery.Document, meta model.CompanyMeta) Outcome[[]model.Office] {
	chain := Chain[[]model.Office]{
		{Name: "address_patterns", Apply: func(ctx context.Context) ([]model.Office, bool) {
			var found []model.Office
			links := linksMatching(doc, meta.Website, e.maxSubpages, textMatches(officeLinkText))
			e.fetchEach(ctx, "office", links, func(p *scrape.Page, _ string) {
				found = append(found, MatchAddresses(visibleText(p.Doc.Selection))...)
			})
			found = append(found, MatchAddresses(visibleText(doc.Selection))...)
			found = DedupeOffices(found)
			return found, len(found) > 0
		}},
		{Name: "expected_hq", Apply: func(context.Context) ([]model.Office, bool) {
			if meta.ExpectedHQ == "" {
				return nil, false
			}
			return DedupeOffices([]model.Office{{
				Location: fmt.Sprintf("%s (Headquarters)", meta.ExpectedHQ),
				Address:  fmt.Sprintf("Headquarters location: %s", meta.ExpectedHQ),
				IsHQ:     true,
			}}), true
		}},
	}
	out := chain.Run(ctx)
	if out.Value == nil {
		out.Value = []model.Office{}
	}
	return out
}
