package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/company-scraper/internal/model"
)

// sectorSelectors maps a sector keyword to the CSS classes its sites
// typically use for a hero or overview blurb. Checked in order.
var sectorSelectors = []struct {
	keyword   string
	selectors []string
}{
	{"Solar Energy", []string{".hero-text", ".solar-solution", ".energy-description"}},
	{"EV Charging", []string{".ev-solution", ".charging-description", ".mobility-text"}},
	{"Hydrogen", []string{".hydrogen-solution", ".h2-description", ".clean-energy"}},
	{"AI", []string{".ai-solution", ".technology-description", ".platform-overview"}},
}

var defaultSelectors = []string{".hero-description", ".company-overview", ".about-text", ".intro-text"}

var contentSelectors = []string{"main p", ".main-content p", ".content p", "section p"}

// maxContentParagraphs bounds how many paragraphs per content selector are tried.
const maxContentParagraphs = 5

// SelectorsForSector returns the overview selectors for sector: the first
// sector whose keyword appears in it, followed by the defaults.
func SelectorsForSector(sector string) []string {
	var out []string
	for _, s := range sectorSelectors {
		if strings.Contains(sector, s.keyword) {
			out = append(out, s.selectors...)
			break
		}
	}
	return append(out, defaultSelectors...)
}

// ExtractDescription finds a one-paragraph company description. It always
// returns a non-empty value; when no page text qualifies a sentence is
// synthesized from meta and Found is still true with Strategy "synthesized".
func ExtractDescription(doc *goquery.Document, meta model.CompanyMeta) Outcome[string] {
	return descriptionChain(doc, meta).Run(context.Background())
}

func descriptionChain(doc *goquery.Document, meta model.CompanyMeta) Chain[string] {
	return Chain[string]{
		{Name: "meta_description", Apply: func(context.Context) (string, bool) {
			return metaContent(doc, `meta[name="description"]`)
		}},
		{Name: "og_description", Apply: func(context.Context) (string, bool) {
			return metaContent(doc, `meta[property="og:description"]`)
		}},
		{Name: "sector_selector", Apply: func(context.Context) (string, bool) {
			return firstText(doc, SelectorsForSector(meta.Sector), 0, sectorDescription)
		}},
		{Name: "content_paragraph", Apply: func(context.Context) (string, bool) {
			return firstText(doc, contentSelectors, maxContentParagraphs, contentDescription)
		}},
		{Name: "synthesized", Apply: func(context.Context) (string, bool) {
			return synthesizedDescription(meta), true
		}},
	}
}

// metaContent returns the content of the first element matching selector
// when it is long enough to be a real description.
func metaContent(doc *goquery.Document, selector string) (string, bool) {
	content, ok := doc.Find(selector).First().Attr("content")
	if !ok {
		return "", false
	}
	content = cleanAttr(content)
	if !metaDescription(content) {
		return "", false
	}
	return content, true
}

// firstText returns the first element text accepted by accept, trying
// selectors in order. limit caps elements per selector; 0 means all.
func firstText(doc *goquery.Document, selectors []string, limit int, accept Predicate) (string, bool) {
	for _, selector := range selectors {
		sel := doc.Find(selector)
		if limit > 0 && sel.Length() > limit {
			sel = sel.Slice(0, limit)
		}
		var found string
		sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := elementText(s)
			if accept(text) {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}

func synthesizedDescription(meta model.CompanyMeta) string {
	sector := meta.Sector
	if sector == "" {
		sector = "technology"
	}
	return fmt.Sprintf("%s is a %s company focused on sustainable solutions and clean energy innovation.", meta.Name, sector)
}
