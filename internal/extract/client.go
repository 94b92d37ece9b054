package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	logoSectionClass        = regexp.MustCompile(`(?i)client|partner|customer|logo|trust`)
	testimonialSectionClass = regexp.MustCompile(`(?i)testimonial|review|case`)
	organizationName        = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2}(?:\s+(?:Inc|Corp|Ltd|LLC|GmbH))?\b`)
)

// maxClients caps the client list.
const maxClients = 10

// ExtractClients names customers and partners shown on a page: logo image
// alt/title text in client sections, then capitalized organization names in
// testimonial sections. Names are unique, kept in first-seen order, and
// capped at ten.
func ExtractClients(doc *goquery.Document) Outcome[[]string] {
	clients := []string{}
	seen := map[string]struct{}{}
	var sources []string

	add := func(source string, names ...string) {
		before := len(clients)
		for _, n := range names {
			n = normalizeSpace(n)
			if ValidClientName(n) {
				clients = appendUnique(clients, seen, n)
			}
		}
		if len(clients) > before && !containsString(sources, source) {
			sources = append(sources, source)
		}
	}

	sections := doc.Find("div, section")

	classMatching(sections, logoSectionClass).Each(func(_ int, s *goquery.Selection) {
		s.Find("img").Each(func(_ int, img *goquery.Selection) {
			add("logo_alt", cleanAttr(img.AttrOr("alt", "")), cleanAttr(img.AttrOr("title", "")))
		})
	})

	classMatching(sections, testimonialSectionClass).Each(func(_ int, s *goquery.Selection) {
		add("testimonial", organizationName.FindAllString(visibleText(s), -1)...)
	})

	if len(clients) > maxClients {
		clients = clients[:maxClients]
	}
	return Outcome[[]string]{
		Value:    clients,
		Found:    len(clients) > 0,
		Strategy: strings.Join(sources, "+"),
	}
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
