package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleSeparators = regexp.MustCompile(`[-|•]`)
	letterRun       = regexp.MustCompile(`\p{L}+`)
)

// SiteName returns a display name for the site: the leading segment of the
// page title, or the title-cased first label of the domain.
func SiteName(doc *goquery.Document, siteURL string) string {
	if title := doc.Find("title").First(); title.Length() > 0 {
		if name := strings.TrimSpace(titleSeparators.Split(title.Text(), 2)[0]); name != "" {
			return normalizeSpace(name)
		}
	}
	return domainName(siteURL)
}

func domainName(siteURL string) string {
	u, err := url.Parse(siteURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	label, _, _ := strings.Cut(host, ".")
	return titleWords(label)
}

// titleWords capitalizes every run of letters, so "h2scan" becomes "H2Scan".
func titleWords(s string) string {
	caser := cases.Title(language.Und)
	return letterRun.ReplaceAllStringFunc(s, caser.String)
}
