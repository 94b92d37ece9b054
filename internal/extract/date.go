package extract

import (
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const dateLayout = "2006-01-02"

// datePatterns are tried in order; the first match is returned verbatim.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`),
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4}\b`),
}

// MatchDate returns the first date-like token in text.
func MatchDate(text string) (string, bool) {
	for _, re := range datePatterns {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}

// ExtractDate returns the first date found in sel's text, or now formatted
// as YYYY-MM-DD.
func ExtractDate(sel *goquery.Selection, now time.Time) string {
	if d, ok := MatchDate(visibleText(sel)); ok {
		return d
	}
	return now.Format(dateLayout)
}
