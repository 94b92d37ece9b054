package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/company-scraper/internal/model"
)

// addressPatterns are tried in order over a page's visible text.
var addressPatterns = []*regexp.Regexp{
	// 1200 Harbor Boulevard, Suite 4
	regexp.MustCompile(`\b\d{1,5}\s+[A-Za-z0-9\s,.-]+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Boulevard|Blvd)[A-Za-z0-9\s,.-]*\b`),
	// San Francisco, CA 94105
	regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z]{2,3}\s*\d{4,5}\b`),
	// Vienna, Austria. Broad on purpose; it also matches capitalized prose.
	regexp.MustCompile(`\b[A-Z][a-z]+\s*,\s*[A-Z][a-z]+(?:\s*,\s*[A-Z][a-z]+)?\b`),
}

// maxMatchesPerPattern bounds how many matches each pattern contributes.
const maxMatchesPerPattern = 3

// MatchAddresses returns candidate offices found in text. Matches of 10
// runes or fewer are dropped and whitespace inside a match is collapsed.
// A candidate is flagged as headquarters only when the match mentions it.
func MatchAddresses(text string) []model.Office {
	var offices []model.Office
	for _, re := range addressPatterns {
		for _, m := range re.FindAllString(text, maxMatchesPerPattern) {
			if !addressMatch(m) {
				continue
			}
			loc := normalizeSpace(m)
			lower := strings.ToLower(m)
			offices = append(offices, model.Office{
				Location: loc,
				Address:  loc,
				IsHQ:     strings.Contains(lower, "headquarters") || strings.Contains(lower, "hq"),
			})
		}
	}
	return offices
}

// maxOffices caps a deduplicated office list.
const maxOffices = 5

// DedupeOffices keeps the first office per case-insensitive location,
// drops locations of 5 runes or fewer, guarantees a headquarters entry and
// caps the list at five. The input slice is not modified.
func DedupeOffices(offices []model.Office) []model.Office {
	seen := make(map[string]struct{}, len(offices))
	out := make([]model.Office, 0, len(offices))
	for _, o := range offices {
		key := strings.ToLower(strings.TrimSpace(o.Location))
		if _, dup := seen[key]; dup || !officeKey(key) {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, o)
	}

	if len(out) > maxOffices {
		out = out[:maxOffices]
	}
	// Checked after truncation so a headquarters beyond the cap still
	// leaves one in the result.
	if len(out) > 0 && !hasHQ(out) {
		out[0].IsHQ = true
	}
	return out
}

func hasHQ(offices []model.Office) bool {
	for _, o := range offices {
		if o.IsHQ {
			return true
		}
	}
	return false
}
