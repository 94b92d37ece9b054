package extract

import (
	"strings"
	"unicode/utf8"
)

// Predicate accepts or rejects a candidate string.
type Predicate func(s string) bool

// LongerThan accepts strings with more than n runes.
func LongerThan(n int) Predicate {
	return func(s string) bool { return utf8.RuneCountInString(s) > n }
}

// LengthWithin accepts strings whose rune count is strictly between lo and hi.
func LengthWithin(lo, hi int) Predicate {
	return func(s string) bool {
		n := utf8.RuneCountInString(s)
		return n > lo && n < hi
	}
}

// LengthBetween accepts strings whose rune count is in [lo, hi].
func LengthBetween(lo, hi int) Predicate {
	return func(s string) bool {
		n := utf8.RuneCountInString(s)
		return n >= lo && n <= hi
	}
}

// FreeOf rejects strings containing any of the phrases, ignoring case.
func FreeOf(phrases ...string) Predicate {
	lowered := make([]string, len(phrases))
	for i, p := range phrases {
		lowered[i] = strings.ToLower(p)
	}
	return func(s string) bool {
		s = strings.ToLower(s)
		for _, p := range lowered {
			if strings.Contains(s, p) {
				return false
			}
		}
		return true
	}
}

// All accepts a string only when every predicate does.
func All(ps ...Predicate) Predicate {
	return func(s string) bool {
		for _, p := range ps {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

var (
	// IsDescriptionText rejects boilerplate such as cookie banners and footers.
	IsDescriptionText = FreeOf("cookie", "privacy", "terms", "copyright", "all rights reserved", "learn more")

	// ValidClientName accepts 3 to 50 rune names that are not generic image labels.
	ValidClientName = All(
		LengthBetween(3, 50),
		FreeOf("logo", "image", "icon", "photo", "picture", "company", "client", "partner"),
	)

	metaDescription    = LongerThan(50)
	sectorDescription  = All(LengthWithin(50, 300), IsDescriptionText)
	contentDescription = All(LengthWithin(50, 400), IsDescriptionText)
	articleTitle       = LongerThan(9)
	officeKey          = LongerThan(5)
	addressMatch       = LongerThan(10)
)
