package scrape

import (
	"net/url"
	"path"
	"strings"
)

// defaultExcludePatterns keep sub-page fetches away from binary assets.
var defaultExcludePatterns = []string{
	"/*.pdf",
	"/*.zip",
	"/*.jpg",
	"/*.jpeg",
	"/*.png",
	"/*.gif",
	"/*.svg",
	"/*.mp4",
	"/*.docx",
	"/*.xlsx",
	"/wp-content/uploads/*",
}

// DefaultExcludePatterns returns a copy of the built-in exclusion patterns.
func DefaultExcludePatterns() []string {
	return append([]string(nil), defaultExcludePatterns...)
}

// PathMatcher filters URLs by scheme and glob-style path patterns.
type PathMatcher struct {
	patterns []string
}

// NewPathMatcher creates a PathMatcher. Empty patterns use the defaults.
func NewPathMatcher(patterns []string) *PathMatcher {
	if len(patterns) == 0 {
		patterns = defaultExcludePatterns
	}
	lowered := make([]string, len(patterns))
	for i, p := range patterns {
		lowered[i] = strings.ToLower(p)
	}
	return &PathMatcher{patterns: lowered}
}

// Patterns returns the configured patterns.
func (m *PathMatcher) Patterns() []string {
	return m.patterns
}

// IsExcluded reports whether rawURL must not be fetched: it is not http(s),
// is unparseable, or its path matches a pattern.
func (m *PathMatcher) IsExcluded(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return true
	}
	p := strings.ToLower(u.Path)
	for _, pattern := range m.patterns {
		if matchSegmented(pattern, p) {
			return true
		}
	}
	return false
}

// matchSegmented globs pattern against urlPath. "/*.pdf" matches a pdf at
// any depth and "/dir/*" matches everything below /dir.
func matchSegmented(pattern, urlPath string) bool {
	if ok, _ := path.Match(pattern, urlPath); ok {
		return true
	}

	if strings.HasPrefix(pattern, "/*.") {
		return strings.HasSuffix(urlPath, strings.TrimPrefix(pattern, "/*"))
	}

	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		return urlPath == prefix || strings.HasPrefix(urlPath, prefix+"/")
	}
	return false
}
