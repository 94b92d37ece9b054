package scrape

import (
	"strings"

	"github.com/rotisserie/eris"
)

// EngineOptions carries the settings shared by every engine.
type EngineOptions struct {
	Local LocalOptions
	Colly CollyOptions
}

// NewEngines builds scrapers by name in the given order. Known names are
// "local" and "colly".
func NewEngines(names []string, opts EngineOptions) ([]Scraper, error) {
	if len(names) == 0 {
		names = []string{"local"}
	}
	scrapers := make([]Scraper, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "local", "local_http":
			scrapers = append(scrapers, NewLocalScraper(opts.Local))
		case "colly":
			scrapers = append(scrapers, NewCollyScraper(opts.Colly))
		default:
			return nil, eris.Errorf("scrape: unknown engine %q", name)
		}
	}
	return scrapers, nil
}
