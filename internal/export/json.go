package export

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/company-scraper/internal/model"
)

// WriteJSON writes results as indented JSON. Non-ASCII text and HTML
// characters are written as-is.
func WriteJSON(path string, results []*model.ExtractionResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if results == nil {
		results = []*model.ExtractionResult{}
	}
	if err := enc.Encode(results); err != nil {
		f.Close() //nolint:errcheck
		return eris.Wrap(err, "export: encode results")
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}
