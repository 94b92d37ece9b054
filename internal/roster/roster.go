// Package roster loads the list of companies to process from yaml, json, csv
// or xlsx files.
package roster

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/company-scraper/internal/model"
)

type yamlRoster struct {
	Companies []model.CompanyMeta `yaml:"companies"`
}

// Load reads a roster file, choosing the decoder by extension. Companies
// without an id are numbered by their 1-based position.
func Load(path string) ([]model.CompanyMeta, error) {
	var (
		companies []model.CompanyMeta
		err       error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		companies, err = loadYAML(path)
	case ".json":
		companies, err = loadJSON(path)
	case ".csv":
		companies, err = loadCSV(path)
	case ".xlsx":
		companies, err = loadXLSX(path)
	default:
		return nil, eris.Errorf("roster: unsupported file type %q", ext)
	}
	if err != nil {
		return nil, err
	}

	for i := range companies {
		c := &companies[i]
		c.Name = strings.TrimSpace(c.Name)
		c.Website = strings.TrimSpace(c.Website)
		c.Sector = strings.TrimSpace(c.Sector)
		c.ExpectedHQ = strings.TrimSpace(c.ExpectedHQ)
		if c.ID == 0 {
			c.ID = i + 1
		}
	}
	return companies, nil
}

// Validate rejects companies without a name or website and duplicate ids.
func Validate(companies []model.CompanyMeta) error {
	if len(companies) == 0 {
		return eris.New("roster: no companies")
	}
	seen := make(map[int]int, len(companies))
	for i, c := range companies {
		row := i + 1
		if c.Name == "" {
			return eris.Errorf("roster: company %d: name is required", row)
		}
		if c.Website == "" {
			return eris.Errorf("roster: company %d (%s): website is required", row, c.Name)
		}
		if prev, ok := seen[c.ID]; ok {
			return eris.Errorf("roster: duplicate id %d (companies %d and %d)", c.ID, prev, row)
		}
		seen[c.ID] = row
	}
	return nil
}

func loadYAML(path string) ([]model.CompanyMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "roster: read yaml")
	}
	var r yamlRoster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, eris.Wrap(err, "roster: parse yaml")
	}
	return r.Companies, nil
}

func loadJSON(path string) ([]model.CompanyMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "roster: read json")
	}
	var companies []model.CompanyMeta
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, eris.Wrap(err, "roster: parse json")
	}
	return companies, nil
}

func loadCSV(path string) ([]model.CompanyMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "roster: read csv")
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	return decodeRows(&headerReader{r: r}, "csv")
}

func loadXLSX(path string) ([]model.CompanyMeta, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "roster: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("roster: xlsx has no sheets")
	}
	return decodeRows(&headerReader{r: &sheetReader{rows: f.Sheets[0].Rows}}, "xlsx")
}

func decodeRows(r csvutil.Reader, kind string) ([]model.CompanyMeta, error) {
	dec, err := csvutil.NewDecoder(r)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "roster: read %s header", kind)
	}

	var companies []model.CompanyMeta
	for {
		var c model.CompanyMeta
		if err := dec.Decode(&c); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrapf(err, "roster: decode %s row %d", kind, len(companies)+2)
		}
		companies = append(companies, c)
	}
	return companies, nil
}

// headerReader normalizes the first record so "Expected HQ" matches the
// expected_hq column tag, and skips blank rows.
type headerReader struct {
	r      csvutil.Reader
	header bool
}

func (h *headerReader) Read() ([]string, error) {
	for {
		rec, err := h.r.Read()
		if err != nil {
			return nil, err
		}
		if blank(rec) {
			continue
		}
		if !h.header {
			h.header = true
			for i, col := range rec {
				rec[i] = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(col)), " ", "_")
			}
		}
		return rec, nil
	}
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// sheetReader exposes spreadsheet rows through the csvutil.Reader interface.
type sheetReader struct {
	rows  []*xlsx.Row
	next  int
	width int
}

func (s *sheetReader) Read() ([]string, error) {
	if s.next >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.next]
	s.next++

	var cells []string
	if row != nil {
		cells = make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
	}
	if blank(cells) {
		return cells, nil
	}
	// The first non-blank row is the header and fixes the record width.
	if s.width == 0 {
		s.width = len(cells)
	}
	for len(cells) < s.width {
		cells = append(cells, "")
	}
	return cells[:s.width], nil
}
