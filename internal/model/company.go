// Package model holds the records that flow through the extraction pipeline.
package model

// CompanyMeta identifies a company to extract. It is supplied by the roster
// and never mutated by the pipeline.
type CompanyMeta struct {
	ID         int    `json:"id" yaml:"id" csv:"id,omitempty"`
	Name       string `json:"name" yaml:"name" csv:"name"`
	Website    string `json:"website" yaml:"website" csv:"website"`
	Sector     string `json:"sector,omitempty" yaml:"sector" csv:"sector,omitempty"`
	ExpectedHQ string `json:"expected_hq,omitempty" yaml:"expected_hq" csv:"expected_hq,omitempty"`
}

// Office is a physical location attributed to a company.
type Office struct {
	Location string `json:"location"`
	Address  string `json:"address"`
	IsHQ     bool   `json:"is_headquarters"`
}

// NewsItem is a news or blog entry found on (or synthesized for) a company site.
type NewsItem struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}
