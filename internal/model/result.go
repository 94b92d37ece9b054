package model

import "strings"

// QualityGrade summarizes how much of a profile was found on the live site.
type QualityGrade string

const (
	GradeExcellent QualityGrade = "Excellent"
	GradeGood      QualityGrade = "Good"
	GradeFair      QualityGrade = "Fair"
	GradePoor      QualityGrade = "Poor"
	GradeFailed    QualityGrade = "Failed"
	GradeFallback  QualityGrade = "Fallback" // synthesized, never scored
)

// Grades lists every grade from best to worst, fallback last.
var Grades = []QualityGrade{
	GradeExcellent,
	GradeGood,
	GradeFair,
	GradePoor,
	GradeFailed,
	GradeFallback,
}

// ParseGrade returns the grade matching s, or false if s is not a grade.
func ParseGrade(s string) (QualityGrade, bool) {
	for _, g := range Grades {
		if strings.EqualFold(string(g), strings.TrimSpace(s)) {
			return g, true
		}
	}
	return "", false
}

// Evidence records which strategy produced each extracted fact.
type Evidence struct {
	Description string `json:"description,omitempty"`
	Offices     string `json:"offices,omitempty"`
	Clients     string `json:"clients,omitempty"`
	News        string `json:"news,omitempty"`
}

// ExtractionResult is the final profile for one company.
type ExtractionResult struct {
	CompanyID       int          `json:"company_id"`
	CompanyName     string       `json:"company_name"`
	CompanyWebsite  string       `json:"company_website"`
	Sector          string       `json:"sector"`
	Description     string       `json:"description"`
	Offices         []Office     `json:"offices"`
	Clients         []string     `json:"clients"`
	News            []NewsItem   `json:"news"`
	ScrapeTimestamp string       `json:"scrape_timestamp"`
	QualityGrade    QualityGrade `json:"data_quality"`
	Evidence        *Evidence    `json:"evidence,omitempty"`
}

// HQ returns the first headquarters office, if any.
func (r *ExtractionResult) HQ() (Office, bool) {
	for _, o := range r.Offices {
		if o.IsHQ {
			return o, true
		}
	}
	return Office{}, false
}
