package store

import "github.com/sells-group/company-scraper/internal/model"

func sampleResult(id int, name string, grade model.QualityGrade) *model.ExtractionResult {
	return &model.ExtractionResult{
		CompanyID:       id,
		CompanyName:     name,
		CompanyWebsite:  "https://" + name + ".example",
		Sector:          "Solar Energy",
		Description:     name + " builds rooftop solar arrays for commercial buildings.",
		Offices:         []model.Office{{Location: "Austin, TX", Address: "Austin, TX", IsHQ: true}},
		Clients:         []string{"Blue Ridge Power"},
		News:            []model.NewsItem{},
		ScrapeTimestamp: "2026-10-19T09:30:00Z",
		QualityGrade:    grade,
	}
}
