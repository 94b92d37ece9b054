// Package scorer grades extracted company profiles.
package scorer

import (
	"unicode/utf8"

	"github.com/sells-group/company-scraper/internal/model"
)

// richDescriptionRunes is the length a description must exceed to count as evidence.
const richDescriptionRunes = 100

// Signals are the four independent evidence checks behind a grade.
type Signals struct {
	RichDescription bool `json:"rich_description"`
	HasOffices      bool `json:"has_offices"`
	HasClients      bool `json:"has_clients"`
	HasNews         bool `json:"has_news"`
}

// SignalsFor evaluates the evidence checks on extracted values.
func SignalsFor(description string, offices []model.Office, clients []string, news []model.NewsItem) Signals {
	return Signals{
		RichDescription: utf8.RuneCountInString(description) > richDescriptionRunes,
		HasOffices:      len(offices) > 0,
		HasClients:      len(clients) > 0,
		HasNews:         len(news) > 0,
	}
}

// Score counts the signals that hold, 0 to 4.
func (s Signals) Score() int {
	n := 0
	for _, ok := range []bool{s.RichDescription, s.HasOffices, s.HasClients, s.HasNews} {
		if ok {
			n++
		}
	}
	return n
}

var gradeByScore = [...]model.QualityGrade{
	0: model.GradeFailed,
	1: model.GradePoor,
	2: model.GradeFair,
	3: model.GradeGood,
	4: model.GradeExcellent,
}

// Grade maps the signal count to a quality grade.
func (s Signals) Grade() model.QualityGrade {
	return gradeByScore[s.Score()]
}

// Assess grades extracted values. It never returns GradeFallback.
func Assess(description string, offices []model.Office, clients []string, news []model.NewsItem) model.QualityGrade {
	return SignalsFor(description, offices, clients, news).Grade()
}
