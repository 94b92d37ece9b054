package scorer

import "github.com/sells-group/company-scraper/internal/model"

// GradeCount is the number of results that received a grade.
type GradeCount struct {
	Grade model.QualityGrade `json:"grade"`
	Count int                `json:"count"`
}

// Summarize counts results per grade, best grade first. Grades nobody
// received are omitted.
func Summarize(results []*model.ExtractionResult) []GradeCount {
	counts := make(map[model.QualityGrade]int, len(model.Grades))
	for _, r := range results {
		if r != nil {
			counts[r.QualityGrade]++
		}
	}

	var out []GradeCount
	for _, g := range model.Grades {
		if n := counts[g]; n > 0 {
			out = append(out, GradeCount{Grade: g, Count: n})
		}
	}
	return out
}
