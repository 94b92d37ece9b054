package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		html string
		want string
	}{
		{`<div>Published 2024-03-15 by staff</div>`, "2024-03-15"},
		{`<div>Posted on 15/03/2024</div>`, "15/03/2024"},
		{`<div>Posted on 1-2-2023</div>`, "1-2-2023"},
		{`<div>Sept 9 2023 update</div>`, "Sept 9 2023"},
		{`<div>since dec 1, 2022</div>`, "dec 1, 2022"},
		{`<div>2024-03-15 and 01/02/2023</div>`, "01/02/2023"},
		{`<div>no date here</div>`, "2026-10-19"},
	}
	for _, tt := range tests {
		doc := mustDoc(t, tt.html)
		assert.Equal(t, tt.want, ExtractDate(doc.Find("div"), fixedNow), tt.html)
	}
}

func TestMatchDate(t *testing.T) {
	d, ok := MatchDate("Released January 12, 2025.")
	assert.True(t, ok)
	assert.Equal(t, "January 12, 2025", d)

	_, ok = MatchDate("Version 2.0 released")
	assert.False(t, ok)
}
