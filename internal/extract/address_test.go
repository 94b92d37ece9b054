package extract

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/company-scraper/internal/model"
)

func TestMatchAddresses(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []model.Office
	}{
		{
			name: "street address",
			text: "Our headquarters: 1200 Harbor Boulevard; call us.",
			want: []model.Office{{Location: "1200 Harbor Boulevard", Address: "1200 Harbor Boulevard"}},
		},
		{
			name: "headquarters inside the match",
			text: "Visit 100 Headquarters Drive; we are open.",
			want: []model.Office{{Location: "100 Headquarters Drive", Address: "100 Headquarters Drive", IsHQ: true}},
		},
		{
			name: "city state zip and city country",
			text: "Offices: Austin, TX 78701 and Vienna, Austria.",
			want: []model.Office{
				{Location: "Austin, TX 78701", Address: "Austin, TX 78701"},
				{Location: "Vienna, Austria", Address: "Vienna, Austria"},
			},
		},
		{
			name: "short matches dropped",
			text: "Bonn, Ulm",
			want: nil,
		},
		{
			name: "nothing",
			text: "we make batteries",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchAddresses(tt.text))
		})
	}
}

func TestMatchAddresses_ThreePerPattern(t *testing.T) {
	got := MatchAddresses("Paris, France. Lyon, France. Nice, France. Lille, France.")
	require.Len(t, got, 3)
	assert.Equal(t, "Paris, France", got[0].Location)
	assert.Equal(t, "Nice, France", got[2].Location)
}

func TestMatchAddresses_CollapsesWhitespace(t *testing.T) {
	got := MatchAddresses("Rome,\n   Italy")
	require.Len(t, got, 1)
	assert.Equal(t, "Rome, Italy", got[0].Location)
}

func TestDedupeOffices(t *testing.T) {
	in := []model.Office{
		{Location: "Berlin, Germany"},
		{Location: "  berlin, GERMANY "},
		{Location: "Paris"},
		{Location: "Paris!"},
	}
	got := DedupeOffices(in)

	require.Len(t, got, 2)
	assert.Equal(t, "Berlin, Germany", got[0].Location)
	assert.True(t, got[0].IsHQ, "first office promoted to headquarters")
	assert.Equal(t, "Paris!", got[1].Location)
	assert.False(t, got[1].IsHQ)
	assert.False(t, in[0].IsHQ, "input untouched")
}

func TestDedupeOffices_KeepsExistingHQ(t *testing.T) {
	got := DedupeOffices([]model.Office{
		{Location: "Oslo, Norway"},
		{Location: "Bergen, Norway", IsHQ: true},
	})
	require.Len(t, got, 2)
	assert.False(t, got[0].IsHQ)
	assert.True(t, got[1].IsHQ)
}

func TestDedupeOffices_CapsAtFive(t *testing.T) {
	var in []model.Office
	for i := 0; i < 7; i++ {
		in = append(in, model.Office{Location: fmt.Sprintf("Office number %d", i)})
	}
	in[6].IsHQ = true

	got := DedupeOffices(in)
	require.Len(t, got, 5)
	assert.True(t, got[0].IsHQ, "headquarters past the cap is replaced by the first office")
}

func TestDedupeOffices_Empty(t *testing.T) {
	assert.Empty(t, DedupeOffices(nil))
	assert.Empty(t, DedupeOffices([]model.Office{{Location: "NYC"}}))
}

func TestDedupeOffices_Invariants(t *testing.T) {
	pool := []string{"London, UK 10001", "Leeds, England", "Oslo", "Austin, TX 78701", "Vienna, Austria",
		"Munich, Germany", "Pune, India", "Lyon, France", "Cork, Ireland", "  ", "Dubai"}
	rng := rand.New(rand.NewPCG(42, 7))

	for i := 0; i < 300; i++ {
		n := rng.IntN(12)
		in := make([]model.Office, n)
		for j := range in {
			loc := pool[rng.IntN(len(pool))]
			if rng.IntN(2) == 0 {
				loc = strings.ToUpper(loc) + " "
			}
			in[j] = model.Office{Location: loc, IsHQ: rng.IntN(6) == 0}
		}

		got := DedupeOffices(in)
		assert.LessOrEqual(t, len(got), 5)

		keys := map[string]bool{}
		hq := false
		for _, o := range got {
			key := strings.ToLower(strings.TrimSpace(o.Location))
			assert.False(t, keys[key], "duplicate key %q", key)
			assert.Greater(t, len([]rune(key)), 5)
			keys[key] = true
			hq = hq || o.IsHQ
		}
		if len(got) > 0 {
			assert.True(t, hq, "non-empty result must have a headquarters")
		}
	}
}
