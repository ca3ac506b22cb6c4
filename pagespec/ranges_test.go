package pagespec

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRanges(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		maxPage int
		want    Ranges
	}{
		{"mixed", "1-3,5,7-9", 9, Ranges{{1, 3}, {5, 5}, {7, 9}}},
		{"empty", "", 10, nil},
		{"only commas", ",,", 10, nil},
		{"reversed", "5-2", 10, nil},
		{"end past max", "1-100", 10, nil},
		{"start zero", "0-3", 10, nil},
		{"page zero", "0", 10, nil},
		{"whitespace", " 2 - 4 , 6 ", 10, Ranges{{2, 4}, {6, 6}}},
		{"leading and trailing commas", ",2,", 5, Ranges{{2, 2}}},
		{"open end is single page", "4-", 10, Ranges{{4, 4}}},
		{"garbage end is single page", "4-x", 10, Ranges{{4, 4}}},
		{"garbage start dropped", "x-4,2", 10, Ranges{{2, 2}}},
		{"negative looking token dropped", "-3", 10, nil},
		{"trailing garbage ignored", "3abc", 10, Ranges{{3, 3}}},
		{"split on first hyphen", "1-2-3", 10, Ranges{{1, 2}}},
		{"order and duplicates kept", "5,1-2,5,2-3", 5, Ranges{{5, 5}, {1, 2}, {5, 5}, {2, 3}}},
		{"invalid dropped valid kept", "1-100,abc,2", 10, Ranges{{2, 2}}},
		{"overflow dropped", "99999999999999999999999,1", 3, Ranges{{1, 1}}},
		{"zero max page", "1", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRanges(tt.raw, tt.maxPage))
		})
	}
}

func TestRangesExpandAndSelections(t *testing.T) {
	rs := Ranges{{3, 4}, {1, 1}, {3, 3}}
	assert.Equal(t, []int{3, 4, 1, 3}, rs.Expand())
	assert.Equal(t, []string{"3-4", "1", "3"}, rs.Selections())
	assert.Empty(t, Ranges(nil).Expand())
	assert.Equal(t, 2, Range{Start: 3, End: 4}.Len())
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"7", 7, true},
		{"  7", 7, true},
		{"+7", 7, true},
		{"-7", -7, true},
		{"7.5", 7, true},
		{"", 0, false},
		{"-", 0, false},
		{"abc", 0, false},
		{"1e3", 1, true},
	}
	for _, tt := range tests {
		got, ok := parseLeadingInt(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	inputs := []string{"1-3,5,7-9", "9-1,2", "", "1,,3", "0-2,4", "3abc,2-x"}
	for _, raw := range inputs {
		assert.Equal(t, ParseRanges(raw, 9), ParseRanges(raw, 9), raw)
		assert.Equal(t, ParsePageSet(raw, 9), ParsePageSet(raw, 9), raw)
	}
}

// randomSpec builds specs from a small alphabet so that valid, reversed and out
// of range tokens all show up often.
func randomSpec(r *rand.Rand) string {
	var b strings.Builder
	n := r.Intn(6)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		switch r.Intn(5) {
		case 0:
			b.WriteString(strconv.Itoa(r.Intn(30) - 5))
		case 1:
			b.WriteString(strconv.Itoa(r.Intn(30)) + "-" + strconv.Itoa(r.Intn(30)))
		case 2:
			b.WriteString(" ")
		case 3:
			b.WriteString("x" + strconv.Itoa(r.Intn(5)))
		default:
			b.WriteString(strconv.Itoa(r.Intn(30)) + "-")
		}
	}
	return b.String()
}

func TestParseStaysInBounds(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		raw := randomSpec(r)
		maxPage := r.Intn(25)
		for _, rg := range ParseRanges(raw, maxPage) {
			require.GreaterOrEqual(t, rg.Start, 1, raw)
			require.LessOrEqual(t, rg.Start, rg.End, raw)
			require.LessOrEqual(t, rg.End, maxPage, raw)
		}
		for p := range ParsePageSet(raw, maxPage) {
			require.GreaterOrEqual(t, p, 1, raw)
			require.LessOrEqual(t, p, maxPage, raw)
		}
	}
}

func FuzzParse(f *testing.F) {
	f.Add("1-3,5,7-9", 9)
	f.Add("0-2", 10)
	f.Add(",,", 1)
	f.Add("5-2,3abc", 4)
	f.Fuzz(func(t *testing.T, raw string, maxPage int) {
		ranges := ParseRanges(raw, maxPage)
		if ranges != nil && len(ranges) == 0 {
			t.Fatal("empty non-nil ranges")
		}
		for _, rg := range ranges {
			if rg.Start < 1 || rg.End < rg.Start || rg.End > maxPage {
				t.Fatalf("range %v out of bounds for max %d", rg, maxPage)
			}
		}
		// bounded expansion keeps big maxPage inputs cheap
		if maxPage > 1<<16 {
			return
		}
		for p := range ParsePageSet(raw, maxPage) {
			if p < 1 || p > maxPage {
				t.Fatalf("page %d out of bounds for max %d", p, maxPage)
			}
		}
	})
}
