// Package pagespec parses user supplied page specifications such as "1-3,5,7-9".
//
// Parsing is permissive per token and strict in aggregate: malformed or out of
// bounds tokens are dropped silently, and callers detect an invalid
// specification by an empty result.
package pagespec

import (
	"strconv"
	"strings"
)

// Range is an inclusive, 1-based page range.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of pages covered by r.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

// Selection renders r in pdfcpu page selection syntax.
func (r Range) Selection() string {
	if r.Start == r.End {
		return strconv.Itoa(r.Start)
	}
	return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End)
}

func (r Range) String() string {
	return r.Selection()
}

func (r Range) valid(maxPage int) bool {
	return r.Start >= 1 && r.End >= r.Start && r.End <= maxPage
}

// Ranges is an ordered list of page ranges. Order and repetition are significant.
type Ranges []Range

// Expand lists every page of every range, in order, repetitions included.
func (rs Ranges) Expand() []int {
	n := 0
	for _, r := range rs {
		n += r.Len()
	}
	pages := make([]int, 0, n)
	for _, r := range rs {
		for p := r.Start; p <= r.End; p++ {
			pages = append(pages, p)
		}
	}
	return pages
}

// Selections renders rs as pdfcpu page selections, one per range.
func (rs Ranges) Selections() []string {
	sel := make([]string, len(rs))
	for i, r := range rs {
		sel[i] = r.Selection()
	}
	return sel
}

// ParseRanges parses raw into ranges in token order. A token is either a page
// number ("5") or a hyphen joined pair ("7-9"). A pair whose end does not parse
// is taken as a single page. Ranges outside [1, maxPage] or with end < start are
// dropped. ParseRanges returns nil when no range survives.
func ParseRanges(raw string, maxPage int) Ranges {
	var ranges Ranges
	for _, tok := range tokens(raw) {
		startStr, endStr, isRange := strings.Cut(tok, "-")
		start, ok := parseLeadingInt(startStr)
		if !ok {
			continue
		}
		r := Range{Start: start, End: start}
		if isRange {
			if end, ok := parseLeadingInt(endStr); ok {
				r.End = end
			}
		}
		if r.valid(maxPage) {
			ranges = append(ranges, r)
		}
	}
	return ranges
}

// tokens splits raw on commas and trims each token. Empty tokens are skipped.
func tokens(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	toks := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			toks = append(toks, p)
		}
	}
	return toks
}

// parseLeadingInt reads an optionally signed decimal integer from the start of
// s, after leading whitespace, ignoring whatever follows the digits.
// "12abc" yields 12. It fails when no digit is present or the value overflows.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0, false
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0, false
	}
	return n, true
}
