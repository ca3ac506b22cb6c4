package pagespec

import (
	"sort"
	"strconv"
	"strings"
)

// PageSet is a set of 1-based page numbers.
type PageSet map[int]struct{}

// Add inserts pages into s.
func (s PageSet) Add(pages ...int) {
	for _, p := range pages {
		s[p] = struct{}{}
	}
}

// Contains reports whether page p is in s.
func (s PageSet) Contains(p int) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of pages in s.
func (s PageSet) Len() int {
	return len(s)
}

// Sorted returns the pages of s in ascending order.
func (s PageSet) Sorted() []int {
	pages := make([]int, 0, len(s))
	for p := range s {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// Selections renders s as pdfcpu page selections, one per page, ascending.
func (s PageSet) Selections() []string {
	pages := s.Sorted()
	sel := make([]string, len(pages))
	for i, p := range pages {
		sel[i] = strconv.Itoa(p)
	}
	return sel
}

// Complement returns the pages in [1, maxPage] that are not in s, ascending.
func (s PageSet) Complement(maxPage int) []int {
	var keep []int
	for p := 1; p <= maxPage; p++ {
		if !s.Contains(p) {
			keep = append(keep, p)
		}
	}
	return keep
}

// ParsePageSet parses raw into a set of pages. A range token is honoured only
// when both bounds parse and 1 <= start <= end <= maxPage; otherwise the whole
// token is discarded, even if some of its pages would be valid on their own.
// A bare page number outside [1, maxPage] drops only that number.
// The result is never nil and may be empty.
func ParsePageSet(raw string, maxPage int) PageSet {
	set := PageSet{}
	for _, tok := range tokens(raw) {
		startStr, endStr, isRange := strings.Cut(tok, "-")
		start, ok := parseLeadingInt(startStr)
		if !ok {
			continue
		}
		if !isRange {
			if start >= 1 && start <= maxPage {
				set.Add(start)
			}
			continue
		}
		end, ok := parseLeadingInt(endStr)
		if !ok {
			continue
		}
		r := Range{Start: start, End: end}
		if !r.valid(maxPage) {
			continue
		}
		for p := r.Start; p <= r.End; p++ {
			set.Add(p)
		}
	}
	return set
}
