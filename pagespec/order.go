package pagespec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidOrder is returned by ParseOrder for any malformed or out of range entry.
var ErrInvalidOrder = errors.New("invalid page order")

// ParseOrder parses a comma separated page order such as "3,1,2". Unlike the
// range parsers it is strict: every entry must be an integer in [1, maxPage].
// Pages may repeat or be omitted.
func ParseOrder(raw string, maxPage int) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty order", ErrInvalidOrder)
	}
	parts := strings.Split(raw, ",")
	order := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		page, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a page number", ErrInvalidOrder, part)
		}
		if page < 1 || page > maxPage {
			return nil, fmt.Errorf("%w: page %d outside 1-%d", ErrInvalidOrder, page, maxPage)
		}
		order = append(order, page)
	}
	return order, nil
}

// Intervals cuts [1, maxPage] into consecutive ranges of every pages. The last
// range may be shorter. It returns nil when every < 1 or maxPage < 1.
func Intervals(maxPage, every int) Ranges {
	if every < 1 || maxPage < 1 {
		return nil
	}
	ranges := make(Ranges, 0, (maxPage+every-1)/every)
	for start := 1; start <= maxPage; start += every {
		ranges = append(ranges, Range{Start: start, End: min(start+every-1, maxPage)})
	}
	return ranges
}
