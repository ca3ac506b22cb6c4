package pdf

import (
	"fmt"
	"strconv"
)

// ValidatePageNumbers checks that every page is positive and within totalPages.
func ValidatePageNumbers(pages []int, totalPages int) error {
	for _, page := range pages {
		if page < 1 {
			return fmt.Errorf("page numbers must be positive, got %d", page)
		}
		if page > totalPages {
			return fmt.Errorf("page %d exceeds total pages (%d)", page, totalPages)
		}
	}
	return nil
}

// pageSelections converts page numbers to pdfcpu selections, keeping order.
func pageSelections(pages []int) []string {
	sel := make([]string, len(pages))
	for i, p := range pages {
		sel[i] = strconv.Itoa(p)
	}
	return sel
}
