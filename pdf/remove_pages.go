package pdf

import (
	"fmt"

	"pdf_toolkit/pagespec"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// RemovePages writes inFile without the pages in set to outFile.
func (p *Processor) RemovePages(inFile, outFile string, set pagespec.PageSet) error {
	if set.Len() == 0 {
		return fmt.Errorf("no pages selected for removal")
	}

	// Validate page numbers against PDF page count before processing
	totalPages, err := p.PageCount(inFile)
	if err != nil {
		return err
	}
	pages := set.Sorted()
	if err := ValidatePageNumbers(pages, totalPages); err != nil {
		return err
	}
	if len(set.Complement(totalPages)) == 0 {
		return ErrAllPagesRemoved
	}

	if err := api.RemovePagesFile(inFile, outFile, pageSelections(pages), p.config()); err != nil {
		return fmt.Errorf("pdfcpu remove failed: %w", err)
	}
	return nil
}
