package pdf

import (
	"fmt"
	"path/filepath"

	"pdf_toolkit/pagespec"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Part is one output document of a split.
type Part struct {
	Name  string         `json:"name"`
	Path  string         `json:"-"`
	Pages pagespec.Range `json:"pages"`
}

// ExtractRanges writes a single document holding the pages of every range,
// in the given order. Overlapping and repeated ranges repeat their pages.
func (p *Processor) ExtractRanges(inFile, outFile string, ranges pagespec.Ranges) error {
	if len(ranges) == 0 {
		return fmt.Errorf("no page ranges given")
	}
	totalPages, err := p.PageCount(inFile)
	if err != nil {
		return err
	}
	if err := ValidatePageNumbers(ranges.Expand(), totalPages); err != nil {
		return err
	}
	if err := api.CollectFile(inFile, outFile, ranges.Selections(), p.config()); err != nil {
		return fmt.Errorf("pdfcpu collect failed: %w", err)
	}
	return nil
}

// SplitRanges writes one document per range into outDir, named part_N.pdf.
func (p *Processor) SplitRanges(inFile, outDir string, ranges pagespec.Ranges) ([]Part, error) {
	if len(ranges) == 0 {
		return nil, fmt.Errorf("no page ranges given")
	}
	totalPages, err := p.PageCount(inFile)
	if err != nil {
		return nil, err
	}
	if err := ValidatePageNumbers(ranges.Expand(), totalPages); err != nil {
		return nil, err
	}
	parts := make([]Part, 0, len(ranges))
	for i, r := range ranges {
		name := fmt.Sprintf("part_%d.pdf", i+1)
		part, err := p.collectPart(inFile, outDir, name, r)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// SplitEvery cuts the document into consecutive chunks of interval pages.
// Chunks are named split_part_N_pages_A-B.pdf.
func (p *Processor) SplitEvery(inFile, outDir string, interval int) ([]Part, error) {
	if interval < 1 {
		return nil, ErrInvalidInterval
	}
	totalPages, err := p.PageCount(inFile)
	if err != nil {
		return nil, err
	}
	chunks := pagespec.Intervals(totalPages, interval)
	parts := make([]Part, 0, len(chunks))
	for i, r := range chunks {
		name := fmt.Sprintf("split_part_%d_pages_%d-%d.pdf", i+1, r.Start, r.End)
		part, err := p.collectPart(inFile, outDir, name, r)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func (p *Processor) collectPart(inFile, outDir, name string, r pagespec.Range) (Part, error) {
	outFile := filepath.Join(outDir, name)
	if err := api.CollectFile(inFile, outFile, []string{r.Selection()}, p.config()); err != nil {
		return Part{}, fmt.Errorf("pdfcpu collect %s failed: %w", r, err)
	}
	return Part{Name: name, Path: outFile, Pages: r}, nil
}
