package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Arrange writes a document whose pages follow order. Pages may repeat or be left out.
func (p *Processor) Arrange(inFile, outFile string, order []int) error {
	if len(order) == 0 {
		return fmt.Errorf("empty page order")
	}
	totalPages, err := p.PageCount(inFile)
	if err != nil {
		return err
	}
	if err := ValidatePageNumbers(order, totalPages); err != nil {
		return err
	}
	if err := api.CollectFile(inFile, outFile, pageSelections(order), p.config()); err != nil {
		return fmt.Errorf("pdfcpu collect failed: %w", err)
	}
	return nil
}

// Merge concatenates inFiles, in order, into outFile.
func (p *Processor) Merge(inFiles []string, outFile string) error {
	if len(inFiles) < 2 {
		return ErrTooFewInputs
	}
	if err := api.MergeCreateFile(inFiles, outFile, false, p.config()); err != nil {
		return fmt.Errorf("pdfcpu merge failed: %w", err)
	}
	return nil
}

// ImagesToPDF creates a document with one page per JPEG or PNG image, laid out by layout.
func (p *Processor) ImagesToPDF(images []string, outFile string, layout ImageLayout) error {
	if len(images) == 0 {
		return ErrNoImages
	}
	imp, err := layout.importConfig()
	if err != nil {
		return err
	}
	if err := api.ImportImagesFile(images, outFile, imp, p.config()); err != nil {
		return fmt.Errorf("pdfcpu import failed: %w", err)
	}
	return nil
}
