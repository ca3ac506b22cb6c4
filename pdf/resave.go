package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Compress optimizes and rewrites a PDF file, dropping redundant objects.
func (p *Processor) Compress(inFile, outFile string) error {
	if err := api.OptimizeFile(inFile, outFile, p.config()); err != nil {
		return fmt.Errorf("pdfcpu optimize failed: %w", err)
	}
	return nil
}
