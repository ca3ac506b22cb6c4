package pdf

import (
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	// ErrAllPagesRemoved means a removal would leave an empty document.
	ErrAllPagesRemoved = errors.New("cannot remove every page of the document")

	// ErrTooFewInputs is returned by Merge when fewer than two documents are given.
	ErrTooFewInputs = errors.New("at least two PDF files are required")

	// ErrNoImages is returned by ImagesToPDF for an empty image list.
	ErrNoImages = errors.New("no images provided")

	// ErrInvalidInterval is returned by SplitEvery when the interval is below 1.
	ErrInvalidInterval = errors.New("interval must be at least 1")
)

// Processor performs document transformations with pdfcpu.
// Page arguments are 1-based throughout.
type Processor struct{}

// NewProcessor returns a Processor. pdfcpu's on-disk configuration directory is
// disabled so the built-in defaults are used.
func NewProcessor() *Processor {
	api.DisableConfigDir()
	return &Processor{}
}

// config returns a fresh configuration per call. pdfcpu writes into the
// configuration while it runs, so it must not be shared between requests.
func (p *Processor) config() *model.Configuration {
	return model.NewDefaultConfiguration()
}

// PageCount returns the number of pages in the PDF file.
func (p *Processor) PageCount(filename string) (int, error) {
	n, err := api.PageCountFile(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}
	return n, nil
}
