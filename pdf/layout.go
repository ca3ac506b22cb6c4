package pdf

import (
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ErrInvalidLayout is returned for an image page layout that cannot be built.
var ErrInvalidLayout = errors.New("invalid image page layout")

const pointsPerMM = 72 / 25.4

// Fit modes for images placed on a page.
const (
	FitOriginal = "original"
	FitFit      = "fit"
	FitFill     = "fill"
)

// PageSizeCustom selects the page dimensions given by ImageLayout.Width and Height.
const PageSizeCustom = "Custom"

var layoutPageSizes = map[string]bool{"A3": true, "A4": true, "A5": true, "Letter": true}

// ImageLayout describes the pages created from images. The zero value sizes
// every page to its image.
type ImageLayout struct {
	PageSize string  // A4, Letter, A5, A3 or Custom; empty means page size follows the image
	Width    float64 // custom page width in mm
	Height   float64 // custom page height in mm
	Margin   float64 // margin on each side in mm
	Fit      string  // original, fit or fill; empty means fit
}

// DefaultImageLayout is an A4 page with the image fitted and no margin.
func DefaultImageLayout() ImageLayout {
	return ImageLayout{PageSize: "A4", Fit: FitFit}
}

// pageDim returns the page dimensions in points.
func (l ImageLayout) pageDim() (*types.Dim, error) {
	if l.PageSize == PageSizeCustom {
		if l.Width <= 0 || l.Height <= 0 {
			return nil, fmt.Errorf("%w: custom page size needs positive width and height", ErrInvalidLayout)
		}
		return &types.Dim{Width: l.Width * pointsPerMM, Height: l.Height * pointsPerMM}, nil
	}
	if !layoutPageSizes[l.PageSize] {
		return nil, fmt.Errorf("%w: unknown page size %q", ErrInvalidLayout, l.PageSize)
	}
	dim := *types.PaperSize[l.PageSize]
	return &dim, nil
}

// importConfig translates the layout into a pdfcpu import configuration.
// Images always keep their aspect ratio, so fill scales like fit.
func (l ImageLayout) importConfig() (*pdfcpu.Import, error) {
	imp := pdfcpu.DefaultImportConfig()
	if l.PageSize == "" {
		return imp, nil
	}

	dim, err := l.pageDim()
	if err != nil {
		return nil, err
	}
	if l.Margin < 0 {
		return nil, fmt.Errorf("%w: margin must not be negative", ErrInvalidLayout)
	}
	margin := l.Margin * pointsPerMM
	if 2*margin >= dim.Width || 2*margin >= dim.Height {
		return nil, fmt.Errorf("%w: margin leaves no room for the image", ErrInvalidLayout)
	}

	imp.PageDim = dim
	imp.PageSize = l.PageSize
	imp.UserDim = true
	imp.Pos = types.Center

	switch l.Fit {
	case FitOriginal:
		imp.Scale = 1
		imp.ScaleAbs = true
	case "", FitFit, FitFill:
		imp.Scale = min((dim.Width-2*margin)/dim.Width, (dim.Height-2*margin)/dim.Height)
	default:
		return nil, fmt.Errorf("%w: unknown fit mode %q", ErrInvalidLayout, l.Fit)
	}
	return imp, nil
}
