package informe

import (
	"github.com/pkg/errors"

	"github.com/zeptools/informes/pdfs"
)

// Geometry is the fixed page policy of a document
type Geometry struct {
	Paper        pdfs.PaperSize
	Margin       float64 // left, right and top margin
	ContentWidth float64
	// PageBreakThreshold is the lowest y a card or paragraph may reach
	PageBreakThreshold float64
	// FooterLimit is the lowest y the closing footer may reach
	FooterLimit float64
}

// DefaultGeometry is A4 portrait with 50pt margins
func DefaultGeometry() Geometry {
	return Geometry{
		Paper:              pdfs.A4Size,
		Margin:             50,
		ContentWidth:       495,
		PageBreakThreshold: 740,
		FooterLimit:        pdfs.A4Size.Height - 50,
	}
}

func (g Geometry) TopMargin() float64 {
	return g.Margin
}

func (g Geometry) Left() float64 {
	return g.Margin
}

func (g Geometry) Right() float64 {
	return g.Margin + g.ContentWidth
}

// UsableHeight is the vertical room a block gets on a fresh page
func (g Geometry) UsableHeight() float64 {
	return g.PageBreakThreshold - g.TopMargin()
}

func (g Geometry) Validate() error {
	switch {
	case g.Paper.Width <= 0 || g.Paper.Height <= 0:
		return errors.Errorf("geometry: invalid paper size %.2fx%.2f", g.Paper.Width, g.Paper.Height)
	case g.Margin < 0:
		return errors.Errorf("geometry: negative margin %.2f", g.Margin)
	case g.ContentWidth <= 0 || g.Margin+g.ContentWidth > g.Paper.Width:
		return errors.Errorf("geometry: content width %.2f does not fit the page", g.ContentWidth)
	case g.PageBreakThreshold <= g.TopMargin() || g.PageBreakThreshold > g.Paper.Height:
		return errors.Errorf("geometry: page break threshold %.2f outside the page", g.PageBreakThreshold)
	case g.FooterLimit < g.PageBreakThreshold || g.FooterLimit > g.Paper.Height:
		return errors.Errorf("geometry: footer limit %.2f must lie between the threshold and the page bottom", g.FooterLimit)
	}
	return nil
}
