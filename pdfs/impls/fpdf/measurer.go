package fpdf

import (
	lowimpl "codeberg.org/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/zeptools/informes/pdfs"
)

// Measurer computes text metrics on a private, never-drawn document.
// Not safe for concurrent use; create one per render.
type Measurer struct {
	pdf  *lowimpl.Fpdf
	text *cp1252
}

func NewMeasurer() *Measurer {
	pdf := lowimpl.New("P", "pt", "A4", "")
	pdf.SetCellMargin(0)
	return &Measurer{pdf: pdf, text: newCP1252()}
}

func (m *Measurer) setFont(font pdfs.Font) error {
	if font.Size <= 0 {
		return errors.Errorf("font %s: size must be positive", font)
	}
	m.pdf.SetFont(font.Family, font.Style, font.Size)
	if err := m.pdf.Error(); err != nil {
		m.pdf.ClearError()
		return errors.Wrapf(err, "font %s", font)
	}
	return nil
}

// Lines word-wraps text to maxWidth. Explicit newlines are kept.
// Empty text yields no lines.
func (m *Measurer) Lines(text string, font pdfs.Font, maxWidth float64) ([]string, error) {
	if maxWidth <= 0 {
		return nil, errors.Errorf("wrap width must be positive, got %.2f", maxWidth)
	}
	if err := m.setFont(font); err != nil {
		return nil, err
	}
	raw := m.pdf.SplitLines([]byte(m.text.encode(text)), maxWidth)
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = m.text.decode(l)
	}
	return lines, nil
}

func (m *Measurer) Width(text string, font pdfs.Font) (float64, error) {
	if err := m.setFont(font); err != nil {
		return 0, err
	}
	return m.pdf.GetStringWidth(m.text.encode(text)), nil
}
