package informe

import (
	"github.com/zeptools/informes/pdfs"
)

// Measurer reports how text lays out in a font.
// Results must be deterministic for the same (text, font, width).
type Measurer interface {
	// Lines word-wraps text to maxWidth. Explicit newlines are honoured.
	Lines(text string, font pdfs.Font, maxWidth float64) ([]string, error)
	// Width is the advance width of text on a single line
	Width(text string, font pdfs.Font) (float64, error)
}

// MeasureLines wraps text and never returns zero lines: empty text is one
// blank line. Errors come back as *MeasurementError.
func MeasureLines(m Measurer, text string, font pdfs.Font, maxWidth float64) ([]string, error) {
	lines, err := m.Lines(text, font, maxWidth)
	if err != nil {
		return nil, newMeasurementError(text, font, err)
	}
	if len(lines) == 0 {
		return []string{""}, nil
	}
	return lines, nil
}

// MeasureHeight is the height text occupies when wrapped to maxWidth
// with the given line height.
func MeasureHeight(m Measurer, text string, font pdfs.Font, maxWidth, lineHeight float64) (float64, error) {
	lines, err := MeasureLines(m, text, font, maxWidth)
	if err != nil {
		return 0, err
	}
	return float64(len(lines)) * lineHeight, nil
}
