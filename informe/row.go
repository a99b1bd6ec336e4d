package informe

import (
	"github.com/zeptools/informes/pdfs"
)

type rowLayout struct {
	field     FieldRow
	labelFont pdfs.Font // may be smaller than Style.LabelFont
	lines     []string  // wrapped value
	height    float64
}

func (s *Session) valueWidth() float64 {
	return s.geo.ContentWidth - s.style.LabelWidth - 2*s.style.CellPaddingX
}

// rowHeight grows with the number of value lines and never drops below
// the minimum row height
func (s *Session) rowHeight(lines int) float64 {
	st := s.style
	return max(st.MinRowHeight, float64(lines)*st.ValueLineHeight+2*st.CellPaddingY)
}

func (s *Session) layoutRow(f FieldRow) (rowLayout, error) {
	st := s.style
	labelFont, err := fitFont(s.m, f.Label, st.LabelFont, st.LabelWidth-2*st.CellPaddingX, st.MinLabelSize)
	if err != nil {
		return rowLayout{}, err
	}
	lines, err := MeasureLines(s.m, f.Value, st.ValueFont, s.valueWidth())
	if err != nil {
		return rowLayout{}, err
	}
	return rowLayout{
		field:     f,
		labelFont: labelFont,
		lines:     lines,
		height:    s.rowHeight(len(lines)),
	}, nil
}

// drawRow draws a shaded label cell and a plain value cell side by side,
// both bordered, at the cursor
func (s *Session) drawRow(row rowLayout, lines []string, height float64, withLabel bool) {
	st := s.style
	x, y := s.geo.Left(), s.cur.y
	valueX := x + st.LabelWidth

	s.w.SetLineWidth(st.LineWidth)
	s.w.SetDrawColor(st.RuleColor)
	s.w.SetFillColor(st.LabelFill)
	s.w.Rect(x, y, st.LabelWidth, height, pdfs.FillThenStroke)
	s.w.Rect(valueX, y, s.geo.ContentWidth-st.LabelWidth, height, pdfs.Stroke)

	s.w.SetTextColor(st.TextColor)
	if withLabel {
		s.w.SetFont(row.labelFont)
		s.w.Text(x+st.CellPaddingX, y+st.CellPaddingY, st.LabelWidth-2*st.CellPaddingX, st.ValueLineHeight, row.field.Label, pdfs.AlignLeft)
	}
	s.w.SetFont(st.ValueFont)
	for i, l := range lines {
		ly := y + st.CellPaddingY + float64(i)*st.ValueLineHeight
		s.w.Text(valueX+st.CellPaddingX, ly, s.valueWidth(), st.ValueLineHeight, l, pdfs.AlignLeft)
	}
}

// fitFont shrinks font in half-point steps until text fits width or
// minSize is reached. Past minSize the text is allowed to overflow.
func fitFont(m Measurer, text string, font pdfs.Font, width, minSize float64) (pdfs.Font, error) {
	const step = 0.5
	for {
		w, err := m.Width(text, font)
		if err != nil {
			return font, newMeasurementError(text, font, err)
		}
		if w <= width || font.Size-step < minSize {
			return font, nil
		}
		font = font.WithSize(font.Size - step)
	}
}
