package informe

import (
	"github.com/zeptools/informes/pdfs"
)

// FieldRow is one label/value line of a card
type FieldRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Card is the bordered block that represents one record
type Card struct {
	Title  string     `json:"title"`
	Fields []FieldRow `json:"fields"`
}

func NewCard(title string, fields ...FieldRow) Card {
	return Card{Title: title, Fields: fields}
}

// Add appends a row
func (c *Card) Add(label, value string) {
	c.Fields = append(c.Fields, FieldRow{Label: label, Value: value})
}

// AddOptional appends a row only when value is not empty
func (c *Card) AddOptional(label, value string) {
	if value != "" {
		c.Add(label, value)
	}
}

// cardLayout is a card with every text already measured
type cardLayout struct {
	titleLines []string
	titleFont  pdfs.Font
	header     float64 // header bar height
	rows       []rowLayout
	height     float64
}

// layoutCard measures the card without drawing anything:
// height = header + Σ max(minRow, lines*lineHeight + 2*paddingY)
func (s *Session) layoutCard(card Card) (cardLayout, error) {
	st := s.style
	titleLines, titleFont, err := s.layoutTitle(card.Title)
	if err != nil {
		return cardLayout{}, err
	}
	header := max(st.CardHeaderHeight, float64(len(titleLines))*titleLineHeight(titleFont)+2*st.CellPaddingY)
	cl := cardLayout{
		titleLines: titleLines,
		titleFont:  titleFont,
		header:     header,
		rows:       make([]rowLayout, 0, len(card.Fields)),
		height:     header,
	}
	for _, f := range card.Fields {
		row, err := s.layoutRow(f)
		if err != nil {
			return cardLayout{}, err
		}
		cl.rows = append(cl.rows, row)
		cl.height += row.height
	}
	return cl, nil
}

func (s *Session) titleWidth() float64 {
	return s.geo.ContentWidth - 2*(s.style.CellPaddingX+2)
}

func titleLineHeight(font pdfs.Font) float64 {
	return font.Size * 1.2
}

// layoutTitle shrinks the title to fit one line; a title that still
// overflows at the minimum size is wrapped at the normal title font
func (s *Session) layoutTitle(title string) ([]string, pdfs.Font, error) {
	st := s.style
	font, err := fitFont(s.m, title, st.CardTitleFont, s.titleWidth(), st.MinLabelSize)
	if err != nil {
		return nil, font, err
	}
	w, err := s.m.Width(title, font)
	if err != nil {
		return nil, font, newMeasurementError(title, font, err)
	}
	if w <= s.titleWidth() {
		return []string{title}, font, nil
	}
	lines, err := MeasureLines(s.m, title, st.CardTitleFont, s.titleWidth())
	return lines, st.CardTitleFont, err
}

func (s *Session) drawCardHeader(cl cardLayout, top float64) {
	st := s.style
	x := s.geo.Left()
	s.w.SetLineWidth(st.LineWidth)
	s.w.SetDrawColor(st.RuleColor)
	s.w.SetFillColor(st.CardHeaderFill)
	s.w.Rect(x, top, s.geo.ContentWidth, cl.header, pdfs.FillThenStroke)

	inset := st.CellPaddingX + 2
	s.w.SetTextColor(st.TextColor)
	s.w.SetFont(cl.titleFont)
	if len(cl.titleLines) == 1 {
		s.w.Text(x+inset, top, s.titleWidth(), cl.header, cl.titleLines[0], st.TitleAlign)
		return
	}
	lh := titleLineHeight(cl.titleFont)
	for i, l := range cl.titleLines {
		s.w.Text(x+inset, top+st.CellPaddingY+float64(i)*lh, s.titleWidth(), lh, l, st.TitleAlign)
	}
}

// drawCard draws a card that fits below the cursor
func (s *Session) drawCard(cl cardLayout) {
	s.drawCardHeader(cl, s.cur.y)
	s.advance(cl.header)
	for _, row := range cl.rows {
		s.drawRow(row, row.lines, row.height, true)
		s.advance(row.height)
	}
}

// drawSpilling draws a card taller than a whole page. Rows continue on the
// following pages; a row that does not fit is cut between lines and its
// label is only printed on the first part.
func (s *Session) drawSpilling(cl cardLayout) {
	st := s.style
	s.drawCardHeader(cl, s.cur.y)
	s.advance(cl.header)
	for _, row := range cl.rows {
		lines := row.lines
		first := true
		for len(lines) > 0 {
			room := s.geo.PageBreakThreshold - s.cur.y
			if need := s.rowHeight(len(lines)); need <= room {
				s.drawRow(row, lines, need, first)
				s.advance(need)
				break
			}
			fit := int((room - 2*st.CellPaddingY) / st.ValueLineHeight)
			if fit < 1 {
				if !s.cur.fresh {
					s.newPage()
					continue
				}
				fit = 1
			}
			fit = min(fit, len(lines))
			h := float64(fit)*st.ValueLineHeight + 2*st.CellPaddingY
			s.drawRow(row, lines[:fit], h, first)
			s.advance(h)
			lines = lines[fit:]
			first = false
			if len(lines) > 0 {
				s.newPage()
			}
		}
	}
}
