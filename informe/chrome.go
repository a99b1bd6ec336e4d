package informe

import (
	"fmt"

	"github.com/zeptools/informes/pdfs"
)

// drawChrome runs on every new page, including automatic breaks inside
// oversize cards
func (s *Session) drawChrome(pageNo int) {
	st, g := s.style, s.geo
	if st.PageBorder {
		in := st.BorderInset
		s.w.SetLineWidth(st.LineWidth / 2)
		s.w.SetDrawColor(st.BorderColor)
		s.w.Rect(in, in, g.Paper.Width-2*in, g.Paper.Height-2*in, pdfs.Stroke)
	}
	lh := st.ChromeFont.Size * 1.25
	if st.RunningHeader && pageNo > 1 {
		s.w.SetFont(st.ChromeFont)
		s.w.SetTextColor(st.TextColor)
		s.w.Text(g.Left(), g.TopMargin()-lh-6, g.ContentWidth, lh, s.opts.Title, pdfs.AlignLeft)
		s.w.SetLineWidth(st.LineWidth / 2)
		s.w.SetDrawColor(st.RuleColor)
		s.w.Line(g.Left(), g.TopMargin()-4, g.Right(), g.TopMargin()-4)
	}
	if st.PageNumbers {
		s.w.SetFont(st.ChromeFont)
		s.w.SetTextColor(st.TextColor)
		label := fmt.Sprintf(st.PageNumberFormat, pageNo, s.w.TotalPagesAlias())
		s.w.Text(g.Left(), g.FooterLimit+4, g.ContentWidth, lh, label, pdfs.AlignCenter)
	}
}

// drawHeader writes the page 1 header block: logo, centered title, rule,
// then the info lines
func (s *Session) drawHeader() error {
	st, g := s.style, s.geo
	top := st.HeaderTop
	if s.logo != "" {
		s.w.Image(s.logo, g.Left(), top, 0, st.LogoHeight)
	}

	lines, err := MeasureLines(s.m, s.opts.Title, st.TitleFont, g.ContentWidth)
	if err != nil {
		return err
	}
	lh := st.TitleFont.Size * 1.25
	y := top + 15
	s.w.SetFont(st.TitleFont)
	s.w.SetTextColor(st.TextColor)
	for i, l := range lines {
		s.w.Text(g.Left(), y+float64(i)*lh, g.ContentWidth, lh, l, pdfs.AlignCenter)
	}

	rule := top + st.HeaderHeight
	if end := y + float64(len(lines))*lh; end+4 > rule {
		rule = end + 4
	}
	s.w.SetLineWidth(st.LineWidth)
	s.w.SetDrawColor(st.RuleColor)
	s.w.Line(g.Left(), rule, g.Right(), rule)
	s.cur.y = rule + st.HeaderGap
	s.cur.fresh = false

	for _, info := range s.opts.Info {
		if err = s.paragraph(info, st.InfoFont, st.InfoLineHeight, pdfs.AlignLeft, g.PageBreakThreshold); err != nil {
			return err
		}
	}
	if len(s.opts.Info) > 0 {
		s.cur.y += st.HeaderGap / 2
	}
	return nil
}

// drawFooter writes the closing block: disclaimer, issue date and user
func (s *Session) drawFooter() error {
	st, g := s.style, s.geo
	issued := s.opts.IssuedAt
	texts := make([]string, 0, 3)
	if st.Disclaimer != "" {
		texts = append(texts, st.Disclaimer)
	}
	texts = append(texts,
		fmt.Sprintf(st.IssuedFormat, issued.Format(st.DateLayout), issued.Format(st.TimeLayout)),
		fmt.Sprintf(st.UserFormat, s.opts.UserName),
	)
	var lines []string
	for _, t := range texts {
		wrapped, err := MeasureLines(s.m, t, st.FooterFont, g.ContentWidth)
		if err != nil {
			return err
		}
		lines = append(lines, wrapped...)
	}

	s.ensure(st.FooterGap+float64(len(lines))*st.FooterLineHeight, g.FooterLimit)
	if !s.cur.fresh {
		s.cur.y += st.FooterGap
	}
	s.layout.FooterPage = s.cur.page
	s.layout.FooterTop = s.cur.y

	s.w.SetFont(st.FooterFont)
	s.w.SetTextColor(st.TextColor)
	for _, l := range lines {
		s.w.Text(g.Left(), s.cur.y, g.ContentWidth, st.FooterLineHeight, l, pdfs.AlignCenter)
		s.advance(st.FooterLineHeight)
	}
	s.layout.FooterBottom = s.cur.y
	return nil
}
