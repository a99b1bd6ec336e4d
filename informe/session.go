package informe

import (
	"bytes"
	"context"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/zeptools/informes/pdfs"
)

type state int

const (
	stateOpening state = iota
	stateStreaming
	stateClosing
	stateClosed
)

func (st state) String() string {
	switch st {
	case stateOpening:
		return "OPENING"
	case stateStreaming:
		return "STREAMING"
	case stateClosing:
		return "CLOSING"
	default:
		return "CLOSED"
	}
}

// Logo is the image printed at the top-left of the first page
type Logo struct {
	Name string // registration key inside the document
	Kind string // "png", "jpg" or "gif"
	Data []byte
}

// Options are the per-document inputs of a Session
type Options struct {
	Geometry Geometry
	Style    Style
	Title    string
	Info     []string // lines printed once under the header rule
	UserName string
	IssuedAt time.Time
	Logo     *Logo
}

type cursor struct {
	page  int
	y     float64
	fresh bool // nothing drawn on this page yet besides the page chrome
}

// Session lays out one document, top to bottom, in a single pass.
// It is not safe for concurrent use and must not be shared between
// documents.
type Session struct {
	w      pdfs.Writer
	m      Measurer
	geo    Geometry
	style  Style
	opts   Options
	state  state
	cur    cursor
	layout Layout
	logo   string
}

// Open starts a document on a writer that has no pages yet, and writes
// the header block on page 1.
func Open(ctx context.Context, w pdfs.Writer, m Measurer, opts Options) (*Session, error) {
	if err := opts.Geometry.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Style.Validate(opts.Geometry); err != nil {
		return nil, err
	}
	if w.PageNo() != 0 {
		return nil, errors.New("informe: writer already has pages")
	}
	if err := ctx.Err(); err != nil {
		return nil, &StreamError{Op: "open", Err: err}
	}
	if opts.IssuedAt.IsZero() {
		opts.IssuedAt = time.Now()
	}
	if opts.UserName == "" {
		opts.UserName = opts.Style.DefaultUser
	}

	s := &Session{
		w:     w,
		m:     m,
		geo:   opts.Geometry,
		style: opts.Style,
		opts:  opts,
		state: stateOpening,
	}
	if opts.Logo != nil && len(opts.Logo.Data) > 0 {
		if err := w.RegisterImage(opts.Logo.Name, opts.Logo.Kind, bytes.NewReader(opts.Logo.Data)); err != nil {
			log.Printf("[WARN][informe] logo %q skipped: %v", opts.Logo.Name, err)
		} else {
			s.logo = opts.Logo.Name
		}
	}
	w.OnPageAdded(s.pageAdded)
	w.AddPage()
	if err := s.drawHeader(); err != nil {
		s.state = stateClosed
		return nil, err
	}
	if err := w.Err(); err != nil {
		s.state = stateClosed
		return nil, errors.Wrap(err, "informe: header")
	}
	s.state = stateStreaming
	return s, nil
}

// streaming guards every STREAMING operation
func (s *Session) streaming(ctx context.Context, op string) error {
	if s.state != stateStreaming {
		return ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		s.state = stateClosed
		return &StreamError{Op: op, Err: err}
	}
	return nil
}

// fail aborts the session after a fatal error
func (s *Session) fail(err error) error {
	s.state = stateClosed
	return err
}

func (s *Session) pageAdded(pageNo int) {
	s.cur = cursor{page: pageNo, y: s.geo.TopMargin(), fresh: true}
	s.layout.Pages = pageNo
	s.drawChrome(pageNo)
}

func (s *Session) newPage() {
	s.w.AddPage()
}

func (s *Session) advance(h float64) {
	s.cur.y += h
	s.cur.fresh = false
}

// ensure starts a new page unless height fits above limit. A fresh page
// is never skipped: a block taller than a whole page starts there anyway.
func (s *Session) ensure(height, limit float64) bool {
	if s.cur.y+height <= limit || s.cur.fresh {
		return false
	}
	s.newPage()
	return true
}

// EnsureSpace starts a new page when a block of height would cross the
// page break threshold. It reports whether a page was added.
func (s *Session) EnsureSpace(height float64) (bool, error) {
	if s.state != stateStreaming {
		return false, ErrSessionClosed
	}
	return s.ensure(height, s.geo.PageBreakThreshold), nil
}

// NewPage forces a page break
func (s *Session) NewPage(ctx context.Context) error {
	if err := s.streaming(ctx, "new page"); err != nil {
		return err
	}
	s.newPage()
	return nil
}

// Cursor reports the current page and vertical position
func (s *Session) Cursor() (page int, y float64) {
	return s.cur.page, s.cur.y
}

// AppendCard measures card, moves to a new page if it would not fit,
// then draws it. Cards are never split unless taller than a full page,
// in which case they start on a fresh page and continue on the next ones.
func (s *Session) AppendCard(ctx context.Context, card Card) error {
	if err := s.streaming(ctx, "append card"); err != nil {
		return err
	}
	cl, err := s.layoutCard(card)
	if err != nil {
		return s.fail(err)
	}

	index := len(s.layout.Cards)
	oversize := cl.height > s.geo.UsableHeight()
	if oversize {
		log.Printf("[WARN][informe] card %d %q is %.1fpt tall but a page holds %.1fpt; it will continue on the next page",
			index+1, card.Title, cl.height, s.geo.UsableHeight())
	}
	s.ensure(cl.height, s.geo.PageBreakThreshold)

	p := Placement{
		Index:    index,
		Title:    card.Title,
		Page:     s.cur.page,
		Top:      s.cur.y,
		Height:   cl.height,
		Oversize: oversize,
	}
	if oversize {
		s.drawSpilling(cl)
	} else {
		s.drawCard(cl)
	}
	p.EndPage = s.cur.page
	p.Bottom = s.cur.y
	s.layout.Cards = append(s.layout.Cards, p)
	s.cur.y += s.style.CardGap

	if err = s.w.Err(); err != nil {
		return s.fail(errors.Wrapf(err, "informe: draw card %d", index+1))
	}
	return nil
}

// AppendText writes a wrapped paragraph in the note font, e.g. the
// message shown when there are no records
func (s *Session) AppendText(ctx context.Context, text string) error {
	if err := s.streaming(ctx, "append text"); err != nil {
		return err
	}
	if err := s.paragraph(text, s.style.NoteFont, s.style.NoteLineHeight, pdfs.AlignLeft, s.geo.PageBreakThreshold); err != nil {
		return s.fail(err)
	}
	if err := s.w.Err(); err != nil {
		return s.fail(errors.Wrap(err, "informe: draw text"))
	}
	return nil
}

// paragraph keeps the block together when it fits on a page and
// otherwise breaks between lines
func (s *Session) paragraph(text string, font pdfs.Font, lineHeight float64, align pdfs.Align, limit float64) error {
	lines, err := MeasureLines(s.m, text, font, s.geo.ContentWidth)
	if err != nil {
		return err
	}
	s.ensure(float64(len(lines))*lineHeight, limit)
	s.w.SetTextColor(s.style.TextColor)
	for _, l := range lines {
		s.ensure(lineHeight, limit)
		s.w.SetFont(font)
		s.w.Text(s.geo.Left(), s.cur.y, s.geo.ContentWidth, lineHeight, l, align)
		s.advance(lineHeight)
	}
	return nil
}

// Close writes the footer right after the last block, on a new page only
// when it does not fit above the footer limit, and finalizes the session.
// The returned Document cannot be appended to.
func (s *Session) Close(ctx context.Context) (*Document, error) {
	if err := s.streaming(ctx, "close"); err != nil {
		return nil, err
	}
	s.state = stateClosing
	if err := s.drawFooter(); err != nil {
		return nil, s.fail(err)
	}
	if err := s.w.Err(); err != nil {
		return nil, s.fail(errors.Wrap(err, "informe: footer"))
	}
	s.state = stateClosed
	return &Document{w: s.w, layout: s.layout}, nil
}
