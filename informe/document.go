package informe

import (
	"io"
	"slices"

	"github.com/zeptools/informes/pdfs"
)

// Placement records where a card landed
type Placement struct {
	Index    int
	Title    string
	Page     int // page holding the card header
	EndPage  int // differs from Page only for oversize cards
	Top      float64
	Bottom   float64 // on EndPage
	Height   float64 // measured height before drawing
	Oversize bool
}

// Layout is the pagination outcome of a finished document
type Layout struct {
	Pages        int
	Cards        []Placement
	FooterPage   int
	FooterTop    float64
	FooterBottom float64
}

// PageOf returns the page of every card, in order
func (l Layout) PageOf() []int {
	pages := make([]int, len(l.Cards))
	for i, c := range l.Cards {
		pages[i] = c.Page
	}
	return pages
}

// Document is a finished, read-only report
type Document struct {
	w      pdfs.Writer
	layout Layout
}

func (d *Document) Layout() Layout {
	l := d.layout
	l.Cards = slices.Clone(d.layout.Cards)
	return l
}

func (d *Document) Pages() int {
	return d.layout.Pages
}

// WriteTo writes the PDF bytes. Failures are *StreamError.
func (d *Document) WriteTo(out io.Writer) (int64, error) {
	n, err := d.w.WriteTo(out)
	if err != nil {
		return n, &StreamError{Op: "write document", Err: err}
	}
	return n, nil
}
