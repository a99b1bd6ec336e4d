package pdfs

import (
	"io"
	"time"
)

type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

type RectStyle string

const (
	Stroke         RectStyle = "D"
	Fill           RectStyle = "F"
	FillThenStroke RectStyle = "FD"
)

// Metadata goes to the document information dictionary
type Metadata struct {
	Title     string
	Subject   string
	Author    string
	Creator   string
	CreatedAt time.Time
}

// Writer is a minimal, stream-style, append-only PDF writer. No page navigation.
// Coordinates are in `pt` from the top-left corner of the current page.
// Implementations are not safe for concurrent use; one Writer per document.
type Writer interface {
	PaperSize() PaperSize

	// AddPage appends a page and makes it current
	AddPage()
	// PageNo is the 1-based number of the current page, 0 before the first AddPage
	PageNo() int
	// OnPageAdded registers fn to be called right after every new page is started
	OnPageAdded(fn func(pageNo int))

	SetFont(font Font)
	SetTextColor(c Color)
	SetFillColor(c Color)
	SetDrawColor(c Color)
	SetLineWidth(width float64)

	Rect(x, y, w, h float64, style RectStyle)
	Line(x1, y1, x2, y2 float64)
	// Text draws a single line of text vertically centered in the box (x, y, w, h)
	Text(x, y, w, h float64, text string, align Align)

	// RegisterImage loads image data under name. kind is "png", "jpg" or "gif".
	// A failed registration leaves the writer usable.
	RegisterImage(name string, kind string, r io.Reader) error
	// Image places a registered image. A zero w or h keeps the aspect ratio
	Image(name string, x, y, w, h float64)

	// TotalPagesAlias is a placeholder that gets replaced by the final page count on output
	TotalPagesAlias() string

	// Err reports the first drawing error, if any. Drawing stops after an error
	Err() error

	WriteTo(w io.Writer) (int64, error)
}
