package informe

import (
	"fmt"
	"io"
	"strings"

	"github.com/zeptools/informes/pdfs"
)

// fakeMeasurer: every rune is half the font size wide, greedy wrap on spaces
type fakeMeasurer struct {
	calls int
}

func (m *fakeMeasurer) check(font pdfs.Font) error {
	if font.Family == "Nope" {
		return fmt.Errorf("undefined font: %s", font.Family)
	}
	return nil
}

func (m *fakeMeasurer) Width(text string, font pdfs.Font) (float64, error) {
	m.calls++
	if err := m.check(font); err != nil {
		return 0, err
	}
	return float64(len([]rune(text))) * font.Size / 2, nil
}

func (m *fakeMeasurer) Lines(text string, font pdfs.Font, maxWidth float64) ([]string, error) {
	m.calls++
	if err := m.check(font); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	perLine := max(1, int(maxWidth/(font.Size/2)))
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for len([]rune(word)) > perLine {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				r := []rune(word)
				lines = append(lines, string(r[:perLine]))
				word = string(r[perLine:])
			}
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= perLine:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

type fakeOp struct {
	kind  string // rect, line, text, image
	page  int
	x, y  float64
	w, h  float64
	text  string
	font  pdfs.Font
	style pdfs.RectStyle
}

type fakeWriter struct {
	paper   pdfs.PaperSize
	page    int
	hooks   []func(int)
	font    pdfs.Font
	ops     []fakeOp
	images  map[string]bool
	err     error
	failImg bool
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{paper: pdfs.A4Size, images: map[string]bool{}}
}

func (w *fakeWriter) PaperSize() pdfs.PaperSize { return w.paper }

func (w *fakeWriter) AddPage() {
	w.page++
	for _, fn := range w.hooks {
		fn(w.page)
	}
}

func (w *fakeWriter) PageNo() int                     { return w.page }
func (w *fakeWriter) OnPageAdded(fn func(int))        { w.hooks = append(w.hooks, fn) }
func (w *fakeWriter) SetFont(font pdfs.Font)          { w.font = font }
func (w *fakeWriter) SetTextColor(pdfs.Color)         {}
func (w *fakeWriter) SetFillColor(pdfs.Color)         {}
func (w *fakeWriter) SetDrawColor(pdfs.Color)         {}
func (w *fakeWriter) SetLineWidth(float64)            {}
func (w *fakeWriter) TotalPagesAlias() string         { return "{nb}" }
func (w *fakeWriter) Err() error                      { return w.err }
func (w *fakeWriter) Line(x1, y1, x2, y2 float64)     { w.add(fakeOp{kind: "line", x: x1, y: y1, w: x2 - x1, h: y2 - y1}) }
func (w *fakeWriter) Image(name string, x, y, _, h float64) {
	w.add(fakeOp{kind: "image", x: x, y: y, h: h, text: name})
}

func (w *fakeWriter) Rect(x, y, width, height float64, style pdfs.RectStyle) {
	w.add(fakeOp{kind: "rect", x: x, y: y, w: width, h: height, style: style})
}

func (w *fakeWriter) Text(x, y, width, height float64, text string, _ pdfs.Align) {
	w.add(fakeOp{kind: "text", x: x, y: y, w: width, h: height, text: text, font: w.font})
}

func (w *fakeWriter) RegisterImage(name string, _ string, _ io.Reader) error {
	if w.failImg {
		return fmt.Errorf("bad image")
	}
	w.images[name] = true
	return nil
}

func (w *fakeWriter) WriteTo(out io.Writer) (int64, error) {
	n, err := fmt.Fprintf(out, "%%PDF-fake pages=%d ops=%d\n", w.page, len(w.ops))
	return int64(n), err
}

func (w *fakeWriter) add(op fakeOp) {
	op.page = w.page
	w.ops = append(w.ops, op)
}

func (w *fakeWriter) texts() []string {
	var out []string
	for _, op := range w.ops {
		if op.kind == "text" {
			out = append(out, op.text)
		}
	}
	return out
}

func (w *fakeWriter) find(kind string, match func(fakeOp) bool) []fakeOp {
	var out []fakeOp
	for _, op := range w.ops {
		if op.kind == kind && match(op) {
			out = append(out, op)
		}
	}
	return out
}
