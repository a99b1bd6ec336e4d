package fpdf

import (
	"io"

	lowimpl "codeberg.org/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/zeptools/informes/pdfs"
	"github.com/zeptools/informes/rw"
)

const totalPagesAlias = "{nb}"

type Writer struct {
	pdf     *lowimpl.Fpdf
	paper   pdfs.PaperSize
	text    *cp1252
	onPages []func(pageNo int)
}

// Ensure fpdf.Writer implements pdfs.Writer
var _ pdfs.Writer = (*Writer)(nil)

// NewWriter builds a fresh document. Every document-level setting is applied
// here on the instance, so nothing depends on the package-level defaults of
// the underlying library.
func NewWriter(paper pdfs.PaperSize, meta pdfs.Metadata) *Writer {
	pdf := lowimpl.NewCustom(&lowimpl.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           lowimpl.SizeType{Wd: paper.Width, Ht: paper.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)
	if !meta.CreatedAt.IsZero() {
		pdf.SetCreationDate(meta.CreatedAt)
		pdf.SetModificationDate(meta.CreatedAt)
	}
	pdf.SetTitle(meta.Title, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetCreator(meta.Creator, true)
	pdf.AliasNbPages(totalPagesAlias)

	w := &Writer{pdf: pdf, paper: paper, text: newCP1252()}
	pdf.SetHeaderFuncMode(w.pageStarted, false)
	return w
}

func (w *Writer) pageStarted() {
	n := w.pdf.PageNo()
	for _, fn := range w.onPages {
		fn(n)
	}
}

func (w *Writer) PaperSize() pdfs.PaperSize {
	return w.paper
}

func (w *Writer) AddPage() {
	w.pdf.AddPage()
}

func (w *Writer) PageNo() int {
	return w.pdf.PageNo()
}

func (w *Writer) OnPageAdded(fn func(pageNo int)) {
	w.onPages = append(w.onPages, fn)
}

func (w *Writer) SetFont(font pdfs.Font) {
	w.pdf.SetFont(font.Family, font.Style, font.Size)
}

func (w *Writer) SetTextColor(c pdfs.Color) {
	w.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

func (w *Writer) SetFillColor(c pdfs.Color) {
	w.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func (w *Writer) SetDrawColor(c pdfs.Color) {
	w.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func (w *Writer) SetLineWidth(width float64) {
	w.pdf.SetLineWidth(width)
}

func (w *Writer) Rect(x, y, width, height float64, style pdfs.RectStyle) {
	w.pdf.Rect(x, y, width, height, string(style))
}

func (w *Writer) Line(x1, y1, x2, y2 float64) {
	w.pdf.Line(x1, y1, x2, y2)
}

func (w *Writer) Text(x, y, width, height float64, text string, align pdfs.Align) {
	w.pdf.SetXY(x, y)
	w.pdf.CellFormat(width, height, w.text.encode(text), "", 0, string(align)+"M", false, 0, "")
}

func (w *Writer) RegisterImage(name string, kind string, r io.Reader) error {
	w.pdf.RegisterImageOptionsReader(name, lowimpl.ImageOptions{ImageType: kind}, r)
	if err := w.pdf.Error(); err != nil {
		// keep the document usable without the image
		w.pdf.ClearError()
		return errors.Wrapf(err, "register image %q", name)
	}
	return nil
}

func (w *Writer) Image(name string, x, y, width, height float64) {
	w.pdf.ImageOptions(name, x, y, width, height, false, lowimpl.ImageOptions{}, 0, "")
}

func (w *Writer) TotalPagesAlias() string {
	return totalPagesAlias
}

func (w *Writer) Err() error {
	return w.pdf.Error()
}

// WriteTo finalizes the document and writes it out. The output buffer is
// drained, so a document can be written only once.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	cw := rw.NewCountWriter(out)
	if err := w.pdf.Output(cw); err != nil {
		return cw.BytesWritten(), errors.Wrap(err, "pdf output")
	}
	return cw.BytesWritten(), nil
}
