package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/zeptools/informes/informe"
	"github.com/zeptools/informes/pdfs"
	fpdfimpl "github.com/zeptools/informes/pdfs/impls/fpdf"
)

// Renderer holds what every report of a service shares. A Renderer is
// read-only once built and can serve concurrent requests: each render
// gets its own writer and measurer.
type Renderer struct {
	Geometry     informe.Geometry
	Style        informe.Style
	Logo         *informe.Logo
	Organisation string // document author
	Creator      string
	MaxRecords   int // 0 = unlimited

	Now         func() time.Time
	NewWriter   func(paper pdfs.PaperSize, meta pdfs.Metadata) pdfs.Writer
	NewMeasurer func() informe.Measurer
}

// NewRenderer returns a Renderer drawing with fpdf on the default geometry
func NewRenderer(style informe.Style) *Renderer {
	return &Renderer{
		Geometry: informe.DefaultGeometry(),
		Style:    style,
		Creator:  "informes",
		Now:      time.Now,
		NewWriter: func(paper pdfs.PaperSize, meta pdfs.Metadata) pdfs.Writer {
			return fpdfimpl.NewWriter(paper, meta)
		},
		NewMeasurer: func() informe.Measurer {
			return fpdfimpl.NewMeasurer()
		},
	}
}

// Filename is the attachment name of a report issued at `at`
func Filename(kind string, at time.Time) string {
	return fmt.Sprintf("informe-%s-%d.pdf", kind, at.UnixMilli())
}

type page struct {
	kind     string
	title    string
	info     []string
	userName string
	cards    []informe.Card
	empty    string
}

func (rd *Renderer) render(ctx context.Context, p page) (*informe.Document, error) {
	now := rd.Now()
	w := rd.NewWriter(rd.Geometry.Paper, pdfs.Metadata{
		Title:     p.title,
		Subject:   "Informe " + p.kind,
		Author:    rd.Organisation,
		Creator:   rd.Creator,
		CreatedAt: now,
	})
	s, err := informe.Open(ctx, w, rd.NewMeasurer(), informe.Options{
		Geometry: rd.Geometry,
		Style:    rd.Style,
		Title:    p.title,
		Info:     p.info,
		UserName: p.userName,
		IssuedAt: now,
		Logo:     rd.Logo,
	})
	if err != nil {
		return nil, err
	}
	if len(p.cards) == 0 {
		if err = s.AppendText(ctx, p.empty); err != nil {
			return nil, err
		}
	}
	for _, c := range p.cards {
		if err = s.AppendCard(ctx, c); err != nil {
			return nil, err
		}
	}
	return s.Close(ctx)
}
