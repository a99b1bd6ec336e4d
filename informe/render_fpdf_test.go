package informe_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeptools/informes/informe"
	"github.com/zeptools/informes/pdfs"
	fpdfimpl "github.com/zeptools/informes/pdfs/impls/fpdf"
)

func renderPDF(t *testing.T, opts informe.Options, cards []informe.Card) (informe.Layout, []byte) {
	t.Helper()
	w := fpdfimpl.NewWriter(opts.Geometry.Paper, pdfs.Metadata{Title: opts.Title, CreatedAt: opts.IssuedAt})
	s, err := informe.Open(context.Background(), w, fpdfimpl.NewMeasurer(), opts)
	require.NoError(t, err)
	for _, c := range cards {
		require.NoError(t, s.AppendCard(context.Background(), c))
	}
	if len(cards) == 0 {
		require.NoError(t, s.AppendText(context.Background(), "No hay expedientes para mostrar."))
	}
	doc, err := s.Close(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	return doc.Layout(), buf.Bytes()
}

func creacionesOptions() informe.Options {
	return informe.Options{
		Geometry: informe.DefaultGeometry(),
		Style:    informe.DefaultStyle(),
		Title:    "INFORME DE CREACIONES",
		Info:     []string{"Filtro: Todos", "Total de expedientes: 12"},
		UserName: "Mesa de Entradas",
		IssuedAt: time.Date(2025, time.May, 2, 10, 0, 0, 0, time.UTC),
	}
}

func expediente(i int, comment string) informe.Card {
	c := informe.NewCard(fmt.Sprintf("%d. Expediente N° %d/2025", i+1, 4500+i))
	c.Add("Solicita", "Escuela Normal Superior")
	c.Add("Establecimiento", "Escuela N° 214 \"Ñandubay\"")
	c.Add("Ubicación", "San Martín, Mendoza")
	c.Add("Comentario", comment)
	return c
}

func TestFpdf_TwelveRecordsFitTwoPages(t *testing.T) {
	var cards []informe.Card
	for i := range 12 {
		cards = append(cards, expediente(i, "Creación de cargo de preceptor, turno mañana."))
	}
	layout, _ := renderPDF(t, creacionesOptions(), cards)
	assert.LessOrEqual(t, layout.Pages, 2)
	for _, p := range layout.Cards {
		assert.Equal(t, p.Page, p.EndPage)
	}
}

func TestFpdf_LongCommentStaysWhole(t *testing.T) {
	comment := string([]rune(strings.Repeat("Se solicita la creación del cargo por aumento de matrícula. ", 40))[:2000])
	layout, _ := renderPDF(t, creacionesOptions(), []informe.Card{expediente(0, comment)})

	require.Len(t, layout.Cards, 1)
	card := layout.Cards[0]
	assert.False(t, card.Oversize)
	assert.Equal(t, card.Page, card.EndPage)
	assert.Equal(t, card.EndPage, layout.FooterPage)
}

func TestFpdf_Empty(t *testing.T) {
	layout, out := renderPDF(t, creacionesOptions(), nil)
	assert.Equal(t, 1, layout.Pages)
	assert.NotEmpty(t, out)
}

func TestFpdf_OversizeSpills(t *testing.T) {
	comment := strings.Repeat("Antecedentes del expediente y resoluciones previas. ", 600)
	layout, _ := renderPDF(t, creacionesOptions(), []informe.Card{expediente(0, "breve"), expediente(1, comment)})

	require.Len(t, layout.Cards, 2)
	assert.True(t, layout.Cards[1].Oversize)
	assert.Equal(t, 2, layout.Cards[1].Page)
	assert.Greater(t, layout.Cards[1].EndPage, 2)
}

func TestFpdf_WithLogo(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := range 8 {
		img.Set(x, x, color.RGBA{R: 200, A: 255})
	}
	var logo bytes.Buffer
	require.NoError(t, png.Encode(&logo, img))

	opts := creacionesOptions()
	opts.Logo = &informe.Logo{Name: "logo", Kind: "png", Data: logo.Bytes()}
	layout, _ := renderPDF(t, opts, []informe.Card{expediente(0, "x")})
	assert.Equal(t, 1, layout.Pages)

	// garbage logo data is skipped
	opts.Logo.Data = []byte("not a png")
	layout, _ = renderPDF(t, opts, []informe.Card{expediente(0, "x")})
	assert.Equal(t, 1, layout.Pages)
}

func TestFpdf_Deterministic(t *testing.T) {
	var cards []informe.Card
	for i := range 30 {
		cards = append(cards, expediente(i, strings.Repeat("texto ", i*20)))
	}
	l1, out1 := renderPDF(t, creacionesOptions(), cards)
	l2, out2 := renderPDF(t, creacionesOptions(), cards)
	assert.Equal(t, l1, l2)
	assert.Equal(t, out1, out2)
}

func TestFpdf_UnknownFont(t *testing.T) {
	opts := creacionesOptions()
	opts.Style.ValueFont.Family = "Comic"
	w := fpdfimpl.NewWriter(opts.Geometry.Paper, pdfs.Metadata{})
	s, err := informe.Open(context.Background(), w, fpdfimpl.NewMeasurer(), opts)
	require.NoError(t, err)

	err = s.AppendCard(context.Background(), expediente(0, "x"))
	var me *informe.MeasurementError
	assert.ErrorAs(t, err, &me)
}
