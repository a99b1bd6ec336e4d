package fpdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeptools/informes/pdfs"
)

var times9 = pdfs.Font{Family: "Times", Size: 9}

func TestMeasurer_Lines(t *testing.T) {
	m := NewMeasurer()

	lines, err := m.Lines("", times9, 100)
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = m.Lines("primera\nsegunda", times9, 300)
	require.NoError(t, err)
	assert.Equal(t, []string{"primera", "segunda"}, lines)

	long := strings.Repeat("establecimiento ", 40)
	narrow, err := m.Lines(long, times9, 100)
	require.NoError(t, err)
	wide, err := m.Lines(long, times9, 400)
	require.NoError(t, err)
	assert.Greater(t, len(narrow), len(wide))

	lines, err = m.Lines("Ubicación: Ñorquín", times9, 300)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ubicación: Ñorquín"}, lines)

	_, err = m.Lines("x", times9, 0)
	assert.Error(t, err)
}

func TestMeasurer_Width(t *testing.T) {
	m := NewMeasurer()
	short, err := m.Width("abc", times9)
	require.NoError(t, err)
	long, err := m.Width("abcabc", times9)
	require.NoError(t, err)
	assert.InDelta(t, 2*short, long, 1e-9)

	bigger, err := m.Width("abc", times9.WithSize(18))
	require.NoError(t, err)
	assert.InDelta(t, 2*short, bigger, 1e-9)
}

func TestMeasurer_UnknownFontRecovers(t *testing.T) {
	m := NewMeasurer()
	_, err := m.Width("x", pdfs.Font{Family: "Wingdings", Size: 9})
	assert.Error(t, err)
	_, err = m.Width("x", pdfs.Font{Family: "Times", Size: 0})
	assert.Error(t, err)

	w, err := m.Width("x", times9)
	require.NoError(t, err)
	assert.Greater(t, w, 0.0)
}

func TestWriter_PageHook(t *testing.T) {
	w := NewWriter(pdfs.A4Size, pdfs.Metadata{Title: "Informe", CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)})
	var pages []int
	w.OnPageAdded(func(n int) {
		pages = append(pages, n)
		w.SetFont(times9)
		w.Text(50, 800, 495, 10, "pie", pdfs.AlignCenter)
	})
	w.AddPage()
	w.SetFont(times9)
	w.Rect(50, 50, 100, 20, pdfs.FillThenStroke)
	w.Text(50, 50, 100, 20, "Título con acentos", pdfs.AlignLeft)
	w.AddPage()

	assert.Equal(t, []int{1, 2}, pages)
	assert.Equal(t, 2, w.PageNo())
	assert.Equal(t, pdfs.A4Size, w.PaperSize())
	require.NoError(t, w.Err())

	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriter_BadImageKeepsDocument(t *testing.T) {
	w := NewWriter(pdfs.A4Size, pdfs.Metadata{})
	err := w.RegisterImage("logo", "png", strings.NewReader("garbage"))
	assert.Error(t, err)
	assert.NoError(t, w.Err())

	w.AddPage()
	var buf bytes.Buffer
	_, err = w.WriteTo(&buf)
	assert.NoError(t, err)
}
