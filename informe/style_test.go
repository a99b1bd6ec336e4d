package informe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeptools/informes/pdfs"
)

func TestPresets_Validate(t *testing.T) {
	store := NewStyleStore()
	assert.Equal(t, []string{StyleClasico, StyleCompacto, StyleSencillo}, store.Keys())
	for _, name := range store.Keys() {
		s, ok := store.Get(name)
		require.True(t, ok)
		assert.Equal(t, name, s.Name)
		assert.NoError(t, s.Validate(DefaultGeometry()), name)
	}
}

func TestStyle_ValidateRejects(t *testing.T) {
	g := DefaultGeometry()
	cases := map[string]func(*Style){
		"needs a family":     func(s *Style) { s.ValueFont.Family = "" },
		"min label size":     func(s *Style) { s.MinLabelSize = 20 },
		"line heights":       func(s *Style) { s.ValueLineHeight = 0 },
		"cannot be negative": func(s *Style) { s.CardGap = -1 },
		"must fit on a page": func(s *Style) { s.CardHeaderHeight = 700 },
		"header block":       func(s *Style) { s.HeaderHeight = 800 },
		"title alignment":    func(s *Style) { s.TitleAlign = "J" },
	}
	for want, mutate := range cases {
		s := DefaultStyle()
		mutate(&s)
		assert.ErrorContains(t, s.Validate(g), want)
	}
}

const stylesYAML = `
styles:
  institucional:
    base: sencillo
    disclaimer: Documento generado por la Dirección de Personal
    page_numbers: true
    card_header_fill: "#336699"
    value_font: {family: Helvetica, style: "", size: 10}
  derivado:
    base: institucional
    card_gap: 2
  suelto:
    label_width: 120
`

func TestLoadStyles(t *testing.T) {
	store := NewStyleStore()
	require.NoError(t, LoadStyles(strings.NewReader(stylesYAML), store))
	assert.Equal(t, 6, store.Len())

	inst, ok := store.Get("institucional")
	require.True(t, ok)
	assert.Equal(t, "institucional", inst.Name)
	assert.False(t, inst.PageBorder, "inherited from sencillo")
	assert.True(t, inst.PageNumbers)
	assert.Equal(t, "Documento generado por la Dirección de Personal", inst.Disclaimer)
	assert.Equal(t, pdfs.Color{R: 0x33, G: 0x66, B: 0x99}, inst.CardHeaderFill)
	assert.Equal(t, pdfs.Font{Family: "Helvetica", Size: 10}, inst.ValueFont)
	assert.Equal(t, DefaultStyle().LabelFont, inst.LabelFont)

	der, ok := store.Get("derivado")
	require.True(t, ok)
	assert.Equal(t, 2.0, der.CardGap)
	assert.Equal(t, inst.Disclaimer, der.Disclaimer)
	assert.Equal(t, inst.ValueFont, der.ValueFont)

	suelto, ok := store.Get("suelto")
	require.True(t, ok)
	assert.Equal(t, 120.0, suelto.LabelWidth)
	assert.True(t, suelto.PageBorder, "defaults to clasico")
}

func TestLoadStyles_Errors(t *testing.T) {
	cases := map[string]string{
		"inherits from itself": "styles:\n  a:\n    base: b\n  b:\n    base: a\n",
		"unknown base style":   "styles:\n  a:\n    base: nada\n",
		"invalid color":        "styles:\n  a:\n    label_fill: \"#zz\"\n",
	}
	for want, doc := range cases {
		store := NewStyleStore()
		err := LoadStyles(strings.NewReader(doc), store)
		assert.ErrorContains(t, err, want)
		assert.Equal(t, 3, store.Len(), "nothing stored on error")
	}
}

func TestLoadStyles_Empty(t *testing.T) {
	store := NewStyleStore()
	assert.NoError(t, LoadStyles(strings.NewReader(""), store))
	assert.Equal(t, 3, store.Len())
}
