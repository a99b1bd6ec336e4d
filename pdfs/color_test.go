package pdfs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#e0e0e0")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0xe0, G: 0xe0, B: 0xe0}, c)

	c, err = ParseColor("f0a")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0xff, G: 0x00, B: 0xaa}, c)
	assert.Equal(t, "#ff00aa", c.String())

	for _, bad := range []string{"", "#12", "#12345", "#gggggg"} {
		_, err = ParseColor(bad)
		assert.Error(t, err, bad)
	}
	assert.Panics(t, func() { MustParseColor("nope") })
}

func TestColor_JSON(t *testing.T) {
	var v struct {
		Fill Color `json:"fill"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"fill":"#336699"}`), &v))
	assert.Equal(t, Color{R: 0x33, G: 0x66, B: 0x99}, v.Fill)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fill":"#336699"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"fill":"red"}`), &v))
}

func TestPaperSizeByName(t *testing.T) {
	p, ok := PaperSizeByName("A4")
	require.True(t, ok)
	assert.Equal(t, A4Size, p)
	assert.Less(t, p.Width, p.Height)

	_, ok = PaperSizeByName("tabloid")
	assert.False(t, ok)
}

func TestFont_WithSize(t *testing.T) {
	f := Font{Family: "Times", Style: "B", Size: 9}
	g := f.WithSize(7.5)
	assert.Equal(t, 9.0, f.Size)
	assert.Equal(t, 7.5, g.Size)
	assert.Equal(t, "Times-B 7.5pt", g.String())
	assert.Equal(t, "Times 9.0pt", Font{Family: "Times", Size: 9}.String())
}
