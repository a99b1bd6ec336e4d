package informe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeptools/informes/pdfs"
)

func TestMeasureLines(t *testing.T) {
	m := &fakeMeasurer{}
	font := pdfs.Font{Family: "Times", Size: 10}

	lines, err := MeasureLines(m, "", font, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, lines)

	lines, err = MeasureLines(m, "uno dos\ntres", font, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"uno dos", "tres"}, lines)

	_, err = MeasureLines(m, "x", pdfs.Font{Family: "Nope", Size: 10}, 100)
	var me *MeasurementError
	assert.ErrorAs(t, err, &me)
}

func TestMeasureHeight(t *testing.T) {
	m := &fakeMeasurer{}
	font := pdfs.Font{Family: "Times", Size: 10}

	h, err := MeasureHeight(m, words(100), font, 100, 12)
	require.NoError(t, err)
	lines, _ := MeasureLines(m, words(100), font, 100)
	assert.Equal(t, float64(len(lines))*12, h)

	h, err = MeasureHeight(m, "", font, 100, 12)
	require.NoError(t, err)
	assert.Equal(t, 12.0, h)
}

func TestGeometry_Validate(t *testing.T) {
	g := DefaultGeometry()
	require.NoError(t, g.Validate())
	assert.Equal(t, 545.0, g.Right())
	assert.Equal(t, 690.0, g.UsableHeight())

	bad := g
	bad.ContentWidth = 560
	assert.Error(t, bad.Validate())

	bad = g
	bad.PageBreakThreshold = 900
	assert.Error(t, bad.Validate())

	bad = g
	bad.FooterLimit = 700
	assert.Error(t, bad.Validate())
}
