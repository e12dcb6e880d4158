package zedit

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStyle(t *testing.T) {
	s, err := NewStyle("keyword", "#ff0000", "")
	require.NoError(t, err)
	assert.Equal(t, "keyword", s.Name())
	assert.Nil(t, s.BGColor)
	r, g, b, _ := s.FGColor.RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
	assert.Equal(t, "keyword(fg=#ff0000 bg=-)", s.String())

	_, err = NewStyle("broken", "red", "")
	assert.ErrorIs(t, err, ErrArgument)
}

func TestBlendModes(t *testing.T) {
	m, err := ParseBlendMode(" Overlay ")
	require.NoError(t, err)
	assert.Equal(t, BlendOverlay, m)
	assert.Equal(t, "soft-light", BlendSoftLight.String())
	_, err = ParseBlendMode("bogus")
	assert.ErrorIs(t, err, ErrArgument)

	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	black := color.RGBA{0, 0, 0, 0xff}
	for _, switched := range []bool{false, true} {
		r, _, _, _ := BlendColors(BlendDarken, switched, white, black).RGBA()
		assert.Equal(t, uint32(0), r)
		r, _, _, _ = BlendColors(BlendLighten, switched, white, black).RGBA()
		assert.Equal(t, uint32(0xffff), r)
	}
}

func TestComposeStyles(t *testing.T) {
	config := NewConfig()
	red, err := NewStyle("red", "#ff0000", "")
	require.NoError(t, err)
	yellow, err := NewStyle("yellow", "", "#ffff00")
	require.NoError(t, err)

	assert.Nil(t, ComposeStyles(config, nil))
	assert.Nil(t, ComposeStyles(config, nil, testHighlight("plain")))

	s := ComposeStyles(config, nil, red, yellow)
	require.NotNil(t, s)
	assert.Equal(t, "red+yellow", s.Name())
	assert.Equal(t, red.FGColor, s.FGColor)
	assert.Equal(t, yellow.BGColor, s.BGColor)

	config.BlendFG = BlendDarken
	blue, err := NewStyle("blue", "#0000ff", "")
	require.NoError(t, err)
	s = ComposeStyles(config, red, blue)
	r, g, b, _ := s.FGColor.RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b})
}

// testHighlight is a style tag without colors.
type testHighlight string

func (h testHighlight) Name() string { return string(h) }

func TestRuns(t *testing.T) {
	d := newDoc(t, "abcdefgh")
	a := addRange(t, d, 1, 4)
	b := addRange(t, d, 3, 6)
	p, _ := d.Paragraph(0)
	want := []Run{
		{From: 0, To: 1},
		{From: 1, To: 3, Ranges: []RangeID{a}},
		{From: 3, To: 4, Ranges: []RangeID{a, b}},
		{From: 4, To: 6, Ranges: []RangeID{b}},
		{From: 6, To: 8},
	}
	assert.Equal(t, want, p.Runs())
}

func TestRunsOfBlankParagraph(t *testing.T) {
	d := New(nil)
	p, _ := d.Paragraph(0)
	assert.Equal(t, []Run{{From: 0, To: 0}}, p.Runs())

	id := addRange(t, d, 0, 0)
	assert.Equal(t, []Run{{From: 0, To: 0, Ranges: []RangeID{id}}}, p.Runs())
}

func TestTextGridRow(t *testing.T) {
	d := newDoc(t, "abc\nde")
	red, err := NewStyle("red", "#ff0000", "")
	require.NoError(t, err)
	_, err = d.Ranges().Add(HighlightRange{Start: 1, End: 2, Style: red})
	require.NoError(t, err)
	_, err = d.Ranges().Add(HighlightRange{Start: 2, End: 5, Style: testHighlight("plain")})
	require.NoError(t, err)

	row, err := d.TextGridRow(0)
	require.NoError(t, err)
	require.Len(t, row.Cells, 3)
	assert.Nil(t, row.Style)
	assert.Equal(t, 'a', row.Cells[0].Rune)
	assert.Nil(t, row.Cells[0].Style)
	custom, ok := row.Cells[1].Style.(*widget.CustomTextGridStyle)
	require.True(t, ok)
	assert.Equal(t, red.FGColor, custom.FGColor)
	assert.Nil(t, row.Cells[2].Style)

	row, err = d.TextGridRow(1)
	require.NoError(t, err)
	assert.Len(t, row.Cells, 2)

	_, err = d.TextGridRow(2)
	assert.ErrorIs(t, err, ErrRange)
}
