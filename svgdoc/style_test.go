package svgdoc

import (
	"testing"

	"github.com/cheekybits/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaint(t *testing.T) {
	is := is.New(t)

	p, err := ParsePaint("none")
	is.NoErr(err)
	is.True(p.None)
	is.Equal(p.String(), "none")

	p, err = ParsePaint("black")
	is.NoErr(err)
	is.Equal(p.String(), "black")
	is.Equal(p.A, uint8(0xff))

	p, err = ParsePaint("#f80")
	is.NoErr(err)
	is.Equal(p, RGB(0xff, 0x88, 0x00))

	p, err = ParsePaint(" #1a2B3c ")
	is.NoErr(err)
	is.Equal(p.String(), "#1a2b3c")

	p, err = ParsePaint("rgb(255, 0, 50%)")
	is.NoErr(err)
	is.Equal(p, RGB(255, 0, 128))

	for _, s := range []string{"", "#12", "#gggggg", "notacolor", "rgb(1,2)", "url(#grad)"} {
		_, err = ParsePaint(s)
		is.Err(err)
	}
}

func TestCapJoinKeywords(t *testing.T) {
	for _, c := range []CapMode{ButtCap, RoundCap, SquareCap} {
		got, err := parseCapMode(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	for _, j := range []JoinMode{Miter, Round, Bevel, MiterClip, Arcs} {
		got, err := parseJoinMode(j.String())
		require.NoError(t, err)
		assert.Equal(t, j, got)
	}
	assert.Equal(t, "", NilCap.String())
	assert.Equal(t, "", NilJoin.String())
	assert.Equal(t, "miter-clip", MiterClip.String())
}

func TestNewStyle(t *testing.T) {
	s, err := NewStyle()
	require.NoError(t, err)
	assert.Equal(t, Style{}, s)
	assert.Empty(t, s.attributes())

	s, err = NewStyle(
		WithFill(RGB(0, 0, 255)),
		WithStroke(NoPaint),
		WithFillOpacity(0.25),
		WithStrokeOpacity(1),
		WithStrokeWidth(2),
		WithLineCap(RoundCap),
		WithLineJoin(MiterClip),
		WithDashArray("4, 2"),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`fill="#0000ff"`,
		`fill-opacity="0.25"`,
		`stroke="none"`,
		`stroke-opacity="1"`,
		`stroke-width="2"`,
		`stroke-linecap="round"`,
		`stroke-linejoin="miter-clip"`,
		`stroke-dasharray="4, 2"`,
	}, s.attributes())
}

func TestNewStyleInvalid(t *testing.T) {
	for _, opts := range [][]StyleOption{
		{WithFillOpacity(1.5)},
		{WithStrokeOpacity(-0.1)},
		{WithStrokeWidth(-1)},
		{WithLineCap(CapMode(12))},
		{WithLineJoin(JoinMode(12))},
		{WithDashArray("4,-2")},
		{WithDashArray("dotted")},
	} {
		_, err := NewStyle(opts...)
		assert.ErrorIs(t, err, ErrInvalidStyle)
	}

	_, err := NewStyle(WithDashArray("none"))
	assert.NoError(t, err)
}

func TestMerge(t *testing.T) {
	base, err := NewStyle(WithStroke(RGB(1, 2, 3)), WithStrokeWidth(1), WithLineJoin(Bevel))
	require.NoError(t, err)
	over, err := NewStyle(WithStrokeWidth(3), WithFill(NoPaint))
	require.NoError(t, err)

	merged := base.Merge(over)
	assert.Equal(t, RGB(1, 2, 3), *merged.Stroke)
	assert.Equal(t, 3., *merged.StrokeWidth)
	assert.True(t, merged.Fill.None)
	assert.Equal(t, Bevel, merged.LineJoin)

	// no shared memory
	*merged.StrokeWidth = 10
	assert.Equal(t, 3., *over.StrokeWidth)
	assert.Equal(t, 1., *base.StrokeWidth)
}

func TestDefaultStyle(t *testing.T) {
	assert.Equal(t, []string{`fill="none"`, `stroke="black"`, `stroke-width="0.5"`}, DefaultStyle.attributes())
	assert.NoError(t, DefaultStyle.Validate())
}
