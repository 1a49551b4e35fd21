package svgdoc

import (
	"math"
	"testing"

	"github.com/benoitkugler/curvesvg/svgcurve"
	"github.com/benoitkugler/curvesvg/svgpath"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertLine(t *testing.T) {
	for _, line := range []svgcurve.Line{
		{Start: svgcurve.Point{X: 0, Y: 0}, End: svgcurve.Point{X: 10, Y: 0}},
		{Start: svgcurve.Point{X: 1, Y: 2}, End: svgcurve.Point{X: -3, Y: 4.5}},
		{Start: svgcurve.Point{X: -7, Y: -8}, End: svgcurve.Point{X: 7, Y: 8}},
	} {
		elem, err := Convert(line, nil)
		require.NoError(t, err)
		path, ok := elem.(*PathElement)
		require.True(t, ok, "expected a path, got %T", elem)
		require.Len(t, path.Path, 2)

		move, ok := path.Path[0].(svgpath.MoveTo)
		require.True(t, ok)
		to, ok := path.Path[1].(svgpath.LineTo)
		require.True(t, ok)
		assert.Equal(t, line.Start.X, move.X)
		assert.Equal(t, -line.Start.Y, move.Y)
		assert.Equal(t, line.End.X, to.X)
		assert.Equal(t, -line.End.Y, to.Y)
	}
}

func TestConvertArc(t *testing.T) {
	arc := svgcurve.Arc{
		Center: svgcurve.Point{}, Start: svgcurve.Point{X: 5}, End: svgcurve.Point{Y: 5},
		Radius: 5, SweepAngle: 90,
	}
	elem, err := Convert(arc, nil)
	require.NoError(t, err)
	path := elem.(*PathElement)
	expected := svgpath.Path{
		svgpath.MoveTo{X: 5, Y: 0},
		svgpath.ArcTo{RX: 5, RY: 5, LargeArc: false, Sweep: true, X: 0, Y: -5},
	}
	if diff := cmp.Diff(expected, path.Path); diff != "" {
		t.Errorf("unexpected arc path: %s", diff)
	}
	assert.Equal(t, "M 5,0 A 5,5 0 0,1 0,-5", path.Path.ToSVGPath())

	// three quarters, going the long way
	arc.Start, arc.End, arc.SweepAngle = svgcurve.Point{Y: 5}, svgcurve.Point{X: 5}, 270
	elem, err = Convert(arc, nil)
	require.NoError(t, err)
	op := elem.(*PathElement).Path[1].(svgpath.ArcTo)
	assert.True(t, op.LargeArc)
	assert.False(t, op.Sweep)
}

func TestConvertCircle(t *testing.T) {
	elem, err := Convert(svgcurve.Circle{Center: svgcurve.Point{X: 0, Y: 0}, Radius: 5}, nil)
	require.NoError(t, err)
	circle, ok := elem.(*CircleElement)
	require.True(t, ok)
	assert.Equal(t, svgcurve.Point{}, circle.Center)
	assert.False(t, math.Signbit(circle.Center.Y))
	assert.Equal(t, 5., circle.Radius)

	elem, err = Convert(svgcurve.Circle{Center: svgcurve.Point{X: 2, Y: 3}, Radius: 1.5}, nil)
	require.NoError(t, err)
	circle = elem.(*CircleElement)
	assert.Equal(t, svgcurve.Point{X: 2, Y: -3}, circle.Center)
	assert.Equal(t, 1.5, circle.Radius)
}

func TestConvertDefaultStyle(t *testing.T) {
	for _, c := range []svgcurve.Curve{
		svgcurve.Line{End: svgcurve.Point{X: 1}},
		svgcurve.Circle{Radius: 1},
		svgcurve.Arc{Start: svgcurve.Point{X: 1}, End: svgcurve.Point{Y: 1}, Radius: 1, SweepAngle: 90},
	} {
		elem, err := Convert(c, nil)
		require.NoError(t, err)
		style := elem.style()
		assert.Equal(t, "black", style.Stroke.String())
		assert.True(t, style.Fill.None)
		assert.Equal(t, DefaultStrokeWidth, *style.StrokeWidth)
	}
}

func TestConvertStyleOverride(t *testing.T) {
	red, err := NamedPaint("red")
	require.NoError(t, err)
	style, err := NewStyle(WithStroke(red), WithLineCap(RoundCap))
	require.NoError(t, err)

	elem, err := Convert(svgcurve.Line{End: svgcurve.Point{X: 1}}, &style)
	require.NoError(t, err)
	got := elem.style()
	assert.Equal(t, "red", got.Stroke.String())
	assert.Equal(t, RoundCap, got.LineCap)
	// not overridden
	assert.True(t, got.Fill.None)
	assert.Equal(t, DefaultStrokeWidth, *got.StrokeWidth)

	// DefaultStyle is left untouched
	*got.StrokeWidth = 4
	assert.Equal(t, DefaultStrokeWidth, *DefaultStyle.StrokeWidth)
	assert.Equal(t, "black", DefaultStyle.Stroke.String())
}

type spiral struct{ svgcurve.Line }

func TestConvertInvalid(t *testing.T) {
	for _, c := range []svgcurve.Curve{
		nil,
		spiral{},
		svgcurve.Circle{Radius: 0},
		svgcurve.Circle{Radius: -2},
		svgcurve.Arc{Start: svgcurve.Point{X: 1}, End: svgcurve.Point{Y: 1}, Radius: -1, SweepAngle: 90},
	} {
		elem, err := Convert(c, nil)
		assert.ErrorIs(t, err, svgcurve.ErrInvalidGeometry)
		assert.Nil(t, elem)
	}
}

func TestConvertDegenerateArc(t *testing.T) {
	arc := svgcurve.Arc{Start: svgcurve.Point{X: 3}, End: svgcurve.Point{X: 3}, Radius: 3, SweepAngle: 0}
	elem, err := Convert(arc, nil)
	require.NoError(t, err)
	assert.Equal(t, "M 3,0 A 3,3 0 0,1 3,0", elem.(*PathElement).Path.ToSVGPath())
}
