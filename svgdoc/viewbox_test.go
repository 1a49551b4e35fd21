package svgdoc

import (
	"math"
	"testing"

	"github.com/benoitkugler/curvesvg/svgcurve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewViewOptions(t *testing.T) {
	view, err := NewViewOptions(nil)
	require.NoError(t, err)
	assert.Nil(t, view.ViewBox)

	rect := svgcurve.Rect{MinX: -1, MinY: 2, MaxX: 3, MaxY: 4}
	view, err = NewViewOptions(&rect)
	require.NoError(t, err)
	assert.Equal(t, ViewBox{-1, 2, 4, 2}, *view.ViewBox)

	view, err = NewViewOptions(&rect, WithScale(0.5))
	require.NoError(t, err)
	assert.Equal(t, ViewBox{-0.5, 1, 2, 1}, *view.ViewBox)

	for _, scale := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err = NewViewOptions(&rect, WithScale(scale))
		assert.ErrorIs(t, err, ErrInvalidViewport, scale)
	}
	_, err = NewViewOptions(&svgcurve.Rect{MinX: 1, MaxX: 1, MaxY: 1})
	assert.ErrorIs(t, err, ErrInvalidViewport)
}

func assertViewBox(t *testing.T, expected, got ViewBox) {
	t.Helper()
	assert.InDelta(t, expected.X, got.X, 1e-9)
	assert.InDelta(t, expected.Y, got.Y, 1e-9)
	assert.InDelta(t, expected.W, got.W, 1e-9)
	assert.InDelta(t, expected.H, got.H, 1e-9)
}

func TestFitViewOptions(t *testing.T) {
	curves := []svgcurve.Curve{
		svgcurve.Line{Start: pt(0, 0), End: pt(10, 0)},
		svgcurve.Circle{Center: pt(0, 5), Radius: 2},
	}
	view, err := FitViewOptions(curves, 1)
	require.NoError(t, err)
	assertViewBox(t, ViewBox{-3, -8, 14, 9}, *view.ViewBox)

	view, err = FitViewOptions(curves, 1, WithScale(2))
	require.NoError(t, err)
	assertViewBox(t, ViewBox{-6, -16, 28, 18}, *view.ViewBox)

	view, err = FitViewOptions(nil, 1)
	require.NoError(t, err)
	assert.Nil(t, view.ViewBox)

	_, err = FitViewOptions(curves, -1)
	assert.ErrorIs(t, err, ErrInvalidViewport)
	_, err = FitViewOptions([]svgcurve.Curve{svgcurve.Circle{Radius: -1}}, 0)
	assert.ErrorIs(t, err, svgcurve.ErrInvalidGeometry)
}

func TestFitViewOptionsContainsWrittenArc(t *testing.T) {
	// quarter arc from 45 to 135 degrees: the written arc bulges
	// towards the center of the view, away from the authoring circle
	r := 5.
	c := r / math.Sqrt2
	arc := svgcurve.Arc{Center: pt(0, 0), Start: pt(c, c), End: pt(-c, c), Radius: r, SweepAngle: 90}

	view, err := FitViewOptions([]svgcurve.Curve{arc}, 0)
	require.NoError(t, err)
	top := -math.Sqrt2 * r // center of the written arc
	assertViewBox(t, ViewBox{-c, -c, 2 * c, top + r + c}, *view.ViewBox)

	// every point of the written arc lies in the view box
	elem, err := Convert(arc, nil)
	require.NoError(t, err)
	vb := *view.ViewBox
	for i := 0; i <= 20; i++ {
		theta := math.Pi/4 + float64(i)*math.Pi/40
		x, y := r*math.Cos(theta), top+r*math.Sin(theta)
		assert.True(t, x >= vb.X-1e-9 && x <= vb.X+vb.W+1e-9 && y >= vb.Y-1e-9 && y <= vb.Y+vb.H+1e-9,
			"point (%g, %g) outside of %v (%s)", x, y, vb, elem.(*PathElement).Path)
	}
}
