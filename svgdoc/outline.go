package svgdoc

import (
	"image/color"
	"math"

	"github.com/benoitkugler/curvesvg/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/colornames"
)

// This file provides what painting drivers (see svgraster and svgpdf)
// need to draw a document: the viewport transform,
// the outlines of the elements and the resolved style values.

// Fit returns the transform mapping the view box onto a viewport
// of size `width` x `height`, with a uniform scale, centered
// (as for preserveAspectRatio="xMidYMid meet").
func (vb ViewBox) Fit(width, height float64) rasterx.Matrix2D {
	s := math.Min(width/vb.W, height/vb.H)
	tx, ty := (width-vb.W*s)/2, (height-vb.H*s)/2
	return rasterx.Identity.Translate(tx, ty).Scale(s, s).Translate(-vb.X, -vb.Y)
}

// Outline adds to `q` the outline of the path or circle `e`, mapped by `m`,
// which must be a similarity. Arcs and circles are approximated
// by cubic bezier curves. Groups are ignored.
func Outline(e Element, m rasterx.Matrix2D, q rasterx.Adder) {
	switch e := e.(type) {
	case *PathElement:
		e.Path.Transform(m).AddTo(q)
	case *CircleElement:
		cx, cy := m.Transform(e.Center.X, e.Center.Y)
		svgpath.AddCircle(q, cx, cy, e.Radius*svgpath.ScaleFactor(m))
	}
}

func opacity(v *float64) float64 {
	if v == nil {
		return 1
	}
	return *v
}

// FillColor returns the fill color and opacity, applying the SVG defaults
// (black, opaque) to unset values. It returns false if filling is disabled.
func (s Style) FillColor() (color.RGBA, float64, bool) {
	if s.Fill == nil {
		return colornames.Black, opacity(s.FillOpacity), true
	}
	if s.Fill.None {
		return color.RGBA{}, 0, false
	}
	return s.Fill.RGBA, opacity(s.FillOpacity), true
}

// StrokeColor returns the stroke color and opacity.
// It returns false if stroking is disabled, which is the SVG default.
func (s Style) StrokeColor() (color.RGBA, float64, bool) {
	if s.Stroke == nil || s.Stroke.None {
		return color.RGBA{}, 0, false
	}
	return s.Stroke.RGBA, opacity(s.StrokeOpacity), true
}

// LineWidth returns the stroke width, 1 if unset.
func (s Style) LineWidth() float64 {
	if s.StrokeWidth == nil {
		return 1
	}
	return *s.StrokeWidth
}

// Dashes returns the dash lengths, or nil for solid lines.
func (s Style) Dashes() []float64 {
	d, _ := parseDashArray(s.DashArray) // validated on input
	var total float64
	for _, v := range d {
		total += v
	}
	if total == 0 { // rendered as a solid line
		return nil
	}
	if len(d)%2 == 1 { // an odd list is repeated
		d = append(d, d...)
	}
	return d
}
