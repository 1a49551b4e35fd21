package svgdoc

import (
	"errors"
	"fmt"
	"math"

	"github.com/benoitkugler/curvesvg/svgcurve"
	"github.com/benoitkugler/curvesvg/svgpath"
)

// ErrInvalidViewport is returned for view boxes with a non positive
// size and for invalid scale factors.
var ErrInvalidViewport = errors.New("invalid viewport")

// ViewBox is the region of user space mapped onto the viewport,
// as written in the viewBox attribute.
type ViewBox struct{ X, Y, W, H float64 }

// String returns the value of the viewBox attribute.
func (vb ViewBox) String() string {
	return svgpath.FormatFloat(vb.X) + " " + svgpath.FormatFloat(vb.Y) + " " +
		svgpath.FormatFloat(vb.W) + " " + svgpath.FormatFloat(vb.H)
}

func (vb ViewBox) validate() error {
	for _, v := range [4]float64{vb.X, vb.Y, vb.W, vb.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non finite view box %v", ErrInvalidViewport, vb)
		}
	}
	if vb.W <= 0 || vb.H <= 0 {
		return fmt.Errorf("%w: view box size %gx%g", ErrInvalidViewport, vb.W, vb.H)
	}
	return nil
}

// ViewOptions configures the view box of an assembled document.
type ViewOptions struct {
	// ViewBox is nil to use the default of the assembler.
	ViewBox *ViewBox
}

type viewConfig struct {
	scale float64
}

// ViewOption customizes NewViewOptions and FitViewOptions.
type ViewOption func(*viewConfig)

// WithScale multiplies the four components of the view box by `scale`,
// which must be positive. The default is 1.
func WithScale(scale float64) ViewOption {
	return func(c *viewConfig) { c.scale = scale }
}

func newViewConfig(opts []ViewOption) (viewConfig, error) {
	c := viewConfig{scale: 1}
	for _, opt := range opts {
		opt(&c)
	}
	if !(c.scale > 0) || math.IsInf(c.scale, 0) {
		return c, fmt.Errorf("%w: scale %g", ErrInvalidViewport, c.scale)
	}
	return c, nil
}

// NewViewOptions returns the options using `rect`, possibly scaled with WithScale.
// The coordinates of `rect` are used as they are, without mapping
// them to drawing space.
// A nil `rect` selects the default view box.
// An error wrapping ErrInvalidViewport is returned for a non positive or
// non finite scale, or when the scaled rectangle is empty.
func NewViewOptions(rect *svgcurve.Rect, opts ...ViewOption) (*ViewOptions, error) {
	c, err := newViewConfig(opts)
	if err != nil {
		return nil, err
	}
	if rect == nil {
		return &ViewOptions{}, nil
	}
	vb := ViewBox{
		X: rect.MinX * c.scale,
		Y: rect.MinY * c.scale,
		W: rect.Width() * c.scale,
		H: rect.Height() * c.scale,
	}
	if err := vb.validate(); err != nil {
		return nil, err
	}
	return &ViewOptions{ViewBox: &vb}, nil
}

// elementBounds returns the extent of a path or circle, in drawing space.
func elementBounds(e Element) (svgcurve.Rect, bool) {
	switch e := e.(type) {
	case *PathElement:
		minX, minY, maxX, maxY, ok := e.Path.Bounds()
		return svgcurve.Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, ok
	case *CircleElement:
		return svgcurve.Rect{
			MinX: e.Center.X - e.Radius, MinY: e.Center.Y - e.Radius,
			MaxX: e.Center.X + e.Radius, MaxY: e.Center.Y + e.Radius,
		}, true
	default:
		return svgcurve.Rect{}, false
	}
}

// FitViewOptions returns the options whose view box contains the elements
// drawing the `curves`, with a `margin` added on each side.
// The extent is measured on the converted elements, so that it matches
// the arcs actually written.
// An empty list selects the default view box.
func FitViewOptions(curves []svgcurve.Curve, margin float64, opts ...ViewOption) (*ViewOptions, error) {
	if !(margin >= 0) || math.IsInf(margin, 0) {
		return nil, fmt.Errorf("%w: margin %g", ErrInvalidViewport, margin)
	}
	var (
		box    svgcurve.Rect
		hasBox bool
	)
	for i, c := range curves {
		elem, err := Convert(c, nil)
		if err != nil {
			return nil, fmt.Errorf("curve %d: %w", i, err)
		}
		b, ok := elementBounds(elem)
		if !ok {
			continue
		}
		if hasBox {
			b = box.Union(b)
		}
		box, hasBox = b, true
	}
	if !hasBox {
		return NewViewOptions(nil, opts...)
	}
	rect := svgcurve.Rect{
		MinX: box.MinX - margin,
		MinY: box.MinY - margin,
		MaxX: box.MaxX + margin,
		MaxY: box.MaxY + margin,
	}
	return NewViewOptions(&rect, opts...)
}
