package svgdoc

import (
	"fmt"

	"github.com/benoitkugler/curvesvg/svgcurve"
	"github.com/benoitkugler/curvesvg/svgpath"
)

// Convert returns the element drawing `c`.
// Lines and arcs become paths, circles become circle elements; every
// point is mapped to drawing space.
// DefaultStyle is then applied, and overridden field by field by `style`,
// if not nil.
// An error wrapping svgcurve.ErrInvalidGeometry is returned for
// malformed or unsupported curves, and one wrapping ErrInvalidStyle
// if `style` is not valid.
func Convert(c svgcurve.Curve, style *Style) (Element, error) {
	if err := svgcurve.Validate(c); err != nil {
		return nil, err
	}
	if style != nil {
		if err := style.Validate(); err != nil {
			return nil, err
		}
	}

	st := Style{}.Merge(DefaultStyle)
	if style != nil {
		st = st.Merge(*style)
	}

	switch c := c.(type) {
	case svgcurve.Line:
		start, end := svgcurve.ToDrawingSpace(c.Start), svgcurve.ToDrawingSpace(c.End)
		var p svgpath.Path
		p.Start(start.X, start.Y)
		p.Line(end.X, end.Y)
		return &PathElement{Path: p, Style: st}, nil
	case svgcurve.Arc:
		largeArc, sweep := svgcurve.ResolveArc(c)
		start, end := svgcurve.ToDrawingSpace(c.Start), svgcurve.ToDrawingSpace(c.End)
		var p svgpath.Path
		p.Start(start.X, start.Y)
		p.Arc(c.Radius, largeArc, sweep, end.X, end.Y)
		return &PathElement{Path: p, Style: st}, nil
	case svgcurve.Circle:
		return &CircleElement{Center: svgcurve.ToDrawingSpace(c.Center), Radius: c.Radius, Style: st}, nil
	default: // rejected by Validate
		return nil, fmt.Errorf("unsupported curve %T: %w", c, svgcurve.ErrInvalidGeometry)
	}
}
