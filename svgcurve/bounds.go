package svgcurve

import "math"

// angleEpsilon absorbs rounding errors on angles, in degrees
const angleEpsilon = 1e-9

// Rect is an axis aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// RectFromPoints returns the smallest rectangle containing `a` and `b`.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		MinX: math.Min(a.X, b.X), MinY: math.Min(a.Y, b.Y),
		MaxX: math.Max(a.X, b.X), MaxY: math.Max(a.Y, b.Y),
	}
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Union returns the smallest rectangle containing both `r` and `s`.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, s.MinX), MinY: math.Min(r.MinY, s.MinY),
		MaxX: math.Max(r.MaxX, s.MaxX), MaxY: math.Max(r.MaxY, s.MaxY),
	}
}

func (r Rect) extend(p Point) Rect { return r.Union(Rect{p.X, p.Y, p.X, p.Y}) }

// Bounds returns the extent of `c`, in authoring space.
// An unsupported curve yields the zero rectangle.
func Bounds(c Curve) Rect {
	switch c := c.(type) {
	case Line:
		return RectFromPoints(c.Start, c.End)
	case Circle:
		return Rect{c.Center.X - c.Radius, c.Center.Y - c.Radius, c.Center.X + c.Radius, c.Center.Y + c.Radius}
	case Arc:
		return arcBounds(c)
	default:
		return Rect{}
	}
}

// BoundingBox returns the union of the extents of `curves`.
// It returns false if `curves` is empty.
func BoundingBox(curves []Curve) (Rect, bool) {
	if len(curves) == 0 {
		return Rect{}, false
	}
	out := Bounds(curves[0])
	for _, c := range curves[1:] {
		out = out.Union(Bounds(c))
	}
	return out, true
}

// arcBounds uses the end points, and the points where the arc
// crosses the horizontal and vertical axis going through its center
// (the critical points of x(t) and y(t)).
// The arc runs counter-clockwise from Start to End.
func arcBounds(a Arc) Rect {
	out := RectFromPoints(a.Start, a.End)
	start := SignedAngle(Point{1, 0}, a.Start.Sub(a.Center))
	extent := SignedAngle(a.Start.Sub(a.Center), a.End.Sub(a.Center))
	for _, theta := range [4]float64{0, 90, 180, 270} {
		delta := math.Mod(theta-start+360, 360)
		if delta > extent+angleEpsilon && delta < 360-angleEpsilon {
			continue
		}
		rad := theta * math.Pi / 180
		out = out.extend(Point{
			X: a.Center.X + a.Radius*math.Round(math.Cos(rad)),
			Y: a.Center.Y + a.Radius*math.Round(math.Sin(rad)),
		})
	}
	return out
}
