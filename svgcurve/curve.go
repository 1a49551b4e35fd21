// Provides the parametric 2D curves (lines, circular arcs and circles)
// consumed by the SVG converter, expressed in a Cartesian, Y-up
// authoring space, and the geometry needed to map them onto SVG's
// Y-down drawing space.
package svgcurve

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry is returned for curves which can't be converted:
// unsupported variants, non positive radius, inconsistent arcs.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Tolerance is the relative tolerance used when checking that
// the end points of an arc lie on its circle.
const Tolerance = 1e-6

// Point is a (x, y) coordinate pair.
type Point struct{ X, Y float64 }

// Add returns the vector p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p multiplied by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Len is the distance from the origin of the point
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

func (p Point) isFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Curve groups the supported curve kinds.
// The set is closed: only Line, Arc and Circle implement it.
type Curve interface {
	isCurve()
}

// Line is a straight segment.
type Line struct {
	Start, End Point
}

// Arc is a circular arc, running from Start to End around Center.
// SweepAngle is the angular extent of the arc, in degrees.
type Arc struct {
	Center, Start, End Point
	Radius             float64
	SweepAngle         float64
}

// Circle is a full circle.
type Circle struct {
	Center Point
	Radius float64
}

func (Line) isCurve()   {}
func (Arc) isCurve()    {}
func (Circle) isCurve() {}

// Validate checks that `c` is a well formed curve.
// Degenerate arcs (start equal to end, null sweep) are accepted.
func Validate(c Curve) error {
	switch c := c.(type) {
	case Line:
		if !c.Start.isFinite() || !c.End.isFinite() {
			return fmt.Errorf("line %v -> %v: non finite coordinates: %w", c.Start, c.End, ErrInvalidGeometry)
		}
	case Arc:
		if !c.Center.isFinite() || !c.Start.isFinite() || !c.End.isFinite() {
			return fmt.Errorf("arc around %v: non finite coordinates: %w", c.Center, ErrInvalidGeometry)
		}
		if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
			return fmt.Errorf("arc around %v: radius %g: %w", c.Center, c.Radius, ErrInvalidGeometry)
		}
		if !(c.SweepAngle >= 0 && c.SweepAngle < 360) {
			return fmt.Errorf("arc around %v: sweep angle %g outside [0, 360): %w", c.Center, c.SweepAngle, ErrInvalidGeometry)
		}
		tol := Tolerance * c.Radius
		for _, p := range [2]Point{c.Start, c.End} {
			if d := p.Sub(c.Center).Len(); math.Abs(d-c.Radius) > tol {
				return fmt.Errorf("arc around %v: point %v at distance %g, expected %g: %w",
					c.Center, p, d, c.Radius, ErrInvalidGeometry)
			}
		}
	case Circle:
		if !c.Center.isFinite() {
			return fmt.Errorf("circle: non finite center: %w", ErrInvalidGeometry)
		}
		if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
			return fmt.Errorf("circle around %v: radius %g: %w", c.Center, c.Radius, ErrInvalidGeometry)
		}
	case nil:
		return fmt.Errorf("nil curve: %w", ErrInvalidGeometry)
	default:
		return fmt.Errorf("unsupported curve %T: %w", c, ErrInvalidGeometry)
	}
	return nil
}
