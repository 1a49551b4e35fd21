package svgcurve

import (
	"math"

	mt "github.com/rustyoz/Mtransform"
)

// flipY maps the authoring space (Y up) onto
// the SVG user space (Y down).
var flipY = newFlipY()

func newFlipY() *mt.Transform {
	t := mt.NewTransform()
	t.Scale(1, -1)
	return t
}

// ToDrawingSpace returns the SVG coordinates of the authoring point `p`,
// that is (p.X, -p.Y).
// Every coordinate written in a document must go through this function, exactly once.
func ToDrawingSpace(p Point) Point {
	x, y := flipY.Apply(p.X, p.Y)
	return Point{X: noNegZero(x), Y: noNegZero(y)}
}

// noNegZero avoids writing "-0" in the output
func noNegZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

// SignedAngle returns the angle, in degrees, of the counter-clockwise
// rotation bringing `a` onto `b`, in the range [0, 360).
func SignedAngle(a, b Point) float64 {
	return signedAngle(a, b) * 180 / math.Pi
}

// signedAngle is SignedAngle in radians, in [0, 2*Pi)
func signedAngle(a, b Point) float64 {
	cross := a.X*b.Y - a.Y*b.X
	dot := a.X*b.X + a.Y*b.Y
	rad := math.Atan2(cross, dot)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	if rad >= 2*math.Pi { // rounding of tiny negative angles
		rad = 0
	}
	return rad
}

// ResolveArc computes the two flags required by the SVG elliptical arc
// command to draw `a` once its points are mapped to drawing space.
//
// The sweep flag is derived from the rotation bringing the start point
// onto the end point about the center: it is set when this rotation is
// strictly less than 180 degrees. The large arc flag is set when the
// declared sweep angle of `a` is strictly greater than 180 degrees.
func ResolveArc(a Arc) (largeArc, sweep bool) {
	sweep = signedAngle(a.Start.Sub(a.Center), a.End.Sub(a.Center)) < math.Pi
	largeArc = a.SweepAngle > 180
	return largeArc, sweep
}
