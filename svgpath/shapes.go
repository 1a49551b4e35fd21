package svgpath

import (
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// This file implements the reduction of paths and circles
// to the primitives understood by painting drivers (lines and
// bezier curves), using the rasterx.Adder interface.

// ToFixedP converts two floats to a fixed point.
func ToFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(math.Round(x * 64))
	p.Y = fixed.Int26_6(math.Round(y * 64))
	return
}

// AddTo adds the Path p to q. Arcs are approximated
// by cubic bezier curves; an arc whose end point is its start point
// is omitted, as required by SVG.
func (p Path) AddTo(q rasterx.Adder) {
	var (
		placeX, placeY float64 // current point
		startX, startY float64 // start of the sub-path
		started        bool
	)
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			if started {
				q.Stop(false) // implicit close if currently in path.
			}
			q.Start(ToFixedP(op.X, op.Y))
			placeX, placeY = op.X, op.Y
			startX, startY = op.X, op.Y
			started = true
		case LineTo:
			q.Line(ToFixedP(op.X, op.Y))
			placeX, placeY = op.X, op.Y
		case ArcTo:
			placeX, placeY = addArc(q, op, placeX, placeY)
		case Close:
			q.Stop(true)
			placeX, placeY = startX, startY
			started = false
		}
	}
	if started {
		q.Stop(false)
	}
}

// arcCenter resolves the center of the arc `op` starting at (px, py),
// as rasterx does, possibly scaling up radii too small to join the end points.
// It returns the arc parameters as expected by rasterx.AddArc.
func arcCenter(op ArcTo, px, py float64) (points []float64, cx, cy float64) {
	points = []float64{math.Abs(op.RX), math.Abs(op.RY), op.Rotation, 0, 0, op.X, op.Y}
	if op.LargeArc {
		points[3] = 1
	}
	if op.Sweep {
		points[4] = 1
	}
	cx, cy = rasterx.FindEllipseCenter(&points[0], &points[1], points[2]*math.Pi/180,
		px, py, points[5], points[6], points[4] == 0, points[3] == 0)
	return points, cx, cy
}

// addArc uses the ellipse arc approximation of rasterx,
// starting from the current point (px, py).
func addArc(q rasterx.Adder, op ArcTo, px, py float64) (lx, ly float64) {
	if op.X == px && op.Y == py {
		return px, py
	}
	if op.RX == 0 || op.RY == 0 { // treated as a straight line
		q.Line(ToFixedP(op.X, op.Y))
		return op.X, op.Y
	}
	points, cx, cy := arcCenter(op, px, py)
	return rasterx.AddArc(points, cx, cy, px, py, q)
}

// AddCircle adds a full circle to q, as a closed path.
func AddCircle(q rasterx.Adder, cx, cy, r float64) {
	rasterx.AddCircle(cx, cy, r, q)
}

// Transform returns the path mapped by `m`, which must be a similarity
// (translation, rotation, uniform scale and reflection), so that
// circular arcs remain circular.
func (p Path) Transform(m rasterx.Matrix2D) Path {
	det := m.A*m.D - m.B*m.C
	scale := ScaleFactor(m)
	rotation := math.Atan2(m.B, m.A) * 180 / math.Pi
	out := make(Path, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			x, y := m.Transform(op.X, op.Y)
			out[i] = MoveTo{x, y}
		case LineTo:
			x, y := m.Transform(op.X, op.Y)
			out[i] = LineTo{x, y}
		case ArcTo:
			op.X, op.Y = m.Transform(op.X, op.Y)
			op.RX, op.RY = op.RX*scale, op.RY*scale
			op.Rotation += rotation
			if det < 0 { // reflections reverse the direction
				op.Sweep = !op.Sweep
			}
			out[i] = op
		default:
			out[i] = op
		}
	}
	return out
}

// ScaleFactor returns the factor applied to lengths by the similarity `m`.
func ScaleFactor(m rasterx.Matrix2D) float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}
