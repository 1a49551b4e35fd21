// Implements an abstract representation of
// svg paths, restricted to the commands needed
// to draw lines and circular arcs, which can then be
// written as path data or consumed by painting drivers.
package svgpath

import (
	"math"
	"strconv"
	"strings"
)

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathArcTo
	pathClose
)

// Operation groups the different SVG commands
type Operation interface {
	command() pathCommand
}

// MoveTo starts a new sub-path at (X, Y).
type MoveTo struct{ X, Y float64 }

// LineTo draws a straight line to (X, Y).
type LineTo struct{ X, Y float64 }

// ArcTo draws an elliptical arc to (X, Y), following
// the SVG conventions for the flags.
type ArcTo struct {
	RX, RY   float64
	Rotation float64 // x axis rotation, in degrees
	LargeArc bool
	Sweep    bool
	X, Y     float64
}

// Close joins the current point to the start of the sub-path.
type Close struct{}

func (MoveTo) command() pathCommand { return pathMoveTo }
func (LineTo) command() pathCommand { return pathLineTo }
func (ArcTo) command() pathCommand  { return pathArcTo }
func (Close) command() pathCommand  { return pathClose }

// Path describes a sequence of basic SVG operations.
type Path []Operation

// decimals is the number of decimals kept when writing coordinates
const decimals = 9

// FormatFloat returns the shortest decimal representation of `v`,
// rounded to 9 decimals. Negative zero is written as "0".
func FormatFloat(v float64) string {
	scale := math.Pow10(decimals)
	r := math.Round(v*scale) / scale
	if math.IsInf(r, 0) || math.IsNaN(r) { // overflow in v*scale
		r = v
	}
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func formatPoint(x, y float64) string { return FormatFloat(x) + "," + FormatFloat(y) }

func formatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// ToSVGPath returns the path data (the `d` attribute) of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = "M " + formatPoint(op.X, op.Y)
		case LineTo:
			chunks[i] = "L " + formatPoint(op.X, op.Y)
		case ArcTo:
			chunks[i] = "A " + formatPoint(op.RX, op.RY) + " " + FormatFloat(op.Rotation) + " " +
				formatFlag(op.LargeArc) + "," + formatFlag(op.Sweep) + " " + formatPoint(op.X, op.Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(x, y float64) {
	*p = append(*p, MoveTo{x, y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(x, y float64) {
	*p = append(*p, LineTo{x, y})
}

// Arc adds a circular arc of radius `r` to the current curve.
func (p *Path) Arc(r float64, largeArc, sweep bool, x, y float64) {
	*p = append(*p, ArcTo{RX: r, RY: r, LargeArc: largeArc, Sweep: sweep, X: x, Y: y})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}
