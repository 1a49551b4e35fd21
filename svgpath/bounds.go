package svgpath

import "math"

// Bounds returns the extent of the drawn path, that is the smallest
// axis aligned rectangle containing its segments, computed
// exactly for arcs (the flags select the arc actually rendered).
// It returns false for an empty path.
func (p Path) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	extend := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		ok = true
	}
	var placeX, placeY, startX, startY float64
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			extend(op.X, op.Y)
			placeX, placeY = op.X, op.Y
			startX, startY = op.X, op.Y
		case LineTo:
			extend(op.X, op.Y)
			placeX, placeY = op.X, op.Y
		case ArcTo:
			extend(op.X, op.Y)
			if !(op.X == placeX && op.Y == placeY) && op.RX != 0 && op.RY != 0 {
				arcExtrema(op, placeX, placeY, extend)
			}
			placeX, placeY = op.X, op.Y
		case Close:
			placeX, placeY = startX, startY
		}
	}
	return minX, minY, maxX, maxY, ok
}

// arcExtrema calls `extend` with the points of the arc where
// x or y reach an extremum.
// The ellipse is parametrized as c + R(phi)(rx cos(eta), ry sin(eta)),
// and the arc runs from the start to the end parameter, with eta
// increasing when the sweep flag is set.
func arcExtrema(op ArcTo, px, py float64, extend func(x, y float64)) {
	points, cx, cy := arcCenter(op, px, py)
	rx, ry := points[0], points[1]
	phi := op.Rotation * math.Pi / 180
	sin, cos := math.Sincos(phi)

	eta := func(x, y float64) float64 {
		dx, dy := x-cx, y-cy
		u, v := cos*dx+sin*dy, -sin*dx+cos*dy // rotated back
		return math.Atan2(v/ry, u/rx)
	}
	start, end := eta(px, py), eta(op.X, op.Y)
	delta := math.Mod(end-start, 2*math.Pi)
	if op.Sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !op.Sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	etaX := math.Atan2(-ry*sin, rx*cos)
	etaY := math.Atan2(ry*cos, rx*sin)
	for _, crit := range [4]float64{etaX, etaX + math.Pi, etaY, etaY + math.Pi} {
		// angle travelled from start to reach crit
		d := math.Mod(crit-start, 2*math.Pi)
		if op.Sweep && d < 0 {
			d += 2 * math.Pi
		} else if !op.Sweep && d > 0 {
			d -= 2 * math.Pi
		}
		if math.Abs(d) > math.Abs(delta) {
			continue
		}
		se, ce := math.Sincos(crit)
		extend(cx+rx*cos*ce-ry*sin*se, cy+rx*sin*ce+ry*cos*se)
	}
}
