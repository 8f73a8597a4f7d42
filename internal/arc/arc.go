// Package arc converts elliptical arcs to cubic Bézier curves, following the
// SVG "conversion from endpoint to center parameterization" algorithm.
package arc

import "math"

// Segment is one cubic Bézier segment approximating part of an arc, in
// whatever coordinate space the endpoints passed to ToCubics were in.
type Segment struct {
	X1, Y1 float32
	X2, Y2 float32
	X3, Y3 float32
}

// ToCubics converts the elliptical arc from (x0, y0) to (x, y), with radii
// (rx, ry), rotated by xAxisRotation (in turns, i.e. fractions of a full
// circle), to one or more cubic Bézier segments, appending them to dst.
//
// If rx or ry is zero or NaN, the arc degenerates to the straight line from
// (x0, y0) to (x, y) and a single Segment with coincident control points is
// appended.
func ToCubics(dst []Segment, x0, y0, rx, ry, xAxisRotation float32, largeArc, sweep bool, x, y float32) []Segment {
	Rx := math.Abs(float64(rx))
	Ry := math.Abs(float64(ry))
	if !(Rx > 0 && Ry > 0) {
		return append(dst, Segment{X1: x0, Y1: y0, X2: x, Y2: y, X3: x, Y3: y})
	}

	x1 := float64(x0)
	y1 := float64(y0)
	x2 := float64(x)
	y2 := float64(y)

	phi := 2 * math.Pi * float64(xAxisRotation)

	// Step 1: Compute (x1', y1').
	halfDx := (x1 - x2) / 2
	halfDy := (y1 - y2) / 2
	cosPhi := math.Cos(phi)
	sinPhi := math.Sin(phi)
	x1Prime := +cosPhi*halfDx + sinPhi*halfDy
	y1Prime := -sinPhi*halfDx + cosPhi*halfDy

	// Step 2: Compute (cx', cy').
	rxSq := Rx * Rx
	rySq := Ry * Ry
	x1PrimeSq := x1Prime * x1Prime
	y1PrimeSq := y1Prime * y1Prime

	if radiiCheck := x1PrimeSq/rxSq + y1PrimeSq/rySq; radiiCheck > 1 {
		c := math.Sqrt(radiiCheck)
		Rx *= c
		Ry *= c
		rxSq = Rx * Rx
		rySq = Ry * Ry
	}

	denom := rxSq*y1PrimeSq + rySq*x1PrimeSq
	step2 := 0.0
	if a := rxSq*rySq/denom - 1; a > 0 {
		step2 = math.Sqrt(a)
	}
	if largeArc == sweep {
		step2 = -step2
	}
	cxPrime := +step2 * Rx * y1Prime / Ry
	cyPrime := -step2 * Ry * x1Prime / Rx

	// Step 3: Compute (cx, cy) from (cx', cy').
	cx := +cosPhi*cxPrime - sinPhi*cyPrime + (x1+x2)/2
	cy := +sinPhi*cxPrime + cosPhi*cyPrime + (y1+y2)/2

	// Step 4: Compute theta1 and deltaTheta.
	ax := (+x1Prime - cxPrime) / Rx
	ay := (+y1Prime - cyPrime) / Ry
	bx := (-x1Prime - cxPrime) / Rx
	by := (-y1Prime - cyPrime) / Ry
	theta1 := angle(1, 0, ax, ay)
	deltaTheta := angle(ax, ay, bx, by)
	if sweep {
		if deltaTheta < 0 {
			deltaTheta += 2 * math.Pi
		}
	} else if deltaTheta > 0 {
		deltaTheta -= 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(deltaTheta) / (math.Pi/2 + 0.001)))
	for i := 0; i < n; i++ {
		dst = append(dst, segment(cx, cy,
			theta1+deltaTheta*float64(i+0)/float64(n),
			theta1+deltaTheta*float64(i+1)/float64(n),
			Rx, Ry, cosPhi, sinPhi,
		))
	}
	return dst
}

// segment approximates one arc segment (at most a quarter turn) with a
// single cubic Bézier curve, using the same control-point formulae as
// librsvg.
func segment(cx, cy, theta1, theta2, rx, ry, cosPhi, sinPhi float64) Segment {
	halfDeltaTheta := (theta2 - theta1) * 0.5
	q := math.Sin(halfDeltaTheta * 0.5)
	t := (8 * q * q) / (3 * math.Sin(halfDeltaTheta))
	cos1 := math.Cos(theta1)
	sin1 := math.Sin(theta1)
	cos2 := math.Cos(theta2)
	sin2 := math.Sin(theta2)
	x1 := rx * (+cos1 - t*sin1)
	y1 := ry * (+sin1 + t*cos1)
	x2 := rx * (+cos2 + t*sin2)
	y2 := ry * (+sin2 - t*cos2)
	x3 := rx * (+cos2)
	y3 := ry * (+sin2)
	return Segment{
		X1: float32(cx + cosPhi*x1 - sinPhi*y1),
		Y1: float32(cy + sinPhi*x1 + cosPhi*y1),
		X2: float32(cx + cosPhi*x2 - sinPhi*y2),
		Y2: float32(cy + sinPhi*x2 + cosPhi*y2),
		X3: float32(cx + cosPhi*x3 - sinPhi*y3),
		Y3: float32(cy + sinPhi*x3 + cosPhi*y3),
	}
}

// angle returns the signed angle between the u and v vectors.
func angle(ux, uy, vx, vy float64) float64 {
	uNorm := math.Sqrt(ux*ux + uy*uy)
	vNorm := math.Sqrt(vx*vx + vy*vy)
	norm := uNorm * vNorm
	cos := (ux*vx + uy*vy) / norm
	ret := 0.0
	if cos <= -1 {
		ret = math.Pi
	} else if cos >= +1 {
		ret = 0
	} else {
		ret = math.Acos(cos)
	}
	if ux*vy < uy*vx {
		return -ret
	}
	return +ret
}
