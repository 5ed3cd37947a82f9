package testplanes

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

var shapeCases = []Case{
	impulses(disc("disc", 64, 64, 8), 0.15, 21),
	impulses(star("star", 64, 64, 8), 0.15, 22),
	impulses(ring("ring_10bit", 80, 60, 10), 0.1, 23),
	impulses(tilted("tilted_square_16bit", 48, 48, 16), 0.05, 24),
}

// disc paints a filled circle on a dark background.
func disc(name string, width, height, bitDepth int) Case {
	c := newPlane(name, width, height, bitDepth)
	pt := newPainter(width, height)
	cx, cy := float64(width)/2, float64(height)/2
	r := 0.4 * float64(min(width, height))
	pt.Fill(c, circle(cx, cy, r, false), c.MaxValue()*3/4)
	return c
}

// star paints a five-pointed star with a brighter inner pentagon.
func star(name string, width, height, bitDepth int) Case {
	c := newPlane(name, width, height, bitDepth)
	pt := newPainter(width, height)
	cx, cy := float64(width)/2, float64(height)/2
	r := 0.45 * float64(min(width, height))
	pt.Fill(c, fivePointStar(cx, cy, r), c.MaxValue()/2)
	pt.Fill(c, polygon(cx, cy, 0.3*r, 5), c.MaxValue())
	return c
}

// ring paints an annulus: the inner circle runs the other way round and
// cancels the winding of the outer one.
func ring(name string, width, height, bitDepth int) Case {
	c := newPlane(name, width, height, bitDepth)
	pt := newPainter(width, height)
	cx, cy := float64(width)/2, float64(height)/2
	outer := 0.45 * float64(min(width, height))
	inner := 0.25 * float64(min(width, height))
	outerPath := circle(cx, cy, outer, false)
	innerPath := circle(cx, cy, inner, true)
	both := func(yield func(path.Command, []vec.Vec2) bool) {
		for cmd, pts := range outerPath {
			if !yield(cmd, pts) {
				return
			}
		}
		for cmd, pts := range innerPath {
			if !yield(cmd, pts) {
				return
			}
		}
	}
	pt.Fill(c, both, c.MaxValue())
	return c
}

// tilted paints a square rotated by 30 degrees about the plane centre.
func tilted(name string, width, height, bitDepth int) Case {
	c := newPlane(name, width, height, bitDepth)
	pt := newPainter(width, height)
	cx, cy := float64(width)/2, float64(height)/2
	sin, cos := math.Sincos(math.Pi / 6)
	pt.CTM = matrix.Matrix{cos, sin, -sin, cos, cx, cy}
	h := 0.3 * float64(min(width, height))
	pt.Fill(c, rectangle(-h, -h, h, h), c.MaxValue()-1000)
	return c
}

// rectangle builds an axis-aligned rectangular path.
func rectangle(x1, y1, x2, y2 float64) path.Path {
	return polyline([]vec.Vec2{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2}})
}

// polygon builds a regular polygon with n corners.
func polygon(cx, cy, r float64, n int) path.Path {
	pts := make([]vec.Vec2, n)
	for i := range n {
		angle := float64(i)*2*math.Pi/float64(n) - math.Pi/2
		pts[i] = vec.Vec2{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return polyline(pts)
}

// fivePointStar builds a self-intersecting five-pointed star by connecting
// every second corner of a pentagon.
func fivePointStar(cx, cy, r float64) path.Path {
	corners := make([]vec.Vec2, 5)
	for i := range 5 {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		corners[i] = vec.Vec2{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	order := []int{0, 2, 4, 1, 3}
	pts := make([]vec.Vec2, len(order))
	for i, k := range order {
		pts[i] = corners[k]
	}
	return polyline(pts)
}

// polyline builds a closed path through the given points.
func polyline(pts []vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, pts[:1]) {
			return
		}
		for i := 1; i < len(pts); i++ {
			if !yield(path.CmdLineTo, pts[i:i+1]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// circle approximates a circle by four cubic Bézier arcs.
func circle(cx, cy, r float64, clockwise bool) path.Path {
	const k = 0.5522847498
	sign := 1.0
	if clockwise {
		sign = -1
	}
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		buf[0] = vec.Vec2{X: cx, Y: cy - r}
		if !yield(path.CmdMoveTo, buf[:1]) {
			return
		}
		// Each quarter arc ends a quarter turn further on; the control
		// points lie on the tangents at both ends.
		p := vec.Vec2{X: 0, Y: -r}
		for range 4 {
			q := vec.Vec2{X: -sign * p.Y, Y: sign * p.X}
			buf[0] = vec.Vec2{X: cx + p.X + k*q.X, Y: cy + p.Y + k*q.Y}
			buf[1] = vec.Vec2{X: cx + q.X + k*p.X, Y: cy + q.Y + k*p.Y}
			buf[2] = vec.Vec2{X: cx + q.X, Y: cy + q.Y}
			if !yield(path.CmdCubeTo, buf[:3]) {
				return
			}
			p = q
		}
		yield(path.CmdClose, nil)
	}
}
