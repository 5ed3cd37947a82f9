// ctmf - constant-time median filtering for video planes
// Copyright (C) 2026  The ctmf Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package testplanes

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// curveSteps is the number of line segments a Bézier curve is split into.
const curveSteps = 16

// segment is a line in device coordinates.
type segment struct {
	a, b vec.Vec2
}

// painter sets the pixels of a plane whose centres lie inside a path,
// using the nonzero winding rule. There is no anti-aliasing; a painted
// plane contains only the values it was painted with.
type painter struct {
	CTM  matrix.Matrix // user space to device space
	Clip rect.Rect     // device-space region that may be painted

	segs []segment
}

func newPainter(width, height int) *painter {
	return &painter{
		CTM:  matrix.Identity,
		Clip: rect.Rect{LLx: 0, LLy: 0, URx: float64(width), URy: float64(height)},
	}
}

// Fill paints value v into c wherever p covers a pixel centre.
func (pt *painter) Fill(c Case, p path.Path, v uint16) {
	pt.flatten(p)
	if len(pt.segs) == 0 {
		return
	}

	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, s := range pt.segs {
		yMin = min(yMin, s.a.Y, s.b.Y)
		yMax = max(yMax, s.a.Y, s.b.Y)
	}
	y0 := max(int(math.Floor(yMin)), int(pt.Clip.LLy), 0)
	y1 := min(int(math.Ceil(yMax)), int(pt.Clip.URy), c.Height)
	x0 := max(int(pt.Clip.LLx), 0)
	x1 := min(int(pt.Clip.URx), c.Width)

	for y := y0; y < y1; y++ {
		cy := float64(y) + 0.5
		for x := x0; x < x1; x++ {
			if pt.winding(float64(x)+0.5, cy) != 0 {
				c.Pix[y*c.Width+x] = v
			}
		}
	}
}

// winding returns the winding number of the flattened path around (x, y).
func (pt *painter) winding(x, y float64) int {
	w := 0
	for _, s := range pt.segs {
		a, b := s.a, s.b
		if (a.Y <= y) == (b.Y <= y) {
			continue
		}
		t := (y - a.Y) / (b.Y - a.Y)
		if a.X+t*(b.X-a.X) <= x {
			continue
		}
		if b.Y > a.Y {
			w++
		} else {
			w--
		}
	}
	return w
}

// flatten converts p into device-space line segments. Open subpaths are
// closed implicitly.
func (pt *painter) flatten(p path.Path) {
	pt.segs = pt.segs[:0]

	var current, start vec.Vec2
	open := false
	closeSubpath := func() {
		if open && current != start {
			pt.addLine(current, start)
		}
		current = start
		open = false
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			closeSubpath()
			current = pts[0]
			start = current
			open = true
		case path.CmdLineTo:
			pt.addLine(current, pts[0])
			current = pts[0]
			open = true
		case path.CmdQuadTo:
			p0, p1, p2 := current, pts[0], pts[1]
			prev := p0
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				s := 1 - t
				next := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
				pt.addLine(prev, next)
				prev = next
			}
			current = p2
			open = true
		case path.CmdCubeTo:
			p0, p1, p2, p3 := current, pts[0], pts[1], pts[2]
			prev := p0
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				s := 1 - t
				next := p0.Mul(s * s * s).Add(p1.Mul(3 * s * s * t)).
					Add(p2.Mul(3 * s * t * t)).Add(p3.Mul(t * t * t))
				pt.addLine(prev, next)
				prev = next
			}
			current = p3
			open = true
		case path.CmdClose:
			closeSubpath()
		}
	}
	closeSubpath()
}

// addLine transforms a user-space line to device space and stores it.
// Horizontal lines never change the winding number and are dropped.
func (pt *painter) addLine(p0, p1 vec.Vec2) {
	m := pt.CTM
	a := vec.Vec2{X: m[0]*p0.X + m[2]*p0.Y + m[4], Y: m[1]*p0.X + m[3]*p0.Y + m[5]}
	b := vec.Vec2{X: m[0]*p1.X + m[2]*p1.Y + m[4], Y: m[1]*p1.X + m[3]*p1.Y + m[5]}
	if a.Y == b.Y {
		return
	}
	pt.segs = append(pt.segs, segment{a: a, b: b})
}
