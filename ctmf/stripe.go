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

package ctmf

// Stripe is a vertical slice of a plane that is filtered with one set of
// column histograms. Neighbouring stripes overlap by 2·radius columns; each
// stripe writes only the columns its window fully covers, plus the outer
// radius columns when it touches the plane edge.
type Stripe struct {
	X     int // first column of the stripe in the plane
	Width int // number of columns, at least 2·radius+1

	PadLeft  bool // the stripe starts at the left plane edge
	PadRight bool // the stripe ends at the right plane edge
}

// OutputRange returns the plane columns [x0, x1) written by the stripe.
func (s Stripe) OutputRange(radius int) (x0, x1 int) {
	x0, x1 = s.X+radius, s.X+s.Width-radius
	if s.PadLeft {
		x0 = s.X
	}
	if s.PadRight {
		x1 = s.X + s.Width
	}
	return x0, x1
}

// Partition splits a plane of the given width into stripes whose column
// histograms fit into memoryBudget bytes. If the budget holds fewer than
// 2·radius+1 columns, stripes of exactly that width are used instead. The
// stripes are returned from left to right; together their output ranges
// cover every column exactly once.
func Partition(width, radius, bitDepth, memoryBudget int) ([]Stripe, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	if width < 2*radius+1 {
		return nil, invalidf("width %d is smaller than the %d-column kernel", width, 2*radius+1)
	}
	rec, err := RecordSize(bitDepth)
	if err != nil {
		return nil, err
	}
	cols := max(memoryBudget/rec, 2*radius+1)

	span := 2 * radius
	count := ceilDiv(width-span, cols-span)
	size := ceilDiv(width+count*span-span, count)

	stripes := make([]Stripe, 0, count)
	for x := 0; x < width; x += size - span {
		w := size
		// The last stripe takes the remainder when the next one would not
		// fit a whole kernel.
		if x+size-span >= width || width-(x+size-span) < span+1 {
			w = width - x
		}
		stripes = append(stripes, Stripe{
			X:        x,
			Width:    w,
			PadLeft:  x == 0,
			PadRight: w == width-x,
		})
		if w == width-x {
			break
		}
	}
	return stripes, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
