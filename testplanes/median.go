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

import "slices"

// Median filters a row-major plane (stride == width) by sorting the
// (2r+1)×(2r+1) window around every pixel. Coordinates outside the plane
// are clamped to the nearest edge.
func Median(pix []uint16, width, height, radius int) []uint16 {
	out := make([]uint16, width*height)
	n := 2*radius + 1
	window := make([]uint16, 0, n*n)
	for y := range height {
		for x := range width {
			window = window[:0]
			for dy := -radius; dy <= radius; dy++ {
				yy := min(max(y+dy, 0), height-1)
				for dx := -radius; dx <= radius; dx++ {
					xx := min(max(x+dx, 0), width-1)
					window = append(window, pix[yy*width+xx])
				}
			}
			slices.Sort(window)
			out[y*width+x] = window[len(window)/2]
		}
	}
	return out
}

// Pad returns the plane extended by r replicated pixels on every side,
// together with its new width and height.
func Pad(pix []uint16, width, height, r int) ([]uint16, int, int) {
	pw, ph := width+2*r, height+2*r
	out := make([]uint16, pw*ph)
	for y := range ph {
		sy := min(max(y-r, 0), height-1)
		for x := range pw {
			sx := min(max(x-r, 0), width-1)
			out[y*pw+x] = pix[sy*width+sx]
		}
	}
	return out, pw, ph
}

// Crop returns the w×h sub-plane starting at (x0, y0).
func Crop(pix []uint16, width, x0, y0, w, h int) []uint16 {
	out := make([]uint16, 0, w*h)
	for y := y0; y < y0+h; y++ {
		out = append(out, pix[y*width+x0:y*width+x0+w]...)
	}
	return out
}
