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

import "github.com/darealshinji/vapoursynth-plugins-sub004/internal/histogram"

// sample is the set of pixel types the filter works on.
type sample interface {
	~uint8 | ~uint16
}

// scanStripe filters one stripe. src and dst start at the stripe's first
// column and share the plane's stride; columns outside the stripe are not
// touched.
//
// Column histograms are updated once per row by removing the row that
// leaves the window and adding the row that enters it. Along a row, the
// window's coarse histogram slides by one column per pixel. The coarse
// bucket holding the median is located first, then only that bucket's fine
// histogram is brought up to date and searched.
func scanStripe[S sample](f *Filter, dst, src []S, s Stripe, height, stride int, b bucketing) {
	cols := &f.cols
	win := &f.win

	r := f.Radius
	n := s.Width
	bins := b.bins
	pre := b.preShift
	mask := b.mask

	cols.Reset(bins, n)

	// Top border: row 0 stands in for the r rows above the plane. It is
	// inserted r+1 times because the first row update below removes one
	// copy again.
	for j, v := range src[:n] {
		cols.Insert(j, (int(v)&mask)<<pre, r+1)
	}
	for i := range r {
		for j, v := range src[i*stride:][:n] {
			cols.Insert(j, (int(v)&mask)<<pre, 1)
		}
	}

	// The median is the sample with exactly t samples below it.
	t := 2*r*r + 2*r

	jStart, jEnd := r, n-r
	if s.PadLeft {
		jStart = 0
	}
	if s.PadRight {
		jEnd = n
	}

	for i := range height {
		for j, v := range src[max(0, i-r-1)*stride:][:n] {
			cols.Remove(j, (int(v)&mask)<<pre)
		}
		for j, v := range src[min(height-1, i+r)*stride:][:n] {
			cols.Insert(j, (int(v)&mask)<<pre, 1)
		}

		win.Reset(bins)
		coarse := win.Coarse()
		if s.PadLeft {
			histogram.MulAdd(coarse, cols.Coarse(0), r)
			for j := range r {
				histogram.Add(coarse, cols.Coarse(j))
			}
		} else {
			for j := range 2 * r {
				histogram.Add(coarse, cols.Coarse(j))
			}
		}
		// With all cursors at 0, each fine histogram must hold the 2r+1
		// columns left of column 0, which at the plane edge are replicas
		// of column 0. Interior stripes always rebuild on first use.
		for k := range bins {
			histogram.MulAdd(win.Fine(k), cols.Fine(k, 0), 2*r+1)
		}

		out := dst[i*stride:]
		for j := jStart; j < jEnd; j++ {
			histogram.Add(coarse, cols.Coarse(min(j+r, n-1)))
			if f.inspect != nil {
				f.inspect(i, s.X+j, coarse)
			}

			// coarse search
			sum := 0
			k := 0
			for ; k < bins; k++ {
				c := int(coarse[k])
				if sum+c > t {
					break
				}
				sum += c
			}

			fine := win.Fine(k)
			if win.Cursor(k) <= j-r {
				// stale: rebuild from the columns of the current window
				clear(fine)
				x := j - r
				for ; x < min(j+r+1, n); x++ {
					histogram.Add(fine, cols.Fine(k, x))
				}
				if x < j+r+1 {
					histogram.MulAdd(fine, cols.Fine(k, n-1), j+r+1-n)
				}
			} else {
				for x := win.Cursor(k); x < j+r+1; x++ {
					histogram.Sub(fine, cols.Fine(k, max(x-2*r-1, 0)))
					histogram.Add(fine, cols.Fine(k, min(x, n-1)))
				}
			}
			win.SetCursor(k, j+r+1)

			histogram.Sub(coarse, cols.Coarse(max(j-r, 0)))

			// fine search
			m := 0
			for ; m < bins; m++ {
				sum += int(fine[m])
				if sum > t {
					break
				}
			}
			out[j] = S((bins*k + m) >> pre)
		}
	}
}
