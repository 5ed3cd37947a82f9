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

package histogram

import "slices"

// Window is the histogram of the square neighbourhood around the pixel
// being computed.
//
// The coarse level is kept exact at every step. Fine histograms are
// maintained lazily: only the bucket that holds the median is brought up to
// date, and the cursor of each bucket records the column up to which its
// fine histogram has been advanced. A bucket that stays active across
// neighbouring pixels is slid one column at a time instead of rebuilt.
type Window struct {
	bins   int
	coarse []uint16
	fine   []uint16
	cursor []int
}

// Reset clears the window and all cursors for the given number of bins.
func (w *Window) Reset(bins int) {
	w.bins = bins
	w.coarse = slices.Grow(w.coarse[:0], bins)[:bins]
	w.fine = slices.Grow(w.fine[:0], bins*bins)[:bins*bins]
	w.cursor = slices.Grow(w.cursor[:0], bins)[:bins]
	clear(w.coarse)
	clear(w.fine)
	clear(w.cursor)
}

// Coarse returns the coarse histogram of the window.
func (w *Window) Coarse() []uint16 {
	return w.coarse
}

// Fine returns the fine histogram of coarse bucket k.
func (w *Window) Fine(k int) []uint16 {
	i := w.bins * k
	return w.fine[i : i+w.bins : i+w.bins]
}

// Cursor returns the column one past the last column that has been folded
// into the fine histogram of bucket k.
func (w *Window) Cursor(k int) int {
	return w.cursor[k]
}

// SetCursor records that bucket k has been advanced up to column x.
func (w *Window) SetCursor(k, x int) {
	w.cursor[k] = x
}
