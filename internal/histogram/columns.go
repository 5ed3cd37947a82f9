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

import (
	"math/bits"
	"slices"
)

// Columns holds one coarse and one fine histogram per column of a stripe.
// Each column histogram describes the vertical run of samples currently
// inside the filter window for that column.
//
// The fine histograms are stored bucket-major: for coarse bucket k, the fine
// histograms of columns 0, 1, 2, ... follow each other in memory. This keeps
// the runs that a window rebuild walks through contiguous.
//
// Buffers grow as needed and never shrink, so a Columns value can be reused
// for every stripe of every plane.
type Columns struct {
	bins  int
	shift int
	width int

	coarse []uint16 // bins entries per column
	fine   []uint16 // bins*bins entries per column
}

// Reset prepares c for a stripe of the given width using the given number of
// bins, which must be a power of two. All counts are zeroed.
func (c *Columns) Reset(bins, width int) {
	c.bins = bins
	c.shift = bits.TrailingZeros(uint(bins))
	c.width = width

	nCoarse := bins * width
	nFine := bins * nCoarse
	c.coarse = slices.Grow(c.coarse[:0], nCoarse)[:nCoarse]
	c.fine = slices.Grow(c.fine[:0], nFine)[:nFine]
	clear(c.coarse)
	clear(c.fine)
}

// Bins returns the number of buckets per level.
func (c *Columns) Bins() int {
	return c.bins
}

// Width returns the number of columns.
func (c *Columns) Width() int {
	return c.width
}

// Insert adds n copies of value v to the histograms of column j.
func (c *Columns) Insert(j, v, n int) {
	k := v >> c.shift
	c.coarse[c.bins*j+k] += uint16(n)
	c.fine[c.bins*(c.width*k+j)+v&(c.bins-1)] += uint16(n)
}

// Remove takes one copy of value v out of the histograms of column j.
func (c *Columns) Remove(j, v int) {
	k := v >> c.shift
	c.coarse[c.bins*j+k]--
	c.fine[c.bins*(c.width*k+j)+v&(c.bins-1)]--
}

// Coarse returns the coarse histogram of column j.
func (c *Columns) Coarse(j int) []uint16 {
	i := c.bins * j
	return c.coarse[i : i+c.bins : i+c.bins]
}

// Fine returns the fine histogram of coarse bucket k in column j.
func (c *Columns) Fine(k, j int) []uint16 {
	i := c.bins * (c.width*k + j)
	return c.fine[i : i+c.bins : i+c.bins]
}

// RecordSize returns the number of bytes of column state per stripe column
// for the given number of bins.
func RecordSize(bins int) int {
	return 2 * (bins + bins*bins)
}
