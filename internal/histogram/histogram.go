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

// Package histogram implements the two-level count arrays behind the
// constant-time median filter.
//
// A value v is split into a coarse bucket v>>shift and a fine offset
// v&(bins-1). The coarse level counts samples per bucket; the fine level
// holds, for every coarse bucket, the counts of the individual values inside
// that bucket. All counts are uint16: the largest window the filter supports,
// (2·127+1)², is 65025 samples.
package histogram

// Add adds src to dst element-wise. dst must be at least as long as src.
func Add(dst, src []uint16) {
	dst = dst[:len(src)]
	for i, c := range src {
		dst[i] += c
	}
}

// Sub subtracts src from dst element-wise. The caller guarantees that no
// element of dst drops below zero.
func Sub(dst, src []uint16) {
	dst = dst[:len(src)]
	for i, c := range src {
		dst[i] -= c
	}
}

// MulAdd adds n copies of src to dst.
func MulAdd(dst, src []uint16, n int) {
	dst = dst[:len(src)]
	m := uint16(n)
	for i, c := range src {
		dst[i] += m * c
	}
}

// Sum returns the total count held in h.
func Sum(h []uint16) int {
	total := 0
	for _, c := range h {
		total += int(c)
	}
	return total
}
