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

// Package ctmf implements a square median filter whose cost per pixel does
// not depend on the filter radius.
//
// Every output pixel is the median of the (2r+1)×(2r+1) neighbourhood
// around it. Samples outside the plane read as the nearest edge sample.
// The filter keeps one histogram per column and a running histogram of the
// current window; both are updated incrementally, so each pixel costs a
// constant number of histogram operations. Histograms have two levels, a
// coarse level of bins buckets and a fine level inside each bucket, which
// keeps the search for the median short.
//
// Column histograms grow with the plane width and, for 16-bit samples, are
// large. Wide planes are therefore split into overlapping stripes whose
// histograms fit into a memory budget where possible; the result does not
// depend on the budget.
package ctmf

import "github.com/darealshinji/vapoursynth-plugins-sub004/internal/histogram"

// Limits and defaults.
const (
	// MinRadius and MaxRadius bound the filter radius. The window of the
	// largest radius holds 65025 samples, the most a uint16 count can hold.
	MinRadius = 1
	MaxRadius = 127

	// DefaultMemoryBudget is the default number of bytes of column
	// histograms per stripe.
	DefaultMemoryBudget = 1 << 20
)

// Filter applies a median filter to image planes. Create one instance and
// reuse it for many planes: internal buffers grow as needed but never
// shrink, so filtering planes of a fixed size allocates nothing in steady
// state.
//
// A Filter is not safe for concurrent use. Independent Filters share no
// state and may run in parallel.
type Filter struct {
	// Radius is the half-size of the square window. Must be between
	// MinRadius and MaxRadius.
	Radius int

	// BitDepth is the number of significant bits of the samples passed to
	// Plane16. Bits above BitDepth are ignored, so every output sample is
	// below 1<<BitDepth. Supported depths are 8 to 16. Plane8 always works
	// with 8 bits.
	BitDepth int

	// MemoryBudget bounds the bytes of column histograms kept per stripe;
	// see RecordSize. A budget below 2·Radius+1 columns is raised to that
	// minimum.
	MemoryBudget int

	cols histogram.Columns
	win  histogram.Window

	// inspect, if set, is called with the window's coarse histogram at
	// every pixel, after the incoming column has been added.
	inspect func(y, x int, coarse []uint16)
}

// NewFilter returns a Filter for 8-bit samples with the given radius and
// the default memory budget.
func NewFilter(radius int) *Filter {
	return &Filter{
		Radius:       radius,
		BitDepth:     8,
		MemoryBudget: DefaultMemoryBudget,
	}
}

// Plane8 writes the median-filtered src into dst. Both planes have the
// given width and height and share the stride, measured in samples. dst
// must not overlap src.
//
// All arguments are checked and the working memory for the widest stripe is
// obtained before the first sample is written, so on error dst is unchanged.
func (f *Filter) Plane8(dst, src []uint8, width, height, stride int) error {
	return filterPlane(f, dst, src, width, height, stride, 8)
}

// Plane16 is like Plane8 for samples of f.BitDepth bits stored in uint16.
func (f *Filter) Plane16(dst, src []uint16, width, height, stride int) error {
	return filterPlane(f, dst, src, width, height, stride, f.BitDepth)
}

// MedianFilterPlane8 filters one 8-bit plane with its own working memory.
// Concurrent calls on independent buffers are safe.
func MedianFilterPlane8(dst, src []uint8, width, height, stride, radius, memoryBudget int) error {
	f := &Filter{Radius: radius, BitDepth: 8, MemoryBudget: memoryBudget}
	return f.Plane8(dst, src, width, height, stride)
}

// MedianFilterPlane16 filters one plane of bitDepth-bit samples with its
// own working memory. Concurrent calls on independent buffers are safe.
func MedianFilterPlane16(dst, src []uint16, width, height, stride, radius, bitDepth, memoryBudget int) error {
	f := &Filter{Radius: radius, BitDepth: bitDepth, MemoryBudget: memoryBudget}
	return f.Plane16(dst, src, width, height, stride)
}

func filterPlane[S sample](f *Filter, dst, src []S, width, height, stride, bitDepth int) error {
	b, err := lookupBucketing(bitDepth)
	if err != nil {
		return err
	}
	if err := checkRadius(f.Radius); err != nil {
		return err
	}
	if err := checkGeometry(width, height, stride, f.Radius, len(dst), len(src)); err != nil {
		return err
	}
	stripes, err := Partition(width, f.Radius, bitDepth, f.MemoryBudget)
	if err != nil {
		return err
	}

	widest := 0
	for _, s := range stripes {
		widest = max(widest, s.Width)
	}
	if err := f.reserve(b.bins, widest); err != nil {
		return err
	}

	for _, s := range stripes {
		scanStripe(f, dst[s.X:], src[s.X:], s, height, stride, b)
	}
	return nil
}

// reserve grows the column histograms to hold a stripe of the given width,
// so that the stripes of a plane never allocate.
func (f *Filter) reserve(bins, width int) (err error) {
	if _, ok := workingSet(bins, width); !ok {
		return allocf("%d columns of %d bins overflow the address space", width, bins)
	}
	defer catchAllocation(&err)
	f.cols.Reset(bins, width)
	f.win.Reset(bins)
	return nil
}

func checkRadius(radius int) error {
	if radius < MinRadius || radius > MaxRadius {
		return invalidf("radius %d outside [%d, %d]", radius, MinRadius, MaxRadius)
	}
	return nil
}

func checkGeometry(width, height, stride, radius, nDst, nSrc int) error {
	k := 2*radius + 1
	if width < k || height < k {
		return invalidf("plane %dx%d is smaller than the %dx%d window", width, height, k, k)
	}
	if stride < width {
		return invalidf("stride %d is smaller than width %d", stride, width)
	}
	need := (height-1)*stride + width
	if nSrc < need {
		return invalidf("source has %d samples, need %d", nSrc, need)
	}
	if nDst < need {
		return invalidf("destination has %d samples, need %d", nDst, need)
	}
	return nil
}
