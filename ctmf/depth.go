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

import (
	"math"

	"github.com/darealshinji/vapoursynth-plugins-sub004/internal/histogram"
)

// bucketing describes how samples of one bit depth map onto histogram
// buckets.
type bucketing struct {
	bins int // buckets per level; bins*bins covers the value range

	// preShift is applied to every sample before bucketing and undone on
	// the result. 9-bit samples are doubled into the 10-bit range so that
	// they can share its 32-bin layout.
	preShift uint

	// mask clears sample bits above the bit depth.
	mask int
}

// lookupBucketing returns the bucket layout for a bit depth.
// Depths 11, 13, 14 and 15 use the 16-bit layout with 256 bins.
func lookupBucketing(bitDepth int) (bucketing, error) {
	var b bucketing
	switch {
	case bitDepth == 8:
		b.bins = 16
	case bitDepth == 9:
		b.bins, b.preShift = 32, 1
	case bitDepth == 10:
		b.bins = 32
	case bitDepth == 12:
		b.bins = 64
	case bitDepth > 8 && bitDepth <= 16:
		b.bins = 256
	default:
		return bucketing{}, invalidf("unsupported bit depth %d", bitDepth)
	}
	b.mask = 1<<bitDepth - 1
	return b, nil
}

// Bins returns the number of histogram buckets per level used for samples
// of the given bit depth.
func Bins(bitDepth int) (int, error) {
	b, err := lookupBucketing(bitDepth)
	if err != nil {
		return 0, err
	}
	return b.bins, nil
}

// RecordSize returns the number of bytes of histogram state one stripe
// column needs at the given bit depth. The memory budget is measured in
// units of this size.
func RecordSize(bitDepth int) (int, error) {
	b, err := lookupBucketing(bitDepth)
	if err != nil {
		return 0, err
	}
	return histogram.RecordSize(b.bins), nil
}

// workingSet returns the number of uint16 counts needed for the column
// histograms of a stripe, or false if that number overflows an int.
func workingSet(bins, width int) (int, bool) {
	per := bins + bins*bins
	if width > math.MaxInt/per {
		return 0, false
	}
	return per * width, true
}
