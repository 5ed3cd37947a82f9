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
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/darealshinji/vapoursynth-plugins-sub004/testplanes"
)

// BenchmarkPlane8 filters a 640×480 plane. The time per plane should
// hardly change with the radius.
func BenchmarkPlane8(b *testing.B) {
	const w, h = 640, 480
	src := make([]uint8, w*h)
	rng := rand.New(rand.NewPCG(1, 2))
	for i := range src {
		src[i] = uint8(rng.IntN(256))
	}
	dst := make([]uint8, w*h)

	for _, r := range []int{1, 4, 16, 64} {
		b.Run(fmt.Sprintf("r%d", r), func(b *testing.B) {
			f := NewFilter(r)
			b.ReportAllocs()
			b.SetBytes(w * h)
			for b.Loop() {
				if err := f.Plane8(dst, src, w, h, w); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPlane16(b *testing.B) {
	const w, h = 640, 480
	for _, depth := range []int{10, 12, 16} {
		src := make([]uint16, w*h)
		rng := rand.New(rand.NewPCG(3, uint64(depth)))
		for i := range src {
			src[i] = uint16(rng.IntN(1 << depth))
		}
		dst := make([]uint16, w*h)

		for _, r := range []int{2, 8} {
			b.Run(fmt.Sprintf("%dbit_r%d", depth, r), func(b *testing.B) {
				rec, _ := RecordSize(depth)
				f := NewFilter(r)
				f.BitDepth = depth
				f.MemoryBudget = max(DefaultMemoryBudget, (2*r+65)*rec)
				b.ReportAllocs()
				b.SetBytes(2 * w * h)
				for b.Loop() {
					if err := f.Plane16(dst, src, w, h, w); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkSortedWindow measures the brute-force filter used as the test
// reference, for comparison.
func BenchmarkSortedWindow(b *testing.B) {
	tc := testplanes.All["noise"][0]
	for _, r := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("r%d", r), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				testplanes.Median(tc.Pix, tc.Width, tc.Height, r)
			}
		})
	}
}

func BenchmarkStripes(b *testing.B) {
	tc := testplanes.All["noise"][0]
	src := tc.Pix8()
	dst := make([]uint8, len(src))
	rec, _ := RecordSize(8)

	for _, cols := range []int{48, 16, 6} {
		b.Run(fmt.Sprintf("cols%d", cols), func(b *testing.B) {
			f := NewFilter(2)
			f.MemoryBudget = cols * rec
			b.ReportAllocs()
			for b.Loop() {
				if err := f.Plane8(dst, src, tc.Width, tc.Height, tc.Width); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
