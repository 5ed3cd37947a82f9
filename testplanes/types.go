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

// Package testplanes provides synthetic image planes for testing and
// inspecting the median filter, together with a brute-force reference
// implementation of the filter.
package testplanes

import "math/rand/v2"

// Case is a single synthetic plane.
type Case struct {
	Name     string   // lowercase a-z, 0-9 and _ only
	Width    int      // plane width in pixels
	Height   int      // plane height in pixels
	BitDepth int      // significant bits per sample, 8 to 16
	Pix      []uint16 // row-major samples, stride == Width
}

// Pix8 returns the samples of an 8-bit case as bytes.
func (c Case) Pix8() []uint8 {
	out := make([]uint8, len(c.Pix))
	for i, v := range c.Pix {
		out[i] = uint8(v)
	}
	return out
}

// MaxValue returns the largest sample value allowed by the bit depth.
func (c Case) MaxValue() uint16 {
	return uint16(1<<c.BitDepth - 1)
}

// newPlane returns a zeroed case.
func newPlane(name string, width, height, bitDepth int) Case {
	return Case{
		Name:     name,
		Width:    width,
		Height:   height,
		BitDepth: bitDepth,
		Pix:      make([]uint16, width*height),
	}
}

// newRand returns a deterministic generator, so that every run sees the
// same planes.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0x6d656469616e))
}

// impulses overwrites a fraction of the samples with 0 or the maximum value.
func impulses(c Case, fraction float64, seed uint64) Case {
	rng := newRand(seed)
	hi := c.MaxValue()
	for i := range c.Pix {
		if rng.Float64() >= fraction {
			continue
		}
		if rng.IntN(2) == 0 {
			c.Pix[i] = 0
		} else {
			c.Pix[i] = hi
		}
	}
	return c
}
