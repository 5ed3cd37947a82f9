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

package frame

import (
	"fmt"

	"github.com/darealshinji/vapoursynth-plugins-sub004/ctmf"
)

// Params configures a Median.
type Params struct {
	// Radius is the half-size of the square window, 1 to 127.
	Radius int

	// MemSize is the histogram memory budget per stripe in bytes.
	MemSize int

	// Planes lists the indices of the planes to filter. A nil slice
	// selects every plane; the other planes are copied.
	Planes []int
}

// DefaultParams returns radius 2, a 1 MiB budget and all planes.
func DefaultParams() Params {
	return Params{
		Radius:  2,
		MemSize: ctmf.DefaultMemoryBudget,
	}
}

// Validate checks p against the given format. All errors wrap
// ctmf.ErrInvalidArgument.
func (p Params) Validate(format Format) error {
	if err := format.Check(); err != nil {
		return err
	}
	if p.Radius < ctmf.MinRadius || p.Radius > ctmf.MaxRadius {
		return fmt.Errorf("%w: radius %d outside [%d, %d]",
			ctmf.ErrInvalidArgument, p.Radius, ctmf.MinRadius, ctmf.MaxRadius)
	}
	if p.MemSize < 1 {
		return fmt.Errorf("%w: memsize %d", ctmf.ErrInvalidArgument, p.MemSize)
	}

	seen := make([]bool, format.NumPlanes)
	for _, i := range p.Planes {
		if i < 0 || i >= format.NumPlanes {
			return fmt.Errorf("%w: plane %d out of range for format %s",
				ctmf.ErrInvalidArgument, i, format.Name)
		}
		if seen[i] {
			return fmt.Errorf("%w: plane %d listed twice", ctmf.ErrInvalidArgument, i)
		}
		seen[i] = true
	}
	return nil
}

// selected returns, for every plane of the format, whether it is filtered.
func (p Params) selected(format Format) []bool {
	sel := make([]bool, format.NumPlanes)
	if p.Planes == nil {
		for i := range sel {
			sel[i] = true
		}
		return sel
	}
	for _, i := range p.Planes {
		sel[i] = true
	}
	return sel
}
