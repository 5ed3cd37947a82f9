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

// Package frame applies the median filter to video frames made of several
// planes.
//
// A Frame holds one plane per component, for example Y, U and V, with the
// chroma planes possibly subsampled. A Median is created once for a
// Format and a set of Params and then processes any number of frames of
// that format; selected planes are filtered concurrently, the others are
// copied unchanged.
package frame

import (
	"fmt"
	"slices"

	"github.com/darealshinji/vapoursynth-plugins-sub004/ctmf"
)

// Format describes the sample layout of a frame.
type Format struct {
	Name          string
	BitsPerSample int // 8 to 16
	SubSamplingW  int // log2 of the horizontal chroma subsampling
	SubSamplingH  int // log2 of the vertical chroma subsampling
	NumPlanes     int // 1 for gray, 3 for YUV
}

// Predefined formats.
var (
	Gray8     = Format{Name: "Gray8", BitsPerSample: 8, NumPlanes: 1}
	Gray16    = Format{Name: "Gray16", BitsPerSample: 16, NumPlanes: 1}
	YUV420P8  = Format{Name: "YUV420P8", BitsPerSample: 8, SubSamplingW: 1, SubSamplingH: 1, NumPlanes: 3}
	YUV422P8  = Format{Name: "YUV422P8", BitsPerSample: 8, SubSamplingW: 1, NumPlanes: 3}
	YUV444P8  = Format{Name: "YUV444P8", BitsPerSample: 8, NumPlanes: 3}
	YUV420P10 = Format{Name: "YUV420P10", BitsPerSample: 10, SubSamplingW: 1, SubSamplingH: 1, NumPlanes: 3}
	YUV444P16 = Format{Name: "YUV444P16", BitsPerSample: 16, NumPlanes: 3}
)

func (f Format) String() string {
	return f.Name
}

// PlaneSize returns the dimensions of plane i of a width×height frame.
// Plane 0 is never subsampled.
func (f Format) PlaneSize(i, width, height int) (int, int) {
	if i == 0 {
		return width, height
	}
	w := (width + 1<<f.SubSamplingW - 1) >> f.SubSamplingW
	h := (height + 1<<f.SubSamplingH - 1) >> f.SubSamplingH
	return w, h
}

// Check returns an error if the filter cannot handle frames of this format.
func (f Format) Check() error {
	if _, err := ctmf.Bins(f.BitsPerSample); err != nil {
		return fmt.Errorf("format %s: %w", f.Name, err)
	}
	if f.NumPlanes < 1 || f.NumPlanes > 4 {
		return fmt.Errorf("%w: format %s has %d planes", ctmf.ErrInvalidArgument, f.Name, f.NumPlanes)
	}
	if f.SubSamplingW < 0 || f.SubSamplingW > 2 || f.SubSamplingH < 0 || f.SubSamplingH > 2 {
		return fmt.Errorf("%w: format %s has subsampling %d,%d",
			ctmf.ErrInvalidArgument, f.Name, f.SubSamplingW, f.SubSamplingH)
	}
	return nil
}

// Plane is one component of a frame. 8-bit formats use Pix8, all others
// Pix16. Stride is measured in samples.
type Plane struct {
	Width, Height int
	Stride        int
	Pix8          []uint8
	Pix16         []uint16
}

// Frame is a single video frame.
type Frame struct {
	Format Format
	Planes []Plane
}

// NewFrame allocates a zeroed frame. Every plane is stored without row
// padding.
func NewFrame(format Format, width, height int) (*Frame, error) {
	if err := format.Check(); err != nil {
		return nil, err
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: frame size %dx%d", ctmf.ErrInvalidArgument, width, height)
	}

	fr := &Frame{Format: format, Planes: make([]Plane, format.NumPlanes)}
	for i := range fr.Planes {
		w, h := format.PlaneSize(i, width, height)
		p := &fr.Planes[i]
		p.Width, p.Height, p.Stride = w, h, w
		if format.BitsPerSample == 8 {
			p.Pix8 = make([]uint8, w*h)
		} else {
			p.Pix16 = make([]uint16, w*h)
		}
	}
	return fr, nil
}

// Width returns the width of the first plane.
func (fr *Frame) Width() int {
	if len(fr.Planes) == 0 {
		return 0
	}
	return fr.Planes[0].Width
}

// Height returns the height of the first plane.
func (fr *Frame) Height() int {
	if len(fr.Planes) == 0 {
		return 0
	}
	return fr.Planes[0].Height
}

// Clone returns a deep copy of fr.
func (fr *Frame) Clone() *Frame {
	out := &Frame{Format: fr.Format, Planes: slices.Clone(fr.Planes)}
	for i := range out.Planes {
		out.Planes[i].Pix8 = slices.Clone(fr.Planes[i].Pix8)
		out.Planes[i].Pix16 = slices.Clone(fr.Planes[i].Pix16)
	}
	return out
}

// blankLike returns a frame with the geometry of fr and zeroed samples.
func blankLike(fr *Frame) *Frame {
	out := &Frame{Format: fr.Format, Planes: slices.Clone(fr.Planes)}
	for i := range out.Planes {
		p := &out.Planes[i]
		if p.Pix8 != nil {
			p.Pix8 = make([]uint8, len(p.Pix8))
		}
		if p.Pix16 != nil {
			p.Pix16 = make([]uint16, len(p.Pix16))
		}
	}
	return out
}

// check verifies that fr is laid out as its format requires.
func (fr *Frame) check() error {
	if len(fr.Planes) != fr.Format.NumPlanes {
		return fmt.Errorf("%w: %d planes for format %s",
			ctmf.ErrInvalidArgument, len(fr.Planes), fr.Format.Name)
	}
	for i, p := range fr.Planes {
		var n int
		if fr.Format.BitsPerSample == 8 {
			n = len(p.Pix8)
		} else {
			n = len(p.Pix16)
		}
		if p.Width < 1 || p.Height < 1 || p.Stride < p.Width || n < (p.Height-1)*p.Stride+p.Width {
			return fmt.Errorf("%w: plane %d has size %dx%d, stride %d and %d samples",
				ctmf.ErrInvalidArgument, i, p.Width, p.Height, p.Stride, n)
		}
	}
	return nil
}
