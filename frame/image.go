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
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/darealshinji/vapoursynth-plugins-sub004/ctmf"
)

// FromImage converts img into a frame.
//
// Gray and Gray16 images give one plane. YCbCr images with 4:2:0, 4:2:2
// or 4:4:4 subsampling give three planes without colour conversion. Any
// other image is converted to gray, keeping 16 bits if its colour model
// has them.
func FromImage(img image.Image) (*Frame, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch img := img.(type) {
	case *image.Gray:
		fr, err := NewFrame(Gray8, w, h)
		if err != nil {
			return nil, err
		}
		p := &fr.Planes[0]
		for y := range h {
			i := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(p.Pix8[y*p.Stride:], img.Pix[i:i+w])
		}
		return fr, nil

	case *image.Gray16:
		fr, err := NewFrame(Gray16, w, h)
		if err != nil {
			return nil, err
		}
		p := &fr.Planes[0]
		for y := range h {
			i := img.PixOffset(b.Min.X, b.Min.Y+y)
			row := p.Pix16[y*p.Stride : y*p.Stride+w]
			for x := range row {
				row[x] = uint16(img.Pix[i+2*x])<<8 | uint16(img.Pix[i+2*x+1])
			}
		}
		return fr, nil

	case *image.YCbCr:
		if format, ok := ycbcrFormat(img.SubsampleRatio); ok {
			return fromYCbCr(img, format)
		}
	}

	if isDeep(img.ColorModel()) {
		g := image.NewGray16(image.Rect(0, 0, w, h))
		draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
		return FromImage(g)
	}
	g := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return FromImage(g)
}

func ycbcrFormat(r image.YCbCrSubsampleRatio) (Format, bool) {
	switch r {
	case image.YCbCrSubsampleRatio420:
		return YUV420P8, true
	case image.YCbCrSubsampleRatio422:
		return YUV422P8, true
	case image.YCbCrSubsampleRatio444:
		return YUV444P8, true
	}
	return Format{}, false
}

func fromYCbCr(img *image.YCbCr, format Format) (*Frame, error) {
	b := img.Rect
	fr, err := NewFrame(format, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	y0 := img.YOffset(b.Min.X, b.Min.Y)
	c0 := img.COffset(b.Min.X, b.Min.Y)
	sources := []struct {
		pix    []uint8
		offset int
		stride int
	}{
		{img.Y, y0, img.YStride},
		{img.Cb, c0, img.CStride},
		{img.Cr, c0, img.CStride},
	}
	for i, s := range sources {
		p := &fr.Planes[i]
		for y := range p.Height {
			start := s.offset + y*s.stride
			copy(p.Pix8[y*p.Stride:y*p.Stride+p.Width], s.pix[start:])
		}
	}
	return fr, nil
}

func isDeep(m color.Model) bool {
	switch m {
	case color.Gray16Model, color.RGBA64Model, color.NRGBA64Model, color.Alpha16Model:
		return true
	}
	return false
}

// Image converts fr back into an image. Single-plane frames give Gray or
// Gray16 images, with samples of 9 to 15 bits scaled to 16 bits. Three-plane
// 8-bit frames give YCbCr images. There is no image type for other formats.
func (fr *Frame) Image() (image.Image, error) {
	if err := fr.check(); err != nil {
		return nil, err
	}
	f := fr.Format
	rect := image.Rect(0, 0, fr.Width(), fr.Height())

	switch {
	case f.NumPlanes == 1 && f.BitsPerSample == 8:
		p := &fr.Planes[0]
		img := image.NewGray(rect)
		for y := range p.Height {
			copy(img.Pix[y*img.Stride:], p.Pix8[y*p.Stride:y*p.Stride+p.Width])
		}
		return img, nil

	case f.NumPlanes == 1:
		p := &fr.Planes[0]
		shift := 16 - f.BitsPerSample
		img := image.NewGray16(rect)
		for y := range p.Height {
			row := p.Pix16[y*p.Stride : y*p.Stride+p.Width]
			out := img.Pix[y*img.Stride:]
			for x, v := range row {
				v <<= shift
				out[2*x] = uint8(v >> 8)
				out[2*x+1] = uint8(v)
			}
		}
		return img, nil

	case f.NumPlanes == 3 && f.BitsPerSample == 8:
		var ratio image.YCbCrSubsampleRatio
		switch {
		case f.SubSamplingW == 0 && f.SubSamplingH == 0:
			ratio = image.YCbCrSubsampleRatio444
		case f.SubSamplingW == 1 && f.SubSamplingH == 0:
			ratio = image.YCbCrSubsampleRatio422
		case f.SubSamplingW == 1 && f.SubSamplingH == 1:
			ratio = image.YCbCrSubsampleRatio420
		default:
			return nil, fmt.Errorf("%w: no image type for format %s", ctmf.ErrInvalidArgument, f.Name)
		}
		img := image.NewYCbCr(rect, ratio)
		targets := []struct {
			pix    []uint8
			stride int
		}{
			{img.Y, img.YStride},
			{img.Cb, img.CStride},
			{img.Cr, img.CStride},
		}
		for i, t := range targets {
			p := &fr.Planes[i]
			for y := range p.Height {
				copy(t.pix[y*t.stride:], p.Pix8[y*p.Stride:y*p.Stride+p.Width])
			}
		}
		return img, nil
	}
	return nil, fmt.Errorf("%w: no image type for format %s", ctmf.ErrInvalidArgument, f.Name)
}
