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
	"context"
	"image"
	"image/color"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darealshinji/vapoursynth-plugins-sub004/ctmf"
	"github.com/darealshinji/vapoursynth-plugins-sub004/testplanes"
)

// noisyFrame returns a frame of the given format filled with random
// samples of the format's bit depth.
func noisyFrame(t *testing.T, format Format, width, height int, seed uint64) *Frame {
	t.Helper()
	fr, err := NewFrame(format, width, height)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(seed, 1))
	n := 1 << format.BitsPerSample
	for i := range fr.Planes {
		p := &fr.Planes[i]
		for j := range p.Pix8 {
			p.Pix8[j] = uint8(rng.IntN(n))
		}
		for j := range p.Pix16 {
			p.Pix16[j] = uint16(rng.IntN(n))
		}
	}
	return fr
}

// widen returns the samples of p as uint16.
func widen(p Plane) []uint16 {
	if p.Pix16 != nil {
		return p.Pix16
	}
	out := make([]uint16, len(p.Pix8))
	for i, v := range p.Pix8 {
		out[i] = uint16(v)
	}
	return out
}

func TestNewFrame(t *testing.T) {
	fr, err := NewFrame(YUV420P8, 7, 5)
	require.NoError(t, err)
	require.Len(t, fr.Planes, 3)

	assert.Equal(t, 7, fr.Width())
	assert.Equal(t, 5, fr.Height())
	assert.Len(t, fr.Planes[0].Pix8, 35)
	for _, p := range fr.Planes[1:] {
		assert.Equal(t, 4, p.Width)
		assert.Equal(t, 3, p.Height)
		assert.Equal(t, 4, p.Stride)
		assert.Len(t, p.Pix8, 12)
		assert.Nil(t, p.Pix16)
	}

	fr, err = NewFrame(YUV444P16, 6, 6)
	require.NoError(t, err)
	for _, p := range fr.Planes {
		assert.Len(t, p.Pix16, 36)
		assert.Nil(t, p.Pix8)
	}

	_, err = NewFrame(Gray8, 0, 5)
	assert.ErrorIs(t, err, ctmf.ErrInvalidArgument)
	_, err = NewFrame(Format{Name: "bad", BitsPerSample: 7, NumPlanes: 1}, 5, 5)
	assert.ErrorIs(t, err, ctmf.ErrInvalidArgument)
}

func TestClone(t *testing.T) {
	fr := noisyFrame(t, YUV420P10, 12, 10, 1)
	c := fr.Clone()
	assert.Equal(t, fr, c)

	c.Planes[1].Pix16[0]++
	assert.NotEqual(t, fr.Planes[1].Pix16[0], c.Planes[1].Pix16[0])
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		params Params
		ok     bool
	}{
		{"default", YUV420P8, DefaultParams(), true},
		{"default_16bit", YUV444P16, DefaultParams(), true},
		{"radius_zero", Gray8, Params{Radius: 0, MemSize: 1 << 20}, false},
		{"radius_large", Gray8, Params{Radius: 128, MemSize: 1 << 20}, false},
		{"radius_max", Gray8, Params{Radius: 127, MemSize: 1 << 20}, true},
		{"memsize_zero", Gray8, Params{Radius: 2, MemSize: 0}, false},
		{"memsize_small", Gray8, Params{Radius: 2, MemSize: 4 * 544}, true},
		{"memsize_exact", Gray8, Params{Radius: 2, MemSize: 5 * 544}, true},
		{"16bit_radius4", Gray16, Params{Radius: 4, MemSize: 1 << 20}, true},
		{"16bit_radius127", Gray16, Params{Radius: 127, MemSize: 1 << 20}, true},
		{"planes_subset", YUV420P8, Params{Radius: 1, MemSize: 1 << 20, Planes: []int{0, 2}}, true},
		{"planes_empty", YUV420P8, Params{Radius: 1, MemSize: 1 << 20, Planes: []int{}}, true},
		{"planes_range", YUV420P8, Params{Radius: 1, MemSize: 1 << 20, Planes: []int{3}}, false},
		{"planes_negative", YUV420P8, Params{Radius: 1, MemSize: 1 << 20, Planes: []int{-1}}, false},
		{"planes_duplicate", YUV420P8, Params{Radius: 1, MemSize: 1 << 20, Planes: []int{1, 1}}, false},
		{"bad_depth", Format{Name: "x", BitsPerSample: 17, NumPlanes: 1}, DefaultParams(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate(tt.format)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ctmf.ErrInvalidArgument)
			}
		})
	}
}

func TestProcessMatchesPlaneFilter(t *testing.T) {
	formats := []Format{Gray8, YUV420P8, YUV444P8, YUV420P10, YUV444P16}
	for _, format := range formats {
		t.Run(format.Name, func(t *testing.T) {
			params := DefaultParams()
			if format.BitsPerSample == 16 {
				params.Radius = 5 // more columns than the default budget holds
			}
			m, err := NewMedian(format, params)
			require.NoError(t, err)
			defer m.Close()

			src := noisyFrame(t, format, 40, 30, 2)
			orig := src.Clone()
			dst, err := m.Process(context.Background(), src)
			require.NoError(t, err)
			require.Len(t, dst.Planes, format.NumPlanes)

			assert.Equal(t, orig, src, "source frame modified")
			for i, p := range src.Planes {
				want := testplanes.Median(widen(p), p.Width, p.Height, params.Radius)
				assert.Equal(t, want, widen(dst.Planes[i]), "plane %d", i)
			}
		})
	}
}

func TestProcessPassThrough(t *testing.T) {
	params := DefaultParams()
	params.Planes = []int{0}
	m, err := NewMedian(YUV420P8, params)
	require.NoError(t, err)

	src := noisyFrame(t, YUV420P8, 33, 21, 3)
	dst, err := m.Process(context.Background(), src)
	require.NoError(t, err)

	assert.NotEqual(t, src.Planes[0].Pix8, dst.Planes[0].Pix8)
	assert.Equal(t, src.Planes[1].Pix8, dst.Planes[1].Pix8)
	assert.Equal(t, src.Planes[2].Pix8, dst.Planes[2].Pix8)

	params.Planes = []int{}
	m, err = NewMedian(YUV420P8, params)
	require.NoError(t, err)
	dst, err = m.Process(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, src, dst)
}

func TestProcessStride(t *testing.T) {
	const w, h, stride = 20, 15, 24
	src := &Frame{
		Format: Gray16,
		Planes: []Plane{{Width: w, Height: h, Stride: stride, Pix16: make([]uint16, h*stride)}},
	}
	tight := make([]uint16, w*h)
	rng := rand.New(rand.NewPCG(4, 1))
	for y := range h {
		for x := range w {
			v := uint16(rng.IntN(1 << 16))
			src.Planes[0].Pix16[y*stride+x] = v
			tight[y*w+x] = v
		}
	}

	params := DefaultParams()
	params.Radius = 1
	m, err := NewMedian(Gray16, params)
	require.NoError(t, err)
	dst, err := m.Process(context.Background(), src)
	require.NoError(t, err)

	want := testplanes.Median(tight, w, h, 1)
	out := dst.Planes[0]
	assert.Equal(t, stride, out.Stride)
	for y := range h {
		assert.Equal(t, want[y*w:(y+1)*w], out.Pix16[y*stride:y*stride+w], "row %d", y)
	}
}

func TestProcessErrors(t *testing.T) {
	m, err := NewMedian(YUV420P8, DefaultParams())
	require.NoError(t, err)

	// chroma planes of an 8×8 frame are 4×4, smaller than a 5×5 window
	small := noisyFrame(t, YUV420P8, 8, 8, 5)
	_, err = m.Process(context.Background(), small)
	require.ErrorIs(t, err, ctmf.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "plane 1")

	_, err = m.Process(context.Background(), noisyFrame(t, Gray8, 20, 20, 6))
	assert.ErrorIs(t, err, ctmf.ErrInvalidArgument)

	broken := noisyFrame(t, YUV420P8, 20, 20, 7)
	broken.Planes[2].Pix8 = broken.Planes[2].Pix8[:10]
	_, err = m.Process(context.Background(), broken)
	assert.ErrorIs(t, err, ctmf.ErrInvalidArgument)

	_, err = NewMedian(Gray8, Params{Radius: 200, MemSize: 1})
	assert.ErrorIs(t, err, ctmf.ErrInvalidArgument)
}

func TestProcessCanceled(t *testing.T) {
	m, err := NewMedian(YUV444P8, DefaultParams())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Process(ctx, noisyFrame(t, YUV444P8, 20, 20, 8))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessConcurrent(t *testing.T) {
	m, err := NewMedian(YUV420P10, DefaultParams())
	require.NoError(t, err)

	frames := make([]*Frame, 6)
	for i := range frames {
		frames[i] = noisyFrame(t, YUV420P10, 30+i, 24, uint64(10+i))
	}
	want := make([]*Frame, len(frames))
	for i, fr := range frames {
		want[i], err = m.Process(context.Background(), fr)
		require.NoError(t, err)
	}

	got := make([]*Frame, len(frames))
	errs := make([]error, len(frames))
	var wg sync.WaitGroup
	for i, fr := range frames {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i], errs[i] = m.Process(context.Background(), fr)
		}()
	}
	wg.Wait()

	for i := range frames {
		require.NoError(t, errs[i])
		assert.Equal(t, want[i], got[i], "frame %d", i)
	}
}

func TestImageRoundTrip(t *testing.T) {
	rect := image.Rect(0, 0, 7, 5)
	rng := rand.New(rand.NewPCG(9, 1))

	gray := image.NewGray(rect)
	gray16 := image.NewGray16(rect)
	for i := range gray.Pix {
		gray.Pix[i] = uint8(rng.IntN(256))
	}
	for i := range gray16.Pix {
		gray16.Pix[i] = uint8(rng.IntN(256))
	}

	images := []image.Image{gray, gray16}
	for _, ratio := range []image.YCbCrSubsampleRatio{
		image.YCbCrSubsampleRatio420,
		image.YCbCrSubsampleRatio422,
		image.YCbCrSubsampleRatio444,
	} {
		img := image.NewYCbCr(rect, ratio)
		for _, pix := range [][]uint8{img.Y, img.Cb, img.Cr} {
			for i := range pix {
				pix[i] = uint8(rng.IntN(256))
			}
		}
		images = append(images, img)
	}

	for _, img := range images {
		fr, err := FromImage(img)
		require.NoError(t, err)
		back, err := fr.Image()
		require.NoError(t, err)
		assert.Equal(t, img, back)
	}
}

func TestFromImageSubRect(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i)
	}
	sub := gray.SubImage(image.Rect(2, 3, 6, 8))

	fr, err := FromImage(sub)
	require.NoError(t, err)
	p := fr.Planes[0]
	assert.Equal(t, 4, p.Width)
	assert.Equal(t, 5, p.Height)
	assert.Equal(t, uint8(32), p.Pix8[0])
	assert.Equal(t, uint8(75), p.Pix8[len(p.Pix8)-1])
}

func TestFromImageConverts(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 3, 2))
	rgba.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	fr, err := FromImage(rgba)
	require.NoError(t, err)
	assert.Equal(t, Gray8, fr.Format)
	assert.Equal(t, uint8(255), fr.Planes[0].Pix8[4])
	assert.Equal(t, uint8(0), fr.Planes[0].Pix8[0])

	rgba64 := image.NewRGBA64(image.Rect(0, 0, 3, 2))
	rgba64.Set(2, 0, color.RGBA64{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff})
	fr, err = FromImage(rgba64)
	require.NoError(t, err)
	assert.Equal(t, Gray16, fr.Format)
	assert.Equal(t, uint16(0xffff), fr.Planes[0].Pix16[2])
}

func TestImageScalesDepth(t *testing.T) {
	format := Format{Name: "Gray10", BitsPerSample: 10, NumPlanes: 1}
	fr, err := NewFrame(format, 2, 1)
	require.NoError(t, err)
	fr.Planes[0].Pix16[0] = 1023
	fr.Planes[0].Pix16[1] = 1

	img, err := fr.Image()
	require.NoError(t, err)
	g, ok := img.(*image.Gray16)
	require.True(t, ok)
	assert.Equal(t, uint16(1023<<6), g.Gray16At(0, 0).Y)
	assert.Equal(t, uint16(1<<6), g.Gray16At(1, 0).Y)

	_, err = noisyFrame(t, YUV420P10, 4, 4, 1).Image()
	assert.ErrorIs(t, err, ctmf.ErrInvalidArgument)
}
