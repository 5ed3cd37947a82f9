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
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/darealshinji/vapoursynth-plugins-sub004/ctmf"
)

// Median filters frames of one format with fixed parameters.
//
// Process may be called from several goroutines at once. Every plane being
// filtered uses a ctmf.Filter of its own, taken from a pool so that the
// histogram buffers are reused from frame to frame.
type Median struct {
	format   Format
	params   Params
	selected []bool

	filters sync.Pool
}

// NewMedian validates the parameters for the given format and returns a
// filter instance.
func NewMedian(format Format, params Params) (*Median, error) {
	logrus.WithFields(logrus.Fields{
		"function": "NewMedian",
		"format":   format.Name,
		"radius":   params.Radius,
		"memsize":  params.MemSize,
		"planes":   params.Planes,
	}).Info("Creating median filter")

	if err := params.Validate(format); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewMedian",
			"format":   format.Name,
			"error":    err.Error(),
		}).Error("Invalid median filter parameters")
		return nil, err
	}

	params.Planes = slices.Clone(params.Planes)
	m := &Median{
		format:   format,
		params:   params,
		selected: params.selected(format),
	}
	m.filters.New = func() any {
		return &ctmf.Filter{
			Radius:       params.Radius,
			BitDepth:     format.BitsPerSample,
			MemoryBudget: params.MemSize,
		}
	}
	return m, nil
}

// Format returns the format the filter was created for.
func (m *Median) Format() Format {
	return m.format
}

// Params returns the parameters the filter was created with.
func (m *Median) Params() Params {
	p := m.params
	p.Planes = slices.Clone(p.Planes)
	return p
}

// Process returns a new frame holding the filtered planes of src. Unselected
// planes are copied. The selected planes are filtered concurrently; if one
// of them fails, the first error in plane order is returned and the output
// is discarded.
//
// Cancelling ctx stops planes which have not been started yet.
func (m *Median) Process(ctx context.Context, src *Frame) (*Frame, error) {
	if src.Format != m.format {
		return nil, fmt.Errorf("%w: frame format %s, filter format %s",
			ctmf.ErrInvalidArgument, src.Format.Name, m.format.Name)
	}
	if err := src.check(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "Median.Process",
		"width":    src.Width(),
		"height":   src.Height(),
		"format":   m.format.Name,
	}).Debug("Filtering frame")

	dst := blankLike(src)
	errs := make([]error, len(src.Planes))

	var wg sync.WaitGroup
	for i := range src.Planes {
		if !m.selected[i] {
			copyPlane(&dst.Planes[i], &src.Planes[i], m.format.BitsPerSample == 8)
			continue
		}
		if err := ctx.Err(); err != nil {
			errs[i] = err
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = m.filterPlane(&dst.Planes[i], &src.Planes[i])
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			err = fmt.Errorf("plane %d: %w", i, err)
			logrus.WithFields(logrus.Fields{
				"function": "Median.Process",
				"plane":    i,
				"error":    err.Error(),
			}).Error("Median filter failed")
			return nil, err
		}
	}
	return dst, nil
}

func (m *Median) filterPlane(dst, src *Plane) error {
	f := m.filters.Get().(*ctmf.Filter)
	defer m.filters.Put(f)

	if m.format.BitsPerSample == 8 {
		return f.Plane8(dst.Pix8, src.Pix8, src.Width, src.Height, src.Stride)
	}
	return f.Plane16(dst.Pix16, src.Pix16, src.Width, src.Height, src.Stride)
}

// Close releases the instance. Pooled working memory is left to the
// garbage collector.
func (m *Median) Close() error {
	logrus.WithFields(logrus.Fields{
		"function": "Median.Close",
		"format":   m.format.Name,
	}).Info("Closing median filter")
	return nil
}

// copyPlane copies the visible samples of src into dst, which has the same
// geometry.
func copyPlane(dst, src *Plane, eight bool) {
	for y := range src.Height {
		row := y * src.Stride
		if eight {
			copy(dst.Pix8[row:row+src.Width], src.Pix8[row:])
		} else {
			copy(dst.Pix16[row:row+src.Width], src.Pix16[row:])
		}
	}
}
