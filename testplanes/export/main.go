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

// Command export writes all test planes and their median-filtered versions
// as images, for inspection by eye. Planes of more than 8 bits are scaled to
// 16 bits. An index of the written files is stored as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/image/tiff"

	"github.com/darealshinji/vapoursynth-plugins-sub004/ctmf"
	"github.com/darealshinji/vapoursynth-plugins-sub004/testplanes"
)

const (
	outDir = "testdata/export"
	radius = 2
)

type jsonCase struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	BitDepth int      `json:"bit_depth"`
	Radius   int      `json:"radius"`
	Files    []string `json:"files"`
}

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	var out struct {
		TestCases []jsonCase `json:"testcases"`
	}
	for _, category := range slices.Sorted(maps.Keys(testplanes.All)) {
		for _, tc := range testplanes.All[category] {
			name := category + "_" + tc.Name
			jc, err := export(name, tc)
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			out.TestCases = append(out.TestCases, jc)
		}
	}

	f, err := os.Create(filepath.Join(outDir, "index.json"))
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

func export(name string, tc testplanes.Case) (jsonCase, error) {
	filtered := make([]uint16, len(tc.Pix))
	err := ctmf.MedianFilterPlane16(filtered, tc.Pix, tc.Width, tc.Height, tc.Width,
		radius, tc.BitDepth, ctmf.DefaultMemoryBudget)
	if err != nil {
		return jsonCase{}, err
	}

	jc := jsonCase{
		Name:     name,
		Width:    tc.Width,
		Height:   tc.Height,
		BitDepth: tc.BitDepth,
		Radius:   radius,
	}
	for _, plane := range []struct {
		suffix string
		pix    []uint16
	}{
		{"", tc.Pix},
		{"_median", filtered},
	} {
		img := toImage(tc, plane.pix)
		for _, ext := range []string{".png", ".tif"} {
			fname := name + plane.suffix + ext
			if err := writeImage(filepath.Join(outDir, fname), img); err != nil {
				return jsonCase{}, err
			}
			jc.Files = append(jc.Files, fname)
		}
	}
	return jc, nil
}

// toImage converts samples with the geometry of tc into an image.
func toImage(tc testplanes.Case, pix []uint16) image.Image {
	r := image.Rect(0, 0, tc.Width, tc.Height)
	if tc.BitDepth == 8 {
		img := image.NewGray(r)
		for i, v := range pix {
			img.Pix[i] = uint8(v)
		}
		return img
	}
	img := image.NewGray16(r)
	shift := 16 - tc.BitDepth
	for i, v := range pix {
		v <<= shift
		img.Pix[2*i] = uint8(v >> 8)
		img.Pix[2*i+1] = uint8(v)
	}
	return img
}

func writeImage(fname string, img image.Image) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if filepath.Ext(fname) == ".tif" {
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
