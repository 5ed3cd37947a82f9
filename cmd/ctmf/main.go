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

// Command ctmf applies a square median filter to an image file.
//
// Usage:
//
//	ctmf [options] <input> <output>
//
// The input may be PNG, JPEG, GIF, TIFF, BMP or WebP. The output format is
// chosen by the file extension: .png, .tif, .tiff or .bmp. Gray images keep
// their bit depth; YCbCr images (JPEG, WebP) are filtered per component
// without colour conversion.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/darealshinji/vapoursynth-plugins-sub004/ctmf"
	"github.com/darealshinji/vapoursynth-plugins-sub004/frame"
)

// cliConfig holds the parsed command line.
type cliConfig struct {
	radius   int
	memSize  int
	planes   []int // nil means all planes
	logLevel logrus.Level
	input    string
	output   string
}

var errUsage = errors.New("usage: ctmf [options] <input> <output>")

// parseFlags parses the command line arguments, excluding the program name.
func parseFlags(args []string, stderr io.Writer) (*cliConfig, error) {
	def := frame.DefaultParams()
	fs := flag.NewFlagSet("ctmf", flag.ContinueOnError)
	fs.SetOutput(stderr)

	config := &cliConfig{}
	var planes, logLevel string
	fs.IntVar(&config.radius, "radius", def.Radius,
		fmt.Sprintf("Window radius (%d to %d)", ctmf.MinRadius, ctmf.MaxRadius))
	fs.IntVar(&config.memSize, "memsize", def.MemSize,
		"Histogram memory per stripe in bytes")
	fs.StringVar(&planes, "planes", "", "Comma separated plane indices to filter (default: all)")
	fs.StringVar(&logLevel, "log-level", "WARN", "Log level (DEBUG, INFO, WARN, ERROR)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), errUsage)
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return nil, errUsage
	}
	config.input, config.output = fs.Arg(0), fs.Arg(1)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", logLevel)
	}
	config.logLevel = level

	config.planes, err = parsePlanes(planes)
	if err != nil {
		return nil, err
	}
	return config, nil
}

// parsePlanes parses a list like "0,2". The empty string selects all
// planes.
func parsePlanes(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var planes []int
	for field := range strings.SplitSeq(s, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid plane index %q", field)
		}
		planes = append(planes, i)
	}
	return planes, nil
}

// validateConfig checks what can be checked before the input is read.
func validateConfig(config *cliConfig) error {
	if config.radius < ctmf.MinRadius || config.radius > ctmf.MaxRadius {
		return fmt.Errorf("radius must be between %d and %d", ctmf.MinRadius, ctmf.MaxRadius)
	}
	if config.memSize < 1 {
		return fmt.Errorf("memsize must be positive")
	}
	if _, err := encoderFor(config.output); err != nil {
		return err
	}
	return nil
}

// params converts the command line to filter parameters.
func (c *cliConfig) params() frame.Params {
	return frame.Params{
		Radius:  c.radius,
		MemSize: c.memSize,
		Planes:  c.planes,
	}
}

// run reads the input, filters it and writes the output.
func run(ctx context.Context, config *cliConfig) error {
	img, err := readImage(config.input)
	if err != nil {
		return err
	}

	src, err := frame.FromImage(img)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"function": "run",
		"input":    config.input,
		"format":   src.Format.Name,
		"width":    src.Width(),
		"height":   src.Height(),
	}).Info("Read input image")

	m, err := frame.NewMedian(src.Format, config.params())
	if err != nil {
		return err
	}
	defer m.Close()

	dst, err := m.Process(ctx, src)
	if err != nil {
		return err
	}

	out, err := dst.Image()
	if err != nil {
		return err
	}
	if err := writeImage(config.output, out); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function": "run",
		"output":   config.output,
	}).Info("Wrote output image")
	return nil
}

func main() {
	config, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err == nil {
		err = validateConfig(config)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctmf: %v\n", err)
		os.Exit(1)
	}
	logrus.SetLevel(config.logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, config)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctmf: %v\n", err)
		os.Exit(1)
	}
}
