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
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Errors returned by the plane filters. They are always wrapped with
// details; use errors.Is to classify them.
var (
	// ErrInvalidArgument indicates a radius, plane geometry or bit depth
	// the filter cannot work with. It is reported before any output is
	// written.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAllocation indicates that the histogram working memory for a
	// stripe could not be obtained.
	ErrAllocation = errors.New("allocation failure")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

func allocf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrAllocation}, args...)...)
}

// isSliceSizeError reports whether msg is the runtime's complaint about a
// slice too large to allocate.
func isSliceSizeError(msg string) bool {
	return strings.Contains(msg, "slice: len out of range") ||
		strings.Contains(msg, "slice: cap out of range")
}

// catchAllocation converts a failed slice allocation into ErrAllocation.
// It must be deferred directly.
func catchAllocation(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if re, ok := r.(runtime.Error); ok && isSliceSizeError(re.Error()) {
		*err = allocf("%v", re)
		return
	}
	panic(r)
}
