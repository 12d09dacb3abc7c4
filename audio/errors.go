// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrEmptyBuffer indicates an operation on a nil or zero-channel buffer.
	ErrEmptyBuffer = errors.New("empty audio buffer")

	// ErrUnsupportedBitDepth indicates sample data in a bit depth or codec
	// the PCM decoder does not handle.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

	// ErrInvalidTargetRate indicates a non-positive resample target rate.
	ErrInvalidTargetRate = errors.New("invalid target sample rate")

	// ErrInvalidChannelCount indicates a non-positive channel count.
	ErrInvalidChannelCount = errors.New("invalid channel count")
)
