// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/samplekit/audio"
)

// defaultBufSize is used when a source does not suggest a read size.
const defaultBufSize = 4096

// Collect drains src into a per-channel buffer. The source's declared
// rate goes through the same validation container rates do.
// Cancellation is checked between read chunks, so a long decode stops
// at chunk granularity.
func Collect(ctx context.Context, src Source) (*audio.Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", audio.ErrInvalidChannelCount, channels)
	}

	size := src.BufSize()
	if size <= 0 {
		size = defaultBufSize
	}
	chunk := make([]float32, size)

	var all []float32
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := src.ReadSamples(chunk)
		if n > 0 {
			all = append(all, chunk[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			break
		}
	}

	rate, _ := audio.NormalizeRate(float64(src.SampleRate()))

	// A trailing partial frame is dropped
	return audio.Deinterleave(all, channels, rate), nil
}
