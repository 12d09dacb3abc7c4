// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"github.com/ik5/samplekit/utils"
)

// filterAlpha is the one-pole low-pass coefficient applied before
// downsampling. Cutoff near the destination Nyquist; a proper FIR would
// do better but this keeps aliasing out of the audible range.
const filterAlpha = 0.5

// Resample converts a buffer to targetRate using Catmull-Rom cubic
// interpolation over a 4-sample window. When downsampling, a one-pole
// low-pass runs over the source first for basic anti-aliasing.
//
// The source buffer is never modified. When no rate change is needed the
// source is returned unchanged.
func Resample(src *Buffer, targetRate int) (*Buffer, error) {
	if src == nil || src.NumChannels() == 0 {
		return nil, ErrEmptyBuffer
	}
	if targetRate <= 0 {
		return nil, ErrInvalidTargetRate
	}
	if src.Rate == targetRate || src.Frames() == 0 {
		return src, nil
	}

	srcFrames := src.Frames()
	ratio := float64(src.Rate) / float64(targetRate)
	outFrames := int(float64(srcFrames)*float64(targetRate)/float64(src.Rate) + 0.5)
	if outFrames < 1 {
		outFrames = 1
	}

	out := NewBuffer(src.NumChannels(), outFrames, targetRate)

	for c, in := range src.Data {
		if ratio > 1.0 {
			in = lowPass(in)
		}

		dst := out.Data[c]
		for i := range outFrames {
			pos := float64(i) * ratio
			idx := int(pos)
			alpha := float32(pos - float64(idx))

			y0 := sampleAt(in, idx-1)
			y1 := sampleAt(in, idx)
			y2 := sampleAt(in, idx+1)
			y3 := sampleAt(in, idx+2)

			dst[i] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
		}
	}

	return out, nil
}

// sampleAt reads a sample, duplicating the edge values so the cubic
// window stays defined at both ends of the channel.
func sampleAt(ch []float32, idx int) float32 {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ch) {
		idx = len(ch) - 1
	}
	return ch[idx]
}

// lowPass applies a one-pole filter y[n] = alpha*x[n] + (1-alpha)*y[n-1]
// to a copy of the channel. State starts at the first sample to avoid a
// warm-up transient.
func lowPass(in []float32) []float32 {
	out := make([]float32, len(in))
	state := in[0]
	for i, x := range in {
		state = filterAlpha*x + (1-filterAlpha)*state
		out[i] = state
	}
	return out
}
