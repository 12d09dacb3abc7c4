// SPDX-License-Identifier: EPL-2.0

package audio

// loopTrimPad is the number of frames kept past the loop end when
// trimming, so loop crossfades still have material to read.
const loopTrimPad = 5

// Options controls the conversion pipeline. Zero values mean "keep the
// source as-is" for every stage, so Options{} is a pass-through.
type Options struct {
	// TargetRate resamples to the given rate in Hz. 0 keeps the source rate.
	TargetRate int

	// TargetChannels remaps the channel layout. 0 keeps the source layout.
	TargetChannels int

	// GainDB applies a fixed gain in decibels.
	GainDB float64

	// Normalize scales the peak to TargetLevelDB (0 dB = full scale).
	Normalize     bool
	TargetLevelDB float64

	// CutAtLoopEnd trims the audio shortly after LoopEndFrame. Material
	// past the sustain loop never plays, so exports drop it.
	CutAtLoopEnd bool
	LoopEndFrame int

	// ApplyLimiter runs a peak limiter as the final stage.
	ApplyLimiter bool
}

// DefaultOptions returns the options used for sample exports: no format
// changes, limiter engaged.
func DefaultOptions() Options {
	return Options{ApplyLimiter: true}
}

// Convert runs the conversion pipeline over src and returns the result.
// Stage order is fixed: trim, resample, channel remap, gain and
// normalization, limiter. The source buffer is never modified.
func Convert(src *Buffer, opts Options) (*Buffer, error) {
	if src == nil || src.NumChannels() == 0 {
		return nil, ErrEmptyBuffer
	}

	out := src

	if opts.CutAtLoopEnd {
		out = TrimAtLoop(out, opts.LoopEndFrame)
	}

	if opts.TargetRate > 0 && opts.TargetRate != out.Rate {
		resampled, err := Resample(out, opts.TargetRate)
		if err != nil {
			return nil, err
		}
		out = resampled
	}

	if opts.TargetChannels > 0 && opts.TargetChannels != out.NumChannels() {
		remapped, err := Remap(out, opts.TargetChannels)
		if err != nil {
			return nil, err
		}
		out = remapped
	}

	// Fixed gain and normalization gain compose into one pass.
	gain := float32(1.0)
	if opts.GainDB != 0 {
		gain = DBToLinear(opts.GainDB)
	}

	target := float32(1.0)
	if opts.Normalize {
		target = DBToLinear(opts.TargetLevelDB)
		gain *= NormalizeGain(out, target)
	}

	// Earlier stages may have passed src through untouched; clone before
	// the in-place stages so the caller's buffer survives.
	if (gain != 1.0 || opts.ApplyLimiter) && out == src {
		out = src.Clone()
	}

	Gain(out, gain)

	if opts.ApplyLimiter {
		Limit(out, target*LimiterHeadroom)
	}

	return out, nil
}

// TrimAtLoop cuts the buffer a few frames past loopEnd. Out-of-range
// loop bounds make the trim a no-op rather than an error; a sample with
// a broken loop still converts whole.
func TrimAtLoop(src *Buffer, loopEnd int) *Buffer {
	frames := src.Frames()
	if loopEnd <= 0 || loopEnd >= frames {
		return src
	}

	keep := loopEnd + 1 + loopTrimPad
	if keep >= frames {
		return src
	}

	out := &Buffer{
		Data: make([][]float32, len(src.Data)),
		Rate: src.Rate,
	}
	for c := range src.Data {
		out.Data[c] = make([]float32, keep)
		copy(out.Data[c], src.Data[c][:keep])
	}
	return out
}
