// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"

	"github.com/ik5/samplekit/audio"
)

// SineBuffer fills a Buffer with a sine wave, identical on every channel.
func SineBuffer(sampleRate, channels, frames int, frequency float64) *audio.Buffer {
	buf := audio.NewBuffer(channels, frames, sampleRate)
	for f := range frames {
		t := float64(f) / float64(sampleRate)
		s := float32(math.Sin(2 * math.Pi * frequency * t))
		for ch := range channels {
			buf.Data[ch][f] = s
		}
	}
	return buf
}

// ConstantBuffer fills a Buffer with the same value everywhere.
func ConstantBuffer(sampleRate, channels, frames int, value float32) *audio.Buffer {
	buf := audio.NewBuffer(channels, frames, sampleRate)
	for ch := range channels {
		for f := range frames {
			buf.Data[ch][f] = value
		}
	}
	return buf
}

// RampBuffer fills a Buffer with frame/frames on every channel, a
// monotonic ramp from 0 toward 1. Useful for spotting off-by-one slicing.
func RampBuffer(sampleRate, channels, frames int) *audio.Buffer {
	buf := audio.NewBuffer(channels, frames, sampleRate)
	for f := range frames {
		s := float32(f) / float32(frames)
		for ch := range channels {
			buf.Data[ch][f] = s
		}
	}
	return buf
}
