// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource streams deterministic interleaved samples for collector and
// decoder tests. It satisfies the decode.Source contract without importing
// the decode package, which would be a cycle.
type MockSource struct {
	rate     int
	channels int
	frames   int
	pos      int
	gen      func(frame, channel int) float32
}

// NewMockSource builds a source of totalSamples frames per channel. Each
// value is produced by waveform(frameIndex, channel).
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		rate:     sampleRate,
		channels: channels,
		frames:   totalSamples,
		gen:      waveform,
	}
}

// NewSilentSource builds an all-zero source.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return 0
	})
}

// NewSineSource builds a source carrying the same sine wave on every
// channel.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource builds a source where every sample equals value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.rate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// ReadSamples emits whole frames only and reports io.EOF alongside the
// final chunk, the way the real decoders do.
func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	frames := len(dst) / m.channels
	if left := m.frames - m.pos; frames > left {
		frames = left
	}

	i := 0
	for f := 0; f < frames; f++ {
		for ch := 0; ch < m.channels; ch++ {
			dst[i] = m.gen(m.pos+f, ch)
			i++
		}
	}
	m.pos += frames

	if m.pos >= m.frames {
		return i, io.EOF
	}
	return i, nil
}
