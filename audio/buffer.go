// SPDX-License-Identifier: EPL-2.0

package audio

// Buffer holds decoded PCM as one float32 slice per channel.
// Samples are normalized to [-1.0, 1.0]; all channel slices have equal length.
type Buffer struct {
	Data [][]float32
	Rate int
}

// NewBuffer allocates a silent buffer with the given shape.
func NewBuffer(channels, frames, rate int) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}
	return &Buffer{Data: data, Rate: rate}
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	if b == nil {
		return 0
	}
	return len(b.Data)
}

// Frames returns the number of sample frames per channel.
func (b *Buffer) Frames() int {
	if b == nil || len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b == nil || b.Rate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.Rate)
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	out := &Buffer{
		Data: make([][]float32, len(b.Data)),
		Rate: b.Rate,
	}
	for c := range b.Data {
		out.Data[c] = make([]float32, len(b.Data[c]))
		copy(out.Data[c], b.Data[c])
	}
	return out
}

// Peak returns the largest absolute sample value across all channels.
// An empty or silent buffer reports 0.
func (b *Buffer) Peak() float32 {
	if b == nil {
		return 0
	}
	var peak float32
	for _, ch := range b.Data {
		for _, s := range ch {
			if s < 0 {
				s = -s
			}
			if s > peak {
				peak = s
			}
		}
	}
	return peak
}

// Interleave flattens the buffer to interleaved frame order
// (L0, R0, L1, R1, ...), the layout PCM writers consume.
func (b *Buffer) Interleave() []float32 {
	channels := b.NumChannels()
	frames := b.Frames()
	out := make([]float32, frames*channels)
	for f := range frames {
		for c := range channels {
			out[f*channels+c] = b.Data[c][f]
		}
	}
	return out
}

// Deinterleave builds a Buffer from interleaved samples.
// A trailing partial frame is dropped.
func Deinterleave(samples []float32, channels, rate int) *Buffer {
	if channels <= 0 {
		channels = 1
	}
	frames := len(samples) / channels
	b := NewBuffer(channels, frames, rate)
	for f := range frames {
		for c := range channels {
			b.Data[c][f] = samples[f*channels+c]
		}
	}
	return b
}
