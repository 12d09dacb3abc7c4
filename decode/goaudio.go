// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// bufferSource serves an already-loaded integer buffer as a Source.
// The go-audio decoders read whole files up front; streaming happens
// over the loaded data.
type bufferSource struct {
	data       []int
	pos        int
	sampleRate int
	channels   int
	scale      float32
}

func newBufferSource(data []int, rate, channels, bitDepth int) *bufferSource {
	if bitDepth <= 0 || bitDepth > 32 {
		bitDepth = 16
	}
	return &bufferSource{
		data:       data,
		sampleRate: rate,
		channels:   channels,
		scale:      float32(int64(1) << (bitDepth - 1)),
	}
}

func (s *bufferSource) SampleRate() int { return s.sampleRate }
func (s *bufferSource) Channels() int   { return s.channels }
func (s *bufferSource) Close() error    { return nil }
func (s *bufferSource) BufSize() int    { return defaultBufSize }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}

	n := len(s.data) - s.pos
	if n > len(dst) {
		n = len(dst)
	}
	for i := range n {
		dst[i] = float32(s.data[s.pos+i]) / s.scale
	}
	s.pos += n

	if s.pos >= len(s.data) {
		return n, io.EOF
	}
	return n, nil
}

// FromIntBuffer serves a go-audio IntBuffer as a Source, scaling the
// integer samples by bitDepth. Depths outside 1..32 fall back to 16.
func FromIntBuffer(buf *gaudio.IntBuffer, bitDepth int) Source {
	return newBufferSource(buf.Data, buf.Format.SampleRate, buf.Format.NumChannels, bitDepth)
}

// WAVDecoder adapts go-audio/wav to the Source interface. Its job is
// the second opinion: an independent read of a container the native
// parser already handled.
type WAVDecoder struct{}

func (WAVDecoder) Decode(r io.Reader) (Source, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(rs)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading wav: %w", err)
	}

	return FromIntBuffer(buf, int(dec.BitDepth)), nil
}

// AIFFDecoder adapts go-audio/aiff to the Source interface.
type AIFFDecoder struct{}

func (AIFFDecoder) Decode(r io.Reader) (Source, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading aiff: %w", err)
	}

	return FromIntBuffer(buf, int(dec.SampleBitDepth())), nil
}

// readSeeker adapts r for the go-audio decoders, which need to seek.
func readSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
