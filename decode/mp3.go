// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Reader is the slice of gomp3.Decoder the source needs, separated
// so tests can substitute it.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// mp3Source converts the 16-bit little-endian PCM bytes go-mp3 emits
// into normalized float32 samples.
type mp3Source struct {
	stream  mp3Reader
	rate    int
	chans   int
	scratch []byte
}

func (s *mp3Source) SampleRate() int { return s.rate }
func (s *mp3Source) Channels() int   { return s.chans }
func (s *mp3Source) Close() error    { return nil }
func (s *mp3Source) BufSize() int    { return cap(s.scratch) / 2 } // sample capacity, not bytes

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	// Two bytes per sample
	need := len(dst) * 2
	if cap(s.scratch) < need {
		s.scratch = make([]byte, need)
	}
	s.scratch = s.scratch[:need]

	n, err := s.stream.Read(s.scratch)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	samples := n / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.scratch[2*i:]))
		dst[i] = float32(v) / 32768.0
	}

	return samples, err
}

// MP3Decoder adapts hajimehoshi/go-mp3 to the Source interface.
type MP3Decoder struct{}

func (MP3Decoder) Decode(r io.Reader) (Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// go-mp3 always emits stereo
	return &mp3Source{
		stream:  dec,
		rate:    dec.SampleRate(),
		chans:   2,
		scratch: make([]byte, 8192),
	}, nil
}
