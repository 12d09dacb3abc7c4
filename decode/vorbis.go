package decode

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the slice of oggvorbis.Reader the source needs,
// separated so tests can substitute it.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type vorbisSource struct {
	stream  oggReader
	rate    int
	chans   int
	bufSize int
}

func (s *vorbisSource) SampleRate() int { return s.rate }
func (s *vorbisSource) Channels() int   { return s.chans }
func (s *vorbisSource) Close() error    { return nil }
func (s *vorbisSource) BufSize() int    { return s.bufSize }

func (s *vorbisSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// oggvorbis already delivers interleaved float32 values and only
	// returns whole frames, so the read passes straight through
	n, err := s.stream.Read(dst)
	if n == 0 && err != nil {
		return 0, err
	}
	return n, err
}

// VorbisDecoder adapts jfreymuth/oggvorbis to the Source interface.
type VorbisDecoder struct{}

func (VorbisDecoder) Decode(r io.Reader) (Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &vorbisSource{
		stream:  dec,
		rate:    dec.SampleRate(),
		chans:   dec.Channels(),
		bufSize: 4096,
	}, nil
}
