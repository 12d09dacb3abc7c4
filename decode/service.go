// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ik5/samplekit/audio"
)

// Service decodes whole files for the formats the native parsers do
// not cover, and provides second opinions on the ones they do.
type Service interface {
	Decode(ctx context.Context, data []byte, format audio.Format) (*audio.Buffer, error)
}

type service struct {
	registry *Registry
}

// NewService returns the bundled decode service: MP3 and Ogg Vorbis
// through their stream decoders, WAV and AIFF through go-audio for
// independent cross-checks of the native parsers.
func NewService() Service {
	reg := NewRegistry()
	reg.Register(string(audio.FormatMP3), MP3Decoder{})
	reg.Register(string(audio.FormatOGG), VorbisDecoder{})
	reg.Register(string(audio.FormatWAV), WAVDecoder{})
	reg.Register(string(audio.FormatAIFF), AIFFDecoder{})
	reg.Register(string(audio.FormatAIFC), AIFFDecoder{})
	return &service{registry: reg}
}

// NewServiceWith returns a service over a caller-assembled registry,
// for swapping in different decoders.
func NewServiceWith(reg *Registry) Service {
	return &service{registry: reg}
}

func (s *service) Decode(ctx context.Context, data []byte, format audio.Format) (*audio.Buffer, error) {
	dec, ok := s.registry.Get(string(format))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoDecoder, format)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening %s stream: %w", format, err)
	}
	defer src.Close()

	return Collect(ctx, src)
}
