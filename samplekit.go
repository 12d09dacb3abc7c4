// SPDX-License-Identifier: EPL-2.0

package samplekit

import (
	"context"
	"fmt"

	"github.com/ik5/samplekit/audio"
	"github.com/ik5/samplekit/decode"
	"github.com/ik5/samplekit/formats/aiff"
	"github.com/ik5/samplekit/formats/wav"
	"github.com/ik5/samplekit/op1"
)

// Engine is the format engine facade. The zero value handles every
// native format; a decode service extends it to MP3 and Ogg Vorbis and
// enables confirmation decoding.
//
// All methods are pure functions over their inputs; one Engine can
// serve any number of goroutines.
type Engine struct {
	svc     decode.Service
	confirm bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithDecodeService attaches a platform decode service for the formats
// the engine does not parse natively.
func WithDecodeService(svc decode.Service) Option {
	return func(e *Engine) {
		e.svc = svc
	}
}

// WithConfirmDecode makes ParseMetadata cross-check native parses
// against the decode service. A frame-count disagreement becomes a
// warning on the metadata, never an error.
func WithConfirmDecode() Option {
	return func(e *Engine) {
		e.confirm = true
	}
}

// New builds an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ParseMetadata parses an audio file into container facts, sampler
// metadata and decoded PCM. Native formats (WAV, AIFF, AIFC) parse
// in-process; MP3, Ogg Vorbis and FLAC go through the decode service
// and carry container defaults for the fields only a native parse can
// fill.
func (e *Engine) ParseMetadata(ctx context.Context, data []byte, filename string) (*audio.Metadata, error) {
	format := e.DetectFormat(data, filename)

	var meta *audio.Metadata

	switch format {
	case audio.FormatWAV:
		f, err := wav.Parse(data)
		if err != nil {
			return nil, err
		}
		meta = f.Metadata()

		pcm, err := f.PCM()
		if err != nil {
			return nil, err
		}
		meta.PCM = pcm

	case audio.FormatAIFF, audio.FormatAIFC:
		f, err := aiff.Parse(data)
		if err != nil {
			return nil, err
		}
		meta = f.Metadata()

		pcm, err := f.PCM()
		if err != nil {
			return nil, err
		}
		meta.PCM = pcm

	case audio.FormatUnknown:
		return nil, fmt.Errorf("%w: cannot identify %q", ErrUnsupportedFormat, filename)

	default:
		delegated, err := e.delegate(ctx, data, format)
		if err != nil {
			return nil, err
		}
		meta = delegated
	}

	meta.FileSize = len(data)

	if e.confirm && e.svc != nil && format.Native() {
		e.confirmDecode(ctx, data, format, meta)
	}

	return meta, nil
}

// delegate decodes a non-native format through the platform service.
func (e *Engine) delegate(ctx context.Context, data []byte, format audio.Format) (*audio.Metadata, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: %s is not parsed natively", ErrNoDecodeService, format)
	}

	buf, err := e.svc.Decode(ctx, data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}

	meta := audio.NewMetadata(format)
	meta.SampleRate = buf.Rate
	meta.Channels = buf.NumChannels()
	meta.Frames = buf.Frames()
	meta.BitDepth = 16 // decoded depth; lossy codecs declare none
	meta.ResetLoop()
	meta.PCM = buf
	return meta, nil
}

// confirmDecode runs the decode service over a natively parsed file and
// compares frame counts. Disagreement degrades to a warning; the native
// parse stays authoritative.
func (e *Engine) confirmDecode(ctx context.Context, data []byte, format audio.Format, meta *audio.Metadata) {
	confirmed, err := e.svc.Decode(ctx, data, format)
	if err != nil {
		meta.Warn(audio.WarnDecodeMismatch, fmt.Sprintf("confirmation decode failed: %v", err))
		return
	}

	if confirmed.Frames() != meta.Frames {
		meta.Warn(audio.WarnDecodeMismatch,
			fmt.Sprintf("container declares %d frames, decoder produced %d", meta.Frames, confirmed.Frames()))
	}
}

// ParseOP1Preset extracts the drum samples packed in an OP-1 style
// AIFF file.
func (e *Engine) ParseOP1Preset(data []byte, filename string) (*op1.Preset, error) {
	format := e.DetectFormat(data, filename)
	if format != audio.FormatAIFF && format != audio.FormatAIFC {
		return nil, fmt.Errorf("%w: drum presets are AIFF, got %q", ErrUnsupportedFormat, format)
	}
	return op1.ParsePreset(data)
}

// Convert runs the conversion pipeline over a buffer.
func (e *Engine) Convert(src *audio.Buffer, opts audio.Options) (*audio.Buffer, error) {
	return audio.Convert(src, opts)
}

// EncodeWAV serializes a buffer as a 16 or 24-bit PCM WAV file.
func (e *Engine) EncodeWAV(buf *audio.Buffer, bitDepth int, opts wav.EncodeOptions) ([]byte, error) {
	return wav.Encode(buf, bitDepth, opts)
}

// EncodeAIFF serializes a buffer as a 16 or 24-bit PCM AIFF file.
func (e *Engine) EncodeAIFF(buf *audio.Buffer, bitDepth int, opts aiff.EncodeOptions) ([]byte, error) {
	return aiff.Encode(buf, bitDepth, opts)
}

// defaultEngine backs the package-level calls. It has no decode
// service, so it covers the native formats only.
var defaultEngine = New()

// DetectFormat identifies the audio format of data. See Engine.DetectFormat.
func DetectFormat(data []byte, filename string) audio.Format {
	return defaultEngine.DetectFormat(data, filename)
}

// ParseMetadata parses a native-format audio file. See Engine.ParseMetadata.
func ParseMetadata(ctx context.Context, data []byte, filename string) (*audio.Metadata, error) {
	return defaultEngine.ParseMetadata(ctx, data, filename)
}

// ParseOP1Preset extracts drum samples from an OP-1 preset file.
// See Engine.ParseOP1Preset.
func ParseOP1Preset(data []byte, filename string) (*op1.Preset, error) {
	return defaultEngine.ParseOP1Preset(data, filename)
}

// Convert runs the conversion pipeline over a buffer.
func Convert(src *audio.Buffer, opts audio.Options) (*audio.Buffer, error) {
	return audio.Convert(src, opts)
}

// EncodeWAV serializes a buffer as a 16 or 24-bit PCM WAV file.
func EncodeWAV(buf *audio.Buffer, bitDepth int, opts wav.EncodeOptions) ([]byte, error) {
	return wav.Encode(buf, bitDepth, opts)
}

// EncodeAIFF serializes a buffer as a 16 or 24-bit PCM AIFF file.
func EncodeAIFF(buf *audio.Buffer, bitDepth int, opts aiff.EncodeOptions) ([]byte, error) {
	return aiff.Encode(buf, bitDepth, opts)
}
