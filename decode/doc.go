// SPDX-License-Identifier: EPL-2.0

// Package decode turns compressed or container audio into PCM buffers.
//
// The native chunk parsers in formats/aiff and formats/wav handle the
// two formats this module understands structurally. Everything else,
// MP3 and Ogg Vorbis, goes through a Decoder here, and the WAV and
// AIFF decoders double as independent cross-checks built on go-audio
// rather than the native parsers.
//
// A Decoder opens a stream and returns a Source, a pull-based reader
// of interleaved float32 samples. Collect drains a Source into an
// audio.Buffer, and Service ties format keys to decoders:
//
//	svc := decode.NewService()
//	buf, err := svc.Decode(ctx, data, audio.FormatMP3)
//
// Custom decoders register on a Registry and wrap into a service with
// NewServiceWith.
package decode
