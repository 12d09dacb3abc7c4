// SPDX-License-Identifier: EPL-2.0

// Package wav parses and writes WAV audio files at the chunk level.
//
// The parser reads the whole container from memory and keeps the pieces
// sampler tooling needs: the fmt layout, the raw data chunk, and the
// smpl extension chunk carrying the MIDI unity note and loop points.
//
// # Parsing
//
//	f, err := wav.Parse(data)
//	if err != nil {
//	    // Handle error
//	}
//
//	meta := f.Metadata() // rate, depth, root note, loop bounds
//	pcm, err := f.PCM()  // decoded samples
//
// Three conditions are fatal: a missing RIFF/WAVE header
// (ErrNotWavFile), a missing or undersized fmt chunk (ErrNoFormatChunk,
// ErrFormatTooShort), and a format tag other than integer PCM
// (ErrUnsupportedFormatTag). Compressed WAV variants are routed to the
// external decode service instead of being parsed here. Truncated data
// and broken smpl chunks degrade into audio.Warning values.
//
// # Supported Sample Layouts
//
//   - 8-bit unsigned, 16/24/32-bit signed little-endian integer PCM
//   - Mono and multichannel, any sample rate
//
// Duration math uses the declared data chunk size rather than the bytes
// actually present, so a cut-off file still reports the length its
// header promised.
//
// # The smpl Chunk
//
// Hardware and software samplers store playback metadata in the smpl
// extension chunk: the MIDI note the recording is pitched at (unity
// note) and loop descriptors. Only the first loop is read; files with
// elaborate loop lists are rare and the first entry is the sustain loop
// by convention.
//
// # Writing
//
// Encode produces a little-endian PCM WAV at 16 or 24 bits:
//
//	data, err := wav.Encode(buf, 16, wav.EncodeOptions{
//	    RootNote:  60,
//	    LoopStart: 100,
//	    LoopEnd:   900,
//	})
//
// Root note or loop metadata adds an smpl chunk before the data chunk.
// Parsing the result reproduces rate, channels, depth, root note and
// loop bounds exactly; samples round-trip within one quantization step.
package wav
