// SPDX-License-Identifier: EPL-2.0

// Package samplekit is a byte-level audio sample format engine: it
// parses and writes AIFF/AIFC and WAV containers, extracts OP-1 style
// drum presets, and runs a conversion pipeline over decoded PCM.
//
// # Supported Formats
//
// Parsed natively, chunk by chunk:
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - AIFF and AIFC (including sowt, fl32/fl64, ulaw/alaw) via formats/aiff
//
// Delegated to a decode service when one is attached:
//   - MP3 via decode (hajimehoshi/go-mp3)
//   - Ogg Vorbis via decode (jfreymuth/oggvorbis)
//
// Written: WAV and AIFF at 16 or 24-bit PCM, with root note and loop
// metadata when present.
//
// # Quick Start
//
// The package-level functions cover the native formats:
//
//	data, _ := os.ReadFile("kick.wav")
//	meta, err := samplekit.ParseMetadata(context.Background(), data, "kick.wav")
//	if err != nil {
//	    // Handle error
//	}
//
//	// meta carries rate, depth, channels, root note, loop bounds and
//	// the decoded PCM as a per-channel float32 buffer
//	fmt.Println(meta.SampleRate, meta.RootNote, meta.PCM.Frames())
//
// # Engine
//
// An Engine extends the same surface with a platform decode service for
// the delegated formats, and can cross-check native parses against an
// independent decoder:
//
//	eng := samplekit.New(
//	    samplekit.WithDecodeService(decode.NewService()),
//	    samplekit.WithConfirmDecode(),
//	)
//	meta, err := eng.ParseMetadata(ctx, mp3Bytes, "loop.mp3")
//
// # Drum Presets
//
// OP-1 style drum presets pack up to 24 samples into one AIFF file.
// ParseOP1Preset recovers them individually:
//
//	preset, err := samplekit.ParseOP1Preset(data, "drums.aif")
//	for _, s := range preset.Samples {
//	    fmt.Println(s.KeyIndex, s.Frames())
//	}
//
// # Conversion
//
// Convert resamples, remaps channels, applies gain or normalization,
// and limits peaks in one pass over a buffer:
//
//	out, err := samplekit.Convert(meta.PCM, audio.Options{
//	    TargetRate:     44100,
//	    TargetChannels: 1,
//	    Normalize:      true,
//	    ApplyLimiter:   true,
//	})
//	wavBytes, err := samplekit.EncodeWAV(out, 16, wav.EncodeOptions{})
//
// # Error Handling
//
// Only malformed headers and unsupported formats abort a parse. Every
// other defect (truncated chunks, unknown compression tags, corrupt
// sample rates, broken loop bounds) degrades: the parser keeps what it
// could read and appends an audio.Warning to the result.
//
// See the individual subpackages for more detailed documentation.
package samplekit
