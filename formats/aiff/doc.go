// SPDX-License-Identifier: EPL-2.0

// Package aiff parses and writes AIFF and AIFC audio files at the chunk
// level.
//
// Unlike a general-purpose decoder, this package keeps every chunk of
// the container available after parsing. Sampler instruments store their
// playback metadata (root note, sustain loops, per-key sample tables) in
// MARK, INST and APPL chunks, and that metadata is the point of this
// module; the audio samples are only part of the story.
//
// # Parsing
//
// Parse works on a complete file held in memory:
//
//	f, err := aiff.Parse(data)
//	if err != nil {
//	    // Handle error
//	}
//
//	meta := f.Metadata() // rate, depth, root note, loop bounds
//	pcm, err := f.PCM()  // decoded samples
//
// Only two conditions abort a parse: a missing FORM/AIFF header
// (ErrNotAiffFile) and a missing or undersized COMM chunk
// (ErrNoCommonChunk, ErrCommonTooShort). Files in the wild are often
// damaged in less fundamental ways: chunk sizes that run past the end
// of the file, marker tables cut off mid-record, sample rates scribbled
// over by buggy editors. Those degrade into audio.Warning values on the
// parsed File and as much of the file as possible is still extracted.
//
// # AIFC Compression
//
// AIFC files extend the COMM chunk with a compression tag. Supported
// tags:
//   - "NONE", "twos": big-endian PCM (the AIFF default)
//   - "sowt": little-endian PCM, common on old Mac software
//   - "fl32", "FL32", "fl64", "FL64": IEEE float samples
//   - "ulaw", "ULAW", "alaw", "ALAW": G.711 telephony codecs
//
// Anything else leaves the sample bytes unparsed and records an
// unknown-compression warning.
//
// # Sample Rate Encoding
//
// AIFF stores the sample rate as an 80-bit IEEE 754 extended float,
// a format no modern CPU speaks natively. DecodeExtended and
// EncodeExtended convert between the 10-byte wire form and float64.
// Decoded rates then pass through audio.NormalizeRate, which repairs
// the corrupted values (0, negative, 7 MHz) that real sampler libraries
// contain.
//
// # Loops and Markers
//
// The INST chunk does not store loop positions. It stores marker IDs,
// and the MARK chunk maps IDs to frame positions:
//
//	INST sustain loop: begin=ID 1, end=ID 2
//	MARK: ID 1 -> frame 24000, ID 2 -> frame 47999
//
// Metadata resolves the references. A loop counts as present when at
// least one side resolves; a missing side defaults to the matching edge
// of the sample.
//
// # Writing
//
// Encode produces a big-endian PCM AIFF at 16 or 24 bits:
//
//	data, err := aiff.Encode(buf, 16, aiff.EncodeOptions{
//	    RootNote:  60,
//	    LoopStart: 24000,
//	    LoopEnd:   47999,
//	})
//
// Loop and root metadata become a MARK/INST pair that Parse reads back
// exactly.
package aiff
