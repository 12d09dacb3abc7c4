// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM building blocks of the sample engine.
//
// This package contains the types and transforms everything else builds on:
//   - Buffer for decoded per-channel PCM
//   - Metadata and Warning for parse results
//   - DecodePCM for raw byte to float32 conversion
//   - NormalizeRate for repairing corrupt sample rates
//   - Convert and the individual pipeline stages
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Unlike interleaved layouts, a Buffer keeps one slice per channel:
//
//	buf := audio.NewBuffer(2, 44100, 44100) // stereo, 1 second
//	left := buf.Data[0]
//	right := buf.Data[1]
//
// This normalized format makes it easy to process audio without worrying
// about bit depths and ensures no clipping during intermediate processing.
//
// # Decoding Raw PCM
//
// DecodePCM converts raw sample bytes from a container's data chunk:
//
//	layout := audio.PCMLayout{Channels: 2, BitDepth: 16, LittleEndian: true}
//	buf, err := audio.DecodePCM(raw, layout, 44100)
//
// Integer depths of 8, 16, 24 and 32 bits are supported in both byte
// orders, along with 32/64-bit IEEE float and G.711 mu-law/A-law.
//
// # The Conversion Pipeline
//
// Convert chains the processing stages in a fixed order:
//
//	opts := audio.DefaultOptions()
//	opts.TargetRate = 44100
//	opts.TargetChannels = 1
//	opts.Normalize = true
//	out, err := audio.Convert(buf, opts)
//
// Stage order: trim at loop end, resample, channel remap, gain and
// normalization, limiter. Each stage is also available on its own
// (Resample, Remap, Gain, Limit, TrimAtLoop) for callers that need just
// one transform.
//
// # Downmix Behavior
//
// Remap sums channels when downmixing to mono instead of averaging.
// Summing keeps dual-mono material at full level; genuinely hot stereo
// content is caught by the limiter stage rather than pre-attenuated.
//
// # Sample Rate Repair
//
// Sample rates decoded from damaged headers (AIFF stores them as 80-bit
// extended floats, which corrupt in characteristic ways) pass through
// NormalizeRate:
//
//	rate, corrected := audio.NormalizeRate(rawRate)
//	if corrected {
//	    // emit WarnInvalidSampleRate
//	}
//
// # Warnings
//
// Parsers accumulate non-fatal conditions as Warning values on their
// results instead of failing. A truncated marker table or an unknown
// compression tag degrades extraction; it does not abort it.
package audio
