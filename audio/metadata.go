// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Format identifies an audio container or codec family.
type Format string

// Known formats. FormatUnknown is the zero value.
const (
	FormatWAV     Format = "wav"
	FormatAIFF    Format = "aiff"
	FormatAIFC    Format = "aifc"
	FormatMP3     Format = "mp3"
	FormatOGG     Format = "ogg"
	FormatFLAC    Format = "flac"
	FormatUnknown Format = ""
)

// String names the format for display. The unknown format prints as
// "unknown" rather than an empty string.
func (f Format) String() string {
	if f == FormatUnknown {
		return "unknown"
	}
	return string(f)
}

// Native reports whether the format is parsed by this module directly.
// Non-native formats are delegated to an external decode service.
func (f Format) Native() bool {
	switch f {
	case FormatWAV, FormatAIFF, FormatAIFC:
		return true
	}
	return false
}

// WarningCode classifies a non-fatal parsing condition.
type WarningCode string

// Warning codes. These conditions degrade extraction but never abort it.
const (
	WarnTruncatedChunk     WarningCode = "truncated-chunk"
	WarnUnknownCompression WarningCode = "unknown-compression"
	WarnInvalidSampleRate  WarningCode = "invalid-sample-rate"
	WarnAmbiguousOffsets   WarningCode = "ambiguous-offsets"
	WarnInvalidLoopBounds  WarningCode = "invalid-loop-bounds"
	WarnLossyCodec         WarningCode = "lossy-codec"
	WarnDecodeMismatch     WarningCode = "decode-mismatch"
)

// Warning records a non-fatal condition encountered while parsing.
// Warnings ride on the result value; callers decide whether to surface them.
type Warning struct {
	Code   WarningCode
	Detail string
}

func (w Warning) String() string {
	if w.Detail == "" {
		return string(w.Code)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Detail)
}

// RootNoteUnset marks a Metadata with no root note information.
const RootNoteUnset = -1

// Metadata describes a parsed audio file: container facts, sampler
// metadata (root note and sustain loop), and optionally the decoded PCM.
type Metadata struct {
	Format     Format
	SampleRate int
	BitDepth   int
	Channels   int
	Frames     int
	FileSize   int

	// RootNote is the MIDI note the sample is pitched at, or RootNoteUnset.
	RootNote int

	// LoopStart and LoopEnd are frame indexes, always in range even when
	// HasLoop is false (they then cover the whole sample).
	LoopStart int
	LoopEnd   int
	HasLoop   bool

	PCM      *Buffer
	Warnings []Warning
}

// NewMetadata returns a Metadata with sampler fields at their unset values.
func NewMetadata(format Format) *Metadata {
	return &Metadata{
		Format:   format,
		RootNote: RootNoteUnset,
	}
}

// Duration returns the audio length in seconds.
func (m *Metadata) Duration() float64 {
	if m.SampleRate <= 0 {
		return 0
	}
	return float64(m.Frames) / float64(m.SampleRate)
}

// SetLoop records a sustain loop, clamping both bounds into [0, Frames-1].
// A loop that collapses to zero length after clamping is rejected and the
// metadata keeps its whole-sample default.
func (m *Metadata) SetLoop(start, end int) bool {
	last := m.Frames - 1
	if last < 0 {
		last = 0
	}
	clamped := false
	if start < 0 {
		start = 0
		clamped = true
	}
	if end > last {
		end = last
		clamped = true
	}
	if start >= end {
		m.ResetLoop()
		m.Warn(WarnInvalidLoopBounds, fmt.Sprintf("loop %d..%d rejected", start, end))
		return false
	}
	if clamped {
		m.Warn(WarnInvalidLoopBounds, fmt.Sprintf("loop clamped to %d..%d", start, end))
	}
	m.LoopStart = start
	m.LoopEnd = end
	m.HasLoop = true
	return true
}

// ResetLoop clears loop state back to the whole-sample default.
func (m *Metadata) ResetLoop() {
	m.LoopStart = 0
	m.LoopEnd = m.Frames - 1
	if m.LoopEnd < 0 {
		m.LoopEnd = 0
	}
	m.HasLoop = false
}

// Warn appends a non-fatal condition to the metadata.
func (m *Metadata) Warn(code WarningCode, detail string) {
	m.Warnings = append(m.Warnings, Warning{Code: code, Detail: detail})
}
