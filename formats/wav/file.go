// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/samplekit/audio"
	"github.com/ik5/samplekit/internal/bin"
)

// fmtPayloadSize is the canonical PCM fmt chunk payload.
const fmtPayloadSize = 16

// smpl chunk layout: 36 fixed bytes, then 24 bytes per loop descriptor.
const (
	smplFixedSize = 36
	smplLoopSize  = 24
)

// Fmt holds the fmt chunk, the PCM layout declaration.
type Fmt struct {
	FormatTag  int
	Channels   int
	SampleRate int
	ByteRate   int
	BlockAlign int
	BitDepth   int
}

// Sampler holds the smpl chunk fields this module reads: the MIDI unity
// note and the first sample loop.
type Sampler struct {
	UnityNote int
	LoopStart int
	LoopEnd   int
	HasLoop   bool
}

// File is a parsed WAV container.
type File struct {
	Format  Fmt
	Sampler *Sampler

	// DataLen is the declared data chunk size. SampleData can be shorter
	// when the file was cut off; duration math uses the declared size.
	DataLen    int
	SampleData []byte

	Warnings []audio.Warning
}

// Parse decodes a WAV file from memory.
//
// Fatal conditions: no RIFF/WAVE header, no fmt chunk, or a fmt chunk
// declaring a non-PCM format tag. A truncated data chunk or a damaged
// smpl chunk degrades with a warning instead.
func Parse(data []byte) (*File, error) {
	cur := bin.NewCursor(data)

	magic, err := cur.FourCC()
	if err != nil || magic != "RIFF" {
		return nil, ErrNotWavFile
	}
	if err := cur.Skip(4); err != nil { // declared RIFF size, not trusted
		return nil, ErrNotWavFile
	}
	wave, err := cur.FourCC()
	if err != nil || wave != "WAVE" {
		return nil, ErrNotWavFile
	}

	f := &File{}
	sawFmt := false

	for cur.Remaining() >= 8 {
		id, err := cur.FourCC()
		if err != nil {
			break
		}
		declared, err := cur.U32LE()
		if err != nil {
			break
		}

		size := int(declared)
		take := size
		truncated := false
		if avail := cur.Remaining(); take > avail {
			take = avail
			truncated = true
		}
		body, _ := cur.Bytes(take)

		if truncated {
			f.warn(audio.WarnTruncatedChunk, fmt.Sprintf("%s declares %d bytes, %d available", id, size, take))
		}

		switch id {
		case "fmt ":
			format, err := parseFmt(body)
			if err != nil {
				return nil, err
			}
			f.Format = format
			sawFmt = true

		case "data":
			f.DataLen = size
			f.SampleData = body

		case "smpl":
			f.Sampler = parseSampler(body)
			if f.Sampler == nil {
				f.warn(audio.WarnTruncatedChunk, fmt.Sprintf("smpl chunk has %d bytes, need %d", len(body), smplFixedSize))
			}
		}

		// Chunks are padded to even sizes
		if !truncated && size%2 != 0 && cur.Remaining() > 0 {
			_ = cur.Skip(1)
		}
	}

	if !sawFmt {
		return nil, ErrNoFormatChunk
	}

	return f, nil
}

func parseFmt(body []byte) (Fmt, error) {
	if len(body) < fmtPayloadSize {
		return Fmt{}, fmt.Errorf("%w: %d bytes", ErrFormatTooShort, len(body))
	}

	cur := bin.NewCursor(body)
	tag, _ := cur.U16LE()
	channels, _ := cur.U16LE()
	rate, _ := cur.U32LE()
	byteRate, _ := cur.U32LE()
	blockAlign, _ := cur.U16LE()
	bitDepth, _ := cur.U16LE()

	if tag != 1 {
		return Fmt{}, fmt.Errorf("%w: %d", ErrUnsupportedFormatTag, tag)
	}

	return Fmt{
		FormatTag:  int(tag),
		Channels:   int(channels),
		SampleRate: int(rate),
		ByteRate:   int(byteRate),
		BlockAlign: int(blockAlign),
		BitDepth:   int(bitDepth),
	}, nil
}

// parseSampler decodes an smpl chunk body. Bodies below the fixed size
// yield nil. A chunk that claims loops but cannot hold one keeps the
// unity note and drops the loop.
func parseSampler(body []byte) *Sampler {
	if len(body) < smplFixedSize {
		return nil
	}

	cur := bin.NewCursor(body)
	_ = cur.Skip(12) // manufacturer, product, sample period
	unity, _ := cur.U32LE()
	_ = cur.Skip(12) // pitch fraction, SMPTE format, SMPTE offset
	numLoops, _ := cur.U32LE()
	_ = cur.Skip(4) // sampler data size

	s := &Sampler{UnityNote: int(unity)}
	if numLoops == 0 || cur.Remaining() < smplLoopSize {
		return s
	}

	_ = cur.Skip(8) // cue point ID, loop type
	start, _ := cur.U32LE()
	end, _ := cur.U32LE()
	s.LoopStart = int(start)
	s.LoopEnd = int(end)
	s.HasLoop = true
	return s
}

// BytesPerFrame returns the serialized size of one frame, or 0 for a
// degenerate fmt chunk.
func (f *File) BytesPerFrame() int {
	if f.Format.Channels <= 0 || f.Format.BitDepth <= 0 {
		return 0
	}
	return f.Format.Channels * (f.Format.BitDepth / 8)
}

// Metadata assembles the container facts and sampler metadata. The frame
// count comes from the declared data size, not from decoded samples, so
// a truncated file still reports its intended duration.
func (f *File) Metadata() *audio.Metadata {
	meta := audio.NewMetadata(audio.FormatWAV)
	meta.Warnings = append(meta.Warnings, f.Warnings...)

	rate, corrected := audio.NormalizeRate(float64(f.Format.SampleRate))
	if corrected {
		meta.Warn(audio.WarnInvalidSampleRate, fmt.Sprintf("rate %d normalized to %d", f.Format.SampleRate, rate))
	}

	meta.SampleRate = rate
	meta.BitDepth = f.Format.BitDepth
	meta.Channels = f.Format.Channels
	if bpf := f.BytesPerFrame(); bpf > 0 {
		meta.Frames = f.DataLen / bpf
	}
	meta.ResetLoop()

	if f.Sampler != nil {
		note := f.Sampler.UnityNote
		if note > 127 {
			note = 127
		}
		meta.RootNote = note

		if f.Sampler.HasLoop {
			meta.SetLoop(f.Sampler.LoopStart, f.Sampler.LoopEnd)
		}
	}

	return meta
}

// PCM decodes the data chunk into a normalized per-channel buffer.
// WAV stores 8-bit samples unsigned and everything else signed
// little-endian.
func (f *File) PCM() (*audio.Buffer, error) {
	if f.SampleData == nil {
		return nil, ErrNoDataChunk
	}

	meta := f.Metadata()
	layout := audio.PCMLayout{
		Channels:     f.Format.Channels,
		BitDepth:     f.Format.BitDepth,
		LittleEndian: true,
		Unsigned8:    f.Format.BitDepth == 8,
	}

	buf, err := audio.DecodePCM(f.SampleData, layout, meta.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("decoding data chunk: %w", err)
	}
	return buf, nil
}

func (f *File) warn(code audio.WarningCode, detail string) {
	f.Warnings = append(f.Warnings, audio.Warning{Code: code, Detail: detail})
}
