// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"log/slog"

	"github.com/ik5/samplekit/audio"
	"github.com/ik5/samplekit/internal/bin"
)

// File is a parsed AIFF or AIFC container. Chunk payloads are decoded
// where the package understands them and kept raw where it does not, so
// higher layers (the OP-1 preset extractor in particular) can run their
// own extraction over APPL and vendor chunks.
type File struct {
	FormType string // "AIFF" or "AIFC"
	Common   Common

	Markers    []Marker
	Instrument *Instrument

	// SoundData is the SSND payload with its offset/block header removed:
	// the raw interleaved sample bytes.
	SoundData []byte

	// AppChunks holds APPL chunk bodies in file order.
	AppChunks [][]byte

	// Extra holds chunks the parser does not interpret, in file order.
	Extra []Chunk

	Warnings []audio.Warning
}

// Parse decodes an AIFF/AIFC file from memory.
//
// Only two conditions are fatal: a missing or invalid FORM header and a
// missing or undersized COMM chunk. Everything else (truncated chunks,
// unknown compression, broken marker tables) degrades with a warning on
// the returned File.
func Parse(data []byte) (*File, error) {
	walker, formType, err := NewWalker(data)
	if err != nil {
		return nil, err
	}

	f := &File{FormType: formType}
	aifc := formType == "AIFC"
	sawCommon := false

	for {
		chunk, ok := walker.Next()
		if !ok {
			break
		}

		if chunk.Truncated {
			slog.Debug("chunk extends past end of file", "id", chunk.ID, "declared", chunk.Size, "available", len(chunk.Body))
			f.warn(audio.WarnTruncatedChunk, fmt.Sprintf("%s declares %d bytes, %d available", chunk.ID, chunk.Size, len(chunk.Body)))
		}

		switch chunk.ID {
		case chunkCommon:
			common, err := parseCommon(chunk, aifc, f.warn)
			if err != nil {
				return nil, err
			}
			f.Common = common
			sawCommon = true

		case chunkMarkers:
			markers, truncated := parseMarkers(chunk.Body)
			f.Markers = markers
			if truncated {
				f.warn(audio.WarnTruncatedChunk, fmt.Sprintf("marker table cut off after %d markers", len(markers)))
			}

		case chunkInstrument:
			f.Instrument = parseInstrument(chunk.Body)
			if f.Instrument == nil {
				f.warn(audio.WarnTruncatedChunk, fmt.Sprintf("INST chunk has %d bytes, need %d", len(chunk.Body), instSize))
			}

		case chunkSoundData:
			f.SoundData = soundPayload(chunk.Body)

		case chunkAppData:
			f.AppChunks = append(f.AppChunks, chunk.Body)

		default:
			f.Extra = append(f.Extra, chunk)
		}
	}

	if !sawCommon {
		return nil, ErrNoCommonChunk
	}

	return f, nil
}

// soundPayload strips the 8-byte offset/blockSize header from an SSND
// body. The offset field shifts the start of the sample data; block
// alignment is ignored, as writers that use it are not seen in practice.
func soundPayload(body []byte) []byte {
	cur := bin.NewCursor(body)
	offset, err := cur.U32BE()
	if err != nil {
		return nil
	}
	if err := cur.Skip(4); err != nil { // blockSize
		return nil
	}
	if err := cur.Skip(int(offset)); err != nil {
		// Offset past the payload; take whatever follows the header
		rest, _ := cur.Bytes(cur.Remaining())
		return rest
	}
	rest, _ := cur.Bytes(cur.Remaining())
	return rest
}

// BytesPerFrame returns the serialized size of one frame of sound data.
func (f *File) BytesPerFrame() int {
	bits := f.Common.BitDepth
	if f.Common.Codec == audio.CodecULaw || f.Common.Codec == audio.CodecALaw {
		bits = 8
	}
	bytesPerSample := (bits + 7) / 8
	if bytesPerSample < 1 {
		bytesPerSample = 1
	}
	return bytesPerSample * f.Common.Channels
}

// Metadata assembles the container facts and sampler metadata.
// PCM is not decoded here; call PCM separately when samples are needed.
func (f *File) Metadata() *audio.Metadata {
	format := audio.FormatAIFF
	if f.FormType == "AIFC" {
		format = audio.FormatAIFC
	}

	meta := audio.NewMetadata(format)
	meta.Warnings = append(meta.Warnings, f.Warnings...)

	rate, corrected := audio.NormalizeRate(f.Common.SampleRate)
	if corrected {
		meta.Warn(audio.WarnInvalidSampleRate, fmt.Sprintf("rate %.1f normalized to %d", f.Common.SampleRate, rate))
	}

	meta.SampleRate = rate
	meta.BitDepth = f.Common.BitDepth
	meta.Channels = f.Common.Channels
	meta.Frames = f.Common.Frames
	meta.ResetLoop()

	if f.Instrument != nil {
		meta.RootNote = f.Instrument.RootNote()

		begin, haveBegin := findMarker(f.Markers, f.Instrument.SustainLoop.BeginID)
		end, haveEnd := findMarker(f.Markers, f.Instrument.SustainLoop.EndID)

		// A loop needs at least one resolvable side; the missing side
		// defaults to the corresponding edge of the sample
		if haveBegin || haveEnd {
			start := 0
			stop := meta.Frames - 1
			if haveBegin {
				start = int(begin)
			}
			if haveEnd {
				stop = int(end)
			}
			meta.SetLoop(start, stop)
		}
	}

	return meta
}

// PCM decodes the sound data into a normalized per-channel buffer using
// the layout the COMM chunk declared.
func (f *File) PCM() (*audio.Buffer, error) {
	if f.SoundData == nil {
		return nil, ErrNoSoundData
	}

	meta := f.Metadata()
	layout := audio.PCMLayout{
		Channels:     f.Common.Channels,
		BitDepth:     f.Common.BitDepth,
		LittleEndian: f.Common.LittleEndian,
		Codec:        f.Common.Codec,
	}

	buf, err := audio.DecodePCM(f.SoundData, layout, meta.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("decoding SSND: %w", err)
	}
	return buf, nil
}

func (f *File) warn(code audio.WarningCode, detail string) {
	f.Warnings = append(f.Warnings, audio.Warning{Code: code, Detail: detail})
}
