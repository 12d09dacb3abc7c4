// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/samplekit/audio"
	"github.com/ik5/samplekit/utils"
)

// Marker IDs written for the sustain loop pair. Parse resolves the INST
// loop references back through these.
const (
	loopBeginID = 1
	loopEndID   = 2
)

// markBodySize is the MARK payload written for a loop: a marker count
// plus two records of id(2) + position(4) + even-length Pascal name(4).
const markBodySize = 2 + 2*10

// defaultBaseNote is written when a loop forces an INST chunk but no
// root note was given. Middle C keeps samplers from transposing.
const defaultBaseNote = 60

// EncodeOptions carries the sampler metadata to embed when writing.
// The zero value writes a plain AIFF with no MARK or INST chunks.
type EncodeOptions struct {
	// RootNote is the MIDI note the recording is pitched at.
	// Zero or negative means unset.
	RootNote int

	// LoopStart and LoopEnd are sustain loop frame indexes. The loop is
	// written only when LoopEnd > LoopStart.
	LoopStart int
	LoopEnd   int
}

// Encode serializes buf as an AIFF file with big-endian PCM at 16 or 24
// bits. Sampler metadata from opts becomes a MARK marker pair plus an
// INST chunk, laid out exactly the way Parse reads them back.
func Encode(buf *audio.Buffer, bitDepth int, opts EncodeOptions) ([]byte, error) {
	if buf == nil || buf.NumChannels() == 0 || buf.Frames() == 0 {
		return nil, audio.ErrEmptyBuffer
	}
	if bitDepth != 16 && bitDepth != 24 {
		return nil, fmt.Errorf("%w: %d-bit AIFF output", audio.ErrUnsupportedBitDepth, bitDepth)
	}

	channels := buf.NumChannels()
	frames := buf.Frames()
	bytesPerSample := bitDepth / 8
	dataSize := frames * channels * bytesPerSample
	pad := dataSize % 2

	loopStart, loopEnd := opts.LoopStart, opts.LoopEnd
	if loopEnd > frames-1 {
		loopEnd = frames - 1
	}
	hasLoop := loopStart >= 0 && loopEnd > loopStart
	hasRoot := opts.RootNote > 0 && opts.RootNote <= 127
	writeInst := hasLoop || hasRoot

	// FORM header(12) + COMM + SSND header(8) + offset/block(8) + samples
	size := 12 + 8 + commSizeAIFF + 8 + 8 + dataSize + pad
	if hasLoop {
		size += 8 + markBodySize
	}
	if writeInst {
		size += 8 + instSize
	}

	out := make([]byte, 0, size)

	// The declared FORM size excludes the id and size fields themselves
	out = append(out, "FORM"...)
	out = binary.BigEndian.AppendUint32(out, uint32(size-8))
	out = append(out, "AIFF"...)

	out = appendCommon(out, channels, frames, bitDepth, float64(buf.Rate))
	if hasLoop {
		out = appendLoopMarkers(out, loopStart, loopEnd)
	}
	if writeInst {
		out = appendInstrument(out, opts.RootNote, hasLoop)
	}
	out = appendSoundData(out, buf, bitDepth, dataSize)
	if pad != 0 {
		out = append(out, 0)
	}

	return out, nil
}

func appendCommon(out []byte, channels, frames, bitDepth int, rate float64) []byte {
	out = append(out, chunkCommon...)
	out = binary.BigEndian.AppendUint32(out, commSizeAIFF)
	out = binary.BigEndian.AppendUint16(out, uint16(channels))
	out = binary.BigEndian.AppendUint32(out, uint32(frames))
	out = binary.BigEndian.AppendUint16(out, uint16(bitDepth))

	ext := EncodeExtended(rate)
	return append(out, ext[:]...)
}

func appendLoopMarkers(out []byte, start, end int) []byte {
	out = append(out, chunkMarkers...)
	out = binary.BigEndian.AppendUint32(out, markBodySize)
	out = binary.BigEndian.AppendUint16(out, 2) // marker count

	out = binary.BigEndian.AppendUint16(out, loopBeginID)
	out = binary.BigEndian.AppendUint32(out, uint32(start))
	out = append(out, 3, 'b', 'e', 'g') // Pascal name, even total

	out = binary.BigEndian.AppendUint16(out, loopEndID)
	out = binary.BigEndian.AppendUint32(out, uint32(end))
	out = append(out, 3, 'e', 'n', 'd')

	return out
}

func appendInstrument(out []byte, rootNote int, hasLoop bool) []byte {
	base := rootNote
	if base <= 0 || base > 127 {
		base = defaultBaseNote
	}

	out = append(out, chunkInstrument...)
	out = binary.BigEndian.AppendUint32(out, instSize)
	out = append(out,
		byte(base), // baseNote
		0,          // detune
		0,          // lowNote
		127,        // highNote
		1,          // lowVelocity
		127,        // highVelocity
	)
	out = binary.BigEndian.AppendUint16(out, 0) // gain dB

	if hasLoop {
		out = binary.BigEndian.AppendUint16(out, LoopForward)
		out = binary.BigEndian.AppendUint16(out, loopBeginID)
		out = binary.BigEndian.AppendUint16(out, loopEndID)
	} else {
		out = binary.BigEndian.AppendUint16(out, LoopNone)
		out = binary.BigEndian.AppendUint16(out, 0)
		out = binary.BigEndian.AppendUint16(out, 0)
	}

	// No release loop
	out = binary.BigEndian.AppendUint16(out, LoopNone)
	out = binary.BigEndian.AppendUint16(out, 0)
	out = binary.BigEndian.AppendUint16(out, 0)

	return out
}

func appendSoundData(out []byte, buf *audio.Buffer, bitDepth, dataSize int) []byte {
	out = append(out, chunkSoundData...)
	out = binary.BigEndian.AppendUint32(out, uint32(dataSize+8))
	out = binary.BigEndian.AppendUint32(out, 0) // offset
	out = binary.BigEndian.AppendUint32(out, 0) // blockSize

	for f := range buf.Frames() {
		for _, ch := range buf.Data {
			switch bitDepth {
			case 16:
				out = binary.BigEndian.AppendUint16(out, uint16(utils.Float32ToInt16(ch[f])))
			case 24:
				v := utils.Float32ToInt24(ch[f])
				out = append(out, byte(v>>16), byte(v>>8), byte(v))
			}
		}
	}

	return out
}
