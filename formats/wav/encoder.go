// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/samplekit/audio"
	"github.com/ik5/samplekit/utils"
)

// smplPayloadSize is the fixed smpl payload the encoder writes: the 36
// header bytes plus one loop descriptor.
const smplPayloadSize = smplFixedSize + smplLoopSize

// defaultUnityNote is written when loop metadata forces an smpl chunk
// but no root note was given.
const defaultUnityNote = 60

// EncodeOptions carries the sampler metadata to embed when writing.
// The zero value writes a plain WAV with no smpl chunk.
type EncodeOptions struct {
	// RootNote is the MIDI unity note. Zero or negative means unset.
	RootNote int

	// LoopStart and LoopEnd are loop frame indexes. The loop is written
	// only when LoopEnd > LoopStart.
	LoopStart int
	LoopEnd   int
}

// Encode serializes buf as a WAV file with little-endian PCM at 16 or
// 24 bits. Sampler metadata from opts becomes an smpl chunk placed
// before the data chunk, laid out exactly the way Parse reads it back.
func Encode(buf *audio.Buffer, bitDepth int, opts EncodeOptions) ([]byte, error) {
	if buf == nil || buf.NumChannels() == 0 || buf.Frames() == 0 {
		return nil, audio.ErrEmptyBuffer
	}
	if bitDepth != 16 && bitDepth != 24 {
		return nil, fmt.Errorf("%w: %d-bit WAV output", audio.ErrUnsupportedBitDepth, bitDepth)
	}

	channels := buf.NumChannels()
	frames := buf.Frames()
	bytesPerSample := bitDepth / 8
	dataSize := frames * channels * bytesPerSample
	pad := dataSize % 2

	writeSmpl, hasLoop, loopStart, loopEnd := resolveSampler(frames, opts)

	// RIFF header(12) + fmt + data header(8) + samples
	size := 12 + 8 + fmtPayloadSize + 8 + dataSize + pad
	if writeSmpl {
		size += 8 + smplPayloadSize
	}

	out := make([]byte, 0, size)

	// The declared RIFF size excludes the id and size fields themselves
	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(size-8))
	out = append(out, "WAVE"...)

	out = appendFmt(out, channels, buf.Rate, bitDepth)
	if writeSmpl {
		out = appendSampler(out, opts.RootNote, hasLoop, loopStart, loopEnd)
	}
	out = appendData(out, buf, bitDepth, dataSize)
	if pad != 0 {
		out = append(out, 0)
	}

	return out, nil
}

// resolveSampler normalizes sampler options against the frame count:
// the loop end clamps to the last frame and a collapsed loop is
// dropped. writeSmpl reports whether anything is left to serialize.
func resolveSampler(frames int, opts EncodeOptions) (writeSmpl, hasLoop bool, loopStart, loopEnd int) {
	loopStart, loopEnd = opts.LoopStart, opts.LoopEnd
	if loopEnd > frames-1 {
		loopEnd = frames - 1
	}
	hasLoop = loopStart >= 0 && loopEnd > loopStart
	if !hasLoop {
		loopStart, loopEnd = 0, 0
	}
	hasRoot := opts.RootNote > 0 && opts.RootNote <= 127
	return hasLoop || hasRoot, hasLoop, loopStart, loopEnd
}

// EncodedSize returns the exact byte size Encode produces for the same
// arguments, without serializing. Zero for shapes Encode rejects.
func EncodedSize(buf *audio.Buffer, bitDepth int, opts EncodeOptions) int {
	if buf == nil || buf.NumChannels() == 0 || buf.Frames() == 0 {
		return 0
	}
	if bitDepth != 16 && bitDepth != 24 {
		return 0
	}

	dataSize := buf.Frames() * buf.NumChannels() * (bitDepth / 8)
	size := 12 + 8 + fmtPayloadSize + 8 + dataSize + dataSize%2

	if writeSmpl, _, _, _ := resolveSampler(buf.Frames(), opts); writeSmpl {
		size += 8 + smplPayloadSize
	}
	return size
}

func appendFmt(out []byte, channels, rate, bitDepth int) []byte {
	byteRate := rate * channels * (bitDepth / 8)
	blockAlign := channels * (bitDepth / 8)

	out = append(out, "fmt "...)
	out = binary.LittleEndian.AppendUint32(out, fmtPayloadSize)
	out = binary.LittleEndian.AppendUint16(out, 1) // PCM format
	out = binary.LittleEndian.AppendUint16(out, uint16(channels))
	out = binary.LittleEndian.AppendUint32(out, uint32(rate))
	out = binary.LittleEndian.AppendUint32(out, uint32(byteRate))
	out = binary.LittleEndian.AppendUint16(out, uint16(blockAlign))
	out = binary.LittleEndian.AppendUint16(out, uint16(bitDepth))
	return out
}

func appendSampler(out []byte, rootNote int, hasLoop bool, loopStart, loopEnd int) []byte {
	unity := rootNote
	if unity <= 0 || unity > 127 {
		unity = defaultUnityNote
	}

	numLoops := 0
	if hasLoop {
		numLoops = 1
	}

	out = append(out, "smpl"...)
	out = binary.LittleEndian.AppendUint32(out, smplPayloadSize)
	out = binary.LittleEndian.AppendUint32(out, 0) // manufacturer
	out = binary.LittleEndian.AppendUint32(out, 0) // product
	out = binary.LittleEndian.AppendUint32(out, 0) // sample period
	out = binary.LittleEndian.AppendUint32(out, uint32(unity))
	out = binary.LittleEndian.AppendUint32(out, 0) // pitch fraction
	out = binary.LittleEndian.AppendUint32(out, 0) // SMPTE format
	out = binary.LittleEndian.AppendUint32(out, 0) // SMPTE offset
	out = binary.LittleEndian.AppendUint32(out, uint32(numLoops))
	out = binary.LittleEndian.AppendUint32(out, 0) // sampler data size

	// The loop descriptor is written even without a loop so the payload
	// keeps its fixed size
	out = binary.LittleEndian.AppendUint32(out, 0) // cue point ID
	out = binary.LittleEndian.AppendUint32(out, 0) // type: forward
	out = binary.LittleEndian.AppendUint32(out, uint32(loopStart))
	out = binary.LittleEndian.AppendUint32(out, uint32(loopEnd))
	out = binary.LittleEndian.AppendUint32(out, 0) // fraction
	out = binary.LittleEndian.AppendUint32(out, 0) // play count: infinite
	return out
}

func appendData(out []byte, buf *audio.Buffer, bitDepth, dataSize int) []byte {
	out = append(out, "data"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(dataSize))

	for f := range buf.Frames() {
		for _, ch := range buf.Data {
			switch bitDepth {
			case 16:
				out = binary.LittleEndian.AppendUint16(out, uint16(utils.Float32ToInt16(ch[f])))
			case 24:
				v := utils.Float32ToInt24(ch[f])
				out = append(out, byte(v), byte(v>>8), byte(v>>16))
			}
		}
	}

	return out
}
