// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// SampleCodec identifies how raw sample bytes are encoded.
type SampleCodec int

const (
	// CodecPCM is linear signed integer PCM.
	CodecPCM SampleCodec = iota
	// CodecFloat is IEEE 754 float PCM (32 or 64 bit).
	CodecFloat
	// CodecULaw is G.711 mu-law companded 8-bit audio.
	CodecULaw
	// CodecALaw is G.711 A-law companded 8-bit audio.
	CodecALaw
)

// PCMLayout describes the wire layout of raw sample data.
type PCMLayout struct {
	Channels     int
	BitDepth     int
	LittleEndian bool
	// Unsigned8 marks 8-bit samples stored with a +128 offset, the WAV
	// convention. AIFF stores 8-bit samples signed.
	Unsigned8 bool
	Codec     SampleCodec
}

// BytesPerFrame returns the serialized size of one frame, or 0 when the
// layout is degenerate.
func (l PCMLayout) BytesPerFrame() int {
	if l.Channels <= 0 || l.BitDepth <= 0 {
		return 0
	}
	return l.Channels * (l.BitDepth / 8)
}

// DecodePCM converts raw interleaved sample bytes into a per-channel
// Buffer of float32 samples normalized to [-1.0, 1.0].
//
// Integer samples divide by the magnitude of their most negative value
// (128, 32768, 8388608, 2147483648), so full-scale negative input maps
// exactly to -1.0. A trailing partial frame is ignored.
func DecodePCM(raw []byte, layout PCMLayout, rate int) (*Buffer, error) {
	if layout.Channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidChannelCount, layout.Channels)
	}

	decode, bytesPerSample, err := sampleDecoder(layout)
	if err != nil {
		return nil, err
	}

	bytesPerFrame := bytesPerSample * layout.Channels
	frames := len(raw) / bytesPerFrame

	buf := NewBuffer(layout.Channels, frames, rate)
	for f := range frames {
		base := f * bytesPerFrame
		for c := range layout.Channels {
			buf.Data[c][f] = decode(raw[base+c*bytesPerSample:])
		}
	}
	return buf, nil
}

// sampleDecoder selects the per-sample conversion for a layout.
// The returned function reads bytesPerSample bytes from the front of its
// argument; DecodePCM guarantees that many bytes are present.
func sampleDecoder(layout PCMLayout) (func([]byte) float32, int, error) {
	switch layout.Codec {
	case CodecULaw:
		return func(b []byte) float32 {
			return float32(ULawDecode(b[0])) / 32768.0
		}, 1, nil

	case CodecALaw:
		return func(b []byte) float32 {
			return float32(ALawDecode(b[0])) / 32768.0
		}, 1, nil

	case CodecFloat:
		switch layout.BitDepth {
		case 32:
			return func(b []byte) float32 {
				return clampSample(math.Float32frombits(read32(b, layout.LittleEndian)))
			}, 4, nil
		case 64:
			return func(b []byte) float32 {
				bits := read64(b, layout.LittleEndian)
				return clampSample(float32(math.Float64frombits(bits)))
			}, 8, nil
		}
		return nil, 0, fmt.Errorf("%w: %d-bit float", ErrUnsupportedBitDepth, layout.BitDepth)

	case CodecPCM:
		switch layout.BitDepth {
		case 8:
			if layout.Unsigned8 {
				return func(b []byte) float32 {
					return float32(int(b[0])-128) / 128.0
				}, 1, nil
			}
			return func(b []byte) float32 {
				return float32(int8(b[0])) / 128.0
			}, 1, nil
		case 16:
			return func(b []byte) float32 {
				return float32(int16(read16(b, layout.LittleEndian))) / 32768.0
			}, 2, nil
		case 24:
			return func(b []byte) float32 {
				return float32(read24(b, layout.LittleEndian)) / 8388608.0
			}, 3, nil
		case 32:
			return func(b []byte) float32 {
				return float32(int32(read32(b, layout.LittleEndian))) / 2147483648.0
			}, 4, nil
		}
		return nil, 0, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedBitDepth, layout.BitDepth)
	}

	return nil, 0, fmt.Errorf("%w: codec %d", ErrUnsupportedBitDepth, layout.Codec)
}

func read16(b []byte, le bool) uint16 {
	if le {
		return uint16(b[0]) | uint16(b[1])<<8
	}
	return uint16(b[0])<<8 | uint16(b[1])
}

// read24 assembles a sign-extended 24-bit sample.
func read24(b []byte, le bool) int32 {
	var v uint32
	if le {
		v = uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	} else {
		v = uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	}
	if v&0x800000 != 0 {
		v |= 0xFF000000
	}
	return int32(v)
}

func read32(b []byte, le bool) uint32 {
	if le {
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func read64(b []byte, le bool) uint64 {
	if le {
		return uint64(read32(b, true)) | uint64(read32(b[4:], true))<<32
	}
	return uint64(read32(b, false))<<32 | uint64(read32(b[4:], false))
}

func clampSample(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
