// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"math"
)

// AIFF stores sample rates as 80-bit IEEE 754 extended-precision floats:
// 1 sign bit, 15 exponent bits (bias 16383), and a 64-bit mantissa whose
// integer bit is explicit. Value = sign * mantissa * 2^(exponent-16383-63).

const (
	extendedBias   = 16383
	extendedExpInf = 0x7FFF
	extendedSize   = 10
)

// DecodeExtended converts a 10-byte extended-precision float to float64.
// All-zero exponent and mantissa decode to 0.0; the maximum exponent
// decodes to signed infinity. Shorter input decodes to 0.0.
func DecodeExtended(b []byte) float64 {
	if len(b) < extendedSize {
		return 0
	}

	negative := b[0]&0x80 != 0
	exponent := uint16(b[0]&0x7F)<<8 | uint16(b[1])
	mantissa := binary.BigEndian.Uint64(b[2:10])

	if exponent == 0 && mantissa == 0 {
		return 0
	}
	if exponent == extendedExpInf {
		if negative {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	// The mantissa carries its integer bit at position 63
	value := math.Ldexp(float64(mantissa), int(exponent)-extendedBias-63)
	if negative {
		return -value
	}
	return value
}

// EncodeExtended converts a float64 to the 10-byte extended-precision
// layout. Inverse of DecodeExtended for all finite values a sample rate
// can take.
func EncodeExtended(f float64) [10]byte {
	var out [10]byte

	if f == 0 {
		return out
	}

	if math.IsInf(f, 0) || math.IsNaN(f) {
		if math.Signbit(f) {
			out[0] = 0x80
		}
		out[0] |= extendedExpInf >> 8
		out[1] = extendedExpInf & 0xFF
		return out
	}

	bits := math.Float64bits(f)
	sign := bits >> 63
	exponent := (bits >> 52) & 0x7FF
	fraction := bits & 0xFFFFFFFFFFFFF

	// Rebias from float64 (1023) and make the integer bit explicit
	extExp := exponent - 1023 + extendedBias
	mantissa := uint64(1)<<63 | fraction<<11

	if sign != 0 {
		out[0] = 0x80
	}
	out[0] |= byte(extExp >> 8)
	out[1] = byte(extExp)
	binary.BigEndian.PutUint64(out[2:], mantissa)
	return out
}
