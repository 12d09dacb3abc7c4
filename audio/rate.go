// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// Standard sample rates recognized by NormalizeRate, in Hz.
var standardRates = [...]int{
	8000, 11025, 16000, 22050, 44100, 48000, 88200, 96000, 176400, 192000,
}

const (
	// rateTolerance is the relative distance within which a raw rate
	// snaps to a standard rate.
	rateTolerance = 0.05

	minRate      = 8000
	maxRate      = 192000
	fallbackRate = 44100
)

// NormalizeRate maps a raw sample rate, possibly decoded from corrupt
// header bytes, to a usable rate in Hz. The corrected result reports
// whether the raw value had to be changed.
//
// Resolution order:
//  1. Snap to the nearest standard rate within 5% relative tolerance.
//  2. Known corruption bands seen in damaged extended-float headers:
//     70000..80000 maps to 48000, 40000..50000 maps to 44100.
//  3. Any other value inside [8000, 192000] is accepted as-is.
//  4. Everything else falls back to 44100.
func NormalizeRate(raw float64) (int, bool) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return fallbackRate, true
	}

	rounded := int(math.Round(raw))

	for _, std := range standardRates {
		if math.Abs(raw-float64(std)) <= rateTolerance*float64(std) {
			return std, rounded != std
		}
	}

	// Mangled 80-bit floats land in these bands far more often than any
	// real recording does.
	switch {
	case raw >= 70000 && raw <= 80000:
		return 48000, true
	case raw >= 40000 && raw <= 50000:
		return fallbackRate, true
	}

	if raw >= minRate && raw <= maxRate {
		return rounded, false
	}

	return fallbackRate, true
}
