// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// DBToLinear converts a decibel value to a linear gain factor.
func DBToLinear(db float64) float32 {
	return float32(math.Pow(10, db/20))
}

// Gain scales all samples in place by factor.
func Gain(b *Buffer, factor float32) {
	if b == nil || factor == 1 {
		return
	}
	for _, ch := range b.Data {
		for i := range ch {
			ch[i] *= factor
		}
	}
}

// NormalizeGain returns the gain factor that brings the buffer's peak to
// targetLinear. A silent buffer reports 1.0 so callers never divide by
// zero or blow up noise floors.
func NormalizeGain(b *Buffer, targetLinear float32) float32 {
	peak := b.Peak()
	if peak == 0 {
		return 1.0
	}
	return targetLinear / peak
}
