// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

const (
	// limiterAttackMs and limiterReleaseMs shape the envelope follower.
	// Fast attack clamps transients; the longer release avoids pumping.
	limiterAttackMs  = 1.0
	limiterReleaseMs = 10.0

	// limiterRatio is the hard-knee compression ratio above the ceiling.
	limiterRatio = 20.0

	// LimiterHeadroom scales the normalization target down to the limiter
	// ceiling, leaving a small margin below full scale (0.98 = -0.17dBFS).
	LimiterHeadroom = 0.98
)

// Limit applies a hard-knee peak limiter in place. Gain reduction is
// computed from a channel-linked envelope so stereo imaging is
// preserved, and a final clamp at the ceiling catches transients that
// land inside the attack window.
func Limit(b *Buffer, ceiling float32) {
	if b == nil || b.NumChannels() == 0 || ceiling <= 0 {
		return
	}

	frames := b.Frames()
	if frames == 0 {
		return
	}

	attack := envelopeCoef(limiterAttackMs, b.Rate)
	release := envelopeCoef(limiterReleaseMs, b.Rate)

	var env float32
	for f := range frames {
		// Channel-linked peak for this frame
		var peak float32
		for _, ch := range b.Data {
			s := ch[f]
			if s < 0 {
				s = -s
			}
			if s > peak {
				peak = s
			}
		}

		if peak > env {
			env = attack*env + (1-attack)*peak
		} else {
			env = release*env + (1-release)*peak
		}

		gain := float32(1.0)
		if env > ceiling {
			// Hard knee: level above the ceiling is reduced by the ratio
			want := ceiling + (env-ceiling)/limiterRatio
			gain = want / env
		}

		for _, ch := range b.Data {
			s := ch[f] * gain
			if s > ceiling {
				s = ceiling
			} else if s < -ceiling {
				s = -ceiling
			}
			ch[f] = s
		}
	}
}

// envelopeCoef converts a time constant in milliseconds to a one-pole
// smoothing coefficient at the given sample rate.
func envelopeCoef(ms float64, rate int) float32 {
	if rate <= 0 {
		rate = fallbackRate
	}
	samples := ms / 1000.0 * float64(rate)
	if samples < 1 {
		samples = 1
	}
	return float32(math.Exp(-1.0 / samples))
}
