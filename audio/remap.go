// SPDX-License-Identifier: EPL-2.0

package audio

// Remap converts a buffer to targetChannels.
//
// Downmix to mono sums the source channels rather than averaging them,
// preserving the combined energy of dual-mono material; the limiter
// stage catches any overflow this introduces. Mono fans out by
// duplication. Other shapes map overlapping channel indexes directly,
// leaving extra output channels silent.
//
// The source buffer is never modified. When the channel count already
// matches, the source is returned unchanged.
func Remap(src *Buffer, targetChannels int) (*Buffer, error) {
	if src == nil || src.NumChannels() == 0 {
		return nil, ErrEmptyBuffer
	}
	if targetChannels <= 0 {
		return nil, ErrInvalidChannelCount
	}

	channels := src.NumChannels()
	if channels == targetChannels {
		return src, nil
	}

	frames := src.Frames()
	out := NewBuffer(targetChannels, frames, src.Rate)

	switch {
	case targetChannels == 1:
		dst := out.Data[0]
		// Unrolled for the common shapes
		switch channels {
		case 2:
			left, right := src.Data[0], src.Data[1]
			for f := range frames {
				dst[f] = left[f] + right[f]
			}
		case 4:
			a, b, c, d := src.Data[0], src.Data[1], src.Data[2], src.Data[3]
			for f := range frames {
				dst[f] = a[f] + b[f] + c[f] + d[f]
			}
		default:
			for _, ch := range src.Data {
				for f := range frames {
					dst[f] += ch[f]
				}
			}
		}

	case channels == 1:
		mono := src.Data[0]
		for c := range targetChannels {
			copy(out.Data[c], mono)
		}

	default:
		n := channels
		if targetChannels < n {
			n = targetChannels
		}
		for c := range n {
			copy(out.Data[c], src.Data[c])
		}
	}

	return out, nil
}
