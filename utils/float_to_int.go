package utils

// Both widths scale by the positive maximum, so +1.0 and -1.0 map to
// values of equal magnitude.
const (
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
)

// Float32ToInt16 converts a normalized sample into a signed 16-bit
// value, clamping input outside [-1, 1].
func Float32ToInt16(x float32) int16 {
	return int16(clampUnit(x) * maxInt16)
}

// Float32ToInt24 converts a normalized sample into a signed 24-bit
// value carried in an int32, clamping input outside [-1, 1].
func Float32ToInt24(x float32) int32 {
	return int32(clampUnit(x) * maxInt24)
}

func clampUnit(x float32) float32 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}
