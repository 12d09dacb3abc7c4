// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates a Catmull-Rom spline through four adjacent
// samples at fractional position x between y1 and y2 (0 <= x <= 1).
// x == 0 yields y1 and x == 1 yields y2, so on-grid positions reproduce
// the input exactly.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	c1 := y2 - y0
	c2 := 2*y0 - 5*y1 + 4*y2 - y3
	c3 := 3*(y1-y2) + y3 - y0

	return y1 + 0.5*x*(c1+x*(c2+x*c3))
}
