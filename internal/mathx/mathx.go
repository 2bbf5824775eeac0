// Package mathx holds small numeric helpers shared by the geometry and
// simulation code.
package mathx

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Radians converts an angle expressed in degrees to radians
func Radians(d float64) float64 {
	return d / 180 * math.Pi
}

// Degrees converts an angle expressed in radians to degrees
func Degrees(r float64) float64 {
	return r * 180 / math.Pi
}

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

// Mod360 wraps a heading into [0, 360). Negative inputs wrap upward, so
// -10 becomes 350.
func Mod360(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	// -1e-18 + 360 rounds to 360
	if m >= 360 {
		m = 0
	}
	return m
}

// SafeASin is math.Asin with its argument clamped into [-1, 1].
func SafeASin(a float64) float64 {
	return math.Asin(Clamp(a, -1, 1))
}
