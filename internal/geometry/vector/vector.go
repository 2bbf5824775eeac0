// Package vector provides 2D displacement vectors in a local
// East-North tangent plane.
package vector

import (
	"math"

	"flight-env/internal/mathx"
)

// Vec2 is a displacement in meters with East=x and North=y.
type Vec2 struct{ East, North float64 }

// FromHeading returns the displacement of length dist (meters) along the
// given heading, measured in degrees clockwise from north.
func FromHeading(dist, headingDeg float64) Vec2 {
	rad := mathx.Radians(headingDeg)
	return Vec2{
		East:  dist * math.Sin(rad),
		North: dist * math.Cos(rad),
	}
}
