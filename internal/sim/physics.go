package sim

import (
	"flight-env/internal/geometry/geo"
	"flight-env/internal/geometry/vector"
	"flight-env/internal/mathx"
)

const (
	// TimeStepSeconds is the simulated time covered by one step.
	TimeStepSeconds = 1.0

	MaxAltitudeM   = 20000.0
	MaxVelocityMps = 500.0

	// FuelPerKm is the fuel burned per kilometer flown.
	FuelPerKm = 0.1
)

// Advance applies one action to s and returns the new state and the fuel
// burned. The action is clipped first. Heading, speed and altitude are
// updated before the aircraft moves, so the displacement uses the new
// heading and speed; fuel burn follows the distance flown.
func Advance(s State, a Action) (State, float64) {
	a = a.Clip()

	s.Step++
	s.HeadingDeg = mathx.Mod360(s.HeadingDeg + a.HeadingDeltaDeg)
	s.VelocityMps = mathx.Clamp(s.VelocityMps*(1+a.ThrottleDelta), 0, MaxVelocityMps)
	s.AltitudeM = mathx.Clamp(s.AltitudeM+a.AltitudeDeltaM, 0, MaxAltitudeM)

	dist := s.VelocityMps * TimeStepSeconds // meters
	s.Position = geo.Displace(s.Position, vector.FromHeading(dist, s.HeadingDeg))

	fuelUsed := FuelPerKm * (dist / 1000)
	s.FuelUnits = max(0, s.FuelUnits-fuelUsed)

	return s, fuelUsed
}
