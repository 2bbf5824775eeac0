package agent

import (
	"flight-env/internal/geometry/geo"
	"flight-env/internal/mathx"
	"flight-env/internal/sim"
)

// Homing flies the great-circle bearing to the target at CruiseMps,
// holding sim.CruiseAltitudeM, and slows on approach so its turn circle
// fits inside the arrival radius.
type Homing struct {
	CruiseMps   float64
	ApproachMps float64
}

func NewHoming() Homing {
	return Homing{CruiseMps: 250, ApproachMps: 60}
}

func (h Homing) Act(obs sim.Observation) sim.Action {
	pos, target := obs.Position(), obs.Target()

	// Signed turn in (-180, 180].
	turn := mathx.Mod360(geo.InitialBearingDeg(pos, target) - obs[sim.ObsHeading])
	if turn > 180 {
		turn -= 360
	}

	distKm := geo.HaversineKm(pos, target)
	speed := mathx.Clamp(distKm*50, h.ApproachMps, h.CruiseMps)
	throttle := 0.0
	if v := obs[sim.ObsVelocity]; v > 0 {
		throttle = speed/v - 1
	}

	return sim.Action{
		HeadingDeltaDeg: turn,
		ThrottleDelta:   throttle,
		AltitudeDeltaM:  sim.CruiseAltitudeM - obs[sim.ObsAltitude],
	}.Clip()
}
