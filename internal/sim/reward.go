package sim

import (
	"flight-env/internal/env"
	"flight-env/internal/geometry/geo"
	"flight-env/internal/mathx"
)

// Reward shaping constants.
const (
	FuelPenaltyWeight       = 2.0
	StormPenalty            = -200.0
	CruiseAltitudeM         = 10000.0
	AltitudeDeviationWeight = 0.01

	ArrivalRadiusKm  = 1.0
	ArrivalBonus     = 1000.0
	OutOfFuelPenalty = -1000.0
)

// scored is the outcome of evaluating a post-physics state.
type scored struct {
	reward  float64
	diag    Diagnostics
	storm   env.Hit
	inStorm bool
	phase   Phase
}

// score computes the step reward and the next phase for s, which has
// already been advanced. Terms are summed in a fixed order: distance,
// fuel, storm, altitude, then any terminal bonus or penalty.
func score(s State, fuelUsed float64, cfg *Config) scored {
	var r scored

	dist := geo.HaversineKm(s.Position, cfg.Target)
	r.reward = -dist
	r.reward -= fuelUsed * FuelPenaltyWeight

	// At most one storm penalty per step, from the first storm in order.
	stormPenalty := 0.0
	if hit, ok := cfg.Storms.FirstHit(s.Position); ok {
		stormPenalty = StormPenalty
		r.storm, r.inStorm = hit, true
	}
	r.reward += stormPenalty

	altDev := mathx.Abs(s.AltitudeM - CruiseAltitudeM)
	r.reward -= altDev * AltitudeDeviationWeight

	var terminal float64
	r.phase, terminal = nextPhase(s, dist, cfg.MaxSteps)
	r.reward += terminal

	r.diag = Diagnostics{
		DistanceToTargetKm: dist,
		StormPenalty:       stormPenalty,
		FuelUsed:           fuelUsed,
		AltitudeDeviationM: altDev,
	}
	return r
}

// nextPhase evaluates the episode transitions in priority order: arrival,
// fuel exhaustion, then the step budget. It returns the new phase and the
// reward adjustment that goes with it.
func nextPhase(s State, distKm float64, maxSteps int) (Phase, float64) {
	switch {
	case distKm < ArrivalRadiusKm:
		return Succeeded, ArrivalBonus
	case s.FuelUnits <= 0:
		return FailedFuel, OutOfFuelPenalty
	case s.Step >= maxSteps:
		return Truncated, 0
	default:
		return Running, 0
	}
}
