package sim

// Bounds of the action and observation spaces. Policies normalize
// against these, so changing them is a breaking change.
var (
	actionLow  = Action{HeadingDeltaDeg: -10, ThrottleDelta: -0.2, AltitudeDeltaM: -50}
	actionHigh = Action{HeadingDeltaDeg: 10, ThrottleDelta: 0.2, AltitudeDeltaM: 50}

	observationLow  = Observation{-180, -180, 0, 0, 0, 0, -180, -180}
	observationHigh = Observation{180, 180, MaxAltitudeM, 360, MaxVelocityMps, 200000, 180, 180}
)

// ActionBounds returns the per-component limits of an action.
func ActionBounds() (lo, hi Action) { return actionLow, actionHigh }

// ObservationBounds returns the per-component limits of an observation.
func ObservationBounds() (lo, hi Observation) { return observationLow, observationHigh }

// InSpace reports whether every component of a lies within the action
// bounds.
func (a Action) InSpace() bool {
	return a.Clip() == a
}

// InSpace reports whether every component of o lies within the
// observation bounds. The bounds describe the space; the simulation does
// not clamp positions to them.
func (o Observation) InSpace() bool {
	for i, v := range o {
		if !(v >= observationLow[i] && v <= observationHigh[i]) {
			return false
		}
	}
	return true
}
