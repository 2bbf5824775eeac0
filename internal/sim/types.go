package sim

import (
	"fmt"

	"flight-env/internal/geometry/geo"
	"flight-env/internal/mathx"

	"github.com/iancoleman/orderedmap"
)

// Phase is the episode state machine's state.
type Phase int

const (
	Running Phase = iota
	Succeeded
	FailedFuel
	Truncated
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "Running"
	case Succeeded:
		return "Succeeded"
	case FailedFuel:
		return "FailedFuel"
	case Truncated:
		return "Truncated"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Terminal reports whether the episode has ended.
func (p Phase) Terminal() bool { return p != Running }

// State is the aircraft and episode state. It is a plain value: Advance
// and the reward step return new States rather than modifying one.
type State struct {
	Step        int
	Position    geo.LatLon
	AltitudeM   float64
	HeadingDeg  float64
	VelocityMps float64
	FuelUnits   float64
	Phase       Phase
}

// InitialState returns the state at the start of an episode flown under
// cfg. Values outside the physical envelope are brought inside it.
func InitialState(cfg Config) State {
	return State{
		Position:    cfg.Start,
		AltitudeM:   mathx.Clamp(cfg.StartAltitudeM, 0, MaxAltitudeM),
		HeadingDeg:  mathx.Mod360(cfg.StartHeadingDeg),
		VelocityMps: mathx.Clamp(cfg.StartVelocityMps, 0, MaxVelocityMps),
		FuelUnits:   max(0, cfg.StartFuelUnits),
		Phase:       Running,
	}
}

// Action is one control input. Each component is clamped to its range
// in ActionBounds before use.
type Action struct {
	HeadingDeltaDeg float64 `msgpack:"dh"`
	ThrottleDelta   float64 `msgpack:"dt"`
	AltitudeDeltaM  float64 `msgpack:"da"`
}

// ActionFromSlice converts an untyped action vector, failing with
// ErrActionShape unless it has exactly three components.
func ActionFromSlice(v []float64) (Action, error) {
	if len(v) != 3 {
		return Action{}, fmt.Errorf("got %d components: %w", len(v), ErrActionShape)
	}
	return Action{HeadingDeltaDeg: v[0], ThrottleDelta: v[1], AltitudeDeltaM: v[2]}, nil
}

func (a Action) Vector() [3]float64 {
	return [3]float64{a.HeadingDeltaDeg, a.ThrottleDelta, a.AltitudeDeltaM}
}

// Clip clamps each component to the action space. NaN components are
// treated as zero.
func (a Action) Clip() Action {
	clip := func(v, lo, hi float64) float64 {
		if v != v {
			return 0
		}
		return mathx.Clamp(v, lo, hi)
	}
	return Action{
		HeadingDeltaDeg: clip(a.HeadingDeltaDeg, actionLow.HeadingDeltaDeg, actionHigh.HeadingDeltaDeg),
		ThrottleDelta:   clip(a.ThrottleDelta, actionLow.ThrottleDelta, actionHigh.ThrottleDelta),
		AltitudeDeltaM:  clip(a.AltitudeDeltaM, actionLow.AltitudeDeltaM, actionHigh.AltitudeDeltaM),
	}
}

// Observation indices.
const (
	ObsLatitude = iota
	ObsLongitude
	ObsAltitude
	ObsHeading
	ObsVelocity
	ObsFuel
	ObsTargetLatitude
	ObsTargetLongitude
	ObservationSize
)

// Observation is the state vector exposed to the controlling policy.
type Observation [ObservationSize]float64

func observe(s State, cfg *Config) Observation {
	return Observation{
		ObsLatitude:        s.Position.Lat,
		ObsLongitude:       s.Position.Lon,
		ObsAltitude:        s.AltitudeM,
		ObsHeading:         s.HeadingDeg,
		ObsVelocity:        s.VelocityMps,
		ObsFuel:            s.FuelUnits,
		ObsTargetLatitude:  cfg.Target.Lat,
		ObsTargetLongitude: cfg.Target.Lon,
	}
}

func (o Observation) Position() geo.LatLon {
	return geo.LatLon{Lat: o[ObsLatitude], Lon: o[ObsLongitude]}
}

func (o Observation) Target() geo.LatLon {
	return geo.LatLon{Lat: o[ObsTargetLatitude], Lon: o[ObsTargetLongitude]}
}

// Diagnostics are the per-step reward terms reported alongside a step.
type Diagnostics struct {
	DistanceToTargetKm float64 `msgpack:"dist_km"`
	StormPenalty       float64 `msgpack:"storm"`
	FuelUsed           float64 `msgpack:"fuel_used"`
	AltitudeDeviationM float64 `msgpack:"alt_dev"`
}

// Map returns the diagnostics keyed by their wire names, in a fixed
// order.
func (d Diagnostics) Map() *orderedmap.OrderedMap {
	m := orderedmap.New()
	m.Set("distance_to_target_km", d.DistanceToTargetKm)
	m.Set("storm_penalty", d.StormPenalty)
	m.Set("fuel_used_this_step", d.FuelUsed)
	m.Set("altitude_deviation_m", d.AltitudeDeviationM)
	return m
}

type StepResult struct {
	Observation Observation `msgpack:"obs"`
	Reward      float64     `msgpack:"reward"`
	Terminated  bool        `msgpack:"terminated"`
	Truncated   bool        `msgpack:"truncated"`
	Phase       Phase       `msgpack:"phase"`
	Diagnostics Diagnostics `msgpack:"diag"`
}
