package sim

import (
	"fmt"
	"math"

	"flight-env/internal/env"
	"flight-env/internal/geometry/geo"

	"github.com/brunoga/deep"
)

// Defaults applied by DefaultConfig and by the scenario loader when a
// field is absent.
const (
	DefaultMaxSteps         = 1000
	DefaultStartAltitudeM   = 1000.0
	DefaultStartHeadingDeg  = 90.0
	DefaultStartVelocityMps = 100.0
	DefaultStartFuelUnits   = 10000.0
)

var (
	DefaultStart  = geo.LatLon{Lat: 51.5074, Lon: -0.1278}  // London
	DefaultTarget = geo.LatLon{Lat: 40.7128, Lon: -74.0060} // New York
)

// Config is fixed for the lifetime of an episode; Reset may replace it
// wholesale.
type Config struct {
	Start    geo.LatLon `msgpack:"start"`
	Target   geo.LatLon `msgpack:"target"`
	Storms   env.Storms `msgpack:"storms"`
	MaxSteps int        `msgpack:"max_steps"`

	StartAltitudeM   float64 `msgpack:"start_altitude"`
	StartHeadingDeg  float64 `msgpack:"start_heading"`
	StartVelocityMps float64 `msgpack:"start_velocity"`
	StartFuelUnits   float64 `msgpack:"start_fuel"`
}

func DefaultConfig() Config {
	return Config{
		Start:            DefaultStart,
		Target:           DefaultTarget,
		MaxSteps:         DefaultMaxSteps,
		StartAltitudeM:   DefaultStartAltitudeM,
		StartHeadingDeg:  DefaultStartHeadingDeg,
		StartVelocityMps: DefaultStartVelocityMps,
		StartFuelUnits:   DefaultStartFuelUnits,
	}
}

// Validate reports the first problem with c, wrapping ErrConfiguration.
// A finite storm radius may be zero or negative; such a storm never
// contains the aircraft.
func (c Config) Validate() error {
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps %d: must be positive: %w", c.MaxSteps, ErrConfiguration)
	}

	for _, f := range []struct {
		name string
		v    float64
	}{
		{"start latitude", c.Start.Lat},
		{"start longitude", c.Start.Lon},
		{"target latitude", c.Target.Lat},
		{"target longitude", c.Target.Lon},
		{"start_altitude", c.StartAltitudeM},
		{"start_heading", c.StartHeadingDeg},
		{"start_velocity", c.StartVelocityMps},
		{"start_fuel", c.StartFuelUnits},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s: %v is not a finite number: %w", f.name, f.v, ErrConfiguration)
		}
	}
	for i, s := range c.Storms {
		for _, v := range []float64{s.Center.Lat, s.Center.Lon, s.RadiusKm} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("storm %d: %v is not a finite number: %w", i, v, ErrConfiguration)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of c that shares no storage with it.
func (c Config) Clone() Config {
	return deep.MustCopy(c)
}
