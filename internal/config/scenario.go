// Package config reads simulation scenarios from JSON or YAML documents
// and maps them onto sim.Config.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"flight-env/internal/env"
	"flight-env/internal/geometry/geo"
	"flight-env/internal/sim"

	"gopkg.in/yaml.v3"
)

// DefaultStormRadiusKm is used for storms that do not give a radius.
const DefaultStormRadiusKm = 1.0

// Scenario is the document form of a simulation configuration. Absent
// fields take the sim package defaults. Points are [latitude, longitude].
type Scenario struct {
	Start         []float64   `json:"start,omitempty" yaml:"start,omitempty"`
	Target        []float64   `json:"target,omitempty" yaml:"target,omitempty"`
	StormsData    []StormData `json:"storms_data,omitempty" yaml:"storms_data,omitempty"`
	MaxSteps      *int        `json:"max_steps,omitempty" yaml:"max_steps,omitempty"`
	StartAltitude *float64    `json:"start_altitude,omitempty" yaml:"start_altitude,omitempty"`
	StartHeading  *float64    `json:"start_heading,omitempty" yaml:"start_heading,omitempty"`
	StartVelocity *float64    `json:"start_velocity,omitempty" yaml:"start_velocity,omitempty"`
	StartFuel     *float64    `json:"start_fuel,omitempty" yaml:"start_fuel,omitempty"`
}

type StormData struct {
	Center []float64 `json:"center,omitempty" yaml:"center,omitempty"`
	Radius *float64  `json:"radius,omitempty" yaml:"radius,omitempty"` // km
}

type Format int

const (
	JSON Format = iota
	YAML
)

// FormatForPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Load reads the scenario at path and returns its configuration.
func Load(path string) (sim.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sim.Config{}, err
	}
	cfg, err := Parse(data, FormatForPath(path))
	if err != nil {
		return sim.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a scenario document. Unknown keys are errors, since
// they are usually misspellings of real ones.
func Parse(data []byte, format Format) (sim.Config, error) {
	var sc Scenario
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
			return sim.Config{}, fmt.Errorf("%w: %w", sim.ErrConfiguration, err)
		}
	default:
		if err := decodeJSON(data, &sc); err != nil {
			return sim.Config{}, fmt.Errorf("%w: %w", sim.ErrConfiguration, err)
		}
	}
	return sc.Config()
}

// FromMap converts a generic key/value representation, as produced by
// decoding arbitrary JSON, into a configuration.
func FromMap(m map[string]any) (sim.Config, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return sim.Config{}, fmt.Errorf("%w: %w", sim.ErrConfiguration, err)
	}
	return Parse(data, JSON)
}

// Config validates the scenario and returns the configuration it
// describes. Every problem found is reported.
func (sc Scenario) Config() (sim.Config, error) {
	cfg := sim.DefaultConfig()
	var e errorList

	point := func(name string, v []float64, p *geo.LatLon) {
		if v == nil {
			return
		}
		e.push(name)
		defer e.pop()
		if len(v) != 2 {
			e.errorf("expected [latitude, longitude], got %d values", len(v))
			return
		}
		*p = geo.LatLon{Lat: v[0], Lon: v[1]}
	}
	point("start", sc.Start, &cfg.Start)
	point("target", sc.Target, &cfg.Target)

	for i, sd := range sc.StormsData {
		e.push(fmt.Sprintf("storms_data[%d]", i))
		storm := env.Storm{RadiusKm: DefaultStormRadiusKm}
		point("center", sd.Center, &storm.Center)
		if sd.Radius != nil {
			storm.RadiusKm = *sd.Radius
		}
		cfg.Storms = append(cfg.Storms, storm)
		e.pop()
	}

	if sc.MaxSteps != nil {
		if *sc.MaxSteps <= 0 {
			e.push("max_steps")
			e.errorf("%d: must be positive", *sc.MaxSteps)
			e.pop()
		}
		cfg.MaxSteps = *sc.MaxSteps
	}

	for _, f := range []struct {
		name string
		v    *float64
		dst  *float64
	}{
		{"start_altitude", sc.StartAltitude, &cfg.StartAltitudeM},
		{"start_heading", sc.StartHeading, &cfg.StartHeadingDeg},
		{"start_velocity", sc.StartVelocity, &cfg.StartVelocityMps},
		{"start_fuel", sc.StartFuel, &cfg.StartFuelUnits},
	} {
		if f.v != nil {
			*f.dst = *f.v
		}
	}

	if e.err() == nil {
		if err := cfg.Validate(); err != nil {
			return sim.Config{}, err
		}
	}
	if err := e.err(); err != nil {
		return sim.Config{}, err
	}
	return cfg, nil
}

// FromConfig returns the document form of cfg.
func FromConfig(cfg sim.Config) Scenario {
	ptr := func(v float64) *float64 { return &v }
	sc := Scenario{
		Start:         []float64{cfg.Start.Lat, cfg.Start.Lon},
		Target:        []float64{cfg.Target.Lat, cfg.Target.Lon},
		MaxSteps:      &cfg.MaxSteps,
		StartAltitude: ptr(cfg.StartAltitudeM),
		StartHeading:  ptr(cfg.StartHeadingDeg),
		StartVelocity: ptr(cfg.StartVelocityMps),
		StartFuel:     ptr(cfg.StartFuelUnits),
	}
	for _, s := range cfg.Storms {
		sc.StormsData = append(sc.StormsData, StormData{
			Center: []float64{s.Center.Lat, s.Center.Lon},
			Radius: ptr(s.RadiusKm),
		})
	}
	return sc
}

// decodeJSON unmarshals b into out, reporting syntax and type errors
// with the line and character where they occurred.
func decodeJSON[T any](b []byte, out *T) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	err := dec.Decode(out)
	if err == nil {
		return nil
	}

	decodeOffset := func(offset int64) (line, char int) {
		line, char = 1, 1
		for i := 0; i < int(offset) && i < len(b); i++ {
			if b[i] == '\n' {
				line++
				char = 1
			} else {
				char++
			}
		}
		return
	}

	var serr *json.SyntaxError
	var terr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &serr):
		line, char := decodeOffset(serr.Offset)
		return fmt.Errorf("error at line %d, character %d: %w", line, char, err)
	case errors.As(err, &terr):
		line, char := decodeOffset(terr.Offset)
		return fmt.Errorf("error at line %d, character %d: %s value for %s invalid for type %s",
			line, char, terr.Value, terr.Field, terr.Type)
	default:
		return err
	}
}

