package sim

import (
	"fmt"
	"strings"

	"flight-env/internal/env"
	"flight-env/internal/geometry/geo"
	"flight-env/internal/mathx"
)

// Snapshot is a read-only view of the simulation for logging and
// inspection.
type Snapshot struct {
	Step               int
	Phase              Phase
	Position           geo.LatLon
	AltitudeM          float64
	HeadingDeg         float64
	VelocityMps        float64
	FuelUnits          float64
	DistanceToTargetKm float64
	AltitudeDeviationM float64

	// Storm is the first storm containing the aircraft, if InStorm.
	InStorm bool
	Storm   env.Hit

	// Nearest is the storm whose edge is closest, if HasStorms.
	// NearestEdgeKm is negative inside it.
	HasStorms     bool
	Nearest       env.Hit
	NearestEdgeKm float64
}

// Status reports the current state without modifying it.
func (s *Simulation) Status() Snapshot {
	st := s.state
	snap := Snapshot{
		Step:               st.Step,
		Phase:              st.Phase,
		Position:           st.Position,
		AltitudeM:          st.AltitudeM,
		HeadingDeg:         st.HeadingDeg,
		VelocityMps:        st.VelocityMps,
		FuelUnits:          st.FuelUnits,
		DistanceToTargetKm: geo.HaversineKm(st.Position, s.cfg.Target),
		AltitudeDeviationM: mathx.Abs(st.AltitudeM - CruiseAltitudeM),
	}
	snap.Storm, snap.InStorm = s.cfg.Storms.FirstHit(st.Position)
	snap.Nearest, snap.NearestEdgeKm, snap.HasStorms = s.cfg.Storms.Nearest(st.Position)
	return snap
}

// Render returns Status formatted for a console.
func (s *Simulation) Render() string {
	return s.Status().String()
}

func (sn Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Step: %d (%s)\n", sn.Step, sn.Phase)
	fmt.Fprintf(&b, "Position: %.4f°, %.4f°\n", sn.Position.Lat, sn.Position.Lon)
	fmt.Fprintf(&b, "Altitude: %.0fm | Heading: %.1f°\n", sn.AltitudeM, sn.HeadingDeg)
	fmt.Fprintf(&b, "Speed: %.1fm/s | Fuel: %.1f units\n", sn.VelocityMps, sn.FuelUnits)
	fmt.Fprintf(&b, "Distance to Target: %.2f km\n", sn.DistanceToTargetKm)
	if sn.InStorm {
		fmt.Fprintf(&b, "Storm Penalty: In Storm (Distance: %.2f km)\n", sn.Storm.DistanceKm)
	} else if sn.HasStorms {
		fmt.Fprintf(&b, "Storm Penalty: No Storm Nearby (Nearest Edge: %.2f km)\n", sn.NearestEdgeKm)
	} else {
		b.WriteString("Storm Penalty: No Storm Nearby\n")
	}
	fmt.Fprintf(&b, "Altitude Deviation: %.2fm\n", sn.AltitudeDeviationM)
	return b.String()
}
