// Package env describes the weather the aircraft flies through: circular
// storm zones checked in a fixed order.
package env

import (
	"math"

	"flight-env/internal/geometry/geo"
)

// Storm is a circular zone of bad weather.
type Storm struct {
	Center   geo.LatLon `json:"center" msgpack:"center"`
	RadiusKm float64    `json:"radius_km" msgpack:"radius_km"`
}

// Contains returns the distance from p to the storm center and whether p
// is strictly inside the storm. A zero radius never contains anything.
func (s Storm) Contains(p geo.LatLon) (float64, bool) {
	d := geo.HaversineKm(p, s.Center)
	return d, d < s.RadiusKm
}

// Hit identifies a storm relative to a position.
type Hit struct {
	Index      int
	Storm      Storm
	DistanceKm float64
}

// Storms is an ordered collection of storm zones. Overlapping storms are
// resolved by order: the earliest one containing a position wins.
type Storms []Storm

// FirstHit returns the first storm, in order, that contains p. Later
// storms are not examined once one hits.
func (s Storms) FirstHit(p geo.LatLon) (Hit, bool) {
	for i, st := range s {
		if d, inside := st.Contains(p); inside {
			return Hit{Index: i, Storm: st, DistanceKm: d}, true
		}
	}
	return Hit{}, false
}

// Nearest returns the storm whose edge is closest to p; a negative
// distance to the edge means p is inside. ok is false when there are no
// storms.
func (s Storms) Nearest(p geo.LatLon) (hit Hit, edgeKm float64, ok bool) {
	edgeKm = math.Inf(1)
	for i, st := range s {
		d := geo.HaversineKm(p, st.Center)
		if e := d - st.RadiusKm; e < edgeKm {
			hit, edgeKm, ok = Hit{Index: i, Storm: st, DistanceKm: d}, e, true
		}
	}
	return
}
