// Package geo converts between geographic coordinates and local
// displacements and measures great-circle distances.
package geo

import (
	"fmt"
	"math"

	"flight-env/internal/geometry/vector"
	"flight-env/internal/mathx"
)

const (
	// EarthRadiusKm is the mean Earth radius used for haversine distances.
	EarthRadiusKm = 6371.0

	// MetersPerDegLat is the length of one degree of latitude.
	MetersPerDegLat = 111_320.0
)

// LatLon is a position in decimal degrees.
type LatLon struct {
	Lat float64 `json:"lat" yaml:"lat" msgpack:"lat"`
	Lon float64 `json:"lon" yaml:"lon" msgpack:"lon"`
}

func (p LatLon) String() string {
	return fmt.Sprintf("%.4f°, %.4f°", p.Lat, p.Lon)
}

// MetersPerDegLon returns the length of one degree of longitude at the
// given latitude. It is zero at the poles.
func MetersPerDegLon(lat float64) float64 {
	return MetersPerDegLat * math.Cos(mathx.Radians(lat))
}

// Displace moves p by the east/north displacement d (meters), using the
// meters-per-degree factors at p's latitude. Where a degree of longitude
// has zero length the longitude is left unchanged.
func Displace(p LatLon, d vector.Vec2) LatLon {
	lonMeters := MetersPerDegLon(p.Lat)

	dLon := 0.0
	if lonMeters != 0 {
		dLon = d.East / lonMeters
	}
	dLat := d.North / MetersPerDegLat

	return LatLon{Lat: p.Lat + dLat, Lon: p.Lon + dLon}
}

// HaversineKm returns the great-circle distance between a and b in
// kilometers. The arcsine argument is clamped into range so rounding near
// antipodal points cannot produce NaN.
func HaversineKm(a, b LatLon) float64 {
	lat1, lon1 := mathx.Radians(a.Lat), mathx.Radians(a.Lon)
	lat2, lon2 := mathx.Radians(b.Lat), mathx.Radians(b.Lon)
	dlat, dlon := lat2-lat1, lon2-lon1

	h := mathx.Sqr(math.Sin(dlat/2)) + math.Cos(lat1)*math.Cos(lat2)*mathx.Sqr(math.Sin(dlon/2))
	c := 2 * mathx.SafeASin(math.Sqrt(h))
	return EarthRadiusKm * c
}

// InitialBearingDeg returns the great-circle initial bearing from a to b
// in degrees clockwise from north, in [0, 360).
func InitialBearingDeg(a, b LatLon) float64 {
	lat1, lat2 := mathx.Radians(a.Lat), mathx.Radians(b.Lat)
	dlon := mathx.Radians(b.Lon - a.Lon)

	y := math.Sin(dlon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlon)
	return mathx.Mod360(mathx.Degrees(math.Atan2(y, x)))
}
