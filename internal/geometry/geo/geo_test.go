package geo

import (
	"math"
	"testing"

	"flight-env/internal/geometry/vector"
)

var (
	london  = LatLon{Lat: 51.5074, Lon: -0.1278}
	newYork = LatLon{Lat: 40.7128, Lon: -74.0060}
)

func TestHaversineKnownDistance(t *testing.T) {
	d := HaversineKm(london, newYork)
	// London-New York great circle is roughly 5570 km.
	if d < 5560 || d > 5580 {
		t.Errorf("London-NYC distance %.2f km, expected ~5570", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	pts := []LatLon{
		london, newYork,
		{0, 0}, {0, 180}, {90, 0}, {-90, 0},
		{45.5, -122.6}, {-33.9, 151.2}, {1e-9, -1e-9},
	}
	for _, a := range pts {
		if d := HaversineKm(a, a); d != 0 {
			t.Errorf("%v: distance to itself %v, expected 0", a, d)
		}
		for _, b := range pts {
			if HaversineKm(a, b) != HaversineKm(b, a) {
				t.Errorf("%v %v: asymmetric distance %v vs %v", a, b,
					HaversineKm(a, b), HaversineKm(b, a))
			}
		}
	}
}

func TestHaversineAntipodal(t *testing.T) {
	for _, pair := range [][2]LatLon{
		{{0, 0}, {0, 180}},
		{{90, 0}, {-90, 0}},
		{{10, 20}, {-10, -160}},
	} {
		d := HaversineKm(pair[0], pair[1])
		if math.IsNaN(d) {
			t.Fatalf("%v: NaN distance", pair)
		}
		if math.Abs(d-math.Pi*EarthRadiusKm) > 1e-3 {
			t.Errorf("%v: got %v expected half circumference %v", pair, d, math.Pi*EarthRadiusKm)
		}
	}
}

func TestDisplace(t *testing.T) {
	p := Displace(LatLon{0, 0}, vector.Vec2{East: 0, North: MetersPerDegLat})
	if math.Abs(p.Lat-1) > 1e-12 || p.Lon != 0 {
		t.Errorf("north displacement gave %v, expected (1, 0)", p)
	}

	p = Displace(LatLon{0, 0}, vector.Vec2{East: MetersPerDegLat, North: 0})
	if math.Abs(p.Lon-1) > 1e-12 || p.Lat != 0 {
		t.Errorf("east displacement gave %v, expected (0, 1)", p)
	}

	// At 60N a degree of longitude is half as long.
	p = Displace(LatLon{60, 10}, vector.Vec2{East: MetersPerDegLat / 2, North: 0})
	if math.Abs(p.Lon-11) > 1e-9 {
		t.Errorf("east displacement at 60N gave lon %v, expected 11", p.Lon)
	}
}

func TestDisplaceNearPole(t *testing.T) {
	p := Displace(LatLon{90, 5}, vector.Vec2{East: 1000, North: -1000})
	if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) || math.IsNaN(p.Lat) {
		t.Errorf("displacement at pole produced %v", p)
	}
	if math.Abs(p.Lat-(90-1000/MetersPerDegLat)) > 1e-12 {
		t.Errorf("latitude %v after moving 1 km south of the pole", p.Lat)
	}
}

func TestInitialBearing(t *testing.T) {
	for _, tc := range []struct {
		a, b     LatLon
		expected float64
	}{
		{LatLon{0, 0}, LatLon{1, 0}, 0},
		{LatLon{0, 0}, LatLon{0, 1}, 90},
		{LatLon{0, 0}, LatLon{-1, 0}, 180},
		{LatLon{0, 0}, LatLon{0, -1}, 270},
	} {
		if got := InitialBearingDeg(tc.a, tc.b); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("%v -> %v: bearing %v expected %v", tc.a, tc.b, got, tc.expected)
		}
	}
	// London to New York heads west-northwest.
	if b := InitialBearingDeg(london, newYork); b < 280 || b > 300 {
		t.Errorf("London-NYC bearing %v, expected ~288", b)
	}
}
