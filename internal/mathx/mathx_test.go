package mathx

import (
	"math"
	"testing"
)

func TestMod360(t *testing.T) {
	for _, tc := range []struct{ in, expected float64 }{
		{0, 0},
		{90, 90},
		{360, 0},
		{370, 10},
		{-10, 350},
		{-360, 0},
		{725, 5},
		{-1e-18, 0},
	} {
		got := Mod360(tc.in)
		if got != tc.expected {
			t.Errorf("Mod360(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
		if got < 0 || got >= 360 {
			t.Errorf("Mod360(%v) = %v out of [0, 360)", tc.in, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if v := Clamp(15.0, -10, 10); v != 10 {
		t.Errorf("got %v expected 10", v)
	}
	if v := Clamp(-0.5, -0.2, 0.2); v != -0.2 {
		t.Errorf("got %v expected -0.2", v)
	}
	if v := Clamp(3, 0, 5); v != 3 {
		t.Errorf("got %v expected 3", v)
	}
}

func TestSafeASin(t *testing.T) {
	if v := SafeASin(1 + 1e-12); v != math.Pi/2 {
		t.Errorf("got %v expected pi/2", v)
	}
	if v := SafeASin(-1.5); v != -math.Pi/2 {
		t.Errorf("got %v expected -pi/2", v)
	}
	if math.IsNaN(SafeASin(2)) {
		t.Errorf("SafeASin returned NaN")
	}
}
