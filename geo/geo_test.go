package geo

import (
	"math"
	"testing"
)

func TestDistanceZero(t *testing.T) {
	if d := Distance(-32.9750, -68.7830, -32.9750, -68.7830); d != 0 {
		t.Errorf("expected 0 distance for identical points, got %f", d)
	}
}

func TestDistanceKnownPair(t *testing.T) {
	// Mendoza city center to the airport, roughly 7.4 km.
	d := Distance(-32.8908, -68.8272, -32.8317, -68.7929)
	if d < 7000 || d > 7900 {
		t.Errorf("expected ~7.4km, got %f m", d)
	}
}

func TestDistanceShortRange(t *testing.T) {
	// One ten-thousandth of a degree of latitude is about 11 meters;
	// the dedup radius math lives and dies at this scale.
	d := Distance(-32.9750, -68.7830, -32.9751, -68.7830)
	if math.Abs(d-11.1) > 1.0 {
		t.Errorf("expected ~11.1 m, got %f", d)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := Distance(-32.90, -68.80, -33.00, -68.70)
	b := Distance(-33.00, -68.70, -32.90, -68.80)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}
