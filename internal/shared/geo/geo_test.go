package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	// Jakarta (-6.2, 106.816) to Bandung (-6.9175, 107.6191) ~ 115-120 km
	d := HaversineKm(-6.2, 106.816, -6.9175, 107.6191)
	if d < 100 || d > 140 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	ab := HaversineKm(47.3769, 8.5417, 46.9481, 7.4474)
	ba := HaversineKm(46.9481, 7.4474, 47.3769, 8.5417)
	if math.Abs(ab-ba) > 1e-12 {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestHaversineIdentity(t *testing.T) {
	if d := HaversineKm(51.5, -0.12, 51.5, -0.12); d != 0 {
		t.Fatalf("expected zero distance for coincident points, got %v", d)
	}
}

func TestHaversineOneDegreeLatitude(t *testing.T) {
	// One degree of latitude is ~111.2 km anywhere on the sphere.
	d := HaversineKm(0, 0, 1, 0)
	if d < 110 || d > 112.5 {
		t.Fatalf("unexpected 1-degree distance: %v", d)
	}
}
