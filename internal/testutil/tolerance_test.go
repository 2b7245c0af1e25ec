package testutil

import "testing"

func TestEnergy(t *testing.T) {
	if got := Energy([]float64{3, 4}); got != 25 {
		t.Fatalf("Energy = %v, want 25", got)
	}

	if got := Energy(nil); got != 0 {
		t.Fatalf("Energy(nil) = %v", got)
	}
}

func TestRequireNear(t *testing.T) {
	RequireNear(t, "x", 1.0000001, 1, 1e-6)
}
