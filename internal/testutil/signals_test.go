package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	RequireNear(t, "s[12]", s[12], 1, 1e-12)
}

func TestDeterministicNoise_Reproducible(t *testing.T) {
	a := DeterministicNoise(42, 1, 64)
	b := DeterministicNoise(42, 1, 64)
	RequireSliceNearlyEqual(t, a, b, 0)

	c := DeterministicNoise(43, 1, 64)
	if a[0] == c[0] && a[1] == c[1] {
		t.Fatal("different seeds produced the same prefix")
	}

	for i, v := range a {
		if v < -1 || v >= 1 {
			t.Fatalf("a[%d] = %v out of range", i, v)
		}
	}
}

func TestImpulse(t *testing.T) {
	x := Impulse(8, 3)
	if x[3] != 1 || Energy(x) != 1 {
		t.Fatalf("unexpected impulse %v", x)
	}

	if Energy(Impulse(4, 9)) != 0 {
		t.Fatal("out-of-range impulse should be silent")
	}
}

func TestSyntheticRIR(t *testing.T) {
	fs := 8000.0
	x := SyntheticRIR(fs, 0.5, 1, 40, 1)

	if len(x) != 40+8000 {
		t.Fatalf("len = %d", len(x))
	}

	if Energy(x[:40]) != 0 {
		t.Fatal("pre-delay is not silent")
	}

	if x[40] != 1 {
		t.Fatalf("direct sound = %v, want 1", x[40])
	}

	RequireFinite(t, x)

	early := Energy(x[41:1040])
	late := Energy(x[7040:])
	if late >= early*1e-3 {
		t.Fatalf("tail did not decay: early %g late %g", early, late)
	}
}

func TestExponentialDecay(t *testing.T) {
	d := ExponentialDecay(1000, 1, 1.01)
	// 60 dB energy = 1e-3 amplitude after rt60.
	RequireNear(t, "d[1000]", d[1000], 1e-3, 1e-12)
}

func TestScale(t *testing.T) {
	RequireSliceNearlyEqual(t, Scale([]float64{1, -2}, 3), []float64{3, -6}, 0)
}
