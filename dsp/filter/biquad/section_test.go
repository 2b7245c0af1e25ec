package biquad

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-roomacoustics/internal/testutil"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// resonator is a stable second-order section with poles at radius 0.9.
func resonator() Coefficients {
	return Coefficients{B0: 1, B1: 0, B2: -1, A1: -1.2, A2: 0.81}
}

func TestNormalize(t *testing.T) {
	c, err := Normalize([3]float64{2, 4, 6}, [3]float64{2, -1, 0.5})
	if err != nil {
		t.Fatal(err)
	}

	want := Coefficients{B0: 1, B1: 2, B2: 3, A1: -0.5, A2: 0.25}
	if c != want {
		t.Fatalf("got %+v, want %+v", c, want)
	}

	if _, err := Normalize([3]float64{1, 0, 0}, [3]float64{0, 1, 1}); !errors.Is(err, ErrZeroLeading) {
		t.Fatalf("err = %v, want ErrZeroLeading", err)
	}
}

func TestScaled(t *testing.T) {
	c := resonator().Scaled(0.5)
	if c.B0 != 0.5 || c.B2 != -0.5 || c.A1 != -1.2 || c.A2 != 0.81 {
		t.Fatalf("unexpected scaled coefficients %+v", c)
	}
}

func TestProcessSample_DFIIT(t *testing.T) {
	// Hand-traced with B=[0.25 0.5 0.25], A=[1 -0.2 0.04] and x = impulse.
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})
	want := []float64{0.25, 0.55, 0.35, 0.048, -0.0044, -0.0028}

	for i, w := range want {
		x := 0.0
		if i == 0 {
			x = 1
		}

		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Errorf("y[%d] = %.12f, want %.12f", i, y, w)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 64} {
		input := testutil.DeterministicNoise(7, 0.5, n)

		ref := NewSection(resonator())
		want := make([]float64, n)
		for i, x := range input {
			want[i] = ref.ProcessSample(x)
		}

		s := NewSection(resonator())
		got := append([]float64(nil), input...)
		s.ProcessBlock(got)

		testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)

		if s.State() != ref.State() {
			t.Errorf("n=%d: state %v, want %v", n, s.State(), ref.State())
		}
	}
}

func TestProcessBlockTo_LeavesSource(t *testing.T) {
	src := testutil.DeterministicSine(1000, 48000, 1, 32)
	orig := append([]float64(nil), src...)
	dst := make([]float64, len(src))

	s := NewSection(resonator())
	s.ProcessBlockTo(dst, src)

	testutil.RequireSliceNearlyEqual(t, src, orig, 0)

	ref := NewSection(resonator())
	for i, x := range src {
		if y := ref.ProcessSample(x); !almostEqual(dst[i], y, eps) {
			t.Fatalf("dst[%d] = %g, want %g", i, dst[i], y)
		}
	}

	s.ProcessBlockTo(nil, nil)
}

func TestResetAndState(t *testing.T) {
	s := NewSection(resonator())
	s.ProcessSample(1)
	s.ProcessSample(0.5)

	saved := s.State()
	y1 := s.ProcessSample(0.25)

	s.SetState(saved)
	if y2 := s.ProcessSample(0.25); y2 != y1 {
		t.Fatalf("restored state gives %g, want %g", y2, y1)
	}

	s.Reset()
	if s.State() != [2]float64{} {
		t.Fatalf("state after Reset = %v", s.State())
	}
}

func TestProcessSample_StableDecay(t *testing.T) {
	s := NewSection(resonator())
	s.ProcessSample(1)

	var y float64
	for range 2000 {
		y = s.ProcessSample(0)
	}

	if math.Abs(y) > 1e-40 {
		t.Fatalf("resonator did not decay: %g", y)
	}
}
