package band

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-roomacoustics/dsp/filter/biquad"
	"github.com/cwbudde/algo-roomacoustics/internal/testutil"
)

func TestBandpass_Shape(t *testing.T) {
	for _, order := range []int{2, 4, 6, 8, 10} {
		set, err := Bandpass(order, 500, 2000, 48000)
		if err != nil {
			t.Fatalf("order %d: %v", order, err)
		}

		if set.Len() != order/2 || len(set.Gains) != order/2 || set.Order() != order {
			t.Fatalf("order %d: %d feedbacks, %d gains", order, set.Len(), len(set.Gains))
		}

		for i, a := range set.Feedbacks {
			if a[0] != 1 {
				t.Errorf("order %d stage %d: a0 = %g, want 1", order, i, a[0])
			}
		}
	}
}

func TestBandpass_KnownCoefficients(t *testing.T) {
	set, err := Bandpass(6, 44.6684, 89.1251, 44100)
	if err != nil {
		t.Fatal(err)
	}

	wantGains := []float64{0.004287, 0.003157, 0.002332}
	for i, w := range wantGains {
		testutil.RequireNear(t, "gain", set.Gains[i], w, 1e-3)
	}

	want := [3]float64{1, -1.9958, 0.9959}
	for i, w := range want {
		testutil.RequireNear(t, "stage 1 feedback", set.Feedbacks[0][i], w, 0.1)
	}

	// Tighter check against the closed-form design.
	testutil.RequireNear(t, "a1", set.Feedbacks[0][1], -1.995757, 1e-5)
	testutil.RequireNear(t, "a2", set.Feedbacks[0][2], 0.995905, 1e-5)
	testutil.RequireNear(t, "K1", set.Gains[0], 0.00428663, 1e-7)
}

func TestBandpass_Errors(t *testing.T) {
	tests := []struct {
		name   string
		order  int
		f1, f2 float64
		fs     float64
		want   error
	}{
		{"odd", 5, 500, 1000, 48000, ErrOddOrder},
		{"one", 1, 500, 1000, 48000, ErrOddOrder},
		{"zero", 0, 500, 1000, 48000, ErrInvalidOrder},
		{"negative", -2, 500, 1000, 48000, ErrInvalidOrder},
		{"reversed", 4, 1000, 500, 48000, ErrInvalidCutoff},
		{"zero f1", 4, 0, 500, 48000, ErrInvalidCutoff},
		{"above nyquist", 4, 500, 30000, 48000, ErrInvalidCutoff},
		{"bad fs", 4, 500, 1000, 0, ErrInvalidCutoff},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Bandpass(tc.order, tc.f1, tc.f2, tc.fs)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestOctave_MagnitudeResponse(t *testing.T) {
	fs := 48000.0
	set, err := Octave(1000, 6, fs)
	if err != nil {
		t.Fatal(err)
	}

	chain := biquad.NewChain(set.Coefficients())

	testutil.RequireNear(t, "centre dB", chain.MagnitudeDB(1000, fs), 0, 0.015)
	testutil.RequireNear(t, "lower edge dB", chain.MagnitudeDB(1000/math.Sqrt2, fs), -3, 0.015)
	testutil.RequireNear(t, "upper edge dB", chain.MagnitudeDB(1000*math.Sqrt2, fs), -3, 0.015)

	if db := chain.MagnitudeDB(125, fs); db > -40 {
		t.Errorf("stop band at 125 Hz = %.1f dB, want < -40", db)
	}
}

func TestStages_MatchCoefficients(t *testing.T) {
	set, err := Bandpass(4, 300, 3000, 44100)
	if err != nil {
		t.Fatal(err)
	}

	coeffs := set.Coefficients()
	for i, st := range set.Stages() {
		if st.Feedforward[0] != 1 || st.Feedforward[1] != 0 || st.Feedforward[2] != -1 {
			t.Fatalf("stage %d feedforward %v", i, st.Feedforward)
		}

		if coeffs[i].B0 != st.Gain || coeffs[i].B2 != -st.Gain || coeffs[i].A1 != st.Feedback[1] {
			t.Fatalf("stage %d: coefficients %+v disagree with %+v", i, coeffs[i], st)
		}
	}
}

func TestBandpass_PreservesInBandEnergy(t *testing.T) {
	fs := 48000.0
	set, err := Bandpass(2, 100, 10000, fs)
	if err != nil {
		t.Fatal(err)
	}

	x := testutil.DeterministicSine(1000, fs, 1, 24000)
	y := make([]float64, len(x))
	biquad.NewChain(set.Coefficients()).ProcessBlockTo(y, x)

	// Skip the start-up transient.
	in := testutil.Energy(x[4800:])
	out := testutil.Energy(y[4800:])

	if ratio := out / in; math.Abs(ratio-1) > 0.01 {
		t.Fatalf("energy ratio = %g, want ~1", ratio)
	}
}

func BenchmarkBandpass(b *testing.B) {
	for b.Loop() {
		_, _ = Bandpass(6, 707.1, 1414.2, 48000)
	}
}
