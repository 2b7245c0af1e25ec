package ir

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-roomacoustics/internal/testutil"
)

func TestAnalyzer_Analyze(t *testing.T) {
	fs := 48000.0
	rt60 := 1.0
	delay := 300

	p := append(make([]float64, delay), testutil.ExponentialDecay(fs, rt60, 3)...)

	m, err := NewAnalyzer(fs).Analyze(p)
	if err != nil {
		t.Fatal(err)
	}

	if m.OnsetIndex != delay-1 {
		t.Errorf("OnsetIndex = %d, want %d", m.OnsetIndex, delay-1)
	}

	// One leading zero sample shifts nothing in the decay slope.
	for name, v := range map[string]float64{"RT60": m.RT60, "EDT": m.EDT, "T20": m.T20, "T30": m.T30} {
		if math.Abs(v-rt60) > 0.01 {
			t.Errorf("%s = %.4f, want %.2f", name, v, rt60)
		}
	}

	if m.D50 <= 0 || m.D50 >= m.D80 || m.D80 >= 1 {
		t.Errorf("D50 = %g, D80 = %g", m.D50, m.D80)
	}

	if m.C80 <= m.C50 {
		t.Errorf("C80 = %g should exceed C50 = %g", m.C80, m.C50)
	}

	// Ts of an exponential energy decay is 1/(2a) with a = 3 ln10 / rt60.
	wantTs := rt60/(6*math.Ln10)*1000 + 1000/fs
	if math.Abs(m.CentreTime-wantTs) > 0.1 {
		t.Errorf("CentreTime = %.3f ms, want %.3f", m.CentreTime, wantTs)
	}
}

func TestAnalyzer_Errors(t *testing.T) {
	if _, err := NewAnalyzer(48000).Analyze(nil); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("err = %v", err)
	}

	if _, err := NewAnalyzer(0).Analyze([]float64{1}); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("err = %v", err)
	}

	if _, err := NewAnalyzer(48000).Analyze(make([]float64, 10)); !errors.Is(err, ErrNoOnset) {
		t.Fatalf("err = %v", err)
	}
}

func TestAnalyzer_RT60Fallback(t *testing.T) {
	fs := 1000.0
	// 21 samples at 1.2 dB each: the Schroeder curve ends near -30 dB, so
	// the T20 range is reached and the T30 range is not.
	p := testutil.ExponentialDecay(fs, 0.05, 0.0215)

	if _, err := T30(p, fs); !errors.Is(err, ErrNoDecay) {
		t.Fatalf("T30 err = %v, want ErrNoDecay", err)
	}

	rt, err := NewAnalyzer(fs).RT60(p)
	if err != nil {
		t.Fatal(err)
	}

	t20, err := T20(p, fs)
	if err != nil {
		t.Fatal(err)
	}

	if rt != t20 {
		t.Fatalf("RT60 = %g, want T20 fallback %g", rt, t20)
	}
}
