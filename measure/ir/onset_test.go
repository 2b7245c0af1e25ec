package ir

import (
	"errors"
	"testing"
)

func TestFindOnset(t *testing.T) {
	tests := []struct {
		name string
		p    []float64
		want int
	}{
		{"at start", []float64{1, 0.5, 0.2}, 0},
		{"below threshold skipped", []float64{0, 0.05, 0, 0.2, 1}, 3},
		{"threshold is exclusive", []float64{0, 0.1, 0, 1}, 3},
		{"negative peak", []float64{0, 0, -0.3, -2, 0.5}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FindOnset(tc.p)
			if err != nil {
				t.Fatal(err)
			}

			if got != tc.want {
				t.Fatalf("onset = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFindOnset_Errors(t *testing.T) {
	if _, err := FindOnset(make([]float64, 16)); !errors.Is(err, ErrNoOnset) {
		t.Fatalf("err = %v, want ErrNoOnset", err)
	}

	if _, err := FindOnset(nil); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("err = %v, want ErrEmptyIR", err)
	}
}

func TestTrimOnset_KeepsPeak(t *testing.T) {
	p := make([]float64, 64)
	p[10] = 0.05
	p[20] = 0.2
	p[30] = 1
	p[31] = -0.7

	trimmed, start, err := TrimOnset(p)
	if err != nil {
		t.Fatal(err)
	}

	if start != 19 {
		t.Fatalf("start = %d, want 19 (one before onset 20)", start)
	}

	if len(trimmed) != len(p)-19 || trimmed[1] != 0.2 {
		t.Fatalf("trimmed does not start one sample before the onset")
	}

	if idx, _ := Peak(trimmed); trimmed[idx] != 1 {
		t.Fatal("trimmed response lost the peak")
	}

	// Onset at index 0 cannot step back.
	_, start, err = TrimOnset([]float64{1, 0.5})
	if err != nil || start != 0 {
		t.Fatalf("start = %d, err = %v", start, err)
	}
}

func TestTrimOnsetMulti_UsesEarliestChannel(t *testing.T) {
	left := make([]float64, 50)
	right := make([]float64, 50)
	left[20] = 1
	right[12] = 0.4
	right[25] = 1

	out, start, err := TrimOnsetMulti([][]float64{left, right})
	if err != nil {
		t.Fatal(err)
	}

	if start != 11 {
		t.Fatalf("start = %d, want 11", start)
	}

	if len(out[0]) != 39 || len(out[1]) != 39 || out[0][9] != 1 || out[1][1] != 0.4 {
		t.Fatal("channels not trimmed together")
	}
}

func TestTrimOnsetMulti_Errors(t *testing.T) {
	if _, _, err := TrimOnsetMulti(nil); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("err = %v", err)
	}

	if _, _, err := TrimOnsetMulti([][]float64{{1, 0}, {1}}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v", err)
	}

	if _, _, err := TrimOnsetMulti([][]float64{{0, 0}, {0, 0}}); !errors.Is(err, ErrNoOnset) {
		t.Fatalf("err = %v", err)
	}

	// One silent channel is tolerated.
	_, start, err := TrimOnsetMulti([][]float64{{0, 0, 0}, {0, 0, 1}})
	if err != nil || start != 1 {
		t.Fatalf("start = %d, err = %v", start, err)
	}
}
