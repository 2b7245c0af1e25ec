package poly

import (
	"errors"
	"math/cmplx"
	"testing"
)

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		p    []float64
		x    []complex128
		want []complex128
	}{
		{
			name: "constant",
			p:    []float64{3},
			x:    []complex128{0, 1, complex(2, -5)},
			want: []complex128{3, 3, 3},
		},
		{
			name: "linear",
			p:    []float64{2, 1},
			x:    []complex128{0, 1, 1i},
			want: []complex128{1, 3, complex(1, 2)},
		},
		{
			// (x-1)^2 at x = j: -1 - 2j + 1 = -2j
			name: "quadratic at j",
			p:    []float64{1, -2, 1},
			x:    []complex128{1i},
			want: []complex128{-2i},
		},
		{
			// x^2 + 1 vanishes at +-j
			name: "roots",
			p:    []float64{1, 0, 1},
			x:    []complex128{1i, -1i},
			want: []complex128{0, 0},
		},
		{
			name: "cubic real",
			p:    []float64{1, 0, 0, -8},
			x:    []complex128{2, 3},
			want: []complex128{0, 19},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Eval(tc.p, tc.x)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}

			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tc.want))
			}

			for i := range got {
				if cmplx.Abs(got[i]-tc.want[i]) > 1e-9 {
					t.Errorf("[%d] = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestEval_Empty(t *testing.T) {
	if _, err := Eval(nil, []complex128{1}); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}

	got, err := Eval([]float64{1, 2}, nil)
	if err != nil {
		t.Fatalf("Eval with no points: %v", err)
	}

	if got == nil || len(got) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", got)
	}
}

func TestEvalAt_MatchesEval(t *testing.T) {
	p := []float64{0.5, -1.25, 3, 0.75}
	pts := []complex128{0, 1, -1, complex(0.3, 0.7), cmplx.Exp(complex(0, 1.1))}

	all, err := Eval(p, pts)
	if err != nil {
		t.Fatal(err)
	}

	for i, z := range pts {
		v, err := EvalAt(p, z)
		if err != nil {
			t.Fatal(err)
		}

		if v != all[i] {
			t.Errorf("EvalAt(%v) = %v, Eval gave %v", z, v, all[i])
		}
	}

	if _, err := EvalAt(nil, 1); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}
