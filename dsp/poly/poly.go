// Package poly evaluates real-coefficient polynomials at complex points.
//
// Coefficients are given in decreasing order of degree, so
//
//	p = [p0, p1, ..., pn]  represents  p0*x^n + p1*x^(n-1) + ... + pn
//
// which is the convention used by filter transfer functions written as
// polynomials in z.
package poly

import "errors"

// ErrEmpty is returned when no coefficients are supplied.
var ErrEmpty = errors.New("poly: empty coefficient list")

// Eval evaluates p at every point in x using Horner's scheme.
//
// The returned slice has the same length as x. An empty x yields an empty
// (non-nil) result.
func Eval(p []float64, x []complex128) ([]complex128, error) {
	if len(p) == 0 {
		return nil, ErrEmpty
	}

	out := make([]complex128, len(x))
	for i, z := range x {
		out[i] = horner(p, z)
	}

	return out, nil
}

// EvalAt evaluates p at a single point z.
func EvalAt(p []float64, z complex128) (complex128, error) {
	if len(p) == 0 {
		return 0, ErrEmpty
	}

	return horner(p, z), nil
}

func horner(p []float64, z complex128) complex128 {
	acc := complex(p[0], 0)
	for _, c := range p[1:] {
		acc = acc*z + complex(c, 0)
	}

	return acc
}
