// Package freqz evaluates the complex frequency response of a digital filter
// given as numerator and denominator polynomials.
//
// For each frequency f the response is
//
//	H(f) = B(z) / A(z),  z = exp(j*2*pi*f/fs)
//
// with B and A evaluated by [poly.Eval]. Coefficient slices are read in
// decreasing order of degree. When b and a have equal length this is the same
// as the common b[0] + b[1]*z^-1 + ... reading, because the z^n factors
// cancel.
package freqz

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-roomacoustics/dsp/poly"
)

var (
	// ErrShapeMismatch is returned when b and a differ in length.
	ErrShapeMismatch = errors.New("freqz: numerator and denominator lengths differ")
	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("freqz: sample rate must be positive")
	// ErrSingular is returned when the denominator vanishes at a requested
	// frequency.
	ErrSingular = errors.New("freqz: denominator is zero")
)

// Response returns H at each frequency in freqs (Hz).
func Response(b, a, freqs []float64, sampleRate float64) ([]complex128, error) {
	if len(b) != len(a) {
		return nil, fmt.Errorf("%w: len(b)=%d len(a)=%d", ErrShapeMismatch, len(b), len(a))
	}

	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	z := UnitCircle(freqs, sampleRate)

	num, err := poly.Eval(b, z)
	if err != nil {
		return nil, fmt.Errorf("freqz: numerator: %w", err)
	}

	den, err := poly.Eval(a, z)
	if err != nil {
		return nil, fmt.Errorf("freqz: denominator: %w", err)
	}

	h := make([]complex128, len(z))
	for i := range h {
		if den[i] == 0 {
			return nil, fmt.Errorf("%w at %g Hz", ErrSingular, freqs[i])
		}

		h[i] = num[i] / den[i]
	}

	return h, nil
}

// ResponsePadded is like [Response] but pads the shorter of b and a with
// trailing zeros instead of rejecting unequal lengths. Trailing padding keeps
// the z^-1 interpretation of both polynomials intact.
func ResponsePadded(b, a, freqs []float64, sampleRate float64) ([]complex128, error) {
	n := max(len(b), len(a))

	return Response(padTo(b, n), padTo(a, n), freqs, sampleRate)
}

// Magnitude returns |H| at each frequency in freqs.
func Magnitude(b, a, freqs []float64, sampleRate float64) ([]float64, error) {
	h, err := Response(b, a, freqs, sampleRate)
	if err != nil {
		return nil, err
	}

	mag := make([]float64, len(h))
	for i, v := range h {
		mag[i] = cmplx.Abs(v)
	}

	return mag, nil
}

// UnitCircle maps frequencies in Hz to points exp(j*2*pi*f/fs).
func UnitCircle(freqs []float64, sampleRate float64) []complex128 {
	z := make([]complex128, len(freqs))
	for i, f := range freqs {
		w := 2 * math.Pi * f / sampleRate
		z[i] = cmplx.Exp(complex(0, w))
	}

	return z
}

func padTo(c []float64, n int) []float64 {
	if len(c) >= n {
		return c
	}

	out := make([]float64, n)
	copy(out, c)

	return out
}
