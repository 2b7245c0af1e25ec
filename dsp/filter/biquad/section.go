package biquad

import (
	"errors"
	"fmt"
)

// ErrZeroLeading is returned by [Normalize] when a0 is zero.
var ErrZeroLeading = errors.New("biquad: leading feedback coefficient is zero")

// Coefficients holds the transfer function of one second-order section.
// a0 is normalized to 1 and not stored.
//
// Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward
	A1, A2     float64 // feedback
}

// Normalize builds Coefficients from raw feedforward b and feedback a
// triples, dividing everything by a[0].
func Normalize(b, a [3]float64) (Coefficients, error) {
	if a[0] == 0 {
		return Coefficients{}, fmt.Errorf("%w: b=%v a=%v", ErrZeroLeading, b, a)
	}

	inv := 1 / a[0]

	return Coefficients{
		B0: b[0] * inv,
		B1: b[1] * inv,
		B2: b[2] * inv,
		A1: a[1] * inv,
		A2: a[2] * inv,
	}, nil
}

// Scaled returns c with its feedforward part multiplied by g.
func (c Coefficients) Scaled(g float64) Coefficients {
	c.B0 *= g
	c.B1 *= g
	c.B2 *= g

	return c
}

// Section is a single biquad with its delay-line state.
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section with zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	d0, d1 := s.d0, s.d1

	i := 0
	n := len(buf)

	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		d0n := b1*x0 - a1*y0 + d1
		d1n := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + d0n
		d0 = b1*x1 - a1*y1 + d1n
		d1 = b2*x1 - a2*y1

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	s.d0, s.d1 = d0, d1
}

// ProcessBlockTo filters src into dst. dst must be at least len(src) long.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1]
	for i, x := range src {
		y := s.B0*x + s.d0
		s.d0 = s.B1*x - s.A1*y + s.d1
		s.d1 = s.B2*x - s.A2*y
		dst[i] = y
	}
}

// Reset clears the delay line.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a state returned by State.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
