package band

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-roomacoustics/dsp/filter/biquad"
	"github.com/cwbudde/algo-roomacoustics/dsp/filter/freqz"
)

var (
	// ErrOddOrder is returned for an odd filter order.
	ErrOddOrder = errors.New("band: filter order must be even")
	// ErrInvalidOrder is returned for a non-positive filter order.
	ErrInvalidOrder = errors.New("band: filter order must be positive")
	// ErrInvalidCutoff is returned when the cutoffs do not satisfy
	// 0 < f1 < f2 < fs/2.
	ErrInvalidCutoff = errors.New("band: invalid cutoff frequencies")
)

// Feedforward is the numerator shared by every stage.
var Feedforward = [3]float64{1, 0, -1}

// Stage is one second-order section of a band-pass cascade.
type Stage struct {
	Feedforward []float64 // b, always [1 0 -1]
	Feedback    []float64 // a, leading 1
	Gain        float64
}

// Set is a designed band-pass cascade: one feedback triple and one gain per
// stage, stage 1 first.
type Set struct {
	Feedbacks [][3]float64
	Gains     []float64
}

// Len returns the number of stages.
func (s Set) Len() int { return len(s.Feedbacks) }

// Order returns the filter order.
func (s Set) Order() int { return 2 * len(s.Feedbacks) }

// Stages returns the cascade as explicit b/a pairs.
func (s Set) Stages() []Stage {
	out := make([]Stage, len(s.Feedbacks))
	for i, a := range s.Feedbacks {
		out[i] = Stage{
			Feedforward: []float64{Feedforward[0], Feedforward[1], Feedforward[2]},
			Feedback:    []float64{a[0], a[1], a[2]},
			Gain:        s.Gains[i],
		}
	}

	return out
}

// Coefficients returns biquad coefficients with each stage gain folded into
// its feedforward part.
func (s Set) Coefficients() []biquad.Coefficients {
	out := make([]biquad.Coefficients, len(s.Feedbacks))
	for i, a := range s.Feedbacks {
		out[i] = biquad.Coefficients{
			B0: Feedforward[0],
			B1: Feedforward[1],
			B2: Feedforward[2],
			A1: a[1],
			A2: a[2],
		}.Scaled(s.Gains[i])
	}

	return out
}

// Bandpass designs an order-th order band-pass between f1 and f2 Hz.
//
// order must be positive and even. The result holds order/2 feedback triples
// and order/2 gains; each triple starts with 1.
func Bandpass(order int, f1, f2, sampleRate float64) (Set, error) {
	if order <= 0 {
		return Set{}, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	if order%2 != 0 {
		return Set{}, fmt.Errorf("%w: %d", ErrOddOrder, order)
	}

	if sampleRate <= 0 || f1 <= 0 || f2 <= f1 || f2 >= sampleRate/2 {
		return Set{}, fmt.Errorf("%w: f1=%g f2=%g fs=%g", ErrInvalidCutoff, f1, f2, sampleRate)
	}

	bigF1 := prewarp(f1, sampleRate)
	bigF2 := prewarp(f2, sampleRate)
	bw := bigF2 - bigF1
	bigF0 := math.Sqrt(bigF1 * bigF2)
	f0 := math.Sqrt(f1 * f2)

	n := order / 2
	set := Set{
		Feedbacks: make([][3]float64, n),
		Gains:     make([]float64, n),
	}

	for k := 1; k <= n; k++ {
		p := digitalPole(k, n, bw, bigF0, sampleRate)
		a := [3]float64{1, -2 * real(p), real(p)*real(p) + imag(p)*imag(p)}

		g, err := stageGain(a, f0, sampleRate)
		if err != nil {
			return Set{}, err
		}

		set.Feedbacks[k-1] = a
		set.Gains[k-1] = g
	}

	return set, nil
}

// Octave designs a one-octave band around center: f1 = center/sqrt(2),
// f2 = center*sqrt(2).
func Octave(center float64, order int, sampleRate float64) (Set, error) {
	return Bandpass(order, center/math.Sqrt2, center*math.Sqrt2, sampleRate)
}

// prewarp compensates the bilinear frequency warping.
func prewarp(f, fs float64) float64 {
	return fs / math.Pi * math.Tan(math.Pi*f/fs)
}

// digitalPole returns the k-th (1-based) of n band-pass poles.
func digitalPole(k, n int, bw, f0, fs float64) complex128 {
	theta := float64(2*k-1) * math.Pi / float64(2*n)
	lowpass := complex(-math.Sin(theta), math.Cos(theta))

	alpha := complex(bw/f0/2, 0) * lowpass
	beta := cmplx.Sqrt(1 - alpha*alpha)
	analog := complex(2*math.Pi*f0, 0) * (alpha + 1i*beta)

	half := analog / complex(2*fs, 0)

	return (1 + half) / (1 - half)
}

func stageGain(a [3]float64, f0, fs float64) (float64, error) {
	h, err := freqz.Response(Feedforward[:], a[:], []float64{f0}, fs)
	if err != nil {
		return 0, fmt.Errorf("band: stage gain: %w", err)
	}

	return 1 / cmplx.Abs(h[0]), nil
}
