package sweep

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by sweep functions.
var (
	ErrInvalidFrequency  = errors.New("sweep: frequency must be positive")
	ErrInvalidDuration   = errors.New("sweep: duration must be positive")
	ErrInvalidSampleRate = errors.New("sweep: sample rate must be positive")
	ErrFrequencyOrder    = errors.New("sweep: start frequency must be less than end frequency")
	ErrNyquist           = errors.New("sweep: end frequency must be below the Nyquist frequency")
	ErrEmptyResponse     = errors.New("sweep: response signal is empty")
	ErrInvalidLength     = errors.New("sweep: impulse response length must be positive")
	ErrInvalidFade       = errors.New("sweep: fades must be non-negative and fit in the duration")
)

// LogSweep describes an exponential sine sweep from StartFreq to EndFreq.
type LogSweep struct {
	StartFreq  float64 `json:"startFreq"  yaml:"startFreq"`  // Hz
	EndFreq    float64 `json:"endFreq"    yaml:"endFreq"`    // Hz
	Duration   float64 `json:"duration"   yaml:"duration"`   // seconds
	SampleRate float64 `json:"sampleRate" yaml:"sampleRate"` // Hz

	// Fade is the length in seconds of the half-Hann ramps applied to
	// both ends of the excitation. Zero disables them.
	Fade float64 `json:"fade,omitempty" yaml:"fade,omitempty"`
}

// Validate checks that the sweep parameters are usable.
func (s *LogSweep) Validate() error {
	if s.StartFreq <= 0 || s.EndFreq <= 0 {
		return ErrInvalidFrequency
	}

	if s.StartFreq >= s.EndFreq {
		return ErrFrequencyOrder
	}

	if s.Duration <= 0 {
		return ErrInvalidDuration
	}

	if s.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if s.EndFreq >= s.SampleRate/2 {
		return fmt.Errorf("%w: %g Hz at %g Hz", ErrNyquist, s.EndFreq, s.SampleRate)
	}

	if s.Fade < 0 || 2*s.Fade > s.Duration {
		return fmt.Errorf("%w: %g s in %g s", ErrInvalidFade, s.Fade, s.Duration)
	}

	return nil
}

// Samples returns the length of the excitation in samples.
func (s *LogSweep) Samples() int {
	return int(math.Round(s.Duration * s.SampleRate))
}

// Generate returns the excitation signal
//
//	x(t) = sin(2π f1 T / L (exp(t L / T) - 1)),  L = ln(f2/f1)
func (s *LogSweep) Generate() ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, s.Samples())
	lnRatio := math.Log(s.EndFreq / s.StartFreq)
	k := 2 * math.Pi * s.StartFreq * s.Duration / lnRatio

	for i := range out {
		t := float64(i) / s.SampleRate
		out[i] = math.Sin(k * (math.Exp(t/s.Duration*lnRatio) - 1))
	}

	applyFades(out, int(math.Round(s.Fade*s.SampleRate)))

	return out, nil
}

// applyFades multiplies the first and last n samples by the rising and
// falling halves of a Hann window.
func applyFades(x []float64, n int) {
	if n <= 0 {
		return
	}

	last := len(x) - 1
	for i := range n {
		g := 0.5 - 0.5*math.Cos(math.Pi*float64(i)/float64(n))
		x[i] *= g
		x[last-i] *= g
	}
}

// InverseFilter returns the time-reversed sweep with an envelope rising
// 6 dB per octave, so the product of both spectra is flat over the swept
// band. It is scaled so that the excitation deconvolves to a peak of 1.
func (s *LogSweep) InverseFilter() ([]float64, error) {
	sweep, err := s.Generate()
	if err != nil {
		return nil, err
	}

	n := len(sweep)
	lnRatio := math.Log(s.EndFreq / s.StartFreq)
	inv := make([]float64, n)

	var norm float64

	for i := range inv {
		j := n - 1 - i
		t := float64(j) / s.SampleRate
		// instantaneous frequency of sweep sample j relative to EndFreq
		amp := s.StartFreq * math.Exp(t/s.Duration*lnRatio) / s.EndFreq
		inv[i] = sweep[j] * amp
		norm += sweep[j] * sweep[j] * amp
	}

	if norm <= 0 {
		return nil, fmt.Errorf("%w: sweep carries no energy", ErrInvalidDuration)
	}

	vecmath.ScaleBlock(inv, inv, 1/norm)

	return inv, nil
}

// Deconvolve returns the full linear convolution of response with the
// inverse filter. The linear impulse response starts at index
// Samples()-1; harmonic distortion products precede it.
func (s *LogSweep) Deconvolve(response []float64) ([]float64, error) {
	if len(response) == 0 {
		return nil, ErrEmptyResponse
	}

	inv, err := s.InverseFilter()
	if err != nil {
		return nil, err
	}

	return fftConvolve(response, inv)
}

// ImpulseResponse deconvolves response and returns the causal part of
// the impulse response, length samples long. The result is zero padded
// when the recording ends early.
func (s *LogSweep) ImpulseResponse(response []float64, length int) ([]float64, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}

	full, err := s.Deconvolve(response)
	if err != nil {
		return nil, err
	}

	ir := make([]float64, length)

	offset := s.Samples() - 1
	if offset < len(full) {
		copy(ir, full[offset:])
	}

	return ir, nil
}

// HarmonicOffset returns how many samples the impulse response of the
// given harmonic order arrives before the linear one.
func (s *LogSweep) HarmonicOffset(order int) int {
	if order < 2 {
		return 0
	}

	lnRatio := math.Log(s.EndFreq / s.StartFreq)

	return int(math.Round(s.Duration * math.Log(float64(order)) / lnRatio * s.SampleRate))
}

func fftConvolve(a, b []float64) ([]float64, error) {
	n := len(a) + len(b) - 1
	size := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("sweep: failed to create FFT plan: %w", err)
	}

	specA, err := forward(plan, a, size)
	if err != nil {
		return nil, err
	}

	specB, err := forward(plan, b, size)
	if err != nil {
		return nil, err
	}

	for i := range specA {
		specA[i] *= specB[i]
	}

	timeDomain := make([]complex128, size)
	if err := plan.Inverse(timeDomain, specA); err != nil {
		return nil, fmt.Errorf("sweep: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(timeDomain[i])
	}

	return out, nil
}

func forward(plan *algofft.Plan[complex128], x []float64, size int) ([]complex128, error) {
	in := make([]complex128, size)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("sweep: forward FFT failed: %w", err)
	}

	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
