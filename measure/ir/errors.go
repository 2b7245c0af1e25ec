package ir

import "errors"

var (
	// ErrEmptyIR is returned for an empty impulse response.
	ErrEmptyIR = errors.New("ir: impulse response is empty")
	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	// ErrInvalidTime is returned for a non-positive time boundary.
	ErrInvalidTime = errors.New("ir: time must be positive")
	// ErrZeroEnergy is returned when a required energy sum is zero.
	ErrZeroEnergy = errors.New("ir: zero energy")
	// ErrLengthMismatch is returned when paired signals differ in length.
	ErrLengthMismatch = errors.New("ir: signal lengths differ")
	// ErrNoDecay is returned when the decay curve never spans the
	// requested range.
	ErrNoDecay = errors.New("ir: insufficient decay for reverberation time")
	// ErrNoOnset is returned when no sample rises above the onset
	// threshold.
	ErrNoOnset = errors.New("ir: no direct sound found")
)

func check(p []float64, sampleRate float64) error {
	if len(p) == 0 {
		return ErrEmptyIR
	}

	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	return nil
}
