package ir

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Standard time boundaries in ms.
const (
	Split50Ms      = 50.0
	Split80Ms      = 80.0
	LateralStartMs = 5.0
)

// SampleIndex converts a time in ms to the nearest sample index.
func SampleIndex(ms, sampleRate float64) int {
	return int(math.Round(ms * 0.001 * sampleRate))
}

// Early returns the samples before ms. The result aliases p.
func Early(p []float64, sampleRate, ms float64) []float64 {
	return p[:clampIndex(SampleIndex(ms, sampleRate), len(p))]
}

// Late returns the samples from ms on. The result aliases p.
func Late(p []float64, sampleRate, ms float64) []float64 {
	return p[clampIndex(SampleIndex(ms, sampleRate), len(p)):]
}

// Window returns the samples in [fromMs, toMs). The result aliases p.
func Window(p []float64, sampleRate, fromMs, toMs float64) []float64 {
	from := clampIndex(SampleIndex(fromMs, sampleRate), len(p))
	to := clampIndex(SampleIndex(toMs, sampleRate), len(p))

	if to < from {
		to = from
	}

	return p[from:to]
}

// Energy returns the sum of squared samples.
func Energy(p []float64) float64 {
	return floats.Dot(p, p)
}

// LevelDB returns 10*log10(Energy(p)). Zero energy is an error.
func LevelDB(p []float64) (float64, error) {
	e := Energy(p)
	if e <= 0 {
		return 0, ErrZeroEnergy
	}

	return 10 * math.Log10(e), nil
}

// Strength returns the sound strength G = 10*log10(sum(m^2) / sum(r^2)) in dB
// of measured relative to reference.
func Strength(measured, reference []float64) (float64, error) {
	if len(measured) == 0 || len(reference) == 0 {
		return 0, ErrEmptyIR
	}

	em, er := Energy(measured), Energy(reference)
	if em <= 0 || er <= 0 {
		return 0, fmt.Errorf("%w: measured %g, reference %g", ErrZeroEnergy, em, er)
	}

	return 10 * math.Log10(em/er), nil
}

// StrengthDB returns the level of p relative to a reference level already
// expressed in dB, such as a free-field level at 10 m.
func StrengthDB(p []float64, referenceDB float64) (float64, error) {
	if len(p) == 0 {
		return 0, ErrEmptyIR
	}

	l, err := LevelDB(p)
	if err != nil {
		return 0, err
	}

	return l - referenceDB, nil
}

// EarlyLateralFraction returns the lateral energy between 5 and 80 ms
// divided by the omnidirectional energy between 0 and 80 ms.
func EarlyLateralFraction(lateral, omni []float64, sampleRate float64) (float64, error) {
	if err := check(omni, sampleRate); err != nil {
		return 0, err
	}

	if len(lateral) != len(omni) {
		return 0, fmt.Errorf("%w: lateral %d, omni %d", ErrLengthMismatch, len(lateral), len(omni))
	}

	num := Energy(Window(lateral, sampleRate, LateralStartMs, Split80Ms))
	den := Energy(Early(omni, sampleRate, Split80Ms))

	if den <= 0 {
		return 0, ErrZeroEnergy
	}

	return num / den, nil
}

// LateralLevel returns the late lateral sound level
// 10*log10(sum(late lateral^2) / sum(reference^2)) where late means after
// 80 ms.
func LateralLevel(lateral, reference []float64, sampleRate float64) (float64, error) {
	if err := check(lateral, sampleRate); err != nil {
		return 0, err
	}

	return Strength(Late(lateral, sampleRate, Split80Ms), reference)
}

func clampIndex(i, n int) int {
	return max(0, min(i, n))
}
