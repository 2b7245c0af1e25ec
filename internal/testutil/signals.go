// Package testutil holds deterministic signals and tolerance helpers shared by
// the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude)
// from a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse generates a unit impulse at pos. Out-of-range positions give an
// all-zero signal.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// SyntheticRIR builds a room-like impulse response: delay samples of
// silence, a direct-sound spike of 1, then seeded noise whose energy decays
// by 60 dB every rt60 seconds. The tail lasts duration seconds.
func SyntheticRIR(sampleRate, rt60, duration float64, delay int, seed int64) []float64 {
	n := int(duration * sampleRate)
	out := make([]float64, delay+n)
	noise := DeterministicNoise(seed, 1, n)

	// 60 dB energy decay equals an amplitude factor of 1e-3 over rt60.
	decayRate := 3 * math.Ln10 / rt60

	out[delay] = 1
	for i := 1; i < n; i++ {
		t := float64(i) / sampleRate
		out[delay+i] = 0.5 * noise[i] * math.Exp(-decayRate*t)
	}

	return out
}

// ExponentialDecay returns exp(-decayRate*t) with decayRate chosen so the
// energy falls by 60 dB after rt60 seconds.
func ExponentialDecay(sampleRate, rt60, duration float64) []float64 {
	n := int(duration * sampleRate)
	out := make([]float64, n)
	decayRate := 3 * math.Ln10 / rt60

	for i := range out {
		out[i] = math.Exp(-decayRate * float64(i) / sampleRate)
	}

	return out
}

// Scale returns a copy of x multiplied by g.
func Scale(x []float64, g float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v * g
	}

	return out
}
