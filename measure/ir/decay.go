package ir

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/stat"
)

// schroederFloorDB is written where the remaining energy is exactly zero.
const schroederFloorDB = -200

// DecayRange is a regression range on the Schroeder curve, in dB.
type DecayRange struct {
	StartDB, EndDB float64
}

// Standard ISO 3382-1 evaluation ranges.
var (
	RangeEDT = DecayRange{StartDB: 0, EndDB: -10}
	RangeT20 = DecayRange{StartDB: -5, EndDB: -25}
	RangeT30 = DecayRange{StartDB: -5, EndDB: -35}
)

// SchroederIntegral returns the backward-integrated energy decay curve in dB,
// normalised to 0 dB at index 0:
//
//	S(i) = 10*log10( sum_{k>=i} p_k^2 / sum_k p_k^2 )
func SchroederIntegral(p []float64) ([]float64, error) {
	if len(p) == 0 {
		return nil, ErrEmptyIR
	}

	sq := make([]float64, len(p))
	vecmath.MulBlock(sq, p, p)

	var acc float64
	for i := len(sq) - 1; i >= 0; i-- {
		acc += sq[i]
		sq[i] = acc
	}

	total := sq[0]
	if total <= 0 {
		return nil, ErrZeroEnergy
	}

	for i, v := range sq {
		if v <= 0 {
			sq[i] = schroederFloorDB
			continue
		}

		sq[i] = 10 * math.Log10(v/total)
	}

	return sq, nil
}

// DecayTime fits a line to the Schroeder curve of p between r.StartDB and
// r.EndDB and returns the time in seconds that line needs to fall 60 dB.
//
// The fit starts at the first sample at or below StartDB and ends at the
// first later sample at or below EndDB. ErrNoDecay is returned when either
// level is never reached or the slope is not negative.
func DecayTime(p []float64, sampleRate float64, r DecayRange) (float64, error) {
	if err := check(p, sampleRate); err != nil {
		return 0, err
	}

	curve, err := SchroederIntegral(p)
	if err != nil {
		return 0, err
	}

	return decayTimeFromCurve(curve, sampleRate, r)
}

// EDT returns the early decay time (0 to -10 dB) in seconds.
func EDT(p []float64, sampleRate float64) (float64, error) {
	return DecayTime(p, sampleRate, RangeEDT)
}

// T20 returns the reverberation time from the -5 to -25 dB range.
func T20(p []float64, sampleRate float64) (float64, error) {
	return DecayTime(p, sampleRate, RangeT20)
}

// T30 returns the reverberation time from the -5 to -35 dB range.
func T30(p []float64, sampleRate float64) (float64, error) {
	return DecayTime(p, sampleRate, RangeT30)
}

func decayTimeFromCurve(curve []float64, sampleRate float64, r DecayRange) (float64, error) {
	start, end := -1, -1

	for i, v := range curve {
		if start < 0 && v <= r.StartDB {
			start = i
		}

		if start >= 0 && v <= r.EndDB {
			end = i
			break
		}
	}

	if start < 0 || end <= start {
		return 0, fmt.Errorf("%w: range %g..%g dB", ErrNoDecay, r.StartDB, r.EndDB)
	}

	n := end - start + 1
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i) / sampleRate
	}

	_, slope := stat.LinearRegression(xs, curve[start:end+1], nil, false)
	if !(slope < 0) {
		return 0, fmt.Errorf("%w: slope %g dB/s", ErrNoDecay, slope)
	}

	return -60 / slope, nil
}
