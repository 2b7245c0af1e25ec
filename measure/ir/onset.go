package ir

import (
	"fmt"
	"math"
)

// OnsetThreshold is the direct-sound threshold relative to the peak
// magnitude, 20 dB below it.
const OnsetThreshold = 0.1

// Peak returns the index and magnitude of the largest |p_i|. The first
// occurrence wins on ties.
func Peak(p []float64) (int, float64) {
	idx, peak := 0, 0.0

	for i, v := range p {
		if av := math.Abs(v); av > peak {
			idx, peak = i, av
		}
	}

	return idx, peak
}

// FindOnset returns the index of the first sample whose magnitude exceeds
// OnsetThreshold times the peak magnitude.
func FindOnset(p []float64) (int, error) {
	if len(p) == 0 {
		return 0, ErrEmptyIR
	}

	_, peak := Peak(p)
	if peak == 0 {
		return 0, ErrNoOnset
	}

	for i, v := range p {
		if math.Abs(v)/peak > OnsetThreshold {
			return i, nil
		}
	}

	// Unreachable for a finite peak: the peak sample itself crosses.
	return 0, fmt.Errorf("%w: peak %g", ErrNoOnset, peak)
}

// TrimOnset drops the silence before the direct sound. The result starts one
// sample before the onset index (or at 0) and aliases p. start is the index
// of the first kept sample.
func TrimOnset(p []float64) (trimmed []float64, start int, err error) {
	idx, err := FindOnset(p)
	if err != nil {
		return nil, 0, err
	}

	start = max(idx-1, 0)

	return p[start:], start, nil
}

// TrimOnsetMulti trims all channels at the earliest onset found in any of
// them, so their relative timing is kept. Channels must have equal length.
func TrimOnsetMulti(channels [][]float64) (trimmed [][]float64, start int, err error) {
	if len(channels) == 0 {
		return nil, 0, ErrEmptyIR
	}

	earliest := -1

	for c, ch := range channels {
		if len(ch) != len(channels[0]) {
			return nil, 0, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrLengthMismatch, c, len(ch), len(channels[0]))
		}

		idx, err := FindOnset(ch)
		if err != nil {
			// A silent channel does not constrain the others.
			continue
		}

		if earliest < 0 || idx < earliest {
			earliest = idx
		}
	}

	if earliest < 0 {
		if len(channels[0]) == 0 {
			return nil, 0, ErrEmptyIR
		}

		return nil, 0, ErrNoOnset
	}

	start = max(earliest-1, 0)
	trimmed = make([][]float64, len(channels))

	for c, ch := range channels {
		trimmed[c] = ch[start:]
	}

	return trimmed, start, nil
}
