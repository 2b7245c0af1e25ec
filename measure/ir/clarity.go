package ir

import (
	"fmt"
	"math"
)

// CentreTime returns the centre time Ts in ms:
//
//	Ts = sum(t_i * p_i^2) / sum(p_i^2) * 1000,  t_i = i / fs
//
// Ts is unchanged by scaling p. A silent response returns ErrZeroEnergy.
func CentreTime(p []float64, sampleRate float64) (float64, error) {
	if err := check(p, sampleRate); err != nil {
		return 0, err
	}

	var num, den float64
	for i, v := range p {
		e := v * v
		num += float64(i) * e
		den += e
	}

	if den <= 0 {
		return 0, ErrZeroEnergy
	}

	return num / den / sampleRate * 1000, nil
}

// Clarity returns C = 10*log10(E/L) in dB, where E is the energy before
// splitMs and L the energy from splitMs on. The split sample is
// round(splitMs/1000 * fs).
func Clarity(p []float64, sampleRate, splitMs float64) (float64, error) {
	early, late, err := splitEnergy(p, sampleRate, splitMs)
	if err != nil {
		return 0, err
	}

	if early <= 0 || late <= 0 {
		return 0, fmt.Errorf("%w: early %g, late %g", ErrZeroEnergy, early, late)
	}

	return 10 * math.Log10(early/late), nil
}

// C50 is Clarity at 50 ms.
func C50(p []float64, sampleRate float64) (float64, error) {
	return Clarity(p, sampleRate, Split50Ms)
}

// C80 is Clarity at 80 ms.
func C80(p []float64, sampleRate float64) (float64, error) {
	return Clarity(p, sampleRate, Split80Ms)
}

// Definition returns D = E/(E+L), the early share of the total energy.
func Definition(p []float64, sampleRate, splitMs float64) (float64, error) {
	early, late, err := splitEnergy(p, sampleRate, splitMs)
	if err != nil {
		return 0, err
	}

	total := early + late
	if total <= 0 {
		return 0, ErrZeroEnergy
	}

	return early / total, nil
}

func splitEnergy(p []float64, sampleRate, splitMs float64) (early, late float64, err error) {
	if err := check(p, sampleRate); err != nil {
		return 0, 0, err
	}

	if splitMs <= 0 {
		return 0, 0, ErrInvalidTime
	}

	return Energy(Early(p, sampleRate, splitMs)), Energy(Late(p, sampleRate, splitMs)), nil
}
