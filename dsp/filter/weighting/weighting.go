package weighting

import (
	"fmt"
	"math"
	"strings"
)

// IEC 61672 analog prototype pole frequencies (Hz).
const (
	f1 = 20.598997 // double pole for A, B, C
	f2 = 107.65265 // single pole for A
	f3 = 158.48932 // single pole for B
	f4 = 737.86223 // single pole for A
	f5 = 12194.217 // double pole for A, B, C
)

// ReferenceFreq is the frequency at which every curve is 0 dB.
const ReferenceFreq = 1000.0

// Type identifies a frequency weighting curve.
type Type int

const (
	// TypeA approximates the 40-phon equal-loudness contour.
	TypeA Type = iota
	// TypeB approximates the 70-phon contour.
	TypeB
	// TypeC approximates the 100-phon contour.
	TypeC
	// TypeZ is flat.
	TypeZ
)

// String returns the curve letter.
func (t Type) String() string {
	switch t {
	case TypeA:
		return "A"
	case TypeB:
		return "B"
	case TypeC:
		return "C"
	case TypeZ:
		return "Z"
	default:
		return "Unknown"
	}
}

// ParseType accepts the curve letter in either case.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return TypeA, nil
	case "B":
		return TypeB, nil
	case "C":
		return TypeC, nil
	case "Z":
		return TypeZ, nil
	default:
		return 0, fmt.Errorf("weighting: unknown type %q", s)
	}
}

// Gain returns the weighting in dB at freq Hz relative to 1 kHz.
// Non-positive frequencies give -Inf for A, B and C.
func (t Type) Gain(freq float64) float64 {
	if t == TypeZ {
		return 0
	}

	if freq <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(t.magnitude(freq)/t.magnitude(ReferenceFreq))
}

// Gains evaluates Gain at each frequency.
func (t Type) Gains(freqs ...float64) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = t.Gain(f)
	}

	return out
}

// magnitude is the unnormalised analog response |H(j2πf)|:
//
//	A: f5² f⁴ / ((f²+f1²) sqrt((f²+f2²)(f²+f4²)) (f²+f5²))
//	B: f5² f³ / ((f²+f1²) sqrt(f²+f3²) (f²+f5²))
//	C: f5² f² / ((f²+f1²) (f²+f5²))
func (t Type) magnitude(f float64) float64 {
	ff := f * f
	common := f5 * f5 / ((ff + f1*f1) * (ff + f5*f5))

	switch t {
	case TypeA:
		return common * ff * ff / math.Sqrt((ff+f2*f2)*(ff+f4*f4))
	case TypeB:
		return common * ff * f / math.Sqrt(ff+f3*f3)
	case TypeC:
		return common * ff
	default:
		return 1
	}
}
