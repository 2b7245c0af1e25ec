package weighting

import (
	"math"
	"testing"
)

// IEC 61672-1 Table 3 relative response levels, rounded to 0.1 dB and listed
// at nominal rather than exact base-ten frequencies.
var iecTable = []struct {
	freq    float64
	a, b, c float64
}{
	{10, -70.4, -38.2, -14.3},
	{31.5, -39.4, -17.1, -3.0},
	{63, -26.2, -9.3, -0.8},
	{125, -16.1, -4.2, -0.2},
	{250, -8.6, -1.3, 0.0},
	{500, -3.2, -0.3, 0.0},
	{1000, 0.0, 0.0, 0.0},
	{2000, 1.2, -0.1, -0.2},
	{4000, 1.0, -0.7, -0.8},
	{8000, -1.1, -2.9, -3.0},
	{16000, -6.6, -8.4, -8.5},
}

func TestGain_IECTable(t *testing.T) {
	for _, tt := range iecTable {
		for _, c := range []struct {
			typ  Type
			want float64
		}{{TypeA, tt.a}, {TypeB, tt.b}, {TypeC, tt.c}} {
			got := c.typ.Gain(tt.freq)
			if math.Abs(got-c.want) > 0.15 {
				t.Errorf("%s(%g) = %.3f dB, want %.1f", c.typ, tt.freq, got, c.want)
			}
		}
	}
}

func TestGain_Reference(t *testing.T) {
	for _, typ := range []Type{TypeA, TypeB, TypeC, TypeZ} {
		if got := typ.Gain(ReferenceFreq); math.Abs(got) > 1e-12 {
			t.Errorf("%s at 1 kHz = %g", typ, got)
		}
	}
}

func TestGain_OctaveCentres(t *testing.T) {
	// A-weighting at nominal octave-band centres.
	want := []float64{-26.3567, -16.1897, -8.67483, -3.24781, 0, 1.20167, 0.963598, -1.14688}
	got := TypeA.Gains(62.5, 125, 250, 500, 1000, 2000, 4000, 8000)

	for i := range want {
		if math.Abs(got[i]-want[i]) > 5e-3 {
			t.Errorf("band %d: %.5f, want %.5f", i, got[i], want[i])
		}
	}
}

func TestGain_Edges(t *testing.T) {
	if got := TypeZ.Gain(-5); got != 0 {
		t.Errorf("Z(-5) = %g", got)
	}

	if got := TypeA.Gain(0); !math.IsInf(got, -1) {
		t.Errorf("A(0) = %g", got)
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{TypeA, TypeB, TypeC, TypeZ} {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Errorf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}

	if got, err := ParseType(" c "); err != nil || got != TypeC {
		t.Errorf("ParseType(c) = %v, %v", got, err)
	}

	if _, err := ParseType("D"); err == nil {
		t.Error("expected error for D")
	}

	if Type(9).String() != "Unknown" {
		t.Error("unexpected name for invalid type")
	}
}
