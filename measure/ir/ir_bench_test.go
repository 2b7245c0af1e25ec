package ir

import (
	"testing"

	"github.com/cwbudde/algo-roomacoustics/internal/testutil"
)

func BenchmarkSchroederIntegral(b *testing.B) {
	p := testutil.ExponentialDecay(48000, 1, 3)

	for b.Loop() {
		_, _ = SchroederIntegral(p)
	}
}

func BenchmarkIACC(b *testing.B) {
	left := testutil.SyntheticRIR(48000, 1, 1, 0, 1)
	right := testutil.SyntheticRIR(48000, 1, 1, 0, 2)

	for b.Loop() {
		_, _ = IACC(left, right, 48000)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	p := testutil.SyntheticRIR(48000, 1, 2, 100, 3)
	a := NewAnalyzer(48000)

	for b.Loop() {
		_, _ = a.Analyze(p)
	}
}
