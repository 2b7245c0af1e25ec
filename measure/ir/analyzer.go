package ir

import "errors"

// Metrics holds the broadband parameters of one impulse response.
// Parameters that cannot be computed are left at 0.
type Metrics struct {
	RT60       float64 // T30, or T20 when T30 is unavailable, in s
	EDT        float64 // early decay time in s
	T20        float64 // s
	T30        float64 // s
	C50        float64 // dB
	C80        float64 // dB
	D50        float64 // ratio 0..1
	D80        float64 // ratio 0..1
	CentreTime float64 // ms
	OnsetIndex int     // first kept sample of the input
}

// Analyzer computes broadband metrics for impulse responses sampled at
// SampleRate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze trims the silence before the direct sound and computes all
// metrics on the rest.
func (a *Analyzer) Analyze(p []float64) (Metrics, error) {
	if err := check(p, a.SampleRate); err != nil {
		return Metrics{}, err
	}

	trimmed, start, err := TrimOnset(p)
	if err != nil {
		return Metrics{}, err
	}

	fs := a.SampleRate
	m := Metrics{OnsetIndex: start}

	m.CentreTime = valueOrZero(CentreTime(trimmed, fs))
	m.C50 = valueOrZero(Clarity(trimmed, fs, Split50Ms))
	m.C80 = valueOrZero(Clarity(trimmed, fs, Split80Ms))
	m.D50 = valueOrZero(Definition(trimmed, fs, Split50Ms))
	m.D80 = valueOrZero(Definition(trimmed, fs, Split80Ms))

	curve, err := SchroederIntegral(trimmed)
	if err != nil {
		return m, err
	}

	m.EDT = valueOrZero(decayTimeFromCurve(curve, fs, RangeEDT))
	m.T20 = valueOrZero(decayTimeFromCurve(curve, fs, RangeT20))
	m.T30 = valueOrZero(decayTimeFromCurve(curve, fs, RangeT30))

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// RT60 returns T30 when the response decays far enough, T20 otherwise.
func (a *Analyzer) RT60(p []float64) (float64, error) {
	if err := check(p, a.SampleRate); err != nil {
		return 0, err
	}

	curve, err := SchroederIntegral(p)
	if err != nil {
		return 0, err
	}

	rt, err := decayTimeFromCurve(curve, a.SampleRate, RangeT30)
	if errors.Is(err, ErrNoDecay) {
		return decayTimeFromCurve(curve, a.SampleRate, RangeT20)
	}

	return rt, err
}

func valueOrZero(v float64, err error) float64 {
	if err != nil {
		return 0
	}

	return v
}
