package ir

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
)

// DefaultMaxLagMs is the ISO 3382-1 lag limit for IACC.
const DefaultMaxLagMs = 1.0

type iaccConfig struct {
	maxLagMs     float64
	fromMs, toMs float64
	windowed     bool
}

// IACCOption configures IACF and IACC.
type IACCOption func(*iaccConfig)

// WithMaxLag limits the lag search to +-ms. A value <= 0 searches every lag.
func WithMaxLag(ms float64) IACCOption {
	return func(cfg *iaccConfig) { cfg.maxLagMs = ms }
}

// WithWindow restricts the correlation to samples in [fromMs, toMs).
func WithWindow(fromMs, toMs float64) IACCOption {
	return func(cfg *iaccConfig) {
		cfg.fromMs, cfg.toMs = fromMs, toMs
		cfg.windowed = true
	}
}

// IACF returns the normalised interaural cross-correlation
//
//	IACF(tau) = sum(l_i * r_{i+tau}) / sqrt(sum(l^2) * sum(r^2))
//
// for tau in [-maxLag, +maxLag] samples; index maxLag holds tau = 0.
// The correlation is computed by FFT.
func IACF(left, right []float64, sampleRate float64, opts ...IACCOption) ([]float64, error) {
	cfg := iaccConfig{maxLagMs: DefaultMaxLagMs}
	for _, o := range opts {
		o(&cfg)
	}

	if err := check(left, sampleRate); err != nil {
		return nil, err
	}

	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: left %d, right %d", ErrLengthMismatch, len(left), len(right))
	}

	if cfg.windowed {
		left = Window(left, sampleRate, cfg.fromMs, cfg.toMs)
		right = Window(right, sampleRate, cfg.fromMs, cfg.toMs)
	}

	el, er := Energy(left), Energy(right)
	if el <= 0 || er <= 0 {
		return nil, fmt.Errorf("%w: left %g, right %g", ErrZeroEnergy, el, er)
	}

	n := len(left)
	maxLag := n - 1
	if cfg.maxLagMs > 0 {
		maxLag = min(SampleIndex(cfg.maxLagMs, sampleRate), n-1)
	}

	full, err := crossCorrelate(right, left)
	if err != nil {
		return nil, err
	}

	// full[n-1+k] = sum(r_{i+k} * l_i), i.e. lag k.
	norm := math.Sqrt(el * er)
	out := make([]float64, 2*maxLag+1)
	for k := -maxLag; k <= maxLag; k++ {
		out[k+maxLag] = full[n-1+k] / norm
	}

	return out, nil
}

// IACC returns max |IACF(tau)| over the configured lag range.
func IACC(left, right []float64, sampleRate float64, opts ...IACCOption) (float64, error) {
	iacf, err := IACF(left, right, sampleRate, opts...)
	if err != nil {
		return 0, err
	}

	var best float64
	for _, v := range iacf {
		best = max(best, math.Abs(v))
	}

	return best, nil
}

// EarlyIACC returns IACC over the first 80 ms.
func EarlyIACC(left, right []float64, sampleRate float64, opts ...IACCOption) (float64, error) {
	opts = append(opts[:len(opts):len(opts)], WithWindow(0, Split80Ms))

	return IACC(left, right, sampleRate, opts...)
}

// crossCorrelate returns the linear cross-correlation of a and b over lags
// -(len(b)-1)..len(a)-1, where out[len(b)-1+k] = sum_i a[i+k]*b[i].
func crossCorrelate(a, b []float64) ([]float64, error) {
	n, m := len(a), len(b)
	size := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("ir: FFT plan: %w", err)
	}

	ap := make([]complex128, size)
	bp := make([]complex128, size)
	for i, v := range a {
		ap[i] = complex(v, 0)
	}
	for i, v := range b {
		bp[i] = complex(v, 0)
	}

	af := make([]complex128, size)
	bf := make([]complex128, size)

	if err := plan.Forward(af, ap); err != nil {
		return nil, fmt.Errorf("ir: forward FFT: %w", err)
	}

	if err := plan.Forward(bf, bp); err != nil {
		return nil, fmt.Errorf("ir: forward FFT: %w", err)
	}

	for i := range af {
		af[i] *= complex(real(bf[i]), -imag(bf[i]))
	}

	if err := plan.Inverse(ap, af); err != nil {
		return nil, fmt.Errorf("ir: inverse FFT: %w", err)
	}

	out := make([]float64, n+m-1)
	for i := 0; i < n; i++ {
		out[m-1+i] = real(ap[i])
	}
	for i := 0; i < m-1; i++ {
		out[i] = real(ap[size-m+1+i])
	}

	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
