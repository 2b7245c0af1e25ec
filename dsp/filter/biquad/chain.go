package biquad

import "github.com/cwbudde/algo-vecmath"

// Chain is a cascade of sections processed in series. Band-pass designs of
// order n become n/2 sections here.
type Chain struct {
	sections []Section
	gain     float64
}

type chainConfig struct {
	gain float64
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithGain sets a gain applied to the input before the first section.
// Default is 1.
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// NewChain creates a cascade with one Section per Coefficients value.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, o := range opts {
		o(&cfg)
	}

	c := &Chain{
		sections: make([]Section, len(coeffs)),
		gain:     cfg.gain,
	}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample runs x through every section in order.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place through the cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		vecmath.ScaleBlock(buf, buf, c.gain)
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// ProcessBlockTo filters src into dst without touching src.
func (c *Chain) ProcessBlockTo(dst, src []float64) {
	n := copy(dst, src)
	c.ProcessBlock(dst[:n])
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// State returns a snapshot of every section's delay line.
func (c *Chain) State() [][2]float64 {
	st := make([][2]float64, len(c.sections))
	for i := range c.sections {
		st[i] = c.sections[i].State()
	}

	return st
}

// SetState restores a snapshot from State. Extra or missing entries are
// ignored.
func (c *Chain) SetState(st [][2]float64) {
	for i := range c.sections {
		if i < len(st) {
			c.sections[i].SetState(st[i])
		}
	}
}

// Section returns the i-th section.
func (c *Chain) Section(i int) *Section { return &c.sections[i] }

// Order returns the filter order, two per section.
func (c *Chain) Order() int { return 2 * len(c.sections) }

// NumSections returns the number of sections.
func (c *Chain) NumSections() int { return len(c.sections) }

// Gain returns the input gain.
func (c *Chain) Gain() float64 { return c.gain }
