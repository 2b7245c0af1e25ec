package bank

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-roomacoustics/dsp/filter/biquad"
	"github.com/cwbudde/algo-roomacoustics/dsp/filter/design/band"
)

// octaveRatio is G = 10^(3/10) per IEC 61260.
var octaveRatio = math.Pow(10, 0.3)

// DefaultCenters are the nominal octave centres used for room-acoustic
// analysis.
var DefaultCenters = []float64{62.5, 125, 250, 500, 1000, 2000, 4000, 8000}

// DefaultOrder is the band-pass order per band.
const DefaultOrder = 6

var (
	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("bank: sample rate must be positive")
	// ErrNoBands is returned when every requested band lies above Nyquist.
	ErrNoBands = errors.New("bank: no band fits below Nyquist")
)

// Edge describes one band by its centre and cutoff frequencies.
type Edge struct {
	Center, Low, High float64
}

// Band is one designed band of the bank.
type Band struct {
	CenterFreq float64 // nominal centre in Hz
	LowCutoff  float64 // f1, about -3 dB
	HighCutoff float64 // f2, about -3 dB
	Set        band.Set
}

// Chain returns a fresh runtime cascade for the band.
func (b *Band) Chain() *biquad.Chain {
	return biquad.NewChain(b.Set.Coefficients())
}

// MagnitudeDB returns the band's magnitude response in dB at freqHz.
func (b *Band) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return b.Chain().MagnitudeDB(freqHz, sampleRate)
}

// Output is the filtered signal of one band.
type Output struct {
	Band    Band
	Samples []float64
}

// Bank is a set of independently designed band-pass filters.
type Bank struct {
	bands      []Band
	sampleRate float64
	order      int
	padding    int
}

type bankConfig struct {
	order   int
	edges   []Edge
	padding int
}

func defaultBankConfig() bankConfig {
	return bankConfig{
		order: DefaultOrder,
		edges: octaveEdges(DefaultCenters),
	}
}

// Option configures a Bank.
type Option func(*bankConfig)

// WithOrder sets the band-pass order. Odd or non-positive values are passed
// through to the designer, which rejects them.
func WithOrder(n int) Option {
	return func(cfg *bankConfig) { cfg.order = n }
}

// WithCenters replaces the band centres. Each band spans one octave,
// fc/sqrt(2) to fc*sqrt(2).
func WithCenters(centers ...float64) Option {
	return func(cfg *bankConfig) {
		if len(centers) > 0 {
			cfg.edges = octaveEdges(centers)
		}
	}
}

// WithEdges sets explicit band edges.
func WithEdges(edges ...Edge) Option {
	return func(cfg *bankConfig) {
		if len(edges) > 0 {
			cfg.edges = append([]Edge(nil), edges...)
		}
	}
}

// WithFractionalOctave uses IEC 61260 base-10 centres 1000*G^(k/N) between
// lower and upper Hz, with edges at G^(+-1/(2N)) around each centre.
func WithFractionalOctave(fraction int, lower, upper float64) Option {
	return func(cfg *bankConfig) {
		if edges := fractionalOctaveEdges(fraction, lower, upper); len(edges) > 0 {
			cfg.edges = edges
		}
	}
}

// WithTailPadding appends n zero samples before filtering so the filter
// ringing after the end of the input is kept. Default 0: outputs have the
// same length as the input.
func WithTailPadding(n int) Option {
	return func(cfg *bankConfig) {
		if n >= 0 {
			cfg.padding = n
		}
	}
}

// New designs a filter bank for sampleRate. Bands whose upper edge reaches
// Nyquist are left out.
func New(sampleRate float64, opts ...Option) (*Bank, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	cfg := defaultBankConfig()
	for _, o := range opts {
		o(&cfg)
	}

	nyquist := sampleRate / 2
	bands := make([]Band, 0, len(cfg.edges))

	for _, e := range cfg.edges {
		if e.High >= nyquist {
			continue
		}

		set, err := band.Bandpass(cfg.order, e.Low, e.High, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("bank: band %g Hz: %w", e.Center, err)
		}

		bands = append(bands, Band{
			CenterFreq: e.Center,
			LowCutoff:  e.Low,
			HighCutoff: e.High,
			Set:        set,
		})
	}

	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: fs=%g", ErrNoBands, sampleRate)
	}

	sort.Slice(bands, func(i, j int) bool {
		return bands[i].CenterFreq < bands[j].CenterFreq
	})

	return &Bank{
		bands:      bands,
		sampleRate: sampleRate,
		order:      cfg.order,
		padding:    cfg.padding,
	}, nil
}

// Bands returns all bands ordered low to high.
func (b *Bank) Bands() []Band { return b.bands }

// NumBands returns the number of bands.
func (b *Bank) NumBands() int { return len(b.bands) }

// SampleRate returns the sample rate the bank was designed for.
func (b *Bank) SampleRate() float64 { return b.sampleRate }

// Order returns the band-pass order per band.
func (b *Bank) Order() int { return b.order }

// Centers returns the band centres in ascending order.
func (b *Bank) Centers() []float64 {
	out := make([]float64, len(b.bands))
	for i := range b.bands {
		out[i] = b.bands[i].CenterFreq
	}

	return out
}

// Band returns the band with the given nominal centre.
func (b *Bank) Band(center float64) (Band, bool) {
	for _, bd := range b.bands {
		if bd.CenterFreq == center {
			return bd, true
		}
	}

	return Band{}, false
}

// Filter runs x through every band. Each band starts from zero state and
// runs its stages in series. The input is not modified.
func (b *Bank) Filter(x []float64) []Output {
	out := make([]Output, len(b.bands))
	for i := range b.bands {
		buf := make([]float64, len(x)+b.padding)
		copy(buf, x)
		b.bands[i].Chain().ProcessBlock(buf)

		out[i] = Output{Band: b.bands[i], Samples: buf}
	}

	return out
}

// FilterBand runs x through the band with the given centre only.
func (b *Bank) FilterBand(center float64, x []float64) ([]float64, bool) {
	bd, ok := b.Band(center)
	if !ok {
		return nil, false
	}

	buf := make([]float64, len(x)+b.padding)
	copy(buf, x)
	bd.Chain().ProcessBlock(buf)

	return buf, true
}

func octaveEdges(centers []float64) []Edge {
	edges := make([]Edge, len(centers))
	for i, fc := range centers {
		edges[i] = Edge{Center: fc, Low: fc / math.Sqrt2, High: fc * math.Sqrt2}
	}

	return edges
}

func fractionalOctaveEdges(fraction int, lowerHz, upperHz float64) []Edge {
	if fraction <= 0 || lowerHz <= 0 || upperHz <= lowerHz {
		return nil
	}

	n := float64(fraction)
	halfBW := math.Pow(octaveRatio, 1/(2*n))

	kMin := int(math.Ceil(n * math.Log(lowerHz/1000) / math.Log(octaveRatio)))
	kMax := int(math.Floor(n * math.Log(upperHz/1000) / math.Log(octaveRatio)))

	var edges []Edge
	for k := kMin; k <= kMax; k++ {
		fc := 1000 * math.Pow(octaveRatio, float64(k)/n)
		edges = append(edges, Edge{Center: fc, Low: fc / halfBW, High: fc * halfBW})
	}

	return edges
}
