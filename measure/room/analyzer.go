package room

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-roomacoustics/dsp/filter/bank"
	"github.com/cwbudde/algo-roomacoustics/measure/ir"
)

// BandValue is a parameter value in one octave band.
type BandValue struct {
	CenterFreq float64 `json:"center"`
	Value      float64 `json:"value"`
	Err        error   `json:"-" yaml:"-"`
}

// Result holds one parameter of a Report. Bands are ordered by ascending
// centre frequency; SingleFigure is only meaningful when HasSingleFigure is
// set and Err is nil.
type Result struct {
	Param           ParamID     `json:"param"`
	Kind            Kind        `json:"kind"`
	Unit            string      `json:"unit,omitempty"`
	SingleFigure    float64     `json:"single_figure"`
	HasSingleFigure bool        `json:"has_single_figure"`
	Bands           []BandValue `json:"bands,omitempty"`
	Err             error       `json:"-" yaml:"-"`
}

// Band returns the value for the band centred at center.
func (r *Result) Band(center float64) (BandValue, bool) {
	for _, b := range r.Bands {
		if b.CenterFreq == center {
			return b, true
		}
	}

	return BandValue{}, false
}

func (r *Result) bandValues(centers ...float64) ([]float64, error) {
	out := make([]float64, len(centers))

	for i, c := range centers {
		b, ok := r.Band(c)
		if !ok {
			return nil, fmt.Errorf("%w: %s at %g Hz not analysed", ErrBandUnavailable, r.Param, c)
		}

		if b.Err != nil {
			return nil, fmt.Errorf("%w: %s at %g Hz: %w", ErrBandUnavailable, r.Param, c, b.Err)
		}

		out[i] = b.Value
	}

	return out, nil
}

// Report is the outcome of analysing one capture.
type Report struct {
	ID          uuid.UUID   `json:"id"`
	Kind        Kind        `json:"kind"`
	SampleRate  float64     `json:"sample_rate"`
	OnsetIndex  int         `json:"onset_index"`
	Duration    float64     `json:"duration"`
	Centers     []float64   `json:"centers"`
	Environment Environment `json:"environment"`
	Results     []Result    `json:"results"`
}

// Result returns the result for id.
func (r *Report) Result(id ParamID) (Result, bool) {
	for _, res := range r.Results {
		if res.Param == id {
			return res, true
		}
	}

	return Result{}, false
}

// Option configures an Analyzer.
type Option func(*analyzerConfig)

type analyzerConfig struct {
	env      Environment
	bankOpts []bank.Option
	params   []ParamID
	iacc     []ir.IACCOption
}

// WithEnvironment sets the measurement conditions for the reference level.
func WithEnvironment(env Environment) Option {
	return func(c *analyzerConfig) { c.env = env }
}

// WithBankOptions configures the octave-band filter bank.
func WithBankOptions(opts ...bank.Option) Option {
	return func(c *analyzerConfig) { c.bankOpts = append(c.bankOpts, opts...) }
}

// WithParams restricts the analysis to the given parameters. Parameters not
// applicable to a capture kind are still skipped.
func WithParams(ids ...ParamID) Option {
	return func(c *analyzerConfig) { c.params = append(c.params, ids...) }
}

// WithIACCOptions configures IACC and EIACC evaluation.
func WithIACCOptions(opts ...ir.IACCOption) Option {
	return func(c *analyzerConfig) { c.iacc = append(c.iacc, opts...) }
}

// Analyzer derives room-acoustic parameters from captures.
type Analyzer struct {
	cfg analyzerConfig
}

// NewAnalyzer returns an Analyzer with the default environment, the default
// octave bank and every registered parameter.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	cfg := analyzerConfig{env: DefaultEnvironment()}
	for _, o := range opts {
		o(&cfg)
	}

	for _, id := range cfg.params {
		if _, ok := LookupParam(id); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParam, id)
		}
	}

	if err := cfg.env.Validate(); err != nil {
		return nil, err
	}

	return &Analyzer{cfg: cfg}, nil
}

// Environment returns the configured environment.
func (a *Analyzer) Environment() Environment { return a.cfg.env }

// Analyze trims the capture to its direct sound, derives the channel sets
// the capture kind supports, filters them into octave bands and evaluates
// every applicable parameter.
//
// Only an invalid capture, a capture without onset or an invalid bank
// configuration fail the call. Failures of individual parameters or bands
// are recorded in the Result and BandValue Err fields.
func (a *Analyzer) Analyze(c Capture) (*Report, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	trimmed, start, err := ir.TrimOnsetMulti(c.Channels)
	if err != nil {
		return nil, fmt.Errorf("room: %w", err)
	}

	bk, err := bank.New(c.SampleRate, a.cfg.bankOpts...)
	if err != nil {
		return nil, fmt.Errorf("room: %w", err)
	}

	_, peak := ir.Peak(c.Channels[0])

	e := newEvaluation(c.SampleRate, a.cfg.iacc)
	e.deriveChannels(c.Kind, trimmed, bk)
	e.ref, e.refErr = ReferenceLevels(bk, a.cfg.env, peak)

	report := &Report{
		ID:          uuid.New(),
		Kind:        c.Kind,
		SampleRate:  c.SampleRate,
		OnsetIndex:  start,
		Duration:    float64(len(trimmed[0])) / c.SampleRate,
		Centers:     bk.Centers(),
		Environment: a.cfg.env,
	}

	for _, p := range registry {
		if !c.Kind.Supports(p.Kind) || !a.selected(p.ID) {
			continue
		}

		report.Results = append(report.Results, *e.result(p.ID))
	}

	return report, nil
}

func (a *Analyzer) selected(id ParamID) bool {
	return len(a.cfg.params) == 0 || slices.Contains(a.cfg.params, id)
}

// Supports reports whether a capture of kind k can provide the channels a
// parameter of kind param reads. Binaural captures supply every kind; mid
// channels double as omnidirectional.
func (k Kind) Supports(param Kind) bool {
	switch k {
	case KindBinaural:
		return true
	case KindMidSide:
		return param == KindMidSide || param == KindOmni
	default:
		return param == k
	}
}

type bandSignal struct {
	Center   float64
	Channels [][]float64
}

// evaluation memoises parameter results of one Analyze call so that
// parameters can build on each other.
type evaluation struct {
	sampleRate float64
	iacc       []ir.IACCOption

	catalog map[ParamID]Param
	bands   map[Kind][]bandSignal
	bandErr map[Kind]error
	ref     *Reference
	refErr  error
	results map[ParamID]*Result
}

func newEvaluation(sampleRate float64, iacc []ir.IACCOption) *evaluation {
	catalog := make(map[ParamID]Param, len(registry))
	for _, p := range registry {
		catalog[p.ID] = p
	}

	return &evaluation{
		sampleRate: sampleRate,
		iacc:       iacc,
		catalog:    catalog,
		bands:      make(map[Kind][]bandSignal),
		bandErr:    make(map[Kind]error),
		results:    make(map[ParamID]*Result),
	}
}

func (e *evaluation) deriveChannels(kind Kind, ch [][]float64, bk *bank.Bank) {
	switch kind {
	case KindOmni:
		e.setBands(KindOmni, bk, ch[0])
	case KindMidSide:
		e.setBands(KindOmni, bk, ch[0])
		e.setBands(KindMidSide, bk, ch[0], ch[1])
	case KindBinaural:
		e.setBands(KindBinaural, bk, ch[0], ch[1])

		mid, side, err := MidSide(ch[0], ch[1])
		if err != nil {
			e.bandErr[KindMidSide] = err
		} else {
			e.setBands(KindMidSide, bk, mid, side)
		}

		o, err := DiffuseFieldOmni(ch[0], ch[1], e.sampleRate)
		if err != nil {
			e.bandErr[KindOmni] = err
		} else {
			e.setBands(KindOmni, bk, o)
		}
	}
}

func (e *evaluation) setBands(kind Kind, bk *bank.Bank, channels ...[]float64) {
	outs := make([][]bank.Output, len(channels))
	for i, ch := range channels {
		outs[i] = bk.Filter(ch)
	}

	bands := make([]bandSignal, bk.NumBands())
	for i := range bands {
		bands[i].Center = outs[0][i].Band.CenterFreq
		bands[i].Channels = make([][]float64, len(channels))

		for j := range channels {
			bands[i].Channels[j] = outs[j][i].Samples
		}
	}

	e.bands[kind] = bands
}

func (e *evaluation) band(kind Kind, center float64) (bandSignal, error) {
	if err := e.bandErr[kind]; err != nil {
		return bandSignal{}, err
	}

	bands, ok := e.bands[kind]
	if !ok {
		return bandSignal{}, fmt.Errorf("%w: %s", ErrNotApplicable, kind)
	}

	for _, b := range bands {
		if b.Center == center {
			return b, nil
		}
	}

	return bandSignal{}, fmt.Errorf("%w: %g Hz not analysed", ErrBandUnavailable, center)
}

func (e *evaluation) referenceSignal(center float64) ([]float64, error) {
	if e.refErr != nil {
		return nil, e.refErr
	}

	return e.ref.Signal(center)
}

func (e *evaluation) result(id ParamID) *Result {
	if r, ok := e.results[id]; ok {
		return r
	}

	p := e.catalog[id]
	r := &Result{Param: p.ID, Kind: p.Kind, Unit: p.Unit}
	e.results[id] = r

	if err := e.bandErr[p.Kind]; err != nil {
		r.Err = err
		return r
	}

	if p.band != nil {
		bands, ok := e.bands[p.Kind]
		if !ok {
			r.Err = fmt.Errorf("%w: %s", ErrNotApplicable, p.Kind)
			return r
		}

		r.Bands = make([]BandValue, len(bands))
		for i, b := range bands {
			v, err := p.band(e, b)
			r.Bands[i] = BandValue{CenterFreq: b.Center, Value: v, Err: err}
		}
	}

	if p.single != nil {
		v, err := p.single(e, r)
		if err != nil {
			r.Err = err
			return r
		}

		r.SingleFigure = v
		r.HasSingleFigure = true
	}

	return r
}

func (e *evaluation) bandValues(id ParamID, centers ...float64) ([]float64, error) {
	r := e.result(id)
	if r.Err != nil && len(r.Bands) == 0 {
		return nil, r.Err
	}

	return r.bandValues(centers...)
}

func (e *evaluation) singleFigure(id ParamID) (float64, error) {
	r := e.result(id)
	if r.Err != nil {
		return 0, r.Err
	}

	return r.SingleFigure, nil
}
