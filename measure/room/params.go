package room

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-roomacoustics/dsp/filter/weighting"
	"github.com/cwbudde/algo-roomacoustics/measure/ir"
)

// ParamID names a room-acoustic parameter.
type ParamID string

// Parameters computed from the omnidirectional channel.
const (
	ParamEDT                    ParamID = "edt"
	ParamT20                    ParamID = "t20"
	ParamT30                    ParamID = "t30"
	ParamCentreTime             ParamID = "centreTime"
	ParamC50                    ParamID = "c50"
	ParamC80                    ParamID = "c80"
	ParamD50                    ParamID = "d50"
	ParamSoundStrength          ParamID = "soundStrength"
	ParamEarlySoundStrength     ParamID = "earlySoundStrength"
	ParamLateSoundStrength      ParamID = "lateSoundStrength"
	ParamAWeightedSoundStrength ParamID = "aWeightedSoundStrength"
	ParamLevelAdjustedC80       ParamID = "levelAdjustedC80"
	ParamTrebleRatio            ParamID = "trebleRatio"
	ParamBassRatio              ParamID = "bassRatio"
	ParamEarlyBassLevel         ParamID = "earlyBassLevel"
)

// Parameters computed from mid and side channels.
const (
	ParamEarlyLateralSoundLevel     ParamID = "earlyLateralSoundLevel"
	ParamLateLateralSoundLevel      ParamID = "lateLateralSoundLevel"
	ParamEarlyLateralEnergyFraction ParamID = "earlyLateralEnergyFraction"
)

// Parameters computed from a binaural pair.
const (
	ParamIACC  ParamID = "iacc"
	ParamEIACC ParamID = "eiacc"
)

var (
	// ErrUnknownParam is returned for a ParamID not in the registry.
	ErrUnknownParam = errors.New("room: unknown parameter")
	// ErrBandUnavailable is returned when a single-figure value needs a band
	// that was not analysed or failed.
	ErrBandUnavailable = errors.New("room: band unavailable")
	// ErrNotApplicable is returned for a parameter whose channels cannot be
	// derived from the capture kind.
	ErrNotApplicable = errors.New("room: parameter not applicable to capture kind")
)

type (
	bandFunc   func(e *evaluation, b bandSignal) (float64, error)
	singleFunc func(e *evaluation, r *Result) (float64, error)
)

// Param describes one parameter: the channel kind it reads, its unit, an
// optional per-band evaluation and an optional single-figure reduction.
type Param struct {
	ID          ParamID
	Kind        Kind
	Unit        string
	Description string

	band   bandFunc
	single singleFunc
}

// HasBands reports whether the parameter yields per-band values.
func (p Param) HasBands() bool { return p.band != nil }

// HasSingleFigure reports whether the parameter yields a single figure.
func (p Param) HasSingleFigure() bool { return p.single != nil }

var registry = []Param{
	{
		ID: ParamEDT, Kind: KindOmni, Unit: "s",
		Description: "early decay time",
		band:        omni(ir.EDT),
		single:      meanOf(500, 1000),
	},
	{
		ID: ParamT20, Kind: KindOmni, Unit: "s",
		Description: "reverberation time from a 20 dB decay",
		band:        omni(ir.T20),
		single:      meanOf(500, 1000),
	},
	{
		ID: ParamT30, Kind: KindOmni, Unit: "s",
		Description: "reverberation time from a 30 dB decay",
		band:        omni(ir.T30),
		single:      meanOf(500, 1000),
	},
	{
		ID: ParamCentreTime, Kind: KindOmni, Unit: "ms",
		Description: "centre time",
		band:        omni(ir.CentreTime),
		single:      meanOf(500, 1000),
	},
	{
		ID: ParamC50, Kind: KindOmni, Unit: "dB",
		Description: "clarity at 50 ms",
		band:        omni(ir.C50),
		single:      meanOf(500, 1000),
	},
	{
		ID: ParamC80, Kind: KindOmni, Unit: "dB",
		Description: "clarity at 80 ms",
		band:        omni(ir.C80),
		single:      meanOf(500, 1000),
	},
	{
		ID: ParamD50, Kind: KindOmni, Unit: "",
		Description: "definition",
		band: omni(func(p []float64, fs float64) (float64, error) {
			return ir.Definition(p, fs, ir.Split50Ms)
		}),
		single: meanOf(500, 1000),
	},
	{
		ID: ParamSoundStrength, Kind: KindOmni, Unit: "dB",
		Description: "sound strength",
		band:        strength(func(p []float64, _ float64) []float64 { return p }),
		single:      meanDecibelOf(500, 1000),
	},
	{
		ID: ParamEarlySoundStrength, Kind: KindOmni, Unit: "dB",
		Description: "sound strength of the first 80 ms",
		band: strength(func(p []float64, fs float64) []float64 {
			return ir.Early(p, fs, ir.Split80Ms)
		}),
		single: meanDecibelOf(500, 1000),
	},
	{
		ID: ParamLateSoundStrength, Kind: KindOmni, Unit: "dB",
		Description: "sound strength after 80 ms",
		band: strength(func(p []float64, fs float64) []float64 {
			return ir.Late(p, fs, ir.Split80Ms)
		}),
		single: meanDecibelOf(500, 1000),
	},
	{
		ID: ParamAWeightedSoundStrength, Kind: KindOmni, Unit: "dB",
		Description: "A-weighted sound strength",
		single:      aWeightedStrength,
	},
	{
		ID: ParamLevelAdjustedC80, Kind: KindOmni, Unit: "dB",
		Description: "C80 adjusted by A-weighted strength",
		single:      levelAdjustedC80,
	},
	{
		ID: ParamTrebleRatio, Kind: KindOmni, Unit: "dB",
		Description: "late strength at 4 kHz over 1 and 2 kHz",
		single:      trebleRatio,
	},
	{
		ID: ParamBassRatio, Kind: KindOmni, Unit: "",
		Description: "T20 at 125 and 250 Hz over 500 and 1000 Hz",
		single:      bassRatio,
	},
	{
		ID: ParamEarlyBassLevel, Kind: KindOmni, Unit: "dB",
		Description: "strength of the first 50 ms at 125, 250 and 500 Hz",
		single:      earlyBassLevel,
	},
	{
		ID: ParamEarlyLateralSoundLevel, Kind: KindMidSide, Unit: "dB",
		Description: "lateral sound level of the first 80 ms",
		band:        earlyLateralLevel,
		single:      meanEnergeticOf(125, 250, 500, 1000),
	},
	{
		ID: ParamLateLateralSoundLevel, Kind: KindMidSide, Unit: "dB",
		Description: "lateral sound level after 80 ms",
		band:        lateLateralLevel,
		single:      meanEnergeticOf(125, 250, 500, 1000),
	},
	{
		ID: ParamEarlyLateralEnergyFraction, Kind: KindMidSide, Unit: "",
		Description: "lateral energy 5-80 ms over omni energy 0-80 ms",
		band: func(e *evaluation, b bandSignal) (float64, error) {
			return ir.EarlyLateralFraction(b.Channels[1], b.Channels[0], e.sampleRate)
		},
		single: meanOf(125, 250, 500, 1000),
	},
	{
		ID: ParamIACC, Kind: KindBinaural, Unit: "",
		Description: "interaural cross-correlation coefficient",
		band: func(e *evaluation, b bandSignal) (float64, error) {
			return ir.IACC(b.Channels[0], b.Channels[1], e.sampleRate, e.iacc...)
		},
		single: meanOf(125, 250, 500, 1000, 2000, 4000),
	},
	{
		ID: ParamEIACC, Kind: KindBinaural, Unit: "",
		Description: "interaural cross-correlation coefficient of the first 80 ms",
		band: func(e *evaluation, b bandSignal) (float64, error) {
			return ir.EarlyIACC(b.Channels[0], b.Channels[1], e.sampleRate, e.iacc...)
		},
		single: meanOf(125, 250, 500, 1000, 2000, 4000),
	},
}

// Params returns every registered parameter in evaluation order.
func Params() []Param {
	out := make([]Param, len(registry))
	copy(out, registry)

	return out
}

// LookupParam returns the registered parameter with the given id.
func LookupParam(id ParamID) (Param, bool) {
	for _, p := range registry {
		if p.ID == id {
			return p, true
		}
	}

	return Param{}, false
}

// MeanDecibel averages levels by amplitude: 20*log10(mean(10^(v/20))).
func MeanDecibel(values ...float64) float64 {
	var sum float64
	for _, v := range values {
		sum += math.Pow(10, v/20)
	}

	return 20 * math.Log10(sum/float64(len(values)))
}

// MeanDecibelEnergetic averages levels by energy: 10*log10(mean(10^(v/10))).
func MeanDecibelEnergetic(values ...float64) float64 {
	var sum float64
	for _, v := range values {
		sum += math.Pow(10, v/10)
	}

	return 10 * math.Log10(sum/float64(len(values)))
}

func mean(values ...float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func omni(fn func(p []float64, fs float64) (float64, error)) bandFunc {
	return func(e *evaluation, b bandSignal) (float64, error) {
		return fn(b.Channels[0], e.sampleRate)
	}
}

func strength(part func(p []float64, fs float64) []float64) bandFunc {
	return func(e *evaluation, b bandSignal) (float64, error) {
		ref, err := e.referenceSignal(b.Center)
		if err != nil {
			return 0, err
		}

		return ir.Strength(part(b.Channels[0], e.sampleRate), ref)
	}
}

func earlyLateralLevel(e *evaluation, b bandSignal) (float64, error) {
	ref, err := e.referenceSignal(b.Center)
	if err != nil {
		return 0, err
	}

	return ir.Strength(ir.Early(b.Channels[1], e.sampleRate, ir.Split80Ms), ref)
}

func lateLateralLevel(e *evaluation, b bandSignal) (float64, error) {
	ref, err := e.referenceSignal(b.Center)
	if err != nil {
		return 0, err
	}

	return ir.LateralLevel(b.Channels[1], ref, e.sampleRate)
}

func reduceBands(reduce func(...float64) float64, centers ...float64) singleFunc {
	return func(_ *evaluation, r *Result) (float64, error) {
		vals, err := r.bandValues(centers...)
		if err != nil {
			return 0, err
		}

		return reduce(vals...), nil
	}
}

func meanOf(centers ...float64) singleFunc {
	return reduceBands(mean, centers...)
}

func meanDecibelOf(centers ...float64) singleFunc {
	return reduceBands(MeanDecibel, centers...)
}

func meanEnergeticOf(centers ...float64) singleFunc {
	return reduceBands(MeanDecibelEnergetic, centers...)
}

func aWeightedStrength(e *evaluation, _ *Result) (float64, error) {
	g, err := e.bandValues(ParamSoundStrength, 500, 1000)
	if err != nil {
		return 0, err
	}

	a := weighting.TypeA

	return MeanDecibel(g[0]+a.Gain(500), g[1]+a.Gain(1000)), nil
}

func levelAdjustedC80(e *evaluation, _ *Result) (float64, error) {
	c80, err := e.bandValues(ParamC80, 500, 1000)
	if err != nil {
		return 0, err
	}

	a, err := e.singleFigure(ParamAWeightedSoundStrength)
	if err != nil {
		return 0, err
	}

	return mean(c80...) + 0.62*a, nil
}

func trebleRatio(e *evaluation, _ *Result) (float64, error) {
	late, err := e.bandValues(ParamLateSoundStrength, 1000, 2000, 4000)
	if err != nil {
		return 0, err
	}

	return late[2] - MeanDecibel(late[0], late[1]), nil
}

func bassRatio(e *evaluation, _ *Result) (float64, error) {
	t20, err := e.bandValues(ParamT20, 125, 250, 500, 1000)
	if err != nil {
		return 0, err
	}

	den := t20[2] + t20[3]
	if den == 0 {
		return 0, fmt.Errorf("%w: T20 at 500 and 1000 Hz sums to zero", ir.ErrZeroEnergy)
	}

	return (t20[0] + t20[1]) / den, nil
}

func earlyBassLevel(e *evaluation, _ *Result) (float64, error) {
	early := strength(func(p []float64, fs float64) []float64 {
		return ir.Early(p, fs, ir.Split50Ms)
	})

	centers := []float64{125, 250, 500}
	vals := make([]float64, len(centers))

	for i, c := range centers {
		b, err := e.band(KindOmni, c)
		if err != nil {
			return 0, err
		}

		v, err := early(e, b)
		if err != nil {
			return 0, fmt.Errorf("room: %g Hz: %w", c, err)
		}

		vals[i] = v
	}

	return MeanDecibel(vals...), nil
}
