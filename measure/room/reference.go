package room

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-roomacoustics/dsp/filter/bank"
	"github.com/cwbudde/algo-roomacoustics/measure/ir"
)

var (
	// ErrInvalidEnvironment is returned for a non-physical Environment.
	ErrInvalidEnvironment = errors.New("room: invalid environment")
	// ErrNoReference is returned when no reference exists for a band.
	ErrNoReference = errors.New("room: no reference for band")
)

// Reference distance of the free-field level in metres.
const referenceDistance = 10.0

// Environment describes the measurement conditions used to derive the
// free-field reference level. SourcePower (W) and ReferencePressure (Pa)
// calibrate the reference when both are positive; otherwise it is derived
// from the peak of the capture.
type Environment struct {
	TemperatureC      float64 `json:"temperature" yaml:"temperature"`
	Humidity          float64 `json:"humidity" yaml:"humidity"`
	Distance          float64 `json:"distance" yaml:"distance"`
	AirDensity        float64 `json:"air_density" yaml:"air_density"`
	SourcePower       float64 `json:"source_power,omitempty" yaml:"source_power,omitempty"`
	ReferencePressure float64 `json:"reference_pressure,omitempty" yaml:"reference_pressure,omitempty"`
}

// DefaultEnvironment returns 20 °C, 50 % relative humidity, 10 m source
// distance and an air density of 1.2 kg/m³.
func DefaultEnvironment() Environment {
	return Environment{
		TemperatureC: 20,
		Humidity:     50,
		Distance:     referenceDistance,
		AirDensity:   1.2,
	}
}

// Calibrated reports whether source power and reference pressure are set.
func (e Environment) Calibrated() bool {
	return e.SourcePower > 0 && e.ReferencePressure > 0
}

// Validate checks the environment.
func (e Environment) Validate() error {
	switch {
	case e.Distance <= 0:
		return fmt.Errorf("%w: distance %g m", ErrInvalidEnvironment, e.Distance)
	case e.AirDensity <= 0:
		return fmt.Errorf("%w: air density %g", ErrInvalidEnvironment, e.AirDensity)
	case e.SourcePower < 0 || e.ReferencePressure < 0:
		return fmt.Errorf("%w: negative calibration", ErrInvalidEnvironment)
	case e.TemperatureC < MinTemperatureC || e.TemperatureC > MaxTemperatureC:
		return fmt.Errorf("%w: temperature %g °C", ErrOutOfRange, e.TemperatureC)
	case e.Humidity < MinHumidity || e.Humidity > MaxHumidity:
		return fmt.Errorf("%w: humidity %g %%", ErrOutOfRange, e.Humidity)
	}

	return nil
}

// Reference holds the free-field level at 10 m per octave band (Lpe10) and
// the band-filtered reference pulse scaled to that level.
type Reference struct {
	centers []float64
	levels  map[float64]float64
	signals map[float64][]float64
}

// ReferenceLevels computes Lpe10 for every band of bk.
//
// A one second pulse with its spike at 30 ms (roughly the flight time over
// 10 m) is filtered through the bank. Its band energy is corrected for the
// actual source distance and for air damping:
//
//	Lpe10(f) = 10*log10(sum(band^2)) + 20*log10(d/10) + K - 10*alpha(f)
//
// where alpha is AirDamping in dB/m and K the damping compensation over all
// bands. peak is the largest absolute sample of the capture; it sets the
// pulse amplitude to peak/sqrt(2) unless env is calibrated.
func ReferenceLevels(bk *bank.Bank, env Environment, peak float64) (*Reference, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}

	fs := bk.SampleRate()
	bands := bk.Bands()

	alpha := make([]float64, len(bands))
	for i, b := range bands {
		a, err := AirDamping(env.TemperatureC, env.Humidity, b.CenterFreq)
		if err != nil {
			return nil, fmt.Errorf("room: reference band %g Hz: %w", b.CenterFreq, err)
		}

		alpha[i] = a
	}

	pulse := make([]float64, int(fs))
	spike := int(math.Floor(0.03 * fs))
	if spike >= len(pulse) {
		return nil, fmt.Errorf("%w: %g Hz", ErrInvalidSampleRate, fs)
	}

	pulse[spike] = pulseAmplitude(env, peak)

	distance := 20 * math.Log10(env.Distance/referenceDistance)
	comp := dampingCompensation(alpha, env.Distance)

	ref := &Reference{
		centers: make([]float64, 0, len(bands)),
		levels:  make(map[float64]float64, len(bands)),
		signals: make(map[float64][]float64, len(bands)),
	}

	for i, out := range bk.Filter(pulse) {
		center := out.Band.CenterFreq

		raw, err := ir.LevelDB(out.Samples)
		if err != nil {
			return nil, fmt.Errorf("room: reference band %g Hz: %w", center, err)
		}

		level := raw + distance + comp - referenceDistance*alpha[i]

		scaled := make([]float64, len(out.Samples))
		vecmath.ScaleBlock(scaled, out.Samples, math.Pow(10, (level-raw)/20))

		ref.centers = append(ref.centers, center)
		ref.levels[center] = level
		ref.signals[center] = scaled
	}

	return ref, nil
}

// Centers returns the band centres in ascending order.
func (r *Reference) Centers() []float64 {
	out := make([]float64, len(r.centers))
	copy(out, r.centers)

	return out
}

// Level returns Lpe10 in dB for the band centred at center.
func (r *Reference) Level(center float64) (float64, error) {
	l, ok := r.levels[center]
	if !ok {
		return 0, fmt.Errorf("%w: %g Hz", ErrNoReference, center)
	}

	return l, nil
}

// Signal returns the reference pulse for a band, scaled so that its energy
// level equals Level(center).
func (r *Reference) Signal(center float64) ([]float64, error) {
	s, ok := r.signals[center]
	if !ok {
		return nil, fmt.Errorf("%w: %g Hz", ErrNoReference, center)
	}

	return s, nil
}

func pulseAmplitude(env Environment, peak float64) float64 {
	if !env.Calibrated() {
		return math.Abs(peak) / math.Sqrt2
	}

	c := SpeedOfSound(env.TemperatureC)

	return env.ReferencePressure *
		math.Sqrt(env.SourcePower*env.AirDensity*(c/4)*math.Pi*referenceDistance*referenceDistance)
}

// dampingCompensation weights the per-band damping over distance d with
// 2^i / (2^N - 1), favouring the upper bands.
func dampingCompensation(alpha []float64, distance float64) float64 {
	norm := math.Exp2(float64(len(alpha))) - 1

	var acc float64
	for i, a := range alpha {
		acc += math.Exp2(float64(i)) / norm * math.Pow(10, distance*a/10)
	}

	return 10 * math.Log10(acc)
}
