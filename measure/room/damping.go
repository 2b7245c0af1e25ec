package room

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when air damping is requested outside the
// validity range of the model.
var ErrOutOfRange = errors.New("room: air damping parameter out of range")

// Validity range of AirDamping.
const (
	MinTemperatureC = -20.0
	MaxTemperatureC = 50.0
	MinHumidity     = 10.0
	MaxHumidity     = 100.0
	MinDampingFreq  = 50.0
	MaxDampingFreq  = 10000.0
)

// AirDamping returns the sound attenuation of air in dB/m at one standard
// atmosphere, after Sengpiel's formulation of ISO 9613-1.
//
// temperatureC must lie in [-20, 50], humidity (relative, %) in [10, 100]
// and freq (Hz) in [50, 10000].
func AirDamping(temperatureC, humidity, freq float64) (float64, error) {
	if temperatureC < MinTemperatureC || temperatureC > MaxTemperatureC {
		return 0, fmt.Errorf("%w: temperature %g °C", ErrOutOfRange, temperatureC)
	}

	if humidity < MinHumidity || humidity > MaxHumidity {
		return 0, fmt.Errorf("%w: humidity %g %%", ErrOutOfRange, humidity)
	}

	if freq < MinDampingFreq || freq > MaxDampingFreq {
		return 0, fmt.Errorf("%w: frequency %g Hz", ErrOutOfRange, freq)
	}

	kelvin := temperatureC + 273.15
	cHumid := 4.6151 - 6.8346*math.Pow(273.15/kelvin, 1.261)
	h := humidity * math.Pow(10, cHumid)

	// Temperature relative to 20 °C.
	tr := kelvin / 293.15

	frO := 24 + 4.04e4*h*(0.02+h)/(0.391+h)
	frN := math.Pow(tr, -0.5) * (9 + 280*h*math.Exp(-4.17*(math.Pow(tr, -1.0/3)-1)))

	f2 := freq * freq
	relax := 0.01275*(math.Exp(-2239.1/kelvin)/(frO+f2/frO)) +
		0.1068*(math.Exp(-3352/kelvin)/(frN+f2/frN))

	return 8.686 * f2 * (1.84e-11*math.Sqrt(tr) + math.Pow(tr, -2.5)*relax), nil
}

// SpeedOfSound returns the speed of sound in air in m/s.
func SpeedOfSound(temperatureC float64) float64 {
	return 331.3 * math.Sqrt(1+temperatureC/273.15)
}
