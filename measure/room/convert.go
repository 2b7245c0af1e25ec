package room

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-roomacoustics/dsp/filter/biquad"
)

// ErrUnsupportedSampleRate is returned when no diffuse-field equalisation is
// tabulated for a sample rate.
var ErrUnsupportedSampleRate = errors.New("room: no diffuse-field equalisation for sample rate")

// diffuseFieldEQ holds the dummy-head diffuse-field equalisation as
// cascaded biquads per sample rate. Each row is a0 a1 a2 b0 b1 b2
// (feedback first).
var diffuseFieldEQ = map[float64][][6]float64{
	44100: {
		{1.03390088022668, -1.97973494555988, 0.966099119773324, 1.03717157599861, -1.97973494555988, 0.962828424001388},
		{1.55663287130844, -1.95449999292109, 0.44336712869156, 1.4174157669183, -1.95449999292109, 0.582584233081703},
		{1.06750221499206, -1.91935045467099, 0.932497785007943, 1.07316746758594, -1.91935045467099, 0.926832532414064},
		{1.60976355878823, -1.60282724373591, 0.390236441211773, 1.22917195316465, -1.60282724373591, 0.770828046835349},
		{1.19717815477903, -0.783429056224196, 0.802821845220972, 1.17173499354726, -0.783429056224196, 0.828265006452742},
	},
	48000: {
		{1.03116288646294, -1.98288972274762, 0.96883711353706, 1.0341694255355, -1.98288972274762, 0.965830574464501},
		{1.51201543011702, -1.96157056080646, 0.487984569882977, 1.38395740613362, -1.96157056080646, 0.616042593866378},
		{1.06214929968257, -1.93185165257814, 0.937850700317433, 1.0673652986135, -1.93185165257814, 0.932634701386496},
		{1.56639444579686, -1.66293922460509, 0.433605554203142, 1.21287221831168, -1.66293922460509, 0.787127781688317},
		{1.18833390039809, -0.954317520519217, 0.811666099601906, 1.16403197000115, -0.954317520519217, 0.835968029998845},
	},
	96000: {
		{1.01561487587935, -1.99571784647721, 0.984385124120653, 1.01712137093719, -1.99571784647721, 0.982878629062814},
		{1.25724642691672, -1.99036945334439, 0.742753573083284, 1.19290760591631, -1.99036945334439, 0.80709239408369},
		{1.03134279176981, -1.98288972274762, 0.968657208230194, 1.03397329555986, -1.98288972274762, 0.966026704440145},
		{1.29594031343839, -1.91388067146442, 0.704059686561609, 1.11122543922699, -1.91388067146442, 0.888774560773007},
		{1.10957208247321, -1.71881282300291, 0.890427917526785, 1.09543329430984, -1.71881282300291, 0.904566705690165},
	},
	192000: {
		{1.00781162037905, -1.99892917495273, 0.992188379620946, 1.00856527142218, -1.99892917495273, 0.991434728577819},
		{1.1287783325998, -1.99759091241034, 0.871221667400201, 1.09657012590408, -1.99759091241034, 0.903429874095921},
		{1.01570502154156, -1.99571784647721, 0.984294978458437, 1.01702309553418, -1.99571784647721, 0.982976904465817},
		{1.14958923430608, -1.97835301992956, 0.850410765693917, 1.05622122953109, -1.97835301992956, 0.943778770468906},
		{1.05681954554444, -1.92842236634066, 0.943180454455557, 1.04948775536706, -1.92842236634066, 0.950512244632939},
	},
}

// MidSide converts a binaural pair into mid and side signals:
//
//	M = (L + R) / sqrt(2)
//	S = (L - R) / sqrt(2)
func MidSide(left, right []float64) (mid, side []float64, err error) {
	if len(left) != len(right) {
		return nil, nil, fmt.Errorf("%w: left %d, right %d", ErrChannelLength, len(left), len(right))
	}

	mid = make([]float64, len(left))
	side = make([]float64, len(left))
	negRight := make([]float64, len(right))

	copy(mid, left)
	copy(side, left)
	vecmath.ScaleBlock(negRight, right, -1)
	vecmath.AddBlockInPlace(mid, right)
	vecmath.AddBlockInPlace(side, negRight)
	vecmath.ScaleBlock(mid, mid, 1/math.Sqrt2)
	vecmath.ScaleBlock(side, side, 1/math.Sqrt2)

	return mid, side, nil
}

// DiffuseFieldOmni estimates an omnidirectional response from a binaural
// pair: both ears are diffuse-field equalised and then averaged.
func DiffuseFieldOmni(left, right []float64, sampleRate float64) ([]float64, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: left %d, right %d", ErrChannelLength, len(left), len(right))
	}

	coeffs, err := DiffuseFieldCoefficients(sampleRate)
	if err != nil {
		return nil, err
	}

	l := make([]float64, len(left))
	r := make([]float64, len(right))
	biquad.NewChain(coeffs).ProcessBlockTo(l, left)
	biquad.NewChain(coeffs).ProcessBlockTo(r, right)

	vecmath.AddBlockInPlace(l, r)
	vecmath.ScaleBlock(l, l, 0.5)

	return l, nil
}

// DiffuseFieldCoefficients returns the normalised equalisation cascade for
// sampleRate.
func DiffuseFieldCoefficients(sampleRate float64) ([]biquad.Coefficients, error) {
	rows, ok := diffuseFieldEQ[sampleRate]
	if !ok {
		return nil, fmt.Errorf("%w: %g Hz", ErrUnsupportedSampleRate, sampleRate)
	}

	out := make([]biquad.Coefficients, len(rows))
	for i, row := range rows {
		c, err := biquad.Normalize([3]float64{row[3], row[4], row[5]}, [3]float64{row[0], row[1], row[2]})
		if err != nil {
			return nil, err
		}

		out[i] = c
	}

	return out, nil
}
