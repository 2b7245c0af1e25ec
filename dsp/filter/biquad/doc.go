// Package biquad provides the second-order IIR runtime used by the band
// filters.
//
// A [Section] runs one set of [Coefficients] in Direct Form II Transposed.
// A [Chain] cascades sections so that the output of section i feeds section
// i+1, which is how even-order band-pass designs are executed. Coefficient
// design lives in dsp/filter/design/band; this package only runs filters and
// reports their frequency and impulse responses.
//
// Raw coefficient tables whose leading feedback term is not 1 can be brought
// into this form with [Normalize].
package biquad
