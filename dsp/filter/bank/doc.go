// Package bank splits an impulse response into frequency bands.
//
// By default the bank holds eight octave bands with nominal centres 62.5,
// 125, 250, 500, 1000, 2000, 4000 and 8000 Hz. Each band spans
//
//	f1 = fc / sqrt(2)
//	f2 = fc * sqrt(2)
//
// and is a 6th-order band-pass from dsp/filter/design/band, run as a cascade
// of biquad stages. Bands are designed independently; a band whose upper edge
// reaches Nyquist is dropped, so low sample rates simply produce fewer bands.
//
// [WithFractionalOctave] switches to IEC 61260 base-10 centres
// (G = 10^(3/10)) for 1/N-octave analysis, and [WithEdges] accepts an
// arbitrary edge list.
//
// Basic usage:
//
//	b, err := bank.New(48000)
//	if err != nil {
//	    return err
//	}
//	for _, out := range b.Filter(ir) {
//	    fmt.Printf("%g Hz: %d samples\n", out.Band.CenterFreq, len(out.Samples))
//	}
package bank
