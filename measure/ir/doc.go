// Package ir derives ISO 3382-1 room-acoustic parameters from impulse
// responses.
//
// All functions take sound-pressure samples and square them internally.
// They are usually fed one octave band at a time (see dsp/filter/bank), but
// work on broadband responses too.
//
// Energy parameters:
//
//   - [CentreTime]: first moment of the energy, in ms
//   - [Clarity]: early-to-late energy ratio in dB (C50, C80)
//   - [Definition]: early-to-total energy ratio (D50)
//   - [Strength], [StrengthDB]: level relative to a reference in dB (G)
//   - [EarlyLateralFraction]: lateral energy 5-80 ms over omni energy 0-80 ms
//   - [LateralLevel]: late lateral level relative to a reference
//   - [IACF], [IACC], [EarlyIACC]: interaural cross-correlation
//
// Decay parameters use the Schroeder backward integral and a least-squares
// line through part of it, extrapolated to -60 dB:
//
//   - [EDT]: 0 to -10 dB
//   - [T20]: -5 to -25 dB
//   - [T30]: -5 to -35 dB
//
// Measured responses start with an arbitrary amount of silence. [TrimOnset]
// removes it by locating the direct sound 20 dB below the peak.
//
// Degenerate inputs are reported as errors rather than NaN or Inf:
// [ErrZeroEnergy] for silent windows, [ErrNoDecay] when a decay range is
// never reached and [ErrNoOnset] when no direct sound can be found.
//
// # Usage
//
//	trimmed, _, err := ir.TrimOnset(samples)
//	if err != nil {
//	    return err
//	}
//	ts, _ := ir.CentreTime(trimmed, 48000)
//	c80, _ := ir.Clarity(trimmed, 48000, 80)
//	t20, _ := ir.T20(trimmed, 48000)
//	fmt.Printf("Ts = %.0f ms, C80 = %.1f dB, T20 = %.2f s\n", ts, c80, t20)
package ir
