// Package weighting evaluates the A, B, C and Z frequency weighting curves
// of IEC 61672 from their analog prototypes.
//
// Gains are relative to 1 kHz, so every curve passes 0 dB there. Room
// acoustics uses them to weight octave-band levels, for example the
// A-weighted sound strength.
package weighting
