// Package room evaluates room-acoustic parameters after ISO 3382-1 from
// measured impulse responses.
//
// An [Analyzer] takes a [Capture] (omnidirectional, binaural or mid/side),
// trims it to the direct sound, filters it into octave bands and evaluates
// every registered [Param] the capture kind can supply channels for:
// reverberation and decay times, clarity, definition, centre time, sound
// strength and its derivatives, lateral energy measures and IACC.
//
// Sound strength needs the free-field level at 10 m, which [ReferenceLevels]
// derives from the measurement [Environment] including air damping.
package room
