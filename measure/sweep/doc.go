// Package sweep acquires room impulse responses from exponential sine
// sweep measurements.
//
// A logarithmic sweep spends equal time in every octave. Convolving the
// recorded response with the amplitude-compensated, time-reversed sweep
// collapses the excitation to a band-limited impulse, and the room's
// impulse response appears at a fixed offset in the result. Harmonic
// distortion products land before that offset and are cut away by
// [LogSweep.ImpulseResponse].
//
//	s := &sweep.LogSweep{StartFreq: 20, EndFreq: 20000, Duration: 5, SampleRate: 48000}
//	excitation, _ := s.Generate()
//	// play excitation, record response
//	ir, _ := s.ImpulseResponse(response, 48000*3)
package sweep
