// Package band designs even-order digital band-pass filters as cascades of
// second-order sections, following Robertson's bilinear band-pass method.
//
// An order-n design produces n/2 stages. Every stage shares the feedforward
// polynomial
//
//	b = [1, 0, -1]
//
// and has its own feedback polynomial a = [1, -2*Re(p), |p|^2] built from one
// digital pole p. The analog prototype is a Butterworth low-pass whose poles
// sit on the unit circle at angles theta_k = (2k-1)*pi/(2N); each one is
// transformed to a band-pass pole around the pre-warped geometric centre
// F0 = sqrt(F1*F2) and then mapped to the z-plane with the bilinear
// transform.
//
// Each stage gets a gain K_k = 1/|H_k(f0)| evaluated at the un-warped centre
// f0 = sqrt(f1*f2), so the cascade has unity gain at f0 and about -3 dB at f1
// and f2.
//
// # Usage
//
//	set, err := band.Bandpass(6, 707.1, 1414.2, 48000)
//	if err != nil {
//	    return err
//	}
//	chain := biquad.NewChain(set.Coefficients())
//	chain.ProcessBlock(buf)
package band
