package bank_test

import (
	"fmt"

	"github.com/cwbudde/algo-roomacoustics/dsp/filter/bank"
)

func ExampleNew() {
	b, err := bank.New(48000)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, bd := range b.Bands() {
		fmt.Printf("%6.1f Hz (%.0f - %.0f)\n", bd.CenterFreq, bd.LowCutoff, bd.HighCutoff)
	}
	// Output:
	//   62.5 Hz (44 - 88)
	//  125.0 Hz (88 - 177)
	//  250.0 Hz (177 - 354)
	//  500.0 Hz (354 - 707)
	// 1000.0 Hz (707 - 1414)
	// 2000.0 Hz (1414 - 2828)
	// 4000.0 Hz (2828 - 5657)
	// 8000.0 Hz (5657 - 11314)
}
