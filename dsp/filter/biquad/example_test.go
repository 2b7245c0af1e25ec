package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-roomacoustics/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	for i := range 4 {
		x := 0.0
		if i == 0 {
			x = 1
		}

		fmt.Printf("y[%d] = %.4f\n", i, s.ProcessSample(x))
	}
	// Output:
	// y[0] = 0.2500
	// y[1] = 0.5500
	// y[2] = 0.3500
	// y[3] = 0.0480
}

func ExampleNormalize() {
	c, err := biquad.Normalize([3]float64{2, 0, -2}, [3]float64{2, -1, 0.5})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%+v\n", c)
	// Output:
	// {B0:1 B1:0 B2:-1 A1:-0.5 A2:0.25}
}
