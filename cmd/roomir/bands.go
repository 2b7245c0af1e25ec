package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-roomacoustics/dsp/filter/bank"
)

func newBandsCmd(root *options) *cobra.Command {
	var (
		sampleRate float64
		fraction   int
	)

	cmd := &cobra.Command{
		Use:   "bands",
		Short: "Print the octave-band filter design",
		Long: `Print the band-pass filter bank used for analysis: nominal centre,
cutoff frequencies, number of biquad stages and the magnitude at the centre
and at both edges.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []bank.Option{bank.WithOrder(root.order)}
			if fraction > 1 {
				opts = append(opts, bank.WithFractionalOctave(fraction, 50, 10000))
			}

			bk, err := bank.New(sampleRate, opts...)
			if err != nil {
				return err
			}

			root.log.WithField("bands", bk.NumBands()).Debug("bank designed")

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d bands at %g Hz, order %d\n", bk.NumBands(), sampleRate, bk.Order())

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "CENTER\tLOW\tHIGH\tSTAGES\tdB@LOW\tdB@CENTER\tdB@HIGH\t")

			for _, b := range bk.Bands() {
				mid := math.Sqrt(b.LowCutoff * b.HighCutoff)
				fmt.Fprintf(tw, "%g\t%.1f\t%.1f\t%d\t%.2f\t%.2f\t%.2f\t\n",
					b.CenterFreq, b.LowCutoff, b.HighCutoff, b.Set.Len(),
					b.MagnitudeDB(b.LowCutoff, sampleRate),
					b.MagnitudeDB(mid, sampleRate),
					b.MagnitudeDB(b.HighCutoff, sampleRate))
			}

			return tw.Flush()
		},
	}

	cmd.Flags().Float64Var(&sampleRate, "sample-rate", 48000, "sample rate in Hz")
	cmd.Flags().IntVar(&fraction, "fraction", 1, "bands per octave (1 for octave bands)")

	return cmd
}
