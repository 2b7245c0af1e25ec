package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-roomacoustics/internal/wavio"
	"github.com/cwbudde/algo-roomacoustics/measure/sweep"
)

var errGain = errors.New("gain must be in (0, 1]")

// sweepFlags are shared by the sweep and deconvolve commands so a
// recording is always deconvolved with the excitation that produced it.
type sweepFlags struct {
	start    float64
	end      float64
	duration float64
	fade     float64
	gain     float64
}

func (s *sweepFlags) register(f *pflag.FlagSet) {
	f.Float64Var(&s.start, "start", 20, "sweep start frequency in Hz")
	f.Float64Var(&s.end, "end", 20000, "sweep end frequency in Hz")
	f.Float64Var(&s.duration, "duration", 5, "sweep duration in s")
	f.Float64Var(&s.fade, "fade", 0, "half-Hann fade at both ends in s")
	f.Float64Var(&s.gain, "gain", 0.5, "linear amplitude of the excitation")
}

func (s *sweepFlags) sweep(sampleRate float64) (*sweep.LogSweep, error) {
	if s.gain <= 0 || s.gain > 1 {
		return nil, fmt.Errorf("%w: %g", errGain, s.gain)
	}

	ls := &sweep.LogSweep{
		StartFreq:  s.start,
		EndFreq:    s.end,
		Duration:   s.duration,
		SampleRate: sampleRate,
		Fade:       s.fade,
	}

	return ls, ls.Validate()
}

func newSweepCmd(root *options) *cobra.Command {
	var (
		flags      sweepFlags
		sampleRate int
		silence    float64
	)

	cmd := &cobra.Command{
		Use:   "sweep [flags] out.wav",
		Short: "Write an exponential sine sweep excitation",
		Long: `Write a mono exponential sine sweep for impulse response measurement.
Play it through the room, record the response and pass the recording to
"roomir deconvolve" with the same sweep flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ls, err := flags.sweep(float64(sampleRate))
			if err != nil {
				return err
			}

			x, err := ls.Generate()
			if err != nil {
				return err
			}

			out := make([]float64, len(x)+int(math.Round(silence*float64(sampleRate))))
			for i, v := range x {
				out[i] = flags.gain * v
			}

			if err := wavio.Write(args[0], [][]float64{out}, sampleRate); err != nil {
				return err
			}

			root.log.WithFields(logrus.Fields{
				"file":    args[0],
				"samples": len(out),
				"start":   ls.StartFreq,
				"end":     ls.EndFreq,
			}).Info("sweep written")

			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&sampleRate, "sample-rate", 48000, "sample rate in Hz")
	cmd.Flags().Float64Var(&silence, "silence", 0, "trailing silence in s")

	return cmd
}

func newDeconvolveCmd(root *options) *cobra.Command {
	var (
		flags     sweepFlags
		length    float64
		normalize bool
	)

	cmd := &cobra.Command{
		Use:   "deconvolve [flags] recording.wav ir.wav",
		Short: "Recover an impulse response from a recorded sweep",
		Long: `Deconvolve every channel of a recorded sweep response and write the
impulse responses as a WAV file ready for "roomir analyze". The sweep flags
must match the ones used to generate the excitation.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := wavio.Read(args[0])
			if err != nil {
				return err
			}

			ls, err := flags.sweep(float64(rec.SampleRate))
			if err != nil {
				return err
			}

			n := int(math.Round(length * float64(rec.SampleRate)))
			irs := make([][]float64, len(rec.Channels))

			g, _ := errgroup.WithContext(cmd.Context())
			for c, ch := range rec.Channels {
				g.Go(func() error {
					h, err := ls.ImpulseResponse(ch, n)
					if err != nil {
						return fmt.Errorf("channel %d: %w", c, err)
					}

					for i := range h {
						h[i] /= flags.gain
					}

					irs[c] = h

					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}

			peak := peakAbs(irs)
			if normalize && peak > 0 {
				scaleAll(irs, normalizedPeak/peak)
			}

			root.log.WithFields(logrus.Fields{
				"file":     args[1],
				"channels": len(irs),
				"samples":  n,
				"peak":     peak,
			}).Info("impulse response written")

			return wavio.Write(args[1], irs, rec.SampleRate)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().Float64Var(&length, "length", 2, "impulse response length in s")
	cmd.Flags().BoolVar(&normalize, "normalize", true, "scale the loudest channel to -1 dBFS")

	return cmd
}

// normalizedPeak is -1 dBFS.
var normalizedPeak = math.Pow(10, -1.0/20)

func peakAbs(channels [][]float64) float64 {
	var peak float64

	for _, ch := range channels {
		for _, v := range ch {
			peak = math.Max(peak, math.Abs(v))
		}
	}

	return peak
}

func scaleAll(channels [][]float64, g float64) {
	for _, ch := range channels {
		for i := range ch {
			ch[i] *= g
		}
	}
}
