package main

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-roomacoustics/dsp/filter/bank"
	"github.com/cwbudde/algo-roomacoustics/internal/wavio"
	"github.com/cwbudde/algo-roomacoustics/measure/ir"
	"github.com/cwbudde/algo-roomacoustics/measure/room"
)

type analyzeOptions struct {
	*options

	kind        string
	jobs        int
	tailPadding int
	iaccMaxLag  float64
	params      []string
	env         room.Environment
}

// fileReport pairs a report with the file it was computed from.
type fileReport struct {
	Path   string
	Report *room.Report
}

func newAnalyzeCmd(root *options) *cobra.Command {
	opts := &analyzeOptions{options: root, env: room.DefaultEnvironment()}

	cmd := &cobra.Command{
		Use:   "analyze [flags] file.wav ...",
		Short: "Evaluate room-acoustic parameters of WAV impulse responses",
		Long: `Evaluate room-acoustic parameters of one or more WAV impulse responses.

Mono files are omnidirectional. Stereo files are binaural (left, right)
unless --kind mid-side is given. Files are analysed concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.kind, "kind", "auto", "capture kind (auto, omni, binaural, mid-side)")
	f.IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "files analysed in parallel")
	f.IntVar(&opts.tailPadding, "tail-padding", 0, "zero samples appended before band filtering")
	f.Float64Var(&opts.iaccMaxLag, "iacc-max-lag", ir.DefaultMaxLagMs, "IACC lag range in ms (0 for all lags)")
	f.StringSliceVar(&opts.params, "params", nil, "parameters to evaluate (default all)")
	f.Float64Var(&opts.env.TemperatureC, "temperature", opts.env.TemperatureC, "air temperature in °C")
	f.Float64Var(&opts.env.Humidity, "humidity", opts.env.Humidity, "relative humidity in %")
	f.Float64Var(&opts.env.Distance, "distance", opts.env.Distance, "source distance in m")
	f.Float64Var(&opts.env.AirDensity, "air-density", opts.env.AirDensity, "air density in kg/m³")
	f.Float64Var(&opts.env.SourcePower, "source-power", 0, "calibrated source power in W")
	f.Float64Var(&opts.env.ReferencePressure, "reference-pressure", 0, "calibrated reference pressure in Pa")

	return cmd
}

func (o *analyzeOptions) analyzer() (*room.Analyzer, error) {
	ids := make([]room.ParamID, len(o.params))
	for i, p := range o.params {
		ids[i] = room.ParamID(p)
	}

	return room.NewAnalyzer(
		room.WithEnvironment(o.env),
		room.WithParams(ids...),
		room.WithBankOptions(bank.WithOrder(o.order), bank.WithTailPadding(o.tailPadding)),
		room.WithIACCOptions(ir.WithMaxLag(o.iaccMaxLag)),
	)
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions, paths []string) error {
	enc, err := newEncoder(opts.format, opts.lang)
	if err != nil {
		return err
	}

	a, err := opts.analyzer()
	if err != nil {
		return err
	}

	reports := make([]fileReport, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	if opts.jobs > 0 {
		g.SetLimit(opts.jobs)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rep, err := analyzeFile(a, path, opts.kind)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			logReport(opts.log, path, rep)
			reports[i] = fileReport{Path: path, Report: rep}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return enc.encode(cmd.OutOrStdout(), reports)
}

func analyzeFile(a *room.Analyzer, path, kind string) (*room.Report, error) {
	audio, err := wavio.Read(path)
	if err != nil {
		return nil, err
	}

	k, err := captureKind(kind, len(audio.Channels))
	if err != nil {
		return nil, err
	}

	return a.Analyze(room.Capture{
		Kind:       k,
		Channels:   audio.Channels,
		SampleRate: float64(audio.SampleRate),
	})
}

// captureKind resolves "auto" from the channel count: mono is
// omnidirectional, stereo binaural.
func captureKind(name string, channels int) (room.Kind, error) {
	if name != "auto" {
		return room.ParseKind(name)
	}

	switch channels {
	case 1:
		return room.KindOmni, nil
	case 2:
		return room.KindBinaural, nil
	default:
		return 0, fmt.Errorf("%w: cannot infer kind for %d channels", room.ErrChannelCount, channels)
	}
}

func logReport(log *logrus.Logger, path string, rep *room.Report) {
	log.WithFields(logrus.Fields{
		"file":        path,
		"kind":        rep.Kind.String(),
		"sample_rate": rep.SampleRate,
		"onset":       rep.OnsetIndex,
		"id":          rep.ID.String(),
	}).Info("analysed")

	for _, res := range rep.Results {
		if res.Err != nil {
			log.WithFields(logrus.Fields{
				"file":  path,
				"param": res.Param,
			}).WithError(res.Err).Warn("parameter unavailable")
		}

		for _, b := range res.Bands {
			if b.Err != nil {
				log.WithFields(logrus.Fields{
					"file":  path,
					"param": res.Param,
					"band":  b.CenterFreq,
				}).WithError(b.Err).Debug("band unavailable")
			}
		}
	}
}
