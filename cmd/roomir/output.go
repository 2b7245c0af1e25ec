package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-roomacoustics/measure/room"
)

var errUnknownFormat = errors.New("unknown output format")

var titleCaser = cases.Title(language.English)

type reportView struct {
	File        string           `json:"file" yaml:"file"`
	ID          string           `json:"id" yaml:"id"`
	Kind        string           `json:"kind" yaml:"kind"`
	SampleRate  float64          `json:"sample_rate" yaml:"sample_rate"`
	OnsetIndex  int              `json:"onset_index" yaml:"onset_index"`
	Duration    float64          `json:"duration" yaml:"duration"`
	Environment room.Environment `json:"environment" yaml:"environment"`
	Results     []resultView     `json:"results" yaml:"results"`
}

type resultView struct {
	Param        string     `json:"param" yaml:"param"`
	Kind         string     `json:"kind" yaml:"kind"`
	Unit         string     `json:"unit,omitempty" yaml:"unit,omitempty"`
	SingleFigure *float64   `json:"single_figure,omitempty" yaml:"single_figure,omitempty"`
	Error        string     `json:"error,omitempty" yaml:"error,omitempty"`
	Bands        []bandView `json:"bands,omitempty" yaml:"bands,omitempty"`
}

type bandView struct {
	Center float64  `json:"center" yaml:"center"`
	Value  *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Error  string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func newReportView(fr fileReport) reportView {
	rep := fr.Report
	v := reportView{
		File:        fr.Path,
		ID:          rep.ID.String(),
		Kind:        rep.Kind.String(),
		SampleRate:  rep.SampleRate,
		OnsetIndex:  rep.OnsetIndex,
		Duration:    rep.Duration,
		Environment: rep.Environment,
		Results:     make([]resultView, 0, len(rep.Results)),
	}

	for _, res := range rep.Results {
		rv := resultView{Param: string(res.Param), Kind: res.Kind.String(), Unit: res.Unit}

		switch {
		case res.Err != nil:
			rv.Error = res.Err.Error()
		case res.HasSingleFigure:
			rv.SingleFigure, rv.Error = finite(res.SingleFigure)
		}

		for _, b := range res.Bands {
			bv := bandView{Center: b.CenterFreq}
			if b.Err != nil {
				bv.Error = b.Err.Error()
			} else {
				bv.Value, bv.Error = finite(b.Value)
			}

			rv.Bands = append(rv.Bands, bv)
		}

		v.Results = append(v.Results, rv)
	}

	return v
}

// finite guards the encoders against NaN and Inf, which JSON cannot hold.
func finite(x float64) (*float64, string) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil, fmt.Sprintf("non-finite value %v", x)
	}

	return &x, ""
}

type encoder struct {
	format  string
	printer *message.Printer
}

func newEncoder(format, lang string) (*encoder, error) {
	switch format {
	case "table", "json", "yaml":
	default:
		return nil, fmt.Errorf("%w: %q (want table, json or yaml)", errUnknownFormat, format)
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("lang %q: %w", lang, err)
	}

	return &encoder{format: format, printer: message.NewPrinter(tag)}, nil
}

func (e *encoder) encode(w io.Writer, reports []fileReport) error {
	views := make([]reportView, len(reports))
	for i, fr := range reports {
		views[i] = newReportView(fr)
	}

	switch e.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(views)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(views); err != nil {
			return err
		}

		return enc.Close()
	default:
		return e.table(w, views)
	}
}

func (e *encoder) table(w io.Writer, views []reportView) error {
	for i, v := range views {
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintln(w, e.printer.Sprintf("%s  %s, %v Hz, onset %d, %.2f s",
			v.File, titleCaser.String(v.Kind), v.SampleRate, v.OnsetIndex, v.Duration))

		centers := bandCenters(v.Results)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

		header := []string{"PARAM", "UNIT", "SINGLE"}
		for _, c := range centers {
			header = append(header, e.printer.Sprintf("%v", c))
		}

		fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

		for _, r := range v.Results {
			row := []string{r.Param, r.Unit, e.value(r.SingleFigure)}

			for _, c := range centers {
				row = append(row, e.value(bandValue(r.Bands, c)))
			}

			fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
		}

		if err := tw.Flush(); err != nil {
			return err
		}
	}

	return nil
}

func (e *encoder) value(v *float64) string {
	if v == nil {
		return "-"
	}

	return e.printer.Sprintf("%.2f", *v)
}

func bandCenters(results []resultView) []float64 {
	var centers []float64

	for _, r := range results {
		if len(r.Bands) > len(centers) {
			centers = centers[:0]
			for _, b := range r.Bands {
				centers = append(centers, b.Center)
			}
		}
	}

	return centers
}

func bandValue(bands []bandView, center float64) *float64 {
	for _, b := range bands {
		if b.Center == center {
			return b.Value
		}
	}

	return nil
}
