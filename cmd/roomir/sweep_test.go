package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-roomacoustics/internal/wavio"
)

var sweepArgs = []string{"--start", "50", "--end", "7000", "--duration", "0.25", "--gain", "0.5"}

// recordSweep writes the excitation through the sweep command and returns
// a recording of it with a reflection at half amplitude after delay samples.
func recordSweep(t *testing.T, delay int) string {
	t.Helper()

	dir := t.TempDir()
	excitation := filepath.Join(dir, "sweep.wav")

	args := append([]string{"sweep", "--sample-rate", "16000"}, sweepArgs...)
	_, _, err := run(t, append(args, excitation)...)
	require.NoError(t, err)

	x, err := wavio.Read(excitation)
	require.NoError(t, err)
	require.Equal(t, 16000, x.SampleRate)
	require.Equal(t, 4000, x.Frames())

	rec := make([]float64, x.Frames()+delay)
	for i, v := range x.Channels[0] {
		rec[i] += v
		rec[i+delay] += 0.5 * v
	}

	path := filepath.Join(dir, "recording.wav")
	require.NoError(t, wavio.Write(path, [][]float64{rec, rec}, 16000))

	return path
}

func TestSweep_Silence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.wav")

	_, _, err := run(t, "sweep", "--sample-rate", "8000", "--duration", "0.5", "--end", "3000", "--silence", "0.25", path)
	require.NoError(t, err)

	a, err := wavio.Read(path)
	require.NoError(t, err)
	assert.Equal(t, 6000, a.Frames())
	assert.Equal(t, 0.0, a.Channels[0][5999])
}

func TestSweep_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"gain", []string{"--gain", "2"}},
		{"nyquist", []string{"--sample-rate", "16000", "--end", "9000"}},
		{"order", []string{"--start", "1000", "--end", "100"}},
		{"fade", []string{"--duration", "1", "--fade", "0.6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"sweep"}, tt.args...)
			_, _, err := run(t, append(args, filepath.Join(dir, tt.name+".wav"))...)
			require.Error(t, err)
		})
	}
}

func TestDeconvolve_Normalized(t *testing.T) {
	rec := recordSweep(t, 200)
	out := filepath.Join(t.TempDir(), "ir.wav")

	args := append([]string{"deconvolve", "--length", "0.05"}, sweepArgs...)
	_, _, err := run(t, append(args, rec, out)...)
	require.NoError(t, err)

	ir, err := wavio.Read(out)
	require.NoError(t, err)
	require.Len(t, ir.Channels, 2)
	require.Equal(t, 800, ir.Frames())

	for _, ch := range ir.Channels {
		assert.InDelta(t, normalizedPeak, ch[0], 0.01)
		assert.InDelta(t, 0.5, ch[200]/ch[0], 0.02)
	}
}

func TestDeconvolve_Raw(t *testing.T) {
	rec := recordSweep(t, 200)
	out := filepath.Join(t.TempDir(), "ir.wav")

	// Deconvolving with unit gain leaves the excitation level in the IR.
	_, _, err := run(t, "deconvolve", "--start", "50", "--end", "7000", "--duration", "0.25",
		"--gain", "1", "--normalize=false", "--length", "0.05", rec, out)
	require.NoError(t, err)

	ir, err := wavio.Read(out)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, ir.Channels[0][0], 0.01)
	assert.InDelta(t, 0.25, ir.Channels[0][200], 0.01)
}

func TestDeconvolve_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := run(t, "deconvolve", filepath.Join(dir, "missing.wav"), filepath.Join(dir, "ir.wav"))
	require.Error(t, err)

	_, _, err = run(t, "deconvolve", "only-one.wav")
	require.Error(t, err)
}
