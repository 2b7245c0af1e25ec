// Package wavio reads and writes multi-channel impulse responses as WAV
// files.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

var (
	// ErrInvalidFile is returned for input that is not a readable WAV file.
	ErrInvalidFile = errors.New("wavio: invalid wav file")
	// ErrEmpty is returned for a file without sample frames.
	ErrEmpty = errors.New("wavio: no samples")
	// ErrChannelLength is returned by Write for ragged channels.
	ErrChannelLength = errors.New("wavio: channels differ in length")
)

// Audio is decoded, deinterleaved audio with samples in [-1, 1].
type Audio struct {
	Channels   [][]float64
	SampleRate int
}

// Frames returns the number of samples per channel.
func (a *Audio) Frames() int {
	if len(a.Channels) == 0 {
		return 0
	}

	return len(a.Channels[0])
}

// Duration returns the length in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}

	return float64(a.Frames()) / float64(a.SampleRate)
}

// Read decodes the WAV file at path.
func Read(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a, nil
}

// Decode reads a complete WAV stream.
func Decode(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, ErrInvalidFile
	}

	numCh := buf.Format.NumChannels
	if buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidFile, buf.Format.SampleRate)
	}

	frames := len(buf.Data) / numCh
	if frames == 0 {
		return nil, ErrEmpty
	}

	channels := make([][]float64, numCh)
	for c := range channels {
		channels[c] = make([]float64, frames)
	}

	for i := range frames {
		for c := range numCh {
			channels[c][i] = float64(buf.Data[i*numCh+c])
		}
	}

	return &Audio{Channels: channels, SampleRate: buf.Format.SampleRate}, nil
}

// fullScale is the largest magnitude representable in 16-bit PCM.
const fullScale = 32767.0 / 32768

// Write encodes channels as 16-bit PCM at path, creating parent
// directories as needed. Samples beyond full scale are clipped.
func Write(path string, channels [][]float64, sampleRate int) error {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return ErrEmpty
	}

	frames := len(channels[0])
	numCh := len(channels)

	data := make([]float32, frames*numCh)
	for c, ch := range channels {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel %d has %d samples, want %d", ErrChannelLength, c, len(ch), frames)
		}

		for i, v := range ch {
			data[i*numCh+c] = float32(max(-fullScale, min(fullScale, v)))
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, numCh, 1)

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: numCh,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return err
	}

	return enc.Close()
}
