package room

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the microphone arrangement a capture was recorded with.
type Kind int

const (
	// KindOmni is a single omnidirectional channel.
	KindOmni Kind = iota
	// KindBinaural is a left/right ear pair from a dummy head.
	KindBinaural
	// KindMidSide is an omni (mid) channel plus a figure-of-eight (side)
	// channel.
	KindMidSide
)

var (
	// ErrUnknownKind is returned by ParseKind for an unrecognised name.
	ErrUnknownKind = errors.New("room: unknown capture kind")
	// ErrChannelCount is returned when a capture has the wrong number of
	// channels for its kind.
	ErrChannelCount = errors.New("room: wrong number of channels")
	// ErrEmptyCapture is returned for a capture without samples.
	ErrEmptyCapture = errors.New("room: capture is empty")
	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("room: sample rate must be positive")
	// ErrChannelLength is returned when channels differ in length.
	ErrChannelLength = errors.New("room: channels differ in length")
)

// String returns the name used by ParseKind.
func (k Kind) String() string {
	switch k {
	case KindOmni:
		return "omnidirectional"
	case KindBinaural:
		return "binaural"
	case KindMidSide:
		return "mid-side"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Channels returns the channel count a capture of kind k must have.
func (k Kind) Channels() int {
	if k == KindOmni {
		return 1
	}

	return 2
}

// ParseKind accepts "omni", "omnidirectional", "binaural", "mid-side" and
// "ms", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "omni", "omnidirectional":
		return KindOmni, nil
	case "binaural":
		return KindBinaural, nil
	case "mid-side", "midside", "ms":
		return KindMidSide, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}

	*k = v

	return nil
}

// Capture is a measured room impulse response. For KindBinaural the channels
// are left, right; for KindMidSide they are mid, side.
type Capture struct {
	Kind       Kind
	Channels   [][]float64
	SampleRate float64
}

// Validate checks the channel layout against Kind.
func (c Capture) Validate() error {
	if c.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if len(c.Channels) != c.Kind.Channels() {
		return fmt.Errorf("%w: %s needs %d, got %d",
			ErrChannelCount, c.Kind, c.Kind.Channels(), len(c.Channels))
	}

	n := len(c.Channels[0])
	if n == 0 {
		return ErrEmptyCapture
	}

	for i, ch := range c.Channels[1:] {
		if len(ch) != n {
			return fmt.Errorf("%w: channel %d has %d samples, want %d", ErrChannelLength, i+1, len(ch), n)
		}
	}

	return nil
}

// Len returns the number of samples per channel.
func (c Capture) Len() int {
	if len(c.Channels) == 0 {
		return 0
	}

	return len(c.Channels[0])
}
