package feedback

import (
	"io"
	"sync"
	"time"
)

// Capability reports whether a host feature exists at all.
type Capability interface {
	Available() bool
}

// Haptics drives a vibration motor with alternating on/off pulse durations.
type Haptics interface {
	Capability
	Vibrate(pattern []time.Duration) error
}

// Speaker emits a single tone.
type Speaker interface {
	Capability
	Play(t Tone) error
}

// NoHaptics is the Unavailable haptics variant. Terminals have no motor.
type NoHaptics struct{}

func (NoHaptics) Available() bool               { return false }
func (NoHaptics) Vibrate([]time.Duration) error { return nil }

// NoSpeaker is the Unavailable speaker variant.
type NoSpeaker struct{}

func (NoSpeaker) Available() bool { return false }
func (NoSpeaker) Play(Tone) error { return nil }

// Bell plays tones as the terminal bell. Pitch and length are up to the terminal.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell returns a speaker writing BEL to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Available() bool { return b != nil && b.w != nil }

func (b *Bell) Play(Tone) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.w, "\a")
	return err
}
