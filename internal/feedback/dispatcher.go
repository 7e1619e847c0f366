// Package feedback turns counter events into best-effort haptic and audio output.
package feedback

import (
	"context"
	"time"

	"tally/internal/logging"
)

// Kind names a feedback-worthy counter event.
type Kind string

const (
	KindUp    Kind = "up"
	KindDown  Kind = "down"
	KindReset Kind = "reset"
)

// Tone describes a beep. Repeat is the number of emissions; zero means one.
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Repeat    int
}

// Pattern is the output for one Kind. Haptic alternates vibrate/pause durations.
type Pattern struct {
	Haptic []time.Duration
	Tone   *Tone
}

// RepeatGap is added to a tone's duration to space repeated emissions.
const RepeatGap = 50 * time.Millisecond

// DefaultPatterns returns the built-in pattern table.
func DefaultPatterns() map[Kind]Pattern {
	return map[Kind]Pattern{
		KindUp: {
			Haptic: []time.Duration{10 * time.Millisecond},
			Tone:   &Tone{Frequency: 880, Duration: 60 * time.Millisecond},
		},
		KindDown: {
			Haptic: []time.Duration{10 * time.Millisecond, 30 * time.Millisecond, 10 * time.Millisecond},
			Tone:   &Tone{Frequency: 440, Duration: 60 * time.Millisecond},
		},
		KindReset: {
			Haptic: []time.Duration{50 * time.Millisecond, 50 * time.Millisecond, 50 * time.Millisecond},
			Tone:   &Tone{Frequency: 660, Duration: 80 * time.Millisecond, Repeat: 2},
		},
	}
}

// Preferences are the user's feedback toggles, read on every Notify.
type Preferences interface {
	HapticEnabled() bool
	AudioEnabled() bool
}

// Options configures a Dispatcher. Nil sinks are treated as unavailable.
type Options struct {
	Haptics     Haptics
	Speaker     Speaker
	Preferences Preferences
	Patterns    map[Kind]Pattern
}

// Dispatcher is stateless apart from pending tone repeats.
type Dispatcher struct {
	haptics    Haptics
	speaker    Speaker
	hasHaptics bool
	hasSpeaker bool
	prefs      Preferences
	patterns   map[Kind]Pattern
	scheduler  *Scheduler
}

// NewDispatcher queries the capabilities once and keeps the answer.
func NewDispatcher(opts Options) *Dispatcher {
	d := &Dispatcher{
		haptics:   opts.Haptics,
		speaker:   opts.Speaker,
		prefs:     opts.Preferences,
		patterns:  opts.Patterns,
		scheduler: NewScheduler(),
	}
	if d.haptics == nil {
		d.haptics = NoHaptics{}
	}
	if d.speaker == nil {
		d.speaker = NoSpeaker{}
	}
	if d.patterns == nil {
		d.patterns = DefaultPatterns()
	}
	d.hasHaptics = available(d.haptics)
	d.hasSpeaker = available(d.speaker)

	logging.Feedback("dispatcher ready (haptics=%v speaker=%v)", d.hasHaptics, d.hasSpeaker)
	return d
}

func available(c Capability) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return c.Available()
}

// Notify triggers the pattern for kind. It never blocks on output and
// never reports failure; missing capabilities and disabled preferences are no-ops.
func (d *Dispatcher) Notify(kind Kind) {
	p, ok := d.patterns[kind]
	if !ok {
		return
	}

	if d.hasHaptics && len(p.Haptic) > 0 && d.pref(Preferences.HapticEnabled) {
		d.safely("vibrate", func() error { return d.haptics.Vibrate(p.Haptic) })
	}

	if d.hasSpeaker && p.Tone != nil && d.pref(Preferences.AudioEnabled) {
		d.playTone(*p.Tone)
	}
}

func (d *Dispatcher) pref(get func(Preferences) bool) (enabled bool) {
	if d.prefs == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			enabled = false
		}
	}()
	return get(d.prefs)
}

// playTone emits the first beep now and schedules the rest Duration+RepeatGap apart.
func (d *Dispatcher) playTone(t Tone) {
	d.safely("tone", func() error { return d.speaker.Play(t) })

	spacing := t.Duration + RepeatGap
	for i := 1; i < t.Repeat; i++ {
		d.scheduler.After(time.Duration(i)*spacing, func() {
			d.safely("tone", func() error { return d.speaker.Play(t) })
		})
	}
}

func (d *Dispatcher) safely(what string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			logging.FeedbackDebug("%s panicked: %v", what, r)
		}
	}()
	if err := fn(); err != nil {
		logging.FeedbackDebug("%s failed: %v", what, err)
	}
}

// Flush waits for pending tone repeats to play, giving up when ctx is done.
func (d *Dispatcher) Flush(ctx context.Context) error {
	return d.scheduler.Wait(ctx)
}

// Close drops any tone repeats still pending.
func (d *Dispatcher) Close() {
	d.scheduler.Close()
}
