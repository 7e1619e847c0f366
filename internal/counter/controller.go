// Package counter owns the counter value and the reset-confirmation gate.
//
// A Controller is driven by input.Intent values, one at a time. Every change
// to the value is written to the store before Dispatch returns, and feedback
// is requested afterwards. Neither collaborator can fail a transition.
package counter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"tally/internal/feedback"
	"tally/internal/input"
	"tally/internal/logging"
	"tally/internal/store"

	"go.uber.org/zap"
)

// ValueKey is the store key holding the counter value.
const ValueKey = "count"

// Mode is the confirmation sub-state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeAwaitingConfirmation
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeAwaitingConfirmation:
		return "AwaitingConfirmation"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Direction compares the value with the one before the last mutation.
type Direction int

const (
	DirectionUnchanged Direction = iota
	DirectionIncreased
	DirectionDecreased
)

func (d Direction) String() string {
	switch d {
	case DirectionIncreased:
		return "increased"
	case DirectionDecreased:
		return "decreased"
	default:
		return "unchanged"
	}
}

// Notifier receives feedback-worthy events. *feedback.Dispatcher satisfies it.
type Notifier interface {
	Notify(kind feedback.Kind)
}

// Config wires a Controller to its collaborators.
type Config struct {
	Store    store.KV
	Feedback Notifier           // optional
	Logger   *zap.SugaredLogger // optional; defaults to the counter category logger
}

// Snapshot is what the surface renders.
type Snapshot struct {
	Value               int64
	ConfirmationVisible bool
	Direction           Direction
}

// Controller is the counter state machine.
type Controller struct {
	mu       sync.RWMutex
	value    int64
	previous int64
	mode     Mode

	store  store.KV
	notify Notifier
	log    *zap.SugaredLogger
}

// New reads the stored value once. A missing, unreadable or non-numeric
// entry starts the counter at zero.
func New(cfg Config) *Controller {
	c := &Controller{
		store:  cfg.Store,
		notify: cfg.Feedback,
		log:    cfg.Logger,
	}
	if c.store == nil {
		c.store = store.NewMemoryStore()
	}
	if c.log == nil {
		c.log = logging.Get(logging.CategoryCounter)
	}

	c.value = c.load()
	c.previous = c.value
	c.log.Infow("counter loaded", "value", c.value)
	return c
}

func (c *Controller) load() (v int64) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Debugw("store read panicked", "panic", r)
			v = 0
		}
	}()

	raw, ok, err := c.store.Get(ValueKey)
	if err != nil {
		c.log.Debugw("store read failed", "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	v, ok = ParseValue(raw)
	if !ok {
		c.log.Debugw("ignoring malformed stored value", "raw", raw)
		return 0
	}
	return v
}

// ParseValue reads a stored counter value: leading whitespace is skipped,
// then an optional sign and the longest run of decimal digits. Anything
// after the digits is ignored, so "12abc" and "3.9" read as 12 and 3.
// Out-of-range numbers clamp to the int64 bounds. ok is false when no
// digits lead the string.
func ParseValue(raw string) (v int64, ok bool) {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}

	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return v, true
		}
		return 0, false
	}
	return v, true
}

// Dispatch applies one intent and reports whether the value or mode changed.
// Intents that do not apply to the current mode are ignored.
func (c *Controller) Dispatch(in input.Intent) bool {
	c.mu.Lock()

	var kind feedback.Kind
	switch c.mode {
	case ModeIdle:
		switch in {
		case input.IntentIncrement:
			c.set(step(c.value, 1))
			kind = feedback.KindUp
		case input.IntentDecrement:
			c.set(step(c.value, -1))
			kind = feedback.KindDown
		case input.IntentResetRequest:
			c.mode = ModeAwaitingConfirmation
		default:
			c.mu.Unlock()
			return false
		}
	case ModeAwaitingConfirmation:
		switch in {
		case input.IntentResetConfirm:
			c.set(0)
			c.mode = ModeIdle
			kind = feedback.KindReset
		case input.IntentResetCancel:
			c.mode = ModeIdle
		default:
			c.mu.Unlock()
			return false
		}
	}

	c.log.Debugw("transition", "intent", in.String(), "value", c.value, "mode", c.mode.String())
	c.mu.Unlock()

	if kind != "" {
		c.emit(kind)
	}
	return true
}

// set records the previous value and persists the new one. Caller holds mu.
func (c *Controller) set(v int64) {
	c.previous = c.value
	c.value = v
	c.persist(v)
}

func (c *Controller) persist(v int64) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Debugw("store write panicked", "panic", r)
		}
	}()
	if err := c.store.Set(ValueKey, strconv.FormatInt(v, 10)); err != nil {
		c.log.Debugw("store write failed", "error", err)
	}
}

func (c *Controller) emit(kind feedback.Kind) {
	if c.notify == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Debugw("feedback panicked", "kind", kind, "panic", r)
		}
	}()
	c.notify.Notify(kind)
}

// Snapshot returns the current value, dialog visibility and direction hint.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Value:               c.value,
		ConfirmationVisible: c.mode == ModeAwaitingConfirmation,
		Direction:           direction(c.value, c.previous),
	}
}

// Mode returns the confirmation sub-state.
func (c *Controller) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// Value returns the counter value.
func (c *Controller) Value() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// step adds delta, clamping at the int64 bounds instead of wrapping.
func step(v, delta int64) int64 {
	switch {
	case delta > 0 && v > math.MaxInt64-delta:
		return math.MaxInt64
	case delta < 0 && v < math.MinInt64-delta:
		return math.MinInt64
	}
	return v + delta
}

func direction(value, previous int64) Direction {
	switch {
	case value > previous:
		return DirectionIncreased
	case value < previous:
		return DirectionDecreased
	default:
		return DirectionUnchanged
	}
}
