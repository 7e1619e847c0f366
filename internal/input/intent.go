// Package input normalizes raw key and pointer events into counter intents.
//
// The Adapter is stateless: callers pass whether the reset-confirmation
// dialog is open, and the adapter applies the dialog-scoped bindings
// instead of the global table while it is.
package input

// Intent is a source-agnostic user action.
type Intent int

const (
	IntentNone Intent = iota
	IntentIncrement
	IntentDecrement
	IntentResetRequest
	IntentResetConfirm
	IntentResetCancel
)

func (i Intent) String() string {
	switch i {
	case IntentIncrement:
		return "IncrementRequested"
	case IntentDecrement:
		return "DecrementRequested"
	case IntentResetRequest:
		return "ResetRequested"
	case IntentResetConfirm:
		return "ResetConfirmed"
	case IntentResetCancel:
		return "ResetCancelled"
	default:
		return "None"
	}
}

// Target identifies what a pointer event landed on.
type Target int

const (
	TargetSurface   Target = iota // the counter area itself
	TargetIncrement               // "+1" control
	TargetDecrement               // "-1" control
	TargetReset                   // "Reset" control
	TargetDialog                  // confirmation dialog body
	TargetConfirm                 // dialog "Confirm" control
	TargetCancel                  // dialog "Cancel" control
)

func (t Target) String() string {
	switch t {
	case TargetSurface:
		return "surface"
	case TargetIncrement:
		return "increment"
	case TargetDecrement:
		return "decrement"
	case TargetReset:
		return "reset"
	case TargetDialog:
		return "dialog"
	case TargetConfirm:
		return "confirm"
	case TargetCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is a primary-button tap. Path lists the targets under the
// pointer from innermost to outermost, the way a DOM event bubbles.
type PointerEvent struct {
	Path    []Target
	stopped bool
}

// NewPointerEvent builds an event bubbling through path (innermost first).
func NewPointerEvent(path ...Target) *PointerEvent {
	return &PointerEvent{Path: path}
}

// StopPropagation prevents outer targets from seeing the event.
func (e *PointerEvent) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether a handler consumed the event.
func (e *PointerEvent) Stopped() bool {
	return e.stopped
}
