package input

import (
	"tally/internal/logging"
)

// Adapter maps raw input to intents.
type Adapter struct{}

// NewAdapter returns an adapter using the built-in key table.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Key maps a key press. While the dialog is open only its own bindings
// apply and the global increment/decrement keys are inert.
func (a *Adapter) Key(code KeyCode, dialogOpen bool) Intent {
	table := globalKeys
	if dialogOpen {
		table = dialogKeys
	}
	intent := table[code]
	if intent != IntentNone {
		logging.InputDebug("key %s -> %s (dialog=%v)", code, intent, dialogOpen)
	}
	return intent
}

// Pointer maps a tap by bubbling it through ev.Path. The first target that
// handles its own intent stops propagation, so a tap on a nested control
// never also counts as a tap on the surface behind it.
func (a *Adapter) Pointer(ev *PointerEvent, dialogOpen bool) Intent {
	if dialogOpen {
		return a.dialogPointer(ev)
	}

	for _, target := range ev.Path {
		var intent Intent
		switch target {
		case TargetIncrement, TargetSurface:
			intent = IntentIncrement
		case TargetDecrement:
			intent = IntentDecrement
		case TargetReset:
			intent = IntentResetRequest
		default:
			continue
		}
		ev.StopPropagation()
		logging.InputDebug("tap %s -> %s", target, intent)
		return intent
	}
	return IntentNone
}

// dialogPointer applies the modal rules: the dialog's own controls act,
// its body swallows the tap, and anything outside it cancels.
func (a *Adapter) dialogPointer(ev *PointerEvent) Intent {
	for _, target := range ev.Path {
		switch target {
		case TargetConfirm:
			ev.StopPropagation()
			return IntentResetConfirm
		case TargetCancel:
			ev.StopPropagation()
			return IntentResetCancel
		case TargetDialog:
			ev.StopPropagation()
			return IntentNone
		}
	}
	ev.StopPropagation()
	return IntentResetCancel
}

// Bindings returns the global key table.
func (a *Adapter) Bindings() []Binding {
	out := make([]Binding, len(globalBindings))
	copy(out, globalBindings)
	return out
}

// DialogBindings returns the keys that apply while the dialog is open.
func (a *Adapter) DialogBindings() []Binding {
	out := make([]Binding, len(dialogBindings))
	copy(out, dialogBindings)
	return out
}
