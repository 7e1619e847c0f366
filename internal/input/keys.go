package input

// KeyCode is a physical key name in the KeyboardEvent.code vocabulary.
type KeyCode string

const (
	KeySpace      KeyCode = "Space"
	KeyEnter      KeyCode = "Enter"
	KeyArrowRight KeyCode = "ArrowRight"
	KeyArrowUp    KeyCode = "ArrowUp"
	KeyArrowLeft  KeyCode = "ArrowLeft"
	KeyArrowDown  KeyCode = "ArrowDown"
	KeyBackspace  KeyCode = "Backspace"
	KeyEscape     KeyCode = "Escape"
	KeyTab        KeyCode = "Tab"
	KeyA          KeyCode = "KeyA"
	KeyD          KeyCode = "KeyD"
	KeyH          KeyCode = "KeyH"
	KeyJ          KeyCode = "KeyJ"
	KeyK          KeyCode = "KeyK"
	KeyL          KeyCode = "KeyL"
	KeyQ          KeyCode = "KeyQ"
	KeyR          KeyCode = "KeyR"
	KeyS          KeyCode = "KeyS"
	KeyW          KeyCode = "KeyW"
)

// Binding groups the key codes that produce one intent.
type Binding struct {
	Intent Intent
	Keys   []KeyCode
	Help   string
}

// globalBindings is the lookup table used while no dialog is open.
var globalBindings = []Binding{
	{
		Intent: IntentIncrement,
		Keys:   []KeyCode{KeySpace, KeyEnter, KeyArrowRight, KeyArrowUp, KeyK, KeyL, KeyW, KeyD},
		Help:   "count up",
	},
	{
		Intent: IntentDecrement,
		Keys:   []KeyCode{KeyBackspace, KeyArrowLeft, KeyArrowDown, KeyH, KeyJ, KeyA, KeyS},
		Help:   "count down",
	},
	{
		Intent: IntentResetRequest,
		Keys:   []KeyCode{KeyEscape, KeyR},
		Help:   "reset counter",
	},
}

// dialogBindings override the global table while the confirmation dialog is open.
var dialogBindings = []Binding{
	{
		Intent: IntentResetCancel,
		Keys:   []KeyCode{KeyEscape},
		Help:   "cancel reset",
	},
}

func index(bindings []Binding) map[KeyCode]Intent {
	m := make(map[KeyCode]Intent)
	for _, b := range bindings {
		for _, k := range b.Keys {
			m[k] = b.Intent
		}
	}
	return m
}

var (
	globalKeys = index(globalBindings)
	dialogKeys = index(dialogBindings)
)
