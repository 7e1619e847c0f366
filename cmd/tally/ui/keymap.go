package ui

import (
	"strings"
	"unicode"

	"tally/internal/input"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyCode translates a terminal key press into the adapter's key vocabulary.
// Letters match regardless of case. Unmapped keys return "".
func keyCode(msg tea.KeyMsg) input.KeyCode {
	if msg.Alt {
		return ""
	}
	switch msg.Type {
	case tea.KeySpace:
		return input.KeySpace
	case tea.KeyEnter:
		return input.KeyEnter
	case tea.KeyRight:
		return input.KeyArrowRight
	case tea.KeyUp:
		return input.KeyArrowUp
	case tea.KeyLeft:
		return input.KeyArrowLeft
	case tea.KeyDown:
		return input.KeyArrowDown
	case tea.KeyBackspace:
		return input.KeyBackspace
	case tea.KeyEsc:
		return input.KeyEscape
	case tea.KeyTab:
		return input.KeyTab
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return ""
		}
		r := unicode.ToUpper(msg.Runes[0])
		switch {
		case r == ' ':
			return input.KeySpace
		case r >= 'A' && r <= 'Z':
			return input.KeyCode("Key" + string(r))
		}
	}
	return ""
}

// keyLabel is the short name shown in the help bar.
func keyLabel(code input.KeyCode) string {
	switch code {
	case input.KeySpace:
		return "space"
	case input.KeyEnter:
		return "enter"
	case input.KeyArrowRight:
		return "→"
	case input.KeyArrowUp:
		return "↑"
	case input.KeyArrowLeft:
		return "←"
	case input.KeyArrowDown:
		return "↓"
	case input.KeyBackspace:
		return "bksp"
	case input.KeyEscape:
		return "esc"
	case input.KeyTab:
		return "tab"
	}
	return strings.ToLower(strings.TrimPrefix(string(code), "Key"))
}

// shortKeys picks the keys named in the one-line help bar.
var shortKeys = map[input.Intent][]input.KeyCode{
	input.IntentIncrement:    {input.KeyArrowUp, input.KeyK},
	input.IntentDecrement:    {input.KeyArrowDown, input.KeyJ},
	input.IntentResetRequest: {input.KeyR},
}

func bindingFor(b input.Binding, codes []input.KeyCode) key.Binding {
	if len(codes) == 0 {
		codes = b.Keys
	}
	keys := make([]string, 0, len(codes))
	labels := make([]string, 0, len(codes))
	for _, k := range codes {
		keys = append(keys, string(k))
		labels = append(labels, keyLabel(k))
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(labels, "/"), b.Help),
	)
}

// keyMap implements help.KeyMap. The counting bindings mirror the adapter's
// tables; the rest are surface-only keys the adapter never sees.
type keyMap struct {
	Increment key.Binding
	Decrement key.Binding
	Reset     key.Binding

	// Full key lists, shown by the expanded help.
	IncrementAll key.Binding
	DecrementAll key.Binding
	ResetAll     key.Binding

	Cancel   key.Binding
	Focus    key.Binding
	Activate key.Binding
	Help     key.Binding
	Quit     key.Binding

	dialog bool
}

func newKeyMap(a *input.Adapter) keyMap {
	km := keyMap{
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab/←/→", "switch"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	for _, b := range a.Bindings() {
		switch b.Intent {
		case input.IntentIncrement:
			km.Increment = bindingFor(b, shortKeys[b.Intent])
			km.IncrementAll = bindingFor(b, nil)
		case input.IntentDecrement:
			km.Decrement = bindingFor(b, shortKeys[b.Intent])
			km.DecrementAll = bindingFor(b, nil)
		case input.IntentResetRequest:
			km.Reset = bindingFor(b, shortKeys[b.Intent])
			km.ResetAll = bindingFor(b, nil)
		}
	}
	for _, b := range a.DialogBindings() {
		if b.Intent == input.IntentResetCancel {
			km.Cancel = bindingFor(b, nil)
		}
	}
	return km
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.dialog {
		return []key.Binding{k.Focus, k.Activate, k.Cancel}
	}
	return []key.Binding{k.Increment, k.Decrement, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	if k.dialog {
		return [][]key.Binding{{k.Focus, k.Activate, k.Cancel}, {k.Quit}}
	}
	return [][]key.Binding{
		{k.IncrementAll, k.DecrementAll, k.ResetAll},
		{k.Help, k.Quit},
	}
}
