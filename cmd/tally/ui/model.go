package ui

import (
	"strconv"
	"strings"
	"time"

	"tally/internal/counter"
	"tally/internal/input"
	"tally/internal/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmPrompt is the question shown in the reset dialog.
const ConfirmPrompt = "Are you sure you want to reset the counter?"

// PulseDuration is how long the value box stays highlighted after a change.
const PulseDuration = 180 * time.Millisecond

// pulseDoneMsg ends the highlight started by the change numbered seq.
type pulseDoneMsg struct{ seq int }

// Model is the bubbletea model for the counter screen.
type Model struct {
	ctrl    *counter.Controller
	adapter *input.Adapter
	styles  Styles
	keys    keyMap
	help    help.Model

	width  int
	height int

	// focus is the dialog control Enter activates.
	focus input.Target

	pulsing  bool
	pulseSeq int
}

// NewModel creates the counter screen.
func NewModel(ctrl *counter.Controller, adapter *input.Adapter, styles Styles) Model {
	h := help.New()
	h.Styles.ShortKey = styles.Muted.Bold(true)
	h.Styles.ShortDesc = styles.Help
	h.Styles.FullKey = styles.Muted.Bold(true)
	h.Styles.FullDesc = styles.Help

	return Model{
		ctrl:    ctrl,
		adapter: adapter,
		styles:  styles,
		keys:    newKeyMap(adapter),
		help:    h,
		width:   80,
		height:  24,
		focus:   input.TargetCancel,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case pulseDoneMsg:
		if msg.seq == m.pulseSeq {
			m.pulsing = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) dialogOpen() bool {
	return m.ctrl.Snapshot().ConfirmationVisible
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		logging.UI("quit requested")
		return m, tea.Quit
	}

	dialog := m.dialogOpen()
	code := keyCode(msg)

	if dialog {
		switch {
		case key.Matches(msg, m.keys.Focus):
			m.toggleFocus()
			return m, nil
		case code == input.KeyEnter:
			// Enter presses the focused dialog control.
			return m.tap(input.NewPointerEvent(m.focus, input.TargetDialog, input.TargetSurface))
		}
	} else if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if code == "" {
		return m, nil
	}
	return m.apply(m.adapter.Key(code, dialog))
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	_, zones := m.render()
	return m.tap(input.NewPointerEvent(hitPath(zones, msg.X, msg.Y)...))
}

func (m Model) tap(ev *input.PointerEvent) (tea.Model, tea.Cmd) {
	return m.apply(m.adapter.Pointer(ev, m.dialogOpen()))
}

// apply hands one intent to the controller and starts the press pulse when
// the value moved.
func (m Model) apply(in input.Intent) (tea.Model, tea.Cmd) {
	if in == input.IntentNone {
		return m, nil
	}
	before := m.ctrl.Snapshot()
	if !m.ctrl.Dispatch(in) {
		return m, nil
	}
	after := m.ctrl.Snapshot()

	if after.ConfirmationVisible && !before.ConfirmationVisible {
		m.focus = input.TargetCancel
	}
	if in == input.IntentIncrement || in == input.IntentDecrement || in == input.IntentResetConfirm {
		return m.pulse()
	}
	return m, nil
}

func (m Model) pulse() (Model, tea.Cmd) {
	m.pulseSeq++
	m.pulsing = true
	seq := m.pulseSeq
	return m, tea.Tick(PulseDuration, func(time.Time) tea.Msg {
		return pulseDoneMsg{seq: seq}
	})
}

func (m *Model) toggleFocus() {
	if m.focus == input.TargetConfirm {
		m.focus = input.TargetCancel
	} else {
		m.focus = input.TargetConfirm
	}
}

// View implements tea.Model.
func (m Model) View() string {
	view, _ := m.render()
	return view
}

// render lays out the screen and returns the clickable zones with it.
func (m Model) render() (string, []zone) {
	snap := m.ctrl.Snapshot()
	c := newCanvas(m.width)

	c.block(m.styles.Title.Render("tally"))
	c.blank()
	c.block(m.valueStyle(snap).Render(strconv.FormatInt(snap.Value, 10)))
	c.blank()

	if snap.ConfirmationVisible {
		m.renderDialog(c)
	} else {
		c.row(2, 1,
			piece{input.TargetDecrement, m.styles.Button.Render("−1")},
			piece{input.TargetReset, m.styles.Danger.Render("Reset")},
			piece{input.TargetIncrement, m.styles.Button.Render("+1")},
		)
	}

	c.blank()
	keys := m.keys
	keys.dialog = snap.ConfirmationVisible
	c.block(m.help.View(keys))

	return c.place(m.height)
}

func (m Model) renderDialog(c *canvas) {
	cancel := m.styles.Button
	confirm := m.styles.Button
	if m.focus == input.TargetConfirm {
		confirm = m.styles.Danger
	} else {
		cancel = m.styles.ButtonFocused
	}
	cancelView := cancel.Render("Cancel")
	confirmView := confirm.Render("Confirm")

	const gap = 2
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, cancelView, strings.Repeat(" ", gap), confirmView)
	text := m.styles.DialogText.Render(ConfirmPrompt)

	offset := (lipgloss.Width(text) - lipgloss.Width(buttons)) / 2
	if offset < 0 {
		offset = 0
	}
	indent := strings.Repeat(" ", offset)
	indented := make([]string, 0, lipgloss.Height(buttons))
	for _, line := range strings.Split(buttons, "\n") {
		indented = append(indented, indent+line)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, text, "", strings.Join(indented, "\n"))
	box := m.styles.Dialog.Render(body)
	x, y := c.block(box)
	c.mark(input.TargetDialog, x, y, lipgloss.Width(box), lipgloss.Height(box), 1)

	// Border and padding put the body at this offset inside the box.
	bx := x + m.styles.Dialog.GetBorderLeftSize() + m.styles.Dialog.GetPaddingLeft() + offset
	by := y + m.styles.Dialog.GetBorderTopSize() + m.styles.Dialog.GetPaddingTop() + lipgloss.Height(text) + 1
	c.mark(input.TargetCancel, bx, by, lipgloss.Width(cancelView), lipgloss.Height(cancelView), 2)
	bx += lipgloss.Width(cancelView) + gap
	c.mark(input.TargetConfirm, bx, by, lipgloss.Width(confirmView), lipgloss.Height(confirmView), 2)
}

func (m Model) valueStyle(snap counter.Snapshot) lipgloss.Style {
	if !m.pulsing {
		return m.styles.Value
	}
	switch snap.Direction {
	case counter.DirectionIncreased:
		return m.styles.ValueIncreased
	case counter.DirectionDecreased:
		return m.styles.ValueDecreased
	default:
		return m.styles.ValuePressed
	}
}
