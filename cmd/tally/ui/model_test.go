package ui

import (
	"strings"
	"testing"

	"tally/internal/counter"
	"tally/internal/input"
	"tally/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, seed string) (Model, *counter.Controller) {
	t.Helper()
	kv := store.NewMemoryStore()
	if seed != "" {
		require.NoError(t, kv.Set(counter.ValueKey, seed))
	}
	ctrl := counter.New(counter.Config{Store: kv})
	m := NewModel(ctrl, input.NewAdapter(), NewStyles(LightTheme()))
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, ctrl
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(Model)
	require.True(t, ok, "Update returned %T", updated)
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// clickOn returns a press in the middle of target's zone.
func clickOn(t *testing.T, m Model, target input.Target) tea.MouseMsg {
	t.Helper()
	_, zones := m.render()
	for _, z := range zones {
		if z.target == target {
			return click((z.x0+z.x1)/2, (z.y0+z.y1)/2)
		}
	}
	t.Fatalf("no zone rendered for %s", target)
	return tea.MouseMsg{}
}

func TestKeyCode(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want input.KeyCode
	}{
		{tea.KeyMsg{Type: tea.KeySpace}, input.KeySpace},
		{tea.KeyMsg{Type: tea.KeyEnter}, input.KeyEnter},
		{tea.KeyMsg{Type: tea.KeyUp}, input.KeyArrowUp},
		{tea.KeyMsg{Type: tea.KeyDown}, input.KeyArrowDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, input.KeyArrowLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, input.KeyArrowRight},
		{tea.KeyMsg{Type: tea.KeyBackspace}, input.KeyBackspace},
		{tea.KeyMsg{Type: tea.KeyEsc}, input.KeyEscape},
		{tea.KeyMsg{Type: tea.KeyTab}, input.KeyTab},
		{runes("k"), input.KeyK},
		{runes("K"), input.KeyK},
		{runes(" "), input.KeySpace},
		{runes("7"), ""},
		{runes("kk"), ""},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k"), Alt: true}, ""},
	}
	for _, tt := range tests {
		if got := keyCode(tt.msg); got != tt.want {
			t.Errorf("keyCode(%q) = %q, want %q", tt.msg.String(), got, tt.want)
		}
	}
}

func TestModel_ArrowUpCounts(t *testing.T) {
	m, ctrl := newTestModel(t, "")
	for i := 0; i < 3; i++ {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, int64(3), ctrl.Value())
	assert.Contains(t, m.View(), "3")
}

func TestModel_LettersIgnoreCase(t *testing.T) {
	m, ctrl := newTestModel(t, "10")
	m = send(t, m, runes("W"))
	m = send(t, m, runes("j"))
	_ = send(t, m, runes("J"))
	assert.Equal(t, int64(9), ctrl.Value())
}

func TestModel_DialogBlocksCounting(t *testing.T) {
	m, ctrl := newTestModel(t, "1")

	m = send(t, m, runes("r"))
	require.True(t, ctrl.Snapshot().ConfirmationVisible)
	assert.Contains(t, m.View(), ConfirmPrompt)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = send(t, m, runes("h"))
	assert.Equal(t, int64(1), ctrl.Value())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, ctrl.Snapshot().ConfirmationVisible)
	assert.Equal(t, int64(1), ctrl.Value())
	assert.NotContains(t, m.View(), ConfirmPrompt)
}

func TestModel_EnterPressesFocusedControl(t *testing.T) {
	m, ctrl := newTestModel(t, "6")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, input.TargetCancel, m.focus, "dialog opens focused on Cancel")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, int64(6), ctrl.Value())
	assert.False(t, ctrl.Snapshot().ConfirmationVisible)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, input.TargetConfirm, m.focus)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, int64(0), ctrl.Value())
	assert.Equal(t, counter.ModeIdle, ctrl.Mode())
}

func TestModel_ArrowsMoveDialogFocus(t *testing.T) {
	m, _ := newTestModel(t, "")
	m = send(t, m, runes("r"))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, input.TargetConfirm, m.focus)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, input.TargetCancel, m.focus)
}

func TestModel_DialogReopensOnCancel(t *testing.T) {
	m, _ := newTestModel(t, "")
	m = send(t, m, runes("r"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = send(t, m, runes("r"))
	assert.Equal(t, input.TargetCancel, m.focus)
}

func TestModel_ButtonTapsFireOnce(t *testing.T) {
	m, ctrl := newTestModel(t, "")

	m = send(t, m, clickOn(t, m, input.TargetIncrement))
	assert.Equal(t, int64(1), ctrl.Value(), "tap on +1 must not also count as a surface tap")

	m = send(t, m, clickOn(t, m, input.TargetDecrement))
	assert.Equal(t, int64(0), ctrl.Value())

	m = send(t, m, clickOn(t, m, input.TargetReset))
	assert.True(t, ctrl.Snapshot().ConfirmationVisible)
	assert.Equal(t, int64(0), ctrl.Value())
}

func TestModel_SurfaceTapIncrements(t *testing.T) {
	m, ctrl := newTestModel(t, "")
	m = send(t, m, click(0, 0))
	_ = send(t, m, click(79, 23))
	assert.Equal(t, int64(2), ctrl.Value())
}

func TestModel_IgnoresOtherMouseEvents(t *testing.T) {
	m, ctrl := newTestModel(t, "")
	m = send(t, m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = send(t, m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion})
	_ = send(t, m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.Equal(t, int64(0), ctrl.Value())
}

func TestModel_DialogPointerRules(t *testing.T) {
	m, ctrl := newTestModel(t, "4")

	m = send(t, m, runes("r"))
	_, zones := m.render()
	var body zone
	for _, z := range zones {
		if z.target == input.TargetDialog {
			body = z
		}
	}
	require.Equal(t, input.TargetDialog, body.target)

	m = send(t, m, click(body.x0+1, body.y0+1))
	assert.True(t, ctrl.Snapshot().ConfirmationVisible, "tap on the dialog body is swallowed")
	assert.Equal(t, int64(4), ctrl.Value())

	m = send(t, m, click(0, 0))
	assert.False(t, ctrl.Snapshot().ConfirmationVisible, "tap outside cancels")
	assert.Equal(t, int64(4), ctrl.Value())

	m = send(t, m, runes("r"))
	m = send(t, m, clickOn(t, m, input.TargetCancel))
	assert.False(t, ctrl.Snapshot().ConfirmationVisible)
	assert.Equal(t, int64(4), ctrl.Value())

	m = send(t, m, runes("r"))
	_ = send(t, m, clickOn(t, m, input.TargetConfirm))
	assert.Equal(t, int64(0), ctrl.Value())
	assert.Equal(t, counter.ModeIdle, ctrl.Mode())
}

func TestModel_PulseEndsOnLatestTick(t *testing.T) {
	m, _ := newTestModel(t, "")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	require.NotNil(t, cmd, "a change schedules the end of the pulse")
	assert.True(t, m.pulsing)
	first := m.pulseSeq

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = send(t, m, pulseDoneMsg{seq: first})
	assert.True(t, m.pulsing, "a stale tick must not end a newer pulse")

	m = send(t, m, pulseDoneMsg{seq: m.pulseSeq})
	assert.False(t, m.pulsing)
}

func TestModel_ModeChangeDoesNotPulse(t *testing.T) {
	m, _ := newTestModel(t, "")
	_, cmd := m.Update(runes("r"))
	assert.Nil(t, cmd)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, "")
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, "%s should quit", msg.String())
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t, "")
	short := m.View()
	assert.Contains(t, short, "count up")

	m = send(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "reset counter")

	m = send(t, m, runes("r"))
	assert.Contains(t, m.View(), "cancel reset")
	assert.False(t, strings.Contains(m.View(), "count up"), "counting help is hidden while the dialog is open")
}

func TestKeyMap_MirrorsAdapter(t *testing.T) {
	km := newKeyMap(input.NewAdapter())
	assert.Equal(t, "↑/k", km.Increment.Help().Key)
	assert.Equal(t, "space/enter/→/↑/k/l/w/d", km.IncrementAll.Help().Key)
	assert.Equal(t, "bksp/←/↓/h/j/a/s", km.DecrementAll.Help().Key)
	assert.Equal(t, "esc/r", km.ResetAll.Help().Key)
	assert.Equal(t, "esc", km.Cancel.Help().Key)
	assert.Equal(t, "cancel reset", km.Cancel.Help().Desc)

	km.dialog = true
	for _, b := range km.ShortHelp() {
		assert.NotEqual(t, "count up", b.Help().Desc)
	}
}
