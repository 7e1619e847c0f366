package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"tally/internal/config"
	"tally/internal/counter"
	"tally/internal/input"
	"tally/internal/store"
	"tally/internal/ux"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setup points the package globals at a fresh data dir.
func setup(t *testing.T) string {
	t.Helper()
	t.Setenv("TALLY_STORE_DRIVER", "")
	t.Setenv("TALLY_DB", "")
	t.Setenv("TALLY_DEBUG", "")

	dir := t.TempDir()
	cfg = config.DefaultConfig()
	cfg.DataDir = dir
	logger = zap.NewNop()

	showAll, resetYes, keysPlain = false, false, false
	t.Cleanup(func() {
		showAll, resetYes, keysPlain = false, false, false
		for _, name := range []string{"haptic", "audio"} {
			prefsCmd.Flags().Lookup(name).Changed = false
		}
	})
	return dir
}

// execute runs the full command tree, including config loading.
func execute(t *testing.T, dir, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	full := append([]string{"--config", filepath.Join(dir, "missing.yaml"), "--data-dir", dir}, args...)
	rootCmd.SetArgs(full)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func TestIncDecShow(t *testing.T) {
	dir := setup(t)

	assert.Equal(t, "1", lastLine(execute(t, dir, "", "inc")))
	assert.Equal(t, "2", lastLine(execute(t, dir, "", "inc")))
	assert.Equal(t, "1", lastLine(execute(t, dir, "", "dec")))
	assert.Equal(t, "1", lastLine(execute(t, dir, "", "show")))
}

func TestReset(t *testing.T) {
	dir := setup(t)
	execute(t, dir, "", "inc")
	execute(t, dir, "", "inc")

	out := execute(t, dir, "n\n", "reset")
	assert.Contains(t, out, "Are you sure you want to reset the counter? [y/N]")
	assert.Contains(t, out, "Reset cancelled.")
	assert.Equal(t, "2", lastLine(out))

	out = execute(t, dir, "", "reset")
	assert.Equal(t, "2", lastLine(out), "no answer means no")

	out = execute(t, dir, "YES\n", "reset")
	assert.Equal(t, "0", lastLine(out))
	assert.Contains(t, out, "[y/N] \n0\n")

	execute(t, dir, "", "inc")
	out = execute(t, dir, "", "reset", "--yes")
	assert.NotContains(t, out, "Are you sure")
	assert.Equal(t, "0", lastLine(out))
}

func TestShowAll(t *testing.T) {
	dir := setup(t)
	execute(t, dir, "", "inc")
	execute(t, dir, "", "prefs", "--audio", "on")

	out := execute(t, dir, "", "show", "--all")
	assert.Contains(t, out, "audio-enabled=true")
	assert.Contains(t, out, "count=1")
}

func TestPrefs(t *testing.T) {
	dir := setup(t)

	out := execute(t, dir, "", "prefs")
	assert.Contains(t, out, "haptic: on")
	assert.Contains(t, out, "audio:  off")

	out = execute(t, dir, "", "prefs", "--haptic", "off", "--audio", "on")
	assert.Contains(t, out, "haptic: off")
	assert.Contains(t, out, "audio:  on")

	kv, err := store.Open(store.Options{Driver: store.DriverSQLite, DSN: filepath.Join(dir, "tally.db")})
	require.NoError(t, err)
	defer kv.Close()
	prefs := ux.NewPreferencesManager(kv, ux.DefaultFeedbackPreferences())
	assert.False(t, prefs.HapticEnabled())
	assert.True(t, prefs.AudioEnabled())
}

func TestParseToggle(t *testing.T) {
	for _, s := range []string{"on", "ON", "true", "yes", "1"} {
		on, err := parseToggle(s)
		require.NoError(t, err)
		assert.True(t, on, s)
	}
	for _, s := range []string{"off", "false", "no", "0"} {
		on, err := parseToggle(s)
		require.NoError(t, err)
		assert.False(t, on, s)
	}
	_, err := parseToggle("loud")
	assert.Error(t, err)
}

func TestAsk(t *testing.T) {
	var out bytes.Buffer
	yes, err := ask(strings.NewReader(" y \n"), &out, "Sure?")
	require.NoError(t, err)
	assert.True(t, yes)
	assert.Equal(t, "Sure? [y/N] \n", out.String(), "piped answers end the prompt line")

	yes, err = ask(strings.NewReader("nope\n"), &out, "Sure?")
	require.NoError(t, err)
	assert.False(t, yes)
}

func TestKeysMarkdown(t *testing.T) {
	md := keysMarkdown(input.NewAdapter())
	assert.Contains(t, md, "| count up | `Space`, `Enter`, `ArrowRight`, `ArrowUp`, `KeyK`, `KeyL`, `KeyW`, `KeyD` |")
	assert.Contains(t, md, "| count down |")
	assert.Contains(t, md, "| reset counter | `Escape`, `KeyR` |")
	assert.Contains(t, md, "| cancel reset | `Escape` |")

	rendered, err := renderMarkdown(md, "notty")
	require.NoError(t, err)
	assert.Contains(t, rendered, "count up")
}

func TestKeysPlain(t *testing.T) {
	dir := setup(t)
	out := execute(t, dir, "", "keys", "--plain")
	assert.True(t, strings.HasPrefix(out, "# tally keys"))
}

func TestOpenApp_MemoryStore(t *testing.T) {
	setup(t)
	cfg.Store.Driver = "memory"

	a, err := openApp(cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	a.ctrl.Dispatch(input.IntentIncrement)
	v, ok, err := a.kv.Get(counter.ValueKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestOpenApp_ResetRingsTwiceBeforeClose(t *testing.T) {
	setup(t)
	cfg.Store.Driver = "memory"
	cfg.Feedback.Bell = true

	bell := &syncBuffer{}
	a, err := openApp(cfg, bell)
	require.NoError(t, err)
	require.NoError(t, a.prefs.SetAudio(true))

	a.ctrl.Dispatch(input.IntentResetRequest)
	a.ctrl.Dispatch(input.IntentResetConfirm)
	a.Close()

	assert.Equal(t, "\a\a", bell.String())
}

func TestReadCount(t *testing.T) {
	setup(t)
	kv := store.NewMemoryStore()

	v, ok := readCount(kv)
	assert.True(t, ok)
	assert.Equal(t, int64(0), v, "missing reads as zero")

	for raw, want := range map[string]int64{"abc": 0, "12abc": 12, " -4": -4} {
		require.NoError(t, kv.Set(counter.ValueKey, raw))
		v, ok = readCount(kv)
		assert.True(t, ok)
		assert.Equal(t, want, v, "stored %q", raw)
	}
}

func TestWatch_RequiresFileStore(t *testing.T) {
	setup(t)
	cfg.Store.Driver = "memory"
	err := runWatch(&cobra.Command{}, nil)
	assert.Error(t, err)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch_PrintsChanges(t *testing.T) {
	dir := setup(t)
	dsn := filepath.Join(dir, "tally.db")

	writer, err := store.Open(store.Options{Driver: store.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	defer writer.Close()
	require.NoError(t, writer.Set(counter.ValueKey, "7"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)
	cmd.SetOut(out)

	done := make(chan error, 1)
	go func() { done <- runWatch(cmd, nil) }()

	require.Eventually(t, func() bool {
		return strings.HasPrefix(out.String(), "7\n")
	}, 2*time.Second, 10*time.Millisecond)

	// Keep writing until the watcher is up and reports one.
	next := 8
	require.Eventually(t, func() bool {
		_ = writer.Set(counter.ValueKey, strconv.Itoa(next))
		next++
		return strings.Count(out.String(), "\n") >= 2
	}, 5*time.Second, 150*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
