package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"tally/internal/config"
	"tally/internal/counter"
	"tally/internal/feedback"
	"tally/internal/logging"
	"tally/internal/store"
	"tally/internal/ux"

	"go.uber.org/zap"
)

// app is the wired counter: store, preferences, feedback and controller.
type app struct {
	kv         store.KV
	prefs      *ux.PreferencesManager
	dispatcher *feedback.Dispatcher
	ctrl       *counter.Controller
}

// openApp opens the configured store and builds everything on top of it.
// bell receives the terminal bell when audio feedback fires; nil disables it.
func openApp(c *config.Config, bell io.Writer) (*app, error) {
	kv, err := store.Open(store.Options{Driver: c.Store.Driver, DSN: c.StoreDSN()})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	prefs := ux.NewPreferencesManager(kv, ux.FeedbackPreferences{
		Haptic: c.Feedback.HapticDefault,
		Audio:  c.Feedback.AudioDefault,
	})

	var speaker feedback.Speaker = feedback.NoSpeaker{}
	if c.Feedback.Bell && bell != nil {
		speaker = feedback.NewBell(bell)
	}
	// Terminals have no vibration motor.
	dispatcher := feedback.NewDispatcher(feedback.Options{
		Haptics:     feedback.NoHaptics{},
		Speaker:     speaker,
		Preferences: prefs,
	})

	ctrl := counter.New(counter.Config{
		Store:    kv,
		Feedback: dispatcher,
		Logger:   logging.Get(logging.CategoryCounter),
	})

	return &app{kv: kv, prefs: prefs, dispatcher: dispatcher, ctrl: ctrl}, nil
}

// flushTimeout bounds how long Close waits for a repeated tone to finish.
const flushTimeout = time.Second

func (a *app) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := a.dispatcher.Flush(ctx); err != nil {
		logger.Debug("dropping pending feedback", zap.Error(err))
	}
	a.dispatcher.Close()
	if err := a.kv.Close(); err != nil {
		logger.Warn("failed to close store", zap.Error(err))
	}
}
