package ux

import (
	"strconv"
	"sync"

	"tally/internal/logging"
	"tally/internal/store"
)

// Store keys for the feedback toggles.
const (
	HapticKey = "haptic-enabled"
	AudioKey  = "audio-enabled"
)

// FeedbackPreferences is a snapshot of both toggles.
type FeedbackPreferences struct {
	Haptic bool `json:"haptic" yaml:"haptic"`
	Audio  bool `json:"audio" yaml:"audio"`
}

// DefaultFeedbackPreferences returns haptics on, audio off.
func DefaultFeedbackPreferences() FeedbackPreferences {
	return FeedbackPreferences{Haptic: true, Audio: false}
}

// PreferencesManager reads and writes the toggles through a store.KV.
type PreferencesManager struct {
	mu       sync.RWMutex
	kv       store.KV
	defaults FeedbackPreferences
}

// NewPreferencesManager creates a manager falling back to defaults for
// missing or unreadable entries.
func NewPreferencesManager(kv store.KV, defaults FeedbackPreferences) *PreferencesManager {
	return &PreferencesManager{kv: kv, defaults: defaults}
}

// HapticEnabled reports the stored haptic toggle.
func (pm *PreferencesManager) HapticEnabled() bool {
	return pm.read(HapticKey, pm.defaults.Haptic)
}

// AudioEnabled reports the stored audio toggle.
func (pm *PreferencesManager) AudioEnabled() bool {
	return pm.read(AudioKey, pm.defaults.Audio)
}

// Get returns both toggles.
func (pm *PreferencesManager) Get() FeedbackPreferences {
	return FeedbackPreferences{
		Haptic: pm.HapticEnabled(),
		Audio:  pm.AudioEnabled(),
	}
}

// SetHaptic persists the haptic toggle.
func (pm *PreferencesManager) SetHaptic(on bool) error {
	return pm.write(HapticKey, on)
}

// SetAudio persists the audio toggle.
func (pm *PreferencesManager) SetAudio(on bool) error {
	return pm.write(AudioKey, on)
}

func (pm *PreferencesManager) read(key string, fallback bool) bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	raw, ok, err := pm.kv.Get(key)
	if err != nil {
		logging.StoreDebug("preference %s unreadable, using default: %v", key, err)
		return fallback
	}
	if !ok {
		return fallback
	}
	on, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return on
}

func (pm *PreferencesManager) write(key string, on bool) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if err := pm.kv.Set(key, strconv.FormatBool(on)); err != nil {
		return err
	}
	logging.Store("preference %s set to %v", key, on)
	return nil
}
