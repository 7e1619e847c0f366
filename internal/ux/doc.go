// Package ux holds user-facing settings that live beside the counter.
//
// FeedbackPreferences are two independent toggles (haptic, audio) persisted
// in the same key-value store as the counter. They are only changed through
// an explicit settings action and are read every time feedback fires, so a
// change made by another process (tally prefs) applies to a running session.
package ux
