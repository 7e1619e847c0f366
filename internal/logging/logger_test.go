package logging

import (
	"os"
	"strings"
	"testing"

	"tally/internal/config"
)

func resetState(t *testing.T) {
	t.Helper()
	CloseAll()
	cfgMu.Lock()
	cfg = config.LoggingConfig{}
	logsDir = ""
	sessionID = ""
	cfgMu.Unlock()
	t.Cleanup(CloseAll)
}

// TestAllCategoriesLog tests that all categories create log files when debug_mode is true
func TestAllCategoriesLog(t *testing.T) {
	resetState(t)
	dir := t.TempDir()

	lc := config.LoggingConfig{Level: "debug", DebugMode: true}
	if err := Initialize(lc, dir); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	if !IsDebugMode() {
		t.Error("Expected debug mode to be enabled")
	}

	for _, cat := range AllCategories {
		if !IsCategoryEnabled(cat) {
			t.Errorf("Category %s should be enabled", cat)
		}
		Get(cat).Infof("Test info message for %s", cat)
	}

	Counter("Convenience counter log")
	Input("Convenience input log")
	Feedback("Convenience feedback log")
	Store("Convenience store log")
	UI("Convenience ui log")

	CloseAll()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read logs dir: %v", err)
	}

	for _, cat := range AllCategories {
		found := false
		for _, entry := range entries {
			if !strings.HasSuffix(entry.Name(), "_"+string(cat)+".log") {
				continue
			}
			found = true
			content, err := os.ReadFile(dir + "/" + entry.Name())
			if err != nil {
				t.Errorf("Failed to read log file for %s: %v", cat, err)
				continue
			}
			if len(content) == 0 {
				t.Errorf("Log file for %s is empty", cat)
			}
			if !strings.Contains(string(content), SessionID()) {
				t.Errorf("Log file for %s is missing the session id", cat)
			}
		}
		if !found {
			t.Errorf("No log file found for category: %s", cat)
		}
	}
}

// TestDebugModeDisabled tests that no logs are created when debug_mode is false
func TestDebugModeDisabled(t *testing.T) {
	resetState(t)
	dir := t.TempDir() + "/logs"

	if err := Initialize(config.LoggingConfig{Level: "debug"}, dir); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	if IsDebugMode() {
		t.Error("Expected debug mode to be DISABLED (production mode)")
	}

	for _, cat := range AllCategories {
		if IsCategoryEnabled(cat) {
			t.Errorf("Category %s should be disabled", cat)
		}
		Get(cat).Infof("should not be written")
	}
	Counter("should not be written")

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("logs directory should not exist in production mode, stat err=%v", err)
	}
}

func TestCategoryFilter(t *testing.T) {
	resetState(t)
	dir := t.TempDir()

	lc := config.LoggingConfig{
		Level:      "info",
		DebugMode:  true,
		Categories: map[string]bool{"ui": false},
	}
	if err := Initialize(lc, dir); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	if IsCategoryEnabled(CategoryUI) {
		t.Error("ui category should be filtered out")
	}
	if !IsCategoryEnabled(CategoryCounter) {
		t.Error("counter category should remain enabled")
	}

	UI("hidden")
	CloseAll()

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_ui.log") {
			t.Errorf("unexpected ui log file %s", e.Name())
		}
	}
}

func TestInitializeRequiresDir(t *testing.T) {
	resetState(t)
	if err := Initialize(config.LoggingConfig{}, ""); err == nil {
		t.Error("expected error for empty logs directory")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "debug",
		"info":    "info",
		"warn":    "warn",
		"warning": "warn",
		"error":   "error",
		"":        "info",
		"verbose": "info",
	}
	for in, want := range tests {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
