// Package logging provides config-driven categorized file-based logging for tally.
// Logs are written to <data dir>/logs/ with separate files per category.
// Logging is controlled by logging.debug_mode in config.yaml - when false, no logs are written,
// which keeps the terminal surface free of stray output.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tally/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, config, shutdown
	CategoryCounter  Category = "counter"  // Controller transitions and persistence
	CategoryInput    Category = "input"    // Key and pointer normalization
	CategoryFeedback Category = "feedback" // Haptic and tone dispatch
	CategoryStore    Category = "store"    // Key-value store operations
	CategoryUI       Category = "ui"       // Terminal surface
)

// AllCategories lists every category in a stable order.
var AllCategories = []Category{
	CategoryBoot,
	CategoryCounter,
	CategoryInput,
	CategoryFeedback,
	CategoryStore,
	CategoryUI,
}

type categoryLogger struct {
	sugar *zap.SugaredLogger
	file  *os.File
}

var (
	loggers   = make(map[Category]*categoryLogger)
	loggersMu sync.RWMutex
	logsDir   string
	cfg       config.LoggingConfig
	cfgMu     sync.RWMutex
	sessionID string
	nop       = zap.NewNop().Sugar()
)

// Initialize sets up the logging directory.
// Should be called once at startup; a disabled config makes every logger a no-op.
func Initialize(lc config.LoggingConfig, dir string) error {
	if dir == "" {
		return fmt.Errorf("logs directory required")
	}

	cfgMu.Lock()
	cfg = lc
	logsDir = dir
	sessionID = uuid.NewString()
	cfgMu.Unlock()

	if !lc.DebugMode {
		return nil // Silent no-op in production mode
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Infow("logging initialized", "dir", dir, "level", lc.Level, "format", lc.Format)
	for _, cat := range AllCategories {
		boot.Debugw("category", "name", cat, "enabled", IsCategoryEnabled(cat))
	}

	return nil
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return cfg.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// SessionID returns the identifier attached to every entry of this run.
func SessionID() string {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return sessionID
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *zap.SugaredLogger {
	if !IsCategoryEnabled(category) {
		return nop
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l.sugar
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l.sugar
	}

	cfgMu.RLock()
	dir, lc, sid := logsDir, cfg, sessionID
	cfgMu.RUnlock()
	if dir == "" {
		return nop
	}

	// Date prefix for easy rotation
	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02"), category)
	logPath := filepath.Join(dir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", logPath, err)
		return nop
	}

	core := zapcore.NewCore(newEncoder(lc), zapcore.AddSync(file), parseLevel(lc.Level))
	sugar := zap.New(core).Sugar().With("category", string(category), "session", sid)
	loggers[category] = &categoryLogger{sugar: sugar, file: file}

	return sugar
}

func newEncoder(lc config.LoggingConfig) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	if lc.IsJSON() {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// CloseAll flushes and closes all open log files (call at shutdown)
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		_ = l.sugar.Sync()
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*categoryLogger)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Infof(format, args...)
}

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) {
	Get(CategoryBoot).Debugf(format, args...)
}

// Counter logs to the counter category
func Counter(format string, args ...interface{}) {
	Get(CategoryCounter).Infof(format, args...)
}

// CounterDebug logs debug to the counter category
func CounterDebug(format string, args ...interface{}) {
	Get(CategoryCounter).Debugf(format, args...)
}

// Input logs to the input category
func Input(format string, args ...interface{}) {
	Get(CategoryInput).Infof(format, args...)
}

// InputDebug logs debug to the input category
func InputDebug(format string, args ...interface{}) {
	Get(CategoryInput).Debugf(format, args...)
}

// Feedback logs to the feedback category
func Feedback(format string, args ...interface{}) {
	Get(CategoryFeedback).Infof(format, args...)
}

// FeedbackDebug logs debug to the feedback category
func FeedbackDebug(format string, args ...interface{}) {
	Get(CategoryFeedback).Debugf(format, args...)
}

// Store logs to the store category
func Store(format string, args ...interface{}) {
	Get(CategoryStore).Infof(format, args...)
}

// StoreDebug logs debug to the store category
func StoreDebug(format string, args ...interface{}) {
	Get(CategoryStore).Debugf(format, args...)
}

// UI logs to the ui category
func UI(format string, args ...interface{}) {
	Get(CategoryUI).Infof(format, args...)
}

// UIDebug logs debug to the ui category
func UIDebug(format string, args ...interface{}) {
	Get(CategoryUI).Debugf(format, args...)
}
