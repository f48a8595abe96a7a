// Package logging provides the process-wide logger for the toolkit.
//
// Core components call into the logger but own no lifecycle over it: the
// logger is configured once at process start (or replaced in tests) and is
// read-only afterwards.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger = zap.Must(zap.NewProduction()).Sugar()

	onceMu sync.Mutex
	warned = make(map[string]struct{})
)

// SetLogger replaces the process-wide logger.
// Call once at process start, before any other toolkit use.
func SetLogger(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Debug logs a formatted debug message.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Debugf(format, args...)
}

// Info logs a formatted info message.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Infof(format, args...)
}

// Warn logs a formatted warning message.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Warnf(format, args...)
}

// WarnOnce logs a formatted warning message at most once per unique
// formatted string for the lifetime of the process. Used for per-backend
// performance warnings that would otherwise repeat every batch.
func WarnOnce(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	onceMu.Lock()
	if _, seen := warned[msg]; seen {
		onceMu.Unlock()
		return
	}
	warned[msg] = struct{}{}
	onceMu.Unlock()

	Warn("%s", msg)
}
