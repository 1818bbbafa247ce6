// Package logger provides the application's structured slog loggers: a
// tinted console logger for interactive use and a rotated JSON file logger
// for deployments.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewConsoleLogger creates a colorized text logger writing to stderr.
func NewConsoleLogger(level slog.Level) *slog.Logger {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	})
	return slog.New(handler)
}

// NewFileLogger creates a JSON slog.Logger writing to logFile with size-based
// rotation. The parent directory is created if it does not exist.
func NewFileLogger(logFile string, level slog.Level) (*slog.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0750); err != nil {
		return nil, fmt.Errorf("creating log directory for %q: %w", logFile, err)
	}

	w := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    20, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), nil
}
