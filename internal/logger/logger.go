// Package logger provides file-backed logging for ragchat.
//
// The interactive TUI owns the terminal, so log output goes to a file
// under the user's home directory instead of stderr. One-shot commands
// may additionally enable console output with --verbose.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum severity: debug, info, warn, or error.
	// Unrecognised values fall back to info.
	Level string

	// File is the log file path. Empty disables file output.
	File string

	// Console additionally writes human-readable output to stderr.
	// Never enabled while the TUI is running.
	Console bool
}

var (
	mu   sync.RWMutex
	log  = zerolog.Nop()
	file *os.File
)

// DefaultPath returns the default log file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ragchat.log"
	}
	return filepath.Join(home, ".ragchat", "ragchat.log")
}

// Init configures the package logger. Called once at startup; before
// that, logging is a no-op.
func Init(cfg Config) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	var f *os.File
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, f)
	}

	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
	}
	file = f

	if len(writers) == 0 {
		log = zerolog.Nop()
		return nil
	}

	var w io.Writer
	if len(writers) == 1 {
		w = writers[0]
	} else {
		w = io.MultiWriter(writers...)
	}

	log = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return nil
}

// SetOutput routes all log output to the given writer at debug level.
// Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// Close closes the log file, if one is open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.Nop()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

// Debug logs a debug message.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Msgf(format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info().Msgf(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warn().Msgf(format, args...)
}

// Error logs an error with a message.
func Error(err error, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Error().Err(err).Msgf(format, args...)
}
