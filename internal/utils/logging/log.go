// Package logging provides leveled logging helpers for Podtube.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"podtube/internal/domain/consts"

	"github.com/rs/zerolog"
)

// Level is the debug verbosity. Messages logged with D at a level above
// this are dropped.
var Level int

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger()

// SetupLogging points the logger at the console plus the given log file.
func SetupLogging(logFilePath string, level int) error {
	Level = level

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}}

	if logFilePath != "" {
		f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, consts.PermsFile)
		if err != nil {
			return fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
		}
		writers = append(writers, f)
	}

	logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	return nil
}

// D logs a debug message at the given verbosity level.
func D(l int, format string, args ...any) {
	if l > Level {
		return
	}
	logger.Debug().Msgf(format, args...)
}

// I logs an info message.
func I(format string, args ...any) {
	logger.Info().Msgf(format, args...)
}

// W logs a warning message.
func W(format string, args ...any) {
	logger.Warn().Msgf(format, args...)
}

// E logs an error message.
func E(format string, args ...any) {
	logger.Error().Msgf(format, args...)
}

// S logs a success message at the given verbosity level.
func S(l int, format string, args ...any) {
	if l > Level {
		return
	}
	logger.Info().Str("status", "success").Msgf(format, args...)
}

// P logs a plain message with no level attached.
func P(format string, args ...any) {
	logger.Log().Msgf(format, args...)
}
