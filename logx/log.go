// Package logx wires the renderer's diagnostics to zerolog's console
// writer, mirroring the original implementation's INFO/WARN/FATAL
// macros: warnings are non-fatal and continue execution, fatals print
// and exit the process.
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// Info logs a non-fatal informational message.
func Info(msg string, args ...interface{}) {
	logger.Info().Msgf(msg, args...)
}

// Warn logs a recoverable problem. The caller skips the offending
// input and continues; this is never fatal.
func Warn(msg string, args ...interface{}) {
	logger.Warn().Msgf(msg, args...)
}

// Fatal logs an unrecoverable problem and exits the process with
// status 1, matching the CLI's exit-code contract.
func Fatal(msg string, args ...interface{}) {
	logger.Fatal().Msgf(msg, args...)
}
