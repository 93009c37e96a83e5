// Package logger wraps zerolog.Logger for the pubkey-profile CLI and SDK.
//
// The Logger type embeds zerolog.Logger so the full zerolog API (Debug, Info,
// Warn, Error, ...) is available directly on *Logger. Library packages accept
// a *Logger and fall back to Nop when none is given.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger builds a JSON logger writing to w with the given component
// label and minimum level. Unknown levels fall back to info.
func NewLogger(w io.Writer, component, level string) *Logger {
	logger := zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Str("component", component).
		Timestamp().
		Logger()

	return &Logger{logger}
}

// NewConsoleLogger is the human readable variant used by the CLI. Output
// goes to stderr so command output on stdout stays pipeable.
func NewConsoleLogger(component, level string) *Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	logger := zerolog.New(writer).
		Level(ParseLevel(level)).
		With().
		Str("component", component).
		Timestamp().
		Logger()

	return &Logger{logger}
}

// ParseLevel maps a level name to a zerolog level. Empty or unknown names
// resolve to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Nop returns a *Logger that discards all output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// OrNop returns l, or a Nop logger when l is nil.
func OrNop(l *Logger) *Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// With returns a child logger carrying an extra string field.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{l.Logger.With().Str(key, value).Logger()}
}

// WithContext attaches the logger to ctx.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext extracts the logger stored in ctx. zerolog returns its
// disabled logger when nothing was attached, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
