// Package logging provides the structured console logger shared by all services.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/petcollar/fwrename/shared/console"
	"github.com/rs/zerolog"
)

// LevelEnv names the environment variable holding the default log level.
const LevelEnv = "FWRENAME_LOG_LEVEL"

const timeFormat = "15:04:05"

// Logger wraps zerolog with the console formatting used by the CLI.
type Logger struct {
	zlog zerolog.Logger
}

// New creates a logger writing human-readable lines to w at the given level.
func New(w io.Writer, level string) *Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: timeFormat,
		NoColor:    !console.IsTerminal(w),
	}

	return &Logger{
		zlog: zerolog.New(cw).Level(ParseLevel(level)).With().Timestamp().Logger(),
	}
}

// NewDefault creates a stderr logger. An empty level falls back to
// FWRENAME_LOG_LEVEL, then to info.
func NewDefault(level string) *Logger {
	if strings.TrimSpace(level) == "" {
		level = os.Getenv(LevelEnv)
	}

	return New(os.Stderr, level)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// ParseLevel maps a level name to a zerolog level; unknown names mean info.
func ParseLevel(raw string) zerolog.Level {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return zerolog.InfoLevel
	}

	lvl, err := zerolog.ParseLevel(raw)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return lvl
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Infof logs an info message with printf-style formatting.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.zlog.Info().Msgf(format, args...)
}

// Warnf logs a warning message with printf-style formatting.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.zlog.Warn().Msgf(format, args...)
}

// Errorf logs an error message with printf-style formatting.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.zlog.Error().Msgf(format, args...)
}
