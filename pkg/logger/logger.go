package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type Logger struct {
	info  *zerolog.Logger
	warn  *zerolog.Logger
	error *zerolog.Logger
}

// New returns a JSON logger. Info and warnings go to stdout, errors to stderr.
func New() *Logger {
	return build(os.Stdout, os.Stderr)
}

// NewConsole returns a human-readable logger for local development.
func NewConsole() *Logger {
	return build(
		zerolog.ConsoleWriter{Out: os.Stdout},
		zerolog.ConsoleWriter{Out: os.Stderr},
	)
}

// NewWithWriter sends every level to w.
func NewWithWriter(w io.Writer) *Logger {
	return build(w, w)
}

func build(out, errOut io.Writer) *Logger {
	info := zerolog.New(out).With().Timestamp().Logger()
	warn := info
	errLog := zerolog.New(errOut).With().Timestamp().Logger()
	return &Logger{
		info:  &info,
		warn:  &warn,
		error: &errLog,
	}
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.info.Info().Msgf(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.warn.Warn().Msgf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.error.Error().Msgf(format, v...)
}

