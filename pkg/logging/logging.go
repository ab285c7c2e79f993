package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps a plugin quiet unless something goes wrong.
const DefaultLevel = zerolog.WarnLevel

// ParseLevel converts string to a zerolog level.
func ParseLevel(v string) zerolog.Level {
	if strings.TrimSpace(v) == "" {
		return DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v)))
	if err != nil || lvl == zerolog.NoLevel {
		return DefaultLevel
	}
	return lvl
}

// Raise lowers the threshold by one level per -v flag, bottoming out at trace.
func Raise(base zerolog.Level, verbose int) zerolog.Level {
	if verbose <= 0 {
		return base
	}
	lvl := base - zerolog.Level(verbose)
	if lvl < zerolog.TraceLevel {
		return zerolog.TraceLevel
	}
	return lvl
}

// Logger is a thin wrapper around zerolog.Logger with printf-style helpers.
type Logger struct {
	zl zerolog.Logger
}

// New creates a configured logger. Output goes to path when set and to w
// otherwise. Format "json" emits raw zerolog events, anything else a plain
// console layout.
func New(w io.Writer, path string, level zerolog.Level, format string) (*Logger, error) {
	output := w
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		output = f
	}
	if output == nil {
		output = os.Stderr
	}
	if !strings.EqualFold(format, "json") {
		output = zerolog.ConsoleWriter{Out: output, NoColor: true, TimeFormat: time.RFC3339}
	}
	zl := zerolog.New(output).Level(level).With().Timestamp().Str("component", "check_hwgroup").Logger()
	return &Logger{zl: zl}, nil
}

// With returns a child logger carrying an extra string field.
func (l *Logger) With(key, value string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

func (l *Logger) logf(ev *zerolog.Event, format string, args ...interface{}) {
	if ev == nil {
		return
	}
	ev.Msgf(format, args...)
}

// Tracef logs every SNMP exchange.
func (l *Logger) Tracef(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.logf(l.zl.Trace(), format, args...)
}

// Debugf logs verbose diagnostic messages.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.logf(l.zl.Debug(), format, args...)
}

// Infof logs informational messages.
func (l *Logger) Infof(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.logf(l.zl.Info(), format, args...)
}

// Warnf logs recoverable problems.
func (l *Logger) Warnf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.logf(l.zl.Warn(), format, args...)
}

// Errorf logs errors.
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.logf(l.zl.Error(), format, args...)
}
