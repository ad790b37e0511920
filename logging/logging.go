// Package logging is the structured logger shared by the commands and the
// HTTP server. Library packages never log; they return errors and leave the
// reporting to the caller.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Fields represents structured logging fields
type Fields map[string]any

type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)

	// WithFields returns a logger with preset fields
	WithFields(fields Fields) Logger

	SetLevel(level Level)
}

type slogLogger struct {
	l     *slog.Logger
	level *slog.LevelVar
}

// New returns a text logger writing to w at info level.
func New(w io.Writer) Logger {
	level := new(slog.LevelVar)
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{l: slog.New(h), level: level}
}

func attrs(fields []Fields) []any {
	merged := make(Fields)
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	res := make([]any, 0, len(keys))
	for _, k := range keys {
		res = append(res, slog.Any(k, merged[k]))
	}
	return res
}

func (s *slogLogger) Debug(msg string, fields ...Fields) {
	s.l.Debug(msg, attrs(fields)...)
}

func (s *slogLogger) Info(msg string, fields ...Fields) {
	s.l.Info(msg, attrs(fields)...)
}

func (s *slogLogger) Warn(msg string, fields ...Fields) {
	s.l.Warn(msg, attrs(fields)...)
}

func (s *slogLogger) Error(err error, msg string, fields ...Fields) {
	args := attrs(fields)
	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}
	s.l.Error(msg, args...)
}

func (s *slogLogger) WithFields(fields Fields) Logger {
	return &slogLogger{l: s.l.With(attrs([]Fields{fields})...), level: s.level}
}

func (s *slogLogger) SetLevel(level Level) {
	s.level.Set(level.slogLevel())
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

func (NoOpLogger) Debug(string, ...Fields)        {}
func (NoOpLogger) Info(string, ...Fields)         {}
func (NoOpLogger) Warn(string, ...Fields)         {}
func (NoOpLogger) Error(error, string, ...Fields) {}
func (n NoOpLogger) WithFields(Fields) Logger     { return n }
func (NoOpLogger) SetLevel(Level)                 {}

var (
	mu            sync.RWMutex
	defaultLogger = New(os.Stderr)
)

func Default() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger. A nil logger silences output.
func SetDefault(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		defaultLogger = NoOpLogger{}
		return
	}
	defaultLogger = l
}
