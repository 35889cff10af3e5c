package logging

import (
	"io"
	"log/slog"
	"os"
)

// LogLevel selects the minimum severity a logger emits. It is deliberately
// decoupled from slog levels so callers configure logging without importing
// slog themselves.
type LogLevel int

const (
	// LogLevelDebug emits everything, including per-dispatch diagnostics.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo emits informational messages and above.
	LogLevelInfo
	// LogLevelWarn emits warnings and errors only.
	LogLevelWarn
	// LogLevelError emits errors only.
	LogLevelError
)

var levelNames = map[LogLevel]string{
	LogLevelDebug: "DEBUG",
	LogLevelInfo:  "INFO",
	LogLevelWarn:  "WARN",
	LogLevelError: "ERROR",
}

// String returns the level's name.
func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

var slogLevels = map[LogLevel]slog.Level{
	LogLevelDebug: slog.LevelDebug,
	LogLevelInfo:  slog.LevelInfo,
	LogLevelWarn:  slog.LevelWarn,
	LogLevelError: slog.LevelError,
}

func slogLevel(l LogLevel) slog.Level {
	if lvl, ok := slogLevels[l]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// Logger is the minimal contract symgo components log through. Any
// structured logger can back it; SlogAdapter and NoOpLogger ship with the
// package.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter backs Logger with a *slog.Logger.
type SlogAdapter struct {
	*slog.Logger
}

var _ Logger = (*SlogAdapter)(nil)

// Debug implements Logger.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info implements Logger.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn implements Logger.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error implements Logger.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter wraps an existing *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger wraps slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// Config controls NewLogger. Zero values fall back to info-level JSON on
// stderr.
type Config struct {
	Level  LogLevel
	Format string // "json" or "text"
	Output io.Writer
}

// NewLogger builds a slog-backed Logger from cfg. A nil cfg uses defaults.
func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = &Config{Level: LogLevelInfo}
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return NewSlogAdapter(slog.New(handler))
}

// NoOpLogger discards every message. It is the default wherever no logger
// was configured.
type NoOpLogger struct{}

var _ Logger = NoOpLogger{}

// Debug implements Logger.
func (NoOpLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NoOpLogger) Info(string, ...any) {}

// Warn implements Logger.
func (NoOpLogger) Warn(string, ...any) {}

// Error implements Logger.
func (NoOpLogger) Error(string, ...any) {}

// OrNoOp returns l, or a NoOpLogger when l is nil.
func OrNoOp(l Logger) Logger {
	if l == nil {
		return NoOpLogger{}
	}
	return l
}
