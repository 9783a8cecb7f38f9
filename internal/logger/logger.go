// Package logger wraps log/slog for the shell's structured logging, the
// way the teacher's own internal/logger package wraps slog for the
// filesystem server. Unlike that package, this one holds no global
// mutable state: spec.md's design notes call for "no global mutable
// state; every piece of state lives inside a Shell instance", so a
// Logger here is a small per-instance value, not package-level atomics.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level mirrors the teacher's internal/logger.Level enum.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config selects the level, text/JSON handler, and output stream, the
// same three knobs as the teacher's internal/logger.Config.
type Config struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // text, json
	Output io.Writer
}

// Logger implements shell.Logger by wrapping a *slog.Logger. It never
// logs passwords or unvalidated input lines: callers pass only the
// fields spec.md's ambient-stack section calls for (shell/session IDs,
// usernames, command IDs).
type Logger struct {
	slog *slog.Logger
}

// New builds a Logger from cfg. An empty Output defaults to os.Stderr,
// matching the teacher's default of stdout for its own CLI logger
// (stderr here so it never interleaves with the shell's own byte
// stream, which is the whole point of this library).
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(cfg.Level).slog())
	opts := &slog.HandlerOptions{Level: levelVar}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}

	return &Logger{slog: slog.New(h)}
}

func parseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Debug logs at debug level with structured key/value pairs.
func (l *Logger) Debug(ctx context.Context, msg string, kv ...any) {
	l.slog.DebugContext(ctx, msg, kv...)
}

// Warn logs at warn level with structured key/value pairs.
func (l *Logger) Warn(ctx context.Context, msg string, kv ...any) {
	l.slog.WarnContext(ctx, msg, kv...)
}

// Error logs at error level; not part of the shell.Logger interface
// (the shell itself never hits error-level conditions — CharIo errors
// propagate to the caller instead) but useful for cmd/nutshelld's own
// setup/teardown logging.
func (l *Logger) Error(ctx context.Context, msg string, kv ...any) {
	l.slog.ErrorContext(ctx, msg, kv...)
}

// With returns a Logger with additional pre-bound fields, mirroring the
// teacher's logger.With.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{slog: l.slog.With(kv...)}
}
