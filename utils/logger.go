package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// Logger provides leveled, printf-style logging on top of slog.
type Logger struct {
	sl *slog.Logger
}

// LoggerOptions configures NewLoggerWithOptions.
type LoggerOptions struct {
	// Writer defaults to os.Stdout.
	Writer io.Writer
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	Color bool
}

// NewLogger creates an info-level colour Logger writing to stdout.
func NewLogger() *Logger {
	return NewLoggerWithOptions(LoggerOptions{Level: "info", Color: true})
}

// NewLoggerWithOptions builds a Logger backed by a tint handler.
func NewLoggerWithOptions(opts LoggerOptions) *Logger {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	handler := tint.NewHandler(opts.Writer, &tint.Options{
		Level:      ParseLevel(opts.Level),
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    !opts.Color,
	})
	return &Logger{sl: slog.New(handler)}
}

// ParseLevel maps a level name onto slog levels.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// With returns a Logger that adds the given key/value attributes to every line.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{sl: l.sl.With(args...)}
}

func (l *Logger) Info(format string, args ...any) {
	l.log(slog.LevelInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.log(slog.LevelWarn, format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.log(slog.LevelError, format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.log(slog.LevelDebug, format, args...)
}

func (l *Logger) log(level slog.Level, format string, args ...any) {
	ctx := context.Background()
	if !l.sl.Enabled(ctx, level) {
		return
	}
	l.sl.Log(ctx, level, fmt.Sprintf(format, args...))
}
