// Package logging adapts log/slog to cms.Logger.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// Static errors for err113 compliance.
var (
	ErrUnknownLevel  = errors.New("unknown log level")
	ErrUnknownFormat = errors.New("unknown log format")
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logger implements cms.Logger on top of a slog.Logger.
type Logger struct {
	logger *slog.Logger
}

var _ cms.Logger = (*Logger)(nil)

// New returns a Logger writing to w at the given level ("debug", "info",
// "warn", "error") and format ("text" or "json"). A nil writer means
// stderr; empty level and format default to info and text.
func New(level, format string, w io.Writer) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		handler = slog.NewTextHandler(w, opts)
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return &Logger{logger: slog.New(handler)}, nil
}

// FromSlog wraps an existing slog.Logger.
func FromSlog(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}

	return &Logger{logger: logger}
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
}

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// Debug implements cms.Logger.Debug.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields)
}

// Info implements cms.Logger.Info.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields)
}

// Warn implements cms.Logger.Warn.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields)
}

// Error implements cms.Logger.Error.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log(slog.LevelError, msg, fields)
}

func (l *Logger) log(level slog.Level, msg string, fields map[string]interface{}) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, fields[key]))
	}

	l.logger.LogAttrs(ctx, level, msg, attrs...)
}
