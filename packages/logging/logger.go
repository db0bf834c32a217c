// Package logging builds the structured loggers used by gridcalc.
//
// Output goes to stderr by default, as text unless JSON is requested:
//
//	logger := logging.New(logging.Config{Level: logging.LevelDebug})
//	logger.Debug("recalculated", "nodes", 12)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level represents log severity, ordered Debug < Info < Warn < Error
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN"
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel converts a case-insensitive level name to a Level.
// "warning" is accepted as an alias for warn.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Config configures a logger. the zero value writes Info and above to
// stderr as text.
type Config struct {
	// Level sets the minimum level; lower messages are discarded
	Level Level

	// JSON switches the output to one JSON object per line
	JSON bool

	// Output overrides the destination. nil means stderr.
	Output io.Writer
}

// New creates a logger from cfg
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level.toSlogLevel()}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
