package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the log destination and encoding.
type Config struct {
	File   string // empty disables logging
	Level  string // trace, debug, info, warn, error, fatal, panic
	Format string // "json" or "pretty"
}

// Setup builds a zerolog logger writing to cfg.File. The terminal belongs
// to the TUI, so without a file the returned logger discards everything.
// The returned closer releases the file and is never nil.
func Setup(cfg Config) (zerolog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}

	return New(f, cfg.Level, cfg.Format), f, nil
}

// New creates a logger on w.
//   - level: unknown values fall back to info
//   - format: "pretty" for human-readable output, anything else for JSON
func New(w io.Writer, level, format string) zerolog.Logger {
	if format == "pretty" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
