package xslog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// FormatEnvKey selects the handler. JSON is the default; text is easier to
// tail while developing.
const FormatEnvKey = "LOG_FORMAT"

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

func FormatFromEnv() Format {
	if Format(strings.ToLower(strings.TrimSpace(os.Getenv(FormatEnvKey)))) == FormatText {
		return FormatText
	}
	return FormatJSON
}

// New builds a logger that stamps every record with the client version.
func New(w io.Writer, level Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level.ToSlog()}

	var h slog.Handler
	if format == FormatText {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With(Version())
}

func NewLogger(w io.Writer, level Level) *slog.Logger {
	return New(w, level, FormatJSON)
}

func NewLoggerFromEnv(w io.Writer) *slog.Logger {
	return New(w, FromEnv(), FormatFromEnv())
}

// OpenFile opens (or creates) an append-only log file. The TUI owns the
// terminal, so everything is logged to disk instead of stdout.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
