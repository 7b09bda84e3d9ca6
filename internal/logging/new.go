package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Supported output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatAuto    = "auto"
)

// New builds a Logger writing to w.
//
//   - "json" uses slog's JSON handler.
//   - "console" uses zerolog's human-readable console writer.
//   - "auto" picks console when w is a terminal and JSON otherwise.
//
// level is one of debug, info, warn, error (case-insensitive).
func New(format, level string, w io.Writer) (Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(format) {
	case FormatAuto, "":
		if isTerminal(w) {
			return newConsole(lvl, w), nil
		}
		return newJSON(lvl, w), nil
	case FormatJSON:
		return newJSON(lvl, w), nil
	case FormatConsole:
		return newConsole(lvl, w), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func newJSON(lvl slog.Level, w io.Writer) Logger {
	return NewSlogLogger(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})))
}

func newConsole(lvl slog.Level, w io.Writer) Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(zerologLevel(lvl)).
		With().Timestamp().Logger()
	return NewZerologLogger(zl)
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}

func zerologLevel(l slog.Level) zerolog.Level {
	switch {
	case l <= slog.LevelDebug:
		return zerolog.DebugLevel
	case l <= slog.LevelInfo:
		return zerolog.InfoLevel
	case l <= slog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
