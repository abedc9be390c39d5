package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a level name to a zerolog level. Unknown names fall back
// to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "OFF", "DISABLED":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a console logger on w at the named level. A nil w logs to
// stderr.
func New(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(console).
		Level(ParseLevel(level)).
		With().Timestamp().
		Logger()
}

// NewWithFile tees console output and JSON lines to file. The file receives
// every level the logger passes.
func NewWithFile(level string, w io.Writer, file io.Writer) zerolog.Logger {
	if file == nil {
		return New(level, w)
	}
	if w == nil {
		w = os.Stderr
	}
	mlw := zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly},
		file,
	)
	return zerolog.New(mlw).
		Level(ParseLevel(level)).
		With().Timestamp().
		Logger()
}
