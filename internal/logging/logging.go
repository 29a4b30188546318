// =============================================================================
// CSV to XLSX Converter - Logging Module
// =============================================================================
//
// This module builds the zerolog logger used by the CLI and the converter.
//
// OUTPUT:
//   Human-readable console lines on the given writer (stderr for the CLI),
//   coloured only when the writer is a terminal.
//
// LEVELS:
//   debug, info (default), warn, error
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// =============================================================================
// LEVELS
// =============================================================================

// ParseLevel maps a settings value ("debug", "info", "warn", "error") to a
// zerolog level.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
}

// =============================================================================
// LOGGER CONSTRUCTION
// =============================================================================

// New returns a console logger writing to w at the given level. Colours are
// enabled only when w is a terminal.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything. Used by tests and library callers.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
