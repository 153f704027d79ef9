// Package logging builds the zerolog logger shared by the CLI and library.
//
// Diagnostics go to stderr through a ConsoleWriter; command results are
// printed separately to stdout so they stay pipeable.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// TimeFormat is the console timestamp layout.
const TimeFormat = "15:04:05"

// Options selects the log level and colouring.
type Options struct {
	Verbose bool // debug level
	Quiet   bool // error level; wins over Verbose
	NoColor bool
}

// Level returns the level selected by the options (warn by default).
func (o Options) Level() zerolog.Level {
	switch {
	case o.Quiet:
		return zerolog.ErrorLevel
	case o.Verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.WarnLevel
	}
}

// New returns a console logger writing to w.
// Colour is disabled when opts.NoColor is set, NO_COLOR is present in the
// environment, or w is not a terminal.
func New(w io.Writer, opts Options) zerolog.Logger {
	noColor := opts.NoColor || os.Getenv("NO_COLOR") != "" || !IsTerminal(w)

	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: TimeFormat,
		FormatLevel: func(i interface{}) string {
			level, _ := i.(string)
			return formatLevel(level, noColor)
		},
	}

	return zerolog.New(console).Level(opts.Level()).With().Timestamp().Logger()
}

// IsTerminal reports whether w is a character device.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var levelColors = map[string]string{
	"DEBUG": "\033[36m",
	"INFO":  "\033[32m",
	"WARN":  "\033[33m",
	"ERROR": "\033[31m",
}

func formatLevel(level string, noColor bool) string {
	level = strings.ToUpper(level)
	color, ok := levelColors[level]
	if noColor || !ok {
		return "[" + level + "]"
	}
	return color + "[" + level + "]\033[0m"
}
