package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestOptions_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		want zerolog.Level
	}{
		{name: "default warn", opts: Options{}, want: zerolog.WarnLevel},
		{name: "verbose debug", opts: Options{Verbose: true}, want: zerolog.DebugLevel},
		{name: "quiet error", opts: Options{Quiet: true}, want: zerolog.ErrorLevel},
		{name: "quiet wins", opts: Options{Quiet: true, Verbose: true}, want: zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.opts.Level(); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("filters below level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := New(&buf, Options{})
		logger.Debug().Msg("resolving")
		logger.Warn().Str("file", "vector.cpp").Msg("snippet not found")

		out := buf.String()
		if strings.Contains(out, "resolving") {
			t.Errorf("debug message should be filtered, got %q", out)
		}
		if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "snippet not found") {
			t.Errorf("warn message missing, got %q", out)
		}
		if !strings.Contains(out, "vector.cpp") {
			t.Errorf("field missing, got %q", out)
		}
	})

	t.Run("buffer output has no colour", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := New(&buf, Options{Verbose: true})
		logger.Debug().Msg("x")

		if strings.Contains(buf.String(), "\033[") {
			t.Errorf("unexpected escape sequence in %q", buf.String())
		}
	})
}

func TestFormatLevel(t *testing.T) {
	t.Parallel()

	if got := formatLevel("warn", true); got != "[WARN]" {
		t.Errorf("formatLevel(warn, noColor) = %q", got)
	}
	if got := formatLevel("error", false); got != "\033[31m[ERROR]\033[0m" {
		t.Errorf("formatLevel(error, color) = %q", got)
	}
	if got := formatLevel("trace", false); got != "[TRACE]" {
		t.Errorf("formatLevel(trace, color) = %q", got)
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	if IsTerminal(&bytes.Buffer{}) {
		t.Error("bytes.Buffer is not a terminal")
	}
}
