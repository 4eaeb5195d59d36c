// Package debug configures console logging for the CLI.
package debug

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// NewConsoleLogger builds a zerolog logger writing human-readable lines to w.
// Colors follow the writer: enabled for terminals, disabled otherwise (the
// color package handles the detection globally).
func NewConsoleLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	colorize := !color.NoColor

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05.000",
		NoColor:    !colorize,
		FormatCaller: func(i interface{}) string {
			caller, ok := i.(string)
			if !ok {
				return ""
			}
			return FormatCaller(caller, colorize)
		},
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

// FormatCaller shortens a "path/to/pkg/file.go:123" caller to its last two
// path elements, optionally colorized.
func FormatCaller(caller string, colorize bool) string {
	file := caller
	line := ""
	if idx := strings.LastIndexByte(caller, ':'); idx >= 0 {
		file = caller[:idx]
		line = caller[idx+1:]
	}

	parts := strings.Split(file, "/")
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	file = strings.Join(parts, "/")

	if !colorize {
		if line == "" {
			return file
		}
		return fmt.Sprintf("%s:%s", file, line)
	}

	sep := color.New(color.Faint).Sprint(":")
	bold := color.New(color.Bold).Sprint(file)
	num := color.New(color.FgHiRed, color.Bold).Sprint(line)
	return bold + sep + num
}

// TimingHook records the elapsed time since construction on every event,
// which makes slow analysis runs visible in debug output.
type TimingHook struct {
	start time.Time
}

func NewTimingHook() TimingHook {
	return TimingHook{start: time.Now()}
}

func (h TimingHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Dur("elapsed", time.Since(h.start))
}
