// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorMagenta = 35
	colorBold    = 1
)

func colorize(s interface{}, c int, disabled bool) string {
	if disabled {
		return fmt.Sprintf("%s", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}

// consoleOutput returns stderr, translating ANSI escapes on Windows.
func consoleOutput(noColor bool) io.Writer {
	if noColor {
		return colorable.NewNonColorable(os.Stderr)
	}
	return colorable.NewColorable(os.Stderr)
}

// initLogger installs a console logger on w as the global zerolog logger
// and returns it.
func initLogger(w io.Writer, level zerolog.Level, noColor bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        zerolog.SyncWriter(w),
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	output.FormatLevel = func(i interface{}) string {
		ll, ok := i.(string)
		if !ok {
			return "| ???   |"
		}
		var l string
		switch ll {
		case zerolog.LevelTraceValue:
			l = colorize("TRACE", colorMagenta, noColor)
		case zerolog.LevelDebugValue:
			l = colorize("DEBUG", colorYellow, noColor)
		case zerolog.LevelInfoValue:
			l = colorize("INFO ", colorGreen, noColor)
		case zerolog.LevelWarnValue:
			l = colorize("WARN ", colorRed, noColor)
		case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
			l = colorize(colorize(strings.ToUpper(ll)[:5], colorRed, noColor), colorBold, noColor)
		default:
			l = colorize(ll, colorBold, noColor)
		}
		return fmt.Sprintf("| %s |", l)
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
