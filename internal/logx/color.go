// Copyright 2025 The cppx Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logx provides the tool's console diagnostics: plain progress
// output on stdout and coloured warnings and errors on stderr.
package logx

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// UseColor is whether to apply colour to warning and error output. It is on
// by default and disabled automatically when stderr is not a terminal.
var UseColor = true

var colorProfile = termenv.Ascii

// InitColor sets up the terminal environment for colour output. Call it once
// at startup, after any configuration that assigns UseColor.
func InitColor() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		UseColor = false
		return
	}
	if restore, err := termenv.EnableVirtualTerminalProcessing(termenv.DefaultOutput()); err == nil {
		_ = restore
	}
	colorProfile = termenv.ColorProfile()
}

// ApplyColor applies the given ANSI colour to the string. If UseColor is
// false it returns the string unchanged.
func ApplyColor(color termenv.ANSIColor, str string) string {
	if !UseColor {
		return str
	}
	return termenv.String(str).Foreground(colorProfile.Convert(color)).String()
}

// LevelColor applies the colour associated with the given level.
func LevelColor(level slog.Level, str string) string {
	switch level {
	case slog.LevelWarn:
		return WarnColor(str)
	case slog.LevelError:
		return ErrorColor(str)
	}
	return str
}

// WarnColor applies the warning colour.
func WarnColor(str string) string { return ApplyColor(termenv.ANSIYellow, str) }

// ErrorColor applies the error colour.
func ErrorColor(str string) string { return ApplyColor(termenv.ANSIRed, str) }
