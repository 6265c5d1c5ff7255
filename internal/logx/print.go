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

package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// UserLevel filters output: messages below it are dropped. Raise it to
// slog.LevelWarn for quiet runs.
var UserLevel = slog.LevelInfo

// sink returns the stream for the given level: stdout for progress output,
// stderr for warnings and errors.
func sink(level slog.Level) io.Writer {
	if level >= slog.LevelWarn {
		return os.Stderr
	}
	return os.Stdout
}

// Printf formats and prints a line to the level's sink, coloured by level.
func Printf(level slog.Level, format string, a ...any) {
	if UserLevel > level {
		return
	}
	fmt.Fprintln(sink(level), LevelColor(level, fmt.Sprintf(format, a...)))
}

// PrintfInfo is equivalent to [Printf] with level [slog.LevelInfo].
func PrintfInfo(format string, a ...any) { Printf(slog.LevelInfo, format, a...) }

// PrintfWarn is equivalent to [Printf] with level [slog.LevelWarn].
func PrintfWarn(format string, a ...any) { Printf(slog.LevelWarn, format, a...) }

// PrintfError is equivalent to [Printf] with level [slog.LevelError].
func PrintfError(format string, a ...any) { Printf(slog.LevelError, format, a...) }
