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

// cppx splits unified C++ source files into interface and implementation
// pairs. Given a base directory it locates every unified source file beneath
// it and writes sibling .h and .cpp files next to each one.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cppx-tools/cppx/internal/collections"
	"github.com/cppx-tools/cppx/internal/config"
	"github.com/cppx-tools/cppx/internal/logx"
	"github.com/cppx-tools/cppx/internal/splitter"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML configuration file")
	quiet := flag.Bool("quiet", false, "suppress per-file progress output")
	noColor := flag.Bool("no-color", false, "disable coloured diagnostics")
	watch := flag.Bool("watch", false, "keep running and re-split files as they change")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [directory]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(1)
	}
	baseDir := "./"
	if flag.NArg() == 1 {
		baseDir = flag.Arg(0)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logx.PrintfError("Failed to load configuration: %v", err)
			os.Exit(1)
		}
	}
	if *quiet {
		cfg.Quiet = true
	}
	if *noColor {
		cfg.NoColor = true
	}

	if cfg.NoColor {
		logx.UseColor = false
	} else {
		logx.InitColor()
	}
	if cfg.Quiet {
		logx.UserLevel = slog.LevelWarn
	}

	if info, err := os.Stat(baseDir); err != nil || !info.IsDir() {
		logx.PrintfError("Base directory %q does not exist or is not a directory", baseDir)
		os.Exit(1)
	}

	files, err := discover(baseDir, cfg)
	if err != nil {
		logx.PrintfError("Failed to scan %q: %v", baseDir, err)
		os.Exit(1)
	}
	if len(files) == 0 {
		logx.PrintfWarn("No %v files found under %v", cfg.Extension, baseDir)
	}

	var failed []string
	processed, written := 0, 0
	for _, path := range files {
		result, err := splitter.ProcessFile(path)
		switch {
		case errors.Is(err, splitter.ErrEmptyInput):
			logx.PrintfWarn("Skipping empty file %v", path)
		case err != nil:
			// per-file errors do not change the overall exit code
			logx.PrintfError("Error at %s %v", path, err)
			failed = append(failed, path)
		default:
			logx.PrintfInfo("%s (%s) -> %s + %s", path, inputSize(path),
				filepath.Base(result.HeaderPath), filepath.Base(result.SourcePath))
			processed++
			written += result.HeaderBytes + result.SourceBytes
		}
	}

	logx.PrintfInfo("Processed %d files, %d bytes written", processed, written)
	if len(failed) > 0 {
		logx.PrintfWarn("Failed to process %d files: %v", len(failed),
			collections.MapSlice(failed, filepath.Base))
	}

	if *watch {
		if err := watchLoop(baseDir, cfg); err != nil {
			logx.PrintfError("Watch failed: %v", err)
			os.Exit(1)
		}
	}
}

// discover returns every regular file under baseDir carrying the configured
// extension, minus the excluded ones. Extension matching is case-sensitive.
func discover(baseDir string, cfg config.Config) ([]string, error) {
	pattern := filepath.ToSlash(filepath.Join(baseDir, "**", "*"+cfg.Extension))
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, err
	}
	matches = collections.FilterSlice(matches, func(path string) bool {
		return !excluded(path, cfg)
	})
	return collections.FilterMapSlice(matches, func(path string) (string, bool) {
		info, err := os.Stat(path)
		return path, err == nil && info.Mode().IsRegular()
	}), nil
}

func excluded(path string, cfg config.Config) bool {
	slashed := filepath.ToSlash(path)
	return slices.ContainsFunc(cfg.Exclude, func(pattern string) bool {
		return doublestar.MatchUnvalidated(pattern, slashed)
	})
}

// inputSize renders the input file size for the progress line. Failing to
// stat is only worth a warning.
func inputSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		logx.PrintfWarn("Cannot stat %v for size reporting: %v", path, err)
		return "?"
	}
	return fmt.Sprintf("%d bytes", info.Size())
}
