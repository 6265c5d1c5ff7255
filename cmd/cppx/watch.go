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

package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cppx-tools/cppx/internal/collections"
	"github.com/cppx-tools/cppx/internal/config"
	"github.com/cppx-tools/cppx/internal/logx"
	"github.com/cppx-tools/cppx/internal/splitter"
	"github.com/fsnotify/fsnotify"
)

// watchLoop re-splits unified source files as they change under baseDir.
// Every directory in the tree is watched; directories created later join the
// watch set. Runs until the watcher's channels close; errors reported by the
// watcher are logged and watching continues.
func watchLoop(baseDir string, cfg config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := collections.Set[string]{}
	err = filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return err
			}
			watched.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logx.PrintfInfo("Watching %v for changes", baseDir)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !watched.Contains(event.Name) {
						if err := watcher.Add(event.Name); err != nil {
							logx.PrintfWarn("Cannot watch %v: %v", event.Name, err)
						} else {
							watched.Add(event.Name)
						}
					}
					continue
				}
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				if strings.HasSuffix(event.Name, cfg.Extension) && !excluded(event.Name, cfg) {
					reprocess(event.Name)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logx.PrintfWarn("Watch error: %v", err)
		}
	}
}

func reprocess(path string) {
	result, err := splitter.ProcessFile(path)
	switch {
	case errors.Is(err, splitter.ErrEmptyInput):
		logx.PrintfWarn("Skipping empty file %v", path)
	case err != nil:
		logx.PrintfError("Error at %s %v", path, err)
	default:
		logx.PrintfInfo("%s -> %s + %s", path,
			filepath.Base(result.HeaderPath), filepath.Base(result.SourcePath))
	}
}
