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

// Package config holds the tool's run configuration, optionally loaded from
// a TOML file. Command-line flags override file values.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// Extension selects unified source files during discovery. Matching is
	// case-sensitive.
	Extension string `toml:"extension"`
	// Exclude lists glob patterns of paths to skip, matched against the
	// discovered path as given.
	Exclude []string `toml:"exclude"`
	// Quiet suppresses per-file progress output.
	Quiet bool `toml:"quiet"`
	// NoColor disables coloured diagnostics.
	NoColor bool `toml:"no-color"`
}

func Default() Config {
	return Config{Extension: ".cppx"}
}

// Load reads a TOML configuration file and merges it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Extension == "" {
		cfg.Extension = ".cppx"
	}
	return cfg, nil
}
