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

package splitter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/cppx-tools/cppx/internal/lexer"
)

// ErrEmptyInput marks a unified source file with no content. Callers treat
// it as a warning, not a failure.
var ErrEmptyInput = errors.New("empty input file")

// Result describes the outputs of processing one unified source file.
type Result struct {
	HeaderPath  string
	SourcePath  string
	HeaderBytes int
	SourceBytes int
}

// ProcessFile splits the unified source file at path into sibling .h and
// .cpp files, overwriting any existing content. Repeated runs on identical
// input produce byte-identical outputs. On a lexer error no output file is
// written; existing siblings are left untouched.
func ProcessFile(path string) (Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	if len(src) == 0 {
		return Result{}, ErrEmptyInput
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	blocks, err := lexer.NewLexer(src).Tokenize()
	if err != nil {
		return Result{}, err
	}

	var header, source bytes.Buffer
	if err := Split(src, blocks, stem, &header, &source); err != nil {
		return Result{}, err
	}

	dir := filepath.Dir(path)
	result := Result{
		HeaderPath:  filepath.Join(dir, stem+".h"),
		SourcePath:  filepath.Join(dir, stem+".cpp"),
		HeaderBytes: header.Len(),
		SourceBytes: source.Len(),
	}
	if err := os.WriteFile(result.HeaderPath, header.Bytes(), 0644); err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(result.SourcePath, source.Bytes(), 0644); err != nil {
		return Result{}, err
	}
	return result, nil
}
