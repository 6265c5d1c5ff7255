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

package lexer

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	ErrUnterminatedComment     = errors.New("unterminated multi-line comment")
	ErrUnterminatedString      = errors.New("unterminated string literal")
	ErrUnterminatedCharLiteral = errors.New("unterminated character literal")
	ErrInvalidEscapeSequence   = errors.New("invalid escape sequence")
	ErrInvalidRawString        = errors.New("invalid raw string literal")
	ErrEmptyCharLiteral        = errors.New("empty character literal")
	ErrUnbalancedBrace         = errors.New("unbalanced closing brace")
	ErrUnbalancedParen         = errors.New("unbalanced closing parenthesis")
)

// excerptLimit bounds the amount of source context attached to a LexError.
const excerptLimit = 28

// LexError decorates one of the sentinel error kinds with the 1-based line
// where detection occurred and a short excerpt of the surrounding source,
// truncated at the next newline.
type LexError struct {
	Err     error
	Line    int
	Excerpt string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("(line %d): %v: %s", e.Line, e.Err, e.Excerpt)
}

func (e *LexError) Unwrap() error { return e.Err }

// errorAt wraps kind in a LexError whose excerpt starts at pos.
func (lx *Lexer) errorAt(kind error, line, pos int) error {
	end := min(pos+excerptLimit, len(lx.src))
	if nl := bytes.IndexByte(lx.src[pos:end], '\n'); nl >= 0 {
		end = pos + nl
	}
	return &LexError{Err: kind, Line: line, Excerpt: string(lx.src[pos:end])}
}
