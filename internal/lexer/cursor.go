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

import "bytes"

// cursor tracks the lexing position: a byte offset into the source buffer and
// the 1-based line number of that offset, which is natural for humans.
type cursor struct {
	pos  int
	line int
}

func newCursor() cursor { return cursor{line: 1} }

// advancedBy returns the cursor moved forward over the next n bytes of src.
// Every newline crossed increments the line number.
func (c cursor) advancedBy(src []byte, n int) cursor {
	c.line += bytes.Count(src[c.pos:c.pos+n], []byte{'\n'})
	c.pos += n
	return c
}
