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
	"strings"

	"github.com/cppx-tools/cppx/internal/lexer"
)

// Guard derives the include-guard macro identifier from the block sequence
// and the input file's stem: the names of every namespace header outside a
// class, struct or enum, in file order, then the uppercased stem, then "_H".
// Class, struct and enum definitions are skipped wholesale, so a forward
// declaration or nested type never contributes a name.
func Guard(src []byte, blocks []lexer.CodeBlock, stem string) string {
	var sb strings.Builder
	for i := 0; i < len(blocks); {
		switch blocks[i].Type {
		case lexer.BlockType_NamespaceKeyword:
			i = appendNamespaceNames(&sb, src, blocks, i+1)
		case lexer.BlockType_ClassKeyword, lexer.BlockType_StructKeyword, lexer.BlockType_EnumKeyword:
			i = skipToTerminator(blocks, i+1)
		default:
			i++
		}
	}
	sb.WriteString(stem)
	sb.WriteString("_H")
	return sanitizeMacro(strings.ToUpper(sb.String()))
}

// appendNamespaceNames collects the identifiers of a namespace header into
// sb. A statement terminator means a forward declaration and discards the
// partial name.
func appendNamespaceNames(sb *strings.Builder, src []byte, blocks []lexer.CodeBlock, i int) int {
	var partial strings.Builder
	for ; i < len(blocks); i++ {
		switch blocks[i].Type {
		case lexer.BlockType_Identifier:
			partial.WriteString(blocks[i].Text(src))
			partial.WriteByte('_')
		case lexer.BlockType_BeginGroup:
			sb.WriteString(partial.String())
			return i + 1
		case lexer.BlockType_StatementTerminator:
			return i + 1
		}
	}
	return i
}

// skipToTerminator advances past a class/struct/enum introduced just before
// i: through the balanced braces of its body, if any, up to the statement
// terminator at body depth.
func skipToTerminator(blocks []lexer.CodeBlock, i int) int {
	depth := 0
	for ; i < len(blocks); i++ {
		switch blocks[i].Type {
		case lexer.BlockType_BeginGroup:
			depth++
		case lexer.BlockType_EndGroup:
			depth--
		case lexer.BlockType_StatementTerminator:
			if depth <= 0 {
				return i + 1
			}
		}
	}
	return i
}

// sanitizeMacro maps s onto the host language's macro identifier alphabet.
func sanitizeMacro(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
	if mapped == "" || (mapped[0] >= '0' && mapped[0] <= '9') {
		mapped = "_" + mapped
	}
	return mapped
}
