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

// Package splitter turns the lexer's block sequence into the two outputs of
// a unified source file: a declaration-only interface and an implementation
// holding every relocated function body, qualified with its scope.
package splitter

import (
	"io"
	"strings"

	"github.com/cppx-tools/cppx/internal/lexer"
)

// stickyWriter remembers the first write failure so the emission loop stays
// free of error plumbing.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (sw *stickyWriter) WriteString(s string) {
	if sw.err == nil {
		_, sw.err = io.WriteString(sw.w, s)
	}
}

// frame mirrors the lexer's container stack on the emitter side. Only the
// qualifying name and the brace depth matter here.
type frame struct {
	name   string
	braces int
}

type splitter struct {
	src    []byte
	blocks []lexer.CodeBlock
	intf   *stickyWriter
	impl   *stickyWriter

	// buf holds runs of ambiguous blocks (whitespace, identifiers mid
	// declaration) until the next structural event decides their destination.
	buf   strings.Builder
	stack []frame
}

// Split walks the block sequence and dispatches every byte of src to the
// interface stream, the implementation stream, or both. stem names the input
// file without directory or extension; it determines the include guard and
// the #include line of the implementation.
func Split(src []byte, blocks []lexer.CodeBlock, stem string, intf, impl io.Writer) error {
	s := &splitter{
		src:    src,
		blocks: blocks,
		intf:   &stickyWriter{w: intf},
		impl:   &stickyWriter{w: impl},
		stack:  []frame{{}},
	}
	guard := Guard(src, blocks, stem)

	i := 0
	if len(blocks) > 0 && blocks[0].Type == lexer.BlockType_Comment {
		text := blocks[0].Text(src)
		s.toBoth(text)
		if !strings.HasSuffix(text, "\n") {
			s.toBoth("\n")
		}
		i = 1
	}
	s.intf.WriteString("#ifndef " + guard + "\n#define " + guard + "\n\n")
	s.impl.WriteString("#include \"" + stem + ".h\"\n\n")

	for i < len(blocks) {
		b := blocks[i]
		switch b.Type {
		case lexer.BlockType_Directive, lexer.BlockType_AccessModifier, lexer.BlockType_StatementTerminator:
			s.flushToInterface()
			s.intf.WriteString(b.Text(src))
			i++
		case lexer.BlockType_NamespaceKeyword, lexer.BlockType_ClassKeyword,
			lexer.BlockType_StructKeyword, lexer.BlockType_EnumKeyword:
			i = s.containerHeader(i)
		case lexer.BlockType_FunctionName, lexer.BlockType_ConstructorDestructor:
			i = s.functionSignature(i)
		case lexer.BlockType_BeginGroup:
			s.flushToInterface()
			s.intf.WriteString(b.Text(src))
			s.top().braces++
			i++
		case lexer.BlockType_EndGroup:
			s.flushToInterface()
			s.intf.WriteString(b.Text(src))
			if len(s.stack) > 1 {
				s.top().braces--
				if s.top().braces <= 0 {
					s.stack = s.stack[:len(s.stack)-1]
				}
			}
			i++
		default:
			s.buf.WriteString(b.Text(src))
			i++
		}
	}

	s.flushToInterface()
	s.intf.WriteString("\n\n#endif // " + guard + "\n")

	if s.intf.err != nil {
		return s.intf.err
	}
	return s.impl.err
}

func (s *splitter) top() *frame { return &s.stack[len(s.stack)-1] }

func (s *splitter) flushToInterface() {
	s.intf.WriteString(s.buf.String())
	s.buf.Reset()
}

func (s *splitter) flushToBoth() {
	s.toBoth(s.buf.String())
	s.buf.Reset()
}

func (s *splitter) toBoth(text string) {
	s.intf.WriteString(text)
	s.impl.WriteString(text)
}

// containerHeader buffers a namespace/class/struct/enum header starting at
// block i. An opening brace pushes the matching frame and commits the header
// to the interface; a statement terminator means a forward declaration.
// Returns the index of the first unconsumed block.
func (s *splitter) containerHeader(i int) int {
	name := ""
	for j := i; j < len(s.blocks); j++ {
		b := s.blocks[j]
		s.buf.WriteString(b.Text(s.src))
		switch b.Type {
		case lexer.BlockType_Identifier:
			if name == "" {
				name = b.Text(s.src)
			}
		case lexer.BlockType_BeginGroup:
			s.flushToInterface()
			s.stack = append(s.stack, frame{name: name, braces: 1})
			return j + 1
		case lexer.BlockType_StatementTerminator:
			s.flushToInterface()
			return j + 1
		}
	}
	s.flushToInterface()
	return len(s.blocks)
}

// functionSignature accumulates a signature starting at the promoted name
// block i. An opening brace or initialiser list makes it a definition to be
// relocated; a statement terminator leaves it as a declaration in the
// interface. Returns the index of the first unconsumed block.
func (s *splitter) functionSignature(i int) int {
	var sig strings.Builder
	sig.WriteString(s.blocks[i].Text(s.src))
	for j := i + 1; j < len(s.blocks); j++ {
		b := s.blocks[j]
		switch b.Type {
		case lexer.BlockType_BeginGroup, lexer.BlockType_InitializationList:
			return s.relocateDefinition(sig.String(), j)
		case lexer.BlockType_StatementTerminator:
			s.flushToInterface()
			s.intf.WriteString(strings.TrimRight(sig.String(), " \t\r\n"))
			s.intf.WriteString(b.Text(s.src))
			return j + 1
		default:
			sig.WriteString(b.Text(s.src))
		}
	}
	s.flushToInterface()
	s.intf.WriteString(sig.String())
	return len(s.blocks)
}

// relocateDefinition commits a function definition whose signature ended at
// trigger block j: the declaration goes to the interface, the qualified
// definition with its whole body to the implementation.
func (s *splitter) relocateDefinition(sig string, j int) int {
	trigger := s.blocks[j]

	s.flushToBoth()
	s.impl.WriteString(s.scopePrefix())
	s.impl.WriteString(sig)
	s.intf.WriteString(strings.TrimRight(sig, " \t\r\n"))
	s.intf.WriteString(";")
	s.impl.WriteString(trigger.Text(s.src))

	braces := 0
	opened := false
	if trigger.Type == lexer.BlockType_BeginGroup {
		braces = 1
		opened = true
	}
	for j++; j < len(s.blocks); j++ {
		b := s.blocks[j]
		s.impl.WriteString(b.Text(s.src))
		switch b.Type {
		case lexer.BlockType_BeginGroup:
			braces++
			opened = true
		case lexer.BlockType_EndGroup:
			braces--
		}
		if opened && braces <= 0 {
			return j + 1
		}
	}
	return j
}

// scopePrefix renders the qualification for a relocated definition from
// every named frame on the stack, e.g. "a::b::K::".
func (s *splitter) scopePrefix() string {
	var parts []string
	for _, f := range s.stack {
		if f.name != "" {
			parts = append(parts, f.name)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "::") + "::"
}
