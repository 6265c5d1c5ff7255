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

// Package lexer provides a single-pass lexical analyzer for unified C++
// source files. It breaks the input buffer into an ordered sequence of
// classified code blocks covering every byte exactly once, which the splitter
// then dispatches between the interface and implementation outputs.
//
// The lexer recognises just enough structure to make that split decidable:
// comments, literals with escapes, preprocessor directives, container
// introducers (namespace/class/struct/enum), function and constructor names,
// initialiser lists and access modifiers. It is not a compiler front-end and
// assumes syntactically well-formed input.
package lexer

import "bytes"

type Lexer struct {
	src        []byte
	cur        cursor
	blocks     []CodeBlock
	containers []Container

	// nextContainer is armed by an introducer keyword or a promoted function
	// name and applied when the opening brace arrives.
	nextContainer ContainerType
	// nameCandidate is the first identifier seen since the pending container
	// was armed; it becomes the pushed container's name.
	nameCandidate string
}

func NewLexer(src []byte) *Lexer {
	return &Lexer{
		src:        src,
		cur:        newCursor(),
		containers: []Container{{Type: ContainerType_None}},
	}
}

// Tokenize consumes the whole buffer and returns the block sequence. Blocks
// are totally ordered by Begin, non-overlapping, and cover the buffer
// contiguously; unclassified bytes surface as Other blocks.
func (lx *Lexer) Tokenize() ([]CodeBlock, error) {
	for lx.cur.pos < len(lx.src) {
		if err := lx.next(); err != nil {
			return nil, err
		}
	}
	if covered := lx.covered(); covered < len(lx.src) {
		lx.appendRaw(CodeBlock{Type: BlockType_Other, Begin: covered, End: len(lx.src) - 1}, lx.topIsInitList())
	}
	return lx.blocks, nil
}

func (lx *Lexer) next() error {
	switch c := lx.src[lx.cur.pos]; {
	case c == '\'':
		return lx.lexCharLiteral()
	case c == '"':
		return lx.lexStringLiteral()
	case c == '#':
		lx.lexDirective()
	case c == ';':
		lx.lexStatementTerminator()
	case c == '{':
		lx.lexBeginGroup()
	case c == '}':
		return lx.lexEndGroup()
	case c == '/':
		return lx.lexComment()
	case c == '(':
		lx.lexOpenParen()
	case c == ')':
		return lx.lexCloseParen()
	case c == ',':
		lx.lexComma()
	case c == ':':
		lx.lexColon()
	case isWordStart(c):
		lx.lexWord()
	case isSpace(c):
		lx.lexWhitespace()
	default:
		// unclassified byte, becomes part of an Other gap
		lx.advance(1)
	}
	return nil
}

func isWordStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isWordByte(c byte) bool {
	return isWordStart(c) || ('0' <= c && c <= '9')
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\v', '\f', '\r', '\n':
		return true
	}
	return false
}

func (lx *Lexer) advance(n int) { lx.cur = lx.cur.advancedBy(lx.src, n) }

func (lx *Lexer) top() *Container { return &lx.containers[len(lx.containers)-1] }

func (lx *Lexer) pop() { lx.containers = lx.containers[:len(lx.containers)-1] }

func (lx *Lexer) topIsInitList() bool {
	return lx.top().Type == ContainerType_InitializationList
}

// covered returns the first byte offset not yet assigned to a block.
func (lx *Lexer) covered() int {
	if len(lx.blocks) == 0 {
		return 0
	}
	return lx.blocks[len(lx.blocks)-1].End + 1
}

// lastSignificantIndex returns the index of the most recent block that is
// neither whitespace nor a comment, or -1.
func (lx *Lexer) lastSignificantIndex() int {
	for i := len(lx.blocks) - 1; i >= 0; i-- {
		switch lx.blocks[i].Type {
		case BlockType_Empty, BlockType_Comment:
			continue
		default:
			return i
		}
	}
	return -1
}

// append adds b to the block sequence, first materialising any unclassified
// gap since the previous block as an Other block, then applying the
// coalescing rules.
func (lx *Lexer) append(b CodeBlock) {
	if covered := lx.covered(); covered < b.Begin {
		lx.appendRaw(CodeBlock{Type: BlockType_Other, Begin: covered, End: b.Begin - 1}, lx.topIsInitList())
	}
	lx.appendRaw(b, lx.topIsInitList())
}

// appendRaw applies the coalescing rules and appends. When continuePrevious
// is set the new bytes extend the previous block whatever its type; this is
// how contiguous initialisation-list material stays in one block.
func (lx *Lexer) appendRaw(b CodeBlock, continuePrevious bool) {
	if n := len(lx.blocks); n > 0 {
		tail := &lx.blocks[n-1]
		switch {
		case continuePrevious:
			tail.End = b.End
			return
		case tail.Type == b.Type && !isGroupBlock(b.Type):
			tail.End = b.End
			return
		case b.Type == BlockType_BeginGroup && tail.Type == BlockType_Empty:
			// the '{' absorbs preceding whitespace
			tail.Type = BlockType_BeginGroup
			tail.End = b.End
			return
		case b.Type == BlockType_Identifier && tail.Type == BlockType_IdentifierScope:
			if n >= 2 && lx.blocks[n-2].Type == BlockType_Identifier && lx.blocks[n-2].End+1 == tail.Begin {
				lx.blocks[n-2].End = b.End
				lx.blocks = lx.blocks[:n-1]
				return
			}
			tail.Type = BlockType_Identifier
			tail.End = b.End
			return
		}
	}
	lx.blocks = append(lx.blocks, b)
}

// Group delimiters and terminators never coalesce with each other; the
// emitter counts depth per block.
func isGroupBlock(t BlockType) bool {
	switch t {
	case BlockType_BeginGroup, BlockType_EndGroup, BlockType_StatementTerminator:
		return true
	}
	return false
}

func (lx *Lexer) lexWhitespace() {
	start := lx.cur.pos
	i := start
	for i < len(lx.src) && isSpace(lx.src[i]) {
		i++
	}
	lx.append(CodeBlock{Type: BlockType_Empty, Begin: start, End: i - 1})
	lx.advance(i - start)
}

func (lx *Lexer) lexWord() {
	start := lx.cur.pos
	i := start
	for i < len(lx.src) && isWordByte(lx.src[i]) {
		i++
	}
	block := CodeBlock{Type: BlockType_Identifier, Begin: start, End: i - 1}

	switch string(lx.src[start:i]) {
	case "namespace":
		block.Type = BlockType_NamespaceKeyword
		lx.armContainer(ContainerType_Namespace)
	case "class":
		block.Type = BlockType_ClassKeyword
		lx.armContainer(ContainerType_Class)
	case "struct":
		block.Type = BlockType_StructKeyword
		lx.armContainer(ContainerType_Struct)
	case "enum":
		block.Type = BlockType_EnumKeyword
		lx.armContainer(ContainerType_Enum)
	default:
		if lx.nameCandidate == "" {
			lx.nameCandidate = string(lx.src[start:i])
		}
	}
	lx.append(block)
	lx.advance(i - start)
}

func (lx *Lexer) armContainer(t ContainerType) {
	lx.nextContainer = t
	lx.nameCandidate = ""
}

func (lx *Lexer) lexDirective() {
	start := lx.cur.pos
	end := len(lx.src)
	if nl := bytes.IndexByte(lx.src[start:], '\n'); nl >= 0 {
		end = start + nl
	}
	// a comment opened on the directive line is lexed separately
	if ci := bytes.Index(lx.src[start:end], []byte("/*")); ci > 0 {
		end = start + ci
	}
	lx.append(CodeBlock{Type: BlockType_Directive, Begin: start, End: end - 1})
	lx.advance(end - start)
}

func (lx *Lexer) lexComment() error {
	start, line := lx.cur.pos, lx.cur.line
	if start+1 >= len(lx.src) {
		lx.advance(1)
		return nil
	}

	switch lx.src[start+1] {
	case '*':
		end := bytes.Index(lx.src[start+2:], []byte("*/"))
		if end < 0 {
			return lx.errorAt(ErrUnterminatedComment, line, start)
		}
		i := start + 2 + end + 2
		// the block absorbs trailing whitespace and newlines
		for i < len(lx.src) && isSpace(lx.src[i]) {
			i++
		}
		lx.append(CodeBlock{Type: BlockType_Comment, Begin: start, End: i - 1})
		lx.advance(i - start)
	case '/':
		i := start
		for {
			nl := bytes.IndexByte(lx.src[i:], '\n')
			if nl < 0 {
				i = len(lx.src)
				break
			}
			// adjacent '//' lines coalesce, with the separating whitespace
			k := i + nl
			for k < len(lx.src) && isSpace(lx.src[k]) {
				k++
			}
			if k+1 < len(lx.src) && lx.src[k] == '/' && lx.src[k+1] == '/' {
				i = k
				continue
			}
			i += nl
			break
		}
		lx.append(CodeBlock{Type: BlockType_Comment, Begin: start, End: i - 1})
		lx.advance(i - start)
	default:
		// plain '/' operator, becomes part of an Other gap
		lx.advance(1)
	}
	return nil
}

// escapeLength returns the byte length of the escape sequence at the start of
// data (data[0] is the backslash).
func escapeLength(data []byte) (int, error) {
	if len(data) < 2 {
		return 0, ErrInvalidEscapeSequence
	}
	c := data[1]
	switch {
	case bytes.IndexByte([]byte(`'"?\abfnrtv`), c) >= 0:
		return 2, nil
	case '0' <= c && c <= '7':
		n := 2
		for n < 4 && n < len(data) && '0' <= data[n] && data[n] <= '7' {
			n++
		}
		return n, nil
	case c == 'x':
		n := 2
		for n < len(data) && isHexDigit(data[n]) {
			n++
		}
		if n == 2 {
			return 0, ErrInvalidEscapeSequence
		}
		return n, nil
	case c == 'u', c == 'U':
		digits := 4
		if c == 'U' {
			digits = 8
		}
		if len(data) < 2+digits {
			return 0, ErrInvalidEscapeSequence
		}
		for i := 2; i < 2+digits; i++ {
			if !isHexDigit(data[i]) {
				return 0, ErrInvalidEscapeSequence
			}
		}
		return 2 + digits, nil
	}
	return 0, ErrInvalidEscapeSequence
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func (lx *Lexer) lexCharLiteral() error {
	start, line := lx.cur.pos, lx.cur.line
	i := start + 1
	if i >= len(lx.src) {
		return lx.errorAt(ErrUnterminatedCharLiteral, line, start)
	}
	switch lx.src[i] {
	case '\'':
		return lx.errorAt(ErrEmptyCharLiteral, line, start)
	case '\\':
		n, err := escapeLength(lx.src[i:])
		if err != nil {
			return lx.errorAt(err, line, i)
		}
		i += n
	default:
		i++
	}
	if i >= len(lx.src) || lx.src[i] != '\'' {
		return lx.errorAt(ErrUnterminatedCharLiteral, line, start)
	}
	lx.append(CodeBlock{Type: BlockType_CharLiteral, Begin: start, End: i})
	lx.advance(i + 1 - start)
	return nil
}

func (lx *Lexer) lexStringLiteral() error {
	start, line := lx.cur.pos, lx.cur.line
	if start > 0 && lx.src[start-1] == 'R' {
		return lx.lexRawString()
	}
	i := start + 1
	for i < len(lx.src) {
		switch lx.src[i] {
		case '"':
			lx.append(CodeBlock{Type: BlockType_StringLiteral, Begin: start, End: i})
			lx.advance(i + 1 - start)
			return nil
		case '\n':
			return lx.errorAt(ErrUnterminatedString, line, start)
		case '\\':
			n, err := escapeLength(lx.src[i:])
			if err != nil {
				return lx.errorAt(err, line, i)
			}
			i += n
		default:
			i++
		}
	}
	return lx.errorAt(ErrUnterminatedString, line, start)
}

// lexRawString scans R"delim( ... )delim". The opening quote is at the
// cursor; the preceding R stays in the identifier block already emitted.
func (lx *Lexer) lexRawString() error {
	start, line := lx.cur.pos, lx.cur.line
	i := start + 1
	for ; ; i++ {
		if i >= len(lx.src) || i-start-1 > 16 {
			return lx.errorAt(ErrInvalidRawString, line, start)
		}
		c := lx.src[i]
		if c == '(' {
			break
		}
		if c == ')' || c == '\\' || c == '"' || isSpace(c) {
			return lx.errorAt(ErrInvalidRawString, line, start)
		}
	}

	delim := lx.src[start+1 : i]
	closing := make([]byte, 0, len(delim)+2)
	closing = append(closing, ')')
	closing = append(closing, delim...)
	closing = append(closing, '"')

	end := bytes.Index(lx.src[i+1:], closing)
	if end < 0 {
		return lx.errorAt(ErrUnterminatedString, line, start)
	}
	last := i + 1 + end + len(closing) - 1
	lx.append(CodeBlock{Type: BlockType_StringLiteral, Begin: start, End: last})
	lx.advance(last + 1 - start)
	return nil
}

func (lx *Lexer) lexStatementTerminator() {
	pos := lx.cur.pos
	lx.append(CodeBlock{Type: BlockType_StatementTerminator, Begin: pos, End: pos})
	// a terminated declaration never opens the pending container
	lx.nextContainer = ContainerType_None
	lx.nameCandidate = ""
	lx.advance(1)
}

func (lx *Lexer) lexBeginGroup() {
	pos := lx.cur.pos
	if lx.nextContainer != ContainerType_None && !lx.topIsInitList() {
		lx.containers = append(lx.containers, Container{
			Type:   lx.nextContainer,
			Name:   lx.nameCandidate,
			Braces: 1,
		})
		lx.nextContainer = ContainerType_None
		lx.nameCandidate = ""
	} else {
		lx.top().Braces++
	}
	lx.append(CodeBlock{Type: BlockType_BeginGroup, Begin: pos, End: pos})
	lx.advance(1)
}

func (lx *Lexer) lexEndGroup() error {
	pos, line := lx.cur.pos, lx.cur.line
	top := lx.top()
	if top.Braces == 0 {
		return lx.errorAt(ErrUnbalancedBrace, line, pos)
	}
	top.Braces--
	block := CodeBlock{Type: BlockType_EndGroup, Begin: pos, End: pos}
	if top.Type == ContainerType_InitializationList && top.Braces == 0 && top.Parens == 0 {
		lx.pop()
		lx.appendRaw(block, true)
	} else {
		done := top.Braces == 0 && top.Type != ContainerType_InitializationList && len(lx.containers) > 1
		lx.append(block)
		if done {
			lx.pop()
		}
	}
	lx.advance(1)
	return nil
}

func (lx *Lexer) lexOpenParen() {
	pos := lx.cur.pos
	switch lx.top().Type {
	case ContainerType_Function, ContainerType_ConstructorDestructor, ContainerType_InitializationList:
		// parentheses inside a body or initialiser fragment are plain runs
	default:
		lx.promoteFunctionName()
	}
	lx.top().Parens++
	lx.append(CodeBlock{Type: BlockType_ArgumentsOrParameters, Begin: pos, End: pos})
	lx.advance(1)
}

// promoteFunctionName re-tags the identifier preceding a '(' as a function
// name, or as a constructor/destructor when it matches the enclosing
// container's name, and arms the pending container for the body to come. The
// '~' of a destructor sits in the Other block just before the identifier and
// is absorbed into the promoted block.
func (lx *Lexer) promoteFunctionName() {
	idx := lx.lastSignificantIndex()
	if idx < 0 || lx.blocks[idx].Type != BlockType_Identifier {
		return
	}
	name := lx.blocks[idx].Text(lx.src)
	top := lx.top()

	if top.Name != "" && name == top.Name {
		if idx > 0 {
			prev := &lx.blocks[idx-1]
			if prev.Type == BlockType_Other && prev.End+1 == lx.blocks[idx].Begin && lx.src[prev.End] == '~' {
				lx.blocks[idx].Begin = prev.Begin + prev.Len() - 1
				if prev.Len() == 1 {
					lx.blocks = append(lx.blocks[:idx-1], lx.blocks[idx:]...)
					idx--
				} else {
					prev.End--
				}
			}
		}
		lx.blocks[idx].Type = BlockType_ConstructorDestructor
		lx.nextContainer = ContainerType_ConstructorDestructor
	} else {
		lx.blocks[idx].Type = BlockType_FunctionName
		lx.nextContainer = ContainerType_Function
	}
	lx.nameCandidate = name
}

func (lx *Lexer) lexCloseParen() error {
	pos, line := lx.cur.pos, lx.cur.line
	top := lx.top()
	if top.Parens == 0 {
		return lx.errorAt(ErrUnbalancedParen, line, pos)
	}
	top.Parens--
	block := CodeBlock{Type: BlockType_ArgumentsOrParameters, Begin: pos, End: pos}
	if top.Type == ContainerType_InitializationList && top.Braces == 0 && top.Parens == 0 {
		lx.pop()
		lx.appendRaw(block, true)
	} else {
		lx.append(block)
	}
	lx.advance(1)
	return nil
}

func (lx *Lexer) lexComma() {
	pos := lx.cur.pos
	if !lx.topIsInitList() {
		if idx := lx.lastSignificantIndex(); idx >= 0 && lx.blocks[idx].Type == BlockType_InitializationList {
			// another member fragment of the same initialiser list
			lx.append(CodeBlock{Type: BlockType_InitializationList, Begin: pos, End: pos})
			lx.containers = append(lx.containers, Container{Type: ContainerType_InitializationList})
			lx.advance(1)
			return
		}
	}
	// plain comma, becomes part of an Other gap
	lx.advance(1)
}

func (lx *Lexer) lexColon() {
	pos := lx.cur.pos
	if pos+1 < len(lx.src) && lx.src[pos+1] == ':' {
		lx.append(CodeBlock{Type: BlockType_IdentifierScope, Begin: pos, End: pos + 1})
		lx.advance(2)
		return
	}
	if lx.nextContainer == ContainerType_ConstructorDestructor {
		lx.append(CodeBlock{Type: BlockType_InitializationList, Begin: pos, End: pos})
		lx.containers = append(lx.containers, Container{Type: ContainerType_InitializationList})
		lx.advance(1)
		return
	}
	if idx := lx.lastSignificantIndex(); idx >= 0 && lx.blocks[idx].Type == BlockType_Identifier {
		switch lx.blocks[idx].Text(lx.src) {
		case "public", "protected", "private":
			// the label absorbs its identifier and anything between
			begin := lx.blocks[idx].Begin
			lx.blocks = lx.blocks[:idx]
			lx.blocks = append(lx.blocks, CodeBlock{Type: BlockType_AccessModifier, Begin: begin, End: pos})
			lx.advance(1)
			return
		}
	}
	// label or ternary colon, becomes part of an Other gap
	lx.advance(1)
}
