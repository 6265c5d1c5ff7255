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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppx-tools/cppx/internal/lexer"
)

func runSplit(t *testing.T, input, stem string) (header, source string) {
	t.Helper()
	src := []byte(input)
	blocks, err := lexer.NewLexer(src).Tokenize()
	require.NoError(t, err)

	var intf, impl bytes.Buffer
	require.NoError(t, Split(src, blocks, stem, &intf, &impl))
	return intf.String(), impl.String()
}

// assertText renders mismatches as a readable diff instead of two walls of
// text.
func assertText(t *testing.T, expected, got, label string) {
	t.Helper()
	if expected == got {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(expected, got, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	t.Errorf("unexpected %s output (expected red, got green):\n%s", label, dmp.DiffPrettyText(diffs))
}

func TestSplitDeclarationsOnly(t *testing.T) {
	header, source := runSplit(t, "namespace n { class C { public: C(); void f(); }; }", "c")

	assertText(t, "#ifndef N_C_H\n#define N_C_H\n\n"+
		"namespace n { class C { public: C(); void f(); }; }"+
		"\n\n#endif // N_C_H\n", header, "interface")
	// no bodies to relocate
	assertText(t, "#include \"c.h\"\n\n", source, "implementation")
}

func TestSplitRelocatesMethodBody(t *testing.T) {
	header, source := runSplit(t, "class C { public: int f() { return 1; } };", "c")

	assertText(t, "#ifndef C_H\n#define C_H\n\n"+
		"class C { public: int f(); };"+
		"\n\n#endif // C_H\n", header, "interface")
	assertText(t, "#include \"c.h\"\n\n int C::f() { return 1; }", source, "implementation")
}

func TestSplitConstructorWithInitialiserList(t *testing.T) {
	header, source := runSplit(t,
		"namespace a { namespace b { class K { K() : x(0) {} int x; }; } }", "k")

	assertText(t, "#ifndef A_B_K_H\n#define A_B_K_H\n\n"+
		"namespace a { namespace b { class K { K(); int x; }; } }"+
		"\n\n#endif // A_B_K_H\n", header, "interface")
	assertText(t, "#include \"k.h\"\n\n a::b::K::K() : x(0) {}", source, "implementation")
}

func TestSplitDestructor(t *testing.T) {
	header, source := runSplit(t, "class K { public: ~K() { } };", "k")

	assertText(t, "#ifndef K_H\n#define K_H\n\n"+
		"class K { public: ~K(); };"+
		"\n\n#endif // K_H\n", header, "interface")
	assertText(t, "#include \"k.h\"\n\n K::~K() { }", source, "implementation")
}

func TestSplitRawStringPreserved(t *testing.T) {
	const raw = `R"DLM(hello)DLM"`
	header, source := runSplit(t,
		"namespace n { const char* f() { return "+raw+"; } }", "r")

	assert.Contains(t, source, raw)
	assert.Contains(t, source, "n::f()")
	assert.Contains(t, header, "const char* f();")
	assert.NotContains(t, header, "hello")
}

func TestSplitMultilineInitialiserList(t *testing.T) {
	input := strings.Join([]string{
		"class W {",
		"public:",
		"\tW() :",
		"\t\ta(1),",
		"\t\tb{2, 3} {",
		"\t\tuse(a);",
		"\t}",
		"private:",
		"\tint a;",
		"};",
	}, "\n")
	header, source := runSplit(t, input, "w")

	// the whole initialiser list and body live in the implementation
	assert.Contains(t, source, "W::W() :\n\t\ta(1),\n\t\tb{2, 3} {")
	assert.Contains(t, source, "use(a);")
	// the interface keeps only the signature
	assert.Contains(t, header, "W();")
	assert.NotContains(t, header, "a(1)")
	assert.NotContains(t, header, "use")
	assert.Contains(t, header, "private:")
	assert.Contains(t, header, "int a;")
}

func TestSplitLeadingComment(t *testing.T) {
	header, source := runSplit(t, "/* hello */\n", "only")

	assertText(t, "/* hello */\n"+
		"#ifndef ONLY_H\n#define ONLY_H\n\n"+
		"\n\n#endif // ONLY_H\n", header, "interface")
	assertText(t, "/* hello */\n#include \"only.h\"\n\n", source, "implementation")
}

func TestSplitFreeFunction(t *testing.T) {
	header, source := runSplit(t, "int main() { return 0; }", "main")

	assertText(t, "#ifndef MAIN_H\n#define MAIN_H\n\n"+
		"int main();"+
		"\n\n#endif // MAIN_H\n", header, "interface")
	// no enclosing container, so no scope prefix
	assertText(t, "#include \"main.h\"\n\nint main() { return 0; }", source, "implementation")
}

func TestSplitDirectivesGoToInterface(t *testing.T) {
	header, source := runSplit(t, "#include <vector>\nclass C { };", "c")

	assert.Contains(t, header, "#include <vector>")
	assert.NotContains(t, source, "<vector>")
}

// Concatenating both outputs must preserve all input content. The additions
// are the guard directives, the #include, one ';' per relocated definition,
// the qualifying scope prefixes, and a second copy of the pending text before
// each relocated definition (here the return type), which goes to both.
func TestSplitPreservesContent(t *testing.T) {
	input := "namespace n { class C { int f() { return g(1); } int x; }; }"
	header, source := runSplit(t, input, "c")

	stripSpace := func(s string) string {
		return strings.Map(func(r rune) rune {
			if r == ' ' || r == '\t' || r == '\n' {
				return -1
			}
			return r
		}, s)
	}
	combined := stripSpace(header) + stripSpace(source)
	for _, fragment := range []string{
		"namespacen{", "classC{", "intf();", "intx;",
		"intn::C::f(){returng(1);}",
		"#ifndefN_C_H", "#defineN_C_H", "#endif//N_C_H", `#include"c.h"`,
	} {
		assert.Contains(t, combined, fragment)
	}
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "point.cppx")
	content := []byte("namespace geo { class Point { public: int x() { return 0; } }; }")
	require.NoError(t, os.WriteFile(path, content, 0644))

	result, err := ProcessFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "point.h"), result.HeaderPath)
	assert.Equal(t, filepath.Join(dir, "point.cpp"), result.SourcePath)

	header, err := os.ReadFile(result.HeaderPath)
	require.NoError(t, err)
	source, err := os.ReadFile(result.SourcePath)
	require.NoError(t, err)
	assert.Equal(t, len(header), result.HeaderBytes)
	assert.Equal(t, len(source), result.SourceBytes)
	assert.Contains(t, string(header), "GEO_POINT_H")
	assert.Contains(t, string(source), "geo::Point::x()")

	// repeated runs on identical input are byte-identical
	_, err = ProcessFile(path)
	require.NoError(t, err)
	headerAgain, err := os.ReadFile(result.HeaderPath)
	require.NoError(t, err)
	assert.Equal(t, header, headerAgain)
}

func TestProcessFileEmptyInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.cppx")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := ProcessFile(path)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.NoFileExists(t, filepath.Join(dir, "empty.h"))
	assert.NoFileExists(t, filepath.Join(dir, "empty.cpp"))
}

func TestProcessFileLexerError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.cppx")
	require.NoError(t, os.WriteFile(path, []byte("int x; /* never closed"), 0644))

	_, err := ProcessFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, lexer.ErrUnterminatedComment)

	var lexErr *lexer.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Line)

	// no partial outputs on failure
	assert.NoFileExists(t, filepath.Join(dir, "broken.h"))
	assert.NoFileExists(t, filepath.Join(dir, "broken.cpp"))
}
