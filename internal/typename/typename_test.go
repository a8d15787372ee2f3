package typename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_CapitalizedTokens(t *testing.T) {
	src := `import Foundation
class MyClass {}
struct MyStruct {}
enum MyEnum {}
`
	assert.Equal(t, []string{"MyClass", "MyEnum", "MyStruct"}, Extract(src))
}

func TestExtract_BracketAndGenericNotation(t *testing.T) {
	src := `let array: [CustomType] = []
let dict: [String: Payload] = [:]
let boxed: Box<Inner> = Box()
`
	assert.Equal(t, []string{"Box", "CustomType", "Inner", "Payload", "String"}, Extract(src))
}

func TestExtract_SkipsImportsAndComments(t *testing.T) {
	src := `import UIKit
// A Widget is referenced here but the line is a comment.
let x = makeThing()
`
	assert.Empty(t, Extract(src))
}

func TestExtract_NoCapitalizedWords(t *testing.T) {
	assert.Empty(t, Extract("import foundation\nlet x = 5\n"))
}

func TestExtract_DeduplicatedAndStable(t *testing.T) {
	src := "let a: Widget = Widget()\nlet b: Widget = a\n"
	first := Extract(src)
	second := Extract(src)
	assert.Equal(t, []string{"Widget"}, first)
	assert.Equal(t, first, second, "output is order-stable across runs")
}

func TestExtract_ExcludesReservedWords(t *testing.T) {
	src := "func copy() -> Self { self as Any }\nlet w: Widget\n"
	assert.Equal(t, []string{"Widget"}, Extract(src))
}

func TestExtract_SingleLetterTokensIgnored(t *testing.T) {
	assert.Empty(t, Extract("let g: T = f(x)\n"))
}

func TestEnclosingType(t *testing.T) {
	src := `import Foundation

struct Outer {
    func run() {
        // TODO: ChatGPT: make this faster
    }
}

struct Later {}
`
	name, ok := EnclosingType(src)
	require.True(t, ok)
	assert.Equal(t, "Outer", name)
}

func TestEnclosingType_NearestPrecedingDeclarationWins(t *testing.T) {
	src := `class First {}
enum Second {
    // TODO: - handle the new case
}
`
	name, ok := EnclosingType(src)
	require.True(t, ok)
	assert.Equal(t, "Second", name)
}

func TestEnclosingType_NoMarkerOrNoDeclaration(t *testing.T) {
	_, ok := EnclosingType("struct Thing {}\n")
	assert.False(t, ok, "no marker")

	_, ok = EnclosingType("// TODO: ChatGPT: do it\nstruct Thing {}\n")
	assert.False(t, ok, "marker precedes every declaration")
}
