package detective

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		code string
		want Language
	}{
		{"python def", "def foo():\n  pass", LanguagePython},
		{"python def indented", "   def bar(a, b) :\n    return a", LanguagePython},
		{"python import", "import os\nx = os.getcwd()", LanguagePython},
		{"python from", "from collections import deque", LanguagePython},
		{"python print", "print('hi')", LanguagePython},
		{"python def unicode name", "def función():\n    return 1", LanguagePython},
		{"python from unicode module", "from ñandú import x", LanguagePython},
		{"python def after vertical tab", "x = 1\n\vdef f():", LanguagePython},
		{"python def wins over js keyword", "def f():\n    const = 1", LanguagePython},
		{"js const arrow", "const x = () => 1;", LanguageJavaScript},
		{"js function", "function add(a, b) { return a + b }", LanguageJavaScript},
		{"js console.log", "console.log(x)", LanguageJavaScript},
		{"js let", "let y = 2", LanguageJavaScript},
		{"cpp include", "#include <iostream>\nint main(){}", LanguageCPP},
		{"cpp std", "int main() { std::cout << 1; }", LanguageCPP},
		{"csharp", "using System;\nnamespace Foo {}", LanguageCSharp},
		{"csharp namespace only", "namespace Foo { class A {} }", LanguageCSharp},
		{"unknown assignment", "x = x + 1", LanguageUnknown},
		{"empty", "", LanguageUnknown},
		{"whitespace only", " \n\t ", LanguageUnknown},
		{"keyword inside word", "letter = constant", LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.code))
		})
	}
}

func TestDetectLanguage_IsDeterministic(t *testing.T) {
	inputs := []string{"", "def a():", "const b = 1", "#include <x>", "???", "\x00\xff"}
	valid := map[Language]bool{
		LanguagePython: true, LanguageJavaScript: true, LanguageCPP: true,
		LanguageCSharp: true, LanguageUnknown: true,
	}
	for _, in := range inputs {
		first := DetectLanguage(in)
		assert.True(t, valid[first], "unexpected tag %q for %q", first, in)
		assert.Equal(t, first, DetectLanguage(in))
	}
}

func TestResolveLanguage(t *testing.T) {
	assert.Equal(t, "python", ResolveLanguage("const x = 1", "  Python "))
	assert.Equal(t, "rust", ResolveLanguage("def f(): pass", "RUST"))
	assert.Equal(t, "javascript", ResolveLanguage("const x = 1", "   "))
	assert.Equal(t, "unknown", ResolveLanguage("", ""))
}
