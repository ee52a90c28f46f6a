package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zenc/internal/ast"
	"zenc/internal/token"
)

func dumpType(t *testing.T, input string) string {
	t.Helper()
	var ty ast.TypeID
	b, _ := withParser(t, input, func(p *Parser) bool {
		var ok bool
		ty, ok = p.parseType()
		return ok && p.at(token.EOF)
	})
	return ast.DumpType(b, ty)
}

func TestTypes(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"i32", "i32"},
		{"Point", "Point"},
		{"Vec<i32>", "(generic Vec i32)"},
		{"Map<string, Vec<u8>>", "(generic Map string (generic Vec u8))"},
		{"std::io::File", "std::io::File"},
		{"*u8", "(ptr u8)"},
		{"*const char", "(ptr const char)"},
		{"*mut Node", "(ptr mut Node)"},
		{"**i32", "(ptr (ptr i32))"},
		{"?Node", "(opt Node)"},
		{"&mut T", "(ref mut T)"},
		{"&&T", "(ref (ref T))"},
		{"u8[16]", "(array u8 16)"},
		{"i32[]", "(array i32)"},
		{"f32[4][4]", "(array (array f32 4) 4)"},
		{"?*i32[4]", "(opt (ptr (array i32 4)))"},
		{"()", "(tuple-type)"},
		{"(i32)", "i32"},
		{"(i32, bool)", "(tuple-type i32 bool)"},
		{"fn(i32, i32) -> bool", "(fn-type (params i32 i32) (-> bool))"},
		{"fn()", "(fn-type (params))"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			assert.Equal(t, tc.want, dumpType(t, tc.src))
		})
	}
}

func TestPrimitiveWithPathIsNamed(t *testing.T) {
	var ty ast.TypeID
	b, _ := withParser(t, "Vec<Vec<i32>>", func(p *Parser) bool {
		var ok bool
		ty, ok = p.parseType()
		return ok
	})
	outer, ok := b.Types.Named(ty)
	assert.True(t, ok)
	assert.Equal(t, "Vec", b.Str(outer.Name))
	assert.Len(t, outer.Args, 1)
	assert.Equal(t, ast.TypeNamed, b.Types.Get(outer.Args[0]).Kind)
}
