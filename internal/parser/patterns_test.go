package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenc/internal/ast"
	"zenc/internal/lexer"
	"zenc/internal/token"
)

func dumpPattern(t *testing.T, input string) string {
	t.Helper()
	var pat ast.PatternID
	b, _ := withParser(t, input, func(p *Parser) bool {
		var ok bool
		pat, ok = p.parsePattern()
		return ok && p.at(token.EOF)
	})
	return ast.DumpPattern(b, pat)
}

func TestPatterns(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"_", "_"},
		{"x", "x"},
		{"mut x", "(mut x)"},
		{"None", "(pat-enum None)"},
		{"Opt::None", "(pat-enum Opt::None)"},
		{"Some(x)", "(pat-enum Some (args x))"},
		{"Pair(_, ..)", "(pat-enum Pair (args _ ..))"},
		{"Shape::Rect(w, h)", "(pat-enum Shape::Rect (args w h))"},
		{"Point { x, y: 0, .. }", "(pat-struct Point x (y 0) ..)"},
		{"(a, b)", "(pat-tuple a b)"},
		{"(a)", "a"},
		{"(a,)", "(pat-tuple a)"},
		{"1 | 2 | 3", "(pat-or 1 2 3)"},
		{"-1", "(- 1)"},
		{"1..10", "(pat-range 1 10)"},
		{"'a'..='z'", "(pat-range= 'a' 'z')"},
		{`"yes"`, `"yes"`},
		{"true", "true"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			assert.Equal(t, tc.want, dumpPattern(t, tc.src))
		})
	}
}

func TestPatternBindingVersusVariant(t *testing.T) {
	var pats []ast.PatternID
	b, _ := withParser(t, "value Value", func(p *Parser) bool {
		for !p.at(token.EOF) {
			pat, ok := p.parsePattern()
			if !ok {
				return false
			}
			pats = append(pats, pat)
		}
		return true
	})
	require.Len(t, pats, 2)
	assert.Equal(t, ast.PatIdent, b.Patterns.Get(pats[0]).Kind)
	assert.Equal(t, ast.PatEnum, b.Patterns.Get(pats[1]).Kind)

	data, ok := b.Patterns.Enum(pats[1])
	require.True(t, ok)
	assert.False(t, data.HasArgs)
}

func TestPatternErrors(t *testing.T) {
	file := makeFile("=> x")
	toks, _ := lexer.Tokenize(file, lexer.Options{})
	b := ast.NewBuilder(ast.Hints{}, nil)
	p := newParser(file, toks, b, Options{Recover: true}, &state{})
	_, ok := p.parsePattern()
	assert.False(t, ok)
	require.Len(t, p.st.errs, 1)
	var perr *Error
	require.ErrorAs(t, p.st.errs[0], &perr)
	assert.Contains(t, perr.Expected, token.Underscore)
}
