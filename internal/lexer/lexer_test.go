package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenc/internal/diag"
	"zenc/internal/lexer"
	"zenc/internal/source"
	"zenc/internal/token"
)

func makeFile(input string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zc", []byte(input))
	return fs.Get(id)
}

func lexAll(t *testing.T, input string) ([]token.Token, []*lexer.Error) {
	t.Helper()
	return lexer.Tokenize(makeFile(input), lexer.Options{})
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tk.Kind)
	}
	return out
}

func texts(toks []token.Token) []string {
	out := make([]string, 0, len(toks))
	for _, tk := range toks {
		if tk.Kind == token.EOF {
			continue
		}
		out = append(out, tk.Text)
	}
	return out
}

func TestKeywordsAndIdents(t *testing.T) {
	toks, errs := lexAll(t, "in input fn fnx _ _a NULL Null self")
	require.Empty(t, errs)
	assert.Equal(t, []token.Kind{
		token.KwIn, token.Ident, token.KwFn, token.Ident, token.Underscore,
		token.Ident, token.KwNull, token.Ident, token.Ident, token.EOF,
	}, kinds(toks))
}

func TestOperatorsLongestMatch(t *testing.T) {
	cases := []struct {
		src  string
		want []token.Kind
	}{
		{"a ??= b", []token.Kind{token.Ident, token.QuestionQuestionAssign, token.Ident, token.EOF}},
		{"a ?? b", []token.Kind{token.Ident, token.QuestionQuestion, token.Ident, token.EOF}},
		{"a?.b", []token.Kind{token.Ident, token.QuestionDot, token.Ident, token.EOF}},
		{"0..=9", []token.Kind{token.IntLit, token.DotDotEq, token.IntLit, token.EOF}},
		{"1..5", []token.Kind{token.IntLit, token.DotDot, token.IntLit, token.EOF}},
		{"x <<= 1 >>= 2", []token.Kind{token.Ident, token.ShlAssign, token.IntLit, token.ShrAssign, token.IntLit, token.EOF}},
		{"a::b -> c => d", []token.Kind{token.Ident, token.ColonColon, token.Ident, token.Arrow, token.Ident, token.FatArrow, token.Ident, token.EOF}},
		{"a != !b", []token.Kind{token.Ident, token.BangEq, token.Bang, token.Ident, token.EOF}},
		{"@inline", []token.Kind{token.At, token.Ident, token.EOF}},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			toks, errs := lexAll(t, tc.src)
			require.Empty(t, errs)
			assert.Equal(t, tc.want, kinds(toks))
		})
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"1_000", token.IntLit},
		{"0xFF_ff", token.IntLit},
		{"0o17", token.IntLit},
		{"0b1010", token.IntLit},
		{"3.14", token.FloatLit},
		{"1e10", token.FloatLit},
		{"2.5E-3", token.FloatLit},
		{"0x_FF", token.IntLit},
		{"0b_1010", token.IntLit},
		{"0o_17", token.IntLit},
		{"1e_3", token.FloatLit},
		{"1E-_3", token.FloatLit},
	}
	for _, tc := range cases {
		toks, errs := lexAll(t, tc.src)
		require.Empty(t, errs, tc.src)
		require.Len(t, toks, 2, tc.src)
		assert.Equal(t, tc.kind, toks[0].Kind, tc.src)
		assert.Equal(t, tc.src, toks[0].Text)
	}
}

func TestBadNumbers(t *testing.T) {
	for _, src := range []string{"0x", "0x_", "0b102", "0o8", "12abc", "1.5f", "1e_"} {
		toks, errs := lexAll(t, src)
		require.Len(t, errs, 1, src)
		assert.Equal(t, diag.LexBadNumber, errs[0].Code, src)
		assert.Equal(t, token.Invalid, toks[0].Kind, src)
	}
}

func TestTupleIndexAfterDot(t *testing.T) {
	toks, errs := lexAll(t, "t.0.1")
	require.Empty(t, errs)
	assert.Equal(t, []token.Kind{token.Ident, token.Dot, token.IntLit, token.Dot, token.IntLit, token.EOF}, kinds(toks))

	toks, errs = lexAll(t, "x = 1.5")
	require.Empty(t, errs)
	assert.Equal(t, token.FloatLit, toks[2].Kind)
}

func TestCommentsAreTrivia(t *testing.T) {
	toks, errs := lexAll(t, "a // line\n/* block **/ b /***/ c")
	require.Empty(t, errs)
	assert.Equal(t, []string{"a", "b", "c"}, texts(toks))

	lead := toks[1].Leading
	require.Len(t, lead, 5)
	assert.Equal(t, token.TriviaLineComment, lead[1].Kind)
	assert.Equal(t, "// line", lead[1].Text)
	assert.Equal(t, token.TriviaBlockComment, lead[3].Kind)
	assert.Equal(t, "/* block **/", lead[3].Text)
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, errs := lexAll(t, "a /* never")
	require.Len(t, errs, 1)
	assert.Equal(t, diag.LexUnterminatedBlockComment, errs[0].Code)
}

func TestBuildDirective(t *testing.T) {
	toks, errs := lexAll(t, "// plain\n//> link: -lm\nfn")
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{token.BuildDirective, token.KwFn, token.EOF}, kinds(toks))
	assert.Equal(t, "//> link: -lm", toks[0].Text)
	assert.Equal(t, token.TriviaLineComment, toks[0].Leading[0].Kind)
}

func TestPreprocessorDirective(t *testing.T) {
	toks, errs := lexAll(t, "  #include <stdio.h>\n#define X \\\n  1\nx")
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{token.PPDirective, token.PPDirective, token.Ident, token.EOF}, kinds(toks))
	assert.Equal(t, "#include <stdio.h>", toks[0].Text)
	assert.Equal(t, "#define X \\\n  1", toks[1].Text)

	_, errs = lexAll(t, "a # b")
	require.Len(t, errs, 1)
	assert.Equal(t, diag.LexUnknownChar, errs[0].Code)
}

func TestStrings(t *testing.T) {
	toks, errs := lexAll(t, `"plain \n \x41 \u{1F600} \101 \0" "x={a+1}" "\{not}"`)
	require.Empty(t, errs)
	assert.Equal(t, []token.Kind{token.StringLit, token.InterpStringLit, token.StringLit, token.EOF}, kinds(toks))

	toks, errs = lexAll(t, "\"multi\nline\"")
	require.Empty(t, errs)
	assert.Equal(t, token.StringLit, toks[0].Kind)
}

func TestStringErrors(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
	}{
		{`"abc`, diag.LexUnterminatedString},
		{`"bad \q"`, diag.LexBadEscape},
		{`"\x4"`, diag.LexBadEscape},
		{`"\u{110000}"`, diag.LexBadEscape},
		{`"x={a"`, diag.LexUnterminatedSplice},
		{`"x={ }"`, diag.LexEmptySplice},
		{`"x={a:}"`, diag.LexEmptySplice},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			toks, errs := lexAll(t, tc.src)
			require.NotEmpty(t, errs)
			assert.Equal(t, tc.code, errs[0].Code)
			assert.Equal(t, token.Invalid, toks[0].Kind)
		})
	}
}

func TestStringSegments(t *testing.T) {
	src := `"a{x + f("}")}b{v:08.3}{m::N}"`
	file := makeFile(src)
	toks, errs := lexer.Tokenize(file, lexer.Options{})
	require.Empty(t, errs)
	require.Equal(t, token.InterpStringLit, toks[0].Kind)

	segs, err := lexer.StringSegments(file, toks[0])
	require.NoError(t, err)
	require.Len(t, segs, 5)

	got := make([]string, 0, len(segs))
	for _, s := range segs {
		got = append(got, file.Text(s.Span))
	}
	assert.Equal(t, []string{"a", `x + f("}")`, "b", "v", "m::N"}, got)
	assert.Equal(t, lexer.SegSplice, segs[3].Kind)
	assert.True(t, segs[3].HasSpec)
	assert.Equal(t, "08.3", file.Text(segs[3].Spec))
	assert.False(t, segs[4].HasSpec)
}

func TestChars(t *testing.T) {
	toks, errs := lexAll(t, `'a' '\n' 'ж' '\x41'`)
	require.Empty(t, errs)
	assert.Equal(t, []token.Kind{token.CharLit, token.CharLit, token.CharLit, token.CharLit, token.EOF}, kinds(toks))

	_, errs = lexAll(t, `''`)
	require.Len(t, errs, 1)
	assert.Equal(t, diag.LexBadChar, errs[0].Code)

	_, errs = lexAll(t, `'ab'`)
	require.Len(t, errs, 1)
	assert.Equal(t, diag.LexBadChar, errs[0].Code)

	_, errs = lexAll(t, "'a\n")
	require.Len(t, errs, 1)
	assert.Equal(t, diag.LexUnterminatedChar, errs[0].Code)
}

func TestMacroBody(t *testing.T) {
	toks, errs := lexAll(t, `vec![1, (2), "]"]; m!{ a { b } } x ! (y)`)
	require.Empty(t, errs)
	assert.Equal(t, []token.Kind{
		token.Ident, token.Bang, token.MacroBody, token.Semicolon,
		token.Ident, token.Bang, token.MacroBody,
		token.Ident, token.Bang, token.LParen, token.Ident, token.RParen, token.EOF,
	}, kinds(toks))
	assert.Equal(t, `[1, (2), "]"]`, toks[2].Text)
	assert.Equal(t, "{ a { b } }", toks[6].Text)

	_, errs = lexAll(t, "m!(a, b")
	require.Len(t, errs, 1)
	assert.Equal(t, diag.LexUnterminatedMacro, errs[0].Code)
}

func TestRawBody(t *testing.T) {
	toks, errs := lexAll(t, "raw { int x = 1; } raw {}")
	require.Empty(t, errs)
	assert.Equal(t, []token.Kind{
		token.KwRaw, token.LBrace, token.RawBody, token.RBrace,
		token.KwRaw, token.LBrace, token.RBrace, token.EOF,
	}, kinds(toks))
	assert.Equal(t, " int x = 1; ", toks[2].Text)

	_, errs = lexAll(t, "raw { oops")
	require.Len(t, errs, 1)
	assert.Equal(t, diag.LexUnterminatedRaw, errs[0].Code)
}

func TestUnknownCharReported(t *testing.T) {
	bag := diag.NewBag(0)
	file := makeFile("a $ b π")
	toks, errs := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.Len(t, errs, 2)
	assert.Equal(t, 2, bag.Len())
	assert.Equal(t, []token.Kind{token.Ident, token.Invalid, token.Ident, token.Invalid, token.EOF}, kinds(toks))
	assert.Equal(t, "π", toks[3].Text)
	assert.Equal(t, "LEX1001", bag.Items()[0].Code.ID())
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx := lexer.New(makeFile("m!(x) y"), lexer.Options{})
	assert.Equal(t, token.Ident, lx.Peek().Kind)
	assert.Equal(t, token.Ident, lx.Next().Kind)
	assert.Equal(t, token.Bang, lx.Peek().Kind)
	assert.Equal(t, token.Bang, lx.Next().Kind)
	assert.Equal(t, token.MacroBody, lx.Next().Kind)
	assert.Equal(t, "y", lx.Next().Text)
	assert.Equal(t, token.EOF, lx.Next().Kind)
	assert.Equal(t, token.EOF, lx.Next().Kind)
}

func TestTokenizeRange(t *testing.T) {
	file := makeFile(`"v={a + 1}"`)
	toks, errs := lexer.TokenizeRange(file, 4, 9, lexer.Options{})
	require.Empty(t, errs)
	assert.Equal(t, []string{"a", "+", "1"}, texts(toks))
	assert.Equal(t, uint32(4), toks[0].Span.Start)
	assert.Equal(t, uint32(9), toks[3].Span.Start)
}

func TestSpansCoverText(t *testing.T) {
	src := "fn main() { var x: i32 = 0x1F; println \"{x}\"; }"
	file := makeFile(src)
	toks, errs := lexer.Tokenize(file, lexer.Options{})
	require.Empty(t, errs)
	var prevEnd uint32
	for _, tk := range toks {
		assert.GreaterOrEqual(t, tk.Span.Start, prevEnd)
		assert.Equal(t, tk.Text, file.Text(tk.Span))
		prevEnd = tk.Span.End
	}
}

func TestWideOctalEscapes(t *testing.T) {
	toks, errs := lexAll(t, `"\400" "\777"`)
	require.Empty(t, errs)
	assert.Equal(t, []token.Kind{token.StringLit, token.StringLit, token.EOF}, kinds(toks))
}

func TestUnescape(t *testing.T) {
	cases := map[string]string{
		`a\nb`:       "a\nb",
		`\x41\102`:   "AB",
		`\u{44F}`:    "я",
		`\{x\}`:      "{x}",
		`\"q\" \\ \'`: `"q" \ '`,
		`\0`:         "\x00",
		`\400`:       "\x00",
		`\777`:       "\xff",
	}
	for in, want := range cases {
		got, err := lexer.Unescape(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := lexer.Unescape(`\q`)
	assert.Error(t, err)
}
