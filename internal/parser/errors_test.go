package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/lexer"
	"zenc/internal/token"
)

func TestFailFastReportsFirstError(t *testing.T) {
	_, res, bag := parseSource(t, "fn f(x: ) { }", Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ast.NoFileID, res.File)

	var perr *Error
	require.ErrorAs(t, res.Errors[0], &perr)
	assert.Equal(t, diag.SynExpectType, perr.Code)
	assert.Equal(t, uint32(8), perr.Span.Start)
	assert.Equal(t, token.RParen, perr.Found.Kind)
	assert.Contains(t, perr.Expected, token.Ident)
	assert.Contains(t, perr.Expected, token.Star)
	assert.Contains(t, perr.Expected, token.Question)

	diags := bag.Items()
	require.Len(t, diags, 1)
	assert.Equal(t, diag.SynExpectType, diags[0].Code)
	assert.Equal(t, diag.SevError, diags[0].Severity)
	require.Len(t, diags[0].Notes, 1)
	assert.True(t, strings.HasPrefix(diags[0].Notes[0].Msg, "expected "), diags[0].Notes[0].Msg)
}

func TestRecoverCollectsErrorsAcrossItems(t *testing.T) {
	src := "fn a() { x = ; }\nfn b() { }\nfn c() { y = ; }\n"
	b, res, bag := parseSource(t, src, Options{Recover: true})
	require.Len(t, res.Errors, 2, diagnosticsSummary(bag))
	for _, err := range res.Errors {
		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, diag.SynExpectExpression, perr.Code)
	}
	assert.Less(t, errorSpan(res.Errors[0]).Start, errorSpan(res.Errors[1]).Start)

	require.True(t, res.File.IsValid())
	assert.Len(t, b.Files.Get(res.File).Items, 3)
	assert.Equal(t, 2, bag.Len())
}

func TestRecoverSkipsStrayBrace(t *testing.T) {
	b, res, _ := parseSource(t, "}\nfn g() { }\n", Options{Recover: true})
	require.Len(t, res.Errors, 1)
	var perr *Error
	require.ErrorAs(t, res.Errors[0], &perr)
	assert.Equal(t, diag.SynUnexpectedTopLevel, perr.Code)
	require.True(t, res.File.IsValid())
	assert.Len(t, b.Files.Get(res.File).Items, 1)
}

func TestMaxErrorsStopsEarly(t *testing.T) {
	src := "fn a() { x = ; }\nfn b() { y = ; }\nfn c() { z = ; }\n"
	b, res, bag := parseSource(t, src, Options{Recover: true, MaxErrors: 1})
	assert.Len(t, res.Errors, 1)
	assert.Equal(t, 1, bag.Len())
	// остановка не теряет уже построенное дерево
	require.True(t, res.File.IsValid())
	assert.NotNil(t, b.Files.Get(res.File))
}

func TestFailFastStopsDeepInsideNesting(t *testing.T) {
	src := "fn f() { if a { while b { x = g(1, [2, (3 + ]); } } }\nfn h() { y = ; }\n"
	_, res, bag := parseSource(t, src, Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ast.NoFileID, res.File)
	assert.Equal(t, 1, bag.Len())

	var perr *Error
	require.ErrorAs(t, res.Errors[0], &perr)
	assert.Less(t, perr.Span.Start, uint32(strings.Index(src, "fn h")))
}

func TestLexerErrorWinsWhenEarlier(t *testing.T) {
	_, res, _ := parseSource(t, "var x = 1 # 2;", Options{})
	require.Len(t, res.Errors, 1)
	var lerr *lexer.Error
	require.ErrorAs(t, res.Errors[0], &lerr)
	assert.Equal(t, diag.LexUnknownChar, lerr.Code)
}

func TestSyntaxErrorWinsWhenEarlier(t *testing.T) {
	_, res, _ := parseSource(t, "fn f(x: ) { }\nvar s = \"open", Options{})
	require.Len(t, res.Errors, 1)
	var perr *Error
	require.ErrorAs(t, res.Errors[0], &perr)
	assert.Equal(t, diag.SynExpectType, perr.Code)
}

func TestErrorCases(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unclosed block", "fn f() { var x = 1;", diag.SynUnclosedDelimiter},
		{"missing semicolon", "fn f() { a() b() }", diag.SynExpectSemicolon},
		{"continue unknown label", "fn f() { loop { continue nowhere; } }", diag.SynBadLabel},
		{"unknown build directive", "//> nope: x\n", diag.SynBadBuildDirective},
		{"empty build value", "//> link:\n", diag.SynBadBuildDirective},
		{"unknown pp directive", "#frobnicate\n", diag.SynBadPreprocessor},
		{"autofree without var", "autofree fn f() { }", diag.SynUnexpectedToken},
		{"empty splice expr", `var s = "{a b}";`, diag.SynBadSplice},
		{"missing type", "var x: = 1;", diag.SynExpectType},
		{"one-element tuple type", "var t: (i32,) = x;", diag.SynExpectType},
		{"missing pattern", "fn f() { for in xs { } }", diag.SynExpectPattern},
		{"destructure without value", "var (a, b);", diag.SynUnexpectedToken},
		{"guard without else", "fn f() { guard ok { } }", diag.SynUnexpectedToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, res, _ := parseSource(t, tc.src, Options{})
			require.Len(t, res.Errors, 1)
			var perr *Error
			require.ErrorAs(t, res.Errors[0], &perr)
			assert.Equal(t, tc.code, perr.Code, perr.Error())
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	src := `struct S { a: i32 }
fn f(s: S) -> i32 {
    var t = (s.a, "x={s.a:04}");
    match t { (0, _) => 1, _ => sizeof(S) as i32 }
}
fn g() { x = ; }
`
	run := func() (string, []string) {
		b, res, _ := parseSource(t, src, Options{Recover: true})
		msgs := make([]string, 0, len(res.Errors))
		for _, err := range res.Errors {
			msgs = append(msgs, err.Error())
		}
		return ast.Dump(b, res.File), msgs
	}
	dump1, errs1 := run()
	dump2, errs2 := run()
	if diff := cmp.Diff(dump1, dump2); diff != "" {
		t.Fatalf("dump mismatch (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(errs1, errs2); diff != "" {
		t.Fatalf("errors mismatch (-first +second):\n%s", diff)
	}
	assert.Len(t, errs1, 1)
}

func TestSpansNestWithinParents(t *testing.T) {
	src := "fn f(a: i32) -> i32 { var b = a * (a + 1); b }"
	b, res, _ := parseSource(t, src, Options{})
	require.Empty(t, res.Errors)
	f := b.Files.Get(res.File)
	require.Len(t, f.Items, 1)
	item := b.Items.Get(f.Items[0])
	assert.Equal(t, uint32(0), item.Span.Start)
	assert.Equal(t, uint32(len(src)), item.Span.End)

	fn, ok := b.Items.Fn(f.Items[0])
	require.True(t, ok)
	body := b.Exprs.Get(fn.Body)
	assert.True(t, item.Span.Start <= body.Span.Start && body.Span.End <= item.Span.End)
	block, ok := b.Exprs.Block(fn.Body)
	require.True(t, ok)
	for _, st := range block.Stmts {
		sp := b.Stmts.Get(st).Span
		assert.True(t, body.Span.Start <= sp.Start && sp.End <= body.Span.End)
	}
}
