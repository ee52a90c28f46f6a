package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenc/internal/ast"
)

func TestExpressionPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"a = b = c", "(= a (= b c))"},
		{"a < b == c", "(== (< a b) c)"},
		{"a - b - c", "(- (- a b) c)"},
		{"a ?? b || c", "(|| (?? a b) c)"},
		{"x ??= y ?? z", "(??= x (?? y z))"},
		{"a && b || c && d", "(|| (&& a b) (&& c d))"},
		{"a | b ^ c & d", "(| a (^ b (& c d)))"},
		{"1 << 2 + 3", "(<< 1 (+ 2 3))"},
		{"a += b * 2", "(+= a (* b 2))"},
		{"x as i32 + 1", "(+ (as x i32) 1)"},
		{"-x as i64", "(as (- x) i64)"},
		{"*p.x", "(* (. p x))"},
		{"!a && b", "(&& (! a) b)"},
		{"~mask", "(~ mask)"},
		{"await fetch()", "(await (call fetch))"},
		{"&mut x", "(&mut x)"},
		{"&&x", "(& (& x))"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			assert.Equal(t, tc.want, dumpExpr(t, tc.src))
		})
	}
}

func TestPostfixChains(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"a.b(1).c", "(. (method-call a b 1) c)"},
		{"t.0", "(. t 0)"},
		{"v.get<i32>(0)", "(method-call v get (generics i32) 0)"},
		{"a.b < c", "(< (. a b) c)"},
		{"f(x: 1, 2)", "(call f (arg x 1) 2)"},
		{"a?.b", "(?. a b)"},
		{"a?.len()", "(safe-method-call a len)"},
		{"Color::Red", "(:: Color Red)"},
		{"items[i + 1]", "(index items (+ i 1))"},
		{"read()?", "(? (call read))"},
		{"m[0][1]", "(index (index m 0) 1)"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			assert.Equal(t, tc.want, dumpExpr(t, tc.src))
		})
	}
}

func TestRangesAndTernary(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"0..10", "(.. 0 10)"},
		{"..=5", "(..= _ 5)"},
		{"a..", "(.. a _)"},
		{"..", "(.. _ _)"},
		{"if c ? a : b", "(ternary c a b)"},
		{"if x > 0 ? 1 : if x < 0 ? -1 : 0", "(ternary (> x 0) 1 (ternary (< x 0) (- 1) 0))"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			assert.Equal(t, tc.want, dumpExpr(t, tc.src))
		})
	}
}

func TestDanglingElseChain(t *testing.T) {
	got := dumpExpr(t, "if a { } else if b { } else { }")
	assert.Equal(t, "(if a (block) (if b (block) (block)))", got)
}

func TestBlockValueVersusStatement(t *testing.T) {
	assert.Equal(t, "(block (expr 1) (expr 2) (tail 3))", dumpExpr(t, "{ 1; 2; 3 }"))

	items := dumpItems(t, "{ 1; 2; 3 }")
	require.Len(t, items, 1)
	assert.Equal(t, "(block-stmt (expr 1) (expr 2) (expr 3))", items[0])
}

func TestBraceClassification(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"{}", "(array)"},
		{"{1}", "(array 1)"},
		{"{1, 2}", "(array 1 2)"},
		{"{ var x = 1; x }", "(block (decl (var x (= 1))) (tail x))"},
		{"{ return; }", "(block (return))"},
		{"Point { x: 1, y }", "(struct-lit Point (x 1) y)"},
		{"Empty {}", "(struct-lit Empty)"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			assert.Equal(t, tc.want, dumpExpr(t, tc.src))
		})
	}
}

func TestGroupsTuplesAndLambdas(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"()", "(tuple)"},
		{"(1)", "(group 1)"},
		{"(1, 2)", "(tuple 1 2)"},
		{"x -> x * 2", "(lambda (params x) (* x 2))"},
		{"(a, b: i32) -> a + b", "(lambda (params a (b i32)) (+ a b))"},
		{"fn(x: i32) -> i32 { x }", "(fn-lambda (params (x i32)) (-> i32) (block (tail x)))"},
		{"async fn() { }", "(fn-lambda (params) (block))"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			assert.Equal(t, tc.want, dumpExpr(t, tc.src))
		})
	}
}

func TestMatchExpression(t *testing.T) {
	src := "match x { 1 | 2 => a, Some(v) if v > 0 => { v }, _ => 0 }"
	want := "(match x (arm (pat-or 1 2) a) (arm (pat-enum Some (args v)) (guard (> v 0)) (block (tail v))) (arm _ 0))"
	assert.Equal(t, want, dumpExpr(t, src))
}

func TestStructLiteralNotInConditions(t *testing.T) {
	items := dumpItems(t, "fn f() { if Ready { run(); } while Flag { } }")
	require.Len(t, items, 1)
	assert.Equal(t,
		"(fn f (params) (block (expr (if Ready (block (expr (call run))))) (while Flag (block))))",
		items[0])
}

func TestQueryExpressions(t *testing.T) {
	assert.Equal(t, "(sizeof (type i32))", dumpExpr(t, "sizeof(i32)"))
	assert.Equal(t, "(sizeof (type (ptr u8)))", dumpExpr(t, "sizeof(*u8)"))
	assert.Equal(t, "(sizeof (expr x))", dumpExpr(t, "sizeof(x)"))
	assert.Equal(t, "(typeof (expr (+ a 1)))", dumpExpr(t, "typeof(a + 1)"))
	assert.Equal(t, "(sizeof (type (generic Vec i32)))", dumpExpr(t, "sizeof(Vec<i32>)"))

	items := dumpItems(t, "struct Point { x: i32 }\nvar a = sizeof(Point);\nvar b = sizeof(Other);")
	require.Len(t, items, 3)
	assert.Equal(t, "(var a (= (sizeof (type Point))))", items[1])
	assert.Equal(t, "(var b (= (sizeof (expr Other))))", items[2])
}

func TestQueryAmbiguityIsRecorded(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	expr, errs := ParseExpr(makeFile("sizeof(Thing)"), b, Options{})
	require.Empty(t, errs)
	q, ok := b.Exprs.Query(expr)
	require.True(t, ok)
	assert.True(t, q.Ambiguous)
	assert.True(t, q.Expr.IsValid())
	assert.False(t, q.Type.IsValid())
}

func TestFailedTypeAttemptLeavesNoNodes(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	expr, errs := ParseExpr(makeFile("sizeof(a * b)"), b, Options{})
	require.Empty(t, errs)
	assert.Equal(t, "(sizeof (expr (* a b)))", ast.DumpExpr(b, expr))
	assert.Zero(t, b.Types.Arena.Len())
	assert.Zero(t, b.Types.Names.Len())
	assert.Equal(t, uint32(4), b.Exprs.Arena.Len())
}

func TestNestedFailedAttemptsRollBack(t *testing.T) {
	// sizeof пробует тип, внутри выражения `.f<` пробует аргументы типа; обе попытки неудачны
	b := ast.NewBuilder(ast.Hints{}, nil)
	expr, errs := ParseExpr(makeFile("sizeof(a.f < b)"), b, Options{})
	require.Empty(t, errs)
	require.True(t, expr.IsValid())
	assert.Zero(t, b.Types.Arena.Len())

	expr, errs = ParseExpr(makeFile("sizeof(a.f<b>(c))"), ast.NewBuilder(ast.Hints{}, nil), Options{})
	require.Empty(t, errs)
	assert.True(t, expr.IsValid())
}

func TestPrintForms(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`"hi"..`, `(print shorthand "hi")`},
		{`"hi"`, `"hi"`},
		{`"hi" ..`, `(.. "hi" _)`},
		{`!"oops"`, `(eprintln shorthand "oops")`},
		{`!"oops"..`, `(eprint shorthand "oops")`},
		{`println "x"`, `(println bare "x")`},
		{`print("a")`, `(print call "a")`},
		{`eprintln("e")`, `(eprintln call "e")`},
		{`print(x)`, `(call print x)`},
		{`!flag`, `(! flag)`},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			assert.Equal(t, tc.want, dumpExpr(t, tc.src))
		})
	}
}

func TestInterpolationRoundTrip(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	expr, errs := ParseExpr(makeFile(`"x={a+1}"`), b, Options{})
	require.Empty(t, errs)
	assert.Equal(t, `(interp "x=" (splice (+ a 1)))`, ast.DumpExpr(b, expr))

	formatted := ast.Format(b, expr)
	assert.Equal(t, `"x={a + 1}"`, formatted)

	b2 := ast.NewBuilder(ast.Hints{}, nil)
	again, errs := ParseExpr(makeFile(formatted), b2, Options{})
	require.Empty(t, errs)
	assert.Equal(t, ast.DumpExpr(b, expr), ast.DumpExpr(b2, again))
}

func TestInterpolationSpecAndNesting(t *testing.T) {
	assert.Equal(t, `(interp "v=" (splice v ".2") "!")`, dumpExpr(t, `"v={v:.2}!"`))
	assert.Equal(t, `(interp (splice (call f "}")))`, dumpExpr(t, `"{f("}")}"`))
	assert.Equal(t, `(interp (splice (:: Color Red)))`, dumpExpr(t, `"{Color::Red}"`))
}

func TestSpecialForms(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`embed "data.bin"`, `(embed "data.bin")`},
		{`? "name: " (n)`, `(input "name: " n)`},
		{`? "go?"`, `(input "go?")`},
		{`vec![1, 2]`, `(macro vec! "[1, 2]")`},
		{`comptime { 1 }`, `(comptime (block (tail 1)))`},
		{`asm volatile { "nop" : out(x) : in("r") : clobber("memory") }`, `(asm volatile "nop" (out x) (in "r") (clobber "memory"))`},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			assert.Equal(t, tc.want, dumpExpr(t, tc.src))
		})
	}
}

func TestNestedGenericsSplitShift(t *testing.T) {
	assert.Equal(t, "(method-call m get (generics (generic Vec (generic Vec i32))))", dumpExpr(t, "m.get<Vec<Vec<i32>>>()"))
	// без '(' после '>' это сравнения
	assert.Equal(t, "(> (< (. a b) c) d)", dumpExpr(t, "a.b < c > d"))
}
