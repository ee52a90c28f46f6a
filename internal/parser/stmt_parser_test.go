package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dumpBody parses `fn f() { body }` and returns the dump of the body block.
func dumpBody(t *testing.T, body string) string {
	t.Helper()
	items := dumpItems(t, "fn f() { "+body+" }")
	require.Len(t, items, 1)
	const prefix = "(fn f (params) "
	require.True(t, len(items[0]) > len(prefix), items[0])
	return items[0][len(prefix) : len(items[0])-1]
}

func TestStatements(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", "(block)"},
		{"tail", "x + 1", "(block (tail (+ x 1)))"},
		{"expr stmt", "x + 1;", "(block (expr (+ x 1)))"},
		{"stray semicolon", ";", "(block (empty))"},
		{"var", "var mut n: i32 = 0; n", "(block (decl (var mut n (: i32) (= 0))) (tail n))"},
		{"destructuring var", "var (a, b) = pair;", "(block (decl (var (pat-tuple a b) (= pair))))"},
		{"return value", "return x;", "(block (return x))"},
		{"return before brace", "return", "(block (return))"},
		{"while", "while i < n { i += 1; }", "(block (while (< i n) (block (expr (+= i 1)))))"},
		{"loop", "loop { break; }", "(block (loop (block (break))))"},
		{"repeat", "repeat 3 { tick(); }", "(block (repeat 3 (block (expr (call tick)))))"},
		{"for range", "for i in 0..10 { }", "(block (for i (.. 0 10) (block)))"},
		{"for step", "for i in 0..10 step 2 { }", "(block (for i (.. 0 10) (step 2) (block)))"},
		{"for tuple pattern", "for (k, v) in pairs { }", "(block (for (pat-tuple k v) pairs (block)))"},
		{"guard", "guard ok else { return; }", "(block (guard ok (block (return))))"},
		{"unless", "unless done { work(); }", "(block (unless done (block (expr (call work)))))"},
		{"defer block", "defer { close(f); }", "(block (defer (block (expr (call close f)))))"},
		{"defer expr", "defer free(p);", "(block (defer (call free p)))"},
		{"nested block", "{ a; b }", "(block (block-stmt (expr a) (expr b)))"},
		{"if without semicolon", "if a { b(); } c();", "(block (expr (if a (block (expr (call b))))) (expr (call c)))"},
		{"if as tail", "if a { 1 } else { 2 }", "(block (tail (if a (block (tail 1)) (block (tail 2)))))"},
		{"match stmt", "match x { _ => 0 } y", "(block (expr (match x (arm _ 0))) (tail y))"},
		{"local fn", "fn g() { }", "(block (decl (fn g (params) (block))))"},
		{"local struct", "struct P { x: i32 }", "(block (decl (struct P (field x i32))))"},
		{"print shorthand stmt", `"hi"..;`, `(block (expr (print shorthand "hi")))`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dumpBody(t, tc.body))
		})
	}
}

func TestLabels(t *testing.T) {
	got := dumpBody(t, "outer: for i in xs { inner: while true { break outer; continue inner; } }")
	want := "(block (for (label outer) i xs (block (while (label inner) true (block (break (label outer)) (continue (label inner)))))))"
	assert.Equal(t, want, got)
}

func TestBreakWithValueIsNotLabel(t *testing.T) {
	// x не метка объемлющего цикла, значит это значение break
	got := dumpBody(t, "outer: loop { break x; }")
	assert.Equal(t, "(block (loop (label outer) (block (break x))))", got)
}

func TestDanglingElseBindsInnermost(t *testing.T) {
	got := dumpBody(t, "if a { if b { x(); } else { y(); } }")
	want := "(block (tail (if a (block (tail (if b (block (expr (call x))) (block (expr (call y)))))))))"
	assert.Equal(t, want, got)
}

func TestLabelsDoNotLeakIntoNestedFunctions(t *testing.T) {
	_, res, _ := parseSource(t, "fn f() { outer: loop { fn g() { loop { continue outer; } } } }", Options{})
	require.Len(t, res.Errors, 1)
	var perr *Error
	require.ErrorAs(t, res.Errors[0], &perr)
	assert.Equal(t, "SYN2011", perr.Code.ID())
}
