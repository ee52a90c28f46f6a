package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/lexer"
	"zenc/internal/source"
)

func makeFile(input string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zc", []byte(input))
	return fs.Get(id)
}

func parseSource(t *testing.T, input string, opts Options) (*ast.Builder, Result, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(100)
	opts.Reporter = diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(makeFile(input), b, opts)
	return b, res, bag
}

// dumpFile parses input in fail-fast mode and requires success.
func dumpFile(t *testing.T, input string) string {
	t.Helper()
	b, res, bag := parseSource(t, input, Options{})
	require.Empty(t, res.Errors, "diagnostics: %s", diagnosticsSummary(bag))
	require.True(t, res.File.IsValid())
	return ast.Dump(b, res.File)
}

// dumpItems returns the dump of every top-level item, one per element.
func dumpItems(t *testing.T, input string) []string {
	t.Helper()
	dump := dumpFile(t, input)
	dump = strings.TrimPrefix(dump, "(file")
	dump = strings.TrimSuffix(dump, ")")
	var items []string
	for _, line := range strings.Split(dump, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items
}

func dumpExpr(t *testing.T, input string) string {
	t.Helper()
	b := ast.NewBuilder(ast.Hints{}, nil)
	expr, errs := ParseExpr(makeFile(input), b, Options{})
	require.Empty(t, errs, "input %q", input)
	return ast.DumpExpr(b, expr)
}

// withParser runs fn over a fresh parser in recover mode so that a failure
// is reported through the return value instead of unwinding.
func withParser(t *testing.T, input string, fn func(p *Parser) bool) (*ast.Builder, *Parser) {
	t.Helper()
	file := makeFile(input)
	toks, lexErrs := lexer.Tokenize(file, lexer.Options{})
	require.Empty(t, lexErrs)
	b := ast.NewBuilder(ast.Hints{}, nil)
	p := newParser(file, toks, b, Options{Recover: true}, &state{})
	p.typeNames = collectTypeNames(toks)
	require.True(t, fn(p), "input %q: %v", input, p.st.errs)
	require.Empty(t, p.st.errs)
	return b, p
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}
