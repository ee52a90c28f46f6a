package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/source"
	"zenc/internal/testkit"
)

// Refresh with ZENC_CORPUS_REFRESH='**' go test ./internal/parser -run TestCorpus
func TestCorpus(t *testing.T) {
	testkit.Corpus{
		Root:    "testdata/corpus",
		Refresh: "ZENC_CORPUS_REFRESH",
		Test:    runCorpusCase,
	}.Run(t)
}

// runCorpusCase parses one case. When any diagnostic is produced only the
// errors are compared; Got stays empty.
func runCorpusCase(t *testing.T, c testkit.Case) testkit.Output {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("corpus.zc", []byte(c.Input))
	file := fs.Get(id)
	bag := diag.NewBag(0)
	b := ast.NewBuilder(ast.Hints{}, nil)
	opts := Options{Recover: c.Recover, Reporter: diag.BagReporter{Bag: bag}}

	var got string
	switch c.Mode {
	case "", "file":
		res := ParseFile(file, b, opts)
		if bag.Len() == 0 {
			require.NoError(t, testkit.CheckSpanInvariants(b, res.File, file))
			got = itemLines(ast.Dump(b, res.File))
		}
	case "expr":
		expr, _ := ParseExpr(file, b, opts)
		if bag.Len() == 0 {
			got = ast.DumpExpr(b, expr)
		}
	default:
		t.Fatalf("unknown corpus mode %q", c.Mode)
	}

	var errs []string
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		errs = append(errs, fmt.Sprintf("%s %d:%d", d.Code.ID(), start.Line, start.Col))
	}
	return testkit.Output{Got: got, Errors: errs}
}

func itemLines(dump string) string {
	dump = strings.TrimPrefix(dump, "(file")
	dump = strings.TrimSuffix(dump, ")")
	var lines []string
	for _, line := range strings.Split(dump, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
