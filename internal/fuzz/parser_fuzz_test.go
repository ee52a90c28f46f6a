package fuzztests

import (
	"testing"
	"time"

	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/parser"
	"zenc/internal/source"
	"zenc/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParseNoPanic(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.zc", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(128)
		builder := ast.NewBuilder(ast.Hints{}, nil)
		res := parser.ParseFile(file, builder, parser.Options{
			Reporter:  diag.BagReporter{Bag: bag},
			Recover:   true,
			MaxErrors: 128,
		})
		if res.File.IsValid() && len(res.Errors) == 0 {
			if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
				t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
			}
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// Recovery has to make progress on every token it skips.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("fn test() { var x: i32 = 1\nvar y: i32 = 2; }"))
	f.Add([]byte("fn test() { x + y\nvar z = 3; }"))
	f.Add([]byte("async fn producer<T>(ch: *Chan<T>) {}"))
	f.Add([]byte("fn f() { { { { } } } }"))
	f.Add([]byte("fn f() { match x { } }"))
	f.Add([]byte("fn f() { for (var i = 0 i < 10 i = i + 1) {} }"))
	f.Add([]byte("var s = \"a {b ? c : d} e\";"))
	f.Add([]byte("}}}} fn"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			fileID := fs.AddVirtual("fuzz.zc", input)
			builder := ast.NewBuilder(ast.Hints{}, nil)
			_ = parser.ParseFile(fs.Get(fileID), builder, parser.Options{Recover: true, MaxErrors: 128})
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
