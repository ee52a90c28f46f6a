package fuzztests

import (
	"testing"

	"zenc/internal/diag"
	"zenc/internal/lexer"
	"zenc/internal/source"
	"zenc/internal/token"
)

func FuzzLexerNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.zc", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		toks, _ := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream must end with EOF, got %d tokens", len(toks))
		}
		var prev uint32
		for i, tok := range toks {
			if tok.Span.Start < prev || tok.Span.End < tok.Span.Start {
				t.Fatalf("token %d (%s) has span %v after offset %d", i, tok.Kind, tok.Span, prev)
			}
			if int(tok.Span.End) > len(file.Content) {
				t.Fatalf("token %d span %v beyond content", i, tok.Span)
			}
			prev = tok.Span.End
		}
	})
}
