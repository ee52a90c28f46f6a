package driver

import (
	"context"
	"strconv"

	"zenc/internal/diag"
	"zenc/internal/lexer"
	"zenc/internal/source"
	"zenc/internal/token"
	"zenc/internal/trace"
)

// TokenizeResult holds a single-file token stream together with its FileSet.
type TokenizeResult struct {
	FileSet *source.FileSet
	*FileResult
	Tokens []token.Token
}

// Tokenize loads path and lexes it to EOF. Lexical errors land in the Bag;
// the token stream is still complete.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	done := opts.track(PhaseLoad)
	fileID, err := fs.Load(path)
	done()
	if err != nil {
		return nil, err
	}
	res, toks := tokenizeFile(ctx, fs, fileID, opts, trace.ParentID(ctx))
	return &TokenizeResult{FileSet: fs, FileResult: res, Tokens: toks}, nil
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options, parent uint64) (*FileResult, []token.Token) {
	file := fs.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "lex", parent).WithExtra("file", file.Path)
	done := opts.track(PhaseTokenize)
	toks, lexErrs := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	done()
	span.WithExtra("tokens", strconv.Itoa(len(toks))).End("")

	res := &FileResult{Path: file.Path, FileID: fileID, Bag: bag}
	for _, e := range lexErrs {
		res.Errors = append(res.Errors, e)
	}
	return res, toks
}
