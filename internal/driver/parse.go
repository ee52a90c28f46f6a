package driver

import (
	"context"
	"fmt"

	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/parser"
	"zenc/internal/source"
	"zenc/internal/trace"
)

// FileResult is the outcome of lexing or parsing one file.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Builder *ast.Builder // nil для токенизации и попаданий в кеш
	AST     ast.FileID   // NoFileID, если разбор не удался в fail-fast
	Errors  []error      // *lexer.Error и *parser.Error по порядку
	Bag     *diag.Bag
	Items   int
	Cached  bool
}

// ParseResult holds a single-file parse together with its FileSet.
type ParseResult struct {
	FileSet *source.FileSet
	*FileResult
}

// Parse loads path from disk and parses it.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	done := opts.track(PhaseLoad)
	fileID, err := fs.Load(path)
	done()
	if err != nil {
		return nil, err
	}
	return &ParseResult{FileSet: fs, FileResult: ParseSource(ctx, fs, fileID, opts)}, nil
}

// ParseSource parses a file that is already in fs. Diagnostics go to the
// result's Bag; the tracer is taken from ctx.
func ParseSource(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) *FileResult {
	return parseFile(ctx, fs, fileID, opts, trace.ParentID(ctx))
}

func parseFile(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options, parent uint64) *FileResult {
	file := fs.Get(fileID)
	res := &FileResult{
		Path:   file.Path,
		FileID: fileID,
		AST:    ast.NoFileID,
		Bag:    diag.NewBag(opts.MaxDiagnostics),
	}
	tracer := trace.FromContext(ctx)

	if opts.Cache != nil {
		done := opts.track(PhaseCache)
		hit, err := opts.Cache.Load(file, opts, res.Bag)
		done()
		switch {
		case err != nil:
			res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: fileID},
				fmt.Sprintf("cache read failed: %v", err)))
		case hit != nil:
			res.Cached = true
			res.Items = hit.Items
			res.Errors = hit.Errors(fileID)
			trace.Point(tracer, trace.ScopeFile, "cache-hit", file.Path, parent)
			return res
		}
	}

	b := ast.NewBuilder(ast.Hints{}, nil)
	done := opts.track(PhaseParse)
	r := parser.ParseFile(file, b, parser.Options{
		MaxErrors:   opts.maxErrors(),
		Recover:     opts.Recover,
		Reporter:    diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag}),
		Tracer:      tracer,
		TraceParent: parent,
	})
	done()

	res.Builder = b
	res.AST = r.File
	res.Errors = r.Errors
	if f := b.Files.Get(r.File); f != nil {
		res.Items = len(f.Items)
	}

	if opts.Cache != nil {
		if err := opts.Cache.Store(file, opts, res); err != nil {
			res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: fileID},
				fmt.Sprintf("cache write failed: %v", err)))
		}
	}
	return res
}
