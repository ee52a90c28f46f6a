package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"zenc/internal/diag"
	"zenc/internal/project"
	"zenc/internal/source"
	"zenc/internal/token"
	"zenc/internal/trace"
)

// DirResult holds per-file results of a directory run, in sorted path order.
type DirResult struct {
	FileSet *source.FileSet
	Files   []*FileResult
	Tokens  [][]token.Token // только для TokenizeDir, параллельно Files
}

// Bag merges every file's diagnostics into one sorted bag.
func (r *DirResult) Bag(limit int) *diag.Bag {
	out := diag.NewBag(limit)
	for _, f := range r.Files {
		out.Merge(f.Bag)
	}
	out.Sort()
	return out
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *DirResult) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

type fileJob func(ctx context.Context, fs *source.FileSet, id source.FileID, idx int, parent uint64) *FileResult

// ParseDir parses every source file under dir that the project config selects,
// concurrently. A file that fails to load gets an IO diagnostic and no AST.
func ParseDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	return runDir(ctx, dir, "parse-dir", opts, nil, func(ctx context.Context, fs *source.FileSet, id source.FileID, _ int, parent uint64) *FileResult {
		return parseFile(ctx, fs, id, opts, parent)
	})
}

// TokenizeDir lexes every selected source file under dir concurrently.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	var tokens [][]token.Token
	res, err := runDir(ctx, dir, "tokenize-dir", opts, func(n int) { tokens = make([][]token.Token, n) },
		func(ctx context.Context, fs *source.FileSet, id source.FileID, idx int, parent uint64) *FileResult {
			fr, toks := tokenizeFile(ctx, fs, id, opts, parent)
			tokens[idx] = toks
			return fr
		})
	if res != nil {
		res.Tokens = tokens
	}
	return res, err
}

func runDir(ctx context.Context, dir, name string, opts Options, prepare func(n int), job fileJob) (*DirResult, error) {
	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, name)
	span.WithExtra("dir", dir)
	defer span.End("")

	cfg := opts.Config
	if cfg == nil {
		cfg = project.Default(dir)
	}
	files, err := cfg.CollectSources(dir)
	if err != nil {
		return nil, fmt.Errorf("collect sources in %s: %w", dir, err)
	}
	span.WithExtra("files", strconv.Itoa(len(files)))

	fileSet := source.NewFileSetWithBase(dir)
	result := &DirResult{FileSet: fileSet, Files: make([]*FileResult, len(files))}
	if len(files) == 0 {
		return result, nil
	}
	if prepare != nil {
		prepare(len(files))
	}

	// FileSet не потокобезопасен: загружаем всё последовательно до запуска воркеров
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	done := opts.track(PhaseLoad)
	for i, path := range files {
		ids[i], loadErrs[i] = fileSet.Load(path)
		if loadErrs[i] != nil {
			// пустой виртуальный файл, чтобы диагностика указывала на нужный путь
			ids[i] = fileSet.AddVirtual(path, nil)
		}
	}
	done()

	pass := span.Child(trace.ScopePass, name)
	defer pass.End("")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(files)))
	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			start := time.Now()

			var fr *FileResult
			if loadErrs[i] != nil {
				fr = &FileResult{Path: path, FileID: ids[i], Bag: diag.NewBag(opts.MaxDiagnostics)}
				fr.Bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{File: ids[i]},
					"failed to load file: "+loadErrs[i].Error()))
			} else {
				fr = job(gctx, fileSet, ids[i], i, pass.ID())
			}
			// индекс i уникален для горутины, мьютекс не нужен
			result.Files[i] = fr

			opts.report(FileEvent{
				Path:    path,
				Index:   i,
				Total:   len(files),
				Errors:  countErrors(fr.Bag),
				Cached:  fr.Cached,
				Elapsed: time.Since(start),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

func countErrors(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	return n
}
