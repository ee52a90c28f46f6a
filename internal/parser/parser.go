package parser

import (
	"errors"
	"fmt"
	"slices"

	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/lexer"
	"zenc/internal/source"
	"zenc/internal/token"
	"zenc/internal/trace"
)

type Options struct {
	MaxErrors uint // 0 — без ограничения; действует только при Recover
	Recover   bool // продолжать после ошибки, синхронизируясь на границах операторов
	Reporter  diag.Reporter
	Tracer    trace.Tracer
	// TraceParent — span, под которым открывается span разбора файла
	TraceParent uint64
}

// Result of one parse. With fail-fast a non-empty Errors means File is NoFileID.
type Result struct {
	File   ast.FileID
	Errors []error
}

// Error is a valid token in an invalid position.
type Error struct {
	Code     diag.Code
	Msg      string
	Expected []token.Kind
	Found    token.Token
	Span     source.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

// ExpectedString lists the expected token kinds for a note: "type, '(' or '*'".
func (e *Error) ExpectedString() string {
	return describeKinds(e.Expected)
}

// Parser — состояние разбора одного файла (или одного сплайса строки).
type Parser struct {
	toks      []token.Token
	pos       int
	splits    []splitUndo
	file      *source.File
	b         *ast.Builder
	opts      Options
	st        *state
	typeNames map[string]struct{} // имена struct/enum/union/trait этого файла
	labels    []string            // метки объемлющих циклов
	noStruct  bool                // заголовок if/while/for/match: `Name {` не литерал
	noTry     bool                // условие if: '?' принадлежит тернарному оператору
	spec      int                 // глубина спекулятивного разбора
	lastSpan  source.Span
}

// state is shared between a parser and the sub-parsers it spawns for splices.
type state struct {
	errs    []error
	lexErrs []*lexer.Error
	// halted: первая ошибка в fail-fast или достигнут MaxErrors.
	halted bool
	// specFailed: текущая спекулятивная попытка уже не удалась.
	specFailed bool
}

// stopped — после остановки парсер видит только EOF, и все циклы разбора
// завершаются обычными возвратами (ID, false).
func (s *state) stopped() bool {
	return s.halted || s.specFailed
}

// ParseFile tokenizes and parses a whole file into b.
func ParseFile(file *source.File, b *ast.Builder, opts Options) Result {
	span := trace.Begin(opts.Tracer, trace.ScopeFile, "parse", opts.TraceParent).WithExtra("file", file.Path)

	toks, lexErrs := lexer.Tokenize(file, lexer.Options{})
	p := newParser(file, toks, b, opts, &state{lexErrs: lexErrs})
	p.typeNames = collectTypeNames(toks)

	fileID := p.parseItems()
	errs := p.finish()
	if len(errs) > 0 && !opts.Recover {
		fileID = ast.NoFileID
	}
	span.WithExtra("errors", fmt.Sprint(len(errs))).End("")
	return Result{File: fileID, Errors: errs}
}

// ParseExpr parses the whole file as a single expression. Used by tools and tests.
func ParseExpr(file *source.File, b *ast.Builder, opts Options) (ast.ExprID, []error) {
	toks, lexErrs := lexer.Tokenize(file, lexer.Options{})
	p := newParser(file, toks, b, opts, &state{lexErrs: lexErrs})
	p.typeNames = collectTypeNames(toks)
	expr, ok := p.parseExpr()
	if ok && !p.at(token.EOF) {
		p.fail(diag.SynUnexpectedToken, "expected end of input", token.EOF)
	}
	errs := p.finish()
	if len(errs) > 0 {
		expr = ast.NoExprID
	}
	return expr, errs
}

func newParser(file *source.File, toks []token.Token, b *ast.Builder, opts Options, st *state) *Parser {
	if opts.Recover {
		// ошибки лексера уже в st.lexErrs; Invalid-токены только мешали бы синхронизации
		toks = slices.DeleteFunc(toks, func(t token.Token) bool { return t.Kind == token.Invalid })
	}
	return &Parser{
		toks: toks,
		file: file,
		b:    b,
		opts: opts,
		st:   st,
	}
}

// child creates a parser over a splice's tokens that shares the tree and the error state.
func (p *Parser) child(toks []token.Token) *Parser {
	c := newParser(p.file, toks, p.b, p.opts, p.st)
	c.typeNames = p.typeNames
	c.spec = p.spec
	return c
}

func (p *Parser) parseItems() ast.FileID {
	fileSpan := source.Span{File: p.file.ID, Start: 0, End: uint32(len(p.file.Content))} // #nosec G115 -- file size fits in uint32
	fileID := p.b.NewFile(fileSpan)
	for !p.at(token.EOF) {
		before := p.pos
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop(before)
			continue
		}
		p.b.PushItem(fileID, itemID)
	}
	return fileID
}

// finish orders the collected errors and sends them to the reporter.
// In fail-fast mode only the earliest error survives.
func (p *Parser) finish() []error {
	var errs []error
	if p.opts.Recover {
		for _, le := range p.st.lexErrs {
			errs = append(errs, le)
		}
		errs = append(errs, p.st.errs...)
		slices.SortStableFunc(errs, func(a, b error) int {
			return int(errorSpan(a).Start) - int(errorSpan(b).Start)
		})
		errs = slices.CompactFunc(errs, func(a, b error) bool { return a == b })
		if p.opts.MaxErrors > 0 && uint(len(errs)) > p.opts.MaxErrors {
			errs = errs[:p.opts.MaxErrors]
		}
	} else {
		// первая ошибка по позиции: синтаксическая или лексическая
		var first error
		if len(p.st.errs) > 0 {
			first = p.st.errs[0]
		}
		if len(p.st.lexErrs) > 0 {
			le := p.st.lexErrs[0]
			if first == nil || le.Span.Start <= errorSpan(first).Start {
				first = le
			}
		}
		if first != nil {
			errs = []error{first}
		}
	}
	if p.opts.Reporter != nil {
		for _, err := range errs {
			reportError(p.opts.Reporter, err)
		}
	}
	return errs
}

func errorSpan(err error) source.Span {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Span
	}
	var le *lexer.Error
	if errors.As(err, &le) {
		return le.Span
	}
	return source.Span{}
}

func reportError(r diag.Reporter, err error) {
	var pe *Error
	if errors.As(err, &pe) {
		var notes []diag.Note
		if len(pe.Expected) > 0 {
			notes = append(notes, diag.Note{Span: pe.Span, Msg: "expected " + pe.ExpectedString()})
		}
		r.Report(pe.Code, diag.SevError, pe.Span, pe.Msg, notes)
		return
	}
	var le *lexer.Error
	if errors.As(err, &le) {
		r.Report(le.Code, diag.SevError, le.Span, le.Reason, nil)
	}
}

// collectTypeNames gathers names declared by struct/enum/union/trait anywhere in the file.
func collectTypeNames(toks []token.Token) map[string]struct{} {
	names := make(map[string]struct{})
	for i := 0; i+1 < len(toks); i++ {
		switch toks[i].Kind {
		case token.KwStruct, token.KwEnum, token.KwUnion, token.KwTrait:
			if toks[i+1].Kind == token.Ident {
				names[toks[i+1].Text] = struct{}{}
			}
		}
	}
	return names
}
