package lexer

import (
	"fmt"

	"zenc/internal/diag"
	"zenc/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки только копятся в Errors()
}

// Error describes one malformed token.
type Error struct {
	Code   diag.Code
	Reason string
	Span   source.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Reason)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.errs = append(lx.errs, &Error{Code: code, Reason: msg, Span: sp})
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
