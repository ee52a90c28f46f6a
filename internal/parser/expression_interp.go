package parser

import (
	"errors"

	"zenc/internal/ast"
	"zenc/internal/diag"
	"zenc/internal/lexer"
	"zenc/internal/token"
)

// parseInterpString раскладывает "x={a+1:spec}" на текст и выражения.
// Каждый сплайс токенизируется заново по своему диапазону и разбирается
// дочерним парсером, который делит с нами дерево и ошибки.
func (p *Parser) parseInterpString() (ast.ExprID, bool) {
	tok := p.advance()
	segs, err := lexer.StringSegments(p.file, tok)
	if err != nil {
		var le *lexer.Error
		if errors.As(err, &le) {
			p.st.lexErrs = append(p.st.lexErrs, le)
			p.failLex(le)
		} else {
			p.failAt(diag.SynBadSplice, tok.Span, err.Error())
		}
		return ast.NoExprID, false
	}

	parts := make([]ast.InterpPart, 0, len(segs))
	for _, seg := range segs {
		if seg.Kind == lexer.SegText {
			raw := string(p.file.Content[seg.Span.Start:seg.Span.End])
			text, err := lexer.Unescape(raw)
			if err != nil {
				text = raw
			}
			parts = append(parts, ast.InterpPart{Kind: ast.InterpText, Text: p.intern(text), Span: seg.Span})
			continue
		}

		expr, ok := p.parseSplice(seg)
		if !ok {
			return ast.NoExprID, false
		}
		part := ast.InterpPart{Kind: ast.InterpSplice, Expr: expr, Span: seg.Span}
		if seg.HasSpec {
			part.Spec = p.intern(string(p.file.Content[seg.Spec.Start:seg.Spec.End]))
		}
		parts = append(parts, part)
	}
	return p.b.Exprs.NewInterp(tok.Span, parts), true
}

func (p *Parser) parseSplice(seg lexer.Segment) (ast.ExprID, bool) {
	toks, lexErrs := lexer.TokenizeRange(p.file, seg.Span.Start, seg.Span.End, lexer.Options{})
	if len(lexErrs) > 0 {
		p.st.lexErrs = append(p.st.lexErrs, lexErrs...)
		p.failLex(lexErrs[0])
		return ast.NoExprID, false
	}
	if len(toks) == 0 || toks[0].Kind == token.EOF {
		p.failAt(diag.SynBadSplice, seg.Span, "empty expression in string interpolation")
		return ast.NoExprID, false
	}

	c := p.child(toks)
	expr, ok := c.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !c.at(token.EOF) {
		c.fail(diag.SynBadSplice, "unexpected token in string interpolation")
		return ast.NoExprID, false
	}
	return expr, true
}
