package parser

import (
	"strings"

	"zenc/internal/ast"
	"zenc/internal/diag"
)

var buildDirectiveNames = map[string]struct{}{
	"include": {}, "lib": {}, "link": {}, "cflags": {}, "define": {},
	"pkg-config": {}, "shell": {}, "get": {}, "immutable-by-default": {},
}

// parseBuildDirective: `//> name` или `//> name: value`; значение до конца строки.
func (p *Parser) parseBuildDirective() (ast.ItemID, bool) {
	tok := p.advance()
	body := strings.TrimPrefix(tok.Text, "//>")
	body = strings.TrimRight(body, "\r")

	name, value, hasValue := strings.Cut(body, ":")
	name = strings.TrimSpace(name)
	if _, known := buildDirectiveNames[name]; !known {
		msg := "unknown build directive '" + name + "'"
		if name == "" {
			msg = "missing build directive name after '//>'"
		}
		p.failAt(diag.SynBadBuildDirective, tok.Span, msg)
		return ast.NoItemID, false
	}
	d := ast.BuildDirective{Name: p.intern(name), HasValue: hasValue}
	if hasValue {
		value = strings.TrimSpace(value)
		if value == "" {
			p.failAt(diag.SynBadBuildDirective, tok.Span, "empty value for build directive '"+name+"'")
			return ast.NoItemID, false
		}
		d.Value = p.intern(value)
	}
	return p.b.Items.NewBuildDirective(tok.Span, d), true
}

type ppShape uint8

const (
	ppBare  ppShape = iota // #endif, #else
	ppName                 // #ifdef NAME
	ppValue                // #pragma once
	ppDefine
	ppInclude
)

var ppDirectives = map[string]ppShape{
	"define":  ppDefine,
	"include": ppInclude,
	"ifdef":   ppName,
	"ifndef":  ppName,
	"undef":   ppName,
	"endif":   ppBare,
	"else":    ppBare,
	"elif":    ppValue,
	"pragma":  ppValue,
	"error":   ppValue,
	"warning": ppValue,
}

// parsePPDirective разбирает строку препроцессора C только синтаксически.
// Продолжения строки (`\` + перевод строки) склеиваются в один пробел.
func (p *Parser) parsePPDirective() (ast.ItemID, bool) {
	tok := p.advance()
	text := strings.ReplaceAll(tok.Text, "\\\r\n", " ")
	text = strings.ReplaceAll(text, "\\\n", " ")
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "#"))

	word, rest := splitWord(text)
	shape, known := ppDirectives[word]
	if !known {
		p.failAt(diag.SynBadPreprocessor, tok.Span, "unknown preprocessor directive '#"+word+"'")
		return ast.NoItemID, false
	}
	d := ast.PPDirective{Directive: p.intern(word)}

	switch shape {
	case ppDefine:
		name, value := splitMacroName(rest)
		if name == "" {
			p.failAt(diag.SynBadPreprocessor, tok.Span, "expected macro name after '#define'")
			return ast.NoItemID, false
		}
		d.Name = p.intern(name)
		if value != "" {
			d.Value = p.intern(value)
		}
	case ppInclude:
		path, system, ok := includePath(rest)
		if !ok {
			p.failAt(diag.SynBadPreprocessor, tok.Span, "expected \"file\" or <file> after '#include'")
			return ast.NoItemID, false
		}
		d.Value = p.intern(path)
		d.System = system
	case ppName:
		name, extra := splitWord(rest)
		if !isIdentText(name) || extra != "" {
			p.failAt(diag.SynBadPreprocessor, tok.Span, "expected a single identifier after '#"+word+"'")
			return ast.NoItemID, false
		}
		d.Name = p.intern(name)
	case ppValue:
		if rest == "" {
			p.failAt(diag.SynBadPreprocessor, tok.Span, "expected value after '#"+word+"'")
			return ast.NoItemID, false
		}
		d.Value = p.intern(rest)
	case ppBare:
		if rest != "" && !strings.HasPrefix(rest, "//") && !strings.HasPrefix(rest, "/*") {
			p.failAt(diag.SynBadPreprocessor, tok.Span, "unexpected text after '#"+word+"'")
			return ast.NoItemID, false
		}
	}
	return p.b.Items.NewPPDirective(tok.Span, d), true
}

func splitWord(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// splitMacroName: `MAX(a, b) ((a) > (b) ? (a) : (b))` — имя до '(' или пробела;
// список параметров функционального макроса остаётся в значении.
func splitMacroName(s string) (string, string) {
	i := 0
	for i < len(s) && isIdentByte(s[i], i == 0) {
		i++
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func includePath(s string) (path string, system, ok bool) {
	if len(s) < 2 {
		return "", false, false
	}
	switch s[0] {
	case '"':
		end := strings.IndexByte(s[1:], '"')
		if end <= 0 {
			return "", false, false
		}
		return s[1 : end+1], false, true
	case '<':
		end := strings.IndexByte(s, '>')
		if end <= 1 {
			return "", false, false
		}
		return s[1:end], true, true
	}
	return "", false, false
}

func isIdentText(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i], i == 0) {
			return false
		}
	}
	return true
}

func isIdentByte(b byte, first bool) bool {
	switch {
	case b == '_', b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return !first
	}
	return false
}

