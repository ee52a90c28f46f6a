package ast

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"zenc/internal/source"
)

// Format prints an expression back as Zen-C source. Parentheses come only
// from Group nodes, so Format(parse(x)) re-parses to the same tree.
func Format(b *Builder, id ExprID) string {
	p := printer{b: b}
	p.expr(id)
	return p.sb.String()
}

// FormatType prints a type in source form.
func FormatType(b *Builder, id TypeID) string {
	p := printer{b: b}
	p.typ(id)
	return p.sb.String()
}

// FormatPattern prints a pattern in source form.
func FormatPattern(b *Builder, id PatternID) string {
	p := printer{b: b}
	p.pat(id)
	return p.sb.String()
}

type printer struct {
	b  *Builder
	sb strings.Builder
}

func (p *printer) w(s string)                { p.sb.WriteString(s) }
func (p *printer) str(id source.StringID)    { p.sb.WriteString(p.b.Str(id)) }
func (p *printer) quoted(id source.StringID) { p.w(strconv.Quote(p.b.Str(id))) }

func (p *printer) sep(i int, s string) {
	if i > 0 {
		p.w(s)
	}
}

func (p *printer) args(args []CallArg) {
	p.w("(")
	for i, a := range args {
		p.sep(i, ", ")
		if a.Name != source.NoStringID {
			p.str(a.Name)
			p.w(": ")
		}
		p.expr(a.Value)
	}
	p.w(")")
}

func (p *printer) list(open, close string, elems []ExprID) {
	p.w(open)
	for i, el := range elems {
		p.sep(i, ", ")
		p.expr(el)
	}
	p.w(close)
}

func (p *printer) expr(id ExprID) {
	e := p.b.Exprs
	x := e.Get(id)
	if x == nil {
		p.w("<?>")
		return
	}
	switch x.Kind {
	case ExprIdent:
		data, _ := e.Ident(id)
		p.str(data.Name)
	case ExprLit:
		data, _ := e.Lit(id)
		p.str(data.Raw)
	case ExprInterp:
		data, _ := e.Interp(id)
		p.w(`"`)
		for _, part := range data.Parts {
			if part.Kind == InterpText {
				p.w(EscapeStringText(p.b.Str(part.Text)))
				continue
			}
			p.w("{")
			p.expr(part.Expr)
			if part.Spec != source.NoStringID {
				p.w(":")
				p.str(part.Spec)
			}
			p.w("}")
		}
		p.w(`"`)
	case ExprBinary:
		data, _ := e.Binary(id)
		p.expr(data.Left)
		p.w(" " + data.Op.String() + " ")
		p.expr(data.Right)
	case ExprUnary:
		data, _ := e.Unary(id)
		switch data.Op {
		case UnaryTry:
			p.expr(data.Operand)
			p.w("?")
		case UnaryAwait:
			p.w("await ")
			p.expr(data.Operand)
		case UnaryAddrOfMut:
			p.w("&mut ")
			p.expr(data.Operand)
		default:
			p.w(data.Op.String())
			p.expr(data.Operand)
		}
	case ExprCall:
		data, _ := e.Call(id)
		p.expr(data.Callee)
		p.args(data.Args)
	case ExprMethodCall:
		data, _ := e.MethodCall(id)
		p.expr(data.Receiver)
		if data.Safe {
			p.w("?.")
		} else {
			p.w(".")
		}
		p.str(data.Name)
		if len(data.Generics) > 0 {
			p.typeArgs(data.Generics)
		}
		p.args(data.Args)
	case ExprMember:
		data, _ := e.Member(id)
		p.expr(data.Target)
		if data.Safe {
			p.w("?.")
		} else {
			p.w(".")
		}
		p.str(data.Name)
	case ExprScoped:
		data, _ := e.Scoped(id)
		p.expr(data.Target)
		p.w("::")
		p.str(data.Name)
	case ExprIndex:
		data, _ := e.Index(id)
		p.expr(data.Target)
		p.w("[")
		p.expr(data.Index)
		p.w("]")
	case ExprRange:
		data, _ := e.Range(id)
		if data.Start.IsValid() {
			p.expr(data.Start)
		}
		if data.Inclusive {
			p.w("..=")
		} else {
			p.w("..")
		}
		if data.End.IsValid() {
			p.expr(data.End)
		}
	case ExprTernary:
		data, _ := e.Ternary(id)
		p.w("if ")
		p.expr(data.Cond)
		p.w(" ? ")
		p.expr(data.Then)
		p.w(" : ")
		p.expr(data.Else)
	case ExprIf:
		data, _ := e.If(id)
		p.w("if ")
		p.expr(data.Cond)
		p.w(" ")
		p.expr(data.Then)
		if data.Else.IsValid() {
			p.w(" else ")
			p.expr(data.Else)
		}
	case ExprMatch:
		data, _ := e.Match(id)
		p.w("match ")
		p.expr(data.Scrutinee)
		p.w(" {")
		for i, arm := range data.Arms {
			p.sep(i, ",")
			p.w(" ")
			p.pat(arm.Pattern)
			if arm.Guard.IsValid() {
				p.w(" if ")
				p.expr(arm.Guard)
			}
			p.w(" => ")
			p.expr(arm.Body)
		}
		p.w(" }")
	case ExprLambda:
		data, _ := e.Lambda(id)
		p.lambda(data)
	case ExprTuple:
		data, _ := e.List(id)
		p.list("(", ")", data.Elems)
	case ExprArray:
		data, _ := e.List(id)
		p.list("{", "}", data.Elems)
	case ExprStruct:
		data, _ := e.Struct(id)
		p.typ(data.Type)
		p.w(" {")
		for i, f := range data.Fields {
			p.sep(i, ",")
			p.w(" ")
			p.str(f.Name)
			if !f.Shorthand {
				p.w(": ")
				p.expr(f.Value)
			}
		}
		p.w(" }")
	case ExprGroup:
		data, _ := e.Group(id)
		p.w("(")
		p.expr(data.Inner)
		p.w(")")
	case ExprCast:
		data, _ := e.Cast(id)
		p.expr(data.Value)
		p.w(" as ")
		p.typ(data.Type)
	case ExprSizeof, ExprTypeof:
		data, _ := e.Query(id)
		p.w(x.Kind.String() + "(")
		if data.Type.IsValid() {
			p.typ(data.Type)
		} else {
			p.expr(data.Expr)
		}
		p.w(")")
	case ExprEmbed:
		data, _ := e.Embed(id)
		p.w("embed ")
		p.quoted(data.Path)
	case ExprComptime:
		data, _ := e.Comptime(id)
		p.w("comptime ")
		p.expr(data.Body)
	case ExprAsm:
		data, _ := e.Asm(id)
		p.asm(data)
	case ExprRaw:
		data, _ := e.Raw(id)
		p.w("raw {")
		p.str(data.Body)
		p.w("}")
	case ExprPrint:
		data, _ := e.Print(id)
		p.print(data)
	case ExprInput:
		data, _ := e.Input(id)
		p.w("? ")
		p.expr(data.Prompt)
		if data.Var.IsValid() {
			p.w("(")
			p.expr(data.Var)
			p.w(")")
		}
	case ExprMacro:
		data, _ := e.Macro(id)
		p.str(data.Name)
		p.w("!")
		p.str(data.Text)
	case ExprBlock:
		data, _ := e.Block(id)
		p.w("{")
		for _, st := range data.Stmts {
			p.w(" ")
			p.stmt(st)
		}
		if data.Tail.IsValid() {
			p.w(" ")
			p.expr(data.Tail)
		}
		p.w(" }")
	default:
		p.w("<invalid>")
	}
}

func (p *printer) lambda(data *ExprLambdaData) {
	if data.Async {
		p.w("async ")
	}
	if data.Form == LambdaFn {
		p.w("fn")
	}
	single := data.Form == LambdaArrow && len(data.Params) == 1 && !data.Params[0].Type.IsValid() && !data.Params[0].Mut
	if !single {
		p.w("(")
	}
	for i, prm := range data.Params {
		p.sep(i, ", ")
		if prm.Mut {
			p.w("mut ")
		}
		p.str(prm.Name)
		if prm.Type.IsValid() {
			p.w(": ")
			p.typ(prm.Type)
		}
	}
	if !single {
		p.w(")")
	}
	if data.Form == LambdaArrow {
		p.w(" -> ")
		p.expr(data.Body)
		return
	}
	if data.Result.IsValid() {
		p.w(" -> ")
		p.typ(data.Result)
	}
	p.w(" ")
	p.expr(data.Body)
}

func (p *printer) asm(data *ExprAsmData) {
	p.w("asm ")
	if data.Volatile {
		p.w("volatile ")
	}
	p.w("{")
	for _, t := range data.Templates {
		p.w(" ")
		p.quoted(t)
	}
	for _, op := range data.Operands {
		p.w(" : " + op.Kind.String() + "(")
		if op.IsString {
			p.quoted(op.Target)
		} else {
			p.str(op.Target)
		}
		p.w(")")
	}
	p.w(" }")
}

func (p *printer) print(data *ExprPrintData) {
	switch data.Form {
	case PrintFormShorthand:
		if data.Kind == PrintEprint || data.Kind == PrintEprintln {
			p.w("!")
		}
		p.expr(data.Arg)
		if data.Kind == PrintPrint || data.Kind == PrintEprint {
			p.w("..")
		}
	case PrintFormBare:
		p.w(data.Kind.String() + " ")
		p.expr(data.Arg)
	default:
		p.w(data.Kind.String() + "(")
		p.expr(data.Arg)
		p.w(")")
	}
}

func (p *printer) stmt(id StmtID) {
	s := p.b.Stmts
	st := s.Get(id)
	if st == nil {
		p.w("<?>")
		return
	}
	switch st.Kind {
	case StmtExpr:
		data, _ := s.Expr(id)
		p.expr(data.Expr)
		if data.Semi {
			p.w(";")
		}
	case StmtReturn:
		data, _ := s.Return(id)
		p.w("return")
		if data.Value.IsValid() {
			p.w(" ")
			p.expr(data.Value)
		}
		p.w(";")
	case StmtBreak, StmtContinue:
		data, _ := s.Jump(id)
		p.w(st.Kind.String())
		if data.Label != source.NoStringID {
			p.w(" ")
			p.str(data.Label)
		}
		if data.Value.IsValid() {
			p.w(" ")
			p.expr(data.Value)
		}
		p.w(";")
	case StmtEmpty:
		p.w(";")
	default:
		// Остальные операторы в выражениях встречаются только внутри блоков.
		p.w(DumpStmt(p.b, id))
	}
}

func (p *printer) typeArgs(args []TypeID) {
	p.w("<")
	for i, a := range args {
		p.sep(i, ", ")
		p.typ(a)
	}
	p.w(">")
}

func (p *printer) typ(id TypeID) {
	t := p.b.Types
	ty := t.Get(id)
	if ty == nil {
		p.w("<?>")
		return
	}
	switch ty.Kind {
	case TypePrimitive, TypeNamed:
		data, _ := t.Named(id)
		p.str(data.Name)
		if len(data.Args) > 0 {
			p.typeArgs(data.Args)
		}
	case TypeArray:
		data, _ := t.Array(id)
		p.typ(data.Elem)
		p.w("[")
		if data.Size.IsValid() {
			p.expr(data.Size)
		}
		p.w("]")
	case TypePointer:
		data, _ := t.Wrap(id)
		p.w("*")
		if data.Qual != PtrPlain {
			p.w(data.Qual.String() + " ")
		}
		p.typ(data.Elem)
	case TypeOptional:
		data, _ := t.Wrap(id)
		p.w("?")
		p.typ(data.Elem)
	case TypeRef:
		data, _ := t.Wrap(id)
		p.w("&")
		if data.Mut {
			p.w("mut ")
		}
		p.typ(data.Elem)
	case TypeFn:
		data, _ := t.Fn(id)
		p.w("fn(")
		for i, prm := range data.Params {
			p.sep(i, ", ")
			p.typ(prm)
		}
		p.w(")")
		if data.Result.IsValid() {
			p.w(" -> ")
			p.typ(data.Result)
		}
	case TypeTuple:
		data, _ := t.Tuple(id)
		p.w("(")
		for i, el := range data.Elems {
			p.sep(i, ", ")
			p.typ(el)
		}
		p.w(")")
	}
}

func (p *printer) path(parts []source.StringID) {
	for i, s := range parts {
		p.sep(i, "::")
		p.str(s)
	}
}

func (p *printer) pat(id PatternID) {
	ps := p.b.Patterns
	pt := ps.Get(id)
	if pt == nil {
		p.w("<?>")
		return
	}
	switch pt.Kind {
	case PatIdent:
		data, _ := ps.Ident(id)
		if data.Mut {
			p.w("mut ")
		}
		p.str(data.Name)
	case PatLit:
		data, _ := ps.Lit(id)
		p.expr(data.Value)
	case PatTuple:
		data, _ := ps.List(id)
		p.w("(")
		for i, el := range data.Elems {
			p.sep(i, ", ")
			p.pat(el)
		}
		p.w(")")
	case PatOr:
		data, _ := ps.List(id)
		for i, el := range data.Elems {
			p.sep(i, " | ")
			p.pat(el)
		}
	case PatStruct:
		data, _ := ps.Struct(id)
		p.path(data.Path)
		p.w(" {")
		n := 0
		for _, f := range data.Fields {
			p.sep(n, ",")
			n++
			p.w(" ")
			p.str(f.Name)
			if f.Pattern.IsValid() {
				p.w(": ")
				p.pat(f.Pattern)
			}
		}
		if data.Rest {
			p.sep(n, ",")
			p.w(" ..")
		}
		p.w(" }")
	case PatEnum:
		data, _ := ps.Enum(id)
		p.path(data.Path)
		if data.HasArgs {
			p.w("(")
			for i, a := range data.Args {
				p.sep(i, ", ")
				p.pat(a)
			}
			p.w(")")
		}
	case PatRange:
		data, _ := ps.Range(id)
		p.expr(data.Start)
		if data.Inclusive {
			p.w("..=")
		} else {
			p.w("..")
		}
		p.expr(data.End)
	case PatWildcard:
		p.w("_")
	case PatRest:
		p.w("..")
	}
}

// EscapeStringText escapes decoded string text so it can be placed back
// between double quotes; braces are escaped so they do not open a splice.
func EscapeStringText(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			sb.WriteString(`\x`)
			sb.WriteString(hex2(s[i]))
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '"':
			sb.WriteString(`\"`)
		case r == '{':
			sb.WriteString(`\{`)
		case r == '}':
			sb.WriteString(`\}`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			sb.WriteString(`\x`)
			sb.WriteString(hex2(byte(r)))
		default:
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	return sb.String()
}

func hex2(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0xf]})
}
