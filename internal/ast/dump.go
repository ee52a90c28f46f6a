package ast

import (
	"fmt"
	"strings"

	"zenc/internal/source"
)

// Dump renders a file as a canonical S-expression, one item per line.
// The output depends only on tree shape and names, never on IDs or spans,
// so two parses of the same bytes dump identically.
func Dump(b *Builder, file FileID) string {
	d := dumper{b: b}
	f := b.Files.Get(file)
	if f == nil {
		return "(file)"
	}
	var sb strings.Builder
	sb.WriteString("(file")
	for _, it := range f.Items {
		sb.WriteString("\n  ")
		sb.WriteString(d.item(it))
	}
	sb.WriteString(")")
	return sb.String()
}

// DumpExpr renders a single expression.
func DumpExpr(b *Builder, id ExprID) string {
	d := dumper{b: b}
	return d.expr(id)
}

// DumpType renders a single type.
func DumpType(b *Builder, id TypeID) string {
	d := dumper{b: b}
	return d.typ(id)
}

// DumpStmt renders a single statement.
func DumpStmt(b *Builder, id StmtID) string {
	d := dumper{b: b}
	return d.stmt(id)
}

// DumpPattern renders a single pattern.
func DumpPattern(b *Builder, id PatternID) string {
	d := dumper{b: b}
	return d.pat(id)
}

// DumpItem renders a single item.
func DumpItem(b *Builder, id ItemID) string {
	d := dumper{b: b}
	return d.item(id)
}

type dumper struct {
	b *Builder
}

func (d *dumper) s(id source.StringID) string { return d.b.Str(id) }

func sexp(head string, parts ...string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(head)
	for _, p := range parts {
		if p == "" {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(p)
	}
	sb.WriteByte(')')
	return sb.String()
}

func (d *dumper) opt(id ExprID) string {
	if !id.IsValid() {
		return "_"
	}
	return d.expr(id)
}

func (d *dumper) exprs(ids []ExprID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.expr(id))
	}
	return out
}

func (d *dumper) args(args []CallArg) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a.Name != source.NoStringID {
			out = append(out, sexp("arg", d.s(a.Name), d.expr(a.Value)))
			continue
		}
		out = append(out, d.expr(a.Value))
	}
	return out
}

func (d *dumper) expr(id ExprID) string {
	e := d.b.Exprs
	x := e.Get(id)
	if x == nil {
		return "<nil>"
	}
	switch x.Kind {
	case ExprIdent:
		data, _ := e.Ident(id)
		return d.s(data.Name)
	case ExprLit:
		data, _ := e.Lit(id)
		return d.s(data.Raw)
	case ExprInterp:
		data, _ := e.Interp(id)
		parts := make([]string, 0, len(data.Parts))
		for _, p := range data.Parts {
			if p.Kind == InterpText {
				parts = append(parts, fmt.Sprintf("%q", d.s(p.Text)))
				continue
			}
			if p.Spec != source.NoStringID {
				parts = append(parts, sexp("splice", d.expr(p.Expr), fmt.Sprintf("%q", d.s(p.Spec))))
			} else {
				parts = append(parts, sexp("splice", d.expr(p.Expr)))
			}
		}
		return sexp("interp", parts...)
	case ExprBinary:
		data, _ := e.Binary(id)
		return sexp(data.Op.String(), d.expr(data.Left), d.expr(data.Right))
	case ExprUnary:
		data, _ := e.Unary(id)
		return sexp(data.Op.String(), d.expr(data.Operand))
	case ExprCall:
		data, _ := e.Call(id)
		return sexp("call", append([]string{d.expr(data.Callee)}, d.args(data.Args)...)...)
	case ExprMethodCall:
		data, _ := e.MethodCall(id)
		head := "method-call"
		if data.Safe {
			head = "safe-method-call"
		}
		parts := []string{d.expr(data.Receiver), d.s(data.Name)}
		if len(data.Generics) > 0 {
			parts = append(parts, sexp("generics", d.types(data.Generics)...))
		}
		return sexp(head, append(parts, d.args(data.Args)...)...)
	case ExprMember:
		data, _ := e.Member(id)
		head := "."
		if data.Safe {
			head = "?."
		}
		return sexp(head, d.expr(data.Target), d.s(data.Name))
	case ExprScoped:
		data, _ := e.Scoped(id)
		return sexp("::", d.expr(data.Target), d.s(data.Name))
	case ExprIndex:
		data, _ := e.Index(id)
		return sexp("index", d.expr(data.Target), d.expr(data.Index))
	case ExprRange:
		data, _ := e.Range(id)
		head := ".."
		if data.Inclusive {
			head = "..="
		}
		return sexp(head, d.opt(data.Start), d.opt(data.End))
	case ExprTernary:
		data, _ := e.Ternary(id)
		return sexp("ternary", d.expr(data.Cond), d.expr(data.Then), d.expr(data.Else))
	case ExprIf:
		data, _ := e.If(id)
		if data.Else.IsValid() {
			return sexp("if", d.expr(data.Cond), d.expr(data.Then), d.expr(data.Else))
		}
		return sexp("if", d.expr(data.Cond), d.expr(data.Then))
	case ExprMatch:
		data, _ := e.Match(id)
		parts := []string{d.expr(data.Scrutinee)}
		for _, arm := range data.Arms {
			guard := ""
			if arm.Guard.IsValid() {
				guard = sexp("guard", d.expr(arm.Guard))
			}
			parts = append(parts, sexp("arm", d.pat(arm.Pattern), guard, d.expr(arm.Body)))
		}
		return sexp("match", parts...)
	case ExprLambda:
		data, _ := e.Lambda(id)
		params := make([]string, 0, len(data.Params))
		for _, p := range data.Params {
			if p.Type.IsValid() {
				params = append(params, sexp(d.s(p.Name), d.typ(p.Type)))
			} else {
				params = append(params, d.s(p.Name))
			}
		}
		head := "lambda"
		if data.Form == LambdaFn {
			head = "fn-lambda"
		}
		ret := ""
		if data.Result.IsValid() {
			ret = sexp("->", d.typ(data.Result))
		}
		return sexp(head, sexp("params", params...), ret, d.expr(data.Body))
	case ExprTuple:
		data, _ := e.List(id)
		return sexp("tuple", d.exprs(data.Elems)...)
	case ExprArray:
		data, _ := e.List(id)
		return sexp("array", d.exprs(data.Elems)...)
	case ExprStruct:
		data, _ := e.Struct(id)
		parts := []string{d.typ(data.Type)}
		for _, f := range data.Fields {
			if f.Shorthand {
				parts = append(parts, d.s(f.Name))
				continue
			}
			parts = append(parts, sexp(d.s(f.Name), d.expr(f.Value)))
		}
		return sexp("struct-lit", parts...)
	case ExprGroup:
		data, _ := e.Group(id)
		return sexp("group", d.expr(data.Inner))
	case ExprCast:
		data, _ := e.Cast(id)
		return sexp("as", d.expr(data.Value), d.typ(data.Type))
	case ExprSizeof, ExprTypeof:
		data, _ := e.Query(id)
		operand := sexp("expr", d.opt(data.Expr))
		if data.Type.IsValid() {
			operand = sexp("type", d.typ(data.Type))
		}
		return sexp(x.Kind.String(), operand)
	case ExprEmbed:
		data, _ := e.Embed(id)
		return sexp("embed", fmt.Sprintf("%q", d.s(data.Path)))
	case ExprComptime:
		data, _ := e.Comptime(id)
		return sexp("comptime", d.expr(data.Body))
	case ExprAsm:
		data, _ := e.Asm(id)
		parts := make([]string, 0, len(data.Templates)+len(data.Operands)+1)
		if data.Volatile {
			parts = append(parts, "volatile")
		}
		for _, t := range data.Templates {
			parts = append(parts, fmt.Sprintf("%q", d.s(t)))
		}
		for _, op := range data.Operands {
			target := d.s(op.Target)
			if op.IsString {
				target = fmt.Sprintf("%q", target)
			}
			parts = append(parts, sexp(op.Kind.String(), target))
		}
		return sexp("asm", parts...)
	case ExprRaw:
		data, _ := e.Raw(id)
		return sexp("raw", fmt.Sprintf("%q", d.s(data.Body)))
	case ExprPrint:
		data, _ := e.Print(id)
		return sexp(data.Kind.String(), data.Form.String(), d.expr(data.Arg))
	case ExprInput:
		data, _ := e.Input(id)
		if data.Var.IsValid() {
			return sexp("input", d.expr(data.Prompt), d.expr(data.Var))
		}
		return sexp("input", d.expr(data.Prompt))
	case ExprMacro:
		data, _ := e.Macro(id)
		return sexp("macro", d.s(data.Name)+"!", fmt.Sprintf("%q", d.s(data.Text)))
	case ExprBlock:
		data, _ := e.Block(id)
		parts := make([]string, 0, len(data.Stmts)+1)
		for _, st := range data.Stmts {
			parts = append(parts, d.stmt(st))
		}
		if data.Tail.IsValid() {
			parts = append(parts, sexp("tail", d.expr(data.Tail)))
		}
		return sexp("block", parts...)
	}
	return sexp(x.Kind.String())
}

func (d *dumper) types(ids []TypeID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.typ(id))
	}
	return out
}

func (d *dumper) typ(id TypeID) string {
	t := d.b.Types
	ty := t.Get(id)
	if ty == nil {
		return "<nil>"
	}
	switch ty.Kind {
	case TypePrimitive:
		data, _ := t.Named(id)
		return d.s(data.Name)
	case TypeNamed:
		data, _ := t.Named(id)
		if len(data.Args) == 0 {
			return d.s(data.Name)
		}
		return sexp("generic", append([]string{d.s(data.Name)}, d.types(data.Args)...)...)
	case TypeArray:
		data, _ := t.Array(id)
		if data.Size.IsValid() {
			return sexp("array", d.typ(data.Elem), d.expr(data.Size))
		}
		return sexp("array", d.typ(data.Elem))
	case TypePointer:
		data, _ := t.Wrap(id)
		return sexp("ptr", data.Qual.String(), d.typ(data.Elem))
	case TypeOptional:
		data, _ := t.Wrap(id)
		return sexp("opt", d.typ(data.Elem))
	case TypeRef:
		data, _ := t.Wrap(id)
		mut := ""
		if data.Mut {
			mut = "mut"
		}
		return sexp("ref", mut, d.typ(data.Elem))
	case TypeFn:
		data, _ := t.Fn(id)
		ret := ""
		if data.Result.IsValid() {
			ret = sexp("->", d.typ(data.Result))
		}
		return sexp("fn-type", sexp("params", d.types(data.Params)...), ret)
	case TypeTuple:
		data, _ := t.Tuple(id)
		return sexp("tuple-type", d.types(data.Elems)...)
	}
	return "<invalid-type>"
}

func (d *dumper) path(p []source.StringID) string {
	parts := make([]string, 0, len(p))
	for _, s := range p {
		parts = append(parts, d.s(s))
	}
	return strings.Join(parts, "::")
}

func (d *dumper) pat(id PatternID) string {
	p := d.b.Patterns
	pt := p.Get(id)
	if pt == nil {
		return "<nil>"
	}
	switch pt.Kind {
	case PatIdent:
		data, _ := p.Ident(id)
		if data.Mut {
			return sexp("mut", d.s(data.Name))
		}
		return d.s(data.Name)
	case PatLit:
		data, _ := p.Lit(id)
		return d.expr(data.Value)
	case PatTuple, PatOr:
		data, _ := p.List(id)
		parts := make([]string, 0, len(data.Elems))
		for _, el := range data.Elems {
			parts = append(parts, d.pat(el))
		}
		return sexp(pt.Kind.String(), parts...)
	case PatStruct:
		data, _ := p.Struct(id)
		parts := []string{d.path(data.Path)}
		for _, f := range data.Fields {
			if f.Pattern.IsValid() {
				parts = append(parts, sexp(d.s(f.Name), d.pat(f.Pattern)))
			} else {
				parts = append(parts, d.s(f.Name))
			}
		}
		if data.Rest {
			parts = append(parts, "..")
		}
		return sexp("pat-struct", parts...)
	case PatEnum:
		data, _ := p.Enum(id)
		parts := []string{d.path(data.Path)}
		if data.HasArgs {
			args := make([]string, 0, len(data.Args))
			for _, a := range data.Args {
				args = append(args, d.pat(a))
			}
			parts = append(parts, sexp("args", args...))
		}
		return sexp("pat-enum", parts...)
	case PatRange:
		data, _ := p.Range(id)
		head := "pat-range"
		if data.Inclusive {
			head = "pat-range="
		}
		return sexp(head, d.expr(data.Start), d.expr(data.End))
	case PatWildcard, PatRest:
		return pt.Kind.String()
	}
	return "<invalid-pattern>"
}

func (d *dumper) stmt(id StmtID) string {
	s := d.b.Stmts
	st := s.Get(id)
	if st == nil {
		return "<nil>"
	}
	switch st.Kind {
	case StmtExpr:
		data, _ := s.Expr(id)
		return sexp("expr", d.expr(data.Expr))
	case StmtItem:
		data, _ := s.Item(id)
		return sexp("decl", d.item(data.Item))
	case StmtReturn:
		data, _ := s.Return(id)
		if data.Value.IsValid() {
			return sexp("return", d.expr(data.Value))
		}
		return sexp("return")
	case StmtBreak, StmtContinue:
		data, _ := s.Jump(id)
		label := ""
		if data.Label != source.NoStringID {
			label = sexp("label", d.s(data.Label))
		}
		value := ""
		if data.Value.IsValid() {
			value = d.expr(data.Value)
		}
		return sexp(st.Kind.String(), label, value)
	case StmtFor:
		data, _ := s.For(id)
		step := ""
		if data.Step.IsValid() {
			step = sexp("step", d.expr(data.Step))
		}
		return sexp("for", d.label(data.Label), d.pat(data.Pattern), d.expr(data.Iter), step, d.expr(data.Body))
	case StmtWhile, StmtRepeat, StmtGuard, StmtUnless:
		data, _ := s.Cond(id)
		return sexp(st.Kind.String(), d.label(data.Label), d.expr(data.Cond), d.expr(data.Body))
	case StmtLoop:
		data, _ := s.Loop(id)
		return sexp("loop", d.label(data.Label), d.expr(data.Body))
	case StmtDefer:
		data, _ := s.Defer(id)
		return sexp("defer", d.expr(data.Body))
	case StmtBlock:
		data, _ := s.Block(id)
		parts := make([]string, 0, len(data.Stmts))
		for _, inner := range data.Stmts {
			parts = append(parts, d.stmt(inner))
		}
		return sexp("block-stmt", parts...)
	case StmtEmpty:
		return "(empty)"
	}
	return "<invalid-stmt>"
}

func (d *dumper) label(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	return sexp("label", d.s(id))
}

func (d *dumper) attrs(attrs []Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		if len(a.Args) == 0 {
			parts = append(parts, "@"+d.s(a.Name))
			continue
		}
		parts = append(parts, sexp("@"+d.s(a.Name), d.exprs(a.Args)...))
	}
	return sexp("attrs", parts...)
}

func (d *dumper) generics(gs []GenericParam) string {
	if len(gs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(gs))
	for _, g := range gs {
		if len(g.Bounds) == 0 {
			parts = append(parts, d.s(g.Name))
			continue
		}
		parts = append(parts, sexp(d.s(g.Name), d.types(g.Bounds)...))
	}
	return sexp("generics", parts...)
}

func flags(pairs ...any) string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if on, _ := pairs[i+1].(bool); on {
			out = append(out, pairs[i].(string))
		}
	}
	return strings.Join(out, " ")
}

func (d *dumper) fields(fs []Field) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		if f.Use {
			out = append(out, sexp("use", d.typ(f.Type)))
			continue
		}
		extra := []string{d.attrs(f.Attrs), flags("pub", f.Pub), d.s(f.Name), d.typ(f.Type)}
		if f.Bits.IsValid() {
			extra = append(extra, sexp("bits", d.expr(f.Bits)))
		}
		if f.Default.IsValid() {
			extra = append(extra, sexp("=", d.expr(f.Default)))
		}
		out = append(out, sexp("field", extra...))
	}
	return out
}

func (d *dumper) items(ids []ItemID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.item(id))
	}
	return out
}

func (d *dumper) item(id ItemID) string {
	is := d.b.Items
	it := is.Get(id)
	if it == nil {
		return "<nil>"
	}
	switch it.Kind {
	case ItemBuildDirective:
		data, _ := is.BuildDirective(id)
		if data.HasValue {
			return sexp("build", d.s(data.Name), fmt.Sprintf("%q", d.s(data.Value)))
		}
		return sexp("build", d.s(data.Name))
	case ItemPPDirective:
		data, _ := is.PPDirective(id)
		parts := []string{d.s(data.Directive)}
		if data.Name != source.NoStringID {
			parts = append(parts, d.s(data.Name))
		}
		if data.Value != source.NoStringID {
			parts = append(parts, fmt.Sprintf("%q", d.s(data.Value)))
		}
		if data.System {
			parts = append(parts, "system")
		}
		return sexp("pp", parts...)
	case ItemFn:
		data, _ := is.Fn(id)
		params := make([]string, 0, len(data.Params))
		for _, p := range data.Params {
			if p.SelfParam {
				params = append(params, sexp("self", flags("mut", p.Mut)))
				continue
			}
			def := ""
			if p.Default.IsValid() {
				def = sexp("=", d.expr(p.Default))
			}
			params = append(params, sexp(d.s(p.Name), flags("mut", p.Mut), d.typ(p.Type), def))
		}
		ret := ""
		if data.Result.IsValid() {
			ret = sexp("->", d.typ(data.Result))
		}
		body := ";"
		if data.Body.IsValid() {
			body = d.expr(data.Body)
		}
		return sexp("fn", d.attrs(data.Attrs), flags("async", data.Async, "pub", data.Pub),
			d.s(data.Name), d.generics(data.Generics), sexp("params", params...), ret, body)
	case ItemStruct, ItemUnion:
		data, _ := is.Record(id)
		parts := []string{d.attrs(data.Attrs), flags("pub", data.Pub), d.s(data.Name), d.generics(data.Generics)}
		return sexp(it.Kind.String(), append(parts, d.fields(data.Fields)...)...)
	case ItemEnum:
		data, _ := is.Enum(id)
		parts := []string{d.attrs(data.Attrs), flags("pub", data.Pub), d.s(data.Name), d.generics(data.Generics)}
		for _, v := range data.Variants {
			var shape string
			switch v.Shape {
			case VariantValue:
				shape = sexp("=", d.expr(v.Value))
			case VariantTuple:
				fs := make([]string, 0, len(v.Tuple))
				for _, f := range v.Tuple {
					if f.Name != source.NoStringID {
						fs = append(fs, sexp(d.s(f.Name), d.typ(f.Type)))
					} else {
						fs = append(fs, d.typ(f.Type))
					}
				}
				shape = sexp("tuple", fs...)
			case VariantStruct:
				shape = sexp("fields", d.fields(v.Fields)...)
			}
			parts = append(parts, sexp("variant", d.attrs(v.Attrs), d.s(v.Name), shape))
		}
		return sexp("enum", parts...)
	case ItemImpl:
		data, _ := is.Impl(id)
		trait := ""
		if data.Trait.IsValid() {
			trait = sexp("for", d.typ(data.Trait))
		}
		parts := []string{d.generics(data.Generics), trait, d.typ(data.Type)}
		return sexp("impl", append(parts, d.items(data.Members)...)...)
	case ItemTrait:
		data, _ := is.Trait(id)
		bounds := ""
		if len(data.Bounds) > 0 {
			bounds = sexp("bounds", d.types(data.Bounds)...)
		}
		parts := []string{d.attrs(data.Attrs), flags("pub", data.Pub), d.s(data.Name), d.generics(data.Generics), bounds}
		return sexp("trait", append(parts, d.items(data.Members)...)...)
	case ItemVar:
		data, _ := is.Var(id)
		name := d.s(data.Name)
		if data.Pattern.IsValid() {
			name = d.pat(data.Pattern)
		}
		typ, val := "", ""
		if data.Type.IsValid() {
			typ = sexp(":", d.typ(data.Type))
		}
		if data.Value.IsValid() {
			val = sexp("=", d.expr(data.Value))
		}
		return sexp("var", d.attrs(data.Attrs), flags("autofree", data.Autofree, "mut", data.Mut), name, typ, val)
	case ItemConst:
		data, _ := is.Const(id)
		typ := ""
		if data.Type.IsValid() {
			typ = sexp(":", d.typ(data.Type))
		}
		return sexp("const", d.attrs(data.Attrs), d.s(data.Name), typ, sexp("=", d.expr(data.Value)))
	case ItemImport:
		data, _ := is.Import(id)
		alias := ""
		if data.Alias != source.NoStringID {
			alias = sexp("as", d.s(data.Alias))
		}
		return sexp("import", d.path(data.Path), alias)
	case ItemPluginImport:
		data, _ := is.PluginImport(id)
		return sexp("import-plugin", fmt.Sprintf("%q", d.s(data.Name)))
	case ItemComptime:
		data, _ := is.Comptime(id)
		return sexp("comptime", d.expr(data.Body))
	case ItemStmt:
		data, _ := is.Stmt(id)
		return d.stmt(data.Stmt)
	}
	return "<invalid-item>"
}
