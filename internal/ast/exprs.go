package ast

import (
	"slices"

	"zenc/internal/source"
)

// Exprs manages allocation of expressions and their per-kind payloads.
type Exprs struct {
	Arena       *Arena[Expr]
	Idents      *Arena[ExprIdentData]
	Literals    *Arena[ExprLitData]
	Interps     *Arena[ExprInterpData]
	Binaries    *Arena[ExprBinaryData]
	Unaries     *Arena[ExprUnaryData]
	Calls       *Arena[ExprCallData]
	MethodCalls *Arena[ExprMethodCallData]
	Members     *Arena[ExprMemberData]
	Scopeds     *Arena[ExprScopedData]
	Indices     *Arena[ExprIndexData]
	Ranges      *Arena[ExprRangeData]
	Ternaries   *Arena[ExprTernaryData]
	Ifs         *Arena[ExprIfData]
	Matches     *Arena[ExprMatchData]
	Lambdas     *Arena[ExprLambdaData]
	Lists       *Arena[ExprListData] // tuple и array
	Structs     *Arena[ExprStructData]
	Groups      *Arena[ExprGroupData]
	Casts       *Arena[ExprCastData]
	Queries     *Arena[ExprQueryData] // sizeof и typeof
	Embeds      *Arena[ExprEmbedData]
	Comptimes   *Arena[ExprComptimeData]
	Asms        *Arena[ExprAsmData]
	Raws        *Arena[ExprRawData]
	Prints      *Arena[ExprPrintData]
	Inputs      *Arena[ExprInputData]
	Macros      *Arena[ExprMacroData]
	Blocks      *Arena[ExprBlockData]
}

// NewExprs creates per-kind arenas; rarely used kinds start small.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/16 + 1
	return &Exprs{
		Arena:       NewArena[Expr](capHint),
		Idents:      NewArena[ExprIdentData](capHint),
		Literals:    NewArena[ExprLitData](capHint),
		Interps:     NewArena[ExprInterpData](small),
		Binaries:    NewArena[ExprBinaryData](capHint),
		Unaries:     NewArena[ExprUnaryData](small),
		Calls:       NewArena[ExprCallData](small),
		MethodCalls: NewArena[ExprMethodCallData](small),
		Members:     NewArena[ExprMemberData](small),
		Scopeds:     NewArena[ExprScopedData](small),
		Indices:     NewArena[ExprIndexData](small),
		Ranges:      NewArena[ExprRangeData](small),
		Ternaries:   NewArena[ExprTernaryData](small),
		Ifs:         NewArena[ExprIfData](small),
		Matches:     NewArena[ExprMatchData](small),
		Lambdas:     NewArena[ExprLambdaData](small),
		Lists:       NewArena[ExprListData](small),
		Structs:     NewArena[ExprStructData](small),
		Groups:      NewArena[ExprGroupData](small),
		Casts:       NewArena[ExprCastData](small),
		Queries:     NewArena[ExprQueryData](small),
		Embeds:      NewArena[ExprEmbedData](small),
		Comptimes:   NewArena[ExprComptimeData](small),
		Asms:        NewArena[ExprAsmData](small),
		Raws:        NewArena[ExprRawData](small),
		Prints:      NewArena[ExprPrintData](small),
		Inputs:      NewArena[ExprInputData](small),
		Macros:      NewArena[ExprMacroData](small),
		Blocks:      NewArena[ExprBlockData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Kind returns ExprInvalid for absent IDs.
func (e *Exprs) Kind(id ExprID) ExprKind {
	if x := e.Get(id); x != nil {
		return x.Kind
	}
	return ExprInvalid
}

func payloadOf[T any](e *Exprs, arena *Arena[T], id ExprID, kinds ...ExprKind) (*T, bool) {
	expr := e.Get(id)
	if expr == nil || !slices.Contains(kinds, expr.Kind) {
		return nil, false
	}
	return arena.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(ExprIdentData{Name: name}))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	return payloadOf(e, e.Idents, id, ExprIdent)
}

func (e *Exprs) NewLit(span source.Span, kind LitKind, raw, value source.StringID) ExprID {
	return e.new(ExprLit, span, e.Literals.Allocate(ExprLitData{Kind: kind, Raw: raw, Value: value}))
}

func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	return payloadOf(e, e.Literals, id, ExprLit)
}

func (e *Exprs) NewInterp(span source.Span, parts []InterpPart) ExprID {
	return e.new(ExprInterp, span, e.Interps.Allocate(ExprInterpData{Parts: slices.Clone(parts)}))
}

func (e *Exprs) Interp(id ExprID) (*ExprInterpData, bool) {
	return payloadOf(e, e.Interps, id, ExprInterp)
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	return payloadOf(e, e.Binaries, id, ExprBinary)
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	return payloadOf(e, e.Unaries, id, ExprUnary)
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []CallArg) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Callee: callee, Args: slices.Clone(args)}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	return payloadOf(e, e.Calls, id, ExprCall)
}

func (e *Exprs) NewMethodCall(span source.Span, data ExprMethodCallData) ExprID {
	data.Generics = slices.Clone(data.Generics)
	data.Args = slices.Clone(data.Args)
	return e.new(ExprMethodCall, span, e.MethodCalls.Allocate(data))
}

func (e *Exprs) MethodCall(id ExprID) (*ExprMethodCallData, bool) {
	return payloadOf(e, e.MethodCalls, id, ExprMethodCall)
}

func (e *Exprs) NewMember(span source.Span, data ExprMemberData) ExprID {
	return e.new(ExprMember, span, e.Members.Allocate(data))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	return payloadOf(e, e.Members, id, ExprMember)
}

func (e *Exprs) NewScoped(span source.Span, target ExprID, name source.StringID) ExprID {
	return e.new(ExprScoped, span, e.Scopeds.Allocate(ExprScopedData{Target: target, Name: name}))
}

func (e *Exprs) Scoped(id ExprID) (*ExprScopedData, bool) {
	return payloadOf(e, e.Scopeds, id, ExprScoped)
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(ExprIndexData{Target: target, Index: index}))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	return payloadOf(e, e.Indices, id, ExprIndex)
}

func (e *Exprs) NewRange(span source.Span, start, end ExprID, inclusive bool) ExprID {
	return e.new(ExprRange, span, e.Ranges.Allocate(ExprRangeData{Start: start, End: end, Inclusive: inclusive}))
}

func (e *Exprs) Range(id ExprID) (*ExprRangeData, bool) {
	return payloadOf(e, e.Ranges, id, ExprRange)
}

func (e *Exprs) NewTernary(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprTernary, span, e.Ternaries.Allocate(ExprTernaryData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) Ternary(id ExprID) (*ExprTernaryData, bool) {
	return payloadOf(e, e.Ternaries, id, ExprTernary)
}

func (e *Exprs) NewIf(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprIf, span, e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	return payloadOf(e, e.Ifs, id, ExprIf)
}

func (e *Exprs) NewMatch(span source.Span, scrutinee ExprID, arms []MatchArm) ExprID {
	return e.new(ExprMatch, span, e.Matches.Allocate(ExprMatchData{Scrutinee: scrutinee, Arms: slices.Clone(arms)}))
}

func (e *Exprs) Match(id ExprID) (*ExprMatchData, bool) {
	return payloadOf(e, e.Matches, id, ExprMatch)
}

func (e *Exprs) NewLambda(span source.Span, data ExprLambdaData) ExprID {
	data.Params = slices.Clone(data.Params)
	return e.new(ExprLambda, span, e.Lambdas.Allocate(data))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	return payloadOf(e, e.Lambdas, id, ExprLambda)
}

func (e *Exprs) NewTuple(span source.Span, elems []ExprID) ExprID {
	return e.new(ExprTuple, span, e.Lists.Allocate(ExprListData{Elems: slices.Clone(elems)}))
}

func (e *Exprs) NewArray(span source.Span, elems []ExprID) ExprID {
	return e.new(ExprArray, span, e.Lists.Allocate(ExprListData{Elems: slices.Clone(elems)}))
}

// List returns elements of a tuple or array expression.
func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	return payloadOf(e, e.Lists, id, ExprTuple, ExprArray)
}

func (e *Exprs) NewStruct(span source.Span, typ TypeID, fields []FieldInit) ExprID {
	return e.new(ExprStruct, span, e.Structs.Allocate(ExprStructData{Type: typ, Fields: slices.Clone(fields)}))
}

func (e *Exprs) Struct(id ExprID) (*ExprStructData, bool) {
	return payloadOf(e, e.Structs, id, ExprStruct)
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	return e.new(ExprGroup, span, e.Groups.Allocate(ExprGroupData{Inner: inner}))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	return payloadOf(e, e.Groups, id, ExprGroup)
}

func (e *Exprs) NewCast(span source.Span, value ExprID, typ TypeID) ExprID {
	return e.new(ExprCast, span, e.Casts.Allocate(ExprCastData{Value: value, Type: typ}))
}

func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	return payloadOf(e, e.Casts, id, ExprCast)
}

// NewQuery builds sizeof (kind ExprSizeof) or typeof (ExprTypeof).
func (e *Exprs) NewQuery(span source.Span, kind ExprKind, data ExprQueryData) ExprID {
	return e.new(kind, span, e.Queries.Allocate(data))
}

func (e *Exprs) Query(id ExprID) (*ExprQueryData, bool) {
	return payloadOf(e, e.Queries, id, ExprSizeof, ExprTypeof)
}

func (e *Exprs) NewEmbed(span source.Span, path source.StringID) ExprID {
	return e.new(ExprEmbed, span, e.Embeds.Allocate(ExprEmbedData{Path: path}))
}

func (e *Exprs) Embed(id ExprID) (*ExprEmbedData, bool) {
	return payloadOf(e, e.Embeds, id, ExprEmbed)
}

func (e *Exprs) NewComptime(span source.Span, body ExprID) ExprID {
	return e.new(ExprComptime, span, e.Comptimes.Allocate(ExprComptimeData{Body: body}))
}

func (e *Exprs) Comptime(id ExprID) (*ExprComptimeData, bool) {
	return payloadOf(e, e.Comptimes, id, ExprComptime)
}

func (e *Exprs) NewAsm(span source.Span, data ExprAsmData) ExprID {
	data.Templates = slices.Clone(data.Templates)
	data.Operands = slices.Clone(data.Operands)
	return e.new(ExprAsm, span, e.Asms.Allocate(data))
}

func (e *Exprs) Asm(id ExprID) (*ExprAsmData, bool) {
	return payloadOf(e, e.Asms, id, ExprAsm)
}

func (e *Exprs) NewRaw(span source.Span, body source.StringID) ExprID {
	return e.new(ExprRaw, span, e.Raws.Allocate(ExprRawData{Body: body}))
}

func (e *Exprs) Raw(id ExprID) (*ExprRawData, bool) {
	return payloadOf(e, e.Raws, id, ExprRaw)
}

func (e *Exprs) NewPrint(span source.Span, kind PrintKind, form PrintForm, arg ExprID) ExprID {
	return e.new(ExprPrint, span, e.Prints.Allocate(ExprPrintData{Kind: kind, Form: form, Arg: arg}))
}

func (e *Exprs) Print(id ExprID) (*ExprPrintData, bool) {
	return payloadOf(e, e.Prints, id, ExprPrint)
}

func (e *Exprs) NewInput(span source.Span, prompt, target ExprID) ExprID {
	return e.new(ExprInput, span, e.Inputs.Allocate(ExprInputData{Prompt: prompt, Var: target}))
}

func (e *Exprs) Input(id ExprID) (*ExprInputData, bool) {
	return payloadOf(e, e.Inputs, id, ExprInput)
}

func (e *Exprs) NewMacro(span source.Span, data ExprMacroData) ExprID {
	return e.new(ExprMacro, span, e.Macros.Allocate(data))
}

func (e *Exprs) Macro(id ExprID) (*ExprMacroData, bool) {
	return payloadOf(e, e.Macros, id, ExprMacro)
}

func (e *Exprs) NewBlock(span source.Span, stmts []StmtID, tail ExprID) ExprID {
	return e.new(ExprBlock, span, e.Blocks.Allocate(ExprBlockData{Stmts: slices.Clone(stmts), Tail: tail}))
}

func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	return payloadOf(e, e.Blocks, id, ExprBlock)
}

func (e *Exprs) arenas() []arena {
	return []arena{
		e.Arena,
		e.Idents,
		e.Literals,
		e.Interps,
		e.Binaries,
		e.Unaries,
		e.Calls,
		e.MethodCalls,
		e.Members,
		e.Scopeds,
		e.Indices,
		e.Ranges,
		e.Ternaries,
		e.Ifs,
		e.Matches,
		e.Lambdas,
		e.Lists,
		e.Structs,
		e.Groups,
		e.Casts,
		e.Queries,
		e.Embeds,
		e.Comptimes,
		e.Asms,
		e.Raws,
		e.Prints,
		e.Inputs,
		e.Macros,
		e.Blocks,
	}
}
