package ast

import (
	"slices"

	"zenc/internal/source"
)

type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtExpr
	StmtItem
	StmtReturn
	StmtBreak
	StmtContinue
	StmtFor
	StmtWhile
	StmtLoop
	StmtRepeat
	StmtGuard
	StmtUnless
	StmtDefer
	StmtBlock
	StmtEmpty
)

var stmtKindNames = [...]string{
	StmtInvalid: "invalid", StmtExpr: "expr-stmt", StmtItem: "decl", StmtReturn: "return",
	StmtBreak: "break", StmtContinue: "continue", StmtFor: "for", StmtWhile: "while",
	StmtLoop: "loop", StmtRepeat: "repeat", StmtGuard: "guard", StmtUnless: "unless",
	StmtDefer: "defer", StmtBlock: "block-stmt", StmtEmpty: "empty",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "stmt?"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// StmtExprData: Semi=false у блочных выражений (if, match, ...) без ';'.
type StmtExprData struct {
	Expr ExprID
	Semi bool
}

type StmtItemData struct {
	Item ItemID
}

type StmtReturnData struct {
	Value ExprID
}

// StmtJumpData — break и continue; Value только у break.
type StmtJumpData struct {
	Label source.StringID
	Value ExprID
}

type StmtForData struct {
	Label   source.StringID
	Pattern PatternID
	Iter    ExprID
	Step    ExprID
	Body    ExprID
}

// StmtCondData — while, guard, unless, repeat. Для repeat Cond это счётчик.
type StmtCondData struct {
	Label source.StringID
	Cond  ExprID
	Body  ExprID
}

type StmtLoopData struct {
	Label source.StringID
	Body  ExprID
}

// StmtDeferData: Body — блок или выражение.
type StmtDeferData struct {
	Body ExprID
}

type StmtBlockData struct {
	Stmts []StmtID
}

type Stmts struct {
	Arena   *Arena[Stmt]
	Exprs   *Arena[StmtExprData]
	Items   *Arena[StmtItemData]
	Returns *Arena[StmtReturnData]
	Jumps   *Arena[StmtJumpData]
	Fors    *Arena[StmtForData]
	Conds   *Arena[StmtCondData]
	Loops   *Arena[StmtLoopData]
	Defers  *Arena[StmtDeferData]
	Blocks  *Arena[StmtBlockData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 7
	}
	small := capHint/8 + 1
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Exprs:   NewArena[StmtExprData](capHint),
		Items:   NewArena[StmtItemData](small),
		Returns: NewArena[StmtReturnData](small),
		Jumps:   NewArena[StmtJumpData](small),
		Fors:    NewArena[StmtForData](small),
		Conds:   NewArena[StmtCondData](small),
		Loops:   NewArena[StmtLoopData](small),
		Defers:  NewArena[StmtDeferData](small),
		Blocks:  NewArena[StmtBlockData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func stmtPayload[T any](s *Stmts, arena *Arena[T], id StmtID, kinds ...StmtKind) (*T, bool) {
	st := s.Get(id)
	if st == nil || !slices.Contains(kinds, st.Kind) {
		return nil, false
	}
	return arena.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID, semi bool) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Expr: expr, Semi: semi}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	return stmtPayload(s, s.Exprs, id, StmtExpr)
}

func (s *Stmts) NewItem(span source.Span, item ItemID) StmtID {
	return s.new(StmtItem, span, s.Items.Allocate(StmtItemData{Item: item}))
}

func (s *Stmts) Item(id StmtID) (*StmtItemData, bool) {
	return stmtPayload(s, s.Items, id, StmtItem)
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(StmtReturnData{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	return stmtPayload(s, s.Returns, id, StmtReturn)
}

// NewJump builds break or continue.
func (s *Stmts) NewJump(span source.Span, kind StmtKind, label source.StringID, value ExprID) StmtID {
	return s.new(kind, span, s.Jumps.Allocate(StmtJumpData{Label: label, Value: value}))
}

func (s *Stmts) Jump(id StmtID) (*StmtJumpData, bool) {
	return stmtPayload(s, s.Jumps, id, StmtBreak, StmtContinue)
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	return stmtPayload(s, s.Fors, id, StmtFor)
}

// NewCond builds while, repeat, guard or unless.
func (s *Stmts) NewCond(span source.Span, kind StmtKind, label source.StringID, cond, body ExprID) StmtID {
	return s.new(kind, span, s.Conds.Allocate(StmtCondData{Label: label, Cond: cond, Body: body}))
}

func (s *Stmts) Cond(id StmtID) (*StmtCondData, bool) {
	return stmtPayload(s, s.Conds, id, StmtWhile, StmtRepeat, StmtGuard, StmtUnless)
}

func (s *Stmts) NewLoop(span source.Span, label source.StringID, body ExprID) StmtID {
	return s.new(StmtLoop, span, s.Loops.Allocate(StmtLoopData{Label: label, Body: body}))
}

func (s *Stmts) Loop(id StmtID) (*StmtLoopData, bool) {
	return stmtPayload(s, s.Loops, id, StmtLoop)
}

func (s *Stmts) NewDefer(span source.Span, body ExprID) StmtID {
	return s.new(StmtDefer, span, s.Defers.Allocate(StmtDeferData{Body: body}))
}

func (s *Stmts) Defer(id StmtID) (*StmtDeferData, bool) {
	return stmtPayload(s, s.Defers, id, StmtDefer)
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(StmtBlockData{Stmts: slices.Clone(stmts)}))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	return stmtPayload(s, s.Blocks, id, StmtBlock)
}

func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, 0)
}

func (s *Stmts) arenas() []arena {
	return []arena{
		s.Arena,
		s.Exprs,
		s.Items,
		s.Returns,
		s.Jumps,
		s.Fors,
		s.Conds,
		s.Loops,
		s.Defers,
		s.Blocks,
	}
}
