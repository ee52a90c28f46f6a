package ast

import (
	"slices"

	"zenc/internal/source"
)

type PatternKind uint8

const (
	PatInvalid PatternKind = iota
	PatIdent
	PatLit
	PatTuple
	PatStruct
	PatEnum
	PatRange
	PatOr
	PatWildcard
	PatRest
)

func (k PatternKind) String() string {
	switch k {
	case PatIdent:
		return "pat-ident"
	case PatLit:
		return "pat-lit"
	case PatTuple:
		return "pat-tuple"
	case PatStruct:
		return "pat-struct"
	case PatEnum:
		return "pat-enum"
	case PatRange:
		return "pat-range"
	case PatOr:
		return "pat-or"
	case PatWildcard:
		return "_"
	case PatRest:
		return ".."
	}
	return "pat-invalid"
}

type Pattern struct {
	Kind    PatternKind
	Span    source.Span
	Payload PayloadID
}

type PatIdentData struct {
	Name source.StringID
	Mut  bool
}

// PatLitData: Value — литерал, возможно под унарным минусом.
type PatLitData struct {
	Value ExprID
}

// PatListData — элементы tuple или альтернативы or-паттерна (плоский список).
type PatListData struct {
	Elems []PatternID
}

type PatField struct {
	Name    source.StringID
	Pattern PatternID // NoPatternID для сокращения { x }
	Span    source.Span
}

type PatStructData struct {
	Path   []source.StringID
	Fields []PatField
	Rest   bool
}

type PatEnumData struct {
	Path    []source.StringID
	Args    []PatternID
	HasArgs bool
}

type PatRangeData struct {
	Start     ExprID
	End       ExprID
	Inclusive bool
}

type Patterns struct {
	Arena   *Arena[Pattern]
	Idents  *Arena[PatIdentData]
	Lits    *Arena[PatLitData]
	Lists   *Arena[PatListData]
	Structs *Arena[PatStructData]
	Enums   *Arena[PatEnumData]
	Ranges  *Arena[PatRangeData]
}

func NewPatterns(capHint uint) *Patterns {
	if capHint == 0 {
		capHint = 1 << 4
	}
	return &Patterns{
		Arena:   NewArena[Pattern](capHint),
		Idents:  NewArena[PatIdentData](capHint),
		Lits:    NewArena[PatLitData](capHint),
		Lists:   NewArena[PatListData](capHint),
		Structs: NewArena[PatStructData](capHint),
		Enums:   NewArena[PatEnumData](capHint),
		Ranges:  NewArena[PatRangeData](capHint),
	}
}

func (p *Patterns) new(kind PatternKind, span source.Span, payload uint32) PatternID {
	return PatternID(p.Arena.Allocate(Pattern{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (p *Patterns) Get(id PatternID) *Pattern {
	return p.Arena.Get(uint32(id))
}

func patPayload[T any](p *Patterns, arena *Arena[T], id PatternID, kinds ...PatternKind) (*T, bool) {
	pat := p.Get(id)
	if pat == nil || !slices.Contains(kinds, pat.Kind) {
		return nil, false
	}
	return arena.Get(uint32(pat.Payload)), true
}

func (p *Patterns) NewIdent(span source.Span, name source.StringID, mut bool) PatternID {
	return p.new(PatIdent, span, p.Idents.Allocate(PatIdentData{Name: name, Mut: mut}))
}

func (p *Patterns) Ident(id PatternID) (*PatIdentData, bool) {
	return patPayload(p, p.Idents, id, PatIdent)
}

func (p *Patterns) NewLit(span source.Span, value ExprID) PatternID {
	return p.new(PatLit, span, p.Lits.Allocate(PatLitData{Value: value}))
}

func (p *Patterns) Lit(id PatternID) (*PatLitData, bool) {
	return patPayload(p, p.Lits, id, PatLit)
}

func (p *Patterns) NewTuple(span source.Span, elems []PatternID) PatternID {
	return p.new(PatTuple, span, p.Lists.Allocate(PatListData{Elems: slices.Clone(elems)}))
}

func (p *Patterns) NewOr(span source.Span, alts []PatternID) PatternID {
	return p.new(PatOr, span, p.Lists.Allocate(PatListData{Elems: slices.Clone(alts)}))
}

// List returns tuple elements or or-alternatives.
func (p *Patterns) List(id PatternID) (*PatListData, bool) {
	return patPayload(p, p.Lists, id, PatTuple, PatOr)
}

func (p *Patterns) NewStruct(span source.Span, data PatStructData) PatternID {
	data.Path = slices.Clone(data.Path)
	data.Fields = slices.Clone(data.Fields)
	return p.new(PatStruct, span, p.Structs.Allocate(data))
}

func (p *Patterns) Struct(id PatternID) (*PatStructData, bool) {
	return patPayload(p, p.Structs, id, PatStruct)
}

func (p *Patterns) NewEnum(span source.Span, data PatEnumData) PatternID {
	data.Path = slices.Clone(data.Path)
	data.Args = slices.Clone(data.Args)
	return p.new(PatEnum, span, p.Enums.Allocate(data))
}

func (p *Patterns) Enum(id PatternID) (*PatEnumData, bool) {
	return patPayload(p, p.Enums, id, PatEnum)
}

func (p *Patterns) NewRange(span source.Span, start, end ExprID, inclusive bool) PatternID {
	return p.new(PatRange, span, p.Ranges.Allocate(PatRangeData{Start: start, End: end, Inclusive: inclusive}))
}

func (p *Patterns) Range(id PatternID) (*PatRangeData, bool) {
	return patPayload(p, p.Ranges, id, PatRange)
}

func (p *Patterns) NewWildcard(span source.Span) PatternID {
	return p.new(PatWildcard, span, 0)
}

func (p *Patterns) NewRest(span source.Span) PatternID {
	return p.new(PatRest, span, 0)
}

func (p *Patterns) arenas() []arena {
	return []arena{
		p.Arena,
		p.Idents,
		p.Lits,
		p.Lists,
		p.Structs,
		p.Enums,
		p.Ranges,
	}
}
