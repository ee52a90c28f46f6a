package ast

import (
	"slices"

	"zenc/internal/source"
)

type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypePrimitive
	TypeNamed
	TypeArray
	TypePointer
	TypeOptional
	TypeFn
	TypeTuple
	TypeRef
)

func (k TypeKind) String() string {
	switch k {
	case TypePrimitive:
		return "prim"
	case TypeNamed:
		return "named"
	case TypeArray:
		return "array"
	case TypePointer:
		return "ptr"
	case TypeOptional:
		return "opt"
	case TypeFn:
		return "fn-type"
	case TypeTuple:
		return "tuple-type"
	case TypeRef:
		return "ref"
	}
	return "invalid"
}

type TypeExpr struct {
	Kind    TypeKind
	Span    source.Span
	Payload PayloadID
}

type PointerQual uint8

const (
	PtrPlain PointerQual = iota
	PtrConst
	PtrMut
)

func (q PointerQual) String() string {
	switch q {
	case PtrConst:
		return "const"
	case PtrMut:
		return "mut"
	}
	return ""
}

// TypeNamedData covers primitives too: they just have no Args.
type TypeNamedData struct {
	Name source.StringID
	Args []TypeID
}

// TypeArrayData: Size отсутствует у T[].
type TypeArrayData struct {
	Elem TypeID
	Size ExprID
}

// TypeWrapData — pointer, optional и reference над одним типом.
type TypeWrapData struct {
	Elem TypeID
	Qual PointerQual // только для pointer
	Mut  bool        // только для reference
}

type TypeFnData struct {
	Params []TypeID
	Result TypeID
}

type TypeTupleData struct {
	Elems []TypeID
}

type Types struct {
	Arena  *Arena[TypeExpr]
	Names  *Arena[TypeNamedData]
	Arrays *Arena[TypeArrayData]
	Wraps  *Arena[TypeWrapData]
	Fns    *Arena[TypeFnData]
	Tuples *Arena[TypeTupleData]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Types{
		Arena:  NewArena[TypeExpr](capHint),
		Names:  NewArena[TypeNamedData](capHint),
		Arrays: NewArena[TypeArrayData](capHint / 4),
		Wraps:  NewArena[TypeWrapData](capHint / 2),
		Fns:    NewArena[TypeFnData](capHint / 8),
		Tuples: NewArena[TypeTupleData](capHint / 8),
	}
}

func (t *Types) new(kind TypeKind, span source.Span, payload uint32) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (t *Types) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

func typePayload[T any](t *Types, arena *Arena[T], id TypeID, kinds ...TypeKind) (*T, bool) {
	ty := t.Get(id)
	if ty == nil || !slices.Contains(kinds, ty.Kind) {
		return nil, false
	}
	return arena.Get(uint32(ty.Payload)), true
}

func (t *Types) NewPrimitive(span source.Span, name source.StringID) TypeID {
	return t.new(TypePrimitive, span, t.Names.Allocate(TypeNamedData{Name: name}))
}

func (t *Types) NewNamed(span source.Span, name source.StringID, args []TypeID) TypeID {
	return t.new(TypeNamed, span, t.Names.Allocate(TypeNamedData{Name: name, Args: slices.Clone(args)}))
}

// Named returns the name data of a primitive or named type.
func (t *Types) Named(id TypeID) (*TypeNamedData, bool) {
	return typePayload(t, t.Names, id, TypePrimitive, TypeNamed)
}

func (t *Types) NewArray(span source.Span, elem TypeID, size ExprID) TypeID {
	return t.new(TypeArray, span, t.Arrays.Allocate(TypeArrayData{Elem: elem, Size: size}))
}

func (t *Types) Array(id TypeID) (*TypeArrayData, bool) {
	return typePayload(t, t.Arrays, id, TypeArray)
}

func (t *Types) NewPointer(span source.Span, qual PointerQual, elem TypeID) TypeID {
	return t.new(TypePointer, span, t.Wraps.Allocate(TypeWrapData{Elem: elem, Qual: qual}))
}

func (t *Types) NewOptional(span source.Span, elem TypeID) TypeID {
	return t.new(TypeOptional, span, t.Wraps.Allocate(TypeWrapData{Elem: elem}))
}

func (t *Types) NewRef(span source.Span, mut bool, elem TypeID) TypeID {
	return t.new(TypeRef, span, t.Wraps.Allocate(TypeWrapData{Elem: elem, Mut: mut}))
}

// Wrap returns the data of a pointer, optional or reference type.
func (t *Types) Wrap(id TypeID) (*TypeWrapData, bool) {
	return typePayload(t, t.Wraps, id, TypePointer, TypeOptional, TypeRef)
}

func (t *Types) NewFn(span source.Span, params []TypeID, result TypeID) TypeID {
	return t.new(TypeFn, span, t.Fns.Allocate(TypeFnData{Params: slices.Clone(params), Result: result}))
}

func (t *Types) Fn(id TypeID) (*TypeFnData, bool) {
	return typePayload(t, t.Fns, id, TypeFn)
}

func (t *Types) NewTuple(span source.Span, elems []TypeID) TypeID {
	return t.new(TypeTuple, span, t.Tuples.Allocate(TypeTupleData{Elems: slices.Clone(elems)}))
}

func (t *Types) Tuple(id TypeID) (*TypeTupleData, bool) {
	return typePayload(t, t.Tuples, id, TypeTuple)
}

func (t *Types) arenas() []arena {
	return []arena{
		t.Arena,
		t.Names,
		t.Arrays,
		t.Wraps,
		t.Fns,
		t.Tuples,
	}
}
