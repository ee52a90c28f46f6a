package ast

import (
	"slices"

	"zenc/internal/source"
)

type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemBuildDirective
	ItemPPDirective
	ItemFn
	ItemStruct
	ItemEnum
	ItemUnion
	ItemImpl
	ItemTrait
	ItemVar
	ItemConst
	ItemImport
	ItemPluginImport
	ItemComptime
	ItemStmt
)

var itemKindNames = [...]string{
	ItemInvalid: "invalid", ItemBuildDirective: "build", ItemPPDirective: "pp", ItemFn: "fn",
	ItemStruct: "struct", ItemEnum: "enum", ItemUnion: "union", ItemImpl: "impl",
	ItemTrait: "trait", ItemVar: "var", ItemConst: "const", ItemImport: "import",
	ItemPluginImport: "import-plugin", ItemComptime: "comptime-item", ItemStmt: "stmt",
}

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return "item?"
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// BuildDirective — "//> name: value"; значение не интерпретируется.
type BuildDirective struct {
	Name     source.StringID
	Value    source.StringID
	HasValue bool
}

// PPDirective — строка препроцессора C. Directive: define, include, ifdef, ...
// Name — макрос для define/ifdef/ifndef/undef; Value — остаток строки.
type PPDirective struct {
	Directive source.StringID
	Name      source.StringID
	Value     source.StringID
	System    bool // #include <x>
}

type GenericParam struct {
	Name   source.StringID
	Bounds []TypeID
	Span   source.Span
}

// FnParam: SelfParam — параметр `self` без типа.
type FnParam struct {
	Name      source.StringID
	Type      TypeID
	Default   ExprID
	Mut       bool
	SelfParam bool
	Span      source.Span
}

// FnItem: Body == NoExprID у сигнатур внутри trait.
type FnItem struct {
	Attrs    []Attr
	Pub      bool
	Async    bool
	Name     source.StringID
	Generics []GenericParam
	Params   []FnParam
	Result   TypeID
	Body     ExprID
}

// Field — поле struct/union/варианта enum. Use=true для `use T;`.
type Field struct {
	Attrs   []Attr
	Pub     bool
	Name    source.StringID
	Type    TypeID
	Bits    ExprID
	Default ExprID
	Use     bool
	Span    source.Span
}

type RecordItem struct {
	Attrs    []Attr
	Pub      bool
	Name     source.StringID
	Generics []GenericParam
	Fields   []Field
}

type VariantShape uint8

const (
	VariantUnit VariantShape = iota
	VariantValue
	VariantTuple
	VariantStruct
)

type VariantField struct {
	Name source.StringID // может отсутствовать
	Type TypeID
}

type Variant struct {
	Attrs  []Attr
	Name   source.StringID
	Shape  VariantShape
	Value  ExprID
	Tuple  []VariantField
	Fields []Field
	Span   source.Span
}

type EnumItem struct {
	Attrs    []Attr
	Pub      bool
	Name     source.StringID
	Generics []GenericParam
	Variants []Variant
}

type ImplItem struct {
	Generics []GenericParam
	Trait    TypeID
	Type     TypeID
	Members  []ItemID
}

type TraitItem struct {
	Attrs    []Attr
	Pub      bool
	Name     source.StringID
	Generics []GenericParam
	Bounds   []TypeID
	Members  []ItemID
}

// VarItem: либо Name, либо Pattern для `var (a, b) = e`.
type VarItem struct {
	Attrs    []Attr
	Autofree bool
	Mut      bool
	Name     source.StringID
	Pattern  PatternID
	Type     TypeID
	Value    ExprID
}

type ConstItem struct {
	Attrs []Attr
	Name  source.StringID
	Type  TypeID
	Value ExprID
}

type ImportItem struct {
	Path  []source.StringID
	Alias source.StringID
}

type PluginImportItem struct {
	Name source.StringID
}

type ComptimeItem struct {
	Body ExprID
}

type StmtItemWrap struct {
	Stmt StmtID
}

type Items struct {
	Arena     *Arena[Item]
	Builds    *Arena[BuildDirective]
	PPs       *Arena[PPDirective]
	Fns       *Arena[FnItem]
	Records   *Arena[RecordItem] // struct и union
	Enums     *Arena[EnumItem]
	Impls     *Arena[ImplItem]
	Traits    *Arena[TraitItem]
	Vars      *Arena[VarItem]
	Consts    *Arena[ConstItem]
	Imports   *Arena[ImportItem]
	Plugins   *Arena[PluginImportItem]
	Comptimes *Arena[ComptimeItem]
	Stmts     *Arena[StmtItemWrap]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	small := capHint/8 + 1
	return &Items{
		Arena:     NewArena[Item](capHint),
		Builds:    NewArena[BuildDirective](small),
		PPs:       NewArena[PPDirective](small),
		Fns:       NewArena[FnItem](capHint),
		Records:   NewArena[RecordItem](small),
		Enums:     NewArena[EnumItem](small),
		Impls:     NewArena[ImplItem](small),
		Traits:    NewArena[TraitItem](small),
		Vars:      NewArena[VarItem](small),
		Consts:    NewArena[ConstItem](small),
		Imports:   NewArena[ImportItem](small),
		Plugins:   NewArena[PluginImportItem](small),
		Comptimes: NewArena[ComptimeItem](small),
		Stmts:     NewArena[StmtItemWrap](small),
	}
}

func (i *Items) new(kind ItemKind, span source.Span, payload uint32) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func itemPayload[T any](i *Items, arena *Arena[T], id ItemID, kinds ...ItemKind) (*T, bool) {
	it := i.Get(id)
	if it == nil || !slices.Contains(kinds, it.Kind) {
		return nil, false
	}
	return arena.Get(uint32(it.Payload)), true
}

func (i *Items) NewBuildDirective(span source.Span, d BuildDirective) ItemID {
	return i.new(ItemBuildDirective, span, i.Builds.Allocate(d))
}

func (i *Items) BuildDirective(id ItemID) (*BuildDirective, bool) {
	return itemPayload(i, i.Builds, id, ItemBuildDirective)
}

func (i *Items) NewPPDirective(span source.Span, d PPDirective) ItemID {
	return i.new(ItemPPDirective, span, i.PPs.Allocate(d))
}

func (i *Items) PPDirective(id ItemID) (*PPDirective, bool) {
	return itemPayload(i, i.PPs, id, ItemPPDirective)
}

func (i *Items) NewFn(span source.Span, fn FnItem) ItemID {
	return i.new(ItemFn, span, i.Fns.Allocate(fn))
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	return itemPayload(i, i.Fns, id, ItemFn)
}

// NewRecord builds a struct (ItemStruct) or a union (ItemUnion).
func (i *Items) NewRecord(span source.Span, kind ItemKind, rec RecordItem) ItemID {
	return i.new(kind, span, i.Records.Allocate(rec))
}

func (i *Items) Record(id ItemID) (*RecordItem, bool) {
	return itemPayload(i, i.Records, id, ItemStruct, ItemUnion)
}

func (i *Items) NewEnum(span source.Span, en EnumItem) ItemID {
	return i.new(ItemEnum, span, i.Enums.Allocate(en))
}

func (i *Items) Enum(id ItemID) (*EnumItem, bool) {
	return itemPayload(i, i.Enums, id, ItemEnum)
}

func (i *Items) NewImpl(span source.Span, im ImplItem) ItemID {
	return i.new(ItemImpl, span, i.Impls.Allocate(im))
}

func (i *Items) Impl(id ItemID) (*ImplItem, bool) {
	return itemPayload(i, i.Impls, id, ItemImpl)
}

func (i *Items) NewTrait(span source.Span, tr TraitItem) ItemID {
	return i.new(ItemTrait, span, i.Traits.Allocate(tr))
}

func (i *Items) Trait(id ItemID) (*TraitItem, bool) {
	return itemPayload(i, i.Traits, id, ItemTrait)
}

func (i *Items) NewVar(span source.Span, v VarItem) ItemID {
	return i.new(ItemVar, span, i.Vars.Allocate(v))
}

func (i *Items) Var(id ItemID) (*VarItem, bool) {
	return itemPayload(i, i.Vars, id, ItemVar)
}

func (i *Items) NewConst(span source.Span, c ConstItem) ItemID {
	return i.new(ItemConst, span, i.Consts.Allocate(c))
}

func (i *Items) Const(id ItemID) (*ConstItem, bool) {
	return itemPayload(i, i.Consts, id, ItemConst)
}

func (i *Items) NewImport(span source.Span, im ImportItem) ItemID {
	return i.new(ItemImport, span, i.Imports.Allocate(im))
}

func (i *Items) Import(id ItemID) (*ImportItem, bool) {
	return itemPayload(i, i.Imports, id, ItemImport)
}

func (i *Items) NewPluginImport(span source.Span, name source.StringID) ItemID {
	return i.new(ItemPluginImport, span, i.Plugins.Allocate(PluginImportItem{Name: name}))
}

func (i *Items) PluginImport(id ItemID) (*PluginImportItem, bool) {
	return itemPayload(i, i.Plugins, id, ItemPluginImport)
}

func (i *Items) NewComptime(span source.Span, body ExprID) ItemID {
	return i.new(ItemComptime, span, i.Comptimes.Allocate(ComptimeItem{Body: body}))
}

func (i *Items) Comptime(id ItemID) (*ComptimeItem, bool) {
	return itemPayload(i, i.Comptimes, id, ItemComptime)
}

func (i *Items) NewStmt(span source.Span, stmt StmtID) ItemID {
	return i.new(ItemStmt, span, i.Stmts.Allocate(StmtItemWrap{Stmt: stmt}))
}

func (i *Items) Stmt(id ItemID) (*StmtItemWrap, bool) {
	return itemPayload(i, i.Stmts, id, ItemStmt)
}

func (i *Items) arenas() []arena {
	return []arena{
		i.Arena,
		i.Builds,
		i.PPs,
		i.Fns,
		i.Records,
		i.Enums,
		i.Impls,
		i.Traits,
		i.Vars,
		i.Consts,
		i.Imports,
		i.Plugins,
		i.Comptimes,
		i.Stmts,
	}
}
