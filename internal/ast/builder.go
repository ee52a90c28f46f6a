package ast

import (
	"zenc/internal/source"
)

type Hints struct{ Files, Items, Stmts, Exprs, Types, Patterns uint }

// Builder owns every arena of one parse. Nodes are only appended, never mutated
// once their parent has been built.
type Builder struct {
	Files           *Files
	Items           *Items
	Stmts           *Stmts
	Exprs           *Exprs
	Types           *Types
	Patterns        *Patterns
	StringsInterner *source.Interner

	all []arena
}

func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 6
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 6
	}
	if hints.Patterns == 0 {
		hints.Patterns = 1 << 4
	}
	if interner == nil {
		interner = source.NewInterner()
	}
	b := &Builder{
		Files:           NewFiles(hints.Files),
		Items:           NewItems(hints.Items),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		Types:           NewTypes(hints.Types),
		Patterns:        NewPatterns(hints.Patterns),
		StringsInterner: interner,
	}
	for _, group := range [][]arena{
		b.Files.arenas(), b.Items.arenas(), b.Stmts.arenas(),
		b.Exprs.arenas(), b.Types.arenas(), b.Patterns.arenas(),
	} {
		b.all = append(b.all, group...)
	}
	return b
}

// Mark is a snapshot of every arena length, taken before a parse attempt
// that may be abandoned.
type Mark struct {
	lens []uint32
}

// Mark records the current arena lengths.
func (b *Builder) Mark() Mark {
	lens := make([]uint32, len(b.all))
	for i, a := range b.all {
		lens[i] = a.Len()
	}
	return Mark{lens: lens}
}

// Rollback drops every node allocated since m. IDs handed out after m become invalid.
func (b *Builder) Rollback(m Mark) {
	for i, a := range b.all {
		a.Truncate(m.lens[i])
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Intern is a shortcut for StringsInterner.Intern.
func (b *Builder) Intern(s string) source.StringID {
	return b.StringsInterner.Intern(s)
}

// Str resolves an interned string; NoStringID gives "".
func (b *Builder) Str(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	s, _ := b.StringsInterner.Lookup(id)
	return s
}
