package ast

import (
	"slices"

	"zenc/internal/source"
)

// Attr описывает атрибут вида `@name` или `@name(args...)`.
type Attr struct {
	Name  source.StringID
	Known AttrKind // AttrUnknown для имён вне каталога
	Args  []ExprID
	Span  source.Span
}

// AttrKind is a reserved attribute name; any identifier is still accepted.
type AttrKind uint8

const (
	AttrUnknown AttrKind = iota
	AttrMustUse
	AttrDeprecated
	AttrInline
	AttrNoinline
	AttrPacked
	AttrAlign
	AttrConstructor
	AttrDestructor
	AttrUnused
	AttrWeak
	AttrSection
	AttrNoreturn
	AttrDerived
	AttrCold
	AttrHot
	AttrPure
	AttrConst
	AttrExtern
	AttrExport
)

var attrCatalog = map[string]AttrKind{
	"must_use":    AttrMustUse,
	"deprecated":  AttrDeprecated,
	"inline":      AttrInline,
	"noinline":    AttrNoinline,
	"packed":      AttrPacked,
	"align":       AttrAlign,
	"constructor": AttrConstructor,
	"destructor":  AttrDestructor,
	"unused":      AttrUnused,
	"weak":        AttrWeak,
	"section":     AttrSection,
	"noreturn":    AttrNoreturn,
	"derived":     AttrDerived,
	"cold":        AttrCold,
	"hot":         AttrHot,
	"pure":        AttrPure,
	"const":       AttrConst,
	"extern":      AttrExtern,
	"export":      AttrExport,
}

// LookupAttr returns the reserved kind for name (case-sensitive).
func LookupAttr(name string) (AttrKind, bool) {
	k, ok := attrCatalog[name]
	return k, ok
}

// AttrNames returns the reserved attribute names sorted.
func AttrNames() []string {
	names := make([]string, 0, len(attrCatalog))
	for name := range attrCatalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
