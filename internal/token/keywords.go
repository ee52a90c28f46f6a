package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"var":      KwVar,
	"const":    KwConst,
	"mut":      KwMut,
	"pub":      KwPub,
	"async":    KwAsync,
	"await":    KwAwait,
	"autofree": KwAutofree,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"union":    KwUnion,
	"impl":     KwImpl,
	"trait":    KwTrait,
	"use":      KwUse,
	"import":   KwImport,
	"as":       KwAs,
	"if":       KwIf,
	"else":     KwElse,
	"match":    KwMatch,
	"for":      KwFor,
	"in":       KwIn,
	"while":    KwWhile,
	"loop":     KwLoop,
	"repeat":   KwRepeat,
	"guard":    KwGuard,
	"unless":   KwUnless,
	"defer":    KwDefer,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"sizeof":   KwSizeof,
	"typeof":   KwTypeof,
	"comptime": KwComptime,
	"asm":      KwAsm,
	"raw":      KwRaw,
	"embed":    KwEmbed,
	"true":     KwTrue,
	"false":    KwFalse,
	"null":     KwNull,
	"NULL":     KwNull,
	"nil":      KwNull,
}

// LookupKeyword возвращает Kind ключевого слова.
// Регистр важен: "NULL" — ключевое слово, "Null" — идентификатор.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

var primitives = map[string]struct{}{
	"int": {}, "uint": {},
	"i8": {}, "i16": {}, "i32": {}, "i64": {}, "i128": {},
	"u8": {}, "u16": {}, "u32": {}, "u64": {}, "u128": {},
	"isize": {}, "usize": {}, "byte": {},
	"f32": {}, "f64": {},
	"bool": {}, "char": {}, "string": {},
	"void": {}, "u0": {},
}

// IsPrimitiveType reports whether name spells a built-in primitive type.
func IsPrimitiveType(name string) bool {
	_, ok := primitives[name]
	return ok
}

// Контекстные слова: остаются Ident и распознаются парсером по тексту.
const (
	WordSelf     = "self"
	WordPlugin   = "plugin"
	WordStep     = "step"
	WordVolatile = "volatile"
)

// PrintWords maps print-family identifiers to themselves; they are contextual.
var PrintWords = map[string]bool{
	"print":    true,
	"println":  true,
	"eprint":   true,
	"eprintln": true,
}
