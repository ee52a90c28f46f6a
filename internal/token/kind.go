package token

import "strconv"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	litStart
	// IntLit is a decimal, 0x, 0o or 0b integer literal.
	IntLit
	// FloatLit is a float literal with a fraction and/or exponent.
	FloatLit
	// StringLit is a string literal without splices.
	StringLit
	// InterpStringLit is a string literal containing at least one {expr} splice.
	InterpStringLit
	// CharLit is a single-quoted char literal.
	CharLit
	litEnd

	BuildDirective // //> name[: value]
	PPDirective    // #define, #include, ...
	MacroBody      // сбалансированная группа после name!
	RawBody        // содержимое raw { ... }

	kwStart
	KwFn       // fn
	KwVar      // var
	KwConst    // const
	KwMut      // mut
	KwPub      // pub
	KwAsync    // async
	KwAwait    // await
	KwAutofree // autofree
	KwStruct   // struct
	KwEnum     // enum
	KwUnion    // union
	KwImpl     // impl
	KwTrait    // trait
	KwUse      // use
	KwImport   // import
	KwAs       // as
	KwIf       // if
	KwElse     // else
	KwMatch    // match
	KwFor      // for
	KwIn       // in
	KwWhile    // while
	KwLoop     // loop
	KwRepeat   // repeat
	KwGuard    // guard
	KwUnless   // unless
	KwDefer    // defer
	KwReturn   // return
	KwBreak    // break
	KwContinue // continue
	KwSizeof   // sizeof
	KwTypeof   // typeof
	KwComptime // comptime
	KwAsm      // asm
	KwRaw      // raw
	KwEmbed    // embed
	KwTrue     // true
	KwFalse    // false
	KwNull     // null, NULL, nil
	kwEnd

	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]

	Comma      // ,
	Semicolon  // ;
	Colon      // :
	ColonColon // ::
	Dot        // .
	DotDot     // ..
	DotDotEq   // ..=
	Arrow      // ->
	FatArrow   // =>
	At         // @
	Underscore // _

	Question               // ?
	QuestionDot            // ?.
	QuestionQuestion       // ??
	QuestionQuestionAssign // ??=

	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	Amp     // &
	Pipe    // |
	Caret   // ^
	Tilde   // ~
	Bang    // !
	Shl     // <<
	Shr     // >>
	AndAnd  // &&
	OrOr    // ||

	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=

	EqEq   // ==
	BangEq // !=
	Lt     // <
	LtEq   // <=
	Gt     // >
	GtEq   // >=

	kindCount
)

var kindNames = [...]string{
	Invalid:         "invalid token",
	EOF:             "end of file",
	Ident:           "identifier",
	IntLit:          "integer literal",
	FloatLit:        "float literal",
	StringLit:       "string literal",
	InterpStringLit: "interpolated string",
	CharLit:         "char literal",
	BuildDirective:  "build directive",
	PPDirective:     "preprocessor directive",
	MacroBody:       "macro body",
	RawBody:         "raw block body",

	KwFn: "fn", KwVar: "var", KwConst: "const", KwMut: "mut", KwPub: "pub",
	KwAsync: "async", KwAwait: "await", KwAutofree: "autofree", KwStruct: "struct",
	KwEnum: "enum", KwUnion: "union", KwImpl: "impl", KwTrait: "trait", KwUse: "use",
	KwImport: "import", KwAs: "as", KwIf: "if", KwElse: "else", KwMatch: "match",
	KwFor: "for", KwIn: "in", KwWhile: "while", KwLoop: "loop", KwRepeat: "repeat",
	KwGuard: "guard", KwUnless: "unless", KwDefer: "defer", KwReturn: "return",
	KwBreak: "break", KwContinue: "continue", KwSizeof: "sizeof", KwTypeof: "typeof",
	KwComptime: "comptime", KwAsm: "asm", KwRaw: "raw", KwEmbed: "embed",
	KwTrue: "true", KwFalse: "false", KwNull: "null",

	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Comma: ",", Semicolon: ";", Colon: ":", ColonColon: "::", Dot: ".", DotDot: "..",
	DotDotEq: "..=", Arrow: "->", FatArrow: "=>", At: "@", Underscore: "_",
	Question: "?", QuestionDot: "?.", QuestionQuestion: "??", QuestionQuestionAssign: "??=",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Amp: "&", Pipe: "|",
	Caret: "^", Tilde: "~", Bang: "!", Shl: "<<", Shr: ">>", AndAnd: "&&", OrOr: "||",
	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	PercentAssign: "%=", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	ShlAssign: "<<=", ShrAssign: ">>=",
	EqEq: "==", BangEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
}

// String returns the source spelling for punctuation and keywords,
// and a descriptive name for the other kinds.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Quoted is String with quotes around fixed spellings, for diagnostics: `'('` but `identifier`.
func (k Kind) Quoted() string {
	if k.IsKeyword() || k > kwEnd && k < kindCount {
		return "'" + k.String() + "'"
	}
	return k.String()
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k > kwStart && k < kwEnd }

// IsLiteral reports whether k is a numeric, string or char literal kind.
func (k Kind) IsLiteral() bool { return k > litStart && k < litEnd }

// IsPunctOrOp reports whether k is punctuation or an operator.
func (k Kind) IsPunctOrOp() bool { return k > kwEnd && k < kindCount }

// IsAssign reports whether k is '=' or a compound assignment operator.
func (k Kind) IsAssign() bool {
	return k >= Assign && k <= ShrAssign || k == QuestionQuestionAssign
}
