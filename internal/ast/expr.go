package ast

import (
	"zenc/internal/source"
)

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLit
	ExprInterp
	ExprBinary
	ExprUnary
	ExprCall
	ExprMethodCall
	ExprMember
	ExprScoped
	ExprIndex
	ExprRange
	ExprTernary
	ExprIf
	ExprMatch
	ExprLambda
	ExprTuple
	ExprArray
	ExprStruct
	ExprGroup
	ExprCast
	ExprSizeof
	ExprTypeof
	ExprEmbed
	ExprComptime
	ExprAsm
	ExprRaw
	ExprPrint
	ExprInput
	ExprMacro
	ExprBlock
)

var exprKindNames = [...]string{
	ExprInvalid: "invalid", ExprIdent: "ident", ExprLit: "lit", ExprInterp: "interp",
	ExprBinary: "binary", ExprUnary: "unary", ExprCall: "call", ExprMethodCall: "method-call",
	ExprMember: "member", ExprScoped: "scoped", ExprIndex: "index", ExprRange: "range",
	ExprTernary: "ternary", ExprIf: "if", ExprMatch: "match", ExprLambda: "lambda",
	ExprTuple: "tuple", ExprArray: "array", ExprStruct: "struct-lit", ExprGroup: "group",
	ExprCast: "cast", ExprSizeof: "sizeof", ExprTypeof: "typeof", ExprEmbed: "embed",
	ExprComptime: "comptime", ExprAsm: "asm", ExprRaw: "raw", ExprPrint: "print",
	ExprInput: "input", ExprMacro: "macro", ExprBlock: "block",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "expr?"
}

// Expr — общий заголовок выражения; данные лежат в арене своего вида по Payload.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitChar
	LitBool
	LitNull
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitString:
		return "string"
	case LitChar:
		return "char"
	case LitBool:
		return "bool"
	case LitNull:
		return "null"
	}
	return "lit?"
}

type BinaryOp uint8

const (
	BinAssign BinaryOp = iota
	BinAddAssign
	BinSubAssign
	BinMulAssign
	BinDivAssign
	BinModAssign
	BinAndAssign
	BinOrAssign
	BinXorAssign
	BinShlAssign
	BinShrAssign
	BinCoalesceAssign

	BinLogicalOr
	BinCoalesce
	BinLogicalAnd
	BinBitOr
	BinBitXor
	BinBitAnd
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinShl
	BinShr
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinMod
)

var binaryOpNames = [...]string{
	BinAssign: "=", BinAddAssign: "+=", BinSubAssign: "-=", BinMulAssign: "*=",
	BinDivAssign: "/=", BinModAssign: "%=", BinAndAssign: "&=", BinOrAssign: "|=",
	BinXorAssign: "^=", BinShlAssign: "<<=", BinShrAssign: ">>=", BinCoalesceAssign: "??=",
	BinLogicalOr: "||", BinCoalesce: "??", BinLogicalAnd: "&&", BinBitOr: "|",
	BinBitXor: "^", BinBitAnd: "&", BinEq: "==", BinNe: "!=", BinLt: "<", BinLe: "<=",
	BinGt: ">", BinGe: ">=", BinShl: "<<", BinShr: ">>", BinAdd: "+", BinSub: "-",
	BinMul: "*", BinDiv: "/", BinMod: "%",
}

// String returns the operator spelling.
func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// IsAssign reports whether op is '=' or a compound assignment.
func (op BinaryOp) IsAssign() bool { return op <= BinCoalesceAssign }

type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryBitNot
	UnaryDeref
	UnaryAddrOf
	UnaryAddrOfMut
	UnaryAwait
	UnaryTry // постфиксный '?'
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	case UnaryBitNot:
		return "~"
	case UnaryDeref:
		return "*"
	case UnaryAddrOf:
		return "&"
	case UnaryAddrOfMut:
		return "&mut"
	case UnaryAwait:
		return "await"
	case UnaryTry:
		return "?"
	}
	return "?op"
}

type ExprIdentData struct {
	Name source.StringID
}

// ExprLitData: Raw — исходная лексема, Value — значение без кавычек и разделителей.
type ExprLitData struct {
	Kind  LitKind
	Raw   source.StringID
	Value source.StringID
}

type InterpPartKind uint8

const (
	InterpText InterpPartKind = iota
	InterpSplice
)

// InterpPart is a decoded text run or a parsed {expr[:spec]} splice.
type InterpPart struct {
	Kind InterpPartKind
	Text source.StringID
	Expr ExprID
	Spec source.StringID
	Span source.Span
}

type ExprInterpData struct {
	Parts []InterpPart
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

// CallArg is a positional argument, or a named one when Name is set.
type CallArg struct {
	Name  source.StringID
	Value ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []CallArg
}

type ExprMethodCallData struct {
	Receiver ExprID
	Name     source.StringID
	Generics []TypeID
	Args     []CallArg
	Safe     bool // ?.name()
}

// ExprMemberData: Name — поле или индекс кортежа (TupleIndex=true), Safe для "?.".
type ExprMemberData struct {
	Target     ExprID
	Name       source.StringID
	TupleIndex bool
	Safe       bool
}

type ExprScopedData struct {
	Target ExprID
	Name   source.StringID
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

type ExprRangeData struct {
	Start     ExprID
	End       ExprID
	Inclusive bool
}

type ExprTernaryData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

// ExprIfData: Else — блок, вложенный if или NoExprID.
type ExprIfData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type MatchArm struct {
	Pattern PatternID
	Guard   ExprID
	Body    ExprID
	Span    source.Span
}

type ExprMatchData struct {
	Scrutinee ExprID
	Arms      []MatchArm
}

type LambdaForm uint8

const (
	LambdaArrow LambdaForm = iota // x -> e, (x, y) -> e
	LambdaFn                      // fn(x: T) -> R { ... }
)

type LambdaParam struct {
	Name source.StringID
	Type TypeID
	Mut  bool
	Span source.Span
}

type ExprLambdaData struct {
	Form   LambdaForm
	Params []LambdaParam
	Result TypeID
	Body   ExprID
	Async  bool
}

type ExprListData struct {
	Elems []ExprID
}

type FieldInit struct {
	Name      source.StringID
	Value     ExprID
	Shorthand bool
	Span      source.Span
}

type ExprStructData struct {
	Type   TypeID
	Fields []FieldInit
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprCastData struct {
	Value ExprID
	Type  TypeID
}

// ExprQueryData — операнд sizeof/typeof: ровно одно из Type и Expr.
// Ambiguous отмечает одиночный идентификатор с заглавной буквы.
type ExprQueryData struct {
	Type      TypeID
	Expr      ExprID
	Ambiguous bool
}

type ExprEmbedData struct {
	Path source.StringID
}

type ExprComptimeData struct {
	Body ExprID
}

type AsmOperandKind uint8

const (
	AsmOut AsmOperandKind = iota
	AsmIn
	AsmInOut
	AsmClobber
)

func (k AsmOperandKind) String() string {
	switch k {
	case AsmOut:
		return "out"
	case AsmIn:
		return "in"
	case AsmInOut:
		return "inout"
	case AsmClobber:
		return "clobber"
	}
	return "asm?"
}

type AsmOperand struct {
	Kind     AsmOperandKind
	Target   source.StringID
	IsString bool
	Span     source.Span
}

type ExprAsmData struct {
	Volatile  bool
	Templates []source.StringID
	Operands  []AsmOperand
}

type ExprRawData struct {
	Body source.StringID
}

type PrintKind uint8

const (
	PrintPrint PrintKind = iota
	PrintPrintln
	PrintEprint
	PrintEprintln
)

func (k PrintKind) String() string {
	switch k {
	case PrintPrint:
		return "print"
	case PrintPrintln:
		return "println"
	case PrintEprint:
		return "eprint"
	case PrintEprintln:
		return "eprintln"
	}
	return "print?"
}

type PrintForm uint8

const (
	PrintFormCall      PrintForm = iota // println("...")
	PrintFormBare                       // println "..."
	PrintFormShorthand                  // "..".. или !"..."
)

func (f PrintForm) String() string {
	switch f {
	case PrintFormCall:
		return "call"
	case PrintFormBare:
		return "bare"
	case PrintFormShorthand:
		return "shorthand"
	}
	return "form?"
}

type ExprPrintData struct {
	Kind PrintKind
	Form PrintForm
	Arg  ExprID
}

type ExprInputData struct {
	Prompt ExprID
	Var    ExprID
}

type ExprMacroData struct {
	Name  source.StringID
	Delim byte
	Body  source.Span
	Text  source.StringID
}

// ExprBlockData: Tail — последнее выражение без ';', значение блока.
type ExprBlockData struct {
	Stmts []StmtID
	Tail  ExprID
}
