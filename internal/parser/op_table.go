package parser

import (
	"zenc/internal/ast"
	"zenc/internal/token"
)

// Уровни приоритета; больше — сильнее связывает.
type prec uint8

const (
	precNone     prec = iota
	precAssign        // = += -= ... ??=
	precTernary       // if c ? a : b
	precRange         // .. ..=
	precOr            // || ??
	precAnd           // &&
	precBitOr         // |
	precBitXor        // ^
	precBitAnd        // &
	precEquality      // == !=
	precCompare       // < > <= >=
	precShift         // << >>
	precAdd           // + -
	precMult          // * / %
	precUnary         // префиксные операторы и инфиксный `as`
	precPostfix       // e? и e[i]
	precCall          // f(...)
	precMember        // . ?. ::
)

type binaryInfo struct {
	prec  prec
	right bool
	op    ast.BinaryOp
	rng   bool // .. и ..=: правый операнд необязателен
	incl  bool
}

// binaryOps is the only place operator levels are defined.
var binaryOps = map[token.Kind]binaryInfo{
	token.Assign:                 {prec: precAssign, right: true, op: ast.BinAssign},
	token.PlusAssign:             {prec: precAssign, right: true, op: ast.BinAddAssign},
	token.MinusAssign:            {prec: precAssign, right: true, op: ast.BinSubAssign},
	token.StarAssign:             {prec: precAssign, right: true, op: ast.BinMulAssign},
	token.SlashAssign:            {prec: precAssign, right: true, op: ast.BinDivAssign},
	token.PercentAssign:          {prec: precAssign, right: true, op: ast.BinModAssign},
	token.AmpAssign:              {prec: precAssign, right: true, op: ast.BinAndAssign},
	token.PipeAssign:             {prec: precAssign, right: true, op: ast.BinOrAssign},
	token.CaretAssign:            {prec: precAssign, right: true, op: ast.BinXorAssign},
	token.ShlAssign:              {prec: precAssign, right: true, op: ast.BinShlAssign},
	token.ShrAssign:              {prec: precAssign, right: true, op: ast.BinShrAssign},
	token.QuestionQuestionAssign: {prec: precAssign, right: true, op: ast.BinCoalesceAssign},

	token.DotDot:   {prec: precRange, rng: true},
	token.DotDotEq: {prec: precRange, rng: true, incl: true},

	token.OrOr:             {prec: precOr, op: ast.BinLogicalOr},
	token.QuestionQuestion: {prec: precOr, op: ast.BinCoalesce},
	token.AndAnd:           {prec: precAnd, op: ast.BinLogicalAnd},
	token.Pipe:             {prec: precBitOr, op: ast.BinBitOr},
	token.Caret:            {prec: precBitXor, op: ast.BinBitXor},
	token.Amp:              {prec: precBitAnd, op: ast.BinBitAnd},

	token.EqEq:   {prec: precEquality, op: ast.BinEq},
	token.BangEq: {prec: precEquality, op: ast.BinNe},

	token.Lt:   {prec: precCompare, op: ast.BinLt},
	token.LtEq: {prec: precCompare, op: ast.BinLe},
	token.Gt:   {prec: precCompare, op: ast.BinGt},
	token.GtEq: {prec: precCompare, op: ast.BinGe},

	token.Shl: {prec: precShift, op: ast.BinShl},
	token.Shr: {prec: precShift, op: ast.BinShr},

	token.Plus:    {prec: precAdd, op: ast.BinAdd},
	token.Minus:   {prec: precAdd, op: ast.BinSub},
	token.Star:    {prec: precMult, op: ast.BinMul},
	token.Slash:   {prec: precMult, op: ast.BinDiv},
	token.Percent: {prec: precMult, op: ast.BinMod},
}

// castPrec — `as` связывает на уровне унарных операторов, слева направо.
const castPrec = precUnary

var prefixOps = map[token.Kind]ast.UnaryOp{
	token.Minus:   ast.UnaryNeg,
	token.Bang:    ast.UnaryNot,
	token.Tilde:   ast.UnaryBitNot,
	token.Star:    ast.UnaryDeref,
	token.Amp:     ast.UnaryAddrOf,
	token.KwAwait: ast.UnaryAwait,
}

func lookupBinary(k token.Kind) (binaryInfo, bool) {
	info, ok := binaryOps[k]
	return info, ok
}
