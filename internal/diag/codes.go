package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexBadEscape                Code = 1006
	LexBadChar                  Code = 1007
	LexUnterminatedSplice       Code = 1008
	LexEmptySplice              Code = 1009
	LexUnterminatedMacro        Code = 1010
	LexUnterminatedRaw          Code = 1011

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectSemicolon    Code = 2003
	SynExpectIdentifier   Code = 2004
	SynExpectType         Code = 2005
	SynExpectExpression   Code = 2006
	SynExpectPattern      Code = 2007
	SynExpectBlock        Code = 2008
	SynUnexpectedTopLevel Code = 2009
	SynExpectColon        Code = 2010
	SynBadLabel           Code = 2011

	// директивы и атрибуты
	SynBadBuildDirective Code = 2100
	SynBadPreprocessor   Code = 2101
	SynBadAttribute      Code = 2102

	// строки и макросы
	SynBadSplice      Code = 2200
	SynBadPrintForm   Code = 2201
	SynBadAsmOperand  Code = 2202
	SynAmbiguousQuery Code = 2203

	// ввод-вывод драйвера
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// проектный конфиг
	ProjInvalidConfig Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Invalid numeric literal",
	LexUnterminatedChar:         "Unterminated char literal",
	LexBadEscape:                "Invalid escape sequence",
	LexBadChar:                  "Invalid char literal",
	LexUnterminatedSplice:       "Unterminated interpolation",
	LexEmptySplice:              "Empty interpolation",
	LexUnterminatedMacro:        "Unterminated macro body",
	LexUnterminatedRaw:          "Unterminated raw block",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynExpectSemicolon:          "Missing semicolon",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectType:               "Expected type",
	SynExpectExpression:         "Expected expression",
	SynExpectPattern:            "Expected pattern",
	SynExpectBlock:              "Expected block",
	SynUnexpectedTopLevel:       "Unexpected top-level construct",
	SynExpectColon:              "Expected colon",
	SynBadLabel:                 "Invalid label",
	SynBadBuildDirective:        "Invalid build directive",
	SynBadPreprocessor:          "Invalid preprocessor directive",
	SynBadAttribute:             "Invalid attribute",
	SynBadSplice:                "Invalid interpolation",
	SynBadPrintForm:             "Invalid print expression",
	SynBadAsmOperand:            "Invalid asm operand",
	SynAmbiguousQuery:           "Ambiguous sizeof/typeof operand",
	IOLoadFileError:             "I/O error",
	IOCacheError:                "Cache error",
	ProjInvalidConfig:           "Invalid project configuration",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
