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

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectExpression   Code = 2005
	SynUnclosedParen      Code = 2006
	SynUnclosedBrace      Code = 2007
	SynBadStatement       Code = 2008
	SynUnexpectedTopLevel Code = 2009
	SynExpectClassName    Code = 2010

	// Семантические (статическая проверка)
	SemaInfo                   Code = 3000
	SemaDuplicateClass         Code = 3001
	SemaDuplicateField         Code = 3002
	SemaDuplicateMethod        Code = 3003
	SemaDuplicateParam         Code = 3004
	SemaUnknownClassType       Code = 3005
	SemaUnresolvedIdentifier   Code = 3006
	SemaTypeMismatch           Code = 3007
	SemaNotAClassType          Code = 3008
	SemaUnknownField           Code = 3009
	SemaNotAMethod             Code = 3010
	SemaUnknownMethod          Code = 3011
	SemaArgumentMismatch       Code = 3012
	SemaConditionTypeError     Code = 3013
	SemaUnreadableType         Code = 3014
	SemaUnprintableType        Code = 3015
	SemaAssignmentTypeMismatch Code = 3016
	SemaReturnTypeMismatch     Code = 3017

	// I/O
	IOLoadFileError Code = 4001

	// Проект / конфигурация
	ProjInfo      Code = 5000
	ProjBadConfig Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectSemicolon:          "Expected semicolon",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectType:               "Expected type",
		SynExpectExpression:         "Expected expression",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynBadStatement:             "Malformed statement",
		SynUnexpectedTopLevel:       "Unexpected top-level item",
		SynExpectClassName:          "Expected class name",
		SemaInfo:                    "Semantic information",
		SemaDuplicateClass:          "Duplicate class",
		SemaDuplicateField:          "Duplicate field",
		SemaDuplicateMethod:         "Duplicate method",
		SemaDuplicateParam:          "Duplicate parameter",
		SemaUnknownClassType:        "Unknown class type",
		SemaUnresolvedIdentifier:    "Unresolved identifier",
		SemaTypeMismatch:            "Operand type mismatch",
		SemaNotAClassType:           "Not a class type",
		SemaUnknownField:            "Unknown field",
		SemaNotAMethod:              "Not a method",
		SemaUnknownMethod:           "Unknown method",
		SemaArgumentMismatch:        "Argument mismatch",
		SemaConditionTypeError:      "Condition is not Bool",
		SemaUnreadableType:          "Type cannot be read",
		SemaUnprintableType:         "Type cannot be printed",
		SemaAssignmentTypeMismatch:  "Assignment type mismatch",
		SemaReturnTypeMismatch:      "Return type mismatch",
		IOLoadFileError:             "I/O load file error",
		ProjInfo:                    "Project information",
		ProjBadConfig:               "Invalid project configuration",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
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
