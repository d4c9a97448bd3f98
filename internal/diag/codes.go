package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexEmptyToken         Code = 1003
	LexTooManyTokens      Code = 1004

	// Парсерные
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynUnclosedBrace   Code = 2002
	SynTooFewTokens    Code = 2003
	SynExpectValue     Code = 2004
	SynExpectKey       Code = 2005
	SynExpectAssign    Code = 2006
	SynExpectSeparator Code = 2007
	SynTrailingTokens  Code = 2008
	SynDuplicateKey    Code = 2009
	SynTooDeep         Code = 2010

	// Литералы
	LitInfo            Code = 3000
	LitBadInteger      Code = 3001
	LitIntegerOverflow Code = 3002
	LitBadReal         Code = 3003
	LitBadBoolean      Code = 3004
	LitBadEscape       Code = 3005
	LitRealOverflow    Code = 3006

	// IO
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexEmptyToken:         "Empty token",
	LexTooManyTokens:      "Too many tokens",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnclosedBrace:      "Unclosed object",
	SynTooFewTokens:       "Too few tokens for an object",
	SynExpectValue:        "Expected value",
	SynExpectKey:          "Expected key",
	SynExpectAssign:       "Expected '='",
	SynExpectSeparator:    "Expected ',' or '}'",
	SynTrailingTokens:     "Unexpected tokens after value",
	SynDuplicateKey:       "Duplicate key",
	SynTooDeep:            "Nesting too deep",
	LitInfo:               "Literal information",
	LitBadInteger:         "Malformed integer literal",
	LitIntegerOverflow:    "Integer literal out of range",
	LitBadReal:            "Malformed real literal",
	LitBadBoolean:         "Malformed boolean literal",
	LitBadEscape:          "Malformed escape sequence",
	LitRealOverflow:       "Real literal out of range",
	IOInfo:                "IO information",
	IOLoadFileError:       "Failed to load file",
	IOCacheError:          "Parse cache failure",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LIT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
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

// Sentinel returns the error class a code belongs to, for errors.Is.
func (c Code) Sentinel() error {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return ErrScan
	case ic >= 2000 && ic < 3000:
		return ErrGrammar
	case ic >= 3000 && ic < 4000:
		return ErrLiteral
	case ic >= 4000 && ic < 5000:
		return ErrIO
	}
	return nil
}
