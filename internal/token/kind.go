package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Unknown is a single byte the lexer could not classify.
	Unknown Kind = iota
	// EndOfFile marks the end of the source input.
	EndOfFile

	// CommentPrefix is the '#' that starts a line comment.
	CommentPrefix // #

	// Whitespace is a run of ' ', '\t', '\r', '\v', '\f'.
	Whitespace
	// Newline is a run of '\n'.
	Newline

	// Null represents the 'null' literal.
	Null // null
	// Boolean represents the 'true' and 'false' literals.
	Boolean
	// Keyword represents a reserved word.
	Keyword
	// String represents a double-quoted string literal.
	String
	// Identifier represents a bare name.
	Identifier
	// Integer represents an integer literal.
	Integer
	// Real represents a literal with a decimal point.
	Real

	AddOp        // +
	SubOp        // -
	MulOp        // *
	DivOp        // /
	AddEqOp      // +=
	SubEqOp      // -=
	MulEqOp      // *=
	DivEqOp      // /=
	AssignOp     // =
	EqualityOp   // ==
	NotOp        // !
	InEqualityOp // !=
	AndOp        // &&
	OrOp         // ||
	// BitAndOp and BitOrOp are part of the vocabulary but a lone '&' or '|'
	// is lexed as Unknown.
	BitAndOp   // &
	BitOrOp    // |
	BitNotOp   // ~
	BitAndEqOp // &=
	BitOrEqOp  // |=
	BitNotEqOp // ~=

	ParenthesisOpen  // (
	ParenthesisClose // )
	BraceOpen        // {
	BraceClose       // }
	Comma            // ,

	kindCount
)

var kindNames = [...]string{
	Unknown:          "Unknown",
	EndOfFile:        "EndOfFile",
	CommentPrefix:    "CommentPrefix",
	Whitespace:       "Whitespace",
	Newline:          "Newline",
	Null:             "Null",
	Boolean:          "Boolean",
	Keyword:          "Keyword",
	String:           "String",
	Identifier:       "Identifier",
	Integer:          "Integer",
	Real:             "Real",
	AddOp:            "AddOp",
	SubOp:            "SubOp",
	MulOp:            "MulOp",
	DivOp:            "DivOp",
	AddEqOp:          "AddEqOp",
	SubEqOp:          "SubEqOp",
	MulEqOp:          "MulEqOp",
	DivEqOp:          "DivEqOp",
	AssignOp:         "AssignOp",
	EqualityOp:       "EqualityOp",
	NotOp:            "NotOp",
	InEqualityOp:     "InEqualityOp",
	AndOp:            "AndOp",
	OrOp:             "OrOp",
	BitAndOp:         "BitAndOp",
	BitOrOp:          "BitOrOp",
	BitNotOp:         "BitNotOp",
	BitAndEqOp:       "BitAndEqOp",
	BitOrEqOp:        "BitOrEqOp",
	BitNotEqOp:       "BitNotEqOp",
	ParenthesisOpen:  "ParenthesisOpen",
	ParenthesisClose: "ParenthesisClose",
	BraceOpen:        "BraceOpen",
	BraceClose:       "BraceClose",
	Comma:            "Comma",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsTrivia reports whether the kind is skipped by the parser between
// meaningful tokens (comments are skipped separately, up to the newline).
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Newline
}

// IsScalar reports whether the kind is a literal that maps to a single value.
func (k Kind) IsScalar() bool {
	switch k {
	case Null, Boolean, String, Integer, Real:
		return true
	default:
		return false
	}
}

// IsOperator reports whether the kind is an arithmetic, logical or
// assignment operator.
func (k Kind) IsOperator() bool {
	return k >= AddOp && k <= BitNotEqOp
}

// IsKey reports whether a token of this kind may name a table entry.
func (k Kind) IsKey() bool {
	return k == Identifier || k == String
}
