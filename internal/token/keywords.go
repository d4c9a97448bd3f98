package token

// NullWord is the spelling of the null literal.
const NullWord = "null"

// Spellings of the boolean literals.
const (
	FalseWord = "false"
	TrueWord  = "true"
)

var words = map[string]Kind{
	NullWord:  Null,
	FalseWord: Boolean,
	TrueWord:  Boolean,
	"func":    Keyword,
}

// LookupWord classifies an identifier lexeme. Matching is exact and
// case-sensitive; anything not in the tables is an Identifier.
func LookupWord(ident string) Kind {
	if k, ok := words[ident]; ok {
		return k
	}
	return Identifier
}
