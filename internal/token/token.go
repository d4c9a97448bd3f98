package token

import (
	"fmt"

	"crypt/internal/source"
)

// Pos is a 0-based line/column pair of a token's first byte.
type Pos struct {
	Line   uint32
	Column uint32
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Raw  []byte // view into source.File.Content
	Pos  Pos
}

// Text returns the content of the token as a string.
func (t Token) Text() string {
	return string(t.Raw)
}

// Is reports whether the token has one of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Raw, t.Pos)
}
