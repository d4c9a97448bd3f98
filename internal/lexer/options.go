package lexer

import (
	"crypt/internal/diag"
)

type Options struct {
	// Reporter получает предупреждения и фатальную ошибку; может быть nil.
	Reporter diag.Reporter
	// MaxTokens limits the token count; 0 means unlimited.
	MaxTokens int
}
