package lexer

import (
	"crypt/internal/token"
)

// scanIdentOrWord сканирует [A-Za-z_@][A-Za-z0-9_@]* и переклассифицирует
// null/true/false/func через token.LookupWord (регистрозависимо).
func (lx *Lexer) scanIdentOrWord(start Mark, pos token.Pos) token.Token {
	lx.cursor.Bump()
	lx.cursor.BumpWhile(isIdentContinueByte)

	tok := lx.emit(token.Identifier, start, pos)
	tok.Kind = token.LookupWord(string(tok.Raw))
	return tok
}
