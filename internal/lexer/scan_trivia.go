package lexer

import "crypt/internal/token"

// scanNewlines: максимальная серия '\n' → один Newline.
func (lx *Lexer) scanNewlines(start Mark, pos token.Pos) token.Token {
	lx.cursor.BumpWhile(isNewline)
	return lx.emit(token.Newline, start, pos)
}

// scanWhitespace: максимальная серия ' ', '\t', '\r', '\v', '\f'.
func (lx *Lexer) scanWhitespace(start Mark, pos token.Pos) token.Token {
	lx.cursor.BumpWhile(isSpace)
	return lx.emit(token.Whitespace, start, pos)
}
