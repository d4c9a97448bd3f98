package lexer

import (
	"bytes"

	"crypt/internal/token"
)

// scanNumber: необязательный '-', затем максимальная серия цифр, букв, '.'
// и '_'. Real, если в серии есть точка, иначе Integer. Корректность
// литерала проверяет парсер при конвертации.
func (lx *Lexer) scanNumber(start Mark, pos token.Pos) token.Token {
	lx.cursor.Eat('-')
	lx.cursor.BumpWhile(isNumberBody)

	tok := lx.emit(token.Integer, start, pos)
	if bytes.IndexByte(tok.Raw, '.') >= 0 {
		tok.Kind = token.Real
	}
	return tok
}
