package lexer

import (
	"crypt/internal/diag"
	"crypt/internal/token"
)

// scanString читает "..." целиком. '\' экранирует следующий байт, который
// берётся как есть; расшифровка escape-последовательностей остаётся парсеру.
// Raw содержит байты строго между кавычками, Span покрывает обе кавычки.
func (lx *Lexer) scanString(start Mark, pos token.Pos) token.Token {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			sp := lx.cursor.SpanFrom(start)
			return token.Token{
				Kind: token.String,
				Span: sp,
				Raw:  lx.file.Content[sp.Start+1 : sp.End-1 : sp.End-1],
				Pos:  pos,
			}
		case '\\':
			lx.cursor.Bump()
		}
	}
	// EOF без закрывающей кавычки
	return lx.fail(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), pos, "unterminated string literal")
}
