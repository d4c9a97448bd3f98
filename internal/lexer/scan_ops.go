package lexer

import (
	"fmt"

	"crypt/internal/diag"
	"crypt/internal/token"
)

// Жадность: сначала 2-символьные, затем 1-символьные.
func (lx *Lexer) scanPunctOrOperator(start Mark, pos token.Pos) token.Token {
	emit := func(k token.Kind) token.Token {
		return lx.emit(k, start, pos)
	}

	switch {
	case lx.try2('+', '='):
		return emit(token.AddEqOp)
	case lx.try2('-', '='):
		return emit(token.SubEqOp)
	case lx.try2('*', '='):
		return emit(token.MulEqOp)
	case lx.try2('/', '='):
		return emit(token.DivEqOp)
	case lx.try2('=', '='):
		return emit(token.EqualityOp)
	case lx.try2('!', '='):
		return emit(token.InEqualityOp)
	case lx.try2('&', '='):
		return emit(token.BitAndEqOp)
	case lx.try2('|', '='):
		return emit(token.BitOrEqOp)
	case lx.try2('~', '='):
		return emit(token.BitNotEqOp)
	case lx.try2('&', '&'):
		return emit(token.AndOp)
	case lx.try2('|', '|'):
		return emit(token.OrOp)
	}

	// односимвольные
	ch := lx.cursor.Bump()
	switch ch {
	case ',':
		return emit(token.Comma)
	case '{':
		return emit(token.BraceOpen)
	case '}':
		return emit(token.BraceClose)
	case '(':
		return emit(token.ParenthesisOpen)
	case ')':
		return emit(token.ParenthesisClose)
	case '#':
		return emit(token.CommentPrefix)
	case '+':
		return emit(token.AddOp)
	case '-':
		return emit(token.SubOp)
	case '*':
		return emit(token.MulOp)
	case '/':
		return emit(token.DivOp)
	case '=':
		return emit(token.AssignOp)
	case '!':
		return emit(token.NotOp)
	case '~':
		return emit(token.BitNotOp)
	case '&', '|':
		tok := emit(token.Unknown)
		lx.warn(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unexpected %q, did you mean %q?", ch, string([]byte{ch, ch})))
		return tok
	default:
		// неизвестный символ
		tok := emit(token.Unknown)
		lx.warn(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", ch))
		return tok
	}
}
