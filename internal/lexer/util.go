package lexer

// ===== Классификаторы =====

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStartByte(b byte) bool {
	return isLetter(b) || b == '_' || b == '@'
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

// isNumberBody covers everything a number lexeme may swallow; the parser
// rejects malformed bodies such as "12a" or "1.2.3".
func isNumberBody(b byte) bool {
	return isDec(b) || isLetter(b) || b == '.' || b == '_'
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

func isNewline(b byte) bool { return b == '\n' }

// atNumberStart: цифра, либо '-' сразу за которым цифра.
func (lx *Lexer) atNumberStart() bool {
	b0 := lx.cursor.Peek()
	if isDec(b0) {
		return true
	}
	_, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '-' && isDec(b1)
}

// ===== Матчеры последовательностей операторов (жадность) =====

// try2 пробует "съесть" 2 байта, если совпадает.
func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}
