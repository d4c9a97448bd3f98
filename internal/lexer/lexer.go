package lexer

import (
	"fmt"

	"crypt/internal/diag"
	"crypt/internal/source"
	"crypt/internal/token"
)

// Lexer turns file content into a lossless token stream: every byte,
// whitespace and comments included, ends up inside exactly one token.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	line      uint32 // 0-based номер текущей строки
	lineStart uint32 // смещение начала текущей строки
	count     int
	err       *diag.Error
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Err returns the fatal scan error that stopped the lexer, if any.
func (lx *Lexer) Err() error {
	if lx.err == nil {
		return nil
	}
	return lx.err
}

// Next возвращает следующий токен. После EOF или фатальной ошибки всегда
// возвращает EndOfFile.
func (lx *Lexer) Next() token.Token {
	if lx.err != nil || lx.cursor.EOF() {
		return lx.eof()
	}

	start := lx.cursor.Mark()
	pos := lx.pos(uint32(start))
	ch := lx.cursor.Peek()

	var tok token.Token
	switch {
	case isNewline(ch):
		tok = lx.scanNewlines(start, pos)
	case isSpace(ch):
		tok = lx.scanWhitespace(start, pos)
	case ch == '"':
		tok = lx.scanString(start, pos)
	case lx.atNumberStart():
		tok = lx.scanNumber(start, pos)
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrWord(start, pos)
	default:
		tok = lx.scanPunctOrOperator(start, pos)
	}
	if lx.err != nil {
		return lx.eof()
	}

	if tok.Span.Empty() {
		return lx.fail(diag.LexEmptyToken, tok.Span, pos, "scanner produced an empty token")
	}
	lx.count++
	if lx.opts.MaxTokens > 0 && lx.count > lx.opts.MaxTokens {
		return lx.fail(diag.LexTooManyTokens, tok.Span, pos,
			fmt.Sprintf("token limit of %d exceeded", lx.opts.MaxTokens))
	}

	if tok.Kind == token.Newline || tok.Kind == token.String {
		lx.trackLines(tok.Span)
	}
	return tok
}

func (lx *Lexer) pos(off uint32) token.Pos {
	return token.Pos{Line: lx.line, Column: off - lx.lineStart}
}

// trackLines advances line bookkeeping over every '\n' inside sp.
func (lx *Lexer) trackLines(sp source.Span) {
	for off := sp.Start; off < sp.End; off++ {
		if lx.file.Content[off] == '\n' {
			lx.line++
			lx.lineStart = off + 1
		}
	}
}

func (lx *Lexer) emit(k token.Kind, start Mark, pos token.Pos) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Raw: lx.cursor.Bytes(sp), Pos: pos}
}

func (lx *Lexer) eof() token.Token {
	off := lx.cursor.Off
	return token.Token{
		Kind: token.EndOfFile,
		Span: source.Span{File: lx.file.ID, Start: off, End: off},
		Pos:  lx.pos(off),
	}
}

func (lx *Lexer) warn(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportWarning(lx.opts.Reporter, code, sp, msg).Emit()
}

// fail records the first fatal error, reports it and stops the lexer.
func (lx *Lexer) fail(code diag.Code, sp source.Span, pos token.Pos, msg string) token.Token {
	if lx.err == nil {
		lx.err = diag.NewErrorAt(diag.New(diag.SevError, code, sp, msg), pos.Line, pos.Column)
		lx.err.Report(lx.opts.Reporter)
	}
	return lx.eof()
}
