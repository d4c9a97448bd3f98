package lexer

import (
	"bytes"

	"crypt/internal/source"
	"crypt/internal/token"
)

// Tokenize scans the whole file. The EndOfFile token is not part of the
// result. On a fatal scan error no tokens are returned.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	// грубая оценка: ~1 токен на 4 байта
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		if tok.Kind == token.EndOfFile {
			break
		}
		toks = append(toks, tok)
	}
	if err := lx.Err(); err != nil {
		return nil, err
	}
	return toks, nil
}

// TokenizeBytes scans src[:length]. A zero length means src is
// NUL-terminated: scanning stops at the first NUL byte, or at the end of
// src when there is none. Token Raw views point into src.
func TokenizeBytes(src []byte, length int, opts Options) ([]token.Token, error) {
	if length == 0 {
		length = len(src)
		if i := bytes.IndexByte(src, 0); i >= 0 {
			length = i
		}
	}
	length = max(0, min(length, len(src)))
	file := &source.File{
		Path:    "<input>",
		Content: src[:length],
		Flags:   source.FileVirtual,
	}
	return Tokenize(file, opts)
}
