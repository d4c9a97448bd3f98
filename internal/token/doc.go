// Package token defines lexical token kinds for the crypt configuration language.
// Invariants:
//   - Token.Raw is a slice of the original source (no copies).
//   - Token.Span covers the whole lexeme; for string literals Raw excludes
//     the surrounding quotes while Span includes them.
//   - Whitespace, newlines and comments are ordinary tokens; the stream is
//     lossless and the parser decides what to skip.
//   - EndOfFile is produced by the lexer's Next but never appears in a
//     tokenize result.
package token
