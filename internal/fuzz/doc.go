// Package fuzztests houses Go fuzz harnesses that exercise the document
// pipeline (source -> lexer -> parser) on arbitrary bytes. They guard
// against panics, hangs and broken token-stream invariants.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
