// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// # Data model
//
// Diagnostic is the central record: Severity (Info, Warning, Error), a
// numeric Code with a stable ID (LEXnnnn, SYNnnnn, LITnnnn, IOnnnn), a short
// Message, the Primary span and optional Notes.
//
// # Emitting diagnostics
//
// Phases report through a Reporter so that storage stays decoupled from
// production. BagReporter collects into a Bag, which supports limits and
// deterministic sorting; DedupReporter filters repeats.
//
// # Errors
//
// Fatal problems are returned as *Error, which embeds the Diagnostic and the
// 0-based line/column of the offending token. errors.Is matches the class of
// the code: ErrScan, ErrGrammar, ErrLiteral or ErrIO.
//
// Package diag performs no formatting or IO; rendering lives in
// internal/diagfmt.
package diag
