package diag

import (
	"errors"
	"fmt"
)

// Error classes. Every *Error matches exactly one of them through errors.Is.
var (
	ErrScan    = errors.New("lexical scan error")
	ErrGrammar = errors.New("grammar error")
	ErrLiteral = errors.New("literal conversion error")
	ErrIO      = errors.New("io error")
)

// Error is a fatal diagnostic returned to the caller of a pipeline phase.
// Line and Column are 0-based, matching token positions.
type Error struct {
	Diagnostic
	Line   uint32
	Column uint32
}

// NewErrorAt builds a fatal error for code at the given position.
func NewErrorAt(d Diagnostic, line, column uint32) *Error {
	d.Severity = SevError
	return &Error{Diagnostic: d, Line: line, Column: column}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s %s", e.Line+1, e.Column+1, e.Code.ID(), e.Message)
}

// Is matches the error class of the code.
func (e *Error) Is(target error) bool {
	s := e.Code.Sentinel()
	return s != nil && s == target
}

// Report forwards the error to r as an error diagnostic.
func (e *Error) Report(r Reporter) {
	if r == nil || e == nil {
		return
	}
	r.Report(e.Code, SevError, e.Primary, e.Message, e.Notes)
}
