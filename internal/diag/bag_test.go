package diag

import (
	"errors"
	"fmt"
	"testing"

	"crypt/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		ok := b.Add(New(SevWarning, SynDuplicateKey, source.Span{Start: uint32(i)}, "dup"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
	if b.HasErrors() {
		t.Fatal("warnings must not count as errors")
	}
}

func TestBagUnlimited(t *testing.T) {
	b := NewBag(0)
	for range 100 {
		b.Add(New(SevError, SynUnexpectedToken, source.Span{}, "x"))
	}
	if b.Len() != 100 || !b.HasErrors() {
		t.Fatalf("unexpected bag state: len=%d", b.Len())
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, SynDuplicateKey, source.Span{File: 0, Start: 5, End: 6}, "b"))
	b.Add(New(SevError, SynExpectAssign, source.Span{File: 0, Start: 5, End: 6}, "a"))
	b.Add(New(SevError, LexUnknownChar, source.Span{File: 0, Start: 1, End: 2}, "c"))
	b.Sort()

	got := ""
	for _, d := range b.Items() {
		got += d.Message
	}
	if got != "cab" {
		t.Fatalf("unexpected order %q", got)
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: b})
	sp := source.Span{Start: 1, End: 2}
	r.Report(SynDuplicateKey, SevWarning, sp, "duplicate key \"a\"", nil)
	r.Report(SynDuplicateKey, SevWarning, sp, "duplicate key \"a\"", nil)
	r.Report(SynDuplicateKey, SevWarning, sp, "duplicate key \"b\"", nil)
	if b.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", b.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(10)
	rb := ReportWarning(BagReporter{Bag: b}, SynDuplicateKey, source.Span{}, "dup").
		WithNote(source.Span{Start: 3, End: 4}, "first defined here")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", b.Len())
	}
	if notes := b.Items()[0].Notes; len(notes) != 1 || notes[0].Msg != "first defined here" {
		t.Fatalf("unexpected notes %+v", notes)
	}
}

func TestCodeIDAndSentinel(t *testing.T) {
	cases := []struct {
		code Code
		id   string
		cls  error
	}{
		{LexUnterminatedString, "LEX1002", ErrScan},
		{SynUnclosedBrace, "SYN2002", ErrGrammar},
		{LitBadInteger, "LIT3001", ErrLiteral},
		{IOLoadFileError, "IO4001", ErrIO},
		{UnknownCode, "E0000", nil},
	}
	for _, tt := range cases {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.id)
		}
		if got := tt.code.Sentinel(); got != tt.cls {
			t.Errorf("%d.Sentinel() = %v, want %v", tt.code, got, tt.cls)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Error("unknown codes must fall back to the generic title")
	}
}

func TestErrorIs(t *testing.T) {
	err := NewErrorAt(New(SevWarning, LitBadInteger, source.Span{}, "unexpected 'a' in integer literal"), 2, 4)
	if err.Severity != SevError {
		t.Fatal("errors are always SevError")
	}
	wrapped := fmt.Errorf("parse failed: %w", err)
	if !errors.Is(wrapped, ErrLiteral) {
		t.Fatal("expected ErrLiteral")
	}
	if errors.Is(wrapped, ErrGrammar) {
		t.Fatal("unexpected ErrGrammar")
	}
	var de *Error
	if !errors.As(wrapped, &de) || de.Line != 2 || de.Column != 4 {
		t.Fatalf("errors.As failed: %+v", de)
	}
	if got := err.Error(); got != "3:5: LIT3001 unexpected 'a' in integer literal" {
		t.Fatalf("Error() = %q", got)
	}

	b := NewBag(1)
	err.Report(BagReporter{Bag: b})
	if !b.HasErrors() {
		t.Fatal("Report must add an error diagnostic")
	}
}

func TestSeverityNames(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SevInfo, "INFO"},
		{SevWarning, "WARNING"},
		{SevError, "ERROR"},
		{Severity(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.want)
		}
	}
	if !SevError.AtLeast(SevWarning) || SevWarning.AtLeast(SevError) || !SevInfo.AtLeast(SevInfo) {
		t.Fatal("AtLeast ordering broken")
	}
}
