package lexer

import (
	"crypt/internal/source"
	"testing"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.crypt", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("Peek/Bump after EOF must return 0")
	}
}

func TestPeek2AtEnd(t *testing.T) {
	cursor := NewCursor(createFile("ab"))
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatal("Peek2 must fail with one byte left")
	}
}

func TestBumpWhileAndSpan(t *testing.T) {
	cursor := NewCursor(createFile("   x"))
	m := cursor.Mark()
	if n := cursor.BumpWhile(isSpace); n != 3 {
		t.Fatalf("BumpWhile = %d, want 3", n)
	}
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 3 {
		t.Fatalf("span = %v", sp)
	}
	raw := cursor.Bytes(sp)
	if string(raw) != "   " || cap(raw) != 3 {
		t.Fatalf("Bytes = %q cap %d", raw, cap(raw))
	}
	if cursor.Eat('y') || !cursor.Eat('x') || !cursor.EOF() {
		t.Fatal("Eat mismatch")
	}
}
