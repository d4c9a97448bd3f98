package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.crypt", []byte("a = 1"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("test.crypt", []byte("a = 2"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	if got := fs.Get(id2).Path; got != "test.crypt" {
		t.Errorf("Expected normalized path test.crypt, got %q", got)
	}

	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "a = 1" {
		t.Errorf("Expected first file content %q, got %q", "a = 1", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 files, got %d", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("virt", []byte("x\ny\n\nz"))
	f := fs.Get(id)

	if f.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag")
	}
	want := []uint32{1, 3, 4}
	if len(f.LineIdx) != len(want) {
		t.Fatalf("Expected LineIdx %v, got %v", want, f.LineIdx)
	}
	for i := range want {
		if f.LineIdx[i] != want[i] {
			t.Errorf("LineIdx[%d]: expected %d, got %d", i, want[i], f.LineIdx[i])
		}
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("virt", []byte("ab\ncd\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
		{6, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: expected %+v, got %+v", tt.off, tt.want, start)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("virt", []byte("first\nsecond\nthird")))

	cases := map[uint32]string{
		0: "",
		1: "first",
		2: "second",
		3: "third",
		4: "",
	}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestLoadStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.crypt")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa = 1\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 {
		t.Error("Expected FileHadBOM flag")
	}
	if string(f.Content) != "a = 1\r\n" {
		t.Errorf("unexpected content %q", f.Content)
	}
}

func TestSpanBasics(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	if !(Span{Start: 3, End: 3}).Empty() || a.Empty() || a.Len() != 10 {
		t.Error("Empty/Len mismatch")
	}
	if a.String() != "1:10-20" {
		t.Errorf("String = %q", a.String())
	}
}
