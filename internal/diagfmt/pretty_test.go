package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"crypt/internal/diag"
	"crypt/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("name = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/conf/test.crypt", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 7, End: 28},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/conf/test.crypt"},
		{"Relative path", PathModeRelative, "conf/test.crypt:1:8"},
		{"Basename only", PathModeBasename, "test.crypt:1:8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettySnippetCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.crypt", []byte("a = 1\n\tb = $\nc = 3\n"))

	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar,
		source.Span{File: fileID, Start: 11, End: 12}, "unknown character '$'"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	want := "c.crypt:2:6: WARNING LEX1001: unknown character '$'\n" +
		"2 | \tb = $\n" +
		"  | \t    ^\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPrettyContextAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("dup.crypt", []byte("a = 1,\na = 22\n"))

	d := diag.New(diag.SevWarning, diag.SynDuplicateKey,
		source.Span{File: fileID, Start: 7, End: 8}, "duplicate key \"a\"").
		WithNote(source.Span{File: fileID, Start: 0, End: 1}, "previous definition here")
	bag := diag.NewBag(0)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename, ShowNotes: true})
	out := buf.String()
	for _, want := range []string{"1 | a = 1,", "2 | a = 22", "note: dup.crypt:1:1: previous definition here"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Errorf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyWideSpan(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("w.crypt", []byte("k = \"日本\" x"))

	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevError, diag.SynTrailingTokens,
		source.Span{File: fileID, Start: 4, End: 12}, "trailing"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.Contains(buf.String(), "    ^~~~~~\n") {
		t.Fatalf("caret should cover display width 6:\n%s", buf.String())
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, "load x.crypt: no such file"))

	var buf bytes.Buffer
	Pretty(&buf, bag, nil, PrettyOpts{})
	if got := buf.String(); got != "<unknown>: ERROR IO4001: load x.crypt: no such file\n" {
		t.Fatalf("got %q", got)
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "test.crypt", "test.crypt"},
		{"Long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/file.crypt", "file.crypt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("x = 42\n"))

			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar,
				source.Span{File: fileID, Start: 4, End: 6}, "Test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			if !strings.Contains(buf.String(), tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, buf.String())
			}
		})
	}
}
