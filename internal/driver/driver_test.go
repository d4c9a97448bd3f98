package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"crypt/internal/diag"
	"crypt/internal/variant"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "app.crypt", "name = \"svc\", port = 8080, tags = {\"a\", \"b\"}\n")

	res, err := Parse(p, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := variant.TableOf(
		variant.Entry{Key: "name", Value: variant.String("svc")},
		variant.Entry{Key: "port", Value: variant.Int(8080)},
		variant.Entry{Key: "tags", Value: variant.List(variant.String("a"), variant.String("b"))},
	)
	if !variant.Equal(res.Value, want) {
		t.Fatalf("value = %s, want %s", res.Value, want)
	}
	if len(res.Tokens) == 0 {
		t.Fatalf("tokens not kept")
	}
	if res.Cached {
		t.Fatalf("fresh parse reported as cached")
	}
	if len(res.Timing.Phases) != 3 {
		t.Fatalf("timing phases = %d, want load, lex, parse", len(res.Timing.Phases))
	}
}

func TestParseMissingFile(t *testing.T) {
	res, err := Parse(filepath.Join(t.TempDir(), "nope.crypt"), ParseOptions{})
	if res != nil {
		t.Fatalf("expected nil result")
	}
	if !errors.Is(err, diag.ErrIO) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want io and not-exist", err)
	}
}

func TestParseSourceError(t *testing.T) {
	res, err := ParseSource("bad.crypt", []byte("a = {1, 2"), ParseOptions{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, diag.ErrGrammar) {
		t.Fatalf("err = %v, want grammar class", err)
	}
	if res == nil || !res.Bag.HasErrors() {
		t.Fatalf("error not collected in bag")
	}
	var de *diag.Error
	if !errors.As(err, &de) || de.Code != diag.SynUnclosedBrace {
		t.Fatalf("err = %#v, want unclosed brace", err)
	}
}

func TestTokenizeScanError(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "s.crypt", "a = \"open")
	res, err := Tokenize(p, 0)
	if !errors.Is(err, diag.ErrScan) {
		t.Fatalf("err = %v, want scan class", err)
	}
	if res == nil || res.Bag.Len() == 0 {
		t.Fatalf("scan error not collected")
	}
}

func TestParseCacheHitReplaysWarnings(t *testing.T) {
	cache, err := NewParseCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	p := writeFile(t, dir, "dup.crypt", "a = 1, a = 2")
	opts := ParseOptions{Cache: cache}

	first, err := Parse(p, opts)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	if first.Cached || first.Bag.Len() != 1 || first.Bag.HasErrors() {
		t.Fatalf("first parse: cached=%v diagnostics=%d", first.Cached, first.Bag.Len())
	}

	second, err := Parse(p, opts)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !second.Cached {
		t.Fatalf("second parse missed the cache")
	}
	if second.Tokens != nil {
		t.Fatalf("cached result carries tokens")
	}
	if !variant.Equal(first.Value, second.Value) {
		t.Fatalf("cached value %s != %s", second.Value, first.Value)
	}
	if second.Bag.Len() != first.Bag.Len() {
		t.Fatalf("replayed %d diagnostics, want %d", second.Bag.Len(), first.Bag.Len())
	}
	got := second.Bag.Items()[0]
	if got.Code != diag.SynDuplicateKey || got.Primary.File != second.File.ID {
		t.Fatalf("replayed diagnostic = %+v", got)
	}
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	var content [32]byte
	content[0] = 1
	base := CacheKey(content, ParseOptions{})
	if base != CacheKey(content, ParseOptions{MaxDiagnostics: 5}) {
		t.Fatalf("diagnostic limit must not change the key")
	}
	if base == CacheKey(content, ParseOptions{Lenient: true}) {
		t.Fatalf("lenient mode must change the key")
	}
	if base == CacheKey(content, ParseOptions{MaxDepth: 3}) {
		t.Fatalf("depth limit must change the key")
	}
}

func TestParseCacheCorruptEntry(t *testing.T) {
	cache, err := NewParseCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := []byte("x = true")
	first, err := ParseSource("c.crypt", src, ParseOptions{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey(first.File.Hash, ParseOptions{Cache: cache})
	if err := os.WriteFile(cache.pathFor(key), []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}

	res, err := ParseSource("c.crypt", src, ParseOptions{Cache: cache})
	if err != nil {
		t.Fatalf("corrupt cache must not fail the parse: %v", err)
	}
	if res.Cached {
		t.Fatalf("corrupt entry served as hit")
	}
	items := res.Bag.Items()
	if len(items) == 0 || items[0].Code != diag.IOCacheError || items[0].Severity != diag.SevWarning {
		t.Fatalf("want cache warning, got %+v", items)
	}
}

func TestParseCacheDropAll(t *testing.T) {
	cache, err := NewParseCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	var key Digest
	if err := cache.Put(key, newCacheEntry(variant.Int(1), diag.NewBag(0))); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(key); !ok {
		t.Fatalf("entry not stored")
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("after DropAll: ok=%v err=%v", ok, err)
	}
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "conf/b.crypt", "1")
	a := writeFile(t, dir, "conf/a.crypt", "2")
	writeFile(t, dir, "conf/readme.txt", "skip")
	nested := writeFile(t, dir, "conf/sub/c.crypt", "3")
	single := writeFile(t, dir, "single.cfg", "4")

	got, err := ExpandPaths([]string{single, filepath.Join(dir, "conf")})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{single, a, b, nested}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if _, err := ExpandPaths([]string{filepath.Join(dir, "missing")}); !errors.Is(err, diag.ErrIO) {
		t.Fatalf("missing path: err = %v", err)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func TestParseFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "1.crypt", "a = 1"),
		writeFile(t, dir, "2.crypt", "{1, 2"),
		filepath.Join(dir, "3.crypt"),
		writeFile(t, dir, "4.crypt", "\"four\""),
	}
	sink := &recordingSink{}

	results, err := ParseFiles(context.Background(), paths, ParseOptions{Progress: sink}, 2)
	if err != nil {
		t.Fatalf("ParseFiles: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("results = %d", len(results))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Fatalf("results[%d].Path = %s, want %s", i, r.Path, paths[i])
		}
		if r.Bag == nil {
			t.Fatalf("results[%d].Bag is nil", i)
		}
	}
	if results[0].Err != nil || results[3].Err != nil {
		t.Fatalf("unexpected errors: %v, %v", results[0].Err, results[3].Err)
	}
	if !errors.Is(results[1].Err, diag.ErrGrammar) {
		t.Fatalf("results[1].Err = %v", results[1].Err)
	}
	if results[2].Result != nil || results[2].Bag.Items()[0].Code != diag.IOLoadFileError {
		t.Fatalf("missing file not reported as load error")
	}
	if !variant.Equal(results[3].Value(), variant.String("four")) {
		t.Fatalf("results[3] = %s", results[3].Value())
	}

	sum := Summarize(results)
	if sum.Files != 4 || sum.Failed != 2 {
		t.Fatalf("summary = %+v", sum)
	}

	finished := 0
	for _, evt := range sink.events {
		if evt.Status == StatusDone || evt.Status == StatusError || evt.Status == StatusCached {
			finished++
		}
	}
	if finished != len(paths) {
		t.Fatalf("finished events = %d, want %d", finished, len(paths))
	}
}

func TestParseFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.crypt", "1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := ParseFiles(ctx, []string{p, p}, ParseOptions{}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	for i, r := range results {
		if r.Path != p || r.Bag == nil || !errors.Is(r.Err, context.Canceled) {
			t.Fatalf("results[%d] = %+v, want a filled cancelled entry", i, r)
		}
		if r.FileSet() != nil || !r.Value().IsNull() {
			t.Fatalf("results[%d] has a value after cancellation", i)
		}
	}
	if sum := Summarize(results); sum.Failed != 2 {
		t.Fatalf("summary = %+v", sum)
	}
}
