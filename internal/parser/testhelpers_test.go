package parser_test

import (
	"testing"

	"crypt/internal/diag"
	"crypt/internal/lexer"
	"crypt/internal/parser"
	"crypt/internal/token"
	"crypt/internal/variant"
)

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := lexer.TokenizeBytes([]byte(src), len(src), lexer.Options{})
	if err != nil {
		t.Fatalf("tokenize %q: %v", src, err)
	}
	return toks
}

func mustParse(t *testing.T, src string) variant.Value {
	t.Helper()
	v, err := parser.ParseDocument(lex(t, src), parser.Options{})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return v
}

func parseWithBag(t *testing.T, src string, opts parser.Options) (variant.Value, *diag.Bag, error) {
	t.Helper()
	bag := diag.NewBag(0)
	opts.Reporter = diag.BagReporter{Bag: bag}
	v, err := parser.ParseDocument(lex(t, src), opts)
	return v, bag, err
}

func expectEqual(t *testing.T, src string, got, want variant.Value) {
	t.Helper()
	if !variant.Equal(got, want) {
		t.Fatalf("parse %q:\n got %s\nwant %s", src, got, want)
	}
}

// list и table: короткие конструкторы для ожидаемых деревьев.
func list(items ...variant.Value) variant.Value { return variant.List(items...) }

func table(kv ...any) variant.Value {
	entries := make([]variant.Entry, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		entries = append(entries, variant.Entry{Key: kv[i].(string), Value: kv[i+1].(variant.Value)})
	}
	return variant.TableOf(entries...)
}

func lexerTokens(src []byte) ([]token.Token, error) {
	return lexer.TokenizeBytes(src, len(src), lexer.Options{})
}
