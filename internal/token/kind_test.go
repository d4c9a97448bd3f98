package token_test

import (
	"testing"

	"crypt/internal/token"
)

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Unknown:      "Unknown",
		token.EndOfFile:    "EndOfFile",
		token.InEqualityOp: "InEqualityOp",
		token.BitNotEqOp:   "BitNotEqOp",
		token.Comma:        "Comma",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
	if got := token.Kind(200).String(); got != "Kind(?)" {
		t.Errorf("out of range kind = %q", got)
	}
}

func TestIsOperator(t *testing.T) {
	ops := []token.Kind{
		token.AddOp, token.SubOp, token.MulOp, token.DivOp,
		token.AddEqOp, token.SubEqOp, token.MulEqOp, token.DivEqOp,
		token.AssignOp, token.EqualityOp, token.NotOp, token.InEqualityOp,
		token.AndOp, token.OrOp, token.BitAndOp, token.BitOrOp, token.BitNotOp,
		token.BitAndEqOp, token.BitOrEqOp, token.BitNotEqOp,
	}
	for _, k := range ops {
		if !k.IsOperator() {
			t.Fatalf("%v should be operator", k)
		}
	}
	non := []token.Kind{token.Identifier, token.Real, token.ParenthesisOpen, token.Comma}
	for _, k := range non {
		if k.IsOperator() {
			t.Fatalf("%v must NOT be operator", k)
		}
	}
}

func TestScalarAndKeyKinds(t *testing.T) {
	for _, k := range []token.Kind{token.Null, token.Boolean, token.String, token.Integer, token.Real} {
		if !k.IsScalar() {
			t.Errorf("%v should be scalar", k)
		}
	}
	if token.Identifier.IsScalar() || token.BraceOpen.IsScalar() {
		t.Error("identifier/brace must not be scalar")
	}
	if !token.Identifier.IsKey() || !token.String.IsKey() || token.Integer.IsKey() {
		t.Error("IsKey mismatch")
	}
	if !token.Whitespace.IsTrivia() || !token.Newline.IsTrivia() || token.CommentPrefix.IsTrivia() {
		t.Error("IsTrivia mismatch")
	}
}

func TestTokenTextIsView(t *testing.T) {
	src := []byte("abc")
	tok := token.Token{Kind: token.Identifier, Raw: src[0:2]}
	src[0] = 'x'
	if tok.Text() != "xb" {
		t.Fatalf("Raw must alias the source buffer, got %q", tok.Text())
	}
	if !tok.Is(token.String, token.Identifier) || tok.Is(token.Comma) {
		t.Fatal("Is mismatch")
	}
}
