// Package testkit holds checks shared by tests and fuzz harnesses.
package testkit

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"crypt/internal/source"
	"crypt/internal/token"
)

// CheckTokenInvariants verifies a token stream produced for sf:
// 1) every token span is non-empty and points into sf
// 2) spans are contiguous and cover the whole content (lossless)
// 3) Pos agrees with the line index of fs
// 4) Raw is the spanned text, minus the quotes for strings
func CheckTokenInvariants(fs *source.FileSet, sf *source.File, toks []token.Token) error {
	if fs == nil || sf == nil {
		return fmt.Errorf("nil file set or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var off uint32
	for i, tok := range toks {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.Empty() {
			return fmt.Errorf("token %d (%s): empty span %v", i, tok.Kind, sp)
		}
		if sp.Start != off {
			return fmt.Errorf("token %d (%s): starts at %d, previous ended at %d", i, tok.Kind, sp.Start, off)
		}
		if sp.End > lenContent {
			return fmt.Errorf("token %d (%s): span end beyond content: %d > %d", i, tok.Kind, sp.End, lenContent)
		}
		off = sp.End

		lc, _ := fs.Resolve(sp)
		if lc.Line-1 != tok.Pos.Line || lc.Col-1 != tok.Pos.Column {
			return fmt.Errorf("token %d (%s): pos %v, line index says %d:%d", i, tok.Kind, tok.Pos, lc.Line-1, lc.Col-1)
		}

		text := sf.Content[sp.Start:sp.End]
		if tok.Kind == token.String {
			text = text[1 : len(text)-1]
		}
		if !bytes.Equal(tok.Raw, text) {
			return fmt.Errorf("token %d (%s): raw %q, source has %q", i, tok.Kind, tok.Raw, text)
		}
	}
	if off != lenContent {
		return fmt.Errorf("tokens cover %d of %d bytes", off, lenContent)
	}
	return nil
}
