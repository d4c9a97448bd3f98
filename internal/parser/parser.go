package parser

import (
	"bytes"
	"fmt"

	"crypt/internal/diag"
	"crypt/internal/source"
	"crypt/internal/token"
	"crypt/internal/variant"
)

// parser это состояние разбора одного потока токенов.
type parser struct {
	toks  []token.Token
	pos   int // индекс текущего токена
	opts  Options
	depth int
}

// ParseValue parses one value starting at *cursor and moves *cursor past
// the consumed tokens. Trivia and comments before the value are skipped;
// anything after it is left alone. On error *cursor is unchanged.
func ParseValue(tokens []token.Token, cursor *int, opts Options) (variant.Value, error) {
	p := &parser{toks: tokens, pos: *cursor, opts: opts}
	v, err := p.value()
	if err != nil {
		return variant.Value{}, err
	}
	*cursor = p.pos
	return v, nil
}

// ParseDocument parses a whole token stream.
//
// An empty document is an empty Table. A document starting with `key =`
// is an implicit table body closed by the end of input. Anything else must
// be exactly one value followed only by trivia.
func ParseDocument(tokens []token.Token, opts Options) (variant.Value, error) {
	p := &parser{toks: tokens, opts: opts}

	first := p.skipFrom(0)
	if first == len(tokens) {
		return variant.Table(nil), nil
	}
	if p.startsMember(first) {
		p.pos = first
		return p.members(nil)
	}

	v, err := p.value()
	if err != nil {
		return variant.Value{}, err
	}
	p.skip()
	if !p.eof() {
		tok := p.cur()
		return variant.Value{}, p.errorAt(tok, diag.SynTrailingTokens,
			fmt.Sprintf("unexpected %s after the document value", describe(tok)))
	}
	return v, nil
}

// skipFrom возвращает индекс первого значимого токена, начиная с i:
// пропускает Whitespace, Newline и комментарии ('#' до Newline включительно).
func (p *parser) skipFrom(i int) int {
	for i < len(p.toks) {
		switch p.toks[i].Kind {
		case token.Whitespace, token.Newline:
			i++
		case token.CommentPrefix:
			i++
			for i < len(p.toks) && p.toks[i].Kind != token.Newline {
				i++
			}
			if i < len(p.toks) {
				i++
			}
		default:
			return i
		}
	}
	return i
}

func (p *parser) skip() {
	p.pos = p.skipFrom(p.pos)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *parser) at(k token.Kind) bool {
	return !p.eof() && p.toks[p.pos].Kind == k
}

// startsMember reports whether the useful token at i is a key followed by '='.
func (p *parser) startsMember(i int) bool {
	if i >= len(p.toks) || !p.toks[i].Kind.IsKey() {
		return false
	}
	j := p.skipFrom(i + 1)
	return j < len(p.toks) && p.toks[j].Kind == token.AssignOp
}

// endToken is a zero-width token just past the last one, used to place
// errors about a premature end of input.
func (p *parser) endToken() token.Token {
	if len(p.toks) == 0 {
		return token.Token{Kind: token.EndOfFile}
	}
	last := p.toks[len(p.toks)-1]
	pos := last.Pos
	switch {
	case last.Kind == token.Newline:
		pos.Line += last.Span.Len()
		pos.Column = 0
	case last.Kind == token.String && bytes.IndexByte(last.Raw, '\n') >= 0:
		pos.Line += uint32(bytes.Count(last.Raw, []byte{'\n'}))
		pos.Column = uint32(len(last.Raw)-bytes.LastIndexByte(last.Raw, '\n')-1) + 1
	default:
		pos.Column += last.Span.Len()
	}
	return token.Token{
		Kind: token.EndOfFile,
		Span: source.Span{File: last.Span.File, Start: last.Span.End, End: last.Span.End},
		Pos:  pos,
	}
}

// errorAt builds the fatal error for tok and reports it.
func (p *parser) errorAt(tok token.Token, code diag.Code, msg string) error {
	e := diag.NewErrorAt(diag.New(diag.SevError, code, tok.Span, msg), tok.Pos.Line, tok.Pos.Column)
	e.Report(p.opts.Reporter)
	return e
}

func (p *parser) warn(tok token.Token, code diag.Code, msg string) *diag.ReportBuilder {
	return diag.ReportWarning(p.opts.Reporter, code, tok.Span, msg)
}

func describe(tok token.Token) string {
	if tok.Kind == token.EndOfFile {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", tok.Kind, tok.Raw)
}
