package parser

import (
	"fmt"

	"crypt/internal/diag"
	"crypt/internal/source"
	"crypt/internal/token"
	"crypt/internal/trace"
	"crypt/internal/variant"
)

// object разбирает '{ ... }'. Список или таблица решается просмотром
// двух значимых токенов после '{'.
func (p *parser) object() (variant.Value, error) {
	open := p.cur()
	if len(p.toks)-p.pos < 2 {
		return variant.Value{}, p.errorAt(open, diag.SynTooFewTokens, "object literal needs at least '{' and '}'")
	}
	if p.depth >= p.opts.maxDepth() {
		return variant.Value{}, p.errorAt(open, diag.SynTooDeep,
			fmt.Sprintf("objects nested deeper than %d", p.opts.maxDepth()))
	}
	p.depth++
	defer func() { p.depth-- }()

	p.pos++
	if p.isList() {
		trace.Point(p.opts.Tracer, trace.ScopeNode, "object", "list at "+open.Pos.String(), p.opts.TraceParent)
		return p.elements(open)
	}
	trace.Point(p.opts.Tracer, trace.ScopeNode, "object", "table at "+open.Pos.String(), p.opts.TraceParent)
	return p.members(&open)
}

// isList: первый значимый токен не ключ → список; иначе за ключом '=' → таблица,
// ',' → список, всё остальное (или конец ввода) → таблица.
func (p *parser) isList() bool {
	i := p.skipFrom(p.pos)
	if i >= len(p.toks) || !p.toks[i].Kind.IsKey() {
		return true
	}
	j := p.skipFrom(i + 1)
	return j < len(p.toks) && p.toks[j].Kind == token.Comma
}

// elements разбирает тело списка после '{' вплоть до '}' включительно.
func (p *parser) elements(open token.Token) (variant.Value, error) {
	var items []variant.Value
	for {
		p.skip()
		if p.eof() {
			return variant.Value{}, p.unclosed(open)
		}
		if p.at(token.BraceClose) {
			p.pos++
			return variant.List(items...), nil
		}

		v, err := p.value()
		if err != nil {
			return variant.Value{}, err
		}
		items = append(items, v)

		closed, err := p.separator(&open)
		if err != nil {
			return variant.Value{}, err
		}
		if closed {
			return variant.List(items...), nil
		}
	}
}

// members разбирает пары `key = value` до '}' включительно, либо до конца
// ввода, когда open == nil (неявная таблица верхнего уровня).
func (p *parser) members(open *token.Token) (variant.Value, error) {
	entries := make(map[string]variant.Value)
	keySpans := make(map[string]source.Span)
	for {
		p.skip()
		if p.eof() {
			if open == nil {
				return variant.Table(entries), nil
			}
			return variant.Value{}, p.unclosed(*open)
		}
		if open != nil && p.at(token.BraceClose) {
			p.pos++
			return variant.Table(entries), nil
		}

		keyTok := p.cur()
		if !keyTok.Kind.IsKey() {
			return variant.Value{}, p.errorAt(keyTok, diag.SynExpectKey,
				fmt.Sprintf("expected key, found %s", describe(keyTok)))
		}
		p.pos++

		p.skip()
		if p.eof() {
			return variant.Value{}, p.errorAt(p.endToken(), diag.SynExpectAssign,
				fmt.Sprintf("expected '=' after key %q, found end of input", keyTok.Raw))
		}
		if !p.at(token.AssignOp) {
			tok := p.cur()
			return variant.Value{}, p.errorAt(tok, diag.SynExpectAssign,
				fmt.Sprintf("expected '=' after key %q, found %s", keyTok.Raw, describe(tok)))
		}
		p.pos++

		v, err := p.value()
		if err != nil {
			return variant.Value{}, err
		}

		// ключ это сырой текст токена, без обработки escape
		key := keyTok.Text()
		if prev, dup := keySpans[key]; dup {
			p.warn(keyTok, diag.SynDuplicateKey, fmt.Sprintf("duplicate key %q, the last value wins", key)).
				WithNote(prev, "previous definition here").
				Emit()
		}
		entries[key] = v
		keySpans[key] = keyTok.Span

		closed, err := p.separator(open)
		if err != nil {
			return variant.Value{}, err
		}
		if closed {
			return variant.Table(entries), nil
		}
	}
}

// separator ждёт ',' или закрывающую '}'. closed сообщает, что объект
// закрыт (для таблицы верхнего уровня: что ввод закончился).
func (p *parser) separator(open *token.Token) (closed bool, err error) {
	p.skip()
	if p.eof() {
		if open == nil {
			return true, nil
		}
		return false, p.unclosed(*open)
	}

	tok := p.cur()
	switch {
	case tok.Kind == token.Comma:
		p.pos++
		return false, nil
	case tok.Kind == token.BraceClose && open != nil:
		p.pos++
		return true, nil
	}

	want := "',' or '}'"
	if open == nil {
		want = "','"
	}
	msg := fmt.Sprintf("expected %s after element, found %s", want, describe(tok))
	if p.opts.TolerateMissingSeparators {
		p.warn(tok, diag.SynExpectSeparator, msg).Emit()
		return false, nil
	}
	return false, p.errorAt(tok, diag.SynExpectSeparator, msg)
}

func (p *parser) unclosed(open token.Token) error {
	end := p.endToken()
	e := diag.NewErrorAt(
		diag.New(diag.SevError, diag.SynUnclosedBrace, open.Span, "unclosed '{', reached end of input").
			WithNote(end.Span, "input ends here"),
		open.Pos.Line, open.Pos.Column)
	e.Report(p.opts.Reporter)
	return e
}
