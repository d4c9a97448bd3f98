package parser

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"crypt/internal/diag"
	"crypt/internal/token"
	"crypt/internal/variant"

	"fortio.org/safecast"
)

// value разбирает одно значение: скаляр (ровно один токен) или объект.
func (p *parser) value() (variant.Value, error) {
	p.skip()
	if p.eof() {
		return variant.Value{}, p.errorAt(p.endToken(), diag.SynExpectValue, "expected value, found end of input")
	}

	tok := p.cur()
	var (
		v   variant.Value
		err error
	)
	switch tok.Kind {
	case token.BraceOpen:
		return p.object()
	case token.Null:
		v = variant.Null()
	case token.String:
		v, err = p.stringLit(tok)
	case token.Integer:
		v, err = p.intLit(tok)
	case token.Real:
		v, err = p.realLit(tok)
	case token.Boolean:
		v, err = p.boolLit(tok)
	default:
		return variant.Value{}, p.errorAt(tok, diag.SynExpectValue,
			fmt.Sprintf("expected value, found %s", describe(tok)))
	}
	if err != nil {
		return variant.Value{}, err
	}
	p.pos++
	return v, nil
}

func (p *parser) stringLit(tok token.Token) (variant.Value, error) {
	s, ok := unescape(tok.Raw)
	if !ok {
		return variant.Value{}, p.errorAt(tok, diag.LitBadEscape, "string literal ends with a lone '\\'")
	}
	return variant.String(s), nil
}

// unescape заменяет \n \r \v \t \f управляющими байтами, любой другой \c на c.
func unescape(raw []byte) (string, bool) {
	if bytes.IndexByte(raw, '\\') < 0 {
		return string(raw), true
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i == len(raw) {
			return "", false
		}
		sb.WriteByte(unescapeByte(raw[i]))
	}
	return sb.String(), true
}

func unescapeByte(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 'v':
		return '\v'
	case 't':
		return '\t'
	case 'f':
		return '\f'
	default:
		return c
	}
}

func (p *parser) intLit(tok token.Token) (variant.Value, error) {
	n, code, msg := parseInt(tok.Raw)
	if code != diag.UnknownCode {
		return variant.Value{}, p.errorAt(tok, code, msg)
	}
	return variant.Int(n), nil
}

// parseInt: необязательный '-', затем хотя бы одна цифра; value = value*10 + digit.
func parseInt(raw []byte) (int64, diag.Code, string) {
	digits, neg := bytes.CutPrefix(raw, []byte{'-'})
	if len(digits) == 0 {
		return 0, diag.LitBadInteger, "integer literal has no digits"
	}

	var mag uint64
	for _, c := range digits {
		if !isDigit(c) {
			return 0, diag.LitBadInteger, fmt.Sprintf("unexpected %q in integer literal", c)
		}
		d := uint64(c - '0')
		if mag > (math.MaxUint64-d)/10 {
			return 0, diag.LitIntegerOverflow, fmt.Sprintf("integer literal %s overflows int64", raw)
		}
		mag = mag*10 + d
	}

	if neg && mag == 1<<63 {
		return math.MinInt64, diag.UnknownCode, ""
	}
	n, err := safecast.Conv[int64](mag)
	if err != nil {
		return 0, diag.LitIntegerOverflow, fmt.Sprintf("integer literal %s overflows int64", raw)
	}
	if neg {
		n = -n
	}
	return n, diag.UnknownCode, ""
}

func (p *parser) realLit(tok token.Token) (variant.Value, error) {
	f, code, msg := parseReal(tok.Raw)
	if code != diag.UnknownCode {
		return variant.Value{}, p.errorAt(tok, code, msg)
	}
	return variant.Real(f), nil
}

// fractional digits beyond this scale no longer change a float64
const maxFracScale = 1e18

// parseReal: необязательный '-', цифры до точки накапливаются как value*10 + digit,
// после первой точки каждая цифра весит следующую степень 0.1. Знак
// применяется один раз ко всей величине.
func parseReal(raw []byte) (float64, diag.Code, string) {
	digits, neg := bytes.CutPrefix(raw, []byte{'-'})

	var (
		whole, frac float64
		seenDot     bool
		count       int
	)
	scale := 1.0
	for _, c := range digits {
		switch {
		case c == '.':
			if seenDot {
				return 0, diag.LitBadReal, "second '.' in real literal"
			}
			seenDot = true
		case isDigit(c):
			d := float64(c - '0')
			count++
			if !seenDot {
				whole = whole*10 + d
			} else if scale < maxFracScale {
				frac = frac*10 + d
				scale *= 10
			}
		default:
			return 0, diag.LitBadReal, fmt.Sprintf("unexpected %q in real literal", c)
		}
	}
	if count == 0 {
		return 0, diag.LitBadReal, "real literal has no digits"
	}

	f := whole + frac/scale
	if math.IsInf(f, 0) {
		return 0, diag.LitRealOverflow, "real literal out of range"
	}
	if neg {
		f = -f
	}
	return f, diag.UnknownCode, ""
}

func (p *parser) boolLit(tok token.Token) (variant.Value, error) {
	switch string(tok.Raw) {
	case token.TrueWord:
		return variant.Bool(true), nil
	case token.FalseWord:
		return variant.Bool(false), nil
	default:
		return variant.Value{}, p.errorAt(tok, diag.LitBadBoolean,
			fmt.Sprintf("%q is not a boolean literal", tok.Raw))
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
