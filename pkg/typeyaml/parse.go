package typeyaml

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"

	"tsinfer/pkg/types"
)

// ParseType parses the scalar type syntax used in YAML files:
//
//	number | "a" | 42 | true | this | T[] | [A, B] | (A | B)[] | A & B | E.Member
//
// Bare names other than keywords must be declared; see Decoder.Named.
func ParseType(src string) (types.Type, error) {
	return NewDecoder().ParseType(src)
}

// ParseType parses src, resolving names against the decoder's declarations.
func (d *Decoder) ParseType(src string) (types.Type, error) {
	p := &parser{d: d, src: src}
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings | scanner.ScanRawStrings
	p.s.IsIdentRune = func(ch rune, i int) bool {
		return ch == '_' || ch == '$' || ch == '#' || isLetter(ch) || (i > 0 && isDigit(ch))
	}
	p.s.Error = func(_ *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = fmt.Errorf("type %q: %s", src, msg)
		}
	}
	p.next()

	t, err := p.union()
	if err != nil {
		return nil, err
	}
	if p.tok != scanner.EOF {
		return nil, p.errorf("unexpected %q", p.text)
	}
	if p.err != nil {
		return nil, p.err
	}
	return t, nil
}

type parser struct {
	d    *Decoder
	src  string
	s    scanner.Scanner
	tok  rune
	text string
	err  error
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("type %q: %s", p.src, fmt.Sprintf(format, args...))
}

func (p *parser) expect(tok rune) error {
	if p.tok != tok {
		return p.errorf("expected %q, found %q", string(tok), p.text)
	}
	p.next()
	return nil
}

// union := inter ('|' inter)*
func (p *parser) union() (types.Type, error) {
	if p.tok == '|' {
		p.next()
	}
	first, err := p.intersection()
	if err != nil {
		return nil, err
	}
	if p.tok != '|' {
		return first, nil
	}
	branches := []types.Type{first}
	for p.tok == '|' {
		p.next()
		t, err := p.intersection()
		if err != nil {
			return nil, err
		}
		branches = append(branches, t)
	}
	return &types.UnionType{Types: branches}, nil
}

// inter := postfix ('&' postfix)*
func (p *parser) intersection() (types.Type, error) {
	first, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if p.tok != '&' {
		return first, nil
	}
	branches := []types.Type{first}
	for p.tok == '&' {
		p.next()
		t, err := p.postfix()
		if err != nil {
			return nil, err
		}
		branches = append(branches, t)
	}
	return &types.IntersectionType{Types: branches}, nil
}

// postfix := primary ('[' ']')*
func (p *parser) postfix() (types.Type, error) {
	t, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.tok == '[' {
		p.next()
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		t = types.NewArrayType(t)
	}
	return t, nil
}

func (p *parser) primary() (types.Type, error) {
	switch p.tok {
	case '(':
		p.next()
		t, err := p.union()
		if err != nil {
			return nil, err
		}
		return t, p.expect(')')
	case '[':
		p.next()
		var elems []types.Type
		for p.tok != ']' {
			t, err := p.union()
			if err != nil {
				return nil, err
			}
			elems = append(elems, t)
			if p.tok != ',' {
				break
			}
			p.next()
		}
		return types.NewTupleType(elems...), p.expect(']')
	case scanner.String, scanner.RawString:
		s, err := strconv.Unquote(p.text)
		if err != nil {
			return nil, p.errorf("bad string literal %s", p.text)
		}
		p.next()
		return types.NewStringLiteral(s), nil
	case '-':
		p.next()
		if p.tok != scanner.Int && p.tok != scanner.Float {
			return nil, p.errorf("expected a number after '-'")
		}
		return p.number(true)
	case scanner.Int, scanner.Float:
		return p.number(false)
	case scanner.Ident:
		name := p.text
		p.next()
		for p.tok == '.' {
			p.next()
			if p.tok != scanner.Ident {
				return nil, p.errorf("expected a name after '.'")
			}
			name += "." + p.text
			p.next()
		}
		return p.d.lookup(name)
	case scanner.EOF:
		return nil, p.errorf("unexpected end of type")
	}
	return nil, p.errorf("unexpected %q", p.text)
}

func (p *parser) number(negative bool) (types.Type, error) {
	v, err := strconv.ParseFloat(p.text, 64)
	if err != nil {
		return nil, p.errorf("bad number %s", p.text)
	}
	p.next()
	if negative {
		v = -v
	}
	return types.NewNumberLiteral(v), nil
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
