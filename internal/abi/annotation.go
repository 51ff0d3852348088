package abi

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrTypeExpression is returned for malformed or unresolvable type expressions
var ErrTypeExpression = errors.New("invalid type expression")

// Lookup resolves a user-declared type name to its kind
type Lookup func(name string) (UniqueDefKind, bool)

// ParseTypeExpression parses a type written in schema notation, such as the value of
// @annotate(type: "Map<String!, [Int]>!"). Every named type must be a scalar or known to lookup.
func ParseTypeExpression(expr string, lookup Lookup) (OptionalType, error) {
	p := &typeParser{input: expr, lookup: lookup}

	typ, err := p.parseType()
	if err != nil {
		return OptionalType{}, err
	}

	p.skipSpace()
	if p.pos < len(p.input) {
		return OptionalType{}, p.errorf("unexpected %q", p.input[p.pos:])
	}

	return typ, nil
}

type typeParser struct {
	input  string
	pos    int
	lookup Lookup
}

func (p *typeParser) parseType() (OptionalType, error) {
	var (
		typ AnyType
		err error
	)

	p.skipSpace()
	switch {
	case p.consume("["):
		typ, err = p.parseArray()
	default:
		name := p.parseName()
		if name == "" {
			return OptionalType{}, p.errorf("expected a type name")
		}
		if name == "Map" {
			typ, err = p.parseMap()
		} else {
			typ, err = p.resolveName(name)
		}
	}
	if err != nil {
		return OptionalType{}, err
	}

	p.skipSpace()
	return OptionalType{Required: p.consume("!"), Type: typ}, nil
}

func (p *typeParser) parseArray() (AnyType, error) {
	item, err := p.parseType()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.consume("]") {
		return nil, p.errorf("expected ']'")
	}

	return NewArray(item), nil
}

func (p *typeParser) parseMap() (AnyType, error) {
	p.skipSpace()
	if !p.consume("<") {
		return nil, p.errorf("expected '<' after Map")
	}

	key, err := p.parseType()
	if err != nil {
		return nil, err
	}
	scalar, ok := key.Type.(ScalarType)
	if !ok || !IsMapKey(scalar.Scalar) {
		return nil, p.errorf("map key %q must be String or an integer scalar", key.String())
	}

	p.skipSpace()
	if !p.consume(",") {
		return nil, p.errorf("expected ',' between map key and value")
	}

	value, err := p.parseType()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.consume(">") {
		return nil, p.errorf("expected '>'")
	}

	return NewMap(scalar, value), nil
}

func (p *typeParser) resolveName(name string) (AnyType, error) {
	if IsScalar(name) {
		return NewScalar(name), nil
	}
	if p.lookup != nil {
		if kind, ok := p.lookup(name); ok {
			return NewRef(kind, name), nil
		}
	}
	return nil, p.errorf("unknown type %q", name)
}

func (p *typeParser) parseName() string {
	start := p.pos
	for p.pos < len(p.input) {
		r := rune(p.input[p.pos])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *typeParser) consume(token string) bool {
	if strings.HasPrefix(p.input[p.pos:], token) {
		p.pos += len(token)
		return true
	}
	return false
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w %q at offset %d: %s", ErrTypeExpression, p.input, p.pos, fmt.Sprintf(format, args...))
}
