package moveup

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var genericPlaceholder = regexp.MustCompile(`^T(\d+)$`)

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenColons
	tokenLT
	tokenGT
	tokenComma
	tokenEOF
)

type token struct {
	kind  tokenKind
	value string
}

func tokenize(s string) ([]token, error) {
	var tokens []token
	runes := []rune(s)
	for i := 0; i < len(runes); {
		c := runes[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '<':
			tokens = append(tokens, token{kind: tokenLT, value: "<"})
			i++
		case c == '>':
			tokens = append(tokens, token{kind: tokenGT, value: ">"})
			i++
		case c == ',':
			tokens = append(tokens, token{kind: tokenComma, value: ","})
			i++
		case c == ':':
			if i+1 >= len(runes) || runes[i+1] != ':' {
				return nil, NewValidationErr(InvalidTypeTag, "unexpected ':' in %q", s)
			}
			tokens = append(tokens, token{kind: tokenColons, value: "::"})
			i += 2
		case c == '_' || c == '&' || unicode.IsLetter(c) || unicode.IsDigit(c):
			start := i
			for i < len(runes) && (runes[i] == '_' || runes[i] == '&' || unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, value: string(runes[start:i])})
		default:
			return nil, NewValidationErr(InvalidTypeTag, "unexpected character %q in %q", c, s)
		}
	}
	return append(tokens, token{kind: tokenEOF}), nil
}

// TypeTagParser parses textual type tags such as "vector<0x1::coin::Coin<T0>>".
// Generic placeholders T0..Tn are replaced by the parsed form of the matching
// entry of the type arguments supplied to NewTypeTagParser.
type TypeTagParser struct {
	input    string
	tokens   []token
	pos      int
	typeArgs []string
}

func NewTypeTagParser(input string, typeArgs ...string) *TypeTagParser {
	return &TypeTagParser{input: input, typeArgs: typeArgs}
}

// ParseTypeTag parses s, which must not contain generic placeholders.
func ParseTypeTag(s string) (TypeTag, error) {
	return NewTypeTagParser(s).Parse()
}

// Parse consumes the whole input and returns the type tag it describes.
func (p *TypeTagParser) Parse() (TypeTag, error) {
	tokens, err := tokenize(p.input)
	if err != nil {
		return nil, err
	}
	p.tokens = tokens
	p.pos = 0

	tag, err := p.parseTypeTag()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenEOF {
		return nil, p.errorf("unexpected %q after type", p.peek().value)
	}
	return tag, nil
}

func (p *TypeTagParser) peek() token {
	return p.tokens[p.pos]
}

func (p *TypeTagParser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *TypeTagParser) expect(kind tokenKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, p.errorf("expected %s, got %q", what, t.value)
	}
	return t, nil
}

func (p *TypeTagParser) errorf(format string, args ...interface{}) error {
	return NewValidationErr(InvalidTypeTag, "%q: "+format, append([]interface{}{p.input}, args...)...)
}

func (p *TypeTagParser) parseTypeTag() (TypeTag, error) {
	t, err := p.expect(tokenIdent, "type")
	if err != nil {
		return nil, err
	}

	switch t.value {
	case "bool":
		return TypeTagBool{}, nil
	case "u8":
		return TypeTagU8{}, nil
	case "u16":
		return TypeTagU16{}, nil
	case "u32":
		return TypeTagU32{}, nil
	case "u64":
		return TypeTagU64{}, nil
	case "u128":
		return TypeTagU128{}, nil
	case "u256":
		return TypeTagU256{}, nil
	case "address":
		return TypeTagAddress{}, nil
	case "signer", "&signer":
		return TypeTagSigner{}, nil
	case "vector":
		if _, err := p.expect(tokenLT, "'<'"); err != nil {
			return nil, err
		}
		elem, err := p.parseTypeTag()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenGT, "'>'"); err != nil {
			return nil, err
		}
		return TypeTagVector{Elem: elem}, nil
	}

	if m := genericPlaceholder.FindStringSubmatch(t.value); m != nil {
		return p.resolveGeneric(m[1])
	}

	if !strings.HasPrefix(t.value, "0x") && !strings.HasPrefix(t.value, "0X") {
		return nil, p.errorf("unknown type %q", t.value)
	}
	return p.parseStruct(t.value)
}

func (p *TypeTagParser) resolveGeneric(index string) (TypeTag, error) {
	if len(p.typeArgs) == 0 {
		return nil, p.errorf("cannot resolve T%s: no type arguments supplied", index)
	}
	i, err := strconv.Atoi(index)
	if err != nil || i >= len(p.typeArgs) {
		return nil, p.errorf("type argument T%s out of range, %d supplied", index, len(p.typeArgs))
	}
	return NewTypeTagParser(p.typeArgs[i]).Parse()
}

func (p *TypeTagParser) parseStruct(address string) (TypeTag, error) {
	addr, err := HexToAddress(address)
	if err != nil {
		return nil, p.errorf("struct address %q", address)
	}
	if _, err := p.expect(tokenColons, "'::'"); err != nil {
		return nil, err
	}
	module, err := p.expect(tokenIdent, "module name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenColons, "'::'"); err != nil {
		return nil, err
	}
	name, err := p.expect(tokenIdent, "struct name")
	if err != nil {
		return nil, err
	}

	typeArgs := []TypeTag{}
	if p.peek().kind == tokenLT {
		p.next()
		for {
			arg, err := p.parseTypeTag()
			if err != nil {
				return nil, err
			}
			typeArgs = append(typeArgs, arg)
			sep := p.next()
			if sep.kind == tokenGT {
				break
			}
			if sep.kind != tokenComma {
				return nil, p.errorf("expected ',' or '>', got %q", sep.value)
			}
		}
	}

	st, err := NewStructTag(addr, module.value, name.value, typeArgs...)
	if err != nil {
		return nil, err
	}
	return TypeTagStruct{Value: st}, nil
}
