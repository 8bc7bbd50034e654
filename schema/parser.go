package schema

import (
	"fmt"
	"strings"

	"github.com/grpcql/grpcql/types"
)

// ParseType parses a compact type string: a primitive name, or list/set/map/
// tuple with angle-bracketed parameters. frozen<T> is transparent; the
// engine's frozen-ness does not change the wire encoding.
func ParseType(s string) (*types.ColumnType, error) {
	p := &typeParser{input: s}
	typ, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("unexpected trailing input at offset %d in type '%s'", p.pos, p.input)
	}
	return typ, nil
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) parse() (*types.ColumnType, error) {
	name := p.readIdent()
	if name == "" {
		return nil, fmt.Errorf("expected type name at offset %d in type '%s'", p.pos, p.input)
	}
	switch strings.ToLower(name) {
	case "frozen":
		params, err := p.readParams(1)
		if err != nil {
			return nil, err
		}
		return params[0], nil
	case "list":
		params, err := p.readParams(1)
		if err != nil {
			return nil, err
		}
		return types.ListOf(params[0]), nil
	case "set":
		params, err := p.readParams(1)
		if err != nil {
			return nil, err
		}
		return types.SetOf(params[0]), nil
	case "map":
		params, err := p.readParams(2)
		if err != nil {
			return nil, err
		}
		return types.MapOf(params[0], params[1]), nil
	case "tuple":
		params, err := p.readParams(-1)
		if err != nil {
			return nil, err
		}
		return types.TupleOf(params...), nil
	default:
		typ, ok := primitiveTypes[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown type name '%s' in type '%s'", name, p.input)
		}
		return typ, nil
	}
}

// readParams reads an angle-bracketed parameter list. want < 0 accepts any
// non-empty count.
func (p *typeParser) readParams(want int) ([]*types.ColumnType, error) {
	p.skipSpaces()
	if !p.consume('<') {
		return nil, fmt.Errorf("expected '<' at offset %d in type '%s'", p.pos, p.input)
	}
	var params []*types.ColumnType
	for {
		p.skipSpaces()
		typ, err := p.parse()
		if err != nil {
			return nil, err
		}
		params = append(params, typ)
		p.skipSpaces()
		if p.consume(',') {
			continue
		}
		if p.consume('>') {
			break
		}
		return nil, fmt.Errorf("expected ',' or '>' at offset %d in type '%s'", p.pos, p.input)
	}
	if want >= 0 && len(params) != want {
		return nil, fmt.Errorf("expected %d type parameters, got %d in type '%s'", want, len(params), p.input)
	}
	return params, nil
}

func (p *typeParser) readIdent() string {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.input[start:p.pos]
}

func (p *typeParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

var primitiveTypes = map[string]*types.ColumnType{
	"ascii":     types.TypeASCII,
	"bigint":    types.TypeBigint,
	"blob":      types.TypeBlob,
	"boolean":   types.TypeBoolean,
	"counter":   types.TypeCounter,
	"decimal":   types.TypeDecimal,
	"double":    types.TypeDouble,
	"float":     types.TypeFloat,
	"int":       types.TypeInt,
	"text":      types.TypeText,
	"timestamp": types.TypeTimestamp,
	"uuid":      types.TypeUUID,
	"varchar":   types.TypeVarchar,
	"varint":    types.TypeVarint,
	"timeuuid":  types.TypeTimeuuid,
	"inet":      types.TypeInet,
	"date":      types.TypeDate,
	"time":      types.TypeTime,
	"smallint":  types.TypeSmallint,
	"tinyint":   types.TypeTinyint,
}
