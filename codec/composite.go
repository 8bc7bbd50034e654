package codec

import (
	"fmt"

	"github.com/grpcql/grpcql/types"
	"github.com/grpcql/grpcql/wire"
)

// listCodec serves both list and set; the wire layout is identical.
type listCodec struct{}

func (listCodec) Encode(v wire.Value, t *types.ColumnType) ([]byte, error) {
	coll, ok := v.(wire.Collection)
	if !ok {
		return nil, fmt.Errorf("expected collection value, got %T", v)
	}
	if len(t.Parameters) != 1 {
		return nil, fmt.Errorf("expected %s type to have one parameter, got %d", t.Raw, len(t.Parameters))
	}
	elemType := t.Parameters[0]
	elemCodec, err := Get(elemType.Raw)
	if err != nil {
		return nil, err
	}
	buf := appendInt32(nil, int32(len(coll.Elements)))
	for i, e := range coll.Elements {
		b, err := EncodeValue(elemCodec, e, elemType)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		buf = appendBytes(buf, b)
	}
	return buf, nil
}

func (listCodec) Decode(b []byte, t *types.ColumnType) (wire.Value, error) {
	if len(t.Parameters) != 1 {
		return nil, fmt.Errorf("expected %s type to have one parameter, got %d", t.Raw, len(t.Parameters))
	}
	elemType := t.Parameters[0]
	elemCodec, err := Get(elemType.Raw)
	if err != nil {
		return nil, err
	}
	r := &reader{buf: b}
	count, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	if count < 0 || int(count) > r.remaining()/4 {
		return nil, fmt.Errorf("element count %d inconsistent with buffer size %d", count, len(b))
	}
	elements := make([]wire.Value, 0, count)
	for i := int32(0); i < count; i++ {
		eb, err := r.readBytes()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		e, err := DecodeValue(elemCodec, eb, elemType)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements = append(elements, e)
	}
	if r.remaining() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after %d elements", r.remaining(), count)
	}
	return wire.Collection{Elements: elements}, nil
}

// mapCodec frames entries as key/value pairs. On the wire-value side a map is
// a flattened collection of alternating keys and values.
type mapCodec struct{}

func (mapCodec) Encode(v wire.Value, t *types.ColumnType) ([]byte, error) {
	coll, ok := v.(wire.Collection)
	if !ok {
		return nil, fmt.Errorf("expected collection value, got %T", v)
	}
	if len(t.Parameters) != 2 {
		return nil, fmt.Errorf("expected map type to have key/value parameters, got %d", len(t.Parameters))
	}
	if len(coll.Elements)%2 != 0 {
		return nil, fmt.Errorf("expected alternating key/value elements, got %d elements", len(coll.Elements))
	}
	keyType, valueType := t.Parameters[0], t.Parameters[1]
	keyCodec, err := Get(keyType.Raw)
	if err != nil {
		return nil, err
	}
	valueCodec, err := Get(valueType.Raw)
	if err != nil {
		return nil, err
	}
	buf := appendInt32(nil, int32(len(coll.Elements)/2))
	for i := 0; i < len(coll.Elements); i += 2 {
		if _, isNull := coll.Elements[i].(wire.Null); isNull {
			return nil, fmt.Errorf("entry %d: map keys must not be null", i/2)
		}
		kb, err := EncodeValue(keyCodec, coll.Elements[i], keyType)
		if err != nil {
			return nil, fmt.Errorf("entry %d key: %w", i/2, err)
		}
		vb, err := EncodeValue(valueCodec, coll.Elements[i+1], valueType)
		if err != nil {
			return nil, fmt.Errorf("entry %d value: %w", i/2, err)
		}
		buf = appendBytes(buf, kb)
		buf = appendBytes(buf, vb)
	}
	return buf, nil
}

func (mapCodec) Decode(b []byte, t *types.ColumnType) (wire.Value, error) {
	if len(t.Parameters) != 2 {
		return nil, fmt.Errorf("expected map type to have key/value parameters, got %d", len(t.Parameters))
	}
	keyType, valueType := t.Parameters[0], t.Parameters[1]
	keyCodec, err := Get(keyType.Raw)
	if err != nil {
		return nil, err
	}
	valueCodec, err := Get(valueType.Raw)
	if err != nil {
		return nil, err
	}
	r := &reader{buf: b}
	count, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	if count < 0 || int(count) > r.remaining()/8 {
		return nil, fmt.Errorf("entry count %d inconsistent with buffer size %d", count, len(b))
	}
	elements := make([]wire.Value, 0, count*2)
	for i := int32(0); i < count; i++ {
		kb, err := r.readBytes()
		if err != nil {
			return nil, fmt.Errorf("entry %d key: %w", i, err)
		}
		k, err := DecodeValue(keyCodec, kb, keyType)
		if err != nil {
			return nil, fmt.Errorf("entry %d key: %w", i, err)
		}
		vb, err := r.readBytes()
		if err != nil {
			return nil, fmt.Errorf("entry %d value: %w", i, err)
		}
		val, err := DecodeValue(valueCodec, vb, valueType)
		if err != nil {
			return nil, fmt.Errorf("entry %d value: %w", i, err)
		}
		elements = append(elements, k, val)
	}
	if r.remaining() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after %d entries", r.remaining(), count)
	}
	return wire.Collection{Elements: elements}, nil
}

// tupleCodec writes each field positionally with its declared type. Trailing
// fields may be absent; a value with more elements than the tuple has fields
// is rejected.
type tupleCodec struct{}

func (tupleCodec) Encode(v wire.Value, t *types.ColumnType) ([]byte, error) {
	coll, ok := v.(wire.Collection)
	if !ok {
		return nil, fmt.Errorf("expected collection value, got %T", v)
	}
	if len(t.Parameters) == 0 {
		return nil, fmt.Errorf("expected tuple type to have at least one parameter")
	}
	if len(coll.Elements) > len(t.Parameters) {
		return nil, fmt.Errorf("tuple has %d fields but value has %d elements", len(t.Parameters), len(coll.Elements))
	}
	var buf []byte
	for i, e := range coll.Elements {
		fieldType := t.Parameters[i]
		fieldCodec, err := Get(fieldType.Raw)
		if err != nil {
			return nil, err
		}
		fb, err := EncodeValue(fieldCodec, e, fieldType)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		buf = appendBytes(buf, fb)
	}
	if buf == nil {
		buf = []byte{}
	}
	return buf, nil
}

func (tupleCodec) Decode(b []byte, t *types.ColumnType) (wire.Value, error) {
	if len(t.Parameters) == 0 {
		return nil, fmt.Errorf("expected tuple type to have at least one parameter")
	}
	r := &reader{buf: b}
	elements := make([]wire.Value, 0, len(t.Parameters))
	for i, fieldType := range t.Parameters {
		if r.remaining() == 0 {
			break
		}
		fieldCodec, err := Get(fieldType.Raw)
		if err != nil {
			return nil, err
		}
		fb, err := r.readBytes()
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		e, err := DecodeValue(fieldCodec, fb, fieldType)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		elements = append(elements, e)
	}
	if r.remaining() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after %d tuple fields", r.remaining(), len(t.Parameters))
	}
	return wire.Collection{Elements: elements}, nil
}

// udtCodec writes declared fields in declaration order; fields missing from
// the value encode as null. Field names not declared on the type are
// rejected rather than dropped.
type udtCodec struct{}

func (udtCodec) Encode(v wire.Value, t *types.ColumnType) ([]byte, error) {
	udt, ok := v.(wire.UDTValue)
	if !ok {
		return nil, fmt.Errorf("expected UDT value, got %T", v)
	}
	if len(t.Fields) == 0 {
		return nil, fmt.Errorf("expected user defined type to have at least one field")
	}
	declared := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		declared[f.Name] = true
	}
	for name := range udt.Fields {
		if !declared[name] {
			return nil, fmt.Errorf("unknown field '%s' for type %s", name, t)
		}
	}
	var buf []byte
	for _, field := range t.Fields {
		fv, present := udt.Fields[field.Name]
		if !present {
			buf = appendBytes(buf, nil)
			continue
		}
		fieldCodec, err := Get(field.Type.Raw)
		if err != nil {
			return nil, err
		}
		fb, err := EncodeValue(fieldCodec, fv, field.Type)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", field.Name, err)
		}
		buf = appendBytes(buf, fb)
	}
	return buf, nil
}

func (udtCodec) Decode(b []byte, t *types.ColumnType) (wire.Value, error) {
	if len(t.Fields) == 0 {
		return nil, fmt.Errorf("expected user defined type to have at least one field")
	}
	r := &reader{buf: b}
	fields := make(map[string]wire.Value, len(t.Fields))
	for _, field := range t.Fields {
		if r.remaining() == 0 {
			break
		}
		fieldCodec, err := Get(field.Type.Raw)
		if err != nil {
			return nil, err
		}
		fb, err := r.readBytes()
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", field.Name, err)
		}
		fv, err := DecodeValue(fieldCodec, fb, field.Type)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", field.Name, err)
		}
		fields[field.Name] = fv
	}
	if r.remaining() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after %d UDT fields", r.remaining(), len(t.Fields))
	}
	return wire.UDTValue{Fields: fields}, nil
}
