package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/grpcql/grpcql/types"
	"github.com/grpcql/grpcql/wire"
)

// nanosPerDay bounds the time type: nanoseconds since midnight.
const nanosPerDay = 24 * 60 * 60 * 1000 * 1000 * 1000

type booleanCodec struct{}

func (booleanCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	b, ok := v.(wire.Boolean)
	if !ok {
		return nil, fmt.Errorf("expected boolean value, got %T", v)
	}
	if b {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

func (booleanCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if len(b) != 1 {
		return nil, fmt.Errorf("expected 1 byte for boolean, got %d", len(b))
	}
	return wire.Boolean(b[0] != 0), nil
}

type tinyintCodec struct{}

func (tinyintCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	i, ok := v.(wire.Int)
	if !ok {
		return nil, fmt.Errorf("expected integer value, got %T", v)
	}
	if i < math.MinInt8 || i > math.MaxInt8 {
		return nil, fmt.Errorf("value %d out of range for tinyint", int64(i))
	}
	return []byte{byte(int8(i))}, nil
}

func (tinyintCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if len(b) != 1 {
		return nil, fmt.Errorf("expected 1 byte for tinyint, got %d", len(b))
	}
	return wire.Int(int8(b[0])), nil
}

type smallintCodec struct{}

func (smallintCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	i, ok := v.(wire.Int)
	if !ok {
		return nil, fmt.Errorf("expected integer value, got %T", v)
	}
	if i < math.MinInt16 || i > math.MaxInt16 {
		return nil, fmt.Errorf("value %d out of range for smallint", int64(i))
	}
	return binary.BigEndian.AppendUint16(nil, uint16(int16(i))), nil
}

func (smallintCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if len(b) != 2 {
		return nil, fmt.Errorf("expected 2 bytes for smallint, got %d", len(b))
	}
	return wire.Int(int16(binary.BigEndian.Uint16(b))), nil
}

type intCodec struct{}

func (intCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	i, ok := v.(wire.Int)
	if !ok {
		return nil, fmt.Errorf("expected integer value, got %T", v)
	}
	if i < math.MinInt32 || i > math.MaxInt32 {
		return nil, fmt.Errorf("value %d out of range for int", int64(i))
	}
	return appendInt32(nil, int32(i)), nil
}

func (intCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if len(b) != 4 {
		return nil, fmt.Errorf("expected 4 bytes for int, got %d", len(b))
	}
	return wire.Int(int32(binary.BigEndian.Uint32(b))), nil
}

// bigintCodec also serves counter and timestamp, which share the 8-byte
// big-endian layout.
type bigintCodec struct{}

func (bigintCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	i, ok := v.(wire.Int)
	if !ok {
		return nil, fmt.Errorf("expected integer value, got %T", v)
	}
	return binary.BigEndian.AppendUint64(nil, uint64(int64(i))), nil
}

func (bigintCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if len(b) != 8 {
		return nil, fmt.Errorf("expected 8 bytes for bigint, got %d", len(b))
	}
	return wire.Int(int64(binary.BigEndian.Uint64(b))), nil
}

type floatCodec struct{}

func (floatCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	f, ok := v.(wire.Float)
	if !ok {
		return nil, fmt.Errorf("expected float value, got %T", v)
	}
	return binary.BigEndian.AppendUint32(nil, math.Float32bits(float32(f))), nil
}

func (floatCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if len(b) != 4 {
		return nil, fmt.Errorf("expected 4 bytes for float, got %d", len(b))
	}
	return wire.Float(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
}

type doubleCodec struct{}

func (doubleCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	f, ok := v.(wire.Double)
	if !ok {
		return nil, fmt.Errorf("expected double value, got %T", v)
	}
	return binary.BigEndian.AppendUint64(nil, math.Float64bits(float64(f))), nil
}

func (doubleCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if len(b) != 8 {
		return nil, fmt.Errorf("expected 8 bytes for double, got %d", len(b))
	}
	return wire.Double(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
}

type textCodec struct {
	ascii bool
}

func (c textCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	s, ok := v.(wire.Text)
	if !ok {
		return nil, fmt.Errorf("expected string value, got %T", v)
	}
	if c.ascii {
		if err := checkASCII(string(s)); err != nil {
			return nil, err
		}
	}
	return []byte(s), nil
}

func (c textCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if c.ascii {
		if err := checkASCII(string(b)); err != nil {
			return nil, err
		}
	}
	return wire.Text(b), nil
}

func checkASCII(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return fmt.Errorf("non-ASCII byte 0x%02x at index %d", s[i], i)
		}
	}
	return nil
}

type blobCodec struct{}

func (blobCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	b, ok := v.(wire.Bytes)
	if !ok {
		return nil, fmt.Errorf("expected bytes value, got %T", v)
	}
	return []byte(b), nil
}

func (blobCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	return wire.Bytes(b), nil
}

// uuidCodec also serves timeuuid; both are 16 opaque bytes here.
type uuidCodec struct{}

func (uuidCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	u, ok := v.(wire.UUID)
	if !ok {
		return nil, fmt.Errorf("expected uuid value, got %T", v)
	}
	b := make([]byte, 16)
	copy(b, u[:])
	return b, nil
}

func (uuidCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if len(b) != 16 {
		return nil, fmt.Errorf("expected 16 bytes for uuid, got %d", len(b))
	}
	var u wire.UUID
	copy(u[:], b)
	return u, nil
}

type inetCodec struct{}

func (inetCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	a, ok := v.(wire.Inet)
	if !ok {
		return nil, fmt.Errorf("expected inet value, got %T", v)
	}
	if len(a) != 4 && len(a) != 16 {
		return nil, fmt.Errorf("expected 4 or 16 bytes for inet, got %d", len(a))
	}
	return []byte(a), nil
}

func (inetCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if len(b) != 4 && len(b) != 16 {
		return nil, fmt.Errorf("expected 4 or 16 bytes for inet, got %d", len(b))
	}
	return wire.Inet(b), nil
}

type dateCodec struct{}

func (dateCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	d, ok := v.(wire.Date)
	if !ok {
		return nil, fmt.Errorf("expected date value, got %T", v)
	}
	return binary.BigEndian.AppendUint32(nil, uint32(d)), nil
}

func (dateCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if len(b) != 4 {
		return nil, fmt.Errorf("expected 4 bytes for date, got %d", len(b))
	}
	return wire.Date(binary.BigEndian.Uint32(b)), nil
}

type timeCodec struct{}

func (timeCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	t, ok := v.(wire.Time)
	if !ok {
		return nil, fmt.Errorf("expected time value, got %T", v)
	}
	if uint64(t) >= nanosPerDay {
		return nil, fmt.Errorf("time value %d exceeds nanoseconds per day", uint64(t))
	}
	return binary.BigEndian.AppendUint64(nil, uint64(t)), nil
}

func (timeCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if len(b) != 8 {
		return nil, fmt.Errorf("expected 8 bytes for time, got %d", len(b))
	}
	t := binary.BigEndian.Uint64(b)
	if t >= nanosPerDay {
		return nil, fmt.Errorf("time value %d exceeds nanoseconds per day", t)
	}
	return wire.Time(t), nil
}

type varintCodec struct{}

func (varintCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	i, ok := v.(wire.Varint)
	if !ok {
		return nil, fmt.Errorf("expected varint value, got %T", v)
	}
	if len(i) == 0 {
		return nil, fmt.Errorf("varint value must not be empty")
	}
	return []byte(i), nil
}

func (varintCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("varint value must not be empty")
	}
	return wire.Varint(b), nil
}

type decimalCodec struct{}

func (decimalCodec) Encode(v wire.Value, _ *types.ColumnType) ([]byte, error) {
	d, ok := v.(wire.Decimal)
	if !ok {
		return nil, fmt.Errorf("expected decimal value, got %T", v)
	}
	if len(d.Unscaled) == 0 {
		return nil, fmt.Errorf("decimal unscaled value must not be empty")
	}
	buf := appendInt32(nil, d.Scale)
	return append(buf, d.Unscaled...), nil
}

func (decimalCodec) Decode(b []byte, _ *types.ColumnType) (wire.Value, error) {
	if len(b) < 5 {
		return nil, fmt.Errorf("expected at least 5 bytes for decimal, got %d", len(b))
	}
	return wire.Decimal{
		Scale:    int32(binary.BigEndian.Uint32(b)),
		Unscaled: b[4:],
	}, nil
}
