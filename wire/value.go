// Package wire defines the client-facing value and type-descriptor model of
// the gateway. Values arrive in this form on the bind path and leave in this
// form on the result path; the codec package translates between this model
// and the engine's byte encoding.
package wire

// Value is the wire representation of a single column value. It is a closed
// union: exactly the variant types below implement it.
type Value interface {
	isValue()
}

// Unset marks a bind value that should leave the column untouched. It is only
// meaningful at the top level of a bind parameter.
type Unset struct{}

// Null is the explicit null value.
type Null struct{}

type Boolean bool

// Int carries every integer-shaped kind: tinyint, smallint, int, bigint,
// counter, and timestamp (epoch milliseconds).
type Int int64

type Float float32

type Double float64

type Text string

type Bytes []byte

type UUID [16]byte

// Inet is a 4-byte or 16-byte address.
type Inet []byte

// Date counts days with the epoch centered at 1<<31.
type Date uint32

// Time counts nanoseconds since midnight; valid values are below 24h.
type Time uint64

// Decimal is an arbitrary-precision decimal: a scale plus a two's-complement
// big-endian unscaled integer.
type Decimal struct {
	Scale    int32
	Unscaled []byte
}

// Varint is a two's-complement big-endian arbitrary-precision integer.
type Varint []byte

// Collection carries lists, sets and tuples. Maps also travel in this shape,
// flattened into alternating key/value elements.
type Collection struct {
	Elements []Value
}

// UDTValue carries a user-defined type value as a field-name map.
type UDTValue struct {
	Fields map[string]Value
}

func (Unset) isValue()      {}
func (Null) isValue()       {}
func (Boolean) isValue()    {}
func (Int) isValue()        {}
func (Float) isValue()      {}
func (Double) isValue()     {}
func (Text) isValue()       {}
func (Bytes) isValue()      {}
func (UUID) isValue()       {}
func (Inet) isValue()       {}
func (Date) isValue()       {}
func (Time) isValue()       {}
func (Decimal) isValue()    {}
func (Varint) isValue()     {}
func (Collection) isValue() {}
func (UDTValue) isValue()   {}

// Values is the bind payload: positional values plus optional per-value
// names. When names are present they must cover every value.
type Values struct {
	Values     []Value
	ValueNames []string
}

// BoundStatement is the binder's output, submitted unmodified to the
// execution engine. A slot holds either an encoded value, nil for null, or
// the caller's unset sentinel verbatim. Names is nil in positional mode.
type BoundStatement struct {
	StatementID []byte
	Values      [][]byte
	Names       []string
}
