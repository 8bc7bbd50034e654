package types

import "fmt"

// RawType identifies the engine-side kind of a column type, independent of
// any type parameters.
type RawType int

const (
	Custom RawType = iota
	ASCII
	Bigint
	Blob
	Boolean
	Counter
	Decimal
	Double
	Float
	Int
	Text
	Timestamp
	UUID
	Varchar
	Varint
	Timeuuid
	Inet
	Date
	Time
	Smallint
	Tinyint
	List
	Map
	Set
	UDT
	Tuple
)

func (r RawType) String() string {
	switch r {
	case Custom:
		return "custom"
	case ASCII:
		return "ascii"
	case Bigint:
		return "bigint"
	case Blob:
		return "blob"
	case Boolean:
		return "boolean"
	case Counter:
		return "counter"
	case Decimal:
		return "decimal"
	case Double:
		return "double"
	case Float:
		return "float"
	case Int:
		return "int"
	case Text:
		return "text"
	case Timestamp:
		return "timestamp"
	case UUID:
		return "uuid"
	case Varchar:
		return "varchar"
	case Varint:
		return "varint"
	case Timeuuid:
		return "timeuuid"
	case Inet:
		return "inet"
	case Date:
		return "date"
	case Time:
		return "time"
	case Smallint:
		return "smallint"
	case Tinyint:
		return "tinyint"
	case List:
		return "list"
	case Map:
		return "map"
	case Set:
		return "set"
	case UDT:
		return "udt"
	case Tuple:
		return "tuple"
	}
	return fmt.Sprintf("RawType(%d)", int(r))
}

// Parameterized reports whether the kind carries nested type parameters.
func (r RawType) Parameterized() bool {
	switch r {
	case List, Map, Set, UDT, Tuple:
		return true
	}
	return false
}

// Code is the stable numeric identifier a primitive kind has on the wire.
// The numbering follows the native protocol option ids.
func (r RawType) Code() int32 {
	switch r {
	case Custom:
		return 0
	case ASCII:
		return 1
	case Bigint:
		return 2
	case Blob:
		return 3
	case Boolean:
		return 4
	case Counter:
		return 5
	case Decimal:
		return 6
	case Double:
		return 7
	case Float:
		return 8
	case Int:
		return 9
	case Text:
		return 10
	case Timestamp:
		return 11
	case UUID:
		return 12
	case Varchar:
		return 13
	case Varint:
		return 14
	case Timeuuid:
		return 15
	case Inet:
		return 16
	case Date:
		return 17
	case Time:
		return 18
	case Smallint:
		return 19
	case Tinyint:
		return 20
	}
	return -1
}

// ColumnType is a recursive column-type descriptor. A primitive type is a
// leaf; a parameterized type owns its nested parameter types. UDT types carry
// ordered named fields instead of positional parameters.
type ColumnType struct {
	Raw        RawType
	Parameters []*ColumnType
	Fields     []Column
	UDTName    string
}

func (t *ColumnType) String() string {
	switch t.Raw {
	case List, Set:
		if len(t.Parameters) == 1 {
			return fmt.Sprintf("%s<%s>", t.Raw, t.Parameters[0])
		}
	case Map:
		if len(t.Parameters) == 2 {
			return fmt.Sprintf("map<%s, %s>", t.Parameters[0], t.Parameters[1])
		}
	case Tuple:
		s := "tuple<"
		for i, p := range t.Parameters {
			if i > 0 {
				s += ", "
			}
			s += p.String()
		}
		return s + ">"
	case UDT:
		if t.UDTName != "" {
			return t.UDTName
		}
	}
	return t.Raw.String()
}

// Column pairs a name with its type. Supplied by the schema catalog and never
// mutated by this layer.
type Column struct {
	Name string
	Type *ColumnType
}

func NewColumn(name string, typ *ColumnType) Column {
	return Column{Name: name, Type: typ}
}

// PreparedMetadata is the ordered column list of a prepared statement. The
// order defines positional binding; names resolve to positions by exact match.
type PreparedMetadata struct {
	Columns []Column
}

// IndexOf returns the position of the named column, or -1.
func (m PreparedMetadata) IndexOf(name string) int {
	for i, c := range m.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Primitive type singletons. ColumnType trees are read-only once built, so
// leaves can be shared.
var (
	TypeCustom    = primitive(Custom)
	TypeASCII     = primitive(ASCII)
	TypeBigint    = primitive(Bigint)
	TypeBlob      = primitive(Blob)
	TypeBoolean   = primitive(Boolean)
	TypeCounter   = primitive(Counter)
	TypeDecimal   = primitive(Decimal)
	TypeDouble    = primitive(Double)
	TypeFloat     = primitive(Float)
	TypeInt       = primitive(Int)
	TypeText      = primitive(Text)
	TypeTimestamp = primitive(Timestamp)
	TypeUUID      = primitive(UUID)
	TypeVarchar   = primitive(Varchar)
	TypeVarint    = primitive(Varint)
	TypeTimeuuid  = primitive(Timeuuid)
	TypeInet      = primitive(Inet)
	TypeDate      = primitive(Date)
	TypeTime      = primitive(Time)
	TypeSmallint  = primitive(Smallint)
	TypeTinyint   = primitive(Tinyint)
)

func primitive(raw RawType) *ColumnType {
	return &ColumnType{Raw: raw}
}

func ListOf(element *ColumnType) *ColumnType {
	return &ColumnType{Raw: List, Parameters: []*ColumnType{element}}
}

func SetOf(element *ColumnType) *ColumnType {
	return &ColumnType{Raw: Set, Parameters: []*ColumnType{element}}
}

func MapOf(key, value *ColumnType) *ColumnType {
	return &ColumnType{Raw: Map, Parameters: []*ColumnType{key, value}}
}

func TupleOf(elements ...*ColumnType) *ColumnType {
	return &ColumnType{Raw: Tuple, Parameters: elements}
}

func UDTOf(name string, fields ...Column) *ColumnType {
	return &ColumnType{Raw: UDT, UDTName: name, Fields: fields}
}
