package wire

// TypeSpec is the wire form of a column-type descriptor. Like Value it is a
// closed union over the variant types below.
type TypeSpec interface {
	isTypeSpec()
}

// Basic identifies a primitive type by its stable numeric id.
type Basic int32

type ListSpec struct {
	Element TypeSpec
}

type SetSpec struct {
	Element TypeSpec
}

type MapSpec struct {
	Key   TypeSpec
	Value TypeSpec
}

type TupleSpec struct {
	Elements []TypeSpec
}

// UDTSpec describes a user-defined type as an ordered field table.
type UDTSpec struct {
	FieldNames []string
	Fields     map[string]TypeSpec
}

func (Basic) isTypeSpec()     {}
func (ListSpec) isTypeSpec()  {}
func (SetSpec) isTypeSpec()   {}
func (MapSpec) isTypeSpec()   {}
func (TupleSpec) isTypeSpec() {}
func (UDTSpec) isTypeSpec()   {}

// ColumnSpec is the per-column metadata attached to a result set.
type ColumnSpec struct {
	Name string
	Type TypeSpec
}

// ResultSet is the projected form of a row batch. Columns is nil when the
// caller asked to skip metadata. PagingState and PageSize are set together:
// PageSize reports the number of rows actually returned in this batch, which
// lets a client detect a short last page.
type ResultSet struct {
	Columns     []ColumnSpec
	Rows        [][]Value
	PagingState []byte
	PageSize    int32
}
