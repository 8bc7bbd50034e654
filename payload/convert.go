package payload

import (
	"github.com/grpcql/grpcql/gatewayerr"
	"github.com/grpcql/grpcql/types"
	"github.com/grpcql/grpcql/wire"
)

// ConvertType converts an engine column type into its wire descriptor.
// Composite kinds must carry their required parameter arity; a violation is
// a precondition failure attributable to the supplied type shape.
func ConvertType(columnType *types.ColumnType) (wire.TypeSpec, error) {
	if !columnType.Raw.Parameterized() {
		return wire.Basic(columnType.Raw.Code()), nil
	}
	parameters := columnType.Parameters
	switch columnType.Raw {
	case types.List:
		if len(parameters) != 1 {
			return nil, gatewayerr.PreconditionFailedf("Expected list type to have a parameterized type")
		}
		element, err := ConvertType(parameters[0])
		if err != nil {
			return nil, err
		}
		return wire.ListSpec{Element: element}, nil
	case types.Map:
		if len(parameters) != 2 {
			return nil, gatewayerr.PreconditionFailedf("Expected map type to have key/value parameterized types")
		}
		key, err := ConvertType(parameters[0])
		if err != nil {
			return nil, err
		}
		value, err := ConvertType(parameters[1])
		if err != nil {
			return nil, err
		}
		return wire.MapSpec{Key: key, Value: value}, nil
	case types.Set:
		if len(parameters) != 1 {
			return nil, gatewayerr.PreconditionFailedf("Expected set type to have a parameterized type")
		}
		element, err := ConvertType(parameters[0])
		if err != nil {
			return nil, err
		}
		return wire.SetSpec{Element: element}, nil
	case types.Tuple:
		if len(parameters) == 0 {
			return nil, gatewayerr.PreconditionFailedf("Expected tuple type to have at least one parameterized type")
		}
		elements := make([]wire.TypeSpec, 0, len(parameters))
		for _, parameter := range parameters {
			element, err := ConvertType(parameter)
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
		}
		return wire.TupleSpec{Elements: elements}, nil
	case types.UDT:
		if len(columnType.Fields) == 0 {
			return nil, gatewayerr.PreconditionFailedf("Expected user defined type to have at least one field")
		}
		fieldNames := make([]string, 0, len(columnType.Fields))
		fields := make(map[string]wire.TypeSpec, len(columnType.Fields))
		for _, field := range columnType.Fields {
			fieldType, err := columnTypeNotNull(field)
			if err != nil {
				return nil, err
			}
			// The field table carries only each field's raw kind, never its
			// full nested descriptor. A field whose raw kind is itself
			// parameterized therefore fails the arity check above.
			spec, err := ConvertType(&types.ColumnType{Raw: fieldType.Raw})
			if err != nil {
				return nil, err
			}
			fieldNames = append(fieldNames, field.Name)
			fields[field.Name] = spec
		}
		return wire.UDTSpec{FieldNames: fieldNames, Fields: fields}, nil
	}
	return nil, gatewayerr.Internalf("Unhandled parameterized type %s", columnType.Raw)
}
