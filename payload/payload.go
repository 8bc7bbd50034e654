// Package payload marshals bind parameters and result rows between the wire
// model and the engine's byte encodings for one prepared statement at a time.
package payload

import (
	"context"

	"go.uber.org/zap"

	"github.com/grpcql/grpcql/codec"
	"github.com/grpcql/grpcql/gatewayerr"
	"github.com/grpcql/grpcql/internal/logger"
	"github.com/grpcql/grpcql/types"
	"github.com/grpcql/grpcql/wire"
)

// Prepared is the statement-preparation collaborator's output: an opaque
// statement id plus the ordered bind-column list.
type Prepared struct {
	StatementID []byte
	Metadata    types.PreparedMetadata
}

// Rows is a row batch from the execution collaborator: encoded cells in
// column order, the result column metadata, and an optional continuation
// token when more rows exist beyond this batch.
type Rows struct {
	Rows        [][][]byte
	Metadata    types.PreparedMetadata
	PagingState []byte
}

// ResultParameters controls projection. SkipMetadata omits column metadata
// from the result set to save bandwidth on repeat pages.
type ResultParameters struct {
	SkipMetadata bool
}

// BindValues matches the supplied wire values against the prepared
// statement's columns and encodes each into the engine's byte format. A
// value in the unset variant becomes the caller-supplied sentinel verbatim,
// bypassing the codec. When value names are supplied, values bind by name in
// the order the names were supplied; otherwise strictly by position.
func BindValues(ctx context.Context, prepared *Prepared, values *wire.Values, unsetValue []byte) (*wire.BoundStatement, error) {
	columns := prepared.Metadata.Columns
	columnCount := len(columns)
	valuesCount := len(values.Values)
	if columnCount != valuesCount {
		return nil, gatewayerr.PreconditionFailedf(
			"Invalid number of bind values. Expected %d, but received %d", columnCount, valuesCount)
	}
	boundValues := make([][]byte, 0, columnCount)
	var boundValueNames []string
	if len(values.ValueNames) != 0 {
		namesCount := len(values.ValueNames)
		if namesCount != columnCount {
			return nil, gatewayerr.PreconditionFailedf(
				"Invalid number of bind names. Expected %d, but received %d", columnCount, namesCount)
		}
		boundValueNames = make([]string, 0, namesCount)
		for i, name := range values.ValueNames {
			pos := prepared.Metadata.IndexOf(name)
			if pos < 0 {
				return nil, gatewayerr.InvalidArgumentf("Unable to find bind marker with name '%s'", name)
			}
			columnType, err := columnTypeNotNull(columns[pos])
			if err != nil {
				return nil, err
			}
			c, err := codec.Get(columnType.Raw)
			if err != nil {
				return nil, err
			}
			b, err := encodeBindValue(c, values.Values[i], columnType, unsetValue)
			if err != nil {
				logBindFailure(ctx, err, zap.String("name", name), values.Values[i])
				return nil, gatewayerr.InvalidArgumentf("Invalid argument for name '%s': %w", name, err)
			}
			boundValues = append(boundValues, b)
			boundValueNames = append(boundValueNames, name)
		}
	} else {
		for i, column := range columns {
			columnType, err := columnTypeNotNull(column)
			if err != nil {
				return nil, err
			}
			c, err := codec.Get(columnType.Raw)
			if err != nil {
				return nil, err
			}
			b, err := encodeBindValue(c, values.Values[i], columnType, unsetValue)
			if err != nil {
				logBindFailure(ctx, err, zap.Int("position", i+1), values.Values[i])
				return nil, gatewayerr.InvalidArgumentf("Invalid argument at position %d: %w", i+1, err)
			}
			boundValues = append(boundValues, b)
		}
	}
	return &wire.BoundStatement{
		StatementID: prepared.StatementID,
		Values:      boundValues,
		Names:       boundValueNames,
	}, nil
}

// encodeBindValue returns the unset sentinel verbatim for unset values,
// bypassing the codec.
func encodeBindValue(c codec.Codec, value wire.Value, columnType *types.ColumnType, unsetValue []byte) ([]byte, error) {
	if _, isUnset := value.(wire.Unset); isUnset {
		return unsetValue, nil
	}
	return codec.EncodeValue(c, value, columnType)
}

func logBindFailure(ctx context.Context, err error, marker zap.Field, value wire.Value) {
	logger.Logger(ctx).Debug("failed to encode bind value",
		marker,
		zap.ByteString("value", wire.ToJSON(value)),
		zap.Error(err),
	)
}

// ProcessResult decodes a row batch into a wire result set. Stored bytes
// that fail to decode against their declared type indicate storage or schema
// corruption, so those failures surface as internal errors. When the batch
// carries a continuation token, PageSize reports the rows actually returned.
func ProcessResult(ctx context.Context, rows *Rows, parameters ResultParameters) (*wire.ResultSet, error) {
	columns := rows.Metadata.Columns
	columnCount := len(columns)

	resultSet := &wire.ResultSet{}

	if !parameters.SkipMetadata {
		resultSet.Columns = make([]wire.ColumnSpec, 0, columnCount)
		for _, column := range columns {
			columnType, err := columnTypeNotNull(column)
			if err != nil {
				return nil, err
			}
			spec, err := ConvertType(columnType)
			if err != nil {
				return nil, err
			}
			resultSet.Columns = append(resultSet.Columns, wire.ColumnSpec{Name: column.Name, Type: spec})
		}
	}

	resultSet.Rows = make([][]wire.Value, 0, len(rows.Rows))
	for rowIndex, row := range rows.Rows {
		if len(row) != columnCount {
			return nil, gatewayerr.Internalf(
				"row %d has %d cells but result metadata has %d columns", rowIndex, len(row), columnCount)
		}
		decoded := make([]wire.Value, 0, columnCount)
		for i := 0; i < columnCount; i++ {
			columnType, err := columnTypeNotNull(columns[i])
			if err != nil {
				return nil, err
			}
			c, err := codec.Get(columnType.Raw)
			if err != nil {
				return nil, err
			}
			v, err := codec.DecodeValue(c, row[i], columnType)
			if err != nil {
				logger.Logger(ctx).Error("failed to decode stored cell",
					zap.String("column", columns[i].Name),
					zap.Int("row", rowIndex),
					zap.Error(err),
				)
				return nil, gatewayerr.Internalf(
					"Unable to decode column '%s' in row %d: %w", columns[i].Name, rowIndex, err)
			}
			decoded = append(decoded, v)
		}
		resultSet.Rows = append(resultSet.Rows, decoded)
	}

	if rows.PagingState != nil {
		resultSet.PagingState = rows.PagingState
		resultSet.PageSize = int32(len(rows.Rows))
	}

	return resultSet, nil
}

// columnTypeNotNull guards the schema-collaborator invariant that every
// column carries a type.
func columnTypeNotNull(column types.Column) (*types.ColumnType, error) {
	if column.Type == nil {
		return nil, gatewayerr.Internalf("Column '%s' doesn't have a valid type", column.Name)
	}
	return column.Type, nil
}
