// Package codec translates wire values to and from the engine's native byte
// encoding, one codec per raw type kind.
package codec

import (
	"fmt"

	"github.com/grpcql/grpcql/gatewayerr"
	"github.com/grpcql/grpcql/types"
	"github.com/grpcql/grpcql/wire"
)

// Codec encodes a wire value into the engine's byte format for one raw kind
// and decodes it back. Implementations are stateless and safe for
// unsynchronized concurrent use. Composite codecs select sub-codecs from the
// column type's parameters.
type Codec interface {
	Encode(v wire.Value, t *types.ColumnType) ([]byte, error)
	Decode(b []byte, t *types.ColumnType) (wire.Value, error)
}

// Get selects the codec for a raw kind. The dispatch is exhaustive over the
// kinds the engine defines; a miss is a build defect, not a condition
// clients should ever observe.
func Get(raw types.RawType) (Codec, error) {
	switch raw {
	case types.ASCII:
		return textCodec{ascii: true}, nil
	case types.Text, types.Varchar:
		return textCodec{}, nil
	case types.Bigint, types.Counter, types.Timestamp:
		return bigintCodec{}, nil
	case types.Blob, types.Custom:
		return blobCodec{}, nil
	case types.Boolean:
		return booleanCodec{}, nil
	case types.Decimal:
		return decimalCodec{}, nil
	case types.Double:
		return doubleCodec{}, nil
	case types.Float:
		return floatCodec{}, nil
	case types.Int:
		return intCodec{}, nil
	case types.Smallint:
		return smallintCodec{}, nil
	case types.Tinyint:
		return tinyintCodec{}, nil
	case types.UUID, types.Timeuuid:
		return uuidCodec{}, nil
	case types.Varint:
		return varintCodec{}, nil
	case types.Inet:
		return inetCodec{}, nil
	case types.Date:
		return dateCodec{}, nil
	case types.Time:
		return timeCodec{}, nil
	case types.List, types.Set:
		return listCodec{}, nil
	case types.Map:
		return mapCodec{}, nil
	case types.Tuple:
		return tupleCodec{}, nil
	case types.UDT:
		return udtCodec{}, nil
	}
	return nil, gatewayerr.Internalf("no codec registered for type %s", raw)
}

// EncodeValue encodes v for column type t. Null encodes to a nil buffer;
// Unset is rejected here because it is only legal as a top-level bind
// parameter, which the binder intercepts before reaching the codec.
func EncodeValue(c Codec, v wire.Value, t *types.ColumnType) ([]byte, error) {
	switch v.(type) {
	case nil:
		return nil, fmt.Errorf("no value provided")
	case wire.Null:
		return nil, nil
	case wire.Unset:
		return nil, fmt.Errorf("unset value is only valid as a top-level bind parameter")
	}
	return c.Encode(v, t)
}

// DecodeValue decodes one encoded cell. A null-length encoding yields Null.
func DecodeValue(c Codec, b []byte, t *types.ColumnType) (wire.Value, error) {
	if b == nil {
		return wire.Null{}, nil
	}
	return c.Decode(b, t)
}
