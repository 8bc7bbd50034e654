package wire

import (
	"encoding/base64"
	"fmt"

	"github.com/goccy/go-json"
)

// ToJSON renders a value for diagnostics (log fields, error reports). The
// rendering is lossy on purpose: byte payloads come out base64-encoded and
// variant kinds are not distinguishable from their JSON shape.
func ToJSON(v Value) []byte {
	b, err := json.Marshal(toInterface(v))
	if err != nil {
		return []byte(fmt.Sprintf("%q", err.Error()))
	}
	return b
}

func toInterface(v Value) interface{} {
	switch v := v.(type) {
	case Unset:
		return "<unset>"
	case Null:
		return nil
	case Boolean:
		return bool(v)
	case Int:
		return int64(v)
	case Float:
		return float32(v)
	case Double:
		return float64(v)
	case Text:
		return string(v)
	case Bytes:
		return base64.StdEncoding.EncodeToString(v)
	case UUID:
		return base64.StdEncoding.EncodeToString(v[:])
	case Inet:
		return base64.StdEncoding.EncodeToString(v)
	case Date:
		return uint32(v)
	case Time:
		return uint64(v)
	case Decimal:
		return map[string]interface{}{
			"scale":    v.Scale,
			"unscaled": base64.StdEncoding.EncodeToString(v.Unscaled),
		}
	case Varint:
		return base64.StdEncoding.EncodeToString(v)
	case Collection:
		elems := make([]interface{}, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = toInterface(e)
		}
		return elems
	case UDTValue:
		fields := make(map[string]interface{}, len(v.Fields))
		for name, f := range v.Fields {
			fields[name] = toInterface(f)
		}
		return fields
	}
	return fmt.Sprintf("%T", v)
}
