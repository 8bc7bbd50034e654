package codec

import (
	"encoding/binary"
	"fmt"
)

// Collections and tuples are framed with big-endian int32 counts and
// length-prefixed payloads; a negative length marks null.
const nullLength = int32(-1)

func appendInt32(buf []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(buf, uint32(v))
}

// appendBytes appends a length-prefixed payload. A nil payload is null.
func appendBytes(buf, b []byte) []byte {
	if b == nil {
		return appendInt32(buf, nullLength)
	}
	buf = appendInt32(buf, int32(len(b)))
	return append(buf, b...)
}

// reader walks an encoded buffer, failing on truncation.
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) readInt32() (int32, error) {
	if r.remaining() < 4 {
		return 0, fmt.Errorf("truncated buffer: need 4 bytes at offset %d, have %d", r.off, r.remaining())
	}
	v := int32(binary.BigEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v, nil
}

// readBytes reads one length-prefixed payload. A negative length yields nil.
func (r *reader) readBytes() ([]byte, error) {
	n, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}
	if r.remaining() < int(n) {
		return nil, fmt.Errorf("truncated buffer: need %d bytes at offset %d, have %d", n, r.off, r.remaining())
	}
	b := r.buf[r.off : r.off+int(n) : r.off+int(n)]
	r.off += int(n)
	return b, nil
}
