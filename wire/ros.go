package wire

import (
	"encoding/binary"
	"math"

	"github.com/wireforge/wireforge/wireerr"
)

// ROSBuffer is the ROS-style counterpart to ProtoBuffer: raw, unaligned,
// little-endian fixed-width scalars; 4-byte length/count prefixes for
// strings and variable-length sequences; no prefix at all for fixed-size
// arrays or inline submessages. Same owned/borrowed split as ProtoBuffer.
type ROSBuffer struct {
	data  []byte
	pos   int
	owned bool
}

// NewROSBuffer returns an empty, growable ROSBuffer.
func NewROSBuffer() *ROSBuffer {
	return &ROSBuffer{data: make([]byte, 0, 16), owned: true}
}

// NewBorrowedROSBuffer wraps a fixed-capacity span for writing.
func NewBorrowedROSBuffer(span []byte) *ROSBuffer {
	return &ROSBuffer{data: span[:0], owned: false}
}

// NewROSBufferFromBytes wraps an existing slice for reading.
func NewROSBufferFromBytes(data []byte) *ROSBuffer {
	return &ROSBuffer{data: data, owned: false}
}

func (rb *ROSBuffer) Bytes() []byte     { return rb.data }
func (rb *ROSBuffer) Len() int          { return len(rb.data) }
func (rb *ROSBuffer) Pos() int          { return rb.pos }
func (rb *ROSBuffer) Eof() bool         { return rb.pos >= len(rb.data) }
func (rb *ROSBuffer) Remaining() []byte { return rb.data[rb.pos:] }

func (rb *ROSBuffer) write(b []byte) error {
	if rb.owned {
		rb.data = append(rb.data, b...)
		return nil
	}
	if len(rb.data)+len(b) > cap(rb.data) {
		return wireerr.ErrExhaustedBuffer
	}
	rb.data = append(rb.data, b...)
	return nil
}

func (rb *ROSBuffer) readN(n int) ([]byte, error) {
	if rb.pos+n > len(rb.data) {
		return nil, wireerr.Wrap("ros read past end", wireerr.ErrMalformedWire)
	}
	b := rb.data[rb.pos : rb.pos+n]
	rb.pos += n
	return b, nil
}

// Skip advances the cursor by n bytes, failing if that would cross the end
// of the buffer.
func (rb *ROSBuffer) Skip(n int) error {
	_, err := rb.readN(n)
	return err
}

// ---- fixed-width scalars -------------------------------------------------

func (rb *ROSBuffer) WriteUint32(v uint32) error {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return rb.write(tmp[:])
}

func (rb *ROSBuffer) WriteUint64(v uint64) error {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return rb.write(tmp[:])
}

func (rb *ROSBuffer) WriteInt32(v int32) error { return rb.WriteUint32(uint32(v)) }
func (rb *ROSBuffer) WriteInt64(v int64) error { return rb.WriteUint64(uint64(v)) }

func (rb *ROSBuffer) WriteFloat32(v float32) error { return rb.WriteUint32(math.Float32bits(v)) }
func (rb *ROSBuffer) WriteFloat64(v float64) error { return rb.WriteUint64(math.Float64bits(v)) }

func (rb *ROSBuffer) WriteBool(v bool) error {
	if v {
		return rb.write([]byte{1})
	}
	return rb.write([]byte{0})
}

func (rb *ROSBuffer) ReadUint32() (uint32, error) {
	b, err := rb.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (rb *ROSBuffer) ReadUint64() (uint64, error) {
	b, err := rb.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (rb *ROSBuffer) ReadInt32() (int32, error) {
	v, err := rb.ReadUint32()
	return int32(v), err
}

func (rb *ROSBuffer) ReadInt64() (int64, error) {
	v, err := rb.ReadUint64()
	return int64(v), err
}

func (rb *ROSBuffer) ReadFloat32() (float32, error) {
	v, err := rb.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (rb *ROSBuffer) ReadFloat64() (float64, error) {
	v, err := rb.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (rb *ROSBuffer) ReadBool() (bool, error) {
	b, err := rb.readN(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// ---- length/count-prefixed data ------------------------------------------

// WriteString writes a 4-byte little-endian length followed by the raw
// bytes of s.
func (rb *ROSBuffer) WriteString(s []byte) error {
	if err := rb.WriteUint32(uint32(len(s))); err != nil {
		return err
	}
	return rb.write(s)
}

// ReadString reads a 4-byte length prefix and returns an owning copy of the
// bytes that follow.
func (rb *ROSBuffer) ReadString() ([]byte, error) {
	n, err := rb.ReadUint32()
	if err != nil {
		return nil, err
	}
	b, err := rb.readN(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// WriteCountPrefix writes the 4-byte element count that precedes a
// variable-length sequence (repeated scalar/string/message field).
func (rb *ROSBuffer) WriteCountPrefix(n int) error { return rb.WriteUint32(uint32(n)) }

// ReadCountPrefix reads the 4-byte element count.
func (rb *ROSBuffer) ReadCountPrefix() (int, error) {
	n, err := rb.ReadUint32()
	return int(n), err
}

// WriteRaw writes a length-prefixed opaque byte blob (used by AnyMessage to
// embed a nested ROS-serialized message).
func (rb *ROSBuffer) WriteRaw(b []byte) error { return rb.WriteString(b) }

// ReadRaw reads a length-prefixed opaque byte blob.
func (rb *ROSBuffer) ReadRaw() ([]byte, error) { return rb.ReadString() }
