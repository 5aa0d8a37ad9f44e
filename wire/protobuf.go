// Package wire implements the two low-level byte-arena codecs the rest of
// this repository is built on: ProtoBuffer (Protocol Buffers wire format)
// and ROSBuffer (the ROS-style length-prefixed binary format). Neither
// codec knows anything about message schemas; that's the field library's
// job (package field) and the generator's job (package gen).
package wire

import (
	"encoding/binary"
	"math"

	"github.com/wireforge/wireforge/wireerr"
)

const kFieldIdShift = 3

// ProtoBuffer is a byte arena with two modes: owned (starts with spare
// capacity, grows by doubling the way append already does) or borrowed (a
// fixed-capacity span supplied by the caller; writes that would grow past
// its capacity fail instead of reallocating). Writes always append at the
// end of the data; pos is the read cursor and only reads advance it.
type ProtoBuffer struct {
	data   []byte
	pos    int
	owned  bool
}

// NewProtoBuffer returns an empty, growable ProtoBuffer suitable for
// building up a serialized message.
func NewProtoBuffer() *ProtoBuffer {
	return &ProtoBuffer{data: make([]byte, 0, 16), owned: true}
}

// NewBorrowedProtoBuffer wraps span as a fixed-capacity write target. A
// write that would exceed len(span) returns wireerr.ErrExhaustedBuffer
// instead of growing.
func NewBorrowedProtoBuffer(span []byte) *ProtoBuffer {
	return &ProtoBuffer{data: span[:0], owned: false}
}

// NewProtoBufferFromBytes wraps an existing, already-populated byte slice
// for reading (parsing). Writes to a buffer created this way will fail
// once the slice's capacity (which is exactly its length, for slices
// handed in from a parse call) is exhausted.
func NewProtoBufferFromBytes(data []byte) *ProtoBuffer {
	return &ProtoBuffer{data: data, pos: 0, owned: false}
}

// Bytes returns the buffer's current contents.
func (pb *ProtoBuffer) Bytes() []byte { return pb.data }

// Len returns the number of bytes currently held.
func (pb *ProtoBuffer) Len() int { return len(pb.data) }

// Pos returns the current read cursor.
func (pb *ProtoBuffer) Pos() int { return pb.pos }

// Eof reports whether the read cursor has reached the end of the buffer.
func (pb *ProtoBuffer) Eof() bool { return pb.pos >= len(pb.data) }

// Remaining returns the unread suffix of the buffer.
func (pb *ProtoBuffer) Remaining() []byte { return pb.data[pb.pos:] }

func (pb *ProtoBuffer) write(b []byte) error {
	if pb.owned {
		pb.data = append(pb.data, b...)
		return nil
	}
	if len(pb.data)+len(b) > cap(pb.data) {
		return wireerr.ErrExhaustedBuffer
	}
	pb.data = append(pb.data, b...)
	return nil
}

func (pb *ProtoBuffer) readN(n int) ([]byte, error) {
	if pb.pos+n > len(pb.data) {
		return nil, wireerr.Wrap("proto read past end", wireerr.ErrMalformedWire)
	}
	b := pb.data[pb.pos : pb.pos+n]
	pb.pos += n
	return b, nil
}

// ---- pure size calculators -------------------------------------------

// TagSize returns the encoded length of a (fieldNumber, wireType) tag.
func TagSize(n FieldNumber, wt WireType) int {
	return VarintSize(uint64(MakeTag(n, wt)))
}

// VarintSize returns the number of bytes the base-128 varint encoding of v
// occupies.
func VarintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// LengthDelimitedSize returns the total size of a length-delimited field:
// its tag, the varint-encoded length, and length itself.
func LengthDelimitedSize(n FieldNumber, length int) int {
	return TagSize(n, WireBytes) + VarintSize(uint64(length)) + length
}

// ---- tag-aware writers -------------------------------------------------

// WriteTag writes a field tag (field number and wire type) as a varint.
func (pb *ProtoBuffer) WriteTag(n FieldNumber, wt WireType) error {
	return pb.SerializeRawVarint(uint64(MakeTag(n, wt)))
}

// SerializeVarint writes a tag followed by the varint encoding of wire
// (the caller has already applied zigzag/sign-extension as appropriate
// for the field's declared type).
func (pb *ProtoBuffer) SerializeVarint(n FieldNumber, wire uint64) error {
	if err := pb.WriteTag(n, WireVarint); err != nil {
		return err
	}
	return pb.SerializeRawVarint(wire)
}

// SerializeRawVarint writes just the varint body, with no tag. Used for
// packed repeated elements and for recursing into nested ProtoBuffers.
func (pb *ProtoBuffer) SerializeRawVarint(v uint64) error {
	var tmp [10]byte
	i := 0
	for v >= 0x80 {
		tmp[i] = byte(v) | 0x80
		v >>= 7
		i++
	}
	tmp[i] = byte(v)
	return pb.write(tmp[:i+1])
}

// SerializeFixed32 writes a tag followed by 4 raw little-endian bytes.
func (pb *ProtoBuffer) SerializeFixed32(n FieldNumber, v uint32) error {
	if err := pb.WriteTag(n, WireFixed32); err != nil {
		return err
	}
	return pb.SerializeRawFixed32(v)
}

// SerializeFixed64 writes a tag followed by 8 raw little-endian bytes.
func (pb *ProtoBuffer) SerializeFixed64(n FieldNumber, v uint64) error {
	if err := pb.WriteTag(n, WireFixed64); err != nil {
		return err
	}
	return pb.SerializeRawFixed64(v)
}

// SerializeRawFixed32 writes 4 raw little-endian bytes, no tag.
func (pb *ProtoBuffer) SerializeRawFixed32(v uint32) error {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return pb.write(tmp[:])
}

// SerializeRawFixed64 writes 8 raw little-endian bytes, no tag.
func (pb *ProtoBuffer) SerializeRawFixed64(v uint64) error {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return pb.write(tmp[:])
}

// SerializeFloat32/SerializeFloat64 are fixed-width writers for the IEEE
//754 float/double proto types.
func (pb *ProtoBuffer) SerializeFloat32(n FieldNumber, v float32) error {
	return pb.SerializeFixed32(n, math.Float32bits(v))
}

func (pb *ProtoBuffer) SerializeFloat64(n FieldNumber, v float64) error {
	return pb.SerializeFixed64(n, math.Float64bits(v))
}

// SerializeLengthDelimitedHeader writes a tag plus a varint length, with no
// payload — the caller writes length bytes immediately afterward (used when
// the payload is produced incrementally, e.g. packed repeated fields).
func (pb *ProtoBuffer) SerializeLengthDelimitedHeader(n FieldNumber, length int) error {
	if err := pb.WriteTag(n, WireBytes); err != nil {
		return err
	}
	return pb.SerializeRawVarint(uint64(length))
}

// SerializeLengthDelimited writes a tag, a varint length and the payload.
func (pb *ProtoBuffer) SerializeLengthDelimited(n FieldNumber, data []byte) error {
	if err := pb.SerializeLengthDelimitedHeader(n, len(data)); err != nil {
		return err
	}
	return pb.write(data)
}

// ---- readers ------------------------------------------------------------

const maxVarintBytes = 10

// ReadTag reads the next varint and splits it into field number/wire type.
func (pb *ProtoBuffer) ReadTag() (Tag, error) {
	v, err := pb.DeserializeRawVarint()
	if err != nil {
		return 0, err
	}
	return Tag(v), nil
}

// DeserializeVarint reads a varint value (tag already consumed by caller).
func (pb *ProtoBuffer) DeserializeVarint() (uint64, error) {
	return pb.DeserializeRawVarint()
}

// DeserializeRawVarint reads a base-128 varint with no tag.
func (pb *ProtoBuffer) DeserializeRawVarint() (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		b, err := pb.readN(1)
		if err != nil {
			return 0, wireerr.Wrap("varint: unexpected EOF", wireerr.ErrMalformedWire)
		}
		result |= uint64(b[0]&0x7f) << shift
		if b[0] < 0x80 {
			return result, nil
		}
		shift += 7
	}
	return 0, wireerr.Wrap("varint: too long", wireerr.ErrMalformedWire)
}

// DeserializeFixed32/64 read raw little-endian fixed-width values.
func (pb *ProtoBuffer) DeserializeFixed32() (uint32, error) {
	b, err := pb.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (pb *ProtoBuffer) DeserializeFixed64() (uint64, error) {
	b, err := pb.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (pb *ProtoBuffer) DeserializeFloat32() (float32, error) {
	v, err := pb.DeserializeFixed32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (pb *ProtoBuffer) DeserializeFloat64() (float64, error) {
	v, err := pb.DeserializeFixed64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// DeserializeLengthDelimited reads a varint length followed by that many
// bytes and returns them as a slice aliasing the source buffer (callers
// that need an owned copy, e.g. a string field, must copy explicitly).
func (pb *ProtoBuffer) DeserializeLengthDelimited() ([]byte, error) {
	n, err := pb.DeserializeRawVarint()
	if err != nil {
		return nil, err
	}
	return pb.readN(int(n))
}

// DeserializeString reads a length-delimited field and returns an owning
// copy of its bytes (spec §9 open question (b): owning copies are the safe
// default).
func (pb *ProtoBuffer) DeserializeString() ([]byte, error) {
	b, err := pb.DeserializeLengthDelimited()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// SkipTag skips the value associated with tag, branching on its wire type.
// Group wire types (3, 4) are rejected with ErrGroupUnsupported — groups are
// never supported; any other unknown wire type is ErrMalformedWire.
func (pb *ProtoBuffer) SkipTag(tag Tag) error {
	_, wt := ParseTag(tag)
	switch wt {
	case WireVarint:
		_, err := pb.DeserializeRawVarint()
		return err
	case WireFixed64:
		_, err := pb.readN(8)
		return err
	case WireBytes:
		_, err := pb.DeserializeLengthDelimited()
		return err
	case WireFixed32:
		_, err := pb.readN(4)
		return err
	case WireType(3), WireType(4):
		return wireerr.ErrGroupUnsupported
	default:
		return wireerr.Wrap("skip: invalid wire type", wireerr.ErrMalformedWire)
	}
}
