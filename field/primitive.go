package field

import (
	"math"

	"github.com/wireforge/wireforge/wire"
)

// scalarCodec describes how one flavor of scalar (a particular combination
// of width, signedness and Proto encoding) sizes, writes and parses itself
// in both wire formats. Each NewXField constructor below wires up a
// package-level codec instance; this keeps every scalar variant a thin,
// statically-dispatched specialization instead of 14 near-duplicate types
// (the Go analogue of the donor format's DEFINE_PRIMITIVE_FIELD macro
// expansion, expressed as a strategy table instead of text-substitution).
type scalarCodec[T comparable] struct {
	wireType      wire.WireType
	protoSize     func(v T) int
	writeProto    func(pb *wire.ProtoBuffer, n wire.FieldNumber, v T) error
	writeRawProto func(pb *wire.ProtoBuffer, v T) error
	readProto     func(pb *wire.ProtoBuffer) (T, error)
	writeROS      func(rb *wire.ROSBuffer, v T) error
	readROS       func(rb *wire.ROSBuffer) (T, error)
	rosSize       int
	zero          T
}

// PrimitiveField holds one value of T and knows, via its codec, how to
// move it across both wire formats. T ranges over int32/int64/uint32/
// uint64/float32/float64/bool, matching spec.md §3's Primitive(T,fixed?,
// signed?) variant.
type PrimitiveField[T comparable] struct {
	Base
	value T
	codec *scalarCodec[T]
}

func newPrimitiveField[T comparable](number wire.FieldNumber, codec *scalarCodec[T]) *PrimitiveField[T] {
	return &PrimitiveField[T]{Base: NewBase(number), codec: codec}
}

// Get returns the current value (zero value if not present).
func (f *PrimitiveField[T]) Get() T { return f.value }

// Set stores v and marks the field present; used by message constructors
// and by generated setter-style APIs.
func (f *PrimitiveField[T]) Set(v T) {
	f.value = v
	f.SetPresent(true)
}

func (f *PrimitiveField[T]) SerializedProtoSize() int {
	if !f.IsPresent() {
		return 0
	}
	return wire.TagSize(f.Number(), f.codec.wireType) + f.codec.protoSize(f.value)
}

func (f *PrimitiveField[T]) SerializedROSSize() int { return f.codec.rosSize }

func (f *PrimitiveField[T]) WriteProto(pb *wire.ProtoBuffer) error {
	if !f.IsPresent() {
		return nil
	}
	return f.codec.writeProto(pb, f.Number(), f.value)
}

func (f *PrimitiveField[T]) ParseProto(pb *wire.ProtoBuffer) error {
	v, err := f.codec.readProto(pb)
	if err != nil {
		return err
	}
	f.value = v
	f.SetPresent(true)
	return nil
}

func (f *PrimitiveField[T]) WriteROS(rb *wire.ROSBuffer) error {
	return f.codec.writeROS(rb, f.value)
}

// ParseROS reads the raw value; presence follows spec.md §3's stated
// (and flagged-as-ambiguous, see DESIGN.md) convention: present iff the
// decoded value is non-zero.
func (f *PrimitiveField[T]) ParseROS(rb *wire.ROSBuffer) error {
	v, err := f.codec.readROS(rb)
	if err != nil {
		return err
	}
	f.value = v
	f.SetPresent(v != f.codec.zero)
	return nil
}

// ---- concrete scalar codecs ----------------------------------------------

var int32Codec = &scalarCodec[int32]{
	wireType: wire.WireVarint,
	protoSize: func(v int32) int { return wire.VarintSize(uint64(int64(v))) },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v int32) error {
		return pb.SerializeVarint(n, uint64(int64(v)))
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v int32) error { return pb.SerializeRawVarint(uint64(int64(v))) },
	readProto: func(pb *wire.ProtoBuffer) (int32, error) {
		v, err := pb.DeserializeVarint()
		return int32(int64(v)), err
	},
	writeROS: func(rb *wire.ROSBuffer, v int32) error { return rb.WriteInt32(v) },
	readROS:  func(rb *wire.ROSBuffer) (int32, error) { return rb.ReadInt32() },
	rosSize:  4,
}

var uint32Codec = &scalarCodec[uint32]{
	wireType: wire.WireVarint,
	protoSize: func(v uint32) int { return wire.VarintSize(uint64(v)) },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v uint32) error {
		return pb.SerializeVarint(n, uint64(v))
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v uint32) error { return pb.SerializeRawVarint(uint64(v)) },
	readProto: func(pb *wire.ProtoBuffer) (uint32, error) {
		v, err := pb.DeserializeVarint()
		return uint32(v), err
	},
	writeROS: func(rb *wire.ROSBuffer, v uint32) error { return rb.WriteUint32(v) },
	readROS:  func(rb *wire.ROSBuffer) (uint32, error) { return rb.ReadUint32() },
	rosSize:  4,
}

var int64Codec = &scalarCodec[int64]{
	wireType: wire.WireVarint,
	protoSize: func(v int64) int { return wire.VarintSize(uint64(v)) },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v int64) error {
		return pb.SerializeVarint(n, uint64(v))
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v int64) error { return pb.SerializeRawVarint(uint64(v)) },
	readProto: func(pb *wire.ProtoBuffer) (int64, error) {
		v, err := pb.DeserializeVarint()
		return int64(v), err
	},
	writeROS: func(rb *wire.ROSBuffer, v int64) error { return rb.WriteInt64(v) },
	readROS:  func(rb *wire.ROSBuffer) (int64, error) { return rb.ReadInt64() },
	rosSize:  8,
}

var uint64Codec = &scalarCodec[uint64]{
	wireType: wire.WireVarint,
	protoSize: func(v uint64) int { return wire.VarintSize(v) },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v uint64) error {
		return pb.SerializeVarint(n, v)
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v uint64) error { return pb.SerializeRawVarint(v) },
	readProto:     func(pb *wire.ProtoBuffer) (uint64, error) { return pb.DeserializeVarint() },
	writeROS:      func(rb *wire.ROSBuffer, v uint64) error { return rb.WriteUint64(v) },
	readROS:       func(rb *wire.ROSBuffer) (uint64, error) { return rb.ReadUint64() },
	rosSize:       8,
}

var sint32Codec = &scalarCodec[int32]{
	wireType: wire.WireVarint,
	protoSize: func(v int32) int { return wire.VarintSize(uint64(wire.ZigZagEncode32(v))) },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v int32) error {
		return pb.SerializeVarint(n, uint64(wire.ZigZagEncode32(v)))
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v int32) error {
		return pb.SerializeRawVarint(uint64(wire.ZigZagEncode32(v)))
	},
	readProto: func(pb *wire.ProtoBuffer) (int32, error) {
		v, err := pb.DeserializeVarint()
		return wire.ZigZagDecode32(uint32(v)), err
	},
	writeROS: func(rb *wire.ROSBuffer, v int32) error { return rb.WriteInt32(v) },
	readROS:  func(rb *wire.ROSBuffer) (int32, error) { return rb.ReadInt32() },
	rosSize:  4,
}

var sint64Codec = &scalarCodec[int64]{
	wireType: wire.WireVarint,
	protoSize: func(v int64) int { return wire.VarintSize(wire.ZigZagEncode64(v)) },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v int64) error {
		return pb.SerializeVarint(n, wire.ZigZagEncode64(v))
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v int64) error {
		return pb.SerializeRawVarint(wire.ZigZagEncode64(v))
	},
	readProto: func(pb *wire.ProtoBuffer) (int64, error) {
		v, err := pb.DeserializeVarint()
		return wire.ZigZagDecode64(v), err
	},
	writeROS: func(rb *wire.ROSBuffer, v int64) error { return rb.WriteInt64(v) },
	readROS:  func(rb *wire.ROSBuffer) (int64, error) { return rb.ReadInt64() },
	rosSize:  8,
}

var fixed32Codec = &scalarCodec[uint32]{
	wireType: wire.WireFixed32,
	protoSize: func(v uint32) int { return 4 },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v uint32) error {
		return pb.SerializeFixed32(n, v)
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v uint32) error { return pb.SerializeRawFixed32(v) },
	readProto:     func(pb *wire.ProtoBuffer) (uint32, error) { return pb.DeserializeFixed32() },
	writeROS:      func(rb *wire.ROSBuffer, v uint32) error { return rb.WriteUint32(v) },
	readROS:       func(rb *wire.ROSBuffer) (uint32, error) { return rb.ReadUint32() },
	rosSize:       4,
}

var sfixed32Codec = &scalarCodec[int32]{
	wireType: wire.WireFixed32,
	protoSize: func(v int32) int { return 4 },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v int32) error {
		return pb.SerializeFixed32(n, uint32(v))
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v int32) error { return pb.SerializeRawFixed32(uint32(v)) },
	readProto: func(pb *wire.ProtoBuffer) (int32, error) {
		v, err := pb.DeserializeFixed32()
		return int32(v), err
	},
	writeROS: func(rb *wire.ROSBuffer, v int32) error { return rb.WriteInt32(v) },
	readROS:  func(rb *wire.ROSBuffer) (int32, error) { return rb.ReadInt32() },
	rosSize:  4,
}

var fixed64Codec = &scalarCodec[uint64]{
	wireType: wire.WireFixed64,
	protoSize: func(v uint64) int { return 8 },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v uint64) error {
		return pb.SerializeFixed64(n, v)
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v uint64) error { return pb.SerializeRawFixed64(v) },
	readProto:     func(pb *wire.ProtoBuffer) (uint64, error) { return pb.DeserializeFixed64() },
	writeROS:      func(rb *wire.ROSBuffer, v uint64) error { return rb.WriteUint64(v) },
	readROS:       func(rb *wire.ROSBuffer) (uint64, error) { return rb.ReadUint64() },
	rosSize:       8,
}

var sfixed64Codec = &scalarCodec[int64]{
	wireType: wire.WireFixed64,
	protoSize: func(v int64) int { return 8 },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v int64) error {
		return pb.SerializeFixed64(n, uint64(v))
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v int64) error { return pb.SerializeRawFixed64(uint64(v)) },
	readProto: func(pb *wire.ProtoBuffer) (int64, error) {
		v, err := pb.DeserializeFixed64()
		return int64(v), err
	},
	writeROS: func(rb *wire.ROSBuffer, v int64) error { return rb.WriteInt64(v) },
	readROS:  func(rb *wire.ROSBuffer) (int64, error) { return rb.ReadInt64() },
	rosSize:  8,
}

var floatCodec = &scalarCodec[float32]{
	wireType: wire.WireFixed32,
	protoSize: func(v float32) int { return 4 },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v float32) error {
		return pb.SerializeFloat32(n, v)
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v float32) error {
		return pb.SerializeRawFixed32(math.Float32bits(v))
	},
	readProto: func(pb *wire.ProtoBuffer) (float32, error) { return pb.DeserializeFloat32() },
	writeROS:  func(rb *wire.ROSBuffer, v float32) error { return rb.WriteFloat32(v) },
	readROS:   func(rb *wire.ROSBuffer) (float32, error) { return rb.ReadFloat32() },
	rosSize:   4,
}

var doubleCodec = &scalarCodec[float64]{
	wireType: wire.WireFixed64,
	protoSize: func(v float64) int { return 8 },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v float64) error {
		return pb.SerializeFloat64(n, v)
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v float64) error {
		return pb.SerializeRawFixed64(math.Float64bits(v))
	},
	readProto: func(pb *wire.ProtoBuffer) (float64, error) { return pb.DeserializeFloat64() },
	writeROS:  func(rb *wire.ROSBuffer, v float64) error { return rb.WriteFloat64(v) },
	readROS:   func(rb *wire.ROSBuffer) (float64, error) { return rb.ReadFloat64() },
	rosSize:   8,
}

var boolCodec = &scalarCodec[bool]{
	wireType: wire.WireVarint,
	protoSize: func(v bool) int { return 1 },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v bool) error {
		w := uint64(0)
		if v {
			w = 1
		}
		return pb.SerializeVarint(n, w)
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v bool) error {
		w := uint64(0)
		if v {
			w = 1
		}
		return pb.SerializeRawVarint(w)
	},
	readProto: func(pb *wire.ProtoBuffer) (bool, error) {
		v, err := pb.DeserializeVarint()
		return v != 0, err
	},
	writeROS: func(rb *wire.ROSBuffer, v bool) error { return rb.WriteBool(v) },
	readROS:  func(rb *wire.ROSBuffer) (bool, error) { return rb.ReadBool() },
	rosSize:  1,
}

// enumCodec treats enum underlying storage as int32, varint-encoded, never
// zigzag — matching Protocol Buffers' own enum wire representation.
var enumCodec = &scalarCodec[int32]{
	wireType: wire.WireVarint,
	protoSize: func(v int32) int { return wire.VarintSize(uint64(int64(v))) },
	writeProto: func(pb *wire.ProtoBuffer, n wire.FieldNumber, v int32) error {
		return pb.SerializeVarint(n, uint64(int64(v)))
	},
	writeRawProto: func(pb *wire.ProtoBuffer, v int32) error { return pb.SerializeRawVarint(uint64(int64(v))) },
	readProto: func(pb *wire.ProtoBuffer) (int32, error) {
		v, err := pb.DeserializeVarint()
		return int32(int64(v)), err
	},
	writeROS: func(rb *wire.ROSBuffer, v int32) error { return rb.WriteInt32(v) },
	readROS:  func(rb *wire.ROSBuffer) (int32, error) { return rb.ReadInt32() },
	rosSize:  4,
}

// ---- constructors, one per declared Proto primitive type -----------------

func NewInt32Field(n wire.FieldNumber) *PrimitiveField[int32]      { return newPrimitiveField(n, int32Codec) }
func NewUint32Field(n wire.FieldNumber) *PrimitiveField[uint32]    { return newPrimitiveField(n, uint32Codec) }
func NewInt64Field(n wire.FieldNumber) *PrimitiveField[int64]      { return newPrimitiveField(n, int64Codec) }
func NewUint64Field(n wire.FieldNumber) *PrimitiveField[uint64]    { return newPrimitiveField(n, uint64Codec) }
func NewSint32Field(n wire.FieldNumber) *PrimitiveField[int32]     { return newPrimitiveField(n, sint32Codec) }
func NewSint64Field(n wire.FieldNumber) *PrimitiveField[int64]     { return newPrimitiveField(n, sint64Codec) }
func NewFixed32Field(n wire.FieldNumber) *PrimitiveField[uint32]   { return newPrimitiveField(n, fixed32Codec) }
func NewFixed64Field(n wire.FieldNumber) *PrimitiveField[uint64]   { return newPrimitiveField(n, fixed64Codec) }
func NewSfixed32Field(n wire.FieldNumber) *PrimitiveField[int32]   { return newPrimitiveField(n, sfixed32Codec) }
func NewSfixed64Field(n wire.FieldNumber) *PrimitiveField[int64]   { return newPrimitiveField(n, sfixed64Codec) }
func NewFloatField(n wire.FieldNumber) *PrimitiveField[float32]    { return newPrimitiveField(n, floatCodec) }
func NewDoubleField(n wire.FieldNumber) *PrimitiveField[float64]   { return newPrimitiveField(n, doubleCodec) }
func NewBoolField(n wire.FieldNumber) *PrimitiveField[bool]        { return newPrimitiveField(n, boolCodec) }
func NewEnumField(n wire.FieldNumber) *PrimitiveField[int32]       { return newPrimitiveField(n, enumCodec) }
