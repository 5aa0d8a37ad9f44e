package field

import "github.com/wireforge/wireforge/wire"

// RepeatedPrimitiveField holds a dense sequence of T. Packed is proto3's
// default for scalar repeated fields; unpacked emits one tagged occurrence
// per element (proto2 semantics, or an explicit `[packed = false]`).
type RepeatedPrimitiveField[T comparable] struct {
	Base
	codec  *scalarCodec[T]
	packed bool
	values []T
}

func newRepeatedPrimitiveField[T comparable](n wire.FieldNumber, codec *scalarCodec[T], packed bool) *RepeatedPrimitiveField[T] {
	return &RepeatedPrimitiveField[T]{Base: NewBase(n), codec: codec, packed: packed}
}

func NewRepeatedInt32Field(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[int32] {
	return newRepeatedPrimitiveField(n, int32Codec, packed)
}
func NewRepeatedUint32Field(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[uint32] {
	return newRepeatedPrimitiveField(n, uint32Codec, packed)
}
func NewRepeatedInt64Field(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[int64] {
	return newRepeatedPrimitiveField(n, int64Codec, packed)
}
func NewRepeatedUint64Field(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[uint64] {
	return newRepeatedPrimitiveField(n, uint64Codec, packed)
}
func NewRepeatedSint32Field(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[int32] {
	return newRepeatedPrimitiveField(n, sint32Codec, packed)
}
func NewRepeatedSint64Field(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[int64] {
	return newRepeatedPrimitiveField(n, sint64Codec, packed)
}
func NewRepeatedFixed32Field(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[uint32] {
	return newRepeatedPrimitiveField(n, fixed32Codec, packed)
}
func NewRepeatedSfixed32Field(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[int32] {
	return newRepeatedPrimitiveField(n, sfixed32Codec, packed)
}
func NewRepeatedFixed64Field(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[uint64] {
	return newRepeatedPrimitiveField(n, fixed64Codec, packed)
}
func NewRepeatedSfixed64Field(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[int64] {
	return newRepeatedPrimitiveField(n, sfixed64Codec, packed)
}
func NewRepeatedFloatField(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[float32] {
	return newRepeatedPrimitiveField(n, floatCodec, packed)
}
func NewRepeatedDoubleField(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[float64] {
	return newRepeatedPrimitiveField(n, doubleCodec, packed)
}
func NewRepeatedBoolField(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[bool] {
	return newRepeatedPrimitiveField(n, boolCodec, packed)
}
func NewRepeatedEnumField(n wire.FieldNumber, packed bool) *RepeatedPrimitiveField[int32] {
	return newRepeatedPrimitiveField(n, enumCodec, packed)
}

func (f *RepeatedPrimitiveField[T]) Values() []T { return f.values }

func (f *RepeatedPrimitiveField[T]) Append(v T) {
	f.values = append(f.values, v)
	f.SetPresent(true)
}

func (f *RepeatedPrimitiveField[T]) SerializedProtoSize() int {
	if len(f.values) == 0 {
		return 0
	}
	if f.packed {
		length := 0
		for _, v := range f.values {
			length += f.codec.protoSize(v)
		}
		return wire.LengthDelimitedSize(f.Number(), length)
	}
	total := 0
	for _, v := range f.values {
		total += wire.TagSize(f.Number(), f.codec.wireType) + f.codec.protoSize(v)
	}
	return total
}

func (f *RepeatedPrimitiveField[T]) SerializedROSSize() int {
	return 4 + len(f.values)*f.codec.rosSize
}

func (f *RepeatedPrimitiveField[T]) WriteProto(pb *wire.ProtoBuffer) error {
	if len(f.values) == 0 {
		return nil
	}
	if f.packed {
		length := 0
		for _, v := range f.values {
			length += f.codec.protoSize(v)
		}
		if err := pb.SerializeLengthDelimitedHeader(f.Number(), length); err != nil {
			return err
		}
		for _, v := range f.values {
			if err := f.codec.writeRawProto(pb, v); err != nil {
				return err
			}
		}
		return nil
	}
	for _, v := range f.values {
		if err := f.codec.writeProto(pb, f.Number(), v); err != nil {
			return err
		}
	}
	return nil
}

func (f *RepeatedPrimitiveField[T]) ParseProto(pb *wire.ProtoBuffer) error {
	if f.packed {
		body, err := pb.DeserializeLengthDelimited()
		if err != nil {
			return err
		}
		sub := wire.NewProtoBufferFromBytes(body)
		for !sub.Eof() {
			v, err := f.codec.readProto(sub)
			if err != nil {
				return err
			}
			f.values = append(f.values, v)
		}
		f.SetPresent(true)
		return nil
	}
	v, err := f.codec.readProto(pb)
	if err != nil {
		return err
	}
	f.values = append(f.values, v)
	f.SetPresent(true)
	return nil
}

func (f *RepeatedPrimitiveField[T]) WriteROS(rb *wire.ROSBuffer) error {
	if err := rb.WriteCountPrefix(len(f.values)); err != nil {
		return err
	}
	for _, v := range f.values {
		if err := f.codec.writeROS(rb, v); err != nil {
			return err
		}
	}
	return nil
}

func (f *RepeatedPrimitiveField[T]) ParseROS(rb *wire.ROSBuffer) error {
	n, err := rb.ReadCountPrefix()
	if err != nil {
		return err
	}
	f.values = make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := f.codec.readROS(rb)
		if err != nil {
			return err
		}
		f.values = append(f.values, v)
	}
	f.SetPresent(len(f.values) > 0)
	return nil
}

// ---- RepeatedStringField --------------------------------------------------

// RepeatedStringField is a sequence of strings/bytes.
type RepeatedStringField struct {
	Base
	values [][]byte
}

func NewRepeatedStringField(n wire.FieldNumber) *RepeatedStringField {
	return &RepeatedStringField{Base: NewBase(n)}
}

func (f *RepeatedStringField) Values() [][]byte { return f.values }

func (f *RepeatedStringField) Append(v []byte) {
	f.values = append(f.values, v)
	f.SetPresent(true)
}

func (f *RepeatedStringField) SerializedProtoSize() int {
	total := 0
	for _, v := range f.values {
		total += wire.LengthDelimitedSize(f.Number(), len(v))
	}
	return total
}

func (f *RepeatedStringField) SerializedROSSize() int {
	total := 4
	for _, v := range f.values {
		total += 4 + len(v)
	}
	return total
}

func (f *RepeatedStringField) WriteProto(pb *wire.ProtoBuffer) error {
	for _, v := range f.values {
		if err := pb.SerializeLengthDelimited(f.Number(), v); err != nil {
			return err
		}
	}
	return nil
}

func (f *RepeatedStringField) ParseProto(pb *wire.ProtoBuffer) error {
	v, err := pb.DeserializeString()
	if err != nil {
		return err
	}
	f.values = append(f.values, v)
	f.SetPresent(true)
	return nil
}

func (f *RepeatedStringField) WriteROS(rb *wire.ROSBuffer) error {
	if err := rb.WriteCountPrefix(len(f.values)); err != nil {
		return err
	}
	for _, v := range f.values {
		if err := rb.WriteString(v); err != nil {
			return err
		}
	}
	return nil
}

func (f *RepeatedStringField) ParseROS(rb *wire.ROSBuffer) error {
	n, err := rb.ReadCountPrefix()
	if err != nil {
		return err
	}
	f.values = make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		v, err := rb.ReadString()
		if err != nil {
			return err
		}
		f.values = append(f.values, v)
	}
	f.SetPresent(len(f.values) > 0)
	return nil
}

// ---- RepeatedMessageField --------------------------------------------------

// RepeatedMessageField is a sequence of submessages of type M.
type RepeatedMessageField[M Message] struct {
	Base
	values  []M
	newElem func() M
}

// NewRepeatedMessageField takes a constructor for the element type because,
// unlike MessageField, elements are created lazily as they're parsed.
func NewRepeatedMessageField[M Message](n wire.FieldNumber, newElem func() M) *RepeatedMessageField[M] {
	return &RepeatedMessageField[M]{Base: NewBase(n), newElem: newElem}
}

func (f *RepeatedMessageField[M]) Values() []M { return f.values }

func (f *RepeatedMessageField[M]) Append(v M) {
	f.values = append(f.values, v)
	f.SetPresent(true)
}

func (f *RepeatedMessageField[M]) SerializedProtoSize() int {
	total := 0
	for _, v := range f.values {
		total += wire.LengthDelimitedSize(f.Number(), v.SerializedProtoSize())
	}
	return total
}

func (f *RepeatedMessageField[M]) SerializedROSSize() int {
	total := 4
	for _, v := range f.values {
		total += v.SerializedROSSize()
	}
	return total
}

func (f *RepeatedMessageField[M]) WriteProto(pb *wire.ProtoBuffer) error {
	for _, v := range f.values {
		if err := pb.SerializeLengthDelimitedHeader(f.Number(), v.SerializedProtoSize()); err != nil {
			return err
		}
		if err := v.WriteProto(pb); err != nil {
			return err
		}
	}
	return nil
}

func (f *RepeatedMessageField[M]) ParseProto(pb *wire.ProtoBuffer) error {
	body, err := pb.DeserializeLengthDelimited()
	if err != nil {
		return err
	}
	elem := f.newElem()
	sub := wire.NewProtoBufferFromBytes(body)
	if err := elem.ParseProto(sub); err != nil {
		return err
	}
	f.values = append(f.values, elem)
	f.SetPresent(true)
	return nil
}

func (f *RepeatedMessageField[M]) WriteROS(rb *wire.ROSBuffer) error {
	if err := rb.WriteCountPrefix(len(f.values)); err != nil {
		return err
	}
	for _, v := range f.values {
		if err := v.WriteROS(rb); err != nil {
			return err
		}
	}
	return nil
}

func (f *RepeatedMessageField[M]) ParseROS(rb *wire.ROSBuffer) error {
	n, err := rb.ReadCountPrefix()
	if err != nil {
		return err
	}
	f.values = make([]M, 0, n)
	for i := 0; i < n; i++ {
		elem := f.newElem()
		if err := elem.ParseROS(rb); err != nil {
			return err
		}
		f.values = append(f.values, elem)
	}
	f.SetPresent(len(f.values) > 0)
	return nil
}
