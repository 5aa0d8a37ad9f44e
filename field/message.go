package field

import "github.com/wireforge/wireforge/wire"

// MessageField holds one instance of another generated message type M.
// Proto frames it as length-delimited; ROS writes it inline with no
// framing (the nested message's own fixed composition defines its
// extent), per spec.md §3/§4.3.
type MessageField[M Message] struct {
	Base
	value M
}

// NewMessageField wires up a MessageField whose storage is a freshly
// constructed M, supplied by generated code via value (the generator
// emits a call to the message's own zero-value constructor here).
func NewMessageField[M Message](n wire.FieldNumber, value M) *MessageField[M] {
	return &MessageField[M]{Base: NewBase(n), value: value}
}

func (f *MessageField[M]) Get() M { return f.value }

func (f *MessageField[M]) Set(v M) {
	f.value = v
	f.SetPresent(true)
}

func (f *MessageField[M]) SerializedProtoSize() int {
	if !f.IsPresent() {
		return 0
	}
	return wire.LengthDelimitedSize(f.Number(), f.value.SerializedProtoSize())
}

func (f *MessageField[M]) SerializedROSSize() int { return f.value.SerializedROSSize() }

func (f *MessageField[M]) WriteProto(pb *wire.ProtoBuffer) error {
	if !f.IsPresent() {
		return nil
	}
	if err := pb.SerializeLengthDelimitedHeader(f.Number(), f.value.SerializedProtoSize()); err != nil {
		return err
	}
	return f.value.WriteProto(pb)
}

func (f *MessageField[M]) ParseProto(pb *wire.ProtoBuffer) error {
	body, err := pb.DeserializeLengthDelimited()
	if err != nil {
		return err
	}
	sub := wire.NewProtoBufferFromBytes(body)
	if err := f.value.ParseProto(sub); err != nil {
		return err
	}
	f.SetPresent(true)
	return nil
}

// WriteROS delegates directly to the nested message; no framing.
func (f *MessageField[M]) WriteROS(rb *wire.ROSBuffer) error {
	return f.value.WriteROS(rb)
}

// ParseROS delegates directly to the nested message; presence follows the
// nested message's own ParseROS having succeeded.
func (f *MessageField[M]) ParseROS(rb *wire.ROSBuffer) error {
	if err := f.value.ParseROS(rb); err != nil {
		return err
	}
	f.SetPresent(true)
	return nil
}
