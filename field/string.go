package field

import "github.com/wireforge/wireforge/wire"

// StringField holds a UTF-8-or-binary byte sequence (covers both proto
// `string` and `bytes`, which share an encoding). Parse returns an owning
// copy per spec.md §9 open question (b)'s stated safe default.
type StringField struct {
	Base
	value []byte
}

func NewStringField(n wire.FieldNumber) *StringField {
	return &StringField{Base: NewBase(n)}
}

func (f *StringField) Get() []byte { return f.value }

func (f *StringField) Set(v []byte) {
	f.value = v
	f.SetPresent(true)
}

func (f *StringField) SerializedProtoSize() int {
	if !f.IsPresent() {
		return 0
	}
	return wire.LengthDelimitedSize(f.Number(), len(f.value))
}

func (f *StringField) SerializedROSSize() int { return 4 + len(f.value) }

func (f *StringField) WriteProto(pb *wire.ProtoBuffer) error {
	if !f.IsPresent() {
		return nil
	}
	return pb.SerializeLengthDelimited(f.Number(), f.value)
}

func (f *StringField) ParseProto(pb *wire.ProtoBuffer) error {
	v, err := pb.DeserializeString()
	if err != nil {
		return err
	}
	f.value = v
	f.SetPresent(true)
	return nil
}

func (f *StringField) WriteROS(rb *wire.ROSBuffer) error {
	return rb.WriteString(f.value)
}

// ParseROS sets presence iff the decoded string is non-empty, mirroring the
// primitive fields' "present iff non-zero" convention for strings.
func (f *StringField) ParseROS(rb *wire.ROSBuffer) error {
	v, err := rb.ReadString()
	if err != nil {
		return err
	}
	f.value = v
	f.SetPresent(len(v) > 0)
	return nil
}
