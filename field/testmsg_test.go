package field

import "github.com/wireforge/wireforge/wire"

// testInnerMessage is a minimal stand-in for a generated message, used by
// this package's own tests to exercise MessageField/RepeatedMessageField/
// OneofMessageField/AnyMessage without depending on the generator. Its
// shape matches spec scenario B/C/E's Inner message: a string `str` (tag 1)
// and a fixed32 `f` (tag 2).
type testInnerMessage struct {
	Populated
	str *StringField
	f   *PrimitiveField[uint32]
}

func newTestInnerMessage() *testInnerMessage {
	return &testInnerMessage{str: NewStringField(1), f: NewFixed32Field(2)}
}

func (m *testInnerMessage) FullName() string { return "foo.bar.InnerMessage" }

func (m *testInnerMessage) SerializedProtoSize() int {
	return m.str.SerializedProtoSize() + m.f.SerializedProtoSize()
}

func (m *testInnerMessage) SerializedROSSize() int {
	return m.str.SerializedROSSize() + m.f.SerializedROSSize()
}

func (m *testInnerMessage) WriteProto(pb *wire.ProtoBuffer) error {
	if err := m.str.WriteProto(pb); err != nil {
		return err
	}
	return m.f.WriteProto(pb)
}

func (m *testInnerMessage) WriteROS(rb *wire.ROSBuffer) error {
	if err := m.str.WriteROS(rb); err != nil {
		return err
	}
	return m.f.WriteROS(rb)
}

func (m *testInnerMessage) ParseProto(pb *wire.ProtoBuffer) error {
	for !pb.Eof() {
		tag, err := pb.ReadTag()
		if err != nil {
			return err
		}
		n, _ := wire.ParseTag(tag)
		switch n {
		case 1:
			if err := m.str.ParseProto(pb); err != nil {
				return err
			}
		case 2:
			if err := m.f.ParseProto(pb); err != nil {
				return err
			}
		default:
			if err := pb.SkipTag(tag); err != nil {
				return err
			}
		}
	}
	m.SetPopulated(true)
	return nil
}

func (m *testInnerMessage) ParseROS(rb *wire.ROSBuffer) error {
	if err := m.str.ParseROS(rb); err != nil {
		return err
	}
	if err := m.f.ParseROS(rb); err != nil {
		return err
	}
	m.SetPopulated(true)
	return nil
}

// testMux is a tiny Multiplexer stub for AnyField tests.
type testMux struct{}

func (testMux) Create(typeName string) (Message, bool) {
	if typeName != "foo.bar.InnerMessage" {
		return nil, false
	}
	return newTestInnerMessage(), true
}
