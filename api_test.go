package wireforge

import (
	"testing"

	"github.com/wireforge/wireforge/field"
	"github.com/wireforge/wireforge/registry"
	"github.com/wireforge/wireforge/wire"
)

type apiTestMessage struct {
	field.Populated
	n *field.PrimitiveField[int32]
}

func newAPITestMessage() *apiTestMessage {
	return &apiTestMessage{n: field.NewInt32Field(1)}
}

func (m *apiTestMessage) FullName() string                      { return "wireforge.apiTestMessage" }
func (m *apiTestMessage) SerializedProtoSize() int               { return m.n.SerializedProtoSize() }
func (m *apiTestMessage) SerializedROSSize() int                 { return m.n.SerializedROSSize() }
func (m *apiTestMessage) WriteProto(pb *wire.ProtoBuffer) error  { return m.n.WriteProto(pb) }
func (m *apiTestMessage) WriteROS(rb *wire.ROSBuffer) error      { return m.n.WriteROS(rb) }
func (m *apiTestMessage) ParseProto(pb *wire.ProtoBuffer) error {
	for !pb.Eof() {
		tag, err := pb.ReadTag()
		if err != nil {
			return err
		}
		if n, _ := wire.ParseTag(tag); n != 1 {
			if err := pb.SkipTag(tag); err != nil {
				return err
			}
			continue
		}
		if err := m.n.ParseProto(pb); err != nil {
			return err
		}
	}
	m.SetPopulated(true)
	return nil
}
func (m *apiTestMessage) ParseROS(rb *wire.ROSBuffer) error {
	if err := m.n.ParseROS(rb); err != nil {
		return err
	}
	m.SetPopulated(true)
	return nil
}

func TestMarshalUnmarshalProtoRoundTrip(t *testing.T) {
	m := newAPITestMessage()
	m.n.Set(42)

	data, err := MarshalProto(m)
	if err != nil {
		t.Fatal(err)
	}

	out := newAPITestMessage()
	if err := UnmarshalProto(data, out); err != nil {
		t.Fatal(err)
	}
	if out.n.Get() != 42 {
		t.Fatalf("got %d, want 42", out.n.Get())
	}
}

func TestConvertProtoToROSAndBack(t *testing.T) {
	registry.RegisterMessage(registry.Global, "wireforge.apiTestMessage", newAPITestMessage)

	m := newAPITestMessage()
	m.n.Set(7)
	protoBytes, err := MarshalProto(m)
	if err != nil {
		t.Fatal(err)
	}

	rosBytes, err := ConvertProtoToROS("wireforge.apiTestMessage", protoBytes)
	if err != nil {
		t.Fatal(err)
	}

	roundTripped, err := ConvertROSToProto("wireforge.apiTestMessage", rosBytes)
	if err != nil {
		t.Fatal(err)
	}
	if len(roundTripped) != len(protoBytes) {
		t.Fatalf("got %d bytes, want %d", len(roundTripped), len(protoBytes))
	}
}

func TestConvertUnknownTypeFails(t *testing.T) {
	if _, err := ConvertProtoToROS("wireforge.NoSuchType", nil); err == nil {
		t.Fatal("expected unknown type error")
	}
}
