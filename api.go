// Package wireforge is the module's front door: thin convenience wrappers
// around the field/wire/registry packages for callers that don't want to
// drive a ProtoBuffer/ROSBuffer by hand, plus dynamic-by-name access to the
// process-wide multiplexer for callers (like a pub/sub bridge) that only
// have a type name at runtime, not a static Go type.
package wireforge

import (
	"github.com/wireforge/wireforge/field"
	"github.com/wireforge/wireforge/registry"
	"github.com/wireforge/wireforge/wire"
	"github.com/wireforge/wireforge/wireerr"
)

// MarshalProto serializes m to its Protocol Buffers wire encoding.
func MarshalProto(m field.Message) ([]byte, error) {
	pb := wire.NewProtoBuffer()
	if err := m.WriteProto(pb); err != nil {
		return nil, err
	}
	return pb.Bytes(), nil
}

// UnmarshalProto parses Protocol Buffers bytes into m. m must be freshly
// constructed: ParseProto rejects a message that has already been
// populated.
func UnmarshalProto(data []byte, m field.Message) error {
	return m.ParseProto(wire.NewProtoBufferFromBytes(data))
}

// MarshalROS serializes m to its ROS binary wire encoding.
func MarshalROS(m field.Message) ([]byte, error) {
	rb := wire.NewROSBuffer()
	if err := m.WriteROS(rb); err != nil {
		return nil, err
	}
	return rb.Bytes(), nil
}

// UnmarshalROS parses ROS binary bytes into m.
func UnmarshalROS(data []byte, m field.Message) error {
	return m.ParseROS(wire.NewROSBufferFromBytes(data))
}

// ConvertProtoToROS re-encodes a Protocol Buffers payload as ROS binary
// using name's registered message type, without the caller needing a
// static Go type for it.
func ConvertProtoToROS(name string, data []byte) ([]byte, error) {
	m, ok := registry.Global.Create(name)
	if !ok {
		return nil, unknownType(name)
	}
	if err := registry.Global.ParseProto(name, m, wire.NewProtoBufferFromBytes(data)); err != nil {
		return nil, err
	}
	rb := wire.NewROSBuffer()
	if err := registry.Global.WriteROS(name, m, rb); err != nil {
		return nil, err
	}
	return rb.Bytes(), nil
}

// ConvertROSToProto is ConvertProtoToROS's inverse.
func ConvertROSToProto(name string, data []byte) ([]byte, error) {
	m, ok := registry.Global.Create(name)
	if !ok {
		return nil, unknownType(name)
	}
	if err := registry.Global.ParseROS(name, m, wire.NewROSBufferFromBytes(data)); err != nil {
		return nil, err
	}
	pb := wire.NewProtoBuffer()
	if err := registry.Global.WriteProto(name, m, pb); err != nil {
		return nil, err
	}
	return pb.Bytes(), nil
}

func unknownType(name string) error {
	return wireerr.Wrap("multiplexer: "+name, wireerr.ErrUnknownType)
}
