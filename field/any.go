package field

import (
	"strings"

	"github.com/wireforge/wireforge/wire"
	"github.com/wireforge/wireforge/wireerr"
)

// Multiplexer is the capability AnyField needs from the process-wide type
// registry: given a fully-qualified message type name, produce a fresh,
// empty instance of that type. Package field depends only on this narrow
// interface rather than importing the registry package outright, because
// the registry itself imports field (its vtables are built over
// field.Message); importing it here would form a cycle.
type Multiplexer interface {
	Create(typeName string) (Message, bool)
}

// AnyMessage is the polymorphic submessage a Proto `Any` holds: a type URL
// plus an instance of whatever message that URL names, resolved dynamically
// through a Multiplexer. It satisfies Message itself, so it composes into
// AnyField (and, via OneofMessageField/MessageField, into other messages)
// the same way any generated message would.
type AnyMessage struct {
	Populated
	typeURL string
	value   Message
	mux     Multiplexer
}

// NewAnyMessage wires up an empty AnyMessage bound to mux; generated code
// passes the process multiplexer here.
func NewAnyMessage(mux Multiplexer) *AnyMessage {
	return &AnyMessage{mux: mux}
}

func (a *AnyMessage) FullName() string { return "google.protobuf.Any" }

// TypeURL returns the raw type_url string.
func (a *AnyMessage) TypeURL() string { return a.typeURL }

// Value returns the dynamically-resolved submessage, or nil if unset.
func (a *AnyMessage) Value() Message { return a.value }

// SetValue packs v under typeURL, taking ownership of v as the Any's value.
func (a *AnyMessage) SetValue(typeURL string, v Message) {
	a.typeURL = typeURL
	a.value = v
}

// MessageTypeName derives the multiplexer lookup key from type_url: the
// substring after the last '/', or the whole string if there is none.
func (a *AnyMessage) MessageTypeName() string {
	if i := strings.LastIndexByte(a.typeURL, '/'); i >= 0 {
		return a.typeURL[i+1:]
	}
	return a.typeURL
}

const (
	anyTypeURLField wire.FieldNumber = 1
	anyValueField   wire.FieldNumber = 2
)

func (a *AnyMessage) SerializedProtoSize() int {
	size := 0
	if a.typeURL != "" {
		size += wire.LengthDelimitedSize(anyTypeURLField, len(a.typeURL))
	}
	if a.value != nil {
		size += wire.LengthDelimitedSize(anyValueField, a.value.SerializedProtoSize())
	}
	return size
}

// WriteProto emits type_url if present, then serializes value into a
// temporary ProtoBuffer and wraps it as a length-delimited field with tag 2.
func (a *AnyMessage) WriteProto(pb *wire.ProtoBuffer) error {
	if a.typeURL != "" {
		if err := pb.SerializeLengthDelimited(anyTypeURLField, []byte(a.typeURL)); err != nil {
			return err
		}
	}
	if a.value == nil {
		return nil
	}
	inner := wire.NewProtoBuffer()
	if err := a.value.WriteProto(inner); err != nil {
		return err
	}
	return pb.SerializeLengthDelimited(anyValueField, inner.Bytes())
}

// ParseProto dispatches on field number: 1 populates type_url directly; 2
// creates a value instance via the multiplexer (keyed by MessageTypeName)
// and parses into it; any other tag is skipped. Fails if the type named by
// type_url isn't registered.
func (a *AnyMessage) ParseProto(pb *wire.ProtoBuffer) error {
	if a.IsPopulated() {
		return wireerr.ErrDoubleParse
	}
	for !pb.Eof() {
		tag, err := pb.ReadTag()
		if err != nil {
			return err
		}
		n, _ := wire.ParseTag(tag)
		switch n {
		case anyTypeURLField:
			v, err := pb.DeserializeString()
			if err != nil {
				return err
			}
			a.typeURL = string(v)
		case anyValueField:
			body, err := pb.DeserializeLengthDelimited()
			if err != nil {
				return err
			}
			value, ok := a.mux.Create(a.MessageTypeName())
			if !ok {
				return wireerr.Wrap("any: unknown type "+a.MessageTypeName(), wireerr.ErrUnknownType)
			}
			sub := wire.NewProtoBufferFromBytes(body)
			if err := value.ParseProto(sub); err != nil {
				return err
			}
			a.value = value
		default:
			if err := pb.SkipTag(tag); err != nil {
				return err
			}
		}
	}
	a.SetPopulated(true)
	return nil
}

func (a *AnyMessage) SerializedROSSize() int {
	size := 4 + len(a.typeURL)
	size += 4
	if a.value != nil {
		size += a.value.SerializedROSSize()
	}
	return size
}

// WriteROS writes type_url, then serializes value into a temporary
// ROSBuffer and emits that as a length-prefixed byte string.
func (a *AnyMessage) WriteROS(rb *wire.ROSBuffer) error {
	if err := rb.WriteString([]byte(a.typeURL)); err != nil {
		return err
	}
	if a.value == nil {
		return rb.WriteRaw(nil)
	}
	inner := wire.NewROSBuffer()
	if err := a.value.WriteROS(inner); err != nil {
		return err
	}
	return rb.WriteRaw(inner.Bytes())
}

// ParseROS parses type_url; if absent, skips the value entirely (still
// consuming its 4-byte length, which will be 0). Otherwise resolves value's
// type through the multiplexer and parses the nested ROS blob into it.
func (a *AnyMessage) ParseROS(rb *wire.ROSBuffer) error {
	if a.IsPopulated() {
		return wireerr.ErrDoubleParse
	}
	typeURL, err := rb.ReadString()
	if err != nil {
		return err
	}
	a.typeURL = string(typeURL)
	raw, err := rb.ReadRaw()
	if err != nil {
		return err
	}
	if a.typeURL == "" || len(raw) == 0 {
		a.SetPopulated(true)
		return nil
	}
	value, ok := a.mux.Create(a.MessageTypeName())
	if !ok {
		return wireerr.Wrap("any: unknown type "+a.MessageTypeName(), wireerr.ErrUnknownType)
	}
	sub := wire.NewROSBufferFromBytes(raw)
	if err := value.ParseROS(sub); err != nil {
		return err
	}
	a.value = value
	a.SetPopulated(true)
	return nil
}

// AnyField wraps an AnyMessage as a regular submessage field, so generated
// code composes it the same way it composes any other submessage: Proto
// frames it length-delimited, ROS writes it inline with no extra framing
// (AnyMessage's own type_url + length-prefixed value pair is its extent).
type AnyField struct {
	Base
	value *AnyMessage
}

func NewAnyField(n wire.FieldNumber, value *AnyMessage) *AnyField {
	return &AnyField{Base: NewBase(n), value: value}
}

func (f *AnyField) Get() *AnyMessage { return f.value }

func (f *AnyField) SerializedProtoSize() int {
	if !f.IsPresent() {
		return 0
	}
	return wire.LengthDelimitedSize(f.Number(), f.value.SerializedProtoSize())
}

func (f *AnyField) SerializedROSSize() int { return f.value.SerializedROSSize() }

func (f *AnyField) WriteProto(pb *wire.ProtoBuffer) error {
	if !f.IsPresent() {
		return nil
	}
	if err := pb.SerializeLengthDelimitedHeader(f.Number(), f.value.SerializedProtoSize()); err != nil {
		return err
	}
	return f.value.WriteProto(pb)
}

func (f *AnyField) ParseProto(pb *wire.ProtoBuffer) error {
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

func (f *AnyField) WriteROS(rb *wire.ROSBuffer) error {
	return f.value.WriteROS(rb)
}

func (f *AnyField) ParseROS(rb *wire.ROSBuffer) error {
	if err := f.value.ParseROS(rb); err != nil {
		return err
	}
	f.SetPresent(true)
	return nil
}
