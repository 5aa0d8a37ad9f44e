package field

import (
	"fmt"

	"github.com/wireforge/wireforge/wire"
)

// Member is the capability set an individual oneof member field exposes —
// the same six operations every field variant has, plus its declared Proto
// tag number so OneofField can route by tag.
type Member interface {
	Number() wire.FieldNumber
	SerializedProtoSize() int
	SerializedROSSize() int
	WriteProto(pb *wire.ProtoBuffer) error
	WriteROS(rb *wire.ROSBuffer) error
	ParseProto(pb *wire.ProtoBuffer) error
	ParseROS(rb *wire.ROSBuffer) error
}

// OneofField holds a discriminated choice among its members. Unlike other
// field variants it keeps storage for every member, not just the active
// one: Proto only ever touches the active member, but ROS always walks all
// of them in declaration order (see OneofMessageField for how a submessage
// member represents its own absence on the ROS side).
type OneofField struct {
	discriminator wire.FieldNumber
	members       []Member
	byTag         map[wire.FieldNumber]Member
}

// NewOneofField wires up a union over members, in declaration order.
func NewOneofField(members ...Member) *OneofField {
	byTag := make(map[wire.FieldNumber]Member, len(members))
	for _, m := range members {
		byTag[m.Number()] = m
	}
	return &OneofField{members: members, byTag: byTag}
}

// Discriminator returns the Proto tag of the active member, or 0 if none.
func (f *OneofField) Discriminator() wire.FieldNumber { return f.discriminator }

// SetActive marks tag's member as the active choice, for a freshly
// constructed message built field-by-field rather than parsed: the
// member's own setter fills in its value, and SetActive tells WriteProto
// and WriteROS which one to treat as chosen. tag must name one of this
// oneof's members.
func (f *OneofField) SetActive(tag wire.FieldNumber) error {
	if !f.HasMember(tag) {
		return fmt.Errorf("field: tag %d does not name a member of this oneof", tag)
	}
	f.discriminator = tag
	return nil
}

// HasMember reports whether tag names one of this oneof's members; callers
// driving a Proto parse loop use this to decide whether a tag belongs here.
func (f *OneofField) HasMember(tag wire.FieldNumber) bool {
	_, ok := f.byTag[tag]
	return ok
}

// ParseProtoMember parses the active-member form for the given tag. Callers
// must have already established HasMember(tag).
func (f *OneofField) ParseProtoMember(pb *wire.ProtoBuffer, tag wire.FieldNumber) error {
	m := f.byTag[tag]
	if err := m.ParseProto(pb); err != nil {
		return err
	}
	f.discriminator = tag
	return nil
}

func (f *OneofField) SerializedProtoSize() int {
	if f.discriminator == 0 {
		return 0
	}
	return f.byTag[f.discriminator].SerializedProtoSize()
}

// WriteProto emits only the active member, per spec.
func (f *OneofField) WriteProto(pb *wire.ProtoBuffer) error {
	if f.discriminator == 0 {
		return nil
	}
	return f.byTag[f.discriminator].WriteProto(pb)
}

// SerializedROSSize is the discriminator plus every member's ROS size.
func (f *OneofField) SerializedROSSize() int {
	total := 4
	for _, m := range f.members {
		total += m.SerializedROSSize()
	}
	return total
}

// WriteROS writes the discriminator, then every member in declaration
// order; inactive members write their own zero/empty form.
func (f *OneofField) WriteROS(rb *wire.ROSBuffer) error {
	if err := rb.WriteInt32(int32(f.discriminator)); err != nil {
		return err
	}
	for _, m := range f.members {
		if err := m.WriteROS(rb); err != nil {
			return err
		}
	}
	return nil
}

// ParseROS mirrors WriteROS: read the discriminator, then parse every
// member in order. The discriminator alone tells the consumer which member
// to trust.
func (f *OneofField) ParseROS(rb *wire.ROSBuffer) error {
	d, err := rb.ReadInt32()
	if err != nil {
		return err
	}
	f.discriminator = wire.FieldNumber(d)
	for _, m := range f.members {
		if err := m.ParseROS(rb); err != nil {
			return err
		}
	}
	return nil
}

// OneofMessageField is the submessage specialization of a oneof member: its
// Proto form is an ordinary length-delimited submessage, but its ROS form
// wraps the body as a 0-or-1-element sequence (a 4-byte count, then the
// body iff present) so absence survives ROS's lack of a presence bit.
type OneofMessageField[M Message] struct {
	Base
	value M
}

func NewOneofMessageField[M Message](n wire.FieldNumber, value M) *OneofMessageField[M] {
	return &OneofMessageField[M]{Base: NewBase(n), value: value}
}

func (f *OneofMessageField[M]) Get() M { return f.value }

func (f *OneofMessageField[M]) Set(v M) {
	f.value = v
	f.SetPresent(true)
}

func (f *OneofMessageField[M]) SerializedProtoSize() int {
	if !f.IsPresent() {
		return 0
	}
	return wire.LengthDelimitedSize(f.Number(), f.value.SerializedProtoSize())
}

func (f *OneofMessageField[M]) WriteProto(pb *wire.ProtoBuffer) error {
	if !f.IsPresent() {
		return nil
	}
	if err := pb.SerializeLengthDelimitedHeader(f.Number(), f.value.SerializedProtoSize()); err != nil {
		return err
	}
	return f.value.WriteProto(pb)
}

func (f *OneofMessageField[M]) ParseProto(pb *wire.ProtoBuffer) error {
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

func (f *OneofMessageField[M]) SerializedROSSize() int {
	if !f.IsPresent() {
		return 4
	}
	return 4 + f.value.SerializedROSSize()
}

func (f *OneofMessageField[M]) WriteROS(rb *wire.ROSBuffer) error {
	if !f.IsPresent() {
		return rb.WriteCountPrefix(0)
	}
	if err := rb.WriteCountPrefix(1); err != nil {
		return err
	}
	return f.value.WriteROS(rb)
}

func (f *OneofMessageField[M]) ParseROS(rb *wire.ROSBuffer) error {
	n, err := rb.ReadCountPrefix()
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if err := f.value.ParseROS(rb); err != nil {
		return err
	}
	f.SetPresent(true)
	return nil
}
