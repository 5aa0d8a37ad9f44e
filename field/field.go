// Package field implements the typed field library: the runtime objects
// that compose into a generated message body and know, per variant, how to
// size/write/parse themselves in both Proto and ROS wire format. This is
// the direct analogue of the donor codebase's schema-driven field dispatch
// (wire.MessageEncoder/MessageDecoder), specialized to the static,
// generator-emitted struct shape this system uses instead of a runtime
// schema walk.
package field

import "github.com/wireforge/wireforge/wire"

// Base carries the two things every field variant has: its declared Proto
// tag number and whether it has been populated.
type Base struct {
	number  wire.FieldNumber
	present bool
}

// NewBase constructs a Base for the given Proto field number.
func NewBase(number wire.FieldNumber) Base {
	return Base{number: number}
}

// Number returns the field's declared Proto tag number.
func (b *Base) Number() wire.FieldNumber { return b.number }

// IsPresent reports whether the field has been populated.
func (b *Base) IsPresent() bool { return b.present }

// SetPresent sets the presence flag directly; used by generated Set
// accessors and by parse paths that don't go through a codec's zero-value
// comparison (submessages, strings).
func (b *Base) SetPresent(v bool) { b.present = v }

// Message is the capability set every generated message type, and the
// AnyMessage wrapper, exposes. It mirrors the six-operation surface each
// field variant exposes, plus the population guard from spec.md's
// "populated at most once" invariant.
type Message interface {
	FullName() string
	IsPopulated() bool
	SetPopulated(bool)
	SerializedProtoSize() int
	SerializedROSSize() int
	WriteProto(pb *wire.ProtoBuffer) error
	WriteROS(rb *wire.ROSBuffer) error
	ParseProto(pb *wire.ProtoBuffer) error
	ParseROS(rb *wire.ROSBuffer) error
}

// Populated is embedded by generated message types to implement the
// IsPopulated/SetPopulated half of the Message interface, grounding the
// "message instance may be populated at most once" invariant.
type Populated struct {
	populated bool
}

func (p *Populated) IsPopulated() bool    { return p.populated }
func (p *Populated) SetPopulated(v bool) { p.populated = v }
