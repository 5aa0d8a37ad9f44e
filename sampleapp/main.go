// Command sampleapp is a minimal end-to-end demo of the generated-message
// shape: a hand-written stand-in for what wireforge-compile would emit for
// a small "Event" message, round-tripped through both wire formats and
// through the Proto<->ROS bridge via the multiplexer.
package main

import (
	"encoding/hex"
	"fmt"
	"log"

	wireforge "github.com/wireforge/wireforge"
	"github.com/wireforge/wireforge/field"
	"github.com/wireforge/wireforge/registry"
	"github.com/wireforge/wireforge/wire"
)

// event is the shape wireforge-compile would generate for:
//
//	message Event {
//	  string name = 1;
//	  int32 severity = 2;
//	  repeated uint32 tags = 3 [packed = true];
//	}
type event struct {
	field.Populated
	Name     *field.StringField
	Severity *field.PrimitiveField[int32]
	Tags     *field.RepeatedPrimitiveField[uint32]
}

func newEvent() *event {
	return &event{
		Name:     field.NewStringField(1),
		Severity: field.NewInt32Field(2),
		Tags:     field.NewRepeatedUint32Field(3, true),
	}
}

func (e *event) FullName() string { return "sample.Event" }

func (e *event) SerializedProtoSize() int {
	return e.Name.SerializedProtoSize() + e.Severity.SerializedProtoSize() + e.Tags.SerializedProtoSize()
}

func (e *event) SerializedROSSize() int {
	return e.Name.SerializedROSSize() + e.Severity.SerializedROSSize() + e.Tags.SerializedROSSize()
}

func (e *event) WriteProto(pb *wire.ProtoBuffer) error {
	if err := e.Name.WriteProto(pb); err != nil {
		return err
	}
	if err := e.Severity.WriteProto(pb); err != nil {
		return err
	}
	return e.Tags.WriteProto(pb)
}

func (e *event) WriteROS(rb *wire.ROSBuffer) error {
	if err := e.Name.WriteROS(rb); err != nil {
		return err
	}
	if err := e.Severity.WriteROS(rb); err != nil {
		return err
	}
	return e.Tags.WriteROS(rb)
}

func (e *event) ParseProto(pb *wire.ProtoBuffer) error {
	for !pb.Eof() {
		tag, err := pb.ReadTag()
		if err != nil {
			return err
		}
		n, _ := wire.ParseTag(tag)
		switch n {
		case 1:
			if err := e.Name.ParseProto(pb); err != nil {
				return err
			}
		case 2:
			if err := e.Severity.ParseProto(pb); err != nil {
				return err
			}
		case 3:
			if err := e.Tags.ParseProto(pb); err != nil {
				return err
			}
		default:
			if err := pb.SkipTag(tag); err != nil {
				return err
			}
		}
	}
	e.SetPopulated(true)
	return nil
}

func (e *event) ParseROS(rb *wire.ROSBuffer) error {
	if err := e.Name.ParseROS(rb); err != nil {
		return err
	}
	if err := e.Severity.ParseROS(rb); err != nil {
		return err
	}
	if err := e.Tags.ParseROS(rb); err != nil {
		return err
	}
	e.SetPopulated(true)
	return nil
}

func init() {
	registry.RegisterMessage(registry.Global, "sample.Event", newEvent)
}

func main() {
	e := newEvent()
	e.Name.Set([]byte("disk pressure"))
	e.Severity.Set(2)
	e.Tags.Append(100)
	e.Tags.Append(200)

	protoBytes, err := wireforge.MarshalProto(e)
	if err != nil {
		log.Fatalf("marshal proto: %v", err)
	}
	fmt.Printf("proto: %s\n", hex.EncodeToString(protoBytes))

	rosBytes, err := wireforge.ConvertProtoToROS("sample.Event", protoBytes)
	if err != nil {
		log.Fatalf("convert to ROS: %v", err)
	}
	fmt.Printf("ros:   %s\n", hex.EncodeToString(rosBytes))

	roundTripped := newEvent()
	if err := wireforge.UnmarshalROS(rosBytes, roundTripped); err != nil {
		log.Fatalf("unmarshal ROS: %v", err)
	}
	fmt.Printf("round-trip name=%q severity=%d tags=%v\n",
		roundTripped.Name.Get(), roundTripped.Severity.Get(), roundTripped.Tags.Values())
}
