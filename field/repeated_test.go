package field

import (
	"bytes"
	"testing"

	"github.com/wireforge/wireforge/wire"
)

func TestRepeatedPrimitivePackedProto(t *testing.T) {
	// Scenario A: repeated int32 vi32 = 5 [packed] with [1,2,3].
	f := NewRepeatedInt32Field(5, true)
	f.Append(1)
	f.Append(2)
	f.Append(3)
	pb := wire.NewProtoBuffer()
	if err := f.WriteProto(pb); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x2a, 0x03, 0x01, 0x02, 0x03}
	if !bytes.Equal(pb.Bytes(), want) {
		t.Fatalf("got % x, want % x", pb.Bytes(), want)
	}
	if f.SerializedProtoSize() != len(want) {
		t.Fatalf("SerializedProtoSize=%d, want %d", f.SerializedProtoSize(), len(want))
	}

	f2 := NewRepeatedInt32Field(5, true)
	sub := wire.NewProtoBufferFromBytes(pb.Bytes()[1:])
	if err := f2.ParseProto(sub); err != nil {
		t.Fatal(err)
	}
	got := f2.Values()
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

func TestRepeatedPrimitiveROSCountPrefix(t *testing.T) {
	// Scenario A's vi32 ROS bytes.
	f := NewRepeatedInt32Field(5, true)
	f.Append(1)
	f.Append(2)
	f.Append(3)
	rb := wire.NewROSBuffer()
	if err := f.WriteROS(rb); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x03, 0, 0, 0, 0x01, 0, 0, 0, 0x02, 0, 0, 0, 0x03, 0, 0, 0}
	if !bytes.Equal(rb.Bytes(), want) {
		t.Fatalf("got % x, want % x", rb.Bytes(), want)
	}
}

func TestRepeatedPrimitiveUnpackedProto(t *testing.T) {
	f := NewRepeatedUint32Field(1, false)
	f.Append(10)
	f.Append(20)
	pb := wire.NewProtoBuffer()
	if err := f.WriteProto(pb); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x08, 10, 0x08, 20}
	if !bytes.Equal(pb.Bytes(), want) {
		t.Fatalf("got % x, want % x", pb.Bytes(), want)
	}
}

func TestRepeatedStringROSRoundTrip(t *testing.T) {
	f := NewRepeatedStringField(4)
	f.Append([]byte("a"))
	f.Append([]byte("bb"))
	rb := wire.NewROSBuffer()
	if err := f.WriteROS(rb); err != nil {
		t.Fatal(err)
	}
	f2 := NewRepeatedStringField(4)
	sub := wire.NewROSBufferFromBytes(rb.Bytes())
	if err := f2.ParseROS(sub); err != nil {
		t.Fatal(err)
	}
	if len(f2.Values()) != 2 || string(f2.Values()[0]) != "a" || string(f2.Values()[1]) != "bb" {
		t.Fatalf("got %v", f2.Values())
	}
}

func TestRepeatedMessageFieldProtoAndROS(t *testing.T) {
	// Scenario C: repeated Inner vm = 9 with two elements.
	mk := func(s string, f32 uint32) *testInnerMessage {
		m := newTestInnerMessage()
		m.str.Set([]byte(s))
		m.f.Set(f32)
		return m
	}
	rep := NewRepeatedMessageField[*testInnerMessage](9, newTestInnerMessage)
	rep.Append(mk("a", 1))
	rep.Append(mk("bb", 2))

	pb := wire.NewProtoBuffer()
	if err := rep.WriteProto(pb); err != nil {
		t.Fatal(err)
	}
	// Two consecutive length-delimited occurrences of tag 9 (0x4a).
	if pb.Bytes()[0] != 0x4a {
		t.Fatalf("expected first occurrence tagged 0x4a, got %x", pb.Bytes()[0])
	}

	rb := wire.NewROSBuffer()
	if err := rep.WriteROS(rb); err != nil {
		t.Fatal(err)
	}
	wantCount := []byte{0x02, 0, 0, 0}
	if !bytes.Equal(rb.Bytes()[:4], wantCount) {
		t.Fatalf("got count prefix % x, want % x", rb.Bytes()[:4], wantCount)
	}

	rep2 := NewRepeatedMessageField[*testInnerMessage](9, newTestInnerMessage)
	sub := wire.NewROSBufferFromBytes(rb.Bytes())
	if err := rep2.ParseROS(sub); err != nil {
		t.Fatal(err)
	}
	if len(rep2.Values()) != 2 || string(rep2.Values()[0].str.Get()) != "a" || rep2.Values()[1].f.Get() != 2 {
		t.Fatalf("got %+v", rep2.Values())
	}
}
