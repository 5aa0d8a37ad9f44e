package field

import (
	"bytes"
	"testing"

	"github.com/wireforge/wireforge/wire"
)

// Scenario D: a union with members u1a: uint32 = 100, u1b: string = 101,
// with u1a active carrying 0x01020304.

func activeOneof(t *testing.T) (*OneofField, *PrimitiveField[uint32], *StringField) {
	t.Helper()
	u1a := NewUint32Field(100)
	u1b := NewStringField(101)
	u := NewOneofField(u1a, u1b)
	ref := wire.NewProtoBuffer()
	if err := ref.SerializeVarint(100, 0x01020304); err != nil {
		t.Fatal(err)
	}
	sub := wire.NewProtoBufferFromBytes(ref.Bytes()[wire.TagSize(100, wire.WireVarint):])
	if err := u.ParseProtoMember(sub, 100); err != nil {
		t.Fatal(err)
	}
	return u, u1a, u1b
}

func TestOneofProtoExclusivity(t *testing.T) {
	u, u1a, _ := activeOneof(t)

	if u.Discriminator() != 100 {
		t.Fatalf("discriminator=%d, want 100", u.Discriminator())
	}
	if u1a.Get() != 0x01020304 {
		t.Fatalf("u1a=%x, want 0x01020304", u1a.Get())
	}

	out := wire.NewProtoBuffer()
	if err := u.WriteProto(out); err != nil {
		t.Fatal(err)
	}
	want := wire.NewProtoBuffer()
	if err := want.SerializeVarint(100, 0x01020304); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), want.Bytes()) {
		t.Fatalf("got % x, want % x", out.Bytes(), want.Bytes())
	}
}

func TestOneofROSExhaustiveness(t *testing.T) {
	u, _, _ := activeOneof(t)

	rb := wire.NewROSBuffer()
	if err := u.WriteROS(rb); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x64, 0, 0, 0, 0x04, 0x03, 0x02, 0x01, 0, 0, 0, 0}
	if !bytes.Equal(rb.Bytes(), want) {
		t.Fatalf("got % x, want % x", rb.Bytes(), want)
	}

	u2a := NewUint32Field(100)
	u2b := NewStringField(101)
	u2 := NewOneofField(u2a, u2b)
	sub := wire.NewROSBufferFromBytes(rb.Bytes())
	if err := u2.ParseROS(sub); err != nil {
		t.Fatal(err)
	}
	if u2.Discriminator() != 100 || u2a.Get() != 0x01020304 {
		t.Fatalf("discriminator=%d u1a=%x", u2.Discriminator(), u2a.Get())
	}
}

func TestOneofSetActiveConstructThenWrite(t *testing.T) {
	u1a := NewUint32Field(100)
	u1b := NewStringField(101)
	u := NewOneofField(u1a, u1b)

	u1a.Set(0x01020304)
	if err := u.SetActive(100); err != nil {
		t.Fatal(err)
	}

	out := wire.NewProtoBuffer()
	if err := u.WriteProto(out); err != nil {
		t.Fatal(err)
	}
	want := wire.NewProtoBuffer()
	if err := want.SerializeVarint(100, 0x01020304); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), want.Bytes()) {
		t.Fatalf("got % x, want % x", out.Bytes(), want.Bytes())
	}
}

func TestOneofSetActiveRejectsUnknownTag(t *testing.T) {
	u := NewOneofField(NewUint32Field(100), NewStringField(101))
	if err := u.SetActive(999); err == nil {
		t.Fatal("expected an error for a tag that names no member")
	}
}

func TestOneofMessageFieldROSAbsence(t *testing.T) {
	f := NewOneofMessageField[*testInnerMessage](8, newTestInnerMessage())
	rb := wire.NewROSBuffer()
	if err := f.WriteROS(rb); err != nil {
		t.Fatal(err)
	}
	want := []byte{0, 0, 0, 0} // zero element count: an absent submessage member
	if !bytes.Equal(rb.Bytes(), want) {
		t.Fatalf("got % x, want % x", rb.Bytes(), want)
	}
}
