package field

import (
	"bytes"
	"testing"

	"github.com/wireforge/wireforge/wire"
)

func TestStringFieldProtoAndROS(t *testing.T) {
	// Scenario A: string s = 3, "hello world".
	f := NewStringField(3)
	f.Set([]byte("hello world"))

	pb := wire.NewProtoBuffer()
	if err := f.WriteProto(pb); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x1a, 0x0b, 'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd'}
	if !bytes.Equal(pb.Bytes(), want) {
		t.Fatalf("got % x, want % x", pb.Bytes(), want)
	}

	rb := wire.NewROSBuffer()
	if err := f.WriteROS(rb); err != nil {
		t.Fatal(err)
	}
	wantROS := []byte{0x0b, 0, 0, 0, 'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd'}
	if !bytes.Equal(rb.Bytes(), wantROS) {
		t.Fatalf("got % x, want % x", rb.Bytes(), wantROS)
	}
}

func TestStringFieldROSEmptyIsAbsent(t *testing.T) {
	rb := wire.NewROSBuffer()
	if err := rb.WriteString(nil); err != nil {
		t.Fatal(err)
	}
	f := NewStringField(1)
	sub := wire.NewROSBufferFromBytes(rb.Bytes())
	if err := f.ParseROS(sub); err != nil {
		t.Fatal(err)
	}
	if f.IsPresent() {
		t.Fatal("empty string should not be present")
	}
}
