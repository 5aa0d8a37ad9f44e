package wire

import (
	"bytes"
	"testing"
)

func TestROSScalarAndString(t *testing.T) {
	rb := NewROSBuffer()
	if err := rb.WriteInt32(1234); err != nil {
		t.Fatal(err)
	}
	if err := rb.WriteString([]byte("hello world")); err != nil {
		t.Fatal(err)
	}
	want := append([]byte{0xd2, 0x04, 0x00, 0x00},
		append([]byte{0x0b, 0x00, 0x00, 0x00}, []byte("hello world")...)...)
	if !bytes.Equal(rb.Bytes(), want) {
		t.Fatalf("got % x, want % x", rb.Bytes(), want)
	}
}

func TestROSRepeatedInt32Sequence(t *testing.T) {
	rb := NewROSBuffer()
	elems := []int32{1, 2, 3}
	if err := rb.WriteCountPrefix(len(elems)); err != nil {
		t.Fatal(err)
	}
	for _, e := range elems {
		if err := rb.WriteInt32(e); err != nil {
			t.Fatal(err)
		}
	}
	want := []byte{0x03, 0x00, 0x00, 0x00, 1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}
	if !bytes.Equal(rb.Bytes(), want) {
		t.Fatalf("got % x, want % x", rb.Bytes(), want)
	}
}

func TestROSRoundTripString(t *testing.T) {
	rb := NewROSBuffer()
	if err := rb.WriteString([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	rr := NewROSBufferFromBytes(rb.Bytes())
	got, err := rr.ReadString()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "abc" {
		t.Fatalf("got %q", got)
	}
	if !rr.Eof() {
		t.Fatal("expected Eof")
	}
}

func TestROSSkipAndExhaustion(t *testing.T) {
	span := make([]byte, 4)
	rb := NewBorrowedROSBuffer(span)
	if err := rb.WriteUint32(1); err != nil {
		t.Fatal(err)
	}
	if err := rb.WriteUint32(2); err == nil {
		t.Fatal("expected exhaustion error")
	}

	rr := NewROSBufferFromBytes(rb.Bytes())
	if err := rr.Skip(4); err != nil {
		t.Fatal(err)
	}
	if !rr.Eof() {
		t.Fatal("expected Eof after skipping all 4 bytes")
	}
	if err := rr.Skip(1); err == nil {
		t.Fatal("expected skip past end to fail")
	}
}
