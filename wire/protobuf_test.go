package wire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/wireforge/wireforge/wireerr"
)

func TestSerializeVarintScalar(t *testing.T) {
	pb := NewProtoBuffer()
	if err := pb.SerializeVarint(FieldNumber(1), 1234); err != nil {
		t.Fatalf("SerializeVarint: %v", err)
	}
	want := []byte{0x08, 0xd2, 0x09}
	if !bytes.Equal(pb.Bytes(), want) {
		t.Fatalf("got % x, want % x", pb.Bytes(), want)
	}
}

func TestSerializeLengthDelimitedString(t *testing.T) {
	pb := NewProtoBuffer()
	if err := pb.SerializeLengthDelimited(FieldNumber(3), []byte("hello world")); err != nil {
		t.Fatalf("SerializeLengthDelimited: %v", err)
	}
	want := []byte{0x1a, 0x0b, 'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd'}
	if !bytes.Equal(pb.Bytes(), want) {
		t.Fatalf("got % x, want % x", pb.Bytes(), want)
	}
}

func TestPackedRepeatedFixed(t *testing.T) {
	// Scenario 10: repeated sfixed32 v = [1,2,3] packed.
	elems := []int32{1, 2, 3}
	pb := NewProtoBuffer()
	if err := pb.SerializeLengthDelimitedHeader(FieldNumber(5), len(elems)*4); err != nil {
		t.Fatal(err)
	}
	for _, e := range elems {
		if err := pb.SerializeRawFixed32(uint32(e)); err != nil {
			t.Fatal(err)
		}
	}
	want := []byte{0x2a, 0x0c, 1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}
	if !bytes.Equal(pb.Bytes(), want) {
		t.Fatalf("got % x, want % x", pb.Bytes(), want)
	}
}

func TestPackedRepeatedVarint(t *testing.T) {
	// Scenario A: repeated int32 vi32 = 5 [packed] with [1,2,3].
	pb := NewProtoBuffer()
	if err := pb.SerializeLengthDelimitedHeader(FieldNumber(5), 3); err != nil {
		t.Fatal(err)
	}
	for _, v := range []uint64{1, 2, 3} {
		if err := pb.SerializeRawVarint(v); err != nil {
			t.Fatal(err)
		}
	}
	want := []byte{0x2a, 0x03, 0x01, 0x02, 0x03}
	if !bytes.Equal(pb.Bytes(), want) {
		t.Fatalf("got % x, want % x", pb.Bytes(), want)
	}
}

func TestRoundTripVarint(t *testing.T) {
	pb := NewProtoBuffer()
	if err := pb.SerializeVarint(FieldNumber(7), 300); err != nil {
		t.Fatal(err)
	}
	rb := NewProtoBufferFromBytes(pb.Bytes())
	tag, err := rb.ReadTag()
	if err != nil {
		t.Fatal(err)
	}
	n, wt := ParseTag(tag)
	if n != 7 || wt != WireVarint {
		t.Fatalf("got field %d wire %d", n, wt)
	}
	v, err := rb.DeserializeVarint()
	if err != nil {
		t.Fatal(err)
	}
	if v != 300 {
		t.Fatalf("got %d, want 300", v)
	}
}

func TestBorrowedBufferExhaustion(t *testing.T) {
	span := make([]byte, 2)
	pb := NewBorrowedProtoBuffer(span)
	err := pb.SerializeRawFixed32(1)
	if err == nil {
		t.Fatal("expected exhaustion error")
	}
	if !errors.Is(err, wireerr.ErrExhaustedBuffer) {
		t.Fatalf("got %v, want ErrExhaustedBuffer", err)
	}
}

func TestSkipTagUnknownField(t *testing.T) {
	pb := NewProtoBuffer()
	if err := pb.SerializeVarint(FieldNumber(1), 42); err != nil {
		t.Fatal(err)
	}
	if err := pb.SerializeVarint(FieldNumber(99), 7); err != nil { // unknown to the reader
		t.Fatal(err)
	}
	rb := NewProtoBufferFromBytes(pb.Bytes())
	tag, err := rb.ReadTag()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rb.DeserializeVarint(); err != nil {
		t.Fatal(err)
	}
	_ = tag
	tag2, err := rb.ReadTag()
	if err != nil {
		t.Fatal(err)
	}
	if err := rb.SkipTag(tag2); err != nil {
		t.Fatal(err)
	}
	if !rb.Eof() {
		t.Fatal("expected Eof after skipping trailing unknown field")
	}
}

func TestZigZagRoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 2147483647, -2147483648} {
		if got := ZigZagDecode32(ZigZagEncode32(v)); got != v {
			t.Fatalf("zigzag32(%d) round trip got %d", v, got)
		}
	}
	for _, v := range []int64{0, 1, -1, 1 << 40, -(1 << 40)} {
		if got := ZigZagDecode64(ZigZagEncode64(v)); got != v {
			t.Fatalf("zigzag64(%d) round trip got %d", v, got)
		}
	}
}

