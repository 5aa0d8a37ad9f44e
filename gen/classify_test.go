package gen

import (
	"testing"

	"github.com/wireforge/wireforge/schema"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func ptr[T any](v T) *T { return &v }

func TestClassifySimpleMessage(t *testing.T) {
	fd := &descriptorpb.FileDescriptorProto{
		Name:    ptr("foo/bar.proto"),
		Package: ptr("foo.bar"),
		Syntax:  ptr("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: ptr("Inner"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: ptr("str"), Number: ptr(int32(1)), Type: descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(), Label: descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()},
					{Name: ptr("f"), Number: ptr(int32(2)), Type: descriptorpb.FieldDescriptorProto_TYPE_FIXED32.Enum(), Label: descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()},
				},
			},
		},
	}

	pf, err := Classify(fd)
	if err != nil {
		t.Fatal(err)
	}
	if len(pf.Messages) != 1 {
		t.Fatalf("got %d messages", len(pf.Messages))
	}
	inner := pf.Messages[0]
	if inner.FullName != "foo.bar.Inner" {
		t.Fatalf("got FullName %q", inner.FullName)
	}
	if len(inner.Fields) != 2 {
		t.Fatalf("got %d fields", len(inner.Fields))
	}
	if inner.Fields[0].Kind != schema.KindString {
		t.Fatalf("field 0 kind = %v, want KindString", inner.Fields[0].Kind)
	}
	f := inner.Fields[1]
	if f.Kind != schema.KindPrimitive || !f.Fixed || f.Signed {
		t.Fatalf("field 1 = %+v, want fixed unsigned primitive", f)
	}
	if f.GoType != "uint32" {
		t.Fatalf("field 1 GoType = %q", f.GoType)
	}
}

func TestClassifyPackedRepeatedDefaultsTrueInProto3(t *testing.T) {
	fd := &descriptorpb.FileDescriptorProto{
		Name:    ptr("foo/bar.proto"),
		Package: ptr("foo.bar"),
		Syntax:  ptr("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: ptr("Repeats"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: ptr("vi32"), Number: ptr(int32(5)), Type: descriptorpb.FieldDescriptorProto_TYPE_INT32.Enum(), Label: descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()},
				},
			},
		},
	}
	pf, err := Classify(fd)
	if err != nil {
		t.Fatal(err)
	}
	f := pf.Messages[0].Fields[0]
	if f.Kind != schema.KindRepeatedPrimitive || !f.Packed {
		t.Fatalf("got %+v, want packed repeated primitive", f)
	}
}

func TestClassifyOneofCompilesUnionAndPlaceholder(t *testing.T) {
	fd := &descriptorpb.FileDescriptorProto{
		Name:    ptr("foo/bar.proto"),
		Package: ptr("foo.bar"),
		Syntax:  ptr("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name:       ptr("Choice"),
				OneofDecl:  []*descriptorpb.OneofDescriptorProto{{Name: ptr("u1")}},
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: ptr("u1a"), Number: ptr(int32(100)), Type: descriptorpb.FieldDescriptorProto_TYPE_UINT32.Enum(), Label: descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(), OneofIndex: ptr(int32(0))},
					{Name: ptr("u1b"), Number: ptr(int32(101)), Type: descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(), Label: descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(), OneofIndex: ptr(int32(0))},
				},
			},
		},
	}
	pf, err := Classify(fd)
	if err != nil {
		t.Fatal(err)
	}
	m := pf.Messages[0]
	if len(m.Fields) != 1 || m.Fields[0].Kind != schema.KindOneof {
		t.Fatalf("got %+v, want single oneof placeholder", m.Fields)
	}
	if len(m.Oneofs) != 1 || len(m.Oneofs[0].Members) != 2 {
		t.Fatalf("got oneofs %+v", m.Oneofs)
	}
	if m.Oneofs[0].Members[0].Number != 100 || m.Oneofs[0].Members[1].Number != 101 {
		t.Fatalf("member tags wrong: %+v", m.Oneofs[0].Members)
	}
}

func TestClassifyRejectsGroups(t *testing.T) {
	fd := &descriptorpb.FileDescriptorProto{
		Name:    ptr("foo/bar.proto"),
		Package: ptr("foo.bar"),
		Syntax:  ptr("proto2"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: ptr("Old"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: ptr("g"), Number: ptr(int32(1)), Type: descriptorpb.FieldDescriptorProto_TYPE_GROUP.Enum(), Label: descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()},
				},
			},
		},
	}
	if _, err := Classify(fd); err == nil {
		t.Fatal("expected group field to be rejected")
	}
}

func TestClassifySkipsMapEntryNestedType(t *testing.T) {
	fd := &descriptorpb.FileDescriptorProto{
		Name:    ptr("foo/bar.proto"),
		Package: ptr("foo.bar"),
		Syntax:  ptr("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: ptr("HasMap"),
				NestedType: []*descriptorpb.DescriptorProto{
					{
						Name:    ptr("TagsEntry"),
						Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
					},
				},
			},
		},
	}
	pf, err := Classify(fd)
	if err != nil {
		t.Fatal(err)
	}
	if len(pf.Messages[0].NestedTypes) != 0 {
		t.Fatalf("expected map entry nested type to be skipped, got %+v", pf.Messages[0].NestedTypes)
	}
}
