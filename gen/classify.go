package gen

import (
	"fmt"
	"strings"

	"github.com/wireforge/wireforge/schema"
	"github.com/wireforge/wireforge/wireerr"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Classify turns one compiled FileDescriptorProto into the generator's
// intermediate schema. This is spec.md §4.5 phase 1 and 2 (compile fields,
// compile unions) applied directly against real Protocol Buffers
// descriptors rather than a hand-rolled parser.
func Classify(fd *descriptorpb.FileDescriptorProto) (*schema.ProtoFile, error) {
	pf := &schema.ProtoFile{
		Name:    fd.GetName(),
		Package: fd.GetPackage(),
		Syntax:  fd.GetSyntax(),
	}
	if pf.Syntax == "" {
		pf.Syntax = "proto2"
	}
	for _, et := range fd.GetEnumType() {
		pf.Enums = append(pf.Enums, classifyEnum(et, pf.Package))
	}
	for _, mt := range fd.GetMessageType() {
		m, err := classifyMessage(mt, pf.Package)
		if err != nil {
			return nil, err
		}
		pf.Messages = append(pf.Messages, m)
	}
	return pf, nil
}

func classifyEnum(ed *descriptorpb.EnumDescriptorProto, prefix string) *schema.Enum {
	full := prefix + "." + ed.GetName()
	e := &schema.Enum{Name: ed.GetName(), FullName: full}
	for _, v := range ed.GetValue() {
		e.Values = append(e.Values, &schema.EnumValue{Name: v.GetName(), Number: v.GetNumber()})
	}
	return e
}

func classifyMessage(md *descriptorpb.DescriptorProto, prefix string) (*schema.Message, error) {
	full := prefix + "." + md.GetName()
	m := &schema.Message{Name: md.GetName(), FullName: full}

	for _, ed := range md.GetEnumType() {
		m.NestedEnums = append(m.NestedEnums, classifyEnum(ed, full))
	}
	for _, nested := range md.GetNestedType() {
		if nested.GetOptions().GetMapEntry() {
			continue // map fields are excluded from the data model; see DESIGN.md
		}
		child, err := classifyMessage(nested, full)
		if err != nil {
			return nil, err
		}
		m.NestedTypes = append(m.NestedTypes, child)
	}

	oneofs := make([]*schema.Oneof, len(md.GetOneofDecl()))
	for i, od := range md.GetOneofDecl() {
		oneofs[i] = &schema.Oneof{Name: od.GetName()}
	}
	oneofPlaceholderEmitted := make([]bool, len(oneofs))

	for _, f := range md.GetField() {
		if f.GetType() == descriptorpb.FieldDescriptorProto_TYPE_GROUP {
			return nil, wireerr.Wrap(fmt.Sprintf("%s.%s", full, f.GetName()), wireerr.ErrGroupUnsupported)
		}
		field, err := classifyField(f, full)
		if err != nil {
			return nil, err
		}

		if f.OneofIndex != nil && !f.GetProto3Optional() {
			idx := f.GetOneofIndex()
			field.OneofRef = oneofs[idx]
			oneofs[idx].Members = append(oneofs[idx].Members, field)
			if !oneofPlaceholderEmitted[idx] {
				oneofPlaceholderEmitted[idx] = true
				m.Fields = append(m.Fields, &schema.Field{
					Name: oneofs[idx].Name,
					Kind: schema.KindOneof,
				})
			}
			continue
		}
		m.Fields = append(m.Fields, field)
	}
	m.Oneofs = oneofs
	return m, nil
}

// classifyField derives Kind plus the packed/signed/fixed attributes from
// the field's declared Proto type, per spec.md §4.5 phase 1 ("sint32 =>
// signed; sfixed32 => fixed; string/bytes => string variant").
func classifyField(f *descriptorpb.FieldDescriptorProto, owner string) (*schema.Field, error) {
	repeated := f.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED

	field := &schema.Field{Name: f.GetName(), Number: f.GetNumber()}

	if f.GetType() == descriptorpb.FieldDescriptorProto_TYPE_MESSAGE {
		typeName := strings.TrimPrefix(f.GetTypeName(), ".")
		if typeName == "google.protobuf.Any" {
			field.Kind = schema.KindAny
			field.Message = typeName
			return field, nil
		}
		field.Message = typeName
		if repeated {
			field.Kind = schema.KindRepeatedSubmessage
		} else {
			field.Kind = schema.KindSubmessage
		}
		return field, nil
	}

	if f.GetType() == descriptorpb.FieldDescriptorProto_TYPE_STRING || f.GetType() == descriptorpb.FieldDescriptorProto_TYPE_BYTES {
		if repeated {
			field.Kind = schema.KindRepeatedString
		} else {
			field.Kind = schema.KindString
		}
		return field, nil
	}

	goType, fixed, signed, err := scalarAttributes(f.GetType())
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", owner, f.GetName(), err)
	}
	field.GoType = goType
	field.Fixed = fixed
	field.Signed = signed
	if f.GetType() == descriptorpb.FieldDescriptorProto_TYPE_ENUM {
		field.Enum = strings.TrimPrefix(f.GetTypeName(), ".")
	}

	if repeated {
		field.Kind = schema.KindRepeatedPrimitive
		// Proto3 packs eligible scalar repeated fields by default; an
		// explicit `packed` option (proto2, or an override) wins.
		field.Packed = true
		if f.GetOptions() != nil && f.GetOptions().Packed != nil {
			field.Packed = f.GetOptions().GetPacked()
		}
	} else {
		field.Kind = schema.KindPrimitive
	}
	return field, nil
}

func scalarAttributes(t descriptorpb.FieldDescriptorProto_Type) (goType string, fixed, signed bool, err error) {
	switch t {
	case descriptorpb.FieldDescriptorProto_TYPE_INT32:
		return "int32", false, false, nil
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32:
		return "uint32", false, false, nil
	case descriptorpb.FieldDescriptorProto_TYPE_INT64:
		return "int64", false, false, nil
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64:
		return "uint64", false, false, nil
	case descriptorpb.FieldDescriptorProto_TYPE_SINT32:
		return "int32", false, true, nil
	case descriptorpb.FieldDescriptorProto_TYPE_SINT64:
		return "int64", false, true, nil
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return "uint32", true, false, nil
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return "uint64", true, false, nil
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		return "int32", true, true, nil
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		return "int64", true, true, nil
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return "float32", true, false, nil
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return "float64", true, false, nil
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return "bool", false, false, nil
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return "enum", false, false, nil
	default:
		return "", false, false, fmt.Errorf("unsupported scalar field type %v", t)
	}
}
