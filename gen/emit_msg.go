package gen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wireforge/wireforge/schema"
)

// EmitMsgFiles renders one ROS .msg text schema per message and per
// (possibly nested) enum, grounded on the donor compiler's
// MessageGenerator::GenerateROSMessage / EnumGenerator::GenerateROSMessage:
// one field-type/name line per declared field, oneofs expanding to a
// leading int32 discriminator plus every member (submessage members always
// carrying the `[]` array suffix, since ROS represents oneof submessage
// presence as a 0-or-1-element sequence), and enum values becoming int32
// constants in their own file.
func EmitMsgFiles(pf *schema.ProtoFile, opts Options) ([]GeneratedFile, error) {
	var out []GeneratedFile
	for _, m := range pf.Messages {
		files, err := emitMessageMsg(m, "", opts, pf.Package)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	for _, e := range pf.Enums {
		out = append(out, emitEnumMsg(e, "", pf.Package))
	}
	return out, nil
}

func emitMessageMsg(m *schema.Message, namePrefix string, opts Options, pkg string) ([]GeneratedFile, error) {
	name := m.Name
	if opts.AddNamespace && namePrefix != "" {
		name = namePrefix + "_" + name
	}

	var body bytes.Buffer
	for _, f := range m.Fields {
		if f.Kind == schema.KindOneof {
			oneof := findOneof(m, f.Name)
			fmt.Fprintf(&body, "int32 %s_discriminator\n", f.Name)
			for _, mem := range oneof.Members {
				rosType, err := fieldROSType(mem, pkg)
				if err != nil {
					return nil, err
				}
				if mem.Kind == schema.KindSubmessage {
					fmt.Fprintf(&body, "%s[] %s\n", rosType, mem.Name)
				} else {
					fmt.Fprintf(&body, "%s %s\n", rosType, mem.Name)
				}
			}
			continue
		}
		rosType, err := fieldROSType(f, pkg)
		if err != nil {
			return nil, err
		}
		if isRepeatedKind(f.Kind) {
			fmt.Fprintf(&body, "%s[] %s\n", rosType, f.Name)
		} else {
			fmt.Fprintf(&body, "%s %s\n", rosType, f.Name)
		}
	}

	out := []GeneratedFile{{
		Path:    msgOutputPath(pkg, name),
		Content: body.Bytes(),
	}}

	for _, e := range m.NestedEnums {
		out = append(out, emitEnumMsg(e, name, pkg))
	}
	for _, nested := range m.NestedTypes {
		files, err := emitMessageMsg(nested, name, opts, pkg)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

// emitEnumMsg mirrors enum_gen.cc's EnumGenerator::GenerateROSMessage: a
// top-level enum's constants are bare (containing_type() == nullptr), a
// nested enum's constants are prefixed with the containing-type chain.
func emitEnumMsg(e *schema.Enum, namePrefix string, pkg string) GeneratedFile {
	nested := namePrefix != ""
	name := e.Name
	if nested {
		name = namePrefix + "_" + name
	}
	var body bytes.Buffer
	for _, v := range e.Values {
		if nested {
			fmt.Fprintf(&body, "int32  %s_%s = %d\n", name, v.Name, v.Number)
		} else {
			fmt.Fprintf(&body, "int32  %s = %d\n", v.Name, v.Number)
		}
	}
	return GeneratedFile{
		Path:    msgOutputPath(pkg, name),
		Content: body.Bytes(),
	}
}

func isRepeatedKind(k schema.Kind) bool {
	return k == schema.KindRepeatedPrimitive || k == schema.KindRepeatedString || k == schema.KindRepeatedSubmessage
}

// fieldROSType names the .msg primitive for a field, following the donor's
// FieldROSType switch exactly: enums serialize as plain int32, Any has no
// fixed ROS representation and is rejected here (a schema with Any fields
// needs a concrete oneof-of-known-types in ROS, not something a generic
// bridge can emit; spec.md's Any support targets the Go runtime, not the
// .msg text schema).
func fieldROSType(f *schema.Field, pkg string) (string, error) {
	if f.Enum != "" {
		return "int32", nil
	}
	switch f.Kind {
	case schema.KindString, schema.KindRepeatedString:
		return "string", nil
	case schema.KindSubmessage, schema.KindRepeatedSubmessage:
		return rosMessageName(f.Message, pkg), nil
	case schema.KindAny:
		return "", fmt.Errorf("gen: field %q: google.protobuf.Any has no ROS .msg representation", f.Name)
	default:
		return f.GoType, nil
	}
}

// rosMessageName mirrors message_gen.cc's MessageName(/*is_ref=*/true):
// a submessage field keeps the referenced type's qualified name, with
// nested types flattened to Outer_Inner rather than the bare "Inner" a
// naive basename would produce — matching the Outer_Inner Go struct name
// emit_struct.go's flattenMessages already generates for the same type.
func rosMessageName(fullName, pkg string) string {
	rest := fullName
	if pkg != "" && strings.HasPrefix(fullName, pkg+".") {
		rest = fullName[len(pkg)+1:]
	}
	return strings.ReplaceAll(rest, ".", "_")
}

// msgOutputPath is spec §4.5/§6's <package_with_dots_to_underscores>/msg/
// <SimpleName>.msg: the directory comes from the proto package alone, not
// from a (possibly nested) type's fully-qualified name, so nested messages
// and enums land in the same directory as their top-level siblings.
func msgOutputPath(pkg, simpleName string) string {
	dir := strings.ReplaceAll(pkg, ".", "_")
	if dir == "" {
		return "msg/" + simpleName + ".msg"
	}
	return dir + "/msg/" + simpleName + ".msg"
}
