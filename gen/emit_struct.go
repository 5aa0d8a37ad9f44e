package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"strings"

	"github.com/wireforge/wireforge/schema"
)

// EmitGoSource renders one .proto file's messages as a single generated Go
// source file: one struct plus the six-operation Message implementation
// per message, a ProtoToROS/ROSToProto convenience method pair (spec.md
// §4.5 phase 3; the original emits these at message_gen.cc:673/730), and
// registration with the multiplexer at init time. Nested messages flatten
// to Outer_Inner, matching protoc-gen-go's own nested type naming.
func EmitGoSource(pf *schema.ProtoFile, opts Options) ([]byte, error) {
	flat := flattenMessages(pf)
	typeNames := make(map[string]string, len(flat))
	for _, fm := range flat {
		typeNames[fm.msg.FullName] = fm.goName
	}

	var body bytes.Buffer
	for _, fm := range flat {
		if err := emitMessage(&body, fm.msg, fm.goName, typeNames, opts); err != nil {
			return nil, err
		}
	}
	for _, en := range allEnums(pf) {
		emitEnum(&body, en)
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated by wireforge-gen from %s. DO NOT EDIT.\n\n", pf.Name)
	fmt.Fprintf(&out, "package %s\n\n", opts.GoPackage)
	if len(flat) > 0 {
		fmt.Fprintf(&out, "import (\n")
		fmt.Fprintf(&out, "\t%q\n", path.Join(opts.ModulePath, "field"))
		fmt.Fprintf(&out, "\t%q\n", path.Join(opts.ModulePath, "registry"))
		fmt.Fprintf(&out, "\t%q\n", path.Join(opts.ModulePath, "wire"))
		fmt.Fprintf(&out, "\t%q\n", path.Join(opts.ModulePath, "wireerr"))
		fmt.Fprintf(&out, ")\n\n")
	}
	out.Write(body.Bytes())

	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return out.Bytes(), fmt.Errorf("gen: formatting generated source: %w", err)
	}
	return formatted, nil
}

type flatMessage struct {
	msg    *schema.Message
	goName string
}

func flattenMessages(pf *schema.ProtoFile) []flatMessage {
	var out []flatMessage
	var walk func(m *schema.Message, goName string)
	walk = func(m *schema.Message, goName string) {
		out = append(out, flatMessage{msg: m, goName: goName})
		for _, nested := range m.NestedTypes {
			walk(nested, goName+"_"+goIdent(nested.Name))
		}
	}
	for _, m := range pf.Messages {
		walk(m, goIdent(m.Name))
	}
	return out
}

func allEnums(pf *schema.ProtoFile) []*schema.Enum {
	out := append([]*schema.Enum{}, pf.Enums...)
	var walk func(m *schema.Message)
	walk = func(m *schema.Message) {
		out = append(out, m.NestedEnums...)
		for _, nested := range m.NestedTypes {
			walk(nested)
		}
	}
	for _, m := range pf.Messages {
		walk(m)
	}
	return out
}

// emitMessage writes one message's struct, constructor and Message
// implementation, in the shape testInnerMessage (field package's own
// hand-written generated-message stand-in) establishes.
func emitMessage(w *bytes.Buffer, m *schema.Message, goName string, typeNames map[string]string, opts Options) error {
	var structFields, ctorPreStmts, ctorAssigns, sizeProto, sizeROS, writeProto, writeROS, parseROS []string
	var parseProtoCases []string

	for _, f := range m.Fields {
		if f.Kind == schema.KindOneof {
			oneof := findOneof(m, f.Name)
			goField := goIdent(f.Name)
			memberVars := make([]string, len(oneof.Members))
			for i, mem := range oneof.Members {
				memberVar := goField + goIdent(mem.Name)
				localVar := strings.ToLower(memberVar[:1]) + memberVar[1:]
				decl, ctor, err := fieldDecl(mem, typeNames, true)
				if err != nil {
					return err
				}
				structFields = append(structFields, fmt.Sprintf("%s %s", memberVar, decl))
				ctorPreStmts = append(ctorPreStmts, fmt.Sprintf("%s := %s", localVar, ctor))
				ctorAssigns = append(ctorAssigns, fmt.Sprintf("%s: %s,", memberVar, localVar))
				memberVars[i] = localVar
				parseProtoCases = append(parseProtoCases, fmt.Sprintf(
					"case %d:\n\t\t\tif err := m.%s.ParseProtoMember(pb, n); err != nil {\n\t\t\t\treturn err\n\t\t\t}",
					mem.Number, goField))
			}
			structFields = append(structFields, fmt.Sprintf("%s *field.OneofField", goField))
			ctorAssigns = append(ctorAssigns, fmt.Sprintf("%s: field.NewOneofField(%s),", goField, joinIfaceArgs(memberVars)))
			sizeProto = append(sizeProto, "m."+goField+".SerializedProtoSize()")
			sizeROS = append(sizeROS, "m."+goField+".SerializedROSSize()")
			writeProto = append(writeProto, stmtIfErr("m."+goField+".WriteProto(pb)"))
			writeROS = append(writeROS, stmtIfErr("m."+goField+".WriteROS(rb)"))
			parseROS = append(parseROS, stmtIfErr("m."+goField+".ParseROS(rb)"))
			continue
		}

		goField := goIdent(f.Name)
		decl, ctor, err := fieldDecl(f, typeNames, false)
		if err != nil {
			return err
		}
		structFields = append(structFields, fmt.Sprintf("%s %s", goField, decl))
		ctorAssigns = append(ctorAssigns, fmt.Sprintf("%s: %s,", goField, ctor))
		sizeProto = append(sizeProto, "m."+goField+".SerializedProtoSize()")
		sizeROS = append(sizeROS, "m."+goField+".SerializedROSSize()")
		writeProto = append(writeProto, stmtIfErr("m."+goField+".WriteProto(pb)"))
		writeROS = append(writeROS, stmtIfErr("m."+goField+".WriteROS(rb)"))
		parseROS = append(parseROS, stmtIfErr("m."+goField+".ParseROS(rb)"))
		parseProtoCases = append(parseProtoCases, fmt.Sprintf(
			"case %d:\n\t\t\tif err := m.%s.ParseProto(pb); err != nil {\n\t\t\t\treturn err\n\t\t\t}",
			f.Number, goField))
	}

	fmt.Fprintf(w, "// %s is generated from %s.\ntype %s struct {\n\tfield.Populated\n\t%s\n}\n\n",
		goName, m.FullName, goName, strings.Join(structFields, "\n\t"))

	preBlock := ""
	if len(ctorPreStmts) > 0 {
		preBlock = strings.Join(ctorPreStmts, "\n\t") + "\n\t"
	}
	fmt.Fprintf(w, "func New%s() *%s {\n\t%sreturn &%s{\n\t\t%s\n\t}\n}\n\n",
		goName, goName, preBlock, goName, strings.Join(ctorAssigns, "\n\t\t"))

	fmt.Fprintf(w, "func (m *%s) FullName() string { return %q }\n\n", goName, m.FullName)

	fmt.Fprintf(w, "func (m *%s) SerializedProtoSize() int {\n\treturn %s\n}\n\n",
		goName, sumOrZero(sizeProto))
	fmt.Fprintf(w, "func (m *%s) SerializedROSSize() int {\n\treturn %s\n}\n\n",
		goName, sumOrZero(sizeROS))

	fmt.Fprintf(w, "func (m *%s) WriteProto(pb *wire.ProtoBuffer) error {\n\t%s\n\treturn nil\n}\n\n",
		goName, strings.Join(writeProto, "\n\t"))
	fmt.Fprintf(w, "func (m *%s) WriteROS(rb *wire.ROSBuffer) error {\n\t%s\n\treturn nil\n}\n\n",
		goName, strings.Join(writeROS, "\n\t"))

	fmt.Fprintf(w, `func (m *%s) ParseProto(pb *wire.ProtoBuffer) error {
	if m.IsPopulated() {
		return wireerr.Wrap(%q, wireerr.ErrDoubleParse)
	}
	for !pb.Eof() {
		tag, err := pb.ReadTag()
		if err != nil {
			return err
		}
		n, _ := wire.ParseTag(tag)
		switch n {
		%s
		default:
			if err := pb.SkipTag(tag); err != nil {
				return err
			}
		}
	}
	m.SetPopulated(true)
	return nil
}

`, goName, m.FullName, strings.Join(parseProtoCases, "\n\t\t"))

	fmt.Fprintf(w, `func (m *%s) ParseROS(rb *wire.ROSBuffer) error {
	if m.IsPopulated() {
		return wireerr.Wrap(%q, wireerr.ErrDoubleParse)
	}
	%s
	m.SetPopulated(true)
	return nil
}

`, goName, m.FullName, strings.Join(parseROS, "\n\t"))

	fmt.Fprintf(w, `func (m *%s) ProtoToROS(data []byte) ([]byte, error) {
	if err := m.ParseProto(wire.NewProtoBufferFromBytes(data)); err != nil {
		return nil, err
	}
	rb := wire.NewROSBuffer()
	if err := m.WriteROS(rb); err != nil {
		return nil, err
	}
	return rb.Bytes(), nil
}

`, goName)

	fmt.Fprintf(w, `func (m *%s) ROSToProto(data []byte) ([]byte, error) {
	if err := m.ParseROS(wire.NewROSBufferFromBytes(data)); err != nil {
		return nil, err
	}
	pb := wire.NewProtoBuffer()
	if err := m.WriteProto(pb); err != nil {
		return nil, err
	}
	return pb.Bytes(), nil
}

`, goName)

	fmt.Fprintf(w, "func init() {\n\tregistry.RegisterMessage(registry.Global, %q, New%s)\n}\n\n", m.FullName, goName)

	return nil
}

func findOneof(m *schema.Message, name string) *schema.Oneof {
	for _, o := range m.Oneofs {
		if o.Name == name {
			return o
		}
	}
	return nil
}

func stmtIfErr(call string) string {
	return fmt.Sprintf("if err := %s; err != nil {\n\t\treturn err\n\t}", call)
}

func sumOrZero(terms []string) string {
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

func joinIfaceArgs(args []string) string {
	return strings.Join(args, ", ")
}

// fieldDecl returns the struct field's type declaration and its
// constructor expression. isMember is true for oneof members, which use
// the OneofMessageField wrapper in the submessage case instead of the
// ordinary MessageField (see field.OneofMessageField's doc comment for
// why: ROS frames oneof submessage members as a 0-or-1-element sequence).
func fieldDecl(f *schema.Field, typeNames map[string]string, isMember bool) (decl, ctor string, err error) {
	n := f.Number
	switch f.Kind {
	case schema.KindPrimitive:
		t := scalarGoType(f)
		return fmt.Sprintf("*field.PrimitiveField[%s]", t),
			fmt.Sprintf("field.%s(%d)", scalarCtorName(f, false), n), nil

	case schema.KindRepeatedPrimitive:
		t := scalarGoType(f)
		return fmt.Sprintf("*field.RepeatedPrimitiveField[%s]", t),
			fmt.Sprintf("field.%s(%d, %t)", scalarCtorName(f, true), n, f.Packed), nil

	case schema.KindString:
		return "*field.StringField", fmt.Sprintf("field.NewStringField(%d)", n), nil

	case schema.KindRepeatedString:
		return "*field.RepeatedStringField", fmt.Sprintf("field.NewRepeatedStringField(%d)", n), nil

	case schema.KindSubmessage:
		goType, ok := typeNames[f.Message]
		if !ok {
			return "", "", fmt.Errorf("gen: unresolved message type %q", f.Message)
		}
		if isMember {
			return fmt.Sprintf("*field.OneofMessageField[*%s]", goType),
				fmt.Sprintf("field.NewOneofMessageField[*%s](%d, New%s())", goType, n, goType), nil
		}
		return fmt.Sprintf("*field.MessageField[*%s]", goType),
			fmt.Sprintf("field.NewMessageField[*%s](%d, New%s())", goType, n, goType), nil

	case schema.KindRepeatedSubmessage:
		goType, ok := typeNames[f.Message]
		if !ok {
			return "", "", fmt.Errorf("gen: unresolved message type %q", f.Message)
		}
		return fmt.Sprintf("*field.RepeatedMessageField[*%s]", goType),
			fmt.Sprintf("field.NewRepeatedMessageField[*%s](%d, func() *%s { return New%s() })", goType, n, goType, goType), nil

	case schema.KindAny:
		return "*field.AnyField", fmt.Sprintf("field.NewAnyField(%d, field.NewAnyMessage(registry.Global))", n), nil

	default:
		return "", "", fmt.Errorf("gen: field %q has unresolved kind %v", f.Name, f.Kind)
	}
}

func scalarGoType(f *schema.Field) string {
	if f.Enum != "" {
		return "int32"
	}
	return f.GoType
}

func scalarCtorName(f *schema.Field, repeated bool) string {
	base := "Int32"
	switch {
	case f.Enum != "":
		base = "Enum"
	case f.GoType == "bool":
		base = "Bool"
	case f.GoType == "float32":
		base = "Float"
	case f.GoType == "float64":
		base = "Double"
	case f.GoType == "int32":
		switch {
		case f.Fixed && f.Signed:
			base = "Sfixed32"
		case f.Signed:
			base = "Sint32"
		default:
			base = "Int32"
		}
	case f.GoType == "uint32":
		if f.Fixed {
			base = "Fixed32"
		} else {
			base = "Uint32"
		}
	case f.GoType == "int64":
		switch {
		case f.Fixed && f.Signed:
			base = "Sfixed64"
		case f.Signed:
			base = "Sint64"
		default:
			base = "Int64"
		}
	case f.GoType == "uint64":
		if f.Fixed {
			base = "Fixed64"
		} else {
			base = "Uint64"
		}
	}
	if repeated {
		return "NewRepeated" + base + "Field"
	}
	return "New" + base + "Field"
}

func emitEnum(w *bytes.Buffer, e *schema.Enum) {
	goName := goIdent(e.Name)
	fmt.Fprintf(w, "type %s int32\n\nconst (\n", goName)
	for _, v := range e.Values {
		fmt.Fprintf(w, "\t%s %s = %d\n", goName+"_"+goIdent(v.Name), goName, v.Number)
	}
	fmt.Fprintf(w, ")\n\n")
}

func goOutputPath(protoFileName string) string {
	base := strings.TrimSuffix(path.Base(protoFileName), ".proto")
	return base + ".pb.go"
}
