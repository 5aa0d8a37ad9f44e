// Package schema is the generator's classified intermediate form: the
// shape gen.Classify produces from a descriptorpb.FileDescriptorProto and
// gen's emitters consume to produce Go source and .msg text. It carries
// exactly the attributes spec.md's field library needs (packed, signed,
// fixed, oneof membership) pre-derived, so the emitters never re-inspect a
// raw descriptor.
package schema

// ProtoRepo is a compiled schema for one or more input .proto files, keyed
// by the same name FileDescriptorProto.GetName() returns (e.g.
// "foo/bar.proto"). A Loader resolves an entry point's whole import
// closure to compile it, so callers classify every file in that closure
// into one ProtoRepo and look the entry point back up by name, rather than
// assuming it sorts last.
type ProtoRepo struct {
	ProtoFiles map[string]*ProtoFile
}

// NewProtoRepo indexes files by their Name.
func NewProtoRepo(files ...*ProtoFile) *ProtoRepo {
	repo := &ProtoRepo{ProtoFiles: make(map[string]*ProtoFile, len(files))}
	for _, f := range files {
		repo.ProtoFiles[f.Name] = f
	}
	return repo
}

// ProtoFile is one compiled .proto file.
type ProtoFile struct {
	Name     string // "foo/bar.proto"
	Package  string // "foo.bar"
	Syntax   string // "proto2" or "proto3"
	Messages []*Message
	Enums    []*Enum
}

// Message is a compiled message type, possibly nested.
type Message struct {
	Name        string // simple name, e.g. "User"
	FullName    string // fully-qualified, e.g. "foo.bar.User"
	Fields      []*Field
	Oneofs      []*Oneof
	NestedTypes []*Message
	NestedEnums []*Enum
}

// Field is one compiled field, classified into exactly one Kind. Oneof
// members appear both in their Oneof's Members and, once, as a single
// KindOneof placeholder in the owning Message's Fields, at the field-order
// position of the oneof's first declared member (spec.md §4.5 phase 1).
type Field struct {
	Name     string
	Number   int32 // Proto tag number; 0 for a KindOneof placeholder
	Kind     Kind
	GoType   string // the Go primitive type (int32, uint32, ..., not used for KindString/KindSubmessage/KindAny)
	Fixed    bool
	Signed   bool
	Packed   bool // repeated scalars only
	Message  string // fully-qualified message type name, for KindSubmessage/KindRepeatedSubmessage
	Enum     string // fully-qualified enum type name, for primitive kinds whose GoType is "enum"
	OneofRef *Oneof // set for members; nil otherwise
}

// Kind discriminates a Field's wire representation, mirroring spec.md §3's
// enumerated variant set exactly (no map, no wrapper).
type Kind int

const (
	KindPrimitive Kind = iota
	KindString
	KindSubmessage
	KindRepeatedPrimitive
	KindRepeatedString
	KindRepeatedSubmessage
	KindAny
	KindOneof // placeholder in Message.Fields; real members live in Oneof.Members
)

// Oneof is a compiled oneof group: its members, each carrying their own
// declared tag number, composing the union's member-type tuple.
type Oneof struct {
	Name    string
	Members []*Field
}

// Enum is a compiled enum type.
type Enum struct {
	Name     string // simple name
	FullName string
	Values   []*EnumValue
}

// EnumValue is one constant of an Enum.
type EnumValue struct {
	Name   string
	Number int32
}
