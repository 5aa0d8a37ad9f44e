package gen

import (
	"fmt"

	"github.com/wireforge/wireforge/schema"
)

// GeneratedFile is one emitted output: Go source, or a ROS .msg schema
// text, keyed by the path the caller should write it to.
type GeneratedFile struct {
	Path    string
	Content []byte
}

// Options controls Go package naming, the module path generated code
// imports, and .msg naming of nested messages; ParseParameter in options.go
// builds one from a protoc plugin parameter string.
type Options struct {
	GoPackage    string // the Go package name generated source is emitted under
	ModulePath   string // the Go module path generated code imports field/registry from
	AddNamespace bool   // prefix nested .msg message names with Outer_ (see emit_msg.go); nested enum names are always prefixed
}

// Generate runs the full four-phase pipeline for one compiled file: classify
// (already done by the caller via Classify), emit Go source per message,
// emit .msg text per message/enum, and emit the zip bundle. This is the
// generator's top-level entry point; cmd/ drivers call this once per
// FileDescriptorProto they generate code for.
func Generate(pf *schema.ProtoFile, opts Options) ([]GeneratedFile, error) {
	if opts.ModulePath == "" {
		return nil, fmt.Errorf("gen: Options.ModulePath is required")
	}
	if opts.GoPackage == "" {
		opts.GoPackage = sanitizePackageName(pf.Package)
	}

	var out []GeneratedFile

	src, err := EmitGoSource(pf, opts)
	if err != nil {
		return nil, fmt.Errorf("gen: emitting Go source for %s: %w", pf.Name, err)
	}
	out = append(out, GeneratedFile{
		Path:    goOutputPath(pf.Name),
		Content: src,
	})

	msgFiles, err := EmitMsgFiles(pf, opts)
	if err != nil {
		return nil, fmt.Errorf("gen: emitting .msg files for %s: %w", pf.Name, err)
	}
	out = append(out, msgFiles...)

	bundle, err := EmitZip(pf, msgFiles)
	if err != nil {
		return nil, fmt.Errorf("gen: bundling .msg zip for %s: %w", pf.Name, err)
	}
	out = append(out, bundle)

	return out, nil
}
