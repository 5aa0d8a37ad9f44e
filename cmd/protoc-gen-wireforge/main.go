// Command protoc-gen-wireforge is the protoc plugin entry point: protoc (or
// buf) invokes it once per run, feeding a CodeGeneratorRequest on stdin and
// reading a CodeGeneratorResponse back from stdout, the standard protoc
// plugin contract every protoc-gen-* binary implements.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wireforge/wireforge/gen"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "protoc-gen-wireforge:", err)
		os.Exit(1)
	}
}

func run() error {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}
	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(input, req); err != nil {
		return fmt.Errorf("unmarshaling request: %w", err)
	}

	opts := gen.ParseParameter(req.GetParameter(), "github.com/wireforge/wireforge")

	resp := &pluginpb.CodeGeneratorResponse{}
	resp.SupportedFeatures = proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL))

	toGenerate := make(map[string]bool, len(req.GetFileToGenerate()))
	for _, f := range req.GetFileToGenerate() {
		toGenerate[f] = true
	}

	for _, fd := range req.GetProtoFile() {
		if !toGenerate[fd.GetName()] {
			continue
		}
		if err := generateOne(fd, opts, resp); err != nil {
			msg := err.Error()
			resp.Error = &msg
			break
		}
	}

	out, err := proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshaling response: %w", err)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

func generateOne(fd *descriptorpb.FileDescriptorProto, opts gen.Options, resp *pluginpb.CodeGeneratorResponse) error {
	pf, err := gen.Classify(fd)
	if err != nil {
		return fmt.Errorf("classifying %s: %w", fd.GetName(), err)
	}
	files, err := gen.Generate(pf, opts)
	if err != nil {
		return fmt.Errorf("generating %s: %w", fd.GetName(), err)
	}
	for _, f := range files {
		if strings.HasSuffix(f.Path, ".zip") {
			// CodeGeneratorResponse.File.content is a proto string field;
			// protoc plugins shouldn't round-trip arbitrary binary through
			// it. The zip bundle is only produced by the standalone
			// wireforge-compile driver, which writes it straight to disk.
			continue
		}
		name := gen.CleanVirtualImportPath(f.Path)
		content := string(f.Content)
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    &name,
			Content: &content,
		})
	}
	return nil
}
