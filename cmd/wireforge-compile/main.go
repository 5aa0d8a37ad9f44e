// Command wireforge-compile is a standalone driver: it compiles .proto
// files directly via gen.Loader (protocompile under the hood), without
// requiring a protoc binary on PATH, and writes the generated Go source,
// .msg schemas and zip bundle straight to an output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wireforge/wireforge/gen"
	"github.com/wireforge/wireforge/schema"
)

func main() {
	var (
		outDir     = flag.String("out", ".", "output directory")
		importDirs = flag.String("I", ".", "comma-separated proto import paths")
		modulePath = flag.String("module", "github.com/wireforge/wireforge", "Go module path generated code imports field/registry/wire from")
		goPackage  = flag.String("go_package", "", "Go package name for generated source (defaults to the proto package's last component)")
		addNS      = flag.Bool("add_namespace", false, "prefix nested .msg message names with their containing message (nested enum names are always prefixed)")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: wireforge-compile -I dir1,dir2 -out outdir file.proto [file2.proto ...]")
		os.Exit(2)
	}

	loader := gen.NewLoader(strings.Split(*importDirs, ",")...)
	opts := gen.Options{
		ModulePath:   *modulePath,
		GoPackage:    *goPackage,
		AddNamespace: *addNS,
	}

	ctx := context.Background()
	for _, entry := range flag.Args() {
		if err := compileOne(ctx, loader, entry, opts, *outDir); err != nil {
			fmt.Fprintf(os.Stderr, "wireforge-compile: %s: %v\n", entry, err)
			os.Exit(1)
		}
	}
}

func compileOne(ctx context.Context, loader *gen.Loader, entry string, opts gen.Options, outDir string) error {
	fds, err := loader.Load(ctx, entry)
	if err != nil {
		return fmt.Errorf("loading: %w", err)
	}
	if len(fds) == 0 {
		return fmt.Errorf("no descriptors produced")
	}

	protoFiles := make([]*schema.ProtoFile, 0, len(fds))
	for _, fd := range fds {
		classified, err := gen.Classify(fd)
		if err != nil {
			return fmt.Errorf("classifying: %w", err)
		}
		protoFiles = append(protoFiles, classified)
	}
	repo := schema.NewProtoRepo(protoFiles...)

	entryName, err := loader.EntryName(entry)
	if err != nil {
		return fmt.Errorf("resolving entry name: %w", err)
	}
	pf, ok := repo.ProtoFiles[entryName]
	if !ok {
		return fmt.Errorf("entry file %s not found among compiled closure", entryName)
	}
	files, err := gen.Generate(pf, opts)
	if err != nil {
		return fmt.Errorf("generating: %w", err)
	}
	for _, f := range files {
		dest := filepath.Join(outDir, f.Path)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
		}
		if err := os.WriteFile(dest, f.Content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
	}
	return nil
}
