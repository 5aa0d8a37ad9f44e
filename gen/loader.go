// Package gen is the schema-driven code generator: it turns Protocol
// Buffers descriptors into generated message packages (Go source, a ROS
// .msg text schema per message/enum, and a zip bundle of those schemas).
package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/bufbuild/protocompile"
	protoparser "github.com/yoheimuta/go-protoparser/v4"
	protoparserparser "github.com/yoheimuta/go-protoparser/v4/parser"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Loader resolves a .proto entry point plus its transitive imports, then
// compiles the whole closure to descriptors. Import discovery is done with
// go-protoparser's lightweight parser (we only need the import graph, not a
// full descriptor) before handing the resolved file set to protocompile,
// which does the real parse-and-link into descriptorpb types.
type Loader struct {
	// ImportPaths are searched, in order, to resolve both the entry point
	// and every import statement reached from it.
	ImportPaths []string
}

// NewLoader returns a Loader that searches dirs for .proto files.
func NewLoader(dirs ...string) *Loader {
	return &Loader{ImportPaths: dirs}
}

// Load compiles entryFile and every .proto it transitively imports into
// FileDescriptorProtos, entry point last.
func (l *Loader) Load(ctx context.Context, entryFile string) ([]*descriptorpb.FileDescriptorProto, error) {
	order, err := l.importClosure(entryFile)
	if err != nil {
		return nil, fmt.Errorf("gen: resolving import graph: %w", err)
	}

	relNames := make([]string, len(order))
	for i, abs := range order {
		rel, err := l.relativeToImportPath(abs)
		if err != nil {
			return nil, err
		}
		relNames[i] = rel
	}

	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			ImportPaths: l.ImportPaths,
		}),
	}
	files, err := compiler.Compile(ctx, relNames...)
	if err != nil {
		return nil, fmt.Errorf("gen: compiling proto sources: %w", err)
	}

	out := make([]*descriptorpb.FileDescriptorProto, 0, len(files))
	for _, f := range files {
		out = append(out, protodesc.ToFileDescriptorProto(f))
	}
	return out, nil
}

// EntryName resolves entryFile the same way Load does and returns the name
// its compiled descriptor carries (FileDescriptorProto.GetName()), so a
// caller that classified every file in Load's closure into a
// schema.ProtoRepo can look the entry point back up by name instead of
// assuming it sorts last.
func (l *Loader) EntryName(entryFile string) (string, error) {
	abs, err := l.resolve(entryFile)
	if err != nil {
		return "", err
	}
	return l.relativeToImportPath(abs)
}

// relativeToImportPath strips whichever configured import path abs lives
// under, since protocompile's SourceResolver wants paths relative to one of
// its roots.
func (l *Loader) relativeToImportPath(abs string) (string, error) {
	for _, dir := range l.ImportPaths {
		if rel, ok := strings.CutPrefix(abs, strings.TrimSuffix(dir, "/")+"/"); ok {
			return rel, nil
		}
	}
	return "", fmt.Errorf("gen: %s is not under any configured import path", abs)
}

// importClosure walks entryFile's import graph via DFS, mirroring the
// donor codebase's own proto-import resolution: parse just enough of each
// file (go-protoparser) to read its `import` statements, resolve each
// against ImportPaths, and recurse. google/protobuf well-known-type imports
// are skipped since protocompile's WithStandardImports already supplies
// them.
func (l *Loader) importClosure(entryFile string) ([]string, error) {
	visited := make(map[string]struct{})
	var order []string

	var dfs func(file string) error
	dfs = func(file string) error {
		if _, ok := visited[file]; ok {
			return nil
		}
		visited[file] = struct{}{}

		protoBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		parsed, err := protoparser.Parse(bytes.NewReader(protoBytes))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", file, err)
		}
		for _, body := range parsed.ProtoBody {
			imp, ok := body.(*protoparserparser.Import)
			if !ok {
				continue
			}
			importPath := strings.Trim(imp.Location, `"`)
			if strings.HasPrefix(importPath, "google/protobuf/") {
				continue
			}
			resolved, err := l.resolve(importPath)
			if err != nil {
				return err
			}
			if err := dfs(resolved); err != nil {
				return err
			}
		}
		order = append(order, file)
		return nil
	}

	entry, err := l.resolve(entryFile)
	if err != nil {
		return nil, err
	}
	if err := dfs(entry); err != nil {
		return nil, err
	}
	return order, nil
}

// resolve finds importPath under one of ImportPaths, or treats it as
// already-absolute/relative-to-cwd if it exists as given.
func (l *Loader) resolve(importPath string) (string, error) {
	if _, err := os.Stat(importPath); err == nil {
		return importPath, nil
	}
	for _, dir := range l.ImportPaths {
		candidate := path.Join(dir, importPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("gen: cannot find %q under any import path", importPath)
}
