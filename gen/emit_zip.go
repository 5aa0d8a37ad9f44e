package gen

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/wireforge/wireforge/schema"
)

// EmitZip bundles every .msg file for one compiled proto file into a single
// zip archive, grounded on the donor compiler's zip_utils.cc AddFileToZip:
// one archive per generation run, entries named exactly as the individual
// .msg files were. archive/zip is stdlib because nothing in the retrieved
// corpus imports a third-party zip library; see DESIGN.md.
func EmitZip(pf *schema.ProtoFile, msgFiles []GeneratedFile) (GeneratedFile, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, f := range msgFiles {
		entry, err := w.Create(f.Path)
		if err != nil {
			return GeneratedFile{}, fmt.Errorf("gen: creating zip entry %s: %w", f.Path, err)
		}
		if _, err := entry.Write(f.Content); err != nil {
			return GeneratedFile{}, fmt.Errorf("gen: writing zip entry %s: %w", f.Path, err)
		}
	}
	if err := w.Close(); err != nil {
		return GeneratedFile{}, fmt.Errorf("gen: closing zip writer: %w", err)
	}

	base := pf.Name
	if idx := lastSlash(base); idx >= 0 {
		base = base[idx+1:]
	}
	base = trimProtoSuffix(base)

	return GeneratedFile{
		Path:    base + ".zip",
		Content: buf.Bytes(),
	}, nil
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

func trimProtoSuffix(s string) string {
	const suffix = ".proto"
	if len(s) > len(suffix) && s[len(s)-len(suffix):] == suffix {
		return s[:len(s)-len(suffix)]
	}
	return s
}
