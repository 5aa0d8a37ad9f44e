package gen

import "strings"

// ParseParameter splits a protoc plugin parameter string (comma-separated
// key=value pairs, as handed to a protoc-gen-* binary on the --*_out flag)
// into Options, grounded on the donor plugin's own
// google::protobuf::compiler::ParseGeneratorParameter use: add_namespace and
// package_name (aliased as go_package) are recognized; an unrecognized key
// is ignored rather than rejected, matching the donor's permissive
// handling.
func ParseParameter(param, modulePath string) Options {
	opts := Options{ModulePath: modulePath}
	if param == "" {
		return opts
	}
	for _, kv := range strings.Split(param, ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		switch k {
		case "add_namespace":
			opts.AddNamespace = v == "true" || v == "1"
		case "package_name", "go_package":
			opts.GoPackage = v
		}
	}
	return opts
}

// CleanVirtualImportPath strips a Bazel _virtual_imports/<target>/ prefix
// from a compiled file's path, the same rewrite the donor plugin's
// GeneratedFilename performs before deriving an output path: Bazel proxies
// an imported .proto through a synthetic "_virtual_imports/<label>/" tree,
// and the real package-relative path resumes one directory below that.
func CleanVirtualImportPath(filename string) string {
	const marker = "_virtual_imports/"
	idx := strings.Index(filename, marker)
	if idx < 0 {
		return filename
	}
	rest := filename[idx+len(marker):]
	if slash := strings.IndexByte(rest, '/'); slash >= 0 {
		return rest[slash+1:]
	}
	return rest
}
