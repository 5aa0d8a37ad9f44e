package gen

import "strings"

// goIdent converts a proto field/message/enum name (snake_case or already
// camelCase) into an exported Go identifier, following the same
// word-splitting rule protoc-gen-go uses: split on underscores and digit
// boundaries are left alone, each word capitalized. The result is always
// exported (leads with an uppercase letter), so it can never collide with
// a Go keyword — every reserved word is lowercase — and needs no escaping.
func goIdent(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	out := b.String()
	if out == "" {
		return "Field"
	}
	return out
}

// sanitizePackageName derives a Go package name from a proto package path
// ("foo.bar.baz" -> "baz"), falling back to "generated" for the unnamed
// package.
func sanitizePackageName(protoPackage string) string {
	if protoPackage == "" {
		return "generated"
	}
	parts := strings.Split(protoPackage, ".")
	last := parts[len(parts)-1]
	last = strings.ReplaceAll(last, "-", "_")
	if last == "" {
		return "generated"
	}
	return strings.ToLower(last)
}
