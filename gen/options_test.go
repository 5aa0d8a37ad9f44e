package gen

import "testing"

func TestParseParameterRecognizedKeys(t *testing.T) {
	opts := ParseParameter("add_namespace=true,package_name=mypkg,unknown=ignored", "example.com/mod")
	if !opts.AddNamespace {
		t.Fatal("expected add_namespace=true to set AddNamespace")
	}
	if opts.GoPackage != "mypkg" {
		t.Fatalf("got GoPackage %q, want mypkg", opts.GoPackage)
	}
	if opts.ModulePath != "example.com/mod" {
		t.Fatalf("got ModulePath %q", opts.ModulePath)
	}
}

func TestParseParameterEmptyString(t *testing.T) {
	opts := ParseParameter("", "example.com/mod")
	if opts.AddNamespace || opts.GoPackage != "" {
		t.Fatalf("got %+v, want zero-value options besides ModulePath", opts)
	}
}

func TestParseParameterMalformedPairIgnored(t *testing.T) {
	opts := ParseParameter("add_namespace=1,justakey,package_name=p", "m")
	if !opts.AddNamespace {
		t.Fatal("expected add_namespace=1 to set AddNamespace")
	}
	if opts.GoPackage != "p" {
		t.Fatalf("malformed pair should be skipped, not abort parsing: got %+v", opts)
	}
}

func TestCleanVirtualImportPathStripsBazelPrefix(t *testing.T) {
	got := CleanVirtualImportPath("bazel-out/k8/bin/_virtual_imports/foo_proto/foo/bar.proto")
	if got != "foo/bar.proto" {
		t.Fatalf("got %q, want foo/bar.proto", got)
	}
}

func TestCleanVirtualImportPathNoMarkerPassesThrough(t *testing.T) {
	got := CleanVirtualImportPath("foo/bar.proto")
	if got != "foo/bar.proto" {
		t.Fatalf("got %q, want unchanged path", got)
	}
}
