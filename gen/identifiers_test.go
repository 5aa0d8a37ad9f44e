package gen

import "testing"

func TestGoIdent(t *testing.T) {
	cases := map[string]string{
		"str":        "Str",
		"u1a":        "U1a",
		"field_name": "FieldName",
		"type":       "Type",
	}
	for in, want := range cases {
		if got := goIdent(in); got != want {
			t.Errorf("goIdent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizePackageName(t *testing.T) {
	if got := sanitizePackageName("foo.bar"); got != "bar" {
		t.Errorf("got %q", got)
	}
	if got := sanitizePackageName(""); got != "generated" {
		t.Errorf("got %q", got)
	}
}

func TestCleanVirtualImportPath(t *testing.T) {
	in := "bazel-out/darwin_arm64-dbg/bin/external/com_google_protobuf/_virtual_imports/any_proto/google/protobuf/any.proto"
	want := "google/protobuf/any.proto"
	if got := CleanVirtualImportPath(in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := CleanVirtualImportPath("foo/bar.proto"); got != "foo/bar.proto" {
		t.Errorf("got %q", got)
	}
}

func TestMsgOutputPath(t *testing.T) {
	if got := msgOutputPath("foo.bar", "Inner"); got != "foo_bar/msg/Inner.msg" {
		t.Errorf("got %q", got)
	}
	if got := msgOutputPath("", "Inner"); got != "msg/Inner.msg" {
		t.Errorf("got %q", got)
	}
}
