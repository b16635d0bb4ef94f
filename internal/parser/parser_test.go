package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sigsub/internal/model"
)

const fooYAML = `declarations:
  - kind: class
    name: Foo
    superClass:
      name: Object
    members:
      - kind: def
        name: bar
        overloads: ["() -> void"]
      - kind: attrReader
        name: age
        type: Integer
        scope: singleton
  - kind: global
    name: $debug
    type: bool
`

const fooJSON = `{"declarations": [
  {"kind": "class", "name": "Foo", "superClass": {"name": "Object"}, "members": [
    {"kind": "def", "name": "bar", "overloads": ["() -> void"]},
    {"kind": "attrReader", "name": "age", "type": "Integer", "scope": "singleton"}
  ]},
  {"kind": "global", "name": "$debug", "type": "bool"}
]}`

func fooDecls() []model.Decl {
	return []model.Decl{
		&model.Class{
			Name:       model.MustParseTypeName("Foo"),
			SuperClass: &model.ClassRef{Name: model.MustParseTypeName("Object")},
			Members: []model.Node{
				&model.MethodDefinition{Name: "bar", Kind: model.KindInstance, Overloads: []string{"() -> void"}},
				&model.AttrReader{Attribute: model.Attribute{Name: "age", Type: "Integer", Kind: model.KindSingleton}},
			},
		},
		&model.Global{Name: "$debug", Type: "bool"},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFileFormats(t *testing.T) {
	tests := []struct {
		file, content string
	}{
		{"foo.yaml", fooYAML},
		{"foo.yml", fooYAML},
		{"foo.json", fooJSON},
		{"foo.sig", fooYAML},
		{"foo.sig", fooJSON},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			f, err := New().ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if f.Path != path {
				t.Errorf("Path = %q, want %q", f.Path, path)
			}
			if diff := cmp.Diff(fooDecls(), f.Declarations); diff != "" {
				t.Errorf("declarations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFileErrors(t *testing.T) {
	p := New()
	if _, err := p.ParseFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want os.ErrNotExist", err)
	}
	bad := writeFile(t, "bad.json", `{"declarations": [`)
	if _, err := p.ParseFile(bad); err == nil {
		t.Errorf("truncated JSON: expected an error")
	}
	unknown := writeFile(t, "unknown.yaml", "declarations:\n  - kind: struct\n    name: Foo\n")
	if _, err := p.ParseFile(unknown); !errors.Is(err, model.ErrUnsupportedVariant) {
		t.Errorf("unknown kind: err = %v, want ErrUnsupportedVariant", err)
	}
}

func TestParseFiles(t *testing.T) {
	a := writeFile(t, "a.yaml", fooYAML)
	b := writeFile(t, "b.json", fooJSON)
	files, err := New().ParseFiles([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || files[0].Path != a || files[1].Path != b {
		t.Fatalf("ParseFiles returned %d files in unexpected order", len(files))
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]string{
		"a.yaml":    FormatYAML,
		"a.YML":     FormatYAML,
		"a.json":    FormatJSON,
		"a.rbs":     FormatAuto,
		"noextfile": FormatAuto,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %q, want %q", path, got, want)
		}
	}
}
