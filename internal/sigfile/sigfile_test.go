package sigfile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sigsub/internal/model"
)

func TestDecodeNestedTree(t *testing.T) {
	doc := Document{Declarations: []Entry{
		{
			Kind:       KindClass,
			Name:       "Foo::Bar",
			TypeParams: []model.TypeParam{{Name: "T"}},
			SuperClass: &ClassRef{Name: "::Base", Args: []string{"T"}},
			Comment:    "Bar.",
			Members: []Entry{
				{Kind: KindConstant, Name: "LIMIT", Type: "Integer"},
				{Kind: KindDef, Name: "call", Scope: "singleton", Overloads: []string{"() -> void"}},
				{Kind: KindAttrAccessor, Name: "age", Type: "Integer", IvarName: "@years"},
				{Kind: KindInclude, Name: "Enumerable", Args: []string{"T"}},
				{Kind: KindPrivate},
			},
		},
		{Kind: KindModuleAlias, NewName: "K", OldName: "::Kernel"},
	}}

	got, err := Decode(doc)
	if err != nil {
		t.Fatal(err)
	}
	want := []model.Decl{
		&model.Class{
			Name:       model.MustParseTypeName("Foo::Bar"),
			TypeParams: []model.TypeParam{{Name: "T"}},
			SuperClass: &model.ClassRef{Name: model.MustParseTypeName("::Base"), Args: []string{"T"}},
			Comment:    "Bar.",
			Members: []model.Node{
				&model.Constant{Name: model.MustParseTypeName("LIMIT"), Type: "Integer"},
				&model.MethodDefinition{Name: "call", Kind: model.KindSingleton, Overloads: []string{"() -> void"}},
				&model.AttrAccessor{Attribute: model.Attribute{Name: "age", Type: "Integer", Kind: model.KindInstance, IvarName: "@years"}},
				&model.Mixin{Kind: model.MixinInclude, Name: model.MustParseTypeName("Enumerable"), Args: []string{"T"}},
				&model.Visibility{Kind: model.VisibilityPrivate},
			},
		},
		&model.ModuleAlias{NewName: model.MustParseTypeName("K"), OldName: model.MustParseTypeName("::Kernel")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}

	back, err := Encode(got)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(doc, back); diff != "" {
		t.Errorf("Encode(Decode(doc)) mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsUnknownKinds(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{"unknown declaration", Document{Declarations: []Entry{{Kind: "struct", Name: "Foo"}}}},
		{"member at top level", Document{Declarations: []Entry{{Kind: KindDef, Name: "foo"}}}},
		{"unknown member", Document{Declarations: []Entry{{Kind: KindClass, Name: "Foo", Members: []Entry{{Kind: "macro"}}}}}},
		{"declaration in interface", Document{Declarations: []Entry{{Kind: KindInterface, Name: "_I", Members: []Entry{{Kind: KindConstant, Name: "A"}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.doc); !errors.Is(err, model.ErrUnsupportedVariant) {
				t.Errorf("Decode error = %v, want ErrUnsupportedVariant", err)
			}
		})
	}
}

func TestDecodeRejectsBadNamesAndScopes(t *testing.T) {
	if _, err := Decode(Document{Declarations: []Entry{{Kind: KindConstant, Name: "A::"}}}); !errors.Is(err, model.ErrInvalidName) {
		t.Errorf("bad name: err = %v, want ErrInvalidName", err)
	}
	doc := Document{Declarations: []Entry{{Kind: KindClass, Name: "A", Members: []Entry{{Kind: KindDef, Name: "f", Scope: "global"}}}}}
	if _, err := Decode(doc); err == nil {
		t.Errorf("bad scope: expected an error")
	}
}

func TestKindAndNameOf(t *testing.T) {
	tests := []struct {
		node       model.Node
		kind, name string
	}{
		{&model.ClassAlias{NewName: model.MustParseTypeName("::S")}, KindClassAlias, "::S"},
		{&model.Alias{NewName: "to_s", OldName: "inspect"}, KindAlias, "to_s"},
		{&model.Mixin{Kind: model.MixinPrepend, Name: model.MustParseTypeName("Logging")}, KindPrepend, "Logging"},
		{&model.Visibility{Kind: model.VisibilityPublic}, KindPublic, ""},
		{nil, "", ""},
	}
	for _, tt := range tests {
		if got := KindOf(tt.node); got != tt.kind {
			t.Errorf("KindOf(%T) = %q, want %q", tt.node, got, tt.kind)
		}
		if got := NameOf(tt.node); got != tt.name {
			t.Errorf("NameOf(%T) = %q, want %q", tt.node, got, tt.name)
		}
	}
}
