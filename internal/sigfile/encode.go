package sigfile

import (
	"fmt"

	"sigsub/internal/model"
)

// Encode converts declarations into a document.
func Encode(decls []model.Decl) (Document, error) {
	doc := Document{Declarations: make([]Entry, 0, len(decls))}
	for _, d := range decls {
		e, err := encodeNode(d)
		if err != nil {
			return Document{}, err
		}
		doc.Declarations = append(doc.Declarations, e)
	}
	return doc, nil
}

// KindOf returns the document kind of a node, or "" for unknown nodes.
func KindOf(n model.Node) string {
	switch n := n.(type) {
	case *model.Constant:
		return KindConstant
	case *model.Interface:
		return KindInterface
	case *model.Class:
		return KindClass
	case *model.Module:
		return KindModule
	case *model.Global:
		return KindGlobal
	case *model.TypeAlias:
		return KindTypeAlias
	case *model.ClassAlias:
		return KindClassAlias
	case *model.ModuleAlias:
		return KindModuleAlias
	case *model.MethodDefinition:
		return KindDef
	case *model.Alias:
		return KindAlias
	case *model.AttrReader:
		return KindAttrReader
	case *model.AttrWriter:
		return KindAttrWriter
	case *model.AttrAccessor:
		return KindAttrAccessor
	case *model.InstanceVariable:
		return KindIvar
	case *model.ClassInstanceVariable:
		return KindClassIvar
	case *model.ClassVariable:
		return KindCvar
	case *model.Mixin:
		return string(n.Kind)
	case *model.Visibility:
		return string(n.Kind)
	}
	return ""
}

// NameOf returns the name a node is declared under, as written.
func NameOf(n model.Node) string {
	switch n := n.(type) {
	case *model.Constant:
		return n.Name.String()
	case *model.Interface:
		return n.Name.String()
	case *model.Class:
		return n.Name.String()
	case *model.Module:
		return n.Name.String()
	case *model.Global:
		return n.Name
	case *model.TypeAlias:
		return n.Name.String()
	case *model.ClassAlias:
		return n.NewName.String()
	case *model.ModuleAlias:
		return n.NewName.String()
	case *model.MethodDefinition:
		return n.Name
	case *model.Alias:
		return n.NewName
	case *model.AttrReader:
		return n.Name
	case *model.AttrWriter:
		return n.Name
	case *model.AttrAccessor:
		return n.Name
	case *model.InstanceVariable:
		return n.Name
	case *model.ClassInstanceVariable:
		return n.Name
	case *model.ClassVariable:
		return n.Name
	case *model.Mixin:
		return n.Name.String()
	}
	return ""
}

func scope(k model.MethodKind) string {
	if k == model.KindInstance {
		return ""
	}
	return string(k)
}

func encodeRef(r model.ClassRef) ClassRef {
	return ClassRef{Name: r.Name.String(), Args: r.Args}
}

func encodeAttr(kind string, a model.Attribute) Entry {
	return Entry{
		Kind: kind, Name: a.Name, Type: a.Type, Scope: scope(a.Kind),
		IvarName: a.IvarName, NoIvar: a.NoIvar,
		Annotations: a.Annotations, Location: a.Location, Comment: a.Comment,
	}
}

func encodeNode(n model.Node) (Entry, error) {
	e := Entry{Kind: KindOf(n), Name: NameOf(n)}
	switch n := n.(type) {
	case *model.Constant:
		e.Type, e.Annotations, e.Location, e.Comment = n.Type, n.Annotations, n.Location, n.Comment
	case *model.Interface:
		e.TypeParams, e.Annotations, e.Location, e.Comment = n.TypeParams, n.Annotations, n.Location, n.Comment
		for _, m := range n.Members {
			me, err := encodeNode(m)
			if err != nil {
				return Entry{}, err
			}
			e.Members = append(e.Members, me)
		}
	case *model.Class:
		e.TypeParams, e.Annotations, e.Location, e.Comment = n.TypeParams, n.Annotations, n.Location, n.Comment
		if n.SuperClass != nil {
			ref := encodeRef(*n.SuperClass)
			e.SuperClass = &ref
		}
		if err := encodeBody(&e, n.Members); err != nil {
			return Entry{}, err
		}
	case *model.Module:
		e.TypeParams, e.Annotations, e.Location, e.Comment = n.TypeParams, n.Annotations, n.Location, n.Comment
		for _, st := range n.SelfTypes {
			e.SelfTypes = append(e.SelfTypes, encodeRef(st))
		}
		if err := encodeBody(&e, n.Members); err != nil {
			return Entry{}, err
		}
	case *model.Global:
		e.Type, e.Annotations, e.Location, e.Comment = n.Type, n.Annotations, n.Location, n.Comment
	case *model.TypeAlias:
		e.TypeParams, e.Type = n.TypeParams, n.Type
		e.Annotations, e.Location, e.Comment = n.Annotations, n.Location, n.Comment
	case *model.ClassAlias:
		e.Name, e.NewName, e.OldName = "", n.NewName.String(), n.OldName.String()
		e.Annotations, e.Location, e.Comment = n.Annotations, n.Location, n.Comment
	case *model.ModuleAlias:
		e.Name, e.NewName, e.OldName = "", n.NewName.String(), n.OldName.String()
		e.Annotations, e.Location, e.Comment = n.Annotations, n.Location, n.Comment
	case *model.MethodDefinition:
		e.Scope, e.Overloads = scope(n.Kind), n.Overloads
		e.Annotations, e.Location, e.Comment = n.Annotations, n.Location, n.Comment
	case *model.Alias:
		e.Name, e.NewName, e.OldName, e.Scope = "", n.NewName, n.OldName, scope(n.Kind)
		e.Annotations, e.Location, e.Comment = n.Annotations, n.Location, n.Comment
	case *model.AttrReader:
		e = encodeAttr(KindAttrReader, n.Attribute)
	case *model.AttrWriter:
		e = encodeAttr(KindAttrWriter, n.Attribute)
	case *model.AttrAccessor:
		e = encodeAttr(KindAttrAccessor, n.Attribute)
	case *model.InstanceVariable:
		e.Type, e.Location, e.Comment = n.Type, n.Location, n.Comment
	case *model.ClassInstanceVariable:
		e.Type, e.Location, e.Comment = n.Type, n.Location, n.Comment
	case *model.ClassVariable:
		e.Type, e.Location, e.Comment = n.Type, n.Location, n.Comment
	case *model.Mixin:
		e.Args, e.Annotations, e.Location, e.Comment = n.Args, n.Annotations, n.Location, n.Comment
	case *model.Visibility:
		e.Location = n.Location
	default:
		return Entry{}, fmt.Errorf("%w: %T", model.ErrUnsupportedVariant, n)
	}
	return e, nil
}

func encodeBody(e *Entry, nodes []model.Node) error {
	for _, child := range nodes {
		ce, err := encodeNode(child)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
		e.Members = append(e.Members, ce)
	}
	return nil
}
