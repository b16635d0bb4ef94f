// Package sigfile defines the YAML/JSON document format signature trees are
// stored in, and converts it to and from the model.
package sigfile

import (
	"fmt"

	"sigsub/internal/model"
)

// Node kinds as written in documents.
const (
	KindConstant     = "constant"
	KindInterface    = "interface"
	KindClass        = "class"
	KindModule       = "module"
	KindGlobal       = "global"
	KindTypeAlias    = "typeAlias"
	KindClassAlias   = "classAlias"
	KindModuleAlias  = "moduleAlias"
	KindDef          = "def"
	KindAlias        = "alias"
	KindAttrReader   = "attrReader"
	KindAttrWriter   = "attrWriter"
	KindAttrAccessor = "attrAccessor"
	KindIvar         = "ivar"
	KindClassIvar    = "classIvar"
	KindCvar         = "cvar"
	KindInclude      = "include"
	KindExtend       = "extend"
	KindPrepend      = "prepend"
	KindPublic       = "public"
	KindPrivate      = "private"
)

// Document is the top level of a signature file.
type Document struct {
	Declarations []Entry `yaml:"declarations" json:"declarations"`
}

// Entry is one declaration or member. Kind selects which fields apply.
type Entry struct {
	Kind        string            `yaml:"kind" json:"kind"`
	Name        string            `yaml:"name,omitempty" json:"name,omitempty"`
	NewName     string            `yaml:"newName,omitempty" json:"newName,omitempty"`
	OldName     string            `yaml:"oldName,omitempty" json:"oldName,omitempty"`
	Scope       string            `yaml:"scope,omitempty" json:"scope,omitempty"` // instance (default) or singleton
	Type        string            `yaml:"type,omitempty" json:"type,omitempty"`
	Overloads   []string          `yaml:"overloads,omitempty" json:"overloads,omitempty"`
	TypeParams  []model.TypeParam `yaml:"typeParams,omitempty" json:"typeParams,omitempty"`
	SuperClass  *ClassRef         `yaml:"superClass,omitempty" json:"superClass,omitempty"`
	SelfTypes   []ClassRef        `yaml:"selfTypes,omitempty" json:"selfTypes,omitempty"`
	Args        []string          `yaml:"args,omitempty" json:"args,omitempty"`
	IvarName    string            `yaml:"ivarName,omitempty" json:"ivarName,omitempty"`
	NoIvar      bool              `yaml:"noIvar,omitempty" json:"noIvar,omitempty"`
	Annotations []string          `yaml:"annotations,omitempty" json:"annotations,omitempty"`
	Location    *model.Location   `yaml:"location,omitempty" json:"location,omitempty"`
	Comment     string            `yaml:"comment,omitempty" json:"comment,omitempty"`
	Members     []Entry           `yaml:"members,omitempty" json:"members,omitempty"`
}

// ClassRef is a superclass or self type reference.
type ClassRef struct {
	Name string   `yaml:"name" json:"name"`
	Args []string `yaml:"args,omitempty" json:"args,omitempty"`
}

// Decode converts a document into declarations.
func Decode(doc Document) ([]model.Decl, error) {
	decls := make([]model.Decl, 0, len(doc.Declarations))
	for i, e := range doc.Declarations {
		d, err := decodeDecl(e)
		if err != nil {
			return nil, fmt.Errorf("declaration %d: %w", i, err)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func decodeDecl(e Entry) (model.Decl, error) {
	switch e.Kind {
	case KindConstant:
		n, err := model.ParseTypeName(e.Name)
		if err != nil {
			return nil, err
		}
		return &model.Constant{Name: n, Type: e.Type, Annotations: e.Annotations, Location: e.Location, Comment: e.Comment}, nil
	case KindInterface:
		n, err := model.ParseTypeName(e.Name)
		if err != nil {
			return nil, err
		}
		var members []model.Member
		for _, me := range e.Members {
			m, err := decodeMember(me)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", n, err)
			}
			members = append(members, m)
		}
		return &model.Interface{
			Name: n, TypeParams: e.TypeParams, Members: members,
			Annotations: e.Annotations, Location: e.Location, Comment: e.Comment,
		}, nil
	case KindClass, KindModule:
		return decodeContainer(e)
	case KindGlobal:
		return &model.Global{Name: e.Name, Type: e.Type, Annotations: e.Annotations, Location: e.Location, Comment: e.Comment}, nil
	case KindTypeAlias:
		n, err := model.ParseTypeName(e.Name)
		if err != nil {
			return nil, err
		}
		return &model.TypeAlias{
			Name: n, TypeParams: e.TypeParams, Type: e.Type,
			Annotations: e.Annotations, Location: e.Location, Comment: e.Comment,
		}, nil
	case KindClassAlias, KindModuleAlias:
		newName, err := model.ParseTypeName(e.NewName)
		if err != nil {
			return nil, err
		}
		oldName, err := model.ParseTypeName(e.OldName)
		if err != nil {
			return nil, err
		}
		if e.Kind == KindClassAlias {
			return &model.ClassAlias{NewName: newName, OldName: oldName, Annotations: e.Annotations, Location: e.Location, Comment: e.Comment}, nil
		}
		return &model.ModuleAlias{NewName: newName, OldName: oldName, Annotations: e.Annotations, Location: e.Location, Comment: e.Comment}, nil
	}
	return nil, fmt.Errorf("%w: declaration kind %q", model.ErrUnsupportedVariant, e.Kind)
}

func decodeContainer(e Entry) (model.Decl, error) {
	n, err := model.ParseTypeName(e.Name)
	if err != nil {
		return nil, err
	}
	var members []model.Node
	for _, me := range e.Members {
		if isMemberKind(me.Kind) {
			m, err := decodeMember(me)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", n, err)
			}
			members = append(members, m)
			continue
		}
		d, err := decodeDecl(me)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n, err)
		}
		members = append(members, d)
	}

	if e.Kind == KindClass {
		c := &model.Class{
			Name: n, TypeParams: e.TypeParams, Members: members,
			Annotations: e.Annotations, Location: e.Location, Comment: e.Comment,
		}
		if e.SuperClass != nil {
			ref, err := decodeRef(*e.SuperClass)
			if err != nil {
				return nil, err
			}
			c.SuperClass = &ref
		}
		return c, nil
	}

	m := &model.Module{
		Name: n, TypeParams: e.TypeParams, Members: members,
		Annotations: e.Annotations, Location: e.Location, Comment: e.Comment,
	}
	for _, st := range e.SelfTypes {
		ref, err := decodeRef(st)
		if err != nil {
			return nil, err
		}
		m.SelfTypes = append(m.SelfTypes, ref)
	}
	return m, nil
}

func decodeRef(r ClassRef) (model.ClassRef, error) {
	n, err := model.ParseTypeName(r.Name)
	if err != nil {
		return model.ClassRef{}, err
	}
	return model.ClassRef{Name: n, Args: r.Args}, nil
}

func isMemberKind(kind string) bool {
	switch kind {
	case KindDef, KindAlias, KindAttrReader, KindAttrWriter, KindAttrAccessor,
		KindIvar, KindClassIvar, KindCvar, KindInclude, KindExtend, KindPrepend,
		KindPublic, KindPrivate:
		return true
	}
	return false
}

func decodeScope(s string) (model.MethodKind, error) {
	switch s {
	case "", string(model.KindInstance):
		return model.KindInstance, nil
	case string(model.KindSingleton):
		return model.KindSingleton, nil
	}
	return "", fmt.Errorf("unknown scope %q", s)
}

func decodeMember(e Entry) (model.Member, error) {
	if !isMemberKind(e.Kind) {
		return nil, fmt.Errorf("%w: member kind %q", model.ErrUnsupportedVariant, e.Kind)
	}
	kind, err := decodeScope(e.Scope)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", e.Kind, e.Name, err)
	}
	attr := model.Attribute{
		Name: e.Name, Type: e.Type, Kind: kind, IvarName: e.IvarName, NoIvar: e.NoIvar,
		Annotations: e.Annotations, Location: e.Location, Comment: e.Comment,
	}

	switch e.Kind {
	case KindDef:
		return &model.MethodDefinition{
			Name: e.Name, Kind: kind, Overloads: e.Overloads,
			Annotations: e.Annotations, Location: e.Location, Comment: e.Comment,
		}, nil
	case KindAlias:
		return &model.Alias{
			NewName: e.NewName, OldName: e.OldName, Kind: kind,
			Annotations: e.Annotations, Location: e.Location, Comment: e.Comment,
		}, nil
	case KindAttrReader:
		return &model.AttrReader{Attribute: attr}, nil
	case KindAttrWriter:
		return &model.AttrWriter{Attribute: attr}, nil
	case KindAttrAccessor:
		return &model.AttrAccessor{Attribute: attr}, nil
	case KindIvar:
		return &model.InstanceVariable{Name: e.Name, Type: e.Type, Location: e.Location, Comment: e.Comment}, nil
	case KindClassIvar:
		return &model.ClassInstanceVariable{Name: e.Name, Type: e.Type, Location: e.Location, Comment: e.Comment}, nil
	case KindCvar:
		return &model.ClassVariable{Name: e.Name, Type: e.Type, Location: e.Location, Comment: e.Comment}, nil
	case KindInclude, KindExtend, KindPrepend:
		n, err := model.ParseTypeName(e.Name)
		if err != nil {
			return nil, err
		}
		return &model.Mixin{
			Kind: model.MixinKind(e.Kind), Name: n, Args: e.Args,
			Annotations: e.Annotations, Location: e.Location, Comment: e.Comment,
		}, nil
	default: // KindPublic, KindPrivate
		return &model.Visibility{Kind: model.VisibilityKind(e.Kind), Location: e.Location}, nil
	}
}
