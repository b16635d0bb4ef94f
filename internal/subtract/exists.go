package subtract

import (
	"fmt"

	"sigsub/internal/model"
)

// Exists reports whether the subtrahend already declares a member equivalent
// to m on the class, module or interface owner. owner must be absolute. A
// missing owner means nothing exists.
func (s *Subtractor) Exists(owner model.TypeName, m model.Member) (bool, error) {
	switch m := m.(type) {
	case *model.MethodDefinition:
		return s.methodExists(owner, m.Name, m.Kind), nil
	case *model.Alias:
		return s.methodExists(owner, m.NewName, m.Kind), nil
	case *model.AttrReader:
		return s.methodExists(owner, m.Name, m.Kind), nil
	case *model.AttrWriter:
		return s.methodExists(owner, model.WriterName(m.Name), m.Kind), nil
	case *model.AttrAccessor:
		reader := s.methodExists(owner, m.Name, m.Kind)
		writer := s.methodExists(owner, model.WriterName(m.Name), m.Kind)
		if s.opts.StrictAccessor {
			return reader && writer, nil
		}
		return reader || writer, nil
	case *model.InstanceVariable:
		return s.ivarExists(owner, m.Name, model.KindInstance), nil
	case *model.ClassInstanceVariable:
		return s.ivarExists(owner, m.Name, model.KindSingleton), nil
	case *model.ClassVariable:
		return s.cvarExists(owner, m.Name), nil
	case *model.Mixin:
		// Mixing in the same module twice is allowed.
		return false, nil
	case *model.Visibility:
		return false, nil
	default:
		return false, fmt.Errorf("%w: member %T", model.ErrUnsupportedVariant, m)
	}
}

func (s *Subtractor) methodExists(owner model.TypeName, method string, kind model.MethodKind) bool {
	for _, m := range s.members(owner) {
		var found bool
		switch m := m.(type) {
		case *model.MethodDefinition:
			found = m.Name == method && m.Kind == kind
		case *model.Alias:
			found = m.NewName == method && m.Kind == kind
		case *model.AttrReader:
			found = m.Name == method && m.Kind == kind
		case *model.AttrWriter:
			found = model.WriterName(m.Name) == method && m.Kind == kind
		case *model.AttrAccessor:
			found = (m.Name == method || model.WriterName(m.Name) == method) && m.Kind == kind
		}
		if found {
			return true
		}
	}
	return false
}

// ivarExists matches instance variables declared at the given level, either
// directly or as the backing variable of an attribute.
func (s *Subtractor) ivarExists(owner model.TypeName, name string, kind model.MethodKind) bool {
	for _, m := range s.members(owner) {
		var found bool
		switch m := m.(type) {
		case *model.InstanceVariable:
			found = kind == model.KindInstance && m.Name == name
		case *model.ClassInstanceVariable:
			found = kind == model.KindSingleton && m.Name == name
		case *model.AttrReader:
			found = attrIvarMatches(m.Attribute, name, kind)
		case *model.AttrWriter:
			found = attrIvarMatches(m.Attribute, name, kind)
		case *model.AttrAccessor:
			found = attrIvarMatches(m.Attribute, name, kind)
		}
		if found {
			return true
		}
	}
	return false
}

func attrIvarMatches(a model.Attribute, name string, kind model.MethodKind) bool {
	ivar, ok := a.InstanceVariable()
	return ok && ivar == name && a.Kind == kind
}

func (s *Subtractor) cvarExists(owner model.TypeName, name string) bool {
	for _, m := range s.members(owner) {
		if cv, ok := m.(*model.ClassVariable); ok && cv.Name == name {
			return true
		}
	}
	return false
}

// members lists the subtrahend members of owner, concatenating reopened
// declarations in order.
func (s *Subtractor) members(owner model.TypeName) []model.Member {
	if owner.IsInterface() {
		decl, ok := s.idx.InterfaceDecl(owner)
		if !ok {
			return nil
		}
		return decl.EachMember()
	}
	var result []model.Member
	for _, d := range s.idx.ClassOrModuleDecls(owner) {
		result = append(result, d.EachMember()...)
	}
	return result
}
