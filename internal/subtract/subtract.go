// Package subtract removes from a signature tree everything another tree
// already declares.
package subtract

import (
	"fmt"

	"sigsub/internal/index"
	"sigsub/internal/model"
)

// Options tune a Subtractor.
type Options struct {
	// StrictAccessor drops an attr_accessor only when both its reader and
	// writer exist in the subtrahend. By default either one is enough.
	StrictAccessor bool

	// OnRemove, when set, is called for each dropped declaration or member.
	// owner is the absolute name of the enclosing declaration, or the root
	// name "::" for top-level declarations.
	OnRemove func(owner model.TypeName, n model.Node)
}

// Subtractor computes minuend - subtrahend. It holds no mutable state, so one
// Subtractor may serve concurrent calls as long as the index is not modified.
type Subtractor struct {
	idx  index.Index
	opts Options
}

// New creates a Subtractor that subtracts the contents of idx.
func New(idx index.Index, opts Options) *Subtractor {
	return &Subtractor{idx: idx, opts: opts}
}

// Subtract returns the declarations of minuend that are not in the
// subtrahend. ctx is the namespace the declarations are written in; nil is
// the root. Classes and modules are always kept, with their bodies filtered.
func (s *Subtractor) Subtract(minuend []model.Decl, ctx *model.Context) ([]model.Decl, error) {
	result := make([]model.Decl, 0, len(minuend))
	for _, decl := range minuend {
		keep, err := s.filterDecl(decl, ctx)
		if err != nil {
			return nil, err
		}
		if keep != nil {
			result = append(result, keep)
		}
	}
	return result, nil
}

// filterDecl returns the declaration to emit, or nil when it is dropped.
func (s *Subtractor) filterDecl(decl model.Decl, ctx *model.Context) (model.Decl, error) {
	var exists bool
	switch d := decl.(type) {
	case *model.Constant:
		exists = s.idx.HasConstant(model.Resolve(d.Name, ctx))
	case *model.Interface:
		exists = s.idx.HasInterface(model.Resolve(d.Name, ctx))
	case *model.Global:
		exists = s.idx.HasGlobal(d.Name)
	case *model.TypeAlias:
		exists = s.idx.HasTypeAlias(model.Resolve(d.Name, ctx))
	case *model.ClassAlias:
		name := model.Resolve(d.NewName, ctx)
		exists = s.idx.HasClassAlias(name) || s.idx.HasClassDecl(name)
	case *model.ModuleAlias:
		name := model.Resolve(d.NewName, ctx)
		exists = s.idx.HasModuleAlias(name) || s.idx.HasModuleDecl(name)
	case *model.Class:
		return s.filterMembers(d, ctx)
	case *model.Module:
		return s.filterMembers(d, ctx)
	default:
		return nil, fmt.Errorf("%w: declaration %T", model.ErrUnsupportedVariant, decl)
	}
	if exists {
		s.removed(rootOwner(ctx), decl)
		return nil, nil
	}
	return decl, nil
}

// filterMembers filters the body of a class or module. Nested declarations
// are filtered in the namespace of decl, members against decl's absolute
// name. Children keep their relative order.
func (s *Subtractor) filterMembers(decl model.Container, ctx *model.Context) (model.Decl, error) {
	owner := model.Resolve(decl.DeclName(), ctx)
	inner := ctx.Push(decl.DeclName())

	nodes := body(decl)
	children := make([]model.Node, 0, len(nodes))
	for _, child := range nodes {
		switch c := child.(type) {
		case model.Decl:
			keep, err := s.filterDecl(c, inner)
			if err != nil {
				return nil, err
			}
			if keep != nil {
				children = append(children, keep)
			}
		case model.Member:
			ok, err := s.Exists(owner, c)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", owner, err)
			}
			if ok {
				s.removed(owner, c)
				continue
			}
			children = append(children, c)
		default:
			return nil, fmt.Errorf("%s: %w: body node %T", owner, model.ErrUnsupportedVariant, child)
		}
	}
	return rebuild(decl, children), nil
}

func body(decl model.Container) []model.Node {
	switch d := decl.(type) {
	case *model.Class:
		return d.Members
	case *model.Module:
		return d.Members
	}
	return nil
}

func (s *Subtractor) removed(owner model.TypeName, n model.Node) {
	if s.opts.OnRemove != nil {
		s.opts.OnRemove(owner, n)
	}
}

// rootOwner names the declaration enclosing ctx's declarations.
func rootOwner(ctx *model.Context) model.TypeName {
	frames := ctx.Frames()
	if len(frames) == 0 {
		return model.TypeName{Absolute: true}
	}
	var inner *model.Context
	for _, f := range frames[:len(frames)-1] {
		inner = inner.Push(f)
	}
	return model.Resolve(frames[len(frames)-1], inner)
}

// rebuild copies decl with members replaced. The input is left untouched.
func rebuild(decl model.Container, members []model.Node) model.Decl {
	switch d := decl.(type) {
	case *model.Class:
		c := *d
		c.Members = members
		return &c
	case *model.Module:
		m := *d
		m.Members = members
		return &m
	}
	panic(fmt.Sprintf("subtract: cannot rebuild %T", decl))
}
