// Package index provides read-only lookups over a subtrahend signature tree.
package index

import (
	"fmt"

	"sigsub/internal/model"
)

// Index answers presence queries by absolute name. Implementations must not
// change while a subtraction is running.
type Index interface {
	HasConstant(name model.TypeName) bool
	HasInterface(name model.TypeName) bool
	HasGlobal(name string) bool
	HasTypeAlias(name model.TypeName) bool
	HasClassAlias(name model.TypeName) bool
	HasClassDecl(name model.TypeName) bool
	HasModuleAlias(name model.TypeName) bool
	HasModuleDecl(name model.TypeName) bool

	// InterfaceDecl returns the single declaration of an interface.
	InterfaceDecl(name model.TypeName) (*model.Interface, bool)
	// ClassOrModuleDecls returns every partial declaration of a class or
	// module in declaration order.
	ClassOrModuleDecls(name model.TypeName) []model.Container
}

// Env is an Index built from complete signature trees.
type Env struct {
	constants     map[string]*model.Constant
	interfaces    map[string]*model.Interface
	globals       map[string]*model.Global
	typeAliases   map[string]*model.TypeAlias
	classAliases  map[string]*model.ClassAlias
	moduleAliases map[string]*model.ModuleAlias
	classes       map[string][]model.Container
}

// NewEnv creates an empty Env.
func NewEnv() *Env {
	return &Env{
		constants:     make(map[string]*model.Constant),
		interfaces:    make(map[string]*model.Interface),
		globals:       make(map[string]*model.Global),
		typeAliases:   make(map[string]*model.TypeAlias),
		classAliases:  make(map[string]*model.ClassAlias),
		moduleAliases: make(map[string]*model.ModuleAlias),
		classes:       make(map[string][]model.Container),
	}
}

// Build creates an Env holding the declarations of all files.
func Build(files ...*model.File) (*Env, error) {
	env := NewEnv()
	for _, f := range files {
		if err := env.Add(f.Declarations); err != nil {
			if f.Path != "" {
				return nil, fmt.Errorf("indexing %s: %w", f.Path, err)
			}
			return nil, err
		}
	}
	return env, nil
}

// Add indexes top-level declarations. It must not be called once the Env is
// shared with readers.
func (e *Env) Add(decls []model.Decl) error {
	return e.add(decls, nil)
}

func (e *Env) add(decls []model.Decl, ctx *model.Context) error {
	for _, decl := range decls {
		switch d := decl.(type) {
		case *model.Constant:
			e.constants[model.Resolve(d.Name, ctx).Key()] = d
		case *model.Interface:
			e.interfaces[model.Resolve(d.Name, ctx).Key()] = d
		case *model.Global:
			e.globals[d.Name] = d
		case *model.TypeAlias:
			e.typeAliases[model.Resolve(d.Name, ctx).Key()] = d
		case *model.ClassAlias:
			e.classAliases[model.Resolve(d.NewName, ctx).Key()] = d
		case *model.ModuleAlias:
			e.moduleAliases[model.Resolve(d.NewName, ctx).Key()] = d
		case *model.Class:
			if err := e.addContainer(d, ctx); err != nil {
				return err
			}
		case *model.Module:
			if err := e.addContainer(d, ctx); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: declaration %T", model.ErrUnsupportedVariant, decl)
		}
	}
	return nil
}

func (e *Env) addContainer(c model.Container, ctx *model.Context) error {
	key := model.Resolve(c.DeclName(), ctx).Key()
	e.classes[key] = append(e.classes[key], c)
	return e.add(c.EachDecl(), ctx.Push(c.DeclName()))
}

func (e *Env) HasConstant(name model.TypeName) bool {
	_, ok := e.constants[name.Key()]
	return ok
}

func (e *Env) HasInterface(name model.TypeName) bool {
	_, ok := e.interfaces[name.Key()]
	return ok
}

func (e *Env) HasGlobal(name string) bool {
	_, ok := e.globals[name]
	return ok
}

func (e *Env) HasTypeAlias(name model.TypeName) bool {
	_, ok := e.typeAliases[name.Key()]
	return ok
}

func (e *Env) HasClassAlias(name model.TypeName) bool {
	_, ok := e.classAliases[name.Key()]
	return ok
}

func (e *Env) HasModuleAlias(name model.TypeName) bool {
	_, ok := e.moduleAliases[name.Key()]
	return ok
}

// HasClassDecl reports whether any partial declaration of name is a class.
func (e *Env) HasClassDecl(name model.TypeName) bool {
	for _, c := range e.classes[name.Key()] {
		if _, ok := c.(*model.Class); ok {
			return true
		}
	}
	return false
}

// HasModuleDecl reports whether any partial declaration of name is a module.
func (e *Env) HasModuleDecl(name model.TypeName) bool {
	for _, c := range e.classes[name.Key()] {
		if _, ok := c.(*model.Module); ok {
			return true
		}
	}
	return false
}

func (e *Env) InterfaceDecl(name model.TypeName) (*model.Interface, bool) {
	d, ok := e.interfaces[name.Key()]
	return d, ok
}

func (e *Env) ClassOrModuleDecls(name model.TypeName) []model.Container {
	return e.classes[name.Key()]
}

// Stats counts indexed entries.
type Stats struct {
	Constants     int
	Interfaces    int
	Globals       int
	TypeAliases   int
	ClassAliases  int
	ModuleAliases int
	Containers    int
}

// Stats reports how many entries of each kind the Env holds.
func (e *Env) Stats() Stats {
	return Stats{
		Constants:     len(e.constants),
		Interfaces:    len(e.interfaces),
		Globals:       len(e.globals),
		TypeAliases:   len(e.typeAliases),
		ClassAliases:  len(e.classAliases),
		ModuleAliases: len(e.moduleAliases),
		Containers:    len(e.classes),
	}
}
