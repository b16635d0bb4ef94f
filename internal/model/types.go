// Package model defines the in-memory representation of signature trees.
package model

import "errors"

// ErrUnsupportedVariant is returned when a declaration or member is not one
// of the kinds this package defines.
var ErrUnsupportedVariant = errors.New("unsupported variant")

// File is one loaded signature tree.
type File struct {
	Path         string // Source path (empty for in-memory trees)
	Declarations []Decl // Top-level declarations in source order
}

// Node is anything that can appear in a class or module body.
type Node interface {
	node()
}

// Decl is a declaration. The set of implementations is closed.
type Decl interface {
	Node
	declNode()
}

// Container is a declaration with a body: *Class or *Module.
type Container interface {
	Decl
	DeclName() TypeName
	EachDecl() []Decl
	EachMember() []Member
}

// TypeParam is a generic parameter of a class, module, interface or alias.
type TypeParam struct {
	Name     string `yaml:"name" json:"name"`
	Variance string `yaml:"variance,omitempty" json:"variance,omitempty"` // covariant, contravariant or empty
	Bound    string `yaml:"bound,omitempty" json:"bound,omitempty"`
	Default  string `yaml:"default,omitempty" json:"default,omitempty"`
}

// Location is the source position a node was read from.
type Location struct {
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
	Line   int    `yaml:"line,omitempty" json:"line,omitempty"`
	Column int    `yaml:"column,omitempty" json:"column,omitempty"`
}

// ClassRef references a class or module with optional type arguments.
type ClassRef struct {
	Name TypeName
	Args []string
}

// Constant declares a constant of the given type.
type Constant struct {
	Name        TypeName
	Type        string
	Annotations []string
	Location    *Location
	Comment     string
}

// Interface declares an interface (_Name) and its members.
type Interface struct {
	Name        TypeName
	TypeParams  []TypeParam
	Members     []Member
	Annotations []string
	Location    *Location
	Comment     string
}

// Class declares (or reopens) a class.
type Class struct {
	Name        TypeName
	TypeParams  []TypeParam
	SuperClass  *ClassRef
	Members     []Node // Nested declarations and members in source order
	Annotations []string
	Location    *Location
	Comment     string
}

// Module declares (or reopens) a module.
type Module struct {
	Name        TypeName
	TypeParams  []TypeParam
	SelfTypes   []ClassRef
	Members     []Node
	Annotations []string
	Location    *Location
	Comment     string
}

// Global declares a global variable such as $stdout.
type Global struct {
	Name        string
	Type        string
	Annotations []string
	Location    *Location
	Comment     string
}

// TypeAlias declares a type alias (lowercase name).
type TypeAlias struct {
	Name        TypeName
	TypeParams  []TypeParam
	Type        string
	Annotations []string
	Location    *Location
	Comment     string
}

// ClassAlias declares NewName as another name for the class OldName.
type ClassAlias struct {
	NewName     TypeName
	OldName     TypeName
	Annotations []string
	Location    *Location
	Comment     string
}

// ModuleAlias declares NewName as another name for the module OldName.
type ModuleAlias struct {
	NewName     TypeName
	OldName     TypeName
	Annotations []string
	Location    *Location
	Comment     string
}

func (*Constant) node()    {}
func (*Interface) node()   {}
func (*Class) node()       {}
func (*Module) node()      {}
func (*Global) node()      {}
func (*TypeAlias) node()   {}
func (*ClassAlias) node()  {}
func (*ModuleAlias) node() {}

func (*Constant) declNode()    {}
func (*Interface) declNode()   {}
func (*Class) declNode()       {}
func (*Module) declNode()      {}
func (*Global) declNode()      {}
func (*TypeAlias) declNode()   {}
func (*ClassAlias) declNode()  {}
func (*ModuleAlias) declNode() {}

// DeclName returns the declared name.
func (c *Class) DeclName() TypeName { return c.Name }

// EachDecl returns the nested declarations of the class body.
func (c *Class) EachDecl() []Decl { return decls(c.Members) }

// EachMember returns the members of the class body.
func (c *Class) EachMember() []Member { return members(c.Members) }

// DeclName returns the declared name.
func (m *Module) DeclName() TypeName { return m.Name }

// EachDecl returns the nested declarations of the module body.
func (m *Module) EachDecl() []Decl { return decls(m.Members) }

// EachMember returns the members of the module body.
func (m *Module) EachMember() []Member { return members(m.Members) }

// EachMember returns the interface members.
func (i *Interface) EachMember() []Member { return i.Members }

func decls(nodes []Node) []Decl {
	var result []Decl
	for _, n := range nodes {
		if d, ok := n.(Decl); ok {
			result = append(result, d)
		}
	}
	return result
}

func members(nodes []Node) []Member {
	var result []Member
	for _, n := range nodes {
		if m, ok := n.(Member); ok {
			result = append(result, m)
		}
	}
	return result
}
