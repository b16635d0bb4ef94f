package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidName is returned when a type name cannot be parsed.
var ErrInvalidName = errors.New("invalid type name")

// NameKind is the category of a type name, derived from its spelling.
type NameKind string

const (
	NameClass     NameKind = "class"
	NameInterface NameKind = "interface"
	NameAlias     NameKind = "alias"
)

// TypeName is a possibly-qualified declaration name such as ::Foo::Bar.
type TypeName struct {
	Path     []string // Enclosing namespace segments, outermost first
	Name     string   // Last segment
	Absolute bool     // Whether the name starts at the root namespace
}

// ParseTypeName parses names written as "Foo", "Foo::Bar" or "::Foo::Bar".
func ParseTypeName(s string) (TypeName, error) {
	var n TypeName
	if strings.HasPrefix(s, "::") {
		n.Absolute = true
		s = s[2:]
	}
	parts := strings.Split(s, "::")
	for _, p := range parts {
		if p == "" {
			return TypeName{}, fmt.Errorf("%w: %q", ErrInvalidName, s)
		}
	}
	n.Path = parts[:len(parts)-1]
	n.Name = parts[len(parts)-1]
	if len(n.Path) == 0 {
		n.Path = nil
	}
	return n, nil
}

// MustParseTypeName is like ParseTypeName but panics on error.
func MustParseTypeName(s string) TypeName {
	n, err := ParseTypeName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String renders the name in source form.
func (n TypeName) String() string {
	var b strings.Builder
	if n.Absolute {
		b.WriteString("::")
	}
	for _, p := range n.Path {
		b.WriteString(p)
		b.WriteString("::")
	}
	b.WriteString(n.Name)
	return b.String()
}

// Key returns a string usable as a map key.
func (n TypeName) Key() string {
	return n.String()
}

// Kind reports whether the name denotes a class-like, interface or alias name.
func (n TypeName) Kind() NameKind {
	if strings.HasPrefix(n.Name, "_") {
		return NameInterface
	}
	if r, _ := utf8.DecodeRuneInString(n.Name); unicode.IsLower(r) {
		return NameAlias
	}
	return NameClass
}

// IsInterface reports whether the name is an interface name (_Foo).
func (n TypeName) IsInterface() bool {
	return n.Kind() == NameInterface
}

// Equal compares two names segment by segment.
func (n TypeName) Equal(o TypeName) bool {
	if n.Absolute != o.Absolute || n.Name != o.Name || len(n.Path) != len(o.Path) {
		return false
	}
	for i := range n.Path {
		if n.Path[i] != o.Path[i] {
			return false
		}
	}
	return true
}

// ToAbsolute returns a copy of n marked absolute.
func (n TypeName) ToAbsolute() TypeName {
	n.Absolute = true
	return n
}

// WithPrefix qualifies n with the namespace denoted by ns.
// Absolute names are returned unchanged. The result is absolute iff ns is.
func (n TypeName) WithPrefix(ns TypeName) TypeName {
	if n.Absolute {
		return n
	}
	path := make([]string, 0, len(ns.Path)+1+len(n.Path))
	path = append(path, ns.Path...)
	path = append(path, ns.Name)
	path = append(path, n.Path...)
	return TypeName{Path: path, Name: n.Name, Absolute: ns.Absolute}
}

// Context is the chain of enclosing namespaces, innermost first.
// A nil *Context is the root context. Contexts are never mutated.
type Context struct {
	parent *Context
	name   TypeName
}

// Push returns a new context with name as the innermost frame.
func (c *Context) Push(name TypeName) *Context {
	return &Context{parent: c, name: name}
}

// Frames lists the enclosing names, outermost first.
func (c *Context) Frames() []TypeName {
	var frames []TypeName
	for f := c; f != nil; f = f.parent {
		frames = append(frames, f.name)
	}
	for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
		frames[i], frames[j] = frames[j], frames[i]
	}
	return frames
}

// Resolve converts name into its absolute form as seen from ctx.
func Resolve(name TypeName, ctx *Context) TypeName {
	for f := ctx; f != nil && !name.Absolute; f = f.parent {
		name = name.WithPrefix(f.name)
	}
	return name.ToAbsolute()
}
