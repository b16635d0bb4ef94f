package model

// MethodKind tells instance methods from singleton (class-level) methods.
type MethodKind string

const (
	KindInstance  MethodKind = "instance"
	KindSingleton MethodKind = "singleton"
)

// MixinKind is the way a module is mixed into its owner.
type MixinKind string

const (
	MixinInclude MixinKind = "include"
	MixinExtend  MixinKind = "extend"
	MixinPrepend MixinKind = "prepend"
)

// VisibilityKind is the visibility set by a bare public/private marker.
type VisibilityKind string

const (
	VisibilityPublic  VisibilityKind = "public"
	VisibilityPrivate VisibilityKind = "private"
)

// Member is an entry of a class, module or interface body. The set of
// implementations is closed.
type Member interface {
	Node
	memberNode()
}

// MethodDefinition declares a method with one or more overloads.
type MethodDefinition struct {
	Name        string
	Kind        MethodKind
	Overloads   []string // Method types, e.g. "(Integer) -> String"
	Annotations []string
	Location    *Location
	Comment     string
}

// Alias declares NewName as an alias of the method OldName.
type Alias struct {
	NewName     string
	OldName     string
	Kind        MethodKind
	Annotations []string
	Location    *Location
	Comment     string
}

// Attribute holds the fields shared by attr_reader, attr_writer and
// attr_accessor members.
type Attribute struct {
	Name        string
	Type        string
	Kind        MethodKind
	IvarName    string // Explicit backing variable; empty means "@" + Name
	NoIvar      bool   // No backing variable at all
	Annotations []string
	Location    *Location
	Comment     string
}

// InstanceVariable returns the name of the variable backing the attribute.
func (a Attribute) InstanceVariable() (string, bool) {
	switch {
	case a.NoIvar:
		return "", false
	case a.IvarName != "":
		return a.IvarName, true
	default:
		return "@" + a.Name, true
	}
}

// AttrReader declares a reader method.
type AttrReader struct{ Attribute }

// AttrWriter declares a writer method (Name=).
type AttrWriter struct{ Attribute }

// AttrAccessor declares both a reader and a writer.
type AttrAccessor struct{ Attribute }

// InstanceVariable declares an instance variable (@name).
type InstanceVariable struct {
	Name     string
	Type     string
	Location *Location
	Comment  string
}

// ClassInstanceVariable declares an instance variable of the class object.
type ClassInstanceVariable struct {
	Name     string
	Type     string
	Location *Location
	Comment  string
}

// ClassVariable declares a class variable (@@name).
type ClassVariable struct {
	Name     string
	Type     string
	Location *Location
	Comment  string
}

// Mixin is an include, extend or prepend of a module.
type Mixin struct {
	Kind        MixinKind
	Name        TypeName
	Args        []string
	Annotations []string
	Location    *Location
	Comment     string
}

// Visibility is a bare public or private marker.
type Visibility struct {
	Kind     VisibilityKind
	Location *Location
}

// WriterName returns the writer method name for an attribute name.
func WriterName(name string) string {
	return name + "="
}

func (*MethodDefinition) node()      {}
func (*Alias) node()                 {}
func (*AttrReader) node()            {}
func (*AttrWriter) node()            {}
func (*AttrAccessor) node()          {}
func (*InstanceVariable) node()      {}
func (*ClassInstanceVariable) node() {}
func (*ClassVariable) node()         {}
func (*Mixin) node()                 {}
func (*Visibility) node()            {}

func (*MethodDefinition) memberNode()      {}
func (*Alias) memberNode()                 {}
func (*AttrReader) memberNode()            {}
func (*AttrWriter) memberNode()            {}
func (*AttrAccessor) memberNode()          {}
func (*InstanceVariable) memberNode()      {}
func (*ClassInstanceVariable) memberNode() {}
func (*ClassVariable) memberNode()         {}
func (*Mixin) memberNode()                 {}
func (*Visibility) memberNode()            {}
