package model

// Visibility is the access level of a generated member.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

// String returns the lower-case keyword for the visibility.
func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "unknown"
	}
}

// Property is a named, typed accessor with get and set and its backing field.
type Property struct {
	// Name is the accessor name.
	Name string

	// Field is the backing field name.
	Field string

	Type       TypeRef
	Visibility Visibility
}

// Declaration is a type declared by one generation pass.
type Declaration interface {
	// DeclName returns the declared type name.
	DeclName() string

	sealed()
}

// ClassDecl declares a class with properties in source order.
type ClassDecl struct {
	Name       string
	Properties []Property
}

func (d *ClassDecl) DeclName() string { return d.Name }
func (*ClassDecl) sealed()            {}

// EnumDecl declares an enumeration with members in ordinal order.
type EnumDecl struct {
	Name    string
	Members []string
}

func (d *EnumDecl) DeclName() string { return d.Name }
func (*EnumDecl) sealed()            {}

// ArrayDecl records that an array of a declared element type was synthesized.
// Emitters produce no standalone text for it.
type ArrayDecl struct {
	Name    string
	Element TypeRef
}

func (d *ArrayDecl) DeclName() string { return d.Name }
func (*ArrayDecl) sealed()            {}
