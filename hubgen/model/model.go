// Package model holds the target-neutral code model produced by codegen and
// consumed by the target emitters.
package model

// RefKind identifies the category of a type reference.
type RefKind int

const (
	RefBuiltin  RefKind = iota // Runtime built-in type
	RefDeclared                // Type declared in generated output
	RefArray                   // Array of Elem
	RefCallback                // Handler taking Args and returning nothing
)

// String returns the string representation of the reference kind.
func (k RefKind) String() string {
	switch k {
	case RefBuiltin:
		return "Builtin"
	case RefDeclared:
		return "Declared"
	case RefArray:
		return "Array"
	case RefCallback:
		return "Callback"
	default:
		return "Unknown"
	}
}

// TypeRef is a reference to a type usable in generated source.
type TypeRef struct {
	Kind RefKind

	// Name is the target type name for Builtin and Declared refs.
	Name string

	// Elem is the element type of an Array ref.
	Elem *TypeRef

	// Args are the handler argument types of a Callback ref.
	Args []TypeRef

	// ArgNames are the handler argument names of a Callback ref, parallel to Args.
	ArgNames []string
}

// BuiltinRef returns a reference to a runtime built-in type.
func BuiltinRef(name string) TypeRef { return TypeRef{Kind: RefBuiltin, Name: name} }

// DeclaredRef returns a reference to a declared type.
func DeclaredRef(name string) TypeRef { return TypeRef{Kind: RefDeclared, Name: name} }

// ArrayOf returns an array reference wrapping elem.
func ArrayOf(elem TypeRef) TypeRef { return TypeRef{Kind: RefArray, Elem: &elem} }

// String renders the reference in a target-neutral notation, used in
// error messages and tests.
func (r TypeRef) String() string {
	switch r.Kind {
	case RefArray:
		if r.Elem == nil {
			return "[]"
		}
		return r.Elem.String() + "[]"
	case RefCallback:
		s := "func("
		for i, a := range r.Args {
			if i > 0 {
				s += ", "
			}
			s += a.String()
		}
		return s + ")"
	default:
		return r.Name
	}
}

// Builtin describes a runtime built-in type and the import it requires.
type Builtin struct {
	// Type is the type name as written in target source.
	Type string

	// Import is the namespace or module the type lives in. Empty when
	// the type needs no import.
	Import string
}
