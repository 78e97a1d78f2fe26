// Package ir defines the input metadata hubgen consumes: a closed set of type
// descriptors and the operations of a hub contract. Providers build these
// values once; the code generator only pattern-matches over them.
package ir

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	KindPrimitive   DescriptorKind = iota // Built-in type of the target runtime
	KindArray                             // Ordered collection of an element type
	KindClass                             // Named type with properties
	KindEnum                              // Named set of members
	KindGeneric                           // Parameterized named type (never generated)
	KindUnsupported                       // Type with no client-side representation
	KindContext                           // Connection-context marker parameter
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindArray:
		return "Array"
	case KindClass:
		return "Class"
	case KindEnum:
		return "Enum"
	case KindGeneric:
		return "Generic"
	case KindUnsupported:
		return "Unsupported"
	case KindContext:
		return "Context"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is the base interface for all type descriptors.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// TypeName returns a human-readable name for the type, used for
	// declarations and error messages.
	TypeName() string

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}
