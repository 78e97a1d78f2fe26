package ir

// ArrayDescriptor represents an ordered collection (slice or fixed-length array).
type ArrayDescriptor struct {
	// Element is the array element type.
	Element TypeDescriptor
}

// Kind returns KindArray.
func (d *ArrayDescriptor) Kind() DescriptorKind { return KindArray }

// TypeName returns the element name followed by "[]".
func (d *ArrayDescriptor) TypeName() string {
	if d.Element == nil {
		return "[]"
	}
	return d.Element.TypeName() + "[]"
}

func (*ArrayDescriptor) sealed() {}

// Array returns an ArrayDescriptor for the element type.
func Array(element TypeDescriptor) *ArrayDescriptor {
	return &ArrayDescriptor{Element: element}
}

// GenericDescriptor represents an instantiated parameterized type such as
// Page[User]. Generators reject it.
type GenericDescriptor struct {
	Name     string
	Package  string
	TypeArgs []string
}

// Kind returns KindGeneric.
func (d *GenericDescriptor) Kind() DescriptorKind { return KindGeneric }

// TypeName returns the type as written, e.g. "Page[User]".
func (d *GenericDescriptor) TypeName() string {
	name := d.Name + "["
	for i, arg := range d.TypeArgs {
		if i > 0 {
			name += ","
		}
		name += arg
	}
	return name + "]"
}

func (*GenericDescriptor) sealed() {}

// UnsupportedDescriptor represents a type kind with no client-side
// representation (maps, channels, functions, non-empty interfaces).
type UnsupportedDescriptor struct {
	Name   string
	Reason string
}

// Kind returns KindUnsupported.
func (d *UnsupportedDescriptor) Kind() DescriptorKind { return KindUnsupported }

// TypeName returns the type as written in Go.
func (d *UnsupportedDescriptor) TypeName() string { return d.Name }

func (*UnsupportedDescriptor) sealed() {}

// ContextDescriptor marks a parameter that carries the connection context
// (hub.Caller, context.Context). It is stripped from generated signatures.
type ContextDescriptor struct {
	Name string
}

// Kind returns KindContext.
func (d *ContextDescriptor) Kind() DescriptorKind { return KindContext }

// TypeName returns the marker type name.
func (d *ContextDescriptor) TypeName() string { return d.Name }

func (*ContextDescriptor) sealed() {}

// Context returns a ContextDescriptor for the named marker type.
func Context(name string) *ContextDescriptor {
	return &ContextDescriptor{Name: name}
}
