package ir

// ClassDescriptor represents a named type whose accessible instance members
// become properties (a Go struct).
type ClassDescriptor struct {
	// Name is the type identifier. It is unique within one metadata set.
	Name string

	// Package is the Go import path the type was declared in.
	Package string

	// Properties holds the members in declaration order.
	Properties []PropertyDescriptor
}

// Kind returns KindClass.
func (d *ClassDescriptor) Kind() DescriptorKind { return KindClass }

// TypeName returns the class name.
func (d *ClassDescriptor) TypeName() string { return d.Name }

func (*ClassDescriptor) sealed() {}

// PropertyDescriptor is a single named member of a class.
type PropertyDescriptor struct {
	Name string
	Type TypeDescriptor
}

// Class returns a ClassDescriptor with the given properties.
func Class(name string, props ...PropertyDescriptor) *ClassDescriptor {
	return &ClassDescriptor{Name: name, Properties: props}
}

// Prop returns a PropertyDescriptor.
func Prop(name string, typ TypeDescriptor) PropertyDescriptor {
	return PropertyDescriptor{Name: name, Type: typ}
}
