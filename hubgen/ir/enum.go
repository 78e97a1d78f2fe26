package ir

// EnumDescriptor represents a named enumeration.
type EnumDescriptor struct {
	// Name is the type identifier.
	Name string

	// Package is the Go import path the type was declared in.
	Package string

	// Members lists member names in ordinal order.
	Members []string
}

// Kind returns KindEnum.
func (d *EnumDescriptor) Kind() DescriptorKind { return KindEnum }

// TypeName returns the enum name.
func (d *EnumDescriptor) TypeName() string { return d.Name }

func (*EnumDescriptor) sealed() {}

// Enum returns an EnumDescriptor with members in the given order.
func Enum(name string, members ...string) *EnumDescriptor {
	return &EnumDescriptor{Name: name, Members: members}
}
