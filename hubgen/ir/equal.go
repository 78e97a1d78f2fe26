package ir

import "slices"

// Equal reports whether two descriptors describe the same type.
// Classes are compared by name and property list; recursive references are
// assumed equal once a pair of classes is already being compared.
func Equal(a, b TypeDescriptor) bool {
	return equal(a, b, map[[2]*ClassDescriptor]bool{})
}

func equal(a, b TypeDescriptor, seen map[[2]*ClassDescriptor]bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *PrimitiveDescriptor:
		return x.Name == b.(*PrimitiveDescriptor).Name
	case *ArrayDescriptor:
		return equal(x.Element, b.(*ArrayDescriptor).Element, seen)
	case *EnumDescriptor:
		y := b.(*EnumDescriptor)
		return x.Name == y.Name && slices.Equal(x.Members, y.Members)
	case *ClassDescriptor:
		y := b.(*ClassDescriptor)
		if x == y {
			return true
		}
		if x.Name != y.Name || len(x.Properties) != len(y.Properties) {
			return false
		}
		key := [2]*ClassDescriptor{x, y}
		if seen[key] {
			return true
		}
		seen[key] = true
		for i := range x.Properties {
			if x.Properties[i].Name != y.Properties[i].Name {
				return false
			}
			if !equal(x.Properties[i].Type, y.Properties[i].Type, seen) {
				return false
			}
		}
		return true
	case *GenericDescriptor:
		y := b.(*GenericDescriptor)
		return x.Name == y.Name && slices.Equal(x.TypeArgs, y.TypeArgs)
	case *UnsupportedDescriptor:
		return x.Name == b.(*UnsupportedDescriptor).Name
	case *ContextDescriptor:
		return x.Name == b.(*ContextDescriptor).Name
	}
	return false
}
