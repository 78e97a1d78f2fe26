package codegen

import (
	"fmt"
	"slices"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/broady/hub/hubgen/ir"
	"github.com/broady/hub/hubgen/model"
)

// Resolver turns type descriptors into references usable in generated code,
// declaring classes, enums and arrays of declared types as it goes.
type Resolver struct {
	rt      Runtime
	imports *treeset.Set
}

// NewResolver returns a resolver for the given target runtime.
func NewResolver(rt Runtime) *Resolver {
	return &Resolver{
		rt:      rt,
		imports: treeset.NewWithStringComparator(),
	}
}

// Runtime returns the target runtime the resolver maps builtins with.
func (r *Resolver) Runtime() Runtime {
	return r.rt
}

// Require records the import a builtin needs and returns its reference.
func (r *Resolver) Require(b model.Builtin) model.TypeRef {
	if b.Import != "" {
		r.imports.Add(b.Import)
	}
	return model.BuiltinRef(b.Type)
}

// Imports returns the recorded imports, sorted.
func (r *Resolver) Imports() []string {
	vals := r.imports.Values()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.(string)
	}
	return out
}

// Resolve returns the reference for desc. Declared types not yet known to reg
// are declared there, element types before the arrays that contain them.
func (r *Resolver) Resolve(desc ir.TypeDescriptor, reg *Registry) (model.TypeRef, error) {
	switch d := desc.(type) {
	case nil:
		return model.TypeRef{}, Errorf(CodeUnsupportedTypeKind, "<nil>", "missing type")

	case *ir.PrimitiveDescriptor:
		b, ok := r.rt.Builtin(d.Name)
		if !ok {
			return model.TypeRef{}, Errorf(CodeUnsupportedTypeKind, d.Name, "no built-in type for primitive")
		}
		return r.Require(b), nil

	case *ir.ArrayDescriptor:
		return r.resolveArray(d, reg)

	case *ir.EnumDescriptor:
		if reg.Contains(d.Name) {
			return r.existing(d, reg)
		}
		decl := &model.EnumDecl{Name: d.Name, Members: slices.Clone(d.Members)}
		if err := reg.Declare(d, decl); err != nil {
			return model.TypeRef{}, err
		}
		return model.DeclaredRef(d.Name), nil

	case *ir.ClassDescriptor:
		if reg.Contains(d.Name) {
			return r.existing(d, reg)
		}
		// Declared before its properties so self-references resolve to a bare ref.
		decl := &model.ClassDecl{Name: d.Name}
		if err := reg.Declare(d, decl); err != nil {
			return model.TypeRef{}, err
		}
		for _, p := range d.Properties {
			ref, err := r.Resolve(p.Type, reg)
			if err != nil {
				return model.TypeRef{}, fmt.Errorf("property %s.%s: %w", d.Name, p.Name, err)
			}
			prop, err := BuildProperty(p.Name, ref, model.Public)
			if err != nil {
				return model.TypeRef{}, fmt.Errorf("class %s: %w", d.Name, err)
			}
			decl.Properties = append(decl.Properties, prop)
		}
		return model.DeclaredRef(d.Name), nil

	case *ir.GenericDescriptor:
		return model.TypeRef{}, Errorf(CodeUnsupportedTypeKind, d.TypeName(), "generic types are not supported")

	case *ir.UnsupportedDescriptor:
		reason := d.Reason
		if reason == "" {
			reason = "type kind has no client representation"
		}
		return model.TypeRef{}, Errorf(CodeUnsupportedTypeKind, d.Name, "%s", reason)

	case *ir.ContextDescriptor:
		return model.TypeRef{}, Errorf(CodeUnsupportedTypeKind, d.Name, "connection context is only valid as an operation parameter")

	default:
		return model.TypeRef{}, Errorf(CodeUnsupportedTypeKind, desc.TypeName(), "unknown descriptor kind %v", desc.Kind())
	}
}

// existing returns a bare reference to an already known name, checking that a
// name declared in this pass is not being reused for a different type.
func (r *Resolver) existing(desc ir.TypeDescriptor, reg *Registry) (model.TypeRef, error) {
	name := desc.TypeName()
	if prev, ok := reg.Lookup(name); ok && !ir.Equal(prev, desc) {
		return model.TypeRef{}, Errorf(CodeDuplicateDeclaration, name, "declared twice with different shapes")
	}
	return model.DeclaredRef(name), nil
}

func (r *Resolver) resolveArray(d *ir.ArrayDescriptor, reg *Registry) (model.TypeRef, error) {
	elem, err := r.Resolve(d.Element, reg)
	if err != nil {
		return model.TypeRef{}, err
	}
	ref := model.ArrayOf(elem)
	if !hasDeclaredElem(elem) {
		return ref, nil
	}
	name := ref.String()
	if reg.Contains(name) {
		return ref, nil
	}
	if err := reg.Declare(d, &model.ArrayDecl{Name: name, Element: elem}); err != nil {
		return model.TypeRef{}, err
	}
	return ref, nil
}

func hasDeclaredElem(ref model.TypeRef) bool {
	for ref.Kind == model.RefArray && ref.Elem != nil {
		ref = *ref.Elem
	}
	return ref.Kind == model.RefDeclared
}
