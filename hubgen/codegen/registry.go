package codegen

import (
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/broady/hub/hubgen/ir"
	"github.com/broady/hub/hubgen/model"
)

// Registry tracks every type name known to a generation pass: names declared
// by earlier output and names declared by this pass.
// A Registry belongs to one Build call.
type Registry struct {
	names *linkedhashset.Set
	prior int

	descs map[string]ir.TypeDescriptor
	decls []model.Declaration
}

// NewRegistry returns a registry seeded with names declared in prior output.
func NewRegistry(prior ...string) *Registry {
	names := linkedhashset.New()
	for _, n := range prior {
		names.Add(n)
	}
	return &Registry{
		names: names,
		prior: names.Size(),
		descs: make(map[string]ir.TypeDescriptor),
	}
}

// Contains reports whether name is already declared, either by prior output
// or by this pass.
func (r *Registry) Contains(name string) bool {
	return r.names.Contains(name)
}

// Lookup returns the descriptor declared under name in this pass.
// Names that only come from prior output report false.
func (r *Registry) Lookup(name string) (ir.TypeDescriptor, bool) {
	d, ok := r.descs[name]
	return d, ok
}

// Declare records a new declaration. It fails if the name is already known.
func (r *Registry) Declare(desc ir.TypeDescriptor, decl model.Declaration) error {
	name := decl.DeclName()
	if r.names.Contains(name) {
		return Errorf(CodeDuplicateDeclaration, name, "type is already declared")
	}
	r.names.Add(name)
	r.descs[name] = desc
	r.decls = append(r.decls, decl)
	return nil
}

// Declarations returns the declarations of this pass in the order they were made.
func (r *Registry) Declarations() []model.Declaration {
	out := make([]model.Declaration, len(r.decls))
	copy(out, r.decls)
	return out
}

// Names returns every known name, prior names first, then in declaration order.
func (r *Registry) Names() []string {
	vals := r.names.Values()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.(string)
	}
	return out
}

// PriorCount returns how many names the registry was seeded with.
func (r *Registry) PriorCount() int {
	return r.prior
}
