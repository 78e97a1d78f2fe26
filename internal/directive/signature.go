package directive

import (
	"fmt"
	"go/types"
	"strings"
)

// ServerMethod is a validated //hub:server directive.
type ServerMethod struct {
	Directive
	Func *types.Func
	Recv *types.Named
}

// ClientType is a validated //hub:client directive.
type ClientType struct {
	Directive
	Type *types.Named
}

// TypedResult contains directives resolved against type information.
type TypedResult struct {
	Server  []ServerMethod
	Clients []ClientType
}

// Resolve looks up every directive in pkg.
//
// Server methods must be declared on a named type of pkg. Client types must
// be named, non-generic types of pkg.
func Resolve(pkg *types.Package, r *Result) (*TypedResult, error) {
	out := &TypedResult{}
	for _, d := range r.Server {
		named, err := lookupNamed(pkg, d.Recv, d)
		if err != nil {
			return nil, err
		}
		obj, _, _ := types.LookupFieldOrMethod(named, true, pkg, d.Name)
		fn, ok := obj.(*types.Func)
		if !ok {
			return nil, fmt.Errorf("%s: method %s.%s not found", d.Pos, d.Recv, d.Name)
		}
		if !fn.Exported() {
			return nil, fmt.Errorf("%s: server method %s.%s must be exported", d.Pos, d.Recv, d.Name)
		}
		out.Server = append(out.Server, ServerMethod{Directive: d, Func: fn, Recv: named})
	}
	for _, d := range r.Client {
		named, err := lookupNamed(pkg, d.Name, d)
		if err != nil {
			return nil, err
		}
		if named.TypeParams().Len() > 0 {
			return nil, fmt.Errorf("%s: client type %s must not be generic", d.Pos, d.Name)
		}
		out.Clients = append(out.Clients, ClientType{Directive: d, Type: named})
	}
	return out, nil
}

func lookupNamed(pkg *types.Package, name string, d Directive) (*types.Named, error) {
	obj := pkg.Scope().Lookup(name)
	if obj == nil {
		return nil, fmt.Errorf("%s: type %s not found in package scope", d.Pos, name)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a type", d.Pos, name)
	}
	named, ok := types.Unalias(tn.Type()).(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a defined type", d.Pos, name)
	}
	return named, nil
}

// FormatResults formats a result tuple the way it is written in source,
// relative to pkg.
func FormatResults(results *types.Tuple, pkg *types.Package) string {
	qual := types.RelativeTo(pkg)
	switch results.Len() {
	case 0:
		return "no result"
	case 1:
		return types.TypeString(results.At(0).Type(), qual)
	}
	parts := make([]string, results.Len())
	for i := 0; i < results.Len(); i++ {
		parts[i] = types.TypeString(results.At(i).Type(), qual)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
