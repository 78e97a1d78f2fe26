// Package discover finds hub contracts in a Go package.
//
// A contract is a struct type that embeds hub.Hub or *hub.Hub. The embedding
// is the marker; the operations of the contract are then selected with
// //hub:server directives.
package discover

import (
	"cmp"
	"context"
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"

	"golang.org/x/tools/go/packages"
)

// HubPackage is the import path of the package declaring the hub markers.
const HubPackage = "github.com/broady/hub"

// LoadMode is the go/packages mode needed for contract discovery and
// type extraction.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedModule

// Contract represents a discovered hub contract.
type Contract struct {
	Name string         // type name
	Type *types.Named   // the contract type
	Pos  token.Position // source location
}

// Result contains discovered contracts and package info.
type Result struct {
	Package     *packages.Package
	Contracts   []Contract // in source order
	PackagePath string
	PackageName string
	ModulePath  string
	ModuleDir   string // directory containing go.mod
	Dir         string // directory containing the package
}

// Find loads a single Go package and scans it for hub contracts.
//
// The pattern follows go command semantics:
//   - "." for the package in dir
//   - Import path like "github.com/foo/bar"
//   - Absolute or relative directory path
func Find(ctx context.Context, pattern, dir string) (*Result, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}

	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
	}

	result := &Result{
		Package:     pkg,
		PackagePath: pkg.PkgPath,
		PackageName: pkg.Name,
	}

	if pkg.Module != nil {
		result.ModulePath = pkg.Module.Path
		result.ModuleDir = pkg.Module.Dir
	}

	if len(pkg.GoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok || !IsContract(named) {
			continue
		}
		result.Contracts = append(result.Contracts, Contract{
			Name: tn.Name(),
			Type: named,
			Pos:  pkg.Fset.Position(tn.Pos()),
		})
	}

	slices.SortFunc(result.Contracts, func(a, b Contract) int {
		if c := cmp.Compare(a.Pos.Filename, b.Pos.Filename); c != 0 {
			return c
		}
		return cmp.Compare(a.Pos.Offset, b.Pos.Offset)
	})

	return result, nil
}

// IsContract reports whether named is a struct embedding hub.Hub or *hub.Hub.
func IsContract(named *types.Named) bool {
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return false
	}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Embedded() && IsHub(f.Type()) {
			return true
		}
	}
	return false
}

// IsHub reports whether t is hub.Hub or *hub.Hub.
func IsHub(t types.Type) bool {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	return isNamed(t, HubPackage, "Hub")
}

// IsCaller reports whether t is the hub.Caller interface.
func IsCaller(t types.Type) bool {
	return isNamed(t, HubPackage, "Caller")
}

// IsContext reports whether t is context.Context.
func IsContext(t types.Type) bool {
	return isNamed(t, "context", "Context")
}

// IsError reports whether t is the predeclared error type.
func IsError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

func isNamed(t types.Type, pkgPath, name string) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	if obj.Pkg() == nil {
		return false
	}
	return obj.Pkg().Path() == pkgPath && obj.Name() == name
}
