// Package provider extracts hub contracts from Go source code and converts
// them to the intermediate representation.
package provider

import (
	"cmp"
	"context"
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"reflect"
	"slices"
	"strings"

	"github.com/broady/hub/hubgen/ir"
	"github.com/broady/hub/internal/directive"
	"github.com/broady/hub/internal/discover"
	"golang.org/x/tools/go/packages"
)

// SourceProvider extracts hub metadata by analyzing Go source code.
type SourceProvider struct{}

// SourceOptions configures source-based extraction.
type SourceOptions struct {
	// Pattern selects a single Go package, following go command semantics.
	Pattern string

	// Dir is the directory the pattern is resolved in. Empty means the
	// current directory.
	Dir string
}

// Load analyzes the package matching opts.Pattern and returns its contracts
// and client APIs.
//
// Contracts are structs embedding hub.Hub; their operations are the methods
// marked //hub:server. Client APIs are types marked //hub:client; their
// operations are the type's exported methods. Both lists are in source order.
func (p *SourceProvider) Load(ctx context.Context, opts SourceOptions) (*ir.Metadata, error) {
	if opts.Pattern == "" {
		return nil, fmt.Errorf("no package specified")
	}

	found, err := discover.Find(ctx, opts.Pattern, opts.Dir)
	if err != nil {
		return nil, err
	}
	pkg := found.Package

	dirs, err := directive.ParseFiles(pkg.Fset, pkg.Syntax)
	if err != nil {
		return nil, err
	}
	typed, err := directive.Resolve(pkg.Types, dirs)
	if err != nil {
		return nil, err
	}

	b := &builder{
		pkg:     pkg,
		classes: make(map[*types.Named]*ir.ClassDescriptor),
		enums:   make(map[*types.Named]*ir.EnumDescriptor),
	}
	md := &ir.Metadata{
		Package: ir.PackageInfo{
			Path: found.PackagePath,
			Name: found.PackageName,
			Dir:  found.Dir,
		},
	}

	contracts := make(map[*types.Named]bool)
	for _, c := range found.Contracts {
		contracts[c.Type] = true
	}
	for _, m := range typed.Server {
		if !contracts[m.Recv] {
			return nil, fmt.Errorf("%s: %s method %s.%s: %s does not embed hub.Hub",
				m.Pos, directive.Prefix+string(directive.KindServer), m.Recv.Obj().Name(), m.Name, m.Recv.Obj().Name())
		}
	}

	for _, c := range found.Contracts {
		contract := ir.Contract{Name: c.Name, Source: source(c.Pos)}
		for _, m := range typed.Server {
			if m.Recv != c.Type {
				continue
			}
			op, err := b.operation(m.Func, ir.ServerReceived)
			if err != nil {
				return nil, fmt.Errorf("contract %s: %w", c.Name, err)
			}
			contract.Operations = append(contract.Operations, op)
		}
		md.AddContract(contract)
	}

	for _, ct := range typed.Clients {
		api := ir.ClientAPI{Name: ct.Name, Source: source(pkg.Fset.Position(ct.Type.Obj().Pos()))}
		for _, fn := range exportedMethods(pkg.Fset, ct.Type) {
			op, err := b.operation(fn, ir.ClientInvoked)
			if err != nil {
				return nil, fmt.Errorf("client %s: %w", ct.Name, err)
			}
			api.Operations = append(api.Operations, op)
		}
		md.AddClientAPI(api)
	}

	return md, nil
}

// exportedMethods returns the exported methods of named, in source order.
// For an interface these are its methods, embedded ones included; for any
// other type they are the methods declared on it.
func exportedMethods(fset *token.FileSet, named *types.Named) []*types.Func {
	var out []*types.Func
	if iface, ok := named.Underlying().(*types.Interface); ok {
		for i := 0; i < iface.NumMethods(); i++ {
			if m := iface.Method(i); m.Exported() {
				out = append(out, m)
			}
		}
	} else {
		for i := 0; i < named.NumMethods(); i++ {
			if m := named.Method(i); m.Exported() {
				out = append(out, m)
			}
		}
	}
	slices.SortStableFunc(out, func(a, b *types.Func) int {
		pa, pb := fset.Position(a.Pos()), fset.Position(b.Pos())
		if c := cmp.Compare(pa.Filename, pb.Filename); c != 0 {
			return c
		}
		return cmp.Compare(pa.Offset, pb.Offset)
	})
	return out
}

func source(pos token.Position) ir.Source {
	return ir.Source{File: pos.Filename, Line: pos.Line, Column: pos.Column}
}

// builder converts go/types types to descriptors. Named structs and enums
// are memoized so recursive and shared types map to one descriptor.
type builder struct {
	pkg     *packages.Package
	classes map[*types.Named]*ir.ClassDescriptor
	enums   map[*types.Named]*ir.EnumDescriptor
}

func (b *builder) operation(fn *types.Func, dir ir.Direction) (ir.OperationDescriptor, error) {
	sig := fn.Type().(*types.Signature)
	op := ir.OperationDescriptor{
		Name:      fn.Name(),
		Direction: dir,
		Result:    directive.FormatResults(sig.Results(), b.pkg.Types),
		Source:    source(b.pkg.Fset.Position(fn.Pos())),
	}
	op.AsyncVoid = sig.Results().Len() == 1 && discover.IsError(sig.Results().At(0).Type())

	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		v := params.At(i)
		typ, err := b.convertType(v.Type())
		if err != nil {
			return ir.OperationDescriptor{}, fmt.Errorf("method %s parameter %s: %w", fn.Name(), v.Name(), err)
		}
		op.Parameters = append(op.Parameters, ir.Param(v.Name(), typ))
	}
	return op, nil
}

func (b *builder) qualifier() types.Qualifier {
	return types.RelativeTo(b.pkg.Types)
}

func (b *builder) unsupported(t types.Type, reason string) *ir.UnsupportedDescriptor {
	return &ir.UnsupportedDescriptor{Name: types.TypeString(t, b.qualifier()), Reason: reason}
}

// convertType converts a Go type to a descriptor. Types with no client
// representation become UnsupportedDescriptor values and are rejected when
// the model is built.
func (b *builder) convertType(t types.Type) (ir.TypeDescriptor, error) {
	t = types.Unalias(t)

	switch typ := t.(type) {
	case *types.Basic:
		return b.convertBasic(typ), nil

	case *types.Pointer:
		return b.convertType(typ.Elem())

	case *types.Slice:
		if isByte(typ.Elem()) {
			return ir.Primitive(ir.PrimitiveBytes), nil
		}
		elem, err := b.convertType(typ.Elem())
		if err != nil {
			return nil, err
		}
		return ir.Array(elem), nil

	case *types.Array:
		elem, err := b.convertType(typ.Elem())
		if err != nil {
			return nil, err
		}
		return ir.Array(elem), nil

	case *types.Named:
		return b.convertNamed(typ)

	case *types.Interface:
		if typ.Empty() {
			return ir.Primitive(ir.PrimitiveAny), nil
		}
		return b.unsupported(t, "interface types are not supported"), nil

	case *types.Map:
		return b.unsupported(t, "map types are not supported"), nil

	case *types.Struct:
		return b.unsupported(t, "anonymous structs are not supported"), nil

	case *types.TypeParam:
		return b.unsupported(t, "type parameters are not supported"), nil

	case *types.Chan, *types.Signature:
		return b.unsupported(t, "channel and function types are not supported"), nil

	default:
		return nil, fmt.Errorf("unknown type: %T", t)
	}
}

func (b *builder) convertNamed(named *types.Named) (ir.TypeDescriptor, error) {
	obj := named.Obj()
	if obj.Pkg() == nil {
		// error is the only named type without a package.
		return b.unsupported(named, "error values are not supported"), nil
	}

	pkgPath := obj.Pkg().Path()
	switch {
	case pkgPath == "time" && obj.Name() == "Time":
		return ir.Primitive(ir.PrimitiveTime), nil
	case pkgPath == "time" && obj.Name() == "Duration":
		return ir.Primitive(ir.PrimitiveDuration), nil
	case discover.IsContext(named), discover.IsCaller(named):
		return ir.Context(types.TypeString(named, b.qualifier())), nil
	}

	if args := named.TypeArgs(); args.Len() > 0 {
		desc := &ir.GenericDescriptor{Name: obj.Name(), Package: pkgPath}
		for i := 0; i < args.Len(); i++ {
			desc.TypeArgs = append(desc.TypeArgs, types.TypeString(args.At(i), b.qualifier()))
		}
		return desc, nil
	}

	if c, ok := b.classes[named]; ok {
		return c, nil
	}
	if e, ok := b.enums[named]; ok {
		return e, nil
	}

	switch u := named.Underlying().(type) {
	case *types.Struct:
		c := &ir.ClassDescriptor{Name: obj.Name(), Package: pkgPath}
		// Registered before the fields so self-references resolve to c.
		b.classes[named] = c
		props, err := b.properties(u, nil)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", obj.Name(), err)
		}
		c.Properties = props
		return c, nil

	case *types.Basic:
		if members := enumMembers(named); len(members) > 0 {
			e := &ir.EnumDescriptor{Name: obj.Name(), Package: pkgPath, Members: members}
			b.enums[named] = e
			return e, nil
		}
		return b.convertBasic(u), nil

	case *types.Interface:
		if u.Empty() {
			return ir.Primitive(ir.PrimitiveAny), nil
		}
		return b.unsupported(named, "interface types are not supported"), nil

	default:
		return b.convertType(u)
	}
}

// properties returns the serialized fields of st. Fields of embedded
// structs without a JSON name are promoted; seen guards against embedding
// cycles through pointers.
func (b *builder) properties(st *types.Struct, seen map[*types.Named]bool) ([]ir.PropertyDescriptor, error) {
	var props []ir.PropertyDescriptor
	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)
		if field.Embedded() && discover.IsHub(field.Type()) {
			continue
		}

		name, skip := jsonName(st.Tag(i))
		if skip {
			continue
		}

		if field.Embedded() && name == "" {
			if named, inner, ok := embeddedStruct(field.Type()); ok {
				if seen[named] {
					continue
				}
				if seen == nil {
					seen = make(map[*types.Named]bool)
				}
				seen[named] = true
				promoted, err := b.properties(inner, seen)
				if err != nil {
					return nil, err
				}
				props = append(props, promoted...)
				continue
			}
		}

		if !field.Exported() {
			continue
		}
		if name == "" {
			name = field.Name()
		}

		typ, err := b.convertType(field.Type())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name(), err)
		}
		props = append(props, ir.Prop(name, typ))
	}
	return props, nil
}

func embeddedStruct(t types.Type) (*types.Named, *types.Struct, bool) {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil, nil, false
	}
	st, ok := named.Underlying().(*types.Struct)
	return named, st, ok
}

// jsonName returns the name from a json struct tag and whether the field is
// excluded with json:"-".
func jsonName(tag string) (name string, skip bool) {
	value, ok := reflect.StructTag(tag).Lookup("json")
	if !ok {
		return "", false
	}
	name, _, _ = strings.Cut(value, ",")
	if name == "-" && !strings.Contains(value, ",") {
		return "", true
	}
	return name, false
}

func isByte(t types.Type) bool {
	basic, ok := types.Unalias(t).(*types.Basic)
	return ok && basic.Kind() == types.Uint8
}

func (b *builder) convertBasic(basic *types.Basic) ir.TypeDescriptor {
	switch basic.Kind() {
	case types.Bool:
		return ir.Primitive(ir.PrimitiveBool)
	case types.String:
		return ir.Primitive(ir.PrimitiveString)
	case types.Int:
		return ir.Primitive(ir.PrimitiveInt)
	case types.Int8:
		return ir.Primitive(ir.PrimitiveInt8)
	case types.Int16:
		return ir.Primitive(ir.PrimitiveInt16)
	case types.Int32:
		return ir.Primitive(ir.PrimitiveInt32)
	case types.Int64:
		return ir.Primitive(ir.PrimitiveInt64)
	case types.Uint, types.Uintptr:
		return ir.Primitive(ir.PrimitiveUint)
	case types.Uint8:
		return ir.Primitive(ir.PrimitiveUint8)
	case types.Uint16:
		return ir.Primitive(ir.PrimitiveUint16)
	case types.Uint32:
		return ir.Primitive(ir.PrimitiveUint32)
	case types.Uint64:
		return ir.Primitive(ir.PrimitiveUint64)
	case types.Float32:
		return ir.Primitive(ir.PrimitiveFloat32)
	case types.Float64:
		return ir.Primitive(ir.PrimitiveFloat64)
	default:
		return b.unsupported(basic, "basic type has no client representation")
	}
}

type enumConst struct {
	name  string
	value constant.Value
	pos   token.Pos
}

// enumMembers returns the exported constants of type named. Numeric
// members are ordered by value, others by declaration order.
func enumMembers(named *types.Named) []string {
	scope := named.Obj().Pkg().Scope()
	var consts []enumConst
	numeric := true
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !c.Exported() || !types.Identical(c.Type(), named) {
			continue
		}
		consts = append(consts, enumConst{name: c.Name(), value: c.Val(), pos: c.Pos()})
		if k := c.Val().Kind(); k != constant.Int && k != constant.Float {
			numeric = false
		}
	}

	slices.SortStableFunc(consts, func(a, b enumConst) int {
		if numeric && !constant.Compare(a.value, token.EQL, b.value) {
			if constant.Compare(a.value, token.LSS, b.value) {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.pos, b.pos)
	})

	members := make([]string, len(consts))
	for i, c := range consts {
		members[i] = c.name
	}
	return members
}
