package typescript

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/broady/hub/hubgen/model"
)

// Header is the first line of every generated file.
const Header = "// Code generated by hubgen. DO NOT EDIT."

// Emitter handles TypeScript code emission for a proxy model.
type Emitter struct {
	indent string

	// imports maps runtime type names to the module they are imported from.
	imports map[string]string
}

// Emit writes the complete module for m.
func (e *Emitter) Emit(m *model.ApiModel) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("nil model")
	}
	var buf bytes.Buffer

	buf.WriteString(Header)
	buf.WriteString("\n\n")

	if groups := e.imported(m); len(groups) > 0 {
		for _, g := range groups {
			fmt.Fprintf(&buf, "import type { %s } from %q;\n", strings.Join(g.names, ", "), g.module)
		}
		buf.WriteString("\n")
	}

	ns := m.Namespace
	depth := 0
	if ns != "" {
		fmt.Fprintf(&buf, "export namespace %s {\n", ns)
		depth = 1
	}

	if err := e.emitProxy(&buf, m, depth); err != nil {
		return nil, err
	}
	for _, d := range m.Declarations {
		switch d := d.(type) {
		case *model.ClassDecl:
			buf.WriteString("\n")
			if err := e.emitClass(&buf, d, depth); err != nil {
				return nil, err
			}
		case *model.EnumDecl:
			buf.WriteString("\n")
			e.emitEnum(&buf, d, depth)
		case *model.ArrayDecl:
			// Arrays are written inline at each use.
		default:
			return nil, fmt.Errorf("unsupported declaration %T", d)
		}
	}

	if ns != "" {
		buf.WriteString("}\n")
	}
	return buf.Bytes(), nil
}

type importGroup struct {
	module string
	names  []string
}

// imported returns the runtime type names the model refers to, grouped by
// module. Modules and the names within each are sorted.
func (e *Emitter) imported(m *model.ApiModel) []importGroup {
	byModule := map[string]map[string]bool{}
	var visit func(r model.TypeRef)
	visit = func(r model.TypeRef) {
		switch r.Kind {
		case model.RefBuiltin:
			if mod, ok := e.imports[r.Name]; ok {
				if byModule[mod] == nil {
					byModule[mod] = map[string]bool{}
				}
				byModule[mod][r.Name] = true
			}
		case model.RefArray:
			if r.Elem != nil {
				visit(*r.Elem)
			}
		case model.RefCallback:
			for _, a := range r.Args {
				visit(a)
			}
		}
	}
	visit(m.Connection.Type)
	for _, meth := range m.Methods {
		visit(meth.Return)
		for _, p := range meth.Params {
			visit(p.Type)
		}
	}
	groups := make([]importGroup, 0, len(byModule))
	for mod, names := range byModule {
		g := importGroup{module: mod}
		for n := range names {
			g.names = append(g.names, n)
		}
		slices.Sort(g.names)
		groups = append(groups, g)
	}
	slices.SortFunc(groups, func(a, b importGroup) int { return strings.Compare(a.module, b.module) })
	return groups
}

func (e *Emitter) line(buf *bytes.Buffer, depth int, format string, args ...any) {
	for range depth {
		buf.WriteString(e.indent)
	}
	fmt.Fprintf(buf, format, args...)
	buf.WriteString("\n")
}

func (e *Emitter) emitProxy(buf *bytes.Buffer, m *model.ApiModel, depth int) error {
	name := sanitizeIdentifier(m.ClassName)
	conn := m.Connection
	connType, err := e.typeExpr(conn.Type)
	if err != nil {
		return fmt.Errorf("connection property: %w", err)
	}

	e.line(buf, depth, "export class %s {", name)
	e.line(buf, depth+1, "private %s: %s;", conn.Field, connType)
	buf.WriteString("\n")
	e.line(buf, depth+1, "public constructor(connection: %s) {", connType)
	e.line(buf, depth+2, "this.%s = connection;", conn.Field)
	e.line(buf, depth+1, "}")
	buf.WriteString("\n")
	e.emitAccessors(buf, conn, connType, depth+1)

	for _, meth := range m.Methods {
		buf.WriteString("\n")
		if err := e.emitMethod(buf, meth, depth+1); err != nil {
			return fmt.Errorf("method %s: %w", meth.Name, err)
		}
	}
	e.line(buf, depth, "}")
	return nil
}

func (e *Emitter) emitAccessors(buf *bytes.Buffer, p model.Property, typ string, depth int) {
	vis := p.Visibility.String()
	e.line(buf, depth, "%s get %s(): %s {", vis, p.Name, typ)
	e.line(buf, depth+1, "return this.%s;", p.Field)
	e.line(buf, depth, "}")
	buf.WriteString("\n")
	e.line(buf, depth, "%s set %s(value: %s) {", vis, p.Name, typ)
	e.line(buf, depth+1, "this.%s = value;", p.Field)
	e.line(buf, depth, "}")
}

func (e *Emitter) emitMethod(buf *bytes.Buffer, m model.Method, depth int) error {
	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		typ, err := e.typeExpr(p.Type)
		if err != nil {
			return fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		params[i] = sanitizeIdentifier(p.Name) + ": " + typ
	}
	ret, err := e.typeExpr(m.Return)
	if err != nil {
		return fmt.Errorf("return type: %w", err)
	}

	modifier := "public "
	if m.Async {
		modifier += "async "
	}
	e.line(buf, depth, "%s%s(%s): %s {", modifier, m.Name, strings.Join(params, ", "), ret)

	switch body := m.Body.(type) {
	case *model.SendStatement:
		args := []string{fmt.Sprintf("%q", body.Message)}
		for _, a := range body.Args {
			args = append(args, sanitizeIdentifier(a))
		}
		call := fmt.Sprintf("this.%s.invoke(%s);", body.Connection, strings.Join(args, ", "))
		if body.Await {
			e.line(buf, depth+1, "await %s", call)
		} else {
			e.line(buf, depth+1, "return %s", call)
		}
	case *model.SubscribeStatement:
		e.line(buf, depth+1, "return this.%s.on(%q, %s);", body.Connection, body.Message, sanitizeIdentifier(body.Handler))
	default:
		return fmt.Errorf("unsupported method body %T", m.Body)
	}

	e.line(buf, depth, "}")
	return nil
}

func (e *Emitter) emitClass(buf *bytes.Buffer, c *model.ClassDecl, depth int) error {
	e.line(buf, depth, "export class %s {", sanitizeIdentifier(c.Name))
	types := make([]string, len(c.Properties))
	for i, p := range c.Properties {
		typ, err := e.typeExpr(p.Type)
		if err != nil {
			return fmt.Errorf("class %s property %s: %w", c.Name, p.Name, err)
		}
		types[i] = typ
		e.line(buf, depth+1, "private %s!: %s;", p.Field, typ)
	}
	for i, p := range c.Properties {
		buf.WriteString("\n")
		e.emitAccessors(buf, p, types[i], depth+1)
	}
	e.line(buf, depth, "}")
	return nil
}

func (e *Emitter) emitEnum(buf *bytes.Buffer, enum *model.EnumDecl, depth int) {
	e.line(buf, depth, "export enum %s {", sanitizeIdentifier(enum.Name))
	for _, m := range enum.Members {
		e.line(buf, depth+1, "%s,", sanitizeIdentifier(m))
	}
	e.line(buf, depth, "}")
}

// typeExpr renders a type reference.
func (e *Emitter) typeExpr(r model.TypeRef) (string, error) {
	switch r.Kind {
	case model.RefBuiltin:
		if r.Name == "" {
			return "", fmt.Errorf("empty builtin type")
		}
		return r.Name, nil
	case model.RefDeclared:
		return sanitizeIdentifier(r.Name), nil
	case model.RefArray:
		if r.Elem == nil {
			return "", fmt.Errorf("array without element type")
		}
		elem, err := e.typeExpr(*r.Elem)
		if err != nil {
			return "", err
		}
		if r.Elem.Kind == model.RefCallback {
			elem = "(" + elem + ")"
		}
		return elem + "[]", nil
	case model.RefCallback:
		args := make([]string, len(r.Args))
		for i, a := range r.Args {
			typ, err := e.typeExpr(a)
			if err != nil {
				return "", err
			}
			name := fmt.Sprintf("arg%d", i)
			if i < len(r.ArgNames) && r.ArgNames[i] != "" {
				name = sanitizeIdentifier(r.ArgNames[i])
			}
			args[i] = name + ": " + typ
		}
		return "(" + strings.Join(args, ", ") + ") => void", nil
	default:
		return "", fmt.Errorf("unsupported type reference kind %s", r.Kind)
	}
}
