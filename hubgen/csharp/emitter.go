package csharp

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/broady/hub/hubgen/codegen"
	"github.com/broady/hub/hubgen/model"
)

// Header opens every generated file.
const Header = `//------------------------------------------------------------------------------
// <auto-generated>
//     This code was generated by hubgen.
//
//     Changes to this file may cause incorrect behavior and will be lost if
//     the code is regenerated.
// </auto-generated>
//------------------------------------------------------------------------------
`

// Emitter handles C# code emission for a proxy model.
type Emitter struct {
	indent string
}

// Emit writes the complete compilation unit for m.
func (e *Emitter) Emit(m *model.ApiModel) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("nil model")
	}
	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteString("\n")

	depth := 0
	if m.Namespace != "" {
		e.line(&buf, 0, "namespace %s", m.Namespace)
		e.line(&buf, 0, "{")
		depth = 1
	}
	for _, imp := range m.Imports {
		e.line(&buf, depth, "using %s;", imp)
	}
	if len(m.Imports) > 0 {
		buf.WriteString("\n")
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

	if m.Namespace != "" {
		e.line(&buf, 0, "}")
	}
	return buf.Bytes(), nil
}

func (e *Emitter) line(buf *bytes.Buffer, depth int, format string, args ...any) {
	for range depth {
		buf.WriteString(e.indent)
	}
	fmt.Fprintf(buf, format, args...)
	buf.WriteString("\n")
}

func (e *Emitter) emitProxy(buf *bytes.Buffer, m *model.ApiModel, depth int) error {
	conn := m.Connection
	connType, err := e.typeExpr(conn.Type)
	if err != nil {
		return fmt.Errorf("connection property: %w", err)
	}

	if err := memberNamedAsType(m.ClassName, conn.Name); err != nil {
		return err
	}
	for _, meth := range m.Methods {
		if err := memberNamedAsType(m.ClassName, meth.Name); err != nil {
			return err
		}
	}

	e.line(buf, depth, "public partial class %s", identifier(m.ClassName))
	e.line(buf, depth, "{")
	e.line(buf, depth+1, "private %s %s;", connType, conn.Field)
	buf.WriteString("\n")
	e.emitProperty(buf, conn, connType, depth+1)

	for _, meth := range m.Methods {
		buf.WriteString("\n")
		if err := e.emitMethod(buf, meth, depth+1); err != nil {
			return fmt.Errorf("method %s: %w", meth.Name, err)
		}
	}
	e.line(buf, depth, "}")
	return nil
}

func (e *Emitter) emitProperty(buf *bytes.Buffer, p model.Property, typ string, depth int) {
	e.line(buf, depth, "%s %s %s", p.Visibility, typ, identifier(p.Name))
	e.line(buf, depth, "{")
	e.line(buf, depth+1, "get")
	e.line(buf, depth+1, "{")
	e.line(buf, depth+2, "return this.%s;", p.Field)
	e.line(buf, depth+1, "}")
	e.line(buf, depth+1, "set")
	e.line(buf, depth+1, "{")
	e.line(buf, depth+2, "this.%s = value;", p.Field)
	e.line(buf, depth+1, "}")
	e.line(buf, depth, "}")
}

func (e *Emitter) emitMethod(buf *bytes.Buffer, m model.Method, depth int) error {
	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		typ, err := e.typeExpr(p.Type)
		if err != nil {
			return fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		params[i] = typ + " " + identifier(p.Name)
	}
	ret, err := e.typeExpr(m.Return)
	if err != nil {
		return fmt.Errorf("return type: %w", err)
	}

	modifier := "public "
	if m.Async {
		modifier += "async "
	}
	e.line(buf, depth, "%s%s %s(%s)", modifier, ret, identifier(m.Name), strings.Join(params, ", "))
	e.line(buf, depth, "{")

	switch body := m.Body.(type) {
	case *model.SendStatement:
		args := []string{fmt.Sprintf("%q", body.Message)}
		for _, a := range body.Args {
			args = append(args, identifier(a))
		}
		call := fmt.Sprintf("%s.InvokeAsync(%s);", identifier(body.Connection), strings.Join(args, ", "))
		if body.Await {
			e.line(buf, depth+1, "await %s", call)
		} else {
			e.line(buf, depth+1, "return %s", call)
		}
	case *model.SubscribeStatement:
		typeArgs := ""
		if len(body.TypeArgs) > 0 {
			parts := make([]string, len(body.TypeArgs))
			for i, a := range body.TypeArgs {
				if parts[i], err = e.typeExpr(a); err != nil {
					return err
				}
			}
			typeArgs = "<" + strings.Join(parts, ", ") + ">"
		}
		e.line(buf, depth+1, "return %s.On%s(%q, %s);", identifier(body.Connection), typeArgs, body.Message, identifier(body.Handler))
	default:
		return fmt.Errorf("unsupported method body %T", m.Body)
	}

	e.line(buf, depth, "}")
	return nil
}

// memberNamedAsType rejects a member that would share its enclosing type's
// name, which C# does not allow.
func memberNamedAsType(typeName, member string) error {
	if identifier(member) == identifier(typeName) {
		return codegen.Errorf(codegen.CodeDuplicateDeclaration, typeName, "member %s has the same name as its enclosing type", member)
	}
	return nil
}

func (e *Emitter) emitClass(buf *bytes.Buffer, c *model.ClassDecl, depth int) error {
	for _, p := range c.Properties {
		if err := memberNamedAsType(c.Name, p.Name); err != nil {
			return err
		}
	}
	e.line(buf, depth, "public class %s", identifier(c.Name))
	e.line(buf, depth, "{")
	types := make([]string, len(c.Properties))
	for i, p := range c.Properties {
		typ, err := e.typeExpr(p.Type)
		if err != nil {
			return fmt.Errorf("class %s property %s: %w", c.Name, p.Name, err)
		}
		types[i] = typ
		e.line(buf, depth+1, "private %s %s;", typ, p.Field)
	}
	for i, p := range c.Properties {
		buf.WriteString("\n")
		e.emitProperty(buf, p, types[i], depth+1)
	}
	e.line(buf, depth, "}")
	return nil
}

func (e *Emitter) emitEnum(buf *bytes.Buffer, enum *model.EnumDecl, depth int) {
	e.line(buf, depth, "public enum %s", identifier(enum.Name))
	e.line(buf, depth, "{")
	for _, m := range enum.Members {
		e.line(buf, depth+1, "%s,", identifier(m))
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
		return identifier(r.Name), nil
	case model.RefArray:
		if r.Elem == nil {
			return "", fmt.Errorf("array without element type")
		}
		elem, err := e.typeExpr(*r.Elem)
		if err != nil {
			return "", err
		}
		return elem + "[]", nil
	case model.RefCallback:
		if len(r.Args) == 0 {
			return "Action", nil
		}
		args := make([]string, len(r.Args))
		for i, a := range r.Args {
			typ, err := e.typeExpr(a)
			if err != nil {
				return "", err
			}
			args[i] = typ
		}
		return "Action<" + strings.Join(args, ", ") + ">", nil
	default:
		return "", fmt.Errorf("unsupported type reference kind %s", r.Kind)
	}
}
