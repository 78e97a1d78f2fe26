// Package directive parses hub directives from Go source files.
//
// Directives are line comments in the form:
//
//	//hub:server
//	//hub:client
//
// The server directive marks a method of a hub contract as an operation
// clients may invoke. The client directive marks a type whose exported
// methods describe the operations the server invokes on clients.
package directive

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

// Prefix starts every hub directive.
const Prefix = "//hub:"

// Directive represents a parsed hub directive.
type Directive struct {
	Kind Kind           // server or client
	Recv string         // receiver type name of a server method
	Name string         // method name (server) or type name (client)
	Pos  token.Position // source location of the directive
}

// Kind represents the type of directive.
type Kind string

const (
	KindServer Kind = "server"
	KindClient Kind = "client"
)

// Result contains all directives found in a package, in source order.
type Result struct {
	// Server contains all //hub:server directives.
	Server []Directive

	// Client contains all //hub:client directives.
	Client []Directive
}

// ServerMethods returns the server directives attached to methods of recv.
func (r *Result) ServerMethods(recv string) []Directive {
	var out []Directive
	for _, d := range r.Server {
		if d.Recv == recv {
			out = append(out, d)
		}
	}
	return out
}

// ParseFiles extracts directives from parsed files. Files must be parsed
// with comments.
//
// Returns an error if:
//   - A directive name is unknown
//   - //hub:server is not immediately followed by a method declaration
//   - //hub:client is not immediately followed by a type declaration
func ParseFiles(fset *token.FileSet, files []*ast.File) (*Result, error) {
	result := &Result{}
	for _, f := range files {
		directives, err := parseFile(fset, f)
		if err != nil {
			return nil, err
		}
		for _, d := range directives {
			switch d.Kind {
			case KindServer:
				result.Server = append(result.Server, d)
			case KindClient:
				result.Client = append(result.Client, d)
			}
		}
	}
	return result, nil
}

type pending struct {
	kind Kind
	pos  token.Position
}

// parseFile extracts directives from a single file.
func parseFile(fset *token.FileSet, f *ast.File) ([]Directive, error) {
	// Keyed by the end of the comment group so the group can be matched
	// to the declaration it documents.
	commentToDirective := make(map[token.Pos]pending)

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if !strings.HasPrefix(c.Text, Prefix) {
				continue
			}
			parts := strings.Fields(strings.TrimPrefix(c.Text, Prefix))
			if len(parts) == 0 {
				continue
			}

			pos := fset.Position(c.Pos())
			switch Kind(parts[0]) {
			case KindServer, KindClient:
				if len(parts) > 1 {
					return nil, fmt.Errorf("%s: %s%s takes no arguments", pos, Prefix, parts[0])
				}
				commentToDirective[cg.End()] = pending{kind: Kind(parts[0]), pos: pos}
			default:
				return nil, fmt.Errorf("%s: unknown directive %s%s", pos, Prefix, parts[0])
			}
		}
	}

	var directives []Directive
	match := func(doc *ast.CommentGroup, want Kind, recv, name string) error {
		if doc == nil {
			return nil
		}
		p, ok := commentToDirective[doc.End()]
		if !ok {
			return nil
		}
		if p.kind != want {
			return fmt.Errorf("%s: %s%s cannot be used on %s", p.pos, Prefix, p.kind, name)
		}
		directives = append(directives, Directive{Kind: p.kind, Recv: recv, Name: name, Pos: p.pos})
		delete(commentToDirective, doc.End())
		return nil
	}

	for _, decl := range f.Decls {
		switch decl := decl.(type) {
		case *ast.FuncDecl:
			if decl.Recv == nil || len(decl.Recv.List) == 0 {
				if err := match(decl.Doc, "", "", decl.Name.Name); err != nil {
					return nil, err
				}
				continue
			}
			if err := match(decl.Doc, KindServer, ReceiverName(decl.Recv.List[0].Type), decl.Name.Name); err != nil {
				return nil, err
			}
		case *ast.GenDecl:
			if decl.Tok != token.TYPE {
				continue
			}
			for _, spec := range decl.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(decl.Specs) == 1 {
					doc = decl.Doc
				}
				if err := match(doc, KindClient, "", ts.Name.Name); err != nil {
					return nil, err
				}
			}
		}
	}

	// Check for unmatched directives
	for _, p := range commentToDirective {
		if p.kind == KindServer {
			return nil, fmt.Errorf("%s: %s%s directive must be followed by a method declaration", p.pos, Prefix, p.kind)
		}
		return nil, fmt.Errorf("%s: %s%s directive must be followed by a type declaration", p.pos, Prefix, p.kind)
	}

	return directives, nil
}

// ReceiverName returns the base type name of a method receiver expression.
func ReceiverName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}
