// Package typescript emits hub client proxies as TypeScript source.
package typescript

import (
	"regexp"
	"strings"

	"github.com/broady/hub/hubgen/codegen"
	"github.com/broady/hub/hubgen/model"
	"github.com/broady/hub/internal/declscan"
)

// Name identifies the TypeScript target.
const Name = "typescript"

// Config contains TypeScript-specific options.
type Config struct {
	// IndentSize is the number of spaces per indent level. Defaults to 4.
	IndentSize int

	// RuntimeModule is the module HubConnection and Disposable are imported from.
	RuntimeModule string

	// UnknownType specifies the type for Go's any. Defaults to "unknown".
	UnknownType string
}

// Target generates TypeScript proxies.
type Target struct {
	cfg Config
}

// New returns a TypeScript target.
func New(cfg Config) *Target {
	if cfg.IndentSize <= 0 {
		cfg.IndentSize = 4
	}
	if cfg.RuntimeModule == "" {
		cfg.RuntimeModule = DefaultRuntimeModule
	}
	return &Target{cfg: cfg}
}

// Name returns "typescript".
func (t *Target) Name() string { return Name }

// Runtime returns the TypeScript type mapping.
func (t *Target) Runtime() codegen.Runtime {
	return Runtime{Module: t.cfg.RuntimeModule, UnknownType: t.cfg.UnknownType}
}

// Emit serializes the model as a TypeScript module.
func (t *Target) Emit(m *model.ApiModel) ([]byte, error) {
	e := &Emitter{
		indent:  strings.Repeat(" ", t.cfg.IndentSize),
		imports: runtimeImports(t.Runtime()),
	}
	return e.Emit(m)
}

var scanner = &declscan.Scanner{
	Namespace: `\bnamespace\s+%s`,
	Decl:      regexp.MustCompile(`\b(?:class|enum|interface|type)\s+([A-Za-z_$][\w$]*)`),
}

// DeclaredNames returns the type names declared inside namespace in
// previously generated or hand-written TypeScript source.
func (t *Target) DeclaredNames(src []byte, namespace string) []string {
	return scanner.Names(src, namespace)
}
