// Package csharp emits hub client proxies as C# source for the SignalR
// .NET client.
package csharp

import (
	"regexp"
	"strings"

	"github.com/broady/hub/hubgen/codegen"
	"github.com/broady/hub/hubgen/model"
	"github.com/broady/hub/internal/declscan"
)

// Name identifies the C# target.
const Name = "csharp"

// Config contains C#-specific options.
type Config struct {
	// IndentSize is the number of spaces per indent level. Defaults to 4.
	IndentSize int
}

// Target generates C# proxies.
type Target struct {
	cfg Config
}

// New returns a C# target.
func New(cfg Config) *Target {
	if cfg.IndentSize <= 0 {
		cfg.IndentSize = 4
	}
	return &Target{cfg: cfg}
}

// Name returns "csharp".
func (t *Target) Name() string { return Name }

// Runtime returns the .NET type mapping.
func (t *Target) Runtime() codegen.Runtime { return Runtime{} }

// Emit serializes the model as a C# compilation unit.
func (t *Target) Emit(m *model.ApiModel) ([]byte, error) {
	e := &Emitter{indent: strings.Repeat(" ", t.cfg.IndentSize)}
	return e.Emit(m)
}

var scanner = &declscan.Scanner{
	Namespace: `\bnamespace\s+%s`,
	Decl:      regexp.MustCompile(`\b(?:class|enum|interface|struct|record)\s+@?([A-Za-z_]\w*)`),
}

// DeclaredNames returns the type names declared inside namespace in
// previously generated or hand-written C# source.
func (t *Target) DeclaredNames(src []byte, namespace string) []string {
	return scanner.Names(src, namespace)
}
