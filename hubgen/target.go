package hubgen

import (
	"github.com/broady/hub/hubgen/codegen"
	"github.com/broady/hub/hubgen/model"
)

// Target is an output language for generated proxies.
type Target interface {
	// Name identifies the target in configuration.
	Name() string

	// Runtime maps primitives and connection types to the target language.
	Runtime() codegen.Runtime

	// Emit serializes a proxy model to source text.
	Emit(m *model.ApiModel) ([]byte, error)

	// DeclaredNames returns the type names declared inside namespace in an
	// existing source file of this language.
	DeclaredNames(src []byte, namespace string) []string
}
