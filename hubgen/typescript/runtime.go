package typescript

import (
	"github.com/broady/hub/hubgen/codegen"
	"github.com/broady/hub/hubgen/ir"
	"github.com/broady/hub/hubgen/model"
)

// DefaultRuntimeModule is the module the connection types are imported from
// when Config.RuntimeModule is empty.
const DefaultRuntimeModule = "./connection"

// Runtime maps neutral primitives to TypeScript types. The connection and
// subscription types are imported from Module.
type Runtime struct {
	Module string

	// UnknownType is the type for any. Defaults to "unknown".
	UnknownType string
}

var builtins = map[string]string{
	ir.PrimitiveBool:     "boolean",
	ir.PrimitiveInt:      "number",
	ir.PrimitiveInt8:     "number",
	ir.PrimitiveInt16:    "number",
	ir.PrimitiveInt32:    "number",
	ir.PrimitiveInt64:    "number",
	ir.PrimitiveUint:     "number",
	ir.PrimitiveUint8:    "number",
	ir.PrimitiveUint16:   "number",
	ir.PrimitiveUint32:   "number",
	ir.PrimitiveUint64:   "number",
	ir.PrimitiveFloat32:  "number",
	ir.PrimitiveFloat64:  "number",
	ir.PrimitiveString:   "string",
	ir.PrimitiveBytes:    "string", // base64
	ir.PrimitiveTime:     "string", // RFC 3339
	ir.PrimitiveDuration: "number", // nanoseconds
}

// Builtin implements codegen.Runtime.
func (r Runtime) Builtin(primitive string) (model.Builtin, bool) {
	if primitive == ir.PrimitiveAny {
		if r.UnknownType != "" {
			return model.Builtin{Type: r.UnknownType}, true
		}
		return model.Builtin{Type: "unknown"}, true
	}
	t, ok := builtins[primitive]
	return model.Builtin{Type: t}, ok
}

// Connection implements codegen.Runtime.
func (r Runtime) Connection() model.Builtin {
	return model.Builtin{Type: "HubConnection", Import: r.module()}
}

// Subscription implements codegen.Runtime.
func (r Runtime) Subscription() model.Builtin {
	return model.Builtin{Type: "Disposable", Import: r.module()}
}

// Async implements codegen.Runtime.
func (r Runtime) Async() model.Builtin {
	return model.Builtin{Type: "Promise<void>"}
}

func (r Runtime) module() string {
	if r.Module == "" {
		return DefaultRuntimeModule
	}
	return r.Module
}

// runtimeImports maps the runtime type names that need an import to their
// module.
func runtimeImports(rt codegen.Runtime) map[string]string {
	out := map[string]string{}
	for _, b := range []model.Builtin{rt.Connection(), rt.Subscription(), rt.Async()} {
		if b.Import != "" {
			out[b.Type] = b.Import
		}
	}
	return out
}
