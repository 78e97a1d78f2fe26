package csharp

import (
	"github.com/broady/hub/hubgen/ir"
	"github.com/broady/hub/hubgen/model"
)

// Namespaces the generated proxy depends on.
const (
	NamespaceSystem        = "System"
	NamespaceTasks         = "System.Threading.Tasks"
	NamespaceSignalRClient = "Microsoft.AspNetCore.SignalR.Client"
)

// Runtime maps neutral primitives to .NET types.
type Runtime struct{}

var builtins = map[string]model.Builtin{
	ir.PrimitiveBool:     {Type: "bool"},
	ir.PrimitiveInt:      {Type: "long"},
	ir.PrimitiveInt8:     {Type: "sbyte"},
	ir.PrimitiveInt16:    {Type: "short"},
	ir.PrimitiveInt32:    {Type: "int"},
	ir.PrimitiveInt64:    {Type: "long"},
	ir.PrimitiveUint:     {Type: "ulong"},
	ir.PrimitiveUint8:    {Type: "byte"},
	ir.PrimitiveUint16:   {Type: "ushort"},
	ir.PrimitiveUint32:   {Type: "uint"},
	ir.PrimitiveUint64:   {Type: "ulong"},
	ir.PrimitiveFloat32:  {Type: "float"},
	ir.PrimitiveFloat64:  {Type: "double"},
	ir.PrimitiveString:   {Type: "string"},
	ir.PrimitiveBytes:    {Type: "byte[]"},
	ir.PrimitiveTime:     {Type: "DateTime", Import: NamespaceSystem},
	ir.PrimitiveDuration: {Type: "TimeSpan", Import: NamespaceSystem},
	ir.PrimitiveAny:      {Type: "object"},
}

// Builtin implements codegen.Runtime.
func (Runtime) Builtin(primitive string) (model.Builtin, bool) {
	b, ok := builtins[primitive]
	return b, ok
}

// Connection implements codegen.Runtime.
func (Runtime) Connection() model.Builtin {
	return model.Builtin{Type: "HubConnection", Import: NamespaceSignalRClient}
}

// Subscription implements codegen.Runtime.
func (Runtime) Subscription() model.Builtin {
	return model.Builtin{Type: "IDisposable", Import: NamespaceSystem}
}

// Async implements codegen.Runtime.
func (Runtime) Async() model.Builtin {
	return model.Builtin{Type: "Task", Import: NamespaceTasks}
}
