package codegen

import (
	"github.com/broady/hub/hubgen/ir"
	"github.com/broady/hub/hubgen/model"
)

// fakeRuntime maps neutral primitives onto a small C#-like type system.
type fakeRuntime struct{}

func (fakeRuntime) Builtin(name string) (model.Builtin, bool) {
	switch name {
	case ir.PrimitiveString:
		return model.Builtin{Type: "string"}, true
	case ir.PrimitiveBool:
		return model.Builtin{Type: "bool"}, true
	case ir.PrimitiveInt64:
		return model.Builtin{Type: "long"}, true
	case ir.PrimitiveFloat64:
		return model.Builtin{Type: "double"}, true
	case ir.PrimitiveTime:
		return model.Builtin{Type: "DateTime", Import: "System"}, true
	}
	return model.Builtin{}, false
}

func (fakeRuntime) Connection() model.Builtin {
	return model.Builtin{Type: "HubConnection", Import: "Microsoft.AspNetCore.SignalR.Client"}
}

func (fakeRuntime) Subscription() model.Builtin {
	return model.Builtin{Type: "IDisposable", Import: "System"}
}

func (fakeRuntime) Async() model.Builtin {
	return model.Builtin{Type: "Task", Import: "System.Threading.Tasks"}
}

func coordinate() *ir.ClassDescriptor {
	return ir.Class("Coordinate",
		ir.Prop("x", ir.Float64()),
		ir.Prop("y", ir.Float64()),
	)
}

func pingPong() *ir.Metadata {
	return &ir.Metadata{
		Contracts: []ir.Contract{{
			Name: "ChatHub",
			Operations: []ir.OperationDescriptor{
				ir.ServerOp("Ping",
					ir.Param("caller", ir.Context("hub.Caller")),
					ir.Param("sessionId", ir.String()),
				),
			},
		}},
		ClientAPIs: []ir.ClientAPI{{
			Name: "ChatClient",
			Operations: []ir.OperationDescriptor{
				ir.ClientOp("Pong",
					ir.Param("caller", ir.Context("hub.Caller")),
					ir.Param("message", ir.String()),
				),
			},
		}},
	}
}

func declNames(decls []model.Declaration) []string {
	var names []string
	for _, d := range decls {
		names = append(names, d.DeclName())
	}
	return names
}
