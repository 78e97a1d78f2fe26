package codegen

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/broady/hub/hubgen/ir"
	"github.com/broady/hub/hubgen/model"
)

func TestBuildOperation_Server(t *testing.T) {
	res := NewResolver(fakeRuntime{})
	op := ir.ServerOp("Ping",
		ir.Param("caller", ir.Context("hub.Caller")),
		ir.Param("sessionId", ir.String()),
		ir.Param("ctx", ir.Context("context.Context")),
	)

	got, err := BuildOperation(op, "HubConnection", res, NewRegistry())
	if err != nil {
		t.Fatalf("BuildOperation() error = %v", err)
	}
	want := model.Method{
		Name:   "Ping",
		Async:  true,
		Params: []model.Param{{Name: "sessionId", Type: model.BuiltinRef("string")}},
		Return: model.BuiltinRef("Task"),
		Body: &model.SendStatement{
			Connection: "HubConnection",
			Message:    "Ping",
			Args:       []string{"sessionId"},
			Await:      true,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildOperation() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildOperation_Client(t *testing.T) {
	res := NewResolver(fakeRuntime{})
	op := ir.ClientOp("pong",
		ir.Param("caller", ir.Context("hub.Caller")),
		ir.Param("message", ir.String()),
		ir.Param("at", ir.Primitive(ir.PrimitiveTime)),
	)

	got, err := BuildOperation(op, "Conn", res, NewRegistry())
	if err != nil {
		t.Fatalf("BuildOperation() error = %v", err)
	}
	args := []model.TypeRef{model.BuiltinRef("string"), model.BuiltinRef("DateTime")}
	want := model.Method{
		Name: "PongOn",
		Params: []model.Param{{
			Name: "handler",
			Type: model.TypeRef{Kind: model.RefCallback, Args: args, ArgNames: []string{"message", "at"}},
		}},
		Return: model.BuiltinRef("IDisposable"),
		Body: &model.SubscribeStatement{
			Connection: "Conn",
			Message:    "pong",
			Handler:    "handler",
			TypeArgs:   args,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildOperation() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildOperation_NoParams(t *testing.T) {
	res := NewResolver(fakeRuntime{})

	m, err := BuildOperation(ir.ServerOp("Leave", ir.Param("c", ir.Context("hub.Caller"))), "HubConnection", res, NewRegistry())
	if err != nil {
		t.Fatalf("BuildOperation(Leave) error = %v", err)
	}
	if len(m.Params) != 0 || len(m.Body.(*model.SendStatement).Args) != 0 {
		t.Errorf("Leave = %+v, want no parameters", m)
	}

	m, err = BuildOperation(ir.ClientOp("Closed"), "HubConnection", res, NewRegistry())
	if err != nil {
		t.Fatalf("BuildOperation(Closed) error = %v", err)
	}
	if len(m.Params) != 1 || len(m.Params[0].Type.Args) != 0 {
		t.Errorf("ClosedOn = %+v, want a handler with no arguments", m)
	}
}

func TestBuildOperation_UnnamedParams(t *testing.T) {
	op := ir.ServerOp("Move",
		ir.Param("", ir.Context("hub.Caller")),
		ir.Param("", ir.Float64()),
		ir.Param("_", ir.Float64()),
	)
	m, err := BuildOperation(op, "HubConnection", NewResolver(fakeRuntime{}), NewRegistry())
	if err != nil {
		t.Fatalf("BuildOperation() error = %v", err)
	}
	if got := m.Body.(*model.SendStatement).Args; !cmp.Equal(got, []string{"arg1", "arg2"}) {
		t.Errorf("args = %v, want [arg1 arg2]", got)
	}
}

func TestBuildOperation_InvalidShape(t *testing.T) {
	op := ir.ServerOp("Count")
	op.AsyncVoid = false
	op.Result = "(int, error)"

	_, err := BuildOperation(op, "HubConnection", NewResolver(fakeRuntime{}), NewRegistry())
	if !errors.Is(err, ErrInvalidOperationShape) {
		t.Fatalf("BuildOperation() error = %v, want invalid operation shape", err)
	}
	var ge *Error
	if !errors.As(err, &ge) || ge.Subject != "Count" {
		t.Errorf("error subject = %v, want Count", ge)
	}
	if got := err.Error(); got != "invalid_operation_shape: Count: server operations must complete without a value, got (int, error)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestBuildOperation_ParamError(t *testing.T) {
	op := ir.ServerOp("Load", ir.Param("page", &ir.GenericDescriptor{Name: "Page", TypeArgs: []string{"User"}}))
	_, err := BuildOperation(op, "HubConnection", NewResolver(fakeRuntime{}), NewRegistry())
	if !errors.Is(err, ErrUnsupportedTypeKind) {
		t.Errorf("BuildOperation() error = %v, want unsupported type kind", err)
	}
}
