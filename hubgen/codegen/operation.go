package codegen

import (
	"fmt"

	"github.com/broady/hub/hubgen/ir"
	"github.com/broady/hub/hubgen/model"
)

// HandlerParam is the parameter name of generated subscription methods.
const HandlerParam = "handler"

// ClientMethodSuffix is appended to client-invoked operation names to form
// their subscription method names.
const ClientMethodSuffix = "On"

// BuildOperation returns the proxy method for op. connection is the name of
// the connection accessor the method body calls into.
// Connection-context parameters are dropped from the generated signature.
func BuildOperation(op ir.OperationDescriptor, connection string, res *Resolver, reg *Registry) (model.Method, error) {
	switch op.Direction {
	case ir.ServerReceived:
		return buildServerOperation(op, connection, res, reg)
	case ir.ClientInvoked:
		return buildClientOperation(op, connection, res, reg)
	default:
		return model.Method{}, Errorf(CodeInvalidOperationShape, op.Name, "unknown direction %v", op.Direction)
	}
}

func buildServerOperation(op ir.OperationDescriptor, connection string, res *Resolver, reg *Registry) (model.Method, error) {
	if !op.AsyncVoid {
		result := op.Result
		if result == "" {
			result = "a value"
		}
		return model.Method{}, Errorf(CodeInvalidOperationShape, op.Name,
			"server operations must complete without a value, got %s", result)
	}
	params, err := buildParams(op, res, reg)
	if err != nil {
		return model.Method{}, err
	}
	args := make([]string, len(params))
	for i, p := range params {
		args[i] = p.Name
	}
	return model.Method{
		Name:   op.Name,
		Async:  true,
		Params: params,
		Return: res.Require(res.Runtime().Async()),
		Body: &model.SendStatement{
			Connection: connection,
			Message:    op.Name,
			Args:       args,
			Await:      true,
		},
	}, nil
}

func buildClientOperation(op ir.OperationDescriptor, connection string, res *Resolver, reg *Registry) (model.Method, error) {
	params, err := buildParams(op, res, reg)
	if err != nil {
		return model.Method{}, err
	}
	handler := model.TypeRef{Kind: model.RefCallback}
	for _, p := range params {
		handler.Args = append(handler.Args, p.Type)
		handler.ArgNames = append(handler.ArgNames, p.Name)
	}
	return model.Method{
		Name:   UpperFirst(op.Name) + ClientMethodSuffix,
		Params: []model.Param{{Name: HandlerParam, Type: handler}},
		Return: res.Require(res.Runtime().Subscription()),
		Body: &model.SubscribeStatement{
			Connection: connection,
			Message:    op.Name,
			Handler:    HandlerParam,
			TypeArgs:   handler.Args,
		},
	}, nil
}

func buildParams(op ir.OperationDescriptor, res *Resolver, reg *Registry) ([]model.Param, error) {
	var params []model.Param
	for i, p := range op.Parameters {
		if _, ok := p.Type.(*ir.ContextDescriptor); ok {
			continue
		}
		name := p.Name
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}
		ref, err := res.Resolve(p.Type, reg)
		if err != nil {
			return nil, fmt.Errorf("operation %s parameter %s: %w", op.Name, name, err)
		}
		params = append(params, model.Param{Name: name, Type: ref})
	}
	return params, nil
}
