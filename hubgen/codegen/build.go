package codegen

import (
	"fmt"

	"github.com/broady/hub/hubgen/ir"
	"github.com/broady/hub/hubgen/model"
)

// DefaultConnectionProperty is the name of the connection accessor when
// Options.ConnectionProperty is empty.
const DefaultConnectionProperty = "HubConnection"

// Options configures Build.
type Options struct {
	// Namespace encloses the generated proxy and its declarations.
	Namespace string

	// ClassName is the name of the generated proxy class.
	ClassName string

	// ConnectionProperty names the connection accessor. Defaults to HubConnection.
	ConnectionProperty string

	// Contract selects a contract by name. It may be empty when the metadata
	// holds exactly one contract.
	Contract string

	// ClientAPI selects a client API by name. It may be empty when the
	// metadata holds exactly one client API.
	ClientAPI string
}

// Build produces the proxy model for one contract and its client API.
// reg carries names declared by earlier output; Build declares new types
// into it. No model is returned on error.
func Build(md *ir.Metadata, opts Options, rt Runtime, reg *Registry) (*model.ApiModel, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	contract, err := selectContract(md, opts.Contract)
	if err != nil {
		return nil, err
	}
	client, err := selectClientAPI(md, opts.ClientAPI)
	if err != nil {
		return nil, err
	}

	res := NewResolver(rt)
	connName := opts.ConnectionProperty
	if connName == "" {
		connName = DefaultConnectionProperty
	}
	conn, err := BuildProperty(connName, res.Require(rt.Connection()), model.Protected)
	if err != nil {
		return nil, fmt.Errorf("connection property: %w", err)
	}

	m := &model.ApiModel{
		Namespace:  opts.Namespace,
		ClassName:  opts.ClassName,
		Connection: conn,
	}
	seen := map[string]bool{conn.Name: true}

	ops := make([]ir.OperationDescriptor, 0, len(contract.Operations)+len(client.Operations))
	for _, op := range contract.Operations {
		op.Direction = ir.ServerReceived
		ops = append(ops, op)
	}
	for _, op := range client.Operations {
		op.Direction = ir.ClientInvoked
		ops = append(ops, op)
	}
	for _, op := range ops {
		method, err := BuildOperation(op, conn.Name, res, reg)
		if err != nil {
			return nil, err
		}
		if seen[method.Name] {
			return nil, Errorf(CodeInvalidOperationShape, op.Name, "generated member %s is already defined", method.Name)
		}
		seen[method.Name] = true
		m.Methods = append(m.Methods, method)
	}

	m.Declarations = reg.Declarations()
	m.Imports = res.Imports()
	return m, nil
}

func selectContract(md *ir.Metadata, name string) (*ir.Contract, error) {
	if md == nil || len(md.Contracts) == 0 {
		return nil, Errorf(CodeContractNotFound, name, "metadata contains no hub contract")
	}
	if name != "" {
		if c := md.FindContract(name); c != nil {
			return c, nil
		}
		return nil, Errorf(CodeContractNotFound, name, "no hub contract with this name")
	}
	if len(md.Contracts) > 1 {
		return nil, Errorf(CodeAmbiguousMetadata, "", "%d hub contracts found, select one by name", len(md.Contracts))
	}
	return &md.Contracts[0], nil
}

func selectClientAPI(md *ir.Metadata, name string) (*ir.ClientAPI, error) {
	if len(md.ClientAPIs) == 0 {
		return nil, Errorf(CodeClientAPINotFound, name, "metadata contains no client API")
	}
	if name != "" {
		if c := md.FindClientAPI(name); c != nil {
			return c, nil
		}
		return nil, Errorf(CodeClientAPINotFound, name, "no client API with this name")
	}
	if len(md.ClientAPIs) > 1 {
		return nil, Errorf(CodeAmbiguousMetadata, "", "%d client APIs found, select one by name", len(md.ClientAPIs))
	}
	return &md.ClientAPIs[0], nil
}
