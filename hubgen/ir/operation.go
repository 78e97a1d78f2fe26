package ir

// Direction says which side of the connection receives an operation.
type Direction int

const (
	// ServerReceived operations are invoked by the client and handled by the server.
	ServerReceived Direction = iota
	// ClientInvoked operations are invoked by the server on connected clients.
	ClientInvoked
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case ServerReceived:
		return "ServerReceived"
	case ClientInvoked:
		return "ClientInvoked"
	default:
		return "Unknown"
	}
}

// OperationDescriptor represents a single hub operation.
type OperationDescriptor struct {
	// Name is the operation name. It is also the message name on the wire.
	Name string

	Direction Direction

	// Parameters in declaration order, including connection-context markers.
	Parameters []ParameterDescriptor

	// AsyncVoid reports whether the operation completes without a value.
	// For Go contracts this means the method returns exactly error.
	AsyncVoid bool

	// Result is the declared result list as written in source, e.g. "(int, error)".
	// It is only used in error messages.
	Result string

	// Source locates the method declaration, if known.
	Source Source
}

// ParameterDescriptor is a named operation parameter.
type ParameterDescriptor struct {
	Name string
	Type TypeDescriptor
}

// Param returns a ParameterDescriptor.
func Param(name string, typ TypeDescriptor) ParameterDescriptor {
	return ParameterDescriptor{Name: name, Type: typ}
}

// ServerOp returns a well-formed server-received operation.
func ServerOp(name string, params ...ParameterDescriptor) OperationDescriptor {
	return OperationDescriptor{
		Name:       name,
		Direction:  ServerReceived,
		Parameters: params,
		AsyncVoid:  true,
		Result:     "error",
	}
}

// ClientOp returns a client-invoked operation.
func ClientOp(name string, params ...ParameterDescriptor) OperationDescriptor {
	return OperationDescriptor{
		Name:       name,
		Direction:  ClientInvoked,
		Parameters: params,
		AsyncVoid:  true,
		Result:     "error",
	}
}
