package model

// Param is a method parameter.
type Param struct {
	Name string
	Type TypeRef
}

// Statement is the body of a generated method.
type Statement interface {
	sealed()
}

// SendStatement forwards the call to the connection's invoke primitive.
type SendStatement struct {
	// Connection is the name of the connection accessor.
	Connection string

	// Message is the operation name sent on the wire.
	Message string

	// Args are the parameter names in order.
	Args []string

	// Await reports whether the send completes before the method returns.
	Await bool
}

func (*SendStatement) sealed() {}

// SubscribeStatement registers a handler with the connection and returns
// the registration handle.
type SubscribeStatement struct {
	Connection string
	Message    string

	// Handler is the parameter name of the callback.
	Handler string

	// TypeArgs are the handler argument types, for targets that need them
	// spelled out at the registration call.
	TypeArgs []TypeRef
}

func (*SubscribeStatement) sealed() {}

// Method is a generated proxy method.
type Method struct {
	Name   string
	Async  bool
	Params []Param
	Return TypeRef
	Body   Statement
}

// ApiModel is the complete description of one generated proxy.
type ApiModel struct {
	Namespace string
	ClassName string

	// Imports lists the namespaces or modules the output requires, sorted and unique.
	Imports []string

	// Connection is the protected accessor for the externally supplied connection.
	Connection Property

	// Methods holds server-received operations followed by client-invoked
	// operations, each in discovery order.
	Methods []Method

	// Declarations holds types declared in this pass in first-encountered order.
	Declarations []Declaration
}

// ConnectionPropertyName returns the name of the connection accessor.
func (m *ApiModel) ConnectionPropertyName() string {
	return m.Connection.Name
}

// FindDeclaration looks up a declaration by name. Returns nil if not found.
func (m *ApiModel) FindDeclaration(name string) Declaration {
	for _, d := range m.Declarations {
		if d.DeclName() == name {
			return d
		}
	}
	return nil
}

// FindMethod looks up a method by name. Returns nil if not found.
func (m *ApiModel) FindMethod(name string) *Method {
	for i := range m.Methods {
		if m.Methods[i].Name == name {
			return &m.Methods[i]
		}
	}
	return nil
}
