// Package hub declares the markers a server uses to describe a hub contract
// for client proxy generation.
//
// A contract is a struct that embeds Hub. Its server-received operations are
// methods marked with a //hub:server directive that return only error:
//
//	type ChatHub struct {
//		hub.Hub
//	}
//
//	//hub:server
//	func (h *ChatHub) Ping(ctx context.Context, sessionID string) error {
//		...
//	}
//
// The operations the server invokes on connected clients are the exported
// methods of a companion type marked with //hub:client:
//
//	//hub:client
//	type ChatClient struct{}
//
//	func (ChatClient) Pong(c hub.Caller, message string) error {
//		return c.Send("Pong", message)
//	}
//
// Parameters of type Caller or context.Context describe the connection the
// call arrives on; they never appear in generated client signatures.
package hub

// Directive prefixes recognized by hubgen.
const (
	DirectiveServer = "//hub:server"
	DirectiveClient = "//hub:client"
)

// Hub marks a struct as a hub contract when embedded.
type Hub struct {
	// Clients reaches connected clients. It is set by the hosting transport.
	Clients Clients
}

// Clients selects the connected clients a message is sent to.
type Clients interface {
	// All returns a caller that broadcasts to every connected client.
	All() Caller

	// Client returns a caller for a single connection.
	Client(connectionID string) Caller
}

// Caller sends named messages to one or more connected clients.
type Caller interface {
	Send(method string, args ...any) error
}
