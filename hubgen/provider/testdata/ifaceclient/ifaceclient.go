// Package ifaceclient declares its client API as an interface.
package ifaceclient

import (
	"context"

	"github.com/broady/hub"
)

type EchoHub struct {
	hub.Hub
}

//hub:server
func (h *EchoHub) Echo(ctx context.Context, text string) error {
	return nil
}

//hub:client
type EchoClient interface {
	Echoed(c hub.Caller, text string) error
	Notifier
	closed() error
}

// Notifier is embedded into EchoClient.
type Notifier interface {
	Notify(c hub.Caller, level int) error
}
