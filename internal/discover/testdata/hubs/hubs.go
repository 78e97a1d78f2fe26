package hubs

import (
	"context"

	"github.com/broady/hub"
)

type Notifier struct{}

// ChatHub is declared after Notifier and before AdminHub.
type ChatHub struct {
	hub.Hub
	rooms map[string]int
}

type AdminHub struct {
	*hub.Hub
}

// Named is a struct with a field called Hub, not an embedding.
type Named struct {
	Hub hub.Hub
}

type Alias = ChatHub

type Handler func(ctx context.Context) error

func (n Notifier) Notify(c hub.Caller, msg string) error {
	return c.Send("Notify", msg)
}
