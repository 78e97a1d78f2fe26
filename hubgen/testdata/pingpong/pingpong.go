package pingpong

import (
	"context"

	"github.com/broady/hub"
)

type PingHub struct {
	hub.Hub
}

//hub:server
func (h *PingHub) Ping(ctx context.Context, sessionID string) error {
	return h.Clients.All().Send("Pong", sessionID)
}

//hub:server
func (h *PingHub) Join(ctx context.Context, user User) error {
	return nil
}

//hub:client
type PingClient struct{}

func (PingClient) Pong(c hub.Caller, message string) error {
	return c.Send("Pong", message)
}

type User struct {
	Name  string `json:"name"`
	Score float64
}
