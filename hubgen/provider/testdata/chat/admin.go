package chat

import "github.com/broady/hub"

type AdminHub struct {
	*hub.Hub
}

//hub:server
func (a *AdminHub) Kick(user string, _ Mood, tags map[string]string) error {
	return nil
}
