package invalid

type Plain struct{}

//hub:server
func (p *Plain) Ping() error { return nil }
