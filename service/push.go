package service

import (
	"fmt"

	pitaya "github.com/topfreegames/pitaya/v3/pkg"
)

// Pusher 通过前端服务器把桌上的消息推给玩家
type Pusher struct {
	app        pitaya.Pitaya
	serverType string
}

func NewPusher(app pitaya.Pitaya, serverType string) *Pusher {
	return &Pusher{
		app:        app,
		serverType: serverType,
	}
}

func (p *Pusher) Push(uid, route string, msg any) error {
	if _, err := p.app.SendPushToUsers(route, msg, []string{uid}, p.serverType); err != nil {
		return fmt.Errorf("push %s to %s: %w", route, uid, err)
	}
	return nil
}
