package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const botPrefix = "bot-"

const (
	PlayerStatusEnter   = iota // 玩家状态：进入
	PlayerStatusReady          // 玩家状态：准备
	PlayerStatusPlaying        // 玩家状态：游戏中
)

// Player 表示桌上的一个座位
type Player struct {
	ID     string // 玩家唯一ID
	Seat   int32  // 座位号
	Bot    bool   // 机器人座位由 advisor 代打
	Status int    // 玩家状态
}

// NewPlayer 创建新玩家实例，进桌即准备
func NewPlayer(id string, seat int32) *Player {
	return &Player{
		ID:     id,
		Seat:   seat,
		Status: PlayerStatusReady,
	}
}

// NewBot 机器人一直处于准备状态
func NewBot(seat int32) *Player {
	return &Player{
		ID:     fmt.Sprintf("%s%s", botPrefix, uuid.NewString()[:8]),
		Seat:   seat,
		Bot:    true,
		Status: PlayerStatusReady,
	}
}

func (p *Player) ready() bool {
	return p.Bot || p.Status == PlayerStatusReady
}

// PlayerInfo 推送给客户端的座位信息
type PlayerInfo struct {
	ID   string `json:"id"`
	Seat int32  `json:"seat"`
	Bot  bool   `json:"bot"`
}

func (p *Player) info() PlayerInfo {
	return PlayerInfo{ID: p.ID, Seat: p.Seat, Bot: p.Bot}
}

// IsBotID 机器人 ID 以 bot- 开头
func IsBotID(id string) bool {
	return strings.HasPrefix(id, botPrefix)
}
