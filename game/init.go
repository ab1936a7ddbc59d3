package game

import (
	"context"
	"errors"
	"time"

	"github.com/kevin-chtw/tw_duomj/advisor"
	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/kevin-chtw/tw_duomj/storage"
)

var (
	ErrTableFull     = errors.New("table is full")
	ErrNotSeated     = errors.New("player not on table")
	ErrNotPlaying    = errors.New("game not started")
	ErrStillPlaying  = errors.New("game in progress")
	ErrTableNotFound = errors.New("table not found")
)

// Config table 段
type Config struct {
	ResponseTimeout time.Duration `mapstructure:"response_timeout"` // 响应窗口超时后自动过
	Tick            time.Duration `mapstructure:"tick"`
	Manual          string        `mapstructure:"manual"` // 配牌文件，空为不配牌
}

func DefaultConfig() Config {
	return Config{
		ResponseTimeout: 15 * time.Second,
		Tick:            time.Second,
	}
}

// Dealer 开局发牌
type Dealer func(seed int64, firstTurn int32) (*mahjong.GameState, error)

func DefaultDealer(seed int64, firstTurn int32) (*mahjong.GameState, error) {
	return mahjong.NewGame(seed, firstTurn), nil
}

// ManualDealer 配牌开启时按配牌发牌
func ManualDealer(m *mahjong.Manual) Dealer {
	if !m.Enabled() {
		return DefaultDealer
	}
	return m.NewGame
}

// Settler 对局结束后记账，中止的对局不记
type Settler interface {
	Settle(ctx context.Context, s storage.Settlement) ([mahjong.NP2]storage.Record, error)
}

// Options 桌子的依赖，未设置的用默认值
type Options struct {
	Config  Config
	Rule    mahjong.Rule
	Bot     advisor.Advisor // 机器人座位
	Hinter  advisor.Advisor // 真人座位的提示
	Sender  Sender
	Settler Settler
	Dealer  Dealer
}

type nopSender struct{}

func (nopSender) Push(string, string, any) error { return nil }

func (o Options) withDefaults() Options {
	def := DefaultConfig()
	if o.Config.ResponseTimeout <= 0 {
		o.Config.ResponseTimeout = def.ResponseTimeout
	}
	if o.Config.Tick <= 0 {
		o.Config.Tick = def.Tick
	}
	if o.Rule == (mahjong.Rule{}) {
		o.Rule = mahjong.DefaultRule()
	}
	if o.Bot == nil {
		o.Bot = advisor.NewBaseline()
	}
	if o.Hinter == nil {
		o.Hinter = o.Bot
	}
	if o.Sender == nil {
		o.Sender = nopSender{}
	}
	if o.Dealer == nil {
		o.Dealer = DefaultDealer
	}
	return o
}
