// Package advisor 出牌提示与机器人决策。搜索会读取牌墙顺序，只能用于请求方的提示、
// 机器人座位和离线模拟，不能接到对局裁决逻辑上。
package advisor

import (
	"errors"
	"fmt"

	"github.com/kevin-chtw/tw_duomj/mahjong"
)

const (
	LevelSearch   = "search"
	LevelBaseline = "baseline"
)

const DefaultCandidates = 10

var ErrNotApplicable = errors.New("advice not applicable")

// Advice 只有 Action 是约定内容，Reason 和 Detail 仅用于展示与诊断
type Advice struct {
	Action mahjong.Action `json:"action"`
	Reason string         `json:"reason"`
	Detail map[string]any `json:"detail,omitempty"`
}

type Advisor interface {
	// OnDiscard 手牌为 3n+2 张时建议打哪张
	OnDiscard(s *mahjong.GameState, seat int32) (Advice, error)
	// OnOpponentDiscard 对家刚出牌时建议荣和、碰、杠或过
	OnOpponentDiscard(s *mahjong.GameState, seat int32) (Advice, error)
	// OnDraw 摸牌后建议自摸、暗杠、加杠或打牌
	OnDraw(s *mahjong.GameState, seat int32) (Advice, error)
}

// Config advisor 配置段
type Config struct {
	Level      string `mapstructure:"level"`
	Candidates int    `mapstructure:"candidates"`
	CacheSize  int    `mapstructure:"cache_size"`
}

func DefaultConfig() Config {
	return Config{
		Level:      LevelSearch,
		Candidates: DefaultCandidates,
		CacheSize:  mahjong.DefaultCacheSize,
	}
}

// NewAdvisor 按等级创建，使用默认规则与缓存大小
func NewAdvisor(level string) (Advisor, error) {
	cfg := DefaultConfig()
	cfg.Level = level
	return New(cfg, mahjong.DefaultRule())
}

func New(cfg Config, rule mahjong.Rule) (Advisor, error) {
	switch cfg.Level {
	case LevelSearch:
		return NewSearch(NewSearcher(cfg.CacheSize, rule), cfg.Candidates), nil
	case LevelBaseline:
		return NewBaseline(), nil
	default:
		return nil, fmt.Errorf("unknown advisor level: %q", cfg.Level)
	}
}

func checkSeat(s *mahjong.GameState, seat int32) error {
	if s == nil || s.Ended {
		return fmt.Errorf("%w: game not running", ErrNotApplicable)
	}
	if seat != 0 && seat != 1 {
		return fmt.Errorf("%w: invalid seat %d", ErrNotApplicable, seat)
	}
	return nil
}

func checkFullHand(s *mahjong.GameState, seat int32) error {
	if err := checkSeat(s, seat); err != nil {
		return err
	}
	if n := len(s.Players[seat].Hand); n%3 != 2 {
		return fmt.Errorf("%w: seat %d holds %d tiles", ErrNotApplicable, seat, n)
	}
	return nil
}

func checkOpponentDiscard(s *mahjong.GameState, seat int32) (mahjong.Tile, error) {
	if err := checkSeat(s, seat); err != nil {
		return mahjong.TileNull, err
	}
	d := s.LastDiscard
	if s.PendingRobKong != nil || d == nil || d.Seat != mahjong.Opponent(seat) {
		return mahjong.TileNull, fmt.Errorf("%w: no opponent discard for seat %d", ErrNotApplicable, seat)
	}
	return d.Tile, nil
}

// Decide 按当前窗口选择对应的建议：抢杠窗口能胡就胡，响应窗口走 OnOpponentDiscard，
// 轮到摸牌直接摸，摸牌或碰牌后走 OnDraw
func Decide(a Advisor, s *mahjong.GameState, seat int32) (Advice, error) {
	if err := checkSeat(s, seat); err != nil {
		return Advice{}, err
	}
	me := s.Players[seat]

	switch s.Phase() {
	case mahjong.PhaseRobKong:
		rk := s.PendingRobKong
		if seat != mahjong.Opponent(rk.Owner) {
			break
		}
		win := mahjong.WinAction(mahjong.WinRob, rk.Tile, rk.Owner)
		if mahjong.HasChoice(mahjong.LegalChoices(s, seat), win) {
			return Advice{Action: win, Reason: fmt.Sprintf("建议【抢杠】%s，立即和牌。", rk.Tile)}, nil
		}
		return Advice{Action: mahjong.PassAction(), Reason: "无法抢杠，放行加杠。"}, nil
	case mahjong.PhaseResponse:
		if s.LastDiscard.Seat != seat {
			return a.OnOpponentDiscard(s, seat)
		}
	case mahjong.PhaseTurn:
		if seat != s.Turn {
			break
		}
		switch len(me.Hand) % 3 {
		case 1:
			return Advice{Action: mahjong.DrawAction(), Reason: "轮到你摸牌。"}, nil
		case 2:
			return a.OnDraw(s, seat)
		}
	}
	return Advice{}, fmt.Errorf("%w: seat %d cannot act now", ErrNotApplicable, seat)
}
