package mahjong

import (
	"fmt"
	"slices"
)

// PlayerState 一家的手牌、副露、弃牌
type PlayerState struct {
	Hand     []Tile
	Melds    []Meld
	Discards []Tile
}

func (p PlayerState) clone() PlayerState {
	return PlayerState{
		Hand:     slices.Clone(p.Hand),
		Melds:    slices.Clone(p.Melds),
		Discards: slices.Clone(p.Discards),
	}
}

// TileCount 手牌、副露、弃牌合计
func (p PlayerState) TileCount() int {
	return len(p.Hand) + len(MeldsTiles(p.Melds)) + len(p.Discards)
}

type DiscardInfo struct {
	Seat int32
	Tile Tile
}

type DrawInfo struct {
	Seat int32
	Type DrawType
}

type RobKong struct {
	Owner int32 // 加杠的一方
	Tile  Tile
}

// Phase 当前所处的窗口，任一时刻只有一个
type Phase int

const (
	PhaseTurn     Phase = iota // 正常轮转：摸牌或出牌
	PhaseResponse              // 对家出牌后的响应窗口
	PhaseRobKong               // 抢杠窗口
	PhaseEnded
)

// GameState 对局的完整快照。所有转换都返回新的快照，不修改旧的。
type GameState struct {
	Seed            int64
	Wall            []Tile
	Players         [NP2]PlayerState
	Turn            int32
	LastDiscard     *DiscardInfo
	Step            int
	Started         bool
	Ended           bool
	PendingKongDraw int32 // 需要杠后补牌的座位
	LastDraw        *DrawInfo
	PendingRobKong  *RobKong
	Winner          int32
	Reason          WinReason
}

// NewGame 按种子洗牌并发牌
func NewGame(seed int64, firstTurn int32) *GameState {
	return NewGameWithWall(seed, BuildWall(seed), firstTurn)
}

// NewGameWithWall 用指定牌墙开局，前26张依次发给0、1号位
func NewGameWithWall(seed int64, wall []Tile, firstTurn int32) *GameState {
	if !validSeat(firstTurn) {
		firstTurn = 0
	}
	hands, rest := deal(wall)
	s := &GameState{
		Seed:            seed,
		Wall:            rest,
		Turn:            firstTurn,
		Started:         true,
		PendingKongDraw: SeatNull,
		Winner:          SeatNull,
		Reason:          ReasonWallExhausted,
	}
	for seat := range NP2 {
		s.Players[seat] = PlayerState{Hand: hands[seat]}
	}
	return s
}

func (s *GameState) clone() *GameState {
	n := *s
	n.Wall = slices.Clone(s.Wall)
	for i := range s.Players {
		n.Players[i] = s.Players[i].clone()
	}
	return &n
}

func (s *GameState) Phase() Phase {
	switch {
	case s.Ended:
		return PhaseEnded
	case s.PendingRobKong != nil:
		return PhaseRobKong
	case s.LastDiscard != nil:
		return PhaseResponse
	default:
		return PhaseTurn
	}
}

// TileCount 牌墙加两家全部牌，恒为108
func (s *GameState) TileCount() int {
	total := len(s.Wall)
	for _, p := range s.Players {
		total += p.TileCount()
	}
	return total
}

// WithPlayer 替换某家状态后的新快照，供模拟推演使用
func (s *GameState) WithPlayer(seat int32, p PlayerState) *GameState {
	n := s.clone()
	n.Players[seat] = p.clone()
	return n
}

func (s *GameState) String() string {
	return fmt.Sprintf("step=%d turn=%d wall=%d p0=[%s] p1=[%s]",
		s.Step, s.Turn, len(s.Wall), TilesName(s.Players[0].Hand), TilesName(s.Players[1].Hand))
}

func (s *GameState) checkActive(seat int32) error {
	if s.Ended {
		return ErrGameEnded
	}
	if !validSeat(seat) {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	return nil
}

// checkTurn 正常轮转中轮到 seat 行动
func (s *GameState) checkTurn(seat int32) error {
	if err := s.checkActive(seat); err != nil {
		return err
	}
	if s.PendingRobKong != nil || s.Turn != seat {
		return fmt.Errorf("%w: seat %d, turn %d", ErrNotYourTurn, seat, s.Turn)
	}
	return nil
}
