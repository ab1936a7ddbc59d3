package game

import (
	"github.com/kevin-chtw/tw_duomj/advisor"
	"github.com/kevin-chtw/tw_duomj/mahjong"
)

// 推送路由
const (
	RouteTable   = "onTable"   // 座位变化
	RouteBegin   = "onBegin"   // 开局
	RouteEvent   = "onEvent"   // 某个座位的动作
	RouteView    = "onView"    // 自己可见的牌面
	RouteChoices = "onChoices" // 轮到自己时可选的动作
	RouteEnd     = "onEnd"     // 结算
)

// Sender 推送给客户端
type Sender interface {
	Push(uid, route string, msg any) error
}

type TableMsg struct {
	TableID string       `json:"table_id"`
	Players []PlayerInfo `json:"players"`
}

type BeginMsg struct {
	TableID   string `json:"table_id"`
	Round     int    `json:"round"`
	Seat      int32  `json:"seat"`
	FirstTurn int32  `json:"first_turn"`
}

type EventMsg struct {
	Seat   int32          `json:"seat"`
	Action mahjong.Action `json:"action"`
	Auto   bool           `json:"auto,omitempty"` // 超时代打
}

type ChoicesMsg struct {
	Actions  []mahjong.Action `json:"actions"`
	Deadline int64            `json:"deadline,omitempty"` // unix 毫秒，0 表示不限时
}

type HintMsg struct {
	Advice advisor.Advice `json:"advice"`
}

type MeldView struct {
	Kind  string         `json:"kind"`
	Tiles []mahjong.Tile `json:"tiles,omitempty"` // 对家的暗杠不可见
	From  int32          `json:"from"`
}

type DiscardView struct {
	Seat int32        `json:"seat"`
	Tile mahjong.Tile `json:"tile"`
}

// View 某个座位能看到的牌面
type View struct {
	Seat         int32          `json:"seat"`
	Turn         int32          `json:"turn"`
	Hand         []mahjong.Tile `json:"hand"`
	Melds        []MeldView     `json:"melds"`
	Discards     []mahjong.Tile `json:"discards"`
	OppHandCount int            `json:"opp_hand_count"`
	OppMelds     []MeldView     `json:"opp_melds"`
	OppDiscards  []mahjong.Tile `json:"opp_discards"`
	WallCount    int            `json:"wall_count"`
	LastDiscard  *DiscardView   `json:"last_discard,omitempty"`
}

type SeatResult struct {
	Hand  []mahjong.Tile `json:"hand"`
	Melds []MeldView     `json:"melds"`
}

type EndMsg struct {
	Winner  int32                   `json:"winner"`
	Reason  mahjong.WinReason       `json:"reason"`
	Summary mahjong.ScoreSummary    `json:"summary"`
	Seats   [mahjong.NP2]SeatResult `json:"seats"`
	Wall    []mahjong.Tile          `json:"wall"`
}

func meldViews(melds []mahjong.Meld, reveal bool) []MeldView {
	res := make([]MeldView, 0, len(melds))
	for _, m := range melds {
		v := MeldView{Kind: m.Kind.String(), From: m.From}
		if reveal || m.Kind != mahjong.MeldKongConcealed {
			v.Tiles = m.Tiles()
		}
		res = append(res, v)
	}
	return res
}

func newView(s *mahjong.GameState, seat int32) View {
	me, opp := s.Players[seat], s.Players[mahjong.Opponent(seat)]
	v := View{
		Seat:         seat,
		Turn:         s.Turn,
		Hand:         me.Hand,
		Melds:        meldViews(me.Melds, true),
		Discards:     me.Discards,
		OppHandCount: len(opp.Hand),
		OppMelds:     meldViews(opp.Melds, false),
		OppDiscards:  opp.Discards,
		WallCount:    len(s.Wall),
	}
	if d := s.LastDiscard; d != nil {
		v.LastDiscard = &DiscardView{Seat: d.Seat, Tile: d.Tile}
	}
	return v
}

func newEndMsg(s *mahjong.GameState, summary mahjong.ScoreSummary) EndMsg {
	msg := EndMsg{
		Winner:  s.Winner,
		Reason:  s.Reason,
		Summary: summary,
		Wall:    s.Wall,
	}
	for seat, p := range s.Players {
		msg.Seats[seat] = SeatResult{Hand: p.Hand, Melds: meldViews(p.Melds, true)}
	}
	return msg
}
