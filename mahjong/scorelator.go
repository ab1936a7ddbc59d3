package mahjong

import "fmt"

// FanItem 番型明细
type FanItem struct {
	Name   string `json:"name"`
	Fan    int    `json:"fan"`
	Detail string `json:"detail,omitempty"`
}

type SeatScore struct {
	FanTotal  int       `json:"fan_total"`
	Breakdown []FanItem `json:"fan_breakdown"`
	NetChange int64     `json:"net_change"`
}

func (s *SeatScore) add(name string, fan int, detail string) {
	s.Breakdown = append(s.Breakdown, FanItem{Name: name, Fan: fan, Detail: detail})
	s.FanTotal += fan
}

type ScoreSummary struct {
	Winner  int32          `json:"winner"`
	Reason  WinReason      `json:"reason"`
	Yakuman bool           `json:"yakuman"`
	Players [NP2]SeatScore `json:"players"`
}

// Scorelator 按规则计算番数与积分
type Scorelator struct {
	rule Rule
}

func NewScorelator(rule Rule) *Scorelator {
	return &Scorelator{rule: rule}
}

var defaultScorelator = NewScorelator(DefaultRule())

// ComputeScoreSummary 使用默认规则计分
func ComputeScoreSummary(s *GameState, winner int32, reason WinReason) ScoreSummary {
	return defaultScorelator.Compute(s, winner, reason)
}

// FanToPoints base * 2^fan，番数限制在 [0, MaxFan]
func FanToPoints(fan int, base int64) int64 {
	return base << min(max(fan, 0), MaxFan)
}

// CheckYakuman 依次检查四暗刻、四杠、清幺九，返回命中的名称
func CheckYakuman(hand []Tile, melds []Meld) (string, bool) {
	switch {
	case IsFourConcealedTriplets(hand, melds):
		return "四暗刻", true
	case IsFourKongs(melds):
		return "四杠", true
	case IsAllTerminals(hand, melds):
		return "清幺九", true
	}
	return "", false
}

func (c *Scorelator) Rule() Rule {
	return c.rule
}

// Compute winner 为 SeatNull 时所有数值为0
func (c *Scorelator) Compute(s *GameState, winner int32, reason WinReason) ScoreSummary {
	summary := ScoreSummary{Winner: winner, Reason: reason}
	if !validSeat(winner) {
		summary.Winner = SeatNull
		return summary
	}

	p := s.Players[winner]
	win := &summary.Players[winner]
	lose := &summary.Players[Opponent(winner)]

	if name, ok := CheckYakuman(p.Hand, p.Melds); ok {
		summary.Yakuman = true
		win.add("役满", c.rule.YakumanFan, name)
		lose.add("役满负番", -c.rule.YakumanFan, "对手役满")
	} else {
		c.ordinary(win, p, reason)
		lose.add("负番", -win.FanTotal, "对手胡牌")
	}

	points := FanToPoints(win.FanTotal, c.rule.BaseScore)
	win.NetChange = points
	lose.NetChange = -points
	return summary
}

func (c *Scorelator) ordinary(win *SeatScore, p PlayerState, reason WinReason) {
	hand, melds := p.Hand, p.Melds
	win.add("和底", 1, "胡牌基础番")
	if reason.IsSelfDraw() {
		win.add("自摸", 1, "自摸胡牌")
	}
	if reason == ReasonSelfDrawKong {
		win.add("杠上开花", 1, "杠后补牌自摸")
	}
	menzen := IsMenzen(melds)
	if menzen {
		win.add("门前清", 1, "没有碰、明杠")
	}

	toitoi := IsAllTriplets(hand, melds)
	if toitoi {
		win.add("对对胡", 2, "四个刻子+将眼")
	}
	if CountConcealedTriplets(hand, melds) >= 3 {
		if toitoi {
			win.add("三暗刻（与对对胡叠加）", 1, "三暗刻作为额外+1")
		} else {
			win.add("三暗刻", 2, "三个暗刻")
		}
	}
	if IsFullFlush(hand, melds) {
		win.add("清一色", 2, "同花色牌型")
	}
	if IsTanyao(hand, melds) {
		win.add("断幺九", 1, "全2-8")
	}
	if menzen && IsAllSequences(hand, melds) {
		win.add("平和", 2, "门清四顺子")
	}
	if reason == ReasonRobKong {
		win.add("抢杠", 1, "抢杠胡")
	}
	if kongs := CountKongs(melds); kongs > 0 {
		fan := min(kongs, 2)
		win.add("杠", fan, fmt.Sprintf("%d个杠（计入%d番）", kongs, fan))
	}

	if win.FanTotal > c.rule.FanCap {
		win.FanTotal = c.rule.FanCap
		win.Breakdown = append(win.Breakdown, FanItem{Name: "封顶", Fan: 0, Detail: fmt.Sprintf("普通手封顶 %d 番", c.rule.FanCap)})
	}
}
