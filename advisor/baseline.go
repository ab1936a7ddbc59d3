package advisor

import (
	"fmt"

	"github.com/kevin-chtw/tw_duomj/mahjong"
)

// Baseline 模拟用的弱对手：能胡就胡，碰杠取第一个合法选项，出牌打最少的花色，不做任何搜索
type Baseline struct{}

func NewBaseline() *Baseline {
	return &Baseline{}
}

func (Baseline) OnDiscard(s *mahjong.GameState, seat int32) (Advice, error) {
	if err := checkFullHand(s, seat); err != nil {
		return Advice{}, err
	}
	hand := s.Players[seat].Hand

	var suitCounts [mahjong.SuitCount]int
	for _, t := range hand {
		suitCounts[t.Suit()]++
	}
	target := mahjong.Suit(-1)
	for suit, n := range suitCounts {
		if n == 0 {
			continue
		}
		if target < 0 || n < suitCounts[target] {
			target = mahjong.Suit(suit)
		}
	}

	tile := hand[0]
	for _, t := range hand {
		if t.Suit() == target {
			tile = t
			break
		}
	}
	return Advice{
		Action: mahjong.DiscardAction(tile),
		Reason: fmt.Sprintf("打出最少的花色（%s）中的第一张：%s。", target.Name(), tile),
	}, nil
}

func (Baseline) OnOpponentDiscard(s *mahjong.GameState, seat int32) (Advice, error) {
	if _, err := checkOpponentDiscard(s, seat); err != nil {
		return Advice{}, err
	}
	for _, c := range mahjong.LegalChoices(s, seat) {
		switch c.Kind {
		case mahjong.ActionWin:
			return Advice{Action: c, Reason: "能胡就胡。"}, nil
		case mahjong.ActionPeng, mahjong.ActionKong:
			return Advice{Action: c, Reason: fmt.Sprintf("选择第一个可用的动作：%s。", c)}, nil
		}
	}
	return Advice{Action: mahjong.PassAction(), Reason: "没有可用的动作，过。"}, nil
}

func (b Baseline) OnDraw(s *mahjong.GameState, seat int32) (Advice, error) {
	if err := checkFullHand(s, seat); err != nil {
		return Advice{}, err
	}
	me := s.Players[seat]
	if mahjong.CanHu(me.Hand, me.Melds) {
		return Advice{
			Action: mahjong.WinAction(mahjong.WinSelf, mahjong.TileNull, mahjong.SeatNull),
			Reason: "自摸，能胡就胡。",
		}, nil
	}
	return b.OnDiscard(s, seat)
}
