package mahjong

// LegalChoices 当前快照下 seat 可以执行的动作，按优先级排列，无副作用
func LegalChoices(s *GameState, seat int32) []Action {
	if s.Ended || !validSeat(seat) {
		return nil
	}
	me := s.Players[seat]

	// 抢杠窗口：只有对家可以胡或过
	if rk := s.PendingRobKong; rk != nil {
		if seat != Opponent(rk.Owner) {
			return nil
		}
		var choices []Action
		if CanHu(SortedWith(me.Hand, rk.Tile), me.Melds) {
			choices = append(choices, WinAction(WinRob, rk.Tile, rk.Owner))
		}
		return append(choices, PassAction())
	}

	// 摸牌或碰牌之后：自摸、暗杠、加杠、出牌
	if s.LastDiscard == nil && len(me.Hand)%3 == 2 && seat == s.Turn {
		var choices []Action
		if CanHu(me.Hand, me.Melds) {
			choices = append(choices, WinAction(WinSelf, TileNull, SeatNull))
		}
		for _, t := range ConcealedKongTiles(me.Hand) {
			choices = append(choices, KongAction(KongStyleConcealed, t, seat))
		}
		for _, t := range AddedKongTiles(me.Hand, me.Melds) {
			choices = append(choices, KongAction(KongStyleAdded, t, seat))
		}
		for _, t := range UniqueTiles(me.Hand) {
			choices = append(choices, DiscardAction(t))
		}
		return choices
	}

	// 对家出牌后：荣和、碰、明杠、过
	if d := s.LastDiscard; d != nil && d.Seat != seat {
		var choices []Action
		if CanHu(SortedWith(me.Hand, d.Tile), me.Melds) {
			choices = append(choices, WinAction(WinRon, d.Tile, d.Seat))
		}
		count := CountElement(me.Hand, d.Tile)
		if count >= 2 {
			choices = append(choices, PengAction(d.Tile, d.Seat))
		}
		if count >= 3 {
			choices = append(choices, KongAction(KongStyleExposed, d.Tile, d.Seat))
		}
		return append(choices, PassAction())
	}

	if seat == s.Turn && len(me.Hand)%3 == 1 {
		return []Action{DrawAction()}
	}
	return nil
}

// ConcealedKongTiles 手里有4张的牌
func ConcealedKongTiles(hand []Tile) []Tile {
	counts := CountTiles(hand)
	var res []Tile
	for t, n := range counts {
		if n == SameTileCount {
			res = append(res, Tile(t))
		}
	}
	return res
}

// AddedKongTiles 已碰且手里还有第4张的牌，按副露顺序
func AddedKongTiles(hand []Tile, melds []Meld) []Tile {
	var res []Tile
	for _, m := range melds {
		if m.Kind == MeldPong && CountElement(hand, m.Tile) >= 1 {
			res = append(res, m.Tile)
		}
	}
	return res
}

// HasChoice 动作是否在候选中（按种类、样式、牌比较）
func HasChoice(choices []Action, a Action) bool {
	for _, c := range choices {
		if c.Kind != a.Kind {
			continue
		}
		switch a.Kind {
		case ActionKong:
			if c.Kong == a.Kong && c.Tile == a.Tile {
				return true
			}
		case ActionWin:
			if c.Win == a.Win {
				return true
			}
		case ActionDiscard, ActionPeng:
			if c.Tile == a.Tile {
				return true
			}
		default:
			return true
		}
	}
	return false
}
