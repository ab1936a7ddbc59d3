package mahjong

// Advance 执行不需要玩家决定的转换：该摸牌时摸牌，牌墙摸空则流局；
// 响应窗口里只能过时自动过。停在需要 s.Turn 做选择的快照上，或者对局结束。
func Advance(s *GameState) (*GameState, error) {
	for !s.Ended {
		choices := LegalChoices(s, s.Turn)
		if len(choices) != 1 {
			return s, nil
		}
		var err error
		switch choices[0].Kind {
		case ActionDraw:
			if len(s.Wall) == 0 {
				return EndInDraw(s)
			}
			s, _, err = Draw(s, s.Turn)
		case ActionPass:
			s, err = Pass(s, s.Turn)
		default:
			return s, nil
		}
		if err != nil {
			return s, err
		}
	}
	return s, nil
}
