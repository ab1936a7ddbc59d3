package advisor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kevin-chtw/tw_duomj/mahjong"
)

// Candidate 一个出牌候选的评估
type Candidate struct {
	Discard       mahjong.Tile `json:"discard"`
	MyTTW         *int         `json:"my_ttw"`
	MyFan         int          `json:"my_fan"`
	MyScore       float64      `json:"my_score"`
	OppTTW        *int         `json:"opp_ttw"`
	Danger        bool         `json:"danger"`
	OppRonPoints  int64        `json:"opp_ron_points"`
	AdjustedScore float64      `json:"adjusted_score"`
}

// PathEval 某条路线（碰、杠、过）的评估
type PathEval struct {
	TTW   *int    `json:"ttw"`
	Fan   int     `json:"fan"`
	Score float64 `json:"score"`
}

func turns(n int, ok bool) *int {
	if !ok {
		return nil
	}
	return &n
}

func turnsText(p *int) string {
	if p == nil {
		return "不可达"
	}
	return fmt.Sprint(*p)
}

// Search 全信息搜索 advisor：评分 = 番数上界 / (最短自摸轮数+1)
type Search struct {
	searcher   *Searcher
	candidates int
}

func NewSearch(searcher *Searcher, candidates int) *Search {
	if candidates <= 0 {
		candidates = DefaultCandidates
	}
	return &Search{searcher: searcher, candidates: candidates}
}

func (a *Search) Searcher() *Searcher {
	return a.searcher
}

func (a *Search) evaluate(s *mahjong.GameState, seat int32, hand []mahjong.Tile, melds []mahjong.Meld) PathEval {
	ttw, ok := a.searcher.TurnsToWin(s, seat, hand, melds)
	fan := a.searcher.UpperBoundFan(s, seat, hand, melds)
	return PathEval{TTW: turns(ttw, ok), Fan: fan, Score: Evaluate(fan, ttw, ok)}
}

// evalState 评估 seat 在快照 s 上的路线；手牌为 3n+2 张时先打出一张，取最好的打法
func (a *Search) evalState(s *mahjong.GameState, seat int32) PathEval {
	me := s.Players[seat]
	if len(me.Hand)%3 != 2 || a.searcher.CanHu(me.Hand, me.Melds) {
		return a.evaluate(s, seat, me.Hand, me.Melds)
	}
	var best *PathEval
	for _, t := range mahjong.UniqueTiles(me.Hand) {
		eval := a.evaluate(s, seat, mahjong.RemoveElements(me.Hand, t, 1), me.Melds)
		if best == nil || eval.Score > best.Score {
			best = &eval
		}
	}
	return *best
}

// ronFanUpper 听牌时枚举所有胡张，取荣和番数最大值，不听返回 0
func (a *Search) ronFanUpper(s *mahjong.GameState, seat int32, hand []mahjong.Tile) int {
	melds := s.Players[seat].Melds
	best := 0
	for t := mahjong.Tile(0); t < mahjong.TileTypeCount; t++ {
		test := mahjong.SortedWith(hand, t)
		if !a.searcher.CanHu(test, melds) {
			continue
		}
		best = max(best, a.searcher.actualFan(s, seat, test, melds, mahjong.ReasonRon))
	}
	return best
}

func (a *Search) rankDiscards(s *mahjong.GameState, seat int32) []Candidate {
	me := s.Players[seat]
	opp := mahjong.Opponent(seat)
	oppState := s.Players[opp]
	oppTTW := turns(a.searcher.TurnsToWin(s, opp, oppState.Hand, oppState.Melds))

	var candidates []Candidate
	for _, t := range mahjong.UniqueTiles(me.Hand) {
		hand := mahjong.RemoveElements(me.Hand, t, 1)
		path := a.evaluate(s, seat, hand, me.Melds)
		c := Candidate{
			Discard: t,
			MyTTW:   path.TTW,
			MyFan:   path.Fan,
			MyScore: path.Score,
			OppTTW:  oppTTW,
		}
		// 点炮：对家加上这张即可胡，按对家荣和得分扣减
		merged := mahjong.SortedWith(oppState.Hand, t)
		if a.searcher.CanHu(merged, oppState.Melds) {
			summary := a.searcher.summary(s, opp, merged, oppState.Melds, mahjong.ReasonRon)
			c.Danger = true
			c.OppRonPoints = summary.Players[opp].NetChange
		}
		c.AdjustedScore = c.MyScore - float64(c.OppRonPoints)
		candidates = append(candidates, c)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].AdjustedScore > candidates[j].AdjustedScore
	})
	return candidates
}

func (a *Search) OnDiscard(s *mahjong.GameState, seat int32) (Advice, error) {
	if err := checkFullHand(s, seat); err != nil {
		return Advice{}, err
	}
	advice, _ := a.discardPlan(s, seat)
	return advice, nil
}

func (a *Search) discardPlan(s *mahjong.GameState, seat int32) (Advice, Candidate) {
	candidates := a.rankDiscards(s, seat)
	best := candidates[0]
	ronFan := a.ronFanUpper(s, seat, mahjong.RemoveElements(s.Players[seat].Hand, best.Discard, 1))

	var b strings.Builder
	fmt.Fprintf(&b, "建议打出【%s】。", best.Discard)
	if best.MyTTW != nil {
		fmt.Fprintf(&b, " 预计你最短 %d 轮自摸可和（估计番≈%d）。", *best.MyTTW, best.MyFan)
	} else {
		b.WriteString(" 该路线在剩余牌墙内较难自摸完成，作为防守/安全打张。")
	}
	if ronFan > 0 {
		fmt.Fprintf(&b, " 打出后听牌，若对手弃出合适牌，有机会以荣和获得更高番（上界≈%d）。", ronFan)
	}
	if best.Danger {
		fmt.Fprintf(&b, " 注意：此张会被对手【立即荣和】，预期损失≈%d 分（已计入综合评分）。", best.OppRonPoints)
	}
	if best.OppTTW != nil && best.MyTTW != nil {
		if *best.MyTTW <= *best.OppTTW {
			fmt.Fprintf(&b, " 你的速度不慢于对手（对手 TTW≈%d）。", *best.OppTTW)
		} else {
			fmt.Fprintf(&b, " 纯进攻较慢于对手（对手 TTW≈%d），当前为偏防守选择。", *best.OppTTW)
		}
	}

	detail := map[string]any{
		"picked":     best,
		"candidates": candidates[:min(len(candidates), a.candidates)],
	}
	if ronFan > 0 {
		detail["ron_fan_upper"] = ronFan
	}
	return Advice{
		Action: mahjong.DiscardAction(best.Discard),
		Reason: b.String(),
		Detail: detail,
	}, best
}

func (a *Search) OnOpponentDiscard(s *mahjong.GameState, seat int32) (Advice, error) {
	tile, err := checkOpponentDiscard(s, seat)
	if err != nil {
		return Advice{}, err
	}
	from := mahjong.Opponent(seat)
	me := s.Players[seat]

	merged := mahjong.SortedWith(me.Hand, tile)
	if a.searcher.CanHu(merged, me.Melds) {
		summary := a.searcher.summary(s, seat, merged, me.Melds, mahjong.ReasonRon)
		fan := summary.Players[seat].FanTotal
		return Advice{
			Action: mahjong.WinAction(mahjong.WinRon, tile, from),
			Reason: fmt.Sprintf("建议【荣和】%s，立即结束对局（番数=%d）。", tile, fan),
			Detail: map[string]any{"fan": fan, "score": summary},
		}, nil
	}

	pass := a.evalState(s, seat)
	passAdvice := Advice{
		Action: mahjong.PassAction(),
		Reason: fmt.Sprintf("建议【过】%s。执行碰/杠对速度或番数无显著提升，且保留门前清/牌型弹性。", tile),
		Detail: map[string]any{"pass": pass},
	}

	// 能明杠时只比较明杠，否则比较碰
	claim, name := mahjong.KongAction(mahjong.KongStyleExposed, tile, from), "明杠"
	next, err := mahjong.ClaimKongExposed(s, seat, from, tile)
	if err != nil {
		claim, name = mahjong.PengAction(tile, from), "碰"
		if next, err = mahjong.ClaimPeng(s, seat, from, tile); err != nil {
			return passAdvice, nil
		}
	}

	after := a.evalState(next, seat)
	faster := after.TTW != nil && pass.TTW != nil && *after.TTW+1 < *pass.TTW
	if faster || after.Score > pass.Score {
		return Advice{
			Action: claim,
			Reason: fmt.Sprintf("建议【%s】%s：可将最短自摸轮数从 %s 降至 %s，综合得分更优。",
				name, tile, turnsText(pass.TTW), turnsText(after.TTW)),
			Detail: map[string]any{"after_action": after, "pass": pass},
		}, nil
	}
	return passAdvice, nil
}

func (a *Search) OnDraw(s *mahjong.GameState, seat int32) (Advice, error) {
	if err := checkFullHand(s, seat); err != nil {
		return Advice{}, err
	}
	me := s.Players[seat]

	if a.searcher.CanHu(me.Hand, me.Melds) {
		reason := mahjong.ReasonSelfDraw
		if d := s.LastDraw; d != nil && d.Seat == seat && d.Type == mahjong.DrawKong {
			reason = mahjong.ReasonSelfDrawKong
		}
		summary := a.searcher.scorer.Compute(s, seat, reason)
		fan := summary.Players[seat].FanTotal
		return Advice{
			Action: mahjong.WinAction(mahjong.WinSelf, mahjong.TileNull, mahjong.SeatNull),
			Reason: fmt.Sprintf("建议【自摸】立即和牌（番数=%d）。", fan),
			Detail: map[string]any{"score": summary},
		}, nil
	}

	type kongOption struct {
		action mahjong.Action
		name   string
		eval   PathEval
	}
	var best *kongOption
	consider := func(opt kongOption) {
		if best == nil || opt.eval.Score > best.eval.Score {
			best = &opt
		}
	}
	for _, t := range mahjong.ConcealedKongTiles(me.Hand) {
		if next, err := mahjong.KongConcealed(s, seat, t); err == nil {
			consider(kongOption{
				action: mahjong.KongAction(mahjong.KongStyleConcealed, t, seat),
				name:   "暗杠",
				eval:   a.evalState(next, seat),
			})
		}
	}
	// 加杠按直接完成估计，不计被抢杠
	for _, t := range mahjong.AddedKongTiles(me.Hand, me.Melds) {
		if next, err := mahjong.KongAdded(s, seat, t); err == nil {
			consider(kongOption{
				action: mahjong.KongAction(mahjong.KongStyleAdded, t, seat),
				name:   "加杠",
				eval:   a.evalState(next, seat),
			})
		}
	}

	plan, picked := a.discardPlan(s, seat)
	if best != nil && best.eval.Score > picked.MyScore {
		return Advice{
			Action: best.action,
			Reason: fmt.Sprintf("建议【%s】%s，综合评分优于直接打牌（杠后估计：TTW=%s，番≈%d）。",
				best.name, best.action.Tile, turnsText(best.eval.TTW), best.eval.Fan),
			Detail: map[string]any{"after_kong": best.eval, "no_kong_then_discard": plan},
		}, nil
	}
	return plan, nil
}
