package advisor

import (
	"slices"

	"github.com/kevin-chtw/tw_duomj/mahjong"
)

// Unreachable 剩余牌墙内无法自摸完成时的评分
const Unreachable = -1e9

type shantenKey struct {
	counts    mahjong.TileCounts
	meldsDone int8
	hasPair   bool
}

type effectiveKey struct {
	counts mahjong.TileCounts
	melds  int8
}

// Searcher 全信息搜索：向听、有效张、最短自摸轮数、番数上界。
// 缓存只按牌值计数做键，可跨对局、跨协程共享。
type Searcher struct {
	hu             *mahjong.HuCore
	scorer         *mahjong.Scorelator
	shantenCache   *mahjong.Cache[shantenKey, int]
	effectiveCache *mahjong.Cache[effectiveKey, []mahjong.Tile]
}

func NewSearcher(cacheSize int, rule mahjong.Rule) *Searcher {
	return &Searcher{
		hu:             mahjong.NewHuCore(cacheSize),
		scorer:         mahjong.NewScorelator(rule),
		shantenCache:   mahjong.NewCache[shantenKey, int](cacheSize),
		effectiveCache: mahjong.NewCache[effectiveKey, []mahjong.Tile](cacheSize),
	}
}

func (s *Searcher) Rule() mahjong.Rule {
	return s.scorer.Rule()
}

func (s *Searcher) CanHu(hand []mahjong.Tile, melds []mahjong.Meld) bool {
	return s.hu.CanHu(hand, melds)
}

// Shanten 胡牌返回 -1，听牌 0，其余为还差的补牌数估计
func (s *Searcher) Shanten(hand []mahjong.Tile, melds []mahjong.Meld) int {
	if s.hu.CanHu(hand, melds) {
		return -1
	}
	return max(0, s.minAdds(mahjong.CountTiles(hand), len(melds), false))
}

// minAdds 在最小的非零牌上依次尝试刻子、顺子、将、搭子(+1)、单张(+2)
func (s *Searcher) minAdds(c mahjong.TileCounts, meldsDone int, hasPair bool) int {
	need := mahjong.MeldCountToWin - meldsDone
	total := c.Total()
	if need <= 0 {
		switch {
		case hasPair && total == 0:
			return 0
		case !hasPair:
			return 2
		default:
			return total * 2
		}
	}
	if total == 0 {
		cost := need * 2
		if !hasPair {
			cost += 2
		}
		return cost
	}

	key := shantenKey{counts: c, meldsDone: int8(meldsDone), hasPair: hasPair}
	if v, ok := s.shantenCache.Get(key); ok {
		return v
	}
	best := s.branches(c, meldsDone, hasPair)
	s.shantenCache.Put(key, best)
	return best
}

func (s *Searcher) branches(c mahjong.TileCounts, meldsDone int, hasPair bool) int {
	i := firstTile(c)
	r := i % 9
	best := 1 << 30
	try := func(cost int, next mahjong.TileCounts, done int, pair bool) {
		best = min(best, cost+s.minAdds(next, done, pair))
	}

	if c[i] >= 3 {
		next := c
		next[i] -= 3
		try(0, next, meldsDone+1, hasPair)
	}
	if r <= 6 && c[i+1] > 0 && c[i+2] > 0 {
		next := c
		next[i]--
		next[i+1]--
		next[i+2]--
		try(0, next, meldsDone+1, hasPair)
	}
	if !hasPair && c[i] >= 2 {
		next := c
		next[i] -= 2
		try(0, next, meldsDone, true)
	}
	if c[i] == 2 {
		next := c
		next[i] -= 2
		try(1, next, meldsDone, hasPair)
	}
	if r <= 7 && c[i+1] > 0 {
		next := c
		next[i]--
		next[i+1]--
		try(1, next, meldsDone, hasPair)
	}
	if r <= 6 && c[i+2] > 0 {
		next := c
		next[i]--
		next[i+2]--
		try(1, next, meldsDone, hasPair)
	}
	next := c
	next[i]--
	try(2, next, meldsDone, hasPair)
	return best
}

func firstTile(c mahjong.TileCounts) int {
	for i, n := range c {
		if n > 0 {
			return i
		}
	}
	return -1
}

// EffectiveTiles 摸到后能让向听数下降的牌，不考虑剩余枚数
func (s *Searcher) EffectiveTiles(hand []mahjong.Tile, melds []mahjong.Meld) []mahjong.Tile {
	counts := mahjong.CountTiles(hand)
	key := effectiveKey{counts: counts, melds: int8(len(melds))}
	if v, ok := s.effectiveCache.Get(key); ok {
		return v
	}

	var res []mahjong.Tile
	if cur := s.Shanten(hand, melds); cur >= 0 {
		for t := mahjong.Tile(0); t < mahjong.TileTypeCount; t++ {
			if s.Shanten(mahjong.SortedWith(hand, t), melds) < cur {
				res = append(res, t)
			}
		}
	}
	s.effectiveCache.Put(key, res)
	return res
}

// DrawIndices seat 之后会摸到的牌墙下标。下一个摸牌的是：轮到的一方缺牌时为他自己，
// 否则为其对家；之后双方交替，不考虑杠改变顺序。
func DrawIndices(st *mahjong.GameState, seat int32) []int {
	next := st.Turn
	if len(st.Players[next].Hand)%3 != 1 {
		next = mahjong.Opponent(next)
	}
	start := 1
	if seat == next {
		start = 0
	}
	var res []int
	for i := start; i < len(st.Wall); i += 2 {
		res = append(res, i)
	}
	return res
}

// TurnsToWin 贪心估计最短自摸轮数：沿自己的摸牌位置往后找第一张有效张，摸入后打出
// 向听最小的一张，直到胡牌。返回经过的自己摸牌次数。不计荣和，也不计对家中途碰杠
// 打乱摸牌顺序。返回 false 表示剩余牌墙内无法完成。
func (s *Searcher) TurnsToWin(st *mahjong.GameState, seat int32, hand []mahjong.Tile, melds []mahjong.Meld) (int, bool) {
	draws := DrawIndices(st, seat)
	cur := mahjong.SortedWith(hand)
	rounds, next := 0, 0
	for {
		if len(cur)%3 == 2 {
			if s.hu.CanHu(cur, melds) {
				return rounds, true
			}
			cur = s.discardWorst(cur, melds)
		}
		eff := s.EffectiveTiles(cur, melds)
		if len(eff) == 0 {
			return 0, false
		}
		picked := -1
		for k := next; k < len(draws); k++ {
			if slices.Contains(eff, st.Wall[draws[k]]) {
				picked = k
				break
			}
		}
		if picked < 0 {
			return 0, false
		}
		rounds, next = picked+1, picked+1
		cur = mahjong.SortedWith(cur, st.Wall[draws[picked]])
	}
}

// discardWorst 打出后向听最小的一张，相同时取牌值小的
func (s *Searcher) discardWorst(hand []mahjong.Tile, melds []mahjong.Meld) []mahjong.Tile {
	var best []mahjong.Tile
	bestShanten := 0
	for _, t := range mahjong.UniqueTiles(hand) {
		rest := mahjong.RemoveElements(hand, t, 1)
		if n := s.Shanten(rest, melds); best == nil || n < bestShanten {
			best, bestShanten = rest, n
		}
	}
	return best
}

// UpperBoundFan 已胡时按自摸计算真实番数；未胡时累加当前牌型仍然兼容的番种作为乐观上界
func (s *Searcher) UpperBoundFan(st *mahjong.GameState, seat int32, hand []mahjong.Tile, melds []mahjong.Meld) int {
	if s.hu.CanHu(hand, melds) {
		return s.actualFan(st, seat, hand, melds, mahjong.ReasonSelfDraw)
	}

	rule := s.scorer.Rule()
	fan := 1
	if mahjong.IsMenzen(melds) {
		fan++
	}
	if mahjong.IsFullFlush(hand, melds) {
		fan += 2
	}
	if mahjong.IsAllTriplets(hand, melds) {
		fan += 2
	}
	if mahjong.CountConcealedTriplets(hand, melds) >= 3 {
		fan += 2
	}
	if mahjong.IsTanyao(hand, melds) {
		fan++
	}
	fan += min(mahjong.CountKongs(melds), 2)

	if _, ok := mahjong.CheckYakuman(hand, melds); ok {
		return rule.YakumanFan
	}
	return min(fan, rule.FanCap)
}

func (s *Searcher) summary(st *mahjong.GameState, seat int32, hand []mahjong.Tile, melds []mahjong.Meld, reason mahjong.WinReason) mahjong.ScoreSummary {
	p := st.Players[seat]
	p.Hand = hand
	p.Melds = melds
	return s.scorer.Compute(st.WithPlayer(seat, p), seat, reason)
}

func (s *Searcher) actualFan(st *mahjong.GameState, seat int32, hand []mahjong.Tile, melds []mahjong.Meld, reason mahjong.WinReason) int {
	return s.summary(st, seat, hand, melds, reason).Players[seat].FanTotal
}

// Evaluate fan/(ttw+1)，不可达时为 Unreachable
func Evaluate(fan, ttw int, reachable bool) float64 {
	if !reachable {
		return Unreachable
	}
	return float64(fan) / float64(ttw+1)
}
