package mahjong

import (
	"cmp"
	"slices"
)

type huKey struct {
	counts TileCounts
	need   int8
}

type planKey struct {
	counts   TileCounts
	left     int8
	pairUsed bool
}

// HuCore 胡牌判定与拆解，持有按牌值计数键控的缓存
type HuCore struct {
	huCache   *Cache[huKey, bool]
	planCache *Cache[planKey, [][]Group]
}

var DefaultHuCore = NewHuCore(DefaultCacheSize)

func NewHuCore(cacheSize int) *HuCore {
	return &HuCore{
		huCache:   NewCache[huKey, bool](cacheSize),
		planCache: NewCache[planKey, [][]Group](cacheSize),
	}
}

// CanHu 4面子1将，tiles 为手牌（不含副露）
func CanHu(tiles []Tile, melds []Meld) bool {
	return DefaultHuCore.CanHu(tiles, melds)
}

func (h *HuCore) CanHu(tiles []Tile, melds []Meld) bool {
	n := len(tiles)
	if n < 2 || (n-2)%3 != 0 {
		return false
	}
	need := (n - 2) / 3
	if len(melds)+need != MeldCountToWin {
		return false
	}
	counts := CountTiles(tiles)
	if counts.Total() != n {
		return false
	}
	for i := range counts {
		if counts[i] < 2 {
			continue
		}
		counts[i] -= 2
		if h.canFormMelds(counts, need) {
			return true
		}
		counts[i] += 2
	}
	return false
}

func (h *HuCore) canFormMelds(c TileCounts, need int) bool {
	if need == 0 {
		return c.Total() == 0
	}
	key := huKey{counts: c, need: int8(need)}
	if v, ok := h.huCache.Get(key); ok {
		return v
	}
	ok := h.formMelds(c, need)
	h.huCache.Put(key, ok)
	return ok
}

// formMelds 只处理最小的非零牌：刻子或顺子
func (h *HuCore) formMelds(c TileCounts, need int) bool {
	i := c.first()
	if i < 0 {
		return false
	}
	if c[i] >= 3 {
		next := c
		next[i] -= 3
		if h.canFormMelds(next, need-1) {
			return true
		}
	}
	if c.canSequence(i) {
		next := c
		next[i]--
		next[i+1]--
		next[i+2]--
		if h.canFormMelds(next, need-1) {
			return true
		}
	}
	return false
}

// DecomposeAll 枚举所有不同的胡牌拆法，未胡返回 nil
func DecomposeAll(hand []Tile, melds []Meld) []Decomposition {
	return DefaultHuCore.DecomposeAll(hand, melds)
}

func (h *HuCore) DecomposeAll(hand []Tile, melds []Meld) []Decomposition {
	if !h.CanHu(hand, melds) {
		return nil
	}
	committed := make([]Group, 0, len(melds))
	for _, m := range melds {
		committed = append(committed, Group{
			Kind:      GroupTriplet,
			Tile:      m.Tile,
			Concealed: m.Kind == MeldKongConcealed,
			Meld:      true,
		})
	}

	left := MeldCountToWin - len(melds)
	seen := make(map[string]bool)
	var res []Decomposition
	for _, plan := range h.plans(CountTiles(hand), left, false) {
		d := Decomposition{Pair: TileNull}
		for _, g := range plan {
			if g.Kind == GroupPair {
				d.Pair = g.Tile
				continue
			}
			d.Groups = append(d.Groups, g)
		}
		d.Groups = append(d.Groups, committed...)
		slices.SortFunc(d.Groups, compareGroup)
		key := d.key()
		if seen[key] {
			continue
		}
		seen[key] = true
		res = append(res, d)
	}
	slices.SortFunc(res, func(a, b Decomposition) int {
		return cmp.Compare(a.key(), b.key())
	})
	return res
}

// plans 返回剩余牌的所有拆法（含将），结果被缓存，调用方不可修改
func (h *HuCore) plans(c TileCounts, left int, pairUsed bool) [][]Group {
	want := 3 * left
	if !pairUsed {
		want += 2
	}
	total := c.Total()
	if total != want {
		return nil
	}
	if total == 0 {
		return [][]Group{{}}
	}

	key := planKey{counts: c, left: int8(left), pairUsed: pairUsed}
	if v, ok := h.planCache.Get(key); ok {
		return v
	}

	var out [][]Group
	i := c.first()
	if !pairUsed {
		for j := i; j < TileTypeCount; j++ {
			if c[j] < 2 {
				continue
			}
			next := c
			next[j] -= 2
			out = prependPlans(out, Group{Kind: GroupPair, Tile: Tile(j), Concealed: true}, h.plans(next, left, true))
		}
	}
	if left > 0 && c[i] >= 3 {
		next := c
		next[i] -= 3
		out = prependPlans(out, Group{Kind: GroupTriplet, Tile: Tile(i), Concealed: true}, h.plans(next, left-1, pairUsed))
	}
	if left > 0 && c.canSequence(i) {
		next := c
		next[i]--
		next[i+1]--
		next[i+2]--
		out = prependPlans(out, Group{Kind: GroupSequence, Tile: Tile(i), Concealed: true}, h.plans(next, left-1, pairUsed))
	}

	h.planCache.Put(key, out)
	return out
}

func prependPlans(out [][]Group, g Group, rests [][]Group) [][]Group {
	for _, rest := range rests {
		plan := make([]Group, 0, len(rest)+1)
		plan = append(plan, g)
		plan = append(plan, rest...)
		out = append(out, plan)
	}
	return out
}
