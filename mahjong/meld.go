package mahjong

import "fmt"

// Meld 副露，创建后不可修改，升级加杠时生成新的副露列表
type Meld struct {
	Kind MeldKind
	Tile Tile
	From int32 // 被碰/杠的座位，暗杠为自己
}

func (m Meld) Tiles() []Tile {
	if m.Kind.IsKong() {
		return MakeTiles(m.Tile, 4)
	}
	return MakeTiles(m.Tile, 3)
}

func (m Meld) String() string {
	return fmt.Sprintf("%s(%s)", m.Kind, TilesName(m.Tiles()))
}

// MeldsTiles 所有副露的牌
func MeldsTiles(melds []Meld) []Tile {
	var res []Tile
	for _, m := range melds {
		res = append(res, m.Tiles()...)
	}
	return res
}

func findPong(melds []Meld, tile Tile) int {
	for i, m := range melds {
		if m.Kind == MeldPong && m.Tile == tile {
			return i
		}
	}
	return -1
}

// upgradePong 将第一个匹配的碰升级为加杠
func upgradePong(melds []Meld, tile Tile) ([]Meld, bool) {
	i := findPong(melds, tile)
	if i < 0 {
		return melds, false
	}
	res := make([]Meld, len(melds))
	copy(res, melds)
	res[i] = Meld{Kind: MeldKongAdded, Tile: tile, From: melds[i].From}
	return res, true
}

func appendMeld(melds []Meld, m Meld) []Meld {
	res := make([]Meld, 0, len(melds)+1)
	res = append(res, melds...)
	return append(res, m)
}
