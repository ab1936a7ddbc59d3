package mahjong

import (
	"cmp"
	"strconv"
	"strings"
)

type GroupKind int

const (
	GroupPair     GroupKind = iota // 将
	GroupTriplet                   // 刻子（副露的碰、杠也算刻子）
	GroupSequence                  // 顺子
)

var groupKindNames = map[GroupKind]string{
	GroupPair:     "pair",
	GroupTriplet:  "triplet",
	GroupSequence: "sequence",
}

func (k GroupKind) String() string {
	return groupKindNames[k]
}

// Group 拆解出的一组牌，顺子的 Tile 为最小的一张
type Group struct {
	Kind      GroupKind
	Tile      Tile
	Concealed bool // 手内形成或暗杠
	Meld      bool // 来自副露
}

func (g Group) Tiles() []Tile {
	switch g.Kind {
	case GroupPair:
		return MakeTiles(g.Tile, 2)
	case GroupSequence:
		return []Tile{g.Tile, g.Tile + 1, g.Tile + 2}
	default:
		return MakeTiles(g.Tile, 3)
	}
}

func compareGroup(a, b Group) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Tile, b.Tile); c != 0 {
		return c
	}
	if a.Concealed == b.Concealed {
		return 0
	}
	if a.Concealed {
		return 1
	}
	return -1
}

// Decomposition 一种胡牌拆法：1将 + 4组
type Decomposition struct {
	Pair   Tile
	Groups []Group
}

func (d Decomposition) key() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(d.Pair)))
	for _, g := range d.Groups {
		sb.WriteByte('|')
		sb.WriteString(strconv.Itoa(int(g.Kind)))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(int(g.Tile)))
		if g.Concealed {
			sb.WriteByte('c')
		}
	}
	return sb.String()
}

func (d Decomposition) ConcealedTriplets() int {
	n := 0
	for _, g := range d.Groups {
		if g.Kind == GroupTriplet && g.Concealed {
			n++
		}
	}
	return n
}

func (d Decomposition) allOf(kind GroupKind) bool {
	for _, g := range d.Groups {
		if g.Kind != kind {
			return false
		}
	}
	return len(d.Groups) > 0
}

func (d Decomposition) String() string {
	parts := []string{"将(" + TilesName(MakeTiles(d.Pair, 2)) + ")"}
	for _, g := range d.Groups {
		parts = append(parts, g.Kind.String()+"("+TilesName(g.Tiles())+")")
	}
	return strings.Join(parts, " ")
}
