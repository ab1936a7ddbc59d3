package mahjong

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

const TileNull Tile = -1

type Suit int

const (
	SuitCharacter Suit = iota // 万
	SuitBamboo                // 条
	SuitDot                   // 筒
	SuitCount
)

var suitNames = [SuitCount]string{"万", "条", "筒"}

// 静态表：最后一个 rune -> 花色
var lastRuneToSuit = map[rune]Suit{
	'万': SuitCharacter,
	'条': SuitBamboo,
	'筒': SuitDot,
}

func (s Suit) Name() string {
	if s < 0 || s >= SuitCount {
		return ""
	}
	return suitNames[s]
}

// Tile 0..26，suit = t/9，rank = t%9+1
type Tile int32

func MakeTile(suit Suit, rank int) Tile {
	return Tile(int(suit)*9 + rank - 1)
}

func (t Tile) Suit() Suit {
	return Suit(t / 9)
}

func (t Tile) Rank() int {
	return int(t%9) + 1
}

func (t Tile) IsValid() bool {
	return t >= 0 && t < TileTypeCount
}

// IsTerminal 幺九牌
func (t Tile) IsTerminal() bool {
	r := t.Rank()
	return r == 1 || r == 9
}

func (t Tile) Name() string {
	if !t.IsValid() {
		return ""
	}
	return strconv.Itoa(t.Rank()) + suitNames[t.Suit()]
}

func (t Tile) String() string {
	return t.Name()
}

func TilesName(tiles []Tile) string {
	names := make([]string, 0, len(tiles))
	for _, tile := range tiles {
		names = append(names, tile.Name())
	}
	return strings.Join(names, ", ")
}

// ParseTiles 解析 "1万,2万,3条" 形式的牌名
func ParseTiles(names string) []Tile {
	if strings.TrimSpace(names) == "" {
		return nil
	}
	parts := strings.Split(names, ",")
	res := make([]Tile, 0, len(parts))
	for _, name := range parts {
		res = append(res, ParseTile(strings.TrimSpace(name)))
	}
	return res
}

func ParseTile(name string) Tile {
	if len(name) < 2 {
		return TileNull
	}
	r, size := utf8.DecodeLastRuneInString(name)
	suit, ok := lastRuneToSuit[r]
	if !ok {
		return TileNull
	}
	rank, err := strconv.Atoi(name[:len(name)-size])
	if err != nil || rank < 1 || rank > 9 {
		return TileNull
	}
	return MakeTile(suit, rank)
}

func MakeTiles(t Tile, count int) []Tile {
	if count <= 0 {
		return []Tile{}
	}
	res := make([]Tile, count)
	for i := range res {
		res[i] = t
	}
	return res
}

func CountElement(tiles []Tile, t Tile) int {
	count := 0
	for _, v := range tiles {
		if v == t {
			count++
		}
	}
	return count
}

// RemoveElements 返回移除 count 张 t 之后的新切片，不修改入参
func RemoveElements(tiles []Tile, t Tile, count int) []Tile {
	res := make([]Tile, 0, len(tiles))
	for _, v := range tiles {
		if v == t && count > 0 {
			count--
			continue
		}
		res = append(res, v)
	}
	return res
}

// SortedWith 返回加入 extra 之后排好序的新切片
func SortedWith(tiles []Tile, extra ...Tile) []Tile {
	res := make([]Tile, 0, len(tiles)+len(extra))
	res = append(res, tiles...)
	res = append(res, extra...)
	slices.Sort(res)
	return res
}

// UniqueTiles 去重并排序
func UniqueTiles(tiles []Tile) []Tile {
	res := slices.Clone(tiles)
	slices.Sort(res)
	return slices.Compact(res)
}

// TileCounts 按牌值计数，可比较，可直接作为缓存键
type TileCounts [TileTypeCount]uint8

func CountTiles(tiles []Tile) TileCounts {
	var c TileCounts
	for _, t := range tiles {
		if t.IsValid() {
			c[t]++
		}
	}
	return c
}

func (c *TileCounts) Total() int {
	total := 0
	for _, n := range c {
		total += int(n)
	}
	return total
}

// first 第一个非零的位置，全空返回 -1
func (c *TileCounts) first() int {
	for i, n := range c {
		if n > 0 {
			return i
		}
	}
	return -1
}

// canSequence 以 i 开头的顺子，不跨花色
func (c *TileCounts) canSequence(i int) bool {
	return i%9 <= 6 && c[i] > 0 && c[i+1] > 0 && c[i+2] > 0
}
