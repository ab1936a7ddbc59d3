package mahjong

import (
	"math/rand"
)

// AllTiles 108张牌，按牌值排列
func AllTiles() []Tile {
	tiles := make([]Tile, 0, TotalTileCount)
	for t := Tile(0); t < TileTypeCount; t++ {
		tiles = append(tiles, MakeTiles(t, SameTileCount)...)
	}
	return tiles
}

// BuildWall 按种子洗牌，同一种子得到同一牌墙
func BuildWall(seed int64) []Tile {
	wall := AllTiles()
	shuffle(rand.New(rand.NewSource(seed)), wall)
	return wall
}

func shuffle(r *rand.Rand, s []Tile) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// deal 从牌墙头部依次给两家各发13张
func deal(wall []Tile) ([NP2][]Tile, []Tile) {
	var hands [NP2][]Tile
	for seat := range NP2 {
		hands[seat] = SortedWith(wall[seat*HandTileCount : (seat+1)*HandTileCount])
	}
	rest := make([]Tile, len(wall)-NP2*HandTileCount)
	copy(rest, wall[NP2*HandTileCount:])
	return hands, rest
}
