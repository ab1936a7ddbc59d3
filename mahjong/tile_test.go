package mahjong_test

import (
	"slices"
	"testing"

	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileName(t *testing.T) {
	assert.Equal(t, "1万", mahjong.Tile(0).Name())
	assert.Equal(t, "9万", mahjong.Tile(8).Name())
	assert.Equal(t, "1条", mahjong.Tile(9).Name())
	assert.Equal(t, "9筒", mahjong.Tile(26).Name())
	assert.Equal(t, "", mahjong.TileNull.Name())
	assert.Equal(t, "1万, 5条", mahjong.TilesName([]mahjong.Tile{0, 13}))
}

func TestParseTiles(t *testing.T) {
	tiles := mahjong.ParseTiles("1万, 9条,5筒")
	assert.Equal(t, []mahjong.Tile{0, 17, 22}, tiles)
	assert.Equal(t, mahjong.TileNull, mahjong.ParseTile("0万"))
	assert.Equal(t, mahjong.TileNull, mahjong.ParseTile("1东"))
	assert.Nil(t, mahjong.ParseTiles(" "))
}

func TestBuildWall(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		wall := mahjong.BuildWall(seed)
		require.Len(t, wall, mahjong.TotalTileCount)
		counts := mahjong.CountTiles(wall)
		for tile, n := range counts {
			assert.EqualValues(t, mahjong.SameTileCount, n, "seed %d tile %d", seed, tile)
		}
		assert.Equal(t, wall, mahjong.BuildWall(seed))
	}
	assert.False(t, slices.Equal(mahjong.BuildWall(1), mahjong.BuildWall(2)))
}

func TestRemoveElements(t *testing.T) {
	tiles := []mahjong.Tile{1, 1, 2, 1}
	got := mahjong.RemoveElements(tiles, 1, 2)
	assert.Equal(t, []mahjong.Tile{2, 1}, got)
	assert.Equal(t, []mahjong.Tile{1, 1, 2, 1}, tiles)
	assert.Equal(t, []mahjong.Tile{1, 2, 3}, mahjong.SortedWith([]mahjong.Tile{3, 1}, 2))
}
