package mahjong

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/spf13/viper"
)

// Manual 配牌，yaml 格式：
//
//	enable: true
//	cards:
//	  - "1万,1万,1万,2万"   # 0号位手牌，不足13张随机补齐
//	  - "5筒,5筒"          # 1号位手牌
//	  - "9条,9条"          # 牌墙头部，依次摸到
type Manual struct {
	vp *viper.Viper
}

func NewManual(file string) (*Manual, error) {
	m := &Manual{
		vp: viper.New(),
	}
	m.vp.SetConfigType("yaml")
	m.vp.SetConfigFile(file)
	if err := m.vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read manual %s: %w", file, err)
	}
	return m, nil
}

func (m *Manual) Enabled() bool {
	if m == nil {
		return false
	}
	return m.vp.GetBool("enable")
}

// Wall 按配牌生成完整牌墙，未指定的牌按 seed 洗牌
func (m *Manual) Wall(seed int64) ([]Tile, error) {
	cards := m.vp.GetStringSlice("cards")
	if len(cards) > NP2+1 {
		return nil, fmt.Errorf("too many card groups %d", len(cards))
	}
	groups := make([][]Tile, NP2+1)
	remain := CountTiles(AllTiles())
	for i, names := range cards {
		for _, t := range ParseTiles(names) {
			if !t.IsValid() {
				return nil, fmt.Errorf("invalid tile in %q", names)
			}
			if remain[t] == 0 {
				return nil, fmt.Errorf("tile %s overflow", t)
			}
			remain[t]--
			groups[i] = append(groups[i], t)
		}
	}
	for seat := range NP2 {
		if len(groups[seat]) > HandTileCount {
			return nil, fmt.Errorf("seat %d has %d preset tiles", seat, len(groups[seat]))
		}
	}

	var rests []Tile
	for t, n := range remain {
		rests = append(rests, MakeTiles(Tile(t), int(n))...)
	}
	shuffle(rand.New(rand.NewSource(seed)), rests)

	out := make([]Tile, 0, TotalTileCount)
	for seat := range NP2 {
		more := HandTileCount - len(groups[seat])
		out = append(out, groups[seat]...)
		out = append(out, rests[:more]...)
		rests = rests[more:]
	}
	out = append(out, groups[NP2]...)
	return slices.Concat(out, rests), nil
}

func (m *Manual) NewGame(seed int64, firstTurn int32) (*GameState, error) {
	wall, err := m.Wall(seed)
	if err != nil {
		return nil, err
	}
	return NewGameWithWall(seed, wall, firstTurn), nil
}
