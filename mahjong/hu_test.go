package mahjong_test

import (
	"strconv"
	"testing"

	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/stretchr/testify/assert"
)

type Case struct {
	hand  []mahjong.Tile
	melds []mahjong.Meld
	want  bool
}

func pong(t mahjong.Tile) mahjong.Meld {
	return mahjong.Meld{Kind: mahjong.MeldPong, Tile: t, From: 1}
}

func kong(kind mahjong.MeldKind, t mahjong.Tile) mahjong.Meld {
	return mahjong.Meld{Kind: kind, Tile: t, From: 1}
}

func Test_Hu(t *testing.T) {
	testCases := []Case{
		{hand: []mahjong.Tile{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4}, want: true},
		{hand: []mahjong.Tile{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9, 10, 10}, want: true},
		{hand: []mahjong.Tile{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4, 5, 7}, want: false},
		{hand: []mahjong.Tile{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4}, want: false},
		{hand: []mahjong.Tile{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4}, want: false},
		// 跨花色不成顺
		{hand: []mahjong.Tile{7, 8, 9, 0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3}, want: false},
		{hand: []mahjong.Tile{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4}, melds: []mahjong.Meld{pong(0)}, want: true},
		{hand: []mahjong.Tile{5, 5}, melds: []mahjong.Meld{pong(0), pong(1), kong(mahjong.MeldKongConcealed, 2), pong(3)}, want: true},
		// 副露数与手牌数不匹配
		{hand: []mahjong.Tile{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4}, melds: []mahjong.Meld{pong(5)}, want: false},
		{hand: []mahjong.Tile{}, want: false},
	}

	for i, tc := range testCases {
		t.Run("case"+strconv.Itoa(i), func(t *testing.T) {
			t.Log(mahjong.TilesName(tc.hand))
			assert.Equal(t, tc.want, mahjong.CanHu(tc.hand, tc.melds))
		})
	}
}

func TestHuCoreCache(t *testing.T) {
	core := mahjong.NewHuCore(8)
	hand := []mahjong.Tile{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9, 10, 10}
	for range 3 {
		assert.True(t, core.CanHu(hand, nil))
	}
	assert.False(t, core.CanHu([]mahjong.Tile{0, 0, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23}, nil))
}

func TestDecomposeAll(t *testing.T) {
	hand := []mahjong.Tile{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4}
	ds := mahjong.DecomposeAll(hand, nil)
	// 将为4万：4刻子、012x3+333、000+123x3；将为2万：000+123+234x2
	assert.Len(t, ds, 4)
	for _, d := range ds {
		assert.Len(t, d.Groups, 4)
	}

	assert.Nil(t, mahjong.DecomposeAll([]mahjong.Tile{0, 1}, nil))

	melds := []mahjong.Meld{kong(mahjong.MeldKongConcealed, 20)}
	ds = mahjong.DecomposeAll([]mahjong.Tile{0, 0, 0, 1, 1, 1, 2, 2, 2, 4, 4}, melds)
	assert.NotEmpty(t, ds)
	for _, d := range ds {
		for _, g := range d.Groups {
			if g.Meld {
				assert.True(t, g.Concealed)
			}
		}
	}
}

func TestPatterns(t *testing.T) {
	triplets := []mahjong.Tile{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4}
	assert.True(t, mahjong.IsFourConcealedTriplets(triplets, nil))
	assert.Equal(t, 4, mahjong.CountConcealedTriplets(triplets, nil))
	assert.True(t, mahjong.IsAllTriplets(triplets, nil))
	assert.True(t, mahjong.IsFullFlush(triplets, nil))

	// 其中一刻是碰出来的
	exposed := []mahjong.Tile{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4}
	assert.Equal(t, 3, mahjong.CountConcealedTriplets(exposed, []mahjong.Meld{pong(0)}))
	assert.False(t, mahjong.IsFourConcealedTriplets(exposed, []mahjong.Meld{pong(0)}))

	seq := []mahjong.Tile{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9, 10, 10}
	assert.False(t, mahjong.IsFourConcealedTriplets(seq, nil))
	assert.False(t, mahjong.IsAllSequences(seq, nil))
	assert.Equal(t, 1, mahjong.CountConcealedTriplets(seq, nil))

	pinghu := []mahjong.Tile{1, 2, 3, 4, 5, 6, 10, 11, 12, 19, 20, 21, 22, 22}
	assert.True(t, mahjong.IsAllSequences(pinghu, nil))
	assert.True(t, mahjong.IsTanyao(pinghu, nil))
	assert.False(t, mahjong.IsFullFlush(pinghu, nil))

	terminals := []mahjong.Tile{0, 0, 0, 8, 8, 8, 9, 9, 9, 17, 17, 17, 26, 26}
	assert.True(t, mahjong.IsAllTerminals(terminals, nil))
	assert.False(t, mahjong.IsTanyao(terminals, nil))
	assert.False(t, mahjong.IsAllTerminals(nil, nil))

	kongs := []mahjong.Meld{
		kong(mahjong.MeldKongExposed, 0),
		kong(mahjong.MeldKongConcealed, 1),
		kong(mahjong.MeldKongAdded, 2),
		kong(mahjong.MeldKongExposed, 3),
	}
	assert.True(t, mahjong.IsFourKongs(kongs))
	assert.Equal(t, 4, mahjong.CountKongs(kongs))
	assert.False(t, mahjong.IsFourKongs(kongs[:3]))

	assert.True(t, mahjong.IsMenzen([]mahjong.Meld{kong(mahjong.MeldKongConcealed, 1)}))
	assert.False(t, mahjong.IsMenzen([]mahjong.Meld{kong(mahjong.MeldKongAdded, 1)}))
	assert.False(t, mahjong.IsMenzen([]mahjong.Meld{pong(1)}))
}
