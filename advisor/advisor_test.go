package advisor_test

import (
	"testing"

	"github.com/kevin-chtw/tw_duomj/advisor"
	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// opponentDiscard 0 号刚打出 tile，轮到 1 号响应
func opponentDiscard(tile mahjong.Tile, wall []mahjong.Tile, me mahjong.PlayerState) *mahjong.GameState {
	s := newState(1, wall, mahjong.PlayerState{Hand: filler, Discards: []mahjong.Tile{tile}}, me)
	s.LastDiscard = &mahjong.DiscardInfo{Seat: 0, Tile: tile}
	return s
}

func newSearch(t *testing.T) advisor.Advisor {
	a, err := advisor.NewAdvisor(advisor.LevelSearch)
	require.NoError(t, err)
	return a
}

func TestNewAdvisor(t *testing.T) {
	for _, level := range []string{advisor.LevelSearch, advisor.LevelBaseline} {
		a, err := advisor.NewAdvisor(level)
		require.NoError(t, err, level)
		assert.NotNil(t, a)
	}
	_, err := advisor.NewAdvisor("random")
	assert.Error(t, err)
}

func TestSearchOnDrawWinsCompleteHand(t *testing.T) {
	// 有暗杠可选时仍然直接自摸
	hand := []mahjong.Tile{0, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9}
	s := newState(0, []mahjong.Tile{20, 21, 22}, mahjong.PlayerState{Hand: hand}, mahjong.PlayerState{Hand: filler})
	require.NotEmpty(t, mahjong.ConcealedKongTiles(hand))

	for _, level := range []string{advisor.LevelSearch, advisor.LevelBaseline} {
		a, err := advisor.NewAdvisor(level)
		require.NoError(t, err)
		advice, err := a.OnDraw(s, 0)
		require.NoError(t, err)
		assert.Equal(t, mahjong.WinAction(mahjong.WinSelf, mahjong.TileNull, mahjong.SeatNull), advice.Action, level)
	}
}

func TestSearchOnOpponentDiscard(t *testing.T) {
	tests := []struct {
		name string
		s    *mahjong.GameState
		want mahjong.Action
	}{
		{
			name: "ron",
			s:    opponentDiscard(10, []mahjong.Tile{20}, mahjong.PlayerState{Hand: tenpai}),
			want: mahjong.WinAction(mahjong.WinRon, 10, 0),
		},
		{
			name: "exposed kong",
			s: opponentDiscard(5, []mahjong.Tile{24}, mahjong.PlayerState{
				Hand:  []mahjong.Tile{0, 1, 2, 5, 5, 5, 9, 10, 11, 24},
				Melds: []mahjong.Meld{pong(13)},
			}),
			want: mahjong.KongAction(mahjong.KongStyleExposed, 5, 0),
		},
		{
			name: "pass keeps tenpai",
			s: opponentDiscard(5, []mahjong.Tile{25}, mahjong.PlayerState{
				Hand: []mahjong.Tile{0, 1, 2, 5, 5, 9, 10, 11, 18, 19, 20, 24, 26},
			}),
			want: mahjong.PassAction(),
		},
	}
	a := newSearch(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advice, err := a.OnOpponentDiscard(tt.s, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, advice.Action)
			assert.NotEmpty(t, advice.Reason)
			assert.True(t, mahjong.HasChoice(mahjong.LegalChoices(tt.s, 1), advice.Action))
		})
	}
}

func TestSearchOnDiscardAvoidsRon(t *testing.T) {
	me := []mahjong.Tile{1, 2, 3, 4, 5, 6, 11, 19, 20, 21, 22, 22, 24, 25}
	wall := []mahjong.Tile{0, 23, 0, 26, 0, 24, 0, 13}
	s := newState(0, wall, mahjong.PlayerState{Hand: me}, mahjong.PlayerState{Hand: tenpai})

	a := advisor.NewSearch(newSearcher(), 20)
	advice, err := a.OnDiscard(s, 0)
	require.NoError(t, err)
	assert.Equal(t, mahjong.DiscardAction(24), advice.Action)

	candidates, ok := advice.Detail["candidates"].([]advisor.Candidate)
	require.True(t, ok)
	assert.Len(t, candidates, len(mahjong.UniqueTiles(me)))
	for _, c := range candidates {
		if c.Discard != 11 {
			assert.False(t, c.Danger, c.Discard)
			continue
		}
		// 11 是最快的听牌打法，但会被对家平和荣和
		assert.True(t, c.Danger)
		assert.EqualValues(t, 128, c.OppRonPoints)
		require.NotNil(t, c.MyTTW)
		assert.Equal(t, 1, *c.MyTTW)
		assert.InDelta(t, c.MyScore-128, c.AdjustedScore, 1e-9)
	}
	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].AdjustedScore, candidates[i].AdjustedScore)
	}
}

func TestAdviceNotApplicable(t *testing.T) {
	a := newSearch(t)
	fresh := mahjong.NewGame(7, 0)

	_, err := a.OnDiscard(fresh, 0)
	assert.ErrorIs(t, err, advisor.ErrNotApplicable)
	_, err = a.OnOpponentDiscard(fresh, 1)
	assert.ErrorIs(t, err, advisor.ErrNotApplicable)
	_, err = a.OnDraw(fresh, 2)
	assert.ErrorIs(t, err, advisor.ErrNotApplicable)
}

func TestBaseline(t *testing.T) {
	b := advisor.NewBaseline()

	t.Run("discard fewest suit", func(t *testing.T) {
		hand := []mahjong.Tile{0, 1, 2, 3, 4, 9, 15, 18, 19, 20, 21, 22, 23, 24}
		s := newState(0, nil, mahjong.PlayerState{Hand: hand}, mahjong.PlayerState{Hand: filler})
		advice, err := b.OnDiscard(s, 0)
		require.NoError(t, err)
		assert.Equal(t, mahjong.DiscardAction(9), advice.Action)

		advice, err = b.OnDraw(s, 0)
		require.NoError(t, err)
		assert.Equal(t, mahjong.DiscardAction(9), advice.Action)
	})

	tests := []struct {
		name string
		s    *mahjong.GameState
		want mahjong.Action
	}{
		{"ron", opponentDiscard(10, nil, mahjong.PlayerState{Hand: tenpai}), mahjong.WinAction(mahjong.WinRon, 10, 0)},
		{"peng", opponentDiscard(5, nil, mahjong.PlayerState{Hand: []mahjong.Tile{0, 1, 2, 5, 5, 9, 10, 11, 18, 19, 20, 24, 26}}), mahjong.PengAction(5, 0)},
		{"pass", opponentDiscard(15, nil, mahjong.PlayerState{Hand: tenpai}), mahjong.PassAction()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advice, err := b.OnOpponentDiscard(tt.s, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, advice.Action)
		})
	}
}

func robKongState(t *testing.T) *mahjong.GameState {
	owner := mahjong.PlayerState{
		Hand:  []mahjong.Tile{10, 2, 3, 4, 5},
		Melds: []mahjong.Meld{{Kind: mahjong.MeldPong, Tile: 10, From: 1}},
	}
	robber := mahjong.PlayerState{Hand: []mahjong.Tile{6, 6, 6, 7, 7, 7, 8, 8, 8, 9, 9, 9, 10}}
	pending, rob, err := mahjong.PrepareAddedKong(newState(0, []mahjong.Tile{20, 21}, owner, robber), 0, 10)
	require.NoError(t, err)
	require.True(t, rob)
	return pending
}

func TestDecide(t *testing.T) {
	a := newSearch(t)
	fresh := mahjong.NewGame(7, 0)

	advice, err := advisor.Decide(a, fresh, 0)
	require.NoError(t, err)
	assert.Equal(t, mahjong.DrawAction(), advice.Action)

	_, err = advisor.Decide(a, fresh, 1)
	assert.ErrorIs(t, err, advisor.ErrNotApplicable)

	drawn, _, err := mahjong.Draw(fresh, 0)
	require.NoError(t, err)
	advice, err = advisor.Decide(a, drawn, 0)
	require.NoError(t, err)
	assert.True(t, mahjong.HasChoice(mahjong.LegalChoices(drawn, 0), advice.Action))

	rob := robKongState(t)
	advice, err = advisor.Decide(a, rob, 1)
	require.NoError(t, err)
	assert.Equal(t, mahjong.WinAction(mahjong.WinRob, 10, 0), advice.Action)
	_, err = advisor.Decide(a, rob, 0)
	assert.ErrorIs(t, err, advisor.ErrNotApplicable)

	ended, err := mahjong.Abort(fresh)
	require.NoError(t, err)
	_, err = advisor.Decide(a, ended, 0)
	assert.ErrorIs(t, err, advisor.ErrNotApplicable)
}
