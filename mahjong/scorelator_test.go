package mahjong_test

import (
	"testing"

	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func winState(winner int32, hand []mahjong.Tile, melds []mahjong.Meld) *mahjong.GameState {
	s := newState(winner, nil, mahjong.PlayerState{}, mahjong.PlayerState{})
	s.Players[winner] = mahjong.PlayerState{Hand: hand, Melds: melds}
	return s
}

func fanNames(items []mahjong.FanItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func TestFanToPoints(t *testing.T) {
	assert.EqualValues(t, 8, mahjong.FanToPoints(0, 8))
	assert.EqualValues(t, 256, mahjong.FanToPoints(5, 8))
	assert.EqualValues(t, 2048, mahjong.FanToPoints(8, 8))
	assert.EqualValues(t, 8, mahjong.FanToPoints(-3, 8))
}

func TestScorePinghu(t *testing.T) {
	hand := []mahjong.Tile{1, 2, 3, 4, 5, 6, 10, 11, 12, 19, 20, 21, 22, 22}
	testCases := []struct {
		reason mahjong.WinReason
		fan    int
	}{
		{mahjong.ReasonRon, 5},
		{mahjong.ReasonSelfDraw, 6},
		{mahjong.ReasonSelfDrawKong, 7},
	}
	for _, tc := range testCases {
		t.Run(tc.reason.String(), func(t *testing.T) {
			summary := mahjong.ComputeScoreSummary(winState(0, hand, nil), 0, tc.reason)
			assert.False(t, summary.Yakuman)
			assert.EqualValues(t, 0, summary.Winner)
			win, lose := summary.Players[0], summary.Players[1]
			assert.Equal(t, tc.fan, win.FanTotal)
			assert.Subset(t, fanNames(win.Breakdown), []string{"和底", "门前清", "断幺九", "平和"})
			assert.Equal(t, -tc.fan, lose.FanTotal)
			assert.Equal(t, mahjong.FanToPoints(tc.fan, mahjong.DefaultBaseScore), win.NetChange)
			assert.Equal(t, -win.NetChange, lose.NetChange)
		})
	}
}

func TestScoreCapped(t *testing.T) {
	hand := []mahjong.Tile{2, 2, 2, 3, 3, 3, 5, 5, 5, 7, 7}
	s := winState(1, hand, []mahjong.Meld{pong(1)})
	summary := mahjong.ComputeScoreSummary(s, 1, mahjong.ReasonSelfDraw)
	win := summary.Players[1]
	// 和底1 自摸1 对对胡2 三暗刻+1 清一色2 断幺九1 = 8，封顶7
	assert.Equal(t, mahjong.DefaultFanCap, win.FanTotal)
	assert.Contains(t, fanNames(win.Breakdown), "封顶")
	assert.NotContains(t, fanNames(win.Breakdown), "门前清")
	assert.EqualValues(t, 1024, win.NetChange)
	assert.EqualValues(t, -1024, summary.Players[0].NetChange)
}

func TestScoreYakuman(t *testing.T) {
	hand := []mahjong.Tile{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4}
	summary := mahjong.ComputeScoreSummary(winState(0, hand, nil), 0, mahjong.ReasonSelfDraw)
	require.True(t, summary.Yakuman)
	win, lose := summary.Players[0], summary.Players[1]
	assert.Equal(t, 8, win.FanTotal)
	require.Len(t, win.Breakdown, 1)
	assert.Equal(t, "四暗刻", win.Breakdown[0].Detail)
	assert.Equal(t, -8, lose.FanTotal)
	assert.EqualValues(t, 2048, win.NetChange)
	assert.EqualValues(t, -2048, lose.NetChange)

	name, ok := mahjong.CheckYakuman([]mahjong.Tile{5, 5}, []mahjong.Meld{
		kong(mahjong.MeldKongExposed, 0),
		kong(mahjong.MeldKongAdded, 1),
		kong(mahjong.MeldKongConcealed, 2),
		kong(mahjong.MeldKongExposed, 3),
	})
	assert.True(t, ok)
	assert.Equal(t, "四杠", name)
}

func TestScoreNoWinner(t *testing.T) {
	s := mahjong.NewGame(1, 0)
	summary := mahjong.ComputeScoreSummary(s, mahjong.SeatNull, mahjong.ReasonWallExhausted)
	assert.EqualValues(t, mahjong.SeatNull, summary.Winner)
	assert.False(t, summary.Yakuman)
	for _, p := range summary.Players {
		assert.Zero(t, p.FanTotal)
		assert.Zero(t, p.NetChange)
		assert.Empty(t, p.Breakdown)
	}
}

func TestScoreRobKong(t *testing.T) {
	pending, rob, err := mahjong.PrepareAddedKong(robKongState(), 0, 10)
	require.NoError(t, err)
	require.True(t, rob)
	end, err := mahjong.ResolveRobKong(pending, 1, true)
	require.NoError(t, err)

	summary := mahjong.ComputeScoreSummary(end, end.Winner, end.Reason)
	assert.EqualValues(t, 1, summary.Winner)
	assert.Equal(t, mahjong.ReasonRobKong, summary.Reason)
	assert.True(t, summary.Yakuman)
	assert.Positive(t, summary.Players[1].NetChange)
	assert.Equal(t, -summary.Players[1].NetChange, summary.Players[0].NetChange)
}

func TestScoreCustomRule(t *testing.T) {
	rule := mahjong.Rule{BaseScore: 1, FanCap: 3, YakumanFan: 10}
	c := mahjong.NewScorelator(rule)
	assert.Equal(t, rule, c.Rule())

	hand := []mahjong.Tile{1, 2, 3, 4, 5, 6, 10, 11, 12, 19, 20, 21, 22, 22}
	summary := c.Compute(winState(0, hand, nil), 0, mahjong.ReasonRon)
	assert.Equal(t, 3, summary.Players[0].FanTotal)
	assert.EqualValues(t, 8, summary.Players[0].NetChange)
}
