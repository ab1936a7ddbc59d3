package simulation_test

import (
	"context"
	"testing"

	"github.com/kevin-chtw/tw_duomj/advisor"
	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/kevin-chtw/tw_duomj/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func advisors(t *testing.T, levels ...string) [mahjong.NP2]advisor.Advisor {
	var res [mahjong.NP2]advisor.Advisor
	for seat, level := range levels {
		a, err := advisor.NewAdvisor(level)
		require.NoError(t, err)
		res[seat] = a
	}
	return res
}

func checkResult(t *testing.T, res simulation.Result) {
	t.Helper()
	assert.EqualValues(t, res.Seed&1, res.FirstTurn)
	assert.Positive(t, res.Steps)
	if res.Winner == mahjong.SeatNull {
		assert.Contains(t, []mahjong.WinReason{mahjong.ReasonWallExhausted}, res.Reason)
		assert.Zero(t, res.Points)
		return
	}
	assert.True(t, res.Reason.IsWin())
	assert.Positive(t, res.Points)
	assert.Equal(t, res.Points, res.Summary.Players[res.Winner].NetChange)
	assert.Equal(t, -res.Points, res.Summary.Players[mahjong.Opponent(res.Winner)].NetChange)
}

func TestRunSingleGameDeterministic(t *testing.T) {
	tests := []struct {
		name   string
		levels []string
		seed   int64
	}{
		{"baseline mirror", []string{advisor.LevelBaseline, advisor.LevelBaseline}, 12345},
		{"search vs baseline", []string{advisor.LevelSearch, advisor.LevelBaseline}, 42},
		{"baseline vs search", []string{advisor.LevelBaseline, advisor.LevelSearch}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := simulation.RunSingleGame(tt.seed, advisors(t, tt.levels...))
			require.NoError(t, err)
			checkResult(t, first)

			again, err := simulation.RunSingleGame(tt.seed, advisors(t, tt.levels...))
			require.NoError(t, err)
			assert.Equal(t, first, again)
		})
	}
}

func TestSeeds(t *testing.T) {
	a := simulation.Seeds(42, 5)
	assert.Len(t, a, 5)
	assert.Equal(t, a, simulation.Seeds(42, 5))
	assert.NotEqual(t, a, simulation.Seeds(43, 5))
	for _, s := range a {
		assert.GreaterOrEqual(t, s, int64(0))
	}
}

func TestRunMany(t *testing.T) {
	runner := simulation.NewRunner(advisors(t, advisor.LevelSearch, advisor.LevelBaseline), mahjong.DefaultRule())
	seeds := simulation.Seeds(42, 6)

	report, results, err := runner.RunMany(context.Background(), seeds, 3)
	require.NoError(t, err)
	require.Len(t, results, len(seeds))
	assert.Equal(t, len(seeds), report.Games)
	assert.Equal(t, report.Games, report.Wins[0]+report.Wins[1]+report.Draws)
	assert.Zero(t, report.NetScore[0]+report.NetScore[1])
	assert.Positive(t, report.GamesPerSecond())

	// 并发结果与逐局运行一致
	for i, seed := range seeds {
		res, err := runner.Run(seed)
		require.NoError(t, err)
		assert.Equal(t, res, results[i])
		checkResult(t, res)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = runner.RunMany(ctx, seeds, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReport(t *testing.T) {
	var r simulation.Report
	r.Add(simulation.Result{Winner: 0, Reason: mahjong.ReasonRon, Points: 64})
	r.Add(simulation.Result{Winner: 1, Reason: mahjong.ReasonSelfDraw, Points: 16})
	r.Add(simulation.Result{Winner: mahjong.SeatNull, Reason: mahjong.ReasonWallExhausted})

	assert.Equal(t, 3, r.Games)
	assert.Equal(t, [2]int{1, 1}, r.Wins)
	assert.Equal(t, 1, r.Draws)
	assert.Equal(t, [2]int64{48, -48}, r.NetScore)
	assert.Equal(t, map[string]int{"ron": 1, "zimo": 1, "wall_exhausted": 1}, r.Reasons)
	assert.InDelta(t, 1.0/3, r.WinRate(0), 1e-9)
	assert.Zero(t, r.GamesPerSecond())
	assert.Contains(t, r.String(), "draws: 1")
}
