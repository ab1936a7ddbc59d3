// Package simulation 离线自对局：两个 advisor 按种子对打，统计胜负与积分
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"strings"
	"time"

	"github.com/kevin-chtw/tw_duomj/advisor"
	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// maxSteps 一局的动作上限，正常对局远小于此值
const maxSteps = 1000

var ErrTooManySteps = errors.New("game did not finish")

// Result 一局的结果
type Result struct {
	Seed      int64                `json:"seed"`
	FirstTurn int32                `json:"first_turn"`
	Winner    int32                `json:"winner"`
	Reason    mahjong.WinReason    `json:"reason"`
	Points    int64                `json:"points"` // 赢家所得，流局为 0
	Steps     int                  `json:"steps"`
	Summary   mahjong.ScoreSummary `json:"summary"`
}

// Runner 持有双方的 advisor 和计分规则，可以并发使用
type Runner struct {
	advisors [mahjong.NP2]advisor.Advisor
	scorer   *mahjong.Scorelator
}

func NewRunner(advisors [mahjong.NP2]advisor.Advisor, rule mahjong.Rule) *Runner {
	return &Runner{advisors: advisors, scorer: mahjong.NewScorelator(rule)}
}

// RunSingleGame 用默认规则跑一局，先手为 seed%2
func RunSingleGame(seed int64, advisors [mahjong.NP2]advisor.Advisor) (Result, error) {
	return NewRunner(advisors, mahjong.DefaultRule()).Run(seed)
}

func (r *Runner) Run(seed int64) (Result, error) {
	first := int32(seed & 1)
	res := Result{Seed: seed, FirstTurn: first, Winner: mahjong.SeatNull}
	s := mahjong.NewGame(seed, first)

	for {
		var err error
		if s, err = mahjong.Advance(s); err != nil {
			return res, fmt.Errorf("seed %d: %w", seed, err)
		}
		if s.Ended {
			break
		}
		if res.Steps++; res.Steps > maxSteps {
			return res, fmt.Errorf("%w: seed %d after %d steps", ErrTooManySteps, seed, maxSteps)
		}

		seat := s.Turn
		advice, err := advisor.Decide(r.advisors[seat], s, seat)
		if err != nil {
			return res, fmt.Errorf("seed %d seat %d: %w", seed, seat, err)
		}
		if s, err = mahjong.Apply(s, seat, advice.Action); err != nil {
			return res, fmt.Errorf("seed %d seat %d apply %s: %w", seed, seat, advice.Action, err)
		}
	}

	res.Winner = s.Winner
	res.Reason = s.Reason
	res.Summary = r.scorer.Compute(s, s.Winner, s.Reason)
	if s.Winner != mahjong.SeatNull {
		res.Points = res.Summary.Players[s.Winner].NetChange
	}
	return res, nil
}

// Seeds 由基础种子生成 n 个对局种子
func Seeds(base int64, n int) []int64 {
	rng := rand.New(rand.NewPCG(uint64(base), 0))
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = rng.Int64N(1 << 31)
	}
	return seeds
}

// RunMany 并发跑所有种子，workers<=0 时取 CPU 数的一半。结果按 seeds 的顺序汇总。
func (r *Runner) RunMany(ctx context.Context, seeds []int64, workers int) (Report, []Result, error) {
	if workers <= 0 {
		workers = max(1, runtime.NumCPU()/2)
	}
	start := time.Now()
	results := make([]Result, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seed := range seeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.Run(seed)
			if err != nil {
				return err
			}
			results[i] = res
			logger.Log.Debugf("seed %d winner %d reason %s points %d", seed, res.Winner, res.Reason, res.Points)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, nil, err
	}

	var report Report
	for _, res := range results {
		report.Add(res)
	}
	report.Duration = time.Since(start)
	return report, results, nil
}

// Report 汇总统计
type Report struct {
	Games    int                `json:"games"`
	Wins     [mahjong.NP2]int   `json:"wins"`
	Draws    int                `json:"draws"`
	NetScore [mahjong.NP2]int64 `json:"net_score"`
	Reasons  map[string]int     `json:"reasons"`
	Duration time.Duration      `json:"duration"`
}

func (r *Report) Add(res Result) {
	r.Games++
	if r.Reasons == nil {
		r.Reasons = make(map[string]int)
	}
	r.Reasons[res.Reason.String()]++
	if res.Winner == mahjong.SeatNull {
		r.Draws++
		return
	}
	r.Wins[res.Winner]++
	r.NetScore[res.Winner] += res.Points
	r.NetScore[mahjong.Opponent(res.Winner)] -= res.Points
}

func (r Report) GamesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Games) / r.Duration.Seconds()
}

func (r Report) WinRate(seat int32) float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins[seat]) / float64(r.Games)
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "games: %d  time: %s  games/s: %.2f\n", r.Games, r.Duration.Round(time.Millisecond), r.GamesPerSecond())
	for seat := range int32(mahjong.NP2) {
		fmt.Fprintf(&b, "seat %d: wins %d (%.1f%%)  net score %+d\n", seat, r.Wins[seat], 100*r.WinRate(seat), r.NetScore[seat])
	}
	fmt.Fprintf(&b, "draws: %d\n", r.Draws)
	return b.String()
}
