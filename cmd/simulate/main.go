package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/kevin-chtw/tw_duomj/advisor"
	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/kevin-chtw/tw_duomj/simulation"
	"github.com/kevin-chtw/tw_duomj/utils"
	"github.com/spf13/pflag"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
)

func main() {
	flags := pflag.NewFlagSet("simulate", pflag.ExitOnError)
	file := flags.String("config", "", "config file for rule and advisor settings")
	games := flags.Int("num_games", 100, "number of games")
	seed := flags.Int64("seed", 1, "base seed")
	workers := flags.Int("workers", 0, "parallel games, 0 for half of the CPUs")
	levels := flags.String("advisors", "search,baseline", "advisor level of seat 0 and seat 1")
	flags.String("log.level", "warn", "log level")
	flags.Parse(os.Args[1:])

	if err := run(*file, flags, *games, *seed, *workers, *levels); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(file string, flags *pflag.FlagSet, games int, seed int64, workers int, levels string) error {
	vp, err := utils.LoadConfig(file, flags)
	if err != nil {
		return err
	}
	l, err := utils.Logger(vp.GetString("log.level"), "")
	if err != nil {
		return err
	}
	logger.SetLogger(l)

	rule, err := mahjong.LoadRule(vp)
	if err != nil {
		return err
	}
	cfg := advisor.DefaultConfig()
	if err := vp.UnmarshalKey("advisor", &cfg); err != nil {
		return fmt.Errorf("unmarshal advisor: %w", err)
	}

	names := strings.Split(levels, ",")
	if len(names) != mahjong.NP2 {
		return fmt.Errorf("need %d advisor levels, got %q", mahjong.NP2, levels)
	}
	var advisors [mahjong.NP2]advisor.Advisor
	for seat, name := range names {
		cfg.Level = strings.TrimSpace(name)
		if advisors[seat], err = advisor.New(cfg, rule); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	report, _, err := simulation.NewRunner(advisors, rule).RunMany(ctx, simulation.Seeds(seed, games), workers)
	if err != nil {
		return err
	}
	fmt.Printf("advisors: %s\n%s\n", levels, report)
	return nil
}
