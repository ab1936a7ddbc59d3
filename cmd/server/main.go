package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kevin-chtw/tw_duomj/advisor"
	"github.com/kevin-chtw/tw_duomj/game"
	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/kevin-chtw/tw_duomj/service"
	"github.com/kevin-chtw/tw_duomj/storage"
	"github.com/kevin-chtw/tw_duomj/utils"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	pitaya "github.com/topfreegames/pitaya/v3/pkg"
	"github.com/topfreegames/pitaya/v3/pkg/acceptor"
	"github.com/topfreegames/pitaya/v3/pkg/component"
	"github.com/topfreegames/pitaya/v3/pkg/config"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
	"github.com/topfreegames/pitaya/v3/pkg/serialize/json"
)

func main() {
	flags := pflag.NewFlagSet("server", pflag.ExitOnError)
	file := flags.String("config", "config.yaml", "config file, empty to use defaults")
	flags.String("server.addr", ":3250", "websocket listen address")
	flags.String("log.level", "info", "log level")
	flags.Parse(os.Args[1:])

	if err := run(*file, flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(file string, flags *pflag.FlagSet) error {
	vp, err := utils.LoadConfig(file, flags)
	if err != nil {
		return err
	}
	l, err := utils.Logger(vp.GetString("log.level"), vp.GetString("log.dir"))
	if err != nil {
		return err
	}
	logger.SetLogger(l)

	rule, err := mahjong.LoadRule(vp)
	if err != nil {
		return err
	}
	opts, err := tableOptions(vp, rule)
	if err != nil {
		return err
	}

	var ledger *storage.Ledger
	if vp.GetString("redis.addr") != "" {
		cfg := storage.DefaultConfig()
		if err := vp.UnmarshalKey("redis", &cfg); err != nil {
			return fmt.Errorf("unmarshal redis: %w", err)
		}
		ledger = storage.NewLedger(storage.NewClient(cfg), cfg)
		defer ledger.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if _, err := ledger.Score(ctx, "ping"); err != nil {
			logger.Log.Warnf("redis %s unavailable: %v", cfg.Addr, err)
		}
		cancel()
		opts.Settler = ledger
	}

	serverType := vp.GetString("server.type")
	conf := config.NewDefaultPitayaConfig()
	builder := pitaya.NewDefaultBuilder(true, serverType, pitaya.Standalone, map[string]string{}, *conf)
	builder.AddAcceptor(acceptor.NewWSAcceptor(vp.GetString("server.addr")))
	builder.Serializer = json.NewSerializer()
	app := builder.Build()
	defer app.Shutdown()

	opts.Sender = service.NewPusher(app, serverType)
	mgr := game.NewTableManager(opts)
	defer mgr.Close()

	app.Register(service.NewRoom(app, mgr, ledger), component.WithName("room"), component.WithNameFunc(strings.ToLower))
	logger.Log.Infof("duomj server listening on %s", vp.GetString("server.addr"))
	app.Start()
	return nil
}

func tableOptions(vp *viper.Viper, rule mahjong.Rule) (game.Options, error) {
	cfg := game.DefaultConfig()
	if err := vp.UnmarshalKey("table", &cfg); err != nil {
		return game.Options{}, fmt.Errorf("unmarshal table: %w", err)
	}
	botCfg := advisor.DefaultConfig()
	if err := vp.UnmarshalKey("advisor", &botCfg); err != nil {
		return game.Options{}, fmt.Errorf("unmarshal advisor: %w", err)
	}
	bot, err := advisor.New(botCfg, rule)
	if err != nil {
		return game.Options{}, err
	}
	// 提示总是用搜索
	hintCfg := botCfg
	hintCfg.Level = advisor.LevelSearch
	hinter, err := advisor.New(hintCfg, rule)
	if err != nil {
		return game.Options{}, err
	}

	opts := game.Options{
		Config: cfg,
		Rule:   rule,
		Bot:    bot,
		Hinter: hinter,
	}
	if cfg.Manual != "" {
		m, err := mahjong.NewManual(cfg.Manual)
		if err != nil {
			return game.Options{}, err
		}
		opts.Dealer = game.ManualDealer(m)
	}
	return opts, nil
}
