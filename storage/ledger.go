package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/redis/go-redis/v9"
)

// Config redis 段
type Config struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	Prefix       string `mapstructure:"prefix"`
	InitialScore int64  `mapstructure:"initial_score"`
	RecordLimit  int64  `mapstructure:"record_limit"`
}

func DefaultConfig() Config {
	return Config{
		Addr:         "127.0.0.1:6379",
		Prefix:       "duomj",
		InitialScore: 1000,
		RecordLimit:  20,
	}
}

func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ledger 积分账本：
//
//	{prefix}:score:{user}    当前积分
//	{prefix}:records:{user}  最近的对局记录，json，新的在前
//	{prefix}:leaderboard     积分排行 zset
type Ledger struct {
	rdb redis.UniversalClient
	cfg Config
}

func NewLedger(rdb redis.UniversalClient, cfg Config) *Ledger {
	if cfg.RecordLimit <= 0 {
		cfg.RecordLimit = DefaultConfig().RecordLimit
	}
	return &Ledger{rdb: rdb, cfg: cfg}
}

func (l *Ledger) scoreKey(user string) string {
	return fmt.Sprintf("%s:score:%s", l.cfg.Prefix, user)
}

func (l *Ledger) recordsKey(user string) string {
	return fmt.Sprintf("%s:records:%s", l.cfg.Prefix, user)
}

func (l *Ledger) leaderboardKey() string {
	return l.cfg.Prefix + ":leaderboard"
}

// Score 没有记录的用户返回初始积分
func (l *Ledger) Score(ctx context.Context, user string) (int64, error) {
	score, err := l.rdb.Get(ctx, l.scoreKey(user)).Int64()
	if errors.Is(err, redis.Nil) {
		return l.cfg.InitialScore, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get score of %s: %w", user, err)
	}
	return score, nil
}

// Settle 结算一局：更新双方积分，追加对局记录，刷新排行榜。
// 积分先在事务里更新，记录按更新后的积分生成。
func (l *Ledger) Settle(ctx context.Context, s Settlement) ([mahjong.NP2]Record, error) {
	var incr [mahjong.NP2]*redis.IntCmd
	deltas := s.Deltas()
	humans := 0
	for seat := range mahjong.NP2 {
		if !s.Bots[seat] {
			humans++
		}
	}
	if humans == 0 {
		return BuildRecords(s, [mahjong.NP2]int64{}), nil
	}

	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for seat := range mahjong.NP2 {
			if s.Bots[seat] {
				continue
			}
			key := l.scoreKey(s.Users[seat])
			pipe.SetNX(ctx, key, l.cfg.InitialScore, 0)
			incr[seat] = pipe.IncrBy(ctx, key, deltas[seat])
		}
		return nil
	})
	if err != nil {
		return [mahjong.NP2]Record{}, fmt.Errorf("settle %s: %w", s.GameID, err)
	}

	var finals [mahjong.NP2]int64
	for seat, cmd := range incr {
		if cmd != nil {
			finals[seat] = cmd.Val()
		}
	}
	records := BuildRecords(s, finals)

	_, err = l.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for seat := range mahjong.NP2 {
			if s.Bots[seat] {
				continue
			}
			data, err := json.Marshal(records[seat])
			if err != nil {
				return err
			}
			user := s.Users[seat]
			pipe.LPush(ctx, l.recordsKey(user), data)
			pipe.LTrim(ctx, l.recordsKey(user), 0, l.cfg.RecordLimit-1)
			pipe.ZAdd(ctx, l.leaderboardKey(), redis.Z{Score: float64(finals[seat]), Member: user})
		}
		return nil
	})
	if err != nil {
		return records, fmt.Errorf("save records of %s: %w", s.GameID, err)
	}
	return records, nil
}

// Records 最近 limit 条对局记录
func (l *Ledger) Records(ctx context.Context, user string, limit int64) ([]Record, error) {
	if limit <= 0 || limit > l.cfg.RecordLimit {
		limit = l.cfg.RecordLimit
	}
	items, err := l.rdb.LRange(ctx, l.recordsKey(user), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("get records of %s: %w", user, err)
	}
	records := make([]Record, 0, len(items))
	for _, item := range items {
		var r Record
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("decode record of %s: %w", user, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Leaderboard 积分最高的 limit 个用户
func (l *Ledger) Leaderboard(ctx context.Context, limit int64) ([]Rank, error) {
	if limit <= 0 {
		limit = 10
	}
	items, err := l.rdb.ZRevRangeWithScores(ctx, l.leaderboardKey(), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	ranks := make([]Rank, 0, len(items))
	for _, z := range items {
		user, _ := z.Member.(string)
		ranks = append(ranks, Rank{User: user, Score: int64(z.Score)})
	}
	return ranks, nil
}

func (l *Ledger) Close() error {
	return l.rdb.Close()
}
