package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"runtime/debug"

	"github.com/kevin-chtw/tw_duomj/advisor"
	"github.com/kevin-chtw/tw_duomj/game"
	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/kevin-chtw/tw_duomj/storage"
	pitaya "github.com/topfreegames/pitaya/v3/pkg"
	"github.com/topfreegames/pitaya/v3/pkg/component"
	pe "github.com/topfreegames/pitaya/v3/pkg/errors"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
)

// 错误码
const (
	CodeBadRequest  = "DMJ-400"
	CodeNotSeated   = "DMJ-401"
	CodeNotFound    = "DMJ-404"
	CodeConflict    = "DMJ-409"
	CodeIllegal     = "DMJ-422"
	CodeUnavailable = "DMJ-503"
	CodeInternal    = "DMJ-500"
)

var (
	ErrBadUser     = errors.New("invalid user id")
	ErrNotLoggedIn = errors.New("session not bound")
	ErrNoLedger    = errors.New("ledger disabled")
)

var userPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]{1,32}$`)

// CheckUser 用户名只允许字母数字下划线和横线，不能冒充机器人
func CheckUser(uid string) error {
	if !userPattern.MatchString(uid) || game.IsBotID(uid) {
		return fmt.Errorf("%w: %q", ErrBadUser, uid)
	}
	return nil
}

// ErrorCode 业务错误对应的错误码
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBadUser), errors.Is(err, ErrNotLoggedIn):
		return CodeBadRequest
	case errors.Is(err, game.ErrNotSeated):
		return CodeNotSeated
	case errors.Is(err, game.ErrTableNotFound):
		return CodeNotFound
	case errors.Is(err, game.ErrTableFull), errors.Is(err, game.ErrNotPlaying), errors.Is(err, game.ErrStillPlaying):
		return CodeConflict
	case errors.Is(err, mahjong.ErrIllegalAction), errors.Is(err, advisor.ErrNotApplicable):
		return CodeIllegal
	case errors.Is(err, ErrNoLedger):
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

func toError(err error) error {
	if err == nil {
		return nil
	}
	return pe.NewError(err, ErrorCode(err))
}

type EnterReq struct {
	User string `json:"user"`
}

type TableReq struct {
	TableID string `json:"table_id"`
}

type ActionReq struct {
	Action mahjong.Action `json:"action"`
}

type LimitReq struct {
	Limit int64 `json:"limit"`
}

type TableAck struct {
	TableID string            `json:"table_id"`
	Seat    int32             `json:"seat"`
	Players []game.PlayerInfo `json:"players"`
}

type Ack struct {
	OK bool `json:"ok"`
}

type EnterAck struct {
	User    string `json:"user"`
	TableID string `json:"table_id,omitempty"` // 断线重连时原来的桌子
	Score   int64  `json:"score"`
}

type RecordsAck struct {
	Records []storage.Record `json:"records"`
}

type LeaderboardAck struct {
	Ranks []storage.Rank `json:"ranks"`
}

// Room 客户端请求入口，路由为 room.<handler>
type Room struct {
	component.Base
	app    pitaya.Pitaya
	mgr    *game.TableManager
	ledger *storage.Ledger
}

// NewRoom ledger 为空时不记账，战绩和排行榜不可用
func NewRoom(app pitaya.Pitaya, mgr *game.TableManager, ledger *storage.Ledger) *Room {
	return &Room{
		app:    app,
		mgr:    mgr,
		ledger: ledger,
	}
}

func recoverPanic() {
	if r := recover(); r != nil {
		logger.Log.Errorf("panic recovered %s\n %s", r, string(debug.Stack()))
	}
}

func (r *Room) uid(ctx context.Context) (string, error) {
	uid := r.app.GetSessionFromCtx(ctx).UID()
	if uid == "" {
		return "", ErrNotLoggedIn
	}
	return uid, nil
}

// Enter 绑定会话，断线后原桌继续
func (r *Room) Enter(ctx context.Context, req *EnterReq) (*EnterAck, error) {
	defer recoverPanic()
	if err := CheckUser(req.User); err != nil {
		return nil, toError(err)
	}
	s := r.app.GetSessionFromCtx(ctx)
	if s.UID() == "" {
		if err := s.Bind(ctx, req.User); err != nil {
			return nil, toError(err)
		}
		uid := req.User
		if err := s.OnClose(func() { r.offline(uid) }); err != nil {
			logger.Log.Warnf("register close callback for %s: %v", uid, err)
		}
	} else if s.UID() != req.User {
		return nil, toError(fmt.Errorf("%w: session bound to %s", ErrBadUser, s.UID()))
	}

	ack := &EnterAck{User: req.User}
	if table, err := r.mgr.FindByUser(req.User); err == nil {
		if _, err := table.Join(req.User); err == nil {
			ack.TableID = table.ID()
		}
	}
	if r.ledger != nil {
		score, err := r.ledger.Score(ctx, req.User)
		if err != nil {
			logger.Log.Warnf("load score of %s: %v", req.User, err)
		}
		ack.Score = score
	}
	logger.Log.Infof("user %s entered", req.User)
	return ack, nil
}

// offline 断线不离桌，超时代打会让对局继续推进
func (r *Room) offline(uid string) {
	logger.Log.Infof("user %s offline", uid)
}

// Create 建桌并入座
func (r *Room) Create(ctx context.Context) (*TableAck, error) {
	defer recoverPanic()
	uid, err := r.uid(ctx)
	if err != nil {
		return nil, toError(err)
	}
	if table, err := r.mgr.FindByUser(uid); err == nil {
		return nil, toError(fmt.Errorf("%w: already on table %s", game.ErrStillPlaying, table.ID()))
	}
	table := r.mgr.Create()
	return r.join(table, uid)
}

// Join 加入指定的桌子
func (r *Room) Join(ctx context.Context, req *TableReq) (*TableAck, error) {
	defer recoverPanic()
	uid, err := r.uid(ctx)
	if err != nil {
		return nil, toError(err)
	}
	if cur, err := r.mgr.FindByUser(uid); err == nil && cur.ID() != req.TableID {
		return nil, toError(fmt.Errorf("%w: already on table %s", game.ErrStillPlaying, cur.ID()))
	}
	table, err := r.mgr.Get(req.TableID)
	if err != nil {
		return nil, toError(err)
	}
	return r.join(table, uid)
}

func (r *Room) join(table *game.Table, uid string) (*TableAck, error) {
	seat, err := table.Join(uid)
	if err != nil {
		return nil, toError(err)
	}
	return &TableAck{TableID: table.ID(), Seat: seat, Players: table.Players()}, nil
}

func (r *Room) table(ctx context.Context) (string, *game.Table, error) {
	uid, err := r.uid(ctx)
	if err != nil {
		return "", nil, err
	}
	table, err := r.mgr.FindByUser(uid)
	return uid, table, err
}

// AddBot 空座位放机器人
func (r *Room) AddBot(ctx context.Context) (*TableAck, error) {
	defer recoverPanic()
	_, table, err := r.table(ctx)
	if err != nil {
		return nil, toError(err)
	}
	seat, err := table.AddBot()
	if err != nil {
		return nil, toError(err)
	}
	return &TableAck{TableID: table.ID(), Seat: seat, Players: table.Players()}, nil
}

// Ready 再来一局
func (r *Room) Ready(ctx context.Context) (*Ack, error) {
	defer recoverPanic()
	uid, table, err := r.table(ctx)
	if err != nil {
		return nil, toError(err)
	}
	if err := table.Ready(uid); err != nil {
		return nil, toError(err)
	}
	return &Ack{OK: true}, nil
}

// Action 提交动作
func (r *Room) Action(ctx context.Context, req *ActionReq) (*Ack, error) {
	defer recoverPanic()
	uid, table, err := r.table(ctx)
	if err != nil {
		return nil, toError(err)
	}
	if err := table.Act(uid, req.Action); err != nil {
		logger.Log.Warnf("user %s action %s: %v", uid, req.Action, err)
		return nil, toError(err)
	}
	return &Ack{OK: true}, nil
}

// Hint 出牌提示
func (r *Room) Hint(ctx context.Context) (*game.HintMsg, error) {
	defer recoverPanic()
	uid, table, err := r.table(ctx)
	if err != nil {
		return nil, toError(err)
	}
	advice, err := table.Hint(uid)
	if err != nil {
		return nil, toError(err)
	}
	return &game.HintMsg{Advice: advice}, nil
}

// Abort 中止当前对局
func (r *Room) Abort(ctx context.Context) (*Ack, error) {
	defer recoverPanic()
	uid, table, err := r.table(ctx)
	if err != nil {
		return nil, toError(err)
	}
	if err := table.Abort(uid); err != nil {
		return nil, toError(err)
	}
	return &Ack{OK: true}, nil
}

// Leave 离桌
func (r *Room) Leave(ctx context.Context) (*Ack, error) {
	defer recoverPanic()
	uid, table, err := r.table(ctx)
	if err != nil {
		return nil, toError(err)
	}
	if err := table.Leave(uid); err != nil {
		return nil, toError(err)
	}
	return &Ack{OK: true}, nil
}

// Records 自己最近的战绩
func (r *Room) Records(ctx context.Context, req *LimitReq) (*RecordsAck, error) {
	defer recoverPanic()
	uid, err := r.uid(ctx)
	if err != nil {
		return nil, toError(err)
	}
	if r.ledger == nil {
		return nil, toError(ErrNoLedger)
	}
	records, err := r.ledger.Records(ctx, uid, req.Limit)
	if err != nil {
		return nil, toError(err)
	}
	return &RecordsAck{Records: records}, nil
}

// Leaderboard 积分排行
func (r *Room) Leaderboard(ctx context.Context, req *LimitReq) (*LeaderboardAck, error) {
	defer recoverPanic()
	if r.ledger == nil {
		return nil, toError(ErrNoLedger)
	}
	ranks, err := r.ledger.Leaderboard(ctx, req.Limit)
	if err != nil {
		return nil, toError(err)
	}
	return &LeaderboardAck{Ranks: ranks}, nil
}
