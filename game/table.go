package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/kevin-chtw/tw_duomj/advisor"
	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/kevin-chtw/tw_duomj/storage"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
)

// maxAutoSteps 一次推进里机器人连续行动的上限
const maxAutoSteps = 1000

const settleTimeout = 3 * time.Second

// Table 一张双人桌，同一时刻只处理一个请求
type Table struct {
	id       string
	mgr      *TableManager
	opts     Options
	scorer   *mahjong.Scorelator
	mu       sync.Mutex
	players  [mahjong.NP2]*Player
	state    *mahjong.GameState
	round    int
	first    int32
	timer    Timer // 真人响应窗口超时
	rng      *rand.Rand
}

// NewTable 创建新的游戏桌实例
func NewTable(id string, mgr *TableManager, opts Options) *Table {
	opts = opts.withDefaults()
	return &Table{
		id:     id,
		mgr:    mgr,
		opts:   opts,
		scorer: mahjong.NewScorelator(opts.Rule),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (t *Table) ID() string {
	return t.id
}

// State 当前快照，快照不可变，可以在锁外读取
func (t *Table) State() *mahjong.GameState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Table) Round() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.round
}

func (t *Table) Players() []PlayerInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playerInfos()
}

func (t *Table) playerInfos() []PlayerInfo {
	var res []PlayerInfo
	for _, p := range t.players {
		if p != nil {
			res = append(res, p.info())
		}
	}
	return res
}

func (t *Table) seatOf(uid string) (int32, error) {
	for seat, p := range t.players {
		if p != nil && p.ID == uid {
			return int32(seat), nil
		}
	}
	return mahjong.SeatNull, fmt.Errorf("%w: %s", ErrNotSeated, uid)
}

func (t *Table) playing() bool {
	return t.state != nil && !t.state.Ended
}

// Join 入座，已在桌上时返回原座位。两个座位都有人时开局。
func (t *Table) Join(uid string) (int32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seat, err := t.seatOf(uid); err == nil {
		t.resume(seat)
		return seat, nil
	}
	seat, err := t.freeSeat()
	if err != nil {
		return seat, err
	}
	t.players[seat] = NewPlayer(uid, seat)
	if t.mgr != nil {
		t.mgr.bind(uid, t.id)
	}
	logger.Log.Infof("player %s joined table %s seat %d", uid, t.id, seat)
	t.broadcast(RouteTable, TableMsg{TableID: t.id, Players: t.playerInfos()})
	t.tryStart()
	return seat, nil
}

// AddBot 空座位上放一个机器人
func (t *Table) AddBot() (int32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	seat, err := t.freeSeat()
	if err != nil {
		return seat, err
	}
	t.players[seat] = NewBot(seat)
	logger.Log.Infof("bot %s joined table %s seat %d", t.players[seat].ID, t.id, seat)
	t.broadcast(RouteTable, TableMsg{TableID: t.id, Players: t.playerInfos()})
	t.tryStart()
	return seat, nil
}

func (t *Table) freeSeat() (int32, error) {
	for seat, p := range t.players {
		if p == nil {
			return int32(seat), nil
		}
	}
	return mahjong.SeatNull, fmt.Errorf("%w: %s", ErrTableFull, t.id)
}

// resume 断线重进，补发牌面和当前可选动作
func (t *Table) resume(seat int32) {
	uid := t.players[seat].ID
	t.push(uid, RouteTable, TableMsg{TableID: t.id, Players: t.playerInfos()})
	if t.playing() {
		t.push(uid, RouteView, newView(t.state, seat))
		t.pushChoices(seat)
	}
}

// Ready 上一局结束后再来一局
func (t *Table) Ready(uid string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	seat, err := t.seatOf(uid)
	if err != nil {
		return err
	}
	if t.playing() {
		return ErrStillPlaying
	}
	t.players[seat].Status = PlayerStatusReady
	t.tryStart()
	return nil
}

func (t *Table) tryStart() {
	if t.playing() {
		return
	}
	for _, p := range t.players {
		if p == nil || !p.ready() {
			return
		}
	}
	t.begin()
}

func (t *Table) begin() {
	seed := t.rng.Int64()
	first := t.rng.Int32N(mahjong.NP2)
	s, err := t.opts.Dealer(seed, first)
	if err != nil {
		logger.Log.Errorf("table %s deal failed: %v", t.id, err)
		return
	}
	t.state = s
	t.first = s.Turn
	t.round++
	for _, p := range t.players {
		p.Status = PlayerStatusPlaying
		t.push(p.ID, RouteBegin, BeginMsg{TableID: t.id, Round: t.round, Seat: p.Seat, FirstTurn: s.Turn})
	}
	logger.Log.Infof("table %s round %d begin, seed %d first %d", t.id, t.round, seed, s.Turn)
	t.step()
}

// Act 真人座位提交动作，必须是当前合法动作之一
func (t *Table) Act(uid string, a mahjong.Action) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	seat, err := t.seatOf(uid)
	if err != nil {
		return err
	}
	if !t.playing() {
		return ErrNotPlaying
	}
	if !mahjong.HasChoice(mahjong.LegalChoices(t.state, seat), a) {
		return fmt.Errorf("%w: seat %d %s", mahjong.ErrIllegalAction, seat, a)
	}
	if err := t.apply(seat, a, false); err != nil {
		return err
	}
	t.step()
	return nil
}

// Hint 给真人座位的建议，不改变牌局
func (t *Table) Hint(uid string) (advisor.Advice, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	seat, err := t.seatOf(uid)
	if err != nil {
		return advisor.Advice{}, err
	}
	if !t.playing() {
		return advisor.Advice{}, ErrNotPlaying
	}
	return advisor.Decide(t.opts.Hinter, t.state, seat)
}

// Abort 中止当前对局，不记账
func (t *Table) Abort(uid string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.seatOf(uid); err != nil {
		return err
	}
	if !t.playing() {
		return ErrNotPlaying
	}
	s, err := mahjong.Abort(t.state)
	if err != nil {
		return err
	}
	logger.Log.Infof("table %s round %d aborted by %s", t.id, t.round, uid)
	t.state = s
	t.finish()
	return nil
}

// Leave 离桌，对局中离桌视为中止。桌上没有真人时从管理器移除。
func (t *Table) Leave(uid string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	seat, err := t.seatOf(uid)
	if err != nil {
		return err
	}
	if t.playing() {
		if s, err := mahjong.Abort(t.state); err == nil {
			t.state = s
			t.finish()
		}
	}
	t.players[seat] = nil
	logger.Log.Infof("player %s left table %s", uid, t.id)
	t.broadcast(RouteTable, TableMsg{TableID: t.id, Players: t.playerInfos()})
	if t.mgr != nil {
		t.mgr.unbind(uid)
		if !t.hasHuman() {
			t.mgr.Delete(t.id)
		}
	}
	return nil
}

func (t *Table) hasHuman() bool {
	for _, p := range t.players {
		if p != nil && !p.Bot {
			return true
		}
	}
	return false
}

// Tick 真人响应窗口超时则代为选择过
func (t *Table) Tick(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.playing() {
		return
	}
	t.timer.OnTick(now)
}

func (t *Table) timeoutPass(seat int32) {
	logger.Log.Infof("table %s seat %d response timeout, pass", t.id, seat)
	if err := t.apply(seat, mahjong.PassAction(), true); err != nil {
		logger.Log.Errorf("table %s timeout pass failed: %v", t.id, err)
		return
	}
	t.step()
}

func (t *Table) apply(seat int32, a mahjong.Action, auto bool) error {
	n, err := mahjong.Apply(t.state, seat, a)
	if err != nil {
		return err
	}
	t.state = n
	t.timer.Cancel()
	t.broadcast(RouteEvent, EventMsg{Seat: seat, Action: a, Auto: auto})
	return nil
}

// step 推进到需要真人决定的地方：自动摸牌、自动过，机器人座位直接由 advisor 决定
func (t *Table) step() {
	for range maxAutoSteps {
		s, err := mahjong.Advance(t.state)
		if err != nil {
			logger.Log.Errorf("table %s advance failed: %v", t.id, err)
			return
		}
		t.state = s
		if s.Ended {
			t.finish()
			return
		}

		seat := s.Turn
		if p := t.players[seat]; !p.Bot {
			t.waitFor(seat)
			return
		}
		if err := t.apply(seat, t.botAction(seat), false); err != nil {
			logger.Log.Errorf("table %s bot seat %d: %v", t.id, seat, err)
			return
		}
	}
	logger.Log.Errorf("table %s bots did not stop after %d steps", t.id, maxAutoSteps)
}

func (t *Table) botAction(seat int32) mahjong.Action {
	advice, err := advisor.Decide(t.opts.Bot, t.state, seat)
	if err == nil {
		return advice.Action
	}
	// 打牌时最后一个是出牌，响应时最后一个是过
	logger.Log.Warnf("table %s bot seat %d advice failed: %v", t.id, seat, err)
	choices := mahjong.LegalChoices(t.state, seat)
	return choices[len(choices)-1]
}

func (t *Table) waitFor(seat int32) {
	if phase := t.state.Phase(); phase == mahjong.PhaseResponse || phase == mahjong.PhaseRobKong {
		t.timer.Schedule(t.opts.Config.ResponseTimeout, func() { t.timeoutPass(seat) })
	}
	t.syncViews()
	t.pushChoices(seat)
}

func (t *Table) pushChoices(seat int32) {
	if t.state.Turn != seat {
		return
	}
	msg := ChoicesMsg{Actions: mahjong.LegalChoices(t.state, seat)}
	if d := t.timer.Deadline(); !d.IsZero() {
		msg.Deadline = d.UnixMilli()
	}
	t.push(t.players[seat].ID, RouteChoices, msg)
}

func (t *Table) syncViews() {
	for seat, p := range t.players {
		t.push(p.ID, RouteView, newView(t.state, int32(seat)))
	}
}

func (t *Table) finish() {
	t.timer.Cancel()
	s := t.state
	summary := t.scorer.Compute(s, s.Winner, s.Reason)
	logger.Log.Infof("table %s round %d end, winner %d reason %s", t.id, t.round, s.Winner, s.Reason)
	t.broadcast(RouteEnd, newEndMsg(s, summary))

	for _, p := range t.players {
		if p != nil {
			p.Status = PlayerStatusEnter
		}
	}
	if s.Reason == mahjong.ReasonAbort || t.opts.Settler == nil {
		return
	}
	settlement := storage.Settlement{
		GameID:    fmt.Sprintf("%s-%d", t.id, t.round),
		FirstTurn: t.first,
		Summary:   summary,
		Time:      time.Now(),
	}
	for seat, p := range t.players {
		settlement.Users[seat] = p.ID
		settlement.Bots[seat] = p.Bot
	}
	go t.settle(settlement)
}

func (t *Table) settle(s storage.Settlement) {
	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()
	if _, err := t.opts.Settler.Settle(ctx, s); err != nil {
		logger.Log.Errorf("settle %s failed: %v", s.GameID, err)
	}
}

func (t *Table) push(uid, route string, msg any) {
	if err := t.opts.Sender.Push(uid, route, msg); err != nil {
		logger.Log.Errorf("push %s to %s failed: %v", route, uid, err)
	}
}

// broadcast 只推给真人
func (t *Table) broadcast(route string, msg any) {
	for _, p := range t.players {
		if p != nil && !p.Bot {
			t.push(p.ID, route, msg)
		}
	}
}
