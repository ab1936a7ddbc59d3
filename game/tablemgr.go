package game

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
)

// TableManager 管理游戏桌
type TableManager struct {
	mu     sync.RWMutex
	tables map[string]*Table // tableID -> Table
	users  map[string]string // uid -> tableID
	opts   Options
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// NewTableManager 创建游戏桌管理器，按 Tick 周期检查响应超时
func NewTableManager(opts Options) *TableManager {
	opts = opts.withDefaults()
	t := &TableManager{
		tables: make(map[string]*Table),
		users:  make(map[string]string),
		opts:   opts,
		ticker: time.NewTicker(opts.Config.Tick),
		done:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TableManager) run() {
	for {
		select {
		case now := <-t.ticker.C:
			t.tick(now)
		case <-t.done:
			return
		}
	}
}

func (t *TableManager) tick(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("table tick panic: %v\n%s", r, debug.Stack())
		}
	}()
	for _, table := range t.all() {
		table.Tick(now)
	}
}

// all 锁外逐桌处理，避免桌子回调管理器时死锁
func (t *TableManager) all() []*Table {
	t.mu.RLock()
	defer t.mu.RUnlock()
	res := make([]*Table, 0, len(t.tables))
	for _, table := range t.tables {
		res = append(res, table)
	}
	return res
}

// Create 新建一张空桌
func (t *TableManager) Create() *Table {
	table := NewTable(uuid.NewString(), t, t.opts)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tables[table.ID()] = table
	return table
}

func (t *TableManager) Get(tableID string) (*Table, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	table, ok := t.tables[tableID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}
	return table, nil
}

// FindByUser 玩家所在的桌子
func (t *TableManager) FindByUser(uid string) (*Table, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.users[uid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotSeated, uid)
	}
	table, ok := t.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	return table, nil
}

func (t *TableManager) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.tables)
}

// Delete 删除桌子，同时解绑桌上的玩家
func (t *TableManager) Delete(tableID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.tables, tableID)
	for uid, id := range t.users {
		if id == tableID {
			delete(t.users, uid)
		}
	}
}

func (t *TableManager) bind(uid, tableID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.users[uid] = tableID
}

func (t *TableManager) unbind(uid string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.users, uid)
}

// Close 停止超时检查
func (t *TableManager) Close() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
