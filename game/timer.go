package game

import (
	"time"
)

// Timer 响应窗口定时器，由 TableManager 的 ticker 驱动，调用方持有桌子的锁
type Timer struct {
	triggerTime time.Time
	callback    func()
}

// Schedule 安排定时任务，覆盖之前的任务
func (t *Timer) Schedule(delay time.Duration, callback func()) {
	t.triggerTime = time.Now().Add(delay)
	t.callback = callback
}

// Cancel 取消定时任务
func (t *Timer) Cancel() {
	t.triggerTime = time.Time{}
	t.callback = nil
}

// Deadline 没有任务时为零值
func (t *Timer) Deadline() time.Time {
	if t.callback == nil {
		return time.Time{}
	}
	return t.triggerTime
}

// OnTick 到期则执行一次回调
func (t *Timer) OnTick(now time.Time) bool {
	if t.callback == nil || now.Before(t.triggerTime) {
		return false
	}
	callback := t.callback
	t.Cancel()
	callback()
	return true
}
