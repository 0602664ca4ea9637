// 固定频率的帧调度器
package loop

import (
	"sync"
	"time"
)

// Loop 按固定频率调用 OnUpdate（秒为单位的帧间隔）和 OnDraw。
// 暂停即 Stop，恢复即 Start，Start 会重置时间基准，所以暂停期间的时间不会计入帧间隔。
type Loop struct {
	OnUpdate func(dt float64)
	OnDraw   func()

	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	running bool
	last    time.Time
	quit    chan struct{}
}

// New 创建一个每秒 fps 帧的调度器
func New(fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		interval: time.Second / time.Duration(fps),
		now:      time.Now,
	}
}

// Start 开始调度，已在运行时无操作
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	l.running = true
	l.last = l.now()
	l.quit = make(chan struct{})
	go l.run(l.quit)
}

// Stop 停止调度，可在回调内部调用
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	close(l.quit)
}

func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Loop) run(quit chan struct{}) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			l.frame(quit)
		}
	}
}

// frame 执行一帧，回调期间不持有锁
func (l *Loop) frame(quit chan struct{}) {
	l.mu.Lock()
	if !l.running || l.quit != quit {
		l.mu.Unlock()
		return
	}
	now := l.now()
	dt := now.Sub(l.last).Seconds()
	l.last = now
	l.mu.Unlock()

	if dt < 0 {
		dt = 0
	}
	if l.OnUpdate != nil {
		l.OnUpdate(dt)
	}
	if l.OnDraw != nil {
		l.OnDraw()
	}
}
