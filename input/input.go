// 指针输入的线程安全记录
package input

import (
	"sync"

	"github.com/hoshinonyaruko/snake-arena/structs"
)

// Tracker 记录最近一次指针位置，由传输层在帧之外更新，引擎在帧开始时读取。
type Tracker struct {
	mu       sync.RWMutex
	pointer  structs.Vector2
	pressing bool
	touch    bool
}

// NewTracker 指针初始位于 (x, y)，通常是世界中心
func NewTracker(x, y float64) *Tracker {
	return &Tracker{pointer: structs.Vector2{X: x, Y: y}}
}

// Move 更新指针位置，非有限坐标被忽略
func (t *Tracker) Move(x, y float64, touch bool) {
	p := structs.Vector2{X: x, Y: y}
	if !p.IsFinite() {
		return
	}
	t.mu.Lock()
	t.pointer = p
	t.pressing = true
	t.touch = touch
	t.mu.Unlock()
}

// Apply 应用一条客户端上报的指针消息
func (t *Tracker) Apply(p structs.Pointer) {
	if !p.Pressing && p.Touch {
		t.mu.Lock()
		t.touch = true
		t.mu.Unlock()
		t.Release()
		return
	}
	t.Move(p.X, p.Y, p.Touch)
}

// Release 触摸结束
func (t *Tracker) Release() {
	t.mu.Lock()
	t.pressing = false
	t.mu.Unlock()
}

func (t *Tracker) Pointer() structs.Vector2 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pointer
}

func (t *Tracker) Pressing() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pressing
}

func (t *Tracker) UsingTouch() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.touch
}
