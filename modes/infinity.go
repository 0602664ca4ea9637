package modes

import (
	"github.com/fogleman/gg"
	"github.com/hoshinonyaruko/snake-arena/snake"
	"github.com/hoshinonyaruko/snake-arena/structs"
)

const infinitySpeed = 220.0

// InfinityMode 没有墙，从一边出去从对边进来
type InfinityMode struct{}

func (m *InfinityMode) Name() string        { return string(Infinity) }
func (m *InfinityMode) Description() string { return "No walls. Go through edges." }

func (m *InfinityMode) Init(e Engine) {
	if s := e.Snake(); s != nil {
		s.Speed = infinitySpeed
	}
}

func (m *InfinityMode) Update(dt float64, e Engine) {
	wrapHead(e)
}

func (m *InfinityMode) Draw(dc *gg.Context, e Engine) {
	drawEdgeHints(dc, e.Width(), e.Height())
}

func (m *InfinityMode) CheckCollision(*snake.Snake, float64, float64) bool { return false }

func (m *InfinityMode) IsPositionBlocked(structs.Vector2) bool { return false }

func (m *InfinityMode) OnFoodEaten(Engine) {}

func (m *InfinityMode) SpawnArea(e Engine) structs.Rect {
	return fullArea(e)
}

// drawEdgeHints 虚线提示可穿越的边界
func drawEdgeHints(dc *gg.Context, w, h float64) {
	dc.SetRGBA(0.4, 0.8, 1, 0.3)
	dc.SetLineWidth(2)
	dc.SetDash(10, 10)
	dc.DrawRectangle(1, 1, w-2, h-2)
	dc.Stroke()
	dc.SetDash()
}
