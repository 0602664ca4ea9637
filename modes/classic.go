package modes

import (
	"math"

	"github.com/fogleman/gg"
	"github.com/hoshinonyaruko/snake-arena/snake"
	"github.com/hoshinonyaruko/snake-arena/structs"
)

const (
	classicInset     = 10.0
	classicSpeedStep = 5.0 // 每 100 分加速
)

// ClassicMode 固定边界墙，速度随分数阶梯上升
type ClassicMode struct{}

func (m *ClassicMode) Name() string        { return string(Classic) }
func (m *ClassicMode) Description() string { return "Traditional walls. Speed increases over time." }

func (m *ClassicMode) Init(e Engine) {
	if s := e.Snake(); s != nil {
		s.Speed = snake.BaseSpeed
	}
}

func (m *ClassicMode) Update(dt float64, e Engine) {
	s := e.Snake()
	if s == nil {
		return
	}
	boost := math.Floor(float64(e.Score())/100) * classicSpeedStep
	s.Speed = snake.BaseSpeed + boost
}

func (m *ClassicMode) Draw(dc *gg.Context, e Engine) {
	dc.SetHexColor("#ff3366")
	dc.SetLineWidth(4)
	dc.DrawRectangle(classicInset, classicInset, e.Width()-classicInset*2, e.Height()-classicInset*2)
	dc.Stroke()
}

func (m *ClassicMode) CheckCollision(s *snake.Snake, width, height float64) bool {
	h := s.Head
	return h.X < classicInset || h.X > width-classicInset ||
		h.Y < classicInset || h.Y > height-classicInset
}

func (m *ClassicMode) IsPositionBlocked(structs.Vector2) bool { return false }

func (m *ClassicMode) OnFoodEaten(Engine) {}

func (m *ClassicMode) SpawnArea(e Engine) structs.Rect {
	return fullArea(e)
}
