package modes

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/fogleman/gg"
	"github.com/hoshinonyaruko/snake-arena/snake"
	"github.com/hoshinonyaruko/snake-arena/structs"
)

const (
	boxStartPadding = 10.0
	boxWarning      = 5.0 // 到达最小尺寸后的倒计时（秒）
	boxInnerPad     = 20.0
	boxRelax        = 5.0 // 每吃一个食物墙后退的距离
	boxMinSize      = 300.0
	boxShrinkRate   = 10.0
	// 小屏幕适配
	boxSmallScreen     = 600.0
	boxSmallRatio      = 0.6
	boxSmallShrinkRate = 6.0
)

// BoxMode 可活动区域随时间缩小，缩到最小后开始倒计时
type BoxMode struct {
	rng *rand.Rand

	padding      float64
	shrinkRate   float64
	minSize      float64
	warningTimer float64
	warning      bool
	elapsed      float64
}

func (m *BoxMode) Name() string        { return string(Box) }
func (m *BoxMode) Description() string { return "Walls shrink over time!" }

func (m *BoxMode) Init(e Engine) {
	m.padding = boxStartPadding
	m.warningTimer = boxWarning
	m.warning = false
	m.elapsed = 0

	minDim := math.Min(e.Width(), e.Height())
	if minDim < boxSmallScreen {
		m.minSize = minDim * boxSmallRatio
		m.shrinkRate = boxSmallShrinkRate
	} else {
		m.minSize = boxMinSize
		m.shrinkRate = boxShrinkRate
	}

	if s := e.Snake(); s != nil {
		s.Speed = snake.BaseSpeed
	}
}

// limit 是可活动区域达到最小尺寸时的边距
func (m *BoxMode) limit(e Engine) float64 {
	return (math.Min(e.Width(), e.Height()) - m.minSize) / 2
}

func (m *BoxMode) Update(dt float64, e Engine) {
	m.elapsed += dt

	if limit := m.limit(e); m.padding < limit {
		m.padding = math.Min(limit, m.padding+m.shrinkRate*dt)
	} else {
		m.warning = true
		m.warningTimer -= dt
		if m.warningTimer <= 0 {
			e.GameOver()
			return
		}
	}

	// 被墙压到的食物重新放进安全区
	p := m.padding
	w, h := e.Width(), e.Height()
	for _, f := range e.Foods() {
		pos := f.Position
		if pos.X-f.Radius < p || pos.X+f.Radius > w-p ||
			pos.Y-f.Radius < p || pos.Y+f.Radius > h-p {
			safeW := math.Max(0, w-p*2-boxInnerPad*2)
			safeH := math.Max(0, h-p*2-boxInnerPad*2)
			f.Position = structs.Vector2{
				X: p + boxInnerPad + m.rng.Float64()*safeW,
				Y: p + boxInnerPad + m.rng.Float64()*safeH,
			}
		}
	}
}

func (m *BoxMode) Draw(dc *gg.Context, e Engine) {
	w, h := e.Width(), e.Height()
	p := m.padding

	// 墙外区域压暗
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawRectangle(0, 0, w, p)
	dc.DrawRectangle(0, h-p, w, p)
	dc.DrawRectangle(0, p, p, h-p*2)
	dc.DrawRectangle(w-p, p, p, h-p*2)
	dc.Fill()

	flashing := m.warning && int(m.elapsed*4)%2 == 0
	if flashing {
		dc.SetHexColor("#ff0000")
	} else {
		dc.SetHexColor("#ffaa00")
	}
	dc.SetLineWidth(4)
	dc.DrawRectangle(p, p, w-p*2, h-p*2)
	dc.Stroke()

	if m.warning {
		dc.SetHexColor("#ff4444")
		dc.DrawStringAnchored(fmt.Sprintf("EAT OR DIE %.1f", math.Max(0, m.warningTimer)), w/2, p+24, 0.5, 0.5)
	}
}

func (m *BoxMode) CheckCollision(s *snake.Snake, width, height float64) bool {
	p := m.padding
	h := s.Head
	return h.X < p || h.X > width-p || h.Y < p || h.Y > height-p
}

func (m *BoxMode) IsPositionBlocked(structs.Vector2) bool { return false }

// OnFoodEaten 墙稍微后退，倒计时重置
func (m *BoxMode) OnFoodEaten(e Engine) {
	m.padding = math.Max(boxStartPadding, m.padding-boxRelax)
	if m.padding < m.limit(e) {
		m.warning = false
		m.warningTimer = boxWarning
	}
}

func (m *BoxMode) SpawnArea(e Engine) structs.Rect {
	p := m.padding
	return structs.Rect{
		X:      p,
		Y:      p,
		Width:  e.Width() - p*2,
		Height: e.Height() - p*2,
	}
}

// Padding 当前墙的厚度
func (m *BoxMode) Padding() float64 { return m.padding }

// Warning 是否处于倒计时
func (m *BoxMode) Warning() (bool, float64) { return m.warning, m.warningTimer }
