package engine

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/hoshinonyaruko/snake-arena/structs"
)

const cloneMargin = 20.0 // 靠近边缘的分段在对侧补画一份

// Sprites 按食物种类提供图标，缺失时画圆
type Sprites interface {
	Get(name string, size int) (image.Image, bool)
}

// Render 生成当前世界大小的一帧
func (e *Engine) Render() image.Image {
	w := int(math.Round(clampDimension(math.Max(1, e.width))))
	h := int(math.Round(clampDimension(math.Max(1, e.height))))
	dc := gg.NewContext(w, h)
	dc.SetHexColor("#0a0a12")
	dc.Clear()
	e.Draw(dc)
	return dc.Image()
}

// Draw 依次画模式几何、食物、指针提示和蛇
func (e *Engine) Draw(dc *gg.Context) {
	e.mode.Draw(dc, e)
	e.drawFoods(dc)

	if e.snake == nil {
		return
	}
	if e.input.Pressing() || !e.input.UsingTouch() {
		e.drawPointer(dc)
	}
	e.drawSnake(dc)
}

func (e *Engine) drawFoods(dc *gg.Context) {
	for _, f := range e.foods {
		x, y := f.Position.X, f.Position.Y
		if e.sprites != nil {
			size := int(f.Radius * 2)
			if img, ok := e.sprites.Get(string(f.Category), size); ok {
				dc.DrawImageAnchored(img, int(x), int(y), 0.5, 0.5)
				continue
			}
		}
		// 光晕
		dc.SetHexColor(f.GlowColor)
		dc.DrawCircle(x, y, f.Radius+6)
		dc.Fill()
		dc.SetHexColor(f.Color)
		dc.DrawCircle(x, y, f.Radius)
		dc.Fill()
	}
}

func (e *Engine) drawPointer(dc *gg.Context) {
	p := e.input.Pointer()
	if !p.IsFinite() {
		return
	}
	head := e.snake.Head

	dc.Push()
	dc.SetDash(5, 10)
	dc.SetLineWidth(1)
	dc.SetRGBA(0, 1, 1, 0.2)
	dc.DrawLine(head.X, head.Y, p.X, p.Y)
	dc.Stroke()
	dc.SetDash()

	dc.SetLineWidth(1.5)
	dc.SetRGBA(0, 1, 1, 0.8)
	dc.DrawCircle(p.X, p.Y, 10)
	dc.Stroke()
	dc.Pop()
}

// drawSnake 从尾到头画，保证蛇头在最上层
func (e *Engine) drawSnake(dc *gg.Context) {
	segments := e.snake.Segments(e.width, e.height)
	n := len(segments)
	for i := n - 1; i >= 0; i-- {
		for _, at := range e.withClones(segments[i]) {
			if i == 0 {
				e.drawHead(dc, at)
				continue
			}
			k := float64(i) / float64(n)
			dc.SetRGBA(0, 1, (157+k*50)/255, 1-k*0.5)
			dc.DrawCircle(at.X, at.Y, math.Max(2, 10-k*4))
			dc.Fill()
		}
	}
}

func (e *Engine) drawHead(dc *gg.Context, at structs.Vector2) {
	s := e.snake
	const r = 12.0

	dc.Push()
	dc.Translate(at.X, at.Y)
	dc.Rotate(s.Angle)

	mouth := 0.2 + s.MouthOpen*0.5
	dc.SetHexColor("#ffffff")
	dc.MoveTo(0, 0)
	dc.DrawArc(0, 0, r, mouth, 2*math.Pi-mouth)
	dc.ClosePath()
	dc.Fill()

	dc.SetHexColor("#000000")
	ry := math.Max(0.1, 3*s.EyeOpen)
	dc.DrawEllipse(6, -6, 3, ry)
	dc.Fill()
	dc.DrawEllipse(6, 6, 3, ry)
	dc.Fill()
	dc.Pop()
}

// withClones 返回分段本身以及靠近边缘时在对侧的副本
func (e *Engine) withClones(p structs.Vector2) []structs.Vector2 {
	out := []structs.Vector2{p}
	if p.X < cloneMargin {
		out = append(out, structs.Vector2{X: p.X + e.width, Y: p.Y})
	} else if p.X > e.width-cloneMargin {
		out = append(out, structs.Vector2{X: p.X - e.width, Y: p.Y})
	}
	if p.Y < cloneMargin {
		out = append(out, structs.Vector2{X: p.X, Y: p.Y + e.height})
	} else if p.Y > e.height-cloneMargin {
		out = append(out, structs.Vector2{X: p.X, Y: p.Y - e.height})
	}
	return out
}
