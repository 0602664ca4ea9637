package structs

import "math"

// Vector2 是世界坐标系中的一个点或向量。零值即原点。
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Mag 返回向量长度
func (v Vector2) Mag() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize 返回单位向量，零向量返回零向量
func (v Vector2) Normalize() Vector2 {
	m := v.Mag()
	if m == 0 {
		return Vector2{}
	}
	return Vector2{X: v.X / m, Y: v.Y / m}
}

func (v Vector2) Distance(o Vector2) float64 {
	return v.Sub(o).Mag()
}

// Lerp 在 v 与 o 之间线性插值，t=0 为 v，t=1 为 o
func (v Vector2) Lerp(o Vector2, t float64) Vector2 {
	return Vector2{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
	}
}

func (v Vector2) Equals(o Vector2) bool {
	return v.X == o.X && v.Y == o.Y
}

// IsFinite 判断两个分量是否都是有限数
func (v Vector2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
