package snake

import "math"

// WrapHead 蛇头越过 [0,width]×[0,height] 时从对边进入，两个轴各自独立处理。
// 返回是否发生了穿越。
func (s *Snake) WrapHead(width, height float64) bool {
	x, y, teleported := WrapPosition(s.Head.X, s.Head.Y, width, height)
	s.Head.X, s.Head.Y = x, y
	return teleported
}

// WrapPosition 确保位置不会超出地图边界
func WrapPosition(x, y, width, height float64) (float64, float64, bool) {
	teleported := false
	if x < 0 {
		x = width
		teleported = true
	} else if x > width {
		x = 0
		teleported = true
	}
	if y < 0 {
		y = height
		teleported = true
	} else if y > height {
		y = 0
		teleported = true
	}
	return x, y, teleported
}

// ClampHead 把蛇头限制在新的世界尺寸内，用于窗口尺寸变化
func (s *Snake) ClampHead(width, height float64) {
	s.Head.X = math.Max(0, math.Min(s.Head.X, width))
	s.Head.Y = math.Max(0, math.Min(s.Head.Y, height))
}
