package snake

import (
	"math"

	"github.com/hoshinonyaruko/snake-arena/structs"
)

// Segments 返回 Length 个身体节点，0 号为蛇头，i 号位于沿轨迹向后 i*SegmentGap 弧长处。
// width、height 大于 0 时，间距超过较短边一半的相邻采样视为穿越环形边界，
// 在展开空间插值后再折回 [0,width)×[0,height)。
func (s *Snake) Segments(width, height float64) []structs.Vector2 {
	n := s.Length
	if n < 1 {
		n = 1
	}
	segs := make([]structs.Vector2, 0, n)
	segs = append(segs, s.Head)

	wrap := width > 0 && height > 0
	jump := math.Min(width, height) / 2

	i := 1
	acc := 0.0
	prev := s.Head
	for j := 0; j < len(s.Path) && i < n; j++ {
		next := s.Path[j]
		d := prev.Distance(next)
		teleport := wrap && d > jump
		if teleport {
			d = unwrappedDistance(prev, next, width, height)
		}

		for i < n && acc+d >= float64(i)*s.SegmentGap {
			den := d
			if den == 0 {
				den = 1
			}
			t := (float64(i)*s.SegmentGap - acc) / den
			if teleport {
				segs = append(segs, wrapLerp(prev, next, t, width, height))
			} else {
				segs = append(segs, prev.Lerp(next, t))
			}
			i++
		}
		acc += d
		prev = next
	}

	// 轨迹用尽，剩余节点落在最旧的采样点上
	tail := s.Head
	if len(s.Path) > 0 {
		tail = s.Path[len(s.Path)-1]
	}
	for ; i < n; i++ {
		segs = append(segs, tail)
	}
	return segs
}

func unwrappedDistance(a, b structs.Vector2, width, height float64) float64 {
	dx := math.Abs(a.X - b.X)
	dy := math.Abs(a.Y - b.Y)
	dx = math.Min(dx, math.Abs(width-dx))
	dy = math.Min(dy, math.Abs(height-dy))
	return math.Sqrt(dx*dx + dy*dy)
}

func wrapLerp(a, b structs.Vector2, t, width, height float64) structs.Vector2 {
	x1, y1, x2, y2 := a.X, a.Y, b.X, b.Y
	if math.Abs(x1-x2) > width/2 {
		if x1 < x2 {
			x1 += width
		} else {
			x2 += width
		}
	}
	if math.Abs(y1-y2) > height/2 {
		if y1 < y2 {
			y1 += height
		} else {
			y2 += height
		}
	}
	return structs.Vector2{
		X: wrapCoord(x1+(x2-x1)*t, width),
		Y: wrapCoord(y1+(y2-y1)*t, height),
	}
}

// wrapCoord 把坐标折回 [0, size)
func wrapCoord(v, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	if v >= size {
		v -= size
	}
	return v
}
