// 关于蛇的运动、轨迹记录与身体分段
package snake

import (
	"math"
	"math/rand"

	"github.com/hoshinonyaruko/snake-arena/structs"
)

const (
	BaseSpeed      = 200.0 // 每秒像素
	TurnSpeed      = 5.0   // 每秒弧度
	PathResolution = 5.0   // 轨迹采样最小间距
	InitialLength  = 5
	SegmentGap     = 20.0
	MinLength      = 2
	SpeedLerp      = 5.0
	pathSlack      = 50
	initialPath    = 100
)

// Snake 持有蛇头、朝向、速度以及按距离抽稀的轨迹（最新的在前）。
type Snake struct {
	Head           structs.Vector2   `json:"head"`
	Velocity       structs.Vector2   `json:"velocity"`
	Speed          float64           `json:"speed"`
	Angle          float64           `json:"angle"`
	TurnSpeed      float64           `json:"turn_speed"`
	Path           []structs.Vector2 `json:"path"`
	PathResolution float64           `json:"path_resolution"`
	Length         int               `json:"length"`
	SegmentGap     float64           `json:"segment_gap"`

	MouthOpen  float64 `json:"mouth_open"` // 0 闭合，1 张开
	EyeOpen    float64 `json:"eye_open"`   // 1 睁开，0 闭眼
	blinkTimer float64
}

// New 在 (x, y) 创建一条朝右的蛇，轨迹向左延伸
func New(x, y float64) *Snake {
	s := &Snake{
		Head:           structs.Vector2{X: x, Y: y},
		Speed:          BaseSpeed,
		TurnSpeed:      TurnSpeed,
		PathResolution: PathResolution,
		Length:         InitialLength,
		SegmentGap:     SegmentGap,
		EyeOpen:        1,
	}
	s.Velocity = structs.Vector2{X: 1}.Scale(s.Speed)
	s.Path = make([]structs.Vector2, 0, initialPath)
	for i := 0; i < initialPath; i++ {
		s.Path = append(s.Path, structs.Vector2{X: x - float64(i), Y: y})
	}
	return s
}

// ApproachSpeed 让速度按指数方式逼近目标速度，避免突变
func (s *Snake) ApproachSpeed(target, dt float64) {
	s.Speed += (target - s.Speed) * dt * SpeedLerp
}

// Update 推进一帧：动画、转向、移动并记录轨迹。
// steer 为 false 时保持当前朝向。
func (s *Snake) Update(dt, targetAngle float64, steer, nearFood bool) {
	s.animate(dt, nearFood)

	if steer {
		diff := normalizeAngle(targetAngle - s.Angle)
		step := s.TurnSpeed * dt
		if math.Abs(diff) < step {
			s.Angle = targetAngle
		} else if diff > 0 {
			s.Angle += step
		} else {
			s.Angle -= step
		}
	}

	s.Velocity = structs.Vector2{X: math.Cos(s.Angle), Y: math.Sin(s.Angle)}.Scale(s.Speed)
	s.Head = s.Head.Add(s.Velocity.Scale(dt))

	s.record()
}

func (s *Snake) animate(dt float64, nearFood bool) {
	s.blinkTimer -= dt
	if s.blinkTimer <= 0 {
		s.blinkTimer = rand.Float64()*3 + 2
		s.EyeOpen = 0
	}
	if s.EyeOpen < 1 {
		s.EyeOpen = math.Min(1, s.EyeOpen+dt*10)
	}

	target := 0.0
	if nearFood {
		target = 1
	}
	s.MouthOpen += (target - s.MouthOpen) * dt * 10
}

// record 仅当蛇头离最近的采样点足够远时才插入新点，与帧率无关
func (s *Snake) record() {
	if len(s.Path) == 0 {
		s.Path = append(s.Path, s.Head)
		return
	}
	if s.Head.Distance(s.Path[0]) < s.PathResolution {
		return
	}
	s.Path = append(s.Path, structs.Vector2{})
	copy(s.Path[1:], s.Path)
	s.Path[0] = s.Head

	if limit := s.maxPathPoints(); len(s.Path) > limit {
		s.Path = s.Path[:limit]
	}
}

func (s *Snake) maxPathPoints() int {
	res := s.PathResolution
	if res <= 0 {
		res = 1
	}
	return int(float64(s.Length)*s.SegmentGap/res) + pathSlack
}

// ResetPath 用 n 个蛇头副本替换轨迹
func (s *Snake) ResetPath(n int) {
	s.Path = make([]structs.Vector2, n)
	for i := range s.Path {
		s.Path[i] = s.Head
	}
}

func (s *Snake) Grow() {
	s.Length++
}

func (s *Snake) Shrink() {
	if s.Length > MinLength {
		s.Length--
	}
}

// normalizeAngle 归一化到 (-π, π]
func normalizeAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
