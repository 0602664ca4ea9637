package modes

import (
	"math"
	"math/rand"

	"github.com/fogleman/gg"
	"github.com/hoshinonyaruko/snake-arena/audio"
	"github.com/hoshinonyaruko/snake-arena/snake"
	"github.com/hoshinonyaruko/snake-arena/structs"
)

const (
	mazeCellSize    = 80.0
	mazeMinCellSize = 55.0
	mazeCellStep    = 8.0
	mazeFoodsPer    = 5
	mazeSpeed       = 180.0
	mazeSpeedStep   = 20.0
	mazeStartPath   = 50
	mazeLineWidth   = 4.0
	mazeNodeHit     = mazeLineWidth/2 + 10
	mazeLineHit     = mazeLineWidth/2 + 8
	mazeMaxCells    = 256 // 每个方向的格子数上限
)

// MazeMode 程序生成的迷宫，边界可穿越，每吃若干食物升级并重建迷宫
type MazeMode struct {
	rng *rand.Rand

	grid     [][]bool
	level    int
	eaten    int
	cellSize float64
	cols     int
	rows     int
}

func (m *MazeMode) Name() string        { return string(Maze) }
func (m *MazeMode) Description() string { return "Procedural maze. Navigate carefully!" }

func (m *MazeMode) Level() int { return m.level }

func (m *MazeMode) CellSize() float64 { return m.cellSize }

func (m *MazeMode) Init(e Engine) {
	m.level = 1
	m.eaten = 0
	m.cellSize = mazeCellSize
	m.generate(e.Width(), e.Height(), nil)

	if s := e.Snake(); s != nil {
		s.Speed = mazeSpeed
		// 从中心空地出发
		s.Head = structs.Vector2{X: e.Width() / 2, Y: e.Height() / 2}
		s.ResetPath(mazeStartPath)
	}
}

func (m *MazeMode) generate(width, height float64, head *structs.Vector2) {
	m.cols = gridCells(width, m.cellSize)
	m.rows = gridCells(height, m.cellSize)

	var sc *Cell
	if head != nil {
		sc = &Cell{
			Col: int(math.Floor(head.X / m.cellSize)),
			Row: int(math.Floor(head.Y / m.cellSize)),
		}
	}
	m.grid = GenerateMaze(m.cols, m.rows, sc, m.rng)
}

func (m *MazeMode) Update(dt float64, e Engine) {
	wrapHead(e)
}

func (m *MazeMode) Draw(dc *gg.Context, e Engine) {
	drawEdgeHints(dc, e.Width(), e.Height())

	half := m.cellSize / 2
	dc.SetHexColor("#8a5cff")
	dc.SetLineWidth(mazeLineWidth)
	dc.SetLineCapRound()
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if !m.grid[r][c] {
				continue
			}
			x := float64(c)*m.cellSize + half
			y := float64(r)*m.cellSize + half
			if c+1 < m.cols && m.grid[r][c+1] {
				dc.DrawLine(x, y, x+m.cellSize, y)
				dc.Stroke()
			}
			if r+1 < m.rows && m.grid[r+1][c] {
				dc.DrawLine(x, y, x, y+m.cellSize)
				dc.Stroke()
			}
			dc.DrawCircle(x, y, mazeLineWidth)
			dc.Fill()
		}
	}
}

// CheckCollision 同时检测墙节点和相邻节点之间的连线
func (m *MazeMode) CheckCollision(s *snake.Snake, width, height float64) bool {
	head := s.Head
	gx := int(math.Floor(head.X / m.cellSize))
	gy := int(math.Floor(head.Y / m.cellSize))

	// 网格外（穿越边界途中）不判定
	if gx < 0 || gx >= m.cols || gy < 0 || gy >= m.rows {
		return false
	}
	if !m.grid[gy][gx] {
		return false
	}

	half := m.cellSize / 2
	center := structs.Vector2{
		X: float64(gx)*m.cellSize + half,
		Y: float64(gy)*m.cellSize + half,
	}
	if head.Distance(center) < mazeNodeHit {
		return true
	}

	cellX := math.Mod(head.X, m.cellSize)
	cellY := math.Mod(head.Y, m.cellSize)

	// 竖线
	if math.Abs(cellX-half) < mazeLineHit {
		if cellY < half {
			if gy > 0 && m.grid[gy-1][gx] {
				return true
			}
		} else if gy < m.rows-1 && m.grid[gy+1][gx] {
			return true
		}
	}
	// 横线
	if math.Abs(cellY-half) < mazeLineHit {
		if cellX < half {
			if gx > 0 && m.grid[gy][gx-1] {
				return true
			}
		} else if gx < m.cols-1 && m.grid[gy][gx+1] {
			return true
		}
	}
	return false
}

func (m *MazeMode) IsPositionBlocked(pos structs.Vector2) bool {
	gx := int(math.Floor(pos.X / m.cellSize))
	gy := int(math.Floor(pos.Y / m.cellSize))
	if gx < 0 || gx >= m.cols || gy < 0 || gy >= m.rows {
		return true
	}
	return m.grid[gy][gx]
}

func (m *MazeMode) OnFoodEaten(e Engine) {
	m.eaten++
	if m.eaten < mazeFoodsPer {
		return
	}
	m.level++
	m.eaten = 0
	e.Play(audio.LevelUp)

	m.cellSize = math.Max(mazeMinCellSize, m.cellSize-mazeCellStep)
	s := e.Snake()
	if s == nil {
		m.generate(e.Width(), e.Height(), nil)
		return
	}
	s.Speed += mazeSpeedStep
	head := s.Head
	m.generate(e.Width(), e.Height(), &head)
}

func (m *MazeMode) SpawnArea(e Engine) structs.Rect {
	return fullArea(e)
}

// gridCells 计算一个方向的格子数，限制在 [0, mazeMaxCells]
func gridCells(size, cell float64) int {
	n := math.Floor(size / cell)
	if !(n > 0) {
		return 0
	}
	return int(math.Min(n, mazeMaxCells))
}
