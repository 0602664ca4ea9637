package modes

import "math/rand"

// Cell types
const (
	Wall    = true
	Passage = false
)

const (
	centerSafeRange = 2    // 中心安全区半径（格）
	snakeSafeRange  = 1    // 蛇头周围 3x3
	wallRetention   = 0.45 // 稀疏化后墙保留的概率
)

// Cell 是迷宫网格中的一个格子
type Cell struct {
	Col, Row int
}

// GenerateMaze 生成 rows 行 cols 列的墙网格，true 表示墙。
// 中心区域和 snake（可为 nil）周围始终为空。
func GenerateMaze(cols, rows int, snake *Cell, rng *rand.Rand) [][]bool {
	if cols <= 0 || rows <= 0 {
		return [][]bool{}
	}

	grid := make([][]bool, rows)
	for r := range grid {
		grid[r] = make([]bool, cols)
		for c := range grid[r] {
			grid[r][c] = Wall
		}
	}

	centerC, centerR := cols/2, rows/2
	isSafe := func(r, c int) bool {
		if r >= centerR-centerSafeRange && r <= centerR+centerSafeRange &&
			c >= centerC-centerSafeRange && c <= centerC+centerSafeRange {
			return true
		}
		if snake != nil &&
			r >= snake.Row-snakeSafeRange && r <= snake.Row+snakeSafeRange &&
			c >= snake.Col-snakeSafeRange && c <= snake.Col+snakeSafeRange {
			return true
		}
		return false
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if isSafe(r, c) {
				grid[r][c] = Passage
			}
		}
	}

	recursiveBacktracker(grid, isSafe, rng)
	thin(grid, isSafe, rng)
	cleanup(grid)
	return grid
}

// recursiveBacktracker 在粗化网格上挖出生成树，跳过安全区
func recursiveBacktracker(grid [][]bool, isSafe func(r, c int) bool, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	if rows < 3 || cols < 3 {
		return
	}

	stack := make([]Cell, 0, rows*cols/4)
	if grid[1][1] == Wall {
		grid[1][1] = Passage
		stack = append(stack, Cell{Col: 1, Row: 1})
	} else {
		// [1,1] 在安全区里时找下一个可用的奇数格
	search:
		for r := 1; r < rows-1; r += 2 {
			for c := 1; c < cols-1; c += 2 {
				if grid[r][c] == Wall {
					grid[r][c] = Passage
					stack = append(stack, Cell{Col: c, Row: r})
					break search
				}
			}
		}
	}

	dirs := []Cell{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
	type candidate struct{ next, wall Cell }
	candidates := make([]candidate, 0, 4)

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range dirs {
			nc, nr := curr.Col+d.Col, curr.Row+d.Row
			// 保留一圈边框
			if nc > 0 && nc < cols-1 && nr > 0 && nr < rows-1 &&
				grid[nr][nc] == Wall && !isSafe(nr, nc) {
				candidates = append(candidates, candidate{
					next: Cell{Col: nc, Row: nr},
					wall: Cell{Col: curr.Col + d.Col/2, Row: curr.Row + d.Row/2},
				})
			}
		}

		if len(candidates) > 0 {
			pick := candidates[rng.Intn(len(candidates))]
			grid[pick.next.Row][pick.next.Col] = Passage
			grid[pick.wall.Row][pick.wall.Col] = Passage
			stack = append(stack, pick.next)
		} else {
			stack = stack[:len(stack)-1]
		}
	}
}

// thin 随机拆掉大部分剩余的墙，让迷宫变成稀疏的线网
func thin(grid [][]bool, isSafe func(r, c int) bool, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	for r := 1; r < rows-1; r++ {
		for c := 1; c < cols-1; c++ {
			if isSafe(r, c) || grid[r][c] == Passage {
				continue
			}
			if rng.Float64() > wallRetention {
				grid[r][c] = Passage
			}
		}
	}
}

// cleanup 打破 2x2 的墙块，再移除孤立的墙点。
// 打破墙块可能产生新的孤立点，所以分两遍。
func cleanup(grid [][]bool) {
	rows, cols := len(grid), len(grid[0])
	wallAt := func(r, c int) bool {
		return r >= 0 && r < rows && c >= 0 && c < cols && grid[r][c]
	}
	for r := 0; r+1 < rows; r++ {
		for c := 0; c+1 < cols; c++ {
			if grid[r][c] && grid[r+1][c] && grid[r][c+1] && grid[r+1][c+1] {
				grid[r][c] = Passage
			}
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if grid[r][c] && !wallAt(r-1, c) && !wallAt(r+1, c) && !wallAt(r, c-1) && !wallAt(r, c+1) {
				grid[r][c] = Passage
			}
		}
	}
}
