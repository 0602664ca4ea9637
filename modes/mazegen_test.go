package modes

import (
	"math/rand"
	"testing"
)

func TestGenerateMazeOpenness(t *testing.T) {
	sizes := [][2]int{{16, 9}, {21, 13}, {7, 5}, {30, 30}, {3, 3}}
	for seed := int64(1); seed <= 25; seed++ {
		for _, size := range sizes {
			cols, rows := size[0], size[1]
			rng := rand.New(rand.NewSource(seed))
			snakeCell := &Cell{Col: rng.Intn(cols), Row: rng.Intn(rows)}
			grid := GenerateMaze(cols, rows, snakeCell, rng)

			if len(grid) != rows || len(grid[0]) != cols {
				t.Fatalf("grid size %dx%d, want %dx%d", len(grid[0]), len(grid), cols, rows)
			}
			if grid[rows/2][cols/2] {
				t.Errorf("seed %d %v: safe-zone center is a wall", seed, size)
			}
			if grid[snakeCell.Row][snakeCell.Col] {
				t.Errorf("seed %d %v: snake cell %v is a wall", seed, size, *snakeCell)
			}
			for r := 0; r+1 < rows; r++ {
				for c := 0; c+1 < cols; c++ {
					if grid[r][c] && grid[r+1][c] && grid[r][c+1] && grid[r+1][c+1] {
						t.Errorf("seed %d %v: 2x2 wall block at row %d col %d", seed, size, r, c)
					}
				}
			}
		}
	}
}

func TestGenerateMazeClearsSafeZone(t *testing.T) {
	grid := GenerateMaze(15, 11, nil, rand.New(rand.NewSource(3)))
	for r := 5 - centerSafeRange; r <= 5+centerSafeRange; r++ {
		for c := 7 - centerSafeRange; c <= 7+centerSafeRange; c++ {
			if grid[r][c] {
				t.Errorf("center zone cell (%d,%d) is a wall", r, c)
			}
		}
	}
}

func TestGenerateMazeNoIsolatedInteriorDots(t *testing.T) {
	grid := GenerateMaze(25, 15, nil, rand.New(rand.NewSource(11)))
	rows, cols := len(grid), len(grid[0])
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !grid[r][c] {
				continue
			}
			n := 0
			if r > 0 && grid[r-1][c] {
				n++
			}
			if r+1 < rows && grid[r+1][c] {
				n++
			}
			if c > 0 && grid[r][c-1] {
				n++
			}
			if c+1 < cols && grid[r][c+1] {
				n++
			}
			if n == 0 {
				t.Errorf("isolated wall at (%d,%d)", r, c)
			}
		}
	}
}

func TestGenerateMazeDegenerate(t *testing.T) {
	if g := GenerateMaze(0, 10, nil, rand.New(rand.NewSource(1))); len(g) != 0 {
		t.Errorf("expected empty grid, got %d rows", len(g))
	}
	g := GenerateMaze(1, 1, nil, rand.New(rand.NewSource(1)))
	if len(g) != 1 || g[0][0] {
		t.Errorf("1x1 grid should be a single open cell: %v", g)
	}
}

func TestGenerateMazeDeterministicForSeed(t *testing.T) {
	a := GenerateMaze(20, 12, nil, rand.New(rand.NewSource(42)))
	b := GenerateMaze(20, 12, nil, rand.New(rand.NewSource(42)))
	for r := range a {
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				t.Fatalf("grids differ at (%d,%d)", r, c)
			}
		}
	}
}
