package structs

// Rect 描述一个轴对齐的矩形区域，用于食物生成范围等。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains 判断点是否落在矩形内（含边界）
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// GameState 是引擎在每次状态变化后推送给展示层的快照。
type GameState struct {
	Score         int            `json:"score"`           // 当前分数
	IsGameOver    bool           `json:"is_game_over"`    // 是否已结束
	IsPlaying     bool           `json:"is_playing"`      // 调度器运行中或处于暂停
	IsPaused      bool           `json:"is_paused"`       // 是否暂停
	HighScore     int            `json:"high_score"`      // 当前模式最高分
	AllHighScores map[string]int `json:"all_high_scores"` // 所有模式最高分
	Level         *int           `json:"level,omitempty"` // 模式关卡（仅迷宫模式）
	Mode          string         `json:"mode"`            // 当前模式名
}

// Pointer 是客户端上报的指针状态。
type Pointer struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressing bool    `json:"pressing"`
	Touch    bool    `json:"touch"`
}
