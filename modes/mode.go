package modes

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/hoshinonyaruko/snake-arena/audio"
	"github.com/hoshinonyaruko/snake-arena/food"
	"github.com/hoshinonyaruko/snake-arena/snake"
	"github.com/hoshinonyaruko/snake-arena/structs"
)

// Engine 是模式可以访问的引擎能力，只暴露规则需要的部分。
type Engine interface {
	Snake() *snake.Snake
	Width() float64
	Height() float64
	Foods() []*food.Food
	Score() int
	GameOver()
	Play(cue audio.Cue)
}

// Mode 决定世界边界、障碍物和胜负条件。
// 每次开局都会重新创建实例。
type Mode interface {
	Name() string
	Description() string

	Init(e Engine)
	Update(dt float64, e Engine)
	Draw(dc *gg.Context, e Engine)

	// CheckCollision 返回 true 表示撞墙或撞到障碍物
	CheckCollision(s *snake.Snake, width, height float64) bool
	IsPositionBlocked(pos structs.Vector2) bool
	OnFoodEaten(e Engine)
	SpawnArea(e Engine) structs.Rect
}

// Leveled 由带关卡的模式实现
type Leveled interface {
	Level() int
}

type Kind string

const (
	Classic  Kind = "Classic"
	Infinity Kind = "Infinity"
	Box      Kind = "Box"
	Maze     Kind = "Maze"
)

var ErrUnknownMode = errors.New("unknown game mode")

func Kinds() []Kind {
	return []Kind{Classic, Infinity, Box, Maze}
}

// ParseKind 不区分大小写地解析模式名
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(string(k), strings.TrimSpace(name)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// New 创建指定模式的新实例，rng 为 nil 时使用当前时间作为种子
func New(kind Kind, rng *rand.Rand) (Mode, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	switch kind {
	case Classic:
		return &ClassicMode{}, nil
	case Infinity:
		return &InfinityMode{}, nil
	case Box:
		return &BoxMode{rng: rng}, nil
	case Maze:
		return &MazeMode{rng: rng}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, kind)
	}
}

// fullArea 整个世界作为生成区域
func fullArea(e Engine) structs.Rect {
	return structs.Rect{Width: e.Width(), Height: e.Height()}
}

// wrapHead 无边界模式共用的穿越逻辑
func wrapHead(e Engine) {
	if s := e.Snake(); s != nil {
		s.WrapHead(e.Width(), e.Height())
	}
}
