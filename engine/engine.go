// 单局游戏的编排：转向、碰撞、食物、分数与状态通知
package engine

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/hoshinonyaruko/snake-arena/audio"
	"github.com/hoshinonyaruko/snake-arena/food"
	"github.com/hoshinonyaruko/snake-arena/modes"
	"github.com/hoshinonyaruko/snake-arena/snake"
	"github.com/hoshinonyaruko/snake-arena/structs"
)

const (
	MinFoods        = 5
	BaseSpeed       = 200.0
	MaxSpeed        = 500.0
	DeadZone        = 50.0  // 指针离蛇头太近时不转向
	BoostStart      = 100.0 // 超出此距离开始加速
	BoostFactor     = 0.8
	NearFoodRange   = 100.0
	EatMargin       = 15.0
	SpawnPadding    = 20.0
	SpawnAttempts   = 50
	SelfSkip        = 20 // 跳过脖子附近的分段
	SelfStride      = 2
	SelfHitDistance = 10.0
	MaxWorldSize    = 4096.0 // 世界宽高上限，超出部分被截断
)

// Input 提供帧开始时的指针快照
type Input interface {
	Pointer() structs.Vector2
	Pressing() bool
	UsingTouch() bool
}

// Store 持久化各模式最高分
type Store interface {
	Load() (map[string]int, error)
	Save(scores map[string]int) error
}

// Recorder 由能记录单局历史的存储实现
type Recorder interface {
	RecordGame(mode string, score, level int, scores map[string]int) error
}

// Scheduler 是外部帧调度器
type Scheduler interface {
	Start()
	Stop()
	Running() bool
}

type Config struct {
	Width, Height float64
	Input         Input
	Store         Store
	Audio         audio.Player
	Scheduler     Scheduler
	Sprites       Sprites
	Rand          *rand.Rand
}

// Engine 持有一局游戏的全部状态。不是并发安全的，调用方需串行化访问。
type Engine struct {
	width, height float64

	snake *snake.Snake
	foods []*food.Food
	score int
	over  bool
	pause bool

	kind   modes.Kind // 下一局的模式
	active modes.Kind // 当前局的模式
	mode   modes.Mode

	highScores map[string]int

	input     Input
	store     Store
	audio     audio.Player
	scheduler Scheduler
	sprites   Sprites
	rng       *rand.Rand

	subs   map[int]func(structs.GameState)
	nextID int
}

func New(cfg Config) *Engine {
	e := &Engine{
		width:     clampDimension(cfg.Width),
		height:    clampDimension(cfg.Height),
		kind:      modes.Classic,
		active:    modes.Classic,
		input:     cfg.Input,
		store:     cfg.Store,
		audio:     cfg.Audio,
		scheduler: cfg.Scheduler,
		sprites:   cfg.Sprites,
		rng:       cfg.Rand,
		subs:      make(map[int]func(structs.GameState)),
	}
	if e.input == nil {
		e.input = centerInput{e}
	}
	if e.store == nil {
		e.store = memoryStore{}
	}
	if e.audio == nil {
		e.audio = audio.Silent{}
	}
	if e.scheduler == nil {
		e.scheduler = &manualScheduler{}
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.mode, _ = modes.New(e.kind, e.rng)
	e.highScores = e.loadHighScores()
	return e
}

func (e *Engine) loadHighScores() map[string]int {
	scores := make(map[string]int)
	for _, k := range modes.Kinds() {
		scores[string(k)] = 0
	}
	saved, err := e.store.Load()
	if err != nil {
		log.Printf("加载最高分失败，使用默认值: %v", err)
		return scores
	}
	for k, v := range saved {
		scores[k] = v
	}
	return scores
}

// SetMode 切换下一局使用的模式，进行中的一局不受影响
func (e *Engine) SetMode(kind modes.Kind) error {
	m, err := modes.New(kind, e.rng)
	if err != nil {
		return err
	}
	e.kind = kind
	if !e.inSession() {
		e.mode = m
		e.active = kind
	}
	e.notify()
	return nil
}

func (e *Engine) inSession() bool {
	return e.snake != nil && !e.over
}

// ModeKind 返回已选择的模式（下一局生效）
func (e *Engine) ModeKind() modes.Kind { return e.kind }

func (e *Engine) Mode() modes.Mode { return e.mode }

// Resize 更新世界尺寸并把蛇头夹回新边界内，尺寸超过 MaxWorldSize 时按上限处理
func (e *Engine) Resize(width, height float64) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return
	}
	e.width, e.height = clampDimension(width), clampDimension(height)
	if e.snake != nil {
		e.snake.ClampHead(e.width, e.height)
	}
}

// clampDimension 把尺寸限制在 [0, MaxWorldSize]，NaN 视为 0
func clampDimension(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return math.Min(v, MaxWorldSize)
}

func (e *Engine) Start() {
	e.score = 0
	e.over = false
	e.pause = false
	e.snake = snake.New(e.width/2, e.height/2)
	e.foods = nil

	// 每局重新创建模式实例
	if m, err := modes.New(e.kind, e.rng); err == nil {
		e.mode = m
		e.active = e.kind
	}
	e.mode.Init(e)
	for i := 0; i < MinFoods; i++ {
		e.spawnFood()
	}

	e.scheduler.Start()
	e.notify()
}

func (e *Engine) Pause() {
	if !e.scheduler.Running() || e.over {
		return
	}
	e.pause = true
	e.scheduler.Stop()
	e.notify()
}

func (e *Engine) Resume() {
	if !e.pause || e.over {
		return
	}
	e.pause = false
	e.scheduler.Start()
	e.notify()
}

func (e *Engine) Stop() {
	e.scheduler.Stop()
}

// Update 推进一帧，dt 为秒
func (e *Engine) Update(dt float64) {
	if e.over || e.pause || e.snake == nil {
		return
	}
	if !(dt >= 0) || math.IsInf(dt, 0) {
		return
	}

	e.mode.Update(dt, e)
	if e.over {
		return
	}

	s := e.snake
	pointer := e.input.Pointer()
	target := pointer.Sub(s.Head)
	distance := target.Mag()
	steer := pointer.IsFinite() && distance > DeadZone

	if pointer.IsFinite() {
		speed := math.Min(MaxSpeed, BaseSpeed+math.Max(0, distance-BoostStart)*BoostFactor)
		s.ApproachSpeed(speed, dt)
	}

	angle := s.Angle
	if steer {
		angle = math.Atan2(target.Y, target.X)
	}

	nearFood := false
	for _, f := range e.foods {
		if s.Head.Distance(f.Position) < NearFoodRange {
			nearFood = true
			break
		}
	}
	s.Update(dt, angle, steer, nearFood)

	if e.mode.CheckCollision(s, e.width, e.height) {
		e.GameOver()
		return
	}

	if e.updateFoods(dt) {
		return
	}

	for len(e.foods) < MinFoods {
		e.spawnFood()
	}

	if e.hitsSelf() {
		e.GameOver()
	}
}

// updateFoods 处理过期与进食，返回 true 表示本帧游戏已结束
func (e *Engine) updateFoods(dt float64) bool {
	s := e.snake
	for i := len(e.foods) - 1; i >= 0; i-- {
		f := e.foods[i]
		if f.Advance(dt) {
			e.removeFood(i)
			continue
		}
		if s.Head.Distance(f.Position) >= f.Radius+EatMargin {
			continue
		}

		switch f.Category {
		case food.Death:
			e.GameOver()
			return true
		case food.Shrink:
			s.Shrink()
			e.audio.Play(audio.Shrink)
		case food.Poison:
			e.audio.Play(audio.Poison)
		case food.Golden:
			s.Grow()
			e.audio.Play(audio.Golden)
		default:
			s.Grow()
			e.audio.Play(audio.Eat)
		}

		e.score += f.Value
		if e.score < 0 {
			e.GameOver()
			return true
		}

		e.mode.OnFoodEaten(e)
		e.removeFood(i)
		e.notify()
	}
	return false
}

func (e *Engine) removeFood(i int) {
	e.foods = append(e.foods[:i], e.foods[i+1:]...)
}

func (e *Engine) hitsSelf() bool {
	segments := e.snake.Segments(e.width, e.height)
	for i := SelfSkip; i < len(segments); i += SelfStride {
		if e.snake.Head.Distance(segments[i]) < SelfHitDistance {
			return true
		}
	}
	return false
}

// spawnFood 在模式给出的区域内生成食物，多次尝试仍被阻挡时使用最后一次的位置
func (e *Engine) spawnFood() {
	category := food.Roll(e.rng.Float64())
	area := e.mode.SpawnArea(e)

	var pos structs.Vector2
	for attempt := 0; attempt < SpawnAttempts; attempt++ {
		pos = structs.Vector2{
			X: area.X + SpawnPadding + e.rng.Float64()*math.Max(1, area.Width-SpawnPadding*2),
			Y: area.Y + SpawnPadding + e.rng.Float64()*math.Max(1, area.Height-SpawnPadding*2),
		}
		if !e.mode.IsPositionBlocked(pos) {
			break
		}
	}
	e.foods = append(e.foods, food.New(category, pos))
}

// GameOver 结束本局，重复调用无效
func (e *Engine) GameOver() {
	if e.over || e.snake == nil {
		return
	}
	e.over = true
	e.audio.Play(audio.GameOver)

	name := string(e.active)
	if e.score > e.highScores[name] {
		e.highScores[name] = e.score
		if err := e.store.Save(e.copyScores()); err != nil {
			log.Printf("保存最高分失败: %v", err)
		}
	}
	if rec, ok := e.store.(Recorder); ok {
		if err := rec.RecordGame(name, e.score, e.level(), e.copyScores()); err != nil {
			log.Printf("记录对局失败: %v", err)
		}
	}

	e.Stop()
	e.notify()
}

func (e *Engine) level() int {
	if l, ok := e.mode.(modes.Leveled); ok {
		return l.Level()
	}
	return 0
}

func (e *Engine) copyScores() map[string]int {
	out := make(map[string]int, len(e.highScores))
	for k, v := range e.highScores {
		out[k] = v
	}
	return out
}

// State 返回当前状态快照
func (e *Engine) State() structs.GameState {
	st := structs.GameState{
		Score:         e.score,
		IsGameOver:    e.over,
		IsPlaying:     e.scheduler.Running() || e.pause,
		IsPaused:      e.pause,
		HighScore:     e.highScores[string(e.active)],
		AllHighScores: e.copyScores(),
		Mode:          string(e.active),
	}
	if l, ok := e.mode.(modes.Leveled); ok {
		level := l.Level()
		st.Level = &level
	}
	return st
}

// Subscribe 注册状态回调，返回取消函数
func (e *Engine) Subscribe(fn func(structs.GameState)) func() {
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	return func() { delete(e.subs, id) }
}

// Sync 主动推送一次当前状态
func (e *Engine) Sync() {
	e.notify()
}

func (e *Engine) notify() {
	if len(e.subs) == 0 {
		return
	}
	st := e.State()
	for _, fn := range e.subs {
		fn(st)
	}
}

// 以下实现 modes.Engine

func (e *Engine) Snake() *snake.Snake { return e.snake }
func (e *Engine) Width() float64      { return e.width }
func (e *Engine) Height() float64     { return e.height }
func (e *Engine) Foods() []*food.Food { return e.foods }
func (e *Engine) Score() int          { return e.score }
func (e *Engine) Play(cue audio.Cue)  { e.audio.Play(cue) }

var _ modes.Engine = (*Engine)(nil)

// centerInput 没有输入源时指针固定在世界中心
type centerInput struct{ e *Engine }

func (c centerInput) Pointer() structs.Vector2 {
	return structs.Vector2{X: c.e.width / 2, Y: c.e.height / 2}
}
func (centerInput) Pressing() bool   { return false }
func (centerInput) UsingTouch() bool { return false }

type memoryStore struct{}

func (memoryStore) Load() (map[string]int, error) { return map[string]int{}, nil }
func (memoryStore) Save(map[string]int) error     { return nil }

// manualScheduler 只记录运行状态，帧由调用方驱动
type manualScheduler struct{ running bool }

func (m *manualScheduler) Start()        { m.running = true }
func (m *manualScheduler) Stop()         { m.running = false }
func (m *manualScheduler) Running() bool { return m.running }
