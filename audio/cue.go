package audio

// Cue 标识一个音效事件，由引擎和模式在游戏事件发生时触发。
type Cue string

const (
	Eat      Cue = "eat"
	Golden   Cue = "golden"
	Poison   Cue = "poison"
	Shrink   Cue = "shrink"
	GameOver Cue = "gameover"
	LevelUp  Cue = "levelup"
	Click    Cue = "click"
)

// Cues 返回全部音效
func Cues() []Cue {
	return []Cue{Eat, Golden, Poison, Shrink, GameOver, LevelUp, Click}
}

// Player 是引擎依赖的音效接口
type Player interface {
	Play(cue Cue)
}

// Silent 丢弃所有音效
type Silent struct{}

func (Silent) Play(Cue) {}
