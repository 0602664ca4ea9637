// 食物的种类与属性
package food

import "github.com/hoshinonyaruko/snake-arena/structs"

// Category 决定食物的分值、半径和寿命，构造后不再改变。
type Category string

const (
	Normal Category = "normal"
	Golden Category = "golden"
	Poison Category = "poison" // 负分
	Death  Category = "death"  // 吃到即死
	Shrink Category = "shrink" // 缩短身体
)

// Categories 返回所有种类，顺序固定
func Categories() []Category {
	return []Category{Normal, Golden, Poison, Death, Shrink}
}

type spec struct {
	value     int
	radius    float64
	lifetime  float64 // 0 表示永不过期
	color     string
	glowColor string
}

var specs = map[Category]spec{
	Normal: {value: 5, radius: 8, color: "#00ff44", glowColor: "#00ff4499"},
	Golden: {value: 25, radius: 12, lifetime: 10, color: "#ffd700", glowColor: "#ffd70099"},
	Poison: {value: -10, radius: 12, lifetime: 10, color: "#ff00ff", glowColor: "#ff00ff99"},
	Death:  {value: 0, radius: 14, lifetime: 5, color: "#ff0000", glowColor: "#ff0000cc"},
	Shrink: {value: 50, radius: 10, lifetime: 5, color: "#00ffff", glowColor: "#00ffff99"},
}

// Food 是场上的一个可收集物。
type Food struct {
	Position  structs.Vector2 `json:"position"`
	Category  Category        `json:"category"`
	Value     int             `json:"value"`
	Radius    float64         `json:"radius"`
	Lifetime  float64         `json:"lifetime"` // 秒，0 表示不过期
	Age       float64         `json:"age"`      // 生成后存活的秒数
	Color     string          `json:"color"`
	GlowColor string          `json:"glow_color"`
}

// New 按种类创建食物，未知种类按普通食物处理
func New(category Category, pos structs.Vector2) *Food {
	s, ok := specs[category]
	if !ok {
		category = Normal
		s = specs[Normal]
	}
	return &Food{
		Position:  pos,
		Category:  category,
		Value:     s.value,
		Radius:    s.radius,
		Lifetime:  s.lifetime,
		Color:     s.color,
		GlowColor: s.glowColor,
	}
}

// Expires 是否有寿命限制
func (f *Food) Expires() bool {
	return f.Lifetime > 0
}

// Advance 增加存活时间，返回是否已过期
func (f *Food) Advance(dt float64) bool {
	f.Age += dt
	return f.Expired()
}

func (f *Food) Expired() bool {
	return f.Expires() && f.Age >= f.Lifetime
}

// Remaining 返回剩余寿命，不过期的食物返回 -1
func (f *Food) Remaining() float64 {
	if !f.Expires() {
		return -1
	}
	if r := f.Lifetime - f.Age; r > 0 {
		return r
	}
	return 0
}

// Roll 把 [0,1) 上的均匀随机数映射为食物种类
// 死亡 2%，缩短 5%，毒药 13%，金色 15%，其余普通
func Roll(r float64) Category {
	switch {
	case r > 0.98:
		return Death
	case r > 0.93:
		return Shrink
	case r > 0.80:
		return Poison
	case r > 0.65:
		return Golden
	default:
		return Normal
	}
}
