package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// sweep 生成一个频率按指数从 from 滑到 to 的音
type sweep struct {
	from, to float64
	phase    float64
	total    int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewSweep creates an oscillator whose frequency ramps exponentially. to<=0 keeps the pitch fixed.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	if to <= 0 {
		to = from
	}
	return &sweep{from: from, to: to, total: rate.N(duration), wave: wave, rate: rate}
}

func (o *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.total)
		freq := o.from * math.Pow(o.to/o.from, progress)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sweep) Err() error { return nil }

// decay 音量从 volume 指数衰减到 0.01，模拟原声的包络
type decay struct {
	streamer beep.Streamer
	volume   float64
	total    int
	position int
}

func NewDecay(s beep.Streamer, volume float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, volume: volume, total: rate.N(duration)}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		progress := float64(d.position) / float64(d.total)
		if progress > 1 {
			progress = 1
		}
		gain := d.volume * math.Pow(0.01/d.volume, progress)
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// tone 对应一次 playSfx 调用
type tone struct {
	at       time.Duration // 相对音效开始的延迟
	from, to float64
	wave     WaveType
	duration time.Duration
	volume   float64
}

var designs = map[Cue][]tone{
	Eat:    {{from: 440, to: 880, wave: WaveSine, duration: 100 * time.Millisecond, volume: 0.1}},
	Golden: {{from: 880, to: 1760, wave: WaveSine, duration: 100 * time.Millisecond, volume: 0.15}, {at: 50 * time.Millisecond, from: 1100, to: 2200, wave: WaveSine, duration: 150 * time.Millisecond, volume: 0.15}},
	Poison: {{from: 150, to: 50, wave: WaveSaw, duration: 200 * time.Millisecond, volume: 0.1}},
	Shrink: {{from: 660, to: 220, wave: WaveSine, duration: 200 * time.Millisecond, volume: 0.1}},
	GameOver: {
		{from: 200, to: 100, wave: WaveSquare, duration: 300 * time.Millisecond, volume: 0.1},
		{at: 250 * time.Millisecond, from: 150, to: 50, wave: WaveSquare, duration: 400 * time.Millisecond, volume: 0.1},
	},
	LevelUp: {
		{from: 261.63, wave: WaveSine, duration: 100 * time.Millisecond, volume: 0.1},
		{at: 100 * time.Millisecond, from: 329.63, wave: WaveSine, duration: 100 * time.Millisecond, volume: 0.1},
		{at: 200 * time.Millisecond, from: 392.00, wave: WaveSine, duration: 100 * time.Millisecond, volume: 0.1},
		{at: 300 * time.Millisecond, from: 523.25, wave: WaveSine, duration: 200 * time.Millisecond, volume: 0.1},
	},
	Click: {{from: 600, wave: WaveSine, duration: 50 * time.Millisecond, volume: 0.05}},
}

// Sound 合成一个音效，多个音按各自延迟叠加
func Sound(cue Cue, rate beep.SampleRate) (beep.Streamer, bool) {
	parts, ok := designs[cue]
	if !ok {
		return nil, false
	}
	layers := make([]beep.Streamer, 0, len(parts))
	for _, p := range parts {
		osc := NewDecay(NewSweep(p.from, p.to, p.duration, p.wave, rate), p.volume, p.duration, rate)
		layers = append(layers, beep.Seq(beep.Silence(rate.N(p.at)), osc))
	}
	return beep.Mix(layers...), true
}

// Length 返回音效总时长
func Length(cue Cue) time.Duration {
	var longest time.Duration
	for _, p := range designs[cue] {
		if end := p.at + p.duration; end > longest {
			longest = end
		}
	}
	return longest
}
