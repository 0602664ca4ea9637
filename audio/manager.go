package audio

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

var ErrUnknownCue = errors.New("unknown sound cue")

// Manager 收集引擎触发的音效，由传输层推送给客户端播放；
// 同时按需合成 WAV 并缓存。
type Manager struct {
	rate beep.SampleRate

	mu      sync.Mutex
	muted   bool
	pending []Cue

	cache sync.Map // Cue -> []byte
}

func NewManager(rate int, muted bool) *Manager {
	if rate <= 0 {
		rate = 44100
	}
	return &Manager{rate: beep.SampleRate(rate), muted: muted}
}

// Play 记录一次音效，静音时丢弃
func (m *Manager) Play(cue Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.muted {
		return
	}
	m.pending = append(m.pending, cue)
}

// Drain 取出并清空待播放的音效
func (m *Manager) Drain() []Cue {
	m.mu.Lock()
	defer m.mu.Unlock()
	cues := m.pending
	m.pending = nil
	return cues
}

// ToggleMute 切换静音并返回新的状态
func (m *Manager) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	if m.muted {
		m.pending = nil
	}
	return m.muted
}

func (m *Manager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// WAV 返回音效的 WAV 编码，结果会被缓存
func (m *Manager) WAV(cue Cue) ([]byte, error) {
	if data, ok := m.cache.Load(cue); ok {
		return data.([]byte), nil
	}
	s, ok := Sound(cue, m.rate)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCue, cue)
	}

	buf := &seekBuffer{}
	format := beep.Format{SampleRate: m.rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(buf, beep.Take(m.rate.N(Length(cue)), s), format); err != nil {
		return nil, fmt.Errorf("encode %s: %w", cue, err)
	}
	m.cache.Store(cue, buf.data)
	return buf.data, nil
}

// seekBuffer 是 wav.Encode 需要的内存 io.WriteSeeker
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if end := b.pos + len(p); end > len(b.data) {
		b.data = append(b.data, make([]byte, end-len(b.data))...)
	}
	n := copy(b.data[b.pos:], p)
	b.pos += n
	return n, nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = int64(b.pos) + offset
	case io.SeekEnd:
		next = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("seek: negative position %d", next)
	}
	b.pos = int(next)
	return next, nil
}
