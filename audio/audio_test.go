package audio

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestManagerQueueAndMute(t *testing.T) {
	m := NewManager(0, false)
	m.Play(Eat)
	m.Play(LevelUp)
	got := m.Drain()
	if len(got) != 2 || got[0] != Eat || got[1] != LevelUp {
		t.Fatalf("drain = %v", got)
	}
	if len(m.Drain()) != 0 {
		t.Error("drain should empty the queue")
	}

	m.Play(Poison)
	if !m.ToggleMute() {
		t.Fatal("expected muted")
	}
	if len(m.Drain()) != 0 {
		t.Error("muting should drop pending cues")
	}
	m.Play(Eat)
	if len(m.Drain()) != 0 {
		t.Error("muted manager queued a cue")
	}
	if m.ToggleMute() || m.Muted() {
		t.Error("expected unmuted")
	}
}

func TestWAVEncodesAndCaches(t *testing.T) {
	m := NewManager(22050, true)
	for _, cue := range Cues() {
		data, err := m.WAV(cue)
		if err != nil {
			t.Fatalf("WAV(%s): %v", cue, err)
		}
		if len(data) < 44 || !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
			t.Fatalf("WAV(%s): bad header", cue)
		}
		again, _ := m.WAV(cue)
		if &again[0] != &data[0] {
			t.Errorf("WAV(%s) not cached", cue)
		}
	}
	if _, err := m.WAV("kazoo"); !errors.Is(err, ErrUnknownCue) {
		t.Errorf("expected ErrUnknownCue, got %v", err)
	}
}

func TestSoundSamplesInRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, cue := range Cues() {
		s, ok := Sound(cue, rate)
		if !ok {
			t.Fatalf("no design for %s", cue)
		}
		s = beep.Take(rate.N(Length(cue)), s)
		buf := make([][2]float64, 512)
		total := 0
		for {
			n, ok := s.Stream(buf)
			for i := 0; i < n; i++ {
				if buf[i][0] < -1 || buf[i][0] > 1 {
					t.Fatalf("%s: sample %d out of range: %v", cue, total+i, buf[i][0])
				}
			}
			total += n
			if !ok {
				break
			}
		}
		if total == 0 {
			t.Errorf("%s produced no samples", cue)
		}
	}
}

func TestSweepEnds(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := NewSweep(100, 200, 10*time.Millisecond, WaveSquare, rate)
	buf := make([][2]float64, 64)
	n, ok := s.Stream(buf)
	if n != 10 || !ok {
		t.Fatalf("first stream n=%d ok=%v", n, ok)
	}
	if n, ok = s.Stream(buf); n != 0 || ok {
		t.Errorf("drained stream n=%d ok=%v", n, ok)
	}
}

func TestSeekBuffer(t *testing.T) {
	b := &seekBuffer{}
	b.Write([]byte("hello world"))
	if _, err := b.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	b.Write([]byte("J"))
	if _, err := b.Seek(-5, io.SeekEnd); err != nil {
		t.Fatal(err)
	}
	b.Write([]byte("W"))
	if string(b.data) != "Jello World" {
		t.Errorf("data = %q", b.data)
	}
	if _, err := b.Seek(-100, io.SeekCurrent); err == nil {
		t.Error("expected error for negative seek")
	}
}
