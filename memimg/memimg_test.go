package memimg

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePNG(t *testing.T, path string, size int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestSpritesLoadAndScale(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "golden.png"), 64, color.RGBA{255, 215, 0, 255})
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644)

	s := NewSprites()
	if err := s.Load(dir); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 sprite, got %d", s.Len())
	}
	img, ok := s.Get("golden", 24)
	if !ok {
		t.Fatal("sprite missing")
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 24 {
		t.Errorf("scaled size = %v", b)
	}
	if _, ok := s.Get("death", 24); ok {
		t.Error("unexpected sprite")
	}
	if _, ok := s.Get("golden", 0); ok {
		t.Error("zero size should miss")
	}
}

func TestSpritesMissingDir(t *testing.T) {
	s := NewSprites()
	if err := s.Load(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("missing dir should not error: %v", err)
	}
}

func TestSpritesWatchReloads(t *testing.T) {
	dir := t.TempDir()
	s := NewSprites()
	done := make(chan struct{})
	defer close(done)
	if err := s.Watch(dir, done); err != nil {
		t.Fatalf("watch: %v", err)
	}

	writePNG(t, filepath.Join(dir, "poison.png"), 16, color.RGBA{255, 0, 255, 255})
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := s.Get("poison", 8); ok {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if _, ok := s.Get("poison", 8); !ok {
		t.Fatal("sprite not hot-loaded")
	}

	os.Remove(filepath.Join(dir, "poison.png"))
	deadline = time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := s.Get("poison", 8); !ok {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("sprite not removed after delete")
}

func TestFramePNGAndThumbnail(t *testing.T) {
	var f Frame
	if _, ok, _ := f.PNG(); ok {
		t.Fatal("empty frame should report missing")
	}

	f.Store(image.NewRGBA(image.Rect(0, 0, 200, 100)))
	data, ok, err := f.PNG()
	if !ok || err != nil || len(data) == 0 {
		t.Fatalf("png: ok=%v err=%v len=%d", ok, err, len(data))
	}
	again, _, _ := f.PNG()
	if &again[0] != &data[0] {
		t.Error("same frame encoded twice")
	}

	thumb, ok := f.Thumbnail(50, true)
	if !ok {
		t.Fatal("thumbnail missing")
	}
	if b := thumb.Bounds(); b.Dx() != 50 || b.Dy() != 25 {
		t.Errorf("thumbnail size = %v", b)
	}
}
