package memimg

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"
)

// Sprites 按名字缓存食物图标，名字为去掉扩展名的文件名（如 golden）
type Sprites struct {
	mu     sync.RWMutex
	images map[string]image.Image
	scaled map[string]image.Image // name@size -> 缩放后的图
}

func NewSprites() *Sprites {
	return &Sprites{
		images: make(map[string]image.Image),
		scaled: make(map[string]image.Image),
	}
}

// Load 载入目录下所有图片，目录不存在时不报错
func (s *Sprites) Load(directory string) error {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil
	}
	return filepath.Walk(directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isImage(path) {
			return nil
		}
		img, err := LoadImage(path)
		if err != nil {
			log.Printf("skip sprite %s: %v", path, err)
			return nil
		}
		s.put(spriteName(path), img)
		return nil
	})
}

func (s *Sprites) put(name string, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[name] = img
	// 旧尺寸缓存作废
	for k := range s.scaled {
		if strings.HasPrefix(k, name+"@") {
			delete(s.scaled, k)
		}
	}
}

func (s *Sprites) remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.images, name)
	for k := range s.scaled {
		if strings.HasPrefix(k, name+"@") {
			delete(s.scaled, k)
		}
	}
}

// Get 返回缩放到 size×size 的图标
func (s *Sprites) Get(name string, size int) (image.Image, bool) {
	if size <= 0 {
		return nil, false
	}
	key := fmt.Sprintf("%s@%d", name, size)

	s.mu.RLock()
	img, ok := s.scaled[key]
	src, exists := s.images[name]
	s.mu.RUnlock()
	if ok {
		return img, true
	}
	if !exists {
		return nil, false
	}

	img = imaging.Fit(src, size, size, imaging.Lanczos)
	s.mu.Lock()
	s.scaled[key] = img
	s.mu.Unlock()
	return img, true
}

func (s *Sprites) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// Watch 监听目录变化并热更新到内存，直到 done 关闭
func (s *Sprites) Watch(directory string, done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(directory); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				s.handle(event)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Println("sprite watcher error:", err)
			}
		}
	}()
	return nil
}

func (s *Sprites) handle(event fsnotify.Event) {
	if !isImage(event.Name) {
		return
	}
	name := spriteName(event.Name)
	switch {
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
		img, err := LoadImage(event.Name)
		if err != nil {
			// 文件可能还没写完，下一次 Write 事件会再试
			return
		}
		s.put(name, img)
		log.Printf("sprite %s reloaded", name)
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		s.remove(name)
		log.Printf("sprite %s removed", name)
	}
}

func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func spriteName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
