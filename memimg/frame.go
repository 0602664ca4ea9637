package memimg

import (
	"bytes"
	"image"
	"image/png"
	"sync"

	"github.com/disintegration/imaging"
)

// Frame 保存最近一次渲染的画面，供 HTTP 读取
type Frame struct {
	mu    sync.RWMutex
	img   image.Image
	seq   uint64
	png   []byte
	pngAt uint64
}

// Store 替换当前画面
func (f *Frame) Store(img image.Image) {
	f.mu.Lock()
	f.img = img
	f.seq++
	f.mu.Unlock()
}

func (f *Frame) Image() (image.Image, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.img, f.img != nil
}

// PNG 返回当前画面的 PNG 编码，同一帧只编码一次
func (f *Frame) PNG() ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.img == nil {
		return nil, false, nil
	}
	if f.png != nil && f.pngAt == f.seq {
		return f.png, true, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, f.img); err != nil {
		return nil, true, err
	}
	f.png = buf.Bytes()
	f.pngAt = f.seq
	return f.png, true, nil
}

// Thumbnail 按宽度等比缩小当前画面；blur 为真时加高斯模糊（用于结束画面）
func (f *Frame) Thumbnail(width int, blur bool) (image.Image, bool) {
	img, ok := f.Image()
	if !ok {
		return nil, false
	}
	if width <= 0 {
		width = img.Bounds().Dx()
	}
	thumb := imaging.Resize(img, width, 0, imaging.Lanczos)
	if blur {
		return imaging.Blur(thumb, 3.5), true
	}
	return thumb, true
}
