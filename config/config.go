package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// AppConfig holds the structure of the configuration
type AppConfig struct {
	SelfPath   string `json:"selfpath"`
	Port       string `json:"port"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	FPS        int    `json:"fps"`
	DBPath     string `json:"dbpath"`
	StorageKey string `json:"storagekey"`
	FoodsDir   string `json:"foodsdir"`
	Muted      bool   `json:"muted"`
	ThumbWidth int    `json:"thumbwidth"`
}

// MaxDimension 是世界宽高的上限
const MaxDimension = 4096

var (
	instance *AppConfig
	once     sync.Once
	mu       sync.RWMutex
)

func defaults() *AppConfig {
	return &AppConfig{
		SelfPath:   "http://127.0.0.1:38870", // Default value
		Port:       "38870",                  // Default value
		Width:      1280,
		Height:     720,
		FPS:        60,
		DBPath:     "game.db",
		StorageKey: "snakeHighScores",
		FoodsDir:   "./foods",
		ThumbWidth: 320,
	}
}

// LoadConfig initializes and returns the instance of AppConfig
func LoadConfig(filePath string) *AppConfig {
	once.Do(func() {
		cfg := defaults()
		// Load the config file if it exists, otherwise create one
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			if err := saveConfig(filePath, cfg); err != nil {
				panic(err)
			}
		} else if err := loadConfig(filePath, cfg); err != nil {
			panic(err)
		}
		set(cfg)
	})
	return Current()
}

// Current 返回当前配置的副本
func Current() *AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return defaults()
	}
	cfg := *instance
	return &cfg
}

func set(cfg *AppConfig) {
	normalize(cfg)
	mu.Lock()
	instance = cfg
	mu.Unlock()
}

// normalize 把无效值替换为默认值
func normalize(cfg *AppConfig) {
	d := defaults()
	if cfg.Port == "" {
		cfg.Port = d.Port
	}
	if cfg.Width <= 0 {
		cfg.Width = d.Width
	} else if cfg.Width > MaxDimension {
		cfg.Width = MaxDimension
	}
	if cfg.Height <= 0 {
		cfg.Height = d.Height
	} else if cfg.Height > MaxDimension {
		cfg.Height = MaxDimension
	}
	if cfg.FPS <= 0 {
		cfg.FPS = d.FPS
	}
	if cfg.DBPath == "" {
		cfg.DBPath = d.DBPath
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = d.StorageKey
	}
	if cfg.FoodsDir == "" {
		cfg.FoodsDir = d.FoodsDir
	}
	if cfg.ThumbWidth <= 0 {
		cfg.ThumbWidth = d.ThumbWidth
	}
}

// loadConfig loads the settings from the file
func loadConfig(filePath string, cfg *AppConfig) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}
	return nil
}

// saveConfig saves the current settings to the file
func saveConfig(filePath string, cfg *AppConfig) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

// Reload 重新读取配置文件，失败时保留旧配置
func Reload(filePath string) (*AppConfig, error) {
	cfg := defaults()
	if err := loadConfig(filePath, cfg); err != nil {
		return nil, err
	}
	set(cfg)
	return Current(), nil
}

// WatchConfig 监听配置文件变化，重新加载后调用 onChange，直到 done 关闭
func WatchConfig(filePath string, onChange func(*AppConfig), done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// 监听目录，编辑器保存时常常是先删除再创建
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		watcher.Close()
		return err
	}
	target := filepath.Clean(filePath)

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
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Reload(filePath)
				if err != nil {
					log.Printf("reload config: %v", err)
					continue
				}
				log.Println("config reloaded")
				if onChange != nil {
					onChange(cfg)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Println("config watcher error:", err)
			}
		}
	}()
	return nil
}

// GetConfigValue returns the value of the configuration by key
func GetConfigValue(key string) interface{} {
	cfg := Current()
	switch key {
	case "selfpath":
		return cfg.SelfPath
	case "port":
		return cfg.Port
	case "width":
		return cfg.Width
	case "height":
		return cfg.Height
	case "fps":
		return cfg.FPS
	case "dbpath":
		return cfg.DBPath
	case "storagekey":
		return cfg.StorageKey
	case "foodsdir":
		return cfg.FoodsDir
	case "muted":
		return cfg.Muted
	case "thumbwidth":
		return cfg.ThumbWidth
	default:
		return ""
	}
}
