package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hoshinonyaruko/snake-arena/api"
	"github.com/hoshinonyaruko/snake-arena/audio"
	"github.com/hoshinonyaruko/snake-arena/config"
	"github.com/hoshinonyaruko/snake-arena/food"
	"github.com/hoshinonyaruko/snake-arena/memimg"
	"github.com/hoshinonyaruko/snake-arena/sqlite"
)

const configPath = "./config.json"

func main() {
	// Initialize the configuration
	cfg := config.LoadConfig(configPath)
	EnsureFoldersExist(cfg.FoodsDir, "static")

	// 最高分与对局记录
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	store := sqlite.NewStore(db, cfg.StorageKey)

	// 载入食物图标并热更新到内存 加速绘图
	sprites := memimg.NewSprites()
	if err := sprites.Load(cfg.FoodsDir); err != nil {
		log.Printf("Failed to load sprites: %v", err)
	}
	log.Printf("Loaded %d sprites from %s", sprites.Len(), cfg.FoodsDir)
	for _, category := range food.Categories() {
		if _, ok := sprites.Get(string(category), 16); !ok {
			log.Printf("No sprite for %s food, drawing a circle", category)
		}
	}
	done := make(chan struct{})
	defer close(done)
	if err := sprites.Watch(cfg.FoodsDir, done); err != nil {
		log.Printf("Failed to watch %s: %v", cfg.FoodsDir, err)
	}

	server := api.NewServer(api.Options{
		Width:      float64(cfg.Width),
		Height:     float64(cfg.Height),
		FPS:        cfg.FPS,
		Store:      store,
		Audio:      audio.NewManager(44100, cfg.Muted),
		Sprites:    sprites,
		ThumbWidth: cfg.ThumbWidth,
	})
	defer server.Close()

	// 配置文件修改后同步世界尺寸
	err = config.WatchConfig(configPath, func(c *config.AppConfig) {
		server.Resize(float64(c.Width), float64(c.Height))
	}, done)
	if err != nil {
		log.Printf("Failed to watch config: %v", err)
	}

	router := gin.Default()
	server.Routes(router)
	router.Static("/static", "./static") // 静态文件服务
	// 从配置单例读取端口 监听
	if err := router.Run(":" + config.GetConfigValue("port").(string)); err != nil {
		log.Fatal(err)
	}
}

// EnsureFoldersExist 检查并创建必需的文件夹
func EnsureFoldersExist(folders ...string) {
	for _, folder := range folders {
		if _, err := os.Stat(folder); os.IsNotExist(err) {
			// 文件夹不存在，尝试创建它
			if err := os.MkdirAll(folder, 0755); err != nil {
				log.Fatalf("Failed to create %s directory: %s", folder, err)
			}
			log.Printf("Created %s directory", folder)
		}
	}
}
