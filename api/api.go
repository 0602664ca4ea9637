package api

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hoshinonyaruko/snake-arena/audio"
	"github.com/hoshinonyaruko/snake-arena/engine"
	"github.com/hoshinonyaruko/snake-arena/input"
	"github.com/hoshinonyaruko/snake-arena/loop"
	"github.com/hoshinonyaruko/snake-arena/memimg"
	"github.com/hoshinonyaruko/snake-arena/modes"
	"github.com/hoshinonyaruko/snake-arena/sqlite"
	"github.com/hoshinonyaruko/snake-arena/structs"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var errUnknownAction = errors.New("unknown action")

type Options struct {
	Width, Height float64
	FPS           int
	Store         *sqlite.Store
	Audio         *audio.Manager
	Sprites       *memimg.Sprites
	ThumbWidth    int
	Rand          *rand.Rand
}

// Server 把引擎、调度器和输入连到 HTTP 与 websocket 上。
// 引擎的所有访问都经过 mu，包括调度器回调。
type Server struct {
	mu     sync.Mutex
	engine *engine.Engine

	loop    *loop.Loop
	input   *input.Tracker
	audio   *audio.Manager
	store   *sqlite.Store
	frame   memimg.Frame
	hub     *Hub
	thumbW  int
	unsubFn func()
}

func NewServer(opts Options) *Server {
	if opts.Audio == nil {
		opts.Audio = audio.NewManager(0, true)
	}
	s := &Server{
		loop:   loop.New(opts.FPS),
		input:  input.NewTracker(opts.Width/2, opts.Height/2),
		audio:  opts.Audio,
		store:  opts.Store,
		hub:    NewHub(),
		thumbW: opts.ThumbWidth,
	}

	cfg := engine.Config{
		Width:     opts.Width,
		Height:    opts.Height,
		Input:     s.input,
		Audio:     s.audio,
		Scheduler: s.loop,
		Rand:      opts.Rand,
	}
	// 避免把 nil 指针包装成非 nil 接口
	if opts.Store != nil {
		cfg.Store = opts.Store
	}
	if opts.Sprites != nil {
		cfg.Sprites = opts.Sprites
	}
	s.engine = engine.New(cfg)
	s.unsubFn = s.engine.Subscribe(func(st structs.GameState) {
		s.hub.Broadcast(ServerMessage{Type: "state", State: &st})
	})

	s.loop.OnUpdate = func(dt float64) {
		s.mu.Lock()
		s.engine.Update(dt)
		s.mu.Unlock()
		s.flushSfx()
	}
	s.loop.OnDraw = func() {
		s.mu.Lock()
		img := s.engine.Render()
		s.mu.Unlock()
		s.frame.Store(img)
	}
	return s
}

// Close 停止调度并断开所有连接
func (s *Server) Close() {
	s.mu.Lock()
	s.engine.Stop()
	s.unsubFn()
	s.mu.Unlock()
	s.hub.Close()
}

func (s *Server) State() structs.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// Resize 供配置热更新调用
func (s *Server) Resize(width, height float64) {
	s.mu.Lock()
	s.engine.Resize(width, height)
	s.mu.Unlock()
}

// flushSfx 把本帧触发的音效推送给客户端
func (s *Server) flushSfx() {
	for _, cue := range s.audio.Drain() {
		s.hub.Broadcast(ServerMessage{Type: "sfx", Cue: cue})
	}
}

// command 执行一个控制指令
func (s *Server) command(action, mode string) error {
	s.mu.Lock()
	var err error
	switch strings.ToLower(action) {
	case "start":
		s.audio.Play(audio.Click)
		s.engine.Start()
	case "pause":
		s.engine.Pause()
	case "resume":
		s.engine.Resume()
	case "stop":
		s.engine.Stop()
		s.engine.Sync()
	case "mode":
		var kind modes.Kind
		kind, err = modes.ParseKind(mode)
		if err == nil {
			s.audio.Play(audio.Click)
			err = s.engine.SetMode(kind)
		}
	case "sync":
		s.engine.Sync()
	default:
		err = fmt.Errorf("%w: %q", errUnknownAction, action)
	}
	s.mu.Unlock()
	s.flushSfx()
	return err
}

func statusFor(err error) int {
	if errors.Is(err, modes.ErrUnknownMode) || errors.Is(err, errUnknownAction) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Routes 注册全部路由
func (s *Server) Routes(router *gin.Engine) {
	router.GET("/state", s.StateHandler())
	router.GET("/modes", s.ModesHandler())
	for _, action := range []string{"start", "pause", "resume", "stop"} {
		router.POST("/"+action, s.CommandHandler(action))
	}
	router.POST("/mode", s.ModeHandler())
	router.POST("/resize", s.ResizeHandler())
	router.POST("/pointer", s.PointerHandler())
	router.POST("/mute", s.MuteHandler())
	router.GET("/frame.png", s.FrameHandler())
	router.GET("/thumb.png", s.ThumbHandler())
	router.GET("/sfx/:cue", s.SfxHandler())
	router.GET("/scores/top", s.TopScoresHandler())
	router.GET("/ws", s.WebSocketHandler())
}

func (s *Server) StateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.State())
	}
}

// ModeInfo 描述一个可选模式
type ModeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HighScore   int    `json:"high_score"`
	Selected    bool   `json:"selected"`
}

// ModesHandler 列出所有模式、说明和各自的最高分
func (s *Server) ModesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		selected := s.engine.ModeKind()
		scores := s.engine.State().AllHighScores
		s.mu.Unlock()

		list := make([]ModeInfo, 0, len(modes.Kinds()))
		for _, kind := range modes.Kinds() {
			m, err := modes.New(kind, nil)
			if err != nil {
				continue
			}
			list = append(list, ModeInfo{
				Name:        m.Name(),
				Description: m.Description(),
				HighScore:   scores[string(kind)],
				Selected:    kind == selected,
			})
		}
		c.JSON(http.StatusOK, gin.H{"modes": list})
	}
}

func (s *Server) CommandHandler(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.command(action, ""); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, s.State())
	}
}

func (s *Server) ModeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Mode string `json:"mode" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: mode"})
			return
		}
		if err := s.command("mode", req.Mode); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, s.State())
	}
}

func (s *Server) ResizeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Width <= 0 || req.Height <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be positive"})
			return
		}
		s.Resize(req.Width, req.Height)

		s.mu.Lock()
		w, h := s.engine.Width(), s.engine.Height()
		s.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"width": w, "height": h})
	}
}

func (s *Server) PointerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p structs.Pointer
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pointer payload"})
			return
		}
		s.input.Apply(p)
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) MuteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"muted": s.audio.ToggleMute()})
	}
}

// snapshot 调度器不在运行时（暂停、结束或未开始）按需渲染一帧
func (s *Server) snapshot() {
	if _, ok := s.frame.Image(); ok && s.loop.Running() {
		return
	}
	s.mu.Lock()
	img := s.engine.Render()
	s.mu.Unlock()
	s.frame.Store(img)
}

func (s *Server) FrameHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.snapshot()
		data, ok, err := s.frame.PNG()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No frame rendered yet"})
			return
		}
		if err != nil {
			log.Printf("encode frame: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode frame"})
			return
		}
		c.Data(http.StatusOK, "image/png", data)
	}
}

// ThumbHandler 返回缩略图，游戏结束时画面做模糊处理
func (s *Server) ThumbHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.snapshot()
		width := s.thumbW
		if q := c.Query("width"); q != "" {
			if v, err := strconv.Atoi(q); err == nil && v > 0 {
				width = v
			}
		}
		over := s.State().IsGameOver
		img, ok := s.frame.Thumbnail(width, over)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No frame rendered yet"})
			return
		}
		c.Header("Content-Type", "image/png")
		if err := imaging.Encode(c.Writer, img, imaging.PNG); err != nil {
			log.Printf("encode thumbnail: %v", err)
		}
	}
}

func (s *Server) SfxHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		cue := audio.Cue(strings.TrimSuffix(c.Param("cue"), ".wav"))
		data, err := s.audio.WAV(cue)
		if errors.Is(err, audio.ErrUnknownCue) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to synthesize sound"})
			return
		}
		c.Data(http.StatusOK, "audio/wav", data)
	}
}

func (s *Server) TopScoresHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No score storage configured"})
			return
		}
		kind, err := modes.ParseKind(c.DefaultQuery("mode", string(modes.Classic)))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit <= 0 || limit > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		records, err := s.store.TopGames(string(kind), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load scores"})
			return
		}
		if records == nil {
			records = []sqlite.GameRecord{}
		}
		c.JSON(http.StatusOK, gin.H{"mode": kind, "games": records})
	}
}
