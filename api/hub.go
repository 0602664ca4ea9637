package api

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hoshinonyaruko/snake-arena/audio"
	"github.com/hoshinonyaruko/snake-arena/structs"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	sendBuffer = 64
	readLimit  = 1 << 16
)

// ServerMessage 服务端推送的消息
type ServerMessage struct {
	Type  string             `json:"type"` // state / sfx / error
	State *structs.GameState `json:"state,omitempty"`
	Cue   audio.Cue          `json:"cue,omitempty"`
	Error string             `json:"error,omitempty"`
}

// ClientMessage 客户端上报的消息
type ClientMessage struct {
	Type    string           `json:"type"` // pointer / command / resize
	Pointer *structs.Pointer `json:"pointer,omitempty"`
	Action  string           `json:"action,omitempty"`
	Mode    string           `json:"mode,omitempty"`
	Width   float64          `json:"width,omitempty"`
	Height  float64          `json:"height,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub 管理所有 websocket 连接并广播消息
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) register(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast 发送给所有连接，发送队列满的连接丢弃这条消息
func (h *Hub) Broadcast(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Println("marshal broadcast:", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Println("client send buffer full, dropping message")
		}
	}
}

// sendTo 只发给一个连接
func (h *Hub) sendTo(c *client, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// Close 断开所有连接
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// writePump 负责写消息和定时 ping，每个连接只有这一个写者
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Println("write:", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
