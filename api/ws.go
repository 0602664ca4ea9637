package api

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocketHandler 接收指针与控制指令，推送状态和音效
func (s *Server) WebSocketHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		cl := s.hub.register(conn)
		go cl.writePump()

		st := s.State()
		s.hub.sendTo(cl, ServerMessage{Type: "state", State: &st})

		s.readPump(cl)
	}
}

func (s *Server) readPump(cl *client) {
	defer s.hub.unregister(cl)

	conn := cl.conn
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("read:", err)
			}
			return
		}
		s.handleMessage(cl, msg)
	}
}

func (s *Server) handleMessage(cl *client, msg ClientMessage) {
	switch msg.Type {
	case "pointer":
		if msg.Pointer != nil {
			s.input.Apply(*msg.Pointer)
		}
	case "resize":
		s.Resize(msg.Width, msg.Height)
	case "command":
		if err := s.command(msg.Action, msg.Mode); err != nil {
			s.hub.sendTo(cl, ServerMessage{Type: "error", Error: err.Error()})
		}
	default:
		s.hub.sendTo(cl, ServerMessage{Type: "error", Error: "unknown message type " + msg.Type})
	}
}
