package ws

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wealthy-cats/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Sessions runs commands on a session loop.
type Sessions interface {
	Exists(id string) bool
	Do(ctx context.Context, id string, fn func(*game.Session) error) error
}

type Handler struct {
	hub      *Hub
	sessions Sessions
	log      *zap.Logger
}

func NewHandler(hub *Hub, sessions Sessions, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{hub: hub, sessions: sessions, log: log}
}

// join sends conn an init snapshot of sessionID and subscribes it to events.
// Both happen on the session loop, so no event is missed or duplicated.
func (h *Handler) join(ctx context.Context, sessionID string, conn ConnInterface) (*client, error) {
	var c *client
	err := h.sessions.Do(ctx, sessionID, func(g *game.Session) error {
		snap := g.Snapshot()
		c = h.hub.subscribe(sessionID, conn, buildMessage("init", snap))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// listen reads until the client goes away. Clients drive the game over HTTP,
// so inbound frames are ignored.
func (h *Handler) listen(c *client) {
	defer h.hub.unsubscribe(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			var ce *websocket.CloseError
			if !errors.As(err, &ce) {
				h.log.Debug("websocket read ended", zap.String("session", c.sessionID), zap.Error(err))
			}
			return
		}
	}
}

// HandleWebSocket serves GET /ws?sessionId=.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing sessionId"})
		return
	}
	if !h.sessions.Exists(sessionID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("⚠️ websocket upgrade failed", zap.Error(err))
		return
	}
	conn := &RealConn{Conn: wsConn}
	cl, err := h.join(c.Request.Context(), sessionID, conn)
	if err != nil {
		conn.WriteMessage(websocket.TextMessage, buildMessage("error", gin.H{"message": err.Error()}))
		conn.Close()
		return
	}
	h.listen(cl)
}
