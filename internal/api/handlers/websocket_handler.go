// internal/api/handlers/websocket_handler.go
package handlers

import (
	"net/http"
	"time"

	"prestige-motors-api-server/internal/auth"
	"prestige-motors-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Maximum wait for a message from the client before the connection is
// considered dead.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub       *socket.Hub
	JWTSecret []byte
	Log       *zap.SugaredLogger
}

// ServeWs upgrades a storefront client to a websocket so it receives
// catalog notices. Visitors connect anonymously; a valid session token in
// the query keys the connection by username instead.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	clientID := uuid.NewString()
	if tokenString := c.Query("token"); tokenString != "" {
		claims, err := auth.ParseJWT(h.JWTSecret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		clientID = claims.Username
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warnf("Failed to upgrade connection: %v", err)
		return
	}

	h.Hub.Register(clientID, conn)

	defer func() {
		h.Hub.Unregister(clientID)
		conn.Close()
	}()

	// Heartbeat: every client PING extends the read deadline.
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Warnf("Unexpected close error: %v", err)
			}
			break
		}
	}
}
