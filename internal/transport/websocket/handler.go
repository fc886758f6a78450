package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/domain"
	"github.com/iamasit07/photoshare/pkg/auth"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

type Handler struct {
	Hub      *Hub
	Signer   *auth.Signer
	Upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewHandler(hub *Hub, signer *auth.Signer, logger *zap.Logger) *Handler {
	return &Handler{
		Hub:    hub,
		Signer: signer,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.Named("ws"),
	}
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	h.handleConnection(conn)
}

func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// The first message must be {"type":"init","jwt":...}.
	_, data, err := conn.ReadMessage()
	if err != nil {
		h.logger.Debug("read failed during init", zap.Error(err))
		conn.Close()
		return
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil || message.Type != "init" || message.JWT == "" {
		h.logger.Debug("missing init message")
		conn.Close()
		return
	}

	claims, err := h.Signer.ValidateAccessToken(message.JWT)
	if err != nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "Invalid token or session expired"})
		conn.Close()
		return
	}
	userID := claims.ID

	h.Hub.Add(userID, conn)
	h.logger.Info("live connection opened", zap.Int64("user_id", userID))

	done := make(chan struct{})
	defer func() {
		close(done)
		h.Hub.RemoveIfMatching(userID, conn)
		h.logger.Info("live connection closed", zap.Int64("user_id", userID))
	}()

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	// Nothing is expected from the client after init; reading keeps pongs flowing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("client disconnected unexpectedly", zap.Error(err))
			}
			return
		}
	}
}
