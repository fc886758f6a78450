package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/domain"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

// Reconciler receives authoritative photo state pushed by the backend.
type Reconciler interface {
	ApplyUpdate(update domain.PhotoUpdate)
}

type TokenProvider interface {
	Token(ctx context.Context) (string, bool)
}

// Subscriber follows the backend's live channel for the signed-in user.
type Subscriber struct {
	url    string
	tokens TokenProvider
	dialer *websocket.Dialer
	logger *zap.Logger
}

func NewSubscriber(url string, tokens TokenProvider, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		url:    url,
		tokens: tokens,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		logger: logger.Named("live"),
	}
}

// Run connects, authenticates, and forwards photo updates to r until ctx
// ends or the connection drops. A nil return means ctx ended.
func (s *Subscriber) Run(ctx context.Context, r Reconciler) error {
	token, ok := s.tokens.Token(ctx)
	if !ok {
		return domain.ErrNoSession
	}

	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("failed to dial live channel: %w", err)
	}
	defer conn.Close()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(domain.ClientMessage{Type: "init", JWT: token}); err != nil {
		return fmt.Errorf("failed to send init: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-ctx.Done():
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				conn.Close()
				return
			case <-stop:
				return
			}
		}
	}()

	s.logger.Info("live channel connected", zap.String("url", s.url))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("live channel read failed: %w", err)
		}

		var msg domain.PhotoUpdate
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("ignoring malformed message", zap.Error(err))
			continue
		}
		switch msg.Type {
		case domain.PhotoUpdatedMessage:
			r.ApplyUpdate(msg)
		case "error":
			var em domain.ErrorMessage
			json.Unmarshal(data, &em)
			return errors.New(em.Message)
		default:
			s.logger.Debug("ignoring message", zap.String("type", msg.Type))
		}
	}
}
