package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/domain"
	"github.com/iamasit07/photoshare/internal/logger"
)

const writeWait = 10 * time.Second

// PhotoViewer renders a photo as seen by one user.
type PhotoViewer interface {
	GetPhoto(viewer, photoID int64) (*domain.Photo, error)
}

// Hub tracks one live connection per user and pushes photo updates to them.
type Hub struct {
	connections map[int64]*websocket.Conn

	// conn.WriteJSON is not safe for concurrent use
	writeMu map[int64]*sync.Mutex

	mu     sync.RWMutex
	photos PhotoViewer
	logger *zap.Logger
}

func NewHub(photos PhotoViewer, log *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
		writeMu:     make(map[int64]*sync.Mutex),
		photos:      photos,
		logger:      log.Named("hub"),
	}
}

// Add registers conn for userID, closing any older connection of that user.
func (h *Hub) Add(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, exists := h.connections[userID]; exists {
		old.Close()
	}
	h.connections[userID] = conn
	h.writeMu[userID] = &sync.Mutex{}
}

// RemoveIfMatching drops conn only if it is still the user's current one.
func (h *Hub) RemoveIfMatching(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, exists := h.connections[userID]; exists && current == conn {
		current.Close()
		delete(h.connections, userID)
		delete(h.writeMu, userID)
	}
}

func (h *Hub) Connected(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.connections[userID]
	return ok
}

// Send writes one JSON message to userID. Disconnected users are skipped.
func (h *Hub) Send(userID int64, message any) error {
	h.mu.RLock()
	conn, exists := h.connections[userID]
	mu, muExists := h.writeMu[userID]
	h.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

// PublishPhoto sends every connected user their own view of photoID.
func (h *Hub) PublishPhoto(photoID int64) {
	h.mu.RLock()
	users := make([]int64, 0, len(h.connections))
	for userID := range h.connections {
		users = append(users, userID)
	}
	h.mu.RUnlock()

	log := logger.WithPhoto(h.logger, photoID)
	for _, userID := range users {
		photo, err := h.photos.GetPhoto(userID, photoID)
		if err != nil {
			// the photo is gone for everyone
			log.Debug("skipping update", zap.Error(err))
			return
		}
		update := domain.PhotoUpdate{
			Type:       domain.PhotoUpdatedMessage,
			PhotoID:    photo.ID,
			Liked:      photo.IsLiked,
			LikesCount: photo.LikesCount,
			Favorited:  photo.IsFavorited,
		}
		go func(uid int64) {
			if err := h.Send(uid, update); err != nil {
				log.Warn("failed to push update", zap.Int64("user_id", uid), zap.Error(err))
			}
		}(userID)
	}
}
