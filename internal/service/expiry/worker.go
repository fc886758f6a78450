package expiry

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/service/notify"
)

const SessionExpiredMessage = "Your session has expired. Please log in again."

type SessionChecker interface {
	IsValid(ctx context.Context) bool
}

// Worker watches the stored session and tells the user once when it stops
// being valid. The stored token is left in place.
type Worker struct {
	sessions SessionChecker
	notifier notify.Sink
	interval time.Duration
	logger   *zap.Logger

	wasValid bool
}

func NewWorker(sessions SessionChecker, notifier notify.Sink, interval time.Duration, logger *zap.Logger) *Worker {
	return &Worker{
		sessions: sessions,
		notifier: notifier,
		interval: interval,
		logger:   logger.Named("expiry"),
	}
}

// Start checks immediately, then every interval, until ctx ends.
func (w *Worker) Start(ctx context.Context) {
	w.wasValid = w.sessions.IsValid(ctx)
	w.logger.Info("expiry watcher started", zap.Bool("session_valid", w.wasValid))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

// check reports a valid-to-invalid transition. It returns true when a
// notification was sent.
func (w *Worker) check(ctx context.Context) bool {
	valid := w.sessions.IsValid(ctx)
	defer func() { w.wasValid = valid }()

	if w.wasValid && !valid {
		w.logger.Info("session expired")
		w.notifier.ShowInfo(SessionExpiredMessage)
		return true
	}
	return false
}
