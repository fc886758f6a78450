package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/client"
	"github.com/iamasit07/photoshare/internal/config"
	"github.com/iamasit07/photoshare/internal/domain"
	"github.com/iamasit07/photoshare/internal/metrics"
	"github.com/iamasit07/photoshare/internal/service/notify"
	"github.com/iamasit07/photoshare/internal/service/session"
	"github.com/iamasit07/photoshare/internal/view"
)

// App holds everything a command needs.
type App struct {
	cfg      *config.Config
	sessions *session.Store
	api      *client.Client
	out      io.Writer
	notifier notify.Sink
	registry *prometheus.Registry
	metrics  *metrics.ToggleMetrics
	logger   *zap.Logger
}

// NewApp builds the app around storage. ctx bounds every token read made
// by the API client.
func NewApp(ctx context.Context, cfg *config.Config, storage session.Storage, out io.Writer, logger *zap.Logger) *App {
	sessions := session.NewStore(storage, session.WithLogger(logger))
	registry := prometheus.NewRegistry()

	return &App{
		cfg:      cfg,
		sessions: sessions,
		api:      client.New(cfg.APIURL, cfg.HTTPTimeout, sessions.TokenSource(ctx), logger),
		out:      out,
		notifier: notify.NewWriter(out),
		registry: registry,
		metrics:  metrics.NewToggleMetrics(registry),
		logger:   logger,
	}
}

func (a *App) Sessions() *session.Store {
	return a.sessions
}

func (a *App) viewDeps() view.Deps {
	return view.Deps{
		Likes:     client.LikeService{Client: a.api},
		Favorites: client.FavoriteService{Client: a.api},
		Notifier:  a.notifier,
		Observer:  a.metrics,
		Logger:    a.logger,
	}
}

// requireSession fails early with a friendly message instead of a 401.
func (a *App) requireSession(ctx context.Context) error {
	if !a.sessions.IsValid(ctx) {
		return errNotLoggedIn
	}
	return nil
}

var errNotLoggedIn = errors.New("you are not logged in; run 'photoshare login' first")

// friendly turns client errors into messages fit for the terminal.
func friendly(err error) error {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, domain.ErrNoSession):
		return errNotLoggedIn
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return errors.New(apiErr.Message)
	}
	return fmt.Errorf("request failed: %w", err)
}
