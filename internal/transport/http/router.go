package http

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/forms"
	"github.com/iamasit07/photoshare/internal/repository/memory"
	"github.com/iamasit07/photoshare/internal/transport/http/middleware"
	"github.com/iamasit07/photoshare/internal/transport/websocket"
	"github.com/iamasit07/photoshare/pkg/auth"
)

type RouterConfig struct {
	Repo           *memory.PhotoRepo
	Signer         *auth.Signer
	UploadDir      string
	AllowedOrigins []string
	Logger         *zap.Logger
}

// NewRouter wires the photo backend. The returned hub is the live channel
// that like and favorite changes are published to.
func NewRouter(cfg RouterConfig) (*gin.Engine, *websocket.Hub) {
	binding.Validator = forms.Default

	hub := websocket.NewHub(cfg.Repo, cfg.Logger)
	authHandler := NewAuthHandler(cfg.Repo, cfg.Signer, cfg.UploadDir, cfg.Logger)
	photoHandler := NewPhotoHandler(cfg.Repo, hub, cfg.UploadDir, cfg.Logger)
	wsHandler := websocket.NewHandler(hub, cfg.Signer, cfg.Logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.RequestLogger(cfg.Logger.Named("http")))
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.Logger))

	authMW := middleware.AuthMiddleware(cfg.Signer)
	optionalMW := middleware.OptionalAuth(cfg.Signer)

	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)

	public := router.Group("/api")
	public.Use(optionalMW)
	{
		public.GET("/photos", photoHandler.List)
		public.GET("/photos/:id", photoHandler.Get)
	}

	protected := router.Group("/api")
	protected.Use(authMW)
	{
		protected.GET("/users/me", authHandler.Me)
		protected.POST("/users/me/avatar", authHandler.UploadAvatar)

		protected.POST("/photos", photoHandler.Upload)
		protected.DELETE("/photos/:id", photoHandler.Delete)
		protected.POST("/photos/:id/like", photoHandler.Like)
		protected.DELETE("/photos/:id/like", photoHandler.Unlike)
		protected.POST("/photos/:id/favorite", photoHandler.Favorite)
		protected.DELETE("/photos/:id/favorite", photoHandler.Unfavorite)

		protected.GET("/favorites", photoHandler.Favorites)
	}

	// auth handled inside the ws handler
	router.GET("/ws", wsHandler.HandleWebSocket)

	router.Static("/uploads", cfg.UploadDir)

	return router, hub
}
