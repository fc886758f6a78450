package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/config"
	"github.com/iamasit07/photoshare/internal/logger"
	"github.com/iamasit07/photoshare/internal/repository/memory"
	transportHttp "github.com/iamasit07/photoshare/internal/transport/http"
	"github.com/iamasit07/photoshare/pkg/auth"
)

// stubapi is an in-memory photo backend for local development of the CLI.
func main() {
	envFile := config.LoadDotEnv()

	cfg := config.LoadConfig()
	log, err := logger.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if envFile == "" {
		log.Info("No .env file found")
	} else {
		log.Info("loaded env file", zap.String("path", envFile))
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("Failed to create upload directory", zap.Error(err))
	}

	signer := auth.NewSigner(cfg.JWTSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute)
	router, _ := transportHttp.NewRouter(transportHttp.RouterConfig{
		Repo:           memory.NewPhotoRepo(),
		Signer:         signer,
		UploadDir:      cfg.UploadDir,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.StubPort,
		Handler: router,
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.StubPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
