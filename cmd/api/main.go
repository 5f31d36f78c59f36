package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/01moynul/binner-golang/internal/auth"
	"github.com/01moynul/binner-golang/internal/bootstrap"
	"github.com/01moynul/binner-golang/internal/config"
	"github.com/01moynul/binner-golang/internal/handlers"
	"github.com/01moynul/binner-golang/internal/labels"
	"github.com/01moynul/binner-golang/internal/logging"
	"github.com/01moynul/binner-golang/internal/routes"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// 1. --- Config & Logger ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting binner API",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. --- Storage Provider ---
	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage provider", zap.Error(err))
	}
	defer store.Close()

	// 3. --- Labels & Tokens ---
	sink, err := labels.NewSink(ctx, cfg.Labels, logger)
	if err != nil {
		logger.Fatal("Failed to initialize label storage", zap.Error(err))
	}

	if cfg.Auth.Secret == "" {
		logger.Warn("auth.secret is not set; tokens will not survive a restart")
	}
	tokens, err := auth.New(cfg.Auth.Secret, cfg.Auth.TokenExpire)
	if err != nil {
		logger.Fatal("Failed to initialize token issuer", zap.Error(err))
	}

	// --- Application Setup ---
	app := handlers.New(store, &labels.Printer{Sink: sink}, tokens, logger)
	router := routes.SetupRouter(app, cfg, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// --- Start Server ---
	go func() {
		logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
